package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"taskboard/internal/model"
)

// AuthorRepository reads authors. Authors are written only by the seeder.
type AuthorRepository struct {
	db *gorm.DB
}

func NewAuthorRepository(db *gorm.DB) *AuthorRepository {
	return &AuthorRepository{db: db}
}

func (r *AuthorRepository) ListAll(ctx context.Context) ([]model.Author, error) {
	var authors []model.Author
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&authors).Error; err != nil {
		return nil, fmt.Errorf("list authors: %w", err)
	}
	return authors, nil
}

func (r *AuthorRepository) FindByID(ctx context.Context, id string) (*model.Author, error) {
	var author model.Author
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&author).Error; err != nil {
		return nil, err
	}
	return &author, nil
}

func (r *AuthorRepository) FindByEmail(ctx context.Context, email string) (*model.Author, error) {
	var author model.Author
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&author).Error; err != nil {
		return nil, err
	}
	return &author, nil
}

func (r *AuthorRepository) Create(ctx context.Context, author *model.Author) error {
	if err := r.db.WithContext(ctx).Create(author).Error; err != nil {
		return fmt.Errorf("create author: %w", err)
	}
	return nil
}
