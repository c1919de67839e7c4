package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"taskboard/internal/model"
	"taskboard/internal/repository"
)

// AuthorService exposes read access to authors.
type AuthorService struct {
	authorRepo *repository.AuthorRepository
}

func NewAuthorService(authorRepo *repository.AuthorRepository) *AuthorService {
	return &AuthorService{authorRepo: authorRepo}
}

func (s *AuthorService) List(ctx context.Context) ([]model.Author, error) {
	return s.authorRepo.ListAll(ctx)
}

func (s *AuthorService) Get(ctx context.Context, id string) (*model.Author, error) {
	author, err := s.authorRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAuthorNotFound
		}
		return nil, fmt.Errorf("find author: %w", err)
	}
	return author, nil
}
