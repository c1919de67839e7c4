package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"taskboard/internal/cache"
	"taskboard/internal/model"
	"taskboard/internal/repository"
)

// taskKeyPrefix covers every cached task query; mutations invalidate it
// wholesale because any write can change what an arbitrary filter matches.
const taskKeyPrefix = "tasks|"

// TaskCreateInput represents data required to create a task.
type TaskCreateInput struct {
	Title       string
	Description string
	Status      model.Status
	Priority    model.Priority
	Type        model.TaskType
	AuthorID    string
	Deadline    *time.Time
}

// TaskUpdateInput is a partial update: nil fields are left unchanged.
type TaskUpdateInput struct {
	Title       *string
	Description *string
	Status      *model.Status
	Priority    *model.Priority
	Type        *model.TaskType
	Deadline    *time.Time
}

// BulkPatch holds the fields a bulk update may change. Zero values mean
// "leave unchanged"; title, slug and description are never touched in bulk.
type BulkPatch struct {
	Status   model.Status
	Priority model.Priority
	Type     model.TaskType
}

// DeleteOutcome reports the result of one id within a bulk delete. Err is
// nil on success, ErrTaskNotFound when the id was already gone, and a
// wrapped store error otherwise.
type DeleteOutcome struct {
	ID  string
	Err error
}

// TaskService wraps task mutations: validation, slug uniqueness, and cache
// invalidation after every successful write.
type TaskService struct {
	taskRepo   *repository.TaskRepository
	authorRepo *repository.AuthorRepository
	cache      *cache.Cache
	logger     *log.Logger
}

func NewTaskService(taskRepo *repository.TaskRepository, authorRepo *repository.AuthorRepository, c *cache.Cache, logger *log.Logger) *TaskService {
	return &TaskService{taskRepo: taskRepo, authorRepo: authorRepo, cache: c, logger: logger}
}

// Create validates the input, derives the slug, and inserts the task
// attached to the given author. The author is a required input; there is no
// implicit default account.
func (s *TaskService) Create(ctx context.Context, input TaskCreateInput) (*model.Task, error) {
	fields := fieldErrors{}
	validateTitle(fields, input.Title)
	validateDescription(fields, input.Description)
	if !input.Status.IsValid() {
		fields.add("status", fmt.Sprintf("must be one of %v", model.ValidStatuses()))
	}
	if !input.Priority.IsValid() {
		fields.add("priority", fmt.Sprintf("must be one of %v", model.ValidPriorities()))
	}
	if !input.Type.IsValid() {
		fields.add("type", fmt.Sprintf("must be one of %v", model.ValidTaskTypes()))
	}
	if input.AuthorID == "" {
		fields.add("authorId", "is required")
	}
	if err := fields.err(); err != nil {
		return nil, err
	}

	if _, err := s.authorRepo.FindByID(ctx, input.AuthorID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAuthorNotFound
		}
		return nil, fmt.Errorf("find author: %w", err)
	}

	slug := model.Slugify(input.Title)
	if err := s.checkSlugFree(ctx, slug, ""); err != nil {
		return nil, err
	}

	task := &model.Task{
		ID:          uuid.NewString(),
		Title:       input.Title,
		Slug:        slug,
		Description: input.Description,
		Status:      input.Status,
		Priority:    input.Priority,
		Type:        input.Type,
		AuthorID:    input.AuthorID,
		Deadline:    input.Deadline,
	}
	if err := s.taskRepo.Create(ctx, task); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateSlug
		}
		return nil, err
	}

	s.cache.InvalidatePrefix(taskKeyPrefix)
	return task, nil
}

// Update applies a partial update. When the title changes, the slug is
// recomputed and checked against every other task.
func (s *TaskService) Update(ctx context.Context, id string, input TaskUpdateInput) (*model.Task, error) {
	fields := fieldErrors{}
	if input.Title != nil {
		validateTitle(fields, *input.Title)
	}
	if input.Description != nil {
		validateDescription(fields, *input.Description)
	}
	if input.Status != nil && !input.Status.IsValid() {
		fields.add("status", fmt.Sprintf("must be one of %v", model.ValidStatuses()))
	}
	if input.Priority != nil && !input.Priority.IsValid() {
		fields.add("priority", fmt.Sprintf("must be one of %v", model.ValidPriorities()))
	}
	if input.Type != nil && !input.Type.IsValid() {
		fields.add("type", fmt.Sprintf("must be one of %v", model.ValidTaskTypes()))
	}
	if err := fields.err(); err != nil {
		return nil, err
	}

	task, err := s.taskRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("find task: %w", err)
	}

	if input.Title != nil {
		slug := model.Slugify(*input.Title)
		if err := s.checkSlugFree(ctx, slug, id); err != nil {
			return nil, err
		}
		task.Title = *input.Title
		task.Slug = slug
	}
	if input.Description != nil {
		task.Description = *input.Description
	}
	if input.Status != nil {
		task.Status = *input.Status
	}
	if input.Priority != nil {
		task.Priority = *input.Priority
	}
	if input.Type != nil {
		task.Type = *input.Type
	}
	if input.Deadline != nil {
		task.Deadline = input.Deadline
	}

	if err := s.taskRepo.Save(ctx, task); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateSlug
		}
		return nil, err
	}

	s.cache.InvalidatePrefix(taskKeyPrefix)
	return task, nil
}

// BulkUpdate applies the patch to every id in one batched store call and
// returns how many rows were touched. IDs are required; patch fields left
// at their zero value are omitted from the update.
func (s *TaskService) BulkUpdate(ctx context.Context, ids []string, patch BulkPatch) (int64, error) {
	fields := fieldErrors{}
	if len(ids) == 0 {
		fields.add("ids", "at least one id is required")
	}
	if patch.Status != "" && !patch.Status.IsValid() {
		fields.add("status", fmt.Sprintf("must be one of %v", model.ValidStatuses()))
	}
	if patch.Priority != "" && !patch.Priority.IsValid() {
		fields.add("priority", fmt.Sprintf("must be one of %v", model.ValidPriorities()))
	}
	if patch.Type != "" && !patch.Type.IsValid() {
		fields.add("type", fmt.Sprintf("must be one of %v", model.ValidTaskTypes()))
	}
	if err := fields.err(); err != nil {
		return 0, err
	}

	updates := map[string]any{}
	if patch.Status != "" {
		updates["status"] = patch.Status
	}
	if patch.Priority != "" {
		updates["priority"] = patch.Priority
	}
	if patch.Type != "" {
		updates["type"] = patch.Type
	}
	if len(updates) == 0 {
		// Nothing to change; skip the store entirely.
		return 0, nil
	}

	n, err := s.taskRepo.UpdateMany(ctx, ids, updates)
	if err != nil {
		return 0, err
	}

	s.cache.InvalidatePrefix(taskKeyPrefix)
	return n, nil
}

// Delete removes a task permanently. A second delete of the same id reports
// ErrTaskNotFound, not a generic failure.
func (s *TaskService) Delete(ctx context.Context, id string) error {
	if err := s.taskRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTaskNotFound
		}
		return err
	}

	s.cache.InvalidatePrefix(taskKeyPrefix)
	return nil
}

// BulkDelete removes each id independently and reports a per-id outcome, so
// a partial failure is observable and the caller can retry just the failed
// subset. There is no rollback across ids.
func (s *TaskService) BulkDelete(ctx context.Context, ids []string) ([]DeleteOutcome, error) {
	if len(ids) == 0 {
		return nil, &ValidationError{Fields: map[string]string{"ids": "at least one id is required"}}
	}

	outcomes := make([]DeleteOutcome, 0, len(ids))
	deleted := 0
	for _, id := range ids {
		err := s.taskRepo.Delete(ctx, id)
		switch {
		case err == nil:
			deleted++
		case errors.Is(err, gorm.ErrRecordNotFound):
			err = ErrTaskNotFound
			s.logger.Printf("bulk delete: task %s not found", id)
		default:
			s.logger.Printf("bulk delete: task %s: %v", id, err)
		}
		outcomes = append(outcomes, DeleteOutcome{ID: id, Err: err})
	}

	if deleted > 0 {
		s.cache.InvalidatePrefix(taskKeyPrefix)
	}
	return outcomes, nil
}

// InvalidateQueries drops every cached task query. For maintenance paths
// that write to the store outside the normal mutation surface.
func (s *TaskService) InvalidateQueries() {
	s.cache.InvalidatePrefix(taskKeyPrefix)
}

// checkSlugFree rejects the slug if another task (any task when selfID is
// empty) already uses it.
func (s *TaskService) checkSlugFree(ctx context.Context, slug, selfID string) error {
	existing, err := s.taskRepo.FindBySlug(ctx, slug)
	switch {
	case err == nil:
		if existing.ID != selfID {
			return ErrDuplicateSlug
		}
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil
	default:
		return fmt.Errorf("check slug: %w", err)
	}
}

func validateTitle(fields fieldErrors, title string) {
	if title == "" {
		fields.add("title", "is required")
		return
	}
	if len(title) > model.MaxTitleLength {
		fields.add("title", fmt.Sprintf("must be at most %d characters", model.MaxTitleLength))
	}
}

func validateDescription(fields fieldErrors, description string) {
	if len(description) > model.MaxDescriptionLength {
		fields.add("description", fmt.Sprintf("must be at most %d characters", model.MaxDescriptionLength))
	}
}
