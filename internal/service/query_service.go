package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"taskboard/internal/cache"
	"taskboard/internal/model"
	"taskboard/internal/repository"
)

// QueryService serves reads through the query cache. Store failures are
// returned as errors, never collapsed into an empty page or a zero count, so
// callers can tell "no matches" from "query failed". Returned tasks are
// copies detached from the cached instances; mutating them does not corrupt
// what later callers are served.
type QueryService struct {
	taskRepo *repository.TaskRepository
	cache    *cache.Cache
}

func NewQueryService(taskRepo *repository.TaskRepository, c *cache.Cache) *QueryService {
	return &QueryService{taskRepo: taskRepo, cache: c}
}

// List returns one filtered, sorted page of tasks with their authors.
func (s *QueryService) List(ctx context.Context, f model.TaskFilter) ([]model.Task, error) {
	key := filterKey("tasks|list", f)
	if v, ok := s.cache.Get(key); ok {
		return cloneTasks(v.([]model.Task)), nil
	}

	tasks, err := s.taskRepo.List(ctx, f)
	if err != nil {
		return nil, err
	}

	s.cache.Set(key, tasks)
	return cloneTasks(tasks), nil
}

// Count returns the unpaged total under the same predicates as List.
func (s *QueryService) Count(ctx context.Context, f model.TaskFilter) (int64, error) {
	key := filterKey("tasks|count", f.WithoutPaging())
	if v, ok := s.cache.Get(key); ok {
		return v.(int64), nil
	}

	n, err := s.taskRepo.Count(ctx, f)
	if err != nil {
		return 0, err
	}

	s.cache.Set(key, n)
	return n, nil
}

// GetBySlug looks a task up by its slug.
func (s *QueryService) GetBySlug(ctx context.Context, slug string) (*model.Task, error) {
	key := cache.Key("tasks|slug", slug)
	if v, ok := s.cache.Get(key); ok {
		t := cloneTask(*v.(*model.Task))
		return &t, nil
	}

	task, err := s.taskRepo.FindBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("find task by slug: %w", err)
	}

	s.cache.Set(key, task)
	t := cloneTask(*task)
	return &t, nil
}

// cloneTask copies a task, including the joined author, so cached instances
// are never handed out directly.
func cloneTask(t model.Task) model.Task {
	if t.Author != nil {
		author := *t.Author
		t.Author = &author
	}
	return t
}

func cloneTasks(tasks []model.Task) []model.Task {
	out := make([]model.Task, len(tasks))
	for i, t := range tasks {
		out[i] = cloneTask(t)
	}
	return out
}

// filterKey fingerprints a filter into a cache key under the given
// operation, so each (operation, filter) pair gets its own entry.
func filterKey(op string, f model.TaskFilter) string {
	date := ""
	if f.Date != nil {
		date = f.Date.Format("2006-01-02Z07:00")
	}
	return cache.Key(op,
		f.Search, f.Status, f.Priority, f.Type, f.AuthorID, date,
		f.SortField, f.SortOrder, f.Limit, f.Offset)
}
