package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"taskboard/internal/model"
)

// TaskRepository handles storage access for tasks. Listing and counting share
// one predicate builder so a page and its accompanying count can never
// disagree on what matches.
type TaskRepository struct {
	db     *gorm.DB
	tracer trace.Tracer
}

func NewTaskRepository(db *gorm.DB, tracer trace.Tracer) *TaskRepository {
	return &TaskRepository{db: db, tracer: tracer}
}

// applyFilter translates the optional predicates of a TaskFilter into WHERE
// clauses. Zero values add no constraint; all constraints combine with AND,
// except the search text which matches title OR description.
func applyFilter(db *gorm.DB, f model.TaskFilter) *gorm.DB {
	if f.Search != "" {
		pattern := "%" + strings.ToLower(f.Search) + "%"
		db = db.Where("(lower(title) LIKE ? OR lower(description) LIKE ?)", pattern, pattern)
	}
	if f.Status != "" {
		db = db.Where("status = ?", f.Status)
	}
	if f.Priority != "" {
		db = db.Where("priority = ?", f.Priority)
	}
	if f.Type != "" {
		db = db.Where("type = ?", f.Type)
	}
	if f.AuthorID != "" {
		db = db.Where("author_id = ?", f.AuthorID)
	}
	if f.Date != nil {
		// Calendar-day window in the date's own location: inclusive start
		// of day, exclusive start of the next day.
		y, m, d := f.Date.Date()
		start := time.Date(y, m, d, 0, 0, 0, 0, f.Date.Location())
		db = db.Where("created_at >= ? AND created_at < ?", start, start.AddDate(0, 0, 1))
	}
	return db
}

// orderClause resolves the sort directive to a SQL ORDER BY, falling back to
// the defaults for unset fields. id is always appended as a secondary key so
// pagination stays deterministic when the sort column has duplicate values.
func orderClause(f model.TaskFilter) (string, error) {
	field := f.SortField
	if field == "" {
		field = model.DefaultSortField
	}
	if !model.IsSortableField(field) {
		return "", fmt.Errorf("unsortable field %q", field)
	}

	order := f.SortOrder
	switch order {
	case "":
		order = model.DefaultSortOrder
	case model.SortAsc, model.SortDesc:
	default:
		return "", fmt.Errorf("invalid sort order %q", order)
	}

	return fmt.Sprintf("%s %s, id ASC", field, strings.ToUpper(string(order))), nil
}

// List returns one page of tasks matching the filter, joined with their
// author, sorted and paginated per the filter's directives.
func (r *TaskRepository) List(ctx context.Context, f model.TaskFilter) ([]model.Task, error) {
	ctx, span := r.tracer.Start(ctx, "TaskRepository.List")
	defer span.End()

	order, err := orderClause(f)
	if err != nil {
		return nil, err
	}

	db := applyFilter(r.db.WithContext(ctx).Model(&model.Task{}), f).
		Preload("Author").
		Order(order)
	if f.Offset > 0 {
		db = db.Offset(f.Offset)
	}
	if f.Limit > 0 {
		db = db.Limit(f.Limit)
	}

	var tasks []model.Task
	if err := db.Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return tasks, nil
}

// Count returns the unpaged number of tasks matching the filter. Sort and
// pagination directives are ignored; the predicates are exactly those List
// applies.
func (r *TaskRepository) Count(ctx context.Context, f model.TaskFilter) (int64, error) {
	ctx, span := r.tracer.Start(ctx, "TaskRepository.Count")
	defer span.End()

	var n int64
	if err := applyFilter(r.db.WithContext(ctx).Model(&model.Task{}), f.WithoutPaging()).
		Count(&n).Error; err != nil {
		return 0, fmt.Errorf("count tasks: %w", err)
	}
	return n, nil
}

func (r *TaskRepository) FindByID(ctx context.Context, id string) (*model.Task, error) {
	var task model.Task
	if err := r.db.WithContext(ctx).Preload("Author").Where("id = ?", id).First(&task).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

func (r *TaskRepository) FindBySlug(ctx context.Context, slug string) (*model.Task, error) {
	var task model.Task
	if err := r.db.WithContext(ctx).Preload("Author").Where("slug = ?", slug).First(&task).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

func (r *TaskRepository) Create(ctx context.Context, task *model.Task) error {
	ctx, span := r.tracer.Start(ctx, "TaskRepository.Create")
	defer span.End()

	if err := r.db.WithContext(ctx).Create(task).Error; err != nil {
		return fmt.Errorf("create task: %w", err)
	}
	return nil
}

func (r *TaskRepository) Save(ctx context.Context, task *model.Task) error {
	ctx, span := r.tracer.Start(ctx, "TaskRepository.Save")
	defer span.End()

	if err := r.db.WithContext(ctx).Save(task).Error; err != nil {
		return fmt.Errorf("save task: %w", err)
	}
	return nil
}

// UpdateMany applies the same column values to every id in one batched store
// call and reports how many rows it touched.
func (r *TaskRepository) UpdateMany(ctx context.Context, ids []string, updates map[string]any) (int64, error) {
	ctx, span := r.tracer.Start(ctx, "TaskRepository.UpdateMany")
	defer span.End()

	res := r.db.WithContext(ctx).Model(&model.Task{}).Where("id IN ?", ids).Updates(updates)
	if res.Error != nil {
		return 0, fmt.Errorf("bulk update tasks: %w", res.Error)
	}
	return res.RowsAffected, nil
}

// ListOverdue returns unfinished tasks whose deadline has passed, oldest
// deadline first. Used by the daily overdue report.
func (r *TaskRepository) ListOverdue(ctx context.Context, now time.Time) ([]model.Task, error) {
	var tasks []model.Task
	err := r.db.WithContext(ctx).
		Preload("Author").
		Where("deadline IS NOT NULL AND deadline < ?", now).
		Where("status IN ?", []model.Status{model.StatusTodo, model.StatusInProgress}).
		Order("deadline ASC, id ASC").
		Find(&tasks).Error
	if err != nil {
		return nil, fmt.Errorf("list overdue tasks: %w", err)
	}
	return tasks, nil
}

// Delete removes a task. Returns gorm.ErrRecordNotFound when the id no
// longer exists, so callers can tell a lost race from a store failure.
func (r *TaskRepository) Delete(ctx context.Context, id string) error {
	ctx, span := r.tracer.Start(ctx, "TaskRepository.Delete")
	defer span.End()

	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Task{})
	if res.Error != nil {
		return fmt.Errorf("delete task: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
