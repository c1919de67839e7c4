package service

import (
	"context"
	"errors"
	"io"
	"log"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"

	"taskboard/internal/cache"
	"taskboard/internal/model"
	"taskboard/internal/repository"
)

type queryEnv struct {
	testEnv
	taskRepo *repository.TaskRepository
	db       interface{ Close() error }
}

func newQueryEnv(t *testing.T) *queryEnv {
	t.Helper()

	db, err := repository.NewDB(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unwrap db: %v", err)
	}

	c := cache.New(time.Minute)
	taskRepo := repository.NewTaskRepository(db, otel.Tracer("test"))
	authorRepo := repository.NewAuthorRepository(db)

	author := &model.Author{ID: uuid.NewString(), Name: "Alice", Email: "alice@test.local", Role: model.RoleManager}
	if err := authorRepo.Create(context.Background(), author); err != nil {
		t.Fatalf("create author: %v", err)
	}

	return &queryEnv{
		testEnv: testEnv{
			tasks:   NewTaskService(taskRepo, authorRepo, c, log.New(io.Discard, "", 0)),
			query:   NewQueryService(taskRepo, c),
			authors: NewAuthorService(authorRepo),
			cache:   c,
			author:  author,
		},
		taskRepo: taskRepo,
		db:       sqlDB,
	}
}

// insertDirect writes to the store without going through the mutation
// service, so the query cache is not invalidated.
func (e *queryEnv) insertDirect(t *testing.T, title string) {
	t.Helper()

	task := &model.Task{
		ID:       uuid.NewString(),
		Title:    title,
		Slug:     model.Slugify(title),
		Status:   model.StatusTodo,
		Priority: model.PriorityMedium,
		Type:     model.TypeFeature,
		AuthorID: e.author.ID,
	}
	if err := e.taskRepo.Create(context.Background(), task); err != nil {
		t.Fatalf("insert direct: %v", err)
	}
}

func TestListServesFromCacheUntilInvalidated(t *testing.T) {
	env := newQueryEnv(t)
	ctx := context.Background()

	env.insertDirect(t, "first")

	got, err := env.query.List(ctx, model.TaskFilter{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d tasks, want 1", len(got))
	}

	// A write that bypasses the mutation service leaves the cache stale.
	env.insertDirect(t, "second")
	got, err = env.query.List(ctx, model.TaskFilter{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected cached page of 1 task, got %d", len(got))
	}

	// A mutation through the service invalidates every task query.
	if _, err := env.tasks.Create(ctx, TaskCreateInput{
		Title: "third", Status: model.StatusTodo, Priority: model.PriorityLow,
		Type: model.TypeBug, AuthorID: env.author.ID,
	}); err != nil {
		t.Fatalf("create: %v", err)
	}
	got, err = env.query.List(ctx, model.TaskFilter{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected fresh page of 3 tasks after invalidation, got %d", len(got))
	}
}

func TestCountSharesPredicateWithList(t *testing.T) {
	env := newQueryEnv(t)
	ctx := context.Background()

	env.insertDirect(t, "alpha bug")
	env.insertDirect(t, "beta bug")
	env.insertDirect(t, "gamma feature")

	filter := model.TaskFilter{Search: "bug", Limit: 1}
	page, err := env.query.List(ctx, filter)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	count, err := env.query.Count(ctx, filter)
	if err != nil {
		t.Fatalf("count: %v", err)
	}

	if len(page) != 1 {
		t.Fatalf("page size = %d, want 1", len(page))
	}
	if count != 2 {
		t.Fatalf("count = %d, want 2 (pagination must not affect the count)", count)
	}
}

func TestDistinctFiltersGetDistinctCacheEntries(t *testing.T) {
	env := newQueryEnv(t)
	ctx := context.Background()

	env.insertDirect(t, "only todo")

	todo, err := env.query.List(ctx, model.TaskFilter{Status: model.StatusTodo})
	if err != nil {
		t.Fatalf("list todo: %v", err)
	}
	done, err := env.query.List(ctx, model.TaskFilter{Status: model.StatusDone})
	if err != nil {
		t.Fatalf("list done: %v", err)
	}

	if len(todo) != 1 || len(done) != 0 {
		t.Fatalf("todo=%d done=%d; a shared cache entry would make these agree", len(todo), len(done))
	}
}

func TestFiltersDifferingAroundDelimiterStayDistinct(t *testing.T) {
	env := newQueryEnv(t)
	ctx := context.Background()

	task := &model.Task{
		ID:       uuid.NewString(),
		Title:    "a| marks the spot",
		Slug:     model.Slugify("a| marks the spot"),
		Status:   model.StatusDone,
		Priority: model.PriorityMedium,
		Type:     model.TypeFeature,
		AuthorID: env.author.ID,
	}
	if err := env.taskRepo.Create(ctx, task); err != nil {
		t.Fatalf("create: %v", err)
	}

	// Both filters would fingerprint identically if values ran into the key
	// delimiter; only the first one matches the task.
	matching := model.TaskFilter{Search: "a|", Status: model.StatusDone}
	shifted := model.TaskFilter{Search: "a", Status: model.Status("|DONE")}

	got, err := env.query.List(ctx, matching)
	if err != nil {
		t.Fatalf("list matching: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("matching filter returned %d tasks, want 1", len(got))
	}

	got, err = env.query.List(ctx, shifted)
	if err != nil {
		t.Fatalf("list shifted: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("shifted filter was served %d tasks from another filter's entry, want 0", len(got))
	}
}

func TestReturnedTasksAreDetachedFromCache(t *testing.T) {
	env := newQueryEnv(t)
	ctx := context.Background()

	env.insertDirect(t, "stable title")

	first, err := env.query.List(ctx, model.TaskFilter{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(first) != 1 || first[0].Author == nil {
		t.Fatalf("first page = %+v", first)
	}
	first[0].Title = "mangled"
	first[0].Author.Name = "mangled"

	second, err := env.query.List(ctx, model.TaskFilter{})
	if err != nil {
		t.Fatalf("list again: %v", err)
	}
	if second[0].Title != "stable title" {
		t.Errorf("cached title = %q, caller mutation leaked into the cache", second[0].Title)
	}
	if second[0].Author.Name != "Alice" {
		t.Errorf("cached author = %q, caller mutation leaked into the cache", second[0].Author.Name)
	}

	slug := model.Slugify("stable title")
	bySlug, err := env.query.GetBySlug(ctx, slug)
	if err != nil {
		t.Fatalf("get by slug: %v", err)
	}
	bySlug.Title = "mangled"

	again, err := env.query.GetBySlug(ctx, slug)
	if err != nil {
		t.Fatalf("get by slug again: %v", err)
	}
	if again.Title != "stable title" {
		t.Errorf("cached title = %q, caller mutation leaked into the cache", again.Title)
	}
}

func TestQueryErrorsPropagate(t *testing.T) {
	env := newQueryEnv(t)
	ctx := context.Background()

	// Closing the underlying store must surface as an error, never as an
	// empty page or a zero count.
	if err := env.db.Close(); err != nil {
		t.Fatalf("close db: %v", err)
	}

	if _, err := env.query.List(ctx, model.TaskFilter{}); err == nil {
		t.Error("List must propagate store failures")
	}
	if _, err := env.query.Count(ctx, model.TaskFilter{}); err == nil {
		t.Error("Count must propagate store failures")
	}
}

func TestGetBySlugNotFound(t *testing.T) {
	env := newQueryEnv(t)

	_, err := env.query.GetBySlug(context.Background(), "no-such-slug")
	if !errors.Is(err, ErrTaskNotFound) {
		t.Fatalf("err = %v, want ErrTaskNotFound", err)
	}
}
