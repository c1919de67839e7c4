package seed

import (
	"context"
	"path/filepath"
	"testing"

	"taskboard/internal/model"
	"taskboard/internal/repository"
)

func TestLoadAndReset(t *testing.T) {
	db, err := repository.NewDB(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	ctx := context.Background()

	if err := Load(ctx, db); err != nil {
		t.Fatalf("load: %v", err)
	}

	var authorCount, taskCount int64
	if err := db.Model(&model.Author{}).Count(&authorCount).Error; err != nil {
		t.Fatalf("count authors: %v", err)
	}
	if err := db.Model(&model.Task{}).Count(&taskCount).Error; err != nil {
		t.Fatalf("count tasks: %v", err)
	}
	if authorCount != 4 {
		t.Errorf("authors = %d, want 4", authorCount)
	}
	if taskCount != 15 {
		t.Errorf("tasks = %d, want 15", taskCount)
	}

	// Every seeded slug follows the derivation rule and tasks land on
	// their author.
	var tasks []model.Task
	if err := db.Preload("Author").Find(&tasks).Error; err != nil {
		t.Fatalf("load tasks: %v", err)
	}
	for _, task := range tasks {
		if task.Slug != model.Slugify(task.Title) {
			t.Errorf("task %q slug = %q", task.Title, task.Slug)
		}
		if task.Author == nil {
			t.Errorf("task %q has no author", task.Title)
		}
	}

	// Reset replaces, not appends.
	if err := Reset(ctx, db); err != nil {
		t.Fatalf("reset: %v", err)
	}
	if err := db.Model(&model.Task{}).Count(&taskCount).Error; err != nil {
		t.Fatalf("recount tasks: %v", err)
	}
	if taskCount != 15 {
		t.Errorf("tasks after reset = %d, want 15", taskCount)
	}
}
