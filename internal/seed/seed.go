// Package seed loads the demo dataset: four authors with a spread of tasks
// across every status, priority and type, enough to exercise each filter
// combination from the UI.
package seed

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"taskboard/internal/model"
)

type seedTask struct {
	title       string
	description string
	status      model.Status
	priority    model.Priority
	taskType    model.TaskType
}

type seedAuthor struct {
	name  string
	email string
	role  model.Role
	tasks []seedTask
}

var authors = []seedAuthor{
	{
		name: "Alice", email: "alice@taskboard.local", role: model.RoleManager,
		tasks: []seedTask{
			{"Task001", "Added new sidebar UI", model.StatusInProgress, model.PriorityMedium, model.TypeEnhancement},
			{"Task002", "Fix login flow bug", model.StatusTodo, model.PriorityHigh, model.TypeBug},
			{"Task003", "Prepare marketing campaign", model.StatusDone, model.PriorityLow, model.TypeOther},
			{"Task004", "Refactor payment module", model.StatusInProgress, model.PriorityHigh, model.TypeEnhancement},
			{"Task005", "Write unit tests for API", model.StatusCanceled, model.PriorityMedium, model.TypeDocumentation},
			{"Task006", "Update documentation", model.StatusTodo, model.PriorityLow, model.TypeDocumentation},
		},
	},
	{
		name: "Bob", email: "bob@taskboard.local", role: model.RoleAdmin,
		tasks: []seedTask{
			{"Task007", "Design new landing page", model.StatusTodo, model.PriorityHigh, model.TypeEnhancement},
			{"Task008", "Fix navbar responsiveness", model.StatusInProgress, model.PriorityMedium, model.TypeBug},
			{"Task009", "Optimize database queries", model.StatusDone, model.PriorityHigh, model.TypeEnhancement},
		},
	},
	{
		name: "Michal", email: "michal@taskboard.local", role: model.RoleUser,
		tasks: []seedTask{
			{"Task010", "Setup CI/CD pipeline", model.StatusTodo, model.PriorityHigh, model.TypeFeature},
			{"Task011", "Improve logging system", model.StatusInProgress, model.PriorityMedium, model.TypeEnhancement},
			{"Task012", "Fix bug in notification module", model.StatusTodo, model.PriorityHigh, model.TypeBug},
		},
	},
	{
		name: "Patric", email: "patric@taskboard.local", role: model.RoleDeveloper,
		tasks: []seedTask{
			{"Task013", "Draft API documentation", model.StatusInProgress, model.PriorityMedium, model.TypeDocumentation},
			{"Task014", "Refactor auth logic", model.StatusDone, model.PriorityHigh, model.TypeEnhancement},
			{"Task015", "Test new payment gateway", model.StatusTodo, model.PriorityLow, model.TypeFeature},
		},
	},
}

// Load inserts the demo authors and their tasks. It is not idempotent; call
// Reset first when re-seeding an existing database.
func Load(ctx context.Context, db *gorm.DB) error {
	for _, a := range authors {
		author := model.Author{
			ID:    uuid.NewString(),
			Name:  a.name,
			Email: a.email,
			Role:  a.role,
		}
		if err := db.WithContext(ctx).Create(&author).Error; err != nil {
			return fmt.Errorf("seed author %s: %w", a.name, err)
		}

		for _, t := range a.tasks {
			task := model.Task{
				ID:          uuid.NewString(),
				Title:       t.title,
				Slug:        model.Slugify(t.title),
				Description: t.description,
				Status:      t.status,
				Priority:    t.priority,
				Type:        t.taskType,
				AuthorID:    author.ID,
			}
			if err := db.WithContext(ctx).Create(&task).Error; err != nil {
				return fmt.Errorf("seed task %s: %w", t.title, err)
			}
		}
	}
	return nil
}

// Reset drops all tasks and authors, then reloads the demo dataset.
func Reset(ctx context.Context, db *gorm.DB) error {
	if err := db.WithContext(ctx).Where("1 = 1").Delete(&model.Task{}).Error; err != nil {
		return fmt.Errorf("clear tasks: %w", err)
	}
	if err := db.WithContext(ctx).Where("1 = 1").Delete(&model.Author{}).Error; err != nil {
		return fmt.Errorf("clear authors: %w", err)
	}
	return Load(ctx, db)
}
