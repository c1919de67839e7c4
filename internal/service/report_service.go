package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"taskboard/internal/model"
	"taskboard/internal/repository"
)

// ReportService builds human-readable summaries of overdue work for the
// daily log report.
type ReportService struct {
	taskRepo *repository.TaskRepository
}

func NewReportService(taskRepo *repository.TaskRepository) *ReportService {
	return &ReportService{taskRepo: taskRepo}
}

// OverdueSummary lists unfinished tasks whose deadline has passed, grouped
// by author and ordered by how overdue they are. Returns an empty string
// when nothing is overdue.
func (s *ReportService) OverdueSummary(ctx context.Context, now time.Time) (string, error) {
	tasks, err := s.taskRepo.ListOverdue(ctx, now)
	if err != nil {
		return "", err
	}
	if len(tasks) == 0 {
		return "", nil
	}

	byAuthor := make(map[string][]model.Task)
	for _, task := range tasks {
		name := "(unassigned)"
		if task.Author != nil {
			name = task.Author.Name
		}
		byAuthor[name] = append(byAuthor[name], task)
	}

	names := make([]string, 0, len(byAuthor))
	for name := range byAuthor {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	fmt.Fprintf(&b, "%d overdue task(s):\n", len(tasks))
	for _, name := range names {
		fmt.Fprintf(&b, "%s:\n", name)
		for _, task := range byAuthor[name] {
			days := int(now.Sub(*task.Deadline).Hours() / 24)
			fmt.Fprintf(&b, "  - %s [%s/%s] overdue by %dd\n", task.Title, task.Status, task.Priority, days)
		}
	}
	return b.String(), nil
}
