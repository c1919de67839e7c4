package model

import (
	"regexp"
	"strings"
	"time"
)

// Field length limits enforced on create and update.
const (
	MaxTitleLength       = 100
	MaxDescriptionLength = 1000
)

// Task represents a single item on the board.
type Task struct {
	ID          string     `gorm:"primaryKey" json:"id"`
	Title       string     `gorm:"size:100" json:"title"`
	Slug        string     `gorm:"uniqueIndex" json:"slug"`
	Description string     `gorm:"size:1000" json:"description"`
	Status      Status     `gorm:"index" json:"status"`
	Priority    Priority   `gorm:"index" json:"priority"`
	Type        TaskType   `gorm:"index" json:"type"`
	AuthorID    string     `gorm:"index" json:"authorId"`
	Author      *Author    `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	Deadline    *time.Time `json:"deadline,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

var whitespaceRun = regexp.MustCompile(`\s+`)

// Slugify derives a task's slug from its title: lowercased, with every run
// of whitespace collapsed into a single hyphen.
func Slugify(title string) string {
	return strings.ToLower(whitespaceRun.ReplaceAllString(title, "-"))
}
