package model

import "time"

// SortOrder is the direction of a sort.
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// Default sort applied when a filter leaves sorting unset.
const (
	DefaultSortField = "created_at"
	DefaultSortOrder = SortDesc
	DefaultPageSize  = 10
)

// TaskFilter represents optional predicates for listing tasks.
// Zero values mean the filter is not applied. All predicates combine with
// AND; Search alone matches against title OR description, case-insensitively.
// This struct lives in model for reuse by the repository, service and server
// layers.
type TaskFilter struct {
	// Search is a case-insensitive substring matched against title or
	// description. Empty matches everything.
	Search string

	Status   Status
	Priority Priority
	Type     TaskType
	AuthorID string

	// Date restricts results to tasks created within that calendar day,
	// [00:00:00, next day 00:00:00), in the Date value's own location.
	Date *time.Time

	// SortField must be one of the sortable columns; empty means created_at.
	// The repository always appends id as a secondary key so pagination is
	// deterministic when the sort field has duplicate values.
	SortField string
	SortOrder SortOrder

	Limit  int
	Offset int
}

// WithoutPaging returns a copy of the filter with sort and pagination
// cleared, so counts share the exact predicate set of the page they
// accompany.
func (f TaskFilter) WithoutPaging() TaskFilter {
	f.SortField = ""
	f.SortOrder = ""
	f.Limit = 0
	f.Offset = 0
	return f
}

// SortableFields lists the columns a filter may sort by.
func SortableFields() []string {
	return []string{"created_at", "title", "status", "priority", "type", "deadline"}
}

// IsSortableField reports whether the given column may be sorted by.
func IsSortableField(field string) bool {
	for _, valid := range SortableFields() {
		if field == valid {
			return true
		}
	}
	return false
}
