// Package filterstate models the filter controls of a task table view as a
// plain state struct plus a pure transition function, with no UI framework
// involved. Every transition that changes what matches resets the page to
// the start and bumps a generation counter; responses from superseded
// queries carry a stale generation and are discarded instead of overwriting
// newer results.
package filterstate

import (
	"time"

	"taskboard/internal/model"
)

// State holds the current filter controls of one view.
type State struct {
	Filter model.TaskFilter

	// Generation identifies the query this state would issue. A response
	// is only applied when its generation still matches.
	Generation uint64
}

// New returns the initial state for a view with the given page size.
func New(pageSize int) State {
	if pageSize <= 0 {
		pageSize = model.DefaultPageSize
	}
	return State{Filter: model.TaskFilter{Limit: pageSize}}
}

// Action is a tagged transition applied by Reduce.
type Action interface {
	apply(State) State
}

// Reduce applies an action and returns the next state. It is pure: the
// input state is never mutated.
func Reduce(s State, a Action) State { return a.apply(s) }

// Accept reports whether a response tagged with gen is still current.
func Accept(s State, gen uint64) bool { return s.Generation == gen }

// restart is shared by every filter-changing action: any predicate change
// invalidates the current page position and supersedes in-flight queries.
func restart(s State) State {
	s.Filter.Offset = 0
	s.Generation++
	return s
}

// SetSearch replaces the free-text search.
type SetSearch struct{ Text string }

func (a SetSearch) apply(s State) State {
	if s.Filter.Search == a.Text {
		return s
	}
	s.Filter.Search = a.Text
	return restart(s)
}

// SetStatus sets or clears the status filter (zero value clears).
type SetStatus struct{ Status model.Status }

func (a SetStatus) apply(s State) State {
	if s.Filter.Status == a.Status {
		return s
	}
	s.Filter.Status = a.Status
	return restart(s)
}

// SetPriority sets or clears the priority filter.
type SetPriority struct{ Priority model.Priority }

func (a SetPriority) apply(s State) State {
	if s.Filter.Priority == a.Priority {
		return s
	}
	s.Filter.Priority = a.Priority
	return restart(s)
}

// SetType sets or clears the type filter.
type SetType struct{ Type model.TaskType }

func (a SetType) apply(s State) State {
	if s.Filter.Type == a.Type {
		return s
	}
	s.Filter.Type = a.Type
	return restart(s)
}

// SetDate sets or clears (nil) the calendar-day filter.
type SetDate struct{ Date *time.Time }

func (a SetDate) apply(s State) State {
	if sameDate(s.Filter.Date, a.Date) {
		return s
	}
	s.Filter.Date = a.Date
	return restart(s)
}

func sameDate(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}

// SetSort changes the sort directive. Sorting re-orders the whole result
// set, so the page position restarts too.
type SetSort struct {
	Field string
	Order model.SortOrder
}

func (a SetSort) apply(s State) State {
	if s.Filter.SortField == a.Field && s.Filter.SortOrder == a.Order {
		return s
	}
	s.Filter.SortField = a.Field
	s.Filter.SortOrder = a.Order
	return restart(s)
}

// SetPage moves to the zero-based page index without touching predicates.
type SetPage struct{ Page int }

func (a SetPage) apply(s State) State {
	if a.Page < 0 {
		a.Page = 0
	}
	offset := a.Page * s.Filter.Limit
	if s.Filter.Offset == offset {
		return s
	}
	s.Filter.Offset = offset
	s.Generation++
	return s
}

// ClearFilters drops every predicate but keeps page size and sort.
type ClearFilters struct{}

func (ClearFilters) apply(s State) State {
	s.Filter.Search = ""
	s.Filter.Status = ""
	s.Filter.Priority = ""
	s.Filter.Type = ""
	s.Filter.Date = nil
	return restart(s)
}
