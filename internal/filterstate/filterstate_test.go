package filterstate

import (
	"sync"
	"testing"
	"time"

	"taskboard/internal/model"
)

func TestNewDefaults(t *testing.T) {
	s := New(0)
	if s.Filter.Limit != model.DefaultPageSize {
		t.Fatalf("limit = %d, want default %d", s.Filter.Limit, model.DefaultPageSize)
	}
	if s.Generation != 0 {
		t.Fatalf("generation = %d, want 0", s.Generation)
	}
}

func TestFilterChangeResetsPageAndBumpsGeneration(t *testing.T) {
	s := New(10)
	s = Reduce(s, SetPage{Page: 3})
	if s.Filter.Offset != 30 {
		t.Fatalf("offset = %d, want 30", s.Filter.Offset)
	}
	gen := s.Generation

	s = Reduce(s, SetSearch{Text: "bug"})
	if s.Filter.Search != "bug" {
		t.Fatalf("search = %q", s.Filter.Search)
	}
	if s.Filter.Offset != 0 {
		t.Error("changing a predicate must reset the page position")
	}
	if s.Generation <= gen {
		t.Error("changing a predicate must supersede in-flight queries")
	}
}

func TestRedundantActionsAreNoOps(t *testing.T) {
	s := New(10)
	s = Reduce(s, SetStatus{Status: model.StatusDone})
	gen := s.Generation

	s = Reduce(s, SetStatus{Status: model.StatusDone})
	if s.Generation != gen {
		t.Error("re-applying the same status must not issue a new query")
	}

	s = Reduce(s, SetPage{Page: 0})
	if s.Generation != gen {
		t.Error("moving to the current page must not issue a new query")
	}
}

func TestSettingSameDateIsANoOp(t *testing.T) {
	day := time.Date(2026, 3, 10, 0, 0, 0, 0, time.Local)
	s := New(10)
	s = Reduce(s, SetDate{Date: &day})
	gen := s.Generation

	same := day
	s = Reduce(s, SetDate{Date: &same})
	if s.Generation != gen {
		t.Error("re-setting the same date must not issue a new query")
	}

	s = Reduce(s, SetDate{Date: nil})
	if s.Generation != gen+1 {
		t.Error("clearing the date is a predicate change")
	}
	gen = s.Generation

	s = Reduce(s, SetDate{Date: nil})
	if s.Generation != gen {
		t.Error("clearing an already clear date must not issue a new query")
	}
}

func TestSetPageKeepsPredicates(t *testing.T) {
	s := New(5)
	s = Reduce(s, SetSearch{Text: "api"})
	s = Reduce(s, SetPriority{Priority: model.PriorityHigh})
	gen := s.Generation

	s = Reduce(s, SetPage{Page: 2})
	if s.Filter.Search != "api" || s.Filter.Priority != model.PriorityHigh {
		t.Error("paging must not touch predicates")
	}
	if s.Filter.Offset != 10 {
		t.Fatalf("offset = %d, want 10", s.Filter.Offset)
	}
	if s.Generation != gen+1 {
		t.Error("a new page is a new query and needs a new generation")
	}

	s = Reduce(s, SetPage{Page: -1})
	if s.Filter.Offset != 0 {
		t.Error("negative pages clamp to the first page")
	}
}

func TestStaleResponsesAreRejected(t *testing.T) {
	s := New(10)
	s = Reduce(s, SetSearch{Text: "a"})
	inFlight := s.Generation

	// A newer keystroke supersedes the in-flight query.
	s = Reduce(s, SetSearch{Text: "ab"})

	if Accept(s, inFlight) {
		t.Error("response for a superseded query must be discarded")
	}
	if !Accept(s, s.Generation) {
		t.Error("response for the current query must be applied")
	}
}

func TestClearFiltersKeepsSortAndPageSize(t *testing.T) {
	day := time.Date(2026, 3, 10, 0, 0, 0, 0, time.Local)
	s := New(25)
	s = Reduce(s, SetSearch{Text: "x"})
	s = Reduce(s, SetStatus{Status: model.StatusDone})
	s = Reduce(s, SetType{Type: model.TypeBug})
	s = Reduce(s, SetDate{Date: &day})
	s = Reduce(s, SetSort{Field: "title", Order: model.SortAsc})

	s = Reduce(s, ClearFilters{})
	f := s.Filter
	if f.Search != "" || f.Status != "" || f.Priority != "" || f.Type != "" || f.Date != nil {
		t.Errorf("predicates not cleared: %+v", f)
	}
	if f.SortField != "title" || f.SortOrder != model.SortAsc {
		t.Error("clearing filters must keep the sort directive")
	}
	if f.Limit != 25 {
		t.Error("clearing filters must keep the page size")
	}
}

func TestReduceIsPure(t *testing.T) {
	s := New(10)
	before := s
	_ = Reduce(s, SetSearch{Text: "mutation?"})
	if s != before {
		t.Error("Reduce must not mutate its input state")
	}
}

func TestDebouncerCoalescesBursts(t *testing.T) {
	d := NewDebouncer(20 * time.Millisecond)

	var mu sync.Mutex
	calls := 0
	for i := 0; i < 5; i++ {
		d.Trigger(func() {
			mu.Lock()
			calls++
			mu.Unlock()
		})
		time.Sleep(2 * time.Millisecond)
	}

	time.Sleep(60 * time.Millisecond)
	mu.Lock()
	got := calls
	mu.Unlock()
	if got != 1 {
		t.Fatalf("burst of 5 triggers ran %d callbacks, want 1", got)
	}
}

func TestDebouncerStop(t *testing.T) {
	d := NewDebouncer(10 * time.Millisecond)

	fired := make(chan struct{}, 1)
	d.Trigger(func() { fired <- struct{}{} })
	d.Stop()

	select {
	case <-fired:
		t.Fatal("stopped debouncer still fired")
	case <-time.After(40 * time.Millisecond):
	}
}
