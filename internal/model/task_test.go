package model

import "testing"

func TestSlugify(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"Fix Login Bug", "fix-login-bug"},
		{"Fix   Login Bug", "fix-login-bug"},
		{"UPPERCASE", "uppercase"},
		{"already-hyphenated", "already-hyphenated"},
		{"tabs\tand\nnewlines", "tabs-and-newlines"},
		{"single", "single"},
	}

	for _, tt := range tests {
		if got := Slugify(tt.title); got != tt.want {
			t.Errorf("Slugify(%q) = %q, want %q", tt.title, got, tt.want)
		}
	}
}

func TestSlugifyDeterministic(t *testing.T) {
	title := "Some   Task  Title"
	first := Slugify(title)
	for i := 0; i < 10; i++ {
		if got := Slugify(title); got != first {
			t.Fatalf("Slugify not deterministic: %q vs %q", got, first)
		}
	}
}

func TestEnumValidity(t *testing.T) {
	for _, s := range ValidStatuses() {
		if !s.IsValid() {
			t.Errorf("status %q should be valid", s)
		}
	}
	if Status("URGENT").IsValid() {
		t.Error("unknown status should be invalid")
	}

	for _, p := range ValidPriorities() {
		if !p.IsValid() {
			t.Errorf("priority %q should be valid", p)
		}
	}
	if Priority("low").IsValid() {
		t.Error("priorities are case-sensitive")
	}

	for _, tt := range ValidTaskTypes() {
		if !tt.IsValid() {
			t.Errorf("type %q should be valid", tt)
		}
	}
	if TaskType("CHORE").IsValid() {
		t.Error("unknown type should be invalid")
	}

	for _, r := range ValidRoles() {
		if !r.IsValid() {
			t.Errorf("role %q should be valid", r)
		}
	}
	if Role("GUEST").IsValid() {
		t.Error("unknown role should be invalid")
	}
}

func TestIsSortableField(t *testing.T) {
	for _, field := range SortableFields() {
		if !IsSortableField(field) {
			t.Errorf("field %q should be sortable", field)
		}
	}
	for _, field := range []string{"slug", "id; DROP TABLE tasks", "author_id", ""} {
		if IsSortableField(field) {
			t.Errorf("field %q should not be sortable", field)
		}
	}
}

func TestFilterWithoutPaging(t *testing.T) {
	f := TaskFilter{
		Search:    "bug",
		Status:    StatusTodo,
		SortField: "title",
		SortOrder: SortAsc,
		Limit:     10,
		Offset:    20,
	}

	got := f.WithoutPaging()
	if got.Search != "bug" || got.Status != StatusTodo {
		t.Error("WithoutPaging must keep predicates")
	}
	if got.SortField != "" || got.SortOrder != "" || got.Limit != 0 || got.Offset != 0 {
		t.Errorf("WithoutPaging must clear sort and pagination, got %+v", got)
	}
	if f.Limit != 10 {
		t.Error("WithoutPaging must not mutate the receiver")
	}
}
