package model

// Status represents the workflow state of a task.
type Status string

const (
	StatusTodo       Status = "TODO"
	StatusInProgress Status = "IN_PROGRESS"
	StatusDone       Status = "DONE"
	StatusCanceled   Status = "CANCELED"
)

// ValidStatuses returns all valid status values.
func ValidStatuses() []Status {
	return []Status{StatusTodo, StatusInProgress, StatusDone, StatusCanceled}
}

// IsValid returns true if the status is a known value.
func (s Status) IsValid() bool {
	for _, valid := range ValidStatuses() {
		if s == valid {
			return true
		}
	}
	return false
}

// Priority represents how urgent a task is.
type Priority string

const (
	PriorityLow    Priority = "LOW"
	PriorityMedium Priority = "MEDIUM"
	PriorityHigh   Priority = "HIGH"
)

// ValidPriorities returns all valid priority values.
func ValidPriorities() []Priority {
	return []Priority{PriorityLow, PriorityMedium, PriorityHigh}
}

// IsValid returns true if the priority is a known value.
func (p Priority) IsValid() bool {
	for _, valid := range ValidPriorities() {
		if p == valid {
			return true
		}
	}
	return false
}

// TaskType categorizes the kind of work a task tracks.
type TaskType string

const (
	TypeBug           TaskType = "BUG"
	TypeFeature       TaskType = "FEATURE"
	TypeEnhancement   TaskType = "ENHANCEMENT"
	TypeDocumentation TaskType = "DOCUMENTATION"
	TypeOther         TaskType = "OTHER"
)

// ValidTaskTypes returns all valid task type values.
func ValidTaskTypes() []TaskType {
	return []TaskType{TypeBug, TypeFeature, TypeEnhancement, TypeDocumentation, TypeOther}
}

// IsValid returns true if the type is a known value.
func (t TaskType) IsValid() bool {
	for _, valid := range ValidTaskTypes() {
		if t == valid {
			return true
		}
	}
	return false
}

// Role represents what an author is allowed to do in the wider system.
type Role string

const (
	RoleUser      Role = "USER"
	RoleAdmin     Role = "ADMIN"
	RoleManager   Role = "MANAGER"
	RoleDeveloper Role = "DEVELOPER"
)

// ValidRoles returns all valid role values.
func ValidRoles() []Role {
	return []Role{RoleUser, RoleAdmin, RoleManager, RoleDeveloper}
}

// IsValid returns true if the role is a known value.
func (r Role) IsValid() bool {
	for _, valid := range ValidRoles() {
		if r == valid {
			return true
		}
	}
	return false
}
