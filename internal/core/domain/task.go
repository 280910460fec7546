package domain

import "time"

// TaskStatus represents the workflow state of a task.
type TaskStatus string

const (
	TaskOpen       TaskStatus = "open"
	TaskInProgress TaskStatus = "in-progress"
	TaskResolved   TaskStatus = "resolved"
)

// ValidTaskStatus reports whether s is a known task status.
func ValidTaskStatus(s string) bool {
	switch TaskStatus(s) {
	case TaskOpen, TaskInProgress, TaskResolved:
		return true
	}
	return false
}

// assigneeTransitions defines the direct status changes an assignee may make.
// Reaching "resolved" is reserved for the ticket workflow; moderators and
// admins bypass this table entirely.
var assigneeTransitions = map[TaskStatus][]TaskStatus{
	TaskOpen: {TaskInProgress},
}

// AssigneeCanTransitionTo reports whether an assignee may move a task from s
// to next by direct edit. Restating the current status is an idempotent no-op
// and always allowed.
func (s TaskStatus) AssigneeCanTransitionTo(next TaskStatus) bool {
	if next == s {
		return true
	}
	for _, allowed := range assigneeTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// TaskPriority is the urgency bucket of a task.
type TaskPriority string

const (
	PriorityLow    TaskPriority = "low"
	PriorityMedium TaskPriority = "medium"
	PriorityHigh   TaskPriority = "high"
)

// ValidTaskPriority reports whether s is a known priority.
func ValidTaskPriority(s string) bool {
	switch TaskPriority(s) {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Task is a unit of work inside a project. AssignedTo is empty while the
// task is unassigned.
type Task struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description,omitempty"`
	Status      TaskStatus   `json:"status"`
	Priority    TaskPriority `json:"priority"`
	ProjectID   string       `json:"project_id"`
	AssignedTo  string       `json:"assigned_to,omitempty"`
	CreatedBy   string       `json:"created_by"`
	DueDate     *time.Time   `json:"due_date,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// IsAssignedTo reports whether userID is the task's assignee.
func (t *Task) IsAssignedTo(userID string) bool {
	return t.AssignedTo != "" && t.AssignedTo == userID
}
