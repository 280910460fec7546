package ports

import (
	"context"
	"time"

	"github.com/taskboard/tracker-api/internal/core/domain"
)

// CreateTaskInput carries the data for a new task.
type CreateTaskInput struct {
	Title       string
	Description string
	ProjectID   string
	AssignedTo  string
	Priority    string // defaults to "medium" when empty
	DueDate     *time.Time
}

// UpdateTaskInput carries a partial task update. Zero/nil fields are left
// unchanged. Status follows the role-gated state machine: moderators and
// admins may set anything, an assignee only open → in-progress (or a no-op).
type UpdateTaskInput struct {
	Title       string
	Description *string
	Status      string
	AssignedTo  *string
	Priority    string
	DueDate     *time.Time
}

// TaskService defines use-case operations for tasks.
type TaskService interface {
	// List returns the tasks visible to the principal: all for admins, tasks
	// in moderated/member projects for moderators, assigned tasks for users.
	List(ctx context.Context, p domain.Principal) ([]TaskView, error)
	Get(ctx context.Context, p domain.Principal, id string) (*TaskView, error)
	Create(ctx context.Context, p domain.Principal, in CreateTaskInput) (*TaskView, error)
	Update(ctx context.Context, p domain.Principal, id string, in UpdateTaskInput) (*TaskView, error)
	// Delete removes the task and cascades to its tickets.
	Delete(ctx context.Context, p domain.Principal, id string) error
}
