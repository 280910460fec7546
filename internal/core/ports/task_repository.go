package ports

import (
	"context"

	"github.com/taskboard/tracker-api/internal/core/domain"
)

// TaskFilter scopes task listing by role. Zero value = no filter (admin).
type TaskFilter struct {
	// ProjectIDs restricts to tasks inside the given projects (moderator
	// scoping, project task listing).
	ProjectIDs []string
	// AssignedTo restricts to tasks assigned to the given user (user scoping).
	AssignedTo string
}

// TaskRepository defines persistence operations for tasks.
type TaskRepository interface {
	Create(ctx context.Context, t *domain.Task) (string, error)
	FindByID(ctx context.Context, id string) (*domain.Task, error)
	FindByIDs(ctx context.Context, ids []string) ([]*domain.Task, error)
	List(ctx context.Context, filter TaskFilter) ([]*domain.Task, error)
	Update(ctx context.Context, t *domain.Task) error
	// UpdateStatus sets only the status field (used by the ticket workflow).
	UpdateStatus(ctx context.Context, id string, status domain.TaskStatus) error
	Delete(ctx context.Context, id string) error
	// ListIDsByProject returns the ids of every task in the project.
	ListIDsByProject(ctx context.Context, projectID string) ([]string, error)
	// DeleteByProject removes every task in the project (cascade).
	DeleteByProject(ctx context.Context, projectID string) error
	// ListProjectIDsByAssignee returns the distinct project ids of tasks
	// assigned to the user (drives a plain user's project visibility).
	ListProjectIDsByAssignee(ctx context.Context, userID string) ([]string, error)
	// HasAssignedTask reports whether the user has a task assigned to them
	// inside the project.
	HasAssignedTask(ctx context.Context, projectID, userID string) (bool, error)
}
