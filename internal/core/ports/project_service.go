package ports

import (
	"context"
	"time"

	"github.com/taskboard/tracker-api/internal/core/domain"
)

// CreateProjectInput carries the data for a new project. The caller becomes
// its moderator.
type CreateProjectInput struct {
	Name        string
	Description string
	MemberIDs   []string
	StartDate   *time.Time
	EndDate     *time.Time
}

// UpdateProjectInput carries a partial project update. Zero/nil fields are
// left unchanged.
type UpdateProjectInput struct {
	Name        string
	Description *string
	Status      string
	MemberIDs   []string
	StartDate   *time.Time
	EndDate     *time.Time
}

// ProjectService defines use-case operations for projects.
type ProjectService interface {
	// List returns the projects visible to the principal: all for admins,
	// moderated + member projects for moderators, projects with an assigned
	// task for users.
	List(ctx context.Context, p domain.Principal) ([]ProjectView, error)
	Get(ctx context.Context, p domain.Principal, id string) (*ProjectView, error)
	Create(ctx context.Context, p domain.Principal, in CreateProjectInput) (*ProjectView, error)
	Update(ctx context.Context, p domain.Principal, id string, in UpdateProjectInput) (*ProjectView, error)
	// Delete removes the project and cascades to its tasks and their tickets.
	Delete(ctx context.Context, p domain.Principal, id string) error
	// ListTasks returns every task in the project.
	ListTasks(ctx context.Context, p domain.Principal, projectID string) ([]TaskView, error)
}
