package ports

import (
	"context"

	"github.com/taskboard/tracker-api/internal/core/domain"
)

// ProjectFilter scopes project listing by role. Zero value = no filter (admin).
type ProjectFilter struct {
	// IDs restricts the result to the given project ids (user scoping).
	IDs []string
	// ModeratorOrMemberID restricts to projects the user moderates or is a
	// member of (moderator scoping).
	ModeratorOrMemberID string
}

// ProjectRepository defines persistence operations for projects.
type ProjectRepository interface {
	Create(ctx context.Context, p *domain.Project) (string, error)
	FindByID(ctx context.Context, id string) (*domain.Project, error)
	FindByIDs(ctx context.Context, ids []string) ([]*domain.Project, error)
	List(ctx context.Context, filter ProjectFilter) ([]*domain.Project, error)
	Update(ctx context.Context, p *domain.Project) error
	Delete(ctx context.Context, id string) error
}
