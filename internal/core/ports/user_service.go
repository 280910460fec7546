package ports

import (
	"context"

	"github.com/taskboard/tracker-api/internal/core/domain"
)

// UpdateUserInput carries a partial user update (admin only). Zero/nil
// fields are left unchanged.
type UpdateUserInput struct {
	Name     string
	Email    string
	Role     string
	IsActive *bool
}

// UserService defines account management operations.
type UserService interface {
	List(ctx context.Context, p domain.Principal) ([]*domain.User, error)
	Get(ctx context.Context, p domain.Principal, id string) (*domain.User, error)
	// ListByRole returns active users with the given role, for assignee and
	// member pickers.
	ListByRole(ctx context.Context, p domain.Principal, role string) ([]*domain.User, error)
	Update(ctx context.Context, p domain.Principal, id string, in UpdateUserInput) (*domain.User, error)
	Delete(ctx context.Context, p domain.Principal, id string) error
}
