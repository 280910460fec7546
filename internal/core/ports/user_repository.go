package ports

import (
	"context"

	"github.com/taskboard/tracker-api/internal/core/domain"
)

// UserRepository defines persistence operations for user accounts.
type UserRepository interface {
	// Create inserts a new user. A duplicate email returns domain.ErrUserExists.
	Create(ctx context.Context, u *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
	// ListByRole returns active users with the given role.
	ListByRole(ctx context.Context, role domain.Role) ([]*domain.User, error)
	// Summaries resolves the given user ids into UserSummary values, keyed by
	// id. Unknown ids are simply absent from the map.
	Summaries(ctx context.Context, ids []string) (map[string]UserSummary, error)
	Update(ctx context.Context, u *domain.User) error
	Delete(ctx context.Context, id string) error
}
