package ports

import (
	"context"

	"github.com/taskboard/tracker-api/internal/core/domain"
)

// AuthService implements registration and login.
type AuthService interface {
	// Register creates an account. An empty role defaults to "user".
	Register(ctx context.Context, name, email, password, role string) (*domain.User, error)
	// Login verifies credentials and returns a signed bearer token plus the
	// account it belongs to.
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
}
