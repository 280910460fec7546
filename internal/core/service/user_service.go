package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/taskboard/tracker-api/internal/core/domain"
	"github.com/taskboard/tracker-api/internal/core/ports"
)

// UserService implements admin account management.
type UserService struct {
	users    ports.UserRepository
	activity ports.ActivitySink
	logger   zerolog.Logger
}

func NewUserService(users ports.UserRepository, activity ports.ActivitySink, logger zerolog.Logger) *UserService {
	return &UserService{users: users, activity: activity, logger: logger}
}

func (s *UserService) List(ctx context.Context, p domain.Principal) ([]*domain.User, error) {
	if !domain.CanManageUsers(p) {
		return nil, domain.ErrAccessDenied
	}
	return s.users.List(ctx)
}

func (s *UserService) Get(ctx context.Context, p domain.Principal, id string) (*domain.User, error) {
	if !domain.CanManageUsers(p) {
		return nil, domain.ErrAccessDenied
	}
	return s.users.FindByID(ctx, id)
}

func (s *UserService) ListByRole(ctx context.Context, p domain.Principal, role string) ([]*domain.User, error) {
	if !domain.CanListUsersByRole(p) {
		return nil, domain.ErrAccessDenied
	}
	if !domain.ValidRole(role) {
		return nil, fmt.Errorf("%w: unknown role %q", domain.ErrValidation, role)
	}
	return s.users.ListByRole(ctx, domain.Role(role))
}

func (s *UserService) Update(ctx context.Context, p domain.Principal, id string, in ports.UpdateUserInput) (*domain.User, error) {
	if !domain.CanManageUsers(p) {
		return nil, domain.ErrAccessDenied
	}

	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Name != "" {
		user.Name = in.Name
	}
	if in.Email != "" {
		user.Email = in.Email
	}
	if in.Role != "" {
		if !domain.ValidRole(in.Role) {
			return nil, fmt.Errorf("%w: unknown role %q", domain.ErrValidation, in.Role)
		}
		user.Role = domain.Role(in.Role)
	}
	if in.IsActive != nil {
		user.IsActive = *in.IsActive
	}
	user.UpdatedAt = time.Now().UTC()

	if err := s.users.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}

	s.logger.Info().Str("user_id", id).Str("role", string(user.Role)).Msg("user updated")
	s.activity.Emit(ports.ActivityInput{
		EntityType: "user",
		EntityID:   id,
		Action:     "updated",
		ActorID:    p.ID,
		OccurredAt: user.UpdatedAt,
	})
	return user, nil
}

func (s *UserService) Delete(ctx context.Context, p domain.Principal, id string) error {
	if !domain.CanManageUsers(p) {
		return domain.ErrAccessDenied
	}

	if _, err := s.users.FindByID(ctx, id); err != nil {
		return err
	}
	if err := s.users.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}

	s.activity.Emit(ports.ActivityInput{
		EntityType: "user",
		EntityID:   id,
		Action:     "deleted",
		ActorID:    p.ID,
		OccurredAt: time.Now().UTC(),
	})
	return nil
}
