package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/taskboard/tracker-api/internal/core/domain"
	"github.com/taskboard/tracker-api/internal/core/ports"
)

const (
	defaultActivityLimit = 50
	maxActivityLimit     = 200
)

// ActivityService persists audit-trail entries handed over by the
// dispatcher workers and serves them to admins.
type ActivityService struct {
	activities ports.ActivityRepository
	logger     zerolog.Logger
}

func NewActivityService(activities ports.ActivityRepository, logger zerolog.Logger) *ActivityService {
	return &ActivityService{activities: activities, logger: logger}
}

// Record persists a single activity entry.
func (s *ActivityService) Record(ctx context.Context, in ports.ActivityInput) error {
	occurred := in.OccurredAt
	if occurred.IsZero() {
		occurred = time.Now().UTC()
	}

	entry := &domain.Activity{
		EntityType: in.EntityType,
		EntityID:   in.EntityID,
		Action:     in.Action,
		ActorID:    in.ActorID,
		Detail:     in.Detail,
		OccurredAt: occurred,
	}
	if err := s.activities.Insert(ctx, entry); err != nil {
		return fmt.Errorf("record activity: %w", err)
	}
	return nil
}

// ListRecent returns the newest audit entries, admin only.
func (s *ActivityService) ListRecent(ctx context.Context, p domain.Principal, limit int) ([]*domain.Activity, error) {
	if !domain.CanManageUsers(p) {
		return nil, domain.ErrAccessDenied
	}
	if limit <= 0 {
		limit = defaultActivityLimit
	}
	if limit > maxActivityLimit {
		limit = maxActivityLimit
	}
	return s.activities.ListRecent(ctx, limit)
}
