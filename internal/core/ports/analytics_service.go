package ports

import (
	"context"

	"github.com/taskboard/tracker-api/internal/core/domain"
)

// AnalyticsService exposes the read-only rollups, authorization included.
type AnalyticsService interface {
	System(ctx context.Context, p domain.Principal) (*SystemReport, error)
	Project(ctx context.Context, p domain.Principal, projectID string) (*ProjectReport, error)
	Moderator(ctx context.Context, p domain.Principal) (*ModeratorReport, error)
	User(ctx context.Context, p domain.Principal) (*UserReport, error)
}

// ActivityService persists and serves the audit trail.
type ActivityService interface {
	ActivityRecorder
	// ListRecent returns the newest audit entries, admin only.
	ListRecent(ctx context.Context, p domain.Principal, limit int) ([]*domain.Activity, error)
}
