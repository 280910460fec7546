package ports

import (
	"context"
	"time"

	"github.com/taskboard/tracker-api/internal/core/domain"
)

// ActivityInput is the DTO handed to the activity dispatcher after a
// workflow mutation.
type ActivityInput struct {
	EntityType string
	EntityID   string
	Action     string
	ActorID    string
	Detail     string
	OccurredAt time.Time
}

// ActivitySink accepts activity records for asynchronous processing.
// Services emit and move on; recording never blocks or fails a request.
type ActivitySink interface {
	Emit(in ActivityInput)
}

// ActivityRecorder persists a single activity record. Implemented by the
// activity service and consumed by the dispatcher workers.
type ActivityRecorder interface {
	Record(ctx context.Context, in ActivityInput) error
}

// ActivityRepository defines persistence operations for the audit trail.
type ActivityRepository interface {
	Insert(ctx context.Context, a *domain.Activity) error
	ListRecent(ctx context.Context, limit int) ([]*domain.Activity, error)
}
