package domain

import "time"

// Activity is a single audit-trail entry recorded after a workflow mutation.
// Recording is asynchronous and best-effort.
type Activity struct {
	ID         string    `json:"id"`
	EntityType string    `json:"entity_type"` // project, task, ticket, user
	EntityID   string    `json:"entity_id"`
	Action     string    `json:"action"` // created, updated, status_changed, verified, rejected, deleted
	ActorID    string    `json:"actor_id"`
	Detail     string    `json:"detail,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}
