package ports

import (
	"context"

	"github.com/taskboard/tracker-api/internal/core/domain"
)

// CreateTicketInput carries a resolution attempt for a task.
type CreateTicketInput struct {
	TaskID          string
	ResolutionNotes string
}

// VerifyTicketInput carries a moderator's decision on a pending ticket.
type VerifyTicketInput struct {
	Decision        string // "verified" or "rejected"
	RejectionReason string // required when rejecting
}

// TicketService owns the task/ticket workflow.
type TicketService interface {
	// List returns the tickets visible to the principal: all for admins and
	// moderators, own tickets for users.
	List(ctx context.Context, p domain.Principal) ([]TicketView, error)
	Get(ctx context.Context, p domain.Principal, id string) (*TicketView, error)
	// Create submits a resolution ticket for a task the principal is assigned
	// to and moves the task to resolved. The task must be in-progress.
	Create(ctx context.Context, p domain.Principal, in CreateTicketInput) (*TicketView, error)
	// Verify applies a terminal decision to a pending ticket. Rejection
	// reverts the task to in-progress.
	Verify(ctx context.Context, p domain.Principal, id string, in VerifyTicketInput) (*TicketView, error)
	Delete(ctx context.Context, p domain.Principal, id string) error
}
