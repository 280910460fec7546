package ports

import (
	"context"
	"time"

	"github.com/taskboard/tracker-api/internal/core/domain"
)

// TicketFilter scopes ticket listing by role. Zero value = no filter.
type TicketFilter struct {
	// ResolvedBy restricts to tickets submitted by the given user.
	ResolvedBy string
	// TaskIDs restricts to tickets belonging to the given tasks.
	TaskIDs []string
}

// TicketRepository defines persistence operations for tickets.
type TicketRepository interface {
	// Create inserts a pending ticket. The store enforces at most one pending
	// ticket per (task, resolved_by) pair; a second insert returns
	// domain.ErrDuplicatePendingTicket.
	Create(ctx context.Context, t *domain.Ticket) (string, error)
	FindByID(ctx context.Context, id string) (*domain.Ticket, error)
	List(ctx context.Context, filter TicketFilter) ([]*domain.Ticket, error)
	// Decide moves a pending ticket to its terminal status. The update is
	// conditional on status=pending: deciding an already-decided ticket
	// returns domain.ErrTicketAlreadyDecided, a missing ticket
	// domain.ErrTicketNotFound.
	Decide(ctx context.Context, id string, decision domain.TicketStatus, verifiedBy string, verifiedAt time.Time, rejectionReason string) error
	Delete(ctx context.Context, id string) error
	// DeleteByTaskIDs removes every ticket under the given tasks (cascade).
	DeleteByTaskIDs(ctx context.Context, taskIDs []string) error
	// CountByResolver returns the user's ticket counts by status.
	CountByResolver(ctx context.Context, userID string, status domain.TicketStatus) (int64, error)
}
