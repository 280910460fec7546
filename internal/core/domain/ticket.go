package domain

import "time"

// TicketStatus represents the verification state of a resolution attempt.
type TicketStatus string

const (
	TicketPending  TicketStatus = "pending"
	TicketVerified TicketStatus = "verified"
	TicketRejected TicketStatus = "rejected"
)

// Decided reports whether the ticket has reached a terminal state.
func (s TicketStatus) Decided() bool {
	return s == TicketVerified || s == TicketRejected
}

// ValidDecision reports whether s is a terminal status a moderator may set.
func ValidDecision(s string) bool {
	return TicketStatus(s) == TicketVerified || TicketStatus(s) == TicketRejected
}

// Ticket is a request, submitted by a task's assignee, to confirm the task's
// work as complete. At most one pending ticket may exist per
// (task, resolved_by) pair; the store enforces this with a partial unique
// index so concurrent submissions cannot both land.
type Ticket struct {
	ID              string       `json:"id"`
	TaskID          string       `json:"task_id"`
	ResolvedBy      string       `json:"resolved_by"`
	ResolutionNotes string       `json:"resolution_notes"`
	Status          TicketStatus `json:"status"`
	VerifiedBy      string       `json:"verified_by,omitempty"`
	VerifiedAt      *time.Time   `json:"verified_at,omitempty"`
	RejectionReason string       `json:"rejection_reason,omitempty"`
	CreatedAt       time.Time    `json:"created_at"`
	UpdatedAt       time.Time    `json:"updated_at"`
}
