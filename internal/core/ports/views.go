package ports

import (
	"time"

	"github.com/taskboard/tracker-api/internal/core/domain"
)

// Summary types are the explicit "populated reference" shapes returned by
// read endpoints. Domain entities carry plain ids; services resolve them into
// these summaries so consumers never runtime-check whether a field holds an
// id or a full document.

// UserSummary is the minimal user shape embedded in views.
type UserSummary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// ProjectSummary is the minimal project shape embedded in task views.
type ProjectSummary struct {
	ID     string               `json:"id"`
	Name   string               `json:"name"`
	Status domain.ProjectStatus `json:"status"`
}

// TaskSummary is the minimal task shape embedded in ticket views.
type TaskSummary struct {
	ID      string            `json:"id"`
	Title   string            `json:"title"`
	Status  domain.TaskStatus `json:"status"`
	Project ProjectSummary    `json:"project"`
}

// ProjectView is the full project read model.
type ProjectView struct {
	ID          string               `json:"id"`
	Name        string               `json:"name"`
	Description string               `json:"description,omitempty"`
	Status      domain.ProjectStatus `json:"status"`
	Moderator   UserSummary          `json:"moderator"`
	Members     []UserSummary        `json:"members"`
	StartDate   time.Time            `json:"start_date"`
	EndDate     *time.Time           `json:"end_date,omitempty"`
	CreatedAt   time.Time            `json:"created_at"`
	UpdatedAt   time.Time            `json:"updated_at"`
}

// TaskView is the full task read model.
type TaskView struct {
	ID          string              `json:"id"`
	Title       string              `json:"title"`
	Description string              `json:"description,omitempty"`
	Status      domain.TaskStatus   `json:"status"`
	Priority    domain.TaskPriority `json:"priority"`
	Project     ProjectSummary      `json:"project"`
	AssignedTo  *UserSummary        `json:"assigned_to,omitempty"`
	CreatedBy   *UserSummary        `json:"created_by,omitempty"`
	DueDate     *time.Time          `json:"due_date,omitempty"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
}

// TicketView is the full ticket read model.
type TicketView struct {
	ID              string              `json:"id"`
	Task            TaskSummary         `json:"task"`
	ResolvedBy      *UserSummary        `json:"resolved_by,omitempty"`
	ResolutionNotes string              `json:"resolution_notes"`
	Status          domain.TicketStatus `json:"status"`
	VerifiedBy      *UserSummary        `json:"verified_by,omitempty"`
	VerifiedAt      *time.Time          `json:"verified_at,omitempty"`
	RejectionReason string              `json:"rejection_reason,omitempty"`
	CreatedAt       time.Time           `json:"created_at"`
	UpdatedAt       time.Time           `json:"updated_at"`
}
