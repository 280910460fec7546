package handler

import (
	"time"

	"github.com/taskboard/tracker-api/internal/core/domain"
)

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Auth ---

type registerRequest struct {
	Name     string `json:"name"     validate:"required"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"role"     validate:"omitempty,oneof=admin moderator user"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type authResponse struct {
	Token string       `json:"token,omitempty"`
	User  *domain.User `json:"user,omitempty"`
}

// --- Projects ---

type createProjectRequest struct {
	Name        string     `json:"name"        validate:"required"`
	Description string     `json:"description"`
	MemberIDs   []string   `json:"member_ids"`
	StartDate   *time.Time `json:"start_date"`
	EndDate     *time.Time `json:"end_date"`
}

type updateProjectRequest struct {
	Name        string     `json:"name"`
	Description *string    `json:"description"`
	Status      string     `json:"status"     validate:"omitempty,oneof=active completed archived"`
	MemberIDs   []string   `json:"member_ids"`
	StartDate   *time.Time `json:"start_date"`
	EndDate     *time.Time `json:"end_date"`
}

// --- Tasks ---

type createTaskRequest struct {
	Title       string     `json:"title"       validate:"required"`
	Description string     `json:"description"`
	ProjectID   string     `json:"project_id"  validate:"required"`
	AssignedTo  string     `json:"assigned_to"`
	Priority    string     `json:"priority"    validate:"omitempty,oneof=low medium high"`
	DueDate     *time.Time `json:"due_date"`
}

type updateTaskRequest struct {
	Title       string     `json:"title"`
	Description *string    `json:"description"`
	Status      string     `json:"status"      validate:"omitempty,oneof=open in-progress resolved"`
	AssignedTo  *string    `json:"assigned_to"`
	Priority    string     `json:"priority"    validate:"omitempty,oneof=low medium high"`
	DueDate     *time.Time `json:"due_date"`
}

// --- Tickets ---

type createTicketRequest struct {
	TaskID          string `json:"task_id"          validate:"required"`
	ResolutionNotes string `json:"resolution_notes" validate:"required"`
}

type verifyTicketRequest struct {
	Decision        string `json:"decision"         validate:"required,oneof=verified rejected"`
	RejectionReason string `json:"rejection_reason"`
}

// --- Users ---

type updateUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email" validate:"omitempty,email"`
	Role     string `json:"role"  validate:"omitempty,oneof=admin moderator user"`
	IsActive *bool  `json:"is_active"`
}
