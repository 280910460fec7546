package domain

import "errors"

var (
	ErrProjectNotFound = errors.New("project not found")
	ErrTaskNotFound    = errors.New("task not found")
	ErrTicketNotFound  = errors.New("ticket not found")
	ErrUserNotFound    = errors.New("user not found")

	ErrUserExists         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccessDenied       = errors.New("access denied")

	ErrValidation             = errors.New("invalid input")
	ErrInvalidTransition      = errors.New("invalid status transition")
	ErrDuplicatePendingTicket = errors.New("a pending ticket already exists for this task")
	ErrMissingRejectionReason = errors.New("rejection reason is required")
	ErrTicketAlreadyDecided   = errors.New("ticket has already been decided")
)
