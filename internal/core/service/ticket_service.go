package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/taskboard/tracker-api/internal/core/domain"
	"github.com/taskboard/tracker-api/internal/core/ports"
)

// TicketService owns the task/ticket workflow: submitting a resolution
// attempt flips the task to resolved, a rejection flips it back to
// in-progress, and decisions are terminal.
type TicketService struct {
	tickets  ports.TicketRepository
	tasks    ports.TaskRepository
	projects ports.ProjectRepository
	users    ports.UserRepository
	activity ports.ActivitySink
	logger   zerolog.Logger
}

func NewTicketService(
	tickets ports.TicketRepository,
	tasks ports.TaskRepository,
	projects ports.ProjectRepository,
	users ports.UserRepository,
	activity ports.ActivitySink,
	logger zerolog.Logger,
) *TicketService {
	return &TicketService{
		tickets:  tickets,
		tasks:    tasks,
		projects: projects,
		users:    users,
		activity: activity,
		logger:   logger,
	}
}

func (s *TicketService) List(ctx context.Context, p domain.Principal) ([]ports.TicketView, error) {
	var filter ports.TicketFilter
	if p.Role == domain.RoleUser {
		filter.ResolvedBy = p.ID
	}

	tickets, err := s.tickets.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list tickets: %w", err)
	}
	return s.buildViews(ctx, tickets)
}

func (s *TicketService) Get(ctx context.Context, p domain.Principal, id string) (*ports.TicketView, error) {
	ticket, task, project, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !domain.CanReadTicket(p, project, ticket) {
		return nil, domain.ErrAccessDenied
	}
	return s.buildView(ctx, ticket, task, project)
}

// Create submits a resolution attempt. Preconditions: the principal is the
// task's assignee and the task is in-progress. The pending-ticket uniqueness
// is enforced by the store, so two concurrent submissions cannot both land.
// The ticket insert happens before the task flip; a crash in between leaves
// a pending ticket with a stale task status, never two pending tickets.
func (s *TicketService) Create(ctx context.Context, p domain.Principal, in ports.CreateTicketInput) (*ports.TicketView, error) {
	task, err := s.tasks.FindByID(ctx, in.TaskID)
	if err != nil {
		return nil, err
	}
	if !domain.CanCreateTicket(p, task) {
		return nil, domain.ErrAccessDenied
	}
	if task.Status != domain.TaskInProgress {
		return nil, fmt.Errorf("%w: task must be in-progress to resolve, is %s", domain.ErrInvalidTransition, task.Status)
	}

	now := time.Now().UTC()
	ticket := &domain.Ticket{
		TaskID:          task.ID,
		ResolvedBy:      p.ID,
		ResolutionNotes: in.ResolutionNotes,
		Status:          domain.TicketPending,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	id, err := s.tickets.Create(ctx, ticket)
	if err != nil {
		return nil, err
	}
	ticket.ID = id

	if err := s.tasks.UpdateStatus(ctx, task.ID, domain.TaskResolved); err != nil {
		return nil, fmt.Errorf("mark task resolved: %w", err)
	}
	task.Status = domain.TaskResolved

	s.logger.Info().
		Str("ticket_id", id).
		Str("task_id", task.ID).
		Str("resolved_by", p.ID).
		Msg("resolution ticket created")
	s.activity.Emit(ports.ActivityInput{
		EntityType: "ticket",
		EntityID:   id,
		Action:     "created",
		ActorID:    p.ID,
		Detail:     task.ID,
		OccurredAt: now,
	})

	project, err := s.projects.FindByID(ctx, task.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("create ticket project: %w", err)
	}
	return s.buildView(ctx, ticket, task, project)
}

// Verify applies a terminal decision to a pending ticket. Rejection requires
// a reason and reverts the task to in-progress so the assignee can retry.
func (s *TicketService) Verify(ctx context.Context, p domain.Principal, id string, in ports.VerifyTicketInput) (*ports.TicketView, error) {
	if !domain.ValidDecision(in.Decision) {
		return nil, fmt.Errorf("%w: decision must be verified or rejected", domain.ErrValidation)
	}
	decision := domain.TicketStatus(in.Decision)

	reason := strings.TrimSpace(in.RejectionReason)
	if decision == domain.TicketRejected && reason == "" {
		return nil, domain.ErrMissingRejectionReason
	}

	ticket, task, project, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !domain.CanDecideTicket(p, project) {
		return nil, domain.ErrAccessDenied
	}
	if ticket.Status.Decided() {
		return nil, domain.ErrTicketAlreadyDecided
	}

	now := time.Now().UTC()
	// conditional on status=pending; a concurrent decision loses here
	if err := s.tickets.Decide(ctx, id, decision, p.ID, now, reason); err != nil {
		return nil, err
	}

	ticket.Status = decision
	ticket.VerifiedBy = p.ID
	ticket.VerifiedAt = &now
	ticket.RejectionReason = reason
	ticket.UpdatedAt = now

	if decision == domain.TicketRejected {
		if err := s.tasks.UpdateStatus(ctx, task.ID, domain.TaskInProgress); err != nil {
			return nil, fmt.Errorf("revert task status: %w", err)
		}
		task.Status = domain.TaskInProgress
	}

	s.logger.Info().
		Str("ticket_id", id).
		Str("decision", string(decision)).
		Str("verified_by", p.ID).
		Msg("ticket decided")
	s.activity.Emit(ports.ActivityInput{
		EntityType: "ticket",
		EntityID:   id,
		Action:     string(decision),
		ActorID:    p.ID,
		Detail:     task.ID,
		OccurredAt: now,
	})

	return s.buildView(ctx, ticket, task, project)
}

func (s *TicketService) Delete(ctx context.Context, p domain.Principal, id string) error {
	ticket, _, project, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	if !domain.CanDecideTicket(p, project) {
		return domain.ErrAccessDenied
	}

	if err := s.tickets.Delete(ctx, ticket.ID); err != nil {
		return fmt.Errorf("delete ticket: %w", err)
	}

	s.activity.Emit(ports.ActivityInput{
		EntityType: "ticket",
		EntityID:   id,
		Action:     "deleted",
		ActorID:    p.ID,
		OccurredAt: time.Now().UTC(),
	})
	return nil
}

// load fetches a ticket together with its task and owning project, which
// every read and decision path needs for the access check.
func (s *TicketService) load(ctx context.Context, id string) (*domain.Ticket, *domain.Task, *domain.Project, error) {
	ticket, err := s.tickets.FindByID(ctx, id)
	if err != nil {
		return nil, nil, nil, err
	}
	task, err := s.tasks.FindByID(ctx, ticket.TaskID)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("ticket task: %w", err)
	}
	project, err := s.projects.FindByID(ctx, task.ProjectID)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("ticket project: %w", err)
	}
	return ticket, task, project, nil
}

func (s *TicketService) buildView(ctx context.Context, ticket *domain.Ticket, task *domain.Task, project *domain.Project) (*ports.TicketView, error) {
	summaries, err := s.users.Summaries(ctx, dedupeIDs([]string{ticket.ResolvedBy, ticket.VerifiedBy}))
	if err != nil {
		return nil, fmt.Errorf("resolve ticket users: %w", err)
	}
	view := ticketView(ticket, task, project, summaries)
	return &view, nil
}

// buildViews resolves tasks, projects, and user summaries for a ticket list.
func (s *TicketService) buildViews(ctx context.Context, tickets []*domain.Ticket) ([]ports.TicketView, error) {
	taskIDs := make([]string, 0, len(tickets))
	userIDs := make([]string, 0, 2*len(tickets))
	for _, t := range tickets {
		taskIDs = append(taskIDs, t.TaskID)
		userIDs = append(userIDs, t.ResolvedBy, t.VerifiedBy)
	}

	tasks, err := s.tasks.FindByIDs(ctx, dedupeIDs(taskIDs))
	if err != nil {
		return nil, fmt.Errorf("resolve ticket tasks: %w", err)
	}
	tasksByID := make(map[string]*domain.Task, len(tasks))
	projectIDs := make([]string, 0, len(tasks))
	for _, t := range tasks {
		tasksByID[t.ID] = t
		projectIDs = append(projectIDs, t.ProjectID)
	}

	projects, err := s.projects.FindByIDs(ctx, dedupeIDs(projectIDs))
	if err != nil {
		return nil, fmt.Errorf("resolve ticket projects: %w", err)
	}
	projectsByID := make(map[string]*domain.Project, len(projects))
	for _, pr := range projects {
		projectsByID[pr.ID] = pr
	}

	summaries, err := s.users.Summaries(ctx, dedupeIDs(userIDs))
	if err != nil {
		return nil, fmt.Errorf("resolve ticket users: %w", err)
	}

	views := make([]ports.TicketView, 0, len(tickets))
	for _, t := range tickets {
		task, ok := tasksByID[t.TaskID]
		if !ok {
			s.logger.Warn().Str("ticket_id", t.ID).Str("task_id", t.TaskID).Msg("ticket references missing task")
			continue
		}
		project, ok := projectsByID[task.ProjectID]
		if !ok {
			continue
		}
		views = append(views, ticketView(t, task, project, summaries))
	}
	return views, nil
}
