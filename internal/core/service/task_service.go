package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/taskboard/tracker-api/internal/core/domain"
	"github.com/taskboard/tracker-api/internal/core/ports"
)

// TaskService implements task CRUD with the role-gated status state machine.
type TaskService struct {
	tasks    ports.TaskRepository
	projects ports.ProjectRepository
	tickets  ports.TicketRepository
	users    ports.UserRepository
	activity ports.ActivitySink
	logger   zerolog.Logger
}

func NewTaskService(
	tasks ports.TaskRepository,
	projects ports.ProjectRepository,
	tickets ports.TicketRepository,
	users ports.UserRepository,
	activity ports.ActivitySink,
	logger zerolog.Logger,
) *TaskService {
	return &TaskService{
		tasks:    tasks,
		projects: projects,
		tickets:  tickets,
		users:    users,
		activity: activity,
		logger:   logger,
	}
}

func (s *TaskService) List(ctx context.Context, p domain.Principal) ([]ports.TaskView, error) {
	var filter ports.TaskFilter
	switch p.Role {
	case domain.RoleAdmin:
		// no filter
	case domain.RoleModerator:
		projects, err := s.projects.List(ctx, ports.ProjectFilter{ModeratorOrMemberID: p.ID})
		if err != nil {
			return nil, fmt.Errorf("list tasks: %w", err)
		}
		if len(projects) == 0 {
			return []ports.TaskView{}, nil
		}
		for _, pr := range projects {
			filter.ProjectIDs = append(filter.ProjectIDs, pr.ID)
		}
	default:
		filter.AssignedTo = p.ID
	}

	tasks, err := s.tasks.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return s.buildViews(ctx, tasks)
}

func (s *TaskService) Get(ctx context.Context, p domain.Principal, id string) (*ports.TaskView, error) {
	task, err := s.tasks.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	project, err := s.projects.FindByID(ctx, task.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("get task project: %w", err)
	}
	if !domain.CanReadTask(p, project, task) {
		return nil, domain.ErrAccessDenied
	}

	summaries, err := s.users.Summaries(ctx, dedupeIDs([]string{task.AssignedTo, task.CreatedBy}))
	if err != nil {
		return nil, fmt.Errorf("get task: %w", err)
	}
	view := taskView(task, project, summaries)
	return &view, nil
}

func (s *TaskService) Create(ctx context.Context, p domain.Principal, in ports.CreateTaskInput) (*ports.TaskView, error) {
	project, err := s.projects.FindByID(ctx, in.ProjectID)
	if err != nil {
		return nil, err
	}
	if !domain.CanManageProject(p, project) {
		return nil, domain.ErrAccessDenied
	}

	priority := in.Priority
	if priority == "" {
		priority = string(domain.PriorityMedium)
	}
	if !domain.ValidTaskPriority(priority) {
		return nil, fmt.Errorf("%w: unknown task priority %q", domain.ErrValidation, priority)
	}

	now := time.Now().UTC()
	task := &domain.Task{
		Title:       in.Title,
		Description: in.Description,
		Status:      domain.TaskOpen,
		Priority:    domain.TaskPriority(priority),
		ProjectID:   in.ProjectID,
		AssignedTo:  in.AssignedTo,
		CreatedBy:   p.ID,
		DueDate:     in.DueDate,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	id, err := s.tasks.Create(ctx, task)
	if err != nil {
		s.logger.Error().Err(err).Str("project_id", in.ProjectID).Msg("failed to create task")
		return nil, err
	}
	task.ID = id

	s.logger.Info().Str("task_id", id).Str("project_id", in.ProjectID).Msg("task created")
	s.activity.Emit(ports.ActivityInput{
		EntityType: "task",
		EntityID:   id,
		Action:     "created",
		ActorID:    p.ID,
		OccurredAt: now,
	})

	summaries, err := s.users.Summaries(ctx, dedupeIDs([]string{task.AssignedTo, task.CreatedBy}))
	if err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}
	view := taskView(task, project, summaries)
	return &view, nil
}

func (s *TaskService) Update(ctx context.Context, p domain.Principal, id string, in ports.UpdateTaskInput) (*ports.TaskView, error) {
	task, err := s.tasks.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	project, err := s.projects.FindByID(ctx, task.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("update task project: %w", err)
	}

	isManager := domain.CanEditTaskFields(p, project)
	isAssignee := task.IsAssignedTo(p.ID)
	if !isManager && !isAssignee {
		return nil, domain.ErrAccessDenied
	}

	if isManager {
		if in.Title != "" {
			task.Title = in.Title
		}
		if in.Description != nil {
			task.Description = *in.Description
		}
		if in.AssignedTo != nil {
			task.AssignedTo = *in.AssignedTo
		}
		if in.Priority != "" {
			if !domain.ValidTaskPriority(in.Priority) {
				return nil, fmt.Errorf("%w: unknown task priority %q", domain.ErrValidation, in.Priority)
			}
			task.Priority = domain.TaskPriority(in.Priority)
		}
		if in.DueDate != nil {
			task.DueDate = in.DueDate
		}
	}

	statusChanged := false
	if in.Status != "" {
		if !domain.ValidTaskStatus(in.Status) {
			return nil, fmt.Errorf("%w: unknown task status %q", domain.ErrValidation, in.Status)
		}
		next := domain.TaskStatus(in.Status)
		switch {
		case isManager:
			// moderators and admins may set any status directly
		case task.Status.AssigneeCanTransitionTo(next):
			// assignee: open → in-progress or an idempotent restatement
		default:
			return nil, fmt.Errorf("%w: %s → %s not permitted for assignee", domain.ErrInvalidTransition, task.Status, next)
		}
		statusChanged = next != task.Status
		task.Status = next
	}
	task.UpdatedAt = time.Now().UTC()

	if err := s.tasks.Update(ctx, task); err != nil {
		return nil, fmt.Errorf("update task: %w", err)
	}

	action := "updated"
	if statusChanged {
		action = "status_changed"
	}
	s.activity.Emit(ports.ActivityInput{
		EntityType: "task",
		EntityID:   task.ID,
		Action:     action,
		ActorID:    p.ID,
		Detail:     string(task.Status),
		OccurredAt: task.UpdatedAt,
	})

	summaries, err := s.users.Summaries(ctx, dedupeIDs([]string{task.AssignedTo, task.CreatedBy}))
	if err != nil {
		return nil, fmt.Errorf("update task: %w", err)
	}
	view := taskView(task, project, summaries)
	return &view, nil
}

// Delete removes the task and every ticket referencing it.
func (s *TaskService) Delete(ctx context.Context, p domain.Principal, id string) error {
	task, err := s.tasks.FindByID(ctx, id)
	if err != nil {
		return err
	}
	project, err := s.projects.FindByID(ctx, task.ProjectID)
	if err != nil {
		return fmt.Errorf("delete task project: %w", err)
	}
	if !domain.CanManageProject(p, project) {
		return domain.ErrAccessDenied
	}

	if err := s.tickets.DeleteByTaskIDs(ctx, []string{id}); err != nil {
		return fmt.Errorf("delete task tickets: %w", err)
	}
	if err := s.tasks.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete task: %w", err)
	}

	s.logger.Info().Str("task_id", id).Msg("task deleted")
	s.activity.Emit(ports.ActivityInput{
		EntityType: "task",
		EntityID:   id,
		Action:     "deleted",
		ActorID:    p.ID,
		OccurredAt: time.Now().UTC(),
	})
	return nil
}

// buildViews resolves project and user summaries for a batch of tasks.
func (s *TaskService) buildViews(ctx context.Context, tasks []*domain.Task) ([]ports.TaskView, error) {
	projectIDs := make([]string, 0, len(tasks))
	userIDs := make([]string, 0, 2*len(tasks))
	for _, t := range tasks {
		projectIDs = append(projectIDs, t.ProjectID)
		userIDs = append(userIDs, t.AssignedTo, t.CreatedBy)
	}

	projects, err := s.projects.FindByIDs(ctx, dedupeIDs(projectIDs))
	if err != nil {
		return nil, fmt.Errorf("resolve task projects: %w", err)
	}
	byID := make(map[string]*domain.Project, len(projects))
	for _, pr := range projects {
		byID[pr.ID] = pr
	}

	summaries, err := s.users.Summaries(ctx, dedupeIDs(userIDs))
	if err != nil {
		return nil, fmt.Errorf("resolve task users: %w", err)
	}

	views := make([]ports.TaskView, 0, len(tasks))
	for _, t := range tasks {
		project, ok := byID[t.ProjectID]
		if !ok {
			// task whose project vanished mid-listing; skip rather than fail the page
			s.logger.Warn().Str("task_id", t.ID).Str("project_id", t.ProjectID).Msg("task references missing project")
			continue
		}
		views = append(views, taskView(t, project, summaries))
	}
	return views, nil
}
