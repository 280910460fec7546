package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/taskboard/tracker-api/internal/core/domain"
	"github.com/taskboard/tracker-api/internal/core/ports"
)

// ProjectService implements project CRUD with role-scoped visibility and
// cascade deletion through tasks into tickets.
type ProjectService struct {
	projects ports.ProjectRepository
	tasks    ports.TaskRepository
	tickets  ports.TicketRepository
	users    ports.UserRepository
	activity ports.ActivitySink
	logger   zerolog.Logger
}

func NewProjectService(
	projects ports.ProjectRepository,
	tasks ports.TaskRepository,
	tickets ports.TicketRepository,
	users ports.UserRepository,
	activity ports.ActivitySink,
	logger zerolog.Logger,
) *ProjectService {
	return &ProjectService{
		projects: projects,
		tasks:    tasks,
		tickets:  tickets,
		users:    users,
		activity: activity,
		logger:   logger,
	}
}

func (s *ProjectService) List(ctx context.Context, p domain.Principal) ([]ports.ProjectView, error) {
	var filter ports.ProjectFilter
	switch p.Role {
	case domain.RoleAdmin:
		// no filter
	case domain.RoleModerator:
		filter.ModeratorOrMemberID = p.ID
	default:
		ids, err := s.tasks.ListProjectIDsByAssignee(ctx, p.ID)
		if err != nil {
			return nil, fmt.Errorf("list projects: %w", err)
		}
		if len(ids) == 0 {
			return []ports.ProjectView{}, nil
		}
		filter.IDs = ids
	}

	projects, err := s.projects.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	return s.buildViews(ctx, projects)
}

func (s *ProjectService) Get(ctx context.Context, p domain.Principal, id string) (*ports.ProjectView, error) {
	project, err := s.projects.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	hasAssigned := false
	if p.Role == domain.RoleUser {
		hasAssigned, err = s.tasks.HasAssignedTask(ctx, project.ID, p.ID)
		if err != nil {
			return nil, fmt.Errorf("get project: %w", err)
		}
	}
	if !domain.CanReadProject(p, project, hasAssigned) {
		return nil, domain.ErrAccessDenied
	}

	views, err := s.buildViews(ctx, []*domain.Project{project})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

func (s *ProjectService) Create(ctx context.Context, p domain.Principal, in ports.CreateProjectInput) (*ports.ProjectView, error) {
	if !domain.CanCreateProject(p) {
		return nil, domain.ErrAccessDenied
	}

	now := time.Now().UTC()
	start := now
	if in.StartDate != nil {
		start = in.StartDate.UTC()
	}

	project := &domain.Project{
		Name:        in.Name,
		Description: in.Description,
		Status:      domain.ProjectActive,
		ModeratorID: p.ID,
		MemberIDs:   in.MemberIDs,
		StartDate:   start,
		EndDate:     in.EndDate,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if project.MemberIDs == nil {
		project.MemberIDs = []string{}
	}

	id, err := s.projects.Create(ctx, project)
	if err != nil {
		s.logger.Error().Err(err).Str("name", in.Name).Msg("failed to create project")
		return nil, err
	}
	project.ID = id

	s.logger.Info().Str("project_id", id).Str("moderator_id", p.ID).Msg("project created")
	s.activity.Emit(ports.ActivityInput{
		EntityType: "project",
		EntityID:   id,
		Action:     "created",
		ActorID:    p.ID,
		OccurredAt: now,
	})

	views, err := s.buildViews(ctx, []*domain.Project{project})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

func (s *ProjectService) Update(ctx context.Context, p domain.Principal, id string, in ports.UpdateProjectInput) (*ports.ProjectView, error) {
	project, err := s.projects.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !domain.CanManageProject(p, project) {
		return nil, domain.ErrAccessDenied
	}

	if in.Name != "" {
		project.Name = in.Name
	}
	if in.Description != nil {
		project.Description = *in.Description
	}
	if in.Status != "" {
		if !domain.ValidProjectStatus(in.Status) {
			return nil, fmt.Errorf("%w: unknown project status %q", domain.ErrValidation, in.Status)
		}
		project.Status = domain.ProjectStatus(in.Status)
	}
	if in.MemberIDs != nil {
		project.MemberIDs = in.MemberIDs
	}
	if in.StartDate != nil {
		project.StartDate = in.StartDate.UTC()
	}
	if in.EndDate != nil {
		project.EndDate = in.EndDate
	}
	project.UpdatedAt = time.Now().UTC()

	if err := s.projects.Update(ctx, project); err != nil {
		return nil, fmt.Errorf("update project: %w", err)
	}

	s.activity.Emit(ports.ActivityInput{
		EntityType: "project",
		EntityID:   project.ID,
		Action:     "updated",
		ActorID:    p.ID,
		OccurredAt: project.UpdatedAt,
	})

	views, err := s.buildViews(ctx, []*domain.Project{project})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

// Delete removes the project, its tasks, and the tickets of those tasks.
func (s *ProjectService) Delete(ctx context.Context, p domain.Principal, id string) error {
	project, err := s.projects.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !domain.CanManageProject(p, project) {
		return domain.ErrAccessDenied
	}

	taskIDs, err := s.tasks.ListIDsByProject(ctx, id)
	if err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	if len(taskIDs) > 0 {
		if err := s.tickets.DeleteByTaskIDs(ctx, taskIDs); err != nil {
			return fmt.Errorf("delete project tickets: %w", err)
		}
		if err := s.tasks.DeleteByProject(ctx, id); err != nil {
			return fmt.Errorf("delete project tasks: %w", err)
		}
	}
	if err := s.projects.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete project: %w", err)
	}

	s.logger.Info().Str("project_id", id).Int("tasks_removed", len(taskIDs)).Msg("project deleted")
	s.activity.Emit(ports.ActivityInput{
		EntityType: "project",
		EntityID:   id,
		Action:     "deleted",
		ActorID:    p.ID,
		OccurredAt: time.Now().UTC(),
	})
	return nil
}

func (s *ProjectService) ListTasks(ctx context.Context, p domain.Principal, projectID string) ([]ports.TaskView, error) {
	project, err := s.projects.FindByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if !domain.CanListProjectTasks(p, project) {
		return nil, domain.ErrAccessDenied
	}

	tasks, err := s.tasks.List(ctx, ports.TaskFilter{ProjectIDs: []string{projectID}})
	if err != nil {
		return nil, fmt.Errorf("list project tasks: %w", err)
	}

	userIDs := make([]string, 0, 2*len(tasks))
	for _, t := range tasks {
		userIDs = append(userIDs, t.AssignedTo, t.CreatedBy)
	}
	summaries, err := s.users.Summaries(ctx, dedupeIDs(userIDs))
	if err != nil {
		return nil, fmt.Errorf("list project tasks: %w", err)
	}

	views := make([]ports.TaskView, 0, len(tasks))
	for _, t := range tasks {
		views = append(views, taskView(t, project, summaries))
	}
	return views, nil
}

// buildViews resolves moderator and member summaries for a batch of projects.
func (s *ProjectService) buildViews(ctx context.Context, projects []*domain.Project) ([]ports.ProjectView, error) {
	userIDs := make([]string, 0, len(projects))
	for _, pr := range projects {
		userIDs = append(userIDs, pr.ModeratorID)
		userIDs = append(userIDs, pr.MemberIDs...)
	}
	summaries, err := s.users.Summaries(ctx, dedupeIDs(userIDs))
	if err != nil {
		return nil, fmt.Errorf("resolve project users: %w", err)
	}

	views := make([]ports.ProjectView, 0, len(projects))
	for _, pr := range projects {
		views = append(views, projectView(pr, summaries))
	}
	return views, nil
}
