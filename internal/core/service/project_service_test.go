package service

import (
	"context"
	"errors"
	"testing"

	"github.com/taskboard/tracker-api/internal/core/domain"
	"github.com/taskboard/tracker-api/internal/core/ports"
)

type projectEnv struct {
	projects *memProjectRepo
	tasks    *memTaskRepo
	tickets  *memTicketRepo
	users    *memUserRepo
	sink     *memSink
	svc      *ProjectService
}

func newProjectEnv() *projectEnv {
	env := &projectEnv{
		projects: newMemProjectRepo(),
		tasks:    newMemTaskRepo(),
		tickets:  newMemTicketRepo(),
		users:    newMemUserRepo(),
		sink:     &memSink{},
	}
	env.svc = NewProjectService(env.projects, env.tasks, env.tickets, env.users, env.sink, testLogger())
	return env
}

func TestProjectServiceCreateSetsModerator(t *testing.T) {
	env := newProjectEnv()
	env.users.add(&domain.User{ID: "mod", Name: "Mona", Email: "mona@example.com", Role: domain.RoleModerator, IsActive: true})

	view, err := env.svc.Create(context.Background(), modPrincipal, ports.CreateProjectInput{Name: "Billing"})
	if err != nil {
		t.Fatalf("create project: %v", err)
	}

	if view.Status != domain.ProjectActive {
		t.Fatalf("new project must be active, got %s", view.Status)
	}
	if view.Moderator.ID != "mod" {
		t.Fatalf("creator must become moderator, got %q", view.Moderator.ID)
	}
	if view.Members == nil || len(view.Members) != 0 {
		t.Fatalf("members must be an empty list, got %v", view.Members)
	}
}

func TestProjectServiceCreateDeniedForUser(t *testing.T) {
	env := newProjectEnv()

	_, err := env.svc.Create(context.Background(), devPrincipal, ports.CreateProjectInput{Name: "Nope"})
	if !errors.Is(err, domain.ErrAccessDenied) {
		t.Fatalf("expected ErrAccessDenied, got %v", err)
	}
}

func TestProjectServiceListScoping(t *testing.T) {
	env := newProjectEnv()
	env.projects.add(&domain.Project{ID: "p1", Name: "A", Status: domain.ProjectActive, ModeratorID: "mod", MemberIDs: []string{}})
	env.projects.add(&domain.Project{ID: "p2", Name: "B", Status: domain.ProjectActive, ModeratorID: "other", MemberIDs: []string{"mod"}})
	env.projects.add(&domain.Project{ID: "p3", Name: "C", Status: domain.ProjectActive, ModeratorID: "other", MemberIDs: []string{}})
	env.tasks.add(&domain.Task{ID: "t1", Title: "x", Status: domain.TaskOpen, ProjectID: "p3", AssignedTo: "dev", CreatedBy: "other"})

	admin := domain.Principal{ID: "root", Role: domain.RoleAdmin}
	got, err := env.svc.List(context.Background(), admin)
	if err != nil {
		t.Fatalf("list as admin: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("admin sees all projects, got %d", len(got))
	}

	// moderators see moderated and member projects
	got, err = env.svc.List(context.Background(), modPrincipal)
	if err != nil {
		t.Fatalf("list as moderator: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("moderator should see p1 and p2, got %d", len(got))
	}

	// plain users only see projects holding a task assigned to them
	got, err = env.svc.List(context.Background(), devPrincipal)
	if err != nil {
		t.Fatalf("list as user: %v", err)
	}
	if len(got) != 1 || got[0].ID != "p3" {
		t.Fatalf("user should only see p3, got %d", len(got))
	}

	// a user with no assignments gets an empty list, not an error
	nobody := domain.Principal{ID: "ghost", Role: domain.RoleUser}
	got, err = env.svc.List(context.Background(), nobody)
	if err != nil {
		t.Fatalf("list as unassigned user: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected no projects, got %d", len(got))
	}
}

func TestProjectServiceGetUserNeedsAssignment(t *testing.T) {
	env := newProjectEnv()
	env.projects.add(&domain.Project{ID: "p1", Name: "A", Status: domain.ProjectActive, ModeratorID: "mod", MemberIDs: []string{}})

	_, err := env.svc.Get(context.Background(), devPrincipal, "p1")
	if !errors.Is(err, domain.ErrAccessDenied) {
		t.Fatalf("expected ErrAccessDenied, got %v", err)
	}

	env.tasks.add(&domain.Task{ID: "t1", Title: "x", Status: domain.TaskOpen, ProjectID: "p1", AssignedTo: "dev", CreatedBy: "mod"})
	view, err := env.svc.Get(context.Background(), devPrincipal, "p1")
	if err != nil {
		t.Fatalf("get with assignment: %v", err)
	}
	if view.ID != "p1" {
		t.Fatalf("unexpected project %q", view.ID)
	}
}

func TestProjectServiceUpdateRejectsUnknownStatus(t *testing.T) {
	env := newProjectEnv()
	env.projects.add(&domain.Project{ID: "p1", Name: "A", Status: domain.ProjectActive, ModeratorID: "mod", MemberIDs: []string{}})

	_, err := env.svc.Update(context.Background(), modPrincipal, "p1", ports.UpdateProjectInput{Status: "paused"})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}

	view, err := env.svc.Update(context.Background(), modPrincipal, "p1", ports.UpdateProjectInput{Status: "completed"})
	if err != nil {
		t.Fatalf("valid update: %v", err)
	}
	if view.Status != domain.ProjectCompleted {
		t.Fatalf("status not applied, got %s", view.Status)
	}
}

func TestProjectServiceUpdateForeignModeratorDenied(t *testing.T) {
	env := newProjectEnv()
	env.projects.add(&domain.Project{ID: "p1", Name: "A", Status: domain.ProjectActive, ModeratorID: "other", MemberIDs: []string{}})

	_, err := env.svc.Update(context.Background(), modPrincipal, "p1", ports.UpdateProjectInput{Name: "B"})
	if !errors.Is(err, domain.ErrAccessDenied) {
		t.Fatalf("expected ErrAccessDenied, got %v", err)
	}
}

func TestProjectServiceDeleteCascades(t *testing.T) {
	env := newProjectEnv()
	env.projects.add(&domain.Project{ID: "p1", Name: "A", Status: domain.ProjectActive, ModeratorID: "mod", MemberIDs: []string{}})
	env.tasks.add(&domain.Task{ID: "t1", Title: "x", Status: domain.TaskResolved, ProjectID: "p1", AssignedTo: "dev", CreatedBy: "mod"})
	env.tasks.add(&domain.Task{ID: "t2", Title: "y", Status: domain.TaskOpen, ProjectID: "p1", CreatedBy: "mod"})
	env.tickets.add(&domain.Ticket{ID: "k1", TaskID: "t1", ResolvedBy: "dev", Status: domain.TicketPending})

	// unrelated entities must survive the cascade
	env.projects.add(&domain.Project{ID: "p2", Name: "B", Status: domain.ProjectActive, ModeratorID: "mod", MemberIDs: []string{}})
	env.tasks.add(&domain.Task{ID: "t3", Title: "z", Status: domain.TaskOpen, ProjectID: "p2", CreatedBy: "mod"})

	if err := env.svc.Delete(context.Background(), modPrincipal, "p1"); err != nil {
		t.Fatalf("delete project: %v", err)
	}

	if _, err := env.projects.FindByID(context.Background(), "p1"); !errors.Is(err, domain.ErrProjectNotFound) {
		t.Fatalf("project not deleted: %v", err)
	}
	if _, err := env.tasks.FindByID(context.Background(), "t1"); !errors.Is(err, domain.ErrTaskNotFound) {
		t.Fatalf("task t1 not deleted: %v", err)
	}
	if _, err := env.tickets.FindByID(context.Background(), "k1"); !errors.Is(err, domain.ErrTicketNotFound) {
		t.Fatalf("ticket k1 not deleted: %v", err)
	}
	if _, err := env.tasks.FindByID(context.Background(), "t3"); err != nil {
		t.Fatalf("task t3 should survive: %v", err)
	}
}

func TestProjectServiceListTasksMembership(t *testing.T) {
	env := newProjectEnv()
	env.projects.add(&domain.Project{ID: "p1", Name: "A", Status: domain.ProjectActive, ModeratorID: "mod", MemberIDs: []string{"dev"}})
	env.tasks.add(&domain.Task{ID: "t1", Title: "x", Status: domain.TaskOpen, ProjectID: "p1", AssignedTo: "dev", CreatedBy: "mod"})

	tasks, err := env.svc.ListTasks(context.Background(), devPrincipal, "p1")
	if err != nil {
		t.Fatalf("list tasks as member: %v", err)
	}
	if len(tasks) != 1 || tasks[0].ID != "t1" {
		t.Fatalf("unexpected tasks: %d", len(tasks))
	}

	outsider := domain.Principal{ID: "stranger", Role: domain.RoleUser}
	_, err = env.svc.ListTasks(context.Background(), outsider, "p1")
	if !errors.Is(err, domain.ErrAccessDenied) {
		t.Fatalf("expected ErrAccessDenied, got %v", err)
	}
}
