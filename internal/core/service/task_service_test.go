package service

import (
	"context"
	"errors"
	"testing"

	"github.com/taskboard/tracker-api/internal/core/domain"
	"github.com/taskboard/tracker-api/internal/core/ports"
)

type taskEnv struct {
	projects *memProjectRepo
	tasks    *memTaskRepo
	tickets  *memTicketRepo
	users    *memUserRepo
	sink     *memSink
	svc      *TaskService
}

func newTaskEnv() *taskEnv {
	env := &taskEnv{
		projects: newMemProjectRepo(),
		tasks:    newMemTaskRepo(),
		tickets:  newMemTicketRepo(),
		users:    newMemUserRepo(),
		sink:     &memSink{},
	}
	env.svc = NewTaskService(env.tasks, env.projects, env.tickets, env.users, env.sink, testLogger())
	env.projects.add(&domain.Project{ID: "p1", Name: "Billing", Status: domain.ProjectActive, ModeratorID: "mod", MemberIDs: []string{"dev"}})
	return env
}

func TestTaskServiceCreateDefaultsPriority(t *testing.T) {
	env := newTaskEnv()

	view, err := env.svc.Create(context.Background(), modPrincipal, ports.CreateTaskInput{
		Title:     "Fix invoice rounding",
		ProjectID: "p1",
	})
	if err != nil {
		t.Fatalf("create task: %v", err)
	}

	if view.Status != domain.TaskOpen {
		t.Fatalf("new task must be open, got %s", view.Status)
	}
	if view.Priority != domain.PriorityMedium {
		t.Fatalf("priority must default to medium, got %s", view.Priority)
	}
	if view.Project.ID != "p1" {
		t.Fatalf("unexpected project %q", view.Project.ID)
	}
}

func TestTaskServiceCreateRejectsUnknownPriority(t *testing.T) {
	env := newTaskEnv()

	_, err := env.svc.Create(context.Background(), modPrincipal, ports.CreateTaskInput{
		Title:     "x",
		ProjectID: "p1",
		Priority:  "urgent",
	})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestTaskServiceCreateForeignModeratorDenied(t *testing.T) {
	env := newTaskEnv()

	other := domain.Principal{ID: "other-mod", Role: domain.RoleModerator}
	_, err := env.svc.Create(context.Background(), other, ports.CreateTaskInput{Title: "x", ProjectID: "p1"})
	if !errors.Is(err, domain.ErrAccessDenied) {
		t.Fatalf("expected ErrAccessDenied, got %v", err)
	}
}

func TestTaskServiceAssigneeStatusTransitions(t *testing.T) {
	cases := []struct {
		name    string
		from    domain.TaskStatus
		to      string
		wantErr bool
	}{
		{"open to in-progress", domain.TaskOpen, "in-progress", false},
		{"idempotent restatement", domain.TaskInProgress, "in-progress", false},
		{"open to resolved", domain.TaskOpen, "resolved", true},
		{"in-progress to resolved", domain.TaskInProgress, "resolved", true},
		{"in-progress back to open", domain.TaskInProgress, "open", true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			env := newTaskEnv()
			env.tasks.add(&domain.Task{ID: "t1", Title: "x", Status: tc.from, Priority: domain.PriorityMedium, ProjectID: "p1", AssignedTo: "dev", CreatedBy: "mod"})

			view, err := env.svc.Update(context.Background(), devPrincipal, "t1", ports.UpdateTaskInput{Status: tc.to})
			if tc.wantErr {
				if !errors.Is(err, domain.ErrInvalidTransition) {
					t.Fatalf("expected ErrInvalidTransition, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("update: %v", err)
			}
			if view.Status != domain.TaskStatus(tc.to) {
				t.Fatalf("status not applied, got %s", view.Status)
			}
		})
	}
}

func TestTaskServiceManagerSetsAnyStatus(t *testing.T) {
	env := newTaskEnv()
	env.tasks.add(&domain.Task{ID: "t1", Title: "x", Status: domain.TaskOpen, Priority: domain.PriorityMedium, ProjectID: "p1", AssignedTo: "dev", CreatedBy: "mod"})

	view, err := env.svc.Update(context.Background(), modPrincipal, "t1", ports.UpdateTaskInput{Status: "resolved"})
	if err != nil {
		t.Fatalf("moderator update: %v", err)
	}
	if view.Status != domain.TaskResolved {
		t.Fatalf("expected resolved, got %s", view.Status)
	}

	admin := domain.Principal{ID: "root", Role: domain.RoleAdmin}
	view, err = env.svc.Update(context.Background(), admin, "t1", ports.UpdateTaskInput{Status: "open"})
	if err != nil {
		t.Fatalf("admin update: %v", err)
	}
	if view.Status != domain.TaskOpen {
		t.Fatalf("expected open, got %s", view.Status)
	}
}

func TestTaskServiceAssigneeCannotEditFields(t *testing.T) {
	env := newTaskEnv()
	env.tasks.add(&domain.Task{ID: "t1", Title: "original", Status: domain.TaskOpen, Priority: domain.PriorityLow, ProjectID: "p1", AssignedTo: "dev", CreatedBy: "mod"})

	// field edits by the assignee are silently ignored; only status applies
	view, err := env.svc.Update(context.Background(), devPrincipal, "t1", ports.UpdateTaskInput{
		Title:    "hijacked",
		Priority: "high",
		Status:   "in-progress",
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if view.Title != "original" || view.Priority != domain.PriorityLow {
		t.Fatalf("assignee must not edit fields, got title=%q priority=%s", view.Title, view.Priority)
	}
	if view.Status != domain.TaskInProgress {
		t.Fatalf("status change not applied, got %s", view.Status)
	}
}

func TestTaskServiceUpdateStrangerDenied(t *testing.T) {
	env := newTaskEnv()
	env.tasks.add(&domain.Task{ID: "t1", Title: "x", Status: domain.TaskOpen, Priority: domain.PriorityMedium, ProjectID: "p1", AssignedTo: "dev", CreatedBy: "mod"})

	stranger := domain.Principal{ID: "stranger", Role: domain.RoleUser}
	_, err := env.svc.Update(context.Background(), stranger, "t1", ports.UpdateTaskInput{Status: "in-progress"})
	if !errors.Is(err, domain.ErrAccessDenied) {
		t.Fatalf("expected ErrAccessDenied, got %v", err)
	}
}

func TestTaskServiceDeleteCascadesTickets(t *testing.T) {
	env := newTaskEnv()
	env.tasks.add(&domain.Task{ID: "t1", Title: "x", Status: domain.TaskResolved, Priority: domain.PriorityMedium, ProjectID: "p1", AssignedTo: "dev", CreatedBy: "mod"})
	env.tickets.add(&domain.Ticket{ID: "k1", TaskID: "t1", ResolvedBy: "dev", Status: domain.TicketPending})

	if err := env.svc.Delete(context.Background(), modPrincipal, "t1"); err != nil {
		t.Fatalf("delete task: %v", err)
	}

	if _, err := env.tasks.FindByID(context.Background(), "t1"); !errors.Is(err, domain.ErrTaskNotFound) {
		t.Fatalf("task not deleted: %v", err)
	}
	if _, err := env.tickets.FindByID(context.Background(), "k1"); !errors.Is(err, domain.ErrTicketNotFound) {
		t.Fatalf("ticket not cascaded: %v", err)
	}
}

func TestTaskServiceListScoping(t *testing.T) {
	env := newTaskEnv()
	env.projects.add(&domain.Project{ID: "p2", Name: "Other", Status: domain.ProjectActive, ModeratorID: "other", MemberIDs: []string{}})
	env.tasks.add(&domain.Task{ID: "t1", Title: "a", Status: domain.TaskOpen, ProjectID: "p1", AssignedTo: "dev", CreatedBy: "mod"})
	env.tasks.add(&domain.Task{ID: "t2", Title: "b", Status: domain.TaskOpen, ProjectID: "p2", AssignedTo: "dev2", CreatedBy: "other"})

	admin := domain.Principal{ID: "root", Role: domain.RoleAdmin}
	got, err := env.svc.List(context.Background(), admin)
	if err != nil {
		t.Fatalf("list as admin: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("admin sees all tasks, got %d", len(got))
	}

	got, err = env.svc.List(context.Background(), modPrincipal)
	if err != nil {
		t.Fatalf("list as moderator: %v", err)
	}
	if len(got) != 1 || got[0].ID != "t1" {
		t.Fatalf("moderator should see only p1 tasks, got %d", len(got))
	}

	got, err = env.svc.List(context.Background(), devPrincipal)
	if err != nil {
		t.Fatalf("list as user: %v", err)
	}
	if len(got) != 1 || got[0].ID != "t1" {
		t.Fatalf("user should see only assigned tasks, got %d", len(got))
	}
}

func TestTaskServiceGetVisibility(t *testing.T) {
	env := newTaskEnv()
	env.tasks.add(&domain.Task{ID: "t1", Title: "x", Status: domain.TaskOpen, Priority: domain.PriorityMedium, ProjectID: "p1", AssignedTo: "dev", CreatedBy: "mod"})

	if _, err := env.svc.Get(context.Background(), devPrincipal, "t1"); err != nil {
		t.Fatalf("assignee get: %v", err)
	}

	stranger := domain.Principal{ID: "stranger", Role: domain.RoleUser}
	_, err := env.svc.Get(context.Background(), stranger, "t1")
	if !errors.Is(err, domain.ErrAccessDenied) {
		t.Fatalf("expected ErrAccessDenied, got %v", err)
	}

	_, err = env.svc.Get(context.Background(), devPrincipal, "missing")
	if !errors.Is(err, domain.ErrTaskNotFound) {
		t.Fatalf("expected ErrTaskNotFound, got %v", err)
	}
}
