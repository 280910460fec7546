package service

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/taskboard/tracker-api/internal/core/domain"
	"github.com/taskboard/tracker-api/internal/core/ports"
)

// In-memory fakes shared by the service tests. They enforce the same
// contracts as the Mongo repositories (sentinel errors, pending-ticket
// uniqueness, conditional decisions) so workflow tests exercise realistic
// store behavior.

func testLogger() zerolog.Logger {
	return zerolog.Nop()
}

type memSink struct {
	mu      sync.Mutex
	entries []ports.ActivityInput
}

func (s *memSink) Emit(in ports.ActivityInput) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, in)
}

func (s *memSink) actions() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.entries))
	for i, e := range s.entries {
		out[i] = e.EntityType + ":" + e.Action
	}
	return out
}

// --- projects ---

type memProjectRepo struct {
	seq      int
	projects map[string]*domain.Project
}

func newMemProjectRepo() *memProjectRepo {
	return &memProjectRepo{projects: map[string]*domain.Project{}}
}

func (r *memProjectRepo) add(p *domain.Project) *domain.Project {
	if p.ID == "" {
		r.seq++
		p.ID = "p" + strconv.Itoa(r.seq)
	}
	cp := *p
	r.projects[p.ID] = &cp
	return p
}

func (r *memProjectRepo) Create(ctx context.Context, p *domain.Project) (string, error) {
	r.seq++
	id := "p" + strconv.Itoa(r.seq)
	cp := *p
	cp.ID = id
	r.projects[id] = &cp
	return id, nil
}

func (r *memProjectRepo) FindByID(ctx context.Context, id string) (*domain.Project, error) {
	p, ok := r.projects[id]
	if !ok {
		return nil, domain.ErrProjectNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *memProjectRepo) FindByIDs(ctx context.Context, ids []string) ([]*domain.Project, error) {
	var out []*domain.Project
	for _, id := range ids {
		if p, ok := r.projects[id]; ok {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *memProjectRepo) List(ctx context.Context, filter ports.ProjectFilter) ([]*domain.Project, error) {
	var out []*domain.Project
	for _, p := range r.projects {
		if filter.ModeratorOrMemberID != "" &&
			!p.IsModeratedBy(filter.ModeratorOrMemberID) && !p.HasMember(filter.ModeratorOrMemberID) {
			continue
		}
		if filter.IDs != nil {
			found := false
			for _, id := range filter.IDs {
				if id == p.ID {
					found = true
					break
				}
			}
			if !found {
				continue
			}
		}
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}

func (r *memProjectRepo) Update(ctx context.Context, p *domain.Project) error {
	if _, ok := r.projects[p.ID]; !ok {
		return domain.ErrProjectNotFound
	}
	cp := *p
	r.projects[p.ID] = &cp
	return nil
}

func (r *memProjectRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.projects[id]; !ok {
		return domain.ErrProjectNotFound
	}
	delete(r.projects, id)
	return nil
}

// --- tasks ---

type memTaskRepo struct {
	seq   int
	tasks map[string]*domain.Task
}

func newMemTaskRepo() *memTaskRepo {
	return &memTaskRepo{tasks: map[string]*domain.Task{}}
}

func (r *memTaskRepo) add(t *domain.Task) *domain.Task {
	if t.ID == "" {
		r.seq++
		t.ID = "t" + strconv.Itoa(r.seq)
	}
	cp := *t
	r.tasks[t.ID] = &cp
	return t
}

func (r *memTaskRepo) Create(ctx context.Context, t *domain.Task) (string, error) {
	r.seq++
	id := "t" + strconv.Itoa(r.seq)
	cp := *t
	cp.ID = id
	r.tasks[id] = &cp
	return id, nil
}

func (r *memTaskRepo) FindByID(ctx context.Context, id string) (*domain.Task, error) {
	t, ok := r.tasks[id]
	if !ok {
		return nil, domain.ErrTaskNotFound
	}
	cp := *t
	return &cp, nil
}

func (r *memTaskRepo) FindByIDs(ctx context.Context, ids []string) ([]*domain.Task, error) {
	var out []*domain.Task
	for _, id := range ids {
		if t, ok := r.tasks[id]; ok {
			cp := *t
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *memTaskRepo) List(ctx context.Context, filter ports.TaskFilter) ([]*domain.Task, error) {
	var out []*domain.Task
	for _, t := range r.tasks {
		if filter.AssignedTo != "" && t.AssignedTo != filter.AssignedTo {
			continue
		}
		if filter.ProjectIDs != nil {
			found := false
			for _, id := range filter.ProjectIDs {
				if id == t.ProjectID {
					found = true
					break
				}
			}
			if !found {
				continue
			}
		}
		cp := *t
		out = append(out, &cp)
	}
	return out, nil
}

func (r *memTaskRepo) Update(ctx context.Context, t *domain.Task) error {
	if _, ok := r.tasks[t.ID]; !ok {
		return domain.ErrTaskNotFound
	}
	cp := *t
	r.tasks[t.ID] = &cp
	return nil
}

func (r *memTaskRepo) UpdateStatus(ctx context.Context, id string, status domain.TaskStatus) error {
	t, ok := r.tasks[id]
	if !ok {
		return domain.ErrTaskNotFound
	}
	t.Status = status
	t.UpdatedAt = time.Now().UTC()
	return nil
}

func (r *memTaskRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.tasks[id]; !ok {
		return domain.ErrTaskNotFound
	}
	delete(r.tasks, id)
	return nil
}

func (r *memTaskRepo) ListIDsByProject(ctx context.Context, projectID string) ([]string, error) {
	var ids []string
	for _, t := range r.tasks {
		if t.ProjectID == projectID {
			ids = append(ids, t.ID)
		}
	}
	return ids, nil
}

func (r *memTaskRepo) DeleteByProject(ctx context.Context, projectID string) error {
	for id, t := range r.tasks {
		if t.ProjectID == projectID {
			delete(r.tasks, id)
		}
	}
	return nil
}

func (r *memTaskRepo) ListProjectIDsByAssignee(ctx context.Context, userID string) ([]string, error) {
	seen := map[string]struct{}{}
	var ids []string
	for _, t := range r.tasks {
		if t.AssignedTo == userID {
			if _, ok := seen[t.ProjectID]; !ok {
				seen[t.ProjectID] = struct{}{}
				ids = append(ids, t.ProjectID)
			}
		}
	}
	return ids, nil
}

func (r *memTaskRepo) HasAssignedTask(ctx context.Context, projectID, userID string) (bool, error) {
	for _, t := range r.tasks {
		if t.ProjectID == projectID && t.AssignedTo == userID {
			return true, nil
		}
	}
	return false, nil
}

// --- tickets ---

type memTicketRepo struct {
	seq     int
	tickets map[string]*domain.Ticket
}

func newMemTicketRepo() *memTicketRepo {
	return &memTicketRepo{tickets: map[string]*domain.Ticket{}}
}

func (r *memTicketRepo) add(t *domain.Ticket) *domain.Ticket {
	if t.ID == "" {
		r.seq++
		t.ID = "k" + strconv.Itoa(r.seq)
	}
	cp := *t
	r.tickets[t.ID] = &cp
	return t
}

func (r *memTicketRepo) Create(ctx context.Context, t *domain.Ticket) (string, error) {
	for _, existing := range r.tickets {
		if existing.TaskID == t.TaskID && existing.ResolvedBy == t.ResolvedBy &&
			existing.Status == domain.TicketPending {
			return "", domain.ErrDuplicatePendingTicket
		}
	}
	r.seq++
	id := "k" + strconv.Itoa(r.seq)
	cp := *t
	cp.ID = id
	r.tickets[id] = &cp
	return id, nil
}

func (r *memTicketRepo) FindByID(ctx context.Context, id string) (*domain.Ticket, error) {
	t, ok := r.tickets[id]
	if !ok {
		return nil, domain.ErrTicketNotFound
	}
	cp := *t
	return &cp, nil
}

func (r *memTicketRepo) List(ctx context.Context, filter ports.TicketFilter) ([]*domain.Ticket, error) {
	var out []*domain.Ticket
	for _, t := range r.tickets {
		if filter.ResolvedBy != "" && t.ResolvedBy != filter.ResolvedBy {
			continue
		}
		if filter.TaskIDs != nil {
			found := false
			for _, id := range filter.TaskIDs {
				if id == t.TaskID {
					found = true
					break
				}
			}
			if !found {
				continue
			}
		}
		cp := *t
		out = append(out, &cp)
	}
	return out, nil
}

func (r *memTicketRepo) Decide(ctx context.Context, id string, decision domain.TicketStatus, verifiedBy string, verifiedAt time.Time, rejectionReason string) error {
	t, ok := r.tickets[id]
	if !ok {
		return domain.ErrTicketNotFound
	}
	if t.Status != domain.TicketPending {
		return domain.ErrTicketAlreadyDecided
	}
	t.Status = decision
	t.VerifiedBy = verifiedBy
	t.VerifiedAt = &verifiedAt
	t.RejectionReason = rejectionReason
	t.UpdatedAt = verifiedAt
	return nil
}

func (r *memTicketRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.tickets[id]; !ok {
		return domain.ErrTicketNotFound
	}
	delete(r.tickets, id)
	return nil
}

func (r *memTicketRepo) DeleteByTaskIDs(ctx context.Context, taskIDs []string) error {
	for id, t := range r.tickets {
		for _, taskID := range taskIDs {
			if t.TaskID == taskID {
				delete(r.tickets, id)
				break
			}
		}
	}
	return nil
}

func (r *memTicketRepo) CountByResolver(ctx context.Context, userID string, status domain.TicketStatus) (int64, error) {
	var n int64
	for _, t := range r.tickets {
		if t.ResolvedBy == userID && t.Status == status {
			n++
		}
	}
	return n, nil
}

// --- users ---

type memUserRepo struct {
	seq   int
	users map[string]*domain.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: map[string]*domain.User{}}
}

func (r *memUserRepo) add(u *domain.User) *domain.User {
	if u.ID == "" {
		r.seq++
		u.ID = "u" + strconv.Itoa(r.seq)
	}
	cp := *u
	r.users[u.ID] = &cp
	return u
}

func (r *memUserRepo) Create(ctx context.Context, u *domain.User) (*domain.User, error) {
	for _, existing := range r.users {
		if existing.Email == u.Email {
			return nil, domain.ErrUserExists
		}
	}
	r.seq++
	cp := *u
	cp.ID = "u" + strconv.Itoa(r.seq)
	r.users[cp.ID] = &cp
	out := cp
	return &out, nil
}

func (r *memUserRepo) FindByID(ctx context.Context, id string) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *memUserRepo) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *memUserRepo) List(ctx context.Context) ([]*domain.User, error) {
	var out []*domain.User
	for _, u := range r.users {
		cp := *u
		out = append(out, &cp)
	}
	return out, nil
}

func (r *memUserRepo) ListByRole(ctx context.Context, role domain.Role) ([]*domain.User, error) {
	var out []*domain.User
	for _, u := range r.users {
		if u.Role == role && u.IsActive {
			cp := *u
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *memUserRepo) Summaries(ctx context.Context, ids []string) (map[string]ports.UserSummary, error) {
	out := make(map[string]ports.UserSummary, len(ids))
	for _, id := range ids {
		if u, ok := r.users[id]; ok {
			out[id] = ports.UserSummary{ID: u.ID, Name: u.Name, Email: u.Email}
		}
	}
	return out, nil
}

func (r *memUserRepo) Update(ctx context.Context, u *domain.User) error {
	if _, ok := r.users[u.ID]; !ok {
		return domain.ErrUserNotFound
	}
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *memUserRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}
