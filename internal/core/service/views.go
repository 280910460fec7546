package service

import (
	"github.com/taskboard/tracker-api/internal/core/domain"
	"github.com/taskboard/tracker-api/internal/core/ports"
)

// View assembly helpers shared by the entity services. They turn id
// references into the explicit summary shapes of the read models.

func projectSummary(p *domain.Project) ports.ProjectSummary {
	return ports.ProjectSummary{ID: p.ID, Name: p.Name, Status: p.Status}
}

// summaryPtr looks up id in the resolved summary map, returning nil for
// empty or unknown ids.
func summaryPtr(summaries map[string]ports.UserSummary, id string) *ports.UserSummary {
	if id == "" {
		return nil
	}
	s, ok := summaries[id]
	if !ok {
		return nil
	}
	return &s
}

func projectView(p *domain.Project, summaries map[string]ports.UserSummary) ports.ProjectView {
	members := make([]ports.UserSummary, 0, len(p.MemberIDs))
	for _, id := range p.MemberIDs {
		if s, ok := summaries[id]; ok {
			members = append(members, s)
		}
	}
	moderator := ports.UserSummary{ID: p.ModeratorID}
	if s, ok := summaries[p.ModeratorID]; ok {
		moderator = s
	}
	return ports.ProjectView{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Status:      p.Status,
		Moderator:   moderator,
		Members:     members,
		StartDate:   p.StartDate,
		EndDate:     p.EndDate,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func taskView(t *domain.Task, project *domain.Project, summaries map[string]ports.UserSummary) ports.TaskView {
	return ports.TaskView{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Status:      t.Status,
		Priority:    t.Priority,
		Project:     projectSummary(project),
		AssignedTo:  summaryPtr(summaries, t.AssignedTo),
		CreatedBy:   summaryPtr(summaries, t.CreatedBy),
		DueDate:     t.DueDate,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

func ticketView(t *domain.Ticket, task *domain.Task, project *domain.Project, summaries map[string]ports.UserSummary) ports.TicketView {
	return ports.TicketView{
		ID: t.ID,
		Task: ports.TaskSummary{
			ID:      task.ID,
			Title:   task.Title,
			Status:  task.Status,
			Project: projectSummary(project),
		},
		ResolvedBy:      summaryPtr(summaries, t.ResolvedBy),
		ResolutionNotes: t.ResolutionNotes,
		Status:          t.Status,
		VerifiedBy:      summaryPtr(summaries, t.VerifiedBy),
		VerifiedAt:      t.VerifiedAt,
		RejectionReason: t.RejectionReason,
		CreatedAt:       t.CreatedAt,
		UpdatedAt:       t.UpdatedAt,
	}
}

// dedupeIDs deduplicates the given id lists, skipping empties.
func dedupeIDs(idLists ...[]string) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, list := range idLists {
		for _, id := range list {
			if id == "" {
				continue
			}
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			out = append(out, id)
		}
	}
	return out
}
