package ports

import "context"

// StatusCount is a single bucket of a status distribution.
type StatusCount struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

// ResolverCount ranks users by verified tickets.
type ResolverCount struct {
	UserID          string `json:"user_id"`
	UserName        string `json:"user_name"`
	UserEmail       string `json:"user_email"`
	TicketsResolved int64  `json:"tickets_resolved"`
}

// ModeratorPerformance summarises one moderator's portfolio.
type ModeratorPerformance struct {
	ModeratorID       string `json:"moderator_id"`
	ModeratorName     string `json:"moderator_name"`
	ModeratorEmail    string `json:"moderator_email"`
	ProjectsCount     int64  `json:"projects_count"`
	ActiveProjects    int64  `json:"active_projects"`
	CompletedProjects int64  `json:"completed_projects"`
	TotalTasks        int64  `json:"total_tasks"`
	ResolvedTasks     int64  `json:"resolved_tasks"`
}

// SystemTotals is the headline counter block of the system report.
type SystemTotals struct {
	Projects int64 `json:"projects"`
	Tasks    int64 `json:"tasks"`
	Users    int64 `json:"users"`
	Tickets  int64 `json:"tickets"`
}

// SystemReport is the admin-wide rollup.
type SystemReport struct {
	ProjectStatus        []StatusCount          `json:"project_status"`
	TaskDistribution     []StatusCount          `json:"task_distribution"`
	Totals               SystemTotals           `json:"totals"`
	TicketsPerUser       []ResolverCount        `json:"tickets_per_user"`
	ModeratorPerformance []ModeratorPerformance `json:"moderator_performance"`
}

// AssigneeProgress summarises one user's tasks inside a scope.
type AssigneeProgress struct {
	UserID          string `json:"user_id"`
	UserName        string `json:"user_name"`
	UserEmail       string `json:"user_email"`
	TotalTasks      int64  `json:"total_tasks"`
	OpenTasks       int64  `json:"open_tasks,omitempty"`
	InProgressTasks int64  `json:"in_progress_tasks,omitempty"`
	ResolvedTasks   int64  `json:"resolved_tasks"`
}

// TicketCounts is a ticket status breakdown.
type TicketCounts struct {
	Total    int64 `json:"total"`
	Verified int64 `json:"verified"`
	Pending  int64 `json:"pending"`
	Rejected int64 `json:"rejected"`
}

// TaskCounts is a task status breakdown.
type TaskCounts struct {
	TotalTasks      int64 `json:"total_tasks"`
	OpenTasks       int64 `json:"open_tasks"`
	InProgressTasks int64 `json:"in_progress_tasks"`
	ResolvedTasks   int64 `json:"resolved_tasks"`
}

// ProjectReport is the per-project rollup.
type ProjectReport struct {
	Project          ProjectSummary     `json:"project"`
	TaskDistribution []StatusCount      `json:"task_distribution"`
	TasksByPriority  []StatusCount      `json:"tasks_by_priority"`
	TasksByUser      []AssigneeProgress `json:"tasks_by_user"`
	Tickets          TicketCounts       `json:"tickets"`
	Summary          TaskCounts         `json:"summary"`
}

// ModeratorReport covers every project a moderator owns (or all projects for
// an admin caller).
type ModeratorReport struct {
	ProjectStatus    []StatusCount      `json:"project_status"`
	TaskDistribution []StatusCount      `json:"task_distribution"`
	TeamProgress     []AssigneeProgress `json:"team_progress"`
	Tickets          TicketCounts       `json:"tickets"`
	Summary          struct {
		TotalProjects int64 `json:"total_projects"`
		TotalTasks    int64 `json:"total_tasks"`
		TotalTickets  int64 `json:"total_tickets"`
	} `json:"summary"`
}

// UserReport is the personal rollup for the calling user.
type UserReport struct {
	Tasks struct {
		Total  int64         `json:"total"`
		Status []StatusCount `json:"status"`
	} `json:"tasks"`
	Tickets struct {
		Resolved int64 `json:"resolved"`
		Pending  int64 `json:"pending"`
	} `json:"tickets"`
	Projects struct {
		Total int64 `json:"total"`
	} `json:"projects"`
}

// AnalyticsRepository computes read-only rollups over the entity collections.
type AnalyticsRepository interface {
	SystemReport(ctx context.Context) (*SystemReport, error)
	ProjectReport(ctx context.Context, projectID string) (*ProjectReport, error)
	// ModeratorReport scopes to projects moderated by moderatorID; an empty
	// id means all projects (admin).
	ModeratorReport(ctx context.Context, moderatorID string) (*ModeratorReport, error)
	UserReport(ctx context.Context, userID string) (*UserReport, error)
}
