package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/taskboard/tracker-api/internal/core/domain"
	"github.com/taskboard/tracker-api/internal/core/ports"
)

// AnalyticsRepository computes report rollups with aggregation pipelines so
// the counting stays inside the database.
type AnalyticsRepository struct {
	projects *mongo.Collection
	tasks    *mongo.Collection
	tickets  *mongo.Collection
	users    *mongo.Collection
}

func NewAnalyticsRepository(db *mongo.Database) *AnalyticsRepository {
	return &AnalyticsRepository{
		projects: db.Collection(collectionProjects),
		tasks:    db.Collection(collectionTasks),
		tickets:  db.Collection(collectionTickets),
		users:    db.Collection(collectionUsers),
	}
}

type countRow struct {
	ID    string `bson:"_id"`
	Count int64  `bson:"count"`
}

// condSum counts documents whose field equals value inside a $group stage.
func condSum(field, value string) bson.M {
	return bson.M{"$sum": bson.M{"$cond": bson.A{
		bson.M{"$eq": bson.A{field, value}}, 1, 0,
	}}}
}

// SystemReport builds the admin-wide rollup.
func (r *AnalyticsRepository) SystemReport(ctx context.Context) (*ports.SystemReport, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	projectStatus, err := statusCounts(ctx, r.projects, "status", nil)
	if err != nil {
		return nil, err
	}
	taskDistribution, err := statusCounts(ctx, r.tasks, "status", nil)
	if err != nil {
		return nil, err
	}

	totals, err := r.systemTotals(ctx)
	if err != nil {
		return nil, err
	}
	ticketsPerUser, err := r.ticketsPerUser(ctx)
	if err != nil {
		return nil, err
	}
	moderatorPerformance, err := r.moderatorPerformance(ctx)
	if err != nil {
		return nil, err
	}

	return &ports.SystemReport{
		ProjectStatus:        projectStatus,
		TaskDistribution:     taskDistribution,
		Totals:               totals,
		TicketsPerUser:       ticketsPerUser,
		ModeratorPerformance: moderatorPerformance,
	}, nil
}

func (r *AnalyticsRepository) systemTotals(ctx context.Context) (ports.SystemTotals, error) {
	var totals ports.SystemTotals
	var err error

	if totals.Projects, err = r.projects.CountDocuments(ctx, bson.M{}); err != nil {
		return totals, fmt.Errorf("count projects: %w", err)
	}
	if totals.Tasks, err = r.tasks.CountDocuments(ctx, bson.M{}); err != nil {
		return totals, fmt.Errorf("count tasks: %w", err)
	}
	if totals.Users, err = r.users.CountDocuments(ctx, bson.M{"is_active": true}); err != nil {
		return totals, fmt.Errorf("count users: %w", err)
	}
	if totals.Tickets, err = r.tickets.CountDocuments(ctx, bson.M{}); err != nil {
		return totals, fmt.Errorf("count tickets: %w", err)
	}
	return totals, nil
}

func (r *AnalyticsRepository) ticketsPerUser(ctx context.Context) ([]ports.ResolverCount, error) {
	pipeline := bson.A{
		bson.M{"$match": bson.M{"status": string(domain.TicketVerified)}},
		bson.M{"$group": bson.M{
			"_id":   "$resolved_by",
			"count": bson.M{"$sum": 1},
		}},
		bson.M{"$lookup": bson.M{
			"from":         collectionUsers,
			"localField":   "_id",
			"foreignField": "_id",
			"as":           "user",
		}},
		bson.M{"$unwind": "$user"},
		bson.M{"$project": bson.M{
			"user_name":        "$user.name",
			"user_email":       "$user.email",
			"tickets_resolved": "$count",
		}},
		bson.M{"$sort": bson.M{"tickets_resolved": -1}},
		bson.M{"$limit": 10},
	}

	cur, err := r.tickets.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("tickets per user: %w", err)
	}

	var rows []struct {
		ID              primitive.ObjectID `bson:"_id"`
		UserName        string             `bson:"user_name"`
		UserEmail       string             `bson:"user_email"`
		TicketsResolved int64              `bson:"tickets_resolved"`
	}
	if err := cur.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("decode tickets per user: %w", err)
	}

	out := make([]ports.ResolverCount, 0, len(rows))
	for _, row := range rows {
		out = append(out, ports.ResolverCount{
			UserID:          row.ID.Hex(),
			UserName:        row.UserName,
			UserEmail:       row.UserEmail,
			TicketsResolved: row.TicketsResolved,
		})
	}
	return out, nil
}

func (r *AnalyticsRepository) moderatorPerformance(ctx context.Context) ([]ports.ModeratorPerformance, error) {
	pipeline := bson.A{
		bson.M{"$group": bson.M{
			"_id":            "$moderator_id",
			"projects_count": bson.M{"$sum": 1},
			"active":         condSum("$status", string(domain.ProjectActive)),
			"completed":      condSum("$status", string(domain.ProjectCompleted)),
			"project_ids":    bson.M{"$push": "$_id"},
		}},
		bson.M{"$lookup": bson.M{
			"from":         collectionUsers,
			"localField":   "_id",
			"foreignField": "_id",
			"as":           "moderator",
		}},
		bson.M{"$unwind": "$moderator"},
		bson.M{"$lookup": bson.M{
			"from":         collectionTasks,
			"localField":   "project_ids",
			"foreignField": "project_id",
			"as":           "tasks",
		}},
		bson.M{"$project": bson.M{
			"moderator_name":  "$moderator.name",
			"moderator_email": "$moderator.email",
			"projects_count":  1,
			"active":          1,
			"completed":       1,
			"total_tasks":     bson.M{"$size": "$tasks"},
			"resolved_tasks": bson.M{"$size": bson.M{"$filter": bson.M{
				"input": "$tasks",
				"as":    "t",
				"cond":  bson.M{"$eq": bson.A{"$$t.status", string(domain.TaskResolved)}},
			}}},
		}},
		bson.M{"$sort": bson.M{"projects_count": -1}},
	}

	cur, err := r.projects.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("moderator performance: %w", err)
	}

	var rows []struct {
		ID             primitive.ObjectID `bson:"_id"`
		ModeratorName  string             `bson:"moderator_name"`
		ModeratorEmail string             `bson:"moderator_email"`
		ProjectsCount  int64              `bson:"projects_count"`
		Active         int64              `bson:"active"`
		Completed      int64              `bson:"completed"`
		TotalTasks     int64              `bson:"total_tasks"`
		ResolvedTasks  int64              `bson:"resolved_tasks"`
	}
	if err := cur.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("decode moderator performance: %w", err)
	}

	out := make([]ports.ModeratorPerformance, 0, len(rows))
	for _, row := range rows {
		out = append(out, ports.ModeratorPerformance{
			ModeratorID:       row.ID.Hex(),
			ModeratorName:     row.ModeratorName,
			ModeratorEmail:    row.ModeratorEmail,
			ProjectsCount:     row.ProjectsCount,
			ActiveProjects:    row.Active,
			CompletedProjects: row.Completed,
			TotalTasks:        row.TotalTasks,
			ResolvedTasks:     row.ResolvedTasks,
		})
	}
	return out, nil
}

// ProjectReport builds the per-project rollup.
func (r *AnalyticsRepository) ProjectReport(ctx context.Context, projectID string) (*ports.ProjectReport, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, ok := objectID(projectID)
	if !ok {
		return nil, domain.ErrProjectNotFound
	}

	var project struct {
		ID     primitive.ObjectID `bson:"_id"`
		Name   string             `bson:"name"`
		Status string             `bson:"status"`
	}
	err := r.projects.FindOne(ctx, bson.M{"_id": oid}).Decode(&project)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrProjectNotFound
		}
		return nil, fmt.Errorf("find project: %w", err)
	}

	taskMatch := bson.M{"project_id": oid}
	taskDistribution, err := statusCounts(ctx, r.tasks, "status", taskMatch)
	if err != nil {
		return nil, err
	}
	tasksByPriority, err := statusCounts(ctx, r.tasks, "priority", taskMatch)
	if err != nil {
		return nil, err
	}
	tasksByUser, err := r.assigneeProgress(ctx, taskMatch)
	if err != nil {
		return nil, err
	}
	tickets, err := r.ticketCounts(ctx, bson.M{"project_id": oid})
	if err != nil {
		return nil, err
	}

	return &ports.ProjectReport{
		Project: ports.ProjectSummary{
			ID:     project.ID.Hex(),
			Name:   project.Name,
			Status: domain.ProjectStatus(project.Status),
		},
		TaskDistribution: taskDistribution,
		TasksByPriority:  tasksByPriority,
		TasksByUser:      tasksByUser,
		Tickets:          tickets,
		Summary:          foldTaskCounts(taskDistribution),
	}, nil
}

// ModeratorReport covers every project the moderator owns; an empty id means
// all projects.
func (r *AnalyticsRepository) ModeratorReport(ctx context.Context, moderatorID string) (*ports.ModeratorReport, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	projectMatch := bson.M{}
	if moderatorID != "" {
		oid, ok := objectID(moderatorID)
		if !ok {
			return nil, domain.ErrUserNotFound
		}
		projectMatch["moderator_id"] = oid
	}

	projectStatus, err := statusCounts(ctx, r.projects, "status", projectMatch)
	if err != nil {
		return nil, err
	}

	projectIDs, err := r.projects.Distinct(ctx, "_id", projectMatch)
	if err != nil {
		return nil, fmt.Errorf("distinct project ids: %w", err)
	}
	taskMatch := bson.M{"project_id": bson.M{"$in": projectIDs}}

	taskDistribution, err := statusCounts(ctx, r.tasks, "status", taskMatch)
	if err != nil {
		return nil, err
	}
	teamProgress, err := r.assigneeProgress(ctx, taskMatch)
	if err != nil {
		return nil, err
	}
	tickets, err := r.ticketCounts(ctx, taskMatch)
	if err != nil {
		return nil, err
	}

	report := &ports.ModeratorReport{
		ProjectStatus:    projectStatus,
		TaskDistribution: taskDistribution,
		TeamProgress:     teamProgress,
		Tickets:          tickets,
	}
	for _, c := range projectStatus {
		report.Summary.TotalProjects += c.Count
	}
	for _, c := range taskDistribution {
		report.Summary.TotalTasks += c.Count
	}
	report.Summary.TotalTickets = tickets.Total
	return report, nil
}

// UserReport builds the personal rollup for one user.
func (r *AnalyticsRepository) UserReport(ctx context.Context, userID string) (*ports.UserReport, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, ok := objectID(userID)
	if !ok {
		return nil, domain.ErrUserNotFound
	}

	taskStatus, err := statusCounts(ctx, r.tasks, "status", bson.M{"assigned_to": oid})
	if err != nil {
		return nil, err
	}

	report := &ports.UserReport{}
	report.Tasks.Status = taskStatus
	for _, c := range taskStatus {
		report.Tasks.Total += c.Count
	}

	resolved, err := r.tickets.CountDocuments(ctx, bson.M{
		"resolved_by": oid, "status": string(domain.TicketVerified),
	})
	if err != nil {
		return nil, fmt.Errorf("count verified tickets: %w", err)
	}
	pending, err := r.tickets.CountDocuments(ctx, bson.M{
		"resolved_by": oid, "status": string(domain.TicketPending),
	})
	if err != nil {
		return nil, fmt.Errorf("count pending tickets: %w", err)
	}
	report.Tickets.Resolved = resolved
	report.Tickets.Pending = pending

	memberOf, err := r.projects.CountDocuments(ctx, bson.M{"member_ids": oid})
	if err != nil {
		return nil, fmt.Errorf("count member projects: %w", err)
	}
	report.Projects.Total = memberOf
	return report, nil
}

// assigneeProgress groups assigned tasks by assignee inside the given task
// scope and resolves each assignee through a users lookup.
func (r *AnalyticsRepository) assigneeProgress(ctx context.Context, taskMatch bson.M) ([]ports.AssigneeProgress, error) {
	match := bson.M{"assigned_to": bson.M{"$exists": true}}
	for k, v := range taskMatch {
		match[k] = v
	}

	pipeline := bson.A{
		bson.M{"$match": match},
		bson.M{"$group": bson.M{
			"_id":         "$assigned_to",
			"total":       bson.M{"$sum": 1},
			"open":        condSum("$status", string(domain.TaskOpen)),
			"in_progress": condSum("$status", string(domain.TaskInProgress)),
			"resolved":    condSum("$status", string(domain.TaskResolved)),
		}},
		bson.M{"$lookup": bson.M{
			"from":         collectionUsers,
			"localField":   "_id",
			"foreignField": "_id",
			"as":           "user",
		}},
		bson.M{"$unwind": "$user"},
		bson.M{"$project": bson.M{
			"user_name":   "$user.name",
			"user_email":  "$user.email",
			"total":       1,
			"open":        1,
			"in_progress": 1,
			"resolved":    1,
		}},
		bson.M{"$sort": bson.M{"total": -1}},
	}

	cur, err := r.tasks.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("assignee progress: %w", err)
	}

	var rows []struct {
		ID         primitive.ObjectID `bson:"_id"`
		UserName   string             `bson:"user_name"`
		UserEmail  string             `bson:"user_email"`
		Total      int64              `bson:"total"`
		Open       int64              `bson:"open"`
		InProgress int64              `bson:"in_progress"`
		Resolved   int64              `bson:"resolved"`
	}
	if err := cur.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("decode assignee progress: %w", err)
	}

	out := make([]ports.AssigneeProgress, 0, len(rows))
	for _, row := range rows {
		out = append(out, ports.AssigneeProgress{
			UserID:          row.ID.Hex(),
			UserName:        row.UserName,
			UserEmail:       row.UserEmail,
			TotalTasks:      row.Total,
			OpenTasks:       row.Open,
			InProgressTasks: row.InProgress,
			ResolvedTasks:   row.Resolved,
		})
	}
	return out, nil
}

// ticketCounts rolls up ticket statuses for every ticket whose task matches
// the given task filter.
func (r *AnalyticsRepository) ticketCounts(ctx context.Context, taskMatch bson.M) (ports.TicketCounts, error) {
	taskIDs, err := r.tasks.Distinct(ctx, "_id", taskMatch)
	if err != nil {
		return ports.TicketCounts{}, fmt.Errorf("distinct task ids: %w", err)
	}

	byStatus, err := statusCounts(ctx, r.tickets, "status", bson.M{"task_id": bson.M{"$in": taskIDs}})
	if err != nil {
		return ports.TicketCounts{}, err
	}

	var counts ports.TicketCounts
	for _, c := range byStatus {
		counts.Total += c.Count
		switch domain.TicketStatus(c.Status) {
		case domain.TicketVerified:
			counts.Verified = c.Count
		case domain.TicketPending:
			counts.Pending = c.Count
		case domain.TicketRejected:
			counts.Rejected = c.Count
		}
	}
	return counts, nil
}

// statusCounts groups a collection by one field and counts each bucket.
func statusCounts(ctx context.Context, col *mongo.Collection, field string, match bson.M) ([]ports.StatusCount, error) {
	pipeline := bson.A{}
	if match != nil {
		pipeline = append(pipeline, bson.M{"$match": match})
	}
	pipeline = append(pipeline,
		bson.M{"$group": bson.M{
			"_id":   "$" + field,
			"count": bson.M{"$sum": 1},
		}},
		bson.M{"$sort": bson.M{"_id": 1}},
	)

	cur, err := col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("group by %s: %w", field, err)
	}

	var rows []countRow
	if err := cur.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("decode %s counts: %w", field, err)
	}

	out := make([]ports.StatusCount, 0, len(rows))
	for _, row := range rows {
		out = append(out, ports.StatusCount{Status: row.ID, Count: row.Count})
	}
	return out, nil
}

func foldTaskCounts(distribution []ports.StatusCount) ports.TaskCounts {
	var counts ports.TaskCounts
	for _, c := range distribution {
		counts.TotalTasks += c.Count
		switch domain.TaskStatus(c.Status) {
		case domain.TaskOpen:
			counts.OpenTasks = c.Count
		case domain.TaskInProgress:
			counts.InProgressTasks = c.Count
		case domain.TaskResolved:
			counts.ResolvedTasks = c.Count
		}
	}
	return counts
}
