package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/taskboard/tracker-api/internal/core/domain"
	"github.com/taskboard/tracker-api/internal/core/ports"
)

const collectionTasks = "tasks"

type TaskRepository struct {
	col *mongo.Collection
}

func NewTaskRepository(db *mongo.Database) *TaskRepository {
	return &TaskRepository{col: db.Collection(collectionTasks)}
}

type taskDoc struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Title       string             `bson:"title"`
	Description string             `bson:"description,omitempty"`
	Status      string             `bson:"status"`
	Priority    string             `bson:"priority"`
	ProjectID   primitive.ObjectID `bson:"project_id"`
	AssignedTo  primitive.ObjectID `bson:"assigned_to,omitempty"`
	CreatedBy   primitive.ObjectID `bson:"created_by"`
	DueDate     *time.Time         `bson:"due_date,omitempty"`
	CreatedAt   time.Time          `bson:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at"`
}

func (d *taskDoc) toDomain() *domain.Task {
	assignedTo := ""
	if !d.AssignedTo.IsZero() {
		assignedTo = d.AssignedTo.Hex()
	}
	return &domain.Task{
		ID:          d.ID.Hex(),
		Title:       d.Title,
		Description: d.Description,
		Status:      domain.TaskStatus(d.Status),
		Priority:    domain.TaskPriority(d.Priority),
		ProjectID:   d.ProjectID.Hex(),
		AssignedTo:  assignedTo,
		CreatedBy:   d.CreatedBy.Hex(),
		DueDate:     d.DueDate,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

func taskToDoc(t *domain.Task) (*taskDoc, error) {
	projectID, ok := objectID(t.ProjectID)
	if !ok {
		return nil, fmt.Errorf("%w: project id", domain.ErrValidation)
	}
	createdBy, ok := objectID(t.CreatedBy)
	if !ok {
		return nil, fmt.Errorf("%w: created_by id", domain.ErrValidation)
	}
	doc := &taskDoc{
		Title:       t.Title,
		Description: t.Description,
		Status:      string(t.Status),
		Priority:    string(t.Priority),
		ProjectID:   projectID,
		CreatedBy:   createdBy,
		DueDate:     t.DueDate,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
	if t.AssignedTo != "" {
		assignee, ok := objectID(t.AssignedTo)
		if !ok {
			return nil, fmt.Errorf("%w: assigned_to id", domain.ErrValidation)
		}
		doc.AssignedTo = assignee
	}
	return doc, nil
}

// Create inserts a new task document and returns the generated id.
func (r *TaskRepository) Create(ctx context.Context, t *domain.Task) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc, err := taskToDoc(t)
	if err != nil {
		return "", err
	}
	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return "", fmt.Errorf("insert task: %w", err)
	}
	return res.InsertedID.(primitive.ObjectID).Hex(), nil
}

func (r *TaskRepository) FindByID(ctx context.Context, id string) (*domain.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, ok := objectID(id)
	if !ok {
		return nil, domain.ErrTaskNotFound
	}

	var doc taskDoc
	err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, fmt.Errorf("find task: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *TaskRepository) FindByIDs(ctx context.Context, ids []string) ([]*domain.Task, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{"_id": bson.M{"$in": objectIDs(ids)}})
	if err != nil {
		return nil, fmt.Errorf("find tasks: %w", err)
	}
	return decodeTasks(ctx, cur)
}

// List returns tasks matching the role scope, newest first.
func (r *TaskRepository) List(ctx context.Context, filter ports.TaskFilter) ([]*domain.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := bson.M{}
	if filter.ProjectIDs != nil {
		query["project_id"] = bson.M{"$in": objectIDs(filter.ProjectIDs)}
	}
	if filter.AssignedTo != "" {
		oid, ok := objectID(filter.AssignedTo)
		if !ok {
			return nil, nil
		}
		query["assigned_to"] = oid
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := r.col.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return decodeTasks(ctx, cur)
}

func (r *TaskRepository) Update(ctx context.Context, t *domain.Task) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, ok := objectID(t.ID)
	if !ok {
		return domain.ErrTaskNotFound
	}
	doc, err := taskToDoc(t)
	if err != nil {
		return err
	}

	update := bson.M{"$set": doc}
	if t.AssignedTo == "" {
		update["$unset"] = bson.M{"assigned_to": ""}
	}
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		return fmt.Errorf("update task: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}

// UpdateStatus sets only the status field, used by the ticket workflow to
// flip tasks without touching the rest of the document.
func (r *TaskRepository) UpdateStatus(ctx context.Context, id string, status domain.TaskStatus) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, ok := objectID(id)
	if !ok {
		return domain.ErrTaskNotFound
	}
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{
		"status":     string(status),
		"updated_at": time.Now().UTC(),
	}})
	if err != nil {
		return fmt.Errorf("update task status: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}

func (r *TaskRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, ok := objectID(id)
	if !ok {
		return domain.ErrTaskNotFound
	}
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}

// ListIDsByProject returns the ids of every task in the project.
func (r *TaskRepository) ListIDsByProject(ctx context.Context, projectID string) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, ok := objectID(projectID)
	if !ok {
		return nil, nil
	}

	opts := options.Find().SetProjection(bson.M{"_id": 1})
	cur, err := r.col.Find(ctx, bson.M{"project_id": oid}, opts)
	if err != nil {
		return nil, fmt.Errorf("list task ids: %w", err)
	}
	defer cur.Close(ctx)

	var ids []string
	for cur.Next(ctx) {
		var doc struct {
			ID primitive.ObjectID `bson:"_id"`
		}
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode task id: %w", err)
		}
		ids = append(ids, doc.ID.Hex())
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("iterate task ids: %w", err)
	}
	return ids, nil
}

// DeleteByProject removes every task in the project.
func (r *TaskRepository) DeleteByProject(ctx context.Context, projectID string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, ok := objectID(projectID)
	if !ok {
		return nil
	}
	_, err := r.col.DeleteMany(ctx, bson.M{"project_id": oid})
	if err != nil {
		return fmt.Errorf("delete project tasks: %w", err)
	}
	return nil
}

// ListProjectIDsByAssignee returns the distinct project ids of tasks assigned
// to the user.
func (r *TaskRepository) ListProjectIDsByAssignee(ctx context.Context, userID string) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, ok := objectID(userID)
	if !ok {
		return nil, nil
	}
	values, err := r.col.Distinct(ctx, "project_id", bson.M{"assigned_to": oid})
	if err != nil {
		return nil, fmt.Errorf("distinct project ids: %w", err)
	}

	ids := make([]string, 0, len(values))
	for _, v := range values {
		if pid, ok := v.(primitive.ObjectID); ok {
			ids = append(ids, pid.Hex())
		}
	}
	return ids, nil
}

// HasAssignedTask reports whether the user has a task assigned inside the
// project.
func (r *TaskRepository) HasAssignedTask(ctx context.Context, projectID, userID string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	pid, ok := objectID(projectID)
	if !ok {
		return false, nil
	}
	uid, ok := objectID(userID)
	if !ok {
		return false, nil
	}

	err := r.col.FindOne(ctx, bson.M{"project_id": pid, "assigned_to": uid},
		options.FindOne().SetProjection(bson.M{"_id": 1})).Err()
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return false, nil
		}
		return false, fmt.Errorf("find assigned task: %w", err)
	}
	return true, nil
}

// EnsureIndexes creates necessary indexes on the tasks collection.
func (r *TaskRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "project_id", Value: 1}}},
		{Keys: bson.D{{Key: "assigned_to", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}

func decodeTasks(ctx context.Context, cur *mongo.Cursor) ([]*domain.Task, error) {
	defer cur.Close(ctx)

	var out []*domain.Task
	for cur.Next(ctx) {
		var doc taskDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode task: %w", err)
		}
		out = append(out, doc.toDomain())
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("iterate tasks: %w", err)
	}
	return out, nil
}
