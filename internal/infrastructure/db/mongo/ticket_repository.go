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

const collectionTickets = "tickets"

type TicketRepository struct {
	col *mongo.Collection
}

func NewTicketRepository(db *mongo.Database) *TicketRepository {
	return &TicketRepository{col: db.Collection(collectionTickets)}
}

type ticketDoc struct {
	ID              primitive.ObjectID `bson:"_id,omitempty"`
	TaskID          primitive.ObjectID `bson:"task_id"`
	ResolvedBy      primitive.ObjectID `bson:"resolved_by"`
	ResolutionNotes string             `bson:"resolution_notes"`
	Status          string             `bson:"status"`
	VerifiedBy      primitive.ObjectID `bson:"verified_by,omitempty"`
	VerifiedAt      *time.Time         `bson:"verified_at,omitempty"`
	RejectionReason string             `bson:"rejection_reason,omitempty"`
	CreatedAt       time.Time          `bson:"created_at"`
	UpdatedAt       time.Time          `bson:"updated_at"`
}

func (d *ticketDoc) toDomain() *domain.Ticket {
	verifiedBy := ""
	if !d.VerifiedBy.IsZero() {
		verifiedBy = d.VerifiedBy.Hex()
	}
	return &domain.Ticket{
		ID:              d.ID.Hex(),
		TaskID:          d.TaskID.Hex(),
		ResolvedBy:      d.ResolvedBy.Hex(),
		ResolutionNotes: d.ResolutionNotes,
		Status:          domain.TicketStatus(d.Status),
		VerifiedBy:      verifiedBy,
		VerifiedAt:      d.VerifiedAt,
		RejectionReason: d.RejectionReason,
		CreatedAt:       d.CreatedAt,
		UpdatedAt:       d.UpdatedAt,
	}
}

// Create inserts a pending ticket. The partial unique index on
// (task_id, resolved_by) turns a concurrent second submission into a
// duplicate key error.
func (r *TicketRepository) Create(ctx context.Context, t *domain.Ticket) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	taskID, ok := objectID(t.TaskID)
	if !ok {
		return "", domain.ErrTaskNotFound
	}
	resolvedBy, ok := objectID(t.ResolvedBy)
	if !ok {
		return "", fmt.Errorf("%w: resolved_by id", domain.ErrValidation)
	}

	doc := ticketDoc{
		TaskID:          taskID,
		ResolvedBy:      resolvedBy,
		ResolutionNotes: t.ResolutionNotes,
		Status:          string(t.Status),
		CreatedAt:       t.CreatedAt,
		UpdatedAt:       t.UpdatedAt,
	}
	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", domain.ErrDuplicatePendingTicket
		}
		return "", fmt.Errorf("insert ticket: %w", err)
	}
	return res.InsertedID.(primitive.ObjectID).Hex(), nil
}

func (r *TicketRepository) FindByID(ctx context.Context, id string) (*domain.Ticket, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, ok := objectID(id)
	if !ok {
		return nil, domain.ErrTicketNotFound
	}

	var doc ticketDoc
	err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrTicketNotFound
		}
		return nil, fmt.Errorf("find ticket: %w", err)
	}
	return doc.toDomain(), nil
}

// List returns tickets matching the role scope, newest first.
func (r *TicketRepository) List(ctx context.Context, filter ports.TicketFilter) ([]*domain.Ticket, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := bson.M{}
	if filter.ResolvedBy != "" {
		oid, ok := objectID(filter.ResolvedBy)
		if !ok {
			return nil, nil
		}
		query["resolved_by"] = oid
	}
	if filter.TaskIDs != nil {
		query["task_id"] = bson.M{"$in": objectIDs(filter.TaskIDs)}
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := r.col.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("list tickets: %w", err)
	}
	defer cur.Close(ctx)

	var out []*domain.Ticket
	for cur.Next(ctx) {
		var doc ticketDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode ticket: %w", err)
		}
		out = append(out, doc.toDomain())
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("iterate tickets: %w", err)
	}
	return out, nil
}

// Decide moves a pending ticket to its terminal status. The filter includes
// status=pending so two concurrent decisions cannot both match; the loser
// sees MatchedCount zero and gets told the ticket was already decided.
func (r *TicketRepository) Decide(ctx context.Context, id string, decision domain.TicketStatus, verifiedBy string, verifiedAt time.Time, rejectionReason string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, ok := objectID(id)
	if !ok {
		return domain.ErrTicketNotFound
	}
	verifier, ok := objectID(verifiedBy)
	if !ok {
		return fmt.Errorf("%w: verified_by id", domain.ErrValidation)
	}

	set := bson.M{
		"status":      string(decision),
		"verified_by": verifier,
		"verified_at": verifiedAt,
		"updated_at":  verifiedAt,
	}
	if rejectionReason != "" {
		set["rejection_reason"] = rejectionReason
	}

	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": oid, "status": string(domain.TicketPending)},
		bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("decide ticket: %w", err)
	}
	if res.MatchedCount == 0 {
		count, err := r.col.CountDocuments(ctx, bson.M{"_id": oid})
		if err != nil {
			return fmt.Errorf("decide ticket: %w", err)
		}
		if count == 0 {
			return domain.ErrTicketNotFound
		}
		return domain.ErrTicketAlreadyDecided
	}
	return nil
}

func (r *TicketRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, ok := objectID(id)
	if !ok {
		return domain.ErrTicketNotFound
	}
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete ticket: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrTicketNotFound
	}
	return nil
}

// DeleteByTaskIDs removes every ticket under the given tasks.
func (r *TicketRepository) DeleteByTaskIDs(ctx context.Context, taskIDs []string) error {
	if len(taskIDs) == 0 {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.DeleteMany(ctx, bson.M{"task_id": bson.M{"$in": objectIDs(taskIDs)}})
	if err != nil {
		return fmt.Errorf("delete task tickets: %w", err)
	}
	return nil
}

// CountByResolver returns the user's ticket count with the given status.
func (r *TicketRepository) CountByResolver(ctx context.Context, userID string, status domain.TicketStatus) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, ok := objectID(userID)
	if !ok {
		return 0, nil
	}
	count, err := r.col.CountDocuments(ctx, bson.M{"resolved_by": oid, "status": string(status)})
	if err != nil {
		return 0, fmt.Errorf("count tickets: %w", err)
	}
	return count, nil
}

// EnsureIndexes creates necessary indexes on the tickets collection. The
// partial unique index allows any number of decided tickets per pair but at
// most one pending.
func (r *TicketRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "task_id", Value: 1}, {Key: "resolved_by", Value: 1}},
			Options: options.Index().
				SetUnique(true).
				SetPartialFilterExpression(bson.M{"status": string(domain.TicketPending)}),
		},
		{Keys: bson.D{{Key: "resolved_by", Value: 1}}},
		{Keys: bson.D{{Key: "task_id", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
