package repositories

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"dellerose/models"
)

type BriefRepository struct {
	col *mongo.Collection
}

func NewBriefRepository(db *mongo.Database) *BriefRepository {
	return &BriefRepository{col: db.Collection("briefs")}
}

// UpsertByUserAndWorkflow upserts a brief uniquely identified by
// (user_id, workflow_id). Re-running a brain dump overwrites in place.
func (r *BriefRepository) UpsertByUserAndWorkflow(ctx context.Context, b *models.Brief) (*mongo.UpdateResult, error) {
	now := time.Now()
	if b.CreatedAt.IsZero() {
		b.CreatedAt = now
	}
	b.UpdatedAt = now

	filter := bson.M{"user_id": b.UserID, "workflow_id": b.WorkflowID}
	update := bson.M{
		"$setOnInsert": bson.M{
			"created_at": b.CreatedAt,
		},
		"$set": bson.M{
			"updated_at":        b.UpdatedAt,
			"user_id":           b.UserID,
			"workflow_id":       b.WorkflowID,
			"source_transcript": b.SourceTranscript,
			"content":           b.Content,
		},
	}
	opts := options.Update().SetUpsert(true)
	return r.col.UpdateOne(ctx, filter, update, opts)
}

// FindByUserAndWorkflow returns a brief by (user_id, workflow_id).
func (r *BriefRepository) FindByUserAndWorkflow(ctx context.Context, userID, workflowID string) (*models.Brief, error) {
	var b models.Brief
	if err := r.col.FindOne(ctx, bson.M{"user_id": userID, "workflow_id": workflowID}).Decode(&b); err != nil {
		return nil, err
	}
	return &b, nil
}

// ListByUser returns the user's briefs newest first, for the workflow list.
func (r *BriefRepository) ListByUser(ctx context.Context, userID string, limit int64) ([]models.Brief, error) {
	opts := options.Find().SetSort(bson.D{{Key: "updated_at", Value: -1}})
	if limit > 0 {
		opts = opts.SetLimit(limit)
	}
	cursor, err := r.col.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var briefs []models.Brief
	if err := cursor.All(ctx, &briefs); err != nil {
		return nil, err
	}
	return briefs, nil
}
