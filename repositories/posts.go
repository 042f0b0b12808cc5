package repositories

import (
	"context"
	"sort"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"dellerose/models"
)

type PostRepository struct {
	col *mongo.Collection
}

func NewPostRepository(db *mongo.Database) *PostRepository {
	return &PostRepository{col: db.Collection("posts")}
}

// UpsertByWorkflowAndPlatform upserts a post uniquely identified by
// (user_id, workflow_id, platform). Repeated approvals overwrite in place.
func (r *PostRepository) UpsertByWorkflowAndPlatform(ctx context.Context, p *models.Post) (*mongo.UpdateResult, error) {
	now := time.Now()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = now
	if p.PublishMode == "" {
		p.PublishMode = models.PublishModeManualCopy
	}

	filter := bson.M{"user_id": p.UserID, "workflow_id": p.WorkflowID, "platform": p.Platform}
	update := bson.M{
		"$setOnInsert": bson.M{
			"created_at": p.CreatedAt,
		},
		"$set": bson.M{
			"updated_at":        p.UpdatedAt,
			"user_id":           p.UserID,
			"brief_id":          p.BriefID,
			"workflow_id":       p.WorkflowID,
			"platform":          p.Platform,
			"hook":              p.Hook,
			"body":              p.Body,
			"cta":               p.CTA,
			"hashtags":          p.Hashtags,
			"visual_suggestion": p.VisualSuggestion,
			"publish_mode":      p.PublishMode,
			"status":            p.Status,
			"scheduled_for":     p.ScheduledFor,
			"posted_at":         p.PostedAt,
		},
	}
	opts := options.Update().SetUpsert(true)
	return r.col.UpdateOne(ctx, filter, update, opts)
}

// FindByWorkflowAndPlatform returns one post. mongo.ErrNoDocuments when absent.
func (r *PostRepository) FindByWorkflowAndPlatform(ctx context.Context, userID, workflowID string, platform models.Platform) (*models.Post, error) {
	var p models.Post
	filter := bson.M{"user_id": userID, "workflow_id": workflowID, "platform": platform}
	if err := r.col.FindOne(ctx, filter).Decode(&p); err != nil {
		return nil, err
	}
	return &p, nil
}

// UpdateStatus moves a post's lifecycle status. posted sets posted_at,
// scheduled requires scheduledFor. The returned MatchedCount is 0 when no
// post exists for the key; callers map that to not found.
func (r *PostRepository) UpdateStatus(ctx context.Context, userID, workflowID string, platform models.Platform, status models.PostStatus, scheduledFor *time.Time) (*mongo.UpdateResult, error) {
	set := bson.M{
		"status":     status,
		"updated_at": time.Now(),
	}
	if scheduledFor != nil {
		set["scheduled_for"] = scheduledFor
	}
	if status == models.PostStatusPosted {
		set["posted_at"] = time.Now()
	}

	filter := bson.M{"user_id": userID, "workflow_id": workflowID, "platform": platform}
	return r.col.UpdateOne(ctx, filter, bson.M{"$set": set})
}

// ListByWorkflow returns every post in a workflow in platform order.
func (r *PostRepository) ListByWorkflow(ctx context.Context, userID, workflowID string) ([]models.Post, error) {
	cursor, err := r.col.Find(ctx, bson.M{"user_id": userID, "workflow_id": workflowID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var posts []models.Post
	if err := cursor.All(ctx, &posts); err != nil {
		return nil, err
	}

	rank := make(map[models.Platform]int, len(models.PlatformOrder))
	for i, platform := range models.PlatformOrder {
		rank[platform] = i
	}
	sort.Slice(posts, func(i, j int) bool {
		return rank[posts[i].Platform] < rank[posts[j].Platform]
	})
	return posts, nil
}

// ListScheduledByUser returns scheduled posts ordered by scheduled_for.
func (r *PostRepository) ListScheduledByUser(ctx context.Context, userID string) ([]models.Post, error) {
	filter := bson.M{"user_id": userID, "status": models.PostStatusScheduled}
	opts := options.Find().SetSort(bson.D{{Key: "scheduled_for", Value: 1}})
	cursor, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var posts []models.Post
	if err := cursor.All(ctx, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}
