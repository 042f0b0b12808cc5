package repositories

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"dellerose/models"
)

type ProfileRepository struct {
	col *mongo.Collection
}

func NewProfileRepository(db *mongo.Database) *ProfileRepository {
	return &ProfileRepository{col: db.Collection("profiles")}
}

// UpsertByUser upserts the brand profile uniquely identified by user_id.
func (r *ProfileRepository) UpsertByUser(ctx context.Context, p *models.BrandProfile) (*mongo.UpdateResult, error) {
	now := time.Now()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = now

	filter := bson.M{"user_id": p.UserID}
	update := bson.M{
		"$setOnInsert": bson.M{
			"created_at": p.CreatedAt,
		},
		"$set": bson.M{
			"updated_at":        p.UpdatedAt,
			"user_id":           p.UserID,
			"tone_level":        p.ToneLevel,
			"length_preference": p.LengthPreference,
			"opinion_level":     p.OpinionLevel,
			"preferred_words":   p.PreferredWords,
			"banned_words":      p.BannedWords,
			"voice_sample":      p.VoiceSampleURL,
		},
	}
	opts := options.Update().SetUpsert(true)
	return r.col.UpdateOne(ctx, filter, update, opts)
}

// FindByUser returns the profile for a user. mongo.ErrNoDocuments when absent.
func (r *ProfileRepository) FindByUser(ctx context.Context, userID string) (*models.BrandProfile, error) {
	var p models.BrandProfile
	if err := r.col.FindOne(ctx, bson.M{"user_id": userID}).Decode(&p); err != nil {
		return nil, err
	}
	return &p, nil
}
