package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// BrandProfile is the per-user voice configuration captured during
// onboarding. It is read-only during a generation request.
// Collection: profiles, unique on user_id.
type BrandProfile struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID           string             `bson:"user_id" json:"userId"`
	ToneLevel        int                `bson:"tone_level" json:"toneLevel"`             // 1-10
	LengthPreference int                `bson:"length_preference" json:"lengthPreference"` // 1-5
	OpinionLevel     int                `bson:"opinion_level" json:"opinionLevel"`       // 1-10
	PreferredWords   []string           `bson:"preferred_words" json:"preferredWords"`
	BannedWords      []string           `bson:"banned_words" json:"bannedWords"`
	VoiceSampleURL   string             `bson:"voice_sample,omitempty" json:"voiceSample,omitempty"`
	CreatedAt        time.Time          `bson:"created_at" json:"-"`
	UpdatedAt        time.Time          `bson:"updated_at" json:"-"`
}
