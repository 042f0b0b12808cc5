package dto

import "dellerose/models"

// ProfileRequest upserts the caller's brand profile.
type ProfileRequest struct {
	ToneLevel        int      `json:"toneLevel" binding:"required"`
	LengthPreference int      `json:"lengthPreference" binding:"required"`
	OpinionLevel     int      `json:"opinionLevel" binding:"required"`
	PreferredWords   []string `json:"preferredWords"`
	BannedWords      []string `json:"bannedWords"`
	VoiceSampleURL   string   `json:"voiceSample"`
}

// ProfileDTO is the stored profile returned to the client.
type ProfileDTO struct {
	ToneLevel        int      `json:"toneLevel"`
	LengthPreference int      `json:"lengthPreference"`
	OpinionLevel     int      `json:"opinionLevel"`
	PreferredWords   []string `json:"preferredWords"`
	BannedWords      []string `json:"bannedWords"`
	VoiceSampleURL   string   `json:"voiceSample,omitempty"`
}

// NewProfileDTO maps a stored profile for transport.
func NewProfileDTO(p models.BrandProfile) ProfileDTO {
	return ProfileDTO{
		ToneLevel:        p.ToneLevel,
		LengthPreference: p.LengthPreference,
		OpinionLevel:     p.OpinionLevel,
		PreferredWords:   p.PreferredWords,
		BannedWords:      p.BannedWords,
		VoiceSampleURL:   p.VoiceSampleURL,
	}
}
