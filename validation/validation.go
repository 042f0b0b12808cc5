// Package validation checks generated artifacts against the domain schema.
// Model responses are validated in two stages: first the raw response shape,
// then the platform-constrained output. Validators return a *ValidationError
// carrying structured issues so callers can decide whether to retry.
package validation

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"dellerose/models"
)

var hashtagPattern = regexp.MustCompile(`^#[^\s]+$`)

// Issue points at one failing field.
type Issue struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

// ValidationError carries every issue found in one validation pass.
type ValidationError struct {
	Subject string
	Issues  []Issue
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return fmt.Sprintf("%s failed validation", e.Subject)
	}
	parts := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		parts = append(parts, fmt.Sprintf("%s: %s", issue.Path, issue.Message))
	}
	return fmt.Sprintf("%s failed validation: %s", e.Subject, strings.Join(parts, "; "))
}

type collector struct {
	subject string
	issues  []Issue
}

func (c *collector) add(path, format string, args ...any) {
	c.issues = append(c.issues, Issue{Path: path, Message: fmt.Sprintf(format, args...)})
}

func (c *collector) err() error {
	if len(c.issues) == 0 {
		return nil
	}
	return &ValidationError{Subject: c.subject, Issues: c.issues}
}

// RawAgentResponse is the loose shape a model response must satisfy before
// platform constraints are applied.
type RawAgentResponse struct {
	Platform         string   `json:"platform,omitempty"`
	Hook             string   `json:"hook"`
	Body             string   `json:"body"`
	CTA              string   `json:"cta"`
	Hashtags         []string `json:"hashtags"`
	VisualSuggestion string   `json:"visualSuggestion"`
	Status           string   `json:"status,omitempty"`
}

// ValidateRawAgentResponse checks the stage-one shape: non-empty trimmed
// hook/body/cta/visualSuggestion. Platform and status are overwritten later
// and are not checked here.
func ValidateRawAgentResponse(raw RawAgentResponse) error {
	c := &collector{subject: "model response"}
	if strings.TrimSpace(raw.Hook) == "" {
		c.add("hook", "must be a non-empty string")
	}
	if strings.TrimSpace(raw.Body) == "" {
		c.add("body", "must be a non-empty string")
	}
	if strings.TrimSpace(raw.CTA) == "" {
		c.add("cta", "must be a non-empty string")
	}
	if strings.TrimSpace(raw.VisualSuggestion) == "" {
		c.add("visualSuggestion", "must be a non-empty string")
	}
	return c.err()
}

// NormalizeHashtags trims entries, strips any leading '#' run and interior
// whitespace, re-prefixes a single '#', and deduplicates while preserving
// order. Empty results are dropped. The operation is idempotent.
func NormalizeHashtags(hashtags []string) []string {
	normalized := make([]string, 0, len(hashtags))
	seen := make(map[string]struct{}, len(hashtags))
	for _, tag := range hashtags {
		tag = strings.TrimSpace(tag)
		tag = strings.TrimLeft(tag, "#")
		tag = strings.Join(strings.Fields(tag), "")
		if tag == "" {
			continue
		}
		tag = "#" + tag
		if _, dup := seen[tag]; dup {
			continue
		}
		seen[tag] = struct{}{}
		normalized = append(normalized, tag)
	}
	return normalized
}

// ValidateDraft checks an AgentOutput against one platform's constrained
// schema: platform literal, length ceilings, hashtag pattern and count,
// visual suggestion cap, status draft-only at generation time, and the
// combined budget where the platform defines one.
func ValidateDraft(output models.AgentOutput, rules models.PlatformRules) error {
	c := &collector{subject: fmt.Sprintf("%s draft", rules.Platform)}

	if output.Platform != rules.Platform {
		c.add("platform", "must be %q, got %q", rules.Platform, output.Platform)
	}
	checkBoundedField(c, "hook", output.Hook, rules.MaxHookChars)
	checkBoundedField(c, "body", output.Body, rules.MaxBodyChars)
	checkBoundedField(c, "cta", output.CTA, rules.MaxCTAChars)
	checkBoundedField(c, "visualSuggestion", output.VisualSuggestion, MaxVisualSuggestionChars)

	if len(output.Hashtags) > rules.MaxHashtags {
		c.add("hashtags", "at most %d allowed, got %d", rules.MaxHashtags, len(output.Hashtags))
	}
	seen := make(map[string]struct{}, len(output.Hashtags))
	for i, tag := range output.Hashtags {
		path := fmt.Sprintf("hashtags[%d]", i)
		if !hashtagPattern.MatchString(tag) {
			c.add(path, "must match ^#[^\\s]+$, got %q", tag)
		}
		if _, dup := seen[tag]; dup {
			c.add(path, "duplicate hashtag %q", tag)
		}
		seen[tag] = struct{}{}
	}

	if output.Status != models.PostStatusDraft {
		c.add("status", "must be %q, got %q", models.PostStatusDraft, output.Status)
	}

	if rules.TotalMaxChars > 0 {
		total := len([]rune(output.Hook)) + len([]rune(output.Body)) + len([]rune(output.CTA)) + 2
		if total > rules.TotalMaxChars {
			c.add("body", "combined hook/body/cta is %d chars, max %d", total, rules.TotalMaxChars)
		}
	}

	return c.err()
}

// MaxVisualSuggestionChars caps the visual suggestion on every platform.
const MaxVisualSuggestionChars = 240

func checkBoundedField(c *collector, path, value string, maxChars int) {
	if strings.TrimSpace(value) == "" {
		c.add(path, "must be a non-empty string")
		return
	}
	if n := len([]rune(value)); n > maxChars {
		c.add(path, "is %d chars, max %d", n, maxChars)
	}
}

// ValidateDraftSet checks the assembled fan-out result: exactly one
// schema-valid draft for each of the five platforms.
func ValidateDraftSet(outputs []models.AgentOutput) error {
	c := &collector{subject: "draft set"}
	if len(outputs) != len(models.PlatformOrder) {
		c.add("outputs", "expected %d drafts, got %d", len(models.PlatformOrder), len(outputs))
		return c.err()
	}

	seen := make(map[models.Platform]struct{}, len(outputs))
	for i, output := range outputs {
		rules, ok := models.RulesFor(output.Platform)
		if !ok {
			c.add(fmt.Sprintf("outputs[%d].platform", i), "unknown platform %q", output.Platform)
			continue
		}
		if _, dup := seen[output.Platform]; dup {
			c.add(fmt.Sprintf("outputs[%d].platform", i), "duplicate platform %q", output.Platform)
		}
		seen[output.Platform] = struct{}{}
		if err := ValidateDraft(output, rules); err != nil {
			var vErr *ValidationError
			if errors.As(err, &vErr) {
				for _, issue := range vErr.Issues {
					c.add(fmt.Sprintf("outputs[%d].%s", i, issue.Path), "%s", issue.Message)
				}
			}
		}
	}
	return c.err()
}

// ValidateBrief checks a ContentBrief: non-empty core message, known intent,
// non-empty audience and tone, at least one non-empty key point.
func ValidateBrief(brief models.ContentBrief) error {
	c := &collector{subject: "content brief"}
	if strings.TrimSpace(brief.CoreMessage) == "" {
		c.add("coreMessage", "must be a non-empty string")
	}
	if !validIntent(brief.Intent) {
		c.add("intent", "unknown intent %q", brief.Intent)
	}
	if strings.TrimSpace(brief.TargetAudience) == "" {
		c.add("targetAudience", "must be a non-empty string")
	}
	if strings.TrimSpace(brief.EmotionalTone) == "" {
		c.add("emotionalTone", "must be a non-empty string")
	}
	if len(brief.KeyPoints) == 0 {
		c.add("keyPoints", "at least one key point required")
	}
	for i, point := range brief.KeyPoints {
		if strings.TrimSpace(point) == "" {
			c.add(fmt.Sprintf("keyPoints[%d]", i), "must be a non-empty string")
		}
	}
	return c.err()
}

func validIntent(intent models.Intent) bool {
	for _, known := range models.Intents {
		if intent == known {
			return true
		}
	}
	return false
}

// IsValidationError reports whether err is (or wraps) a *ValidationError.
func IsValidationError(err error) bool {
	var vErr *ValidationError
	return errors.As(err, &vErr)
}
