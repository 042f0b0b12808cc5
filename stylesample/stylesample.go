// Package stylesample fetches the user's voice-sample page and extracts a
// readable excerpt the platform agents can imitate.
package stylesample

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	readability "github.com/go-shiori/go-readability"

	"dellerose/textfit"
)

// MaxSampleChars bounds the excerpt embedded in a prompt.
const MaxSampleChars = 1200

const fetchTimeout = 15 * time.Second

// Extract downloads the page and returns its readable text, truncated to
// MaxSampleChars. An empty sampleURL returns "" without error.
func Extract(sampleURL string) (string, error) {
	sampleURL = strings.TrimSpace(sampleURL)
	if sampleURL == "" {
		return "", nil
	}
	parsed, err := url.Parse(sampleURL)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		return "", fmt.Errorf("invalid voice sample url %q", sampleURL)
	}

	article, err := readability.FromURL(sampleURL, fetchTimeout)
	if err != nil {
		return "", fmt.Errorf("extract voice sample: %w", err)
	}

	text := strings.TrimSpace(article.TextContent)
	text = strings.Join(strings.Fields(text), " ")
	return textfit.Truncate(text, MaxSampleChars), nil
}
