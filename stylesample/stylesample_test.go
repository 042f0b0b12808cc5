package stylesample

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractEmptyURLIsNoop(t *testing.T) {
	sample, err := Extract("")
	assert.NoError(t, err)
	assert.Empty(t, sample)

	sample, err = Extract("   ")
	assert.NoError(t, err)
	assert.Empty(t, sample)
}

func TestExtractRejectsNonHTTPSchemes(t *testing.T) {
	for _, url := range []string{"ftp://example.com/sample", "file:///etc/passwd", "not a url"} {
		_, err := Extract(url)
		assert.Error(t, err, "url %q", url)
	}
}
