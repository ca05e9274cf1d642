package summarization

import (
	"context"
	"html"
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// Length bounds used by the summarize endpoint, in model tokens.
const (
	DefaultMaxLength = 130
	DefaultMinLength = 30
)

// Options bounds a single summary.
type Options struct {
	MaxLength int
	MinLength int
	// Deterministic disables sampling so the same body yields the same summary.
	Deterministic bool
}

var DefaultOptions = Options{
	MaxLength:     DefaultMaxLength,
	MinLength:     DefaultMinLength,
	Deterministic: true,
}

// Summarizer turns an article body into a single summary string.
// Callers must not pass an empty body.
type Summarizer interface {
	Summarize(ctx context.Context, text string, opts Options) (string, error)
}

var (
	strictPolicy = bluemonday.StrictPolicy()
	// NewsAPI truncates content on the free tier: "... text… [+2345 chars]"
	truncationMarker = regexp.MustCompile(`\s*(…|\.\.\.)?\s*\[\+\d+ chars\]\s*$`)
)

// CleanBody strips markup and the NewsAPI truncation marker from an article body.
func CleanBody(body string) string {
	text := html.UnescapeString(strictPolicy.Sanitize(body))
	text = truncationMarker.ReplaceAllString(text, "")
	return strings.TrimSpace(text)
}
