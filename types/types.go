package types

import (
	"regexp"
	"strings"

	"go-newsdigest/apperr"
)

const (
	DefaultLanguage    = "en"
	DefaultNumArticles = 5
	MaxNumArticles     = 100 // NewsAPI page size ceiling
)

var languagePattern = regexp.MustCompile(`^[a-z]{2}$`)

// SearchRequest describes one keyword search against the news source.
type SearchRequest struct {
	Keyword     string
	Language    string
	NumArticles int
}

// NewSearchRequest applies the defaults for a blank language and an absent
// article count. An explicit count is kept as-is so Validate can reject it.
func NewSearchRequest(keyword, language string, numArticles *int) SearchRequest {
	req := SearchRequest{
		Keyword:     strings.TrimSpace(keyword),
		Language:    strings.ToLower(strings.TrimSpace(language)),
		NumArticles: DefaultNumArticles,
	}
	if req.Language == "" {
		req.Language = DefaultLanguage
	}
	if numArticles != nil {
		req.NumArticles = *numArticles
	}
	return req
}

func (r SearchRequest) Validate() error {
	if r.Keyword == "" {
		return apperr.Validation("keyword is required")
	}
	if !languagePattern.MatchString(r.Language) {
		return apperr.Validationf("language %q must be a two-letter ISO-639-1 code", r.Language)
	}
	if r.NumArticles < 1 || r.NumArticles > MaxNumArticles {
		return apperr.Validationf("num_articles must be between 1 and %d", MaxNumArticles)
	}
	return nil
}

// ArticleSource is the publisher of an article.
type ArticleSource struct {
	ID   *string `json:"id"`
	Name string  `json:"name"`
}

// Article mirrors the raw article object returned by NewsAPI. Nullable
// fields stay pointers so they serialize back as null.
type Article struct {
	Source      ArticleSource `json:"source"`
	Author      *string       `json:"author"`
	Title       string        `json:"title"`
	Description *string       `json:"description"`
	URL         string        `json:"url"`
	URLToImage  *string       `json:"urlToImage"`
	PublishedAt string        `json:"publishedAt"`
	Content     *string       `json:"content"`
}

// Body returns the trimmed article body, or "" when it is absent.
func (a Article) Body() string {
	if a.Content == nil {
		return ""
	}
	return strings.TrimSpace(*a.Content)
}

// SummaryResult is one summarized article.
type SummaryResult struct {
	Title   string `json:"title" firestore:"title"`
	Summary string `json:"summary" firestore:"summary"`
	Source  string `json:"source" firestore:"source"`
	URL     string `json:"url" firestore:"url"`
}

// StringPtr is a small helper for building nullable article fields.
func StringPtr(s string) *string {
	return &s
}
