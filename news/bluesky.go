package news

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/bluesky-social/indigo/xrpc"

	"go-newsdigest/apperr"
	"go-newsdigest/types"
)

const (
	DefaultBlueskyHost = "https://public.api.bsky.app"
	searchPostsMethod  = "app.bsky.feed.searchPosts"
	maxTitleRunes      = 100
)

type searchPostsResponse struct {
	Cursor string     `json:"cursor"`
	Posts  []postView `json:"posts"`
}

type postView struct {
	URI    string `json:"uri"`
	Author struct {
		DID         string `json:"did"`
		Handle      string `json:"handle"`
		DisplayName string `json:"displayName"`
		Avatar      string `json:"avatar"`
	} `json:"author"`
	Record struct {
		Text      string `json:"text"`
		CreatedAt string `json:"createdAt"`
	} `json:"record"`
	IndexedAt string `json:"indexedAt"`
}

// BlueskySource searches public Bluesky posts and presents each post as an article.
type BlueskySource struct {
	client *xrpc.Client
}

func NewBlueskySource(host string) *BlueskySource {
	if host == "" {
		host = DefaultBlueskyHost
	}
	return &BlueskySource{
		client: &xrpc.Client{
			Client: &http.Client{Timeout: 10 * time.Second},
			Host:   strings.TrimRight(host, "/"),
		},
	}
}

func (s *BlueskySource) Search(ctx context.Context, req types.SearchRequest) ([]types.Article, error) {
	params := map[string]interface{}{
		"q":     req.Keyword,
		"lang":  req.Language,
		"limit": req.NumArticles,
		"sort":  "top",
	}

	var out searchPostsResponse
	if err := s.client.Do(ctx, xrpc.Query, "json", searchPostsMethod, params, nil, &out); err != nil {
		return nil, apperr.UpstreamFetch(fmt.Errorf("bluesky search: %w", err))
	}

	articles := make([]types.Article, 0, len(out.Posts))
	for _, p := range out.Posts {
		articles = append(articles, postToArticle(p))
	}
	return truncate(articles, req.NumArticles), nil
}

func postToArticle(p postView) types.Article {
	name := p.Author.DisplayName
	if name == "" {
		name = p.Author.Handle
	}

	published := p.Record.CreatedAt
	if published == "" {
		published = p.IndexedAt
	}

	a := types.Article{
		Source:      types.ArticleSource{ID: types.StringPtr("bluesky"), Name: "Bluesky"},
		Title:       postTitle(p.Record.Text),
		URL:         postURL(p.URI, p.Author.Handle),
		PublishedAt: published,
	}
	if name != "" {
		a.Author = types.StringPtr(name)
	}
	if p.Author.Avatar != "" {
		a.URLToImage = types.StringPtr(p.Author.Avatar)
	}
	if strings.TrimSpace(p.Record.Text) != "" {
		a.Content = types.StringPtr(p.Record.Text)
	}
	return a
}

// postTitle is the first line of the post, cut to maxTitleRunes.
func postTitle(text string) string {
	line, _, _ := strings.Cut(strings.TrimSpace(text), "\n")
	if utf8.RuneCountInString(line) <= maxTitleRunes {
		return line
	}
	runes := []rune(line)
	return string(runes[:maxTitleRunes-1]) + "…"
}

// postURL turns at://did/app.bsky.feed.post/rkey into a bsky.app link.
func postURL(uri, handle string) string {
	const prefix = "at://"
	if !strings.HasPrefix(uri, prefix) {
		return uri
	}
	parts := strings.Split(strings.TrimPrefix(uri, prefix), "/")
	if len(parts) != 3 || parts[1] != "app.bsky.feed.post" {
		return uri
	}
	profile := handle
	if profile == "" {
		profile = parts[0]
	}
	return fmt.Sprintf("https://bsky.app/profile/%s/post/%s", profile, parts[2])
}
