package news

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"

	"go-newsdigest/apperr"
	"go-newsdigest/types"
)

// RSSSource filters a fixed list of RSS/Atom feeds by keyword. Feeds are
// searched in configuration order and items keep their feed order.
type RSSSource struct {
	feeds  []string
	client *http.Client
}

func NewRSSSource(feeds []string) *RSSSource {
	return &RSSSource{feeds: feeds, client: &http.Client{Timeout: 15 * time.Second}}
}

func (s *RSSSource) Search(ctx context.Context, req types.SearchRequest) ([]types.Article, error) {
	keyword := strings.ToLower(req.Keyword)
	articles := []types.Article{}

	// gofeed.Parser keeps per-parse state, so each search gets its own.
	parser := gofeed.NewParser()
	parser.Client = s.client

	for _, feedURL := range s.feeds {
		if len(articles) >= req.NumArticles {
			break
		}

		feed, err := parser.ParseURLWithContext(feedURL, ctx)
		if err != nil {
			return nil, apperr.UpstreamFetch(fmt.Errorf("rss feed %s: %w", feedURL, err))
		}
		if !languageMatches(feed.Language, req.Language) {
			continue
		}

		for _, item := range feed.Items {
			if item.Link == "" || !itemMatches(item, keyword) {
				continue
			}
			articles = append(articles, itemToArticle(feed, item))
		}
	}

	return truncate(articles, req.NumArticles), nil
}

// languageMatches treats feeds without a declared language as matching.
func languageMatches(feedLang, want string) bool {
	if feedLang == "" {
		return true
	}
	return strings.HasPrefix(strings.ToLower(feedLang), want)
}

func itemMatches(item *gofeed.Item, keyword string) bool {
	for _, field := range []string{item.Title, item.Description, item.Content} {
		if strings.Contains(strings.ToLower(field), keyword) {
			return true
		}
	}
	return false
}

func itemToArticle(feed *gofeed.Feed, item *gofeed.Item) types.Article {
	a := types.Article{
		Source: types.ArticleSource{Name: feed.Title},
		Title:  item.Title,
		URL:    item.Link,
	}
	if item.Description != "" {
		a.Description = types.StringPtr(item.Description)
	}
	if item.Author != nil && item.Author.Name != "" {
		a.Author = types.StringPtr(item.Author.Name)
	}
	if item.Image != nil && item.Image.URL != "" {
		a.URLToImage = types.StringPtr(item.Image.URL)
	}
	if item.PublishedParsed != nil {
		a.PublishedAt = item.PublishedParsed.UTC().Format(time.RFC3339)
	} else {
		a.PublishedAt = item.Published
	}

	body := item.Content
	if body == "" {
		body = item.Description
	}
	if body != "" {
		a.Content = types.StringPtr(body)
	}
	return a
}
