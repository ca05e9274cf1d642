// Package news holds the article sources the service can search.
package news

import (
	"context"

	"go-newsdigest/types"
)

// Source returns up to req.NumArticles articles ranked by relevance.
// An empty result is not an error.
type Source interface {
	Search(ctx context.Context, req types.SearchRequest) ([]types.Article, error)
}

func truncate(articles []types.Article, n int) []types.Article {
	if n >= 0 && len(articles) > n {
		return articles[:n]
	}
	return articles
}
