package news

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-newsdigest/apperr"
	"go-newsdigest/types"
)

const everythingResponse = `{
  "status": "ok",
  "totalResults": 3,
  "articles": [
    {"source": {"id": "bbc-news", "name": "BBC News"}, "author": null, "title": "First", "description": "d1", "url": "https://a/1", "urlToImage": null, "publishedAt": "2024-05-01T10:00:00Z", "content": "Body one… [+100 chars]"},
    {"source": {"id": null, "name": "Wired"}, "author": "Jane", "title": "Second", "description": null, "url": "https://a/2", "urlToImage": "https://img/2", "publishedAt": "2024-05-01T09:00:00Z", "content": null},
    {"source": {"id": null, "name": "Verge"}, "author": null, "title": "Third", "description": null, "url": "https://a/3", "urlToImage": null, "publishedAt": "2024-05-01T08:00:00Z", "content": "Body three"}
  ]
}`

func TestNewsAPIClientSearch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v2/everything", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("X-Api-Key"))

		q := r.URL.Query()
		assert.Equal(t, "electric cars", q.Get("q"))
		assert.Equal(t, "en", q.Get("language"))
		assert.Equal(t, "2", q.Get("pageSize"))
		assert.Equal(t, "relevancy", q.Get("sortBy"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(everythingResponse))
	}))
	defer server.Close()

	client := NewNewsAPIClient("test-key", WithBaseURL(server.URL+"/v2/"))

	articles, err := client.Search(context.Background(), types.SearchRequest{Keyword: "electric cars", Language: "en", NumArticles: 2})
	require.NoError(t, err)
	require.Len(t, articles, 2)

	assert.Equal(t, "First", articles[0].Title)
	assert.Equal(t, "bbc-news", *articles[0].Source.ID)
	assert.Nil(t, articles[0].Author)
	assert.Equal(t, "Second", articles[1].Title)
	assert.Nil(t, articles[1].Content)
	assert.Empty(t, articles[1].Body())
}

func TestNewsAPIClientZeroResults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"status":"ok","totalResults":0,"articles":[]}`))
	}))
	defer server.Close()

	articles, err := NewNewsAPIClient("k", WithBaseURL(server.URL)).Search(context.Background(), types.SearchRequest{Keyword: "zzzz", Language: "en", NumArticles: 5})
	require.NoError(t, err)
	assert.NotNil(t, articles)
	assert.Empty(t, articles)
}

func TestNewsAPIClientErrors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantMsg string
	}{
		{"invalid key", http.StatusUnauthorized, `{"status":"error","code":"apiKeyInvalid","message":"Your API key is invalid or incorrect."}`, "apiKeyInvalid: Your API key is invalid or incorrect."},
		{"rate limited", http.StatusTooManyRequests, `{"status":"error","code":"rateLimited","message":"You have made too many requests recently."}`, "rateLimited"},
		{"gateway html", http.StatusBadGateway, `<html>bad gateway</html>`, "unreadable body"},
		{"status error with 200", http.StatusOK, `{"status":"error"}`, "NewsAPI returned status 200"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			_, err := NewNewsAPIClient("k", WithBaseURL(server.URL)).Search(context.Background(), types.SearchRequest{Keyword: "x", Language: "en", NumArticles: 5})
			require.Error(t, err)
			assert.Equal(t, apperr.KindUpstreamFetch, apperr.KindOf(err))
			assert.Contains(t, err.Error(), tt.wantMsg)
			assert.Contains(t, err.Error(), "Error fetching news articles")
		})
	}
}

func TestNewsAPIClientTransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := server.URL
	server.Close()

	_, err := NewNewsAPIClient("k", WithBaseURL(url)).Search(context.Background(), types.SearchRequest{Keyword: "x", Language: "en", NumArticles: 5})
	require.Error(t, err)
	assert.Equal(t, apperr.KindUpstreamFetch, apperr.KindOf(err))
}
