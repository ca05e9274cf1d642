package news

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go-newsdigest/apperr"
	"go-newsdigest/types"
)

const (
	defaultNewsAPIBaseURL = "https://newsapi.org/v2"
	defaultUserAgent      = "go-newsdigest/1.0"
)

type newsAPIResponse struct {
	Status       string          `json:"status"`
	Code         string          `json:"code"`
	Message      string          `json:"message"`
	TotalResults int             `json:"totalResults"`
	Articles     []types.Article `json:"articles"`
}

// NewsAPIClient searches the NewsAPI /everything endpoint.
type NewsAPIClient struct {
	apiKey  string
	baseURL string
	ua      string
	http    *http.Client
}

type Option func(*NewsAPIClient)

// WithBaseURL overrides the API base URL (useful for testing).
func WithBaseURL(u string) Option {
	return func(c *NewsAPIClient) {
		if u != "" {
			c.baseURL = strings.TrimRight(u, "/")
		}
	}
}

// WithHTTPClient sets a custom http.Client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *NewsAPIClient) { c.http = h }
}

// WithUserAgent sets a custom User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *NewsAPIClient) { c.ua = ua }
}

func NewNewsAPIClient(apiKey string, opts ...Option) *NewsAPIClient {
	c := &NewsAPIClient{
		apiKey:  apiKey,
		baseURL: defaultNewsAPIBaseURL,
		ua:      defaultUserAgent,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

func (c *NewsAPIClient) Search(ctx context.Context, req types.SearchRequest) ([]types.Article, error) {
	params := url.Values{}
	params.Set("q", req.Keyword)
	params.Set("language", req.Language)
	params.Set("pageSize", strconv.Itoa(req.NumArticles))
	params.Set("sortBy", "relevancy")

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/everything?"+params.Encode(), nil)
	if err != nil {
		return nil, apperr.UpstreamFetch(err)
	}
	httpReq.Header.Set("X-Api-Key", c.apiKey)
	httpReq.Header.Set("User-Agent", c.ua)
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, apperr.UpstreamFetch(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 8<<20))
	if err != nil {
		return nil, apperr.UpstreamFetch(err)
	}

	var out newsAPIResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, apperr.UpstreamFetch(fmt.Errorf("NewsAPI returned status %d with unreadable body: %w", resp.StatusCode, err))
	}
	if resp.StatusCode != http.StatusOK || out.Status != "ok" {
		if out.Message != "" {
			return nil, apperr.UpstreamFetch(fmt.Errorf("%s: %s", out.Code, out.Message))
		}
		return nil, apperr.UpstreamFetch(fmt.Errorf("NewsAPI returned status %d", resp.StatusCode))
	}

	if out.Articles == nil {
		return []types.Article{}, nil
	}
	return truncate(out.Articles, req.NumArticles), nil
}
