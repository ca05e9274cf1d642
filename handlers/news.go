package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"go-newsdigest/types"
)

type searchRequest struct {
	Keyword     string `json:"keyword" binding:"required"`
	Language    string `json:"language"`
	NumArticles *int   `json:"num_articles"`
}

// echo returns the keyword and language as the client sent them, with only
// the language default filled in.
func (b searchRequest) echo() (string, string) {
	if b.Language == "" {
		return b.Keyword, types.DefaultLanguage
	}
	return b.Keyword, b.Language
}

func (h *Handler) bindSearch(c *gin.Context) (searchRequest, types.SearchRequest, bool) {
	var body searchRequest
	if err := bindJSON(c, &body); err != nil {
		h.respondError(c, err)
		return body, types.SearchRequest{}, false
	}

	req := types.NewSearchRequest(body.Keyword, body.Language, body.NumArticles)
	if err := req.Validate(); err != nil {
		h.respondError(c, err)
		return body, types.SearchRequest{}, false
	}
	return body, req, true
}

// Summarize handles POST /summarize.
func (h *Handler) Summarize(c *gin.Context) {
	body, req, ok := h.bindSearch(c)
	if !ok {
		return
	}

	results, err := h.svc.Summarize(c.Request.Context(), req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	keyword, language := body.echo()
	c.JSON(http.StatusOK, gin.H{
		"keyword":  keyword,
		"language": language,
		"results":  results,
	})
}

// FetchArticles handles POST /fetch_articles.
func (h *Handler) FetchArticles(c *gin.Context) {
	body, req, ok := h.bindSearch(c)
	if !ok {
		return
	}

	articles, err := h.svc.FetchArticles(c.Request.Context(), req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	keyword, language := body.echo()
	c.JSON(http.StatusOK, gin.H{
		"keyword":  keyword,
		"language": language,
		"articles": articles,
	})
}
