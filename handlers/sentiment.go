package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type sentimentRequest struct {
	Text string `json:"text" binding:"required"`
}

// AnalyzeSentiment handles POST /analyze_sentiment.
func (h *Handler) AnalyzeSentiment(c *gin.Context) {
	var body sentimentRequest
	if err := bindJSON(c, &body); err != nil {
		h.respondError(c, err)
		return
	}

	result, err := h.svc.AnalyzeSentiment(c.Request.Context(), body.Text)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
