package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"go-newsdigest/apperr"
	"go-newsdigest/db"
)

var errNoDigestStore = apperr.Unavailable("digest storage is not configured")

// ListDigests handles GET /digests?keyword=&limit=.
func (h *Handler) ListDigests(c *gin.Context) {
	if h.store == nil {
		h.respondError(c, errNoDigestStore)
		return
	}

	limit := 10
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > db.MaxListLimit {
			h.respondError(c, apperr.Validationf("limit must be an integer between 1 and %d", db.MaxListLimit))
			return
		}
		limit = n
	}

	digests, err := h.store.List(c.Request.Context(), strings.TrimSpace(c.Query("keyword")), limit)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"digests": digests})
}

// GetDigest handles GET /digests/:id.
func (h *Handler) GetDigest(c *gin.Context) {
	if h.store == nil {
		h.respondError(c, errNoDigestStore)
		return
	}

	digest, err := h.store.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, digest)
}
