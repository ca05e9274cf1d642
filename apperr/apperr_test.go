package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStatus(t *testing.T) {
	cause := errors.New("connection refused")

	tests := []struct {
		name   string
		err    error
		compat int
		strict int
	}{
		{"validation", Validation("keyword is required"), http.StatusBadRequest, http.StatusBadRequest},
		{"upstream fetch", UpstreamFetch(cause), http.StatusBadRequest, http.StatusBadGateway},
		{"model inference", ModelInference("summarization failed", cause), http.StatusBadRequest, http.StatusBadGateway},
		{"not found", NotFound("digest not found"), http.StatusNotFound, http.StatusNotFound},
		{"unavailable", Unavailable("digest storage is not configured"), http.StatusServiceUnavailable, http.StatusServiceUnavailable},
		{"plain error", cause, http.StatusInternalServerError, http.StatusInternalServerError},
		{"wrapped kind", fmt.Errorf("handler: %w", UpstreamFetch(cause)), http.StatusBadRequest, http.StatusBadGateway},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.compat, HTTPStatus(tt.err, false))
			assert.Equal(t, tt.strict, HTTPStatus(tt.err, true))
		})
	}
}

func TestErrorMessageAndUnwrap(t *testing.T) {
	cause := errors.New("apiKeyInvalid")
	err := UpstreamFetch(cause)

	assert.Equal(t, "Error fetching news articles: apiKeyInvalid", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, KindUpstreamFetch, KindOf(err))
	assert.Equal(t, KindInternal, KindOf(cause))
	assert.Equal(t, "num_articles must be between 1 and 100", Validationf("num_articles must be between %d and %d", 1, 100).Error())
}
