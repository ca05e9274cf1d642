package nlp

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"cloud.google.com/go/language/apiv2/languagepb"
	"github.com/googleapis/gax-go/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-newsdigest/apperr"
	"go-newsdigest/mlmodel"
	"go-newsdigest/types"
)

func hfServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/"+SentimentModel, r.URL.Path)
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server
}

func TestHFClassifier(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		wantLabel      string
		wantConfidence float64
	}{
		{
			name:           "nested response",
			body:           `[[{"label":"POSITIVE","score":0.9998},{"label":"NEGATIVE","score":0.0002}]]`,
			wantLabel:      types.LabelPositive,
			wantConfidence: 0.9998,
		},
		{
			name:           "flat response picks highest score",
			body:           `[{"label":"POSITIVE","score":0.12},{"label":"NEGATIVE","score":0.88}]`,
			wantLabel:      types.LabelNegative,
			wantConfidence: 0.88,
		},
		{
			name:           "lower-case label",
			body:           `[{"label":"positive","score":0.7}]`,
			wantLabel:      types.LabelPositive,
			wantConfidence: 0.7,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := hfServer(t, http.StatusOK, tt.body)
			c := NewHFClassifier(mlmodel.NewClient("", mlmodel.WithBaseURL(server.URL)))

			got, err := c.Classify(context.Background(), "I love this product")
			require.NoError(t, err)
			assert.Equal(t, tt.wantLabel, got.Label)
			assert.InDelta(t, tt.wantConfidence, got.Confidence, 1e-9)
		})
	}
}

func TestHFClassifierErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"upstream error", http.StatusServiceUnavailable, `{"error":"loading"}`},
		{"no scores", http.StatusOK, `[]`},
		{"unknown label", http.StatusOK, `[{"label":"LABEL_1","score":0.9}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := hfServer(t, tt.status, tt.body)
			c := NewHFClassifier(mlmodel.NewClient("", mlmodel.WithBaseURL(server.URL)))

			_, err := c.Classify(context.Background(), "text")
			require.Error(t, err)
			assert.Equal(t, apperr.KindModelInference, apperr.KindOf(err))
		})
	}
}

func TestNormalizeClampsConfidence(t *testing.T) {
	got, err := normalize("negative", 1.2)
	require.NoError(t, err)
	assert.Equal(t, types.Sentiment{Label: types.LabelNegative, Confidence: 1}, got)

	got, err = normalize("POSITIVE", -0.1)
	require.NoError(t, err)
	assert.Equal(t, 0.0, got.Confidence)
}

type fakeAnalyzer struct {
	score float32
	err   error
	got   *languagepb.AnalyzeSentimentRequest
}

func (f *fakeAnalyzer) AnalyzeSentiment(_ context.Context, req *languagepb.AnalyzeSentimentRequest, _ ...gax.CallOption) (*languagepb.AnalyzeSentimentResponse, error) {
	f.got = req
	if f.err != nil {
		return nil, f.err
	}
	return &languagepb.AnalyzeSentimentResponse{
		DocumentSentiment: &languagepb.Sentiment{Score: f.score},
	}, nil
}

func TestGCPClassifier(t *testing.T) {
	tests := []struct {
		score      float32
		wantLabel  string
		wantConfid float64
	}{
		{0.9, types.LabelPositive, 0.95},
		{0, types.LabelPositive, 0.5},
		{-0.6, types.LabelNegative, 0.8},
		{-1, types.LabelNegative, 1},
	}

	for _, tt := range tests {
		fake := &fakeAnalyzer{score: tt.score}
		c := &GCPClassifier{client: fake}

		got, err := c.Classify(context.Background(), "The service was terrible")
		require.NoError(t, err)
		assert.Equal(t, tt.wantLabel, got.Label)
		assert.InDelta(t, tt.wantConfid, got.Confidence, 1e-6)
		assert.Equal(t, "The service was terrible", fake.got.GetDocument().GetContent())
	}
}

func TestGCPClassifierError(t *testing.T) {
	c := &GCPClassifier{client: &fakeAnalyzer{err: errors.New("PermissionDenied")}}

	_, err := c.Classify(context.Background(), "text")
	require.Error(t, err)
	assert.Equal(t, apperr.KindModelInference, apperr.KindOf(err))
	assert.NoError(t, c.Close())
}

func TestNewGCPClassifierBadCredentials(t *testing.T) {
	_, err := NewGCPClassifier(context.Background(), "%%% not base64")
	assert.Error(t, err)
}
