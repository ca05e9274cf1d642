package nlp

import (
	"context"
	"encoding/base64"
	"fmt"
	"math"
	"strings"

	language "cloud.google.com/go/language/apiv2"
	"cloud.google.com/go/language/apiv2/languagepb"
	"github.com/googleapis/gax-go/v2"
	"google.golang.org/api/option"

	"go-newsdigest/apperr"
	"go-newsdigest/types"
)

// sentimentAnalyzer is the part of *language.Client the classifier uses.
type sentimentAnalyzer interface {
	AnalyzeSentiment(ctx context.Context, req *languagepb.AnalyzeSentimentRequest, opts ...gax.CallOption) (*languagepb.AnalyzeSentimentResponse, error)
}

// GCPClassifier uses the Cloud Natural Language API. The document score in
// [-1,1] is read as a binary classifier: POSITIVE when score >= 0, with
// confidence (1+|score|)/2.
type GCPClassifier struct {
	client sentimentAnalyzer
	closer func() error
}

// NewGCPClassifier creates a language client from base64-encoded service
// account credentials.
func NewGCPClassifier(ctx context.Context, encodedCreds string) (*GCPClassifier, error) {
	creds, err := base64.StdEncoding.DecodeString(encodedCreds)
	if err != nil {
		return nil, fmt.Errorf("failed to decode Natural Language credentials: %w", err)
	}

	client, err := language.NewClient(ctx, option.WithCredentialsJSON(creds))
	if err != nil {
		return nil, fmt.Errorf("failed to create Natural Language client: %w", err)
	}

	return &GCPClassifier{client: client, closer: client.Close}, nil
}

func (c *GCPClassifier) Classify(ctx context.Context, text string) (types.Sentiment, error) {
	if strings.TrimSpace(text) == "" {
		return types.Sentiment{}, apperr.Validation("text is required")
	}

	req := &languagepb.AnalyzeSentimentRequest{
		Document: &languagepb.Document{
			Source: &languagepb.Document_Content{
				Content: text,
			},
			Type: languagepb.Document_PLAIN_TEXT,
		},
		EncodingType: languagepb.EncodingType_UTF8,
	}

	resp, err := c.client.AnalyzeSentiment(ctx, req)
	if err != nil {
		return types.Sentiment{}, apperr.ModelInference("sentiment analysis failed", fmt.Errorf("AnalyzeSentiment request error: %w", err))
	}
	if resp.GetDocumentSentiment() == nil {
		return types.Sentiment{}, apperr.ModelInference("sentiment analysis failed", fmt.Errorf("AnalyzeSentiment returned no document sentiment"))
	}

	score := float64(resp.GetDocumentSentiment().GetScore())
	label := types.LabelPositive
	if score < 0 {
		label = types.LabelNegative
	}
	return normalize(label, (1+math.Abs(score))/2)
}

func (c *GCPClassifier) Close() error {
	if c.closer == nil {
		return nil
	}
	return c.closer()
}
