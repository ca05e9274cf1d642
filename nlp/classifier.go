package nlp

import (
	"context"
	"fmt"
	"strings"

	"go-newsdigest/apperr"
	"go-newsdigest/types"
)

// Classifier returns the single most likely sentiment class for a text.
type Classifier interface {
	Classify(ctx context.Context, text string) (types.Sentiment, error)
}

// normalize upper-cases the label, rejects labels outside the binary set and
// clamps the confidence into [0,1].
func normalize(label string, confidence float64) (types.Sentiment, error) {
	label = strings.ToUpper(strings.TrimSpace(label))
	switch label {
	case types.LabelPositive, types.LabelNegative:
	default:
		return types.Sentiment{}, apperr.ModelInference("sentiment analysis failed", fmt.Errorf("unexpected label %q", label))
	}

	switch {
	case confidence < 0:
		confidence = 0
	case confidence > 1:
		confidence = 1
	}
	return types.Sentiment{Label: label, Confidence: confidence}, nil
}
