package nlp

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"go-newsdigest/apperr"
	"go-newsdigest/mlmodel"
	"go-newsdigest/types"
)

const SentimentModel = "distilbert-base-uncased-finetuned-sst-2-english"

type labelScore struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// HFClassifier runs the SST-2 DistilBERT model on the Hugging Face inference API.
type HFClassifier struct {
	client *mlmodel.Client
	model  string
}

func NewHFClassifier(client *mlmodel.Client) *HFClassifier {
	return &HFClassifier{client: client, model: SentimentModel}
}

func (c *HFClassifier) Classify(ctx context.Context, text string) (types.Sentiment, error) {
	if strings.TrimSpace(text) == "" {
		return types.Sentiment{}, apperr.Validation("text is required")
	}

	var raw json.RawMessage
	err := c.client.CallModel(ctx, c.model, mlmodel.Request{
		Inputs:  text,
		Options: &mlmodel.RequestOptions{WaitForModel: true, UseCache: true},
	}, &raw)
	if err != nil {
		return types.Sentiment{}, apperr.ModelInference("sentiment analysis failed", err)
	}

	scores, err := decodeScores(raw)
	if err != nil {
		return types.Sentiment{}, apperr.ModelInference("sentiment analysis failed", err)
	}

	best := scores[0]
	for _, s := range scores[1:] {
		if s.Score > best.Score {
			best = s
		}
	}
	return normalize(best.Label, best.Score)
}

// decodeScores accepts both the nested [[{label,score}]] shape returned for a
// single input and the flat [{label,score}] shape.
func decodeScores(raw json.RawMessage) ([]labelScore, error) {
	var nested [][]labelScore
	if err := json.Unmarshal(raw, &nested); err == nil && len(nested) > 0 && len(nested[0]) > 0 {
		return nested[0], nil
	}

	var flat []labelScore
	if err := json.Unmarshal(raw, &flat); err == nil && len(flat) > 0 {
		return flat, nil
	}

	return nil, errors.New("model returned no sentiment scores")
}
