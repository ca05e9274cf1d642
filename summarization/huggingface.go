package summarization

import (
	"context"
	"errors"
	"strings"

	"go-newsdigest/apperr"
	"go-newsdigest/mlmodel"
)

const SummarizationModel = "facebook/bart-large-cnn"

type hfParameters struct {
	MaxLength int  `json:"max_length"`
	MinLength int  `json:"min_length"`
	DoSample  bool `json:"do_sample"`
}

type hfSummary struct {
	SummaryText string `json:"summary_text"`
}

// HFSummarizer runs the pretrained BART CNN model on the Hugging Face
// inference API.
type HFSummarizer struct {
	client *mlmodel.Client
	model  string
}

func NewHFSummarizer(client *mlmodel.Client) *HFSummarizer {
	return &HFSummarizer{client: client, model: SummarizationModel}
}

func (s *HFSummarizer) Summarize(ctx context.Context, text string, opts Options) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", apperr.Validation("cannot summarize empty text")
	}

	var out []hfSummary
	err := s.client.CallModel(ctx, s.model, mlmodel.Request{
		Inputs: text,
		Parameters: hfParameters{
			MaxLength: opts.MaxLength,
			MinLength: opts.MinLength,
			DoSample:  !opts.Deterministic,
		},
		Options: &mlmodel.RequestOptions{WaitForModel: true, UseCache: opts.Deterministic},
	}, &out)
	if err != nil {
		return "", apperr.ModelInference("summarization failed", err)
	}

	if len(out) == 0 || strings.TrimSpace(out[0].SummaryText) == "" {
		return "", apperr.ModelInference("summarization failed", errors.New("model returned an empty summary"))
	}
	return strings.TrimSpace(out[0].SummaryText), nil
}
