package summarization

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/sashabaranov/go-openai"

	"go-newsdigest/apperr"
)

const maxPromptLength = 15000 // Rough character limit for prompt

var deterministicSeed = 42

// OpenAISummarizer asks a chat model for the summary. Length bounds are
// given to the model as a word range and enforced loosely through MaxTokens.
type OpenAISummarizer struct {
	client *openai.Client
	model  string
}

func NewOpenAISummarizer(client *openai.Client, model string) *OpenAISummarizer {
	if model == "" {
		model = openai.GPT4oMini
	}
	return &OpenAISummarizer{client: client, model: model}
}

func (s *OpenAISummarizer) Summarize(ctx context.Context, text string, opts Options) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", apperr.Validation("cannot summarize empty text")
	}
	text = truncateUTF8(text, maxPromptLength)

	prompt := fmt.Sprintf("Summarize the following news article in %d to %d words. Keep the key facts, people and places. Reply with the summary only:\n\n---\n%s\n---",
		opts.MinLength, opts.MaxLength, text)

	req := openai.ChatCompletionRequest{
		Model: s.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: "You are an assistant that summarizes news articles concisely and factually.",
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
		// words to tokens is roughly 3:4, leave headroom so the model can finish a sentence
		MaxTokens: opts.MaxLength * 2,
		N:         1,
	}
	if opts.Deterministic {
		// a literal 0 is dropped by omitempty and the API falls back to 1.0
		req.Temperature = math.SmallestNonzeroFloat32
		req.Seed = &deterministicSeed
	} else {
		req.Temperature = 0.7
	}

	resp, err := s.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", apperr.ModelInference("summarization failed", fmt.Errorf("openai chat completion error: %w", err))
	}

	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		return "", apperr.ModelInference("summarization failed", errors.New("openai returned empty response or choices"))
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// truncateUTF8 cuts s to at most n bytes without splitting a rune.
func truncateUTF8(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
