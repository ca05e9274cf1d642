// Package service wires the news source, the summarizer and the sentiment
// classifier into the three request flows.
package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"go-newsdigest/apperr"
	"go-newsdigest/metrics"
	"go-newsdigest/news"
	"go-newsdigest/nlp"
	"go-newsdigest/summarization"
	"go-newsdigest/types"
)

// Service holds read-only collaborator handles and is safe for concurrent use.
type Service struct {
	source     news.Source
	summarizer summarization.Summarizer
	classifier nlp.Classifier
	metrics    *metrics.Metrics
	logger     *slog.Logger
}

func New(source news.Source, summarizer summarization.Summarizer, classifier nlp.Classifier, m *metrics.Metrics, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		source:     source,
		summarizer: summarizer,
		classifier: classifier,
		metrics:    m,
		logger:     logger,
	}
}

// FetchArticles returns the source's articles unchanged and in order.
func (s *Service) FetchArticles(ctx context.Context, req types.SearchRequest) ([]types.Article, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return s.fetch(ctx, req)
}

// Summarize fetches articles and summarizes each one that has a body, one
// model call per article, in article order. Articles without a body are
// dropped. The first summarization failure fails the whole request.
func (s *Service) Summarize(ctx context.Context, req types.SearchRequest) ([]types.SummaryResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	articles, err := s.fetch(ctx, req)
	if err != nil {
		return nil, err
	}

	results := []types.SummaryResult{}
	for _, article := range articles {
		body := summarization.CleanBody(article.Body())
		if body == "" {
			s.logger.DebugContext(ctx, "skipping article without body", "url", article.URL)
			continue
		}

		start := time.Now()
		summary, err := s.summarizer.Summarize(ctx, body, summarization.DefaultOptions)
		s.metrics.ObserveCall("summarizer", start, err)
		if err != nil {
			s.logger.ErrorContext(ctx, "summarization failed", "url", article.URL, "error", err)
			if apperr.KindOf(err) == apperr.KindInternal {
				err = apperr.ModelInference("summarization failed", err)
			}
			return nil, err
		}

		results = append(results, types.SummaryResult{
			Title:   article.Title,
			Summary: summary,
			Source:  article.Source.Name,
			URL:     article.URL,
		})
	}

	s.logger.InfoContext(ctx, "summarized articles",
		"keyword", req.Keyword,
		"language", req.Language,
		"fetched", len(articles),
		"summarized", len(results))
	return results, nil
}

// AnalyzeSentiment classifies text as a single unit.
func (s *Service) AnalyzeSentiment(ctx context.Context, text string) (types.SentimentResult, error) {
	if strings.TrimSpace(text) == "" {
		return types.SentimentResult{}, apperr.Validation("text is required")
	}

	start := time.Now()
	sentiment, err := s.classifier.Classify(ctx, text)
	s.metrics.ObserveCall("classifier", start, err)
	if err != nil {
		s.logger.ErrorContext(ctx, "sentiment analysis failed", "error", err)
		if apperr.KindOf(err) == apperr.KindInternal {
			err = apperr.ModelInference("sentiment analysis failed", err)
		}
		return types.SentimentResult{}, err
	}

	return types.SentimentResult{
		Text:       text,
		Sentiment:  sentiment.Label,
		Confidence: sentiment.Confidence,
	}, nil
}

func (s *Service) fetch(ctx context.Context, req types.SearchRequest) ([]types.Article, error) {
	start := time.Now()
	articles, err := s.source.Search(ctx, req)
	s.metrics.ObserveCall("news", start, err)
	if err != nil {
		s.logger.ErrorContext(ctx, "news fetch failed", "keyword", req.Keyword, "error", err)
		if apperr.KindOf(err) == apperr.KindInternal {
			err = apperr.UpstreamFetch(err)
		}
		return nil, err
	}

	if len(articles) > req.NumArticles {
		articles = articles[:req.NumArticles]
	}
	if articles == nil {
		articles = []types.Article{}
	}
	return articles, nil
}
