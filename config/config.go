// Package config reads the process configuration from the environment.
// Everything is validated up front so a misconfigured process never starts.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
)

const (
	SourceNewsAPI = "newsapi"
	SourceBluesky = "bluesky"
	SourceRSS     = "rss"

	BackendHuggingFace = "huggingface"
	BackendOpenAI      = "openai"
	BackendGCP         = "gcp"
)

type Config struct {
	Port           string
	GinMode        string
	LogLevel       slog.Level
	RequestTimeout time.Duration
	// StrictUpstreamStatus reports upstream and model failures as 502
	// instead of 400.
	StrictUpstreamStatus bool

	News       NewsConfig
	Summarizer SummarizerConfig
	Sentiment  SentimentConfig
	Digest     DigestConfig

	HFToken   string
	HFBaseURL string
}

type NewsConfig struct {
	Source      string
	APIKey      string
	BaseURL     string
	BlueskyHost string
	RSSFeeds    []string
}

type SummarizerConfig struct {
	Backend      string
	OpenAIAPIKey string
	OpenAIModel  string
}

type SentimentConfig struct {
	Backend string
	// NaturalLanguageCredentials is a base64 service account JSON.
	NaturalLanguageCredentials string
}

type DigestConfig struct {
	Keywords            []string
	Language            string
	NumArticles         int
	Schedule            string
	FirebaseCredentials string
}

// Enabled reports whether the scheduled digest job should run.
func (d DigestConfig) Enabled() bool {
	return len(d.Keywords) > 0 && d.FirebaseCredentials != ""
}

// Load reads the configuration from the process environment.
func Load() (*Config, error) {
	return load(os.Getenv)
}

func load(getenv func(string) string) (*Config, error) {
	var errs []error
	env := func(key, def string) string {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			return v
		}
		return def
	}

	cfg := &Config{
		Port:      env("PORT", "8080"),
		GinMode:   env("GIN_MODE", "release"),
		HFToken:   env("HF_API_TOKEN", ""),
		HFBaseURL: env("HF_BASE_URL", ""),
		News: NewsConfig{
			Source:      strings.ToLower(env("NEWS_SOURCE", SourceNewsAPI)),
			APIKey:      env("NEWS_API_KEY", ""),
			BaseURL:     env("NEWS_API_BASE_URL", ""),
			BlueskyHost: env("BLUESKY_HOST", ""),
			RSSFeeds:    splitList(env("RSS_FEEDS", "")),
		},
		Summarizer: SummarizerConfig{
			Backend:      strings.ToLower(env("SUMMARIZER_BACKEND", BackendHuggingFace)),
			OpenAIAPIKey: env("OPENAI_API_KEY", ""),
			OpenAIModel:  env("OPENAI_MODEL", ""),
		},
		Sentiment: SentimentConfig{
			Backend:                    strings.ToLower(env("SENTIMENT_BACKEND", BackendHuggingFace)),
			NaturalLanguageCredentials: env("NATURAL_LANGUAGE_CREDENTIALS", ""),
		},
		Digest: DigestConfig{
			Keywords:            splitList(env("DIGEST_KEYWORDS", "")),
			Language:            env("DIGEST_LANGUAGE", "en"),
			Schedule:            env("DIGEST_SCHEDULE", "0 * * * *"),
			FirebaseCredentials: env("FIREBASE_CREDENTIALS", ""),
		},
	}

	if err := cfg.LogLevel.UnmarshalText([]byte(env("LOG_LEVEL", "info"))); err != nil {
		errs = append(errs, fmt.Errorf("LOG_LEVEL: %w", err))
	}

	timeout, err := time.ParseDuration(env("REQUEST_TIMEOUT", "60s"))
	switch {
	case err != nil:
		errs = append(errs, fmt.Errorf("REQUEST_TIMEOUT: %w", err))
	case timeout <= 0:
		errs = append(errs, errors.New("REQUEST_TIMEOUT must be positive"))
	}
	cfg.RequestTimeout = timeout

	strict, err := strconv.ParseBool(env("UPSTREAM_STATUS_STRICT", "false"))
	if err != nil {
		errs = append(errs, fmt.Errorf("UPSTREAM_STATUS_STRICT: %w", err))
	}
	cfg.StrictUpstreamStatus = strict

	n, err := strconv.Atoi(env("DIGEST_NUM_ARTICLES", "5"))
	if err != nil || n < 1 || n > 100 {
		errs = append(errs, errors.New("DIGEST_NUM_ARTICLES must be an integer between 1 and 100"))
	}
	cfg.Digest.NumArticles = n

	switch cfg.News.Source {
	case SourceNewsAPI:
		if cfg.News.APIKey == "" {
			errs = append(errs, errors.New("NEWS_API_KEY not found. Make sure it is set in the environment or .env file"))
		}
	case SourceBluesky:
	case SourceRSS:
		if len(cfg.News.RSSFeeds) == 0 {
			errs = append(errs, errors.New("RSS_FEEDS is required when NEWS_SOURCE=rss"))
		}
	default:
		errs = append(errs, fmt.Errorf("NEWS_SOURCE %q is not one of newsapi, bluesky, rss", cfg.News.Source))
	}

	switch cfg.Summarizer.Backend {
	case BackendHuggingFace:
	case BackendOpenAI:
		if cfg.Summarizer.OpenAIAPIKey == "" {
			errs = append(errs, errors.New("OPENAI_API_KEY is required when SUMMARIZER_BACKEND=openai"))
		}
	default:
		errs = append(errs, fmt.Errorf("SUMMARIZER_BACKEND %q is not one of huggingface, openai", cfg.Summarizer.Backend))
	}

	switch cfg.Sentiment.Backend {
	case BackendHuggingFace:
	case BackendGCP:
		if cfg.Sentiment.NaturalLanguageCredentials == "" {
			errs = append(errs, errors.New("NATURAL_LANGUAGE_CREDENTIALS is required when SENTIMENT_BACKEND=gcp"))
		}
	default:
		errs = append(errs, fmt.Errorf("SENTIMENT_BACKEND %q is not one of huggingface, gcp", cfg.Sentiment.Backend))
	}

	if (cfg.Summarizer.Backend == BackendHuggingFace || cfg.Sentiment.Backend == BackendHuggingFace) && cfg.HFToken == "" {
		errs = append(errs, errors.New("HF_API_TOKEN is required when SUMMARIZER_BACKEND or SENTIMENT_BACKEND is huggingface"))
	}

	if len(cfg.Digest.Keywords) > 0 {
		if _, err := cron.ParseStandard(cfg.Digest.Schedule); err != nil {
			errs = append(errs, fmt.Errorf("DIGEST_SCHEDULE: %w", err))
		}
	}

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return cfg, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
