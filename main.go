package main

import (
	"context"
	"errors"
	"io/fs"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"github.com/sashabaranov/go-openai"

	"go-newsdigest/config"
	"go-newsdigest/cronjobs"
	"go-newsdigest/db"
	"go-newsdigest/handlers"
	"go-newsdigest/metrics"
	"go-newsdigest/mlmodel"
	"go-newsdigest/news"
	"go-newsdigest/nlp"
	"go-newsdigest/routes"
	"go-newsdigest/service"
	"go-newsdigest/summarization"
)

func main() {
	// Load .env file when there is one
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Fatalf("Error loading .env file: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)
	gin.SetMode(cfg.GinMode)

	ctx := context.Background()

	source := newSource(cfg)
	hf := mlmodel.NewClient(cfg.HFToken, mlmodel.WithBaseURL(cfg.HFBaseURL))
	summarizer := newSummarizer(cfg, hf)

	classifier, closeClassifier, err := newClassifier(ctx, cfg, hf)
	if err != nil {
		log.Fatalf("Failed to create sentiment classifier: %v", err)
	}
	defer closeClassifier()

	m := metrics.New()
	svc := service.New(source, summarizer, classifier, m, logger)

	var store db.DigestStore
	var scheduler *cron.Cron
	if cfg.Digest.FirebaseCredentials != "" {
		firestoreClient, err := db.InitFirestore(ctx, cfg.Digest.FirebaseCredentials)
		if err != nil {
			log.Fatalf("Failed to initialize Firestore: %v", err)
		}
		defer firestoreClient.Close()
		store = db.NewFirestoreDigestStore(firestoreClient)
	}
	if cfg.Digest.Enabled() {
		scheduler, err = cronjobs.InitCronJobs(cfg.Digest, svc, store, logger)
		if err != nil {
			log.Fatalf("Failed to schedule digest job: %v", err)
		}
	} else if len(cfg.Digest.Keywords) > 0 {
		logger.Warn("DIGEST_KEYWORDS set without FIREBASE_CREDENTIALS, digest job disabled")
	}

	r := routes.SetupRouter(routes.Deps{
		Handler:        handlers.New(svc, store, cfg.StrictUpstreamStatus, logger),
		Metrics:        m,
		Logger:         logger,
		RequestTimeout: cfg.RequestTimeout,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("server listening",
			"addr", srv.Addr,
			"news_source", cfg.News.Source,
			"summarizer", cfg.Summarizer.Backend,
			"sentiment", cfg.Sentiment.Backend)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server:", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down")

	if scheduler != nil {
		<-scheduler.Stop().Done()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.RequestTimeout+5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", "error", err)
	}
}

func newSource(cfg *config.Config) news.Source {
	switch cfg.News.Source {
	case config.SourceBluesky:
		return news.NewBlueskySource(cfg.News.BlueskyHost)
	case config.SourceRSS:
		return news.NewRSSSource(cfg.News.RSSFeeds)
	default:
		return news.NewNewsAPIClient(cfg.News.APIKey, news.WithBaseURL(cfg.News.BaseURL))
	}
}

func newSummarizer(cfg *config.Config, hf *mlmodel.Client) summarization.Summarizer {
	if cfg.Summarizer.Backend == config.BackendOpenAI {
		return summarization.NewOpenAISummarizer(openai.NewClient(cfg.Summarizer.OpenAIAPIKey), cfg.Summarizer.OpenAIModel)
	}
	return summarization.NewHFSummarizer(hf)
}

func newClassifier(ctx context.Context, cfg *config.Config, hf *mlmodel.Client) (nlp.Classifier, func(), error) {
	if cfg.Sentiment.Backend == config.BackendGCP {
		c, err := nlp.NewGCPClassifier(ctx, cfg.Sentiment.NaturalLanguageCredentials)
		if err != nil {
			return nil, nil, err
		}
		return c, func() { _ = c.Close() }, nil
	}
	return nlp.NewHFClassifier(hf), func() {}, nil
}
