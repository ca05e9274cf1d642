package cronjobs

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"go-newsdigest/config"
	"go-newsdigest/db"
	"go-newsdigest/types"
)

const digestTimeout = 5 * time.Minute

// DigestSummarizer is the part of the service the digest job needs.
type DigestSummarizer interface {
	Summarize(ctx context.Context, req types.SearchRequest) ([]types.SummaryResult, error)
}

// cronLogger adapts slog to cron.Logger.
type cronLogger struct {
	logger *slog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Debug("cron: "+msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.logger.Error("cron: "+msg, append(keysAndValues, "error", err)...)
}

// InitCronJobs schedules the digest job and starts the scheduler. The
// caller owns the returned scheduler and should Stop it on shutdown.
func InitCronJobs(cfg config.DigestConfig, svc DigestSummarizer, store db.DigestStore, logger *slog.Logger) (*cron.Cron, error) {
	logger.Info("starting cron jobs", "schedule", cfg.Schedule, "keywords", cfg.Keywords)

	cl := cronLogger{logger: logger}
	c := cron.New(cron.WithLogger(cl), cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)))

	_, err := c.AddFunc(cfg.Schedule, func() {
		logger.Info("CronJob: digest running")
		saved := RunDigests(context.Background(), cfg, svc, store, logger)
		logger.Info("CronJob: digest finished", "saved", saved, "keywords", len(cfg.Keywords))
	})
	if err != nil {
		return nil, err
	}

	c.Start()
	return c, nil
}

// RunDigests summarizes every configured keyword and stores one digest per
// keyword. Failures are logged and skipped. It returns the number of digests saved.
func RunDigests(ctx context.Context, cfg config.DigestConfig, svc DigestSummarizer, store db.DigestStore, logger *slog.Logger) int {
	saved := 0
	for _, keyword := range cfg.Keywords {
		if ctx.Err() != nil {
			logger.Warn("digest run cancelled", "error", ctx.Err())
			break
		}

		n := cfg.NumArticles
		req := types.NewSearchRequest(keyword, cfg.Language, &n)

		kctx, cancel := context.WithTimeout(ctx, digestTimeout)
		results, err := svc.Summarize(kctx, req)
		if err != nil {
			cancel()
			logger.Error("digest summarize failed", "keyword", keyword, "error", err)
			continue
		}

		digest := &types.Digest{
			Keyword:   req.Keyword,
			Language:  req.Language,
			CreatedAt: time.Now().UTC(),
			Results:   results,
		}
		err = store.Save(kctx, digest)
		cancel()
		if err != nil {
			logger.Error("digest save failed", "keyword", keyword, "error", err)
			continue
		}

		logger.Info("digest saved", "keyword", keyword, "id", digest.ID, "results", len(results))
		saved++
	}
	return saved
}
