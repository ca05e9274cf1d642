package routes

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"go-newsdigest/handlers"
	"go-newsdigest/metrics"
)

type Deps struct {
	Handler        *handlers.Handler
	Metrics        *metrics.Metrics
	Logger         *slog.Logger
	RequestTimeout time.Duration
}

func SetupRouter(deps Deps) *gin.Engine {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(handlers.JSONTagName)
	}

	r := gin.New()
	r.Use(
		gin.Recovery(),
		RequestID(),
		Logger(deps.Logger),
		Metrics(deps.Metrics),
	)

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	r.GET("/metrics", gin.WrapH(deps.Metrics.Handler()))

	api := r.Group("/", Timeout(deps.RequestTimeout))
	{
		api.POST("/summarize", deps.Handler.Summarize)
		api.POST("/fetch_articles", deps.Handler.FetchArticles)
		api.POST("/analyze_sentiment", deps.Handler.AnalyzeSentiment)
		api.GET("/digests", deps.Handler.ListDigests)
		api.GET("/digests/:id", deps.Handler.GetDigest)
	}

	return r
}
