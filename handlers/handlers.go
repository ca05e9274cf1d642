package handlers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"go-newsdigest/apperr"
	"go-newsdigest/db"
	"go-newsdigest/types"
)

// NewsService is what the handlers need from service.Service.
type NewsService interface {
	FetchArticles(ctx context.Context, req types.SearchRequest) ([]types.Article, error)
	Summarize(ctx context.Context, req types.SearchRequest) ([]types.SummaryResult, error)
	AnalyzeSentiment(ctx context.Context, text string) (types.SentimentResult, error)
}

type Handler struct {
	svc    NewsService
	store  db.DigestStore
	strict bool
	logger *slog.Logger
}

// New builds the handler set. store may be nil when digest storage is not
// configured; strict selects 502 for upstream and model failures.
func New(svc NewsService, store db.DigestStore, strict bool, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{svc: svc, store: store, strict: strict, logger: logger}
}

type errorResponse struct {
	Detail string      `json:"detail"`
	Code   apperr.Kind `json:"code"`
}

func (h *Handler) respondError(c *gin.Context, err error) {
	status := apperr.HTTPStatus(err, h.strict)
	kind := apperr.KindOf(err)

	detail := err.Error()
	if kind == apperr.KindInternal {
		h.logger.ErrorContext(c.Request.Context(), "unhandled error", "path", c.FullPath(), "error", err)
		detail = "internal server error"
	}
	c.AbortWithStatusJSON(status, errorResponse{Detail: detail, Code: kind})
}

// bindJSON decodes the body into obj and turns binding failures into
// validation errors.
func bindJSON(c *gin.Context, obj any) error {
	if err := c.ShouldBindJSON(obj); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fieldMessage(fe))
			}
			return apperr.Validation(strings.Join(msgs, "; "))
		}
		return apperr.Validationf("invalid request body: %v", err)
	}
	return nil
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	default:
		return fmt.Sprintf("%s failed %s validation", fe.Field(), fe.Tag())
	}
}

// JSONTagName makes validation errors use the JSON field names. It is
// registered on gin's validator in routes.SetupRouter.
func JSONTagName(fld reflect.StructField) string {
	name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
	if name == "-" || name == "" {
		return fld.Name
	}
	return name
}
