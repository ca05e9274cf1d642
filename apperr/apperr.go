// Package apperr defines the error kinds surfaced by the HTTP handlers and
// the single place where they are mapped to status codes.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an error for the client-facing boundary.
type Kind string

const (
	KindInternal       Kind = "internal"
	KindValidation     Kind = "validation"
	KindUpstreamFetch  Kind = "upstream_fetch"
	KindModelInference Kind = "model_inference"
	KindNotFound       Kind = "not_found"
	KindUnavailable    Kind = "unavailable"
)

// Error carries a Kind alongside the client-visible message and the cause.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	switch {
	case e.Msg != "" && e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	case e.Msg != "":
		return e.Msg
	case e.Err != nil:
		return e.Err.Error()
	}
	return string(e.Kind)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Validation reports malformed or out-of-range input.
func Validation(msg string) error {
	return &Error{Kind: KindValidation, Msg: msg}
}

// Validationf is Validation with formatting.
func Validationf(format string, args ...any) error {
	return &Error{Kind: KindValidation, Msg: fmt.Sprintf(format, args...)}
}

// UpstreamFetch wraps a failure of the news collaborator (network, auth, quota).
func UpstreamFetch(err error) error {
	return &Error{Kind: KindUpstreamFetch, Msg: "Error fetching news articles", Err: err}
}

// ModelInference wraps a failure of a summarization or sentiment model.
func ModelInference(msg string, err error) error {
	return &Error{Kind: KindModelInference, Msg: msg, Err: err}
}

// NotFound reports a missing stored resource.
func NotFound(msg string) error {
	return &Error{Kind: KindNotFound, Msg: msg}
}

// Unavailable reports a feature that is not configured in this process.
func Unavailable(msg string) error {
	return &Error{Kind: KindUnavailable, Msg: msg}
}

// KindOf returns the Kind of the outermost *Error in err's chain, or
// KindInternal when there is none.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// HTTPStatus maps err to a response status. In compat mode (strict == false)
// upstream and model failures are reported as 400 like every other
// handler-level failure; strict mode reports them as 502.
func HTTPStatus(err error, strict bool) int {
	switch KindOf(err) {
	case KindValidation:
		return http.StatusBadRequest
	case KindUpstreamFetch, KindModelInference:
		if strict {
			return http.StatusBadGateway
		}
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
