package respond

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"runtime/debug"
	"strings"
	"sync"

	"github.com/danielgtaylor/huma/v2"
	"go.uber.org/zap"

	"github.com/arvela/contactbook/internal/platform/logging"
)

const (
	msgNotFound          = "resource not found"
	msgMethodNotAllowed  = "method not allowed"
	msgInternalServerErr = "internal server error"

	problemContentType = "application/problem+json"
)

// Problem is the error response body for every failure the API produces,
// following RFC 7807. Validation failures additionally carry FieldViolations,
// a field name to violated-rule messages mapping.
type Problem struct {
	Title           string              `json:"title,omitempty" doc:"Short human-readable summary"`
	Status          int                 `json:"status,omitempty" doc:"HTTP status code"`
	Detail          string              `json:"detail,omitempty" doc:"Human-readable explanation"`
	RequestID       string              `json:"requestId,omitempty" doc:"Request correlation identifier"`
	FieldViolations map[string][]string `json:"fieldViolations,omitempty" doc:"Per-field validation failures"`
}

// Error implements the error interface.
func (p *Problem) Error() string {
	if p.Detail != "" {
		return p.Detail
	}
	return p.Title
}

// GetStatus implements huma.StatusError.
func (p *Problem) GetStatus() int {
	return p.Status
}

// ContentType implements huma.ContentTypeFilter so JSON responses are served
// as application/problem+json.
func (p *Problem) ContentType(ct string) string {
	if ct == "application/json" {
		return problemContentType
	}
	return ct
}

var installOnce sync.Once

// Install replaces Huma's error constructors so every error response uses the
// Problem shape. Request-body schema violations, which Huma reports as 422,
// are surfaced as 400 Bad Request: from the caller's point of view they are
// malformed input, same as an unparseable body.
func Install() {
	installOnce.Do(func() {
		huma.NewError = func(status int, msg string, errs ...error) huma.StatusError {
			return newProblem(context.Background(), status, msg, errs)
		}
		huma.NewErrorWithContext = func(hctx huma.Context, status int, msg string, errs ...error) huma.StatusError {
			ctx := context.Background()
			if hctx != nil {
				ctx = hctx.Context()
			}
			return newProblem(ctx, status, msg, errs)
		}
	})
}

func newProblem(ctx context.Context, status int, msg string, errs []error) *Problem {
	if status == http.StatusUnprocessableEntity {
		status = http.StatusBadRequest
	}
	p := &Problem{
		Title:     http.StatusText(status),
		Status:    status,
		Detail:    msg,
		RequestID: logging.RequestIDFromContext(ctx),
	}
	for _, err := range errs {
		if err == nil {
			continue
		}
		field, message := violation(err)
		if p.FieldViolations == nil {
			p.FieldViolations = make(map[string][]string)
		}
		p.FieldViolations[field] = append(p.FieldViolations[field], message)
	}
	logProblem(ctx, p)
	return p
}

// violation extracts a (field, message) pair from a Huma error detail,
// trimming the "body." location prefix so keys match the request JSON.
func violation(err error) (string, string) {
	if d, ok := err.(huma.ErrorDetailer); ok {
		if detail := d.ErrorDetail(); detail != nil {
			field := strings.TrimPrefix(detail.Location, "body.")
			if field == "" || field == "body" {
				field = "body"
			}
			return field, detail.Message
		}
	}
	return "body", err.Error()
}

func logProblem(ctx context.Context, p *Problem) {
	fields := []zap.Field{
		zap.Int("status", p.Status),
		zap.String("detail", p.Detail),
	}
	if len(p.FieldViolations) > 0 {
		fields = append(fields, zap.Any("fieldViolations", p.FieldViolations))
	}
	if p.Status >= http.StatusInternalServerError {
		logging.LogError(ctx, "request failed", nil, fields...)
		return
	}
	logging.LogWarn(ctx, "request rejected", fields...)
}

// write renders a Problem directly to a ResponseWriter, for paths outside
// Huma's operation handling (router fallbacks, panics).
func write(w http.ResponseWriter, ctx context.Context, status int, detail string) {
	p := &Problem{
		Title:     http.StatusText(status),
		Status:    status,
		Detail:    detail,
		RequestID: logging.RequestIDFromContext(ctx),
	}
	w.Header().Set("Content-Type", problemContentType)
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(p); err != nil {
		logging.LogError(ctx, "failed to render error response", err)
	}
}

// NotFoundHandler emits a problem-details 404 for unrouted paths.
func NotFoundHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		write(w, r.Context(), http.StatusNotFound, msgNotFound)
	}
}

// MethodNotAllowedHandler emits a problem-details 405.
func MethodNotAllowedHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		write(w, r.Context(), http.StatusMethodNotAllowed, msgMethodNotAllowed)
	}
}

// Recoverer converts panics into problem-details 500 responses.
func Recoverer() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					var err error
					switch v := rec.(type) {
					case error:
						err = v
					default:
						err = fmt.Errorf("%v", v)
					}
					logging.LogError(r.Context(), "panic recovered", fmt.Errorf("%w\n%s", err, debug.Stack()))
					write(w, r.Context(), http.StatusInternalServerError, msgInternalServerErr)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
