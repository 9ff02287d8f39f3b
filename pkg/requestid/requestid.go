package requestid

import (
	"context"
	"log/slog"
	"net/http"
	"regexp"

	"github.com/google/uuid"
)

const (
	Header      = "X-Request-ID"
	maxIDLength = 128
)

var validID = regexp.MustCompile("^[a-zA-Z0-9_-]+$")

type contextKey struct{}

// WithContext stores id in ctx.
func WithContext(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, contextKey{}, id)
}

// WithNew stores a freshly generated id in ctx and returns both.
func WithNew(ctx context.Context) (context.Context, string) {
	id := uuid.NewString()
	return WithContext(ctx, id), id
}

// FromContext returns the id stored in ctx, or "".
func FromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(contextKey{}).(string)
	return id
}

// Stamp sets the request-ID header on req unless the caller already set a
// valid one. The id comes from the request context when present.
func Stamp(req *http.Request) error {
	if isValid(req.Header.Get(Header)) {
		return nil
	}
	id := FromContext(req.Context())
	if !isValid(id) {
		id = uuid.NewString()
	}
	req.Header.Set(Header, id)
	return nil
}

// LoggerExtractor returns a logger context extractor adding "request_id".
func LoggerExtractor() func(ctx context.Context) (slog.Attr, bool) {
	return func(ctx context.Context) (slog.Attr, bool) {
		if id := FromContext(ctx); id != "" {
			return slog.String("request_id", id), true
		}
		return slog.Attr{}, false
	}
}

func isValid(id string) bool {
	return id != "" && len(id) <= maxIDLength && validID.MatchString(id)
}
