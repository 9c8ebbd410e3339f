// Package requestid tags every request with an identifier that flows into
// logs and error responses, so a tenant-facing failure can be traced to the
// exact log lines that produced it.
package requestid

import (
	"context"
	"log/slog"
	"net/http"
	"regexp"

	"github.com/google/uuid"
)

// Header is the default request and response header carrying the ID.
const Header = "X-Request-ID"

const maxIDLength = 128

var validID = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

type contextKey struct{}

// WithContext stores id in ctx.
func WithContext(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, contextKey{}, id)
}

// FromContext returns the request ID, or "" when none was assigned.
func FromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(contextKey{}).(string)
	return id
}

// LoggerExtractor adds request_id to log records emitted with a request context.
func LoggerExtractor() func(ctx context.Context) (slog.Attr, bool) {
	return func(ctx context.Context) (slog.Attr, bool) {
		if id := FromContext(ctx); id != "" {
			return slog.String("request_id", id), true
		}
		return slog.Attr{}, false
	}
}

type config struct {
	header        string
	trustIncoming bool
}

// Option configures Middleware.
type Option func(*config)

// WithHeader overrides the header name.
func WithHeader(name string) Option {
	return func(c *config) {
		if name != "" {
			c.header = name
		}
	}
}

// WithTrustIncoming controls whether a well-formed ID supplied by the client
// (or an upstream proxy) is reused. Enabled by default.
func WithTrustIncoming(trust bool) Option {
	return func(c *config) { c.trustIncoming = trust }
}

// Middleware assigns a request ID, echoes it in the response header and
// stores it in the request context. Malformed incoming IDs are replaced.
func Middleware(opts ...Option) func(http.Handler) http.Handler {
	cfg := config{header: Header, trustIncoming: true}
	for _, opt := range opts {
		opt(&cfg)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(cfg.header)
			if !cfg.trustIncoming || !valid(id) {
				id = uuid.NewString()
			}
			w.Header().Set(cfg.header, id)
			next.ServeHTTP(w, r.WithContext(WithContext(r.Context(), id)))
		})
	}
}

func valid(id string) bool {
	return id != "" && len(id) <= maxIDLength && validID.MatchString(id)
}
