package tenant

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
)

// Middleware creates HTTP middleware that extracts tenant information
// from incoming requests and adds it to the request context.
//
// Tenants are looked up on every request and never cached: a deactivated
// agency stops resolving immediately.
func Middleware(resolver Resolver, provider Provider, opts ...Option) func(http.Handler) http.Handler {
	cfg := &config{
		errorHandler: defaultErrorHandler,
		logger:       slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(cfg)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if skipped(r.URL.Path, cfg.skipPaths) {
				next.ServeHTTP(w, r)
				return
			}

			identifier, err := resolver.Resolve(r)
			if err != nil {
				cfg.logger.DebugContext(r.Context(), "tenant identifier rejected",
					slog.String("host", r.Host),
					slog.String("error", err.Error()),
				)
				cfg.errorHandler(w, r, err)
				return
			}

			// Root domain or no explicit parameter: the caller decides what
			// a tenantless request means.
			if identifier == "" {
				next.ServeHTTP(w, r)
				return
			}

			t, err := provider.GetByIdentifier(r.Context(), identifier)
			if err == nil && (t == nil || !t.Active) {
				err = ErrTenantNotFound
			}
			if err != nil {
				if !errors.Is(err, ErrTenantNotFound) {
					cfg.logger.ErrorContext(r.Context(), "tenant lookup failed",
						slog.String("identifier", identifier),
						slog.String("error", err.Error()),
					)
				}
				cfg.errorHandler(w, r, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithTenant(r.Context(), t)))
		})
	}
}

// RequireTenant creates middleware that ensures a tenant is present in the context.
// Requests without one are handed to errorHandler with ErrNoTenantInContext.
func RequireTenant(errorHandler ErrorHandler) func(http.Handler) http.Handler {
	if errorHandler == nil {
		errorHandler = defaultErrorHandler
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := FromContext(r.Context()); !ok {
				errorHandler(w, r, ErrNoTenantInContext)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// skipped matches whole path segments: "/healthz" covers "/healthz" and
// "/healthz/live" but not "/healthzfoo".
func skipped(path string, skips []string) bool {
	for _, skip := range skips {
		if skip == "" {
			continue
		}
		if path == skip || strings.HasPrefix(path, strings.TrimSuffix(skip, "/")+"/") {
			return true
		}
	}
	return false
}
