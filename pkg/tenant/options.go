package tenant

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
)

// ErrorHandler handles errors that occur during tenant resolution.
type ErrorHandler func(w http.ResponseWriter, r *http.Request, err error)

// config holds middleware configuration.
type config struct {
	errorHandler ErrorHandler
	skipPaths    []string
	logger       *slog.Logger
}

// Option configures the middleware.
type Option func(*config)

// WithErrorHandler sets a custom error handler.
func WithErrorHandler(handler ErrorHandler) Option {
	return func(c *config) {
		if handler != nil {
			c.errorHandler = handler
		}
	}
}

// WithOnboardingRedirect sends every resolution failure to url instead of
// answering 404. Lookup errors other than "not found" still produce a 500.
func WithOnboardingRedirect(url string) Option {
	return func(c *config) {
		if url = strings.TrimSpace(url); url != "" {
			c.errorHandler = OnboardingRedirect(url)
		}
	}
}

// WithSkipPaths sets paths that should skip tenant resolution.
func WithSkipPaths(paths []string) Option {
	return func(c *config) {
		c.skipPaths = paths
	}
}

// WithLogger sets a custom logger for the middleware.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// IsResolutionFailure reports errors that mean "this request has no usable
// tenant", as opposed to infrastructure failures during lookup.
func IsResolutionFailure(err error) bool {
	return errors.Is(err, ErrTenantNotFound) ||
		errors.Is(err, ErrInvalidIdentifier) ||
		errors.Is(err, ErrNoTenantInContext)
}

// OnboardingRedirect returns an ErrorHandler that routes resolution failures
// to the onboarding flow.
func OnboardingRedirect(url string) ErrorHandler {
	return func(w http.ResponseWriter, r *http.Request, err error) {
		if !IsResolutionFailure(err) {
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}
		http.Redirect(w, r, url, http.StatusFound)
	}
}

func defaultErrorHandler(w http.ResponseWriter, r *http.Request, err error) {
	if IsResolutionFailure(err) {
		http.Error(w, "Tenant not found", http.StatusNotFound)
		return
	}
	http.Error(w, "Internal server error", http.StatusInternalServerError)
}
