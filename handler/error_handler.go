package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/tenantcore/pkg/binder"
	"github.com/dmitrymomot/tenantcore/pkg/logger"
	"github.com/dmitrymomot/tenantcore/pkg/requestid"
	"github.com/dmitrymomot/tenantcore/pkg/validator"
)

// ErrorInfo is the client-facing shape of an error.
type ErrorInfo struct {
	Status  int
	Code    string
	Message string
	Details map[string]string
}

// ErrorClassifier maps domain errors to ErrorInfo. It returns false for
// errors it does not recognise.
type ErrorClassifier func(err error) (ErrorInfo, bool)

type failResponse struct{ err error }

func (f failResponse) Render(http.ResponseWriter, *http.Request) error { return f.err }

// Fail hands err to the error handler without writing anything itself.
func Fail(err error) Response {
	return failResponse{err: err}
}

// Classify runs the domain classifiers first and falls back to the
// built-in rules: validation errors are 422, binder errors 400 or 415,
// HTTPError its own code, anything else 500 with a generic message.
func Classify(err error, classifiers ...ErrorClassifier) ErrorInfo {
	for _, c := range classifiers {
		if info, ok := c(err); ok {
			return info
		}
	}

	if verrs := validator.ExtractValidationErrors(err); len(verrs) > 0 {
		details := make(map[string]string, len(verrs))
		for _, e := range verrs {
			if _, seen := details[e.Field]; !seen {
				details[e.Field] = e.Message
			}
		}
		return ErrorInfo{Status: http.StatusUnprocessableEntity, Code: "validation_error", Message: "invalid input", Details: details}
	}

	switch {
	case errors.Is(err, binder.ErrUnsupportedMediaType), errors.Is(err, binder.ErrMissingContentType):
		return ErrorInfo{Status: http.StatusUnsupportedMediaType, Code: ErrUnsupportedMedia.Key, Message: err.Error()}
	case errors.Is(err, binder.ErrFailedToParseJSON),
		errors.Is(err, binder.ErrFailedToParsePath),
		errors.Is(err, binder.ErrFailedToParseQuery):
		return ErrorInfo{Status: http.StatusBadRequest, Code: ErrBadRequest.Key, Message: err.Error()}
	}

	var httpErr HTTPError
	if errors.As(err, &httpErr) {
		return ErrorInfo{Status: httpErr.Code, Code: httpErr.Key, Message: http.StatusText(httpErr.Code)}
	}

	return ErrorInfo{
		Status:  http.StatusInternalServerError,
		Code:    ErrInternalServerError.Key,
		Message: "an error occurred processing your request",
	}
}

// NewErrorHandler returns an ErrorHandler that classifies the error,
// logs it (warn for 4xx, error for 5xx) and writes a JSON error body
// carrying the request ID.
func NewErrorHandler(log *slog.Logger, classifiers ...ErrorClassifier) ErrorHandler[Context] {
	if log == nil {
		log = slog.Default()
	}

	return func(ctx Context, err error) {
		r := ctx.Request()
		info := Classify(err, classifiers...)
		reqID := requestid.FromContext(ctx)

		level := slog.LevelError
		if info.Status < http.StatusInternalServerError {
			level = slog.LevelWarn
		}
		log.LogAttrs(ctx, level, "request failed",
			logger.Error(err),
			slog.Int("status_code", info.Status),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			logger.Component("http"),
		)

		resp := JSONError(info.Status, ErrorDetail{
			Code:      info.Code,
			Message:   info.Message,
			Details:   info.Details,
			RequestID: reqID,
		})
		if renderErr := resp.Render(ctx.ResponseWriter(), r); renderErr != nil {
			log.ErrorContext(ctx, "failed to write error response", logger.Error(renderErr))
		}
	}
}
