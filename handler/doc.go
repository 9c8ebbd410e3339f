// Package handler adapts typed request handlers to net/http.
//
// A HandlerFunc receives a Context and a request struct populated by the
// binders from pkg/binder, and returns a Response. Wrap does the plumbing:
//
//	r.Get("/members/{id}", handler.Wrap(getMember,
//		handler.WithBinders[handler.Context, getMemberRequest](binder.Path(chi.URLParam)),
//		handler.WithErrorHandler[handler.Context, getMemberRequest](errHandler),
//	))
//
// Handlers report failures by returning Fail(err). The error handler built
// by NewErrorHandler classifies the error (domain classifiers first, then
// validation, binder and HTTPError rules), logs it at a level matching the
// status and writes a JSON envelope:
//
//	{"error": {"code": "not_found", "message": "...", "request_id": "..."}}
//
// Unclassified errors become 500 responses with a generic message; the
// underlying error text only reaches the log.
package handler
