// Package binder fills typed request structs from HTTP requests.
//
// Each binder has the signature func(*http.Request, any) error and is
// handed to handler.Wrap, which applies them in order:
//
//	type updateMemberRequest struct {
//		ID        uuid.UUID `path:"id"`
//		FirstName *string   `json:"first_name"`
//	}
//
//	r.Patch("/members/{id}", handler.Wrap(h.updateMember,
//		handler.WithBinders[handler.Context, updateMemberRequest](
//			binder.Path(chi.URLParam),
//			binder.JSON(),
//		),
//	))
//
// JSON decodes strictly: unknown fields, trailing data and bodies over
// DefaultMaxJSONSize are rejected. Path and Query only touch fields that
// carry their tag, and decode any type implementing encoding.TextUnmarshaler,
// so uuid.UUID path parameters need no extra code.
//
// Failures wrap one of the package errors (ErrFailedToParseJSON,
// ErrFailedToParsePath, ...), which the handler error mapping turns into
// 400 responses.
package binder
