package agency

import (
	"context"

	"github.com/google/uuid"
)

type actingMemberKey struct{}

// WithActingMember records the member performing the request. Authentication
// happens upstream; this package only reads the id back.
func WithActingMember(ctx context.Context, memberID uuid.UUID) context.Context {
	return context.WithValue(ctx, actingMemberKey{}, memberID)
}

// ActingMemberFromContext returns the acting member id, if any.
func ActingMemberFromContext(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(actingMemberKey{}).(uuid.UUID)
	if !ok || id == uuid.Nil {
		return uuid.Nil, false
	}
	return id, true
}
