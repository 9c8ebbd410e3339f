package tenant

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Tenant is the resolved agency a request is bound to. It carries only what
// the request path needs; the full record lives behind the privileged boundary.
type Tenant struct {
	ID        uuid.UUID      `json:"id"`
	Slug      string         `json:"slug"`
	Name      string         `json:"name"`
	Active    bool           `json:"active"`
	Settings  map[string]any `json:"settings,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}

// Provider loads tenant information from a data source.
type Provider interface {
	// GetByIdentifier retrieves an active tenant by slug or id.
	// Returns ErrTenantNotFound when nothing matches or the match is inactive;
	// the two cases must be indistinguishable to callers.
	GetByIdentifier(ctx context.Context, identifier string) (*Tenant, error)
}

// ProviderFunc adapts a function to the Provider interface.
type ProviderFunc func(ctx context.Context, identifier string) (*Tenant, error)

// GetByIdentifier calls f.
func (f ProviderFunc) GetByIdentifier(ctx context.Context, identifier string) (*Tenant, error) {
	return f(ctx, identifier)
}
