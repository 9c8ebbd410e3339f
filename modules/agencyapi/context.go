package agencyapi

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/dmitrymomot/tenantcore/handler"
	"github.com/dmitrymomot/tenantcore/pkg/tenant"
)

// Context is the handler context for tenant-scoped routes.
type Context interface {
	handler.Context
	// TenantID is the resolved tenant, or uuid.Nil when the request has none.
	TenantID() uuid.UUID
}

type apiContext struct {
	handler.Context
	tenantID uuid.UUID
}

func (c apiContext) TenantID() uuid.UUID { return c.tenantID }

func newContext(w http.ResponseWriter, r *http.Request) Context {
	id, _ := tenant.IDFromContext(r.Context())
	return apiContext{Context: handler.NewContext(w, r), tenantID: id}
}

// requireTenant short-circuits handlers when tenant resolution produced
// nothing, so no store call is ever made without a tenant id.
func requireTenant[R any]() handler.Decorator[Context, R] {
	return func(next handler.HandlerFunc[Context, R]) handler.HandlerFunc[Context, R] {
		return func(ctx Context, req R) handler.Response {
			if ctx.TenantID() == uuid.Nil {
				return handler.Fail(tenant.ErrNoTenantInContext)
			}
			return next(ctx, req)
		}
	}
}
