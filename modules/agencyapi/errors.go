package agencyapi

import (
	"errors"
	"net/http"

	"github.com/dmitrymomot/tenantcore/handler"
	"github.com/dmitrymomot/tenantcore/pkg/agency"
	"github.com/dmitrymomot/tenantcore/pkg/tenant"
)

// ErrInvalidActingMember is returned for a malformed acting-member header.
var ErrInvalidActingMember = handler.NewHTTPError(http.StatusBadRequest, "invalid_acting_member")

// classify maps domain errors to responses. Not-found and cross-tenant
// lookups share one answer; a missing tenant context is a 403, never an
// empty success.
func classify(err error) (handler.ErrorInfo, bool) {
	switch {
	case errors.Is(err, agency.ErrNotFound),
		errors.Is(err, tenant.ErrNoTenantInContext),
		errors.Is(err, tenant.ErrTenantNotFound):
		return handler.ErrorInfo{Status: http.StatusNotFound, Code: "not_found", Message: "resource not found"}, true
	case errors.Is(err, agency.ErrTenantContextNotSet), errors.Is(err, agency.ErrTenantRequired):
		return handler.ErrorInfo{Status: http.StatusForbidden, Code: "tenant_context_not_set", Message: "tenant context is not set"}, true
	case errors.Is(err, agency.ErrInvalidInput):
		info := handler.Classify(err)
		if info.Status != http.StatusUnprocessableEntity {
			info = handler.ErrorInfo{Status: http.StatusUnprocessableEntity, Code: "invalid_input", Message: "invalid input"}
		}
		return info, true
	case errors.Is(err, agency.ErrDuplicateEmail):
		return handler.ErrorInfo{Status: http.StatusConflict, Code: "duplicate_email", Message: agency.ErrDuplicateEmail.Error()}, true
	case errors.Is(err, agency.ErrDuplicateID):
		return handler.ErrorInfo{Status: http.StatusConflict, Code: "duplicate_id", Message: agency.ErrDuplicateID.Error()}, true
	case errors.Is(err, agency.ErrSelfRemoval):
		return handler.ErrorInfo{Status: http.StatusConflict, Code: "self_removal", Message: agency.ErrSelfRemoval.Error()}, true
	case errors.Is(err, agency.ErrBoundaryUnavailable):
		return handler.ErrorInfo{Status: http.StatusServiceUnavailable, Code: "service_unavailable", Message: "temporarily unavailable"}, true
	}
	return handler.ErrorInfo{}, false
}
