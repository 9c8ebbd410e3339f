package agency

import "errors"

var (
	// ErrTenantRequired is returned before any store call when no tenant id is supplied.
	ErrTenantRequired = errors.New("tenant id is required")

	// ErrTenantContextNotSet means a privileged routine ran without a tenant in
	// the session. It must never be turned into an empty result.
	ErrTenantContextNotSet = errors.New("tenant context not set")

	// ErrNotFound covers rows that do not exist and rows owned by another tenant.
	ErrNotFound = errors.New("not found")

	ErrInvalidInput   = errors.New("invalid input")
	ErrDuplicateEmail = errors.New("email already used in this agency")
	ErrDuplicateID    = errors.New("member id already in use")
	ErrSelfRemoval    = errors.New("members cannot remove themselves")
	ErrSlugTaken      = errors.New("agency slug already taken")

	// ErrBoundaryUnavailable means the privileged routines could not be reached
	// (not installed, or no connection). It is the only error that may trigger
	// the direct-query fallback.
	ErrBoundaryUnavailable = errors.New("privileged function boundary unavailable")

	ErrStorage = errors.New("agency storage failure")
)
