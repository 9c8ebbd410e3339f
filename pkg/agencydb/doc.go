// Package agencydb implements agency.Store and tenant.Provider on PostgreSQL.
//
// Privileged talks to the SECURITY DEFINER routines installed by the
// migrations. It runs on the application pool and wraps each call in
// pg.WithTenant, so the session tenant context is set and consumed inside a
// single transaction.
//
// Direct is the fallback path. It runs on the privileged pool, binds the
// tenant id into every statement and never touches the session context.
//
// Directory resolves agencies by slug or id before any tenant context exists
// (through resolve_tenant) and handles onboarding writes.
//
// Both stores map driver errors onto the agency error set; a row belonging
// to another tenant is reported exactly like a missing row.
package agencydb
