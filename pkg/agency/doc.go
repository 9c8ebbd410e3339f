// Package agency holds the tenant-scoped domain: agencies, their members and
// the role hierarchy, plus the Store contract both data paths implement.
//
// Every Store method takes the tenant id explicitly. The privileged
// implementation turns it into a transaction-local session context before
// calling the boundary routines; the direct implementation binds it into a
// WHERE clause. Neither relies on state left on a pooled connection.
//
// Service sits in front of the stores. It validates input against the closed
// role set and field limits, refuses self-removal, maps nothing to empty
// success, and falls back to the direct-query path only for operations listed
// in Config.FallbackOperations and only when the boundary reports
// ErrBoundaryUnavailable.
package agency
