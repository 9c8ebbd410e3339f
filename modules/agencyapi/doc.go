// Package agencyapi serves the tenant isolation core over JSON.
//
//	GET    /profile        the tenant's own agency row
//	GET    /members        list members (?email= looks up one)
//	POST   /members        create a member (id comes from the identity provider)
//	GET    /members/{id}   one member
//	PATCH  /members/{id}   partial update
//	DELETE /members/{id}   remove (a member cannot remove themselves)
//
// The tenant is never taken from the URL or body: tenant.Middleware resolves
// it before these routes run. Errors map to 404 for missing or foreign rows,
// 403 when no tenant context could be established, 422 for invalid input,
// 409 for conflicts and 503 when the privileged boundary is unavailable.
package agencyapi
