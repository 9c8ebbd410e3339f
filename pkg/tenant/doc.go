// Package tenant binds inbound HTTP requests to exactly one agency.
//
// A Resolver derives an identifier from the request: the leftmost host label
// under the configured root domain, or an explicit tenantSlug / agencyId
// parameter for callers that cannot use host based routing. A Provider then
// looks the identifier up. Only active tenants resolve; an inactive tenant is
// reported as ErrTenantNotFound, exactly like a slug that matches nothing.
//
// Requests on the bare root domain (or its www alias) carry no identifier and
// pass through without a tenant. Routes that need one are wrapped in
// RequireTenant, which hands the request to the error handler, normally an
// onboarding redirect.
//
// # Usage
//
//	resolver := tenant.NewCompositeResolver(
//		tenant.NewSubdomainResolver("bookings.example.com"),
//		tenant.NewQueryResolver(),
//	)
//
//	r.Use(tenant.Middleware(resolver, directory,
//		tenant.WithOnboardingRedirect("https://bookings.example.com/start"),
//		tenant.WithSkipPaths([]string{"/healthz", "/readyz"}),
//	))
//	r.With(tenant.RequireTenant(tenant.OnboardingRedirect(onboardingURL))).Get("/members", list)
//
// Tenant lookups are never cached between requests.
package tenant
