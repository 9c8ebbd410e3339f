package main

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	"github.com/dmitrymomot/tenantcore/modules/agencyapi"
	"github.com/dmitrymomot/tenantcore/pkg/agency"
	"github.com/dmitrymomot/tenantcore/pkg/httpserver"
	"github.com/dmitrymomot/tenantcore/pkg/pg"
	"github.com/dmitrymomot/tenantcore/pkg/requestid"
	"github.com/dmitrymomot/tenantcore/pkg/tenant"
)

const readinessTimeout = 3 * time.Second

func newServeCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := bootstrap(flags)
			if err != nil {
				return err
			}
			return runServe(cmd.Context(), a)
		},
	}
}

func runServe(ctx context.Context, a *app) error {
	if err := a.connectApp(ctx); err != nil {
		return err
	}
	if a.cfg.PG.PrivilegedConnectionString != "" {
		if err := a.connectOwner(ctx); err != nil {
			a.close()
			return err
		}
	}

	// Refuse to serve when row policies are off: the privileged functions
	// would still isolate, but the backstop would be gone silently.
	if err := pg.VerifyRowSecurity(ctx, a.appPool, tenantTables...); err != nil {
		a.close()
		return err
	}

	svc, err := a.service()
	if err != nil {
		a.close()
		return err
	}

	srv := httpserver.NewFromConfig(a.cfg.HTTP,
		httpserver.WithLogger(a.log),
		httpserver.WithOnShutdown(func(context.Context) { a.close() }),
	)
	return srv.Run(ctx, a.routes(svc))
}

func (a *app) routes(svc agency.Store) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.RealIP,
		requestid.Middleware(),
		middleware.Recoverer,
	)

	r.Get("/healthz", httpserver.Liveness())
	r.Get("/readyz", httpserver.Readiness(a.log, readinessTimeout,
		httpserver.Check{Name: "postgres", Fn: pg.Healthcheck(a.appPool)},
		httpserver.Check{Name: "row_security", Fn: pg.RowSecurityCheck(a.appPool, tenantTables...)},
	))

	resolver := tenant.NewCompositeResolver(
		tenant.NewSubdomainResolver(a.cfg.RootDomain),
		tenant.NewHeaderResolver(""),
		tenant.NewQueryResolver(),
	)

	r.Group(func(r chi.Router) {
		r.Use(tenant.Middleware(resolver, a.directory(a.appPool),
			tenant.WithLogger(a.log),
			tenant.WithSkipPaths(a.cfg.SkipPaths),
			tenant.WithOnboardingRedirect(a.cfg.OnboardingURL),
		))
		if a.cfg.OnboardingURL != "" {
			r.Use(tenant.RequireTenant(tenant.OnboardingRedirect(a.cfg.OnboardingURL)))
		}
		r.Mount("/", agencyapi.Router(svc, agencyapi.WithLogger(a.log)))
	})

	return r
}
