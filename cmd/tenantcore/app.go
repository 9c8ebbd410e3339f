package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dmitrymomot/tenantcore/pkg/agency"
	"github.com/dmitrymomot/tenantcore/pkg/agencydb"
	"github.com/dmitrymomot/tenantcore/pkg/config"
	"github.com/dmitrymomot/tenantcore/pkg/httpserver"
	"github.com/dmitrymomot/tenantcore/pkg/logger"
	"github.com/dmitrymomot/tenantcore/pkg/pg"
	"github.com/dmitrymomot/tenantcore/pkg/requestid"
	"github.com/dmitrymomot/tenantcore/pkg/tenant"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

// tenantTables must keep row security enabled for the service to start.
var tenantTables = []string{"agencies", "members"}

type appConfig struct {
	Env       string `env:"APP_ENV" envDefault:"development"`
	Name      string `env:"APP_NAME" envDefault:"tenantcore"`
	LogLevel  string `env:"LOG_LEVEL"`
	LogFormat string `env:"LOG_FORMAT"`

	RootDomain    string   `env:"ROOT_DOMAIN"`
	OnboardingURL string   `env:"ONBOARDING_URL"`
	SkipPaths     []string `env:"TENANT_SKIP_PATHS" envSeparator:"," envDefault:"/healthz,/readyz"`

	PG     pg.Config
	HTTP   httpserver.Config
	Agency agency.Config
}

func loadConfig(envFiles []string) (appConfig, error) {
	var cfg appConfig
	opts := []config.Option{}
	if len(envFiles) > 0 {
		opts = append(opts, config.WithEnvFiles(envFiles...))
	}
	if err := config.Load(&cfg, opts...); err != nil {
		return appConfig{}, err
	}
	switch logger.Format(cfg.LogFormat) {
	case "", logger.FormatJSON, logger.FormatText:
	default:
		return appConfig{}, fmt.Errorf("%w: LOG_FORMAT must be %q or %q", config.ErrParsingConfig, logger.FormatJSON, logger.FormatText)
	}
	return cfg, nil
}

func newLogger(cfg appConfig) *slog.Logger {
	opts := []logger.Option{
		logger.WithEnvironment(cfg.Env, cfg.Name),
		logger.WithLevelName(cfg.LogLevel),
		logger.WithAttr(slog.String("version", version)),
		logger.WithContextExtractors(
			requestid.LoggerExtractor(),
			tenant.LoggerExtractor(),
		),
	}
	if cfg.LogFormat != "" {
		opts = append(opts, logger.WithFormat(logger.Format(cfg.LogFormat)))
	}
	log := logger.New(opts...)
	logger.SetAsDefault(log)
	return log
}

// app holds the process-wide dependencies. The application pool connects
// as a role subject to row policies; the owner pool is opened only when a
// command needs it.
type app struct {
	cfg       appConfig
	log       *slog.Logger
	appPool   *pgxpool.Pool
	ownerPool *pgxpool.Pool
}

func (a *app) close() {
	if a.appPool != nil {
		a.appPool.Close()
	}
	if a.ownerPool != nil {
		a.ownerPool.Close()
	}
}

func (a *app) connectApp(ctx context.Context) error {
	pool, err := pg.Connect(ctx, a.cfg.PG, pg.WithLogger(a.log))
	if err != nil {
		return fmt.Errorf("connect application pool: %w", err)
	}
	a.appPool = pool
	return nil
}

func (a *app) connectOwner(ctx context.Context) error {
	pool, err := pg.ConnectPrivileged(ctx, a.cfg.PG, pg.WithLogger(a.log))
	if err != nil {
		return fmt.Errorf("connect privileged pool: %w", err)
	}
	a.ownerPool = pool
	return nil
}

// service builds the agency service over the privileged boundary, adding
// the direct-query fallback for the configured operations.
func (a *app) service() (*agency.Service, error) {
	ops, err := a.cfg.Agency.Fallback()
	if err != nil {
		return nil, err
	}

	opts := []agency.ServiceOption{agency.WithLogger(a.log)}
	if len(ops) > 0 {
		if a.ownerPool == nil {
			return nil, errors.New("FALLBACK_OPERATIONS requires PG_PRIVILEGED_CONN_URL")
		}
		opts = append(opts, agency.WithFallback(agencydb.NewDirect(a.ownerPool), ops...))
		a.log.Warn("direct-query fallback enabled", slog.Any("operations", ops))
	}
	return agency.NewService(agencydb.NewPrivileged(a.appPool), opts...), nil
}

func (a *app) directory(db agencydb.DBTX) *agencydb.Directory {
	return agencydb.NewDirectory(db, agencydb.WithDirectoryLogger(a.log))
}
