//go:build integration

package agencydb_test

import (
	"context"
	"fmt"
	"log"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/dmitrymomot/tenantcore/migrations"
	"github.com/dmitrymomot/tenantcore/pkg/pg"
)

// Shared fixtures for the integration suite. ownerPool connects as the
// database owner (migrations, direct path, onboarding); appPool connects as a
// login role that only inherits tenantcore_app, so row policies apply to it.
var (
	ownerPool *pgxpool.Pool
	appPool   *pgxpool.Pool
	appDSN    string
	baseCfg   pg.Config
)

func TestMain(m *testing.M) {
	os.Exit(run(m))
}

func run(m *testing.M) int {
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "postgres:16-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "owner",
				"POSTGRES_PASSWORD": "owner",
				"POSTGRES_DB":       "tenantcore",
			},
			WaitingFor: wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(2 * time.Minute),
		},
		Started: true,
	})
	if err != nil {
		log.Printf("start postgres container: %v", err)
		return 1
	}
	defer func() {
		if err := container.Terminate(ctx); err != nil {
			log.Printf("terminate postgres container: %v", err)
		}
	}()

	host, err := container.Host(ctx)
	if err != nil {
		log.Printf("container host: %v", err)
		return 1
	}
	port, err := container.MappedPort(ctx, "5432/tcp")
	if err != nil {
		log.Printf("container port: %v", err)
		return 1
	}

	baseCfg = pg.Config{
		ConnectionString:           fmt.Sprintf("postgres://app_user:app@%s:%s/tenantcore?sslmode=disable", host, port.Port()),
		PrivilegedConnectionString: fmt.Sprintf("postgres://owner:owner@%s:%s/tenantcore?sslmode=disable", host, port.Port()),
		MaxOpenConns:               4,
		MaxIdleConns:               0,
		HealthCheckPeriod:          time.Minute,
		MaxConnIdleTime:            time.Minute,
		MaxConnLifetime:            time.Hour,
		RetryAttempts:              5,
		RetryInterval:              time.Second,
		ResetOnRelease:             true,
		ResetTimeout:               time.Second,
		MigrationsTable:            "schema_migrations",
	}
	appDSN = baseCfg.ConnectionString

	ownerPool, err = pg.ConnectPrivileged(ctx, baseCfg)
	if err != nil {
		log.Printf("connect owner: %v", err)
		return 1
	}
	defer ownerPool.Close()

	quiet := discardLogger{}
	if err := pg.Migrate(ctx, ownerPool, baseCfg, migrations.FS, quiet); err != nil {
		log.Printf("migrate: %v", err)
		return 1
	}

	for _, stmt := range []string{
		"CREATE ROLE app_user LOGIN PASSWORD 'app'",
		"GRANT tenantcore_app TO app_user",
	} {
		if _, err := ownerPool.Exec(ctx, stmt); err != nil {
			log.Printf("create app role: %v", err)
			return 1
		}
	}

	appPool, err = pg.Connect(ctx, baseCfg)
	if err != nil {
		log.Printf("connect app: %v", err)
		return 1
	}
	defer appPool.Close()

	return m.Run()
}

type discardLogger struct{}

func (discardLogger) InfoContext(context.Context, string, ...any)  {}
func (discardLogger) WarnContext(context.Context, string, ...any)  {}
func (discardLogger) ErrorContext(context.Context, string, ...any) {}
