package pg

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ConnectOption customizes pool construction.
type ConnectOption func(*connectOptions)

type connectOptions struct {
	log logger
}

// WithLogger routes pool hygiene events (discarded connections) to log.
func WithLogger(log logger) ConnectOption {
	return func(o *connectOptions) {
		if log != nil {
			o.log = log
		}
	}
}

// Connect opens the application pool. Every statement issued through it is
// subject to row policies, so tenant data is only reachable through the
// privileged function boundary or with a tenant context set.
func Connect(ctx context.Context, cfg Config, opts ...ConnectOption) (*pgxpool.Pool, error) {
	return connect(ctx, cfg.ConnectionString, cfg, opts...)
}

// ConnectPrivileged opens the owner pool used by migrations, onboarding and
// the direct-query fallback path.
func ConnectPrivileged(ctx context.Context, cfg Config, opts ...ConnectOption) (*pgxpool.Pool, error) {
	return connect(ctx, cfg.PrivilegedConnectionString, cfg, opts...)
}

// connect establishes a PostgreSQL connection pool with retry logic.
// Uses linear backoff to handle transient network issues without overwhelming the database.
func connect(ctx context.Context, dsn string, cfg Config, opts ...ConnectOption) (*pgxpool.Pool, error) {
	if dsn == "" {
		return nil, ErrEmptyConnectionString
	}

	o := connectOptions{log: nopLogger{}}
	for _, opt := range opts {
		opt(&o)
	}

	connConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, errors.Join(ErrFailedToParseDBConfig, err)
	}
	connConfig.MaxConns = cfg.MaxOpenConns
	connConfig.MinConns = cfg.MaxIdleConns
	connConfig.HealthCheckPeriod = cfg.HealthCheckPeriod
	connConfig.MaxConnIdleTime = cfg.MaxConnIdleTime
	connConfig.MaxConnLifetime = cfg.MaxConnLifetime
	if cfg.ResetOnRelease {
		connConfig.AfterRelease = resetOnRelease(cfg.ResetTimeout, o.log)
	}

	attempts := max(cfg.RetryAttempts, 1)
	for i := range attempts {
		conn, err := pgxpool.NewWithConfig(ctx, connConfig)
		if err == nil {
			// Verify connection with actual database ping to catch authentication and permission issues.
			if err = conn.Ping(ctx); err == nil {
				return conn, nil
			}
			conn.Close()
		}

		if i == attempts-1 {
			break
		}
		select {
		case <-ctx.Done():
			return nil, errors.Join(ErrFailedToOpenDBConnection, ctx.Err())
		case <-time.After(time.Duration(i+1) * cfg.RetryInterval):
		}
	}

	return nil, ErrFailedToOpenDBConnection
}

// resetOnRelease clears the session tenant key before a connection goes back
// to the pool. Returning false makes pgxpool destroy the connection, so a
// connection whose state cannot be confirmed clean is never handed out again.
func resetOnRelease(timeout time.Duration, log logger) func(*pgx.Conn) bool {
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	return func(conn *pgx.Conn) bool {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		if _, err := conn.Exec(ctx, "SELECT set_config($1, '', false)", TenantSettingKey); err != nil {
			log.WarnContext(ctx, "discarding pooled connection with unclean tenant context",
				"pid", conn.PgConn().PID(),
				"error", err,
			)
			return false
		}
		return true
	}
}
