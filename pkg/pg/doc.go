// Package pg bootstraps the PostgreSQL layer of the tenant isolation core on
// top of pgx/v5 and goose/v3.
//
// It covers four concerns:
//
//   - Pools. Connect opens the application pool (an RLS-subject role) and
//     ConnectPrivileged opens the owner pool used by migrations, onboarding and
//     the direct-query fallback path. Both retry on startup and, unless
//     disabled, reset the tenant key whenever a connection is returned,
//     destroying connections whose reset fails.
//
//   - Session tenant context. SetTenantContext, ClearTenantContext and
//     GetTenantContext call the set_current_tenant_id family of SQL functions.
//     The key is transaction-local; WithTenant opens a transaction, sets the
//     key and runs the callback on the same connection.
//
//   - Migrations. Migrate and Rollback drive goose over an fs.FS, normally
//     the embedded migrations package, with goose output routed to slog.
//
//   - Error classification. Helpers such as IsTenantContextNotSetError,
//     IsTenantRowNotFoundError and IsDuplicateKeyError unwrap *pgconn.PgError
//     so callers can branch on SQLSTATE without importing pgconn.
//
// # Usage
//
//	var cfg pg.Config
//	if err := env.Parse(&cfg); err != nil {
//		panic(err)
//	}
//
//	owner, err := pg.ConnectPrivileged(ctx, cfg, pg.WithLogger(log))
//	if err != nil {
//		panic(err)
//	}
//	defer owner.Close()
//
//	if err := pg.Migrate(ctx, owner, cfg, migrations.FS, log); err != nil {
//		panic(err)
//	}
//
//	app, err := pg.Connect(ctx, cfg, pg.WithLogger(log))
//	if err != nil {
//		panic(err)
//	}
//	defer app.Close()
//
//	err = pg.WithTenant(ctx, app, tenantID, func(ctx context.Context, tx pgx.Tx) error {
//		_, err := tx.Exec(ctx, "SELECT remove_tenant_member($1)", memberID)
//		return err
//	})
package pg
