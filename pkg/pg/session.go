package pg

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// TenantSettingKey is the session configuration key read by the boundary
// functions and the row policies.
const TenantSettingKey = "app.current_tenant_id"

// Querier is the subset of pgx used by the session helpers. It is satisfied by
// pgx.Tx, *pgx.Conn, *pgxpool.Conn and *pgxpool.Pool.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// SetTenantContext writes the tenant id into the session key of db through
// set_current_tenant_id. The value is transaction-local: outside an explicit
// transaction it lapses with the statement, so callers should use WithTenant.
// Setting again replaces the previous value.
func SetTenantContext(ctx context.Context, db Querier, tenantID string) error {
	tenantID = strings.TrimSpace(tenantID)
	if tenantID == "" {
		return ErrTenantIDRequired
	}
	if _, err := db.Exec(ctx, "SELECT set_current_tenant_id($1)", tenantID); err != nil {
		return errors.Join(ErrTenantContextRejected, err)
	}
	return nil
}

// ClearTenantContext empties the session key. Boundary calls made afterwards
// fail with the context-not-set condition until the key is set again.
func ClearTenantContext(ctx context.Context, db Querier) error {
	if _, err := db.Exec(ctx, "SELECT clear_current_tenant_id()"); err != nil {
		return errors.Join(ErrFailedToClearTenantContext, err)
	}
	return nil
}

// GetTenantContext reports the tenant id currently stored in the session key.
// The boolean is false when no tenant is set.
func GetTenantContext(ctx context.Context, db Querier) (string, bool, error) {
	var id *string
	if err := db.QueryRow(ctx, "SELECT get_current_tenant_id()").Scan(&id); err != nil {
		return "", false, errors.Join(ErrFailedToReadTenantContext, err)
	}
	if id == nil || *id == "" {
		return "", false, nil
	}
	return *id, true, nil
}
