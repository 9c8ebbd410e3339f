package pg

import (
	"context"
	"errors"
	"fmt"
)

// VerifyRowSecurity confirms row security is enabled on every listed table.
// A missing table counts as a failure.
func VerifyRowSecurity(ctx context.Context, db Querier, tables ...string) error {
	var errs []error
	for _, table := range tables {
		var enabled bool
		err := db.QueryRow(ctx,
			"SELECT c.relrowsecurity FROM pg_class c WHERE c.oid = to_regclass($1)",
			table,
		).Scan(&enabled)
		switch {
		case IsNotFoundError(err):
			errs = append(errs, fmt.Errorf("%w: table %q does not exist", ErrRowSecurityDisabled, table))
		case err != nil:
			errs = append(errs, fmt.Errorf("check row security on %q: %w", table, err))
		case !enabled:
			errs = append(errs, fmt.Errorf("%w: %q", ErrRowSecurityDisabled, table))
		}
	}
	return errors.Join(errs...)
}
