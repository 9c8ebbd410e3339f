package pg

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
)

// TxBeginner is satisfied by *pgxpool.Pool and *pgx.Conn.
type TxBeginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// WithTenant runs fn inside a transaction whose session key holds tenantID.
// Setting the key and using it happen on the same connection and the key
// disappears at commit or rollback, so it can never leak to the next borrower.
// Any error returned by fn rolls the transaction back and is returned as is.
func WithTenant(ctx context.Context, db TxBeginner, tenantID string, fn func(ctx context.Context, tx pgx.Tx) error) error {
	return withTx(ctx, db, func(ctx context.Context, tx pgx.Tx) error {
		if err := SetTenantContext(ctx, tx, tenantID); err != nil {
			return err
		}
		return fn(ctx, tx)
	})
}

// WithTx runs fn inside a plain transaction.
func WithTx(ctx context.Context, db TxBeginner, fn func(ctx context.Context, tx pgx.Tx) error) error {
	return withTx(ctx, db, fn)
}

func withTx(ctx context.Context, db TxBeginner, fn func(ctx context.Context, tx pgx.Tx) error) error {
	tx, err := db.Begin(ctx)
	if err != nil {
		return errors.Join(ErrFailedToBeginTx, err)
	}
	defer func() {
		// No-op once committed.
		_ = tx.Rollback(context.WithoutCancel(ctx))
	}()

	if err := fn(ctx, tx); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return errors.Join(ErrFailedToCommitTx, err)
	}
	return nil
}
