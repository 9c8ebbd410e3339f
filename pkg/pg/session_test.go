package pg_test

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/tenantcore/pkg/pg"
)

type fakeRow struct {
	scan func(dest ...any) error
}

func (r fakeRow) Scan(dest ...any) error { return r.scan(dest...) }

type fakeQuerier struct {
	execSQL  []string
	execArgs [][]any
	execErr  error
	row      fakeRow
}

func (q *fakeQuerier) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	q.execSQL = append(q.execSQL, sql)
	q.execArgs = append(q.execArgs, args)
	return pgconn.NewCommandTag("SELECT 1"), q.execErr
}

func (q *fakeQuerier) QueryRow(context.Context, string, ...any) pgx.Row {
	return q.row
}

func TestSetTenantContext(t *testing.T) {
	t.Parallel()

	t.Run("calls the setter routine with a trimmed id", func(t *testing.T) {
		t.Parallel()
		q := &fakeQuerier{}

		err := pg.SetTenantContext(context.Background(), q, "  3f1c7a52-8f43-4a4e-9a55-1f5d0c2b7e10 ")
		require.NoError(t, err)
		require.Len(t, q.execSQL, 1)
		assert.Equal(t, "SELECT set_current_tenant_id($1)", q.execSQL[0])
		assert.Equal(t, []any{"3f1c7a52-8f43-4a4e-9a55-1f5d0c2b7e10"}, q.execArgs[0])
	})

	t.Run("rejects blank ids without a round trip", func(t *testing.T) {
		t.Parallel()
		for _, id := range []string{"", "   ", "\t"} {
			q := &fakeQuerier{}
			err := pg.SetTenantContext(context.Background(), q, id)
			assert.ErrorIs(t, err, pg.ErrTenantIDRequired)
			assert.Empty(t, q.execSQL)
		}
	})

	t.Run("database rejection is reported", func(t *testing.T) {
		t.Parallel()
		q := &fakeQuerier{execErr: &pgconn.PgError{Code: "TC002"}}

		err := pg.SetTenantContext(context.Background(), q, "not-a-uuid")
		assert.ErrorIs(t, err, pg.ErrTenantContextRejected)
		assert.True(t, pg.IsInvalidInputError(err))
	})
}

func TestClearTenantContext(t *testing.T) {
	t.Parallel()

	q := &fakeQuerier{}
	require.NoError(t, pg.ClearTenantContext(context.Background(), q))
	assert.Equal(t, []string{"SELECT clear_current_tenant_id()"}, q.execSQL)

	q = &fakeQuerier{execErr: errors.New("conn closed")}
	assert.ErrorIs(t, pg.ClearTenantContext(context.Background(), q), pg.ErrFailedToClearTenantContext)
}

func TestGetTenantContext(t *testing.T) {
	t.Parallel()

	scanInto := func(v *string) fakeRow {
		return fakeRow{scan: func(dest ...any) error {
			*(dest[0].(**string)) = v
			return nil
		}}
	}
	id := "3f1c7a52-8f43-4a4e-9a55-1f5d0c2b7e10"
	empty := ""

	t.Run("set", func(t *testing.T) {
		t.Parallel()
		got, ok, err := pg.GetTenantContext(context.Background(), &fakeQuerier{row: scanInto(&id)})
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, id, got)
	})

	t.Run("null", func(t *testing.T) {
		t.Parallel()
		got, ok, err := pg.GetTenantContext(context.Background(), &fakeQuerier{row: scanInto(nil)})
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Empty(t, got)
	})

	t.Run("empty string", func(t *testing.T) {
		t.Parallel()
		_, ok, err := pg.GetTenantContext(context.Background(), &fakeQuerier{row: scanInto(&empty)})
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("scan failure", func(t *testing.T) {
		t.Parallel()
		row := fakeRow{scan: func(...any) error { return errors.New("boom") }}
		_, _, err := pg.GetTenantContext(context.Background(), &fakeQuerier{row: row})
		assert.ErrorIs(t, err, pg.ErrFailedToReadTenantContext)
	})
}

type fakeBeginner struct {
	tx       *fakeTx
	beginErr error
}

func (b *fakeBeginner) Begin(context.Context) (pgx.Tx, error) {
	if b.beginErr != nil {
		return nil, b.beginErr
	}
	return b.tx, nil
}

// fakeTx embeds pgx.Tx so only the methods WithTenant uses need bodies.
type fakeTx struct {
	pgx.Tx
	fakeQuerier
	committed  bool
	rolledBack bool
}

func (tx *fakeTx) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	return tx.fakeQuerier.Exec(ctx, sql, args...)
}

func (tx *fakeTx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return tx.fakeQuerier.QueryRow(ctx, sql, args...)
}

func (tx *fakeTx) Commit(context.Context) error {
	tx.committed = true
	return nil
}

func (tx *fakeTx) Rollback(context.Context) error {
	if tx.committed {
		return pgx.ErrTxClosed
	}
	tx.rolledBack = true
	return nil
}

func TestWithTenant(t *testing.T) {
	t.Parallel()

	const tenantID = "3f1c7a52-8f43-4a4e-9a55-1f5d0c2b7e10"

	t.Run("sets context before running fn and commits", func(t *testing.T) {
		t.Parallel()
		tx := &fakeTx{}
		var seen []string

		err := pg.WithTenant(context.Background(), &fakeBeginner{tx: tx}, tenantID, func(ctx context.Context, q pgx.Tx) error {
			seen = append(seen, tx.execSQL...)
			_, err := q.Exec(ctx, "SELECT get_tenant_members()")
			return err
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"SELECT set_current_tenant_id($1)"}, seen)
		assert.Equal(t, "SELECT get_tenant_members()", tx.execSQL[1])
		assert.True(t, tx.committed)
		assert.False(t, tx.rolledBack)
	})

	t.Run("fn error rolls back", func(t *testing.T) {
		t.Parallel()
		tx := &fakeTx{}
		want := errors.New("fn failed")

		err := pg.WithTenant(context.Background(), &fakeBeginner{tx: tx}, tenantID, func(context.Context, pgx.Tx) error {
			return want
		})
		assert.ErrorIs(t, err, want)
		assert.False(t, tx.committed)
		assert.True(t, tx.rolledBack)
	})

	t.Run("rejected context never reaches fn", func(t *testing.T) {
		t.Parallel()
		tx := &fakeTx{fakeQuerier: fakeQuerier{execErr: &pgconn.PgError{Code: "TC002"}}}
		called := false

		err := pg.WithTenant(context.Background(), &fakeBeginner{tx: tx}, tenantID, func(context.Context, pgx.Tx) error {
			called = true
			return nil
		})
		assert.ErrorIs(t, err, pg.ErrTenantContextRejected)
		assert.False(t, called)
		assert.True(t, tx.rolledBack)
	})

	t.Run("blank tenant never reaches fn", func(t *testing.T) {
		t.Parallel()
		tx := &fakeTx{}
		err := pg.WithTenant(context.Background(), &fakeBeginner{tx: tx}, " ", func(context.Context, pgx.Tx) error {
			t.Fatal("fn must not run")
			return nil
		})
		assert.ErrorIs(t, err, pg.ErrTenantIDRequired)
	})

	t.Run("begin failure", func(t *testing.T) {
		t.Parallel()
		err := pg.WithTenant(context.Background(), &fakeBeginner{beginErr: errors.New("pool closed")}, tenantID, func(context.Context, pgx.Tx) error {
			return nil
		})
		assert.ErrorIs(t, err, pg.ErrFailedToBeginTx)
	})
}
