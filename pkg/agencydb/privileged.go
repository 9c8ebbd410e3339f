package agencydb

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/dmitrymomot/tenantcore/pkg/agency"
	"github.com/dmitrymomot/tenantcore/pkg/pg"
)

// Privileged is the client of the privileged function boundary. Every call
// opens a transaction on the application pool, sets the tenant context in it
// and invokes exactly one boundary routine, so the context is always set on
// the connection that uses it and is gone when the connection is released.
type Privileged struct {
	db pg.TxBeginner
}

var _ agency.Store = (*Privileged)(nil)

// NewPrivileged creates a boundary client over the application pool.
func NewPrivileged(db pg.TxBeginner) *Privileged {
	return &Privileged{db: db}
}

func (p *Privileged) inTenant(ctx context.Context, tenantID uuid.UUID, fn func(ctx context.Context, tx pgx.Tx) error) error {
	if tenantID == uuid.Nil {
		return agency.ErrTenantRequired
	}
	return mapError(pg.WithTenant(ctx, p.db, tenantID.String(), fn))
}

func (p *Privileged) ListMembers(ctx context.Context, tenantID uuid.UUID) ([]agency.Member, error) {
	var members []agency.Member
	err := p.inTenant(ctx, tenantID, func(ctx context.Context, tx pgx.Tx) error {
		rows, err := tx.Query(ctx, "SELECT "+memberColumns+" FROM get_tenant_members()")
		if err != nil {
			return err
		}
		members, err = pgx.CollectRows(rows, scanMember)
		return err
	})
	if err != nil {
		return nil, err
	}
	return members, nil
}

func (p *Privileged) GetMember(ctx context.Context, tenantID, memberID uuid.UUID) (agency.Member, error) {
	var m agency.Member
	err := p.inTenant(ctx, tenantID, func(ctx context.Context, tx pgx.Tx) error {
		rows, err := tx.Query(ctx, "SELECT "+memberColumns+" FROM get_tenant_member($1)", memberID)
		if err != nil {
			return err
		}
		m, err = pgx.CollectExactlyOneRow(rows, scanMember)
		return err
	})
	return m, err
}

func (p *Privileged) GetMemberByEmail(ctx context.Context, tenantID uuid.UUID, email string) (agency.Member, error) {
	var m agency.Member
	err := p.inTenant(ctx, tenantID, func(ctx context.Context, tx pgx.Tx) error {
		rows, err := tx.Query(ctx, "SELECT "+memberColumns+" FROM get_tenant_member_by_email($1)", email)
		if err != nil {
			return err
		}
		m, err = pgx.CollectExactlyOneRow(rows, scanMember)
		return err
	})
	return m, err
}

// GetProfile reads the tenant's own row. get_current_tenant returns no row
// rather than failing when the context is empty, so an empty result is
// reported as ErrNotFound and never as a zero Agency.
func (p *Privileged) GetProfile(ctx context.Context, tenantID uuid.UUID) (agency.Agency, error) {
	var a agency.Agency
	err := p.inTenant(ctx, tenantID, func(ctx context.Context, tx pgx.Tx) error {
		rows, err := tx.Query(ctx, "SELECT "+agencyColumns+" FROM get_current_tenant()")
		if err != nil {
			return err
		}
		a, err = pgx.CollectExactlyOneRow(rows, scanAgency)
		return err
	})
	return a, err
}

func (p *Privileged) CreateMember(ctx context.Context, tenantID uuid.UUID, in agency.NewMember) (uuid.UUID, error) {
	var id uuid.UUID
	err := p.inTenant(ctx, tenantID, func(ctx context.Context, tx pgx.Tx) error {
		return tx.QueryRow(ctx,
			"SELECT create_tenant_member($1, $2, $3, $4, $5)",
			in.ID, in.Email, in.FirstName, in.LastName, string(in.Role),
		).Scan(&id)
	})
	if err != nil {
		return uuid.Nil, err
	}
	return id, nil
}

func (p *Privileged) UpdateMember(ctx context.Context, tenantID, memberID uuid.UUID, in agency.MemberUpdate) (agency.Member, error) {
	var m agency.Member
	err := p.inTenant(ctx, tenantID, func(ctx context.Context, tx pgx.Tx) error {
		rows, err := tx.Query(ctx,
			"SELECT "+memberColumns+" FROM update_tenant_member($1, $2, $3, $4, $5)",
			memberID, in.Email, in.FirstName, in.LastName, roleArg(in.Role),
		)
		if err != nil {
			return err
		}
		m, err = pgx.CollectExactlyOneRow(rows, scanMember)
		return err
	})
	return m, err
}

func (p *Privileged) RemoveMember(ctx context.Context, tenantID, memberID uuid.UUID) error {
	return p.inTenant(ctx, tenantID, func(ctx context.Context, tx pgx.Tx) error {
		_, err := tx.Exec(ctx, "SELECT remove_tenant_member($1)", memberID)
		return err
	})
}
