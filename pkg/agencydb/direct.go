package agencydb

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/dmitrymomot/tenantcore/pkg/agency"
)

// DBTX is satisfied by *pgxpool.Pool, *pgx.Conn and pgx.Tx.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Direct is the direct-query fallback path. It runs over the privileged pool,
// which is not subject to row policies, so every statement filters on the
// tenant id bound as a parameter. It never reads or writes the session
// tenant context. Only active agencies are visible, matching the boundary.
type Direct struct {
	db DBTX
}

var _ agency.Store = (*Direct)(nil)

// NewDirect creates a fallback store over the privileged pool.
func NewDirect(db DBTX) *Direct {
	return &Direct{db: db}
}

const activeAgency = "EXISTS (SELECT 1 FROM agencies a WHERE a.id = $1 AND a.active)"

func (d *Direct) ListMembers(ctx context.Context, tenantID uuid.UUID) ([]agency.Member, error) {
	if tenantID == uuid.Nil {
		return nil, agency.ErrTenantRequired
	}
	rows, err := d.db.Query(ctx,
		"SELECT id, agency_id, email, first_name, last_name, role::text, created_at, updated_at"+
			" FROM members WHERE agency_id = $1 AND "+activeAgency+
			" ORDER BY created_at, id",
		tenantID,
	)
	if err != nil {
		return nil, mapDirectError(err)
	}
	members, err := pgx.CollectRows(rows, scanMember)
	if err != nil {
		return nil, mapDirectError(err)
	}
	return members, nil
}

func (d *Direct) GetMember(ctx context.Context, tenantID, memberID uuid.UUID) (agency.Member, error) {
	return d.oneMember(ctx, tenantID,
		"SELECT id, agency_id, email, first_name, last_name, role::text, created_at, updated_at"+
			" FROM members WHERE agency_id = $1 AND id = $2 AND "+activeAgency,
		memberID,
	)
}

func (d *Direct) GetMemberByEmail(ctx context.Context, tenantID uuid.UUID, email string) (agency.Member, error) {
	return d.oneMember(ctx, tenantID,
		"SELECT id, agency_id, email, first_name, last_name, role::text, created_at, updated_at"+
			" FROM members WHERE agency_id = $1 AND lower(email) = lower(btrim($2)) AND "+activeAgency,
		email,
	)
}

func (d *Direct) oneMember(ctx context.Context, tenantID uuid.UUID, sql string, arg any) (agency.Member, error) {
	if tenantID == uuid.Nil {
		return agency.Member{}, agency.ErrTenantRequired
	}
	rows, err := d.db.Query(ctx, sql, tenantID, arg)
	if err != nil {
		return agency.Member{}, mapDirectError(err)
	}
	m, err := pgx.CollectExactlyOneRow(rows, scanMember)
	if err != nil {
		return agency.Member{}, mapDirectError(err)
	}
	return m, nil
}

func (d *Direct) GetProfile(ctx context.Context, tenantID uuid.UUID) (agency.Agency, error) {
	if tenantID == uuid.Nil {
		return agency.Agency{}, agency.ErrTenantRequired
	}
	rows, err := d.db.Query(ctx,
		"SELECT "+agencyColumns+" FROM agencies WHERE id = $1 AND active",
		tenantID,
	)
	if err != nil {
		return agency.Agency{}, mapDirectError(err)
	}
	a, err := pgx.CollectExactlyOneRow(rows, scanAgency)
	if err != nil {
		return agency.Agency{}, mapDirectError(err)
	}
	return a, nil
}

func (d *Direct) CreateMember(ctx context.Context, tenantID uuid.UUID, in agency.NewMember) (uuid.UUID, error) {
	if tenantID == uuid.Nil {
		return uuid.Nil, agency.ErrTenantRequired
	}
	if !in.Role.Valid() {
		return uuid.Nil, agency.ErrInvalidInput
	}

	var id uuid.UUID
	err := d.db.QueryRow(ctx,
		"INSERT INTO members (id, agency_id, email, first_name, last_name, role)"+
			" SELECT $2::uuid, a.id, btrim($3), btrim($4), btrim($5), $6::member_role"+
			" FROM agencies a WHERE a.id = $1 AND a.active"+
			" RETURNING id",
		tenantID, in.ID, in.Email, in.FirstName, in.LastName, string(in.Role),
	).Scan(&id)
	if err != nil {
		return uuid.Nil, mapDirectError(err)
	}
	return id, nil
}

func (d *Direct) UpdateMember(ctx context.Context, tenantID, memberID uuid.UUID, in agency.MemberUpdate) (agency.Member, error) {
	if tenantID == uuid.Nil {
		return agency.Member{}, agency.ErrTenantRequired
	}
	if in.Role != nil && !in.Role.Valid() {
		return agency.Member{}, agency.ErrInvalidInput
	}

	rows, err := d.db.Query(ctx,
		"UPDATE members m SET"+
			" email = coalesce(btrim($3), m.email),"+
			" first_name = coalesce(btrim($4), m.first_name),"+
			" last_name = coalesce(btrim($5), m.last_name),"+
			" role = coalesce($6::member_role, m.role)"+
			" WHERE m.agency_id = $1 AND m.id = $2 AND "+activeAgency+
			" RETURNING m.id, m.agency_id, m.email, m.first_name, m.last_name, m.role::text, m.created_at, m.updated_at",
		tenantID, memberID, in.Email, in.FirstName, in.LastName, roleArg(in.Role),
	)
	if err != nil {
		return agency.Member{}, mapDirectError(err)
	}
	m, err := pgx.CollectExactlyOneRow(rows, scanMember)
	if err != nil {
		return agency.Member{}, mapDirectError(err)
	}
	return m, nil
}

func (d *Direct) RemoveMember(ctx context.Context, tenantID, memberID uuid.UUID) error {
	if tenantID == uuid.Nil {
		return agency.ErrTenantRequired
	}
	tag, err := d.db.Exec(ctx,
		"DELETE FROM members WHERE agency_id = $1 AND id = $2 AND "+activeAgency,
		tenantID, memberID,
	)
	if err != nil {
		return mapDirectError(err)
	}
	if tag.RowsAffected() == 0 {
		return agency.ErrNotFound
	}
	return nil
}
