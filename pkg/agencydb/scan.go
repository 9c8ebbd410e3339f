package agencydb

import (
	"github.com/jackc/pgx/v5"

	"github.com/dmitrymomot/tenantcore/pkg/agency"
	"github.com/dmitrymomot/tenantcore/pkg/tenant"
)

const (
	memberColumns = "id, agency_id, email, first_name, last_name, role, created_at, updated_at"
	agencyColumns = "id, name, slug, active, settings, created_at, updated_at"
)

func scanMember(row pgx.CollectableRow) (agency.Member, error) {
	var (
		m    agency.Member
		role string
	)
	err := row.Scan(&m.ID, &m.AgencyID, &m.Email, &m.FirstName, &m.LastName, &role, &m.CreatedAt, &m.UpdatedAt)
	m.Role = agency.Role(role)
	return m, err
}

func scanAgency(row pgx.CollectableRow) (agency.Agency, error) {
	var a agency.Agency
	err := row.Scan(&a.ID, &a.Name, &a.Slug, &a.Active, &a.Settings, &a.CreatedAt, &a.UpdatedAt)
	if a.Settings == nil {
		a.Settings = map[string]any{}
	}
	return a, err
}

func toTenant(a agency.Agency) *tenant.Tenant {
	return &tenant.Tenant{
		ID:        a.ID,
		Slug:      a.Slug,
		Name:      a.Name,
		Active:    a.Active,
		Settings:  a.Settings,
		CreatedAt: a.CreatedAt,
	}
}

// roleArg passes an optional role as text so a nil pointer becomes NULL.
func roleArg(r *agency.Role) *string {
	if r == nil {
		return nil
	}
	s := string(*r)
	return &s
}
