package agency

import (
	"time"

	"github.com/google/uuid"
)

// Agency is a tenant's own profile row.
type Agency struct {
	ID        uuid.UUID      `json:"id"`
	Name      string         `json:"name"`
	Slug      string         `json:"slug"`
	Active    bool           `json:"active"`
	Settings  map[string]any `json:"settings"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// Member belongs to exactly one agency for its whole life.
type Member struct {
	ID        uuid.UUID `json:"id"`
	AgencyID  uuid.UUID `json:"agency_id"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewMember carries the fields of a member being created. The id comes from
// the identity provider; the agency always comes from the tenant context.
type NewMember struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Role      Role      `json:"role"`
}

// MemberUpdate is a partial update; nil fields are left unchanged.
type MemberUpdate struct {
	Email     *string `json:"email,omitempty"`
	FirstName *string `json:"first_name,omitempty"`
	LastName  *string `json:"last_name,omitempty"`
	Role      *Role   `json:"role,omitempty"`
}

// Empty reports whether the update changes nothing.
func (u MemberUpdate) Empty() bool {
	return u.Email == nil && u.FirstName == nil && u.LastName == nil && u.Role == nil
}

// NewAgency describes an agency created at onboarding. An empty Slug is
// derived from Name.
type NewAgency struct {
	Name     string         `json:"name" yaml:"name"`
	Slug     string         `json:"slug" yaml:"slug"`
	Settings map[string]any `json:"settings" yaml:"settings"`
}
