package agency

import (
	"errors"
	"slices"
	"strings"

	"github.com/dmitrymomot/tenantcore/pkg/validator"
)

const (
	MaxEmailLength      = 254
	MaxNameLength       = 100
	MaxAgencyNameLength = 200
	MaxSlugLength       = 63
)

// reservedSlugs are host labels the subdomain resolver maps to the bare
// root domain. An agency with one of them could never be resolved.
var reservedSlugs = []string{"www"}

// IsReservedSlug reports whether s can not be used as an agency slug.
func IsReservedSlug(s string) bool {
	return slices.Contains(reservedSlugs, s)
}

// ValidateNewMember rejects input the boundary would refuse, before any row
// is touched.
func ValidateNewMember(in NewMember) error {
	err := validator.Apply(
		validator.RequiredUUID("id", in.ID),
		validator.RequiredString("email", in.Email),
		validator.ValidEmail("email", in.Email),
		validator.MaxLenString("email", in.Email, MaxEmailLength),
		validator.MaxLenString("first_name", in.FirstName, MaxNameLength),
		validator.MaxLenString("last_name", in.LastName, MaxNameLength),
		validator.OneOf("role", string(in.Role), RoleNames()),
	)
	if err != nil {
		return errors.Join(ErrInvalidInput, err)
	}
	return nil
}

// ValidateMemberUpdate checks only the fields that are present. An update
// with no fields is rejected.
func ValidateMemberUpdate(in MemberUpdate) error {
	if in.Empty() {
		return errors.Join(ErrInvalidInput, validator.ValidationErrors{
			{Field: "body", Message: "at least one field must be provided"},
		})
	}

	email, first, last, role := deref(in.Email), deref(in.FirstName), deref(in.LastName), deref(in.Role)
	err := validator.Apply(
		validator.When(in.Email != nil, validator.ValidEmail("email", email)),
		validator.When(in.Email != nil, validator.MaxLenString("email", email, MaxEmailLength)),
		validator.When(in.FirstName != nil, validator.MaxLenString("first_name", first, MaxNameLength)),
		validator.When(in.LastName != nil, validator.MaxLenString("last_name", last, MaxNameLength)),
		validator.When(in.Role != nil, validator.OneOf("role", string(role), RoleNames())),
	)
	if err != nil {
		return errors.Join(ErrInvalidInput, err)
	}
	return nil
}

// ValidateNewAgency expects the slug to be filled in already.
func ValidateNewAgency(in NewAgency) error {
	err := validator.Apply(
		validator.RequiredString("name", in.Name),
		validator.MaxLenString("name", in.Name, MaxAgencyNameLength),
		validator.ValidSlug("slug", in.Slug),
		validator.NotOneOf("slug", in.Slug, reservedSlugs),
		validator.MaxLenString("slug", in.Slug, MaxSlugLength),
	)
	if err != nil {
		return errors.Join(ErrInvalidInput, err)
	}
	return nil
}

// normalizeNewMember trims the free-text fields.
func normalizeNewMember(in NewMember) NewMember {
	in.Email = strings.TrimSpace(in.Email)
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)
	return in
}

func normalizeMemberUpdate(in MemberUpdate) MemberUpdate {
	in.Email = trimPtr(in.Email)
	in.FirstName = trimPtr(in.FirstName)
	in.LastName = trimPtr(in.LastName)
	return in
}

func trimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}
