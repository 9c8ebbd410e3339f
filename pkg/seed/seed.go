package seed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/tenantcore/pkg/agency"
	"github.com/dmitrymomot/tenantcore/pkg/logger"
	"github.com/dmitrymomot/tenantcore/pkg/slug"
	"github.com/dmitrymomot/tenantcore/pkg/tenant"
)

// Fixtures is the root of a seed file.
type Fixtures struct {
	Agencies []AgencyFixture `yaml:"agencies"`
}

// AgencyFixture describes one agency and its members. Active defaults to
// true; an inactive agency is deactivated after its members are created.
type AgencyFixture struct {
	agency.NewAgency `yaml:",inline"`
	Active           *bool           `yaml:"active"`
	Members          []MemberFixture `yaml:"members"`
}

// MemberFixture describes one member. Without an explicit id the id is
// derived from the agency id and the email, so re-running a seed file
// yields the same ids.
type MemberFixture struct {
	ID        string `yaml:"id"`
	Email     string `yaml:"email"`
	FirstName string `yaml:"first_name"`
	LastName  string `yaml:"last_name"`
	Role      string `yaml:"role"`
}

// Directory is the subset of agencydb.Directory the seeder needs.
type Directory interface {
	GetByIdentifier(ctx context.Context, identifier string) (*tenant.Tenant, error)
	Create(ctx context.Context, in agency.NewAgency) (agency.Agency, error)
	SetActive(ctx context.Context, slug string, active bool) error
}

// Members is the subset of agency.Service the seeder needs.
type Members interface {
	GetMemberByEmail(ctx context.Context, tenantID uuid.UUID, email string) (agency.Member, error)
	CreateMember(ctx context.Context, tenantID uuid.UUID, in agency.NewMember) (uuid.UUID, error)
}

// Report counts what a run changed.
type Report struct {
	AgenciesCreated  int
	AgenciesExisting int
	AgenciesSkipped  int
	MembersCreated   int
	MembersExisting  int
}

// Decode parses a YAML seed file. Unknown keys are rejected.
func Decode(r io.Reader) (Fixtures, error) {
	var f Fixtures
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return Fixtures{}, ErrEmptyFixtures
		}
		return Fixtures{}, errors.Join(ErrInvalidFixtures, err)
	}
	if len(f.Agencies) == 0 {
		return Fixtures{}, ErrEmptyFixtures
	}
	return f, nil
}

// Seeder applies fixtures idempotently: existing agencies (by slug) and
// existing members (by email within the agency) are left alone.
type Seeder struct {
	dir     Directory
	members Members
	log     *slog.Logger
}

// New creates a Seeder. Members should be the agency.Service so fixtures
// go through the same validation as API writes.
func New(dir Directory, members Members, log *slog.Logger) *Seeder {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Seeder{dir: dir, members: members, log: log}
}

// Apply seeds every agency in order and stops at the first error.
func (s *Seeder) Apply(ctx context.Context, f Fixtures) (Report, error) {
	var rep Report
	for i, af := range f.Agencies {
		if err := s.applyAgency(ctx, af, &rep); err != nil {
			return rep, fmt.Errorf("agency #%d (%s): %w", i+1, af.Name, err)
		}
	}
	return rep, nil
}

func (s *Seeder) applyAgency(ctx context.Context, af AgencyFixture, rep *Report) error {
	in := af.NewAgency
	in.Slug = strings.ToLower(strings.TrimSpace(in.Slug))
	if in.Slug == "" {
		in.Slug = slug.Make(in.Name)
	}

	var tenantID uuid.UUID
	existing, err := s.dir.GetByIdentifier(ctx, in.Slug)
	switch {
	case err == nil:
		tenantID = existing.ID
		rep.AgenciesExisting++
	case errors.Is(err, tenant.ErrTenantNotFound):
		created, err := s.dir.Create(ctx, in)
		if errors.Is(err, agency.ErrSlugTaken) {
			// Not resolvable yet taken: the agency exists but is inactive.
			s.log.WarnContext(ctx, "skipping inactive agency", slog.String("slug", in.Slug))
			rep.AgenciesSkipped++
			return nil
		}
		if err != nil {
			return err
		}
		tenantID = created.ID
		rep.AgenciesCreated++
	default:
		return err
	}

	for _, mf := range af.Members {
		if err := s.applyMember(ctx, tenantID, mf, rep); err != nil {
			return fmt.Errorf("member %s: %w", mf.Email, err)
		}
	}

	if af.Active != nil && !*af.Active {
		if err := s.dir.SetActive(ctx, in.Slug, false); err != nil {
			return err
		}
	}
	return nil
}

func (s *Seeder) applyMember(ctx context.Context, tenantID uuid.UUID, mf MemberFixture, rep *Report) error {
	email := strings.TrimSpace(mf.Email)
	_, err := s.members.GetMemberByEmail(ctx, tenantID, email)
	switch {
	case err == nil:
		rep.MembersExisting++
		return nil
	case !errors.Is(err, agency.ErrNotFound):
		return err
	}

	id := uuid.NewSHA1(tenantID, []byte(strings.ToLower(email)))
	if mf.ID != "" {
		if id, err = uuid.Parse(mf.ID); err != nil {
			return errors.Join(ErrInvalidFixtures, err)
		}
	}

	role := agency.Role(strings.TrimSpace(mf.Role))
	if role == "" {
		role = agency.RoleMember
	}

	if _, err := s.members.CreateMember(ctx, tenantID, agency.NewMember{
		ID:        id,
		Email:     email,
		FirstName: mf.FirstName,
		LastName:  mf.LastName,
		Role:      role,
	}); err != nil {
		return err
	}
	rep.MembersCreated++
	s.log.DebugContext(ctx, "member seeded", logger.TenantID(tenantID), logger.MemberID(id))
	return nil
}
