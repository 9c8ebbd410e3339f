package agencydb

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/dmitrymomot/tenantcore/pkg/agency"
	"github.com/dmitrymomot/tenantcore/pkg/logger"
	"github.com/dmitrymomot/tenantcore/pkg/slug"
	"github.com/dmitrymomot/tenantcore/pkg/tenant"
)

// slugAttempts bounds retries with a random suffix after a generated slug collides.
const slugAttempts = 3

// Directory resolves tenants before any tenant context exists and manages
// the agency lifecycle during onboarding. Lookups go through resolve_tenant,
// so they work on the application pool; Create and SetActive write the
// agencies table directly and need the privileged pool.
type Directory struct {
	db  DBTX
	log *slog.Logger
}

var _ tenant.Provider = (*Directory)(nil)

// DirectoryOption configures a Directory.
type DirectoryOption func(*Directory)

// WithDirectoryLogger sets the logger used for lifecycle events.
func WithDirectoryLogger(log *slog.Logger) DirectoryOption {
	return func(d *Directory) {
		if log != nil {
			d.log = log
		}
	}
}

// NewDirectory creates a Directory over db.
func NewDirectory(db DBTX, opts ...DirectoryOption) *Directory {
	d := &Directory{db: db, log: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// GetByIdentifier implements tenant.Provider. Inactive agencies are not
// returned, so they are indistinguishable from missing ones.
func (d *Directory) GetByIdentifier(ctx context.Context, identifier string) (*tenant.Tenant, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" {
		return nil, tenant.ErrTenantNotFound
	}

	rows, err := d.db.Query(ctx, "SELECT "+agencyColumns+" FROM resolve_tenant($1)", identifier)
	if err != nil {
		return nil, err
	}
	a, err := pgx.CollectExactlyOneRow(rows, scanAgency)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, tenant.ErrTenantNotFound
		}
		return nil, err
	}
	return toTenant(a), nil
}

// Create inserts a new active agency. When in.Slug is empty it is derived
// from the name, retrying with a random suffix on collision. An explicit
// slug that is taken fails with agency.ErrSlugTaken.
func (d *Directory) Create(ctx context.Context, in agency.NewAgency) (agency.Agency, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Slug = strings.ToLower(strings.TrimSpace(in.Slug))
	if in.Settings == nil {
		in.Settings = map[string]any{}
	}

	generated := in.Slug == ""
	attempts := 1
	if generated {
		attempts = slugAttempts
	}

	var lastErr error
	for i := range attempts {
		candidate := in
		if generated {
			candidate.Slug = slug.Make(in.Name)
			if i > 0 || candidate.Slug == "" || agency.IsReservedSlug(candidate.Slug) {
				candidate.Slug = slug.Make(in.Name, slug.WithSuffix(6))
			}
		}
		if err := agency.ValidateNewAgency(candidate); err != nil {
			return agency.Agency{}, err
		}

		a, err := d.insert(ctx, candidate)
		if err == nil {
			d.log.InfoContext(ctx, "agency created",
				logger.TenantID(a.ID),
				slog.String("slug", a.Slug),
			)
			return a, nil
		}
		if !errors.Is(err, agency.ErrSlugTaken) {
			return agency.Agency{}, err
		}
		lastErr = err
	}
	return agency.Agency{}, lastErr
}

func (d *Directory) insert(ctx context.Context, in agency.NewAgency) (agency.Agency, error) {
	rows, err := d.db.Query(ctx,
		"INSERT INTO agencies (name, slug, settings) VALUES ($1, $2, $3) RETURNING "+agencyColumns,
		in.Name, in.Slug, in.Settings,
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

// SetActive activates or deactivates the agency with the given slug.
// Agencies are never deleted; deactivation makes them unresolvable.
func (d *Directory) SetActive(ctx context.Context, agencySlug string, active bool) error {
	tag, err := d.db.Exec(ctx,
		"UPDATE agencies SET active = $2 WHERE slug = $1",
		strings.ToLower(strings.TrimSpace(agencySlug)), active,
	)
	if err != nil {
		return mapDirectError(err)
	}
	if tag.RowsAffected() == 0 {
		return agency.ErrNotFound
	}
	d.log.InfoContext(ctx, "agency status changed",
		slog.String("slug", agencySlug),
		slog.Bool("active", active),
	)
	return nil
}
