package agencydb

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/dmitrymomot/tenantcore/pkg/agency"
	"github.com/dmitrymomot/tenantcore/pkg/pg"
)

// Index names the duplicate-key mapping branches on.
const (
	memberEmailIndex = "members_agency_email_key"
	memberPrimaryKey = "members_pkey"
	agencySlugIndex  = "agencies_slug_key"
)

// mapError translates driver and boundary errors into agency errors. Rows
// that exist in another tenant and rows that do not exist at all map to the
// same ErrNotFound and carry no driver detail.
func mapError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case pg.IsTenantContextNotSetError(err):
		return errors.Join(agency.ErrTenantContextNotSet, err)
	case pg.IsTenantRowNotFoundError(err), pg.IsNotFoundError(err):
		return agency.ErrNotFound
	case pg.IsDuplicateKeyError(err):
		switch constraintName(err) {
		case memberEmailIndex:
			return agency.ErrDuplicateEmail
		case memberPrimaryKey:
			return agency.ErrDuplicateID
		case agencySlugIndex:
			return agency.ErrSlugTaken
		}
		return errors.Join(agency.ErrStorage, err)
	case pg.IsForeignKeyViolationError(err):
		return agency.ErrNotFound
	case pg.IsInvalidInputError(err):
		return errors.Join(agency.ErrInvalidInput, err)
	case errors.Is(err, pg.ErrTenantIDRequired):
		return agency.ErrTenantRequired
	case pg.IsUndefinedFunctionError(err), pg.IsPermissionDeniedError(err), pg.IsConnectionError(err):
		return errors.Join(agency.ErrBoundaryUnavailable, err)
	}
	return errors.Join(agency.ErrStorage, err)
}

// mapDirectError is mapError for the direct-query path. Nothing there can be
// "unavailable" in the fallback sense: a failure is final.
func mapDirectError(err error) error {
	mapped := mapError(err)
	if errors.Is(mapped, agency.ErrBoundaryUnavailable) {
		return errors.Join(agency.ErrStorage, err)
	}
	return mapped
}

func constraintName(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.ConstraintName
	}
	return ""
}
