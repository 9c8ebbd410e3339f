package pg

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrFailedToOpenDBConnection   = errors.New("failed to open db connection")
	ErrEmptyConnectionString      = errors.New("empty postgres connection string, use PG_CONN_URL and PG_PRIVILEGED_CONN_URL env vars")
	ErrHealthcheckFailed          = errors.New("healthcheck failed, connection is not available")
	ErrFailedToParseDBConfig      = errors.New("failed to parse db config")
	ErrFailedToApplyMigrations    = errors.New("failed to apply migrations")
	ErrFailedToRollbackMigrations = errors.New("failed to roll back migrations")
	ErrMigrationsNotProvided      = errors.New("migrations filesystem not provided")
	ErrFailedToBeginTx            = errors.New("failed to begin transaction")
	ErrFailedToCommitTx           = errors.New("failed to commit transaction")
	ErrTenantIDRequired           = errors.New("tenant id is required")
	ErrTenantContextRejected      = errors.New("tenant context rejected by database")
	ErrFailedToClearTenantContext = errors.New("failed to clear tenant context")
	ErrFailedToReadTenantContext  = errors.New("failed to read tenant context")
	ErrRowSecurityDisabled        = errors.New("row security is not enabled")
)

// SQLSTATE codes raised by the tenant boundary functions and the ones the
// application branches on.
const (
	CodeTenantContextNotSet = "TC001"
	CodeInvalidInput        = "TC002"
	CodeTenantRowNotFound   = "TC003"

	codeUniqueViolation       = "23505"
	codeForeignKeyViolation   = "23503"
	codeCheckViolation        = "23514"
	codeNotNullViolation      = "23502"
	codeInvalidTextRepr       = "22P02"
	codeUndefinedFunction     = "42883"
	codeInsufficientPrivilege = "42501"
)

func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// IsNotFoundError detects pgx.ErrNoRows for consistent "not found" handling across queries.
func IsNotFoundError(err error) bool {
	if err == nil {
		return false
	}
	return errors.Is(err, pgx.ErrNoRows)
}

// IsDuplicateKeyError detects PostgreSQL unique constraint violations (SQLSTATE 23505).
func IsDuplicateKeyError(err error) bool {
	return err != nil && pgCode(err) == codeUniqueViolation
}

// IsForeignKeyViolationError detects referential integrity violations (SQLSTATE 23503).
func IsForeignKeyViolationError(err error) bool {
	return err != nil && pgCode(err) == codeForeignKeyViolation
}

// IsTenantContextNotSetError reports a boundary call made without a tenant in the session key.
func IsTenantContextNotSetError(err error) bool {
	return err != nil && pgCode(err) == CodeTenantContextNotSet
}

// IsTenantRowNotFoundError reports a boundary call that targeted a row outside
// the current tenant, or a tenant that is missing or inactive.
func IsTenantRowNotFoundError(err error) bool {
	return err != nil && pgCode(err) == CodeTenantRowNotFound
}

// IsInvalidInputError covers boundary validation failures as well as values
// the database itself refuses to store.
func IsInvalidInputError(err error) bool {
	if err == nil {
		return false
	}
	switch pgCode(err) {
	case CodeInvalidInput, codeCheckViolation, codeNotNullViolation, codeInvalidTextRepr:
		return true
	}
	return false
}

// IsUndefinedFunctionError detects calls to routines that are not installed (SQLSTATE 42883).
func IsUndefinedFunctionError(err error) bool {
	return err != nil && pgCode(err) == codeUndefinedFunction
}

// IsPermissionDeniedError detects missing grants (SQLSTATE 42501).
func IsPermissionDeniedError(err error) bool {
	return err != nil && pgCode(err) == codeInsufficientPrivilege
}

// IsConnectionError reports failures to reach the server at all, as opposed
// to errors the server returned.
func IsConnectionError(err error) bool {
	if err == nil {
		return false
	}
	var connErr *pgconn.ConnectError
	if errors.As(err, &connErr) {
		return true
	}
	if pgCode(err) != "" {
		return false
	}
	return pgconn.SafeToRetry(err)
}
