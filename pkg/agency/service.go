package agency

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/dmitrymomot/tenantcore/pkg/logger"
)

// Service is the application-facing entry point for tenant-scoped member and
// profile operations. It validates input, always tries the primary store (the
// privileged function boundary) first, and switches to the fallback store
// only for allowed operations when the boundary is unavailable.
type Service struct {
	primary  Store
	fallback Store
	allowed  map[Operation]bool
	log      *slog.Logger
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithFallback enables the direct-query path for ops.
func WithFallback(store Store, ops ...Operation) ServiceOption {
	return func(s *Service) {
		if store == nil {
			return
		}
		s.fallback = store
		for _, op := range ops {
			s.allowed[op] = true
		}
	}
}

// WithLogger sets the service logger.
func WithLogger(log *slog.Logger) ServiceOption {
	return func(s *Service) {
		if log != nil {
			s.log = log
		}
	}
}

// NewService creates a Service over primary.
func NewService(primary Store, opts ...ServiceOption) *Service {
	s := &Service{
		primary: primary,
		allowed: make(map[Operation]bool),
		log:     slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// FallbackEnabled reports whether op may use the direct-query path.
func (s *Service) FallbackEnabled(op Operation) bool {
	return s.fallback != nil && s.allowed[op]
}

// ListMembers returns every member of the tenant.
func (s *Service) ListMembers(ctx context.Context, tenantID uuid.UUID) ([]Member, error) {
	return call(ctx, s, OpListMembers, tenantID, func(st Store) ([]Member, error) {
		return st.ListMembers(ctx, tenantID)
	})
}

// GetMember returns one member of the tenant. Members of other tenants are ErrNotFound.
func (s *Service) GetMember(ctx context.Context, tenantID, memberID uuid.UUID) (Member, error) {
	if memberID == uuid.Nil {
		return Member{}, ErrNotFound
	}
	return call(ctx, s, OpGetMember, tenantID, func(st Store) (Member, error) {
		return st.GetMember(ctx, tenantID, memberID)
	})
}

// GetMemberByEmail looks a member up by email, case-insensitively.
func (s *Service) GetMemberByEmail(ctx context.Context, tenantID uuid.UUID, email string) (Member, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return Member{}, ErrNotFound
	}
	return call(ctx, s, OpGetMemberByEmail, tenantID, func(st Store) (Member, error) {
		return st.GetMemberByEmail(ctx, tenantID, email)
	})
}

// GetProfile returns the tenant's own agency row.
func (s *Service) GetProfile(ctx context.Context, tenantID uuid.UUID) (Agency, error) {
	return call(ctx, s, OpGetProfile, tenantID, func(st Store) (Agency, error) {
		return st.GetProfile(ctx, tenantID)
	})
}

// CreateMember attaches a new member to the tenant and returns its id.
func (s *Service) CreateMember(ctx context.Context, tenantID uuid.UUID, in NewMember) (uuid.UUID, error) {
	in = normalizeNewMember(in)
	if err := ValidateNewMember(in); err != nil {
		return uuid.Nil, err
	}
	id, err := call(ctx, s, OpCreateMember, tenantID, func(st Store) (uuid.UUID, error) {
		return st.CreateMember(ctx, tenantID, in)
	})
	if err == nil {
		s.log.InfoContext(ctx, "member created",
			logger.TenantID(tenantID),
			logger.MemberID(id),
			logger.Role(in.Role),
		)
	}
	return id, err
}

// UpdateMember applies a partial update to a member of the tenant.
func (s *Service) UpdateMember(ctx context.Context, tenantID, memberID uuid.UUID, in MemberUpdate) (Member, error) {
	if memberID == uuid.Nil {
		return Member{}, ErrNotFound
	}
	in = normalizeMemberUpdate(in)
	if err := ValidateMemberUpdate(in); err != nil {
		return Member{}, err
	}
	return call(ctx, s, OpUpdateMember, tenantID, func(st Store) (Member, error) {
		return st.UpdateMember(ctx, tenantID, memberID, in)
	})
}

// RemoveMember deletes a member of the tenant. The acting member, when
// known from ctx, cannot remove itself.
func (s *Service) RemoveMember(ctx context.Context, tenantID, memberID uuid.UUID) error {
	if memberID == uuid.Nil {
		return ErrNotFound
	}
	if actor, ok := ActingMemberFromContext(ctx); ok && actor == memberID {
		return ErrSelfRemoval
	}
	_, err := call(ctx, s, OpRemoveMember, tenantID, func(st Store) (struct{}, error) {
		return struct{}{}, st.RemoveMember(ctx, tenantID, memberID)
	})
	if err == nil {
		s.log.InfoContext(ctx, "member removed",
			logger.TenantID(tenantID),
			logger.MemberID(memberID),
		)
	}
	return err
}

// call runs fn against the primary store and, when permitted, retries it
// against the fallback store. Only ErrBoundaryUnavailable qualifies: a
// context, validation or ownership failure from the boundary is final.
func call[T any](ctx context.Context, s *Service, op Operation, tenantID uuid.UUID, fn func(Store) (T, error)) (T, error) {
	var zero T
	if tenantID == uuid.Nil {
		return zero, ErrTenantRequired
	}

	res, err := fn(s.primary)
	if err == nil {
		return res, nil
	}
	if !errors.Is(err, ErrBoundaryUnavailable) || !s.FallbackEnabled(op) {
		if errors.Is(err, ErrTenantContextNotSet) || errors.Is(err, ErrStorage) || errors.Is(err, ErrBoundaryUnavailable) {
			s.log.ErrorContext(ctx, "tenant-scoped operation failed",
				logger.Operation(op),
				logger.TenantID(tenantID),
				logger.Path("privileged"),
				logger.Error(err),
			)
		}
		return zero, err
	}

	s.log.WarnContext(ctx, "privileged boundary unavailable, using direct-query path",
		logger.Operation(op),
		logger.TenantID(tenantID),
		logger.Error(err),
	)

	res, err = fn(s.fallback)
	if err != nil {
		if errors.Is(err, ErrStorage) {
			s.log.ErrorContext(ctx, "tenant-scoped operation failed",
				logger.Operation(op),
				logger.TenantID(tenantID),
				logger.Path("direct"),
				logger.Error(err),
			)
		}
		return zero, err
	}
	return res, nil
}
