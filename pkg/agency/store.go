package agency

import (
	"context"

	"github.com/google/uuid"
)

// Store is the closed set of tenant-scoped operations. The tenant id is a
// mandatory parameter of every method, so an implementation never depends on
// state left on a shared connection.
type Store interface {
	ListMembers(ctx context.Context, tenantID uuid.UUID) ([]Member, error)
	GetMember(ctx context.Context, tenantID, memberID uuid.UUID) (Member, error)
	GetMemberByEmail(ctx context.Context, tenantID uuid.UUID, email string) (Member, error)
	// GetProfile returns ErrNotFound when the tenant has no active profile row.
	GetProfile(ctx context.Context, tenantID uuid.UUID) (Agency, error)
	CreateMember(ctx context.Context, tenantID uuid.UUID, in NewMember) (uuid.UUID, error)
	UpdateMember(ctx context.Context, tenantID, memberID uuid.UUID, in MemberUpdate) (Member, error)
	RemoveMember(ctx context.Context, tenantID, memberID uuid.UUID) error
}

// Operation names a Store method for fallback configuration and logs.
type Operation string

const (
	OpListMembers      Operation = "list_members"
	OpGetMember        Operation = "get_member"
	OpGetMemberByEmail Operation = "get_member_by_email"
	OpGetProfile       Operation = "get_profile"
	OpCreateMember     Operation = "create_member"
	OpUpdateMember     Operation = "update_member"
	OpRemoveMember     Operation = "remove_member"
)

// Operations lists every Store operation.
func Operations() []Operation {
	return []Operation{
		OpListMembers, OpGetMember, OpGetMemberByEmail, OpGetProfile,
		OpCreateMember, OpUpdateMember, OpRemoveMember,
	}
}
