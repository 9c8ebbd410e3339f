package agency_test

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/dmitrymomot/tenantcore/pkg/agency"
)

// MockStore is a mock implementation of agency.Store.
type MockStore struct {
	mock.Mock
}

func (m *MockStore) ListMembers(ctx context.Context, tenantID uuid.UUID) ([]agency.Member, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]agency.Member), args.Error(1)
}

func (m *MockStore) GetMember(ctx context.Context, tenantID, memberID uuid.UUID) (agency.Member, error) {
	args := m.Called(ctx, tenantID, memberID)
	return args.Get(0).(agency.Member), args.Error(1)
}

func (m *MockStore) GetMemberByEmail(ctx context.Context, tenantID uuid.UUID, email string) (agency.Member, error) {
	args := m.Called(ctx, tenantID, email)
	return args.Get(0).(agency.Member), args.Error(1)
}

func (m *MockStore) GetProfile(ctx context.Context, tenantID uuid.UUID) (agency.Agency, error) {
	args := m.Called(ctx, tenantID)
	return args.Get(0).(agency.Agency), args.Error(1)
}

func (m *MockStore) CreateMember(ctx context.Context, tenantID uuid.UUID, in agency.NewMember) (uuid.UUID, error) {
	args := m.Called(ctx, tenantID, in)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *MockStore) UpdateMember(ctx context.Context, tenantID, memberID uuid.UUID, in agency.MemberUpdate) (agency.Member, error) {
	args := m.Called(ctx, tenantID, memberID, in)
	return args.Get(0).(agency.Member), args.Error(1)
}

func (m *MockStore) RemoveMember(ctx context.Context, tenantID, memberID uuid.UUID) error {
	args := m.Called(ctx, tenantID, memberID)
	return args.Error(0)
}
