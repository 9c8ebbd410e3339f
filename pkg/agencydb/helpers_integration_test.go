//go:build integration

package agencydb_test

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/tenantcore/pkg/agency"
	"github.com/dmitrymomot/tenantcore/pkg/agencydb"
)

func uniqueSuffix() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
}

func createAgency(t *testing.T, name string) agency.Agency {
	t.Helper()
	suffix := uniqueSuffix()
	a, err := agencydb.NewDirectory(ownerPool).Create(context.Background(), agency.NewAgency{
		Name: name + " " + suffix,
		Slug: strings.ToLower(strings.ReplaceAll(name, " ", "-")) + "-" + suffix,
	})
	require.NoError(t, err)
	return a
}

func createMember(t *testing.T, tenantID uuid.UUID, local string, role agency.Role) agency.Member {
	t.Helper()
	ctx := context.Background()
	store := agencydb.NewPrivileged(appPool)

	id, err := store.CreateMember(ctx, tenantID, agency.NewMember{
		ID:        uuid.New(),
		Email:     local + "-" + uniqueSuffix() + "@example.com",
		FirstName: strings.ToUpper(local[:1]) + local[1:],
		LastName:  "Tester",
		Role:      role,
	})
	require.NoError(t, err)

	m, err := store.GetMember(ctx, tenantID, id)
	require.NoError(t, err)
	return m
}

func memberIDs(members []agency.Member) []uuid.UUID {
	ids := make([]uuid.UUID, len(members))
	for i, m := range members {
		ids[i] = m.ID
	}
	return ids
}
