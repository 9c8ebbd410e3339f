//go:build integration

package agencydb_test

import (
	"context"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/tenantcore/pkg/agency"
	"github.com/dmitrymomot/tenantcore/pkg/agencydb"
	"github.com/dmitrymomot/tenantcore/pkg/pg"
	"github.com/dmitrymomot/tenantcore/pkg/tenant"
)

func TestDirectory(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	owner := agencydb.NewDirectory(ownerPool)
	resolver := agencydb.NewDirectory(appPool)

	t.Run("resolves by slug and id on the application pool", func(t *testing.T) {
		a := createAgency(t, "Resolve")

		bySlug, err := resolver.GetByIdentifier(ctx, strings.ToUpper(a.Slug))
		require.NoError(t, err)
		assert.Equal(t, a.ID, bySlug.ID)
		assert.True(t, bySlug.Active)

		byID, err := resolver.GetByIdentifier(ctx, a.ID.String())
		require.NoError(t, err)
		assert.Equal(t, a.Slug, byID.Slug)
	})

	t.Run("unknown and inactive are indistinguishable", func(t *testing.T) {
		a := createAgency(t, "Dormant")
		require.NoError(t, owner.SetActive(ctx, a.Slug, false))

		for _, id := range []string{a.Slug, a.ID.String(), "no-such-agency-" + uniqueSuffix(), ""} {
			_, err := resolver.GetByIdentifier(ctx, id)
			assert.ErrorIs(t, err, tenant.ErrTenantNotFound, id)
		}

		require.NoError(t, owner.SetActive(ctx, a.Slug, true))
		_, err := resolver.GetByIdentifier(ctx, a.Slug)
		assert.NoError(t, err)

		assert.ErrorIs(t, owner.SetActive(ctx, "missing-"+uniqueSuffix(), false), agency.ErrNotFound)
	})

	t.Run("generated slugs avoid collisions", func(t *testing.T) {
		name := "Crème Brûlée Studio " + uniqueSuffix()

		first, err := owner.Create(ctx, agency.NewAgency{Name: name})
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(first.Slug, "creme-brulee-studio-"))

		second, err := owner.Create(ctx, agency.NewAgency{Name: name})
		require.NoError(t, err)
		assert.NotEqual(t, first.Slug, second.Slug)
		assert.True(t, strings.HasPrefix(second.Slug, first.Slug+"-"))
	})

	t.Run("explicit slug collision", func(t *testing.T) {
		a := createAgency(t, "Taken")
		_, err := owner.Create(ctx, agency.NewAgency{Name: "Other", Slug: a.Slug})
		assert.ErrorIs(t, err, agency.ErrSlugTaken)
	})

	t.Run("invalid input", func(t *testing.T) {
		_, err := owner.Create(ctx, agency.NewAgency{Name: "Bad", Slug: "not a slug"})
		assert.ErrorIs(t, err, agency.ErrInvalidInput)
	})

	t.Run("reserved slug", func(t *testing.T) {
		_, err := owner.Create(ctx, agency.NewAgency{Name: "Web", Slug: "www"})
		assert.ErrorIs(t, err, agency.ErrInvalidInput)

		generated, err := owner.Create(ctx, agency.NewAgency{Name: "WWW"})
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(generated.Slug, "www-"), generated.Slug)

		var pgErr *pgconn.PgError
		_, err = ownerPool.Exec(ctx, "INSERT INTO agencies (name, slug) VALUES ('Raw', 'www')")
		require.ErrorAs(t, err, &pgErr)
		assert.Equal(t, "23514", pgErr.Code)
	})

	t.Run("settings round trip", func(t *testing.T) {
		a, err := owner.Create(ctx, agency.NewAgency{
			Name:     "Configured " + uniqueSuffix(),
			Settings: map[string]any{"plan": "pro", "seats": float64(5)},
		})
		require.NoError(t, err)

		got, err := resolver.GetByIdentifier(ctx, a.Slug)
		require.NoError(t, err)
		assert.Equal(t, "pro", got.Settings["plan"])
		assert.Equal(t, float64(5), got.Settings["seats"])
	})

	t.Run("slug and membership are immutable", func(t *testing.T) {
		a, b := createAgency(t, "Fixed A"), createAgency(t, "Fixed B")
		m := createMember(t, a.ID, "quinn", agency.RoleMember)

		_, err := ownerPool.Exec(ctx, "UPDATE agencies SET slug = $2 WHERE id = $1", a.ID, "renamed-"+uniqueSuffix())
		require.Error(t, err)
		assert.True(t, pg.IsInvalidInputError(err), "got %v", err)

		_, err = ownerPool.Exec(ctx, "UPDATE members SET agency_id = $2 WHERE id = $1", m.ID, b.ID)
		require.Error(t, err)
		assert.True(t, pg.IsInvalidInputError(err), "got %v", err)
	})
}
