package tenant_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/tenantcore/pkg/tenant"
)

func requestWithHost(host string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Host = host
	return req
}

func TestSubdomainResolver(t *testing.T) {
	t.Parallel()

	resolver := tenant.NewSubdomainResolver("Bookings.Example.com")

	tests := []struct {
		name string
		host string
		want string
	}{
		{"slug under root", "acme.bookings.example.com", "acme"},
		{"slug with port", "acme.bookings.example.com:8080", "acme"},
		{"mixed case host", "ACME.Bookings.Example.COM", "acme"},
		{"trailing dot", "acme.bookings.example.com.", "acme"},
		{"leftmost label of nested host", "eu.acme.bookings.example.com", "eu"},
		{"bare root", "bookings.example.com", ""},
		{"bare root with port", "bookings.example.com:443", ""},
		{"www alias", "www.bookings.example.com", ""},
		{"foreign host", "acme.other.com", ""},
		{"ip address", "10.0.0.1:8080", ""},
		{"empty host", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := resolver.Resolve(requestWithHost(tt.host))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("rejects labels that are not dns safe", func(t *testing.T) {
		t.Parallel()
		for _, host := range []string{
			"-acme.bookings.example.com",
			"acme-.bookings.example.com",
			"ac_me.bookings.example.com",
		} {
			_, err := resolver.Resolve(requestWithHost(host))
			assert.ErrorIs(t, err, tenant.ErrInvalidIdentifier, host)
		}
	})

	t.Run("without root domain needs three labels", func(t *testing.T) {
		t.Parallel()
		r := tenant.NewSubdomainResolver("")

		got, err := r.Resolve(requestWithHost("acme.example.com"))
		require.NoError(t, err)
		assert.Equal(t, "acme", got)

		got, err = r.Resolve(requestWithHost("example.com"))
		require.NoError(t, err)
		assert.Empty(t, got)

		got, err = r.Resolve(requestWithHost("www.example.com"))
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}

func TestQueryResolver(t *testing.T) {
	t.Parallel()

	resolver := tenant.NewQueryResolver()

	t.Run("tenant slug", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodGet, "/api/book?tenantSlug=Acme", nil)
		got, err := resolver.Resolve(req)
		require.NoError(t, err)
		assert.Equal(t, "acme", got)
	})

	t.Run("agency id", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodGet, "/api/book?agencyId=3F1C7A52-8F43-4A4E-9A55-1F5D0C2B7E10", nil)
		got, err := resolver.Resolve(req)
		require.NoError(t, err)
		assert.Equal(t, "3f1c7a52-8f43-4a4e-9a55-1f5d0c2b7e10", got)
	})

	t.Run("slug wins over id", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodGet, "/?agencyId=3f1c7a52-8f43-4a4e-9a55-1f5d0c2b7e10&tenantSlug=beta", nil)
		got, err := resolver.Resolve(req)
		require.NoError(t, err)
		assert.Equal(t, "beta", got)
	})

	t.Run("absent", func(t *testing.T) {
		t.Parallel()
		got, err := resolver.Resolve(httptest.NewRequest(http.MethodGet, "/?tenantSlug=", nil))
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("invalid", func(t *testing.T) {
		t.Parallel()
		_, err := resolver.Resolve(httptest.NewRequest(http.MethodGet, "/?tenantSlug=acme%27%3B--", nil))
		assert.ErrorIs(t, err, tenant.ErrInvalidIdentifier)
	})
}

func TestHeaderResolver(t *testing.T) {
	t.Parallel()

	resolver := tenant.NewHeaderResolver("")

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Tenant-ID", " acme ")
	got, err := resolver.Resolve(req)
	require.NoError(t, err)
	assert.Equal(t, "acme", got)

	req.Header.Set("X-Tenant-ID", "a b")
	_, err = resolver.Resolve(req)
	assert.ErrorIs(t, err, tenant.ErrInvalidIdentifier)
}

func TestPathResolver(t *testing.T) {
	t.Parallel()

	resolver := tenant.NewPathResolver(2)

	got, err := resolver.Resolve(httptest.NewRequest(http.MethodGet, "/t/acme/members", nil))
	require.NoError(t, err)
	assert.Equal(t, "acme", got)

	got, err = resolver.Resolve(httptest.NewRequest(http.MethodGet, "/t", nil))
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = tenant.NewPathResolver(0).Resolve(httptest.NewRequest(http.MethodGet, "/t/acme", nil))
	assert.Error(t, err)
}

func TestCompositeResolver(t *testing.T) {
	t.Parallel()

	resolver := tenant.NewCompositeResolver(
		tenant.NewSubdomainResolver("bookings.example.com"),
		tenant.NewQueryResolver(),
	)

	t.Run("host first", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodGet, "/?tenantSlug=beta", nil)
		req.Host = "acme.bookings.example.com"
		got, err := resolver.Resolve(req)
		require.NoError(t, err)
		assert.Equal(t, "acme", got)
	})

	t.Run("parameter on root domain", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodGet, "/?tenantSlug=beta", nil)
		req.Host = "bookings.example.com"
		got, err := resolver.Resolve(req)
		require.NoError(t, err)
		assert.Equal(t, "beta", got)
	})

	t.Run("errors surface when nothing resolves", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Host = "bad_label.bookings.example.com"
		_, err := resolver.Resolve(req)
		assert.ErrorIs(t, err, tenant.ErrInvalidIdentifier)
	})

	t.Run("resolver func", func(t *testing.T) {
		t.Parallel()
		r := tenant.NewCompositeResolver(tenant.ResolverFunc(func(*http.Request) (string, error) {
			return "fixed", nil
		}))
		got, err := r.Resolve(httptest.NewRequest(http.MethodGet, "/", nil))
		require.NoError(t, err)
		assert.Equal(t, "fixed", got)
	})
}
