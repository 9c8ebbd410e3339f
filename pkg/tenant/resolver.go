package tenant

import (
	"errors"
	"fmt"
	"net"
	"net/http"
	"regexp"
	"strings"
)

// MaxIdentifierLength matches the DNS label limit, which also bounds slugs.
const MaxIdentifierLength = 63

// Default query parameters read by QueryResolver.
const (
	SlugParam     = "tenantSlug"
	AgencyIDParam = "agencyId"
)

var labelRegex = regexp.MustCompile(`^[a-z0-9]([a-z0-9-]*[a-z0-9])?$`)

// Resolver extracts tenant identifier from HTTP requests.
type Resolver interface {
	// Resolve extracts the tenant identifier from the request.
	// Returns empty string if no tenant identifier is found.
	// Returns error if the extraction fails.
	Resolve(r *http.Request) (string, error)
}

// ResolverFunc is an adapter to allow the use of ordinary functions as Resolvers.
type ResolverFunc func(r *http.Request) (string, error)

// Resolve calls the function.
func (f ResolverFunc) Resolve(r *http.Request) (string, error) {
	return f(r)
}

// SubdomainResolver extracts the tenant slug from hosts of the form
// <slug>.<root-domain>[:port].
type SubdomainResolver struct {
	// RootDomain is the bare application domain, e.g. "bookings.example.com".
	// When empty, any host with at least three labels yields its first label.
	RootDomain string
}

// NewSubdomainResolver creates a new subdomain resolver.
func NewSubdomainResolver(rootDomain string) *SubdomainResolver {
	return &SubdomainResolver{RootDomain: normalizeHost(rootDomain)}
}

// Resolve returns the leftmost label of the host. The bare root domain,
// its www alias and hosts outside the root domain yield no identifier.
func (r *SubdomainResolver) Resolve(req *http.Request) (string, error) {
	host := normalizeHost(req.Host)
	if host == "" || net.ParseIP(host) != nil {
		return "", nil
	}

	var label string
	if r.RootDomain != "" {
		if host == r.RootDomain || host == "www."+r.RootDomain {
			return "", nil
		}
		prefix, ok := strings.CutSuffix(host, "."+r.RootDomain)
		if !ok {
			return "", nil
		}
		label, _, _ = strings.Cut(prefix, ".")
	} else {
		parts := strings.Split(host, ".")
		if len(parts) < 3 || parts[0] == "www" {
			return "", nil
		}
		label = parts[0]
	}

	if !validIdentifier(label) {
		return "", fmt.Errorf("%w: %q", ErrInvalidIdentifier, label)
	}
	return label, nil
}

// QueryResolver reads an explicit identifier from query parameters, for
// callers that cannot use host based routing.
type QueryResolver struct {
	Params []string
}

// NewQueryResolver creates a resolver over the given parameters, checked in
// order. Defaults to tenantSlug then agencyId.
func NewQueryResolver(params ...string) *QueryResolver {
	if len(params) == 0 {
		params = []string{SlugParam, AgencyIDParam}
	}
	return &QueryResolver{Params: params}
}

// Resolve returns the first non-empty parameter value.
func (r *QueryResolver) Resolve(req *http.Request) (string, error) {
	query := req.URL.Query()
	for _, p := range r.Params {
		if v := strings.TrimSpace(query.Get(p)); v != "" {
			if !validIdentifier(strings.ToLower(v)) {
				return "", fmt.Errorf("%w: parameter %s", ErrInvalidIdentifier, p)
			}
			return strings.ToLower(v), nil
		}
	}
	return "", nil
}

// HeaderResolver extracts tenant identifier from HTTP header.
type HeaderResolver struct {
	// HeaderName is the name of the header to read (e.g., "X-Tenant-ID")
	HeaderName string
}

// NewHeaderResolver creates a new header resolver.
func NewHeaderResolver(headerName string) *HeaderResolver {
	if headerName == "" {
		headerName = "X-Tenant-ID"
	}
	return &HeaderResolver{HeaderName: headerName}
}

// Resolve extracts tenant from the configured header.
func (r *HeaderResolver) Resolve(req *http.Request) (string, error) {
	value := strings.TrimSpace(req.Header.Get(r.HeaderName))
	if value == "" {
		return "", nil
	}
	if !validIdentifier(strings.ToLower(value)) {
		return "", fmt.Errorf("%w: header %s", ErrInvalidIdentifier, r.HeaderName)
	}
	return strings.ToLower(value), nil
}

// PathResolver extracts tenant identifier from URL path segment.
type PathResolver struct {
	// Position is the 1-based position in the path (e.g., 2 for /tenants/{id}/...)
	Position int
}

// NewPathResolver creates a new path resolver.
func NewPathResolver(position int) *PathResolver {
	return &PathResolver{Position: position}
}

// Resolve extracts tenant from the specified path position.
func (r *PathResolver) Resolve(req *http.Request) (string, error) {
	if r.Position < 1 {
		return "", errors.New("invalid path position")
	}

	path := strings.Trim(req.URL.Path, "/")
	if path == "" {
		return "", nil
	}

	parts := strings.Split(path, "/")
	if r.Position > len(parts) {
		return "", nil
	}

	value := strings.ToLower(parts[r.Position-1])
	if !validIdentifier(strings.ToLower(value)) {
		return "", fmt.Errorf("%w: path segment %d", ErrInvalidIdentifier, r.Position)
	}
	return value, nil
}

// CompositeResolver tries multiple resolvers in order until one succeeds.
type CompositeResolver struct {
	Resolvers []Resolver
}

// NewCompositeResolver creates a new composite resolver.
func NewCompositeResolver(resolvers ...Resolver) *CompositeResolver {
	return &CompositeResolver{Resolvers: resolvers}
}

// Resolve tries each resolver in order, returning the first non-empty result.
func (c *CompositeResolver) Resolve(r *http.Request) (string, error) {
	var errs []error

	for _, resolver := range c.Resolvers {
		id, err := resolver.Resolve(r)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if id != "" {
			return id, nil
		}
	}

	if len(errs) > 0 {
		return "", fmt.Errorf("composite resolver errors: %w", errors.Join(errs...))
	}

	return "", nil
}

func normalizeHost(host string) string {
	host = strings.TrimSpace(host)
	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}
	return strings.TrimSuffix(strings.ToLower(host), ".")
}

// validIdentifier accepts DNS-safe labels, which covers slugs and canonical uuids.
func validIdentifier(s string) bool {
	return len(s) <= MaxIdentifierLength && labelRegex.MatchString(s)
}
