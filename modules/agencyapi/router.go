package agencyapi

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/dmitrymomot/tenantcore/handler"
	"github.com/dmitrymomot/tenantcore/pkg/agency"
	"github.com/dmitrymomot/tenantcore/pkg/binder"
)

// ActingMemberHeader carries the id of the authenticated member, set by the
// auth gateway in front of the service.
const ActingMemberHeader = "X-Member-ID"

type options struct {
	log          *slog.Logger
	memberHeader string
}

// Option configures the router.
type Option func(*options)

// WithLogger sets the logger used for request errors.
func WithLogger(log *slog.Logger) Option {
	return func(o *options) {
		if log != nil {
			o.log = log
		}
	}
}

// WithActingMemberHeader overrides ActingMemberHeader.
func WithActingMemberHeader(name string) Option {
	return func(o *options) {
		if name != "" {
			o.memberHeader = name
		}
	}
}

type api struct {
	store  agency.Store
	errors handler.ErrorHandler[Context]
}

// Router exposes the tenant-scoped member and profile operations. It must
// be mounted behind tenant.Middleware; every handler reads the tenant from
// the request context and never from the request itself.
//
//	r.With(tenant.Middleware(resolver, directory), tenant.RequireTenant(onboarding)).
//		Mount("/", agencyapi.Router(service, agencyapi.WithLogger(log)))
func Router(store agency.Store, opts ...Option) chi.Router {
	o := options{log: slog.Default(), memberHeader: ActingMemberHeader}
	for _, opt := range opts {
		opt(&o)
	}

	base := handler.NewErrorHandler(o.log, classify)
	a := &api{
		store:  store,
		errors: func(ctx Context, err error) { base(ctx, err) },
	}

	r := chi.NewRouter()
	r.Use(actingMember(o.memberHeader, base))

	r.Get("/profile", route(a, a.getProfile))
	r.Route("/members", func(r chi.Router) {
		r.Get("/", route(a, a.listMembers, binder.Query()))
		r.Post("/", route(a, a.createMember, binder.JSON()))
		r.Get("/{id}", route(a, a.getMember, binder.Path(chi.URLParam)))
		r.Patch("/{id}", route(a, a.updateMember, binder.Path(chi.URLParam), binder.JSON()))
		r.Delete("/{id}", route(a, a.removeMember, binder.Path(chi.URLParam)))
	})
	return r
}

func route[R any](a *api, h handler.HandlerFunc[Context, R], binders ...handler.Bind) http.HandlerFunc {
	return handler.Wrap(h,
		handler.WithContextFactory[Context, R](newContext),
		handler.WithErrorHandler[Context, R](a.errors),
		handler.WithDecorators(requireTenant[R]()),
		handler.WithBinders[Context, R](binders...),
	)
}

// actingMember copies the acting member id from the header into the context.
// A present but malformed header is rejected rather than ignored.
func actingMember(header string, errs handler.ErrorHandler[handler.Context]) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := r.Header.Get(header)
			if raw == "" {
				next.ServeHTTP(w, r)
				return
			}
			id, err := uuid.Parse(raw)
			if err != nil || id == uuid.Nil {
				errs(handler.NewContext(w, r), ErrInvalidActingMember)
				return
			}
			next.ServeHTTP(w, r.WithContext(agency.WithActingMember(r.Context(), id)))
		})
	}
}
