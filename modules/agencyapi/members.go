package agencyapi

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/dmitrymomot/tenantcore/handler"
	"github.com/dmitrymomot/tenantcore/pkg/agency"
)

type listMembersRequest struct {
	Email string `query:"email"`
}

// listMembers returns the tenant's members. With ?email= it looks up a
// single member instead and answers with a one-element list.
func (a *api) listMembers(ctx Context, req listMembersRequest) handler.Response {
	if email := strings.TrimSpace(req.Email); email != "" {
		m, err := a.store.GetMemberByEmail(ctx, ctx.TenantID(), email)
		if err != nil {
			return handler.Fail(err)
		}
		return handler.JSON([]agency.Member{m}, handler.WithJSONMeta(map[string]any{"count": 1}))
	}

	members, err := a.store.ListMembers(ctx, ctx.TenantID())
	if err != nil {
		return handler.Fail(err)
	}
	if members == nil {
		members = []agency.Member{}
	}
	return handler.JSON(members, handler.WithJSONMeta(map[string]any{"count": len(members)}))
}

type memberPathRequest struct {
	ID uuid.UUID `path:"id"`
}

func (a *api) getMember(ctx Context, req memberPathRequest) handler.Response {
	m, err := a.store.GetMember(ctx, ctx.TenantID(), req.ID)
	if err != nil {
		return handler.Fail(err)
	}
	return handler.JSON(m)
}

type createMemberRequest struct {
	ID        uuid.UUID   `json:"id"`
	Email     string      `json:"email"`
	FirstName string      `json:"first_name"`
	LastName  string      `json:"last_name"`
	Role      agency.Role `json:"role"`
}

func (a *api) createMember(ctx Context, req createMemberRequest) handler.Response {
	id, err := a.store.CreateMember(ctx, ctx.TenantID(), agency.NewMember{
		ID:        req.ID,
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Role:      req.Role,
	})
	if err != nil {
		return handler.Fail(err)
	}
	return handler.JSON(map[string]uuid.UUID{"id": id}, handler.WithJSONStatus(http.StatusCreated))
}

type updateMemberRequest struct {
	ID        uuid.UUID    `path:"id" json:"-"`
	Email     *string      `json:"email"`
	FirstName *string      `json:"first_name"`
	LastName  *string      `json:"last_name"`
	Role      *agency.Role `json:"role"`
}

func (a *api) updateMember(ctx Context, req updateMemberRequest) handler.Response {
	m, err := a.store.UpdateMember(ctx, ctx.TenantID(), req.ID, agency.MemberUpdate{
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Role:      req.Role,
	})
	if err != nil {
		return handler.Fail(err)
	}
	return handler.JSON(m)
}

func (a *api) removeMember(ctx Context, req memberPathRequest) handler.Response {
	if err := a.store.RemoveMember(ctx, ctx.TenantID(), req.ID); err != nil {
		return handler.Fail(err)
	}
	return handler.Empty()
}

func (a *api) getProfile(ctx Context, _ struct{}) handler.Response {
	p, err := a.store.GetProfile(ctx, ctx.TenantID())
	if err != nil {
		return handler.Fail(err)
	}
	return handler.JSON(p)
}
