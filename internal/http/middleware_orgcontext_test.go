package httpx

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	domainauth "github.com/rankedhq/ranked-api/internal/domain/auth"
	"github.com/rankedhq/ranked-api/internal/mocks"
	"github.com/rankedhq/ranked-api/internal/service"
)

const orgTestID = "3f1f8a52-6f86-4f0e-9f6d-0c2d7f6f9a11"

func newOrgResolverForTest(ctrl *gomock.Controller) (*service.OrgContextService, *mocks.MockMembershipStore, *mocks.MockOrganisationStore) {
	memberships := mocks.NewMockMembershipStore(ctrl)
	organisations := mocks.NewMockOrganisationStore(ctrl)
	resolver := service.NewOrgContextService(service.OrgContextServiceOptions{
		Memberships:   memberships,
		Organisations: organisations,
	})
	return resolver, memberships, organisations
}

// orgRequest runs one request through the OrgContext middleware as an
// authenticated caller and captures the attached scope.
func orgRequest(t *testing.T, resolver *service.OrgContextService, orgHeader string, authed bool) (*httptest.ResponseRecorder, *domainauth.OrgContext, bool) {
	t.Helper()
	var (
		got     *domainauth.OrgContext
		reached bool
	)
	handler := OrgContext(resolver, testLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = GetOrgContext(r.Context())
		reached = true
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	if orgHeader != "" {
		req.Header.Set(OrgHeaderName, orgHeader)
	}
	ctx := req.Context()
	if authed {
		ctx = SetAuthContext(ctx, domainauth.Authenticated(&domainauth.Member{InternalID: "mem-1"}))
	} else {
		ctx = SetAuthContext(ctx, domainauth.Unauthenticated())
	}
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req.WithContext(ctx))
	return w, got, reached
}

func TestOrgContextMiddleware_NoHeaderPassesThrough(t *testing.T) {
	ctrl := gomock.NewController(t)
	resolver, _, _ := newOrgResolverForTest(ctrl)

	w, oc, reached := orgRequest(t, resolver, "", true)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, reached)
	assert.Nil(t, oc)
}

func TestOrgContextMiddleware_AnonymousWithHeaderIsUnauthorized(t *testing.T) {
	ctrl := gomock.NewController(t)
	resolver, _, _ := newOrgResolverForTest(ctrl)

	w, _, reached := orgRequest(t, resolver, orgTestID, false)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.False(t, reached)
}

func TestOrgContextMiddleware_InvalidID(t *testing.T) {
	ctrl := gomock.NewController(t)
	resolver, _, _ := newOrgResolverForTest(ctrl)

	w, _, reached := orgRequest(t, resolver, "not-a-uuid", true)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, codeInvalidOrgID, decodeErrBody(t, w).Error)
	assert.False(t, reached)
}

func TestOrgContextMiddleware_NoMembershipIsForbidden(t *testing.T) {
	ctrl := gomock.NewController(t)
	resolver, memberships, _ := newOrgResolverForTest(ctrl)
	memberships.EXPECT().GetActive(gomock.Any(), "mem-1", orgTestID).Return(nil, nil)
	// No organisation lookup: non-members must not learn whether the org exists.

	w, _, reached := orgRequest(t, resolver, orgTestID, true)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, codeForbiddenOrg, decodeErrBody(t, w).Error)
	assert.False(t, reached)
}

func TestOrgContextMiddleware_MissingOrgIsNotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	resolver, memberships, organisations := newOrgResolverForTest(ctrl)
	memberships.EXPECT().GetActive(gomock.Any(), "mem-1", orgTestID).
		Return(&domainauth.Membership{OrganisationID: orgTestID, Roles: []string{"MEMBER"}}, nil)
	organisations.EXPECT().GetByID(gomock.Any(), orgTestID).Return(nil, nil)

	w, _, reached := orgRequest(t, resolver, orgTestID, true)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, codeOrgNotFound, decodeErrBody(t, w).Error)
	assert.False(t, reached)
}

func TestOrgContextMiddleware_AttachesScopeWithEffectiveRole(t *testing.T) {
	ctrl := gomock.NewController(t)
	resolver, memberships, organisations := newOrgResolverForTest(ctrl)
	memberships.EXPECT().GetActive(gomock.Any(), "mem-1", orgTestID).
		Return(&domainauth.Membership{OrganisationID: orgTestID, Roles: []string{"MEMBER", "ADMIN"}}, nil)
	organisations.EXPECT().GetByID(gomock.Any(), orgTestID).
		Return(&domainauth.Organisation{ID: orgTestID, Slug: "acme", Name: "Acme"}, nil)

	w, oc, reached := orgRequest(t, resolver, orgTestID, true)

	assert.Equal(t, http.StatusOK, w.Code)
	require.True(t, reached)
	require.NotNil(t, oc)
	assert.Equal(t, orgTestID, oc.Org.ID)
	assert.Equal(t, domainauth.RoleAdmin, oc.Role)
}

func TestRequireOrg_MissingScope(t *testing.T) {
	handler := RequireOrg(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run")
	}))

	req := httptest.NewRequest(http.MethodGet, "/org/events", nil)
	ctx := SetAuthContext(req.Context(), domainauth.Authenticated(&domainauth.Member{InternalID: "mem-1"}))
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req.WithContext(ctx))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, codeMissingOrgContext, decodeErrBody(t, w).Error)
}

func TestRequireOrg_Unauthenticated(t *testing.T) {
	handler := RequireOrg(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run")
	}))

	req := httptest.NewRequest(http.MethodGet, "/org/events", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req.WithContext(SetAuthContext(req.Context(), domainauth.Unauthenticated())))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireOrg_PassesWithScope(t *testing.T) {
	handler := RequireOrg(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/org/events", nil)
	ctx := SetAuthContext(req.Context(), domainauth.Authenticated(&domainauth.Member{InternalID: "mem-1"}))
	ctx = SetOrgContext(ctx, &domainauth.OrgContext{
		Org:  domainauth.Organisation{ID: orgTestID},
		Role: domainauth.RoleMember,
	})
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req.WithContext(ctx))

	assert.Equal(t, http.StatusOK, w.Code)
}
