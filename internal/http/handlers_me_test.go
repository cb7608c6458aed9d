package httpx

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	domainauth "github.com/rankedhq/ranked-api/internal/domain/auth"
	"github.com/rankedhq/ranked-api/internal/ports"
	"github.com/rankedhq/ranked-api/internal/session"
)

// loginState mints a cookie and CSRF token pair the way a real login would
// leave them.
func loginState(t *testing.T, f *routerFixture) (*http.Cookie, string) {
	t.Helper()
	token, err := session.NewCSRFToken()
	require.NoError(t, err)
	cookie := authedSessionCookie(t, f.store, map[string]any{
		session.KeyMemberID:  testMember.InternalID,
		session.KeyIssuedAt:  time.Now().UnixMilli(),
		session.KeyCSRFToken: token,
	})
	return cookie, token
}

func TestMeRoutes_GetMe(t *testing.T) {
	f := newRouterFixture(t)
	cookie, _ := loginState(t, f)
	f.members.EXPECT().GetByID(gomock.Any(), testMember.InternalID).Return(testMember, nil)
	f.members.EXPECT().IsSuperAdmin(gomock.Any(), testMember.InternalID).Return(true, nil)
	f.memberships.EXPECT().ListActive(gomock.Any(), testMember.InternalID).Return([]ports.MembershipWithOrg{
		{
			Org:   domainauth.Organisation{ID: orgTestID, Slug: "acme", Name: "Acme"},
			Roles: []string{"OWNER", "MEMBER"},
		},
	}, nil)
	f.addresses.EXPECT().HasAny(gomock.Any(), testMember.InternalID).Return(true, nil)
	active := orgTestID
	f.preferences.EXPECT().GetActiveOrganisation(gomock.Any(), testMember.InternalID).Return(&active, nil)

	w := f.do(t, http.MethodGet, "/me", "", func(r *http.Request) {
		r.AddCookie(cookie)
	})

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "no-store", w.Header().Get("Cache-Control"))
	assert.Contains(t, w.Header().Values("Vary"), "Cookie")

	var body struct {
		User struct {
			ID          string `json:"id"`
			Email       string `json:"email"`
			Username    string `json:"username"`
			DisplayName string `json:"displayName"`
		} `json:"user"`
		IsSuperAdmin bool `json:"isSuperAdmin"`
		Memberships  []struct {
			Organisation struct {
				ID   string `json:"id"`
				Slug string `json:"slug"`
			} `json:"organisation"`
			Role string `json:"role"`
		} `json:"memberships"`
		HasAddresses         bool    `json:"hasAddresses"`
		ActiveOrganisationID *string `json:"activeOrganisationId"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, testMember.InternalID, body.User.ID)
	assert.True(t, body.IsSuperAdmin)
	require.Len(t, body.Memberships, 1)
	assert.Equal(t, "acme", body.Memberships[0].Organisation.Slug)
	assert.Equal(t, "owner", body.Memberships[0].Role)
	assert.True(t, body.HasAddresses)
	require.NotNil(t, body.ActiveOrganisationID)
	assert.Equal(t, orgTestID, *body.ActiveOrganisationID)
}

func TestMeRoutes_GetMeRequiresAuth(t *testing.T) {
	f := newRouterFixture(t)

	w := f.do(t, http.MethodGet, "/me", "")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, codeUnauthorized, decodeErrBody(t, w).Error)
}

func TestMeRoutes_SetActiveOrganisation(t *testing.T) {
	f := newRouterFixture(t)
	cookie, token := loginState(t, f)
	f.members.EXPECT().GetByID(gomock.Any(), testMember.InternalID).Return(testMember, nil)
	f.memberships.EXPECT().GetActive(gomock.Any(), testMember.InternalID, orgTestID).
		Return(&domainauth.Membership{OrganisationID: orgTestID, Roles: []string{"MEMBER"}}, nil)
	f.preferences.EXPECT().SetActiveOrganisation(gomock.Any(), testMember.InternalID, gomock.Any()).
		DoAndReturn(func(_ any, _ string, id *string) error {
			require.NotNil(t, id)
			assert.Equal(t, orgTestID, *id)
			return nil
		})

	w := f.do(t, http.MethodPost, "/me/active-organisation",
		`{"organisationId":"`+orgTestID+`"}`,
		func(r *http.Request) {
			r.AddCookie(cookie)
			r.Header.Set(CSRFHeaderName, token)
		})

	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
}

func TestMeRoutes_SetActiveOrganisationClears(t *testing.T) {
	f := newRouterFixture(t)
	cookie, token := loginState(t, f)
	f.members.EXPECT().GetByID(gomock.Any(), testMember.InternalID).Return(testMember, nil)
	f.preferences.EXPECT().SetActiveOrganisation(gomock.Any(), testMember.InternalID, gomock.Nil()).Return(nil)

	w := f.do(t, http.MethodPost, "/me/active-organisation",
		`{"organisationId":null}`,
		func(r *http.Request) {
			r.AddCookie(cookie)
			r.Header.Set(CSRFHeaderName, token)
		})

	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
}

func TestMeRoutes_SetActiveOrganisationRejectsNonMember(t *testing.T) {
	f := newRouterFixture(t)
	cookie, token := loginState(t, f)
	f.members.EXPECT().GetByID(gomock.Any(), testMember.InternalID).Return(testMember, nil)
	f.memberships.EXPECT().GetActive(gomock.Any(), testMember.InternalID, orgTestID).Return(nil, nil)

	w := f.do(t, http.MethodPost, "/me/active-organisation",
		`{"organisationId":"`+orgTestID+`"}`,
		func(r *http.Request) {
			r.AddCookie(cookie)
			r.Header.Set(CSRFHeaderName, token)
		})

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, codeForbiddenOrg, decodeErrBody(t, w).Error)
}

func TestMeRoutes_SetActiveOrganisationRejectsBadID(t *testing.T) {
	f := newRouterFixture(t)
	cookie, token := loginState(t, f)
	f.members.EXPECT().GetByID(gomock.Any(), testMember.InternalID).Return(testMember, nil)

	w := f.do(t, http.MethodPost, "/me/active-organisation",
		`{"organisationId":"nope"}`,
		func(r *http.Request) {
			r.AddCookie(cookie)
			r.Header.Set(CSRFHeaderName, token)
		})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, codeInvalidOrgID, decodeErrBody(t, w).Error)
}

func TestMeRoutes_SetActiveOrganisationEnforcesCSRF(t *testing.T) {
	f := newRouterFixture(t)
	cookie, _ := loginState(t, f)
	f.members.EXPECT().GetByID(gomock.Any(), testMember.InternalID).Return(testMember, nil)

	// No token header: the guard rejects before the handler runs.
	w := f.do(t, http.MethodPost, "/me/active-organisation",
		`{"organisationId":"`+orgTestID+`"}`,
		func(r *http.Request) {
			r.AddCookie(cookie)
		})

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, codeCSRF, decodeErrBody(t, w).Error)
}

func TestMeRoutes_ListAddresses(t *testing.T) {
	f := newRouterFixture(t)
	cookie, _ := loginState(t, f)
	f.members.EXPECT().GetByID(gomock.Any(), testMember.InternalID).Return(testMember, nil)
	label := "Home"
	f.addresses.EXPECT().ListByMember(gomock.Any(), testMember.InternalID).Return([]ports.MemberAddress{
		{
			ID:        "addr-1",
			MemberID:  testMember.InternalID,
			Label:     &label,
			Line1:     "1 Example Way",
			City:      "London",
			Country:   "GB",
			IsDefault: true,
		},
	}, nil)

	w := f.do(t, http.MethodGet, "/member-addresses", "", func(r *http.Request) {
		r.AddCookie(cookie)
	})

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var body struct {
		Addresses []map[string]any `json:"addresses"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Addresses, 1)
	assert.Equal(t, "1 Example Way", body.Addresses[0]["line1"])
}

func TestMeRoutes_ListAddressesEmpty(t *testing.T) {
	f := newRouterFixture(t)
	cookie, _ := loginState(t, f)
	f.members.EXPECT().GetByID(gomock.Any(), testMember.InternalID).Return(testMember, nil)
	f.addresses.EXPECT().ListByMember(gomock.Any(), testMember.InternalID).Return(nil, nil)

	w := f.do(t, http.MethodGet, "/member-addresses", "", func(r *http.Request) {
		r.AddCookie(cookie)
	})

	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Addresses []any `json:"addresses"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.NotNil(t, body.Addresses)
	assert.Empty(t, body.Addresses)
}
