package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPickRole_Precedence(t *testing.T) {
	cases := []struct {
		name  string
		roles []string
		want  Role
	}{
		{"owner beats admin", []string{"OWNER", "ADMIN"}, RoleOwner},
		{"admin beats member", []string{"MEMBER", "ADMIN"}, RoleAdmin},
		{"organiser beats member", []string{"member", "organiser"}, RoleOrganiser},
		{"single owner", []string{"OWNER"}, RoleOwner},
		{"empty set defaults to member", []string{}, RoleMember},
		{"nil set defaults to member", nil, RoleMember},
		{"unknown roles default to member", []string{"VIEWER", "BILLING"}, RoleMember},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, PickRole(tc.roles))
		})
	}
}

func TestPickRole_CaseInsensitive(t *testing.T) {
	assert.Equal(t, RoleOwner, PickRole([]string{"owner"}))
	assert.Equal(t, RoleAdmin, PickRole([]string{"Admin"}))
	assert.Equal(t, RoleOrganiser, PickRole([]string{"oRgAnIsEr"}))
}

func TestPickRole_OrganizerSpelling(t *testing.T) {
	// Both locale spellings map to the same role.
	assert.Equal(t, RoleOrganiser, PickRole([]string{"organizer"}))
	assert.Equal(t, RoleOrganiser, PickRole([]string{"ORGANIZER"}))
	assert.Equal(t, RoleOrganiser, PickRole([]string{"ORGANISER", "ORGANIZER"}))
}

func TestPickRole_TrimsWhitespace(t *testing.T) {
	assert.Equal(t, RoleAdmin, PickRole([]string{" admin "}))
}

func TestContext_States(t *testing.T) {
	assert.False(t, Unauthenticated().IsAuthenticated())
	assert.False(t, Expired(ExpiredAbsoluteTTL).IsAuthenticated())
	assert.Equal(t, ExpiredAbsoluteTTL, Expired(ExpiredAbsoluteTTL).Reason)

	m := &Member{InternalID: "m-1"}
	ctx := Authenticated(m)
	assert.True(t, ctx.IsAuthenticated())
	assert.Same(t, m, ctx.Member)
}
