package auth

import "strings"

// Role is the effective organisation role derived from a membership's role set.
// Keep string form for easy persistence and JSON responses.
type Role string

const (
	RoleOwner     Role = "owner"
	RoleAdmin     Role = "admin"
	RoleOrganiser Role = "organiser"
	RoleMember    Role = "member"
)

// rolePrecedence orders roles from strongest to weakest. PickRole returns the
// first one present in the set.
var rolePrecedence = []Role{RoleOwner, RoleAdmin, RoleOrganiser, RoleMember}

// PickRole derives the single effective role from a raw role set.
// Matching is case-insensitive, and the "organizer" spelling is normalized to
// "organiser" (both appear in stored data). An empty or nil set yields member.
func PickRole(roles []string) Role {
	present := make(map[Role]bool, len(roles))
	for _, r := range roles {
		switch strings.ToUpper(strings.TrimSpace(r)) {
		case "OWNER":
			present[RoleOwner] = true
		case "ADMIN":
			present[RoleAdmin] = true
		case "ORGANISER", "ORGANIZER":
			present[RoleOrganiser] = true
		}
	}
	for _, r := range rolePrecedence {
		if present[r] {
			return r
		}
	}
	return RoleMember
}
