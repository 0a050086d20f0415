package roles

type Role string

const (
	RoleAdmin      Role = "admin"
	RoleHOD        Role = "hod"
	RoleClubLeader Role = "club_leader"
	RoleStudent    Role = "student"
	RoleAlumni     Role = "alumni"
	RoleFaculty    Role = "faculty"
)

// AdminRoles is the closed set of roles with elevated access. Membership
// is static; anything outside it classifies as a standard user.
var AdminRoles = []Role{RoleAdmin, RoleHOD, RoleClubLeader}

// UserRoles are the standard, non-administrative roles.
var UserRoles = []Role{RoleStudent, RoleAlumni, RoleFaculty}

var adminSet = func() map[Role]struct{} {
	m := make(map[Role]struct{}, len(AdminRoles))
	for _, r := range AdminRoles {
		m[r] = struct{}{}
	}
	return m
}()

// IsAdministrative reports whether role is in the fixed administrative
// set. Unknown and empty roles are non-administrative.
func IsAdministrative(role Role) bool {
	_, ok := adminSet[role]
	return ok
}

// Matches reports whether role equals required. Exact comparison, no
// trimming or case folding.
func Matches(role, required Role) bool {
	return role == required
}

// MatchesAny reports whether role is a member of required.
func MatchesAny(role Role, required []Role) bool {
	for _, r := range required {
		if role == r {
			return true
		}
	}
	return false
}

// Known reports whether role appears in either partition. Used to
// validate registration payloads, not by the guard.
func Known(role Role) bool {
	if IsAdministrative(role) {
		return true
	}
	for _, r := range UserRoles {
		if role == r {
			return true
		}
	}
	return false
}
