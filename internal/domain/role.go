package domain

import "fmt"

// Role is the closed set of user roles. A value outside the four constants can
// only be produced by bypassing ParseRole, and every permission check fails
// closed on it.
type Role string

const (
	RoleUser      Role = "USER"
	RoleManager   Role = "MANAGER"
	RoleAdmin     Role = "ADMIN"
	RoleDeveloper Role = "DEVELOPER"
)

// roleRank is the single source of truth for "is role A at least as privileged
// as role B". Higher rank wins.
var roleRank = map[Role]int{
	RoleUser:      1,
	RoleManager:   2,
	RoleAdmin:     3,
	RoleDeveloper: 4,
}

// AllRoles in ascending privilege order.
var AllRoles = []Role{RoleUser, RoleManager, RoleAdmin, RoleDeveloper}

// ParseRole validates a raw role string against the known set.
func ParseRole(s string) (Role, error) {
	r := Role(s)
	if !r.Valid() {
		return "", fmt.Errorf("unknown role %q", s)
	}
	return r, nil
}

// Valid reports whether the role is one of the four known roles.
func (r Role) Valid() bool {
	_, ok := roleRank[r]
	return ok
}

// HasPermission reports whether r is at least as privileged as required.
// Unknown roles on either side rank as zero, so the check fails closed.
func (r Role) HasPermission(required Role) bool {
	actual, ok := roleRank[r]
	if !ok {
		return false
	}
	req, ok := roleRank[required]
	if !ok {
		return false
	}
	return actual >= req
}

// CanManageData gates create/update/delete of records and CSV export.
func (r Role) CanManageData() bool {
	return r.HasPermission(RoleManager)
}

// CanViewLogs gates the activity-log and user-administration pages.
func (r Role) CanViewLogs() bool {
	return r.HasPermission(RoleAdmin)
}
