// Package perm maps external chat identities to roles and permission sets.
// A Resolver is built once from configuration at startup and is immutable
// afterwards; there is no ambient global lookup.
package perm

// Chat roles.
const (
	RoleAdmin     = "admin"
	RolePowerUser = "power_user"
	RoleUser      = "user"
)

// Resolver resolves chat user ids to roles and permissions.
type Resolver struct {
	admins     map[int64]struct{}
	powerUsers map[int64]struct{}
	powerPerms map[string]struct{}
	userPerms  map[string]struct{}
}

// NewResolver builds a Resolver from static membership and permission lists.
func NewResolver(adminIDs, powerUserIDs []int64, powerUserPerms, userPerms []string) *Resolver {
	r := &Resolver{
		admins:     make(map[int64]struct{}, len(adminIDs)),
		powerUsers: make(map[int64]struct{}, len(powerUserIDs)),
		powerPerms: make(map[string]struct{}, len(powerUserPerms)),
		userPerms:  make(map[string]struct{}, len(userPerms)),
	}
	for _, id := range adminIDs {
		r.admins[id] = struct{}{}
	}
	for _, id := range powerUserIDs {
		r.powerUsers[id] = struct{}{}
	}
	for _, p := range powerUserPerms {
		r.powerPerms[p] = struct{}{}
	}
	for _, p := range userPerms {
		r.userPerms[p] = struct{}{}
	}
	return r
}

// RoleOf returns the role of a chat user id. Unknown ids are plain users.
func (r *Resolver) RoleOf(id int64) string {
	if _, ok := r.admins[id]; ok {
		return RoleAdmin
	}
	if _, ok := r.powerUsers[id]; ok {
		return RolePowerUser
	}
	return RoleUser
}

// Allowed reports whether the user holds the permission. Admins hold every
// permission.
func (r *Resolver) Allowed(id int64, permission string) bool {
	switch r.RoleOf(id) {
	case RoleAdmin:
		return true
	case RolePowerUser:
		_, ok := r.powerPerms[permission]
		return ok
	default:
		_, ok := r.userPerms[permission]
		return ok
	}
}
