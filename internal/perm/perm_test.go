package perm

import "testing"

func newTestResolver() *Resolver {
	return NewResolver(
		[]int64{1},
		[]int64{2},
		[]string{"search", "stats", "transfer", "sync"},
		[]string{"search"},
	)
}

func TestRoleOf(t *testing.T) {
	r := newTestResolver()

	if role := r.RoleOf(1); role != RoleAdmin {
		t.Errorf("expected admin, got %q", role)
	}
	if role := r.RoleOf(2); role != RolePowerUser {
		t.Errorf("expected power_user, got %q", role)
	}
	// Unknown ids resolve to plain users, never an error.
	if role := r.RoleOf(999); role != RoleUser {
		t.Errorf("expected user for unknown id, got %q", role)
	}
}

func TestAllowed(t *testing.T) {
	r := newTestResolver()

	// Admins hold every permission, even unlisted ones.
	if !r.Allowed(1, "sale") {
		t.Error("expected admin to hold any permission")
	}

	if !r.Allowed(2, "transfer") {
		t.Error("expected power user to hold 'transfer'")
	}
	if r.Allowed(2, "sale") {
		t.Error("expected power user to lack 'sale'")
	}

	if !r.Allowed(999, "search") {
		t.Error("expected plain user to hold 'search'")
	}
	if r.Allowed(999, "sync") {
		t.Error("expected plain user to lack 'sync'")
	}
}
