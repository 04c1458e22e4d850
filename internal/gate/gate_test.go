package gate

import (
	"testing"

	"github.com/launchdesk/portal/internal/core/domain"
)

func userSession(role string) Session {
	return Session{Profile: &domain.Profile{ID: "1", Role: role}}
}

func TestDecide_LoadingIsIndeterminate(t *testing.T) {
	reqs := []Requirement{Public(), Authenticated(), RequireRoles(domain.RoleAdmin)}
	for _, req := range reqs {
		if got := Decide(Session{Loading: true}, req); got != Indeterminate {
			t.Errorf("loading session: got %v, want Indeterminate", got)
		}
	}
}

func TestDecide_ProtectedWithoutIdentity(t *testing.T) {
	if got := Decide(Session{}, Authenticated()); got != RedirectLogin {
		t.Fatalf("got %v, want RedirectLogin", got)
	}
	if got := Decide(Session{}, RequireRoles(domain.RoleAdmin)); got != RedirectLogin {
		t.Fatalf("got %v, want RedirectLogin", got)
	}
}

// Every (role, required-role-set) combination: a session whose role is not in
// the requirement is always redirected, never allowed through.
func TestDecide_RoleMatrix(t *testing.T) {
	roles := []string{domain.RoleUser, domain.RoleAdmin}
	requirements := map[string]Requirement{
		"admin-only": RequireRoles(domain.RoleAdmin),
		"user-only":  RequireRoles(domain.RoleUser),
		"either":     RequireRoles(domain.RoleAdmin, domain.RoleUser),
	}

	for name, req := range requirements {
		for _, role := range roles {
			got := Decide(userSession(role), req)

			allowed := false
			for _, r := range req.Roles {
				if r == role {
					allowed = true
				}
			}
			if allowed && got != Allow {
				t.Errorf("%s with role %s: got %v, want Allow", name, role, got)
			}
			if !allowed && got != RedirectHome {
				t.Errorf("%s with role %s: got %v, want RedirectHome", name, role, got)
			}
		}
	}
}

func TestDecide_PublicOnly(t *testing.T) {
	if got := Decide(Session{}, Public()); got != Allow {
		t.Fatalf("anonymous on public route: got %v, want Allow", got)
	}
	if got := Decide(userSession(domain.RoleUser), Public()); got != RedirectHome {
		t.Fatalf("authenticated on public-only route: got %v, want RedirectHome", got)
	}
}

func TestDecide_AuthenticatedAnyRole(t *testing.T) {
	for _, role := range []string{domain.RoleUser, domain.RoleAdmin} {
		if got := Decide(userSession(role), Authenticated()); got != Allow {
			t.Errorf("role %s: got %v, want Allow", role, got)
		}
	}
}

func TestHomePath(t *testing.T) {
	if HomePath(domain.RoleAdmin) != "/v1/admin/overview" {
		t.Fatalf("unexpected admin home: %s", HomePath(domain.RoleAdmin))
	}
	if HomePath(domain.RoleUser) != "/v1/me" {
		t.Fatalf("unexpected user home: %s", HomePath(domain.RoleUser))
	}
}
