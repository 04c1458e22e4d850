// Package gate decides whether a viewer may proceed to a route. It is a pure
// function of (session, route requirement) and performs no I/O; callers act
// on the returned decision (render, redirect, or wait).
package gate

import "github.com/launchdesk/portal/internal/core/domain"

// Decision is the outcome of evaluating a session against a requirement.
type Decision int

const (
	// Indeterminate means the session is still loading; the caller renders a
	// neutral waiting state and performs no redirect.
	Indeterminate Decision = iota
	// Allow means the viewer may proceed.
	Allow
	// RedirectLogin means the viewer must authenticate first; the attempted
	// destination should be remembered for a post-login return.
	RedirectLogin
	// RedirectHome means the viewer is authenticated but this route is not
	// for them; send them to their own role's landing page.
	RedirectHome
)

// Session is the gate's view of "who is using the app right now".
type Session struct {
	Profile *domain.Profile
	Loading bool
}

// Requirement describes what a route demands of its viewer.
type Requirement struct {
	// PublicOnly marks routes like login/signup that authenticated viewers
	// must not re-see.
	PublicOnly bool
	// Roles is the set of roles allowed through. Empty with PublicOnly false
	// means any authenticated viewer.
	Roles []string
}

// Public returns the requirement for auth forms and similar public-only routes.
func Public() Requirement {
	return Requirement{PublicOnly: true}
}

// Authenticated returns the requirement for routes any logged-in viewer may use.
func Authenticated() Requirement {
	return Requirement{}
}

// RequireRoles returns the requirement for routes restricted to the given roles.
func RequireRoles(roles ...string) Requirement {
	return Requirement{Roles: roles}
}

// Decide evaluates the session against the requirement.
func Decide(s Session, req Requirement) Decision {
	if s.Loading {
		return Indeterminate
	}

	if req.PublicOnly {
		if s.Profile != nil {
			return RedirectHome
		}
		return Allow
	}

	if s.Profile == nil {
		return RedirectLogin
	}

	if len(req.Roles) == 0 {
		return Allow
	}
	for _, r := range req.Roles {
		if s.Profile.Role == r {
			return Allow
		}
	}
	return RedirectHome
}

// HomePath returns the default landing page for a role.
func HomePath(role string) string {
	if role == domain.RoleAdmin {
		return "/v1/admin/overview"
	}
	return "/v1/me"
}
