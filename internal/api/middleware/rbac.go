package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/launchdesk/portal/internal/core/domain"
	"github.com/launchdesk/portal/internal/gate"
)

// RequireRoles enforces role-based access control on protected routes. A
// viewer whose role is outside the set is redirected to their own role's
// landing page rather than served a bare error.
func RequireRoles(allowedRoles ...string) echo.MiddlewareFunc {
	req := gate.RequireRoles(allowedRoles...)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get("role").(string)
			userID, _ := c.Get("user_id").(string)

			session := gate.Session{}
			if userID != "" {
				session.Profile = &domain.Profile{ID: userID, Role: role}
			}

			switch gate.Decide(session, req) {
			case gate.Allow:
				return next(c)
			case gate.RedirectLogin:
				return c.Redirect(http.StatusFound, "/v1/auth/login?next="+c.Request().URL.Path)
			case gate.RedirectHome:
				return c.Redirect(http.StatusFound, gate.HomePath(role))
			default:
				return echo.NewHTTPError(http.StatusServiceUnavailable, "session state indeterminate")
			}
		}
	}
}
