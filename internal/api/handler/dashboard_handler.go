package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/launchdesk/portal/internal/gate"
)

// DashboardHandler sends an authenticated viewer to their role's landing page.
type DashboardHandler struct{}

func NewDashboardHandler() *DashboardHandler {
	return &DashboardHandler{}
}

// Landing redirects to the viewer's default landing page.
//
// @Summary      Role landing redirect
// @Tags         dashboard
// @Security     BearerAuth
// @Success      302
// @Failure      401  {object}  errorResponse
// @Router       /v1/dashboard [get]
func (h *DashboardHandler) Landing(c echo.Context) error {
	_, role, err := ctxClaims(c)
	if err != nil {
		return err
	}
	return c.Redirect(http.StatusFound, gate.HomePath(role))
}
