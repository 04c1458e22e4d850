package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/launchdesk/portal/internal/core/ports"
)

// SSOHandler issues and resolves opaque launch tokens.
type SSOHandler struct {
	sso ports.SSOService
}

func NewSSOHandler(sso ports.SSOService) *SSOHandler {
	return &SSOHandler{sso: sso}
}

// Issue mints a launch token for software in the viewer's entitlement set.
//
// @Summary      Issue an SSO launch token
// @Tags         sso
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      issueSSOTokenRequest  true  "Software to launch"
// @Success      201   {object}  domain.SSOToken
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /v1/sso/tokens [post]
func (h *SSOHandler) Issue(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req issueSSOTokenRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	token, err := h.sso.Generate(c.Request().Context(), userID, req.Software)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, token)
}

// Resolve validates a token presented by a launched external tool.
//
// @Summary      Resolve an SSO launch token
// @Tags         sso
// @Produce      json
// @Param        token  path      string  true  "Token bytes"
// @Success      200    {object}  domain.SSOToken
// @Failure      404    {object}  errorResponse
// @Router       /v1/sso/tokens/{token} [get]
func (h *SSOHandler) Resolve(c echo.Context) error {
	record, err := h.sso.Validate(c.Request().Context(), c.Param("token"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, record)
}
