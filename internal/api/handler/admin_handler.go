package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/launchdesk/portal/internal/core/domain"
	"github.com/launchdesk/portal/internal/core/ports"
)

// AdminHandler serves account management and the review dashboard.
type AdminHandler struct {
	admin ports.AdminService
	work  ports.WorkService
}

func NewAdminHandler(admin ports.AdminService, work ports.WorkService) *AdminHandler {
	return &AdminHandler{admin: admin, work: work}
}

// Overview returns the admin dashboard projection.
//
// @Summary      Admin overview
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  overviewResponse
// @Failure      401  {object}  errorResponse
// @Router       /v1/admin/overview [get]
func (h *AdminHandler) Overview(c echo.Context) error {
	overview, err := h.admin.Overview(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, overviewToUI(overview))
}

// ListUsers returns all profiles in the directory.
//
// @Summary      List users
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  profileResponse
// @Router       /v1/admin/users [get]
func (h *AdminHandler) ListUsers(c echo.Context) error {
	users, err := h.admin.ListUsers(c.Request().Context())
	if err != nil {
		return err
	}

	resp := make([]profileResponse, 0, len(users))
	for _, u := range users {
		resp = append(resp, profileToUI(u))
	}
	return c.JSON(http.StatusOK, resp)
}

// CreateUser creates an account with an operator-chosen role.
//
// @Summary      Create a user
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createUserRequest  true  "Account details"
// @Success      201   {object}  profileResponse
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /v1/admin/users [post]
func (h *AdminHandler) CreateUser(c echo.Context) error {
	var req createUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	profile, err := h.admin.CreateUser(c.Request().Context(), ports.CreateUserInput{
		Username:        req.Username,
		Email:           req.Email,
		Password:        req.Password,
		Role:            req.Role,
		AllowedSoftware: req.AllowedSoftware,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, profileToUI(profile))
}

// UpdateUser applies a partial update to any profile.
//
// @Summary      Update a user
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                true  "User id"
// @Param        body  body      updateProfileRequest  true  "Fields to update"
// @Success      200   {object}  profileResponse
// @Failure      404   {object}  errorResponse
// @Router       /v1/admin/users/{id} [patch]
func (h *AdminHandler) UpdateUser(c echo.Context) error {
	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	profile, err := h.admin.UpdateUser(c.Request().Context(), c.Param("id"), ports.ProfileUpdate{
		Username:       req.Username,
		ProfilePicture: req.ProfilePicture,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, profileToUI(profile))
}

// UpdateSoftware replaces a user's entitlement set.
//
// @Summary      Replace a user's software entitlements
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                 true  "User id"
// @Param        body  body      updateSoftwareRequest  true  "New entitlement set"
// @Success      200   {object}  profileResponse
// @Failure      404   {object}  errorResponse
// @Router       /v1/admin/users/{id}/software [put]
func (h *AdminHandler) UpdateSoftware(c echo.Context) error {
	var req updateSoftwareRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	profile, err := h.admin.UpdateAllowedSoftware(c.Request().Context(), c.Param("id"), req.AllowedSoftware)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, profileToUI(profile))
}

// DeleteUser removes an account and cascades over its work items.
//
// @Summary      Delete a user
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "User id"
// @Success      204
// @Failure      404  {object}  errorResponse
// @Router       /v1/admin/users/{id} [delete]
func (h *AdminHandler) DeleteUser(c echo.Context) error {
	if err := h.admin.DeleteUser(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// ListWorkItems returns the ledger, optionally filtered by user.
//
// @Summary      List work items
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        user_id  query    string  false  "Filter by owning user"
// @Param        status   query    string  false  "Filter by review status"
// @Success      200      {array}  workItemResponse
// @Router       /v1/admin/work-items [get]
func (h *AdminHandler) ListWorkItems(c echo.Context) error {
	filter := ports.WorkItemFilter{UserID: c.QueryParam("user_id")}
	if s := c.QueryParam("status"); s != "" {
		status := domain.WorkStatus(s)
		if !domain.ValidWorkStatus(status) {
			return echo.NewHTTPError(http.StatusBadRequest, "unknown status")
		}
		filter.Status = status
	}

	items, err := h.work.List(c.Request().Context(), filter)
	if err != nil {
		return err
	}

	resp := make([]workItemResponse, 0, len(items))
	for _, item := range items {
		resp = append(resp, workItemToUI(item))
	}
	return c.JSON(http.StatusOK, resp)
}

// AcceptWorkItem resolves a pending submission as accepted.
//
// @Summary      Accept a work item
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id  path      string  true  "Work item id"
// @Success      200  {object}  workItemResponse
// @Failure      404  {object}  errorResponse
// @Failure      422  {object}  errorResponse
// @Router       /v1/admin/work-items/{id}/accept [post]
func (h *AdminHandler) AcceptWorkItem(c echo.Context) error {
	item, err := h.work.Accept(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, workItemToUI(item))
}

// RejectWorkItem resolves a pending submission as rejected.
//
// @Summary      Reject a work item
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id  path      string  true  "Work item id"
// @Success      200  {object}  workItemResponse
// @Failure      404  {object}  errorResponse
// @Failure      422  {object}  errorResponse
// @Router       /v1/admin/work-items/{id}/reject [post]
func (h *AdminHandler) RejectWorkItem(c echo.Context) error {
	item, err := h.work.Reject(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, workItemToUI(item))
}
