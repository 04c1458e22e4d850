package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/launchdesk/portal/internal/core/ports"
)

// WorkHandler handles work submissions from users.
type WorkHandler struct {
	work ports.WorkService
}

func NewWorkHandler(work ports.WorkService) *WorkHandler {
	return &WorkHandler{work: work}
}

// Submit creates a pending work item for the current viewer.
//
// @Summary      Submit work
// @Tags         work
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        Idempotency-Key  header    string             false  "Idempotency key to prevent duplicate submissions"
// @Param        body             body      submitWorkRequest  true   "Submission"
// @Success      201              {object}  workItemResponse
// @Failure      400              {object}  errorResponse
// @Failure      401              {object}  errorResponse
// @Failure      403              {object}  errorResponse
// @Router       /v1/work-items [post]
func (h *WorkHandler) Submit(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req submitWorkRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	result, err := h.work.SaveWorkData(c.Request().Context(), ports.SubmitWorkInput{
		UserID:         userID,
		Software:       req.Software,
		Content:        req.Content,
		IdempotencyKey: c.Request().Header.Get("Idempotency-Key"),
	})
	if err != nil {
		return err
	}

	status := http.StatusCreated
	if result.AlreadyExisted {
		status = http.StatusOK
	}
	return c.JSON(status, workItemToUI(result.Item))
}

// ListMine returns the current viewer's own submissions.
//
// @Summary      List own work items
// @Tags         work
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   workItemResponse
// @Failure      401  {object}  errorResponse
// @Router       /v1/work-items [get]
func (h *WorkHandler) ListMine(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	items, err := h.work.List(c.Request().Context(), ports.WorkItemFilter{UserID: userID})
	if err != nil {
		return err
	}

	resp := make([]workItemResponse, 0, len(items))
	for _, item := range items {
		resp = append(resp, workItemToUI(item))
	}
	return c.JSON(http.StatusOK, resp)
}
