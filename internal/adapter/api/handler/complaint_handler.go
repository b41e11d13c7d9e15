package handler

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"freelancebid/internal/usecase"
	"freelancebid/pkg/response"
)

type ComplaintHandler struct {
	complaintUseCase *usecase.ComplaintUseCase
}

func NewComplaintHandler(complaintUseCase *usecase.ComplaintUseCase) *ComplaintHandler {
	return &ComplaintHandler{
		complaintUseCase: complaintUseCase,
	}
}

type fileComplaintRequest struct {
	Reason string `json:"reason" validate:"required,trimmedmin=5,max=1000"`
}

type fileComplaintResponse struct {
	ReportID string `json:"reportId"`
}

func (h *ComplaintHandler) ReportProject(c echo.Context) error {
	var req fileComplaintRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	userID := c.Get("uid").(string)

	reportID, err := h.complaintUseCase.ReportProject(c.Request().Context(), userID, c.Param("id"), req.Reason)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, fileComplaintResponse{ReportID: reportID})
}

func (h *ComplaintHandler) ReportUser(c echo.Context) error {
	var req fileComplaintRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	userID := c.Get("uid").(string)

	reportID, err := h.complaintUseCase.ReportUser(c.Request().Context(), userID, c.Param("id"), req.Reason)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, fileComplaintResponse{ReportID: reportID})
}

func (h *ComplaintHandler) ListNotifications(c echo.Context) error {
	userID := c.Get("uid").(string)
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	notifications, err := h.complaintUseCase.ListNotifications(c.Request().Context(), userID, limit)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]interface{}{
		"items": notifications,
	})
}
