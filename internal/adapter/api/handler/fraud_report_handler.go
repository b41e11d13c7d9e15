package handler

import (
	"github.com/labstack/echo/v4"

	"freelancebid/internal/usecase"
	"freelancebid/pkg/response"
	"freelancebid/pkg/utils"
)

type FraudReportHandler struct {
	fraudReportUseCase *usecase.FraudReportUseCase
	defaultLimit       int
}

func NewFraudReportHandler(fraudReportUseCase *usecase.FraudReportUseCase, defaultLimit int) *FraudReportHandler {
	return &FraudReportHandler{
		fraudReportUseCase: fraudReportUseCase,
		defaultLimit:       defaultLimit,
	}
}

func (h *FraudReportHandler) ListReports(c echo.Context) error {
	pagination := utils.GetPaginationParams(c, h.defaultLimit)

	respondedOnly, err := usecase.ParseRespondedOnly(c.QueryParam("respondedOnly"))
	if err != nil {
		return response.Error(c, err)
	}
	from, err := usecase.ParseCalendarDate("from", c.QueryParam("from"))
	if err != nil {
		return response.Error(c, err)
	}
	to, err := usecase.ParseCalendarDate("to", c.QueryParam("to"))
	if err != nil {
		return response.Error(c, err)
	}

	page, err := h.fraudReportUseCase.ListReports(c.Request().Context(), usecase.ListReportsInput{
		Page:  pagination.Page,
		Limit: pagination.PageSize,
		Filter: usecase.ReportFilter{
			RespondedOnly: respondedOnly,
			From:          from,
			To:            to,
		},
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, page)
}

type respondReportRequest struct {
	ReportType      string `json:"reportType" validate:"required,oneof=project user"`
	ReportID        string `json:"reportId" validate:"required"`
	ResponseMessage string `json:"responseMessage" validate:"required,trimmedmin=10"`
}

func (h *FraudReportHandler) RespondReport(c echo.Context) error {
	var req respondReportRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	adminID := c.Get("uid").(string)

	result, err := h.fraudReportUseCase.Respond(c.Request().Context(), adminID, usecase.RespondInput{
		ReportType:      req.ReportType,
		ReportID:        req.ReportID,
		ResponseMessage: req.ResponseMessage,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, result)
}

func (h *FraudReportHandler) DeleteReport(c echo.Context) error {
	adminID := c.Get("uid").(string)

	err := h.fraudReportUseCase.DeleteReport(c.Request().Context(), adminID, usecase.DeleteReportInput{
		ReportType:   c.Param("type"),
		ReportedOnID: c.Param("reportedOnId"),
		ReportID:     c.Param("reportId"),
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.NoContent(c)
}
