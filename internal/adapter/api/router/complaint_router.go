package router

import (
	"freelancebid/internal/adapter/api/handler"
	"freelancebid/internal/adapter/api/middleware"

	"github.com/labstack/echo/v4"
)

func SetupComplaintRouter(e *echo.Echo, complaintHandler *handler.ComplaintHandler, authMiddleware *middleware.AuthMiddleware) {
	e.POST("/projects/:id/report", complaintHandler.ReportProject, authMiddleware.Authenticate)
	e.POST("/users/:id/report", complaintHandler.ReportUser, authMiddleware.Authenticate)
	e.GET("/notifications", complaintHandler.ListNotifications, authMiddleware.Authenticate)
}
