package router

import (
	"freelancebid/internal/adapter/api/handler"
	"freelancebid/internal/adapter/api/middleware"
	"freelancebid/internal/infrastructure/ratelimit"

	"github.com/labstack/echo/v4"
)

func SetupAdminRouter(
	e *echo.Echo,
	fraudReportHandler *handler.FraudReportHandler,
	authMiddleware *middleware.AuthMiddleware,
	adminMiddleware *middleware.AdminMiddleware,
	limiter *ratelimit.RateLimiter,
) {
	// Admin routes - require authentication and admin role
	admin := e.Group("/admin")
	if limiter != nil {
		admin.Use(middleware.RateLimit(limiter, ratelimit.ActionAdminRequest))
	}
	admin.Use(authMiddleware.Authenticate)
	admin.Use(adminMiddleware.AdminOnly)

	admin.GET("/fraud-reports", fraudReportHandler.ListReports)
	admin.POST("/respond-report", fraudReportHandler.RespondReport)
	admin.DELETE("/fraud-reports/:type/:reportedOnId/:reportId", fraudReportHandler.DeleteReport)
}
