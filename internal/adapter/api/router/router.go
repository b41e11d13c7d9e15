package router

import (
	"freelancebid/internal/adapter/api/handler"
	"freelancebid/internal/adapter/api/middleware"
	"freelancebid/internal/infrastructure/ratelimit"

	"github.com/labstack/echo/v4"
)

func Setup(
	e *echo.Echo,
	handlers handler.Handlers,
	authMiddleware *middleware.AuthMiddleware,
	adminMiddleware *middleware.AdminMiddleware,
	limiter *ratelimit.RateLimiter,
) {
	SetupAdminRouter(e, handlers.FraudReport, authMiddleware, adminMiddleware, limiter)
	SetupComplaintRouter(e, handlers.Complaint, authMiddleware)
	SetupHealthRouter(e, handlers.Health)
}
