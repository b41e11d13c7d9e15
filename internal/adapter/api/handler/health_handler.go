package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

type HealthHandler struct {
	storageDriver  string
	authConfigured bool
}

func NewHealthHandler(storageDriver string, authConfigured bool) *HealthHandler {
	return &HealthHandler{
		storageDriver:  storageDriver,
		authConfigured: authConfigured,
	}
}

func (h *HealthHandler) CheckHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":         "Server is running",
		"time":           time.Now().Format(time.RFC3339),
		"storage":        h.storageDriver,
		"authConfigured": h.authConfigured,
	})
}
