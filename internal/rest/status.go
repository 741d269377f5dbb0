package rest

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

type StatusHandler struct {
	appName string
	version string
}

func NewStatusHandler(appName, version string) *StatusHandler {
	return &StatusHandler{appName: appName, version: version}
}

func (h *StatusHandler) Root(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": h.appName,
		"version": h.version,
		"status":  "running",
	})
}
