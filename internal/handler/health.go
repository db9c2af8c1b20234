package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"absencehub/internal/i18n"
)

// Health answers /health; the API client probes it to find the server.
func Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":  "ok",
		"message": "Application is running",
	})
}

// GET /api/i18n/:lang
func (h *Handler) Translations(c echo.Context) error {
	lang := c.Param("lang")
	if !i18n.Supported(lang) {
		return fail(c, http.StatusNotFound, "unsupported language "+lang)
	}
	return ok(c, http.StatusOK, map[string]any{
		"language":     lang,
		"languages":    i18n.Languages(),
		"translations": i18n.Table(lang),
	})
}
