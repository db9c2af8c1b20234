package handler

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// NewServer builds the echo instance with middleware and every route.
func NewServer(h *Handler, corsOrigins []string) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(RequestContext())
	e.Use(RequestLogger())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:  corsOrigins,
		ExposeHeaders: []string{headerRequestID},
	}))

	RegisterRoutes(e, h)
	return e
}

// RegisterRoutes wires all HTTP routes.
func RegisterRoutes(e *echo.Echo, h *Handler) {
	e.GET("/health", Health)

	api := e.Group("/api")

	api.GET("/absences", h.ListAbsences)
	api.POST("/absences", h.CreateAbsence)
	api.GET("/absences/export.ics", h.ExportICS)
	api.POST("/absences/validate", h.ValidateAbsence)
	api.GET("/absences/:id", h.GetAbsence)
	api.PUT("/absences/:id", h.UpdateAbsence)
	api.DELETE("/absences/:id", h.DeleteAbsence)

	api.GET("/statistics", h.Statistics)
	api.GET("/calendar/:month", h.Calendar)

	api.GET("/absence-types", h.ListAbsenceTypes)
	api.POST("/absence-types", h.CreateAbsenceType)
	api.GET("/absence-types/:id", h.GetAbsenceType)
	api.PUT("/absence-types/:id", h.UpdateAbsenceType)
	api.DELETE("/absence-types/:id", h.DeleteAbsenceType)

	api.GET("/audit-logs", h.ListAuditLogs)
	api.DELETE("/audit-logs", h.DeleteAuditLogs)
	api.GET("/audit-logs/stats", h.AuditStats)
	api.GET("/audit-logs/:id", h.GetAuditLog)

	api.GET("/i18n/:lang", h.Translations)
}
