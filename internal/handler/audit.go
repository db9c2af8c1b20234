package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"absencehub/internal/repository"
)

type auditMeta struct {
	Total    int64 `json:"total"`
	Limit    int   `json:"limit"`
	Offset   int   `json:"offset"`
	Returned int   `json:"returned"`
}

// GET /api/audit-logs?action=&entity_id=&limit=&offset=
func (h *Handler) ListAuditLogs(c echo.Context) error {
	filter := repository.AuditFilter{
		Action: c.QueryParam("action"),
		Limit:  atoiOr(c.QueryParam("limit"), repository.DefaultAuditLimit),
		Offset: atoiOr(c.QueryParam("offset"), 0),
	}
	if filter.Limit <= 0 {
		filter.Limit = repository.DefaultAuditLimit
	}
	if filter.Limit > repository.MaxAuditLimit {
		filter.Limit = repository.MaxAuditLimit
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	if v, err := strconv.ParseUint(c.QueryParam("entity_id"), 10, 64); err == nil {
		id := uint(v)
		filter.EntityID = &id
	}

	logs, total, err := h.audit.List(c.Request().Context(), filter)
	if err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(http.StatusOK, Envelope{
		Success: true,
		Data:    logs,
		Meta:    auditMeta{Total: total, Limit: filter.Limit, Offset: filter.Offset, Returned: len(logs)},
	})
}

// GET /api/audit-logs/:id
func (h *Handler) GetAuditLog(c echo.Context) error {
	id, valid := parseID(c)
	if !valid {
		return fail(c, http.StatusBadRequest, "invalid id")
	}
	entry, err := h.audit.Get(c.Request().Context(), id)
	if err != nil {
		return h.respondError(c, err)
	}
	return ok(c, http.StatusOK, entry)
}

// GET /api/audit-logs/stats
func (h *Handler) AuditStats(c echo.Context) error {
	stats, err := h.audit.Stats(c.Request().Context())
	if err != nil {
		return h.respondError(c, err)
	}
	return ok(c, http.StatusOK, stats)
}

// DELETE /api/audit-logs?action=
func (h *Handler) DeleteAuditLogs(c echo.Context) error {
	n, err := h.audit.Delete(c.Request().Context(), c.QueryParam("action"))
	if err != nil {
		return h.respondError(c, err)
	}
	return ok(c, http.StatusOK, map[string]int64{"deleted_count": n})
}
