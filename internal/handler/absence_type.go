package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"absencehub/internal/service"
)

// GET /api/absence-types?active_only=false
func (h *Handler) ListAbsenceTypes(c echo.Context) error {
	activeOnly := true
	if v, err := strconv.ParseBool(c.QueryParam("active_only")); err == nil {
		activeOnly = v
	}

	types, err := h.absenceTypes.List(c.Request().Context(), activeOnly)
	if err != nil {
		return h.respondError(c, err)
	}
	return ok(c, http.StatusOK, types)
}

// GET /api/absence-types/:id
func (h *Handler) GetAbsenceType(c echo.Context) error {
	id, valid := parseID(c)
	if !valid {
		return fail(c, http.StatusBadRequest, "invalid id")
	}
	t, err := h.absenceTypes.Get(c.Request().Context(), id)
	if err != nil {
		return h.respondError(c, err)
	}
	return ok(c, http.StatusOK, t)
}

// POST /api/absence-types
func (h *Handler) CreateAbsenceType(c echo.Context) error {
	var in service.AbsenceTypeInput
	if err := c.Bind(&in); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body")
	}
	t, err := h.absenceTypes.Create(c.Request().Context(), in)
	if err != nil {
		return h.respondError(c, err)
	}
	return ok(c, http.StatusCreated, t)
}

// PUT /api/absence-types/:id
func (h *Handler) UpdateAbsenceType(c echo.Context) error {
	id, valid := parseID(c)
	if !valid {
		return fail(c, http.StatusBadRequest, "invalid id")
	}
	var patch service.AbsenceTypePatch
	if err := c.Bind(&patch); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body")
	}
	t, err := h.absenceTypes.Update(c.Request().Context(), id, patch)
	if err != nil {
		return h.respondError(c, err)
	}
	return ok(c, http.StatusOK, t)
}

// DELETE /api/absence-types/:id deactivates the type; ?hard=true removes it.
func (h *Handler) DeleteAbsenceType(c echo.Context) error {
	id, valid := parseID(c)
	if !valid {
		return fail(c, http.StatusBadRequest, "invalid id")
	}

	ctx := c.Request().Context()
	hard, _ := strconv.ParseBool(c.QueryParam("hard"))
	var err error
	if hard {
		_, err = h.absenceTypes.HardDelete(ctx, id)
	} else {
		_, err = h.absenceTypes.Deactivate(ctx, id)
	}
	if err != nil {
		return h.respondError(c, err)
	}
	return ok(c, http.StatusOK, map[string]any{"id": id, "deleted": hard, "deactivated": !hard})
}
