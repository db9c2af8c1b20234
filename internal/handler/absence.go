package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"absencehub/internal/calendar"
	"absencehub/internal/i18n"
	"absencehub/internal/repository"
	"absencehub/internal/service"
	"absencehub/internal/validation"
)

func absenceFilter(c echo.Context) repository.AbsenceFilter {
	return repository.AbsenceFilter{
		ServiceAccount:   strings.TrimSpace(c.QueryParam("service_account")),
		EmployeeFullname: strings.TrimSpace(c.QueryParam("employee_fullname")),
		AbsenceType:      strings.TrimSpace(c.QueryParam("absence_type")),
		Month:            strings.TrimSpace(c.QueryParam("month")),
		Year:             strings.TrimSpace(c.QueryParam("year")),
		StartDate:        strings.TrimSpace(c.QueryParam("start_date")),
		EndDate:          strings.TrimSpace(c.QueryParam("end_date")),
	}
}

// GET /api/absences?service_account=&employee_fullname=&absence_type=&month=&year=&start_date=&end_date=
func (h *Handler) ListAbsences(c echo.Context) error {
	absences, err := h.absences.List(c.Request().Context(), absenceFilter(c))
	if err != nil {
		return h.respondError(c, err)
	}
	return ok(c, http.StatusOK, absences)
}

// GET /api/absences/:id
func (h *Handler) GetAbsence(c echo.Context) error {
	id, valid := parseID(c)
	if !valid {
		return fail(c, http.StatusBadRequest, "invalid id")
	}
	absence, err := h.absences.Get(c.Request().Context(), id)
	if err != nil {
		return h.respondError(c, err)
	}
	return ok(c, http.StatusOK, absence)
}

// POST /api/absences
func (h *Handler) CreateAbsence(c echo.Context) error {
	var d validation.Draft
	if err := c.Bind(&d); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body")
	}
	d.ID = 0

	absence, err := h.absences.Create(c.Request().Context(), d)
	if err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(http.StatusCreated, Envelope{
		Success: true,
		Data:    absence,
		Meta:    map[string]string{"message": i18n.T(h.lang(c), "message.createdSuccess")},
	})
}

// PUT /api/absences/:id
func (h *Handler) UpdateAbsence(c echo.Context) error {
	id, valid := parseID(c)
	if !valid {
		return fail(c, http.StatusBadRequest, "invalid id")
	}
	var patch service.AbsencePatch
	if err := c.Bind(&patch); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body")
	}

	absence, err := h.absences.Update(c.Request().Context(), id, patch)
	if err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(http.StatusOK, Envelope{
		Success: true,
		Data:    absence,
		Meta:    map[string]string{"message": i18n.T(h.lang(c), "message.updatedSuccess")},
	})
}

// DELETE /api/absences/:id
func (h *Handler) DeleteAbsence(c echo.Context) error {
	id, valid := parseID(c)
	if !valid {
		return fail(c, http.StatusBadRequest, "invalid id")
	}
	absence, err := h.absences.Delete(c.Request().Context(), id)
	if err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(http.StatusOK, Envelope{
		Success: true,
		Data:    absence,
		Meta:    map[string]string{"message": i18n.T(h.lang(c), "message.deletedSuccess")},
	})
}

type validateResponse struct {
	Valid  bool             `json:"valid"`
	Draft  validation.Draft `json:"draft"`
	Fields map[string]Field `json:"fields"`
}

// POST /api/absences/validate checks a form without saving it. The
// reconciled draft is returned so clients can mirror half-day handling.
func (h *Handler) ValidateAbsence(c echo.Context) error {
	var d validation.Draft
	if err := c.Bind(&d); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body")
	}

	lang := h.lang(c)
	d = validation.ReconcileHalfDay(d)
	res := h.absences.Validate(c.Request().Context(), d)

	fields := make(map[string]Field, len(res))
	for name, ferr := range res {
		fields[name] = Field{Kind: string(ferr.Kind), Key: ferr.Key, Message: translate(lang, ferr.Key, ferr.Msg)}
	}
	return ok(c, http.StatusOK, validateResponse{Valid: res.Valid(), Draft: d, Fields: fields})
}

// GET /api/statistics accepts the same filters as the list.
func (h *Handler) Statistics(c echo.Context) error {
	stats, err := h.absences.Statistics(c.Request().Context(), absenceFilter(c))
	if err != nil {
		return h.respondError(c, err)
	}
	return ok(c, http.StatusOK, stats)
}

// GET /api/absences/export.ics
func (h *Handler) ExportICS(c echo.Context) error {
	absences, err := h.absences.List(c.Request().Context(), absenceFilter(c))
	if err != nil {
		return h.respondError(c, err)
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="absences.ics"`)
	return c.Blob(http.StatusOK, "text/calendar; charset=utf-8",
		[]byte(calendar.ExportICS(absences, h.lang(c), time.Now())))
}

// GET /api/calendar/:month
func (h *Handler) Calendar(c echo.Context) error {
	month := c.Param("month")
	filter := absenceFilter(c)
	filter.Month, filter.Year, filter.StartDate, filter.EndDate = month, "", "", ""

	if _, _, valid := repository.MonthBounds(month); !valid {
		return fail(c, http.StatusBadRequest, "month must be YYYY-MM")
	}

	absences, err := h.absences.List(c.Request().Context(), filter)
	if err != nil {
		return h.respondError(c, err)
	}
	grid, err := calendar.BuildMonth(month, absences, h.holidays)
	if err != nil {
		return fail(c, http.StatusBadRequest, err.Error())
	}
	return ok(c, http.StatusOK, grid)
}
