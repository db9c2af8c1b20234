package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"absencehub/internal/i18n"
	"absencehub/internal/overlap"
	"absencehub/internal/service"
	"absencehub/pkg/holidays"
)

// Envelope is the body of every JSON response.
type Envelope struct {
	Success  bool              `json:"success"`
	Data     any               `json:"data,omitempty"`
	Error    string            `json:"error,omitempty"`
	Fields   map[string]Field  `json:"fields,omitempty"`
	Conflict *overlap.Conflict `json:"conflict,omitempty"`
	Meta     any               `json:"meta,omitempty"`
}

// Field describes one rejected input field.
type Field struct {
	Kind    string `json:"kind"`
	Key     string `json:"key"`
	Message string `json:"message"`
}

type Handler struct {
	absences     *service.AbsenceService
	absenceTypes *service.AbsenceTypeService
	audit        *service.AuditService
	holidays     holidays.Set
	defaultLang  string
}

func NewHandler(
	absences *service.AbsenceService,
	absenceTypes *service.AbsenceTypeService,
	audit *service.AuditService,
	hol holidays.Set,
	defaultLang string,
) *Handler {
	return &Handler{
		absences:     absences,
		absenceTypes: absenceTypes,
		audit:        audit,
		holidays:     hol,
		defaultLang:  defaultLang,
	}
}

func ok(c echo.Context, status int, data any) error {
	return c.JSON(status, Envelope{Success: true, Data: data})
}

func fail(c echo.Context, status int, msg string) error {
	return c.JSON(status, Envelope{Success: false, Error: msg})
}

// lang picks the response language from ?lang= or Accept-Language.
func (h *Handler) lang(c echo.Context) string {
	return i18n.Negotiate(c.QueryParam("lang"), c.Request().Header.Get("Accept-Language"), h.defaultLang)
}

// respondError maps service errors onto status codes.
func (h *Handler) respondError(c echo.Context, err error) error {
	lang := h.lang(c)

	var verr *service.ValidationError
	if errors.As(err, &verr) {
		fields := make(map[string]Field, len(verr.Fields))
		for name, ferr := range verr.Fields {
			fields[name] = Field{Kind: string(ferr.Kind), Key: ferr.Key, Message: translate(lang, ferr.Key, ferr.Msg)}
		}
		return c.JSON(http.StatusBadRequest, Envelope{Success: false, Error: verr.Error(), Fields: fields})
	}

	var conflict *overlap.Conflict
	if errors.As(err, &conflict) {
		return c.JSON(http.StatusConflict, Envelope{Success: false, Error: conflict.Signal(), Conflict: conflict})
	}

	switch {
	case errors.Is(err, service.ErrNotFound):
		return fail(c, http.StatusNotFound, i18n.T(lang, "error.notFound"))
	case errors.Is(err, service.ErrInUse):
		return fail(c, http.StatusConflict, err.Error())
	}

	logrus.WithError(err).WithField("request_id", requestID(c)).Error("Request failed")
	return fail(c, http.StatusInternalServerError, i18n.T(lang, "error.generic"))
}

// translate returns the localized text for key, or fallback when the key is
// not in the tables.
func translate(lang, key, fallback string) string {
	if text := i18n.T(lang, key); text != key {
		return text
	}
	return fallback
}

func parseID(c echo.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// atoiOr converts s or returns def.
func atoiOr(s string, def int) int {
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}
