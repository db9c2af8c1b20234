package calendar

import (
	"fmt"
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/sirupsen/logrus"

	"absencehub/internal/i18n"
	"absencehub/internal/models"
	"absencehub/internal/validation"
)

const productID = "-//AbsenceHub//Absences//EN"

// ExportICS renders absences as all-day events. DTEND is exclusive, so it is
// the day after the last absent day. Records with unparseable dates are
// skipped.
func ExportICS(absences []models.Absence, lang string, now time.Time) string {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId(productID)
	cal.SetXWRCalName(i18n.T(lang, "app.title"))

	for i := range absences {
		a := &absences[i]
		start, err := validation.ParseDate(a.StartDate)
		if err != nil {
			logrus.WithField("id", a.ID).Warn("Skipping absence with invalid start date in export")
			continue
		}
		end, err := validation.ParseDate(a.EndDate)
		if err != nil || end.Before(start) {
			logrus.WithField("id", a.ID).Warn("Skipping absence with invalid end date in export")
			continue
		}

		event := cal.AddEvent(fmt.Sprintf("absence-%d@absencehub", a.ID))
		event.SetDtStampTime(now.UTC())
		if !a.UpdatedAt.IsZero() {
			event.SetModifiedAt(a.UpdatedAt.UTC())
		}
		event.SetAllDayStartAt(start)
		event.SetAllDayEndAt(end.AddDate(0, 0, 1))
		event.SetSummary(summary(a, lang))
		event.SetDescription(description(a, lang))
		event.SetProperty(ical.ComponentPropertyCategories, a.AbsenceType)
	}

	return cal.Serialize()
}

func summary(a *models.Absence, lang string) string {
	who := a.EmployeeFullname
	if who == "" {
		who = a.ServiceAccount
	}
	return fmt.Sprintf("%s: %s", who, TypeLabel(a.AbsenceType, lang))
}

// TypeLabel translates a built-in absence type and returns custom types as is.
func TypeLabel(absenceType, lang string) string {
	key := "absence." + absenceType
	if label := i18n.T(lang, key); label != key {
		return label
	}
	return absenceType
}

func description(a *models.Absence, lang string) string {
	days := a.CalculateDays()
	unit := i18n.T(lang, "list.days")
	if days == 1 {
		unit = i18n.T(lang, "list.day")
	}
	text := fmt.Sprintf("%s: %g %s", a.ServiceAccount, days, unit)
	if a.IsHalfDay {
		text += " (" + i18n.T(lang, "field.halfDay") + ")"
	}
	return text
}
