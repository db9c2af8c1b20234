// Package i18n is a static key-value lookup for the English and German texts
// the API hands back to clients.
package i18n

import (
	"sort"
	"strconv"
	"strings"
)

const (
	English = "en"
	German  = "de"
)

var translations = map[string]map[string]string{
	English: {
		"app.title":    "AbsenceHub",
		"app.subtitle": "Employee Absence Management System",

		"field.serviceAccount":   "Service Account",
		"field.employeeFullname": "Employee Name",
		"field.absenceType":      "Absence Type",
		"field.startDate":        "Start Date",
		"field.endDate":          "End Date",
		"field.halfDay":          "Half day",

		"absence.Urlaub":      "Vacation",
		"absence.Krankheit":   "Sick Leave",
		"absence.Home Office": "Home Office",
		"absence.Sonstige":    "Other",

		"list.day":  "day",
		"list.days": "days",

		"message.createdSuccess": "Absence created successfully",
		"message.updatedSuccess": "Absence updated successfully",
		"message.deletedSuccess": "Absence deleted successfully",

		"error.required":                "This field is required",
		"error.serviceAccountRequired":  "Service account is required",
		"error.serviceAccountFormat":    "Service account must start with 's.'",
		"error.serviceAccountStructure": "Service account must follow format: s.firstname.lastname",
		"error.absenceTypeRequired":     "Absence type is required",
		"error.absenceTypeInvalid":      "Invalid absence type",
		"error.startDateRequired":       "Start date is required",
		"error.endDateRequired":         "End date is required",
		"error.dateRangeInvalid":        "End date cannot be before start date",
		"error.dateFormatInvalid":       "Invalid date format",
		"error.fullnameTooLong":         "Employee fullname must be less than 200 characters",
		"error.serviceAccountImmutable": "Service account cannot be changed",
		"error.generic":                 "Something went wrong. Please try again.",
		"error.notFound":                "Resource not found",
		"error.absenceTypeExists":       "An absence type with this name already exists",
		"error.absenceTypeInUse":        "Absence type is still in use",
		"error.colorFormat":             "Color must be in hex format (#RRGGBB)",
		"error.absenceTypeNameFormat":   "Absence type name must not contain '|'",
		"error.auditActionInvalid":      "Action must be CREATE, UPDATE or DELETE",
		"error.overlapError":            "This absence overlaps with an existing absence",
		"error.overlapTitle":            "Date Overlap Detected",
		"error.overlapMessage":          "The selected date range overlaps with an existing absence.",
		"error.existingAbsence":         "Existing absence",
		"error.yourDates":               "Your dates",

		"audit.action.create": "Created",
		"audit.action.update": "Updated",
		"audit.action.delete": "Deleted",

		"stats.totalAbsences":   "Total Absences",
		"stats.uniqueEmployees": "Unique Employees",
		"stats.byType":          "Absences by Type",

		"notify.created": "New absence: %s (%s) %s – %s",
		"notify.updated": "Absence changed: %s (%s) %s – %s",
		"notify.deleted": "Absence removed: %s (%s) %s – %s",

		"bot.help": "Available commands:\n" +
			"/today - who is absent today\n" +
			"/month YYYY-MM - absences in a month\n" +
			"/who s.firstname.lastname - upcoming absences of one employee\n" +
			"/stats [YYYY-MM] - absence days, optionally for one month",
		"bot.unknownCommand": "Unknown command. Use /help to see the available commands.",
		"bot.absentOn":       "Absent on %s:\n%s",
		"bot.nobodyAbsent":   "Nobody is absent on %s.",
		"bot.absencesIn":     "Absences in %s:\n%s",
		"bot.noAbsencesIn":   "No absences in %s.",
		"bot.noUpcoming":     "No upcoming absences for %s.",
		"bot.usageMonth":     "Usage: /month YYYY-MM",
		"bot.usageWho":       "Usage: /who s.firstname.lastname",
		"bot.usageStats":     "Usage: /stats [YYYY-MM]",
		"bot.stats":          "Total days: %g\nEmployees: %d",
	},
	German: {
		"app.title":    "AbsenceHub",
		"app.subtitle": "Verwaltungssystem für Mitarbeiterabwesenheiten",

		"field.serviceAccount":   "Service-Konto",
		"field.employeeFullname": "Name des Mitarbeiters",
		"field.absenceType":      "Abwesenheitstyp",
		"field.startDate":        "Startdatum",
		"field.endDate":          "Enddatum",
		"field.halfDay":          "Halber Tag",

		"absence.Urlaub":      "Urlaub",
		"absence.Krankheit":   "Krankheit",
		"absence.Home Office": "Home Office",
		"absence.Sonstige":    "Sonstige",

		"list.day":  "Tag",
		"list.days": "Tage",

		"message.createdSuccess": "Abwesenheit erfolgreich erstellt",
		"message.updatedSuccess": "Abwesenheit erfolgreich aktualisiert",
		"message.deletedSuccess": "Abwesenheit erfolgreich gelöscht",

		"error.required":                "Dieses Feld ist erforderlich",
		"error.serviceAccountRequired":  "Service-Konto erforderlich",
		"error.serviceAccountFormat":    "Service-Konto muss mit 's.' beginnen",
		"error.serviceAccountStructure": "Service-Konto muss dem Format entsprechen: s.vorname.nachname",
		"error.absenceTypeRequired":     "Abwesenheitstyp erforderlich",
		"error.absenceTypeInvalid":      "Ungültiger Abwesenheitstyp",
		"error.startDateRequired":       "Startdatum erforderlich",
		"error.endDateRequired":         "Enddatum erforderlich",
		"error.dateRangeInvalid":        "Enddatum kann nicht vor dem Startdatum liegen",
		"error.dateFormatInvalid":       "Ungültiges Datumsformat",
		"error.fullnameTooLong":         "Der Name darf höchstens 200 Zeichen lang sein",
		"error.serviceAccountImmutable": "Das Service-Konto kann nicht geändert werden",
		"error.generic":                 "Etwas ist schiefgelaufen. Bitte versuchen Sie es erneut.",
		"error.notFound":                "Eintrag nicht gefunden",
		"error.absenceTypeExists":       "Ein Abwesenheitstyp mit diesem Namen existiert bereits",
		"error.absenceTypeInUse":        "Der Abwesenheitstyp wird noch verwendet",
		"error.colorFormat":             "Die Farbe muss im Hex-Format (#RRGGBB) angegeben werden",
		"error.absenceTypeNameFormat":   "Der Name des Abwesenheitstyps darf kein '|' enthalten",
		"error.auditActionInvalid":      "Aktion muss CREATE, UPDATE oder DELETE sein",
		"error.overlapError":            "Diese Abwesenheit überlappt sich mit einer bestehenden Abwesenheit",
		"error.overlapTitle":            "Terminüberschneidung erkannt",
		"error.overlapMessage":          "Der gewählte Zeitraum überschneidet sich mit einer bestehenden Abwesenheit.",
		"error.existingAbsence":         "Bestehende Abwesenheit",
		"error.yourDates":               "Ihr Zeitraum",

		"audit.action.create": "Erstellt",
		"audit.action.update": "Aktualisiert",
		"audit.action.delete": "Gelöscht",

		"stats.totalAbsences":   "Gesamtabwesenheiten",
		"stats.uniqueEmployees": "Eindeutige Mitarbeiter",
		"stats.byType":          "Abwesenheiten nach Typ",

		"notify.created": "Neue Abwesenheit: %s (%s) %s – %s",
		"notify.updated": "Abwesenheit geändert: %s (%s) %s – %s",
		"notify.deleted": "Abwesenheit entfernt: %s (%s) %s – %s",

		"bot.help": "Verfügbare Befehle:\n" +
			"/today - wer heute abwesend ist\n" +
			"/month JJJJ-MM - Abwesenheiten eines Monats\n" +
			"/who s.vorname.nachname - kommende Abwesenheiten eines Mitarbeiters\n" +
			"/stats [JJJJ-MM] - Abwesenheitstage, optional für einen Monat",
		"bot.unknownCommand": "Unbekannter Befehl. Mit /help werden die verfügbaren Befehle angezeigt.",
		"bot.absentOn":       "Abwesend am %s:\n%s",
		"bot.nobodyAbsent":   "Am %s ist niemand abwesend.",
		"bot.absencesIn":     "Abwesenheiten im %s:\n%s",
		"bot.noAbsencesIn":   "Keine Abwesenheiten im %s.",
		"bot.noUpcoming":     "Keine kommenden Abwesenheiten für %s.",
		"bot.usageMonth":     "Aufruf: /month JJJJ-MM",
		"bot.usageWho":       "Aufruf: /who s.vorname.nachname",
		"bot.usageStats":     "Aufruf: /stats [JJJJ-MM]",
		"bot.stats":          "Tage gesamt: %g\nMitarbeiter: %d",
	},
}

// T looks key up in lang, then in English, and finally returns the key.
func T(lang, key string) string {
	if s, ok := translations[lang][key]; ok {
		return s
	}
	if s, ok := translations[English][key]; ok {
		return s
	}
	return key
}

// Languages lists the supported language codes.
func Languages() []string {
	langs := make([]string, 0, len(translations))
	for l := range translations {
		langs = append(langs, l)
	}
	sort.Strings(langs)
	return langs
}

// Supported reports whether lang has its own table.
func Supported(lang string) bool {
	_, ok := translations[lang]
	return ok
}

// Table returns a copy of the table for lang with English fallbacks filled in.
func Table(lang string) map[string]string {
	out := make(map[string]string, len(translations[English]))
	for k, v := range translations[English] {
		out[k] = v
	}
	for k, v := range translations[lang] {
		out[k] = v
	}
	return out
}

// Negotiate picks a supported language from an explicit choice or an
// Accept-Language header value, falling back to def.
func Negotiate(explicit, acceptLanguage, def string) string {
	if l := normalize(explicit); Supported(l) {
		return l
	}
	for _, l := range byQuality(acceptLanguage) {
		if Supported(l) {
			return l
		}
	}
	if Supported(def) {
		return def
	}
	return English
}

type weighted struct {
	lang string
	q    float64
}

// byQuality returns the base languages of an Accept-Language value, highest
// q first. Ties keep header order; q=0 and malformed weights are dropped.
func byQuality(header string) []string {
	var tags []weighted
	for _, part := range strings.Split(header, ",") {
		tag, params, _ := strings.Cut(part, ";")
		q := 1.0
		if params != "" {
			name, value, _ := strings.Cut(strings.TrimSpace(params), "=")
			if strings.TrimSpace(name) == "q" {
				v, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
				if err != nil || v < 0 || v > 1 {
					continue
				}
				q = v
			}
		}
		if q == 0 {
			continue
		}
		if l := normalize(tag); l != "" {
			tags = append(tags, weighted{lang: l, q: q})
		}
	}

	sort.SliceStable(tags, func(i, j int) bool { return tags[i].q > tags[j].q })
	langs := make([]string, len(tags))
	for i, t := range tags {
		langs[i] = t.lang
	}
	return langs
}

func normalize(tag string) string {
	tag = strings.ToLower(strings.TrimSpace(tag))
	base, _, _ := strings.Cut(tag, "-")
	return base
}
