// Package calendar lays absences out on a month grid and exports them as
// iCalendar feeds.
package calendar

import (
	"fmt"
	"time"

	"absencehub/internal/models"
	"absencehub/internal/validation"
	"absencehub/pkg/holidays"
)

const monthLayout = "2006-01"

type Day struct {
	Date      string           `json:"date"`
	Weekday   string           `json:"weekday"`
	IsWeekend bool             `json:"is_weekend"`
	IsHoliday bool             `json:"is_holiday"`
	Absences  []models.Absence `json:"absences"`
}

// IsWorkday reports whether the day counts towards working-day totals.
func (d Day) IsWorkday() bool {
	return !d.IsWeekend && !d.IsHoliday
}

type Month struct {
	Month string `json:"month"`
	Days  []Day  `json:"days"`
	// WorkingDaysOff is the number of working days each service account is
	// absent in this month. Half days count 0.5.
	WorkingDaysOff map[string]float64 `json:"working_days_off"`
}

// BuildMonth places every absence on the days of month (YYYY-MM) it covers.
// Absences outside the month are ignored; hol may be nil.
func BuildMonth(month string, absences []models.Absence, hol holidays.Set) (*Month, error) {
	first, err := time.ParseInLocation(monthLayout, month, time.UTC)
	if err != nil {
		return nil, fmt.Errorf("invalid month %q, expected YYYY-MM: %w", month, err)
	}

	m := &Month{Month: month, WorkingDaysOff: make(map[string]float64)}
	for d := first; d.Month() == first.Month(); d = d.AddDate(0, 0, 1) {
		date := d.Format(validation.DateLayout)
		day := Day{
			Date:      date,
			Weekday:   d.Weekday().String(),
			IsWeekend: d.Weekday() == time.Saturday || d.Weekday() == time.Sunday,
			IsHoliday: hol.Contains(date),
			Absences:  []models.Absence{},
		}

		for i := range absences {
			a := &absences[i]
			if !a.Covers(date) {
				continue
			}
			day.Absences = append(day.Absences, *a)
			if day.IsWorkday() {
				if a.IsHalfDay {
					m.WorkingDaysOff[a.ServiceAccount] += 0.5
				} else {
					m.WorkingDaysOff[a.ServiceAccount]++
				}
			}
		}
		m.Days = append(m.Days, day)
	}

	return m, nil
}
