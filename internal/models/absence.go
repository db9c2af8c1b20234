// internal/models/absence.go
package models

import (
	"time"

	"absencehub/internal/validation"
)

// Absence is a single employee time-off entry. Dates are stored as
// YYYY-MM-DD strings so range queries compare calendar dates directly.
type Absence struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	ServiceAccount   string    `gorm:"size:100;not null;index" json:"service_account"`
	EmployeeFullname string    `gorm:"size:200" json:"employee_fullname"`
	AbsenceType      string    `gorm:"size:50;not null;index" json:"absence_type"`
	StartDate        string    `gorm:"size:10;not null;index" json:"start_date"`
	EndDate          string    `gorm:"size:10;not null;index" json:"end_date"`
	IsHalfDay        bool      `gorm:"not null;default:false" json:"is_half_day"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

func (Absence) TableName() string {
	return "employee_absences"
}

// CalculateDays returns the length of the absence in days; a half day counts 0.5.
func (a *Absence) CalculateDays() float64 {
	if a.IsHalfDay {
		return 0.5
	}
	start, err := validation.ParseDate(a.StartDate)
	if err != nil {
		return 0
	}
	end, err := validation.ParseDate(a.EndDate)
	if err != nil || end.Before(start) {
		return 0
	}
	return end.Sub(start).Hours()/24 + 1
}

// Covers reports whether the absence includes the given YYYY-MM-DD date.
func (a *Absence) Covers(date string) bool {
	return a.StartDate <= date && date <= a.EndDate
}

// Draft converts the record back into a form snapshot.
func (a *Absence) Draft() validation.Draft {
	return validation.Draft{
		ID:               a.ID,
		ServiceAccount:   a.ServiceAccount,
		EmployeeFullname: a.EmployeeFullname,
		AbsenceType:      a.AbsenceType,
		StartDate:        a.StartDate,
		EndDate:          a.EndDate,
		IsHalfDay:        a.IsHalfDay,
	}
}

// AbsenceFromDraft builds a new record from a reconciled draft.
func AbsenceFromDraft(d validation.Draft) *Absence {
	d = validation.ReconcileHalfDay(d)
	return &Absence{
		ServiceAccount:   d.ServiceAccount,
		EmployeeFullname: d.EmployeeFullname,
		AbsenceType:      d.AbsenceType,
		StartDate:        d.StartDate,
		EndDate:          d.EndDate,
		IsHalfDay:        d.IsHalfDay,
	}
}

// Snapshot is the audit representation of the record.
func (a *Absence) Snapshot() Values {
	return Values{
		"id":                a.ID,
		"service_account":   a.ServiceAccount,
		"employee_fullname": a.EmployeeFullname,
		"absence_type":      a.AbsenceType,
		"start_date":        a.StartDate,
		"end_date":          a.EndDate,
		"is_half_day":       a.IsHalfDay,
		"created_at":        a.CreatedAt.UTC().Format(time.RFC3339),
		"updated_at":        a.UpdatedAt.UTC().Format(time.RFC3339),
	}
}
