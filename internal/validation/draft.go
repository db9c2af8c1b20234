package validation

// Draft is a snapshot of the absence form before it is sent for persistence.
type Draft struct {
	ID               uint   `json:"id,omitempty"`
	ServiceAccount   string `json:"service_account"`
	EmployeeFullname string `json:"employee_fullname"`
	AbsenceType      string `json:"absence_type"`
	StartDate        string `json:"start_date"`
	EndDate          string `json:"end_date"`
	IsHalfDay        bool   `json:"is_half_day"`
}

// ReconcileHalfDay collapses a half-day draft to a single date.
func ReconcileHalfDay(d Draft) Draft {
	if d.IsHalfDay {
		d.EndDate = d.StartDate
	}
	return d
}

// WithHalfDay toggles the half-day flag. Turning it off keeps whatever end
// date the draft holds; it is validated on its own again from then on.
func (d Draft) WithHalfDay(on bool) Draft {
	d.IsHalfDay = on
	return ReconcileHalfDay(d)
}

// WithStartDate sets the start date, re-syncing the end date for half days.
func (d Draft) WithStartDate(start string) Draft {
	d.StartDate = start
	return ReconcileHalfDay(d)
}

// IsNew reports whether the draft has not been persisted yet. The service
// account can only be edited while this is true.
func (d Draft) IsNew() bool {
	return d.ID == 0
}
