package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// Audit actions
const (
	ActionCreate = "CREATE"
	ActionUpdate = "UPDATE"
	ActionDelete = "DELETE"
)

const (
	EntityAbsence = "EmployeeAbsence"
	SystemUser    = "system"
)

// Values is a JSON object stored in a text column.
type Values map[string]any

func (v Values) Value() (driver.Value, error) {
	if v == nil {
		return nil, nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (v *Values) Scan(src any) error {
	var data []byte
	switch s := src.(type) {
	case nil:
		*v = nil
		return nil
	case []byte:
		data = s
	case string:
		data = []byte(s)
	default:
		return fmt.Errorf("unsupported type %T for Values", src)
	}
	if len(data) == 0 {
		*v = nil
		return nil
	}
	return json.Unmarshal(data, v)
}

// AuditLog records one change to an absence.
type AuditLog struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Action      string    `gorm:"size:20;not null;index" json:"action"`
	EntityType  string    `gorm:"size:50;not null;default:'EmployeeAbsence'" json:"entity_type"`
	EntityID    *uint     `gorm:"index" json:"entity_id"`
	User        string    `gorm:"size:100;default:'system'" json:"user"`
	OldValues   Values    `gorm:"type:text" json:"old_values"`
	NewValues   Values    `gorm:"type:text" json:"new_values"`
	Timestamp   time.Time `gorm:"not null;index" json:"timestamp"`
	Description string    `gorm:"type:text" json:"description"`
	RequestID   string    `gorm:"size:36;index" json:"request_id"`
}

func (AuditLog) TableName() string {
	return "audit_logs"
}
