package models

import "time"

const DefaultAbsenceTypeColor = "#3B82F6"

// AbsenceType is a configurable category of absence with its display names.
type AbsenceType struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:50;not null;uniqueIndex" json:"name"`
	NameDE    string    `gorm:"column:name_de;size:50;not null" json:"name_de"`
	NameEN    string    `gorm:"column:name_en;size:50;not null" json:"name_en"`
	Color     string    `gorm:"size:7;not null;default:'#3B82F6'" json:"color"`
	IsActive  bool      `gorm:"not null" json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (AbsenceType) TableName() string {
	return "absence_types"
}

// DisplayName returns the name for the given language code.
func (t *AbsenceType) DisplayName(lang string) string {
	switch lang {
	case "de":
		return t.NameDE
	case "en":
		return t.NameEN
	}
	return t.Name
}
