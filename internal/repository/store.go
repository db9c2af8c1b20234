package repository

import (
	"context"

	"gorm.io/gorm"
)

// Store bundles the repositories that share one database handle so services
// can run several writes in a single transaction.
type Store struct {
	db           *gorm.DB
	Absences     AbsenceRepository
	AbsenceTypes AbsenceTypeRepository
	AuditLogs    AuditLogRepository
}

// NewStore migrates every table and returns repositories bound to db.
func NewStore(db *gorm.DB) (*Store, error) {
	absences, err := NewGormAbsenceRepository(db)
	if err != nil {
		return nil, err
	}
	types, err := NewGormAbsenceTypeRepository(db)
	if err != nil {
		return nil, err
	}
	audits, err := NewGormAuditLogRepository(db)
	if err != nil {
		return nil, err
	}
	return &Store{db: db, Absences: absences, AbsenceTypes: types, AuditLogs: audits}, nil
}

func bind(db *gorm.DB) *Store {
	return &Store{
		db:           db,
		Absences:     &GormAbsenceRepository{db: db},
		AbsenceTypes: &GormAbsenceTypeRepository{db: db},
		AuditLogs:    &GormAuditLogRepository{db: db},
	}
}

// Transaction runs fn with repositories bound to one transaction. Returning
// an error from fn rolls everything back.
func (s *Store) Transaction(ctx context.Context, fn func(tx *Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(bind(tx))
	})
}
