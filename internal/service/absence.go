// internal/service/absence.go
package service

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"absencehub/internal/models"
	"absencehub/internal/overlap"
	"absencehub/internal/repository"
	"absencehub/internal/validation"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Notifier is told about every committed change to an absence.
type Notifier interface {
	AbsenceChanged(ctx context.Context, action string, absence *models.Absence) error
}

type noopNotifier struct{}

func (noopNotifier) AbsenceChanged(context.Context, string, *models.Absence) error { return nil }

// AbsencePatch updates only the fields that are set. ServiceAccount may be
// sent back unchanged but never altered.
type AbsencePatch struct {
	ServiceAccount   *string `json:"service_account"`
	EmployeeFullname *string `json:"employee_fullname"`
	AbsenceType      *string `json:"absence_type"`
	StartDate        *string `json:"start_date"`
	EndDate          *string `json:"end_date"`
	IsHalfDay        *bool   `json:"is_half_day"`
}

// Statistics aggregates absence length in days.
type Statistics struct {
	TotalDays       float64            `json:"total_days"`
	UniqueEmployees int                `json:"unique_employees"`
	ByType          map[string]float64 `json:"by_type"`
}

type AbsenceService struct {
	store    *repository.Store
	types    *AbsenceTypeService
	notifier Notifier
	logger   *logrus.Logger
}

func NewAbsenceService(store *repository.Store, types *AbsenceTypeService, notifier Notifier) *AbsenceService {
	if notifier == nil {
		notifier = noopNotifier{}
	}
	return &AbsenceService{
		store:    store,
		types:    types,
		notifier: notifier,
		logger:   logrus.StandardLogger(),
	}
}

// Validate runs the form rules against d without touching the database
// beyond loading the active type names.
func (s *AbsenceService) Validate(ctx context.Context, d validation.Draft) validation.Result {
	return validation.ValidateAbsenceForm(d, s.types.ActiveNames(ctx))
}

// Create validates d, rejects it when it overlaps another absence of the
// same employee and stores it together with its audit entry.
func (s *AbsenceService) Create(ctx context.Context, d validation.Draft) (*models.Absence, error) {
	d = validation.ReconcileHalfDay(d)
	if res := s.Validate(ctx, d); !res.Valid() {
		return nil, &ValidationError{Fields: res}
	}

	absence := models.AbsenceFromDraft(d)
	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		if err := checkOverlap(ctx, tx.Absences, absence, 0); err != nil {
			return err
		}
		if err := tx.Absences.Create(ctx, absence); err != nil {
			return fmt.Errorf("create absence: %w", err)
		}
		return record(ctx, tx.AuditLogs, models.ActionCreate, absence, nil, absence.Snapshot())
	})
	if err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"id":              absence.ID,
		"service_account": absence.ServiceAccount,
		"type":            absence.AbsenceType,
	}).Info("Absence created")
	s.notify(ctx, models.ActionCreate, absence)
	return absence, nil
}

func (s *AbsenceService) Update(ctx context.Context, id uint, p AbsencePatch) (*models.Absence, error) {
	// loaded outside the transaction, sqlite runs on a single connection
	active := s.types.ActiveNames(ctx)

	var updated *models.Absence
	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		current, err := tx.Absences.GetByID(ctx, id)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("get absence %d: %w", id, err)
		}
		oldValues := current.Snapshot()

		if p.ServiceAccount != nil && *p.ServiceAccount != current.ServiceAccount {
			return fieldError(validation.FieldServiceAccount, validation.KindInvalidMember,
				"error.serviceAccountImmutable", "Service account cannot be changed")
		}

		d := applyPatch(current.Draft(), p)
		allowed := active
		if d.AbsenceType == current.AbsenceType {
			// a record keeps its type even after the type was deactivated
			allowed = append(slices.Clone(active), current.AbsenceType)
		}
		if res := validation.ValidateAbsenceForm(d, allowed); !res.Valid() {
			return &ValidationError{Fields: res}
		}

		next := models.AbsenceFromDraft(d)
		next.ID = current.ID
		next.CreatedAt = current.CreatedAt
		if err := checkOverlap(ctx, tx.Absences, next, current.ID); err != nil {
			return err
		}
		if err := tx.Absences.Update(ctx, next); err != nil {
			return fmt.Errorf("update absence %d: %w", id, err)
		}
		updated = next
		return record(ctx, tx.AuditLogs, models.ActionUpdate, next, oldValues, next.Snapshot())
	})
	if err != nil {
		return nil, err
	}

	s.logger.WithField("id", id).Info("Absence updated")
	s.notify(ctx, models.ActionUpdate, updated)
	return updated, nil
}

func (s *AbsenceService) Delete(ctx context.Context, id uint) (*models.Absence, error) {
	var deleted *models.Absence
	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		absence, err := tx.Absences.GetByID(ctx, id)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("get absence %d: %w", id, err)
		}
		if err := record(ctx, tx.AuditLogs, models.ActionDelete, absence, absence.Snapshot(), nil); err != nil {
			return err
		}
		if err := tx.Absences.Delete(ctx, id); err != nil {
			return fmt.Errorf("delete absence %d: %w", id, err)
		}
		deleted = absence
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.WithField("id", id).Info("Absence deleted")
	s.notify(ctx, models.ActionDelete, deleted)
	return deleted, nil
}

func (s *AbsenceService) Get(ctx context.Context, id uint) (*models.Absence, error) {
	absence, err := s.store.Absences.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get absence %d: %w", id, err)
	}
	return absence, nil
}

func (s *AbsenceService) List(ctx context.Context, filter repository.AbsenceFilter) ([]models.Absence, error) {
	absences, err := s.store.Absences.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list absences: %w", err)
	}
	return absences, nil
}

// Statistics sums the days of every absence matching filter.
func (s *AbsenceService) Statistics(ctx context.Context, filter repository.AbsenceFilter) (*Statistics, error) {
	absences, err := s.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	stats := &Statistics{ByType: make(map[string]float64)}
	employees := make(map[string]struct{})
	for i := range absences {
		days := absences[i].CalculateDays()
		stats.TotalDays += days
		stats.ByType[absences[i].AbsenceType] += days
		employees[absences[i].ServiceAccount] = struct{}{}
	}
	stats.UniqueEmployees = len(employees)
	return stats, nil
}

func (s *AbsenceService) notify(ctx context.Context, action string, absence *models.Absence) {
	if err := s.notifier.AbsenceChanged(ctx, action, absence); err != nil {
		s.logger.WithError(err).WithField("id", absence.ID).Warn("Failed to send absence notification")
	}
}

// checkOverlap returns an *overlap.Conflict when a stored absence of the same
// employee intersects a.
func checkOverlap(ctx context.Context, repo repository.AbsenceRepository, a *models.Absence, excludeID uint) error {
	existing, err := repo.FindOverlap(ctx, a.ServiceAccount, a.StartDate, a.EndDate, excludeID)
	if err != nil {
		return fmt.Errorf("check overlap: %w", err)
	}
	if existing == nil {
		return nil
	}
	return overlap.New(existing.AbsenceType, existing.ID,
		existing.StartDate, existing.EndDate, a.StartDate, a.EndDate)
}

func applyPatch(d validation.Draft, p AbsencePatch) validation.Draft {
	if p.EmployeeFullname != nil {
		d.EmployeeFullname = *p.EmployeeFullname
	}
	if p.AbsenceType != nil {
		d.AbsenceType = *p.AbsenceType
	}
	if p.StartDate != nil {
		d.StartDate = *p.StartDate
	}
	if p.EndDate != nil {
		d.EndDate = *p.EndDate
	}
	if p.IsHalfDay != nil {
		d.IsHalfDay = *p.IsHalfDay
	}
	return validation.ReconcileHalfDay(d)
}
