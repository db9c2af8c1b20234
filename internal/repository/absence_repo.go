// internal/repository/absence_repo.go
package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"absencehub/internal/models"
	"absencehub/internal/validation"

	"gorm.io/gorm"
)

// AbsenceFilter narrows List. Month (YYYY-MM) wins over Year (YYYY), which
// wins over the StartDate/EndDate bounds; malformed month or year values are
// ignored.
type AbsenceFilter struct {
	ServiceAccount   string
	EmployeeFullname string
	AbsenceType      string
	Month            string
	Year             string
	StartDate        string
	EndDate          string
}

type AbsenceRepository interface {
	Create(ctx context.Context, absence *models.Absence) error
	GetByID(ctx context.Context, id uint) (*models.Absence, error)
	Update(ctx context.Context, absence *models.Absence) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, filter AbsenceFilter) ([]models.Absence, error)
	FindOverlap(ctx context.Context, serviceAccount, startDate, endDate string, excludeID uint) (*models.Absence, error)
	CountByType(ctx context.Context, absenceType string) (int64, error)
}

type GormAbsenceRepository struct {
	db *gorm.DB
}

func NewGormAbsenceRepository(db *gorm.DB) (AbsenceRepository, error) {
	if err := db.AutoMigrate(&models.Absence{}); err != nil {
		return nil, err
	}
	return &GormAbsenceRepository{db: db}, nil
}

func (r *GormAbsenceRepository) Create(ctx context.Context, absence *models.Absence) error {
	return r.db.WithContext(ctx).Create(absence).Error
}

func (r *GormAbsenceRepository) GetByID(ctx context.Context, id uint) (*models.Absence, error) {
	var absence models.Absence
	err := r.db.WithContext(ctx).First(&absence, id).Error
	if err != nil {
		return nil, err
	}
	return &absence, nil
}

func (r *GormAbsenceRepository) Update(ctx context.Context, absence *models.Absence) error {
	return r.db.WithContext(ctx).Save(absence).Error
}

func (r *GormAbsenceRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Absence{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *GormAbsenceRepository) List(ctx context.Context, filter AbsenceFilter) ([]models.Absence, error) {
	var absences []models.Absence
	err := applyAbsenceFilter(r.db.WithContext(ctx).Model(&models.Absence{}), filter).
		Order("updated_at DESC").
		Order("id DESC").
		Find(&absences).Error
	return absences, err
}

// FindOverlap returns any absence of the same employee, regardless of type,
// whose range intersects [startDate, endDate].
func (r *GormAbsenceRepository) FindOverlap(ctx context.Context, serviceAccount, startDate, endDate string, excludeID uint) (*models.Absence, error) {
	q := r.db.WithContext(ctx).
		Where("service_account = ? AND start_date <= ? AND end_date >= ?", serviceAccount, endDate, startDate)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}

	var absence models.Absence
	err := q.Order("start_date ASC").First(&absence).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &absence, nil
}

func (r *GormAbsenceRepository) CountByType(ctx context.Context, absenceType string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Absence{}).
		Where("absence_type = ?", absenceType).
		Count(&count).Error
	return count, err
}

func applyAbsenceFilter(q *gorm.DB, f AbsenceFilter) *gorm.DB {
	if f.ServiceAccount != "" {
		q = q.Where("LOWER(service_account) LIKE ?", likePattern(f.ServiceAccount))
	}
	if f.EmployeeFullname != "" {
		q = q.Where("LOWER(employee_fullname) LIKE ?", likePattern(f.EmployeeFullname))
	}
	if f.AbsenceType != "" {
		q = q.Where("absence_type = ?", f.AbsenceType)
	}

	switch {
	case f.Month != "":
		if from, to, ok := MonthBounds(f.Month); ok {
			q = q.Where("start_date <= ? AND end_date >= ?", to, from)
		}
	case f.Year != "":
		if year, err := time.ParseInLocation("2006", f.Year, time.UTC); err == nil {
			y := year.Format("2006")
			q = q.Where("start_date <= ? AND end_date >= ?", y+"-12-31", y+"-01-01")
		}
	default:
		if f.StartDate != "" {
			q = q.Where("start_date >= ?", f.StartDate)
		}
		if f.EndDate != "" {
			q = q.Where("end_date <= ?", f.EndDate)
		}
	}

	return q
}

// MonthBounds returns the first and last day of a YYYY-MM month.
func MonthBounds(month string) (string, string, bool) {
	first, err := time.ParseInLocation("2006-01", month, time.UTC)
	if err != nil {
		return "", "", false
	}
	last := first.AddDate(0, 1, -1)
	return first.Format(validation.DateLayout), last.Format(validation.DateLayout), true
}

func likePattern(s string) string {
	return "%" + strings.ToLower(s) + "%"
}
