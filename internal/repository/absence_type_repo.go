package repository

import (
	"context"
	"errors"

	"absencehub/internal/models"

	"gorm.io/gorm"
)

type AbsenceTypeRepository interface {
	Create(ctx context.Context, absenceType *models.AbsenceType) error
	BulkCreate(ctx context.Context, types []models.AbsenceType) error
	GetByID(ctx context.Context, id uint) (*models.AbsenceType, error)
	GetByName(ctx context.Context, name string) (*models.AbsenceType, error)
	List(ctx context.Context, activeOnly bool) ([]models.AbsenceType, error)
	Update(ctx context.Context, absenceType *models.AbsenceType) error
	Delete(ctx context.Context, id uint) error
	Count(ctx context.Context) (int64, error)
}

type GormAbsenceTypeRepository struct {
	db *gorm.DB
}

func NewGormAbsenceTypeRepository(db *gorm.DB) (AbsenceTypeRepository, error) {
	if err := db.AutoMigrate(&models.AbsenceType{}); err != nil {
		return nil, err
	}
	return &GormAbsenceTypeRepository{db: db}, nil
}

func (r *GormAbsenceTypeRepository) Create(ctx context.Context, absenceType *models.AbsenceType) error {
	return r.db.WithContext(ctx).Create(absenceType).Error
}

func (r *GormAbsenceTypeRepository) BulkCreate(ctx context.Context, types []models.AbsenceType) error {
	if len(types) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&types).Error
}

func (r *GormAbsenceTypeRepository) GetByID(ctx context.Context, id uint) (*models.AbsenceType, error) {
	var absenceType models.AbsenceType
	if err := r.db.WithContext(ctx).First(&absenceType, id).Error; err != nil {
		return nil, err
	}
	return &absenceType, nil
}

// GetByName returns nil, nil when no type has that name.
func (r *GormAbsenceTypeRepository) GetByName(ctx context.Context, name string) (*models.AbsenceType, error) {
	var absenceType models.AbsenceType
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&absenceType).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &absenceType, nil
}

func (r *GormAbsenceTypeRepository) List(ctx context.Context, activeOnly bool) ([]models.AbsenceType, error) {
	var types []models.AbsenceType
	q := r.db.WithContext(ctx)
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}
	err := q.Order("name ASC").Find(&types).Error
	return types, err
}

func (r *GormAbsenceTypeRepository) Update(ctx context.Context, absenceType *models.AbsenceType) error {
	return r.db.WithContext(ctx).Save(absenceType).Error
}

func (r *GormAbsenceTypeRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.AbsenceType{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *GormAbsenceTypeRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.AbsenceType{}).Count(&count).Error
	return count, err
}
