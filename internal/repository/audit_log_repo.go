package repository

import (
	"context"
	"errors"
	"time"

	"absencehub/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// "timestamp" is quoted by gorm to stay a plain identifier on PostgreSQL.
var newestFirst = []clause.OrderByColumn{
	{Column: clause.Column{Name: "timestamp"}, Desc: true},
	{Column: clause.Column{Name: "id"}, Desc: true},
}

const (
	DefaultAuditLimit = 100
	MaxAuditLimit     = 1000
)

// AuditFilter narrows audit log queries. An empty Action matches every action.
type AuditFilter struct {
	Action   string
	EntityID *uint
	Limit    int
	Offset   int
}

type AuditLogRepository interface {
	Create(ctx context.Context, entry *models.AuditLog) error
	GetByID(ctx context.Context, id uint) (*models.AuditLog, error)
	List(ctx context.Context, filter AuditFilter) ([]models.AuditLog, int64, error)
	CountByAction(ctx context.Context) (map[string]int64, error)
	Latest(ctx context.Context) (*models.AuditLog, error)
	Delete(ctx context.Context, action string) (int64, error)
	DeleteOlderThan(ctx context.Context, before time.Time) (int64, error)
}

type GormAuditLogRepository struct {
	db *gorm.DB
}

func NewGormAuditLogRepository(db *gorm.DB) (AuditLogRepository, error) {
	if err := db.AutoMigrate(&models.AuditLog{}); err != nil {
		return nil, err
	}
	return &GormAuditLogRepository{db: db}, nil
}

func (r *GormAuditLogRepository) Create(ctx context.Context, entry *models.AuditLog) error {
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now().UTC()
	}
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *GormAuditLogRepository) GetByID(ctx context.Context, id uint) (*models.AuditLog, error) {
	var entry models.AuditLog
	if err := r.db.WithContext(ctx).First(&entry, id).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *GormAuditLogRepository) List(ctx context.Context, filter AuditFilter) ([]models.AuditLog, int64, error) {
	q := r.db.WithContext(ctx).Model(&models.AuditLog{})
	if filter.Action != "" {
		q = q.Where("action = ?", filter.Action)
	}
	if filter.EntityID != nil {
		q = q.Where("entity_id = ?", *filter.EntityID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = DefaultAuditLimit
	}
	if limit > MaxAuditLimit {
		limit = MaxAuditLimit
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	var entries []models.AuditLog
	err := q.Order(clause.OrderBy{Columns: newestFirst}).
		Limit(limit).Offset(offset).
		Find(&entries).Error
	return entries, total, err
}

func (r *GormAuditLogRepository) CountByAction(ctx context.Context) (map[string]int64, error) {
	var rows []struct {
		Action string
		Count  int64
	}
	err := r.db.WithContext(ctx).Model(&models.AuditLog{}).
		Select("action, COUNT(id) AS count").
		Group("action").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.Action] = row.Count
	}
	return counts, nil
}

// Latest returns nil, nil on an empty log.
func (r *GormAuditLogRepository) Latest(ctx context.Context) (*models.AuditLog, error) {
	var entry models.AuditLog
	err := r.db.WithContext(ctx).Order(clause.OrderBy{Columns: newestFirst}).First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// Delete removes every entry with the given action, or all entries when
// action is empty.
func (r *GormAuditLogRepository) Delete(ctx context.Context, action string) (int64, error) {
	q := r.db.WithContext(ctx).Session(&gorm.Session{AllowGlobalUpdate: true})
	if action != "" {
		q = q.Where("action = ?", action)
	}
	res := q.Delete(&models.AuditLog{})
	return res.RowsAffected, res.Error
}

func (r *GormAuditLogRepository) DeleteOlderThan(ctx context.Context, before time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Where(clause.Lt{Column: clause.Column{Name: "timestamp"}, Value: before.UTC()}).Delete(&models.AuditLog{})
	return res.RowsAffected, res.Error
}
