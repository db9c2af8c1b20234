package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"absencehub/internal/models"
	"absencehub/internal/repository"
	"absencehub/internal/validation"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// AuditStats summarises the audit log.
type AuditStats struct {
	TotalLogs int64            `json:"total_logs"`
	ByAction  map[string]int64 `json:"by_action"`
	LatestLog *models.AuditLog `json:"latest_log"`
}

type AuditService struct {
	repo   repository.AuditLogRepository
	logger *logrus.Logger
}

func NewAuditService(repo repository.AuditLogRepository) *AuditService {
	return &AuditService{repo: repo, logger: logrus.StandardLogger()}
}

// NormalizeAction upper-cases a, returning "" for anything that is not a
// known action so the filter is dropped instead of matching nothing.
func NormalizeAction(a string) string {
	a = strings.ToUpper(strings.TrimSpace(a))
	switch a {
	case models.ActionCreate, models.ActionUpdate, models.ActionDelete:
		return a
	}
	return ""
}

func (s *AuditService) List(ctx context.Context, filter repository.AuditFilter) ([]models.AuditLog, int64, error) {
	filter.Action = NormalizeAction(filter.Action)
	logs, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("list audit logs: %w", err)
	}
	return logs, total, nil
}

func (s *AuditService) Get(ctx context.Context, id uint) (*models.AuditLog, error) {
	entry, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get audit log %d: %w", id, err)
	}
	return entry, nil
}

func (s *AuditService) Stats(ctx context.Context) (*AuditStats, error) {
	byAction, err := s.repo.CountByAction(ctx)
	if err != nil {
		return nil, fmt.Errorf("count audit logs: %w", err)
	}
	latest, err := s.repo.Latest(ctx)
	if err != nil {
		return nil, fmt.Errorf("latest audit log: %w", err)
	}

	var total int64
	for _, n := range byAction {
		total += n
	}
	return &AuditStats{TotalLogs: total, ByAction: byAction, LatestLog: latest}, nil
}

// Delete removes entries with the given action, or all of them when action
// is empty. An unknown action is rejected.
func (s *AuditService) Delete(ctx context.Context, action string) (int64, error) {
	raw := action
	action = NormalizeAction(action)
	if action == "" && strings.TrimSpace(raw) != "" {
		return 0, fieldError("action", validation.KindInvalidMember, "error.auditActionInvalid",
			fmt.Sprintf("Unknown audit action %q", raw))
	}
	n, err := s.repo.Delete(ctx, action)
	if err != nil {
		return 0, fmt.Errorf("delete audit logs: %w", err)
	}
	s.logger.WithFields(logrus.Fields{"action": action, "deleted": n}).Info("Audit logs deleted")
	return n, nil
}

// Purge removes entries older than retention. It is driven by the scheduler.
func (s *AuditService) Purge(ctx context.Context, retention time.Duration) (int64, error) {
	before := time.Now().UTC().Add(-retention)
	n, err := s.repo.DeleteOlderThan(ctx, before)
	if err != nil {
		return 0, fmt.Errorf("purge audit logs: %w", err)
	}
	if n > 0 {
		s.logger.WithFields(logrus.Fields{"before": before.Format(time.RFC3339), "deleted": n}).Info("Audit logs purged")
	}
	return n, nil
}

// record writes one entry through repo, which may be bound to a transaction.
func record(ctx context.Context, repo repository.AuditLogRepository, action string, a *models.Absence, oldValues, newValues models.Values) error {
	verb := map[string]string{
		models.ActionCreate: "Created",
		models.ActionUpdate: "Updated",
		models.ActionDelete: "Deleted",
	}[action]

	id := a.ID
	entry := &models.AuditLog{
		Action:      action,
		EntityType:  models.EntityAbsence,
		EntityID:    &id,
		User:        userFrom(ctx),
		OldValues:   oldValues,
		NewValues:   newValues,
		Timestamp:   time.Now().UTC(),
		Description: fmt.Sprintf("%s absence for %s (%s)", verb, a.ServiceAccount, a.AbsenceType),
		RequestID:   requestIDFrom(ctx),
	}
	return repo.Create(ctx, entry)
}
