package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"absencehub/internal/models"
	"absencehub/internal/overlap"
	"absencehub/internal/repository"
	"absencehub/internal/validation"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var hexColor = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// AbsenceTypeInput is the payload for creating a type.
type AbsenceTypeInput struct {
	Name     string `json:"name"`
	NameDE   string `json:"name_de"`
	NameEN   string `json:"name_en"`
	Color    string `json:"color"`
	IsActive *bool  `json:"is_active"`
}

// AbsenceTypePatch updates only the fields that are set.
type AbsenceTypePatch struct {
	Name     *string `json:"name"`
	NameDE   *string `json:"name_de"`
	NameEN   *string `json:"name_en"`
	Color    *string `json:"color"`
	IsActive *bool   `json:"is_active"`
}

// DefaultAbsenceTypes are seeded into an empty table.
func DefaultAbsenceTypes() []models.AbsenceType {
	return []models.AbsenceType{
		{Name: "Urlaub", NameDE: "Urlaub", NameEN: "Vacation", Color: "#10B981", IsActive: true},
		{Name: "Krankheit", NameDE: "Krankheit", NameEN: "Sick Leave", Color: "#EF4444", IsActive: true},
		{Name: "Home Office", NameDE: "Home Office", NameEN: "Home Office", Color: "#3B82F6", IsActive: true},
		{Name: "Sonstige", NameDE: "Sonstige", NameEN: "Other", Color: "#8B5CF6", IsActive: true},
	}
}

type AbsenceTypeService struct {
	repo        repository.AbsenceTypeRepository
	absenceRepo repository.AbsenceRepository
	logger      *logrus.Logger
}

func NewAbsenceTypeService(repo repository.AbsenceTypeRepository, absenceRepo repository.AbsenceRepository) *AbsenceTypeService {
	return &AbsenceTypeService{
		repo:        repo,
		absenceRepo: absenceRepo,
		logger:      logrus.StandardLogger(),
	}
}

func (s *AbsenceTypeService) List(ctx context.Context, activeOnly bool) ([]models.AbsenceType, error) {
	types, err := s.repo.List(ctx, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("list absence types: %w", err)
	}
	return types, nil
}

func (s *AbsenceTypeService) Get(ctx context.Context, id uint) (*models.AbsenceType, error) {
	t, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get absence type %d: %w", id, err)
	}
	return t, nil
}

// ActiveNames lists the names accepted for new absences. When the table is
// empty or unreadable it falls back to the built-in defaults.
func (s *AbsenceTypeService) ActiveNames(ctx context.Context) []string {
	types, err := s.repo.List(ctx, true)
	if err != nil {
		s.logger.WithError(err).Warn("Failed to load absence types, using defaults")
		return validation.DefaultAbsenceTypes
	}
	if len(types) == 0 {
		return validation.DefaultAbsenceTypes
	}

	names := make([]string, 0, len(types))
	for _, t := range types {
		names = append(names, t.Name)
	}
	return names
}

func (s *AbsenceTypeService) Create(ctx context.Context, in AbsenceTypeInput) (*models.AbsenceType, error) {
	if in.Color == "" {
		in.Color = models.DefaultAbsenceTypeColor
	}

	res := validation.Result{}
	requireText(res, "name", in.Name)
	checkName(res, in.Name)
	requireText(res, "name_de", in.NameDE)
	requireText(res, "name_en", in.NameEN)
	checkColor(res, in.Color)
	if !res.Valid() {
		return nil, &ValidationError{Fields: res}
	}

	if err := s.ensureNameFree(ctx, in.Name); err != nil {
		return nil, err
	}

	t := &models.AbsenceType{
		Name:     in.Name,
		NameDE:   in.NameDE,
		NameEN:   in.NameEN,
		Color:    in.Color,
		IsActive: in.IsActive == nil || *in.IsActive,
	}
	if err := s.repo.Create(ctx, t); err != nil {
		return nil, fmt.Errorf("create absence type: %w", err)
	}

	s.logger.WithField("name", t.Name).Info("Absence type created")
	return t, nil
}

func (s *AbsenceTypeService) Update(ctx context.Context, id uint, p AbsenceTypePatch) (*models.AbsenceType, error) {
	t, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	res := validation.Result{}
	if p.Name != nil {
		requireText(res, "name", *p.Name)
		checkName(res, *p.Name)
	}
	if p.NameDE != nil {
		requireText(res, "name_de", *p.NameDE)
	}
	if p.NameEN != nil {
		requireText(res, "name_en", *p.NameEN)
	}
	if p.Color != nil {
		checkColor(res, *p.Color)
	}
	if !res.Valid() {
		return nil, &ValidationError{Fields: res}
	}

	if p.Name != nil && *p.Name != t.Name {
		if err := s.ensureNameFree(ctx, *p.Name); err != nil {
			return nil, err
		}
		// absences reference types by name
		count, err := s.absenceRepo.CountByType(ctx, t.Name)
		if err != nil {
			return nil, fmt.Errorf("count absences of type %q: %w", t.Name, err)
		}
		if count > 0 {
			return nil, fmt.Errorf("absence type %q is used in %d absence record(s) and cannot be renamed: %w",
				t.Name, count, ErrInUse)
		}
		t.Name = *p.Name
	}
	if p.NameDE != nil {
		t.NameDE = *p.NameDE
	}
	if p.NameEN != nil {
		t.NameEN = *p.NameEN
	}
	if p.Color != nil {
		t.Color = *p.Color
	}
	if p.IsActive != nil {
		t.IsActive = *p.IsActive
	}

	if err := s.repo.Update(ctx, t); err != nil {
		return nil, fmt.Errorf("update absence type %d: %w", id, err)
	}
	return t, nil
}

// Deactivate hides a type from new absences but keeps existing records valid.
func (s *AbsenceTypeService) Deactivate(ctx context.Context, id uint) (*models.AbsenceType, error) {
	t, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	t.IsActive = false
	if err := s.repo.Update(ctx, t); err != nil {
		return nil, fmt.Errorf("deactivate absence type %d: %w", id, err)
	}
	s.logger.WithField("name", t.Name).Info("Absence type deactivated")
	return t, nil
}

// HardDelete removes a type permanently. It refuses while absences use it.
func (s *AbsenceTypeService) HardDelete(ctx context.Context, id uint) (*models.AbsenceType, error) {
	t, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	count, err := s.absenceRepo.CountByType(ctx, t.Name)
	if err != nil {
		return nil, fmt.Errorf("count absences of type %q: %w", t.Name, err)
	}
	if count > 0 {
		return nil, fmt.Errorf("absence type %q is used in %d absence record(s), deactivate it instead: %w",
			t.Name, count, ErrInUse)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return nil, fmt.Errorf("delete absence type %d: %w", id, err)
	}
	s.logger.WithField("name", t.Name).Info("Absence type deleted")
	return t, nil
}

// SeedDefaults fills an empty table with defs and reports how many rows
// were inserted.
func (s *AbsenceTypeService) SeedDefaults(ctx context.Context, defs []models.AbsenceType) (int, error) {
	count, err := s.repo.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("count absence types: %w", err)
	}
	if count > 0 {
		return 0, nil
	}
	if len(defs) == 0 {
		defs = DefaultAbsenceTypes()
	}
	if err := s.repo.BulkCreate(ctx, defs); err != nil {
		return 0, fmt.Errorf("seed absence types: %w", err)
	}
	return len(defs), nil
}

func (s *AbsenceTypeService) ensureNameFree(ctx context.Context, name string) error {
	existing, err := s.repo.GetByName(ctx, name)
	if err != nil {
		return fmt.Errorf("look up absence type %q: %w", name, err)
	}
	if existing != nil {
		return fieldError("name", validation.KindInvalidMember, "error.absenceTypeExists",
			fmt.Sprintf("Absence type with name %q already exists", name))
	}
	return nil
}

func requireText(res validation.Result, field, value string) {
	if value == "" {
		res[field] = &validation.Error{Field: field, Kind: validation.KindRequired, Key: "error.required", Msg: field + " is required"}
	}
}

// checkName rejects names that would corrupt the overlap signal.
func checkName(res validation.Result, name string) {
	if name != "" && !overlap.Encodable(name) {
		res["name"] = &validation.Error{Field: "name", Kind: validation.KindFormat, Key: "error.absenceTypeNameFormat",
			Msg: fmt.Sprintf("Absence type name must not contain %q", overlap.Separator)}
	}
}

func checkColor(res validation.Result, color string) {
	if !hexColor.MatchString(color) {
		res["color"] = &validation.Error{Field: "color", Kind: validation.KindFormat, Key: "error.colorFormat", Msg: "Color must be in hex format (#RRGGBB)"}
	}
}
