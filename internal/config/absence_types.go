package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"absencehub/internal/overlap"
)

// AbsenceTypeDef is one entry of the absence type seed file.
type AbsenceTypeDef struct {
	Name   string `yaml:"name"`
	NameDE string `yaml:"name_de"`
	NameEN string `yaml:"name_en"`
	Color  string `yaml:"color"`
	Active *bool  `yaml:"active"`
}

type absenceTypesFile struct {
	AbsenceTypes []AbsenceTypeDef `yaml:"absence_types"`
}

// LoadAbsenceTypes reads the seed file at path. Entries without a name are
// rejected; missing translations default to the name.
func LoadAbsenceTypes(path string) ([]AbsenceTypeDef, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read absence types file: %w", err)
	}

	var file absenceTypesFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse absence types file %s: %w", path, err)
	}

	seen := make(map[string]bool, len(file.AbsenceTypes))
	for i := range file.AbsenceTypes {
		def := &file.AbsenceTypes[i]
		if def.Name == "" {
			return nil, fmt.Errorf("absence type #%d in %s has no name", i+1, path)
		}
		if !overlap.Encodable(def.Name) {
			return nil, fmt.Errorf("absence type %q in %s must not contain %q", def.Name, path, overlap.Separator)
		}
		if seen[def.Name] {
			return nil, fmt.Errorf("absence type %q is listed twice in %s", def.Name, path)
		}
		seen[def.Name] = true

		if def.NameDE == "" {
			def.NameDE = def.Name
		}
		if def.NameEN == "" {
			def.NameEN = def.Name
		}
	}

	return file.AbsenceTypes, nil
}

// IsActive defaults to true when the file does not say otherwise.
func (d AbsenceTypeDef) IsActive() bool {
	return d.Active == nil || *d.Active
}
