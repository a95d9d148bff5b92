package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"gitlab.com/fcv-2025.net/submission-judge/internal/domain"
)

// LanguageEntry is one row of the languages file
type LanguageEntry struct {
	Name      string   `yaml:"name"`
	RuntimeID int      `yaml:"runtime_id"`
	Aliases   []string `yaml:"aliases"`
}

type languagesFile struct {
	Languages []LanguageEntry `yaml:"languages"`
}

// LoadLanguages reads a YAML table of languages. An empty path returns the defaults unchanged.
func LoadLanguages(path string, defaults map[string]domain.RuntimeID) (map[string]domain.RuntimeID, error) {
	if path == "" {
		return defaults, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read languages file: %w", err)
	}
	return ParseLanguages(data)
}

// ParseLanguages decodes a YAML languages table
func ParseLanguages(data []byte) (map[string]domain.RuntimeID, error) {
	var file languagesFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse languages file: %w", err)
	}
	if len(file.Languages) == 0 {
		return nil, fmt.Errorf("languages file defines no languages")
	}

	table := make(map[string]domain.RuntimeID)
	for _, entry := range file.Languages {
		if entry.Name == "" || entry.RuntimeID <= 0 {
			return nil, fmt.Errorf("invalid language entry %+v", entry)
		}
		table[entry.Name] = domain.RuntimeID(entry.RuntimeID)
		for _, alias := range entry.Aliases {
			table[alias] = domain.RuntimeID(entry.RuntimeID)
		}
	}
	return table, nil
}
