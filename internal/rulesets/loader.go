package rulesets

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/haven-app/haven/internal/risk"
)

// ruleFile is the YAML schema for rule-set seed files.
type ruleFile struct {
	Name        string             `yaml:"name"`
	Description *string            `yaml:"description"`
	Weights     map[string]float64 `yaml:"weights"`
	Thresholds  struct {
		Warn float64 `yaml:"warn"`
		High float64 `yaml:"high"`
	} `yaml:"thresholds"`
}

// LoadFile reads a YAML rule-set definition and converts it to a CreateCommand.
// The command is validated before being returned.
func LoadFile(path string) (CreateCommand, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return CreateCommand{}, err
	}

	var f ruleFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return CreateCommand{}, fmt.Errorf("parse rule file: %w", err)
	}

	cmd := CreateCommand{
		Name:        f.Name,
		Weights:     f.Weights,
		Description: f.Description,
		Thresholds: risk.Thresholds{
			Warn: f.Thresholds.Warn,
			High: f.Thresholds.High,
		},
	}

	if err := cmd.Validate(); err != nil {
		return CreateCommand{}, err
	}

	return cmd, nil
}
