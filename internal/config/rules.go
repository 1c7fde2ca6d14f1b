package config

import (
	"fmt"
	"os"
	"strconv"
)

const (
	EnvRulesPath             = "HAVEN_RULES_PATH"
	EnvRulesMaterialityFloor = "HAVEN_RULES_MATERIALITY_FLOOR"
	EnvRulesHistoryDays      = "HAVEN_RULES_HISTORY_DAYS"
)

// RulesConfig holds risk-evaluation settings: the optional seed file used
// when no rule set is active, the materiality floor for reasons, and the
// default history window.
type RulesConfig struct {
	Path             string  `toml:"path"`
	MaterialityFloor float64 `toml:"materiality_floor"`
	HistoryDays      int     `toml:"history_days"`
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *RulesConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *RulesConfig) Merge(overlay *RulesConfig) {
	if overlay.Path != "" {
		c.Path = overlay.Path
	}
	if overlay.MaterialityFloor != 0 {
		c.MaterialityFloor = overlay.MaterialityFloor
	}
	if overlay.HistoryDays != 0 {
		c.HistoryDays = overlay.HistoryDays
	}
}

func (c *RulesConfig) loadDefaults() {
	if c.MaterialityFloor == 0 {
		c.MaterialityFloor = 0.01
	}
	if c.HistoryDays == 0 {
		c.HistoryDays = 30
	}
}

func (c *RulesConfig) loadEnv() {
	if v := os.Getenv(EnvRulesPath); v != "" {
		c.Path = v
	}
	if v := os.Getenv(EnvRulesMaterialityFloor); v != "" {
		if floor, err := strconv.ParseFloat(v, 64); err == nil {
			c.MaterialityFloor = floor
		}
	}
	if v := os.Getenv(EnvRulesHistoryDays); v != "" {
		if days, err := strconv.Atoi(v); err == nil {
			c.HistoryDays = days
		}
	}
}

func (c *RulesConfig) validate() error {
	if c.MaterialityFloor < 0 || c.MaterialityFloor >= 1 {
		return fmt.Errorf("invalid materiality_floor: %v", c.MaterialityFloor)
	}
	if c.HistoryDays < 1 || c.HistoryDays > 365 {
		return fmt.Errorf("invalid history_days: %d", c.HistoryDays)
	}
	return nil
}
