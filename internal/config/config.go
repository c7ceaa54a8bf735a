package config

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/Franco-Arce/Tuchi/internal/categorizer"
	"github.com/Franco-Arce/Tuchi/internal/loader"
	"github.com/Franco-Arce/Tuchi/internal/summary"
)

// Config represents the top-level tuchi.yaml configuration.
type Config struct {
	Sheets     SheetsConfig     `yaml:"sheets"`
	Matching   MatchingConfig   `yaml:"matching"`
	Thresholds ThresholdsConfig `yaml:"thresholds"`
	Rules      RulesConfig      `yaml:"rules,omitempty"`
}

// SheetsConfig locates the header row in each source template.
type SheetsConfig struct {
	BookHeaderRow int `yaml:"book_header_row"`
	BankHeaderRow int `yaml:"bank_header_row"`
}

// MatchingConfig controls the check-validation flow.
type MatchingConfig struct {
	// ToleranceCents is the amount-consistency tolerance in cents.
	ToleranceCents int64 `yaml:"tolerance_cents"`
}

// ThresholdsConfig classifies the unexplained residual.
type ThresholdsConfig struct {
	NegligibleBelow  float64 `yaml:"negligible_below"`
	SignificantAbove float64 `yaml:"significant_above"`
}

// RulesConfig appends user keyword rules after the built-in tables.
// Order within each list is preserved; built-ins always run first.
type RulesConfig struct {
	Permanent []categorizer.Rule `yaml:"permanent,omitempty"`
	Temporal  []categorizer.Rule `yaml:"temporal,omitempty"`
}

// Load reads a tuchi.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns the conventional configuration: book headers one row
// below the bank's, $1.00 match tolerance, $1 / $10,000 residual
// bounds.
func Default() *Config {
	return &Config{
		Sheets: SheetsConfig{
			BookHeaderRow: loader.DefaultBookHeaderRow,
			BankHeaderRow: loader.DefaultBankHeaderRow,
		},
		Matching: MatchingConfig{
			ToleranceCents: 100,
		},
		Thresholds: ThresholdsConfig{
			NegligibleBelow:  1,
			SignificantAbove: 10000,
		},
	}
}

// Categorizer builds the rule evaluator with any configured extras.
func (c *Config) Categorizer() *categorizer.Categorizer {
	return categorizer.New(c.Rules.Permanent, c.Rules.Temporal)
}

// ResidualThresholds converts the configured bounds for the summary.
func (c *Config) ResidualThresholds() summary.Thresholds {
	return summary.Thresholds{
		Negligible:  decimal.NewFromFloat(c.Thresholds.NegligibleBelow),
		Significant: decimal.NewFromFloat(c.Thresholds.SignificantAbove),
	}
}

// Tolerance converts the configured match tolerance to an amount.
func (c *Config) Tolerance() decimal.Decimal {
	return decimal.New(c.Matching.ToleranceCents, -2)
}
