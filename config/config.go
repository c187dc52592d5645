package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/rustyeddy/fxledger/fx"
)

// Config is the process configuration for the ledger CLI and any service
// embedding the core.
type Config struct {
	Ledger     LedgerConfig `json:"ledger" yaml:"ledger"`
	Currencies []string     `json:"currencies,omitempty" yaml:"currencies,omitempty"`
	Log        LogConfig    `json:"log" yaml:"log"`
}

// LedgerConfig locates the SQLite database backing the ledger store.
type LedgerConfig struct {
	DBPath string `json:"db_path" yaml:"db_path"`
}

// LogConfig controls the structured logger.
type LogConfig struct {
	Level string `json:"level" yaml:"level"` // debug, info, warn or error
}

// LoadFromFile loads configuration from a file (YAML or JSON).
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := &Config{}

	// Try YAML first, fall back to JSON
	err = yaml.Unmarshal(data, cfg)
	if err != nil {
		err = json.Unmarshal(data, cfg)
		if err != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// SaveToFile saves configuration to a file (JSON or YAML based on extension).
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error

	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
	}

	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}

	return nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Ledger.DBPath == "" {
		return fmt.Errorf("ledger.db_path is required")
	}
	// Currencies, when given, restrict statement output; each must be one
	// of the supported set, which is fixed in the fx package.
	for _, s := range c.Currencies {
		if _, err := fx.ParseCurrency(s); err != nil {
			return fmt.Errorf("currencies: %w", err)
		}
	}
	switch c.Log.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level must be one of debug, info, warn, error")
	}
	return nil
}

// StatementCurrencies returns the configured currency subset, or the full
// supported set when none is configured.
func (c *Config) StatementCurrencies() []fx.Currency {
	if len(c.Currencies) == 0 {
		return fx.Currencies()
	}
	out := make([]fx.Currency, 0, len(c.Currencies))
	for _, s := range c.Currencies {
		cur, err := fx.ParseCurrency(s)
		if err != nil {
			continue // Validate rejects these before we get here
		}
		out = append(out, cur)
	}
	return out
}

// Default returns a configuration with sensible defaults.
func Default() *Config {
	return &Config{
		Ledger: LedgerConfig{
			DBPath: "./fxledger.sqlite",
		},
		Log: LogConfig{
			Level: "warn",
		},
	}
}
