package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/fxledger/fx"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.NotNil(t, cfg)
	assert.Equal(t, "./fxledger.sqlite", cfg.Ledger.DBPath)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.NoError(t, cfg.Validate())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  *Config
		wantErr bool
		errMsg  string
	}{
		{
			name:    "valid config",
			config:  Default(),
			wantErr: false,
		},
		{
			name:    "missing db path",
			config:  &Config{},
			wantErr: true,
			errMsg:  "ledger.db_path is required",
		},
		{
			name: "unknown currency",
			config: &Config{
				Ledger:     LedgerConfig{DBPath: "ledger.db"},
				Currencies: []string{"USD", "XYZ"},
			},
			wantErr: true,
			errMsg:  "currencies",
		},
		{
			name: "bad log level",
			config: &Config{
				Ledger: LedgerConfig{DBPath: "ledger.db"},
				Log:    LogConfig{Level: "loud"},
			},
			wantErr: true,
			errMsg:  "log.level",
		},
		{
			name: "currency subset ok",
			config: &Config{
				Ledger:     LedgerConfig{DBPath: "ledger.db"},
				Currencies: []string{"usd", "EUR"},
				Log:        LogConfig{Level: "info"},
			},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestStatementCurrencies(t *testing.T) {
	cfg := Default()
	assert.Equal(t, fx.Currencies(), cfg.StatementCurrencies())

	cfg.Currencies = []string{"usd", "EUR"}
	assert.Equal(t, []fx.Currency{fx.USD, fx.EUR}, cfg.StatementCurrencies())
}

func TestLoadSaveRoundTrip(t *testing.T) {
	dir := t.TempDir()

	cfg := Default()
	cfg.Currencies = []string{"USD", "EUR"}
	cfg.Log.Level = "debug"

	yamlPath := filepath.Join(dir, "config.yaml")
	require.NoError(t, cfg.SaveToFile(yamlPath))

	loaded, err := LoadFromFile(yamlPath)
	require.NoError(t, err)
	assert.Equal(t, cfg.Ledger.DBPath, loaded.Ledger.DBPath)
	assert.Equal(t, cfg.Currencies, loaded.Currencies)
	assert.Equal(t, "debug", loaded.Log.Level)

	jsonPath := filepath.Join(dir, "config.json")
	require.NoError(t, cfg.SaveToFile(jsonPath))

	loaded, err = LoadFromFile(jsonPath)
	require.NoError(t, err)
	assert.Equal(t, cfg.Currencies, loaded.Currencies)
}

func TestLoadInvalidFile(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadFromFile(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("ledger:\n  db_path: ''\n"), 0644))
	_, err = LoadFromFile(bad)
	assert.Error(t, err)
}
