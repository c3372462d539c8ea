package config

import (
	"strings"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())

	assert.True(t, cfg.Generate.IncludeDeposits)
	assert.True(t, cfg.Generate.IncludePayments)
	assert.False(t, cfg.Generate.IncludeInvestments)
	assert.False(t, cfg.Generate.IncludeLoans)
	assert.Equal(t, 1, cfg.Generate.Batch)
	assert.Equal(t, DefaultOutputDir, cfg.Output.Dir)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"TooFewTransactions", func(c *Config) { c.Generate.Transactions = 5 }, "generate.transactions"},
		{"TooManyTransactions", func(c *Config) { c.Generate.Transactions = 5001 }, "generate.transactions"},
		{"ZeroBatch", func(c *Config) { c.Generate.Batch = 0 }, "generate.batch"},
		{"NegativeWorkers", func(c *Config) { c.Generate.Workers = -1 }, "generate.workers"},
		{"BadFormat", func(c *Config) { c.Output.Format = "xml" }, "output.format"},
		{"EmptyDir", func(c *Config) { c.Output.Dir = "" }, "output.dir"},
		{"EmptyBasename", func(c *Config) { c.Output.Basename = "" }, "output.basename"},
		{"BasenameWithPath", func(c *Config) { c.Output.Basename = "../fixture" }, "output.basename"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}

	t.Run("AggregatesMessages", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Generate.Batch = 0
		cfg.Output.Format = "xml"
		err := cfg.Validate()
		require.Error(t, err)
		assert.Equal(t, 2, strings.Count(err.Error(), "  - "))
	})

	t.Run("BoundaryTransactions", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Generate.Transactions = MinTransactions
		assert.NoError(t, cfg.Validate())
		cfg.Generate.Transactions = MaxTransactions
		assert.NoError(t, cfg.Validate())
	})
}

func TestLoadFrom(t *testing.T) {
	v := viper.New()
	v.Set("company.industry", "Technology")
	v.Set("generate.transactions", 250)
	v.Set("generate.include_loans", true)
	v.Set("output.format", "both")

	cfg, err := LoadFrom(v)
	require.NoError(t, err)

	assert.Equal(t, "Technology", cfg.Company.Industry)
	assert.Equal(t, 250, cfg.Generate.Transactions)
	assert.True(t, cfg.Generate.IncludeLoans)
	assert.True(t, cfg.Generate.IncludeDeposits, "unset keys keep defaults")
	assert.True(t, cfg.Output.WantJSON())
	assert.True(t, cfg.Output.WantCSV())
}

func TestOutputFormats(t *testing.T) {
	assert.True(t, OutputConfig{Format: "JSON"}.WantJSON())
	assert.False(t, OutputConfig{Format: "json"}.WantCSV())
	assert.True(t, OutputConfig{Format: "csv"}.WantCSV())
	assert.False(t, OutputConfig{Format: "csv"}.WantJSON())
}
