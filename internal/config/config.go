package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all runtime configuration for the fixture generator
type Config struct {
	// Company profile fields; empty values are filled in randomly
	Company CompanyConfig `mapstructure:"company"`

	// Generation options
	Generate GenerateConfig `mapstructure:"generate"`

	// Output settings
	Output OutputConfig `mapstructure:"output"`

	// Logging
	Verbose bool `mapstructure:"verbose"`
	NoColor bool `mapstructure:"no_color"`
}

// CompanyConfig is the partial company profile supplied by the user
type CompanyConfig struct {
	Name          string `mapstructure:"name"`
	Industry      string `mapstructure:"industry"`
	BusinessModel string `mapstructure:"business_model"`
	Size          string `mapstructure:"size"`
	Location      string `mapstructure:"location"`
	FoundingDate  string `mapstructure:"founding_date"`
}

// GenerateConfig holds data generation settings
type GenerateConfig struct {
	// Random seed for reproducibility (0 = random)
	Seed int64 `mapstructure:"seed"`

	// Added transaction count (0 = size-tier default)
	Transactions int `mapstructure:"transactions"`

	// Date window, YYYY-MM-DD (empty = last 730 days)
	StartDate string `mapstructure:"start_date"`
	EndDate   string `mapstructure:"end_date"`

	// Account filters
	IncludeDeposits    bool `mapstructure:"include_deposits"`
	IncludePayments    bool `mapstructure:"include_payments"`
	IncludeInvestments bool `mapstructure:"include_investments"`
	IncludeLoans       bool `mapstructure:"include_loans"`

	// Number of independent datasets to generate
	Batch int `mapstructure:"batch"`

	// Parallelism for batch generation (0 = auto-detect CPUs)
	Workers int `mapstructure:"workers"`
}

// OutputConfig holds output file settings
type OutputConfig struct {
	Dir      string `mapstructure:"dir"`
	Basename string `mapstructure:"basename"`
	Format   string `mapstructure:"format"`
	Compress bool   `mapstructure:"compress"`
}

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Generate: GenerateConfig{
			Seed:            0,
			IncludeDeposits: true,
			IncludePayments: true,
			Batch:           1,
			Workers:         0,
		},
		Output: OutputConfig{
			Dir:      DefaultOutputDir,
			Basename: DefaultBasename,
			Format:   DefaultFormat,
		},
	}
}

// Load reads configuration from viper into a Config struct
func Load() (*Config, error) {
	return LoadFrom(viper.GetViper())
}

// LoadFrom reads configuration from the given viper instance
func LoadFrom(v *viper.Viper) (*Config, error) {
	cfg := DefaultConfig()

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return cfg, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	var errs []string

	if c.Generate.Transactions != 0 &&
		(c.Generate.Transactions < MinTransactions || c.Generate.Transactions > MaxTransactions) {
		errs = append(errs, fmt.Sprintf("generate.transactions must be 0 or between %d and %d", MinTransactions, MaxTransactions))
	}
	if c.Generate.Batch < 1 || c.Generate.Batch > MaxBatchSize {
		errs = append(errs, fmt.Sprintf("generate.batch must be between 1 and %d", MaxBatchSize))
	}
	if c.Generate.Workers < 0 {
		errs = append(errs, "generate.workers must be non-negative")
	}

	switch strings.ToLower(c.Output.Format) {
	case "json", "csv", "both":
	default:
		errs = append(errs, fmt.Sprintf("output.format must be json, csv or both (got %q)", c.Output.Format))
	}
	if c.Output.Dir == "" {
		errs = append(errs, "output.dir must not be empty")
	}
	if c.Output.Basename == "" || strings.ContainsAny(c.Output.Basename, `/\`) {
		errs = append(errs, fmt.Sprintf("output.basename must be a plain file name (got %q)", c.Output.Basename))
	}

	if len(errs) > 0 {
		return fmt.Errorf("validation errors:\n  - %s", joinErrors(errs))
	}

	return nil
}

// WantJSON reports whether JSON output is requested
func (o OutputConfig) WantJSON() bool {
	f := strings.ToLower(o.Format)
	return f == "json" || f == "both"
}

// WantCSV reports whether CSV output is requested
func (o OutputConfig) WantCSV() bool {
	f := strings.ToLower(o.Format)
	return f == "csv" || f == "both"
}

// joinErrors joins error messages with newline and bullet points
func joinErrors(errs []string) string {
	result := errs[0]
	for i := 1; i < len(errs); i++ {
		result += "\n  - " + errs[i]
	}
	return result
}
