package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/willfong/finfixture/internal/config"
	"github.com/willfong/finfixture/internal/logger"
	"github.com/willfong/finfixture/internal/ui"
)

var (
	cfgFile string
	verbose bool
	noColor bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "finfixture",
	Short: "Synthetic financial-aggregation fixture generator",
	Long: `Generate realistic, internally consistent banking data for a fictional
company: a company profile, its bank accounts, and a transaction sync feed
(added, modified and removed transactions).

Output is shaped like a financial-aggregation API response and is meant for
seeding demos, UI development and integration tests.

Settings come from flags, FINFIXTURE_* environment variables, or a
finfixture.yaml config file (see --config). Tunable generation ratios are in
internal/config/defaults.go.

Example usage:
  finfixture generate --size "Medium (51-200)" --industry Technology
  finfixture generate --transactions 500 --format both --seed 42
  finfixture validate output/fixture.json`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./finfixture.yaml or $HOME/.config/finfixture.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colors and animations")

	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	viper.BindPFlag("no_color", rootCmd.PersistentFlags().Lookup("no-color"))

	// Silence usage on error - we'll print our own messages
	rootCmd.SilenceUsage = true

	rootCmd.SetVersionTemplate("{{.Version}}\n")
}

// initConfig reads the config file and FINFIXTURE_* environment variables
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName(config.ConfigFileName)
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(home + "/.config")
		}
	}

	viper.SetEnvPrefix(config.EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			fmt.Fprintln(os.Stderr, "Error reading config file:", err)
			os.Exit(1)
		}
	}
}

// loadConfig loads and validates the runtime configuration
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newUI creates the terminal UI honoring --no-color
func newUI(cfg *config.Config) *ui.UI {
	u := ui.New()
	if noColor || (cfg != nil && cfg.NoColor) {
		u.SetNoColor(true)
	}
	return u
}

// newLogger creates the stderr logger honoring --verbose and --no-color
func newLogger(cfg *config.Config) zerolog.Logger {
	v, nc := verbose, noColor
	if cfg != nil {
		v = v || cfg.Verbose
		nc = nc || cfg.NoColor
	}
	return logger.New(v, nc)
}

// Verbose returns whether verbose mode is enabled
func Verbose() bool {
	return verbose
}
