// Root command for the labrec CLI.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/mesh-intelligence/labrec/internal/paths"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// Global flag values.
var (
	flagConfigDir string
	flagDataDir   string
	flagJSON      bool
	flagVerbose   bool
)

// appConfig holds the loaded configuration; logger is the shared
// structured logger. Both are set by PersistentPreRunE so every
// subcommand can use them.
var (
	appConfig *viper.Viper
	logger    *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "labrec",
	Short: "labrec keeps laboratory experiment records",
	Long: `labrec is a record keeper for carbon rod exfoliation experiments.
It stores experiment records in a local SQLite database and provides
filtered listings, CSV export, statistics with anomaly detection, a
reagent preparation calculator, and an optional AI assistant.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		logger, err = newLogger(flagVerbose)
		if err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		configDir, err := resolveConfigDir()
		if err != nil {
			return fmt.Errorf("resolve config dir: %w", err)
		}

		appConfig, err = loadConfig(configDir)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfigDir, "config-dir", "", "configuration directory (default: platform config dir)")
	rootCmd.PersistentFlags().StringVar(&flagDataDir, "data-dir", "", "data directory (default: $(CWD)/.labrec-db)")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "output as JSON")
	rootCmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "enable debug logging")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(getCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(calcCmd)
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(lookupCmd)
	rootCmd.AddCommand(assistCmd)
}

// newLogger builds the CLI logger. The default configuration stays quiet
// so structured logs do not interleave with command output; --verbose
// switches to the development config at debug level.
func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	return cfg.Build()
}

// resolveConfigDir returns the configuration directory following the
// precedence flag > LABREC_CONFIG_DIR env > platform default.
func resolveConfigDir() (string, error) {
	return paths.ResolveConfigDir(flagConfigDir)
}

// resolveDataDir returns the data directory following the precedence
// flag > config.yaml data_dir > LABREC_DATA_DIR env > $(CWD)/.labrec-db.
func resolveDataDir() (string, error) {
	var configValue string
	if appConfig != nil {
		configValue = appConfig.GetString(cfgKeyDataDir)
	}
	return paths.ResolveDataDir(flagDataDir, configValue)
}
