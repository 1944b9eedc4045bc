// Config loading for the labrec CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/mesh-intelligence/labrec/internal/analysis"
	"github.com/mesh-intelligence/labrec/pkg/types"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	configFileExt  = "config.yaml"

	// Config keys.
	cfgKeyBackend          = "backend"
	cfgKeyDataDir          = "data_dir"
	cfgKeyAssistantModel   = "assistant.model"
	cfgKeyAssistantAPIBase = "assistant.api_base"
	cfgKeyCathodeRatio     = "analysis.cathode_loss_ratio"
	cfgKeyAnodeLoss        = "analysis.anode_loss_g"
	cfgKeyInstabilityStd   = "analysis.instability_std_g"
)

// defaultConfigYAML is the content written to config.yaml on first run.
const defaultConfigYAML = `# labrec configuration

# Backend selection
backend: sqlite

# Data directory (optional; overridable by --data-dir flag)
# data_dir:

# AI assistant (API key comes from the OPENAI_API_KEY environment variable)
# assistant:
#   model: gpt-4o-mini
#   api_base:

# Anomaly detection thresholds
# analysis:
#   cathode_loss_ratio: 0.5
#   anode_loss_g: 0.1
#   instability_std_g: 0.05
`

// loadConfig reads config.yaml from the resolved config directory using
// Viper. It creates the config directory and a default config.yaml on
// first run. A missing config.yaml is not an error.
func loadConfig(configDir string) (*viper.Viper, error) {
	if err := ensureConfigDir(configDir); err != nil {
		return nil, fmt.Errorf("ensure config dir: %w", err)
	}

	if err := ensureDefaultConfigFile(configDir); err != nil {
		return nil, fmt.Errorf("ensure default config: %w", err)
	}

	v := viper.New()
	v.SetDefault(cfgKeyBackend, types.BackendSQLite)
	defaults := analysis.DefaultThresholds()
	v.SetDefault(cfgKeyCathodeRatio, defaults.CathodeLossRatio)
	v.SetDefault(cfgKeyAnodeLoss, defaults.AnodeLossG)
	v.SetDefault(cfgKeyInstabilityStd, defaults.InstabilityStdG)
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return v, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	return v, nil
}

// ensureConfigDir creates the config directory if it does not exist.
func ensureConfigDir(configDir string) error {
	return os.MkdirAll(configDir, 0o755)
}

// ensureDefaultConfigFile creates a default config.yaml if the file does
// not exist in the config directory.
func ensureDefaultConfigFile(configDir string) error {
	path := filepath.Join(configDir, configFileExt)

	_, err := os.Stat(path)
	if err == nil {
		// File already exists.
		return nil
	}
	if !os.IsNotExist(err) {
		return fmt.Errorf("stat config file: %w", err)
	}

	return os.WriteFile(path, []byte(defaultConfigYAML), 0o644)
}

// thresholdsFromConfig reads the anomaly detection limits.
func thresholdsFromConfig(v *viper.Viper) analysis.Thresholds {
	return analysis.Thresholds{
		CathodeLossRatio: v.GetFloat64(cfgKeyCathodeRatio),
		AnodeLossG:       v.GetFloat64(cfgKeyAnodeLoss),
		InstabilityStdG:  v.GetFloat64(cfgKeyInstabilityStd),
	}
}
