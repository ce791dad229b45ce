/*
Package config manages TOML config for Lantern services.
*/
package config

import (
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/ferrith/lantern/internal/utils"
)

// Config holds the entire config structure
type Config struct {
	Engine   EngineConfig   `toml:"engine"`
	Fuzzy    FuzzyConfig    `toml:"fuzzy"`
	CLI      CliConfig      `toml:"cli"`
	Prefixes []PrefixConfig `toml:"prefix"`
	Apps     []AppConfig    `toml:"app"`
}

// EngineConfig has aggregator related options.
type EngineConfig struct {
	Workers           int `toml:"workers"`
	MaxResults        int `toml:"max_results"`
	ProviderTimeoutMs int `toml:"provider_timeout_ms"`
}

// FuzzyConfig is the fuzzy-score tuning table. The defaults are empirically
// tuned values; changing them shifts ranking, not matching correctness.
type FuzzyConfig struct {
	DensityWeight     float64 `toml:"density_weight"`
	ConsecutiveWeight float64 `toml:"consecutive_weight"`
	LengthWeight      float64 `toml:"length_weight"`
	StartBonus        float64 `toml:"start_bonus"`
	Floor             float64 `toml:"floor"`
	Cap               float64 `toml:"cap"`
}

// CliConfig holds cli interface options.
type CliConfig struct {
	DefaultLimit int `toml:"default_limit"`
}

// PrefixConfig is one scope trigger row.
type PrefixConfig struct {
	Trigger  string `toml:"trigger"`
	Provider string `toml:"provider"`
	Title    string `toml:"title"`
	Subtitle string `toml:"subtitle"`
	Icon     string `toml:"icon"`
}

// AppConfig is one application catalog row, used when the catalog comes
// from a file instead of a live scanner.
type AppConfig struct {
	Name          string   `toml:"name"`
	Path          string   `toml:"path"`
	Icon          string   `toml:"icon"`
	AliasFull     []string `toml:"alias_full"`
	AliasInitials []string `toml:"alias_initials"`
	AliasExtra    []string `toml:"alias_extra"`
}

// GetConfigDir returns the config directory with fallback priority:
// 1. ~/.config/
// 2. ~/Library/Application Support/ (macOS)
// 3. Current executable dir
// 4. builtin defaults
func GetConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Errorf("Failed to get home directory: %v", err)
		execDir, execErr := utils.GetExecutableDir()
		if execErr != nil {
			return "", execErr
		}
		return execDir, nil
	}
	primaryPath := filepath.Join(homeDir, ".config", "lantern")
	if result := utils.CheckDirStatus(primaryPath); result.Writable {
		return primaryPath, nil
	}
	// Not conventional, fallback from ~/.config if not writable
	macOSPath := filepath.Join(homeDir, "Library", "Application Support", "lantern")
	if result := utils.CheckDirStatus(macOSPath); result.Writable {
		return macOSPath, nil
	}
	execDir, err := utils.GetExecutableDir()
	if err != nil {
		log.Errorf("Failed to get executable directory: %v", err)
		return "", err
	}
	return execDir, nil
}

// GetDefaultConfigPath returns the default path for config.toml
func GetDefaultConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.toml"), nil
}

// LoadConfigWithPriority loads config with priority:
// 1. Custom path from --config flag
// 2. Default path: [UserConfigDir]/lantern/config.toml
// 3. Builtin defaults
func LoadConfigWithPriority(customConfigPath string) (*Config, string, error) {
	var config *Config
	var err error

	if customConfigPath != "" {
		if _, statErr := os.Stat(customConfigPath); statErr == nil {
			config, err = LoadConfig(customConfigPath)
			if err != nil {
				log.Warnf("Failed to load custom config from %s: %v. Trying default path...", customConfigPath, err)
			} else {
				log.Debugf("Loaded config from custom path: %s", customConfigPath)
				return config, customConfigPath, nil
			}
		} else {
			log.Warnf("Custom config file not found at %s: %v. Trying default path...", customConfigPath, statErr)
		}
	}
	defaultPath, err := GetDefaultConfigPath()
	if err != nil {
		log.Warnf("Failed to determine default config path: %v. Using built-in defaults...", err)
		return DefaultConfig(), "", nil
	}

	config, err = InitConfig(defaultPath)
	if err != nil {
		log.Warnf("Failed to load/create config at default path %s: %v. Using builtin defaults...", defaultPath, err)
		return DefaultConfig(), "", nil
	}
	log.Debugf("Loaded config from default path: %s", defaultPath)
	return config, defaultPath, nil
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Engine: EngineConfig{
			Workers:           0,
			MaxResults:        64,
			ProviderTimeoutMs: 0,
		},
		Fuzzy: FuzzyConfig{
			DensityWeight:     0.55,
			ConsecutiveWeight: 0.25,
			LengthWeight:      0.10,
			StartBonus:        0.08,
			Floor:             0.60,
			Cap:               0.84,
		},
		CLI: CliConfig{
			DefaultLimit: 24,
		},
		Prefixes: []PrefixConfig{
			{Trigger: "a", Provider: "apps", Title: "Applications", Subtitle: "Search installed applications"},
			{Trigger: "calc", Provider: "calc", Title: "Calculator", Subtitle: "Evaluate an expression"},
		},
	}
}

// InitConfig loads config from file or creates default if missing
func InitConfig(configPath string) (*Config, error) {
	configDir := filepath.Dir(configPath)

	if err := utils.EnsureDir(configDir); err != nil {
		log.Warnf("Failed to create config directory %s: %v. Using built-in defaults...", configDir, err)
		return DefaultConfig(), nil
	}

	if !utils.FileExists(configPath) {
		config := DefaultConfig()
		if err := SaveConfig(config, configPath); err != nil {
			log.Warnf("Failed to create default config file at %s: %v. Using built-in defaults...", configPath, err)
			return DefaultConfig(), nil
		}
		log.Debugf("Created default config file at: %s", configPath)
		return config, nil
	}

	config, err := LoadConfig(configPath)
	if err != nil {
		log.Warnf("Failed to load config from %s: %v. Using built-in defaults...", configPath, err)
		return DefaultConfig(), nil
	}
	return config, nil
}

// LoadConfig loads from a TOML file
func LoadConfig(configPath string) (*Config, error) {
	config := DefaultConfig()

	if err := utils.LoadTOMLFile(configPath, config); err != nil {
		return tryPartialParse(configPath)
	}
	return config, nil
}

// tryPartialParse attempts to parse a TOML file
func tryPartialParse(configPath string) (*Config, error) {
	config := DefaultConfig()

	tempConfig, err := utils.ParseTOMLWithRecovery(configPath)
	if err != nil {
		log.Warnf("Could not parse any valid configuration from %s: %v. Using all defaults.", configPath, err)
		return config, nil
	}

	if engineSection, ok := utils.ExtractSection(tempConfig, "engine"); ok {
		extractEngineConfig(engineSection, &config.Engine)
	}
	if fuzzySection, ok := utils.ExtractSection(tempConfig, "fuzzy"); ok {
		extractFuzzyConfig(fuzzySection, &config.Fuzzy)
	}
	if cliSection, ok := utils.ExtractSection(tempConfig, "cli"); ok {
		extractCliConfig(cliSection, &config.CLI)
	}
	return config, nil
}

// extractEngineConfig extracts aggregator configuration from a map
func extractEngineConfig(data map[string]any, engine *EngineConfig) {
	if val, ok := utils.ExtractInt64(data, "workers"); ok {
		engine.Workers = val
	}
	if val, ok := utils.ExtractInt64(data, "max_results"); ok {
		engine.MaxResults = val
	}
	if val, ok := utils.ExtractInt64(data, "provider_timeout_ms"); ok {
		engine.ProviderTimeoutMs = val
	}
}

// extractFuzzyConfig extracts the tuning table from a map
func extractFuzzyConfig(data map[string]any, fuzzy *FuzzyConfig) {
	if val, ok := utils.ExtractFloat64(data, "density_weight"); ok {
		fuzzy.DensityWeight = val
	}
	if val, ok := utils.ExtractFloat64(data, "consecutive_weight"); ok {
		fuzzy.ConsecutiveWeight = val
	}
	if val, ok := utils.ExtractFloat64(data, "length_weight"); ok {
		fuzzy.LengthWeight = val
	}
	if val, ok := utils.ExtractFloat64(data, "start_bonus"); ok {
		fuzzy.StartBonus = val
	}
	if val, ok := utils.ExtractFloat64(data, "floor"); ok {
		fuzzy.Floor = val
	}
	if val, ok := utils.ExtractFloat64(data, "cap"); ok {
		fuzzy.Cap = val
	}
}

// extractCliConfig extracts CLI config from a map
func extractCliConfig(data map[string]any, cli *CliConfig) {
	if val, ok := utils.ExtractInt64(data, "default_limit"); ok {
		cli.DefaultLimit = val
	}
}

// SaveConfig saves into a TOML file
func SaveConfig(config *Config, configPath string) error {
	return utils.SaveTOMLFile(config, configPath)
}

// GetActiveConfigPath returns the absolute path of loaded config file
func GetActiveConfigPath(configPath string) string {
	if configPath == "" {
		if defaultPath, err := GetDefaultConfigPath(); err == nil {
			return defaultPath
		}
		return "unknown"
	}
	return utils.GetAbsolutePath(configPath)
}
