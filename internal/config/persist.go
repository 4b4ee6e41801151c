package config

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/spf13/viper"
)

// ConfigFilename is the name of the config file
const ConfigFilename = "config"

// ConfigType is the type of config file (yaml, json, toml)
const ConfigType = "yaml"

// InitViper initializes Viper with proper search paths and defaults
// Priority (highest to lowest):
// 1. Command-line flags (handled by cobra)
// 2. Environment variables (ESMWRAP_*)
// 3. User config file (~/.config/esmwrap/config.yaml)
// 4. System config file (/etc/esmwrap/config.yaml)
// 5. Defaults
func InitViper() error {
	viper.SetConfigName(ConfigFilename)
	viper.SetConfigType(ConfigType)

	// Set config search paths (order matters)
	// User config (highest priority)
	if userConfigDir, err := os.UserConfigDir(); err == nil {
		viper.AddConfigPath(filepath.Join(userConfigDir, "esmwrap"))
	}

	// Home directory fallback
	if home, err := os.UserHomeDir(); err == nil {
		viper.AddConfigPath(filepath.Join(home, ".esmwrap"))
	}

	// System-wide config (lower priority)
	viper.AddConfigPath("/etc/esmwrap")

	// Current directory (for development)
	viper.AddConfigPath(".")

	// Environment variables
	viper.SetEnvPrefix("ESMWRAP")
	viper.AutomaticEnv()

	// Set defaults (lowest priority)
	setDefaults()

	// Read config file (non-fatal if not found)
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// Config file not found; will use defaults and auto-detect
			return nil
		}
		return fmt.Errorf("error reading config file: %w", err)
	}

	return nil
}

// setDefaults sets default values for all config keys
func setDefaults() {
	viper.SetDefault("esm_runscripts_bin", "esm_runscripts")
	viper.SetDefault("base_dir", "")
	viper.SetDefault("history.enabled", true)
	viper.SetDefault("history.db_path", Global.HistoryDBPath)
}

// GetUserConfigPath returns the path to the user config file
func GetUserConfigPath() (string, error) {
	userConfigDir, err := os.UserConfigDir()
	if err != nil {
		// Fallback to home directory
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, ".esmwrap", ConfigFilename+"."+ConfigType), nil
	}

	return filepath.Join(userConfigDir, "esmwrap", ConfigFilename+"."+ConfigType), nil
}

// SaveConfig saves current Viper config to user config file
func SaveConfig() error {
	configPath, err := GetUserConfigPath()
	if err != nil {
		return fmt.Errorf("failed to get config path: %w", err)
	}

	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := viper.WriteConfigAs(configPath); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// ValidateBinary checks if a binary exists and is executable
func ValidateBinary(binPath string) bool {
	if binPath == "" {
		return false
	}

	// If it's a full path, check directly
	if filepath.IsAbs(binPath) {
		info, err := os.Stat(binPath)
		if err != nil {
			return false
		}
		// Check if it's executable (unix-style check)
		return info.Mode()&0111 != 0
	}

	// Otherwise, try to find it in PATH
	_, err := exec.LookPath(binPath)
	return err == nil
}

// AutoDetectAndSave auto-detects the esm_runscripts binary and saves it to
// the user config file if the configured one is missing or invalid.
// Returns true if config was updated
func AutoDetectAndSave() (bool, error) {
	esmBin := viper.GetString("esm_runscripts_bin")
	if ValidateBinary(esmBin) {
		return false, nil
	}

	detected, err := exec.LookPath("esm_runscripts")
	if err != nil {
		return false, nil
	}

	viper.Set("esm_runscripts_bin", detected)
	if err := SaveConfig(); err != nil {
		return false, err
	}
	return true, nil
}

// LoadFromViper loads config from Viper into Global struct
func LoadFromViper() {
	if bin := viper.GetString("esm_runscripts_bin"); bin != "" {
		Global.EsmRunscriptsBin = bin
	}

	if baseDir := viper.GetString("base_dir"); baseDir != "" {
		Global.BaseDir = baseDir
	}

	Global.HistoryEnabled = viper.GetBool("history.enabled")

	if dbPath := viper.GetString("history.db_path"); dbPath != "" {
		Global.HistoryDBPath = dbPath
	}
}
