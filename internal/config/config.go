package config

import (
	"os"
	"path/filepath"
)

const VERSION = "0.2.1"

// Config holds global application settings
type Config struct {
	Debug bool
	Quiet bool

	// EsmRunscriptsBin is the external check tool (name or absolute path).
	EsmRunscriptsBin string

	// BaseDir is the experiment base directory ("" = current directory).
	BaseDir string

	HistoryEnabled bool
	HistoryDBPath  string
}

// Global holds the singleton configuration instance
var Global Config

// LoadDefaults fills Global with built-in defaults. Viper values and
// command-line flags are layered on top afterwards.
func LoadDefaults() {
	historyPath := "history.db"
	if home, err := os.UserHomeDir(); err == nil {
		historyPath = filepath.Join(home, ".esmwrap", "history.db")
	}

	Global = Config{
		Debug:            false,
		Quiet:            false,
		EsmRunscriptsBin: "esm_runscripts",
		BaseDir:          "",
		HistoryEnabled:   true,
		HistoryDBPath:    historyPath,
	}
}
