package cmd

import (
	"errors"
	"fmt"
	"os"
	"os/exec"

	"github.com/spf13/cobra"

	"github.com/pgierz/snakemake-wrapper-esm-master/internal/cli"
	"github.com/pgierz/snakemake-wrapper-esm-master/internal/config"
)

var (
	debugMode bool
	quietMode bool
)

var rootCmd = &cobra.Command{
	Use:           "esmwrap",
	Short:         "Extract scheduler resources and executable scripts from esm_runscripts experiments.",
	Long: `esmwrap wraps esm_runscripts for workflow engines: it runs the tool in
check mode, parses the generated finished_config.yaml into a normalized
resource mapping (nodes, tasks, mem_mb, runtime, partition, account), and
turns generated .run batch scripts into plain executable scripts by
stripping scheduler directives.

The resource mapping is printed to stdout; all diagnostics go to stderr so
the output stays consumable by automation (e.g. Snakemake resources).`,
	Version:       config.VERSION,
	SilenceErrors: true,

	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Step 1: Load defaults (paths, binary names)
		config.LoadDefaults()

		// Step 2: Initialize Viper (read config file, env vars)
		if err := config.InitViper(); err != nil {
			cli.PrintDebug("Error reading config file: %v", err)
		}

		// Step 3: Auto-detect the esm_runscripts binary if needed
		updated, err := config.AutoDetectAndSave()
		if err != nil {
			cli.PrintDebug("Failed to save config: %v", err)
		} else if updated {
			if configPath, err := config.GetUserConfigPath(); err == nil {
				cli.PrintDebug("Detected esm_runscripts saved to: %s", configPath)
			}
		}

		// Step 4: Load detected values from Viper into Global config
		config.LoadFromViper()

		// Step 5: Apply command-line flags (highest priority)
		if debugMode {
			cli.DebugMode = true
			config.Global.Debug = true
			cli.PrintDebug("Debug mode enabled")
			cli.PrintDebug("esmwrap Version: %s", cli.StyleInfo(config.VERSION))
			cli.PrintDebug("esm_runscripts Binary: %s", config.Global.EsmRunscriptsBin)
			if config.Global.BaseDir != "" {
				cli.PrintDebug("Base Directory: %s", config.Global.BaseDir)
			}
		}
		if quietMode {
			cli.QuietMode = true
			config.Global.Quiet = true
		}
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		// Cobra's automatic error printing is silenced; print once here.
		// A failing wrapped script propagates its own exit status.
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.ExitCode())
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Subcommands are attached to rootCmd in their respective init() functions
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug mode with verbose output")
	rootCmd.PersistentFlags().BoolVarP(&quietMode, "quiet", "q", false, "Suppress informational messages (errors/warnings still shown)")
}
