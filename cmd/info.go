package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pgierz/snakemake-wrapper-esm-master/internal/cli"
	"github.com/pgierz/snakemake-wrapper-esm-master/internal/config"
	"github.com/pgierz/snakemake-wrapper-esm-master/internal/fsutil"
	"github.com/pgierz/snakemake-wrapper-esm-master/internal/tool"
)

var infoCmd = &cobra.Command{
	Use:          "info",
	Short:        "Show detected esm_runscripts binary, version, and configuration",
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE:         runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) error {
	fmt.Println(cli.StyleTitle("esmwrap " + config.VERSION))

	bin := config.Global.EsmRunscriptsBin
	if config.ValidateBinary(bin) {
		fmt.Printf("  %s %s\n", cli.StyleInfo("esm_runscripts:"), cli.StylePath(bin))
		if version, err := tool.Version(bin); err == nil {
			line := version
			if !tool.IsSupported(version) {
				line += " " + cli.StyleWarning(fmt.Sprintf("(older than supported minimum %s)", tool.MinVersion))
			}
			fmt.Printf("  %s %s\n", cli.StyleInfo("version:"), line)
		} else {
			cli.PrintWarning("Could not query version: %v", err)
		}
	} else {
		fmt.Printf("  %s %s\n", cli.StyleInfo("esm_runscripts:"), cli.StyleError("not found"))
		cli.PrintHint("Install esm-tools or set esm_runscripts_bin in the config file.")
	}

	if configFile := viper.ConfigFileUsed(); configFile != "" {
		fmt.Printf("  %s %s\n", cli.StyleInfo("config file:"), cli.StylePath(configFile))
	} else {
		fmt.Printf("  %s %s\n", cli.StyleInfo("config file:"), "none (defaults)")
	}

	if config.Global.BaseDir != "" {
		fmt.Printf("  %s %s\n", cli.StyleInfo("base dir:"), cli.StylePath(config.Global.BaseDir))
	}

	historyState := "disabled"
	if config.Global.HistoryEnabled {
		historyState = config.Global.HistoryDBPath
		if !fsutil.FileExists(config.Global.HistoryDBPath) {
			historyState += " (empty)"
		}
	}
	fmt.Printf("  %s %s\n", cli.StyleInfo("history:"), historyState)

	return nil
}
