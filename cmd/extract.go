package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pgierz/snakemake-wrapper-esm-master/internal/cli"
	"github.com/pgierz/snakemake-wrapper-esm-master/internal/config"
	"github.com/pgierz/snakemake-wrapper-esm-master/internal/resources"
	"github.com/pgierz/snakemake-wrapper-esm-master/internal/runscript"
)

var (
	extractBaseDir string
	extractOutput  string
)

var extractCmd = &cobra.Command{
	Use:   "extract [expid]",
	Short: "Strip scheduler directives from a generated .run script",
	Long: `Locate the batch script esm_runscripts generated for an experiment and
write a plain executable copy with all scheduler directives (#SBATCH, #$)
and sbatch submission lines removed. Everything else — shebang, module
loads, exports, the model execution command — is kept verbatim.`,
	Example: `  esmwrap extract exp001
  esmwrap extract exp001 -d /work/experiments -o exp001.sh`,
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE:         runExtract,
}

func init() {
	rootCmd.AddCommand(extractCmd)
	extractCmd.Flags().StringVarP(&extractBaseDir, "base-dir", "d", "", "Base directory for the experiment (default: current directory)")
	extractCmd.Flags().StringVarP(&extractOutput, "output", "o", "", "Output path (default: {expid}_exec.sh)")
}

func runExtract(cmd *cobra.Command, args []string) error {
	expID := args[0]

	baseDir := extractBaseDir
	if baseDir == "" {
		baseDir = config.Global.BaseDir
	}

	scriptPath, err := resources.LocateRunScript(expID,
		resources.SearchRoots(baseDir, expID, resources.ScriptSubdir))
	if err != nil {
		return err
	}
	cli.PrintMessage("Run script: %s", cli.StylePath(scriptPath))

	content, err := runscript.ExtractExecutable(scriptPath)
	if err != nil {
		return err
	}

	output := extractOutput
	if output == "" {
		output = fmt.Sprintf("%s_exec.sh", expID)
	}
	if err := runscript.WriteExecutable(content, output); err != nil {
		return err
	}

	cli.PrintSuccess("Wrote executable script to %s", cli.StylePath(output))
	return nil
}
