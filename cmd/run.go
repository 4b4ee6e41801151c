package cmd

import (
	"os"
	"os/exec"

	"github.com/spf13/cobra"

	"github.com/pgierz/snakemake-wrapper-esm-master/internal/cli"
	"github.com/pgierz/snakemake-wrapper-esm-master/internal/config"
	"github.com/pgierz/snakemake-wrapper-esm-master/internal/resources"
	"github.com/pgierz/snakemake-wrapper-esm-master/internal/runscript"
)

var runBaseDir string

var runCmd = &cobra.Command{
	Use:   "run [expid]",
	Short: "Execute a generated .run script directly, without the scheduler",
	Long: `Locate the batch script esm_runscripts generated for an experiment,
strip the scheduler directives, and execute the remainder synchronously in
the current environment. This is what a workflow engine calls inside an
already-allocated job, where resubmitting via sbatch would be wrong.

The script's exit status is propagated.`,
	Example:      `  esmwrap run exp001 -d /work/experiments`,
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE:         runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().StringVarP(&runBaseDir, "base-dir", "d", "", "Base directory for the experiment (default: current directory)")
}

func runRun(cmd *cobra.Command, args []string) error {
	expID := args[0]

	baseDir := runBaseDir
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

	tmp, err := os.CreateTemp("", expID+"_exec_*.sh")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()
	tmp.Close()
	if !config.Global.Debug {
		defer os.Remove(tmpPath)
	}

	if err := runscript.WriteExecutable(content, tmpPath); err != nil {
		return err
	}
	cli.PrintMessage("Executing %s", cli.StylePath(tmpPath))

	proc := exec.Command(tmpPath)
	proc.Dir = baseDir
	proc.Stdin = os.Stdin
	proc.Stdout = os.Stdout
	proc.Stderr = os.Stderr
	return proc.Run()
}
