package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/pgierz/snakemake-wrapper-esm-master/internal/cli"
	"github.com/pgierz/snakemake-wrapper-esm-master/internal/config"
	"github.com/pgierz/snakemake-wrapper-esm-master/internal/history"
	"github.com/pgierz/snakemake-wrapper-esm-master/internal/resources"
)

var (
	resourcesTask         string
	resourcesExpID        string
	resourcesModifyConfig string
	resourcesBaseDir      string
	resourcesExtraArgs    []string
	resourcesFormat       string
)

var resourcesCmd = &cobra.Command{
	Use:   "resources [runscript]",
	Short: "Extract scheduler resources from an ESM runscript",
	Long: `Run esm_runscripts in check mode and extract the normalized resource
mapping from the finished_config.yaml it generates.

Only fields explicitly present in the configuration appear in the output;
nothing is defaulted, so the scheduler can apply its own defaults for
anything missing.`,
	Example: `  esmwrap resources awicm.yaml -t compute -e exp001
  esmwrap resources awicm.yaml -t compute -e exp001 -m overrides.yaml
  esmwrap resources awicm.yaml -t compute -e exp001 --format json
  esmwrap resources awicm.yaml -t compute -e exp001 --extra account=ab0246`,
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true, // Runtime errors should not show usage
	RunE:         runResources,
}

func init() {
	rootCmd.AddCommand(resourcesCmd)
	resourcesCmd.Flags().StringVarP(&resourcesTask, "task", "t", resources.TaskCompute, "Phase to execute (prepcompute/compute/tidy/post)")
	resourcesCmd.Flags().StringVarP(&resourcesExpID, "expid", "e", "test", "Experiment ID")
	resourcesCmd.Flags().StringVarP(&resourcesModifyConfig, "modify-config", "m", "", "Path to a config override file")
	resourcesCmd.Flags().StringVarP(&resourcesBaseDir, "base-dir", "d", "", "Base directory for the experiment (default: current directory)")
	resourcesCmd.Flags().StringArrayVar(&resourcesExtraArgs, "extra", nil, "Additional key=value arguments passed to esm_runscripts (repeatable)")
	resourcesCmd.Flags().StringVar(&resourcesFormat, "format", "yaml", "Output format: yaml or json")
}

func runResources(cmd *cobra.Command, args []string) error {
	extras, err := parseExtraArgs(resourcesExtraArgs)
	if err != nil {
		return err
	}

	baseDir := resourcesBaseDir
	if baseDir == "" {
		baseDir = config.Global.BaseDir
	}

	req, err := resources.Resolve(resources.Options{
		Bin:          config.Global.EsmRunscriptsBin,
		Runscript:    args[0],
		Task:         resourcesTask,
		ExpID:        resourcesExpID,
		ModifyConfig: resourcesModifyConfig,
		BaseDir:      baseDir,
		ExtraArgs:    extras,
	})
	if err != nil {
		return err
	}

	recordResolution(resourcesExpID, resources.NormalizeTask(resourcesTask), args[0], req)

	return printResources(req, resourcesFormat)
}

// parseExtraArgs splits repeated --extra key=value flags into a map.
func parseExtraArgs(pairs []string) (map[string]string, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	extras := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		key, value, found := strings.Cut(pair, "=")
		if !found || key == "" {
			return nil, fmt.Errorf("invalid --extra argument %q (expected key=value)", pair)
		}
		extras[key] = value
	}
	return extras, nil
}

// printResources writes the mapping to stdout; this is the only thing the
// command prints there.
func printResources(req resources.Request, format string) error {
	mapping := req.Map()

	switch strings.ToLower(format) {
	case "yaml", "yml":
		data, err := yaml.Marshal(mapping)
		if err != nil {
			return fmt.Errorf("failed to render resources: %w", err)
		}
		fmt.Fprint(os.Stdout, string(data))
	case "json":
		data, err := json.MarshalIndent(mapping, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to render resources: %w", err)
		}
		fmt.Fprintln(os.Stdout, string(data))
	default:
		return fmt.Errorf("unknown output format %q (use yaml or json)", format)
	}
	return nil
}

// recordResolution appends a successful resolution to the history store.
// Best-effort: history must never fail the pipeline.
func recordResolution(expID, task, runscript string, req resources.Request) {
	if !config.Global.HistoryEnabled {
		return
	}

	store, err := history.Open(config.Global.HistoryDBPath)
	if err != nil {
		cli.PrintWarning("History disabled for this run: %v", err)
		return
	}
	defer store.Close()

	if err := store.Record(expID, task, runscript, req); err != nil {
		cli.PrintWarning("Failed to record resolution: %v", err)
	}
}
