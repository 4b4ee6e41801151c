package resources

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pgierz/snakemake-wrapper-esm-master/internal/cli"
	"github.com/pgierz/snakemake-wrapper-esm-master/internal/fsutil"
)

// Options configures one resolution run. There is no ambient state: every
// call to Resolve is a pure function of these inputs plus the filesystem
// and the external tool.
type Options struct {
	Bin          string            // esm_runscripts binary (name or path)
	Runscript    string            // Path to the ESM runscript YAML file
	Task         string            // Phase to execute (prepcompute/compute/tidy/post)
	ExpID        string            // Experiment ID
	ModifyConfig string            // Optional config override file passed as -m
	BaseDir      string            // Working directory for the check run ("" = cwd)
	ExtraArgs    map[string]string // Additional --key value flags, appended sorted
}

// Resolve runs the external tool in check mode, locates the finished config
// it writes, and extracts the normalized resource request from it.
//
// The check command is a single blocking subprocess with captured output; a
// non-zero exit surfaces immediately as a ToolError carrying stderr and is
// never retried. All diagnostics go to stderr via the console layer so
// stdout stays consumable by automation.
func Resolve(opts Options) (Request, error) {
	runscript, err := filepath.Abs(opts.Runscript)
	if err != nil {
		runscript = opts.Runscript
	}
	if !fsutil.FileExists(runscript) {
		return Request{}, fmt.Errorf("%w: runscript %s", ErrNotFound, opts.Runscript)
	}

	if opts.BaseDir != "" {
		info, err := os.Stat(opts.BaseDir)
		if os.IsNotExist(err) {
			return Request{}, fmt.Errorf("%w: base directory %s", ErrNotFound, opts.BaseDir)
		}
		if err != nil {
			return Request{}, fmt.Errorf("failed to stat base directory %s: %w", opts.BaseDir, err)
		}
		if !info.IsDir() {
			return Request{}, fmt.Errorf("%w: base directory %s", ErrNotADirectory, opts.BaseDir)
		}
	}

	task := NormalizeTask(opts.Task)

	bin := opts.Bin
	if bin == "" {
		bin = "esm_runscripts"
	}

	args := []string{"--check", runscript, "-t", task, "-e", opts.ExpID}
	if opts.ModifyConfig != "" {
		args = append(args, "-m", opts.ModifyConfig)
	}
	for _, key := range sortedKeys(opts.ExtraArgs) {
		args = append(args, "--"+key, opts.ExtraArgs[key])
	}

	cmdline := bin + " " + strings.Join(args, " ")
	cli.PrintMessage("Extracting resources: %s", cli.StyleCommand(cmdline))

	cmd := exec.Command(bin, args...)
	cmd.Dir = opts.BaseDir
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return Request{}, NewToolError(cmdline, stderr.String(), err)
	}

	configPath, err := LocateConfig(opts.ExpID, SearchRoots(opts.BaseDir, opts.ExpID, ConfigSubdir))
	if err != nil {
		return Request{}, err
	}
	cli.PrintDebug("Finished config: %s", cli.StylePath(configPath))

	doc, err := LoadConfigDocument(configPath)
	if err != nil {
		return Request{}, err
	}

	req, err := Extract(doc)
	if err != nil {
		return Request{}, err
	}

	cli.PrintMessage("Extracted resources: %v", req.Map())
	return req, nil
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
