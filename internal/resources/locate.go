package resources

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pgierz/snakemake-wrapper-esm-master/internal/cli"
	"github.com/pgierz/snakemake-wrapper-esm-master/internal/fsutil"
)

// Subdirectories esm_runscripts writes its artifacts into, relative to the
// experiment tree.
const (
	ConfigSubdir = "config"
	ScriptSubdir = "scripts"
)

// SearchRoots builds the candidate directories for a generated artifact, in
// priority order: the experiment-scoped subdirectory, the generic
// subdirectory, then the base directory itself. baseDir="" means the current
// working directory. The ordering is significant; the locator stops at the
// first root that yields any match.
func SearchRoots(baseDir, expID, subdir string) []string {
	root := baseDir
	if root == "" {
		if cwd, err := os.Getwd(); err == nil {
			root = cwd
		} else {
			root = "."
		}
	}
	return []string{
		filepath.Join(root, expID, subdir),
		filepath.Join(root, subdir),
		root,
	}
}

// LocateConfig finds the finished_config.yaml generated for an experiment.
// Within each root an exact {expid}_finished_config.yaml match wins; coupled
// setups write {expid}_{model}_finished_config.yaml instead, so a glob is
// tried second.
func LocateConfig(expID string, roots []string) (string, error) {
	exact := fmt.Sprintf("%s_finished_config.yaml", expID)
	pattern := fmt.Sprintf("%s_*finished_config.yaml", expID)
	return locate("finished config", expID, roots, exact, pattern)
}

// LocateRunScript finds the generated batch script for an experiment.
// esm_runscripts names them {expid}_{cluster}_{datestamp}.run, so only a
// glob applies.
func LocateRunScript(expID string, roots []string) (string, error) {
	pattern := fmt.Sprintf("%s_*.run", expID)
	return locate("run script", expID, roots, "", pattern)
}

// locate iterates the search roots in priority order. Nonexistent roots are
// skipped; the first root with any match wins and matches are never merged
// across roots. Multiple glob matches are not an error: the most recently
// modified file is chosen and a warning is emitted, since the pick is
// nondeterministic with respect to content.
func locate(target, expID string, roots []string, exact, pattern string) (string, error) {
	for _, root := range roots {
		if !fsutil.DirExists(root) {
			continue
		}

		if exact != "" {
			candidate := filepath.Join(root, exact)
			if fsutil.FileExists(candidate) {
				return candidate, nil
			}
		}

		matches, err := filepath.Glob(filepath.Join(root, pattern))
		if err != nil {
			return "", fmt.Errorf("bad artifact pattern %s: %w", pattern, err)
		}
		if len(matches) == 0 {
			continue
		}

		if len(matches) > 1 {
			cli.PrintWarning("Found %s %s files for expid=%s. Using the most recently modified one. "+
				"This may not be correct if you have been manually examining or modifying these files.",
				cli.StyleNumber(len(matches)), target, cli.StyleName(expID))
		}
		return newestFile(matches), nil
	}

	return "", NewNotFoundError(target, expID, roots)
}

// newestFile returns the path with the latest modification time.
// Unstat-able entries lose ties; the caller guarantees len(paths) > 0.
func newestFile(paths []string) string {
	newest := paths[0]
	var newestMod int64
	if info, err := os.Stat(newest); err == nil {
		newestMod = info.ModTime().UnixNano()
	}
	for _, p := range paths[1:] {
		info, err := os.Stat(p)
		if err != nil {
			continue
		}
		if mod := info.ModTime().UnixNano(); mod > newestMod {
			newest = p
			newestMod = mod
		}
	}
	return newest
}
