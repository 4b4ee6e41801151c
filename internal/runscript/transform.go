// Package runscript turns a generated batch script into a plain executable
// one by stripping scheduler-specific content. Everything else — shebang,
// module loads, exports, cd, the model execution command — is kept in
// original order and exact original text.
package runscript

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/pgierz/snakemake-wrapper-esm-master/internal/fsutil"
)

// ErrNoExecutableContent indicates filtering removed every line, which means
// the input was malformed or misidentified (a script of nothing but
// directives is not runnable).
var ErrNoExecutableContent = errors.New("no executable content found")

// skipPatterns matches lines that belong to the scheduler, not the workload:
// SLURM directives, SGE/PBS-style directives, and sbatch self-resubmission
// of .run files.
var skipPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^\s*#SBATCH`),
	regexp.MustCompile(`^\s*#\$`),
	regexp.MustCompile(`sbatch\s+.*\.run`),
}

// ExtractExecutable reads a generated .run script and returns its content
// with all scheduler-directive and submission lines removed. Retained lines
// keep their exact text and relative order; no whitespace normalization is
// applied.
func ExtractExecutable(runScriptPath string) (string, error) {
	data, err := os.ReadFile(runScriptPath)
	if err != nil {
		return "", fmt.Errorf("failed to read run script %s: %w", runScriptPath, err)
	}

	lines := strings.Split(string(data), "\n")
	kept := make([]string, 0, len(lines))
	for _, line := range lines {
		if isSchedulerLine(line) {
			continue
		}
		kept = append(kept, line)
	}

	content := strings.Join(kept, "\n")
	if strings.TrimSpace(content) == "" {
		return "", fmt.Errorf("%w: %s", ErrNoExecutableContent, runScriptPath)
	}
	return content, nil
}

func isSchedulerLine(line string) bool {
	for _, pattern := range skipPatterns {
		if pattern.MatchString(line) {
			return true
		}
	}
	return false
}

// WriteExecutable writes script content to the given path and marks it
// directly executable (owner rwx, group/other rx).
func WriteExecutable(content, outputPath string) error {
	if err := os.WriteFile(outputPath, []byte(content), fsutil.PermExec); err != nil {
		return fmt.Errorf("failed to write executable script %s: %w", outputPath, err)
	}
	// WriteFile honors the umask; chmod makes the mode unconditional.
	if err := os.Chmod(outputPath, fsutil.PermExec); err != nil {
		return fmt.Errorf("failed to make script executable %s: %w", outputPath, err)
	}
	return nil
}
