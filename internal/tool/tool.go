// Package tool knows how to find and interrogate the esm_runscripts binary.
package tool

import (
	"fmt"
	"os/exec"
	"strings"

	"golang.org/x/mod/semver"
)

// MinVersion is the oldest esm_runscripts release whose --check output
// layout (finished_config.yaml under {expid}/config/) this tool understands.
const MinVersion = "v6.0.0"

// Detect finds the esm_runscripts binary in PATH.
// Returns the full path if found, empty string otherwise.
func Detect() string {
	if path, err := exec.LookPath("esm_runscripts"); err == nil {
		return path
	}
	return ""
}

// Version queries the tool for its version string, normalized to a
// semver-comparable "vX.Y.Z" form.
func Version(bin string) (string, error) {
	cmd := exec.Command(bin, "--version")
	output, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("failed to query %s --version: %w", bin, err)
	}

	// Output looks like "esm_runscripts 6.29.2"
	fields := strings.Fields(strings.TrimSpace(string(output)))
	if len(fields) == 0 {
		return "", fmt.Errorf("empty version output from %s", bin)
	}
	raw := fields[len(fields)-1]
	if !strings.HasPrefix(raw, "v") {
		raw = "v" + raw
	}
	if !semver.IsValid(raw) {
		return "", fmt.Errorf("unrecognized version string: %s", strings.TrimSpace(string(output)))
	}
	return raw, nil
}

// IsSupported reports whether the given version meets MinVersion.
// Invalid version strings count as unsupported.
func IsSupported(version string) bool {
	return semver.IsValid(version) && semver.Compare(version, MinVersion) >= 0
}
