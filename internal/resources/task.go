package resources

import "strings"

// Canonical esm_runscripts phase names.
const (
	TaskPrepcompute = "prepcompute"
	TaskCompute     = "compute"
	TaskTidy        = "tidy"
	TaskPost        = "post"
)

// KnownTasks lists the phases esm_runscripts currently executes.
var KnownTasks = []string{TaskPrepcompute, TaskCompute, TaskTidy, TaskPost}

// NormalizeTask canonicalizes a phase name. Unknown names pass through
// unmodified so new esm_runscripts phases keep working without a release
// of this tool.
func NormalizeTask(task string) string {
	lowered := strings.ToLower(strings.TrimSpace(task))
	for _, known := range KnownTasks {
		if lowered == known {
			return known
		}
	}
	return task
}

// IsKnownTask reports whether the task is one of the canonical phases.
func IsKnownTask(task string) bool {
	lowered := strings.ToLower(strings.TrimSpace(task))
	for _, known := range KnownTasks {
		if lowered == known {
			return true
		}
	}
	return false
}
