package resources

import (
	"fmt"
	"strconv"
)

// Extract pulls the recognized resource fields out of a finished config.
// A field lands in the Request iff it is present in the source section;
// nothing is synthesized or defaulted. Missing fields are never an error —
// only malformed values are.
func Extract(doc *ConfigDocument) (Request, error) {
	var req Request

	if doc == nil {
		return req, nil
	}

	if raw, ok := doc.General["resubmit_nodes"]; ok {
		nodes, err := asInt(raw)
		if err != nil {
			return Request{}, fmt.Errorf("general.resubmit_nodes: %w", err)
		}
		req.Nodes = &nodes
	}

	if raw, ok := doc.General["resubmit_tasks"]; ok {
		tasks, err := asInt(raw)
		if err != nil {
			return Request{}, fmt.Errorf("general.resubmit_tasks: %w", err)
		}
		req.Tasks = &tasks
	}

	if raw, ok := doc.Computer["memory_per_task"]; ok {
		memMB, err := ParseMemoryMB(raw)
		if err != nil {
			return Request{}, fmt.Errorf("computer.memory_per_task: %w", err)
		}
		req.MemMB = &memMB
	}

	if raw, ok := doc.General["run_time"]; ok {
		runtime, err := ParseTimeMinutes(raw)
		if err != nil {
			return Request{}, fmt.Errorf("general.run_time: %w", err)
		}
		req.Runtime = &runtime
	}

	if raw, ok := doc.Computer["partition"]; ok {
		req.Partition = fmt.Sprintf("%v", raw)
	}

	if raw, ok := doc.Computer["account"]; ok {
		req.Account = fmt.Sprintf("%v", raw)
	}

	return req, nil
}

// asInt coerces the scalar shapes yaml.v3 produces for counts.
func asInt(value interface{}) (int, error) {
	switch v := value.(type) {
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case uint64:
		return int(v), nil
	case float64:
		return int(v), nil
	case string:
		n, err := strconv.Atoi(v)
		if err != nil {
			return 0, fmt.Errorf("not an integer: %q", v)
		}
		return n, nil
	default:
		return 0, fmt.Errorf("not an integer: %v", value)
	}
}
