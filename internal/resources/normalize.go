package resources

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// memoryRe separates the numeric part from the unit. The whole string must
// match: a bare numeric prefix with trailing garbage ("7xyz") is rejected,
// not truncated.
var memoryRe = regexp.MustCompile(`^([0-9]+(?:\.[0-9]+)?)\s*([KMGT]?B?)$`)

// ParseMemoryMB converts a memory value from a finished config into megabytes.
//
// Numeric values are treated as already-megabytes. Strings carry an optional
// unit suffix (K/M/G/T, optional trailing B, case-insensitive); no unit means
// megabytes. Kilobyte values round half up and never drop below 1 MB, so a
// tiny request still declares something to the scheduler.
func ParseMemoryMB(value interface{}) (int64, error) {
	switch v := value.(type) {
	case int:
		return int64(v), nil
	case int64:
		return v, nil
	case uint64:
		return int64(v), nil
	case float64:
		return int64(v), nil
	case string:
		return parseMemoryString(v)
	default:
		return 0, fmt.Errorf("%w: %v", ErrMemoryFormat, value)
	}
}

func parseMemoryString(s string) (int64, error) {
	cleaned := strings.ToUpper(strings.TrimSpace(s))

	matches := memoryRe.FindStringSubmatch(cleaned)
	if matches == nil {
		return 0, fmt.Errorf("%w: %s", ErrMemoryFormat, s)
	}

	value, err := strconv.ParseFloat(matches[1], 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s", ErrMemoryFormat, s)
	}
	unit := matches[2]

	switch unit {
	case "K", "KB":
		// Round half up, floor at 1 MB
		mb := int64(value/1024 + 0.5)
		if mb < 1 {
			mb = 1
		}
		return mb, nil
	case "M", "MB", "":
		return int64(value), nil
	case "G", "GB":
		return int64(value * 1024), nil
	case "T", "TB":
		return int64(value * 1024 * 1024), nil
	default:
		// A bare "B" (bytes) is not a supported request unit
		return 0, fmt.Errorf("%w: %s", ErrMemoryFormat, s)
	}
}

// ParseTimeMinutes converts a wall-clock value from a finished config into
// minutes.
//
// Numeric values and bare integer strings are treated as already-minutes.
// Colon-delimited strings are HH:MM:SS or MM:SS; any nonzero residual
// seconds round up one full minute so the requested wall-clock is never
// under-declared.
func ParseTimeMinutes(value interface{}) (int, error) {
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
		return parseTimeString(v)
	default:
		return 0, fmt.Errorf("%w: %v", ErrTimeFormat, value)
	}
}

func parseTimeString(s string) (int, error) {
	cleaned := strings.TrimSpace(s)

	if minutes, err := strconv.Atoi(cleaned); err == nil {
		return minutes, nil
	}

	parts := strings.Split(cleaned, ":")
	switch len(parts) {
	case 3:
		hours, errH := strconv.Atoi(parts[0])
		minutes, errM := strconv.Atoi(parts[1])
		seconds, errS := strconv.Atoi(parts[2])
		if errH != nil || errM != nil || errS != nil {
			return 0, fmt.Errorf("%w: %s", ErrTimeFormat, s)
		}
		return hours*60 + minutes + ceilSeconds(seconds), nil
	case 2:
		minutes, errM := strconv.Atoi(parts[0])
		seconds, errS := strconv.Atoi(parts[1])
		if errM != nil || errS != nil {
			return 0, fmt.Errorf("%w: %s", ErrTimeFormat, s)
		}
		return minutes + ceilSeconds(seconds), nil
	default:
		return 0, fmt.Errorf("%w: %s", ErrTimeFormat, s)
	}
}

func ceilSeconds(seconds int) int {
	if seconds > 0 {
		return 1
	}
	return 0
}
