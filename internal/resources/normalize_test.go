package resources

import (
	"errors"
	"testing"
)

func TestParseMemoryMB(t *testing.T) {
	tests := []struct {
		name  string
		input interface{}
		want  int64
	}{
		{"gigabytes", "200G", 204800},
		{"gigabytes with B", "8GB", 8192},
		{"megabytes", "1024M", 1024},
		{"megabytes with B", "512MB", 512},
		{"no unit means MB", "2048", 2048},
		{"terabytes", "1T", 1048576},
		{"kilobytes floor at 1", "512K", 1},
		{"kilobytes round half up", "1536K", 2},
		{"kilobytes round down below half", "1024K", 1},
		{"numeric passthrough int", 2048, 2048},
		{"numeric passthrough float", 1536.7, 1536},
		{"lowercase unit", "16g", 16384},
		{"whitespace around value", " 100M ", 100},
		{"decimal gigabytes", "1.5G", 1536},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseMemoryMB(tt.input)
			if err != nil {
				t.Fatalf("ParseMemoryMB(%v) returned error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseMemoryMB(%v) = %d; want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseMemoryMBErrors(t *testing.T) {
	inputs := []interface{}{
		"7xyz",
		"100B", // bytes are not a supported request unit
		"G",
		"",
		"12 34M",
		true,
		nil,
	}

	for _, input := range inputs {
		if _, err := ParseMemoryMB(input); err == nil {
			t.Errorf("ParseMemoryMB(%v) expected error, got none", input)
		} else if !errors.Is(err, ErrMemoryFormat) {
			t.Errorf("ParseMemoryMB(%v) error %v does not wrap ErrMemoryFormat", input, err)
		}
	}
}

func TestParseTimeMinutes(t *testing.T) {
	tests := []struct {
		name  string
		input interface{}
		want  int
	}{
		{"HH:MM:SS", "12:00:00", 720},
		{"HH:MM:SS with minutes", "01:30:00", 90},
		{"bare minutes string", "720", 720},
		{"residual seconds round up", "01:00:30", 61},
		{"residual one second rounds up", "00:00:01", 1},
		{"MM:SS", "90:00", 90},
		{"MM:SS rounds up", "10:01", 11},
		{"numeric passthrough", 720, 720},
		{"float passthrough", 90.9, 90},
		{"zero", "00:00:00", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTimeMinutes(tt.input)
			if err != nil {
				t.Fatalf("ParseTimeMinutes(%v) returned error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseTimeMinutes(%v) = %d; want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseTimeMinutesErrors(t *testing.T) {
	inputs := []interface{}{
		"bad",
		"1:2:3:4",
		"aa:bb:cc",
		"1h30m",
		"",
		nil,
	}

	for _, input := range inputs {
		if _, err := ParseTimeMinutes(input); err == nil {
			t.Errorf("ParseTimeMinutes(%v) expected error, got none", input)
		} else if !errors.Is(err, ErrTimeFormat) {
			t.Errorf("ParseTimeMinutes(%v) error %v does not wrap ErrTimeFormat", input, err)
		}
	}
}

func TestIsParseError(t *testing.T) {
	if _, err := ParseMemoryMB("7xyz"); !IsParseError(err) {
		t.Errorf("memory parse failure not recognized by IsParseError")
	}
	if _, err := ParseTimeMinutes("bad"); !IsParseError(err) {
		t.Errorf("time parse failure not recognized by IsParseError")
	}
	if IsParseError(errors.New("unrelated")) {
		t.Errorf("IsParseError matched an unrelated error")
	}
}
