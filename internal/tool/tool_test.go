package tool

import (
	"os"
	"path/filepath"
	"testing"
)

func TestIsSupported(t *testing.T) {
	cases := map[string]bool{
		"v6.0.0":  true,
		"v6.29.2": true,
		"v7.0.0":  true,
		"v5.1.0":  false,
		"garbage": false,
		"":        false,
	}

	for version, want := range cases {
		if got := IsSupported(version); got != want {
			t.Errorf("IsSupported(%q) = %v; want %v", version, got, want)
		}
	}
}

func TestVersionParsesToolOutput(t *testing.T) {
	dir := t.TempDir()
	bin := filepath.Join(dir, "fake_esm_runscripts")
	script := "#!/bin/sh\necho 'esm_runscripts 6.29.2'\n"
	if err := os.WriteFile(bin, []byte(script), 0755); err != nil {
		t.Fatalf("write fake tool: %v", err)
	}

	version, err := Version(bin)
	if err != nil {
		t.Fatalf("Version returned error: %v", err)
	}
	if version != "v6.29.2" {
		t.Errorf("Version = %q; want v6.29.2", version)
	}
	if !IsSupported(version) {
		t.Errorf("parsed version unexpectedly unsupported")
	}
}

func TestVersionRejectsGarbage(t *testing.T) {
	dir := t.TempDir()
	bin := filepath.Join(dir, "weird_tool")
	if err := os.WriteFile(bin, []byte("#!/bin/sh\necho 'no version here at all'\n"), 0755); err != nil {
		t.Fatalf("write fake tool: %v", err)
	}

	if _, err := Version(bin); err == nil {
		t.Errorf("expected error for unparseable version output")
	}
}
