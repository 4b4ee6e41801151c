package resources

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// newFakeTool writes a shell script standing in for esm_runscripts. It
// writes the given finished config into {expid}/config/ under its working
// directory, mirroring where the real tool puts it.
func newFakeTool(t *testing.T, dir, configYAML string) string {
	t.Helper()
	script := `#!/bin/sh
expid=""
prev=""
for arg in "$@"; do
  if [ "$prev" = "-e" ]; then expid="$arg"; fi
  prev="$arg"
done
mkdir -p "$expid/config"
cat > "$expid/config/${expid}_finished_config.yaml" <<'EOF'
` + configYAML + `
EOF
`
	path := filepath.Join(dir, "fake_esm_runscripts")
	if err := os.WriteFile(path, []byte(script), 0755); err != nil {
		t.Fatalf("write fake tool: %v", err)
	}
	return path
}

func newRunscript(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "awicm.yaml")
	if err := os.WriteFile(path, []byte("general:\n  setup_name: awicm\n"), 0664); err != nil {
		t.Fatalf("write runscript: %v", err)
	}
	return path
}

func TestResolveMissingRunscript(t *testing.T) {
	_, err := Resolve(Options{
		Runscript: filepath.Join(t.TempDir(), "nope.yaml"),
		Task:      TaskCompute,
		ExpID:     "exp001",
	})
	if !IsNotFound(err) {
		t.Errorf("expected NotFound for missing runscript, got %v", err)
	}
}

func TestResolveMissingBaseDir(t *testing.T) {
	dir := t.TempDir()
	runscript := newRunscript(t, dir)

	_, err := Resolve(Options{
		Runscript: runscript,
		Task:      TaskCompute,
		ExpID:     "exp001",
		BaseDir:   filepath.Join(dir, "does-not-exist"),
	})
	if !IsNotFound(err) {
		t.Errorf("expected NotFound for missing base dir, got %v", err)
	}
}

func TestResolveBaseDirNotADirectory(t *testing.T) {
	dir := t.TempDir()
	runscript := newRunscript(t, dir)

	_, err := Resolve(Options{
		Runscript: runscript,
		Task:      TaskCompute,
		ExpID:     "exp001",
		BaseDir:   runscript, // a file, not a directory
	})
	if !errors.Is(err, ErrNotADirectory) {
		t.Errorf("expected ErrNotADirectory, got %v", err)
	}
}

func TestResolveEndToEnd(t *testing.T) {
	dir := t.TempDir()
	runscript := newRunscript(t, dir)
	bin := newFakeTool(t, dir, `general:
  resubmit_nodes: 4
  run_time: "12:00:00"
computer:
  memory_per_task: 180000M
  partition: compute`)

	req, err := Resolve(Options{
		Bin:       bin,
		Runscript: runscript,
		Task:      TaskCompute,
		ExpID:     "exp001",
		BaseDir:   dir,
	})
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}

	if req.Nodes == nil || *req.Nodes != 4 {
		t.Errorf("nodes = %v; want 4", req.Nodes)
	}
	if req.Runtime == nil || *req.Runtime != 720 {
		t.Errorf("runtime = %v; want 720", req.Runtime)
	}
	if req.MemMB == nil || *req.MemMB != 180000 {
		t.Errorf("mem_mb = %v; want 180000", req.MemMB)
	}
	if req.Partition != "compute" {
		t.Errorf("partition = %q; want compute", req.Partition)
	}
	if req.Tasks != nil {
		t.Errorf("tasks = %v; want unset", req.Tasks)
	}
	if req.Account != "" {
		t.Errorf("account = %q; want unset", req.Account)
	}
}

func TestResolveToolFailureCarriesStderr(t *testing.T) {
	dir := t.TempDir()
	runscript := newRunscript(t, dir)

	failing := filepath.Join(dir, "failing_tool")
	script := "#!/bin/sh\necho 'config trouble: missing setup' >&2\nexit 2\n"
	if err := os.WriteFile(failing, []byte(script), 0755); err != nil {
		t.Fatalf("write failing tool: %v", err)
	}

	_, err := Resolve(Options{
		Bin:       failing,
		Runscript: runscript,
		Task:      TaskCompute,
		ExpID:     "exp001",
		BaseDir:   dir,
	})
	if err == nil {
		t.Fatalf("expected ToolError")
	}
	if !IsToolError(err) {
		t.Fatalf("expected ToolError, got %v", err)
	}
	var te *ToolError
	if errors.As(err, &te) {
		if !strings.Contains(te.Stderr, "config trouble") {
			t.Errorf("ToolError missing captured stderr: %q", te.Stderr)
		}
	}
}

func TestResolveArtifactMissingAfterCheck(t *testing.T) {
	dir := t.TempDir()
	runscript := newRunscript(t, dir)

	// Tool succeeds but writes nothing.
	noop := filepath.Join(dir, "noop_tool")
	if err := os.WriteFile(noop, []byte("#!/bin/sh\nexit 0\n"), 0755); err != nil {
		t.Fatalf("write noop tool: %v", err)
	}

	_, err := Resolve(Options{
		Bin:       noop,
		Runscript: runscript,
		Task:      TaskCompute,
		ExpID:     "exp001",
		BaseDir:   dir,
	})
	if !IsNotFound(err) {
		t.Fatalf("expected NotFound for missing artifact, got %v", err)
	}
	var nfe *NotFoundError
	if !errors.As(err, &nfe) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
	if len(nfe.Searched) != 3 {
		t.Errorf("NotFoundError lists %d roots; want 3", len(nfe.Searched))
	}
}

func TestResolveExtraArgsDeterministic(t *testing.T) {
	dir := t.TempDir()
	runscript := newRunscript(t, dir)

	// The fake tool dumps its arguments so we can assert flag order.
	argDump := filepath.Join(dir, "args.txt")
	script := "#!/bin/sh\necho \"$@\" > " + argDump + "\nmkdir -p exp001/config\necho 'general: {}' > exp001/config/exp001_finished_config.yaml\n"
	bin := filepath.Join(dir, "dump_tool")
	if err := os.WriteFile(bin, []byte(script), 0755); err != nil {
		t.Fatalf("write dump tool: %v", err)
	}

	_, err := Resolve(Options{
		Bin:          bin,
		Runscript:    runscript,
		Task:         "COMPUTE", // canonicalized to lowercase
		ExpID:        "exp001",
		BaseDir:      dir,
		ModifyConfig: "overrides.yaml",
		ExtraArgs:    map[string]string{"zeta": "2", "alpha": "1"},
	})
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}

	data, err := os.ReadFile(argDump)
	if err != nil {
		t.Fatalf("read arg dump: %v", err)
	}
	got := strings.TrimSpace(string(data))

	for _, want := range []string{"--check", "-t compute", "-e exp001", "-m overrides.yaml"} {
		if !strings.Contains(got, want) {
			t.Errorf("command line missing %q: %s", want, got)
		}
	}
	// Extra args are appended in sorted key order.
	if !strings.Contains(got, "--alpha 1 --zeta 2") {
		t.Errorf("extra args not sorted: %s", got)
	}
}
