package runscript

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeScript(t *testing.T, lines []string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "exp001_compute_20240101-20240131.run")
	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0664); err != nil {
		t.Fatalf("write script: %v", err)
	}
	return path
}

func TestExtractExecutableStripsDirectives(t *testing.T) {
	path := writeScript(t, []string{
		"#!/bin/bash",
		"#SBATCH --job-name=exp001_compute",
		"#SBATCH --nodes=4",
		"  #SBATCH --partition=compute",
		"#$ -cwd",
		"module load intel-mpi",
		"export OMP_NUM_THREADS=1",
		"    cd /work/exp001/run_20240101",
		"srun ./master_exe",
		"sbatch exp001_compute_20240201-20240228.run",
	})

	content, err := ExtractExecutable(path)
	if err != nil {
		t.Fatalf("ExtractExecutable returned error: %v", err)
	}

	want := []string{
		"#!/bin/bash",
		"module load intel-mpi",
		"export OMP_NUM_THREADS=1",
		"    cd /work/exp001/run_20240101",
		"srun ./master_exe",
	}
	got := strings.Split(strings.TrimRight(content, "\n"), "\n")
	if len(got) != len(want) {
		t.Fatalf("kept %d lines; want %d\ncontent:\n%s", len(got), len(want), content)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("line %d = %q; want %q (exact text and order must be preserved)", i, got[i], want[i])
		}
	}
}

func TestExtractExecutableKeepsOrdinaryComments(t *testing.T) {
	path := writeScript(t, []string{
		"#!/bin/bash",
		"# prepare the environment",
		"#SBATCH --nodes=1",
		"echo hello",
	})

	content, err := ExtractExecutable(path)
	if err != nil {
		t.Fatalf("ExtractExecutable returned error: %v", err)
	}
	if !strings.Contains(content, "# prepare the environment") {
		t.Errorf("ordinary comment was stripped:\n%s", content)
	}
	if strings.Contains(content, "#SBATCH") {
		t.Errorf("directive survived filtering:\n%s", content)
	}
}

func TestExtractExecutableOnlyDirectives(t *testing.T) {
	path := writeScript(t, []string{
		"#SBATCH --nodes=4",
		"#SBATCH --time=12:00:00",
		"#$ -cwd",
		"",
	})

	_, err := ExtractExecutable(path)
	if !errors.Is(err, ErrNoExecutableContent) {
		t.Errorf("expected ErrNoExecutableContent, got %v", err)
	}
}

func TestExtractExecutableMissingFile(t *testing.T) {
	_, err := ExtractExecutable(filepath.Join(t.TempDir(), "nope.run"))
	if err == nil {
		t.Errorf("expected error for missing file")
	}
}

func TestWriteExecutable(t *testing.T) {
	output := filepath.Join(t.TempDir(), "exp001_exec.sh")
	content := "#!/bin/bash\necho hello\n"

	if err := WriteExecutable(content, output); err != nil {
		t.Fatalf("WriteExecutable returned error: %v", err)
	}

	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(data) != content {
		t.Errorf("written content = %q; want %q", string(data), content)
	}

	info, err := os.Stat(output)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if info.Mode().Perm() != 0755 {
		t.Errorf("permissions = %v; want 0755", info.Mode().Perm())
	}
}
