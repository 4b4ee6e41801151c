package resources

import "testing"

func TestNormalizeTask(t *testing.T) {
	cases := map[string]string{
		"compute":     "compute",
		"COMPUTE":     "compute",
		" tidy ":      "tidy",
		"prepcompute": "prepcompute",
		"post":        "post",
		// unknown phases pass through unmodified
		"viz":       "viz",
		"Inspector": "Inspector",
		"":          "",
	}

	for input, want := range cases {
		if got := NormalizeTask(input); got != want {
			t.Errorf("NormalizeTask(%q) = %q; want %q", input, got, want)
		}
	}
}

func TestIsKnownTask(t *testing.T) {
	for _, task := range KnownTasks {
		if !IsKnownTask(task) {
			t.Errorf("expected task %q to be known", task)
		}
	}
	if !IsKnownTask("Compute") {
		t.Errorf("case-insensitive match failed")
	}
	if IsKnownTask("viz") {
		t.Errorf("unexpectedly accepted unknown task")
	}
}
