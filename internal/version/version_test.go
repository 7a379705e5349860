package version

import (
	"strings"
	"testing"
)

func TestInfo(t *testing.T) {
	if Info() == "" {
		t.Error("Info should not be empty")
	}
	if !strings.HasPrefix(Info(), Version) {
		t.Errorf("Info %q should start with version %q", Info(), Version)
	}
}

func TestFull(t *testing.T) {
	full := Full()
	for _, want := range []string{Version, "Commit:", "Built:"} {
		if !strings.Contains(full, want) {
			t.Errorf("Full() missing %q: %q", want, full)
		}
	}
}
