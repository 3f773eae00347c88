package version

import (
	"strings"
	"testing"
)

func TestSummary_DefaultBuild(t *testing.T) {
	origVersion, origCommit := Version, Commit
	defer func() { Version, Commit = origVersion, origCommit }()

	Version = "dev"
	Commit = "none"
	if got := Summary(); got != "dev" {
		t.Errorf("Expected dev, got %q", got)
	}
}

func TestSummary_ReleaseBuild(t *testing.T) {
	origVersion, origCommit := Version, Commit
	defer func() { Version, Commit = origVersion, origCommit }()

	Version = "1.2.0"
	Commit = "abcdef1234567890"
	got := Summary()
	if got != "1.2.0 (abcdef1)" {
		t.Errorf("Expected short commit summary, got %q", got)
	}
}

func TestPlatform(t *testing.T) {
	if !strings.Contains(Platform(), "/") {
		t.Errorf("Expected os/arch, got %q", Platform())
	}
}
