package version

import (
	"strings"
	"testing"
)

func TestVersion_DefaultValues(t *testing.T) {
	if Version == "" {
		t.Error("Version should have a default value")
	}
	if info := Current(); info.Version != Version {
		t.Errorf("Current().Version = %q, want %q", info.Version, Version)
	}
}

func TestColored(t *testing.T) {
	orig := Version
	defer func() { Version = orig }()

	tests := []struct {
		version string
		plain   string
	}{
		{"0.1.0", "0.1.0"},
		{"0.1.0-dev", "0.1.0-dev"},
		{"1.2.3-rc.1+build.123", "1.2.3-rc.1+build.123"},
		{"weird", "weird"},
	}
	for _, tt := range tests {
		Version = tt.version
		if got := Colored(false); got != tt.plain {
			t.Errorf("Colored(false) with %q = %q, want %q", tt.version, got, tt.plain)
		}
	}

	Version = "1.2.3"
	got := Colored(true)
	if !strings.Contains(got, "\x1b[") {
		t.Errorf("Colored(true) = %q, want escape codes", got)
	}
}

func TestVersion_CanBeOverridden(t *testing.T) {
	origVersion, origCommit, origDate := Version, GitCommit, BuildDate
	defer func() { Version, GitCommit, BuildDate = origVersion, origCommit, origDate }()

	Version = "1.2.3"
	GitCommit = "abc123def456"
	BuildDate = "2024-01-15T10:30:00Z"

	info := Current()
	if info.Version != "1.2.3" || info.GitCommit != "abc123def456" || info.BuildDate != "2024-01-15T10:30:00Z" {
		t.Errorf("unexpected info %+v", info)
	}
}
