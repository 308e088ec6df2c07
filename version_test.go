package main

import (
	"strings"
	"testing"
)

func TestVersionInfo(t *testing.T) {
	info := VersionInfo()
	if !strings.HasPrefix(info, "reade version ") {
		t.Errorf("VersionInfo = %q", info)
	}
	for _, field := range []string{"commit:", "built:", "go:"} {
		if !strings.Contains(info, field) {
			t.Errorf("VersionInfo missing %q: %q", field, info)
		}
	}
}

func TestVersionDefault(t *testing.T) {
	if Version() == "" {
		t.Error("Version must not be empty")
	}
}
