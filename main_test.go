package main

import (
	"testing"

	"escli/cmd"
)

func TestVersion(t *testing.T) {
	if version != "dev" {
		t.Errorf("Expected default version to be 'dev', got %s", version)
	}

	original := cmd.GetVersion()
	defer cmd.SetVersion(original)

	cmd.SetVersion(version)
	if got := cmd.GetVersion(); got != version {
		t.Errorf("Expected version %s, got %s", version, got)
	}
}
