package cmd

import (
	"testing"

	"github.com/chipforge/drivergen/pkg/frontend"
)

func TestResolveFormatFromExtension(t *testing.T) {
	cmd := compileCmd
	cmd.Flags().Set("format", "")

	format, err := resolveFormat(cmd, "manifest.json")
	if err != nil {
		t.Fatalf("resolveFormat: %v", err)
	}

	if format != frontend.FormatJSON {
		t.Errorf("got %v, want FormatJSON", format)
	}
}

func TestResolveFormatOverride(t *testing.T) {
	cmd := compileCmd
	if err := cmd.Flags().Set("format", "kdl"); err != nil {
		t.Fatalf("Set: %v", err)
	}

	defer cmd.Flags().Set("format", "")

	format, err := resolveFormat(cmd, "manifest.json")
	if err != nil {
		t.Fatalf("resolveFormat: %v", err)
	}

	if format != frontend.FormatKDL {
		t.Errorf("got %v, want FormatKDL (override should win over extension)", format)
	}
}
