package main

import (
	"bytes"
	"strings"
	"testing"
)

// TestBuildMetadata tests metadata resolution without ldflags.
func TestBuildMetadata(t *testing.T) {
	t.Parallel()

	v, c, d := buildMetadata()
	if v == "" || c == "" || d == "" {
		t.Errorf("expected non-empty metadata, got (%q, %q, %q)", v, c, d)
	}
	if len(c) > 7 && c != "unknown" {
		t.Errorf("expected the commit to be truncated, got %q", c)
	}
}

// TestGetVersion tests the version accessor.
func TestGetVersion(t *testing.T) {
	t.Parallel()

	if v := getVersion(); v == "" {
		t.Error("expected a non-empty version string")
	}
}

// TestVersionCmd tests the version command output.
func TestVersionCmd(t *testing.T) {
	t.Parallel()

	cmd := NewVersionCmd()
	var buf bytes.Buffer
	cmd.SetOut(&buf)

	if err := cmd.Execute(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out := buf.String()
	for _, want := range []string{"trackerlens", "commit", "built"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q: %q", want, out)
		}
	}
}
