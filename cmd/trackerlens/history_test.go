package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// writeDataDirConfig writes a config file pointing the run database at its
// own temp directory and returns the config path and the database directory.
func writeDataDirConfig(t *testing.T) (string, string) {
	t.Helper()

	dbDir := filepath.Join(t.TempDir(), "runs")
	configPath := filepath.Join(t.TempDir(), ".trackerlens")
	content := fmt.Sprintf("dataDir: %s\n", dbDir)
	if err := os.WriteFile(configPath, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}
	return configPath, dbDir
}

// runCommand executes one subcommand through the full command tree and
// returns its standard output.
func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cmd := NewRootCmd()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

// TestHistoryCmd tests run listing against the configured database.
func TestHistoryCmd(t *testing.T) {
	t.Parallel()

	t.Run("lists runs analyze saved under a custom dataDir", func(t *testing.T) {
		t.Parallel()

		dataDir := writeTestDocs(t)
		configPath, dbDir := writeDataDirConfig(t)
		reportPath := filepath.Join(t.TempDir(), "report.txt")

		if err := runAnalyzeWith(t, dataDir, "-c", configPath, "-o", reportPath); err != nil {
			t.Fatalf("unexpected analyze error: %v", err)
		}
		if _, err := os.Stat(filepath.Join(dbDir, "trackerlens.db")); err != nil {
			t.Fatalf("expected the run database under the configured dataDir: %v", err)
		}

		out, err := runCommand(t, "history", "--json", "-c", configPath)
		if err != nil {
			t.Fatalf("unexpected history error: %v", err)
		}

		var listing []struct {
			ID        int64  `json:"id"`
			SourceDir string `json:"source_dir"`
			Domains   int    `json:"domains"`
			Rows      int    `json:"rows"`
		}
		if err := json.Unmarshal([]byte(out), &listing); err != nil {
			t.Fatalf("output is not valid JSON: %v", err)
		}
		if len(listing) != 1 {
			t.Fatalf("expected 1 stored run, got %d", len(listing))
		}
		if listing[0].SourceDir != dataDir || listing[0].Domains != 3 || listing[0].Rows != 4 {
			t.Errorf("unexpected run: %+v", listing[0])
		}
	})

	t.Run("empty database reports no runs", func(t *testing.T) {
		t.Parallel()

		configPath, _ := writeDataDirConfig(t)

		out, err := runCommand(t, "history", "-c", configPath)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(out, "No stored runs") {
			t.Errorf("expected the empty-history notice, got %q", out)
		}
	})

	t.Run("missing explicit config file fails", func(t *testing.T) {
		t.Parallel()

		_, err := runCommand(t, "history", "-c", filepath.Join(t.TempDir(), "nope.yml"))
		if err == nil || !strings.Contains(err.Error(), "configuration file not found") {
			t.Errorf("expected a config-not-found error, got %v", err)
		}
	})
}

// TestCompareCmdDataDir tests that compare reads the same database analyze
// writes when the config file overrides the data directory.
func TestCompareCmdDataDir(t *testing.T) {
	t.Parallel()

	dataDir := writeTestDocs(t)
	configPath, _ := writeDataDirConfig(t)
	reportDir := t.TempDir()

	for i := 0; i < 2; i++ {
		reportPath := filepath.Join(reportDir, fmt.Sprintf("report%d.txt", i))
		if err := runAnalyzeWith(t, dataDir, "-c", configPath, "-o", reportPath); err != nil {
			t.Fatalf("unexpected analyze error: %v", err)
		}
	}

	out, err := runCommand(t, "compare", "--json", "-c", configPath)
	if err != nil {
		t.Fatalf("unexpected compare error: %v", err)
	}

	var diff RunDiff
	if err := json.Unmarshal([]byte(out), &diff); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if diff.BaseID >= diff.TargetID {
		t.Errorf("expected the older run as base, got base=%d target=%d", diff.BaseID, diff.TargetID)
	}
	// Identical input twice: nothing entered, left, or moved.
	if len(diff.EnteredRanking)+len(diff.LeftRanking)+
		len(diff.PrevalenceChanges)+len(diff.CategoryChanges) != 0 {
		t.Errorf("expected an empty diff for identical runs, got %+v", diff)
	}
}
