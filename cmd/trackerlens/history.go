package main

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/trackerlens/trackerlens/internal/database"
)

// NewHistoryCmd creates the history command.
func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List analysis runs stored in the history database",
		Long: `History lists the analysis runs saved by previous 'trackerlens analyze'
invocations, newest first. Run ids can be passed to 'trackerlens compare'.

Examples:
  # List all stored runs
  trackerlens history

  # Machine-readable listing
  trackerlens history --json`,
		Args: cobra.NoArgs,
		RunE: runHistoryCmd,
	}

	cmd.Flags().BoolP("json", "j", false,
		"Output run listing in JSON format")
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .trackerlens in current or home directory)")

	return cmd
}

// runHistoryCmd executes the history command.
func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	asJSON, err := cmd.Flags().GetBool("json")
	if err != nil {
		return err
	}

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return err
	}
	dbDir, err := resolveDBDir(configPath)
	if err != nil {
		return err
	}

	db, err := database.Open(dbDir, database.DefaultOptions())
	if err != nil {
		return fmt.Errorf("failed to open history database: %w", err)
	}
	defer db.Close() //nolint:errcheck // read-only use; close error is not actionable

	runs, err := db.ListRuns(context.Background())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()

	if asJSON {
		type runJSON struct {
			ID        int64  `json:"id"`
			Timestamp string `json:"timestamp"`
			SourceDir string `json:"source_dir"`
			Domains   int    `json:"domains"`
			Rows      int    `json:"rows"`
		}
		listing := make([]runJSON, 0, len(runs))
		for _, r := range runs {
			listing = append(listing, runJSON{
				ID:        r.ID,
				Timestamp: r.Timestamp.Format("2006-01-02 15:04:05"),
				SourceDir: r.SourceDir,
				Domains:   r.DomainCount,
				Rows:      r.RowCount,
			})
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(listing)
	}

	if len(runs) == 0 {
		fmt.Fprintln(out, "No stored runs. Use 'trackerlens analyze' to create one.")
		return nil
	}

	fmt.Fprintf(out, "%-6s %-20s %-10s %-10s %s\n", "ID", "TIMESTAMP", "DOMAINS", "ROWS", "SOURCE")
	fmt.Fprintln(out, strings.Repeat("-", 70))
	for _, r := range runs {
		fmt.Fprintf(out, "%-6d %-20s %-10d %-10d %s\n",
			r.ID,
			r.Timestamp.Format("2006-01-02 15:04:05"),
			r.DomainCount,
			r.RowCount,
			r.SourceDir,
		)
	}
	return nil
}
