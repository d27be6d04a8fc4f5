package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/trackerlens/trackerlens/internal/database"
)

// NewCompareCmd creates the compare command.
// This command compares two analysis runs stored in the history database.
func NewCompareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare [base-run-id] [target-run-id]",
		Short: "Compare two stored analysis runs",
		Long: `Compare shows how the tracker landscape shifted between two analysis runs:

- Domains that entered or left the prevalence ranking
- Prevalence changes for domains present in both rankings
- Category counts that appeared, disappeared, or changed

Without arguments the two most recent runs are compared (oldest as base).
Use 'trackerlens history' to list run ids.

Examples:
  # Compare the two most recent runs
  trackerlens compare

  # Compare two specific runs
  trackerlens compare 3 7

  # Machine-readable diff
  trackerlens compare --json`,
		Args: cobra.RangeArgs(0, 2),
		RunE: runCompareCmd,
	}

	cmd.Flags().BoolP("json", "j", false,
		"Output comparison result in JSON format")
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .trackerlens in current or home directory)")

	return cmd
}

// RunDiff is the comparison between two stored runs.
type RunDiff struct {
	// BaseID and TargetID identify the compared runs.
	BaseID   int64 `json:"base_id"`
	TargetID int64 `json:"target_id"`

	// EnteredRanking lists domains present only in the target ranking.
	EnteredRanking []string `json:"entered_ranking"`

	// LeftRanking lists domains present only in the base ranking.
	LeftRanking []string `json:"left_ranking"`

	// PrevalenceChanges lists domains in both rankings whose prevalence moved.
	PrevalenceChanges []PrevalenceChange `json:"prevalence_changes"`

	// CategoryChanges lists categories whose count differs between the runs.
	CategoryChanges []CategoryChange `json:"category_changes"`
}

// PrevalenceChange is one domain's prevalence movement between runs.
type PrevalenceChange struct {
	Domain string  `json:"domain"`
	Before float64 `json:"before"`
	After  float64 `json:"after"`
}

// CategoryChange is one category's count movement between runs.
// A Before of 0 means the category is new; an After of 0 means it vanished.
type CategoryChange struct {
	Category string `json:"category"`
	Before   int    `json:"before"`
	After    int    `json:"after"`
}

// runCompareCmd executes the compare command.
func runCompareCmd(cmd *cobra.Command, args []string) error {
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

	ctx := context.Background()

	baseID, targetID, err := resolveRunIDs(ctx, db, args)
	if err != nil {
		return err
	}

	base, err := db.GetRun(ctx, baseID)
	if err != nil {
		return err
	}
	if base == nil {
		return fmt.Errorf("run %d not found (use 'trackerlens history' to list runs)", baseID)
	}

	target, err := db.GetRun(ctx, targetID)
	if err != nil {
		return err
	}
	if target == nil {
		return fmt.Errorf("run %d not found (use 'trackerlens history' to list runs)", targetID)
	}

	diff := diffRuns(base, target)

	if asJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(diff)
	}
	writeDiff(cmd.OutOrStdout(), diff)
	return nil
}

// resolveRunIDs determines the base and target run ids from the arguments,
// falling back to the two most recent runs.
func resolveRunIDs(ctx context.Context, db *database.RunDB, args []string) (int64, int64, error) {
	if len(args) == 2 {
		base, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return 0, 0, fmt.Errorf("invalid base run id %q: %w", args[0], err)
		}
		target, err := strconv.ParseInt(args[1], 10, 64)
		if err != nil {
			return 0, 0, fmt.Errorf("invalid target run id %q: %w", args[1], err)
		}
		return base, target, nil
	}
	if len(args) == 1 {
		return 0, 0, errors.New("provide either no run ids (latest two) or both base and target")
	}

	ids, err := db.LatestRunIDs(ctx, 2)
	if err != nil {
		return 0, 0, err
	}
	if len(ids) < 2 {
		return 0, 0, errors.New("need at least two stored runs to compare (run 'trackerlens analyze' first)")
	}
	// ids are newest first; the older run is the base.
	return ids[1], ids[0], nil
}

// diffRuns computes the differences between two stored runs.
func diffRuns(base, target *database.StoredRun) *RunDiff {
	diff := &RunDiff{
		BaseID:   base.ID,
		TargetID: target.ID,
	}

	basePrevalence := make(map[string]float64, len(base.TopDomains))
	for _, d := range base.TopDomains {
		basePrevalence[d.Domain] = d.Prevalence
	}
	targetSeen := make(map[string]bool, len(target.TopDomains))

	for _, d := range target.TopDomains {
		targetSeen[d.Domain] = true
		before, ok := basePrevalence[d.Domain]
		if !ok {
			diff.EnteredRanking = append(diff.EnteredRanking, d.Domain)
			continue
		}
		if before != d.Prevalence {
			diff.PrevalenceChanges = append(diff.PrevalenceChanges, PrevalenceChange{
				Domain: d.Domain,
				Before: before,
				After:  d.Prevalence,
			})
		}
	}
	for _, d := range base.TopDomains {
		if !targetSeen[d.Domain] {
			diff.LeftRanking = append(diff.LeftRanking, d.Domain)
		}
	}

	baseCounts := make(map[string]int, len(base.CategoryCounts))
	for _, c := range base.CategoryCounts {
		baseCounts[c.Category] = c.Count
	}
	targetCounts := make(map[string]bool, len(target.CategoryCounts))

	for _, c := range target.CategoryCounts {
		targetCounts[c.Category] = true
		if before := baseCounts[c.Category]; before != c.Count {
			diff.CategoryChanges = append(diff.CategoryChanges, CategoryChange{
				Category: c.Category,
				Before:   before,
				After:    c.Count,
			})
		}
	}
	for _, c := range base.CategoryCounts {
		if !targetCounts[c.Category] {
			diff.CategoryChanges = append(diff.CategoryChanges, CategoryChange{
				Category: c.Category,
				Before:   c.Count,
				After:    0,
			})
		}
	}

	return diff
}

// writeDiff renders the diff in human-readable form.
func writeDiff(out io.Writer, diff *RunDiff) {
	fmt.Fprintf(out, "Comparing run %d (base) with run %d (target)\n\n", diff.BaseID, diff.TargetID)

	fmt.Fprintf(out, "Entered ranking (%d):\n", len(diff.EnteredRanking))
	for _, d := range diff.EnteredRanking {
		fmt.Fprintf(out, "  + %s\n", d)
	}

	fmt.Fprintf(out, "\nLeft ranking (%d):\n", len(diff.LeftRanking))
	for _, d := range diff.LeftRanking {
		fmt.Fprintf(out, "  - %s\n", d)
	}

	fmt.Fprintf(out, "\nPrevalence changes (%d):\n", len(diff.PrevalenceChanges))
	for _, c := range diff.PrevalenceChanges {
		fmt.Fprintf(out, "  %s: %.5f -> %.5f\n", c.Domain, c.Before, c.After)
	}

	fmt.Fprintf(out, "\nCategory count changes (%d):\n", len(diff.CategoryChanges))
	for _, c := range diff.CategoryChanges {
		fmt.Fprintf(out, "  %s: %d -> %d\n", c.Category, c.Before, c.After)
	}
}
