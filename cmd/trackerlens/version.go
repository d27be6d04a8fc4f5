package main

import (
	"fmt"
	"runtime/debug"

	"github.com/spf13/cobra"
)

// Set at release time via ldflags; left empty for source builds, where the
// embedded build info fills the gaps instead.
var (
	version = ""
	commit  = ""
	date    = ""
)

// buildMetadata resolves the version, commit, and build date, preferring
// ldflags values and falling back to the module's embedded build info.
func buildMetadata() (string, string, string) {
	v, c, d := version, commit, date

	if info, ok := debug.ReadBuildInfo(); ok {
		if v == "" {
			v = info.Main.Version
		}
		for _, setting := range info.Settings {
			switch setting.Key {
			case "vcs.revision":
				if c == "" {
					c = setting.Value
					if len(c) > 7 {
						c = c[:7]
					}
				}
			case "vcs.time":
				if d == "" {
					d = setting.Value
				}
			}
		}
	}

	if v == "" {
		v = "(devel)"
	}
	if c == "" {
		c = "unknown"
	}
	if d == "" {
		d = "unknown"
	}
	return v, c, d
}

// getVersion returns the version string shown by --version and stamped into
// JSON reports.
func getVersion() string {
	v, _, _ := buildMetadata()
	return v
}

// NewVersionCmd creates the version command.
func NewVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  `Print the version, commit hash, and build date of trackerlens.`,
		Run: func(cmd *cobra.Command, _ []string) {
			v, c, d := buildMetadata()
			fmt.Fprintf(cmd.OutOrStdout(), "trackerlens %s (commit %s, built %s)\n", v, c, d)
		},
	}
}
