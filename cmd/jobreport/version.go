package main

import (
	"fmt"
	"runtime/debug"

	"github.com/spf13/cobra"
)

// Version information set at build time via ldflags.
var (
	version = ""
	commit  = ""
	date    = ""
)

// shortCommitLen is the length commit hashes are shortened to.
const shortCommitLen = 7

// getVersion returns the version string.
// Priority: ldflags > module version > "(devel)"
func getVersion() string {
	if version != "" {
		return version
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "(devel)"
}

// getCommit returns the short commit hash.
// Priority: ldflags > vcs.revision > "unknown"
func getCommit() string {
	if commit != "" {
		return commit
	}
	rev := buildSetting("vcs.revision")
	if len(rev) > shortCommitLen {
		return rev[:shortCommitLen]
	}
	if rev == "" {
		return "unknown"
	}
	return rev
}

// getDate returns the build date.
// Priority: ldflags > vcs.time > "unknown"
func getDate() string {
	if date != "" {
		return date
	}
	if t := buildSetting("vcs.time"); t != "" {
		return t
	}
	return "unknown"
}

// buildSetting returns the value of the named build setting, or "".
func buildSetting(key string) string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return ""
	}
	for _, s := range info.Settings {
		if s.Key == key {
			return s.Value
		}
	}
	return ""
}

// NewVersionCmd creates the version command.
func NewVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  `Print the version, commit hash, and build date of jobreport.`,
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "jobreport version %s\n", getVersion())
			fmt.Fprintf(out, "  commit: %s\n", getCommit())
			fmt.Fprintf(out, "  built:  %s\n", getDate())
		},
	}
}
