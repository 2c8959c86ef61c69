package main

import (
	"fmt"
	"io"
	"os"
	rtdebug "runtime/debug"

	"github.com/spf13/cobra"
)

var (
	// Version is the current version of owl (overridden by ldflags at build time)
	Version = "0.3.0"
	// Build can be set via ldflags at compile time
	Build = "dev"
	// Commit is the git revision the binary was built from (optional ldflag)
	Commit = ""
)

type versionInfo struct {
	Version string `json:"version" yaml:"version"`
	Build   string `json:"build" yaml:"build"`
	Commit  string `json:"commit,omitempty" yaml:"commit,omitempty"`
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		exitOnError(runVersion(os.Stdout))
	},
}

func runVersion(w io.Writer) error {
	info := versionInfo{Version: Version, Build: Build, Commit: resolveCommitHash()}
	return writeOutput(w, info, func(w io.Writer) error {
		if info.Commit != "" {
			_, err := fmt.Fprintf(w, "owl version %s (%s: %s)\n", info.Version, info.Build, shortCommit(info.Commit))
			return err
		}
		_, err := fmt.Fprintf(w, "owl version %s (%s)\n", info.Version, info.Build)
		return err
	})
}

func resolveCommitHash() string {
	if Commit != "" {
		return Commit
	}
	if info, ok := rtdebug.ReadBuildInfo(); ok {
		for _, setting := range info.Settings {
			if setting.Key == "vcs.revision" && setting.Value != "" {
				return setting.Value
			}
		}
	}
	return ""
}

func shortCommit(hash string) string {
	if len(hash) > 12 {
		return hash[:12]
	}
	return hash
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
