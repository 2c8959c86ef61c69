// Command owl queries OWL/RDF-XML ontologies from the command line.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/untoldecay/easyowl/internal/config"
	"github.com/untoldecay/easyowl/internal/debug"
	"github.com/untoldecay/easyowl/internal/types"
	"github.com/untoldecay/easyowl/internal/ui"
)

var (
	jsonOutput        bool
	outputFormat      string
	verboseFlag       bool
	maxTraversalDepth int

	// rootCtx is cancelled on SIGINT/SIGTERM.
	rootCtx    context.Context
	rootCancel context.CancelFunc
)

var rootCmd = &cobra.Command{
	Use:   "owl",
	Short: "Query OWL/RDF-XML ontologies",
	Long: `owl extracts classes, relations and synonyms from an OWL/RDF-XML file
and answers hierarchy and label-similarity queries against it.

Configuration is read from .easyowl/config.yaml (searched upward from the
current directory), $XDG_CONFIG_HOME/easyowl/config.yaml or
~/.easyowl/config.yaml, and OWL_* environment variables. Flags win.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if err := config.Initialize(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: failed to initialize config: %v\n", err)
			os.Exit(1)
		}
		applyConfig(cmd)

		debug.SetVerbose(verboseFlag)
		if err := debug.SetLogFile(config.LogFile()); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		}
		ui.ApplyColorProfile()

		for _, o := range config.CheckOverrides(flagOverrides(cmd)) {
			config.LogOverride(o)
		}
	},
}

// applyConfig fills every global flag the user did not set from config.
func applyConfig(cmd *cobra.Command) {
	flags := cmd.Flags()
	if !flags.Changed("json") {
		jsonOutput = config.GetBool("json")
	}
	if !flags.Changed("format") {
		outputFormat = config.GetString("format")
	}
	if !flags.Changed("max-traversal-depth") {
		maxTraversalDepth = config.GetInt("hierarchy.max-traversal-depth")
	}
	if jsonOutput {
		outputFormat = formatJSON
	}
}

func flagOverrides(cmd *cobra.Command) map[string]config.FlagOverride {
	flags := cmd.Flags()
	return map[string]config.FlagOverride{
		"json":                          {Value: jsonOutput, WasSet: flags.Changed("json")},
		"format":                        {Value: outputFormat, WasSet: flags.Changed("format")},
		"hierarchy.max-traversal-depth": {Value: maxTraversalDepth, WasSet: flags.Changed("max-traversal-depth")},
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format (same as --format json)")
	rootCmd.PersistentFlags().StringVar(&outputFormat, "format", formatText, "Output format: text, json or yaml")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "Enable debug output")
	rootCmd.PersistentFlags().IntVar(&maxTraversalDepth, "max-traversal-depth", types.MaxTraversalDepth,
		"Hard ceiling on hierarchy traversal depth")

	rootCmd.AddGroup(
		&cobra.Group{ID: "query", Title: "Query Commands:"},
		&cobra.Group{ID: "files", Title: "File Commands:"},
	)
}

func main() {
	rootCtx, rootCancel = signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer rootCancel()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		rootCancel()
		os.Exit(1)
	}
}
