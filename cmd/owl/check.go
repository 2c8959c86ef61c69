package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/untoldecay/easyowl/internal/ui"
	"github.com/untoldecay/easyowl/internal/validation"
)

var (
	checkWatch  bool
	checkStrict bool
)

type checkReport struct {
	Path       string   `json:"path" yaml:"path"`
	OK         bool     `json:"ok" yaml:"ok"`
	Error      string   `json:"error,omitempty" yaml:"error,omitempty"`
	Entities   int      `json:"entities" yaml:"entities"`
	Relations  int      `json:"relations" yaml:"relations"`
	Terms      int      `json:"terms" yaml:"terms"`
	Edges      int      `json:"edges" yaml:"edges"`
	Roots      int      `json:"roots" yaml:"roots"`
	Dangling   int      `json:"dangling" yaml:"dangling"`
	Namespaces []string `json:"namespaces" yaml:"namespaces"`
	SKOS       bool     `json:"skos" yaml:"skos"`
	LoadTime   string   `json:"load_time" yaml:"load_time"`

	Warnings []validation.Finding `json:"warnings" yaml:"warnings"`
}

var checkCmd = &cobra.Command{
	Use:     "check <file>",
	GroupID: "files",
	Short:   "Parse a file and report what was extracted",
	Long: `Parse an ontology file and print entity, relation, term and edge counts.

Modelling problems that do not stop extraction (unlabelled classes,
undefined or cyclic superclasses, disjointness with an ancestor) are listed
as warnings; --strict turns them into a failure.

With --watch, the file is re-checked every time it changes until interrupted.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if checkWatch {
			exitOnError(watchCheck(commandContext(), os.Stdout, args[0]))
			return
		}
		report := runCheck(args[0])
		exitOnError(printCheck(os.Stdout, report))
		if !report.OK || (checkStrict && len(report.Warnings) > 0) {
			os.Exit(1)
		}
	},
}

func runCheck(path string) checkReport {
	report := checkReport{Path: path}
	ont, err := loadOntology(path)
	if err != nil {
		report.Error = err.Error()
		return report
	}
	s := ont.Stats()
	report.OK = true
	report.Entities = s.Entities
	report.Relations = s.Relations
	report.Terms = s.Terms
	report.Edges = s.Edges
	report.Roots = s.Roots
	report.Dangling = s.Dangling
	report.Namespaces = s.Namespaces
	report.SKOS = s.SKOS
	report.LoadTime = s.LoadTime.String()
	report.Warnings = ont.Lint()
	if report.Warnings == nil {
		report.Warnings = []validation.Finding{}
	}
	return report
}

func printCheck(w io.Writer, r checkReport) error {
	return writeOutput(w, r, func(w io.Writer) error {
		res := ui.CheckResult{
			Path:       r.Path,
			Entities:   r.Entities,
			Relations:  r.Relations,
			Terms:      r.Terms,
			Edges:      r.Edges,
			Roots:      r.Roots,
			Dangling:   r.Dangling,
			Namespaces: r.Namespaces,
			SKOS:       r.SKOS,
			LoadTime:   r.LoadTime,
		}
		for _, f := range r.Warnings {
			res.Warnings = append(res.Warnings, f.Message)
		}
		if !r.OK {
			res.Err = fmt.Errorf("%s", r.Error)
		}
		_, err := fmt.Fprintln(w, ui.RenderCheckReport(res))
		return err
	})
}

// watchCheck prints a report now and after every change to path until ctx
// is cancelled.
func watchCheck(ctx context.Context, w io.Writer, path string) error {
	recheck := func() {
		if err := printCheck(w, runCheck(path)); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
	}

	fw, err := NewFileWatcher(path, recheck)
	if err != nil {
		return err
	}
	defer func() { _ = fw.Close() }()

	recheck()
	fw.Start(ctx)
	<-ctx.Done()
	return nil
}

func init() {
	checkCmd.Flags().BoolVar(&checkStrict, "strict", false, "Exit 1 when any warning is reported")
	checkCmd.Flags().BoolVarP(&checkWatch, "watch", "w", false, "Re-check whenever the file changes")
	rootCmd.AddCommand(checkCmd)
}
