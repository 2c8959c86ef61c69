package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/untoldecay/easyowl/internal/similarity"
	"github.com/untoldecay/easyowl/internal/types"
	"github.com/untoldecay/easyowl/internal/ui"
)

var (
	similarTopN      int
	similarThreshold float64
	similarNoSelf    bool
	similarNoPrompt  bool
)

type similarResult struct {
	Term    string             `json:"term" yaml:"term"`
	Matches []similarity.Match `json:"matches" yaml:"matches"`
}

var similarCmd = &cobra.Command{
	Use:     "similar <file> <label>",
	GroupID: "query",
	Short:   "Rank labels by TF-IDF cosine similarity to a known label",
	Long: `Rank every label and exact synonym by cosine similarity to <label>,
which must itself be a registered label.

--threshold keeps scores strictly above the value and is applied before -n.
When <label> is unknown, close labels are suggested; on a terminal you can
pick one interactively.`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		exitOnError(runSimilar(os.Stdout, args[0], args[1], cmd.Flags().Changed("threshold")))
	},
}

func similarOptions(hasThreshold bool) []similarity.Option {
	var opts []similarity.Option
	if similarTopN > 0 {
		opts = append(opts, similarity.WithTopN(similarTopN))
	}
	if hasThreshold {
		opts = append(opts, similarity.WithThreshold(similarThreshold))
	}
	if similarNoSelf {
		opts = append(opts, similarity.WithoutSelf())
	}
	return opts
}

func runSimilar(w io.Writer, path, term string, hasThreshold bool) error {
	ont, err := loadOntology(path)
	if err != nil {
		return err
	}

	opts := similarOptions(hasThreshold)
	matches, err := ont.FindSimilarTerms(term, opts...)

	var tnf *types.TermNotFoundError
	if errors.As(err, &tnf) && outputFormat == formatText {
		picked, ok := pickSuggestion(w, tnf)
		if !ok {
			return err
		}
		term = picked
		matches, err = ont.FindSimilarTerms(term, opts...)
	}
	if err != nil {
		return err
	}

	return writeOutput(w, similarResult{Term: term, Matches: matches}, func(w io.Writer) error {
		_, err := fmt.Fprintln(w, ui.RenderSimilarTable(term, matches, ui.GetWidth()))
		return err
	})
}

// pickSuggestion shows the suggestion box and, on a terminal, lets the user
// choose a replacement label.
func pickSuggestion(w io.Writer, tnf *types.TermNotFoundError) (string, bool) {
	if similarNoPrompt || len(tnf.Suggestions) == 0 || !ui.IsInteractive() {
		return "", false
	}
	fmt.Fprintln(w, ui.RenderSuggestionBox(ui.SuggestionViewModel{
		Query:       tnf.Term,
		Kind:        "term",
		Suggestions: tnf.Suggestions,
	}))
	choice, err := ui.PickTerm("Use one of these labels instead?", tnf.Suggestions)
	if err != nil {
		return "", false
	}
	return choice, true
}

func init() {
	similarCmd.Flags().IntVarP(&similarTopN, "n", "n", 0, "Keep only the N best matches (0 for all)")
	similarCmd.Flags().Float64VarP(&similarThreshold, "threshold", "t", 0, "Keep only scores strictly above this value")
	similarCmd.Flags().BoolVar(&similarNoSelf, "no-self", false, "Drop the query label from its own results")
	similarCmd.Flags().BoolVar(&similarNoPrompt, "no-prompt", false, "Never prompt for a replacement label")
	rootCmd.AddCommand(similarCmd)
}

