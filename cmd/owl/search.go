package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/untoldecay/easyowl/internal/queries"
	"github.com/untoldecay/easyowl/internal/ui"
)

var (
	searchLimit      int
	searchLabelsOnly bool
	searchStrict     bool
)

var searchCmd = &cobra.Command{
	Use:     "search <file> <text>",
	GroupID: "query",
	Short:   "Find entities by label or synonym text",
	Long: `Find entities whose label or synonyms match <text>: exact matches first,
then prefixes, substrings and (unless --strict) fuzzy subsequences such as
"crdmy" for "cardiomyopathy". Unlike 'similar', <text> need not be a known label.`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		exitOnError(runSearch(os.Stdout, args[0], args[1]))
	},
}

func runSearch(w io.Writer, path, text string) error {
	ont, err := loadOntology(path)
	if err != nil {
		return err
	}
	results := ont.Search(queries.SearchOptions{
		Query:      text,
		Limit:      searchLimit,
		LabelsOnly: searchLabelsOnly,
		Strict:     searchStrict,
	})
	if results == nil {
		results = []queries.SearchResult{}
	}

	return writeOutput(w, results, func(w io.Writer) error {
		if _, err := fmt.Fprintln(w, ui.RenderSearchTable(text, results, ui.GetWidth())); err != nil {
			return err
		}
		if len(results) > 0 {
			return nil
		}
		_, err := fmt.Fprintln(w, ui.RenderSuggestionBox(ui.SuggestionViewModel{
			Query:       text,
			Kind:        "term",
			Suggestions: ont.Suggest(text),
		}))
		return err
	})
}

func init() {
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 20, "Maximum number of results (0 for all)")
	searchCmd.Flags().BoolVar(&searchLabelsOnly, "labels-only", false, "Do not search synonyms")
	searchCmd.Flags().BoolVar(&searchStrict, "strict", false, "Disable fuzzy subsequence matching")
	rootCmd.AddCommand(searchCmd)
}
