package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"
	"github.com/untoldecay/easyowl/internal/ontology"
	"github.com/untoldecay/easyowl/internal/queries"
	"github.com/untoldecay/easyowl/internal/similarity"
	"github.com/untoldecay/easyowl/internal/types"
)

// batchFile is the TOML layout read by `owl batch`:
//
//	[[query]]
//	op = "ancestors"
//	id = "http://example.org/onto#HeartDisease"
//	depth = 1
//
//	[[query]]
//	op = "similar"
//	term = "heart disease"
//	n = 5
//	threshold = 0.2
type batchFile struct {
	Queries []batchQuery `toml:"query"`
}

type batchQuery struct {
	Op        string   `toml:"op" json:"op" yaml:"op"`
	ID        string   `toml:"id" json:"id,omitempty" yaml:"id,omitempty"`
	Term      string   `toml:"term" json:"term,omitempty" yaml:"term,omitempty"`
	Depth     *int     `toml:"depth" json:"depth,omitempty" yaml:"depth,omitempty"`
	N         int      `toml:"n" json:"n,omitempty" yaml:"n,omitempty"`
	Threshold *float64 `toml:"threshold" json:"threshold,omitempty" yaml:"threshold,omitempty"`
}

type batchResult struct {
	Query  batchQuery  `json:"query" yaml:"query"`
	Result interface{} `json:"result,omitempty" yaml:"result,omitempty"`
	Error  string      `json:"error,omitempty" yaml:"error,omitempty"`
}

var batchCmd = &cobra.Command{
	Use:     "batch <file> <queries.toml>",
	GroupID: "query",
	Short:   "Run many queries against one ontology",
	Long: `Load an ontology once and run every [[query]] table of a TOML file.

Supported ops: ancestors, descendants, relations, similar, has-entity,
has-term, search. A failing query is reported in its result and does not
stop the batch; the exit code is 1 if any query failed.`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		failed, err := runBatch(os.Stdout, args[0], args[1])
		exitOnError(err)
		if failed > 0 {
			os.Exit(1)
		}
	},
}

func readBatch(path string) ([]batchQuery, error) {
	var f batchFile
	md, err := toml.DecodeFile(path, &f)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("unknown keys in %s: %s", path, strings.Join(keys, ", "))
	}
	return f.Queries, nil
}

// runBatch returns the number of failed queries.
func runBatch(w io.Writer, ontologyPath, batchPath string) (int, error) {
	qs, err := readBatch(batchPath)
	if err != nil {
		return 0, err
	}
	ont, err := loadOntology(ontologyPath)
	if err != nil {
		return 0, err
	}

	results := make([]batchResult, 0, len(qs))
	failed := 0
	for _, q := range qs {
		res, err := runBatchQuery(ont, q)
		r := batchResult{Query: q, Result: res}
		if err != nil {
			r.Error = err.Error()
			failed++
		}
		results = append(results, r)
	}

	err = writeOutput(w, results, func(w io.Writer) error {
		for i, r := range results {
			fmt.Fprintf(w, "[%d] %s %s%s\n", i+1, r.Query.Op, r.Query.ID, r.Query.Term)
			if r.Error != "" {
				fmt.Fprintf(w, "    error: %s\n", r.Error)
				continue
			}
			fmt.Fprintf(w, "    %s\n", formatBatchValue(r.Result))
		}
		return nil
	})
	return failed, err
}

func runBatchQuery(ont *ontology.Ontology, q batchQuery) (interface{}, error) {
	depth := types.UnlimitedDepth
	if q.Depth != nil {
		depth = *q.Depth
	}

	switch q.Op {
	case "ancestors":
		return ont.Ancestors(q.ID, depth)
	case "descendants":
		return ont.Descendants(q.ID, depth)
	case "relations":
		return ont.EntityRelations(q.ID)
	case "similar":
		var opts []similarity.Option
		if q.N > 0 {
			opts = append(opts, similarity.WithTopN(q.N))
		}
		if q.Threshold != nil {
			opts = append(opts, similarity.WithThreshold(*q.Threshold))
		}
		return ont.FindSimilarTerms(q.Term, opts...)
	case "has-entity":
		return ont.HasEntity(q.ID), nil
	case "has-term":
		return ont.HasTerm(q.Term), nil
	case "search":
		return ont.Search(queries.SearchOptions{Query: q.Term, Limit: q.N}), nil
	default:
		return nil, fmt.Errorf("unknown op %q", q.Op)
	}
}

func formatBatchValue(v interface{}) string {
	switch val := v.(type) {
	case []string:
		if len(val) == 0 {
			return "(none)"
		}
		return strings.Join(val, ", ")
	case []similarity.Match:
		parts := make([]string, len(val))
		for i, m := range val {
			parts[i] = fmt.Sprintf("%s (%.4f)", m.Name, m.Score)
		}
		return strings.Join(parts, ", ")
	case *ontology.EntityRelations:
		return fmt.Sprintf("%d parents, %d children, %d relations", len(val.Ancestors), len(val.Descendants), len(val.Relations))
	case []queries.SearchResult:
		parts := make([]string, len(val))
		for i, r := range val {
			parts[i] = r.ID
		}
		return strings.Join(parts, ", ")
	default:
		return fmt.Sprint(val)
	}
}

func init() {
	rootCmd.AddCommand(batchCmd)
}
