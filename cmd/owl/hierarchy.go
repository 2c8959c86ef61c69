package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/untoldecay/easyowl/internal/ontology"
	"github.com/untoldecay/easyowl/internal/queries"
	"github.com/untoldecay/easyowl/internal/types"
	"github.com/untoldecay/easyowl/internal/ui"
)

var (
	hierarchyDepth int
	hierarchyTree  bool
)

type hierarchyResult struct {
	ID        string   `json:"id" yaml:"id"`
	Direction string   `json:"direction" yaml:"direction"`
	Depth     int      `json:"depth" yaml:"depth"`
	Results   []string `json:"results" yaml:"results"`
}

var ancestorsCmd = &cobra.Command{
	Use:     "ancestors <file> <entity-id>",
	GroupID: "query",
	Short:   "List the superclasses of an entity",
	Long: `List every superclass reachable from an entity through rdfs:subClassOf.

--depth counts edges: 1 lists direct parents, -1 (default) walks to the top,
bounded by --max-traversal-depth. --tree prints every path instead of the
flat set.`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		exitOnError(runHierarchy(os.Stdout, args[0], args[1], queries.Up))
	},
}

var descendantsCmd = &cobra.Command{
	Use:     "descendants <file> <entity-id>",
	GroupID: "query",
	Short:   "List the subclasses of an entity",
	Args:    cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		exitOnError(runHierarchy(os.Stdout, args[0], args[1], queries.Down))
	},
}

func runHierarchy(w io.Writer, path, id string, dir queries.Direction) error {
	ont, err := loadOntology(path)
	if err != nil {
		return err
	}

	if hierarchyTree {
		graph, err := ont.Graph(id, dir, hierarchyDepth)
		if err != nil {
			return err
		}
		return writeOutput(w, graph, func(w io.Writer) error {
			_, err := fmt.Fprintln(w, ui.RenderEntityTree(graph))
			return err
		})
	}

	ids, err := walk(ont, id, dir)
	if err != nil {
		return err
	}
	res := hierarchyResult{ID: id, Direction: dir.String(), Depth: hierarchyDepth, Results: ids}
	return writeOutput(w, res, func(w io.Writer) error {
		for _, id := range ids {
			if _, err := fmt.Fprintln(w, id); err != nil {
				return err
			}
		}
		return nil
	})
}

func walk(ont *ontology.Ontology, id string, dir queries.Direction) ([]string, error) {
	if dir == queries.Up {
		return ont.Ancestors(id, hierarchyDepth)
	}
	return ont.Descendants(id, hierarchyDepth)
}

func init() {
	for _, c := range []*cobra.Command{ancestorsCmd, descendantsCmd} {
		c.Flags().IntVarP(&hierarchyDepth, "depth", "d", types.UnlimitedDepth, "Maximum number of subclass edges to follow (-1 for unlimited)")
		c.Flags().BoolVar(&hierarchyTree, "tree", false, "Render every path as a tree")
		rootCmd.AddCommand(c)
	}
}
