package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/untoldecay/easyowl/internal/ui"
)

var relationsCmd = &cobra.Command{
	Use:     "relations <file> <entity-id>",
	GroupID: "query",
	Short:   "Show direct parents, children and object-property relations of an entity",
	Args:    cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		exitOnError(runRelations(os.Stdout, args[0], args[1]))
	},
}

func runRelations(w io.Writer, path, id string) error {
	ont, err := loadOntology(path)
	if err != nil {
		return err
	}
	rel, err := ont.EntityRelations(id)
	if err != nil {
		return err
	}

	return writeOutput(w, rel, func(w io.Writer) error {
		width := ui.GetWidth()
		_, err := fmt.Fprintln(w, lipgloss.JoinVertical(lipgloss.Left,
			ui.RenderList("Superclasses", rel.Ancestors, width),
			ui.RenderList("Subclasses", rel.Descendants, width),
			ui.RenderRelationsTable(rel.Relations, width),
		))
		return err
	})
}

func init() {
	rootCmd.AddCommand(relationsCmd)
}
