package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/untoldecay/easyowl/internal/types"
	"github.com/untoldecay/easyowl/internal/ui"
)

type showResult struct {
	types.Entity `yaml:",inline"`
	Parents       []string `json:"parents" yaml:"parents"`
	Children      []string `json:"children" yaml:"children"`
}

var showCmd = &cobra.Command{
	Use:     "show <file> <entity-id>",
	GroupID: "query",
	Short:   "Show everything extracted for one entity",
	Args:    cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		exitOnError(runShow(os.Stdout, args[0], args[1]))
	},
}

func runShow(w io.Writer, path, id string) error {
	ont, err := loadOntology(path)
	if err != nil {
		return err
	}
	entity, err := ont.Entity(id)
	if err != nil {
		return err
	}
	rel, err := ont.EntityRelations(id)
	if err != nil {
		return err
	}

	res := showResult{Entity: *entity, Parents: rel.Ancestors, Children: rel.Descendants}
	return writeOutput(w, res, func(w io.Writer) error {
		out, err := ui.RenderMarkdown(ui.EntityMarkdown(entity, rel.Ancestors, rel.Descendants), ui.GetWidth())
		if err != nil {
			return err
		}
		_, err = fmt.Fprint(w, out)
		return err
	})
}

func init() {
	rootCmd.AddCommand(showCmd)
}
