package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

var (
	hasEntityID string
	hasTerm     string
)

type hasResult struct {
	Entity *bool `json:"entity,omitempty" yaml:"entity,omitempty"`
	Term   *bool `json:"term,omitempty" yaml:"term,omitempty"`
}

var hasCmd = &cobra.Command{
	Use:     "has <file> [--entity ID] [--term LABEL]",
	GroupID: "query",
	Short:   "Check whether an entity id or a label exists",
	Args:    cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		exitOnError(runHas(os.Stdout, args[0]))
	},
}

func runHas(w io.Writer, path string) error {
	if hasEntityID == "" && hasTerm == "" {
		return errors.New("specify --entity, --term or both")
	}
	ont, err := loadOntology(path)
	if err != nil {
		return err
	}

	var res hasResult
	if hasEntityID != "" {
		found := ont.HasEntity(hasEntityID)
		res.Entity = &found
	}
	if hasTerm != "" {
		found := ont.HasTerm(hasTerm)
		res.Term = &found
	}

	return writeOutput(w, res, func(w io.Writer) error {
		if res.Entity != nil {
			fmt.Fprintf(w, "entity %s: %t\n", hasEntityID, *res.Entity)
		}
		if res.Term != nil {
			fmt.Fprintf(w, "term %q: %t\n", hasTerm, *res.Term)
		}
		return nil
	})
}

func init() {
	hasCmd.Flags().StringVar(&hasEntityID, "entity", "", "Entity URI to look up")
	hasCmd.Flags().StringVar(&hasTerm, "term", "", "Label or exact synonym to look up")
	rootCmd.AddCommand(hasCmd)
}
