package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/untoldecay/easyowl/internal/config"
	"github.com/untoldecay/easyowl/internal/ontology"
	"gopkg.in/yaml.v3"
)

const (
	formatText = "text"
	formatJSON = "json"
	formatYAML = "yaml"
)

// writeOutput renders v in the selected format. text renders the
// human-readable form.
func writeOutput(w io.Writer, v interface{}, text func(io.Writer) error) error {
	switch outputFormat {
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	case formatText, "":
		return text(w)
	default:
		return fmt.Errorf("unknown output format %q (want text, json or yaml)", outputFormat)
	}
}

// outputJSON writes v as indented JSON to stdout.
func outputJSON(v interface{}) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding JSON: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(string(data))
}

// exitOnError prints err the way every command reports failures and exits 1.
func exitOnError(err error) {
	if err == nil {
		return
	}
	if outputFormat == formatJSON {
		outputJSON(map[string]string{"error": err.Error()})
	} else {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	os.Exit(1)
}

func commandContext() context.Context {
	if rootCtx == nil {
		return context.Background()
	}
	return rootCtx
}

// loadOntology loads path with the configured traversal ceiling and
// similarity settings.
func loadOntology(path string) (*ontology.Ontology, error) {
	opts := []ontology.Option{
		ontology.WithMaxTraversalDepth(maxTraversalDepth),
		ontology.WithSuggestions(config.GetInt("similarity.suggestions"), config.GetInt("similarity.max-distance")),
	}
	if config.GetBool("similarity.eager") {
		opts = append(opts, ontology.WithEagerSimilarity())
	}
	return ontology.Load(path, opts...)
}
