package easyowl_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/untoldecay/easyowl"
)

const fixture = `<?xml version="1.0"?>
<rdf:RDF xmlns:owl="http://www.w3.org/2002/07/owl#"
     xmlns:rdf="http://www.w3.org/1999/02/22-rdf-syntax-ns#"
     xmlns:rdfs="http://www.w3.org/2000/01/rdf-schema#">
  <owl:Class rdf:about="A"><rdfs:label>alpha</rdfs:label></owl:Class>
  <owl:Class rdf:about="B">
    <rdfs:label>beta</rdfs:label>
    <rdfs:subClassOf rdf:resource="A"/>
  </owl:Class>
</rdf:RDF>
`

func write(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.owl")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	ont, err := easyowl.Load(write(t, fixture), easyowl.WithEagerSimilarity())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	parents, err := ont.Ancestors("B", easyowl.UnlimitedDepth)
	if err != nil {
		t.Fatalf("Ancestors failed: %v", err)
	}
	if len(parents) != 1 || parents[0] != "A" {
		t.Errorf("Ancestors(B) = %v, want [A]", parents)
	}

	matches, err := ont.FindSimilarTerms("alpha", easyowl.WithTopN(1))
	if err != nil {
		t.Fatalf("FindSimilarTerms failed: %v", err)
	}
	if len(matches) != 1 || matches[0].Name != "alpha" {
		t.Errorf("matches = %+v", matches)
	}
}

func TestSentinelErrors(t *testing.T) {
	_, err := easyowl.Load(filepath.Join(t.TempDir(), "missing.owl"))
	if !errors.Is(err, easyowl.ErrParse) {
		t.Errorf("missing file: err = %v, want ErrParse", err)
	}

	ont, err := easyowl.Load(write(t, fixture))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if _, err := ont.Descendants("Z", 1); !errors.Is(err, easyowl.ErrEntityNotFound) {
		t.Errorf("unknown entity: err = %v", err)
	}
	_, err = ont.FindSimilarTerms("gamma")
	var tnf *easyowl.TermNotFoundError
	if !errors.As(err, &tnf) || tnf.Term != "gamma" {
		t.Errorf("unknown term: err = %v", err)
	}
}
