package extractor

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/untoldecay/easyowl/internal/testutil"
	"github.com/untoldecay/easyowl/internal/types"
)

const ex = "http://example.org/onto#"

func extractFixture(t *testing.T, content string) *ExtractionResult {
	t.Helper()
	path := testutil.Write(t, "fixture.owl", content)
	result, err := NewOWLExtractor().Extract(path)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	return result
}

func TestExtractEntities(t *testing.T) {
	result := extractFixture(t, testutil.Disease)

	if result.Extractor != "owl" {
		t.Errorf("Extractor = %q, want owl", result.Extractor)
	}
	if len(result.Entities) != 7 {
		t.Fatalf("expected 7 entities, got %d", len(result.Entities))
	}
	for id, e := range result.Entities {
		if e.ID != id {
			t.Errorf("entity keyed %q carries ID %q", id, e.ID)
		}
	}

	hd := result.Entities[ex+"HeartDisease"]
	if hd == nil {
		t.Fatal("HeartDisease not extracted")
	}
	if got := hd.Label(); got != "heart disease" {
		t.Errorf("Label() = %q, want %q", got, "heart disease")
	}
	if v := hd.Properties["label"]; !v.IsScalar() {
		t.Errorf("label should collapse to a scalar, got %v", v.Values)
	}
	if v := hd.Properties["disjointWith"]; len(v.Values) != 2 {
		t.Errorf("disjointWith property should keep both values, got %v", v.Values)
	}
	if !reflect.DeepEqual(hd.Disjoints, []string{ex + "LungDisease"}) {
		t.Errorf("Disjoints = %v, want deduplicated LungDisease", hd.Disjoints)
	}
}

func TestExtractSubclasses(t *testing.T) {
	result := extractFixture(t, testutil.Disease)

	hd := result.Entities[ex+"HeartDisease"]
	want := []types.SubclassRef{
		{URI: ex + "Disease"},
		{Restrictions: []types.Restriction{{OnProperty: ex + "affects", SomeValuesFrom: ex + "Heart"}}},
	}
	if !reflect.DeepEqual(hd.Subclasses, want) {
		t.Errorf("HeartDisease subclasses = %+v, want %+v", hd.Subclasses, want)
	}
	if got := hd.Superclasses(); !reflect.DeepEqual(got, []string{ex + "Disease"}) {
		t.Errorf("Superclasses() = %v", got)
	}

	cm := result.Entities[ex+"Cardiomyopathy"]
	wantCM := []types.SubclassRef{
		{URI: ex + "HeartDisease"},
		{Restrictions: []types.Restriction{
			{OnProperty: ex + "locatedIn", SomeValuesFrom: ex + "Myocardium"},
			{OnProperty: ex + "affects"},
		}},
	}
	if !reflect.DeepEqual(cm.Subclasses, wantCM) {
		t.Errorf("Cardiomyopathy subclasses = %+v, want %+v", cm.Subclasses, wantCM)
	}
}

func TestExtractNestedIntersection(t *testing.T) {
	doc := testutil.Header + `
  <owl:Class rdf:about="X">
    <rdfs:subClassOf>
      <owl:Class>
        <owl:intersectionOf rdf:parseType="Collection">
          <owl:Class>
            <owl:intersectionOf rdf:parseType="Collection">
              <owl:Restriction>
                <owl:onProperty rdf:resource="p1"/>
                <owl:someValuesFrom rdf:resource="v1"/>
              </owl:Restriction>
            </owl:intersectionOf>
          </owl:Class>
          <owl:Restriction>
            <owl:onProperty rdf:resource="p2"/>
          </owl:Restriction>
        </owl:intersectionOf>
      </owl:Class>
    </rdfs:subClassOf>
  </owl:Class>
` + testutil.Footer

	result := extractFixture(t, doc)
	got := result.Entities["X"].Subclasses
	want := []types.SubclassRef{{Restrictions: []types.Restriction{
		{OnProperty: "p1", SomeValuesFrom: "v1"},
		{OnProperty: "p2"},
	}}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("nested intersection = %+v, want %+v", got, want)
	}
}

func TestExtractSynonyms(t *testing.T) {
	result := extractFixture(t, testutil.Disease)

	hd := result.Entities[ex+"HeartDisease"]
	if got := hd.Synonyms[types.SynonymExact]; !reflect.DeepEqual(got, []string{"cardiac disease"}) {
		t.Errorf("exact synonyms = %v", got)
	}
	if got := hd.Synonyms[types.SynonymNarrow]; !reflect.DeepEqual(got, []string{"coronary disease"}) {
		t.Errorf("narrow synonyms = %v", got)
	}
	broad, ok := hd.Synonyms[types.SynonymBroad]
	if !ok || len(broad) != 0 {
		t.Errorf("broad synonyms should be present and empty, got %v (present=%v)", broad, ok)
	}
}

func TestExtractMatchesWithoutSKOS(t *testing.T) {
	result := extractFixture(t, testutil.Disease)
	for id, e := range result.Entities {
		if len(e.Matches) != 0 {
			t.Errorf("entity %s has matches without skos namespace: %v", id, e.Matches)
		}
	}
}

func TestExtractMatchesWithSKOS(t *testing.T) {
	doc := testutil.HeaderSKOS + `
  <owl:Class rdf:about="C">
    <skos:exactMatch rdf:resource="http://other.org/C"/>
    <skos:closeMatch rdf:resource="http://other.org/C1"/>
    <skos:closeMatch skos:resource="http://other.org/C2"/>
    <skos:broadMatch/>
  </owl:Class>
` + testutil.Footer

	result := extractFixture(t, doc)
	m := result.Entities["C"].Matches
	if len(m) != len(types.MatchKinds) {
		t.Fatalf("expected every match kind present, got %v", m)
	}
	if !reflect.DeepEqual(m[types.MatchExact], []string{"http://other.org/C"}) {
		t.Errorf("exactMatch = %v", m[types.MatchExact])
	}
	if !reflect.DeepEqual(m[types.MatchClose], []string{"http://other.org/C1", "http://other.org/C2"}) {
		t.Errorf("closeMatch = %v", m[types.MatchClose])
	}
	if len(m[types.MatchBroad]) != 0 || len(m[types.MatchNarrow]) != 0 {
		t.Errorf("broad/narrow should be empty, got %v / %v", m[types.MatchBroad], m[types.MatchNarrow])
	}
}

func TestExtractRelations(t *testing.T) {
	result := extractFixture(t, testutil.Disease)

	if len(result.Relations) != 2 {
		t.Fatalf("expected 2 relations (one without predicate dropped), got %d", len(result.Relations))
	}
	affects := result.Relations[0]
	if affects.Predicate != ex+"affects" {
		t.Fatalf("first relation = %q, want affects", affects.Predicate)
	}
	if affects.Domain != ex+"Disease" || affects.Range != ex+"Organ" {
		t.Errorf("domain/range = %q/%q", affects.Domain, affects.Range)
	}
	if affects.Properties["comment"] != "second" {
		t.Errorf("later duplicate tag should overwrite, got %q", affects.Properties["comment"])
	}
	if _, ok := affects.Properties["domain"]; ok {
		t.Error("children without text should not become relation properties")
	}

	located := result.Relations[1]
	if located.Domain != "" || located.Range != "" {
		t.Errorf("locatedIn should have no domain/range, got %q/%q", located.Domain, located.Range)
	}
}

func TestExtractNamespaces(t *testing.T) {
	result := extractFixture(t, testutil.Disease)

	if result.Namespaces["rdf"] != types.NamespaceRDF {
		t.Errorf("rdf namespace = %q", result.Namespaces["rdf"])
	}
	if result.Namespaces.Has("skos") {
		t.Error("skos should not be declared")
	}
	if result.Namespaces.Has("") || result.Namespaces.Has("xmlns") {
		t.Errorf("default namespace leaked into table: %v", result.Namespaces)
	}
}

func TestExtractErrors(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name string
		path func(t *testing.T) string
	}{
		{"missing file", func(t *testing.T) string { return filepath.Join(dir, "nope.owl") }},
		{"directory", func(t *testing.T) string { return dir }},
		{"malformed xml", func(t *testing.T) string {
			return testutil.Write(t, "bad.owl", testutil.Header+`<owl:Class rdf:about="A">`)
		}},
		{"missing rdf namespace", func(t *testing.T) string {
			return testutil.Write(t, "nordf.owl", `<root xmlns:owl="http://www.w3.org/2002/07/owl#"><owl:Class/></root>`)
		}},
		{"empty file", func(t *testing.T) string { return testutil.Write(t, "empty.owl", "") }},
		{"element after root", func(t *testing.T) string {
			return testutil.Write(t, "trailing.owl", testutil.Header+testutil.Footer+"<x/>")
		}},
		{"text after root", func(t *testing.T) string {
			return testutil.Write(t, "text.owl", testutil.Header+testutil.Footer+"junk")
		}},
		{"mismatched end tag", func(t *testing.T) string {
			return testutil.Write(t, "mismatch.owl", testutil.Header+`<owl:Class rdf:about="A"></owl:ObjectProperty>`+testutil.Footer)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := NewOWLExtractor().Extract(tt.path(t))
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if result != nil {
				t.Error("no partial result should be returned on error")
			}
			var pe *types.ParseError
			if !errors.As(err, &pe) {
				t.Fatalf("expected *types.ParseError, got %T: %v", err, err)
			}
			if !errors.Is(err, types.ErrParse) {
				t.Error("ParseError should match types.ErrParse")
			}
		})
	}
}

func TestExtractAcceptsWellFormedDocuments(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    int
	}{
		{"namespaced children", testutil.Disease, 7},
		{"cycle", testutil.Cycle, 2},
		{"comment and whitespace after root", testutil.Cycle + "\n<!-- tail -->\n\n", 2},
		{"skos header", testutil.HeaderSKOS + testutil.Footer, 0},
		{"owl as default namespace", `<?xml version="1.0"?>
<rdf:RDF xmlns:rdf="http://www.w3.org/1999/02/22-rdf-syntax-ns#" xmlns="http://www.w3.org/2002/07/owl#">
  <Class rdf:about="A"/>
  <Class rdf:about="B"/>
</rdf:RDF>`, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := NewOWLExtractor().ExtractBytes(tt.name, []byte(tt.content))
			if err != nil {
				t.Fatalf("ExtractBytes failed: %v", err)
			}
			if len(result.Entities) != tt.want {
				t.Errorf("got %d entities, want %d", len(result.Entities), tt.want)
			}
		})
	}
}

func TestExtractUnreadableFile(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("permissions are not enforced for root")
	}
	path := testutil.Write(t, "locked.owl", testutil.Disease)
	if err := os.Chmod(path, 0o000); err != nil {
		t.Fatalf("chmod: %v", err)
	}
	if _, err := NewOWLExtractor().Extract(path); !errors.Is(err, types.ErrParse) {
		t.Errorf("expected parse error for unreadable file, got %v", err)
	}
}
