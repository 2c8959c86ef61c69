package similarity

import (
	"errors"
	"math"
	"reflect"
	"sync"
	"testing"

	"github.com/untoldecay/easyowl/internal/types"
)

func labelled(id, label string, exact ...string) *types.Entity {
	e := &types.Entity{
		ID:         id,
		Properties: map[string]types.PropertyValue{},
		Synonyms:   map[types.SynonymKind][]string{types.SynonymExact: exact},
	}
	if label != "" {
		e.Properties["label"] = types.PropertyValue{Values: []string{label}}
	}
	return e
}

func fixture() map[string]*types.Entity {
	return map[string]*types.Entity{
		"C": labelled("C", "heart disease", "cardiac disease"),
		"H": labelled("H", "heart"),
		"L": labelled("L", "lung disease"),
		"X": labelled("X", "heart disease"),
		"N": labelled("N", "", "nameless synonym"),
	}
}

func TestTermIndex(t *testing.T) {
	ti := BuildTermIndex(fixture())

	want := []string{"heart disease", "heart", "lung disease", "cardiac disease", "nameless synonym"}
	if got := ti.Terms(); !reflect.DeepEqual(got, want) {
		t.Errorf("Terms() = %v, want %v", got, want)
	}
	if got := ti.IDs("heart disease"); !reflect.DeepEqual(got, []string{"C", "X"}) {
		t.Errorf("IDs(heart disease) = %v", got)
	}
	if got := ti.IDs("cardiac disease"); !reflect.DeepEqual(got, []string{"C"}) {
		t.Errorf("IDs(cardiac disease) = %v", got)
	}
	for i, term := range ti.Terms() {
		if j, ok := ti.IndexOf(term); !ok || j != i || ti.Term(j) != term {
			t.Errorf("bijection broken for %q: IndexOf=%d,%v", term, j, ok)
		}
	}
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"Heart-Disease, TYPE 2", []string{"heart", "disease", "type", "2"}},
		{"  spaced   out ", []string{"spaced", "out"}},
		{"ＡＢＣ def", []string{"abc", "def"}},
		{"!!!", nil},
	}
	for _, tt := range tests {
		got := Tokenize(tt.in)
		if len(got) == 0 && len(tt.want) == 0 {
			continue
		}
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("Tokenize(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestHasTermDoesNotBuildMatrix(t *testing.T) {
	e := NewFromEntities(fixture())
	if !e.HasTerm("cardiac disease") || e.HasTerm("unknown") {
		t.Fatal("HasTerm returned wrong membership")
	}
	if e.Built() {
		t.Error("HasTerm must not build the matrix")
	}
	if _, err := e.FindSimilar("heart"); err != nil {
		t.Fatalf("FindSimilar: %v", err)
	}
	if !e.Built() {
		t.Error("matrix should be cached after the first query")
	}
}

func TestFindSimilarSelfMatch(t *testing.T) {
	e := NewFromEntities(fixture())

	got, err := e.FindSimilar("heart disease", WithTopN(1))
	if err != nil {
		t.Fatalf("FindSimilar: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 result, got %d", len(got))
	}
	if got[0].Name != "heart disease" || math.Abs(got[0].Score-1) > 1e-9 {
		t.Errorf("top match = %+v, want heart disease at 1.0", got[0])
	}
	if !reflect.DeepEqual(got[0].IDs, []string{"C", "X"}) {
		t.Errorf("IDs = %v", got[0].IDs)
	}
}

func TestFindSimilarScores(t *testing.T) {
	e := NewFromEntities(fixture())

	got, err := e.FindSimilar("heart disease")
	if err != nil {
		t.Fatalf("FindSimilar: %v", err)
	}
	for i := 1; i < len(got); i++ {
		if got[i].Score > got[i-1].Score {
			t.Fatalf("results not sorted by descending score: %+v", got)
		}
	}

	// 5 documents: heart appears in 2, disease in 3.
	heart := math.Log(6.0/3.0) + 1
	disease := math.Log(6.0/4.0) + 1
	wantHeart := heart / math.Hypot(heart, disease)

	scores := map[string]float64{}
	for _, m := range got {
		scores[m.Name] = m.Score
	}
	if math.Abs(scores["heart"]-wantHeart) > 1e-9 {
		t.Errorf("score(heart) = %v, want %v", scores["heart"], wantHeart)
	}
	if _, ok := scores["nameless synonym"]; ok {
		t.Error("labels sharing no token must not appear")
	}
	if scores["lung disease"] <= 0 || scores["lung disease"] >= scores["heart"] {
		t.Errorf("score(lung disease) = %v out of expected range", scores["lung disease"])
	}
}

func TestFindSimilarFilters(t *testing.T) {
	e := NewFromEntities(fixture())

	all, _ := e.FindSimilar("heart disease", WithThreshold(0.3))
	for _, m := range all {
		if !(m.Score > 0.3) {
			t.Errorf("threshold kept %+v", m)
		}
	}

	limited, _ := e.FindSimilar("heart disease", WithThreshold(0.3), WithTopN(2))
	if len(limited) > 2 {
		t.Fatalf("top-n returned %d results", len(limited))
	}
	for i, m := range limited {
		if !reflect.DeepEqual(m, all[i]) {
			t.Errorf("threshold+topN result %d = %+v, want %+v", i, m, all[i])
		}
	}

	strict, _ := e.FindSimilar("heart disease", WithThreshold(1))
	if len(strict) != 0 {
		t.Errorf("threshold 1 is strict, got %+v", strict)
	}

	none, _ := e.FindSimilar("heart disease", WithTopN(0))
	if len(none) != 0 {
		t.Errorf("WithTopN(0) returned %d results", len(none))
	}

	noSelf, _ := e.FindSimilar("heart disease", WithoutSelf())
	for _, m := range noSelf {
		if m.Name == "heart disease" {
			t.Error("WithoutSelf kept the query term")
		}
	}
}

func TestFindSimilarUnknownTerm(t *testing.T) {
	e := NewFromEntities(fixture())

	_, err := e.FindSimilar("kidney disease")
	var tnf *types.TermNotFoundError
	if !errors.As(err, &tnf) {
		t.Fatalf("expected TermNotFoundError, got %v", err)
	}
	if tnf.Term != "kidney disease" || !errors.Is(err, types.ErrTermNotFound) {
		t.Errorf("unexpected error %v", err)
	}
}

func TestFindSimilarTokenlessLabel(t *testing.T) {
	e := NewFromEntities(map[string]*types.Entity{
		"P": labelled("P", "!!!"),
		"Q": labelled("Q", "question"),
	})
	got, err := e.FindSimilar("!!!")
	if err != nil {
		t.Fatalf("FindSimilar: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("label without tokens should match nothing, got %+v", got)
	}
}

func TestConcurrentFirstQuery(t *testing.T) {
	e := NewFromEntities(fixture())

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := e.FindSimilar("lung disease", WithTopN(3)); err != nil {
				t.Errorf("FindSimilar: %v", err)
			}
		}()
	}
	wg.Wait()

	if !e.Built() {
		t.Error("matrix should be built")
	}
}
