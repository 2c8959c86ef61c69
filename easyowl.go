// Package easyowl loads OWL/RDF-XML ontologies and answers hierarchy and
// label-similarity queries against them.
//
// Most callers only need Load:
//
//	ont, err := easyowl.Load("data/doid.owl")
//	if err != nil {
//		return err
//	}
//	parents, err := ont.Ancestors("http://purl.obolibrary.org/obo/DOID_114", 1)
//	matches, err := ont.FindSimilarTerms("heart disease", easyowl.WithTopN(5))
//
// Errors can be classified with errors.Is against ErrParse,
// ErrEntityNotFound, ErrTermNotFound and ErrDownload.
package easyowl

import (
	"context"

	"github.com/untoldecay/easyowl/internal/download"
	"github.com/untoldecay/easyowl/internal/ontology"
	"github.com/untoldecay/easyowl/internal/similarity"
	"github.com/untoldecay/easyowl/internal/types"
)

// Ontology is a loaded, read-only ontology. It is safe for concurrent use.
type Ontology = ontology.Ontology

// Option configures Load.
type Option = ontology.Option

// Load parses the OWL/RDF-XML file at path.
func Load(path string, opts ...Option) (*Ontology, error) {
	return ontology.Load(path, opts...)
}

// Load options
var (
	WithMaxTraversalDepth = ontology.WithMaxTraversalDepth
	WithEagerSimilarity   = ontology.WithEagerSimilarity
	WithSuggestions       = ontology.WithSuggestions
)

// SimilarityOption filters FindSimilarTerms results.
type SimilarityOption = similarity.Option

// Similarity options
var (
	WithTopN      = similarity.WithTopN
	WithThreshold = similarity.WithThreshold
	WithoutSelf   = similarity.WithoutSelf
)

// DownloadOptions controls Download.
type DownloadOptions = download.Options

// Download fetches rawURL into opts.Dir and returns the local path.
func Download(ctx context.Context, rawURL string, opts DownloadOptions) (string, error) {
	return download.Fetch(ctx, rawURL, opts)
}

// Core types from internal/types
type (
	Entity          = types.Entity
	Relation        = types.Relation
	Restriction     = types.Restriction
	SubclassRef     = types.SubclassRef
	PropertyValue   = types.PropertyValue
	Namespaces      = types.Namespaces
	SynonymKind     = types.SynonymKind
	MatchKind       = types.MatchKind
	Match           = similarity.Match
	EntityRelations = ontology.EntityRelations
	Stats           = ontology.Stats
)

// Error types
type (
	ParseError          = types.ParseError
	EntityNotFoundError = types.EntityNotFoundError
	TermNotFoundError   = types.TermNotFoundError
	DownloadError       = types.DownloadError
)

// Sentinel errors
var (
	ErrParse          = types.ErrParse
	ErrEntityNotFound = types.ErrEntityNotFound
	ErrTermNotFound   = types.ErrTermNotFound
	ErrDownload       = types.ErrDownload
)

// UnlimitedDepth walks a hierarchy until exhaustion.
const UnlimitedDepth = types.UnlimitedDepth

// SynonymKind constants
const (
	SynonymExact  = types.SynonymExact
	SynonymNarrow = types.SynonymNarrow
	SynonymBroad  = types.SynonymBroad
)

// MatchKind constants
const (
	MatchExact  = types.MatchExact
	MatchClose  = types.MatchClose
	MatchNarrow = types.MatchNarrow
	MatchBroad  = types.MatchBroad
)
