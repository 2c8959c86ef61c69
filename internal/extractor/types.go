package extractor

import (
	"time"

	"github.com/untoldecay/easyowl/internal/types"
)

// Extractor is the interface for ontology extraction strategies
type Extractor interface {
	Extract(path string) (*ExtractionResult, error)
	Name() string
}

// ExtractionResult contains everything read from one ontology document
type ExtractionResult struct {
	Entities   map[string]*types.Entity
	Relations  []types.Relation
	Namespaces types.Namespaces
	Duration   time.Duration
	Extractor  string
}
