package types

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinels matched by the typed errors below through errors.Is.
var (
	ErrParse          = errors.New("ontology parse error")
	ErrEntityNotFound = errors.New("entity not found")
	ErrTermNotFound   = errors.New("term not found")
	ErrDownload       = errors.New("download failed")
)

// ParseError is returned when an ontology file cannot be read or parsed.
// No partial ontology is ever returned alongside it.
type ParseError struct {
	Path   string
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Reason, e.Path, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Reason, e.Path)
}

func (e *ParseError) Unwrap() error { return e.Err }

func (e *ParseError) Is(target error) bool { return target == ErrParse }

// EntityNotFoundError is returned when a query names an unknown entity ID.
type EntityNotFoundError struct {
	ID string
}

func (e *EntityNotFoundError) Error() string {
	return "entity not found: " + e.ID
}

func (e *EntityNotFoundError) Is(target error) bool { return target == ErrEntityNotFound }

// TermNotFoundError is returned when a similarity query names an unregistered label.
type TermNotFoundError struct {
	Term        string
	Suggestions []string
}

func (e *TermNotFoundError) Error() string {
	if len(e.Suggestions) == 0 {
		return "term not found: " + e.Term
	}
	return fmt.Sprintf("term not found: %s (did you mean: %s?)", e.Term, strings.Join(e.Suggestions, ", "))
}

func (e *TermNotFoundError) Is(target error) bool { return target == ErrTermNotFound }

// DownloadError is returned by the download collaborator, never by the core.
type DownloadError struct {
	URL    string
	Reason string
	Err    error
}

func (e *DownloadError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Reason, e.URL, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Reason, e.URL)
}

func (e *DownloadError) Unwrap() error { return e.Err }

func (e *DownloadError) Is(target error) bool { return target == ErrDownload }
