// Package validation checks extracted entities for modelling problems that
// do not stop extraction: missing labels, dangling or cyclic subclass
// references and disjointness that contradicts the hierarchy.
package validation

import (
	"fmt"
	"sort"
	"strings"

	"github.com/untoldecay/easyowl/internal/types"
)

// EntityValidator validates an entity and returns an error if validation fails.
// Validators can be composed using Chain() for complex validation logic.
type EntityValidator func(id string, entity *types.Entity) error

// Chain composes multiple validators into a single validator.
// Validators are executed in order and the first error stops the chain.
func Chain(validators ...EntityValidator) EntityValidator {
	return func(id string, entity *types.Entity) error {
		for _, v := range validators {
			if err := v(id, entity); err != nil {
				return err
			}
		}
		return nil
	}
}

// Exists validates that an entity is not nil.
func Exists() EntityValidator {
	return func(id string, entity *types.Entity) error {
		if entity == nil {
			return fmt.Errorf("entity %s not found", id)
		}
		return nil
	}
}

// HasLabel validates that the entity carries an rdfs:label.
func HasLabel() EntityValidator {
	return func(id string, entity *types.Entity) error {
		if entity == nil {
			return nil // Let Exists() handle nil check if needed
		}
		if entity.Label() == "" {
			return fmt.Errorf("entity %s has no rdfs:label", id)
		}
		return nil
	}
}

// NotSelfSubclass validates that the entity does not list itself as a
// superclass.
func NotSelfSubclass() EntityValidator {
	return func(id string, entity *types.Entity) error {
		if entity == nil {
			return nil
		}
		for _, super := range entity.Superclasses() {
			if super == id {
				return fmt.Errorf("entity %s is a subclass of itself", id)
			}
		}
		return nil
	}
}

// KnownSuperclasses validates that every named superclass was extracted.
func KnownSuperclasses(known func(id string) bool) EntityValidator {
	return func(id string, entity *types.Entity) error {
		if entity == nil {
			return nil
		}
		var missing []string
		for _, super := range entity.Superclasses() {
			if !known(super) {
				missing = append(missing, super)
			}
		}
		if len(missing) > 0 {
			return fmt.Errorf("entity %s references undefined superclass(es): %s", id, strings.Join(missing, ", "))
		}
		return nil
	}
}

// Acyclic validates that no superclass of the entity leads back to it.
// ancestors must return every ancestor of an id, excluding the id itself.
func Acyclic(ancestors func(id string) []string) EntityValidator {
	return func(id string, entity *types.Entity) error {
		if entity == nil {
			return nil
		}
		for _, super := range entity.Superclasses() {
			if super == id {
				continue // NotSelfSubclass
			}
			if contains(ancestors(super), id) {
				return fmt.Errorf("entity %s is part of a subclass cycle through %s", id, super)
			}
		}
		return nil
	}
}

// NotDisjointWithAncestor validates that the entity is not declared
// disjoint with one of its own superclasses.
func NotDisjointWithAncestor(ancestors func(id string) []string) EntityValidator {
	return func(id string, entity *types.Entity) error {
		if entity == nil || len(entity.Disjoints) == 0 {
			return nil
		}
		for _, a := range ancestors(id) {
			if entity.IsDisjointWith(a) {
				return fmt.Errorf("entity %s is disjoint with its ancestor %s", id, a)
			}
		}
		return nil
	}
}

// Rule is a named validator run by Lint.
type Rule struct {
	Name     string
	Validate EntityValidator
}

// Finding is one rule violation.
type Finding struct {
	ID      string `json:"id" yaml:"id"`
	Rule    string `json:"rule" yaml:"rule"`
	Message string `json:"message" yaml:"message"`
}

// DefaultRules returns every rule. known reports whether an id was
// extracted; ancestors returns its full ancestor set.
func DefaultRules(known func(string) bool, ancestors func(string) []string) []Rule {
	return []Rule{
		{Name: "label", Validate: HasLabel()},
		{Name: "self-subclass", Validate: NotSelfSubclass()},
		{Name: "dangling", Validate: KnownSuperclasses(known)},
		{Name: "cycle", Validate: Acyclic(ancestors)},
		{Name: "disjoint", Validate: NotDisjointWithAncestor(ancestors)},
	}
}

// Lint runs every rule against every entity. Unlike Chain, a failing rule
// does not stop the others. Findings are ordered by entity id, then rule
// order.
func Lint(entities map[string]*types.Entity, rules []Rule) []Finding {
	ids := make([]string, 0, len(entities))
	for id := range entities {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var findings []Finding
	for _, id := range ids {
		for _, r := range rules {
			if err := r.Validate(id, entities[id]); err != nil {
				findings = append(findings, Finding{ID: id, Rule: r.Name, Message: err.Error()})
			}
		}
	}
	return findings
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
