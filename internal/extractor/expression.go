package extractor

import (
	"github.com/beevik/etree"
	"github.com/untoldecay/easyowl/internal/types"
)

// expression flattens an anonymous class expression (owl:Restriction or
// owl:intersectionOf collection, arbitrarily nested) into its restrictions.
// It walks an explicit stack so nesting depth never grows the call stack.
func (p *parser) expression(root *etree.Element) []types.Restriction {
	var out []types.Restriction
	stack := []*etree.Element{root}

	for len(stack) > 0 {
		el := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if p.is(el, p.owl, "Restriction") {
			out = append(out, p.restriction(el))
			continue
		}

		if inter := p.child(el, p.owl, "intersectionOf"); inter != nil {
			if p.attr(inter, p.rdf, "parseType") != "Collection" {
				continue
			}
			members := inter.ChildElements()
			// Reverse push keeps document order on pop.
			for i := len(members) - 1; i >= 0; i-- {
				if p.isOperand(members[i]) {
					stack = append(stack, members[i])
				}
			}
			continue
		}

		if r := p.child(el, p.owl, "Restriction"); r != nil {
			out = append(out, p.restriction(r))
			continue
		}

		// subClassOf > owl:Class > owl:intersectionOf
		if anon := p.child(el, p.owl, "Class"); anon != nil && p.attr(anon, p.rdf, "about") == "" {
			stack = append(stack, anon)
		}
	}
	return out
}

// isOperand reports whether a collection member can carry a restriction.
func (p *parser) isOperand(el *etree.Element) bool {
	return p.is(el, p.rdf, "Description") ||
		p.is(el, p.owl, "Restriction") ||
		p.is(el, p.owl, "Class")
}

func (p *parser) restriction(el *etree.Element) types.Restriction {
	return types.Restriction{
		OnProperty:     p.resource(p.child(el, p.owl, "onProperty")),
		SomeValuesFrom: p.resource(p.child(el, p.owl, "someValuesFrom")),
	}
}
