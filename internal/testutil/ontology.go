// Package testutil provides OWL fixtures shared by package tests.
package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// Header opens an rdf:RDF document declaring the usual prefixes except skos.
const Header = `<?xml version="1.0"?>
<rdf:RDF xmlns="http://example.org/onto#"
     xml:base="http://example.org/onto"
     xmlns:owl="http://www.w3.org/2002/07/owl#"
     xmlns:rdf="http://www.w3.org/1999/02/22-rdf-syntax-ns#"
     xmlns:rdfs="http://www.w3.org/2000/01/rdf-schema#"
     xmlns:oboInOwl="http://www.geneontology.org/formats/oboInOwl#">
`

// HeaderSKOS is Header plus the skos prefix.
const HeaderSKOS = `<?xml version="1.0"?>
<rdf:RDF xmlns:owl="http://www.w3.org/2002/07/owl#"
     xmlns:rdf="http://www.w3.org/1999/02/22-rdf-syntax-ns#"
     xmlns:rdfs="http://www.w3.org/2000/01/rdf-schema#"
     xmlns:oboInOwl="http://www.geneontology.org/formats/oboInOwl#"
     xmlns:skos="http://www.w3.org/2004/02/skos/core#">
`

// Footer closes a document opened with Header or HeaderSKOS.
const Footer = `</rdf:RDF>
`

// Disease is a small disease ontology with a restriction, an intersection,
// a relation and a dangling superclass reference.
const Disease = Header + `
  <owl:ObjectProperty rdf:about="http://example.org/onto#affects">
    <rdfs:domain rdf:resource="http://example.org/onto#Disease"/>
    <rdfs:range rdf:resource="http://example.org/onto#Organ"/>
    <rdfs:label>affects</rdfs:label>
    <rdfs:comment>first</rdfs:comment>
    <rdfs:comment>second</rdfs:comment>
  </owl:ObjectProperty>

  <owl:ObjectProperty rdf:about="http://example.org/onto#locatedIn">
    <rdfs:label>located in</rdfs:label>
    <oboInOwl:inverseOf>http://example.org/onto#Heart</oboInOwl:inverseOf>
  </owl:ObjectProperty>

  <owl:ObjectProperty>
    <rdfs:label>anonymous</rdfs:label>
  </owl:ObjectProperty>

  <owl:Class rdf:about="http://example.org/onto#Disease">
    <rdfs:label>disease</rdfs:label>
    <oboInOwl:id>EX:0001</oboInOwl:id>
  </owl:Class>

  <owl:Class rdf:about="http://example.org/onto#HeartDisease">
    <rdfs:label>heart disease</rdfs:label>
    <oboInOwl:hasExactSynonym>cardiac disease</oboInOwl:hasExactSynonym>
    <oboInOwl:hasNarrowSynonym>coronary disease</oboInOwl:hasNarrowSynonym>
    <rdfs:subClassOf rdf:resource="http://example.org/onto#Disease"/>
    <rdfs:subClassOf>
      <owl:Restriction>
        <owl:onProperty rdf:resource="http://example.org/onto#affects"/>
        <owl:someValuesFrom rdf:resource="http://example.org/onto#Heart"/>
      </owl:Restriction>
    </rdfs:subClassOf>
    <owl:disjointWith rdf:resource="http://example.org/onto#LungDisease"/>
    <owl:disjointWith rdf:resource="http://example.org/onto#LungDisease"/>
  </owl:Class>

  <owl:Class rdf:about="http://example.org/onto#LungDisease">
    <rdfs:label>lung disease</rdfs:label>
    <oboInOwl:hasExactSynonym>pulmonary disease</oboInOwl:hasExactSynonym>
    <oboInOwl:hasExactSynonym>respiratory disease</oboInOwl:hasExactSynonym>
    <rdfs:subClassOf rdf:resource="http://example.org/onto#Disease"/>
  </owl:Class>

  <owl:Class rdf:about="http://example.org/onto#Cardiomyopathy">
    <rdfs:label>cardiomyopathy</rdfs:label>
    <rdfs:subClassOf rdf:resource="http://example.org/onto#HeartDisease"/>
    <rdfs:subClassOf>
      <owl:Class>
        <owl:intersectionOf rdf:parseType="Collection">
          <rdf:Description rdf:about="http://example.org/onto#HeartDisease"/>
          <owl:Restriction>
            <owl:onProperty rdf:resource="http://example.org/onto#locatedIn"/>
            <owl:someValuesFrom rdf:resource="http://example.org/onto#Myocardium"/>
          </owl:Restriction>
          <owl:Restriction>
            <owl:onProperty rdf:resource="http://example.org/onto#affects"/>
          </owl:Restriction>
        </owl:intersectionOf>
      </owl:Class>
    </rdfs:subClassOf>
  </owl:Class>

  <owl:Class rdf:about="http://example.org/onto#Orphan">
    <rdfs:label>orphan</rdfs:label>
  </owl:Class>

  <owl:Class rdf:about="http://example.org/onto#Dangling">
    <rdfs:label>dangling</rdfs:label>
    <rdfs:subClassOf rdf:resource="http://example.org/onto#Missing"/>
  </owl:Class>

  <owl:Class rdf:about="http://example.org/onto#Heart">
    <rdfs:label>heart</rdfs:label>
  </owl:Class>
` + Footer

// Cycle declares A subClassOf B and B subClassOf A.
const Cycle = Header + `
  <owl:Class rdf:about="A">
    <rdfs:label>alpha</rdfs:label>
    <rdfs:subClassOf rdf:resource="B"/>
  </owl:Class>
  <owl:Class rdf:about="B">
    <rdfs:label>beta</rdfs:label>
    <rdfs:subClassOf rdf:resource="A"/>
  </owl:Class>
` + Footer

// Write stores content under a fresh temp dir and returns its path.
func Write(t testing.TB, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write fixture %s: %v", name, err)
	}
	return path
}
