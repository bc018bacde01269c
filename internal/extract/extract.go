// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package extract turns employment-contract text into typed clauses.
// Segment splits a document on its numbered section markers, Classify tags
// each clause from its header, and Fields runs the clause type's rule set
// against the body. Every stage is deterministic and never fails: text that
// does not match a rule simply yields no field.
package extract

import "github.com/pdiddy/contract-engine/pkg/types"

// Parse segments text and annotates every clause with its type and
// extracted fields.
func Parse(text string) []types.Clause {
	clauses := Segment(text)
	Annotate(clauses)
	return clauses
}

// Annotate classifies each clause from its header and fills in the fields
// extracted from its body. Clauses are modified in place.
func Annotate(clauses []types.Clause) {
	for i := range clauses {
		c := &clauses[i]
		c.Type = Classify(c.Header)
		c.Fields = Fields(c.Type, c.Content)
	}
}
