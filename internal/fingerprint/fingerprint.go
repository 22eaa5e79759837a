// Copyright (c) 2026 Michael D Henderson. All rights reserved.

// Package fingerprint computes a stable content hash over a flattened,
// id-dense projection of a normalized grammar. It knows nothing about
// package normalize's types on purpose: normalize builds a Snapshot and
// calls Hash, not the other way around, so there is no import cycle.
package fingerprint

import "github.com/cnf/structhash"

// Snapshot is the hashable projection of a normalized grammar. Every field
// is an exported, plain value so structhash's reflection-based walk is
// deterministic across repeated runs on equivalent grammars.
type Snapshot struct {
	Name          string
	EntryID       int
	StepWidth     int
	MaxNumOfRules int
	NonTerms      []NonTermSnapshot
	Terminals     [][]byte
	NumberSets    []NumberSetSnapshot
}

// NonTermSnapshot is one non-terminal's id, name, and rule bodies.
type NonTermSnapshot struct {
	ID         int
	Name       string
	Triangular bool
	Rules      [][]SymbolSnapshot
}

// SymbolSnapshot is one rule-body symbol: Kind tags which of Ref's
// interpretations applies (non-terminal id, terminal id, or number-set id).
type SymbolSnapshot struct {
	Kind uint8
	Ref  int
}

// NumberSetSnapshot is one number set's ranges and element width.
type NumberSetSnapshot struct {
	Ranges [][2]int64
	Width  uint8
}

// Hash returns a stable hex digest of snap. The same Snapshot value
// produces the same digest on every call, on every machine.
func Hash(snap Snapshot) (string, error) {
	return structhash.Hash(snap, 1)
}
