// Copyright (c) 2026 Michael D Henderson. All rights reserved.

package grammar

import "fmt"

// ExampleBuilder builds the literal grammar from spec scenario 1:
//
//	S ::= 'a' S | .
//
// which is already in GNF (every non-empty rule starts with a terminal).
func ExampleBuilder() {
	b := NewBuilder("scenario1.gnf")

	s := b.EnsureNonTerminal("S", nil)
	b.SetEntry(s, nil)

	rb := b.BeginRule(s, nil)
	rb.Alt([]Symbol{b.TermSym([]byte("a")), b.NonTermSym(s)}, nil)
	rb.Alt(nil, nil) // epsilon
	rb.End()

	g := b.Finalize()
	if b.HasErrors() {
		for _, d := range b.Diagnostics() {
			fmt.Println(d.Error())
		}
		return
	}
	_ = g // ready for normalize.Normalize(g)
}
