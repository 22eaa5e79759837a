// Copyright (c) 2026 Michael D Henderson. All rights reserved.

package gnfsrc

import (
	"testing"

	"github.com/mdhender/guanabana/internal/grammar"
)

func TestRead_Scenario1(t *testing.T) {
	src := []byte(`%entry s
s ::= "a" s | .
`)
	b := grammar.NewBuilder("scenario1.gnf")
	sink := grammar.NewBuilderSink(b)
	if err := Read("scenario1.gnf", src, sink); err != nil {
		t.Fatalf("Read: %v", err)
	}
	g := b.Finalize()
	if b.HasErrors() {
		for _, d := range b.Diagnostics() {
			t.Errorf("diagnostic: %v", d)
		}
	}
	if g.Entry == nil || g.Entry.Name != "s" {
		t.Fatalf("entry = %v, want s", g.Entry)
	}
	rs := g.RuleSetFor(g.Entry.ID)
	if rs == nil || len(rs.Rules) != 2 {
		t.Fatalf("rule count = %v, want 2 rules", rs)
	}
	if len(rs.Rules[0].Symbols) != 2 {
		t.Fatalf("rule 0 symbol count = %d, want 2", len(rs.Rules[0].Symbols))
	}
	if len(rs.Rules[1].Symbols) != 0 {
		t.Fatalf("rule 1 (epsilon) symbol count = %d, want 0", len(rs.Rules[1].Symbols))
	}
}

func TestRead_NumberSet(t *testing.T) {
	src := []byte(`%entry n
n ::= <0-9,65-90:1> n | .
`)
	b := grammar.NewBuilder("numberset.gnf")
	sink := grammar.NewBuilderSink(b)
	if err := Read("numberset.gnf", src, sink); err != nil {
		t.Fatalf("Read: %v", err)
	}
	g := b.Finalize()
	if b.HasErrors() {
		for _, d := range b.Diagnostics() {
			t.Errorf("diagnostic: %v", d)
		}
	}
	if len(g.NumberSets) != 1 {
		t.Fatalf("number sets = %d, want 1", len(g.NumberSets))
	}
	ns := g.NumberSets[0]
	if len(ns.Ranges) != 2 || ns.Ranges[0] != (grammar.Range{Lo: 0, Hi: 9}) || ns.Ranges[1] != (grammar.Range{Lo: 65, Hi: 90}) {
		t.Fatalf("ranges = %+v, want [0-9, 65-90]", ns.Ranges)
	}
	if ns.Width != grammar.Width1 {
		t.Fatalf("width = %v, want Width1", ns.Width)
	}
}

func TestRead_TriangularOverride(t *testing.T) {
	src := []byte(`%entry s
%triangular s false
s ::= "a" s | "b" s | .
`)
	b := grammar.NewBuilder("triangular.gnf")
	sink := grammar.NewBuilderSink(b)
	if err := Read("triangular.gnf", src, sink); err != nil {
		t.Fatalf("Read: %v", err)
	}
	g := b.Finalize()
	if b.HasErrors() {
		for _, d := range b.Diagnostics() {
			t.Errorf("diagnostic: %v", d)
		}
	}
	if g.Entry.ForceTriangular == nil || *g.Entry.ForceTriangular != false {
		t.Fatalf("ForceTriangular = %v, want pointer to false", g.Entry.ForceTriangular)
	}
}

func TestRead_SyntaxError(t *testing.T) {
	src := []byte(`s ::= "a" s`) // missing terminating '.'
	b := grammar.NewBuilder("bad.gnf")
	sink := grammar.NewBuilderSink(b)
	if err := Read("bad.gnf", src, sink); err == nil {
		t.Fatalf("Read: want error for missing '.'")
	}
}
