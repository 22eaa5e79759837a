// Copyright (c) 2026 Michael D Henderson. All rights reserved.

package emit

import (
	"strings"
	"testing"

	"github.com/mdhender/guanabana/internal/grammar"
	"github.com/mdhender/guanabana/internal/normalize"
)

// scenario1 is the grammar S -> 'a' S | epsilon.
func scenario1(t *testing.T) *normalize.NormalizedGrammar {
	t.Helper()
	b := grammar.NewBuilder("scenario1.gnf")
	s := b.EnsureNonTerminal("S", nil)
	b.SetEntry(s, nil)
	rb := b.BeginRule(s, nil)
	rb.Alt([]grammar.Symbol{b.TermSym([]byte("a")), b.NonTermSym(s)}, nil)
	rb.Alt(nil, nil)
	rb.End()
	g := b.Finalize()
	if b.HasErrors() {
		t.Fatalf("scenario1 has build errors: %v", b.Diagnostics())
	}
	ng, diags, err := normalize.Normalize(g)
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	for _, d := range diags {
		if d.Level == grammar.DiagError {
			t.Fatalf("unexpected error diagnostic: %v", d)
		}
	}
	return ng
}

func TestEmit_Scenario1_Header(t *testing.T) {
	ng := scenario1(t)
	res, err := Emit(ng, Options{Prefix: "chameleon"})
	if err != nil {
		t.Fatalf("Emit: %v", err)
	}
	for _, want := range []string{
		"#ifndef _CHAMELEON_chameleon_H",
		"void chameleon_seed (size_t new_seed);",
		"void chameleon_init (ChameleonWalk walk, size_t capacity);",
		"void chameleon_destroy (ChameleonWalk walk);",
		"size_t chameleon_mutate (ChameleonWalk walk, unsigned char* output, size_t output_capacity);",
		"size_t chameleon_generate (ChameleonWalk walk, unsigned char* output, size_t output_capacity);",
		"int chameleon_parse (ChameleonWalk walk, unsigned char* input, size_t input_length);",
		"typedef unsigned char ChameleonWalk[32];",
	} {
		if !strings.Contains(res.Header, want) {
			t.Errorf("header missing %q\n--- header ---\n%s", want, res.Header)
		}
	}
}

func TestEmit_Scenario1_Source(t *testing.T) {
	ng := scenario1(t)
	res, err := Emit(ng, Options{Prefix: "chameleon", Seed: 1})
	if err != nil {
		t.Fatalf("Emit: %v", err)
	}
	src := res.Source

	for _, want := range []string{
		"typedef uint8_t step_t;", // S has 2 rules, max_num_of_rules == 2 < 256
		"CHAMELEON_SEED 1ULL",
		"static const step_t TRIANGULAR_LOOKUP_TABLE_chameleon[] = {",
		"static const unsigned char TERMINAL_0[1] = {",
		"static size_t _mutate_nonterm_chameleon_0",
		"static size_t _parse_nonterm_chameleon_0",
		"void chameleon_seed (size_t new_seed)",
		"void chameleon_init (ChameleonWalk walk, size_t capacity)",
		"size_t chameleon_generate (ChameleonWalk walk, unsigned char* output, size_t output_capacity)",
		"_mutate_nonterm_chameleon_0(w->steps, 0, w->capacity, &w->length, output, output_capacity)",
	} {
		if !strings.Contains(src, want) {
			t.Errorf("source missing %q\n--- source ---\n%s", want, src)
		}
	}

	// S is dispatching (2 rules) and triangular (self-recursive tail).
	if !strings.Contains(src, "rule = TRIANGULAR_RANDOM(2)") {
		t.Errorf("expected S's dispatch to use TRIANGULAR_RANDOM(2), got:\n%s", src)
	}
}

func TestEmit_ThreadSafeAndVisible(t *testing.T) {
	ng := scenario1(t)
	res, err := Emit(ng, Options{Prefix: "chameleon", ThreadSafe: true, Visible: true})
	if err != nil {
		t.Fatalf("Emit: %v", err)
	}
	if !strings.Contains(res.Source, "#define THREAD_LOCAL __thread") {
		t.Errorf("expected THREAD_LOCAL __thread with ThreadSafe:true")
	}
	if !strings.Contains(res.Source, `#define EXPORT_FUNCTION __attribute__((visibility ("default")))`) {
		t.Errorf("expected EXPORT_FUNCTION visibility attribute with Visible:true")
	}
}

// numberSetGrammar is N -> <u8 in [0..3] U [10..13]>.
func numberSetGrammar(t *testing.T) *normalize.NormalizedGrammar {
	t.Helper()
	b := grammar.NewBuilder("numberset.gnf")
	n := b.EnsureNonTerminal("N", nil)
	b.SetEntry(n, nil)
	rb := b.BeginRule(n, nil)
	ns := b.NumberSetSym([]grammar.Range{{Lo: 0, Hi: 3}, {Lo: 10, Hi: 13}}, grammar.Width1, nil)
	rb.Alt([]grammar.Symbol{ns}, nil)
	rb.End()
	g := b.Finalize()
	if b.HasErrors() {
		t.Fatalf("numberSetGrammar has build errors: %v", b.Diagnostics())
	}
	ng, diags, err := normalize.Normalize(g)
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	for _, d := range diags {
		if d.Level == grammar.DiagError {
			t.Fatalf("unexpected error diagnostic: %v", d)
		}
	}
	return ng
}

// jsonLikeGrammar is spec.md §8 scenario 2's "JSON-like grammar": a tiny
// array-of-scalars grammar, each alternative a self-contained terminal run
// so every rule still leads with a terminal (GNF). Arr always opens with
// '[' and Items always closes the array itself, so every derivation yields
// a syntactically valid JSON array of true/false/null/0.
func jsonLikeGrammar(t *testing.T) *normalize.NormalizedGrammar {
	t.Helper()
	b := grammar.NewBuilder("jsonlike.gnf")
	arr := b.EnsureNonTerminal("Arr", nil)
	items := b.EnsureNonTerminal("Items", nil)
	b.SetEntry(arr, nil)

	arb := b.BeginRule(arr, nil)
	arb.Alt([]grammar.Symbol{b.TermSym([]byte("[")), b.NonTermSym(items)}, nil)
	arb.End()

	irb := b.BeginRule(items, nil)
	for _, tok := range []string{"true", "false", "null", "0"} {
		irb.Alt([]grammar.Symbol{b.TermSym([]byte(tok + ",")), b.NonTermSym(items)}, nil)
	}
	for _, tok := range []string{"true", "false", "null", "0"} {
		irb.Alt([]grammar.Symbol{b.TermSym([]byte(tok + "]"))}, nil)
	}
	irb.End()

	g := b.Finalize()
	if b.HasErrors() {
		t.Fatalf("jsonLikeGrammar has build errors: %v", b.Diagnostics())
	}
	ng, diags, err := normalize.Normalize(g)
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	for _, d := range diags {
		if d.Level == grammar.DiagError {
			t.Fatalf("unexpected error diagnostic: %v", d)
		}
	}
	return ng
}

// TestEmit_Scenario2_JSONLike is a smoke test for spec.md §8 scenario 2:
// every derivation of this grammar is a syntactically valid JSON array
// (never malformed, regardless of which alternatives are drawn), since each
// alternative is a self-contained terminal run and Items always terminates
// in a closing ']'. It checks the emitted structure rather than running the
// C output — see DESIGN.md's testing notes on why these are substring
// checks, not golden files or an external-parser sampling run.
func TestEmit_Scenario2_JSONLike(t *testing.T) {
	ng := jsonLikeGrammar(t)
	res, err := Emit(ng, Options{Prefix: "jlike", Seed: 7})
	if err != nil {
		t.Fatalf("Emit: %v", err)
	}
	src := res.Source

	for _, want := range []string{
		"static const unsigned char TERMINAL_0[1] = {",
		"static size_t _mutate_nonterm_jlike_0", // Arr
		"static size_t _mutate_nonterm_jlike_1", // Items
		"static size_t _parse_nonterm_jlike_0",
		"static size_t _parse_nonterm_jlike_1",
	} {
		if !strings.Contains(src, want) {
			t.Errorf("source missing %q\n--- source ---\n%s", want, src)
		}
	}

	// Items has 8 rules and is self-recursive (true/false/null/0 each
	// followed by Items), so its dispatch must be triangular. The weights
	// favour earlier rules, so the four recursive alternatives (listed
	// first) are drawn more often than the four closing ones.
	if !strings.Contains(src, "TRIANGULAR_RANDOM(8)") {
		t.Errorf("expected Items's dispatch to use TRIANGULAR_RANDOM(8), got:\n%s", src)
	}

	// Arr has exactly one rule: no dispatch, no triangular bias needed for it.
	if strings.Count(src, "rule = TRIANGULAR_RANDOM(") != 1 {
		t.Errorf("expected exactly one triangular dispatch site (Items only), got:\n%s", src)
	}
}

func TestEmit_NumberSet(t *testing.T) {
	ng := numberSetGrammar(t)
	res, err := Emit(ng, Options{Prefix: "nset"})
	if err != nil {
		t.Fatalf("Emit: %v", err)
	}
	for _, want := range []string{
		"static void _numberset_0 (unsigned char* output)",
		"switch (LINEAR_RANDOM(2))",
		"value = 0ULL + (internal_random_nset() % (3ULL - 0ULL + 1));",
		"value = 10ULL + (internal_random_nset() % (13ULL - 10ULL + 1));",
	} {
		if !strings.Contains(res.Source, want) {
			t.Errorf("source missing %q\n--- source ---\n%s", want, res.Source)
		}
	}
	// N has a single rule, no triangular table should be emitted.
	if strings.Contains(res.Source, "static const step_t TRIANGULAR_LOOKUP_TABLE_nset[]") {
		t.Errorf("single-rule grammar should not emit a triangular table")
	}
}
