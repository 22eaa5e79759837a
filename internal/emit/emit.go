// Copyright (c) 2026 Michael D Henderson. All rights reserved.

// Package emit is the code emitter: it walks a normalized grammar and
// renders a header and a source file implementing the public mutate/
// generate/parse ABI and its PRNG.
package emit

import (
	"fmt"
	"strings"

	"github.com/mdhender/guanabana/internal/grammar"
	"github.com/mdhender/guanabana/internal/normalize"
	"github.com/mdhender/guanabana/internal/tmpl"
)

// Options controls emission. ThreadSafe/Visible/Seed become the
// CHAMELEON_THREAD_SAFE/CHAMELEON_VISIBLE/CHAMELEON_SEED emission choices.
type Options struct {
	Prefix     string
	ThreadSafe bool
	Visible    bool
	Seed       uint64
}

// Result is the emitter's output: two text files plus any diagnostics
// collected while walking the grammar (currently none are generatable —
// normalize.Normalize is where grammar-shaped errors surface — but the
// field exists so emit can start reporting its own without breaking
// callers, matching grammar.Builder's "collect diagnostics, don't panic
// on user-triggerable problems" style).
type Result struct {
	Header string
	Source string
	Diags  []grammar.Diagnostic
}

// Emit renders the header and source text for ng. err is reserved for
// I/O-shaped failures (a template failing to parse or execute — compiler
// bugs, not grammar problems); it is never returned because of anything
// about the grammar's shape, since normalize.Normalize already rejected
// malformed grammars before Emit is ever called.
func Emit(ng *normalize.NormalizedGrammar, opts Options) (*Result, error) {
	if ng == nil {
		panic("emit: nil normalized grammar")
	}
	if opts.Prefix == "" {
		panic("emit: empty prefix")
	}

	header, err := tmpl.Render("header.h.tmpl", headerData{Prefix: opts.Prefix})
	if err != nil {
		return nil, fmt.Errorf("emit: header: %w", err)
	}

	sd := buildSourceData(ng, opts)

	var src strings.Builder
	for _, step := range []string{"head.c.tmpl", "numbersets.c.tmpl", "mutations.c.tmpl", "parse.c.tmpl", "abi.c.tmpl"} {
		out, err := tmpl.Render(step, sd)
		if err != nil {
			return nil, fmt.Errorf("emit: %s: %w", step, err)
		}
		src.WriteString(out)
		src.WriteString("\n")
	}

	return &Result{Header: header, Source: src.String()}, nil
}

// abiSourceDataWrapper is what abi.c.tmpl needs beyond sourceData: the entry
// non-terminal's id, so it knows which _mutate_nonterm_*/_parse_nonterm_*
// to call.
type abiSourceDataWrapper struct {
	sourceData
	EntryID int
}

func buildSourceData(ng *normalize.NormalizedGrammar, opts Options) abiSourceDataWrapper {
	seed := opts.Seed
	if seed == 0 {
		seed = 0x2545F4914F6CDD1D
	}

	sd := sourceData{
		Prefix:        opts.Prefix,
		StepCType:     ng.StepType.CType(),
		ThreadSafe:    opts.ThreadSafe,
		Visible:       opts.Visible,
		Seed:          seed,
		MaxNumOfRules: ng.MaxNumOfRules,
	}
	if ng.MaxNumOfRules > 1 {
		sd.TriangularTable = normalize.TriangularTable(ng.MaxNumOfRules)
	}

	for _, t := range ng.Terminals {
		sd.Terminals = append(sd.Terminals, terminalData{ID: int(t.ID), Bytes: t.Bytes})
	}
	for _, ns := range ng.NumberSets {
		nsd := numbersetData{ID: int(ns.ID), CType: ns.Width.CType()}
		for _, r := range ns.Ranges {
			nsd.Ranges = append(nsd.Ranges, rangeData{Lo: r.Lo, Hi: r.Hi})
		}
		sd.NumberSets = append(sd.NumberSets, nsd)
	}
	for _, rsi := range ng.RuleSets {
		sd.RuleSets = append(sd.RuleSets, buildRuleSet(ng, rsi))
	}

	return abiSourceDataWrapper{sourceData: sd, EntryID: int(ng.Entry.ID)}
}

func buildRuleSet(ng *normalize.NormalizedGrammar, rsi *normalize.RuleSetInfo) ruleSetData {
	rs := ruleSetData{
		ID:          int(rsi.NonTerm.ID),
		Name:        rsi.NonTerm.Name,
		Dispatching: rsi.RuleCount > 1,
		HasTerms:    rsi.HasTerminals,
		HasNonTerms: rsi.HasNonTerminals,
		Triangular:  rsi.Triangular,
		RuleCount:   rsi.RuleCount,
	}

	if !rs.Dispatching {
		if len(rsi.Rules) == 0 {
			// A non-terminal with no rules passes normalize (Finalize only
			// warns about it); emit it like an epsilon rule rather than
			// panic on Rules[0] below.
			rs.HasNoSymbols = true
			return rs
		}
		r := rsi.Rules[0]
		if len(r.Symbols) == 0 {
			rs.HasNoSymbols = true
			return rs
		}
		rd := buildRule(ng, r)
		rs.SingleRule = &rd
		return rs
	}

	for _, r := range rsi.Rules {
		rs.Rules = append(rs.Rules, buildRule(ng, r))
	}
	return rs
}

func buildRule(ng *normalize.NormalizedGrammar, r grammar.Rule) ruleData {
	rd := ruleData{}
	for i, sym := range r.Symbols {
		last := i == len(r.Symbols)-1
		switch sym.Kind {
		case grammar.SymTerminal:
			size := fmt.Sprintf("sizeof(TERMINAL_%d)", sym.Term)
			rd.Symbols = append(rd.Symbols, symbolData{Kind: symTerminal, TerminalID: int(sym.Term), SizeExpr: size, Last: last})
		case grammar.SymNumberSet:
			ctype := ng.NumberSets[sym.NumSet].Width.CType()
			size := fmt.Sprintf("sizeof(%s)", ctype)
			rd.Symbols = append(rd.Symbols, symbolData{Kind: symNumber, NumberSetID: int(sym.NumSet), SizeExpr: size, Last: last})
		case grammar.SymNonTerminal:
			rd.Symbols = append(rd.Symbols, symbolData{Kind: symNonTerm, NonTermID: int(sym.NonTerm), Last: last})
		}
	}

	if len(r.Symbols) == 0 {
		rd.LeadKind = "epsilon"
		return rd
	}
	lead := r.Symbols[0]
	switch lead.Kind {
	case grammar.SymTerminal:
		rd.LeadKind = "terminal"
		rd.LeadTerminalID = int(lead.Term)
		rd.LeadSizeExpr = fmt.Sprintf("sizeof(TERMINAL_%d)", lead.Term)
	case grammar.SymNumberSet:
		rd.LeadKind = "numberset"
		rd.LeadNumberSetID = int(lead.NumSet)
		rd.LeadSizeExpr = fmt.Sprintf("sizeof(%s)", ng.NumberSets[lead.NumSet].Width.CType())
	}
	return rd
}
