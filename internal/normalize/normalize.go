// Copyright (c) 2026 Michael D Henderson. All rights reserved.

// Package normalize validates a grammar.Grammar against the Greibach
// Normal Form invariant, assigns dense ids (inherited from the grammar's
// own first-seen insertion order), and computes the per-non-terminal and
// global metadata internal/emit needs: rule counts, has-terminals/
// has-non-terminals/has-no-symbols, triangular eligibility, the step type
// width, and the grammar's content fingerprint.
//
// It follows grammar.Builder.Finalize's "record a Diagnostic and keep
// going" style, with the same BFS-from-entry reachability pass, here
// walking GNF rule bodies instead of Lemon alternatives.
package normalize

import (
	"fmt"

	"github.com/mdhender/guanabana/internal/fingerprint"
	"github.com/mdhender/guanabana/internal/grammar"
)

// StepType is the smallest unsigned width able to index any rule across
// the grammar's non-terminals.
type StepType uint8

const (
	StepUint8 StepType = iota + 1
	StepUint16
	StepUint32
	StepUint64
)

// ByteWidth returns the step type's width in bytes.
func (t StepType) ByteWidth() int {
	switch t {
	case StepUint8:
		return 1
	case StepUint16:
		return 2
	case StepUint32:
		return 4
	case StepUint64:
		return 8
	default:
		return 0
	}
}

// CType returns the C type alias emitted for this step width.
func (t StepType) CType() string {
	switch t {
	case StepUint8:
		return "uint8_t"
	case StepUint16:
		return "uint16_t"
	case StepUint32:
		return "uint32_t"
	case StepUint64:
		return "uint64_t"
	default:
		return "uint64_t"
	}
}

// stepTypeFor picks the smallest width W such that 2^(8W) > maxNumOfRules.
// maxNumOfRules is always representable in an int, so the width-8 case
// never needs to compute 2^64.
func stepTypeFor(maxNumOfRules int) StepType {
	switch {
	case maxNumOfRules < 1<<8:
		return StepUint8
	case maxNumOfRules < 1<<16:
		return StepUint16
	case maxNumOfRules < 1<<32:
		return StepUint32
	default:
		return StepUint64
	}
}

// RuleSetInfo is one non-terminal's rules plus the metadata the emitter
// needs to decide between a single-branch and a dispatching function.
type RuleSetInfo struct {
	NonTerm *grammar.NonTerminal
	Rules   []grammar.Rule

	RuleCount       int
	HasTerminals    bool
	HasNonTerminals bool
	HasEpsilonRule  bool // at least one rule in R(n) has no symbols

	// Triangular is true iff this non-terminal is self-recursive-tail
	// (direct or transitive) AND has >= 2 rules; see DESIGN.md for the
	// decision record.
	Triangular bool

	// ForceTriangular, when non-nil, overrides the Triangular heuristic
	// for this non-terminal (DESIGN.md open-question decision).
	ForceTriangular *bool
}

// NormalizedGrammar is the id-dense, validated form internal/emit consumes.
type NormalizedGrammar struct {
	Name  string
	Entry *grammar.NonTerminal

	NonTerms []*grammar.NonTerminal // dense id order, index == NonTerminalID
	RuleSets []*RuleSetInfo         // parallel to NonTerms

	Terminals  []*grammar.Terminal
	NumberSets []*grammar.NumberSet

	MaxNumOfRules int
	StepType      StepType
}

// RuleSetFor returns the metadata for a non-terminal by id.
func (ng *NormalizedGrammar) RuleSetFor(id grammar.NonTerminalID) *RuleSetInfo {
	if int(id) < 0 || int(id) >= len(ng.RuleSets) {
		return nil
	}
	return ng.RuleSets[id]
}

// Normalize validates g and computes emission metadata. It panics only on
// a nil grammar (a programmer error, not a grammar-authoring mistake);
// malformed-but-representable grammars produce fatal diagnostics and a
// nil *NormalizedGrammar instead.
func Normalize(g *grammar.Grammar) (*NormalizedGrammar, []grammar.Diagnostic, error) {
	if g == nil {
		panic("normalize: nil grammar")
	}

	var diags []grammar.Diagnostic
	fatal := false
	errorf := func(at *grammar.Span, format string, args ...any) {
		diags = append(diags, grammar.Diagnostic{Level: grammar.DiagError, Msg: fmt.Sprintf(format, args...), At: at, Stage: "normalize"})
		fatal = true
	}
	warnf := func(at *grammar.Span, format string, args ...any) {
		diags = append(diags, grammar.Diagnostic{Level: grammar.DiagWarn, Msg: fmt.Sprintf(format, args...), At: at, Stage: "normalize"})
	}

	if g.Entry == nil {
		errorf(nil, "grammar has no entry non-terminal")
		return nil, diags, nil
	}

	// GNF validation + symbol-reference validation.
	for _, rs := range g.RuleSets {
		for _, r := range rs.Rules {
			if len(r.Symbols) == 0 {
				continue // epsilon rule, always legal
			}
			if first := r.Symbols[0]; first.Kind == grammar.SymNonTerminal {
				errorf(r.At, "non-terminal %q has a rule beginning with a non-terminal reference: GNF requires the first symbol to be a terminal or number set", rs.NonTerm.Name)
			}
			for _, sym := range r.Symbols {
				switch sym.Kind {
				case grammar.SymNonTerminal:
					if int(sym.NonTerm) < 0 || int(sym.NonTerm) >= len(g.NonTerms) {
						errorf(r.At, "rule for %q references unknown non-terminal id %d", rs.NonTerm.Name, sym.NonTerm)
					}
				case grammar.SymTerminal:
					if int(sym.Term) < 0 || int(sym.Term) >= len(g.Terminals) {
						errorf(r.At, "rule for %q references unknown terminal id %d", rs.NonTerm.Name, sym.Term)
						continue
					}
					if t := g.Terminals[sym.Term]; len(t.Bytes) == 0 && len(r.Symbols) == 1 {
						errorf(r.At, "non-terminal %q has a rule with an empty terminal blob and no other symbols", rs.NonTerm.Name)
					}
				case grammar.SymNumberSet:
					if int(sym.NumSet) < 0 || int(sym.NumSet) >= len(g.NumberSets) {
						errorf(r.At, "rule for %q references unknown number set id %d", rs.NonTerm.Name, sym.NumSet)
						continue
					}
					if ns := g.NumberSets[sym.NumSet]; len(ns.Ranges) == 0 {
						errorf(r.At, "number set %d used by %q has zero ranges", sym.NumSet, rs.NonTerm.Name)
					}
				default:
					errorf(r.At, "rule for %q has a symbol of unknown kind", rs.NonTerm.Name)
				}
			}
		}
	}
	if fatal {
		return nil, diags, nil
	}

	markReachable(g, warnf)

	tailEdges := buildTailEdges(g)

	maxNumOfRules := 0
	ruleSetInfos := make([]*RuleSetInfo, len(g.RuleSets))
	for i, rs := range g.RuleSets {
		info := &RuleSetInfo{NonTerm: rs.NonTerm, Rules: rs.Rules, RuleCount: len(rs.Rules), ForceTriangular: rs.NonTerm.ForceTriangular}
		for _, r := range rs.Rules {
			if len(r.Symbols) == 0 {
				info.HasEpsilonRule = true
				continue
			}
			for _, sym := range r.Symbols {
				if sym.Kind == grammar.SymNonTerminal {
					info.HasNonTerminals = true
				} else {
					info.HasTerminals = true
				}
			}
		}
		info.Triangular = info.RuleCount >= 2 && isSelfRecursiveTail(tailEdges, rs.NonTerm.ID)
		if info.ForceTriangular != nil {
			info.Triangular = *info.ForceTriangular
		}
		ruleSetInfos[i] = info
		if info.RuleCount > maxNumOfRules {
			maxNumOfRules = info.RuleCount
		}
	}

	ng := &NormalizedGrammar{
		Name:          g.Name,
		Entry:         g.Entry,
		NonTerms:      g.NonTerms,
		RuleSets:      ruleSetInfos,
		Terminals:     g.Terminals,
		NumberSets:    g.NumberSets,
		MaxNumOfRules: maxNumOfRules,
		StepType:      stepTypeFor(maxNumOfRules),
	}
	return ng, diags, nil
}

// markReachable runs a BFS from the entry non-terminal over rule bodies
// and warns (non-fatal) about any non-terminal it never reaches.
func markReachable(g *grammar.Grammar, warnf func(at *grammar.Span, format string, args ...any)) {
	reachable := make(map[grammar.NonTerminalID]bool, len(g.NonTerms))
	queue := []grammar.NonTerminalID{g.Entry.ID}
	reachable[g.Entry.ID] = true
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		rs := g.RuleSetFor(id)
		if rs == nil {
			continue
		}
		for _, r := range rs.Rules {
			for _, sym := range r.Symbols {
				if sym.Kind != grammar.SymNonTerminal {
					continue
				}
				if !reachable[sym.NonTerm] {
					reachable[sym.NonTerm] = true
					queue = append(queue, sym.NonTerm)
				}
			}
		}
	}
	for _, nt := range g.NonTerms {
		if !reachable[nt.ID] {
			warnf(nt.DeclaredAt, "non-terminal %q is unreachable from entry %q", nt.Name, g.Entry.Name)
		}
	}
}

// buildTailEdges records, for each non-terminal, the set of non-terminals
// that appear as the last symbol of one of its rules. A cycle in this
// graph through a non-terminal's own tail position is what "self-
// recursive-tail, direct or transitive" means.
func buildTailEdges(g *grammar.Grammar) map[grammar.NonTerminalID]map[grammar.NonTerminalID]bool {
	edges := make(map[grammar.NonTerminalID]map[grammar.NonTerminalID]bool, len(g.RuleSets))
	for _, rs := range g.RuleSets {
		set := make(map[grammar.NonTerminalID]bool)
		for _, r := range rs.Rules {
			if len(r.Symbols) == 0 {
				continue
			}
			last := r.Symbols[len(r.Symbols)-1]
			if last.Kind == grammar.SymNonTerminal {
				set[last.NonTerm] = true
			}
		}
		edges[rs.NonTerm.ID] = set
	}
	return edges
}

func isSelfRecursiveTail(edges map[grammar.NonTerminalID]map[grammar.NonTerminalID]bool, start grammar.NonTerminalID) bool {
	visited := map[grammar.NonTerminalID]bool{}
	var dfs func(id grammar.NonTerminalID) bool
	dfs = func(id grammar.NonTerminalID) bool {
		for next := range edges[id] {
			if next == start {
				return true
			}
			if visited[next] {
				continue
			}
			visited[next] = true
			if dfs(next) {
				return true
			}
		}
		return false
	}
	return dfs(start)
}

// Fingerprint returns a stable content hash of the normalized grammar,
// built via github.com/cnf/structhash over a flattened, exported-field-
// only snapshot. Same grammar in (by structure, not by pointer identity)
// always produces the same fingerprint.
func (ng *NormalizedGrammar) Fingerprint() (string, error) {
	snap := fingerprint.Snapshot{
		Name:          ng.Name,
		EntryID:       int(ng.Entry.ID),
		StepWidth:     ng.StepType.ByteWidth(),
		MaxNumOfRules: ng.MaxNumOfRules,
	}

	for _, t := range ng.Terminals {
		snap.Terminals = append(snap.Terminals, t.Bytes)
	}
	for _, ns := range ng.NumberSets {
		nss := fingerprint.NumberSetSnapshot{Width: uint8(ns.Width)}
		for _, r := range ns.Ranges {
			nss.Ranges = append(nss.Ranges, [2]int64{r.Lo, r.Hi})
		}
		snap.NumberSets = append(snap.NumberSets, nss)
	}
	for _, rsi := range ng.RuleSets {
		nts := fingerprint.NonTermSnapshot{ID: int(rsi.NonTerm.ID), Name: rsi.NonTerm.Name, Triangular: rsi.Triangular}
		for _, r := range rsi.Rules {
			var syms []fingerprint.SymbolSnapshot
			for _, sym := range r.Symbols {
				switch sym.Kind {
				case grammar.SymNonTerminal:
					syms = append(syms, fingerprint.SymbolSnapshot{Kind: uint8(sym.Kind), Ref: int(sym.NonTerm)})
				case grammar.SymTerminal:
					syms = append(syms, fingerprint.SymbolSnapshot{Kind: uint8(sym.Kind), Ref: int(sym.Term)})
				case grammar.SymNumberSet:
					syms = append(syms, fingerprint.SymbolSnapshot{Kind: uint8(sym.Kind), Ref: int(sym.NumSet)})
				}
			}
			nts.Rules = append(nts.Rules, syms)
		}
		snap.NonTerms = append(snap.NonTerms, nts)
	}

	return fingerprint.Hash(snap)
}
