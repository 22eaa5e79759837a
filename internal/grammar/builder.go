// Copyright (c) 2026 Michael D Henderson. All rights reserved.

package grammar

import (
	"fmt"
	"strings"

	"github.com/emirpasic/gods/maps/linkedhashmap"
)

// Diagnostic is a structured error/warning emitted during building/validation.
type Diagnostic struct {
	Level DiagnosticLevel
	Msg   string
	At    *Span
	// Stage names which pipeline stage produced this diagnostic, e.g.
	// "build", "normalize", "emit". Empty for diagnostics raised while
	// still assembling the Grammar through Builder.
	Stage string
}

type DiagnosticLevel uint8

const (
	DiagError DiagnosticLevel = iota + 1
	DiagWarn
)

func (d Diagnostic) Error() string {
	prefix := ""
	if d.Stage != "" {
		prefix = d.Stage + ": "
	}
	if d.At == nil {
		return prefix + d.Msg
	}
	return fmt.Sprintf("%s%s:%d:%d: %s", prefix, d.At.File, d.At.Line, d.At.Column, d.Msg)
}

// Builder builds a Grammar incrementally, collecting diagnostics instead of
// failing hard. This is what a grammar-file reader should talk to.
type Builder struct {
	g *Grammar

	diags []Diagnostic
}

// NewBuilder creates a new Builder with an empty Grammar.
func NewBuilder(name string) *Builder {
	g := &Grammar{
		Name:             name,
		nonTermsByName:   linkedhashmap.New(),
		terminalsByBytes: linkedhashmap.New(),
		numberSetsByKey:  linkedhashmap.New(),
	}
	return &Builder{g: g}
}

// Grammar returns the grammar built so far (even if there are diagnostics).
func (b *Builder) Grammar() *Grammar { return b.g }

// Diagnostics returns all diagnostics collected so far.
func (b *Builder) Diagnostics() []Diagnostic { return append([]Diagnostic(nil), b.diags...) }

// HasErrors reports whether any error-level diagnostics exist.
func (b *Builder) HasErrors() bool {
	for _, d := range b.diags {
		if d.Level == DiagError {
			return true
		}
	}
	return false
}

func (b *Builder) error(at *Span, msg string, args ...any) {
	b.diags = append(b.diags, Diagnostic{Level: DiagError, Msg: fmt.Sprintf(msg, args...), At: at, Stage: "build"})
}

func (b *Builder) warn(at *Span, msg string, args ...any) {
	b.diags = append(b.diags, Diagnostic{Level: DiagWarn, Msg: fmt.Sprintf(msg, args...), At: at, Stage: "build"})
}

// ---------------------------
// Non-terminal interning
// ---------------------------

// EnsureNonTerminal gets or creates a non-terminal with the given name.
func (b *Builder) EnsureNonTerminal(name string, at *Span) *NonTerminal {
	name = strings.TrimSpace(name)
	if name == "" {
		b.error(at, "non-terminal name is empty")
		return b.internDummy(at)
	}
	if v, ok := b.g.nonTermsByName.Get(name); ok {
		return v.(*NonTerminal)
	}
	nt := &NonTerminal{ID: NonTerminalID(len(b.g.NonTerms)), Name: name, DeclaredAt: at}
	b.g.NonTerms = append(b.g.NonTerms, nt)
	b.g.nonTermsByName.Put(name, nt)
	b.g.RuleSets = append(b.g.RuleSets, &RuleSet{NonTerm: nt})
	return nt
}

// SetTriangularOverride records an explicit triangular-dispatch-bias
// decision for nt, overriding normalize's self-recursive-tail heuristic.
func (b *Builder) SetTriangularOverride(nt *NonTerminal, value bool, at *Span) {
	if nt == nil {
		b.error(at, "triangular override for unknown non-terminal")
		return
	}
	v := value
	nt.ForceTriangular = &v
}

// Lookup finds an already-interned non-terminal by name.
func (b *Builder) Lookup(name string) (*NonTerminal, bool) {
	v, ok := b.g.nonTermsByName.Get(strings.TrimSpace(name))
	if !ok {
		return nil, false
	}
	return v.(*NonTerminal), true
}

// SetEntry sets the grammar's entry (start) non-terminal.
func (b *Builder) SetEntry(nt *NonTerminal, at *Span) {
	if nt == nil {
		return
	}
	if b.g.Entry != nil && b.g.Entry != nt {
		b.warn(at, "entry non-terminal changed from %q to %q", b.g.Entry.Name, nt.Name)
	}
	b.g.Entry = nt
}

// ---------------------------
// Terminal & number-set interning (deduped by content)
// ---------------------------

// InternTerminal gets or creates a byte-literal terminal, deduplicating by
// exact byte content so identical literals share one constant-pool entry.
func (b *Builder) InternTerminal(content []byte) *Terminal {
	key := string(content)
	if v, ok := b.g.terminalsByBytes.Get(key); ok {
		return v.(*Terminal)
	}
	t := &Terminal{ID: TerminalID(len(b.g.Terminals)), Bytes: append([]byte(nil), content...)}
	b.g.Terminals = append(b.g.Terminals, t)
	b.g.terminalsByBytes.Put(key, t)
	return t
}

// InternNumberSet gets or creates a number-set terminal, deduplicating by
// (ranges, width).
func (b *Builder) InternNumberSet(ranges []Range, width Width, at *Span) *NumberSet {
	if len(ranges) == 0 {
		b.error(at, "number set has no ranges")
	}
	key := numberSetKey(ranges, width)
	if v, ok := b.g.numberSetsByKey.Get(key); ok {
		return v.(*NumberSet)
	}
	ns := &NumberSet{ID: NumberSetID(len(b.g.NumberSets)), Ranges: append([]Range(nil), ranges...), Width: width}
	b.g.NumberSets = append(b.g.NumberSets, ns)
	b.g.numberSetsByKey.Put(key, ns)
	return ns
}

func numberSetKey(ranges []Range, width Width) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "w%d:", width)
	for _, r := range ranges {
		fmt.Fprintf(&sb, "%d-%d,", r.Lo, r.Hi)
	}
	return sb.String()
}

// ---------------------------
// Rule symbol constructors
// ---------------------------

// NonTermSym builds a rule-body symbol referencing a non-terminal.
func (b *Builder) NonTermSym(nt *NonTerminal) Symbol {
	if nt == nil {
		nt = b.internDummy(nil)
	}
	return Symbol{Kind: SymNonTerminal, NonTerm: nt.ID}
}

// TermSym builds a rule-body symbol for a byte-literal terminal.
func (b *Builder) TermSym(content []byte) Symbol {
	t := b.InternTerminal(content)
	return Symbol{Kind: SymTerminal, Term: t.ID}
}

// NumberSetSym builds a rule-body symbol for a number-set terminal.
func (b *Builder) NumberSetSym(ranges []Range, width Width, at *Span) Symbol {
	ns := b.InternNumberSet(ranges, width, at)
	return Symbol{Kind: SymNumberSet, NumSet: ns.ID}
}

// ---------------------------
// Rules & productions
// ---------------------------

// RuleBuilder collects the alternatives for one non-terminal.
//
//	rb := b.BeginRule(s, at)
//	rb.Alt([]grammar.Symbol{b.TermSym([]byte("a")), b.NonTermSym(s)}, at)
//	rb.Alt(nil, at) // epsilon
//	rb.End()
type RuleBuilder struct {
	b       *Builder
	ruleSet *RuleSet
	done    bool
}

// BeginRule starts building the rule set for the given non-terminal.
func (b *Builder) BeginRule(lhs *NonTerminal, at *Span) *RuleBuilder {
	if lhs == nil {
		lhs = b.internDummy(at)
	}
	rs := b.g.RuleSetFor(lhs.ID)
	if rs == nil {
		// Shouldn't happen: EnsureNonTerminal always creates a RuleSet.
		rs = &RuleSet{NonTerm: lhs}
		b.g.RuleSets = append(b.g.RuleSets, rs)
	}
	if b.g.Entry == nil {
		b.g.Entry = lhs
	}
	return &RuleBuilder{b: b, ruleSet: rs}
}

// Alt adds one production alternative (ordered list of symbols) to the rule.
// A nil or empty slice means an epsilon (no-symbols) alternative.
func (rb *RuleBuilder) Alt(symbols []Symbol, at *Span) {
	if rb == nil || rb.done || rb.ruleSet == nil {
		return
	}
	rb.ruleSet.Rules = append(rb.ruleSet.Rules, Rule{Symbols: append([]Symbol(nil), symbols...), At: at})
}

// End marks the rule builder finished (defensive; prevents accidental reuse).
func (rb *RuleBuilder) End() {
	if rb == nil {
		return
	}
	rb.done = true
}

// ---------------------------
// Helpers
// ---------------------------

func (b *Builder) internDummy(at *Span) *NonTerminal {
	const name = "<invalid>"
	if v, ok := b.g.nonTermsByName.Get(name); ok {
		return v.(*NonTerminal)
	}
	nt := &NonTerminal{ID: NonTerminalID(len(b.g.NonTerms)), Name: name, DeclaredAt: at}
	b.g.NonTerms = append(b.g.NonTerms, nt)
	b.g.nonTermsByName.Put(name, nt)
	b.g.RuleSets = append(b.g.RuleSets, &RuleSet{NonTerm: nt})
	return nt
}
