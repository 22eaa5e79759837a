// Copyright (c) 2026 Michael D Henderson. All rights reserved.

// Package grammar is the in-memory intermediate representation of a
// Greibach-normal-form context-free grammar: non-terminals, their ordered
// production rules, byte-literal terminals, and ranged number-set
// terminals. It is built incrementally through Builder and is immutable
// once Finalize returns it.
package grammar

import "github.com/emirpasic/gods/maps/linkedhashmap"

// NonTerminalID is a dense, first-seen-order identifier for a non-terminal.
type NonTerminalID int

// TerminalID is a dense, first-seen-order identifier for a byte-literal terminal.
type TerminalID int

// NumberSetID is a dense, first-seen-order identifier for a number-set terminal.
type NumberSetID int

// SymbolKind distinguishes the three kinds of symbol a rule body can hold.
type SymbolKind uint8

const (
	SymNonTerminal SymbolKind = iota + 1
	SymTerminal
	SymNumberSet
)

func (k SymbolKind) String() string {
	switch k {
	case SymNonTerminal:
		return "nonterminal"
	case SymTerminal:
		return "terminal"
	case SymNumberSet:
		return "numberset"
	default:
		return "unknown"
	}
}

// NonTerminal is a named, dense-id'd non-terminal symbol.
type NonTerminal struct {
	ID         NonTerminalID
	Name       string
	DeclaredAt *Span

	// ForceTriangular, when non-nil, overrides normalize's self-recursive-
	// tail heuristic for this non-terminal's dispatch bias. Set via
	// Builder.SetTriangularOverride or the `%triangular NAME true|false`
	// source directive (internal/gnfsrc).
	ForceTriangular *bool
}

// Terminal is a fixed byte sequence with a stable identifier.
type Terminal struct {
	ID    TerminalID
	Bytes []byte
}

// Range is an inclusive integer range.
type Range struct {
	Lo int64
	Hi int64
}

// Width is the byte width class of a number set.
type Width uint8

const (
	Width1 Width = 1
	Width2 Width = 2
	Width4 Width = 4
	Width8 Width = 8
)

// CType returns the C type used to hold a value of this width.
func (w Width) CType() string {
	switch w {
	case Width1:
		return "uint8_t"
	case Width2:
		return "uint16_t"
	case Width4:
		return "uint32_t"
	case Width8:
		return "uint64_t"
	default:
		return "uint8_t"
	}
}

// NumberSet is a terminal that emits an integer drawn from a union of
// inclusive ranges, written in native byte order at the given width.
type NumberSet struct {
	ID     NumberSetID
	Ranges []Range
	Width  Width
}

// Symbol is one element of a rule's right-hand side: a reference to a
// non-terminal, a byte-literal terminal, or a number-set terminal.
type Symbol struct {
	Kind    SymbolKind
	NonTerm NonTerminalID
	Term    TerminalID
	NumSet  NumberSetID
}

// Rule is an ordered sequence of symbols. An empty Rule produces no bytes.
type Rule struct {
	Symbols []Symbol
	At      *Span
}

// RuleSet is the ordered list of production alternatives for one non-terminal.
type RuleSet struct {
	NonTerm *NonTerminal
	Rules   []Rule
}

// Grammar is the finite, id-dense representation of a GNF grammar: dense
// non-terminal/terminal/number-set catalogs plus per-non-terminal rule
// sets. It is immutable after Builder.Finalize returns it.
type Grammar struct {
	Name  string
	Entry *NonTerminal

	NonTerms       []*NonTerminal
	nonTermsByName *linkedhashmap.Map // string -> *NonTerminal

	terminalsByBytes *linkedhashmap.Map // string(bytes) -> *Terminal
	Terminals        []*Terminal

	numberSetsByKey *linkedhashmap.Map // string(key) -> *NumberSet
	NumberSets      []*NumberSet

	RuleSets []*RuleSet // one per non-terminal, same order as NonTerms
}

// NonTerminalByName looks up an interned non-terminal by name.
func (g *Grammar) NonTerminalByName(name string) (*NonTerminal, bool) {
	if g == nil || g.nonTermsByName == nil {
		return nil, false
	}
	v, ok := g.nonTermsByName.Get(name)
	if !ok {
		return nil, false
	}
	return v.(*NonTerminal), true
}

// RuleSetFor returns the rule set for a given non-terminal, or nil.
func (g *Grammar) RuleSetFor(id NonTerminalID) *RuleSet {
	for _, rs := range g.RuleSets {
		if rs.NonTerm.ID == id {
			return rs
		}
	}
	return nil
}

// Span identifies a location in the source grammar for diagnostics.
type Span struct {
	File string
	// 1-based, inclusive positions.
	Line   int
	Column int
	// Optional end position (can be zeroed if you only track a point).
	EndLine   int
	EndColumn int
}
