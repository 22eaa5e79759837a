// Copyright (c) 2026 Michael D Henderson. All rights reserved.

package emit

// headerData feeds internal/tmpl/templates/header.h.tmpl.
type headerData struct {
	Prefix string
}

// sourceData feeds head.c.tmpl, numbersets.c.tmpl, mutations.c.tmpl,
// parse.c.tmpl, and abi.c.tmpl in turn; internal/emit concatenates their
// output in that fixed section order.
type sourceData struct {
	Prefix          string
	StepCType       string
	ThreadSafe      bool
	Visible         bool
	Seed            uint64
	MaxNumOfRules   int
	TriangularTable []int
	Terminals       []terminalData
	NumberSets      []numbersetData
	RuleSets        []ruleSetData
}

type terminalData struct {
	ID    int
	Bytes []byte
}

type numbersetData struct {
	ID     int
	CType  string
	Ranges []rangeData
}

type rangeData struct {
	Lo, Hi int64
}

// ruleSetData is one non-terminal's emitted mutation function.
type ruleSetData struct {
	ID               int
	Name             string
	Dispatching      bool // |R(n)| > 1
	HasNoSymbols     bool // single-rule case only: the one rule is epsilon
	HasTerms         bool
	HasNonTerms      bool
	Triangular       bool
	RuleCount        int
	SingleRule       *ruleData
	Rules            []ruleData
}

// ruleData is one rule's left-to-right symbol sequence, with Last
// precomputed per symbol so the template never needs loop-lookahead logic.
// LeadKind/LeadSizeExpr/LeadTerminalID/LeadNumberSetID describe the rule's
// first symbol (always a terminal, number set, or absent — GNF), which is
// what _parse_nonterm_* uses to pick a rule without backtracking.
type ruleData struct {
	Symbols         []symbolData
	LeadKind        string // "epsilon", "terminal", "numberset"
	LeadSizeExpr    string
	LeadTerminalID  int
	LeadNumberSetID int
}

const (
	symTerminal = "terminal"
	symNumber   = "numberset"
	symNonTerm  = "nonterm"
)

type symbolData struct {
	Kind        string
	TerminalID  int
	NumberSetID int
	NonTermID   int
	SizeExpr    string
	Last        bool
}
