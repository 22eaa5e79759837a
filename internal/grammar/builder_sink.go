// Copyright (c) 2026 Michael D Henderson. All rights reserved.

package grammar

// BuilderSink adapts Builder to the Sink interface a grammar-source reader
// streams events to: BeginRule -> Alt* -> EndRule, in source order.
type BuilderSink struct {
	B *Builder

	curRule *RuleBuilder
	curLHS  *NonTerminal
}

// NewBuilderSink constructs a sink around a Builder.
func NewBuilderSink(b *Builder) *BuilderSink {
	return &BuilderSink{B: b}
}

func (s *BuilderSink) ParserError(at *Span, msg string) {
	if s == nil || s.B == nil {
		return
	}
	s.B.error(at, "%s", msg)
}

func (s *BuilderSink) SetEntry(name string, at *Span) {
	if s == nil || s.B == nil {
		return
	}
	nt := s.B.EnsureNonTerminal(name, at)
	s.B.SetEntry(nt, at)
}

func (s *BuilderSink) BeginRule(name string, at *Span) {
	if s == nil || s.B == nil {
		return
	}
	if s.curRule != nil {
		s.B.warn(at, "begin rule while previous rule still open; closing previous rule")
		s.curRule.End()
		s.curRule = nil
		s.curLHS = nil
	}
	s.curLHS = s.B.EnsureNonTerminal(name, at)
	s.curRule = s.B.BeginRule(s.curLHS, at)
}

func (s *BuilderSink) Alt(symbols []SymRef, at *Span) {
	if s == nil || s.B == nil {
		return
	}
	if s.curRule == nil || s.curLHS == nil {
		s.B.error(at, "alternative encountered without an open rule")
		return
	}
	resolved := make([]Symbol, 0, len(symbols))
	for i, sr := range symbols {
		switch sr.Kind {
		case RefNonTerminal:
			nt := s.B.EnsureNonTerminal(sr.Name, sr.At)
			resolved = append(resolved, s.B.NonTermSym(nt))
		case RefTerminal:
			resolved = append(resolved, s.B.TermSym(sr.Bytes))
		case RefNumberSet:
			resolved = append(resolved, s.B.NumberSetSym(sr.Ranges, sr.Width, sr.At))
		default:
			s.B.error(sr.At, "rhs symbol at position %d has unknown kind", i)
		}
	}
	s.curRule.Alt(resolved, at)
}

func (s *BuilderSink) SetTriangularOverride(name string, value bool, at *Span) {
	if s == nil || s.B == nil {
		return
	}
	nt := s.B.EnsureNonTerminal(name, at)
	s.B.SetTriangularOverride(nt, value, at)
}

func (s *BuilderSink) EndRule(at *Span) {
	if s == nil || s.B == nil {
		return
	}
	if s.curRule == nil {
		return
	}
	s.curRule.End()
	s.curRule = nil
	s.curLHS = nil
}
