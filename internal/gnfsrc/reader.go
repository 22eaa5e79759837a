// Copyright (c) 2026 Michael D Henderson. All rights reserved.

// Package gnfsrc is a small, convenience reader for a textual GNF grammar
// notation used by the chameleon CLI:
//
//	%entry s
//	%triangular s true
//	s ::= "a" s | .
//	n ::= <0-9,65-90:1> .
//
// It is not the compiler's contract. Embedders build grammars with
// package grammar's Builder/Sink directly; this package exists only so the
// CLI has something convenient to read from a file.
package gnfsrc

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mdhender/guanabana/internal/grammar"
	"github.com/mdhender/guanabana/internal/lex"
)

// Read tokenizes and parses src, streaming grammar events into sink.
// filename is used only for diagnostics.
func Read(filename string, src []byte, sink grammar.Sink) error {
	tokens, err := lex.Tokenize(filename, src)
	if err != nil {
		return err
	}
	p := &parser{toks: tokens, sink: sink}
	p.run()
	if p.failed {
		return fmt.Errorf("%s: grammar source has syntax errors", filename)
	}
	return nil
}

type parser struct {
	toks   []lex.Token
	pos    int
	sink   grammar.Sink
	failed bool
}

func (p *parser) peek() lex.Token { return p.toks[p.pos] }

func (p *parser) next() lex.Token {
	t := p.toks[p.pos]
	if t.Type != lex.TOKEN_EOF {
		p.pos++
	}
	return t
}

func (p *parser) span(t lex.Token) *grammar.Span {
	return &grammar.Span{
		File:      t.Pos.File,
		Line:      t.Pos.Line,
		Column:    t.Pos.Column,
		EndLine:   t.Pos.Line,
		EndColumn: t.Pos.Column + len(t.Literal),
	}
}

func (p *parser) errorf(t lex.Token, format string, args ...any) {
	p.failed = true
	p.sink.ParserError(p.span(t), fmt.Sprintf(format, args...))
}

func (p *parser) run() {
	for p.peek().Type != lex.TOKEN_EOF {
		switch p.peek().Type {
		case lex.TOKEN_DIR_ENTRY:
			p.parseEntry()
		case lex.TOKEN_DIR_GENERIC:
			p.parseDirective()
		case lex.TOKEN_IDENT:
			p.parseRule()
		default:
			t := p.next()
			p.errorf(t, "unexpected %s %q at top level", t.Type, t.Literal)
		}
	}
}

func (p *parser) parseEntry() {
	p.next() // %entry
	name := p.peek()
	if name.Type != lex.TOKEN_IDENT {
		p.errorf(name, "expected non-terminal name after %%entry, got %s", name.Type)
		return
	}
	p.next()
	p.sink.SetEntry(name.Literal, p.span(name))
}

// parseDirective handles "%triangular NAME true|false"; any other generic
// directive is reported as an error rather than silently ignored.
func (p *parser) parseDirective() {
	dir := p.next()
	if dir.Literal != "%triangular" {
		p.errorf(dir, "unknown directive %q", dir.Literal)
		return
	}

	name := p.peek()
	if name.Type != lex.TOKEN_IDENT {
		p.errorf(name, "expected non-terminal name after %%triangular, got %s", name.Type)
		return
	}
	p.next()

	val := p.peek()
	if val.Type != lex.TOKEN_IDENT || (val.Literal != "true" && val.Literal != "false") {
		p.errorf(val, "expected 'true' or 'false' after %%triangular %s, got %s", name.Literal, val.Type)
		return
	}
	p.next()

	p.sink.SetTriangularOverride(name.Literal, val.Literal == "true", p.span(name))
}

func (p *parser) parseRule() {
	lhs := p.next() // IDENT, checked by caller
	p.sink.BeginRule(lhs.Literal, p.span(lhs))
	defer p.sink.EndRule(p.span(lhs))

	is := p.peek()
	if is.Type != lex.TOKEN_COLONCOLON_EQ {
		p.errorf(is, "expected '::=' after %q, got %s", lhs.Literal, is.Type)
		p.recoverToPeriod()
		return
	}
	p.next()

	for {
		alt, at := p.parseAlt()
		p.sink.Alt(alt, at)
		if p.peek().Type == lex.TOKEN_PIPE {
			p.next()
			continue
		}
		break
	}

	end := p.peek()
	if end.Type != lex.TOKEN_DOT {
		p.errorf(end, "expected '.' to end rule for %q, got %s", lhs.Literal, end.Type)
		p.recoverToPeriod()
		return
	}
	p.next()
}

// parseAlt reads zero or more rule-body symbols up to '|' or '.'. Zero
// symbols is the epsilon alternative.
func (p *parser) parseAlt() ([]grammar.SymRef, *grammar.Span) {
	var syms []grammar.SymRef
	var at *grammar.Span
	for {
		t := p.peek()
		switch t.Type {
		case lex.TOKEN_IDENT:
			p.next()
			if at == nil {
				at = p.span(t)
			}
			syms = append(syms, grammar.SymRef{Kind: grammar.RefNonTerminal, Name: t.Literal, At: p.span(t)})
		case lex.TOKEN_STRING:
			p.next()
			if at == nil {
				at = p.span(t)
			}
			syms = append(syms, grammar.SymRef{Kind: grammar.RefTerminal, Bytes: []byte(t.Literal), At: p.span(t)})
		case lex.TOKEN_NUMBERSET:
			p.next()
			if at == nil {
				at = p.span(t)
			}
			ranges, width, err := parseNumberSet(t.Literal)
			if err != nil {
				p.errorf(t, "malformed number set %q: %v", t.Literal, err)
				continue
			}
			syms = append(syms, grammar.SymRef{Kind: grammar.RefNumberSet, Ranges: ranges, Width: width, At: p.span(t)})
		case lex.TOKEN_PIPE, lex.TOKEN_DOT, lex.TOKEN_EOF:
			return syms, at
		default:
			p.next()
			p.errorf(t, "unexpected %s %q in rule body", t.Type, t.Literal)
		}
	}
}

// recoverToPeriod discards tokens through the next '.' or EOF, so that one
// malformed rule doesn't cascade into spurious errors for the rest of the
// file.
func (p *parser) recoverToPeriod() {
	for {
		t := p.peek()
		if t.Type == lex.TOKEN_EOF {
			return
		}
		p.next()
		if t.Type == lex.TOKEN_DOT {
			return
		}
	}
}

// parseNumberSet parses the body of a "<lo-hi,lo2-hi2:width>" literal,
// including the angle brackets, into ranges and an element width.
func parseNumberSet(raw string) ([]grammar.Range, grammar.Width, error) {
	body := strings.TrimSuffix(strings.TrimPrefix(raw, "<"), ">")
	if body == raw {
		return nil, 0, fmt.Errorf("missing angle brackets")
	}

	width := grammar.Width1
	rangesPart := body
	if i := strings.LastIndex(body, ":"); i >= 0 {
		rangesPart = body[:i]
		n, err := strconv.ParseUint(body[i+1:], 10, 8)
		if err != nil {
			return nil, 0, fmt.Errorf("bad width: %v", err)
		}
		switch n {
		case 1:
			width = grammar.Width1
		case 2:
			width = grammar.Width2
		case 4:
			width = grammar.Width4
		case 8:
			width = grammar.Width8
		default:
			return nil, 0, fmt.Errorf("width must be 1, 2, 4, or 8, got %d", n)
		}
	}

	var ranges []grammar.Range
	for _, part := range strings.Split(rangesPart, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		lo, hi, found := strings.Cut(part, "-")
		loN, err := strconv.ParseInt(strings.TrimSpace(lo), 10, 64)
		if err != nil {
			return nil, 0, fmt.Errorf("bad range %q: %v", part, err)
		}
		hiN := loN
		if found {
			hiN, err = strconv.ParseInt(strings.TrimSpace(hi), 10, 64)
			if err != nil {
				return nil, 0, fmt.Errorf("bad range %q: %v", part, err)
			}
		}
		ranges = append(ranges, grammar.Range{Lo: loN, Hi: hiN})
	}
	if len(ranges) == 0 {
		return nil, 0, fmt.Errorf("no ranges")
	}
	return ranges, width, nil
}
