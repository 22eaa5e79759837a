// Copyright (c) 2026 Michael D Henderson. All rights reserved.

package lex

import (
	"testing"
)

func TestTokenTypeString(t *testing.T) {
	types := []TokenType{
		TOKEN_EOF, TOKEN_ERROR, TOKEN_IDENT, TOKEN_STRING, TOKEN_NUMBERSET, TOKEN_INT,
		TOKEN_COLONCOLON_EQ, TOKEN_DOT, TOKEN_PIPE,
		TOKEN_DIR_ENTRY, TOKEN_DIR_GENERIC,
	}
	seen := map[string]bool{}
	for _, tt := range types {
		s := tt.String()
		if s == "" {
			t.Errorf("TokenType %d has empty string", tt)
		}
		if seen[s] {
			t.Errorf("duplicate String() value: %q", s)
		}
		seen[s] = true
	}
}

func TestTokenZeroValueIsEOF(t *testing.T) {
	var tok Token
	if tok.Type != TOKEN_EOF {
		t.Errorf("zero-value Token.Type = %v, want TOKEN_EOF", tok.Type)
	}
}

func TestPositionString(t *testing.T) {
	p := Position{File: "calc.gnf", Line: 10, Column: 5}
	s := p.String() // should return "calc.gnf:10:5"
	if s != "calc.gnf:10:5" {
		t.Errorf("Position.String() = %q, want %q", s, "calc.gnf:10:5")
	}
}
