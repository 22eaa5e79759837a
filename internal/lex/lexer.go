// Copyright (c) 2026 Michael D Henderson. All rights reserved.

// Package lex tokenizes chameleon GNF grammar source files on top of
// package scanner.
package lex

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/mdhender/guanabana/internal/scanner"
)

// Tokenize scans the source and returns all tokens including a final TOKEN_EOF.
// The filename is used only for Position fields in the returned tokens.
func Tokenize(filename string, src []byte) (tokens []Token, err error) {
	r := bytes.NewReader(src)
	s := &scanner.Scanner{Mode: scanner.DefaultTokens}
	s.Filename = filename
	if _, err = s.Init(r); err != nil {
		return nil, err
	}

	for ch := s.Scan(); ch != scanner.EOF; ch = s.Scan() {
		pos := Position{File: filename, Line: s.Line, Column: s.Column}
		text := s.TokenText()

		var tt TokenType
		switch ch {
		case scanner.Ident:
			tt = TOKEN_IDENT
		case scanner.Int:
			tt = TOKEN_INT
		case scanner.String:
			tt = TOKEN_STRING
			text = unquote(text)
		case scanner.Numberset:
			tt = TOKEN_NUMBERSET
		case scanner.Is:
			tt = TOKEN_COLONCOLON_EQ
		case scanner.Period:
			tt = TOKEN_DOT
		case scanner.Pipe:
			tt = TOKEN_PIPE
		case scanner.Entry:
			tt = TOKEN_DIR_ENTRY
		case scanner.Directive:
			tt = TOKEN_DIR_GENERIC
		case scanner.Comment:
			continue // comments carry no meaning for the grammar reader
		default:
			tt = TOKEN_ERROR
		}

		tokens = append(tokens, Token{Type: tt, Literal: text, Pos: pos})
	}

	if s.ErrorCount > 0 {
		return tokens, fmt.Errorf("%s: %d lexical error(s):\n%s", filename, s.ErrorCount, s.ErrorLog.String())
	}

	tokens = append(tokens, Token{Type: TOKEN_EOF, Pos: Position{File: filename, Line: s.Line, Column: s.Column}})
	return tokens, nil
}

// unquote strips the surrounding double quotes from a scanned string
// literal and resolves backslash escapes. If the escapes are malformed it
// falls back to the text with its surrounding quotes trimmed and the
// escapes left as written; no error is reported for that case.
func unquote(text string) string {
	if v, err := strconv.Unquote(text); err == nil {
		return v
	}
	return strings.Trim(text, `"`)
}
