// Copyright (c) 2026 Michael D Henderson. All rights reserved.

package lex

var tokenTypeNames = map[TokenType]string{
	TOKEN_EOF:           "EOF",
	TOKEN_ERROR:         "ERROR",
	TOKEN_IDENT:         "IDENT",
	TOKEN_STRING:        "STRING",
	TOKEN_NUMBERSET:     "NUMBERSET",
	TOKEN_INT:           "INT",
	TOKEN_COLONCOLON_EQ: "COLONCOLON_EQ",
	TOKEN_DOT:           "DOT",
	TOKEN_PIPE:          "PIPE",
	TOKEN_DIR_ENTRY:     "DIR_ENTRY",
	TOKEN_DIR_GENERIC:   "DIR_GENERIC",
}

// String implements fmt.Stringer for TokenType. Hand-written rather than
// go:generate'd since the stringer tool is never invoked in this module.
func (t TokenType) String() string {
	if s, ok := tokenTypeNames[t]; ok {
		return s
	}
	return "UNKNOWN"
}
