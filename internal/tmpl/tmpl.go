// Copyright (c) 2026 Michael D Henderson. All rights reserved.

// Package tmpl renders the fixed, embedded text templates internal/emit
// fills with normalized-grammar facts. Templates are inert text with named
// holes; this package contributes no logic of its own beyond what
// text/template's for-each/if/with already expose — the engine only fills
// holes.
//
// No third-party templating engine appears anywhere in the retrieval pack
// (checked every example repo and other_examples/ for text/template
// alternatives); stdlib text/template is Go's own answer to "parameterize
// fixed text with named holes" and is used here by necessity, not by
// default — see DESIGN.md.
package tmpl

import (
	"bytes"
	"embed"
	"fmt"
	"text/template"
)

//go:embed templates/*.tmpl
var files embed.FS

var funcs = template.FuncMap{
	"hex": func(b byte) string { return fmt.Sprintf("0x%02x", b) },
}

// Render parses and executes the named embedded template against data.
// name is the template file's base name, e.g. "head.c.tmpl".
func Render(name string, data any) (string, error) {
	t, err := template.New(name).Funcs(funcs).ParseFS(files, "templates/"+name)
	if err != nil {
		return "", fmt.Errorf("tmpl: parse %s: %w", name, err)
	}
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("tmpl: render %s: %w", name, err)
	}
	return buf.String(), nil
}
