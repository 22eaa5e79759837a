// Copyright (c) 2026 Michael D Henderson. All rights reserved.

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scenario1Source is the grammar S -> 'a' S | epsilon written in the CLI's
// GNF source notation.
const scenario1Source = "%entry S\nS ::= \"a\" S | .\n"

func writeGrammarFile(t *testing.T, contents string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "scenario1.gnf")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestGenerateCmd_Scenario1(t *testing.T) {
	grammarPath := writeGrammarFile(t, scenario1Source)
	outDir := t.TempDir()

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"generate", grammarPath, "--prefix", "chameleon", "--out", outDir})

	require.NoError(t, cmd.Execute())

	headerBytes, err := os.ReadFile(filepath.Join(outDir, "chameleon.h"))
	require.NoError(t, err)
	assert.Contains(t, string(headerBytes), "typedef unsigned char ChameleonWalk[32];")

	sourceBytes, err := os.ReadFile(filepath.Join(outDir, "chameleon.c"))
	require.NoError(t, err)
	assert.Contains(t, string(sourceBytes), "static size_t _mutate_nonterm_chameleon_0")
}

func TestGenerateCmd_RequiresPrefix(t *testing.T) {
	grammarPath := writeGrammarFile(t, scenario1Source)

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"generate", grammarPath, "--out", t.TempDir()})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--prefix")
}

func TestFingerprintCmd_PrintsHash(t *testing.T) {
	grammarPath := writeGrammarFile(t, scenario1Source)

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"fingerprint", grammarPath})

	require.NoError(t, cmd.Execute())
	assert.NotEmpty(t, out.String())
}

func TestVersionCmd(t *testing.T) {
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"version"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "chameleon")
}
