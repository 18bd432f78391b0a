package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSource(t *testing.T, dir, name, source string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(source), 0644))
	return path
}

func TestFormatFilePrints(t *testing.T) {
	path := writeSource(t, t.TempDir(), "id.lam", "(\\x . x)   y")

	var out bytes.Buffer
	require.NoError(t, runFmt(&out, []string{path}, false, false))
	assert.Equal(t, "(λa.a)y\n", out.String())

	source, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "(\\x . x)   y", string(source), "source is left alone without -w")
}

func TestFormatDirectoryWrite(t *testing.T) {
	dir := t.TempDir()
	messy := writeSource(t, dir, "messy.lam", "λf. λx. f (f x)")
	writeSource(t, dir, "clean.lam", "λa.a\n")
	writeSource(t, dir, "notes.txt", "not a term (")

	var out bytes.Buffer
	require.NoError(t, runFmt(&out, []string{dir}, true, true))
	assert.Equal(t, messy+"\n", out.String())

	source, err := os.ReadFile(messy)
	require.NoError(t, err)
	assert.Equal(t, "λa.λb.a(a b)\n", string(source))
}

func TestFormatList(t *testing.T) {
	dir := t.TempDir()
	messy := writeSource(t, dir, "messy.lam", "λx.x")
	writeSource(t, dir, "clean.lam", "λa.a\n")

	var out bytes.Buffer
	require.NoError(t, runFmt(&out, []string{dir}, false, true))
	assert.Equal(t, messy+"\n", out.String())
}

func TestFormatErrors(t *testing.T) {
	dir := t.TempDir()
	bad := writeSource(t, dir, "bad.lam", "λx")

	err := runFmt(&bytes.Buffer{}, []string{bad}, false, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "formatting "+bad)

	err = runFmt(&bytes.Buffer{}, []string{filepath.Join(dir, "missing.lam")}, false, false)
	assert.ErrorContains(t, err, "accessing")
}
