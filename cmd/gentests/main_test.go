package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate(t *testing.T) {
	base := t.TempDir()
	cases := []TestCase{
		{"001_id", "λx.x", "λy.y"},
		{"003_k_1", "(λx.λy.x) a b", "a"},
	}
	require.NoError(t, generate(base, cases))

	for _, tc := range cases {
		input, err := os.ReadFile(filepath.Join(base, tc.Name, "input.lam"))
		require.NoError(t, err)
		assert.Equal(t, tc.Input+"\n", string(input))

		output, err := os.ReadFile(filepath.Join(base, tc.Name, "output.lam"))
		require.NoError(t, err)
		assert.Equal(t, tc.Output+"\n", string(output))

		src, err := os.ReadFile(filepath.Join(base, tc.Name, "reduction_test.go"))
		require.NoError(t, err)
		assert.Contains(t, string(src), "func Test_"+tc.Name+"_Reduction")
	}
}

func TestGenerateUnwritableDir(t *testing.T) {
	// A regular file where the base directory should be makes MkdirAll fail.
	base := filepath.Join(t.TempDir(), "generated")
	require.NoError(t, os.WriteFile(base, nil, 0644))

	err := generate(base, []TestCase{{"001_id", "λx.x", "λy.y"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "creating")
}

func TestGenerateUnwritableFile(t *testing.T) {
	// A directory in place of input.lam makes WriteFile fail.
	base := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(base, "001_id", "input.lam"), 0755))

	err := generate(base, []TestCase{{"001_id", "λx.x", "λy.y"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "writing")
}

func TestGenerateParseError(t *testing.T) {
	base := t.TempDir()
	err := generate(base, []TestCase{{"bad", "(λx.x", "x"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing input for bad")

	_, statErr := os.Stat(filepath.Join(base, "bad"))
	assert.True(t, os.IsNotExist(statErr), "nothing is written for a case that does not parse")
}
