package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aretw0/rotator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "Rotator "+strings.TrimSpace(rotator.Version)+"\n", out)
}

// Flags are package state in cobra, so the cases run in order in one test.
func TestValidate(t *testing.T) {
	dir := t.TempDir()
	deckPath := filepath.Join(dir, "deck.yaml")
	require.NoError(t, os.WriteFile(deckPath, []byte("title: Demo\nitems:\n  - {quote: a}\n  - {quote: b}\n  - {quote: c}\n"), 0644))

	good := filepath.Join(dir, "good.yaml")
	require.NoError(t, os.WriteFile(good, []byte("carousel:\n  start_index: 2\n  reading_direction: ltr\n"), 0644))
	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("carousel:\n  start_index: 9\n"), 0644))

	out, err := execute(t, "validate")
	require.NoError(t, err)
	assert.Contains(t, out, "is valid! ✅ (5 items, start 0, rtl)")

	_, err = execute(t, "validate", "--config", bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")

	out, err = execute(t, "validate", "--config", good, "--deck", deckPath)
	require.NoError(t, err)
	assert.Contains(t, out, `Deck "Demo" is valid! ✅ (3 items, start 2, ltr)`)
}
