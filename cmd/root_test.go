package cmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	root := NewRootCommand(&out)
	root.SetArgs(args)
	root.SetErr(&out)
	err := root.Execute()
	return out.String(), err
}

func TestRunPart4Flags(t *testing.T) {
	out, err := execute(t, "run", "part4", "--readers", "5", "--write-index", "2", "--write-value", "42", "--log-level", "warn")
	require.NoError(t, err)

	assert.Equal(t, 5, strings.Count(out, "is reading:"))
	assert.Contains(t, out, "Contents of SharedData (8 elements): 20 20 42 20 20 20 20 20\n")
	assert.NotContains(t, out, "constructor allocated elements")
}

func TestRunTracesLifecycle(t *testing.T) {
	out, err := execute(t, "run", "part2")
	require.NoError(t, err)

	assert.Contains(t, out, "msg=copy constructor called")
	assert.Contains(t, out, "name=Array1_copied")
	assert.Contains(t, out, "Array2 created as a copy of Array1.")
}

func TestRunRejectsUnknownScenario(t *testing.T) {
	_, err := execute(t, "run", "part9")
	assert.Error(t, err)
}

func TestRunBadIndexFails(t *testing.T) {
	_, err := execute(t, "run", "part4", "--write-index", "8")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "out of range")
}

func TestStress(t *testing.T) {
	out, err := execute(t, "stress", "--tasks", "200", "--workers", "4", "--size", "8", "--log-level", "warn")
	require.NoError(t, err)
	assert.Contains(t, out, "submitted=200 reads=180 writes=20 failed=0 dropped=0 torn=0\n")
}

func TestWords(t *testing.T) {
	out, err := execute(t, "words", "--fold", "-n", "2", "A", "b", "a", "B", "a")
	require.NoError(t, err)
	assert.Equal(t, "a        3\nb        2\n", out)
}

func TestWordsYAML(t *testing.T) {
	out, err := execute(t, "words", "-o", "yaml", "x", "x")
	require.NoError(t, err)
	assert.Equal(t, "- word: x\n  count: 2\n", out)
}

func TestBadConfigRejected(t *testing.T) {
	_, err := execute(t, "words", "-o", "xml")
	assert.Error(t, err)
}
