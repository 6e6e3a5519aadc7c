package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestGenerateSelectRecognize(t *testing.T) {
	dir := t.TempDir()
	corpusPath := filepath.Join(dir, "corpus.yaml")
	tablePath := filepath.Join(dir, "models.gob")
	configPath := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("min_n_components: 2\nmax_n_components: 3\nmax_iterations: 50\n"), 0o644))

	_, err := execute(t, "gencorpus", "--words", "A,B,C", "--sequences", "4", "--test", "1", "--dim", "2", "--spread", "0.2", "-o", corpusPath)
	require.NoError(t, err)

	_, err = execute(t, "select", "-c", configPath, "-s", "bic", "--corpus", corpusPath, "-o", tablePath)
	require.NoError(t, err)

	out, err := execute(t, "recognize", "-c", configPath, "--corpus", corpusPath, "-t", tablePath, "--scores")
	require.NoError(t, err)
	assert.Contains(t, out, "WER =")
	assert.Contains(t, out, "out of 3")
	assert.Equal(t, 3, strings.Count(out, "\t\tA="))
}

func TestRunWithFeatures(t *testing.T) {
	dir := t.TempDir()
	corpusPath := filepath.Join(dir, "corpus.yaml")

	_, err := execute(t, "gencorpus", "--words", "A,B", "--sequences", "3", "--test", "1", "--dim", "2", "-o", corpusPath)
	require.NoError(t, err)

	out, err := execute(t, "run", "-s", "constant", "--corpus", corpusPath, "--normalize", "--delta", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "out of 2")
}

func TestUnknownSelector(t *testing.T) {
	_, err := execute(t, "run", "-s", "aic")
	require.Error(t, err)
}

func TestGenerateDeterministic(t *testing.T) {
	o := genOptions{words: []string{"X", "Y"}, sequences: 2, test: 1, dim: 3, minFrames: 4, maxFrames: 6, spread: 0.1, seed: 3}
	c1, ts1, err := generate(o)
	require.NoError(t, err)
	c2, ts2, err := generate(o)
	require.NoError(t, err)

	s1, _ := c1.Sequences("X")
	s2, _ := c2.Sequences("X")
	assert.Equal(t, s1, s2)
	assert.Equal(t, ts1.Items, ts2.Items)
	assert.Equal(t, []string{"X", "Y"}, ts1.Labels())
}
