package corpus

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seq(rows ...[]float64) Sequence { return rows }

func TestNewOrdersWords(t *testing.T) {
	c, err := New(map[string][]Sequence{
		"JOHN": {seq([]float64{1, 2})},
		"BOOK": {seq([]float64{3, 4}, []float64{5, 6})},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"BOOK", "JOHN"}, c.Words())
	assert.Equal(t, 2, c.Dim())
	assert.Equal(t, 2, c.Len())
}

func TestNewRejectsRaggedFrames(t *testing.T) {
	_, err := New(map[string][]Sequence{
		"A": {seq([]float64{1, 2}, []float64{1})},
	})
	require.Error(t, err)
}

func TestNewRejectsEmpty(t *testing.T) {
	_, err := New(nil)
	require.ErrorIs(t, err, ErrEmpty)

	_, err = New(map[string][]Sequence{"A": {}})
	require.ErrorIs(t, err, ErrEmpty)

	_, err = New(map[string][]Sequence{"A": {seq()}})
	require.ErrorIs(t, err, ErrEmpty)
}

func TestXLengthsInvariant(t *testing.T) {
	c, err := New(map[string][]Sequence{
		"A": {
			seq([]float64{1}, []float64{2}),
			seq([]float64{3}),
			seq([]float64{4}, []float64{5}, []float64{6}),
		},
	})
	require.NoError(t, err)

	X, lengths, ok := c.XLengths("A")
	require.True(t, ok)
	assert.Equal(t, []int{2, 1, 3}, lengths)
	assert.Len(t, X, 6)
	assert.Equal(t, []float64{4}, X[3])

	_, _, ok = c.XLengths("B")
	assert.False(t, ok)
}

func TestCombineSequencesSubset(t *testing.T) {
	seqs := []Sequence{
		seq([]float64{1}),
		seq([]float64{2}, []float64{3}),
		seq([]float64{4}, []float64{5}, []float64{6}),
	}
	X, lengths := CombineSequences([]int{2, 0}, seqs)
	assert.Equal(t, []int{3, 1}, lengths)
	assert.Equal(t, [][]float64{{4}, {5}, {6}, {1}}, X)
}

func TestLoadYAML(t *testing.T) {
	src := `
words:
  A:
    - [[0, 1], [1, 2]]
    - [[0, 0]]
  B:
    - [[5, 5]]
test:
  - label: A
    frames: [[0, 1]]
`
	c, ts, err := Load(strings.NewReader(src))
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B"}, c.Words())
	require.Equal(t, 1, ts.Len())
	X, lengths := ts.ItemXLengths(0)
	assert.Equal(t, [][]float64{{0, 1}}, X)
	assert.Equal(t, []int{1}, lengths)
	assert.Equal(t, []string{"A"}, ts.Labels())
}

func TestLoadJSON(t *testing.T) {
	src := `{"words": {"A": [[[1.5]]]}}`
	c, ts, err := Load(strings.NewReader(src))
	require.NoError(t, err)
	assert.Equal(t, 1, c.Dim())
	assert.Zero(t, ts.Len())
}

func TestLoadRejectsTestDimMismatch(t *testing.T) {
	src := `
words:
  A:
    - [[0, 1]]
test:
  - label: A
    frames: [[0]]
`
	_, _, err := Load(strings.NewReader(src))
	require.Error(t, err)
}

func TestSaveLoad(t *testing.T) {
	c, err := New(map[string][]Sequence{
		"A": {seq([]float64{1, 2}, []float64{3, 4})},
		"B": {seq([]float64{5, 6})},
	})
	require.NoError(t, err)
	ts := &TestSet{Items: []Item{{Label: "B", Sequence: seq([]float64{5, 6})}}}

	var buf bytes.Buffer
	require.NoError(t, Save(&buf, c, ts))

	c2, ts2, err := Load(&buf)
	require.NoError(t, err)
	assert.Equal(t, c.Words(), c2.Words())
	X, _, _ := c2.XLengths("A")
	assert.Equal(t, [][]float64{{1, 2}, {3, 4}}, X)
	assert.Equal(t, []string{"B"}, ts2.Labels())
}
