package hmm

import (
	"bytes"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ieee0824/signhmm/selector"
)

// cluster draws count sequences of length T around center.
func cluster(rng *rand.Rand, center []float64, count, T int) ([][]float64, []int) {
	var X [][]float64
	var lengths []int
	for i := 0; i < count; i++ {
		for t := 0; t < T; t++ {
			row := make([]float64, len(center))
			for d, c := range center {
				row[d] = c + 0.5*rng.NormFloat64()
			}
			X = append(X, row)
		}
		lengths = append(lengths, T)
	}
	return X, lengths
}

func TestGaussianLogProb(t *testing.T) {
	g := newGaussian([]float64{0.0}, []float64{1.0})

	// Standard normal at x=0: log(1/sqrt(2π)) ≈ -0.9189
	lp := g.LogProb([]float64{0.0})
	assert.InDelta(t, -0.5*math.Log(2*math.Pi), lp, 1e-9)
	assert.Less(t, g.LogProb([]float64{5.0}), lp)
}

func TestTrainScoresOwnDataHigher(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	xa, la := cluster(rng, []float64{0, 0}, 5, 8)
	xb, lb := cluster(rng, []float64{5, 5}, 5, 8)

	tr := DefaultTrainer()
	ma, err := tr.Train(xa, la, 2, 14)
	require.NoError(t, err, "train A")
	mb, err := tr.Train(xb, lb, 2, 14)
	require.NoError(t, err, "train B")

	testX, testL := cluster(rng, []float64{0, 0}, 1, 8)
	sa, err := ma.Score(testX, testL)
	require.NoError(t, err)
	sb, err := mb.Score(testX, testL)
	require.NoError(t, err)
	assert.Greater(t, sa, sb)
	assert.Equal(t, 2, ma.NumStates())
}

func TestTrainDeterministic(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	X, lengths := cluster(rng, []float64{1, -1, 2}, 4, 10)

	tr := DefaultTrainer()
	m1, err := tr.Train(X, lengths, 3, 14)
	require.NoError(t, err)
	m2, err := tr.Train(X, lengths, 3, 14)
	require.NoError(t, err)
	assert.Equal(t, m1.LogLikelihood, m2.LogLikelihood)
	assert.GreaterOrEqual(t, m1.Iterations, 1)
	assert.LessOrEqual(t, m1.Iterations, tr.MaxIterations)
}

func TestTrainRespectsIterationCap(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	X, lengths := cluster(rng, []float64{0, 0}, 3, 6)
	tr := DefaultTrainer()
	tr.MaxIterations = 2
	m, err := tr.Train(X, lengths, 2, 14)
	require.NoError(t, err)
	assert.LessOrEqual(t, m.Iterations, 2)
}

func TestTrainInsufficientData(t *testing.T) {
	X := [][]float64{{0}, {1}, {2}}
	_, err := DefaultTrainer().Train(X, []int{3}, 5, 14)
	assert.ErrorIs(t, err, ErrInsufficientData)
	assert.ErrorIs(t, err, ErrNumericInstability)
}

func TestTrainMalformedInput(t *testing.T) {
	tr := DefaultTrainer()
	cases := []struct {
		name    string
		X       [][]float64
		lengths []int
		states  int
	}{
		{"empty", nil, nil, 2},
		{"lengths mismatch", [][]float64{{0}, {1}, {2}}, []int{2}, 2},
		{"ragged rows", [][]float64{{0, 1}, {1}, {2, 3}}, []int{3}, 2},
		{"zero states", [][]float64{{0}, {1}}, []int{2}, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := tr.Train(tc.X, tc.lengths, tc.states, 14)
			assert.ErrorIs(t, err, ErrNumericInstability)
		})
	}
}

func TestFitReturnsNilInterfaceOnError(t *testing.T) {
	m, err := DefaultTrainer().Fit([][]float64{{0}}, []int{1}, 3, 14)
	require.Error(t, err)
	assert.True(t, m == nil, "model = %v, want nil interface", m)
}

func TestScoreDimensionMismatch(t *testing.T) {
	rng := rand.New(rand.NewSource(4))
	X, lengths := cluster(rng, []float64{0, 0}, 3, 6)
	m, err := DefaultTrainer().Train(X, lengths, 2, 14)
	require.NoError(t, err)
	_, err = m.Score([][]float64{{0, 0, 0}}, []int{1})
	assert.ErrorIs(t, err, ErrNumericInstability)
}

func TestSaveLoadTable(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	tr := DefaultTrainer()
	table := selector.NewTable()
	for i, w := range []string{"WRITE", "BOOK", "GO"} {
		X, lengths := cluster(rng, []float64{float64(i * 3)}, 3, 6)
		m, err := tr.Train(X, lengths, 2, 14)
		require.NoError(t, err)
		table.Add(w, m)
	}

	var buf bytes.Buffer
	require.NoError(t, SaveTable(&buf, table))
	loaded, err := LoadTable(&buf)
	require.NoError(t, err)

	want := table.Words()
	require.Equal(t, want, loaded.Words())

	sample := [][]float64{{1}, {2}}
	for _, w := range want {
		orig, _ := table.Model(w)
		back, _ := loaded.Model(w)
		s1, err := orig.Score(sample, []int{2})
		require.NoError(t, err)
		s2, err := back.Score(sample, []int{2})
		require.NoError(t, err)
		assert.InDelta(t, s1, s2, 1e-9, "word %s", w)
	}
}

type otherModel struct{}

func (otherModel) NumStates() int { return 1 }
func (otherModel) Score([][]float64, []int) (float64, error) {
	return 0, nil
}

func TestSaveTableRejectsForeignModel(t *testing.T) {
	table := selector.NewTable()
	table.Add("A", otherModel{})
	assert.Error(t, SaveTable(&bytes.Buffer{}, table))
}
