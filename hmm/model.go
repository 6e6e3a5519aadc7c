// Package hmm implements an ergodic hidden Markov model with diagonal-covariance
// Gaussian emissions, trained with Baum-Welch.
package hmm

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/floats"

	"github.com/ieee0824/signhmm/internal/mathutil"
)

var (
	// ErrNumericInstability is returned when fitting or scoring cannot produce
	// a finite log-likelihood or the input is malformed.
	ErrNumericInstability = errors.New("hmm: numeric instability")

	// ErrInsufficientData is returned when there are fewer observations than states.
	ErrInsufficientData = fmt.Errorf("%w: fewer observations than states", ErrNumericInstability)
)

// Model is a fitted Gaussian HMM.
type Model struct {
	States    int
	Dim       int
	StartLog  []float64   // [States] log initial probabilities
	TransLog  [][]float64 // [States][States] log transition probabilities
	Emissions []Gaussian  // [States]

	// Training diagnostics.
	LogLikelihood float64
	Iterations    int
}

// NumStates returns the number of hidden states.
func (m *Model) NumStates() int { return m.States }

// Score returns the total log-likelihood of the concatenated sequences in X,
// split by lengths.
func (m *Model) Score(X [][]float64, lengths []int) (float64, error) {
	if err := checkObservations(X, lengths, m.Dim); err != nil {
		return 0, err
	}
	maxT := 0
	for _, l := range lengths {
		maxT = max(maxT, l)
	}
	w := newWorkspace(maxT, m.States)
	total := 0.0
	offset := 0
	for _, l := range lengths {
		obs := X[offset : offset+l]
		offset += l
		m.emissions(obs, w.emit)
		ll := m.forward(w.emit[:l], w.alpha[:l], w.scratch)
		if mathutil.IsLogZero(ll) || !mathutil.Finite(ll) {
			return 0, fmt.Errorf("%w: sequence log-likelihood %g", ErrNumericInstability, ll)
		}
		total += ll
	}
	return total, nil
}

// prepare rebuilds cached emission constants, e.g. after decoding.
func (m *Model) prepare() {
	for i := range m.Emissions {
		m.Emissions[i].Precompute()
	}
}

// workspace holds per-sequence buffers reused across sequences.
type workspace struct {
	emit    mathutil.Mat // [T][States]
	alpha   mathutil.Mat
	beta    mathutil.Mat
	scratch []float64 // [States]
}

func newWorkspace(maxT, n int) *workspace {
	return &workspace{
		emit:    mathutil.NewMat(maxT, n),
		alpha:   mathutil.NewMat(maxT, n),
		beta:    mathutil.NewMat(maxT, n),
		scratch: make([]float64, n),
	}
}

// emissions fills emit[t][j] = log P(obs[t] | state j).
// State-outer order keeps one Gaussian hot across frames.
func (m *Model) emissions(obs [][]float64, emit mathutil.Mat) {
	for j := range m.Emissions {
		g := &m.Emissions[j]
		for t, o := range obs {
			emit[t][j] = g.LogProb(o)
		}
	}
}

// forward fills alpha in log domain and returns log P(obs | model).
func (m *Model) forward(emit, alpha mathutil.Mat, scratch []float64) float64 {
	n := m.States
	for j := 0; j < n; j++ {
		alpha[0][j] = m.StartLog[j] + emit[0][j]
	}
	for t := 1; t < len(emit); t++ {
		for j := 0; j < n; j++ {
			for i := 0; i < n; i++ {
				scratch[i] = alpha[t-1][i] + m.TransLog[i][j]
			}
			alpha[t][j] = floats.LogSumExp(scratch) + emit[t][j]
		}
	}
	return floats.LogSumExp(alpha[len(emit)-1])
}

// backward fills beta in log domain. beta[T-1][i] = log 1.
func (m *Model) backward(emit, beta mathutil.Mat, scratch []float64) {
	n := m.States
	T := len(emit)
	mathutil.FillVec(beta[T-1], 0)
	for t := T - 2; t >= 0; t-- {
		for i := 0; i < n; i++ {
			for j := 0; j < n; j++ {
				scratch[j] = m.TransLog[i][j] + emit[t+1][j] + beta[t+1][j]
			}
			beta[t][i] = floats.LogSumExp(scratch)
		}
	}
}

func checkObservations(X [][]float64, lengths []int, dim int) error {
	if len(X) == 0 || len(lengths) == 0 {
		return fmt.Errorf("%w: no observations", ErrNumericInstability)
	}
	if total := mathutil.SumInts(lengths); total != len(X) {
		return fmt.Errorf("%w: lengths sum to %d, have %d rows", ErrNumericInstability, total, len(X))
	}
	for i, l := range lengths {
		if l <= 0 {
			return fmt.Errorf("%w: sequence %d has length %d", ErrNumericInstability, i, l)
		}
	}
	for t, row := range X {
		if len(row) != dim {
			return fmt.Errorf("%w: row %d has dimension %d, want %d", ErrNumericInstability, t, len(row), dim)
		}
	}
	return nil
}
