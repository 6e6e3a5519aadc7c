package hmm

import (
	"fmt"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/ieee0824/signhmm/internal/mathutil"
	"github.com/ieee0824/signhmm/selector"
)

// Trainer holds Baum-Welch training parameters.
type Trainer struct {
	MaxIterations int
	Tolerance     float64 // log-likelihood improvement threshold
	MinVariance   float64 // variance floor
	KMeansRounds  int     // Lloyd iterations used to seed the means
}

// DefaultTrainer returns the parameters used for state-count selection.
func DefaultTrainer() Trainer {
	return Trainer{
		MaxIterations: 1000,
		Tolerance:     0.01,
		MinVariance:   1e-3,
		KMeansRounds:  10,
	}
}

// Fit implements selector.Trainer.
func (tr Trainer) Fit(X [][]float64, lengths []int, states int, seed int64) (selector.Model, error) {
	m, err := tr.Train(X, lengths, states, seed)
	if err != nil {
		return nil, err
	}
	return m, nil
}

// Train fits an ergodic Gaussian HMM with the given number of states.
// The same seed over the same data yields the same model.
func (tr Trainer) Train(X [][]float64, lengths []int, states int, seed int64) (*Model, error) {
	if states < 1 {
		return nil, fmt.Errorf("%w: %d states", ErrNumericInstability, states)
	}
	if len(X) == 0 {
		return nil, fmt.Errorf("%w: no observations", ErrNumericInstability)
	}
	dim := len(X[0])
	if err := checkObservations(X, lengths, dim); err != nil {
		return nil, err
	}
	if len(X) < states {
		return nil, fmt.Errorf("%w: %d rows for %d states", ErrInsufficientData, len(X), states)
	}

	m := tr.initialModel(X, states, rand.New(rand.NewSource(seed)))

	maxT := 0
	for _, l := range lengths {
		maxT = max(maxT, l)
	}
	w := newWorkspace(maxT, states)

	startAcc := make([]float64, states)
	transAcc := mathutil.NewMat(states, states)
	occ := make([]float64, states)
	sumX := mathutil.NewMat(states, dim)
	sumX2 := mathutil.NewMat(states, dim)

	prevLL := math.Inf(-1)
	for iter := 0; iter < tr.MaxIterations; iter++ {
		mathutil.FillVec(startAcc, 0)
		mathutil.FillMat(transAcc, 0)
		mathutil.FillVec(occ, 0)
		mathutil.FillMat(sumX, 0)
		mathutil.FillMat(sumX2, 0)

		totalLL := 0.0
		offset := 0
		for _, T := range lengths {
			obs := X[offset : offset+T]
			offset += T

			emit, alpha, beta := w.emit[:T], w.alpha[:T], w.beta[:T]
			m.emissions(obs, emit)
			ll := m.forward(emit, alpha, w.scratch)
			if mathutil.IsLogZero(ll) || !mathutil.Finite(ll) {
				return nil, fmt.Errorf("%w: iteration %d log-likelihood %g", ErrNumericInstability, iter, ll)
			}
			totalLL += ll
			m.backward(emit, beta, w.scratch)

			for j := 0; j < states; j++ {
				startAcc[j] += math.Exp(alpha[0][j] + beta[0][j] - ll)
			}
			for t := 0; t < T-1; t++ {
				for i := 0; i < states; i++ {
					for j := 0; j < states; j++ {
						transAcc[i][j] += math.Exp(alpha[t][i] + m.TransLog[i][j] + emit[t+1][j] + beta[t+1][j] - ll)
					}
				}
			}
			for t := 0; t < T; t++ {
				ot := obs[t]
				for j := 0; j < states; j++ {
					post := math.Exp(alpha[t][j] + beta[t][j] - ll)
					occ[j] += post
					for d, x := range ot {
						sumX[j][d] += post * x
						sumX2[j][d] += post * x * x
					}
				}
			}
		}

		m.LogLikelihood = totalLL
		m.Iterations = iter + 1
		if iter > 0 && totalLL-prevLL < tr.Tolerance {
			break
		}
		prevLL = totalLL

		tr.reestimate(m, startAcc, transAcc, occ, sumX, sumX2)
	}

	if !mathutil.Finite(m.LogLikelihood) {
		return nil, fmt.Errorf("%w: final log-likelihood %g", ErrNumericInstability, m.LogLikelihood)
	}
	return m, nil
}

// reestimate applies the M-step. States with no occupancy keep their emission.
func (tr Trainer) reestimate(m *Model, startAcc []float64, transAcc mathutil.Mat, occ []float64, sumX, sumX2 mathutil.Mat) {
	if total := floats.Sum(startAcc); total > 0 {
		for j, v := range startAcc {
			m.StartLog[j] = mathutil.SafeLog(v / total)
		}
	}
	for i := range transAcc {
		denom := floats.Sum(transAcc[i])
		if denom <= 0 {
			continue
		}
		for j, v := range transAcc[i] {
			m.TransLog[i][j] = mathutil.SafeLog(v / denom)
		}
	}
	for j := range m.Emissions {
		if occ[j] < 1e-10 {
			continue
		}
		g := &m.Emissions[j]
		for d := range g.Mean {
			mean := sumX[j][d] / occ[j]
			v := sumX2[j][d]/occ[j] - mean*mean
			g.Mean[d] = mean
			g.Variance[d] = math.Max(v, tr.MinVariance)
		}
		g.Precompute()
	}
}

// initialModel seeds the means with k-means over sampled rows and every
// variance with the global data variance.
func (tr Trainer) initialModel(X [][]float64, n int, rng *rand.Rand) *Model {
	dim := len(X[0])
	m := &Model{
		States:    n,
		Dim:       dim,
		StartLog:  make([]float64, n),
		TransLog:  mathutil.NewMatFill(n, n, -math.Log(float64(n))),
		Emissions: make([]Gaussian, n),
	}
	mathutil.FillVec(m.StartLog, -math.Log(float64(n)))

	variance := make([]float64, dim)
	col := make([]float64, len(X))
	for d := 0; d < dim; d++ {
		for t, row := range X {
			col[t] = row[d]
		}
		_, v := stat.MeanVariance(col, nil)
		if math.IsNaN(v) {
			v = 0
		}
		variance[d] = math.Max(v, tr.MinVariance)
	}

	centers := kmeans(X, n, tr.KMeansRounds, rng)
	for j := range m.Emissions {
		m.Emissions[j] = newGaussian(centers[j], variance)
	}
	return m
}

// kmeans runs Lloyd's algorithm from k randomly sampled rows.
func kmeans(X [][]float64, k, rounds int, rng *rand.Rand) mathutil.Mat {
	dim := len(X[0])
	perm := rng.Perm(len(X))
	centers := mathutil.NewMat(k, dim)
	for j := 0; j < k; j++ {
		copy(centers[j], X[perm[j]])
	}

	assign := make([]int, len(X))
	counts := make([]int, k)
	sums := mathutil.NewMat(k, dim)
	for r := 0; r < rounds; r++ {
		changed := false
		for t, x := range X {
			best, bestDist := 0, math.Inf(1)
			for j, c := range centers {
				dist := 0.0
				for d := range x {
					diff := x[d] - c[d]
					dist += diff * diff
				}
				if dist < bestDist {
					best, bestDist = j, dist
				}
			}
			if assign[t] != best || r == 0 {
				changed = true
			}
			assign[t] = best
		}
		if !changed {
			break
		}
		mathutil.FillMat(sums, 0)
		for j := range counts {
			counts[j] = 0
		}
		for t, x := range X {
			j := assign[t]
			counts[j]++
			for d, v := range x {
				sums[j][d] += v
			}
		}
		for j := range centers {
			if counts[j] == 0 {
				continue
			}
			for d := range centers[j] {
				centers[j][d] = sums[j][d] / float64(counts[j])
			}
		}
	}
	return centers
}
