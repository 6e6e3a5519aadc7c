package selector

import "math"

// BIC ranks state counts by the Bayesian Information Criterion
//
//	BIC = -2*logL + p*ln(N),  p = n^2 + 2*d*n - 1
//
// where N is the number of frames and d the feature dimension.
// Config.BIC decides whether the largest or the smallest value wins; the
// default keeps the largest.
type BIC struct {
	*Base
}

// Candidates fits and scores every state count in range.
func (s *BIC) Candidates() []Candidate {
	N := float64(len(s.X))
	d := 0
	if len(s.X) > 0 {
		d = len(s.X[0])
	}

	var out []Candidate
	for _, n := range s.stateRange() {
		m, err := s.baseModel(n)
		if err != nil {
			out = append(out, failed(n, err))
			continue
		}
		logL, err := m.Score(s.X, s.lengths)
		if err != nil {
			s.scoreFailed(n, err)
			out = append(out, failed(n, err))
			continue
		}
		bic := BICValue(logL, n, d, N)
		score := bic
		if s.cfg.BIC == PreferLowerBIC {
			score = -bic
		}
		out = append(out, scored(n, bic, score, m))
	}
	return out
}

// Select returns the model whose BIC wins under Config.BIC.
func (s *BIC) Select() Model {
	return selectBest(s.Candidates())
}

// BICValue computes BIC for an n-state model with d-dimensional diagonal
// Gaussian emissions over N frames.
func BICValue(logL float64, n, d int, N float64) float64 {
	p := float64(n*n + 2*d*n - 1)
	return -2*logL + p*math.Log(N)
}
