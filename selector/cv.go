package selector

import (
	"gonum.org/v1/gonum/stat"

	"github.com/ieee0824/signhmm/corpus"
)

// minFoldSequences is the smallest sequence count that is split into folds.
const minFoldSequences = 3

// CV ranks state counts by the mean held-out log-likelihood over shuffled
// k-fold splits of the word's sequences. Words with fewer than three
// sequences are fitted and scored once on all their data.
//
// The returned model is the one fitted on the last fold of the winning state
// count; it is not refitted on the full data.
type CV struct {
	*Base
}

// Candidates evaluates every state count over the same folds.
func (s *CV) Candidates() []Candidate {
	var folds []Fold
	if len(s.sequences) >= minFoldSequences {
		k := s.cfg.Folds
		if k < 2 {
			k = DefaultConfig().Folds
		}
		folds = KFold(len(s.sequences), min(k, len(s.sequences)), s.cfg.RandomState)
	}

	var out []Candidate
	for _, n := range s.stateRange() {
		if folds == nil {
			out = append(out, s.whole(n))
			continue
		}
		out = append(out, s.folded(n, folds))
	}
	return out
}

func (s *CV) whole(n int) Candidate {
	m, err := s.baseModel(n)
	if err != nil {
		return failed(n, err)
	}
	logL, err := m.Score(s.X, s.lengths)
	if err != nil {
		s.scoreFailed(n, err)
		return failed(n, err)
	}
	return scored(n, logL, logL, m)
}

func (s *CV) folded(n int, folds []Fold) Candidate {
	scores := make([]float64, 0, len(folds))
	var last Model
	for i, f := range folds {
		trainX, trainLengths := corpus.CombineSequences(f.Train, s.sequences)
		testX, testLengths := corpus.CombineSequences(f.Test, s.sequences)

		m, err := s.fit(trainX, trainLengths, n)
		if err != nil {
			return failed(n, err)
		}
		logL, err := m.Score(testX, testLengths)
		if err != nil {
			s.scoreFailed(n, err, "fold", i)
			return failed(n, err)
		}
		scores = append(scores, logL)
		last = m
	}
	mean := stat.Mean(scores, nil)
	return scored(n, mean, mean, last)
}

// Select returns the model with the highest mean held-out log-likelihood.
func (s *CV) Select() Model {
	return selectBest(s.Candidates())
}
