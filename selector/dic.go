package selector

import (
	"fmt"

	"gonum.org/v1/gonum/stat"
)

// DIC ranks state counts by the Discriminative Information Criterion
//
//	DIC = logL(X_i) - mean_{j != i} logL(X_j)
//
// with every term scored by the model fitted on word i. The competing words
// are all other words of the corpus; a one-word vocabulary has no competing
// term.
type DIC struct {
	*Base
}

type xlengths struct {
	word    string
	X       [][]float64
	lengths []int
}

// Candidates fits every state count and scores it against all words.
func (s *DIC) Candidates() []Candidate {
	var others []xlengths
	for _, w := range s.corpus.Words() {
		if w == s.word {
			continue
		}
		X, lengths, _ := s.corpus.XLengths(w)
		others = append(others, xlengths{w, X, lengths})
	}

	var out []Candidate
	for _, n := range s.stateRange() {
		m, err := s.baseModel(n)
		if err != nil {
			out = append(out, failed(n, err))
			continue
		}
		dic, err := s.criterion(m, others)
		if err != nil {
			s.scoreFailed(n, err)
			out = append(out, failed(n, err))
			continue
		}
		out = append(out, scored(n, dic, dic, m))
	}
	return out
}

func (s *DIC) criterion(m Model, others []xlengths) (float64, error) {
	own, err := m.Score(s.X, s.lengths)
	if err != nil {
		return 0, err
	}
	if len(others) == 0 {
		return own, nil
	}
	competing := make([]float64, len(others))
	for i, o := range others {
		ll, err := m.Score(o.X, o.lengths)
		if err != nil {
			return 0, fmt.Errorf("score %q: %w", o.word, err)
		}
		competing[i] = ll
	}
	return own - stat.Mean(competing, nil), nil
}

// Select returns the model with the highest DIC.
func (s *DIC) Select() Model {
	return selectBest(s.Candidates())
}
