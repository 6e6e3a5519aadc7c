package selector

import (
	"errors"
	"sync"

	"github.com/ieee0824/signhmm/corpus"
)

var errStubFit = errors.New("stub: fit failed")

// stubModel scores through a caller-supplied function.
type stubModel struct {
	states    int
	trainRows int
	tag       float64 // X[0][0] of the training data
	score     func(m *stubModel, X [][]float64, lengths []int) (float64, error)
}

func (m *stubModel) NumStates() int { return m.states }

func (m *stubModel) Score(X [][]float64, lengths []int) (float64, error) {
	return m.score(m, X, lengths)
}

// stubTrainer records every requested state count.
type stubTrainer struct {
	mu    sync.Mutex
	calls []int
	fail  func(n int, X [][]float64) bool
	score func(m *stubModel, X [][]float64, lengths []int) (float64, error)
}

func (tr *stubTrainer) Fit(X [][]float64, lengths []int, n int, _ int64) (Model, error) {
	tr.mu.Lock()
	tr.calls = append(tr.calls, n)
	tr.mu.Unlock()
	if tr.fail != nil && tr.fail(n, X) {
		return nil, errStubFit
	}
	score := tr.score
	if score == nil {
		score = func(*stubModel, [][]float64, []int) (float64, error) { return -1, nil }
	}
	return &stubModel{states: n, trainRows: len(X), tag: X[0][0], score: score}, nil
}

func (tr *stubTrainer) requested() []int {
	tr.mu.Lock()
	defer tr.mu.Unlock()
	return append([]int(nil), tr.calls...)
}

// makeSequences builds count sequences of dim columns; every value of
// sequence i equals base+i so folds are distinguishable.
func makeSequences(count, dim int, base float64) []corpus.Sequence {
	seqs := make([]corpus.Sequence, count)
	for i := range seqs {
		T := 3 + i%3
		seq := make(corpus.Sequence, T)
		for t := range seq {
			row := make([]float64, dim)
			for d := range row {
				row[d] = base + float64(i)
			}
			seq[t] = row
		}
		seqs[i] = seq
	}
	return seqs
}

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.Workers = 1
	return cfg
}
