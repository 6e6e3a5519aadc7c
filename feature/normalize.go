// Package feature holds per-frame transforms applied to sequences before
// model selection and recognition.
package feature

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/ieee0824/signhmm/corpus"
)

// minStd keeps constant dimensions from dividing by zero.
const minStd = 1e-8

// SubtractMean removes the sequence-level mean from each feature dimension in place.
func SubtractMean(seq corpus.Sequence) {
	if len(seq) == 0 {
		return
	}
	dim := len(seq[0])
	col := make([]float64, len(seq))
	for d := 0; d < dim; d++ {
		for t := range seq {
			col[t] = seq[t][d]
		}
		mean := stat.Mean(col, nil)
		for t := range seq {
			seq[t][d] -= mean
		}
	}
}

// Stats holds per-dimension statistics gathered over a corpus.
type Stats struct {
	Mean []float64
	Std  []float64
}

// ComputeStats gathers the mean and standard deviation of every dimension over
// all frames of all words.
func ComputeStats(c *corpus.Corpus) (Stats, error) {
	dim := c.Dim()
	if dim <= 0 {
		return Stats{}, errors.New("feature: corpus has no frames")
	}
	cols := make([][]float64, dim)
	for _, w := range c.Words() {
		X, _, _ := c.XLengths(w)
		for _, frame := range X {
			for d, v := range frame {
				cols[d] = append(cols[d], v)
			}
		}
	}
	s := Stats{Mean: make([]float64, dim), Std: make([]float64, dim)}
	for d := range cols {
		mean, variance := stat.MeanVariance(cols[d], nil)
		if math.IsNaN(variance) {
			variance = 0
		}
		s.Mean[d] = mean
		s.Std[d] = math.Max(math.Sqrt(variance), minStd)
	}
	return s, nil
}

// Apply returns a z-scored copy of seq.
func (s Stats) Apply(seq corpus.Sequence) corpus.Sequence {
	out := make(corpus.Sequence, len(seq))
	for t, frame := range seq {
		row := make([]float64, len(frame))
		for d, v := range frame {
			row[d] = (v - s.Mean[d]) / s.Std[d]
		}
		out[t] = row
	}
	return out
}

// Map returns a new corpus with fn applied to every sequence.
func Map(c *corpus.Corpus, fn func(corpus.Sequence) corpus.Sequence) (*corpus.Corpus, error) {
	data := make(map[string][]corpus.Sequence, c.Len())
	for _, w := range c.Words() {
		seqs, _ := c.Sequences(w)
		out := make([]corpus.Sequence, len(seqs))
		for i, seq := range seqs {
			out[i] = fn(seq)
		}
		data[w] = out
	}
	return corpus.New(data)
}

// MapTestSet returns a new test set with fn applied to every item.
func MapTestSet(ts *corpus.TestSet, fn func(corpus.Sequence) corpus.Sequence) *corpus.TestSet {
	out := &corpus.TestSet{Items: make([]corpus.Item, len(ts.Items))}
	for i, it := range ts.Items {
		out.Items[i] = corpus.Item{Label: it.Label, Sequence: fn(it.Sequence)}
	}
	return out
}
