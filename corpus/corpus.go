// Package corpus holds the per-word training sequences and the unlabeled test
// items consumed by model selection and recognition.
package corpus

import (
	"errors"
	"fmt"
	"sort"
)

// Sequence is an ordered list of feature vectors of a fixed dimensionality.
type Sequence = [][]float64

// ErrEmpty is returned when a corpus or a word carries no usable data.
var ErrEmpty = errors.New("corpus: empty")

// Corpus is a read-only view over the training sequences of every word.
type Corpus struct {
	words     []string
	sequences map[string][]Sequence
	dim       int
}

// New validates data and builds a Corpus. Words are ordered lexically; that
// order is the iteration order used everywhere downstream.
func New(data map[string][]Sequence) (*Corpus, error) {
	if len(data) == 0 {
		return nil, ErrEmpty
	}
	c := &Corpus{
		sequences: make(map[string][]Sequence, len(data)),
		dim:       -1,
	}
	for word, seqs := range data {
		if len(seqs) == 0 {
			return nil, fmt.Errorf("word %q: %w", word, ErrEmpty)
		}
		for i, seq := range seqs {
			if err := c.checkSequence(seq); err != nil {
				return nil, fmt.Errorf("word %q sequence %d: %w", word, i, err)
			}
		}
		c.words = append(c.words, word)
		c.sequences[word] = seqs
	}
	sort.Strings(c.words)
	return c, nil
}

func (c *Corpus) checkSequence(seq Sequence) error {
	if len(seq) == 0 {
		return fmt.Errorf("no frames: %w", ErrEmpty)
	}
	for t, frame := range seq {
		if c.dim < 0 {
			c.dim = len(frame)
		}
		if len(frame) != c.dim || c.dim == 0 {
			return fmt.Errorf("frame %d has dimension %d, want %d", t, len(frame), c.dim)
		}
	}
	return nil
}

// Words returns the vocabulary in its natural order.
func (c *Corpus) Words() []string {
	out := make([]string, len(c.words))
	copy(out, c.words)
	return out
}

// Len returns the vocabulary size.
func (c *Corpus) Len() int { return len(c.words) }

// Dim returns the feature dimensionality shared by every frame.
func (c *Corpus) Dim() int { return c.dim }

// Sequences returns the training sequences of word.
func (c *Corpus) Sequences(word string) ([]Sequence, bool) {
	seqs, ok := c.sequences[word]
	return seqs, ok
}

// XLengths returns the concatenated observations of word together with the
// per-sequence lengths.
func (c *Corpus) XLengths(word string) ([][]float64, []int, bool) {
	seqs, ok := c.sequences[word]
	if !ok {
		return nil, nil, false
	}
	X, lengths := Concat(seqs)
	return X, lengths, true
}

// CombineSequences concatenates the sequences selected by idx.
// sum(lengths) == len(X) and len(lengths) == len(idx).
func CombineSequences(idx []int, seqs []Sequence) ([][]float64, []int) {
	var X [][]float64
	lengths := make([]int, 0, len(idx))
	for _, i := range idx {
		X = append(X, seqs[i]...)
		lengths = append(lengths, len(seqs[i]))
	}
	return X, lengths
}

// Concat concatenates every sequence in order.
func Concat(seqs []Sequence) ([][]float64, []int) {
	idx := make([]int, len(seqs))
	for i := range idx {
		idx[i] = i
	}
	return CombineSequences(idx, seqs)
}
