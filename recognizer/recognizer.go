// Package recognizer classifies test sequences against a table of per-word models.
package recognizer

import (
	"math"

	"github.com/ieee0824/signhmm/corpus"
	"github.com/ieee0824/signhmm/selector"
)

// Item is one sequence to classify, in concatenated form.
type Item struct {
	X       [][]float64
	Lengths []int
}

// Result holds, per item, the log-likelihood of every word and the best guess.
// Both slices are index-aligned with the items passed to Recognize.
type Result struct {
	Probabilities []map[string]float64
	Guesses       []string
}

// Recognize scores every item against every model in table. A model that
// fails to score an item records -Inf for it, so each profile always has the
// table's full key set. The guess is the highest-scoring word; ties go to the
// word that comes first in table order. An empty table guesses "".
func Recognize(table *selector.Table, items []Item) Result {
	words := table.Words()
	res := Result{
		Probabilities: make([]map[string]float64, len(items)),
		Guesses:       make([]string, len(items)),
	}
	for i, it := range items {
		profile := make(map[string]float64, len(words))
		guess, best := "", math.Inf(-1)
		for j, w := range words {
			m, _ := table.Model(w)
			ll, err := m.Score(it.X, it.Lengths)
			if err != nil || math.IsNaN(ll) {
				ll = math.Inf(-1)
			}
			profile[w] = ll
			if j == 0 || ll > best {
				guess, best = w, ll
			}
		}
		res.Probabilities[i] = profile
		res.Guesses[i] = guess
	}
	return res
}

// Items converts a test set into recognizer items.
func Items(ts *corpus.TestSet) []Item {
	items := make([]Item, ts.Len())
	for i := range items {
		X, lengths := ts.ItemXLengths(i)
		items[i] = Item{X: X, Lengths: lengths}
	}
	return items
}
