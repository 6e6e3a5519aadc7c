package selector

import (
	"fmt"

	"github.com/ieee0824/signhmm/internal/mathutil"
)

// Candidate is the outcome of evaluating one state count.
// Score is the ranking value: the best candidate has the highest Score.
// Criterion is the strategy's raw objective before any sign inversion.
type Candidate struct {
	States    int
	Criterion float64
	Score     float64
	Model     Model
	Err       error
}

// OK reports whether the candidate produced a usable model with a finite score.
func (c Candidate) OK() bool {
	return c.Err == nil && c.Model != nil && mathutil.Finite(c.Score)
}

func failed(n int, err error) Candidate {
	return Candidate{States: n, Err: err}
}

// scored builds a successful candidate, or a failed one when the criterion
// or the ranking score is NaN or infinite.
func scored(n int, criterion, score float64, m Model) Candidate {
	if !mathutil.Finite(criterion) || !mathutil.Finite(score) {
		return failed(n, fmt.Errorf("%w: %g", errNonFinite, criterion))
	}
	return Candidate{States: n, Criterion: criterion, Score: score, Model: m}
}

// Best returns the successful candidate with the highest Score. Ties keep the
// earliest candidate. ok is false when no candidate succeeded.
func Best(cands []Candidate) (best Candidate, ok bool) {
	for _, c := range cands {
		if !c.OK() {
			continue
		}
		if !ok || c.Score > best.Score {
			best, ok = c, true
		}
	}
	return best, ok
}

func selectBest(cands []Candidate) Model {
	best, ok := Best(cands)
	if !ok {
		return nil
	}
	return best.Model
}
