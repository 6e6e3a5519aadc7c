package recognizer

import (
	"fmt"
	"io"
)

// Miss is one misclassified item.
type Miss struct {
	Index int
	Want  string
	Got   string
}

// Report summarises recognition accuracy.
type Report struct {
	Total  int
	Errors int
	WER    float64 // Errors / Total
	Misses []Miss
}

// Evaluate compares the guesses in res against labels.
func Evaluate(res Result, labels []string) (Report, error) {
	if len(labels) != len(res.Guesses) {
		return Report{}, fmt.Errorf("recognizer: %d labels for %d guesses", len(labels), len(res.Guesses))
	}
	r := Report{Total: len(labels)}
	for i, want := range labels {
		if got := res.Guesses[i]; got != want {
			r.Misses = append(r.Misses, Miss{Index: i, Want: want, Got: got})
		}
	}
	r.Errors = len(r.Misses)
	if r.Total > 0 {
		r.WER = float64(r.Errors) / float64(r.Total)
	}
	return r, nil
}

// Write prints the summary followed by one line per miss.
func (r Report) Write(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "WER = %.4f\nTotal correct: %d out of %d\n", r.WER, r.Total-r.Errors, r.Total); err != nil {
		return err
	}
	for _, m := range r.Misses {
		if _, err := fmt.Fprintf(w, "%5d: %-20s *%s\n", m.Index, m.Want, m.Got); err != nil {
			return err
		}
	}
	return nil
}
