package corpus

// Item is one test sequence. Label is the expected word and may be empty
// when the item is unlabeled.
type Item struct {
	Label    string
	Sequence Sequence
}

// TestSet is an ordered list of test items.
type TestSet struct {
	Items []Item
}

// Len returns the number of items.
func (ts *TestSet) Len() int { return len(ts.Items) }

// ItemXLengths returns the observations of item i in concatenated form.
func (ts *TestSet) ItemXLengths(i int) ([][]float64, []int) {
	seq := ts.Items[i].Sequence
	return seq, []int{len(seq)}
}

// Labels returns the expected word of every item in order.
func (ts *TestSet) Labels() []string {
	out := make([]string, len(ts.Items))
	for i, it := range ts.Items {
		out[i] = it.Label
	}
	return out
}
