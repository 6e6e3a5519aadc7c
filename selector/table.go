package selector

// Table maps each word to its winning model. Words keep insertion order,
// which is the order ties are broken in during recognition. A Table is not
// modified after it is built and may be shared between goroutines.
type Table struct {
	words  []string
	models map[string]Model
}

// NewTable returns an empty table.
func NewTable() *Table {
	return &Table{models: make(map[string]Model)}
}

// Add records m for word. A nil model is ignored; words without a model are
// absent from the table.
func (t *Table) Add(word string, m Model) {
	if m == nil {
		return
	}
	if _, ok := t.models[word]; !ok {
		t.words = append(t.words, word)
	}
	t.models[word] = m
}

// Words returns the words in insertion order.
func (t *Table) Words() []string {
	out := make([]string, len(t.words))
	copy(out, t.words)
	return out
}

// Model returns the model of word.
func (t *Table) Model(word string) (Model, bool) {
	m, ok := t.models[word]
	return m, ok
}

// Len returns the number of words with a model.
func (t *Table) Len() int { return len(t.words) }
