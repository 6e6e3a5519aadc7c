package hmm

import (
	"encoding/gob"
	"fmt"
	"io"

	"github.com/ieee0824/signhmm/selector"
)

// serializedTable keeps the word order alongside the models.
type serializedTable struct {
	Words  []string
	Models map[string]*Model
}

// SaveTable serializes a table of *Model values using gob encoding.
func SaveTable(w io.Writer, t *selector.Table) error {
	st := serializedTable{Models: make(map[string]*Model, t.Len())}
	for _, word := range t.Words() {
		m, _ := t.Model(word)
		hm, ok := m.(*Model)
		if !ok {
			return fmt.Errorf("hmm: word %q has a %T model", word, m)
		}
		st.Words = append(st.Words, word)
		st.Models[word] = hm
	}
	return gob.NewEncoder(w).Encode(st)
}

// LoadTable deserializes a table written by SaveTable.
func LoadTable(r io.Reader) (*selector.Table, error) {
	var st serializedTable
	if err := gob.NewDecoder(r).Decode(&st); err != nil {
		return nil, err
	}
	t := selector.NewTable()
	for _, word := range st.Words {
		m, ok := st.Models[word]
		if !ok {
			return nil, fmt.Errorf("hmm: table lists %q without a model", word)
		}
		m.prepare()
		t.Add(word, m)
	}
	return t, nil
}
