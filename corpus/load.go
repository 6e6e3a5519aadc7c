package corpus

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// fileFormat is the on-disk layout. JSON files decode too.
type fileFormat struct {
	Words map[string][]Sequence `yaml:"words"`
	Test  []testEntry           `yaml:"test"`
}

type testEntry struct {
	Label  string      `yaml:"label"`
	Frames [][]float64 `yaml:"frames"`
}

// Load reads a corpus and its optional test section.
func Load(r io.Reader) (*Corpus, *TestSet, error) {
	var ff fileFormat
	if err := yaml.NewDecoder(r).Decode(&ff); err != nil {
		return nil, nil, fmt.Errorf("decode corpus: %w", err)
	}
	c, err := New(ff.Words)
	if err != nil {
		return nil, nil, err
	}
	ts := &TestSet{}
	for i, it := range ff.Test {
		if len(it.Frames) == 0 {
			return nil, nil, fmt.Errorf("test item %d: %w", i, ErrEmpty)
		}
		for t, frame := range it.Frames {
			if len(frame) != c.Dim() {
				return nil, nil, fmt.Errorf("test item %d frame %d has dimension %d, want %d", i, t, len(frame), c.Dim())
			}
		}
		ts.Items = append(ts.Items, Item{Label: it.Label, Sequence: it.Frames})
	}
	return c, ts, nil
}

// LoadFile reads a corpus file from path.
func LoadFile(path string) (*Corpus, *TestSet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()
	return Load(f)
}

// Save writes c and ts in the format read by Load.
func Save(w io.Writer, c *Corpus, ts *TestSet) error {
	var ff fileFormat
	ff.Words = make(map[string][]Sequence, c.Len())
	for _, word := range c.Words() {
		ff.Words[word], _ = c.Sequences(word)
	}
	if ts != nil {
		for _, it := range ts.Items {
			ff.Test = append(ff.Test, testEntry{Label: it.Label, Frames: it.Sequence})
		}
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(&ff); err != nil {
		return fmt.Errorf("encode corpus: %w", err)
	}
	return enc.Close()
}
