package selector

// Constant always fits NConstant states. It is the baseline the data-driven
// strategies are judged against.
type Constant struct {
	*Base
}

// Candidates returns the single fixed-size candidate.
func (s *Constant) Candidates() []Candidate {
	n := s.cfg.NConstant
	m, err := s.baseModel(n)
	if err != nil {
		return []Candidate{failed(n, err)}
	}
	return []Candidate{{States: n, Model: m}}
}

// Select returns the NConstant-state model, or nil if it cannot be fitted.
func (s *Constant) Select() Model {
	return selectBest(s.Candidates())
}
