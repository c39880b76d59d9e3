package services

import "strings"

// SubstanceSet is a set of normalized terms that remembers the order in which
// terms were first added. Set operations keep the receiver's order.
type SubstanceSet struct {
	terms []string
	index map[string]struct{}
}

// NewSubstanceSet returns a set holding terms.
func NewSubstanceSet(terms ...string) *SubstanceSet {
	s := &SubstanceSet{index: make(map[string]struct{}, len(terms))}
	for _, t := range terms {
		s.Add(t)
	}
	return s
}

// Add inserts term and reports whether it was new. Empty terms are ignored.
func (s *SubstanceSet) Add(term string) bool {
	if term == "" {
		return false
	}
	if _, ok := s.index[term]; ok {
		return false
	}
	s.index[term] = struct{}{}
	s.terms = append(s.terms, term)
	return true
}

func (s *SubstanceSet) Has(term string) bool {
	if s == nil {
		return false
	}
	_, ok := s.index[term]
	return ok
}

func (s *SubstanceSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.terms)
}

// Terms returns a copy of the terms in insertion order.
func (s *SubstanceSet) Terms() []string {
	if s == nil {
		return []string{}
	}
	out := make([]string, len(s.terms))
	copy(out, s.terms)
	return out
}

// Intersect returns the terms of s that are also in other.
func (s *SubstanceSet) Intersect(other *SubstanceSet) *SubstanceSet {
	out := NewSubstanceSet()
	for _, t := range s.Terms() {
		if other.Has(t) {
			out.Add(t)
		}
	}
	return out
}

// Difference returns the terms of s that are not in other.
func (s *SubstanceSet) Difference(other *SubstanceSet) *SubstanceSet {
	out := NewSubstanceSet()
	for _, t := range s.Terms() {
		if !other.Has(t) {
			out.Add(t)
		}
	}
	return out
}

// Equal reports whether both sets hold the same terms, in any order.
func (s *SubstanceSet) Equal(other *SubstanceSet) bool {
	if s.Len() != other.Len() {
		return false
	}
	for _, t := range s.Terms() {
		if !other.Has(t) {
			return false
		}
	}
	return true
}

// Join concatenates the terms in insertion order.
func (s *SubstanceSet) Join(sep string) string {
	return strings.Join(s.Terms(), sep)
}

// Head returns at most n terms in insertion order.
func (s *SubstanceSet) Head(n int) []string {
	terms := s.Terms()
	if n >= 0 && len(terms) > n {
		terms = terms[:n]
	}
	return terms
}
