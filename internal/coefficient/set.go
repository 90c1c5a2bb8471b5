package coefficient

import "sort"

// Set is a deduplicated collection of kinds.
type Set map[Kind]struct{}

// NewSet builds a set from the given kinds, dropping duplicates.
func NewSet(kinds ...Kind) Set {
	s := make(Set, len(kinds))
	for _, k := range kinds {
		s.Add(k)
	}
	return s
}

// Add inserts k.
func (s Set) Add(k Kind) {
	s[k] = struct{}{}
}

// Has reports whether k is in the set.
func (s Set) Has(k Kind) bool {
	_, ok := s[k]
	return ok
}

// Len returns the number of distinct kinds.
func (s Set) Len() int {
	return len(s)
}

// Sorted returns the kinds in declaration order.
func (s Set) Sorted() []Kind {
	kinds := make([]Kind, 0, len(s))
	for k := range s {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}

// Equal reports whether both sets hold the same kinds.
func (s Set) Equal(other Set) bool {
	if len(s) != len(other) {
		return false
	}
	for k := range s {
		if !other.Has(k) {
			return false
		}
	}
	return true
}
