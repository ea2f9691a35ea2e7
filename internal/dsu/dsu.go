// Package dsu provides a disjoint-set (union-find) forest keyed by any
// comparable identity. Keys are created lazily: a key that was never
// unioned is its own singleton set.
package dsu

// Set is a disjoint-set forest with path compression and union by size.
// The zero value is not usable; call New.
type Set[K comparable] struct {
	parent map[K]K
	size   map[K]int
}

// New creates an empty disjoint-set forest.
func New[K comparable]() *Set[K] {
	return &Set[K]{
		parent: make(map[K]K),
		size:   make(map[K]int),
	}
}

// Find returns the representative of the set containing key.
func (s *Set[K]) Find(key K) K {
	parent, ok := s.parent[key]
	if !ok || parent == key {
		return key
	}

	root := s.Find(parent)
	s.parent[key] = root // Path compression
	return root
}

// Size returns the number of keys in the set containing key.
func (s *Set[K]) Size(key K) int {
	if n, ok := s.size[s.Find(key)]; ok {
		return n
	}
	return 1
}

// Union merges the sets containing a and b and returns the new representative.
// The larger set's root is kept; on a tie the root of a wins.
func (s *Set[K]) Union(a, b K) K {
	ra, rb := s.Find(a), s.Find(b)
	if ra == rb {
		return ra
	}

	na, nb := s.Size(ra), s.Size(rb)
	if na < nb {
		ra, rb = rb, ra
	}

	s.parent[rb] = ra
	s.size[ra] = na + nb
	delete(s.size, rb)
	return ra
}

// Connected reports whether a and b belong to the same set.
func (s *Set[K]) Connected(a, b K) bool {
	return s.Find(a) == s.Find(b)
}

// Len returns the number of keys that have taken part in a union.
func (s *Set[K]) Len() int {
	return len(s.parent) + len(s.size)
}
