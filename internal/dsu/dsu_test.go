package dsu

import "testing"

func TestSingletons(t *testing.T) {
	s := New[int]()

	if s.Find(7) != 7 {
		t.Errorf("Find(7) = %d, expected 7", s.Find(7))
	}
	if s.Size(7) != 1 {
		t.Errorf("Size(7) = %d, expected 1", s.Size(7))
	}
	if s.Connected(1, 2) {
		t.Error("fresh keys should not be connected")
	}
	if s.Len() != 0 {
		t.Errorf("Len() = %d, expected 0", s.Len())
	}
}

func TestUnion(t *testing.T) {
	tests := []struct {
		name   string
		pairs  [][2]int
		key    int
		size   int
		linked []int
	}{
		{
			name:   "single pair",
			pairs:  [][2]int{{1, 2}},
			key:    1,
			size:   2,
			linked: []int{2},
		},
		{
			name:   "chain",
			pairs:  [][2]int{{1, 2}, {2, 3}, {3, 4}},
			key:    4,
			size:   4,
			linked: []int{1, 2, 3},
		},
		{
			name:   "two sets joined",
			pairs:  [][2]int{{1, 2}, {3, 4}, {5, 6}, {2, 5}},
			key:    6,
			size:   4,
			linked: []int{1, 2, 5},
		},
		{
			name:   "repeated union",
			pairs:  [][2]int{{1, 2}, {1, 2}, {2, 1}},
			key:    2,
			size:   2,
			linked: []int{1},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := New[int]()
			for _, p := range tc.pairs {
				s.Union(p[0], p[1])
			}

			if got := s.Size(tc.key); got != tc.size {
				t.Errorf("Size(%d) = %d, expected %d", tc.key, got, tc.size)
			}
			for _, k := range tc.linked {
				if !s.Connected(tc.key, k) {
					t.Errorf("expected %d connected to %d", tc.key, k)
				}
			}
		})
	}
}

func TestUnionKeepsLargerRoot(t *testing.T) {
	s := New[string]()
	s.Union("a", "b")
	s.Union("a", "c")

	root := s.Find("a")
	if got := s.Union("z", "a"); got != root {
		t.Errorf("Union(z, a) root = %q, expected larger set root %q", got, root)
	}
	if s.Size("z") != 4 {
		t.Errorf("Size(z) = %d, expected 4", s.Size("z"))
	}
	if s.Connected("z", "q") {
		t.Error("z should not be connected to an unseen key")
	}
}

func TestLen(t *testing.T) {
	s := New[int]()
	s.Union(1, 2)
	s.Union(3, 4)
	s.Union(1, 3)

	if s.Len() != 4 {
		t.Errorf("Len() = %d, expected 4", s.Len())
	}
}
