package util

// Set holds comparable values without duplicates
type Set[K comparable] map[K]struct{}

// SetOf builds a set from the given elements, collapsing duplicates
func SetOf[K comparable](elements ...K) Set[K] {
	s := make(Set[K], len(elements))
	for _, elem := range elements {
		s.Add(elem)
	}
	return s
}

// Add inserts key into the set
func (s Set[K]) Add(key K) {
	s[key] = struct{}{}
}

// Remove deletes key from the set
func (s Set[K]) Remove(key K) {
	delete(s, key)
}

// Contains reports whether key is a member of the set
func (s Set[K]) Contains(key K) bool {
	_, ok := s[key]
	return ok
}
