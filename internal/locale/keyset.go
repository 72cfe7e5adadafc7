package locale

import "sort"

// KeySet is a set of dictionary keys.
type KeySet map[string]struct{}

// NewKeySet returns a set holding keys.
func NewKeySet(keys ...string) KeySet {
	s := make(KeySet, len(keys))
	s.Add(keys...)
	return s
}

// Add inserts keys into the set.
func (s KeySet) Add(keys ...string) {
	for _, k := range keys {
		s[k] = struct{}{}
	}
}

// Has reports whether key is in the set.
func (s KeySet) Has(key string) bool {
	_, ok := s[key]
	return ok
}

// Union returns a new set holding the keys of every given set.
func Union(sets ...KeySet) KeySet {
	size := 0
	for _, s := range sets {
		size += len(s)
	}

	out := make(KeySet, size)
	for _, s := range sets {
		for k := range s {
			out[k] = struct{}{}
		}
	}
	return out
}

// Difference returns the keys of s that are not in other, sorted.
func (s KeySet) Difference(other KeySet) []string {
	var diff []string
	for k := range s {
		if !other.Has(k) {
			diff = append(diff, k)
		}
	}
	sort.Strings(diff)
	return diff
}

// Sorted returns the keys in lexical order.
func (s KeySet) Sorted() []string {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
