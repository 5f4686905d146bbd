package collections

type Set[V comparable] map[V]struct{}

// NewSet returns an empty set with room for size elements
func NewSet[V comparable](size int) Set[V] {
	return make(Set[V], size)
}

// Add an element to the set, reporting whether it was newly added
func (set Set[V]) Add(value V) bool {
	if set.Contains(value) {
		return false
	}
	set[value] = struct{}{}
	return true
}

// Contains returns whether the element exists within the set
func (set Set[V]) Contains(value V) bool {
	_, contains := set[value]
	return contains
}

func (set Set[V]) Len() int {
	return len(set)
}
