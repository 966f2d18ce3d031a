package varstore

import "sort"

// Store is an in-memory name -> value mapping.
type Store struct {
	vars map[string]any
}

// New creates a new, empty variable store.
func New() *Store {
	return &Store{vars: make(map[string]any)}
}

// Set binds name to v, replacing any previous binding.
func (s *Store) Set(name string, v any) {
	s.vars[name] = v
}

// Get returns the value bound to name.
func (s *Store) Get(name string) (any, bool) {
	v, ok := s.vars[name]
	return v, ok
}

// Len returns the number of bound names.
func (s *Store) Len() int {
	return len(s.vars)
}

// Names returns the bound names in sorted order.
func (s *Store) Names() []string {
	names := make([]string, 0, len(s.vars))
	for name := range s.vars {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
