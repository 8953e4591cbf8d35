package reactive

// Store is a keyed container of signals.
type Store[V any] struct {
	rt      *Runtime
	equal   func(a, b V) bool
	signals map[string]*Signal[V]
	keys    []string
}

func NewStore[V any](rt *Runtime, equal func(a, b V) bool) *Store[V] {
	return &Store[V]{
		rt:      rt,
		equal:   equal,
		signals: make(map[string]*Signal[V]),
	}
}

// Declare registers key with an initial value. Declaring an existing key
// keeps its current value and returns false.
func (s *Store[V]) Declare(key string, initial V) bool {
	if _, ok := s.signals[key]; ok {
		return false
	}
	s.signals[key] = NewSignalFunc(s.rt, initial, s.equal)
	s.keys = append(s.keys, key)
	return true
}

func (s *Store[V]) Has(key string) bool {
	_, ok := s.signals[key]
	return ok
}

// Get returns the value of key, tracking it inside a reaction.
func (s *Store[V]) Get(key string) (ret V, ok bool) {
	signal, ok := s.signals[key]
	if !ok {
		return
	}
	return signal.Read(), true
}

// Set writes a declared key and reports whether it was declared.
func (s *Store[V]) Set(key string, value V) bool {
	signal, ok := s.signals[key]
	if !ok {
		return false
	}
	signal.Write(value)
	return true
}

// Keys returns the declared keys in declaration order.
func (s *Store[V]) Keys() []string {
	return append([]string(nil), s.keys...)
}
