package engine

// ListenerID identifies a listener added to a Signal so it can be removed later.
type ListenerID uint64

type listener[T any] struct {
	id ListenerID
	fn func(T)
}

// Signal is a multicast event carrying one argument. Listeners run in the
// order they were added.
type Signal[T any] struct {
	listeners []listener[T]
	nextID    ListenerID
}

// AddListener registers fn and returns an ID for RemoveListener. A nil fn is
// ignored and yields ID 0.
func (s *Signal[T]) AddListener(fn func(T)) ListenerID {
	if fn == nil {
		return 0
	}
	s.nextID++
	s.listeners = append(s.listeners, listener[T]{id: s.nextID, fn: fn})
	return s.nextID
}

// RemoveListener drops the listener with the given ID. Unknown IDs are ignored.
func (s *Signal[T]) RemoveListener(id ListenerID) {
	for i, l := range s.listeners {
		if l.id == id {
			s.listeners = append(s.listeners[:i], s.listeners[i+1:]...)
			return
		}
	}
}

// Invoke calls every listener with arg.
func (s *Signal[T]) Invoke(arg T) {
	for _, l := range s.listeners {
		l.fn(arg)
	}
}
