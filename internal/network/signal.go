package network

import (
	"sort"
	"sync"
)

// Listener receives the id of the module raising an execute event.
type Listener func(ModuleID)

// signal is a concurrency-safe list of listeners. Modules raise events from
// worker goroutines while the owning goroutine may connect or disconnect.
type signal struct {
	mu        sync.RWMutex
	next      int
	listeners map[int]Listener
}

func (s *signal) connect(l Listener) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.listeners == nil {
		s.listeners = make(map[int]Listener)
	}
	key := s.next
	s.next++
	s.listeners[key] = l

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.listeners, key)
			s.mu.Unlock()
		})
	}
}

func (s *signal) emit(id ModuleID) {
	s.mu.RLock()
	keys := make([]int, 0, len(s.listeners))
	for k := range s.listeners {
		keys = append(keys, k)
	}
	snapshot := make([]Listener, 0, len(keys))
	sort.Ints(keys)
	for _, k := range keys {
		snapshot = append(snapshot, s.listeners[k])
	}
	s.mu.RUnlock()

	for _, l := range snapshot {
		l(id)
	}
}
