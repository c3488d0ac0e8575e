// Package killswitch holds the stop flag polled by the crafting loops.
package killswitch

import (
	"sync"
	"sync/atomic"
)

// Switch is a process-wide stop flag. One writer (the hotkey listener or
// Bot.Stop), many pollers. Staleness of one poll is fine.
type Switch struct {
	on atomic.Bool

	mu        sync.Mutex
	observers []func(engaged bool)
}

// New returns a released switch
func New() *Switch {
	return &Switch{}
}

// Engaged reports whether crafting must stop
func (s *Switch) Engaged() bool {
	return s.on.Load()
}

// Toggle flips the flag and returns the new state
func (s *Switch) Toggle() bool {
	for {
		old := s.on.Load()
		if s.on.CompareAndSwap(old, !old) {
			s.notify(!old)
			return !old
		}
	}
}

// Engage sets the flag
func (s *Switch) Engage() {
	if s.on.CompareAndSwap(false, true) {
		s.notify(true)
	}
}

// Release clears the flag
func (s *Switch) Release() {
	if s.on.CompareAndSwap(true, false) {
		s.notify(false)
	}
}

// OnChange registers fn to be called after every state change
func (s *Switch) OnChange(fn func(engaged bool)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers = append(s.observers, fn)
}

func (s *Switch) notify(engaged bool) {
	s.mu.Lock()
	observers := append([]func(bool){}, s.observers...)
	s.mu.Unlock()

	for _, fn := range observers {
		fn(engaged)
	}
}

// String renders the flag the way the status line shows it
func (s *Switch) String() string {
	if s.Engaged() {
		return "Killswitch: ON"
	}
	return "Killswitch: OFF"
}
