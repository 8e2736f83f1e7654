// Copyright (c) 2026 The Lightcore developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package co

import (
	"sync"
)

// Waiter provides a channel to wait for the next broadcast.
type Waiter interface {
	C() <-chan struct{}
}

// Signal is a channel based rendezvous point for goroutines waiting for an event.
// A waiter never misses a broadcast that happens between two calls to C, but may
// wake once more than needed, so callers re-check what they wait for.
type Signal struct {
	mu sync.Mutex
	ch chan struct{}
}

func (s *Signal) current() chan struct{} {
	if s.ch == nil {
		s.ch = make(chan struct{})
	}
	return s.ch
}

// Broadcast wakes all waiters.
func (s *Signal) Broadcast() {
	s.mu.Lock()
	close(s.current())
	s.ch = make(chan struct{})
	s.mu.Unlock()
}

// NewWaiter creates a waiter.
func (s *Signal) NewWaiter() Waiter {
	s.mu.Lock()
	defer s.mu.Unlock()
	return &waiter{s: s, ref: s.current()}
}

type waiter struct {
	s   *Signal
	ref chan struct{}
}

func (w *waiter) C() <-chan struct{} {
	w.s.mu.Lock()
	defer w.s.mu.Unlock()

	ch := w.ref
	w.ref = w.s.current()
	return ch
}
