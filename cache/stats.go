// Copyright (c) 2026 The Lightcore developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package cache collects cache statistics.
package cache

import "sync/atomic"

// Stats counts cache hits and misses. It's safe for concurrent use.
type Stats struct {
	hit, miss atomic.Int64
	rate      atomic.Int32 // hit rate in permille at the last Stats call
}

// Hit records a hit and returns the hits so far.
func (s *Stats) Hit() int64 { return s.hit.Add(1) }

// Miss records a miss and returns the misses so far.
func (s *Stats) Miss() int64 { return s.miss.Add(1) }

// Stats returns the hits and misses, and whether the hit rate moved
// since the previous call.
func (s *Stats) Stats() (changed bool, hit, miss int64) {
	hit, miss = s.hit.Load(), s.miss.Load()

	var rate int32
	if lookups := hit + miss; lookups > 0 {
		rate = int32(hit * 1000 / lookups)
	}
	return s.rate.Swap(rate) != rate, hit, miss
}
