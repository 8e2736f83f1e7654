// Copyright (c) 2026 The Lightcore developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package retarget

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRetarget(t *testing.T) {
	tests := []struct {
		name                                    string
		prev, slots, blocks, spb, factor, floor uint64
		want                                    uint64
	}{
		{"on target", 1000, 60, 10, 6, 4, 1, 1000},
		{"too fast", 1000, 60, 20, 6, 4, 1, 500},
		{"too slow", 1000, 60, 5, 6, 4, 1, 2000},
		{"clamped up", 1000, 600, 1, 6, 4, 1, 4000},
		{"clamped down", 1000, 6, 100, 6, 4, 1, 250},
		{"no blocks", 1000, 60, 0, 6, 4, 1, 4000},
		{"floor", 10, 6, 100, 6, 4, 5, 5},
		{"saturated", math.MaxUint64 / 2, 600, 1, 6, 4, 1, math.MaxUint64},
		{"saturated no blocks", math.MaxUint64, 60, 0, 6, 4, 1, math.MaxUint64},
		{"zero prev", 0, 60, 10, 6, 4, 1, 1},
		{"rounds down", 1000, 60, 7, 6, 4, 1, 1428},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Retarget(tt.prev, tt.slots, tt.blocks, tt.spb, tt.factor, tt.floor)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRetargetBounded(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))
	for range 10000 {
		var (
			prev   = r.Uint64()>>r.UintN(64) + 1
			slots  = r.Uint64N(1<<20) + 1
			blocks = r.Uint64N(1 << 20)
			spb    = r.Uint64N(64) + 1
			factor = r.Uint64N(16) + 2
		)
		got := Retarget(prev, slots, blocks, spb, factor, 1)

		assert.GreaterOrEqual(t, got, prev/factor)
		if hi, overflow := mulOverflow(prev, factor); !overflow {
			assert.LessOrEqual(t, got, hi)
		}
		assert.GreaterOrEqual(t, got, uint64(1))
	}
}

func TestRetargetPanics(t *testing.T) {
	assert.PanicsWithError(t, "slots in era 0, slots per block 6, max factor 4: retarget overflow", func() {
		Retarget(1000, 0, 1, 6, 4, 1)
	})
	assert.Panics(t, func() { Retarget(1000, 60, 1, 0, 4, 1) })
	assert.Panics(t, func() { Retarget(1000, 60, 1, 6, 0, 1) })
}

func mulOverflow(a, b uint64) (uint64, bool) {
	if a != 0 && b > math.MaxUint64/a {
		return 0, true
	}
	return a * b, false
}
