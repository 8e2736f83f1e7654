// Copyright (c) 2026 The Lightcore developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package retarget adjusts the solution range once per era so that the block
// production rate converges to the configured slots per block.
package retarget

import (
	"math"

	"github.com/holiman/uint256"
	"github.com/pkg/errors"
)

// ErrOverflow is the panic value raised when retarget inputs violate the
// protocol constants. Valid params never trigger it.
var ErrOverflow = errors.New("retarget overflow")

// Retarget computes the solution range of the next era.
//
// The range moves by the ratio of expected to observed block production,
// prev * slotsInEra / (blocks * slotsPerBlock), and is clamped to
// [prev/maxFactor, prev*maxFactor]. An era without blocks widens the range by
// the full factor. The result saturates at MaxUint64 and never drops below
// minRange. All arithmetic is 256-bit integer, so every verifier agrees exactly.
func Retarget(prev, slotsInEra, blocks, slotsPerBlock, maxFactor, minRange uint64) uint64 {
	if slotsInEra == 0 || slotsPerBlock == 0 || maxFactor == 0 {
		panic(errors.WithMessagef(ErrOverflow, "slots in era %d, slots per block %d, max factor %d",
			slotsInEra, slotsPerBlock, maxFactor))
	}

	var (
		p     = uint256.NewInt(prev)
		f     = uint256.NewInt(maxFactor)
		upper = new(uint256.Int).Mul(p, f)
		lower = new(uint256.Int).Div(p, f)
		next  *uint256.Int
	)

	if blocks == 0 {
		next = upper
	} else {
		// both operand pairs fit in 128 bits, the products can't overflow 256 bits
		num := new(uint256.Int).Mul(p, uint256.NewInt(slotsInEra))
		den := new(uint256.Int).Mul(uint256.NewInt(blocks), uint256.NewInt(slotsPerBlock))
		next = num.Div(num, den)
		if next.Gt(upper) {
			next = upper
		} else if next.Lt(lower) {
			next = lower
		}
	}

	if !next.IsUint64() {
		return math.MaxUint64
	}
	if v := next.Uint64(); v > minRange {
		return v
	}
	return minRange
}
