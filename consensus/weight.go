// Copyright (c) 2026 The Lightcore developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package consensus

import (
	"github.com/holiman/uint256"

	"github.com/spacetimechain/lightcore/block"
	"github.com/spacetimechain/lightcore/solution"
)

// MaxQualityWeight is the weight QualityWeight gives a tag hitting the target exactly.
const MaxQualityWeight = 10

// WeightFunc returns the weight a verified header adds to its branch.
// It must be deterministic. A result of 0 counts as 1.
type WeightFunc func(header *block.Header, output *solution.Output, solutionRange uint64) uint64

// FlatWeight scores every valid header 1.
func FlatWeight(*block.Header, *solution.Output, uint64) uint64 {
	return 1
}

// QualityWeight scores a header from 1 to MaxQualityWeight by how close its
// tag lies to the target, relative to the solution range.
func QualityWeight(_ *block.Header, output *solution.Output, solutionRange uint64) uint64 {
	if solutionRange == 0 || output.Distance >= solutionRange {
		return 1
	}
	// 1 + (MaxQualityWeight-1) * (range-distance) / range
	q := uint256.NewInt(solutionRange - output.Distance)
	q.Mul(q, uint256.NewInt(MaxQualityWeight-1))
	q.Div(q, uint256.NewInt(solutionRange))
	return 1 + q.Uint64()
}
