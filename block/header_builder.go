// Copyright (c) 2026 The Lightcore developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package block

import (
	"github.com/spacetimechain/lightcore/spacetime"
)

// Builder to make it easy to build a header object.
type Builder struct {
	body headerBody
}

// ParentHash set parent hash.
func (b *Builder) ParentHash(hash spacetime.Bytes32) *Builder {
	b.body.ParentHash = hash
	return b
}

// Slot set slot number.
func (b *Builder) Slot(slot uint64) *Builder {
	b.body.Slot = slot
	return b
}

// Solution set the solution.
func (b *Builder) Solution(sol Solution) *Builder {
	b.body.Solution = sol.Copy()
	return b
}

// Randomness set the randomness commitment.
func (b *Builder) Randomness(r spacetime.Bytes32) *Builder {
	b.body.Randomness = r
	return b
}

// Digest add a digest item.
func (b *Builder) Digest(d Digest) *Builder {
	b.body.Digests = append(b.body.Digests, Digest{d.Kind, append([]byte(nil), d.Data...)})
	return b
}

// Build build an unsealed header object.
func (b *Builder) Build() *Header {
	body := b.body
	body.Digests = append([]Digest(nil), b.body.Digests...)
	return &Header{body: body}
}
