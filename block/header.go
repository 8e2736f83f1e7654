// Copyright (c) 2026 The Lightcore developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package block

import (
	"fmt"
	"io"
	"sync/atomic"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/spacetimechain/lightcore/spacetime"
)

// Header is a block header of the space-time chain.
// It's immutable.
type Header struct {
	body headerBody

	cache struct {
		signingHash atomic.Value
		hash        atomic.Value
	}
}

// headerBody body of header. Field order and integer widths are the wire format.
type headerBody struct {
	ParentHash spacetime.Bytes32
	Slot       uint64
	Solution   Solution
	Randomness spacetime.Bytes32 // pre-digest randomness commitment, the VRF output of the solution
	Digests    []Digest

	Seal []byte
}

// ParentHash returns hash of the parent header.
func (h *Header) ParentHash() spacetime.Bytes32 {
	return h.body.ParentHash
}

// Slot returns the slot number the header was produced in.
func (h *Header) Slot() uint64 {
	return h.body.Slot
}

// Solution returns a copy of the embedded solution.
func (h *Header) Solution() Solution {
	return h.body.Solution.Copy()
}

// Randomness returns the randomness committed by the header.
func (h *Header) Randomness() spacetime.Bytes32 {
	return h.body.Randomness
}

// Digests returns the digest items.
func (h *Header) Digests() []Digest {
	ds := make([]Digest, 0, len(h.body.Digests))
	for _, d := range h.body.Digests {
		ds = append(ds, Digest{d.Kind, append([]byte(nil), d.Data...)})
	}
	return ds
}

// Seal returns the header signature.
func (h *Header) Seal() []byte {
	return append([]byte(nil), h.body.Seal...)
}

// Hash computes hash of the header, which identifies it.
func (h *Header) Hash() (hash spacetime.Bytes32) {
	if cached := h.cache.hash.Load(); cached != nil {
		return cached.(spacetime.Bytes32)
	}
	defer func() { h.cache.hash.Store(hash) }()

	hw := spacetime.NewBlake2b()
	rlp.Encode(hw, &h.body)
	hw.Sum(hash[:0])
	return
}

// SigningHash computes hash of all header fields excluding the seal, a.k.a the pre-header hash.
func (h *Header) SigningHash() (hash spacetime.Bytes32) {
	if cached := h.cache.signingHash.Load(); cached != nil {
		return cached.(spacetime.Bytes32)
	}
	defer func() { h.cache.signingHash.Store(hash) }()

	hw := spacetime.NewBlake2b()
	rlp.Encode(hw, []any{
		h.body.ParentHash,
		h.body.Slot,
		&h.body.Solution,
		h.body.Randomness,
		h.body.Digests,
	})
	hw.Sum(hash[:0])
	return
}

// WithSeal create a new Header object with seal set.
func (h *Header) WithSeal(seal []byte) *Header {
	cpy := Header{body: h.body}
	cpy.body.Seal = append([]byte(nil), seal...)
	return &cpy
}

// EncodeRLP implements rlp.Encoder
func (h *Header) EncodeRLP(w io.Writer) error {
	return rlp.Encode(w, &h.body)
}

// DecodeRLP implements rlp.Decoder.
func (h *Header) DecodeRLP(s *rlp.Stream) error {
	var body headerBody

	if err := s.Decode(&body); err != nil {
		return err
	}
	*h = Header{body: body}
	return nil
}

func (h *Header) String() string {
	return fmt.Sprintf(`Header(%v):
	ParentHash:	%v
	Slot:		%v
	Randomness:	%v
	Digests:	%d
	%v
	Seal:		0x%x`, h.Hash(), h.body.ParentHash, h.body.Slot, h.body.Randomness,
		len(h.body.Digests), h.body.Solution.String(), h.body.Seal)
}
