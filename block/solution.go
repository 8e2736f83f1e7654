// Copyright (c) 2026 The Lightcore developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package block

import (
	"fmt"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/spacetimechain/lightcore/spacetime"
)

// Solution is a farmer's eligibility proof for a slot: an audit tag of an encoded piece under the
// current salt, a VRF proof over the slot's global challenge, and a signature binding them.
//
// Field order is part of the wire format.
type Solution struct {
	PublicKey  []byte        // compressed secp256k1 public key, 33 bytes
	PieceIndex uint64        // index of the audited piece in the archived history
	Encoding   []byte        // the encoded piece, opaque to this package
	Tag        spacetime.Tag // audit tag of Encoding under the salt
	Proof      []byte        // VRF proof over the global challenge, 81 bytes
	Signature  []byte        // recoverable secp256k1 signature over SigningHash, 65 bytes
}

// IsEmpty returns whether the solution carries nothing, which is the case for anchor headers.
func (s *Solution) IsEmpty() bool {
	return len(s.PublicKey) == 0 &&
		len(s.Encoding) == 0 &&
		len(s.Proof) == 0 &&
		len(s.Signature) == 0 &&
		s.PieceIndex == 0 &&
		s.Tag == spacetime.Tag{}
}

// SigningHash computes hash of all solution fields excluding the signature.
func (s *Solution) SigningHash() spacetime.Bytes32 {
	hw := spacetime.NewBlake2b()
	rlp.Encode(hw, []any{
		s.PublicKey,
		s.PieceIndex,
		s.Encoding,
		s.Tag,
		s.Proof,
	})
	var h spacetime.Bytes32
	hw.Sum(h[:0])
	return h
}

// Copy returns a deep copy of the solution.
func (s *Solution) Copy() Solution {
	return Solution{
		PublicKey:  append([]byte(nil), s.PublicKey...),
		PieceIndex: s.PieceIndex,
		Encoding:   append([]byte(nil), s.Encoding...),
		Tag:        s.Tag,
		Proof:      append([]byte(nil), s.Proof...),
		Signature:  append([]byte(nil), s.Signature...),
	}
}

func (s *Solution) String() string {
	return fmt.Sprintf(`Solution:
		PublicKey:	0x%x
		PieceIndex:	%v
		Encoding:	%d bytes
		Tag:		%v
		Proof:		0x%x
		Signature:	0x%x`, s.PublicKey, s.PieceIndex, len(s.Encoding), s.Tag, s.Proof, s.Signature)
}
