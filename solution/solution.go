// Copyright (c) 2026 The Lightcore developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package solution verifies proof-of-space-time solutions.
//
// A solution is eligible for a slot when its audit tag, recomputed from the encoded piece and the
// current salt, lies within the solution range of a target. The target is the farmer's local challenge:
// the VRF output of the slot's global challenge under the farmer's key, so it can be neither chosen
// nor predicted by anyone else.
package solution

import (
	"encoding/binary"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/pkg/errors"
	"github.com/spacetimechain/lightcore/block"
	"github.com/spacetimechain/lightcore/spacetime"
	"github.com/vechain/go-ecvrf"
)

// Lengths of the solution's cryptographic fields.
const (
	PublicKeyLength = 33
	ProofLength     = 81
	SignatureLength = crypto.SignatureLength
)

var vrf = ecvrf.Secp256k1Sha256Tai

// Output is what a verified solution contributes to the chain.
type Output struct {
	Randomness spacetime.Bytes32 // VRF output of the global challenge
	Target     uint64            // the local challenge the tag is compared to
	Distance   uint64            // distance between tag and target
}

// CreateTag computes the audit tag of an encoded piece under the salt.
func CreateTag(encoding []byte, salt spacetime.Salt) spacetime.Tag {
	mac := spacetime.KeyedBlake2b(salt[:], encoding)
	return spacetime.BytesToTag(mac[:spacetime.TagLength])
}

// GlobalChallenge derives the challenge all farmers audit against in the slot.
func GlobalChallenge(randomness spacetime.Bytes32, slot uint64) spacetime.Bytes32 {
	return spacetime.Blake2b(randomness[:], binary.BigEndian.AppendUint64(nil, slot))
}

// Target converts a VRF output into the numeric target.
func Target(vrfOutput spacetime.Bytes32) uint64 {
	return binary.BigEndian.Uint64(vrfOutput[:8])
}

// Distance returns the distance between a and b on the wrapping u64 ring.
func Distance(a, b uint64) uint64 {
	d1 := a - b
	d2 := b - a
	return min(d1, d2)
}

// IsWithinRange reports whether tag is no further than solutionRange from target.
func IsWithinRange(tag spacetime.Tag, target, solutionRange uint64) bool {
	return Distance(tag.Uint64(), target) <= solutionRange
}

// Verify checks the solution against the consensus parameters of the slot.
// It's pure and safe for concurrent use.
func Verify(
	sol *block.Solution,
	slot uint64,
	salt spacetime.Salt,
	randomness spacetime.Bytes32,
	solutionRange uint64,
) (*Output, error) {
	if tag := CreateTag(sol.Encoding, salt); tag != sol.Tag {
		return nil, errors.WithMessagef(ErrInvalidTag, "want %v, have %v", tag, sol.Tag)
	}

	output, err := VerifyProof(sol.PublicKey, GlobalChallenge(randomness, slot), sol.Proof)
	if err != nil {
		return nil, err
	}

	target := Target(output)
	distance := Distance(sol.Tag.Uint64(), target)
	if distance > solutionRange {
		return nil, errors.WithMessagef(ErrOutsideSolutionRange, "distance %d, range %d", distance, solutionRange)
	}

	if err := VerifySignature(sol.SigningHash(), sol.Signature, sol.PublicKey); err != nil {
		return nil, err
	}

	return &Output{
		Randomness: output,
		Target:     target,
		Distance:   distance,
	}, nil
}

// VerifyProof validates the VRF proof of challenge under the compressed public key and returns the VRF output.
func VerifyProof(publicKey []byte, challenge spacetime.Bytes32, proof []byte) (spacetime.Bytes32, error) {
	if len(publicKey) != PublicKeyLength {
		return spacetime.Bytes32{}, errors.WithMessagef(ErrInvalidProof, "public key length: want %d, have %d", PublicKeyLength, len(publicKey))
	}
	if len(proof) != ProofLength {
		return spacetime.Bytes32{}, errors.WithMessagef(ErrInvalidProof, "proof length: want %d, have %d", ProofLength, len(proof))
	}
	pub, err := crypto.DecompressPubkey(publicKey)
	if err != nil {
		return spacetime.Bytes32{}, errors.WithMessagef(ErrInvalidProof, "public key: %v", err)
	}
	beta, err := vrf.Verify(pub, challenge[:], proof)
	if err != nil {
		return spacetime.Bytes32{}, errors.WithMessagef(ErrInvalidProof, "vrf: %v", err)
	}
	return spacetime.BytesToBytes32(beta), nil
}
