// Copyright (c) 2026 The Lightcore developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package block

import (
	"encoding/binary"

	"github.com/pkg/errors"
	"github.com/spacetimechain/lightcore/spacetime"
)

// DigestKind identifies the content of a digest item.
type DigestKind uint8

// Known digest kinds.
const (
	DigestNextSalt       DigestKind = 1 // announces the salt of the next salt era
	DigestNextRandomness DigestKind = 2 // announces the randomness of the era after the current one
	DigestSolutionRange  DigestKind = 3 // announces the solution range in effect for the header's era
)

// ErrInvalidDigest is returned when a header carries an unknown, malformed or duplicated digest item.
var ErrInvalidDigest = errors.New("invalid digest")

// Digest is a consensus log item carried by a header.
type Digest struct {
	Kind DigestKind
	Data []byte
}

// NextSaltDigest creates a digest announcing the next salt.
func NextSaltDigest(salt spacetime.Salt) Digest {
	return Digest{DigestNextSalt, salt.Bytes()}
}

// NextRandomnessDigest creates a digest announcing the next era randomness.
func NextRandomnessDigest(randomness spacetime.Bytes32) Digest {
	return Digest{DigestNextRandomness, randomness.Bytes()}
}

// SolutionRangeDigest creates a digest announcing the current solution range.
func SolutionRangeDigest(solutionRange uint64) Digest {
	return Digest{DigestSolutionRange, binary.BigEndian.AppendUint64(nil, solutionRange)}
}

// Digests is the decoded form of a header's digest items. Absent items are nil.
type Digests struct {
	NextSalt       *spacetime.Salt
	NextRandomness *spacetime.Bytes32
	SolutionRange  *uint64
}

// DecodeDigests decodes digest items. Each kind may appear at most once.
func DecodeDigests(items []Digest) (*Digests, error) {
	var (
		ds   Digests
		seen = make(map[DigestKind]bool, len(items))
	)
	for _, item := range items {
		if seen[item.Kind] {
			return nil, errors.WithMessagef(ErrInvalidDigest, "duplicated kind %d", item.Kind)
		}
		seen[item.Kind] = true

		switch item.Kind {
		case DigestNextSalt:
			if len(item.Data) != spacetime.SaltLength {
				return nil, errors.WithMessagef(ErrInvalidDigest, "next salt: want %d bytes, have %d", spacetime.SaltLength, len(item.Data))
			}
			salt := spacetime.BytesToSalt(item.Data)
			ds.NextSalt = &salt
		case DigestNextRandomness:
			if len(item.Data) != 32 {
				return nil, errors.WithMessagef(ErrInvalidDigest, "next randomness: want 32 bytes, have %d", len(item.Data))
			}
			randomness := spacetime.BytesToBytes32(item.Data)
			ds.NextRandomness = &randomness
		case DigestSolutionRange:
			if len(item.Data) != 8 {
				return nil, errors.WithMessagef(ErrInvalidDigest, "solution range: want 8 bytes, have %d", len(item.Data))
			}
			r := binary.BigEndian.Uint64(item.Data)
			ds.SolutionRange = &r
		default:
			return nil, errors.WithMessagef(ErrInvalidDigest, "unknown kind %d", item.Kind)
		}
	}
	return &ds, nil
}
