// Copyright (c) 2026 The Lightcore developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package testchain

import (
	"crypto/ecdsa"
	"encoding/binary"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/pkg/errors"

	"github.com/spacetimechain/lightcore/block"
	"github.com/spacetimechain/lightcore/consensus"
	"github.com/spacetimechain/lightcore/schedule"
	"github.com/spacetimechain/lightcore/solution"
	"github.com/spacetimechain/lightcore/spacetime"
)

// MaxPieces bounds the pieces a farmer audits per slot.
const MaxPieces = 1 << 16

// ErrNoSolution is returned when no piece falls into the solution range.
var ErrNoSolution = errors.New("no solution")

// Farmer owns a key and a virtual plot, and seals headers that pass verification.
type Farmer struct {
	key      *ecdsa.PrivateKey
	verifier *consensus.Verifier
	announce bool
}

// NewFarmer creates a farmer with a fresh key.
func NewFarmer(verifier *consensus.Verifier) *Farmer {
	key, err := crypto.GenerateKey()
	if err != nil {
		panic(err)
	}
	return NewFarmerWithKey(key, verifier)
}

// NewFarmerWithKey creates a farmer with the given key.
func NewFarmerWithKey(key *ecdsa.PrivateKey, verifier *consensus.Verifier) *Farmer {
	return &Farmer{key: key, verifier: verifier}
}

// SetAnnounce makes Extend attach boundary digests, see WithBoundaryDigests.
func (f *Farmer) SetAnnounce(on bool) {
	f.announce = on
}

// Key returns the farmer key.
func (f *Farmer) Key() *ecdsa.PrivateKey {
	return f.key
}

// PublicKey returns the compressed public key.
func (f *Farmer) PublicKey() []byte {
	return crypto.CompressPubkey(&f.key.PublicKey)
}

// Encoding returns the encoded piece at index of the farmer's plot.
func (f *Farmer) Encoding(index uint64) []byte {
	h := spacetime.Blake2b(f.PublicKey(), binary.BigEndian.AppendUint64(nil, index))
	return h.Bytes()
}

// Solve audits the plot for slot under the expected state st and returns a
// signed solution along with the VRF output.
func (f *Farmer) Solve(st *consensus.State, slot uint64) (*block.Solution, spacetime.Bytes32, error) {
	output, proof, err := solution.Prove(f.key, solution.GlobalChallenge(st.Randomness, slot))
	if err != nil {
		return nil, spacetime.Bytes32{}, err
	}
	target := solution.Target(output)

	for i := range uint64(MaxPieces) {
		enc := f.Encoding(i)
		tag := solution.CreateTag(enc, st.Salt)
		if !solution.IsWithinRange(tag, target, st.SolutionRange) {
			continue
		}
		sol := &block.Solution{
			PublicKey:  f.PublicKey(),
			PieceIndex: i,
			Encoding:   enc,
			Tag:        tag,
			Proof:      proof,
		}
		if sol.Signature, err = solution.Sign(f.key, sol.SigningHash()); err != nil {
			return nil, spacetime.Bytes32{}, err
		}
		return sol, output, nil
	}
	return nil, spacetime.Bytes32{}, errors.WithMessagef(ErrNoSolution, "slot %d, range %d", slot, st.SolutionRange)
}

// BuildOption customizes a header before it's sealed.
type BuildOption func(b *block.Builder, expected *consensus.State)

// WithDigests announces the expected next salt, next randomness and solution range.
func WithDigests() BuildOption {
	return func(b *block.Builder, st *consensus.State) {
		b.Digest(block.NextSaltDigest(st.NextSalt)).
			Digest(block.NextRandomnessDigest(st.NextRandomness)).
			Digest(block.SolutionRangeDigest(st.SolutionRange))
	}
}

// WithBoundaryDigests announces the next salt when slot opens a salt era, and
// the next randomness and solution range when it opens an era.
func WithBoundaryDigests(p *spacetime.Params, slot uint64) BuildOption {
	return func(b *block.Builder, st *consensus.State) {
		if schedule.IsSaltBoundary(p, slot) {
			b.Digest(block.NextSaltDigest(st.NextSalt))
		}
		if schedule.IsEraBoundary(p, slot) {
			b.Digest(block.NextRandomnessDigest(st.NextRandomness)).
				Digest(block.SolutionRangeDigest(st.SolutionRange))
		}
	}
}

// WithDigest adds a raw digest item.
func WithDigest(d block.Digest) BuildOption {
	return func(b *block.Builder, _ *consensus.State) {
		b.Digest(d)
	}
}

// Seal builds a header at slot on top of parent and seals it.
func (f *Farmer) Seal(parent Link, slot uint64, opts ...BuildOption) (*block.Header, error) {
	st, err := f.verifier.Expected(parent.State, slot)
	if err != nil {
		return nil, err
	}
	sol, output, err := f.Solve(st, slot)
	if err != nil {
		return nil, err
	}

	builder := new(block.Builder).
		ParentHash(parent.Header.Hash()).
		Slot(slot).
		Solution(*sol).
		Randomness(output)
	for _, opt := range opts {
		opt(builder, st)
	}
	header := builder.Build()

	seal, err := solution.Sign(f.key, header.SigningHash())
	if err != nil {
		return nil, err
	}
	return header.WithSeal(seal), nil
}

// Extend seals and verifies one header per slot on top of parent.
func (f *Farmer) Extend(parent Link, slots ...uint64) ([]Link, error) {
	links := make([]Link, 0, len(slots))
	for _, slot := range slots {
		var opts []BuildOption
		if f.announce {
			opts = append(opts, WithBoundaryDigests(f.verifier.Params(), slot))
		}
		header, err := f.Seal(parent, slot, opts...)
		if err != nil {
			return nil, err
		}
		st, err := f.verifier.VerifyHeader(header, parent.State)
		if err != nil {
			return nil, errors.WithMessagef(err, "verify slot %d", slot)
		}
		parent = Link{header, st}
		links = append(links, parent)
	}
	return links, nil
}

// MustExtend is like Extend but panics on error.
func (f *Farmer) MustExtend(parent Link, slots ...uint64) []Link {
	links, err := f.Extend(parent, slots...)
	if err != nil {
		panic(err)
	}
	return links
}
