// Copyright (c) 2026 The Lightcore developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package consensus verifies headers against the verifier state of their parent.
//
// Verification is a pure function of the header, the parent state and the
// protocol params. It performs no I/O and a Verifier is safe for concurrent use.
package consensus

import (
	"time"

	"github.com/pkg/errors"

	"github.com/spacetimechain/lightcore/block"
	"github.com/spacetimechain/lightcore/retarget"
	"github.com/spacetimechain/lightcore/schedule"
	"github.com/spacetimechain/lightcore/solution"
	"github.com/spacetimechain/lightcore/spacetime"
)

// MaxEraGap limits how many eras a header may skip ahead of its parent.
// Every skipped era is folded into the state one by one.
const MaxEraGap = 4096

// Verifier verifies headers under fixed protocol params.
type Verifier struct {
	params spacetime.Params
	weight WeightFunc
}

// Option configures a Verifier.
type Option func(*Verifier)

// WithWeight sets the weight function, FlatWeight by default.
func WithWeight(fn WeightFunc) Option {
	return func(v *Verifier) {
		v.weight = fn
	}
}

// NewVerifier creates a verifier. The params are copied and must be valid.
func NewVerifier(params *spacetime.Params, opts ...Option) *Verifier {
	v := &Verifier{
		params: *params,
		weight: FlatWeight,
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Params returns a copy of the protocol params.
func (v *Verifier) Params() *spacetime.Params {
	p := v.params
	return &p
}

// Expected returns the state that applies to a child of parent at slot, with
// every era and salt rotation between the parent and the slot applied. The
// child's own contribution is not included.
func (v *Verifier) Expected(parent *State, slot uint64) (*State, error) {
	if slot <= parent.LastSlot {
		return nil, errors.WithMessagef(ErrNonMonotonicSlot, "slot %d, parent slot %d", slot, parent.LastSlot)
	}

	var (
		p   = &v.params
		st  = *parent
		era = schedule.EraIndex(p, slot)
	)
	if era > st.EraIndex && era-st.EraIndex > MaxEraGap {
		return nil, errors.WithMessagef(ErrFutureSlot, "era %d, parent era %d", era, st.EraIndex)
	}

	for st.EraIndex < era {
		st.SolutionRange = retarget.Retarget(
			st.SolutionRange,
			p.EraLength,
			st.EraBlocks,
			p.SlotsPerBlock,
			p.MaxAdjustmentFactor,
			p.MinSolutionRange)
		st.Randomness = st.NextRandomness
		st.NextRandomness = schedule.NextRandomness(st.NextRandomness, st.Accumulator)
		st.Accumulator = spacetime.Bytes32{}
		st.EraBlocks = 0
		st.EraIndex++
	}

	saltIndex := schedule.SaltIndex(p, slot)
	for st.SaltIndex < saltIndex {
		st.SaltIndex++
		st.Salt = st.NextSalt
		st.NextSalt = schedule.NextSalt(p, st.Salt, schedule.SaltStart(p, st.SaltIndex+1))
	}
	return &st, nil
}

// VerifyHeader verifies the header as a child of parent and returns the
// header's state. The parent state is never modified.
func (v *Verifier) VerifyHeader(header *block.Header, parent *State) (*State, error) {
	start := time.Now()
	st, err := v.verify(header, parent)

	metricVerifyDuration().Observe(time.Since(start).Microseconds())
	metricVerifyCount().AddWithLabel(1, map[string]string{"result": ErrorReason(err)})
	return st, err
}

func (v *Verifier) verify(header *block.Header, parent *State) (*State, error) {
	slot := header.Slot()
	if slot <= parent.LastSlot {
		return nil, errors.WithMessagef(ErrNonMonotonicSlot, "slot %d, parent slot %d", slot, parent.LastSlot)
	}

	digests, err := block.DecodeDigests(header.Digests())
	if err != nil {
		return nil, err
	}

	st, err := v.Expected(parent, slot)
	if err != nil {
		return nil, err
	}

	if err := checkDigests(digests, st); err != nil {
		return nil, err
	}

	sol := header.Solution()
	output, err := solution.Verify(&sol, slot, st.Salt, st.Randomness, st.SolutionRange)
	if err != nil {
		return nil, &SolutionError{err}
	}
	if header.Randomness() != output.Randomness {
		return nil, &SolutionError{errors.WithMessagef(solution.ErrInvalidProof,
			"randomness commitment: want %v, have %v", output.Randomness, header.Randomness())}
	}

	if err := solution.VerifySignature(header.SigningHash(), header.Seal(), sol.PublicKey); err != nil {
		return nil, ErrInvalidSeal
	}

	// a child must outweigh its parent
	weight := max(v.weight(header, output, st.SolutionRange), 1)
	if st.Weight+weight < st.Weight {
		return nil, errors.WithMessagef(ErrWeightOverflow, "parent weight %d, header weight %d", st.Weight, weight)
	}

	st.Accumulator = schedule.Accumulate(st.Accumulator, output.Randomness)
	st.EraBlocks++
	st.LastSlot = slot
	st.Weight += weight
	return st, nil
}

// checkDigests compares the announced digests with the values derived locally.
// Absent digests are not required.
func checkDigests(digests *block.Digests, st *State) error {
	if d := digests.NextSalt; d != nil && *d != st.NextSalt {
		return errors.WithMessagef(ErrDigestMismatch, "next salt: want %v, have %v", st.NextSalt, *d)
	}
	if d := digests.NextRandomness; d != nil && *d != st.NextRandomness {
		return errors.WithMessagef(ErrDigestMismatch, "next randomness: want %v, have %v", st.NextRandomness, *d)
	}
	if d := digests.SolutionRange; d != nil && *d != st.SolutionRange {
		return errors.WithMessagef(ErrDigestMismatch, "solution range: want %d, have %d", st.SolutionRange, *d)
	}
	return nil
}

// ErrorReason classifies a verification error into a short label, "ok" for nil.
func ErrorReason(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrNonMonotonicSlot):
		return "non_monotonic_slot"
	case errors.Is(err, ErrFutureSlot):
		return "future_slot"
	case errors.Is(err, block.ErrInvalidDigest):
		return "invalid_digest"
	case errors.Is(err, ErrDigestMismatch):
		return "digest_mismatch"
	case errors.Is(err, ErrInvalidSeal):
		return "invalid_seal"
	case errors.Is(err, solution.ErrInvalidTag):
		return "invalid_tag"
	case errors.Is(err, solution.ErrInvalidProof):
		return "invalid_proof"
	case errors.Is(err, solution.ErrOutsideSolutionRange):
		return "outside_solution_range"
	case errors.Is(err, solution.ErrInvalidSignature):
		return "invalid_signature"
	case errors.Is(err, ErrWeightOverflow):
		return "weight_overflow"
	default:
		return "other"
	}
}
