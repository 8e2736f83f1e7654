// Copyright (c) 2026 The Lightcore developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package consensus_test

import (
	"math"
	"testing"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spacetimechain/lightcore/block"
	"github.com/spacetimechain/lightcore/consensus"
	"github.com/spacetimechain/lightcore/retarget"
	"github.com/spacetimechain/lightcore/schedule"
	"github.com/spacetimechain/lightcore/solution"
	"github.com/spacetimechain/lightcore/spacetime"
	"github.com/spacetimechain/lightcore/test/testchain"
)

type testEnv struct {
	params   *spacetime.Params
	verifier *consensus.Verifier
	farmer   *testchain.Farmer
	genesis  testchain.Link
}

func newTestEnv(opts ...consensus.Option) *testEnv {
	params := testchain.NewParams()
	verifier := consensus.NewVerifier(params, opts...)
	return &testEnv{
		params:   params,
		verifier: verifier,
		farmer:   testchain.NewFarmer(verifier),
		genesis:  testchain.GenesisLink(params),
	}
}

func TestVerifyHeader(t *testing.T) {
	env := newTestEnv()

	header, err := env.farmer.Seal(env.genesis, 1)
	require.NoError(t, err)

	parent := *env.genesis.State
	st, err := env.verifier.VerifyHeader(header, env.genesis.State)
	require.NoError(t, err)
	assert.Equal(t, parent, *env.genesis.State, "parent state must not change")

	assert.Equal(t, uint64(1), st.LastSlot)
	assert.Equal(t, uint64(1), st.Weight)
	assert.Equal(t, uint64(1), st.EraBlocks)
	assert.Equal(t, schedule.Accumulate(spacetime.Bytes32{}, header.Randomness()), st.Accumulator)
	assert.Equal(t, parent.Salt, st.Salt)
	assert.Equal(t, parent.Randomness, st.Randomness)
	assert.Equal(t, parent.SolutionRange, st.SolutionRange)

	// verification is deterministic
	again, err := env.verifier.VerifyHeader(header, env.genesis.State)
	require.NoError(t, err)
	assert.Equal(t, st, again)
}

func TestNonMonotonicSlot(t *testing.T) {
	env := newTestEnv()
	links := env.farmer.MustExtend(env.genesis, 3)

	for _, slot := range []uint64{1, 3} {
		// seal on a parent that allows the slot, verify against one that doesn't
		header, err := env.farmer.Seal(env.genesis, slot)
		require.NoError(t, err)

		_, err = env.verifier.VerifyHeader(header, links[0].State)
		assert.ErrorIs(t, err, consensus.ErrNonMonotonicSlot)
		assert.Equal(t, "non_monotonic_slot", consensus.ErrorReason(err))
	}

	_, err := env.verifier.Expected(links[0].State, 3)
	assert.ErrorIs(t, err, consensus.ErrNonMonotonicSlot)
}

func TestFutureSlot(t *testing.T) {
	env := newTestEnv()

	slot := (consensus.MaxEraGap + 1) * env.params.EraLength
	_, err := env.verifier.Expected(env.genesis.State, slot)
	assert.ErrorIs(t, err, consensus.ErrFutureSlot)

	_, err = env.verifier.Expected(env.genesis.State, slot-1)
	assert.NoError(t, err)
}

func TestDigests(t *testing.T) {
	env := newTestEnv()

	tests := []struct {
		name string
		opts []testchain.BuildOption
		err  error
	}{
		{"none", nil, nil},
		{"all", []testchain.BuildOption{testchain.WithDigests()}, nil},
		{"wrong salt", []testchain.BuildOption{testchain.WithDigest(block.NextSaltDigest(spacetime.Salt{1}))}, consensus.ErrDigestMismatch},
		{"wrong randomness", []testchain.BuildOption{testchain.WithDigest(block.NextRandomnessDigest(spacetime.Bytes32{1}))}, consensus.ErrDigestMismatch},
		{"wrong range", []testchain.BuildOption{testchain.WithDigest(block.SolutionRangeDigest(1))}, consensus.ErrDigestMismatch},
		{"unknown kind", []testchain.BuildOption{testchain.WithDigest(block.Digest{Kind: 0xff})}, block.ErrInvalidDigest},
		{"malformed", []testchain.BuildOption{testchain.WithDigest(block.Digest{Kind: block.DigestNextSalt, Data: []byte{1}})}, block.ErrInvalidDigest},
		{"duplicated", []testchain.BuildOption{testchain.WithDigests(), testchain.WithDigests()}, block.ErrInvalidDigest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// slot 16 opens era 1 and salt era 4
			header, err := env.farmer.Seal(env.genesis, 16, tt.opts...)
			require.NoError(t, err)

			_, err = env.verifier.VerifyHeader(header, env.genesis.State)
			if tt.err == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.err)
			}
		})
	}
}

func TestSolutionErrors(t *testing.T) {
	env := newTestEnv()

	t.Run("wrong salt", func(t *testing.T) {
		header, err := env.farmer.Seal(env.genesis, 1)
		require.NoError(t, err)

		parent := *env.genesis.State
		parent.Salt = spacetime.Salt{0xde, 0xad}
		_, err = env.verifier.VerifyHeader(header, &parent)
		assert.ErrorIs(t, err, solution.ErrInvalidTag)
		assert.True(t, consensus.IsSolutionError(err))
	})

	t.Run("wrong randomness", func(t *testing.T) {
		header, err := env.farmer.Seal(env.genesis, 1)
		require.NoError(t, err)

		parent := *env.genesis.State
		parent.Randomness = spacetime.Blake2b([]byte("other"))
		_, err = env.verifier.VerifyHeader(header, &parent)
		assert.ErrorIs(t, err, solution.ErrInvalidProof)
	})

	t.Run("narrow range", func(t *testing.T) {
		header, err := env.farmer.Seal(env.genesis, 1)
		require.NoError(t, err)
		sol := header.Solution()
		out, err := solution.VerifyProof(sol.PublicKey, solution.GlobalChallenge(env.genesis.State.Randomness, 1), sol.Proof)
		require.NoError(t, err)

		parent := *env.genesis.State
		parent.SolutionRange = solution.Distance(sol.Tag.Uint64(), solution.Target(out)) - 1
		if parent.SolutionRange == math.MaxUint64 {
			t.Skip("tag hits the target")
		}
		_, err = env.verifier.VerifyHeader(header, &parent)
		assert.ErrorIs(t, err, solution.ErrOutsideSolutionRange)
	})

	t.Run("randomness commitment", func(t *testing.T) {
		header, err := env.farmer.Seal(env.genesis, 1, func(b *block.Builder, _ *consensus.State) {
			b.Randomness(spacetime.Blake2b([]byte("forged")))
		})
		require.NoError(t, err)

		_, err = env.verifier.VerifyHeader(header, env.genesis.State)
		assert.ErrorIs(t, err, solution.ErrInvalidProof)
		assert.True(t, consensus.IsSolutionError(err))
	})

	t.Run("solution signature", func(t *testing.T) {
		header, err := env.farmer.Seal(env.genesis, 1, func(b *block.Builder, st *consensus.State) {
			sol, _, err := env.farmer.Solve(st, 1)
			require.NoError(t, err)
			sol.Signature[10] ^= 1
			b.Solution(*sol)
		})
		require.NoError(t, err)

		_, err = env.verifier.VerifyHeader(header, env.genesis.State)
		assert.ErrorIs(t, err, solution.ErrInvalidSignature)
		assert.NotErrorIs(t, err, consensus.ErrInvalidSeal)
		assert.True(t, consensus.IsSolutionError(err))
	})
}

func TestInvalidSeal(t *testing.T) {
	env := newTestEnv()

	header, err := env.farmer.Seal(env.genesis, 1)
	require.NoError(t, err)

	other, err := crypto.GenerateKey()
	require.NoError(t, err)
	seal, err := solution.Sign(other, header.SigningHash())
	require.NoError(t, err)

	for _, h := range []*block.Header{
		header.WithSeal(seal),
		header.WithSeal(nil),
		header.WithSeal(make([]byte, 65)),
	} {
		_, err = env.verifier.VerifyHeader(h, env.genesis.State)
		assert.ErrorIs(t, err, consensus.ErrInvalidSeal)
		assert.ErrorIs(t, err, solution.ErrInvalidSignature)
		assert.False(t, consensus.IsSolutionError(err))
		assert.Equal(t, "invalid_seal", consensus.ErrorReason(err))
	}
}

func TestEraRotation(t *testing.T) {
	env := newTestEnv()
	links := env.farmer.MustExtend(env.genesis, 2, 5, 9, 16)
	last := links[2].State
	st := links[3].State

	assert.Equal(t, uint64(1), st.EraIndex)
	assert.Equal(t, last.NextRandomness, st.Randomness)
	assert.Equal(t, schedule.NextRandomness(last.NextRandomness, last.Accumulator), st.NextRandomness)
	assert.Equal(t, schedule.Accumulate(spacetime.Bytes32{}, links[3].Header.Randomness()), st.Accumulator)
	assert.Equal(t, uint64(1), st.EraBlocks)

	p := env.params
	want := retarget.Retarget(last.SolutionRange, p.EraLength, 3, p.SlotsPerBlock, p.MaxAdjustmentFactor, p.MinSolutionRange)
	assert.Equal(t, want, st.SolutionRange)
	// 3 blocks in 16 slots at 2 slots per block is too slow, the range widens
	assert.Greater(t, st.SolutionRange, last.SolutionRange)
}

func TestSkippedEras(t *testing.T) {
	env := newTestEnv()
	links := env.farmer.MustExtend(env.genesis, 1, 2)
	parent := links[1].State
	p := env.params

	// era 3, eras 1 and 2 are empty
	st, err := env.verifier.Expected(parent, 50)
	require.NoError(t, err)

	r1 := retarget.Retarget(parent.SolutionRange, p.EraLength, 2, p.SlotsPerBlock, p.MaxAdjustmentFactor, p.MinSolutionRange)
	r2 := retarget.Retarget(r1, p.EraLength, 0, p.SlotsPerBlock, p.MaxAdjustmentFactor, p.MinSolutionRange)
	r3 := retarget.Retarget(r2, p.EraLength, 0, p.SlotsPerBlock, p.MaxAdjustmentFactor, p.MinSolutionRange)
	assert.Equal(t, r3, st.SolutionRange)

	n1 := schedule.NextRandomness(parent.NextRandomness, parent.Accumulator)
	n2 := schedule.NextRandomness(n1, spacetime.Bytes32{})
	n3 := schedule.NextRandomness(n2, spacetime.Bytes32{})
	assert.Equal(t, n2, st.Randomness)
	assert.Equal(t, n3, st.NextRandomness)
	assert.Equal(t, uint64(3), st.EraIndex)
	assert.Equal(t, uint64(0), st.EraBlocks)
	assert.True(t, st.Accumulator.IsZero())

	// the header at that slot verifies
	_, err = env.farmer.Extend(links[1], 50)
	assert.NoError(t, err)
}

func TestSaltRotation(t *testing.T) {
	env := newTestEnv()
	p := env.params
	genesis := env.genesis.State

	st, err := env.verifier.Expected(genesis, 3)
	require.NoError(t, err)
	assert.Equal(t, genesis.Salt, st.Salt)

	st, err = env.verifier.Expected(genesis, 4)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), st.SaltIndex)
	assert.Equal(t, genesis.NextSalt, st.Salt)
	assert.Equal(t, schedule.NextSalt(p, genesis.NextSalt, 8), st.NextSalt)

	// skipping salt eras matches stepping through them
	stepped := genesis
	for slot := uint64(4); slot <= 12; slot += 4 {
		stepped, err = env.verifier.Expected(stepped, slot)
		require.NoError(t, err)
		stepped.LastSlot = slot
	}
	jumped, err := env.verifier.Expected(genesis, 12)
	require.NoError(t, err)
	assert.Equal(t, stepped.Salt, jumped.Salt)
	assert.Equal(t, stepped.NextSalt, jumped.NextSalt)
}

func TestWeight(t *testing.T) {
	env := newTestEnv(consensus.WithWeight(consensus.QualityWeight))

	links := env.farmer.MustExtend(env.genesis, 1, 2, 3)
	var sum uint64
	for _, l := range links {
		w := l.State.Weight - sum
		assert.GreaterOrEqual(t, w, uint64(1))
		assert.LessOrEqual(t, w, uint64(consensus.MaxQualityWeight))
		sum = l.State.Weight
	}

	header, err := env.farmer.Seal(env.genesis, 1)
	require.NoError(t, err)
	parent := *env.genesis.State
	parent.Weight = math.MaxUint64
	_, err = env.verifier.VerifyHeader(header, &parent)
	assert.ErrorIs(t, err, consensus.ErrWeightOverflow)
}

func TestZeroWeightCountsAsOne(t *testing.T) {
	zero := func(*block.Header, *solution.Output, uint64) uint64 { return 0 }
	env := newTestEnv(consensus.WithWeight(zero))

	links := env.farmer.MustExtend(env.genesis, 1, 2, 3)
	for i, l := range links {
		assert.Equal(t, uint64(i+1), l.State.Weight)
	}
}

func TestQualityWeight(t *testing.T) {
	tests := []struct {
		distance, rng uint64
		want          uint64
	}{
		{0, 100, 10},
		{50, 100, 5},
		{99, 100, 1},
		{100, 100, 1},
		{0, 0, 1},
		{0, math.MaxUint64, 10},
		{math.MaxUint64 / 2, math.MaxUint64, 5},
	}
	for _, tt := range tests {
		got := consensus.QualityWeight(nil, &solution.Output{Distance: tt.distance}, tt.rng)
		assert.Equal(t, tt.want, got, "distance %d range %d", tt.distance, tt.rng)
	}
	assert.Equal(t, uint64(1), consensus.FlatWeight(nil, nil, 0))
}

func TestErrorReason(t *testing.T) {
	assert.Equal(t, "ok", consensus.ErrorReason(nil))
	assert.Equal(t, "digest_mismatch", consensus.ErrorReason(errors.WithMessage(consensus.ErrDigestMismatch, "x")))
	assert.Equal(t, "invalid_tag", consensus.ErrorReason(&consensus.SolutionError{Err: solution.ErrInvalidTag}))
	assert.Equal(t, "other", consensus.ErrorReason(errors.New("x")))
}

func TestGenesisState(t *testing.T) {
	params := testchain.NewParams()
	st := consensus.GenesisState(params)

	assert.Equal(t, params.GenesisRandomness, st.Randomness)
	assert.Equal(t, schedule.NextRandomness(params.GenesisRandomness, spacetime.Bytes32{}), st.NextRandomness)
	assert.Equal(t, params.GenesisSalt, st.Salt)
	assert.Equal(t, schedule.NextSalt(params, params.GenesisSalt, params.SaltInterval), st.NextSalt)
	assert.Equal(t, params.InitialSolutionRange, st.SolutionRange)
	assert.Zero(t, st.Weight)
	assert.Zero(t, st.LastSlot)
	assert.Contains(t, st.String(), "SolutionRange")
}
