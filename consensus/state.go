// Copyright (c) 2026 The Lightcore developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package consensus

import (
	"fmt"

	"github.com/spacetimechain/lightcore/block"
	"github.com/spacetimechain/lightcore/schedule"
	"github.com/spacetimechain/lightcore/spacetime"
)

// State is the verifier state after a header. It holds everything needed to
// verify the header's children. Field order is part of the persisted format.
type State struct {
	LastSlot uint64

	EraIndex       uint64
	EraBlocks      uint64            // blocks produced so far in the era
	Randomness     spacetime.Bytes32 // randomness of the current era
	NextRandomness spacetime.Bytes32 // randomness of the next era
	Accumulator    spacetime.Bytes32 // VRF outputs folded during the current era

	SaltIndex uint64
	Salt      spacetime.Salt
	NextSalt  spacetime.Salt

	SolutionRange uint64
	Weight        uint64 // accumulated weight, the fork choice score
}

// GenesisState returns the state of the genesis header at slot 0.
func GenesisState(params *spacetime.Params) State {
	return State{
		Randomness:     params.GenesisRandomness,
		NextRandomness: schedule.NextRandomness(params.GenesisRandomness, spacetime.Bytes32{}),
		Salt:           params.GenesisSalt,
		NextSalt:       schedule.NextSalt(params, params.GenesisSalt, params.SaltInterval),
		SolutionRange:  params.InitialSolutionRange,
	}
}

// GenesisHeader returns the header anchoring a chain at slot 0. It carries no
// solution and is never verified.
func GenesisHeader(params *spacetime.Params) *block.Header {
	return new(block.Builder).
		Randomness(params.GenesisRandomness).
		Build()
}

func (s *State) String() string {
	return fmt.Sprintf(`State(
	LastSlot:       %v
	EraIndex:       %v
	EraBlocks:      %v
	Randomness:     %v
	NextRandomness: %v
	Accumulator:    %v
	SaltIndex:      %v
	Salt:           %v
	NextSalt:       %v
	SolutionRange:  %v
	Weight:         %v
)`, s.LastSlot, s.EraIndex, s.EraBlocks, s.Randomness, s.NextRandomness, s.Accumulator,
		s.SaltIndex, s.Salt, s.NextSalt, s.SolutionRange, s.Weight)
}
