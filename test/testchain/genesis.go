// Copyright (c) 2026 The Lightcore developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package testchain produces valid header chains for tests.
package testchain

import (
	"math"

	"github.com/spacetimechain/lightcore/block"
	"github.com/spacetimechain/lightcore/consensus"
	"github.com/spacetimechain/lightcore/spacetime"
)

// NewParams returns params with short eras and a wide solution range, so that
// tests cross era and salt boundaries quickly and solving is cheap.
func NewParams() *spacetime.Params {
	p := spacetime.DefaultParams()
	p.EraLength = 16
	p.SaltInterval = 4
	p.SlotsPerBlock = 2
	p.InitialSolutionRange = math.MaxUint64 / 4
	return &p
}

// Genesis returns the genesis header at slot 0 and its state.
func Genesis(params *spacetime.Params) (*block.Header, *consensus.State) {
	st := consensus.GenesisState(params)
	return consensus.GenesisHeader(params), &st
}

// Link is a verified header along with its state.
type Link struct {
	Header *block.Header
	State  *consensus.State
}

// GenesisLink returns the genesis header as a Link.
func GenesisLink(params *spacetime.Params) Link {
	h, st := Genesis(params)
	return Link{h, st}
}
