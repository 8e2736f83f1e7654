// Copyright (c) 2026 The Lightcore developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package chain

import (
	"slices"

	"github.com/spacetimechain/lightcore/block"
	"github.com/spacetimechain/lightcore/consensus"
	"github.com/spacetimechain/lightcore/spacetime"
)

// Entry is a header retained in the tree along with its verifier state.
// Entries are shared and must not be modified.
type Entry struct {
	Header *block.Header
	State  *consensus.State
	Height uint64 // distance from the anchor
}

// Hash returns the header hash.
func (e *Entry) Hash() spacetime.Bytes32 { return e.Header.Hash() }

// Weight returns the accumulated weight.
func (e *Entry) Weight() uint64 { return e.State.Weight }

// Fork describes a change of the best tip. The new tip either extends the old
// one, in which case Ancestor is the old tip and Retracted is empty, or sits
// on another branch.
type Fork struct {
	Ancestor  *Entry   // common ancestor of both tips
	OldTip    *Entry   // best tip before the change
	NewTip    *Entry   // best tip after the change
	Retracted []*Entry // entries leaving the canonical chain, ancestor first
	Enacted   []*Entry // entries joining the canonical chain, ancestor first
}

// IsReorg reports whether any entry left the canonical chain.
func (f *Fork) IsReorg() bool {
	return len(f.Retracted) > 0
}

// ImportResult is the outcome of a successful import.
type ImportResult struct {
	Hash        spacetime.Bytes32
	Weight      uint64
	Height      uint64
	BestChanged bool
	Fork        *Fork // set when the best tip changed
}

// newFork walks both tips back to their common ancestor.
func newFork(oldTip, newTip *node) *Fork {
	var (
		retracted, enacted []*Entry
		a, b               = oldTip, newTip
	)
	for a.entry.Height > b.entry.Height {
		retracted = append(retracted, a.entry)
		a = a.parent
	}
	for b.entry.Height > a.entry.Height {
		enacted = append(enacted, b.entry)
		b = b.parent
	}
	for a != b {
		retracted = append(retracted, a.entry)
		enacted = append(enacted, b.entry)
		a, b = a.parent, b.parent
	}
	slices.Reverse(retracted)
	slices.Reverse(enacted)

	return &Fork{
		Ancestor:  a.entry,
		OldTip:    oldTip.entry,
		NewTip:    newTip.entry,
		Retracted: retracted,
		Enacted:   enacted,
	}
}
