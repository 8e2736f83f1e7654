// Copyright (c) 2026 The Lightcore developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package schedule derives era and salt indices from slots and rolls the
// per-era randomness and per-salt-era salt forward.
package schedule

import (
	"encoding/binary"

	"github.com/spacetimechain/lightcore/spacetime"
)

var (
	randomnessDomain = []byte("randomness")
	saltDomain       = []byte("salt")
)

// EraIndex returns the era the slot belongs to.
func EraIndex(p *spacetime.Params, slot uint64) uint64 {
	return slot / p.EraLength
}

// SaltIndex returns the salt era the slot belongs to.
func SaltIndex(p *spacetime.Params, slot uint64) uint64 {
	return slot / p.SaltInterval
}

// EraStart returns the first slot of the given era.
func EraStart(p *spacetime.Params, era uint64) uint64 {
	return era * p.EraLength
}

// SaltStart returns the first slot of the given salt era.
func SaltStart(p *spacetime.Params, saltEra uint64) uint64 {
	return saltEra * p.SaltInterval
}

// IsEraBoundary reports whether the slot is the first slot of an era.
func IsEraBoundary(p *spacetime.Params, slot uint64) bool {
	return slot%p.EraLength == 0
}

// IsSaltBoundary reports whether the slot is the first slot of a salt era.
func IsSaltBoundary(p *spacetime.Params, slot uint64) bool {
	return slot%p.SaltInterval == 0
}

// NextRandomness derives the randomness of the era after next from the
// current one and the VRF outputs accumulated during the closing era.
func NextRandomness(current, accumulated spacetime.Bytes32) spacetime.Bytes32 {
	return spacetime.Blake2b(randomnessDomain, current[:], accumulated[:])
}

// NextSalt derives the salt used from the salt era containing slot.
func NextSalt(p *spacetime.Params, current spacetime.Salt, slot uint64) spacetime.Salt {
	var idx [8]byte
	binary.BigEndian.PutUint64(idx[:], SaltIndex(p, slot))
	h := spacetime.Blake2b(saltDomain, current[:], idx[:])
	return spacetime.BytesToSalt(h[:spacetime.SaltLength])
}

// Accumulate folds a VRF output into the era accumulator.
func Accumulate(acc, output spacetime.Bytes32) spacetime.Bytes32 {
	return spacetime.Blake2b(acc[:], output[:])
}
