// Copyright (c) 2026 The Lightcore developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package datagen

import (
	"crypto/rand"

	"github.com/spacetimechain/lightcore/spacetime"
)

func RandomHash() (b spacetime.Bytes32) {
	rand.Read(b[:])
	return
}

func RandomSalt() (s spacetime.Salt) {
	rand.Read(s[:])
	return
}

func RandomBytes(n int) []byte {
	b := make([]byte, n)
	rand.Read(b)
	return b
}
