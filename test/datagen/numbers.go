// Copyright (c) 2026 The Lightcore developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package datagen

import (
	mathrand "math/rand/v2"
)

func RandUint64() uint64 {
	return mathrand.Uint64() //#nosec G404
}

func RandIntN(n int) int {
	return mathrand.N(n) //#nosec G404
}

// Shuffle returns a shuffled copy of s.
func Shuffle[T any](s []T) []T {
	out := append([]T(nil), s...)
	mathrand.Shuffle(len(out), func(i, j int) { //#nosec G404
		out[i], out[j] = out[j], out[i]
	})
	return out
}
