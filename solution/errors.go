// Copyright (c) 2026 The Lightcore developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package solution

import "github.com/pkg/errors"

// Solution verification failures. Returned errors wrap one of these, test with errors.Is.
var (
	ErrInvalidTag           = errors.New("invalid tag")
	ErrOutsideSolutionRange = errors.New("outside solution range")
	ErrInvalidSignature     = errors.New("invalid signature")
	ErrInvalidProof         = errors.New("invalid proof")
)
