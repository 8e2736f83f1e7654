// Copyright (c) 2026 The Lightcore developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package consensus

import (
	"github.com/pkg/errors"

	"github.com/spacetimechain/lightcore/solution"
)

// Header verification failures. Returned errors wrap one of these, test with errors.Is.
var (
	ErrNonMonotonicSlot = errors.New("non-monotonic slot")
	ErrFutureSlot       = errors.New("slot too far ahead of parent")
	ErrDigestMismatch   = errors.New("digest mismatch")
	ErrInvalidSeal      = errors.WithMessage(solution.ErrInvalidSignature, "seal")
	ErrWeightOverflow   = errors.New("weight overflow")
)

// SolutionError reports a solution rejected by the solution verifier.
// It unwraps to one of the solution package sentinels.
type SolutionError struct {
	Err error
}

func (e *SolutionError) Error() string {
	return "solution: " + e.Err.Error()
}

func (e *SolutionError) Unwrap() error {
	return e.Err
}

// IsSolutionError reports whether the error was caused by the solution.
func IsSolutionError(err error) bool {
	var serr *SolutionError
	return errors.As(err, &serr)
}
