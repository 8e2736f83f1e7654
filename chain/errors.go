// Copyright (c) 2026 The Lightcore developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package chain

import "github.com/pkg/errors"

var (
	// ErrUnknownParent is returned when the parent of an imported header is not in the tree.
	ErrUnknownParent = errors.New("unknown parent")
	// ErrKnownHeader is returned when the imported header is already in the tree.
	ErrKnownHeader = errors.New("known header")
	// ErrNotFound is returned by queries for hashes not in the tree.
	ErrNotFound = errors.New("not found")
)
