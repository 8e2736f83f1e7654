// Copyright (c) 2026 The Lightcore developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package chain

import (
	"github.com/pkg/errors"

	"github.com/spacetimechain/lightcore/block"
	"github.com/spacetimechain/lightcore/co"
	"github.com/spacetimechain/lightcore/consensus"
	"github.com/spacetimechain/lightcore/spacetime"
)

// BatchResult is the outcome of importing one header of a batch.
type BatchResult struct {
	Result *ImportResult
	Err    error
}

// ImportBatch imports the headers in rounds. Each round verifies in parallel
// the headers whose parent is in the tree, then commits them in input order.
// Headers whose parent is a later header of the batch wait for a later round.
// It returns one result per header, in input order.
func (t *Tracker) ImportBatch(headers []*block.Header) []BatchResult {
	metricBatchSize().Observe(int64(len(headers)))

	var (
		results = make([]BatchResult, len(headers))
		hashes  = make([]spacetime.Bytes32, len(headers))
		pending = make([]int, 0, len(headers))
	)
	for i, h := range headers {
		hashes[i] = h.Hash()
		pending = append(pending, i)
	}

	for len(pending) > 0 {
		waiting := make(map[spacetime.Bytes32]bool, len(pending))
		for _, i := range pending {
			waiting[hashes[i]] = true
		}

		var (
			ready    []int
			parents  []*node
			deferred []int
		)
		for _, i := range pending {
			parent, err := t.prepare(hashes[i], headers[i])
			switch {
			case err == nil:
				ready = append(ready, i)
				parents = append(parents, parent)
			case errors.Is(err, ErrUnknownParent) && waiting[headers[i].ParentHash()] && headers[i].ParentHash() != hashes[i]:
				deferred = append(deferred, i)
			default:
				metricImportCount().AddWithLabel(1, map[string]string{"result": importReason(err)})
				results[i].Err = err
			}
		}

		if len(ready) == 0 {
			// parents are stuck in the batch, which can't happen with acyclic hashes
			for _, i := range deferred {
				results[i].Err = errors.WithMessagef(ErrUnknownParent, "header %v", hashes[i].AbbrevString())
			}
			break
		}

		states := make([]*consensus.State, len(ready))
		errs := make([]error, len(ready))
		co.Parallel(func(enqueue co.Enqueue) {
			for j, i := range ready {
				enqueue(func() {
					states[j], errs[j] = t.verify(hashes[i], headers[i], parents[j])
				})
			}
		})

		for j, i := range ready {
			if errs[j] != nil {
				results[i].Err = errs[j]
				continue
			}
			results[i].Result, results[i].Err = t.commit(hashes[i], headers[i], states[j])
		}
		pending = deferred
	}
	return results
}
