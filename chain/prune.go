// Copyright (c) 2026 The Lightcore developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package chain

// Prune drops every branch that forks off the canonical chain more than
// retainDepth below the best tip. The anchor and the canonical chain are kept.
// It returns the number of entries removed.
func (t *Tracker) Prune(retainDepth uint64) int {
	t.mu.Lock()
	defer t.mu.Unlock()

	bestHeight := t.best.entry.Height
	if bestHeight <= retainDepth {
		return 0
	}
	cutoff := bestHeight - retainDepth

	removed := 0
	var child *node // canonical child of n
	for n := t.best; n != nil; child, n = n, n.parent {
		if n.entry.Height >= cutoff {
			continue
		}
		kept := n.children[:0]
		for _, c := range n.children {
			if c == child {
				kept = append(kept, c)
				continue
			}
			removed += t.removeSubtree(c)
		}
		clear(n.children[len(kept):])
		n.children = kept
	}

	if removed > 0 {
		metricPrunedCount().Add(int64(removed))
		t.updateMetrics()
		logger.Debug("pruned branches", "removed", removed, "cutoff", cutoff, "size", len(t.nodes))
	}
	return removed
}

func (t *Tracker) removeSubtree(root *node) int {
	removed := 0
	stack := []*node{root}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		delete(t.nodes, n.entry.Hash())
		n.parent = nil
		stack = append(stack, n.children...)
		n.children = nil
		removed++
	}
	return removed
}
