// Copyright (c) 2026 The Lightcore developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package chain tracks the tree of verified headers above an anchor and
// chooses the best tip by accumulated weight.
package chain

import (
	"slices"
	"sync"

	"github.com/ethereum/go-ethereum/event"
	"github.com/pkg/errors"

	"github.com/spacetimechain/lightcore/block"
	"github.com/spacetimechain/lightcore/co"
	"github.com/spacetimechain/lightcore/consensus"
	"github.com/spacetimechain/lightcore/log"
	"github.com/spacetimechain/lightcore/spacetime"
)

var logger = log.WithContext("pkg", "chain")

// DefaultRejectCacheSize is the number of rejected header hashes remembered by default.
const DefaultRejectCacheSize = 1024

type node struct {
	entry    *Entry
	parent   *node // nil for the anchor
	children []*node
}

// Tracker holds the header tree. Inserts are serialized, queries run
// concurrently with each other, and header verification runs outside any lock.
//
// It's thread-safe.
type Tracker struct {
	verifier *consensus.Verifier
	rejected *rejectCache

	commitMu sync.Mutex // orders inserts with their fork delivery

	mu     sync.RWMutex
	nodes  map[spacetime.Bytes32]*node
	anchor *node
	best   *node

	feed  event.Feed
	scope event.SubscriptionScope
	tick  co.Signal
}

// Option configures a Tracker.
type Option func(*options)

type options struct {
	rejectCacheSize int
}

// WithRejectCacheSize sets how many rejected header hashes are remembered.
func WithRejectCacheSize(size int) Option {
	return func(o *options) {
		o.rejectCacheSize = size
	}
}

// NewTracker creates a tracker rooted at the anchor, which is the genesis or a
// trusted checkpoint. The anchor is never verified nor pruned.
func NewTracker(anchor *block.Header, anchorState *consensus.State, verifier *consensus.Verifier, opts ...Option) *Tracker {
	o := options{rejectCacheSize: DefaultRejectCacheSize}
	for _, opt := range opts {
		opt(&o)
	}

	st := *anchorState
	root := &node{entry: &Entry{Header: anchor, State: &st}}
	t := &Tracker{
		verifier: verifier,
		rejected: newRejectCache(o.rejectCacheSize),
		nodes:    map[spacetime.Bytes32]*node{anchor.Hash(): root},
		anchor:   root,
		best:     root,
	}
	t.updateMetrics()
	return t
}

// Verifier returns the header verifier.
func (t *Tracker) Verifier() *consensus.Verifier {
	return t.verifier
}

// ImportHeader verifies the header against its parent's state and inserts it.
// On error the tree is left unchanged.
func (t *Tracker) ImportHeader(header *block.Header) (*ImportResult, error) {
	hash := header.Hash()

	parent, err := t.prepare(hash, header)
	if err != nil {
		metricImportCount().AddWithLabel(1, map[string]string{"result": importReason(err)})
		return nil, err
	}
	st, err := t.verify(hash, header, parent)
	if err != nil {
		return nil, err
	}
	return t.commit(hash, header, st)
}

// prepare checks the header can be imported and returns its parent.
func (t *Tracker) prepare(hash spacetime.Bytes32, header *block.Header) (*node, error) {
	if err := t.rejected.Get(hash); err != nil {
		return nil, err
	}

	t.mu.RLock()
	defer t.mu.RUnlock()

	if _, ok := t.nodes[hash]; ok {
		return nil, errors.WithMessagef(ErrKnownHeader, "header %v", hash.AbbrevString())
	}
	parent, ok := t.nodes[header.ParentHash()]
	if !ok {
		return nil, errors.WithMessagef(ErrUnknownParent, "header %v, parent %v", hash.AbbrevString(), header.ParentHash().AbbrevString())
	}
	return parent, nil
}

// verify runs the header verifier without holding any lock. Entries are
// immutable, so reading the parent state is safe.
func (t *Tracker) verify(hash spacetime.Bytes32, header *block.Header, parent *node) (*consensus.State, error) {
	st, err := t.verifier.VerifyHeader(header, parent.entry.State)
	if err != nil {
		t.rejected.Add(hash, err)
		metricImportCount().AddWithLabel(1, map[string]string{"result": importReason(err)})
		logger.Debug("rejected header", "hash", hash.AbbrevString(), "slot", header.Slot(), "err", err)
		return nil, err
	}
	return st, nil
}

// commit inserts a verified header. Parent and duplicate checks are repeated,
// since the tree may have changed while verifying. Commits are serialized up
// to the fork delivery, so subscribers see best tip changes in insert order.
func (t *Tracker) commit(hash spacetime.Bytes32, header *block.Header, st *consensus.State) (*ImportResult, error) {
	t.commitMu.Lock()
	defer t.commitMu.Unlock()

	result, err := t.insert(hash, header, st)
	metricImportCount().AddWithLabel(1, map[string]string{"result": importReason(err)})
	if err != nil {
		return nil, err
	}

	logger.Debug("imported header",
		"hash", hash.AbbrevString(),
		"slot", header.Slot(),
		"height", result.Height,
		"weight", result.Weight,
		"best", result.BestChanged)

	if fork := result.Fork; fork != nil {
		if fork.IsReorg() {
			metricReorgCount().Add(1)
			metricReorgDepth().Observe(int64(len(fork.Retracted)))
			logger.Info("chain reorganized",
				"ancestor", fork.Ancestor.Hash().AbbrevString(),
				"old", fork.OldTip.Hash().AbbrevString(),
				"new", fork.NewTip.Hash().AbbrevString(),
				"retracted", len(fork.Retracted),
				"enacted", len(fork.Enacted))
		}
		t.feed.Send(fork)
		t.tick.Broadcast()
	}
	return result, nil
}

func (t *Tracker) insert(hash spacetime.Bytes32, header *block.Header, st *consensus.State) (*ImportResult, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, ok := t.nodes[hash]; ok {
		return nil, errors.WithMessagef(ErrKnownHeader, "header %v", hash.AbbrevString())
	}
	parent, ok := t.nodes[header.ParentHash()]
	if !ok {
		// pruned while verifying
		return nil, errors.WithMessagef(ErrUnknownParent, "header %v, parent %v", hash.AbbrevString(), header.ParentHash().AbbrevString())
	}

	n := &node{
		entry: &Entry{
			Header: header,
			State:  st,
			Height: parent.entry.Height + 1,
		},
		parent: parent,
	}
	parent.children = append(parent.children, n)
	t.nodes[hash] = n

	result := &ImportResult{
		Hash:   hash,
		Weight: st.Weight,
		Height: n.entry.Height,
	}
	if better(n, t.best) {
		result.BestChanged = true
		result.Fork = newFork(t.best, n)
		t.best = n
	}
	t.updateMetrics()
	return result, nil
}

// better reports whether a should be preferred over b as the best tip:
// heavier wins, and equal weights go to the lower hash.
func better(a, b *node) bool {
	wa, wb := a.entry.Weight(), b.entry.Weight()
	if wa != wb {
		return wa > wb
	}
	return a.entry.Hash().Less(b.entry.Hash())
}

func (t *Tracker) updateMetrics() {
	metricBestWeight().Set(int64(t.best.entry.Weight()))
	metricBestHeight().Set(int64(t.best.entry.Height))
	metricTreeSize().Set(int64(len(t.nodes)))
}

func importReason(err error) string {
	switch {
	case errors.Is(err, ErrUnknownParent):
		return "unknown_parent"
	case errors.Is(err, ErrKnownHeader):
		return "known_header"
	default:
		return consensus.ErrorReason(err)
	}
}

// Subscribe delivers every best tip change to ch. The channel must be
// drained, imports block until all subscribers received the fork.
func (t *Tracker) Subscribe(ch chan<- *Fork) event.Subscription {
	return t.scope.Track(t.feed.Subscribe(ch))
}

// NewTicker returns a waiter woken whenever the best tip changes.
func (t *Tracker) NewTicker() co.Waiter {
	return t.tick.NewWaiter()
}

// Close unsubscribes all subscribers.
func (t *Tracker) Close() {
	t.scope.Close()
}

// BestTip returns the entry with the most accumulated weight, the lowest hash on ties.
func (t *Tracker) BestTip() *Entry {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.best.entry
}

// Anchor returns the root entry.
func (t *Tracker) Anchor() *Entry {
	return t.anchor.entry
}

// Len returns the number of entries, the anchor included.
func (t *Tracker) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.nodes)
}

// Has reports whether the header is in the tree.
func (t *Tracker) Has(hash spacetime.Bytes32) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	_, ok := t.nodes[hash]
	return ok
}

// Entry returns the entry of the header.
func (t *Tracker) Entry(hash spacetime.Bytes32) (*Entry, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	n, ok := t.nodes[hash]
	if !ok {
		return nil, errors.WithMessagef(ErrNotFound, "header %v", hash.AbbrevString())
	}
	return n.entry, nil
}

// Header returns the header with the hash.
func (t *Tracker) Header(hash spacetime.Bytes32) (*block.Header, error) {
	e, err := t.Entry(hash)
	if err != nil {
		return nil, err
	}
	return e.Header, nil
}

// State returns the verifier state after the header.
func (t *Tracker) State(hash spacetime.Bytes32) (*consensus.State, error) {
	e, err := t.Entry(hash)
	if err != nil {
		return nil, err
	}
	return e.State, nil
}

// Heads returns the entries without children, best first.
func (t *Tracker) Heads() []*Entry {
	t.mu.RLock()
	defer t.mu.RUnlock()

	var heads []*node
	for _, n := range t.nodes {
		if len(n.children) == 0 {
			heads = append(heads, n)
		}
	}
	slices.SortFunc(heads, func(a, b *node) int {
		switch {
		case better(a, b):
			return -1
		case better(b, a):
			return 1
		default:
			return 0
		}
	})

	entries := make([]*Entry, 0, len(heads))
	for _, n := range heads {
		entries = append(entries, n.entry)
	}
	return entries
}

// Ancestor returns the ancestor of the header at the given height.
func (t *Tracker) Ancestor(hash spacetime.Bytes32, height uint64) (*Entry, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	n, ok := t.nodes[hash]
	if !ok {
		return nil, errors.WithMessagef(ErrNotFound, "header %v", hash.AbbrevString())
	}
	if height > n.entry.Height {
		return nil, errors.WithMessagef(ErrNotFound, "height %d above header height %d", height, n.entry.Height)
	}
	for n.entry.Height > height {
		n = n.parent
	}
	return n.entry, nil
}

// IsCanonical reports whether the header is on the chain from the anchor to the best tip.
func (t *Tracker) IsCanonical(hash spacetime.Bytes32) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()

	n, ok := t.nodes[hash]
	if !ok {
		return false
	}
	return t.isCanonical(n)
}

func (t *Tracker) isCanonical(n *node) bool {
	c := t.best
	for c.entry.Height > n.entry.Height {
		c = c.parent
	}
	return c == n
}

// FindForkPoint returns the common ancestor of two headers.
func (t *Tracker) FindForkPoint(a, b spacetime.Bytes32) (*Entry, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	na, ok := t.nodes[a]
	if !ok {
		return nil, errors.WithMessagef(ErrNotFound, "header %v", a.AbbrevString())
	}
	nb, ok := t.nodes[b]
	if !ok {
		return nil, errors.WithMessagef(ErrNotFound, "header %v", b.AbbrevString())
	}
	return newFork(na, nb).Ancestor, nil
}
