// Copyright (c) 2026 The Lightcore developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package chain

import (
	"slices"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/pkg/errors"

	"github.com/spacetimechain/lightcore/block"
	"github.com/spacetimechain/lightcore/consensus"
	"github.com/spacetimechain/lightcore/kv"
)

const (
	anchorStoreName = kv.Bucket("chain.anchor") // the anchor entry
	entryStoreName  = kv.Bucket("chain.entry")  // every other entry, keyed by hash
)

var anchorKey = []byte("anchor")

// storedEntry is the persisted form of an entry.
type storedEntry struct {
	Header *block.Header
	State  consensus.State
	Height uint64
}

func saveRLP(w kv.Putter, key []byte, val any) error {
	data, err := rlp.EncodeToBytes(val)
	if err != nil {
		return err
	}
	return w.Put(key, data)
}

func loadRLP(r kv.Getter, key []byte, val any) error {
	data, err := r.Get(key)
	if err != nil {
		return err
	}
	return rlp.DecodeBytes(data, val)
}

// Save writes a snapshot of the tree to the store in one batch, replacing
// any previous snapshot.
func (t *Tracker) Save(store kv.Store) error {
	t.mu.RLock()
	entries := make(map[string]*Entry, len(t.nodes))
	for hash, n := range t.nodes {
		if n != t.anchor {
			entries[string(hash.Bytes())] = n.entry
		}
	}
	anchor := t.anchor.entry
	t.mu.RUnlock()

	var (
		batch      = store.NewBatch()
		entryBatch = entryStoreName.NewPutter(batch)
	)

	// drop entries pruned since the last save
	iter := entryStoreName.NewStore(store).Iterate(kv.Range{})
	for iter.Next() {
		if _, ok := entries[string(iter.Key())]; !ok {
			if err := entryBatch.Delete(iter.Key()); err != nil {
				iter.Release()
				return err
			}
		}
	}
	iter.Release()
	if err := iter.Error(); err != nil {
		logger.Warn("failed to iterate saved entries", "err", err)
		return errors.Wrap(err, "iterate entries")
	}

	if err := saveRLP(anchorStoreName.NewPutter(batch), anchorKey, &storedEntry{anchor.Header, *anchor.State, 0}); err != nil {
		return errors.Wrap(err, "save anchor")
	}
	for key, e := range entries {
		if err := saveRLP(entryBatch, []byte(key), &storedEntry{e.Header, *e.State, e.Height}); err != nil {
			return errors.Wrap(err, "save entry")
		}
	}

	if err := batch.Write(); err != nil {
		logger.Warn("failed to write snapshot", "err", err)
		return errors.Wrap(err, "write snapshot")
	}
	logger.Debug("saved snapshot", "entries", len(entries)+1)
	return nil
}

// Load restores a tracker from a snapshot written by Save. Every entry is
// verified again and must reproduce its saved state, and the best tip is
// chosen afresh.
func Load(store kv.Store, verifier *consensus.Verifier, opts ...Option) (*Tracker, error) {
	var anchor storedEntry
	if err := loadRLP(anchorStoreName.NewGetter(store), anchorKey, &anchor); err != nil {
		return nil, errors.Wrap(err, "load anchor")
	}

	var entries []*storedEntry
	iter := entryStoreName.NewStore(store).Iterate(kv.Range{})
	for iter.Next() {
		var e storedEntry
		if err := rlp.DecodeBytes(iter.Value(), &e); err != nil {
			iter.Release()
			return nil, errors.Wrap(err, "decode entry")
		}
		entries = append(entries, &e)
	}
	iter.Release()
	if err := iter.Error(); err != nil {
		return nil, errors.Wrap(err, "iterate entries")
	}

	// parents first
	slices.SortStableFunc(entries, func(a, b *storedEntry) int {
		switch {
		case a.Height < b.Height:
			return -1
		case a.Height > b.Height:
			return 1
		default:
			return 0
		}
	})

	t := NewTracker(anchor.Header, &anchor.State, verifier, opts...)

	headers := make([]*block.Header, 0, len(entries))
	for _, e := range entries {
		headers = append(headers, e.Header)
	}
	for i, r := range t.ImportBatch(headers) {
		if r.Err != nil {
			return nil, errors.WithMessagef(r.Err, "restore entry %v", headers[i].Hash().AbbrevString())
		}
		if st, _ := t.State(r.Result.Hash); *st != entries[i].State || r.Result.Height != entries[i].Height {
			return nil, errors.Errorf("restore entry %v: state mismatch", headers[i].Hash().AbbrevString())
		}
	}

	best := t.BestTip()
	logger.Debug("loaded snapshot", "entries", t.Len(), "best", best.Hash().AbbrevString(), "weight", best.Weight())
	return t, nil
}
