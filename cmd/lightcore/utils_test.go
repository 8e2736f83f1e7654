// Copyright (c) 2026 The Lightcore developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"bytes"
	"testing"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spacetimechain/lightcore/block"
	"github.com/spacetimechain/lightcore/consensus"
	"github.com/spacetimechain/lightcore/lvldb"
	"github.com/spacetimechain/lightcore/test/testchain"
)

func TestReadHeaders(t *testing.T) {
	params := testchain.NewParams()
	farmer := testchain.NewFarmer(consensus.NewVerifier(params))
	links := farmer.MustExtend(testchain.GenesisLink(params), 1, 2, 3)

	var buf bytes.Buffer
	for _, l := range links {
		require.NoError(t, rlp.Encode(&buf, l.Header))
	}
	data := buf.Bytes()

	var got []*block.Header
	require.NoError(t, readHeaders(bytes.NewReader(data), func(h *block.Header) error {
		got = append(got, h)
		return nil
	}))
	require.Len(t, got, len(links))
	for i, l := range links {
		assert.Equal(t, l.Header.Hash(), got[i].Hash())
	}

	err := readHeaders(bytes.NewReader(data[:len(data)-1]), func(*block.Header) error { return nil })
	assert.Error(t, err)

	assert.NoError(t, readHeaders(bytes.NewReader(nil), func(*block.Header) error {
		t.Fatal("unexpected header")
		return nil
	}))
}

func TestOpenTrackerFromGenesis(t *testing.T) {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	defer db.Close()

	params := testchain.NewParams()
	verifier := consensus.NewVerifier(params)
	tracker, err := openTracker(db, verifier)
	require.NoError(t, err)
	assert.Equal(t, 1, tracker.Len())
	assert.Equal(t, consensus.GenesisHeader(params).Hash(), tracker.BestTip().Hash())

	links := testchain.NewFarmer(verifier).MustExtend(testchain.GenesisLink(params), 1, 2)
	for _, l := range links {
		_, err := tracker.ImportHeader(l.Header)
		require.NoError(t, err)
	}
	require.NoError(t, tracker.Save(db))

	tracker, err = openTracker(db, verifier)
	require.NoError(t, err)
	assert.Equal(t, links[1].Header.Hash(), tracker.BestTip().Hash())
}
