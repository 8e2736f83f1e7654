// Copyright (c) 2026 The Lightcore developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package co_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/spacetimechain/lightcore/co"
)

func TestSignal_BroadcastBeforeWait(t *testing.T) {
	var sig co.Signal
	w := sig.NewWaiter()
	sig.Broadcast()

	select {
	case <-w.C():
	default:
		t.Fatal("missed broadcast")
	}
}

func TestSignal_NewWaiterAfterBroadcast(t *testing.T) {
	var sig co.Signal
	sig.Broadcast()

	var n int
	for range 10 {
		select {
		case <-sig.NewWaiter().C():
		default:
			n++
		}
	}
	assert.Equal(t, 10, n)
}

func TestSignal_BroadcastAfterWait(t *testing.T) {
	var sig co.Signal

	var ws []co.Waiter
	for range 10 {
		ws = append(ws, sig.NewWaiter())
	}
	chs := make([]<-chan struct{}, 0, len(ws))
	for _, w := range ws {
		chs = append(chs, w.C())
	}

	sig.Broadcast()

	for _, ch := range chs {
		<-ch
	}
}
