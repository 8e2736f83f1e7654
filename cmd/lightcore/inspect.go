// Copyright (c) 2026 The Lightcore developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"fmt"

	"github.com/davecgh/go-spew/spew"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/pkg/errors"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/spacetimechain/lightcore/chain"
	"github.com/spacetimechain/lightcore/spacetime"
)

var dumper = spew.ConfigState{
	Indent:                  "  ",
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	DisableMethods:          true,
}

func inspectAction(ctx *cli.Context) error {
	params, err := loadParams(ctx)
	if err != nil {
		return err
	}
	store, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer store.Close()

	tracker, err := chain.Load(store, newVerifier(ctx, params))
	if err != nil {
		return errors.WithMessage(err, "load snapshot")
	}
	defer tracker.Close()

	if s := ctx.String(hashFlag.Name); s != "" {
		hash, err := spacetime.ParseBytes32(s)
		if err != nil {
			return errors.Wrap(err, "-hash")
		}
		entry, err := tracker.Entry(hash)
		if err != nil {
			return err
		}
		printEntry(tracker, entry)
		return nil
	}

	anchor, best := tracker.Anchor(), tracker.BestTip()
	fmt.Printf("anchor  %v slot %d\n", anchor.Hash(), anchor.Header.Slot())
	fmt.Printf("best    %v height %d slot %d weight %d\n", best.Hash(), best.Height, best.State.LastSlot, best.Weight())
	fmt.Printf("entries %d\n", tracker.Len())
	fmt.Println("heads:")
	for _, head := range tracker.Heads() {
		fork, err := tracker.FindForkPoint(head.Hash(), best.Hash())
		if err != nil {
			return err
		}
		fmt.Printf("  %v height %d weight %d fork %d\n", head.Hash(), head.Height, head.Weight(), fork.Height)
	}
	return nil
}

func printEntry(tracker *chain.Tracker, entry *chain.Entry) {
	sol := entry.Header.Solution()
	fmt.Println(entry.Header)
	fmt.Printf("height    %d\n", entry.Height)
	fmt.Printf("canonical %v\n", tracker.IsCanonical(entry.Hash()))
	fmt.Printf("farmer    %v\n", hexutil.Encode(sol.PublicKey))
	fmt.Print(dumper.Sdump(entry.State))
}
