// Copyright (c) 2026 The Lightcore developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"bufio"
	"fmt"
	"math/rand/v2"
	"os"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/pkg/errors"
	"gopkg.in/cheggaaa/pb.v1"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/spacetimechain/lightcore/consensus"
	"github.com/spacetimechain/lightcore/test/testchain"
)

// generateAction farms a single chain on top of genesis. Farmers take turns
// and slot gaps average the expected block interval.
func generateAction(ctx *cli.Context) error {
	params, err := loadParams(ctx)
	if err != nil {
		return err
	}
	count := ctx.Int(countFlag.Name)
	nFarmers := ctx.Int(farmersFlag.Name)
	if count <= 0 || nFarmers <= 0 {
		return errors.New("count and farmers must be positive")
	}
	seed := ctx.Uint64(seedFlag.Name)
	if seed == 0 {
		seed = rand.Uint64()
	}
	rnd := rand.New(rand.NewPCG(seed, seed))

	verifier := consensus.NewVerifier(params)
	farmers := make([]*testchain.Farmer, nFarmers)
	for i := range farmers {
		farmers[i] = testchain.NewFarmer(verifier)
		farmers[i].SetAnnounce(ctx.Bool(announceFlag.Name))
	}

	f, err := os.Create(ctx.String(outputFlag.Name))
	if err != nil {
		return errors.Wrap(err, "create output")
	}
	defer f.Close()
	w := bufio.NewWriter(f)

	bar := pb.New(count).
		SetMaxWidth(90).
		Start()
	defer func() { bar.NotPrint = true }()

	var (
		parent  = testchain.GenesisLink(params)
		slot    = parent.Header.Slot()
		maxGap  = 2*params.SlotsPerBlock - 1
		retries int
	)
	for i := 0; i < count; {
		slot += 1 + rnd.Uint64N(maxGap)
		links, err := farmers[i%nFarmers].Extend(parent, slot)
		if err != nil {
			if errors.Is(err, testchain.ErrNoSolution) {
				retries++
				continue
			}
			return err
		}
		if err := rlp.Encode(w, links[0].Header); err != nil {
			return errors.Wrap(err, "write header")
		}
		parent = links[0]
		bar.Increment()
		i++
	}
	bar.Finish()

	if err := w.Flush(); err != nil {
		return errors.Wrap(err, "write output")
	}
	logger.Debug("generated chain", "seed", seed, "retries", retries)
	fmt.Printf("wrote %d headers to %s\n", count, f.Name())
	fmt.Printf("tip %v slot %d weight %d range %d\n",
		parent.Header.Hash(), parent.State.LastSlot, parent.State.Weight, parent.State.SolutionRange)
	return nil
}
