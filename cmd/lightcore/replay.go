// Copyright (c) 2026 The Lightcore developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
	"gopkg.in/cheggaaa/pb.v1"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/spacetimechain/lightcore/block"
	"github.com/spacetimechain/lightcore/chain"
	"github.com/spacetimechain/lightcore/metrics"
)

// replayAction imports a header file into the snapshot of the data dir.
// Decoding runs ahead of verification by a few batches.
func replayAction(ctx *cli.Context) error {
	params, err := loadParams(ctx)
	if err != nil {
		return err
	}
	batchSize := ctx.Int(batchSizeFlag.Name)
	if batchSize <= 0 {
		return errors.New("batch size must be positive")
	}
	retainDepth := ctx.Uint64(retainDepthFlag.Name)

	if ctx.Bool(enableMetricsFlag.Name) {
		metrics.InitializePrometheusMetrics()
		url, closeFunc, err := startMetricsServer(ctx.String(metricsAddrFlag.Name))
		if err != nil {
			return err
		}
		defer closeFunc()
		logger.Info("metrics server started", "url", url)
	}

	input, err := os.Open(ctx.String(inputFlag.Name))
	if err != nil {
		return errors.Wrap(err, "open input")
	}
	defer input.Close()
	info, err := input.Stat()
	if err != nil {
		return errors.Wrap(err, "stat input")
	}

	store, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer store.Close()

	tracker, err := openTracker(store, newVerifier(ctx, params))
	if err != nil {
		return errors.WithMessage(err, "open snapshot")
	}
	defer tracker.Close()

	bar := pb.New64(info.Size()).
		SetUnits(pb.U_BYTES).
		SetMaxWidth(90).
		Start()
	defer func() { bar.NotPrint = true }()

	var (
		batches                           = make(chan []*block.Header, 4)
		imported, known, rejected, pruned int
	)
	g, gctx := errgroup.WithContext(context.Background())
	g.Go(func() error {
		defer close(batches)
		send := func(batch []*block.Header) error {
			select {
			case batches <- batch:
				return nil
			case <-gctx.Done():
				return gctx.Err()
			}
		}

		batch := make([]*block.Header, 0, batchSize)
		err := readHeaders(bar.NewProxyReader(input), func(h *block.Header) error {
			batch = append(batch, h)
			if len(batch) < batchSize {
				return nil
			}
			if err := send(batch); err != nil {
				return err
			}
			batch = make([]*block.Header, 0, batchSize)
			return nil
		})
		if err != nil {
			return err
		}
		if len(batch) > 0 {
			return send(batch)
		}
		return nil
	})
	g.Go(func() error {
		for batch := range batches {
			for i, r := range tracker.ImportBatch(batch) {
				switch {
				case r.Err == nil:
					imported++
				case errors.Is(r.Err, chain.ErrKnownHeader):
					known++
				default:
					rejected++
					logger.Debug("header rejected", "hash", batch[i].Hash().AbbrevString(), "err", r.Err)
				}
			}
			pruned += tracker.Prune(retainDepth)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return err
	}
	bar.Finish()

	if err := tracker.Save(store); err != nil {
		return errors.WithMessage(err, "save snapshot")
	}

	best := tracker.BestTip()
	fmt.Printf("imported %d, known %d, rejected %d, pruned %d\n", imported, known, rejected, pruned)
	fmt.Printf("best %v height %d slot %d weight %d\n", best.Hash(), best.Height, best.State.LastSlot, best.Weight())
	return nil
}
