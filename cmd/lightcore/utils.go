// Copyright (c) 2026 The Lightcore developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"io"
	"os"
	"path/filepath"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/spacetimechain/lightcore/block"
	"github.com/spacetimechain/lightcore/chain"
	"github.com/spacetimechain/lightcore/consensus"
	"github.com/spacetimechain/lightcore/log"
	"github.com/spacetimechain/lightcore/lvldb"
	"github.com/spacetimechain/lightcore/spacetime"
)

var logger = log.WithContext("pkg", "main")

func initLogger(ctx *cli.Context) error {
	level := log.FromVerbosity(ctx.GlobalInt(verbosityFlag.Name))
	if ctx.GlobalBool(jsonLogsFlag.Name) {
		log.SetDefault(log.NewJSONHandler(os.Stderr, level))
		return nil
	}
	fd := os.Stderr.Fd()
	useColor := (isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)) && os.Getenv("TERM") != "dumb"
	log.SetDefault(log.NewTerminalHandler(os.Stderr, level, useColor))
	return nil
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".lightcore"
	}
	return filepath.Join(home, ".lightcore")
}

func loadParams(ctx *cli.Context) (*spacetime.Params, error) {
	path := ctx.GlobalString(paramsFlag.Name)
	if path == "" {
		params := spacetime.DefaultParams()
		return &params, nil
	}
	params, err := spacetime.LoadParams(path)
	if err != nil {
		return nil, err
	}
	return &params, nil
}

func newVerifier(ctx *cli.Context, params *spacetime.Params) *consensus.Verifier {
	if ctx.Bool(qualityWeightFlag.Name) {
		return consensus.NewVerifier(params, consensus.WithWeight(consensus.QualityWeight))
	}
	return consensus.NewVerifier(params)
}

func openStore(ctx *cli.Context) (*lvldb.LevelDB, error) {
	dir := ctx.String(dataDirFlag.Name)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, errors.Wrap(err, "create data dir")
	}
	return lvldb.New(filepath.Join(dir, "snapshot"), lvldb.Options{
		CacheSize:              16,
		OpenFilesCacheCapacity: 64,
	})
}

// openTracker restores the snapshot in the store, or starts a tree at genesis
// if there is none.
func openTracker(store *lvldb.LevelDB, verifier *consensus.Verifier) (*chain.Tracker, error) {
	tracker, err := chain.Load(store, verifier)
	if err == nil {
		return tracker, nil
	}
	if !store.IsNotFound(err) {
		return nil, err
	}
	params := verifier.Params()
	st := consensus.GenesisState(params)
	logger.Info("no snapshot found, starting from genesis")
	return chain.NewTracker(consensus.GenesisHeader(params), &st, verifier), nil
}

// readHeaders decodes a stream of RLP encoded headers.
func readHeaders(r io.Reader, fn func(*block.Header) error) error {
	s := rlp.NewStream(r, 0)
	for {
		var header block.Header
		if err := s.Decode(&header); err != nil {
			if err == io.EOF {
				return nil
			}
			return errors.Wrap(err, "decode header")
		}
		if err := fn(&header); err != nil {
			return err
		}
	}
}
