// Copyright (c) 2026 The Lightcore developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	cli "gopkg.in/urfave/cli.v1"
)

var (
	paramsFlag = cli.StringFlag{
		Name:  "params",
		Usage: "protocol params YAML file, built-in defaults if omitted",
	}
	verbosityFlag = cli.IntFlag{
		Name:  "verbosity",
		Value: 3,
		Usage: "log verbosity (0-5)",
	}
	jsonLogsFlag = cli.BoolFlag{
		Name:  "json-logs",
		Usage: "output logs in JSON format",
	}
	dataDirFlag = cli.StringFlag{
		Name:  "data-dir",
		Value: defaultDataDir(),
		Usage: "directory to store the header tree snapshot",
	}
	inputFlag = cli.StringFlag{
		Name:  "input",
		Usage: "file of RLP encoded headers",
	}
	outputFlag = cli.StringFlag{
		Name:  "output",
		Value: "headers.rlp",
		Usage: "file to write RLP encoded headers to",
	}
	countFlag = cli.IntFlag{
		Name:  "count",
		Value: 1000,
		Usage: "number of headers to generate",
	}
	farmersFlag = cli.IntFlag{
		Name:  "farmers",
		Value: 4,
		Usage: "number of farmers taking turns",
	}
	seedFlag = cli.Uint64Flag{
		Name:  "seed",
		Usage: "seed of the slot gaps, 0 for a random one",
	}
	announceFlag = cli.BoolFlag{
		Name:  "announce",
		Usage: "attach salt, randomness and solution range digests at boundary slots",
	}
	batchSizeFlag = cli.IntFlag{
		Name:  "batch-size",
		Value: 256,
		Usage: "headers verified in parallel per batch",
	}
	retainDepthFlag = cli.Uint64Flag{
		Name:  "retain-depth",
		Value: 1024,
		Usage: "keep branches forking at most this many headers below the best tip",
	}
	qualityWeightFlag = cli.BoolFlag{
		Name:  "quality-weight",
		Usage: "weigh headers by solution quality instead of counting them",
	}
	hashFlag = cli.StringFlag{
		Name:  "hash",
		Usage: "hash of the entry to print",
	}
	enableMetricsFlag = cli.BoolFlag{
		Name:  "enable-metrics",
		Usage: "enables metrics collection",
	}
	metricsAddrFlag = cli.StringFlag{
		Name:  "metrics-addr",
		Value: "localhost:2112",
		Usage: "metrics service listening address",
	}
)
