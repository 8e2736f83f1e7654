// Copyright (c) 2026 The Lightcore developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// lightcore is a developer tool around the light client header tree: it farms
// synthetic chains, replays header files into a snapshot and inspects it.
package main

import (
	"fmt"
	"os"

	cli "gopkg.in/urfave/cli.v1"
)

var (
	version   string
	gitCommit string
)

func main() {
	app := cli.App{
		Version: fmt.Sprintf("%s-%s", version, gitCommit),
		Name:    "lightcore",
		Usage:   "PoST light client header tree tool",
		Flags: []cli.Flag{
			paramsFlag,
			verbosityFlag,
			jsonLogsFlag,
		},
		Before: initLogger,
		Commands: []cli.Command{
			{
				Name:   "params",
				Usage:  "print the effective protocol params",
				Action: paramsAction,
			},
			{
				Name:  "generate",
				Usage: "farm a synthetic header chain into a file",
				Flags: []cli.Flag{
					outputFlag,
					countFlag,
					farmersFlag,
					seedFlag,
					announceFlag,
				},
				Action: generateAction,
			},
			{
				Name:  "replay",
				Usage: "import a header file into the snapshot",
				Flags: []cli.Flag{
					dataDirFlag,
					inputFlag,
					batchSizeFlag,
					retainDepthFlag,
					qualityWeightFlag,
					enableMetricsFlag,
					metricsAddrFlag,
				},
				Action: replayAction,
			},
			{
				Name:  "inspect",
				Usage: "print the heads of the snapshot, or one entry",
				Flags: []cli.Flag{
					dataDirFlag,
					hashFlag,
					qualityWeightFlag,
				},
				Action: inspectAction,
			},
		},
	}
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
