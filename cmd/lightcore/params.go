// Copyright (c) 2026 The Lightcore developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"os"

	cli "gopkg.in/urfave/cli.v1"
	"gopkg.in/yaml.v3"
)

func paramsAction(ctx *cli.Context) error {
	params, err := loadParams(ctx)
	if err != nil {
		return err
	}
	enc := yaml.NewEncoder(os.Stdout)
	defer enc.Close()
	return enc.Encode(params)
}
