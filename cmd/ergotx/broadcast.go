// Copyright 2025 Blink Labs Software
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/blinklabs-io/ergotx/cmd/common"
)

func broadcast(
	ctx context.Context,
	conf *broadcastConfig,
	globalFlags *common.GlobalFlags,
	logger *slog.Logger,
	out io.Writer,
) error {
	env, err := readEnvelope(conf.InFile)
	if err != nil {
		return err
	}
	if env.NetworkType != globalFlags.NetworkType() {
		return fmt.Errorf(
			"transaction file is for network type %d, but %s was selected",
			env.NetworkType,
			globalFlags.Network(),
		)
	}
	client, err := common.CreateExplorerClient(globalFlags, logger)
	if err != nil {
		return err
	}
	txId, err := client.Broadcast(ctx, &env.Transaction)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, txId)
	return nil
}
