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
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/blinklabs-io/ergotx/cmd/common"
)

func main() {
	subCmd, config, globalFlags, err := parseArgs(os.Args[1:])
	if err != nil {
		if errors.Is(err, errHelp) {
			os.Exit(0)
		}
		// go-flags already printed the error
		os.Exit(1)
	}
	logger := globalFlags.NewLogger()
	slog.SetDefault(logger)
	ctx := context.Background()

	switch subCmd {
	case addressSubCmd:
		err = showAddress(config.(*addressConfig), globalFlags, os.Stdout)
	case validateAddressSubCmd:
		err = validateAddress(config.(*validateAddressConfig), os.Stdout)
	case sendSubCmd:
		err = send(ctx, config.(*sendConfig), globalFlags, logger, os.Stdout)
	case broadcastSubCmd:
		err = broadcast(ctx, config.(*broadcastConfig), globalFlags, logger, os.Stdout)
	case signMessageSubCmd:
		err = signMessage(config.(*signMessageConfig), os.Stdout)
	case verifyMessageSubCmd:
		err = verifyMessage(config.(*verifyMessageConfig), os.Stdout)
	default:
		err = fmt.Errorf("unknown sub-command '%s'", subCmd)
	}

	if err != nil {
		common.PrintErrorAndExit(err)
	}
}
