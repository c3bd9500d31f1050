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

package common

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/blinklabs-io/ergotx/explorer"
	ledgercommon "github.com/blinklabs-io/ergotx/ledger/common"
)

// GlobalFlags are accepted by every subcommand
type GlobalFlags struct {
	Testnet     bool          `long:"testnet" description:"Use the test network"`
	ExplorerURL string        `long:"explorer-url" env:"ERGOTX_EXPLORER_URL" description:"Explorer API base URL (defaults to the public explorer for the network)"`
	SubmitURL   string        `long:"submit-url" env:"ERGOTX_SUBMIT_URL" description:"Transaction submission API base URL (defaults to the explorer URL)"`
	Timeout     time.Duration `long:"timeout" default:"5s" description:"Timeout for each API request"`
	Debug       bool          `long:"debug" description:"Enable debug logging"`
}

// Network returns the network selected by the flags
func (f *GlobalFlags) Network() explorer.Network {
	if f.Testnet {
		return explorer.NetworkTestnet
	}
	return explorer.NetworkMainnet
}

// NetworkType returns the address network type selected by the flags
func (f *GlobalFlags) NetworkType() uint8 {
	if f.Testnet {
		return ledgercommon.AddressNetworkTestnet
	}
	return ledgercommon.AddressNetworkMainnet
}

// NewLogger returns a text logger writing to stderr at the level selected by the flags
func (f *GlobalFlags) NewLogger() *slog.Logger {
	level := slog.LevelInfo
	if f.Debug {
		level = slog.LevelDebug
	}
	return slog.New(
		slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}),
	)
}

// PrintErrorAndExit prints the error to stderr and exits with a non-zero status
func PrintErrorAndExit(err error) {
	fmt.Fprintf(os.Stderr, "ERROR: %s\n", err)
	os.Exit(1)
}
