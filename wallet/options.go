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

package wallet

import (
	"log/slog"

	"github.com/blinklabs-io/ergotx/ledger/common"
)

// WalletOptionFunc is a type that represents functions that modify the Wallet config
type WalletOptionFunc func(*Wallet)

// WithNetwork specifies the address network type. The default is mainnet
func WithNetwork(networkType uint8) WalletOptionFunc {
	return func(w *Wallet) {
		w.networkType = networkType
	}
}

// WithTestnet is a shorthand for WithNetwork(common.AddressNetworkTestnet)
func WithTestnet() WalletOptionFunc {
	return WithNetwork(common.AddressNetworkTestnet)
}

// WithConsolidation specifies how many boxes a payment tops its inputs up to. The default is
// selection.DefaultConsolidationLimit and 0 spends only the boxes the payment needs
func WithConsolidation(limit int) WalletOptionFunc {
	return func(w *Wallet) {
		w.consolidationLimit = limit
	}
}

// WithLegacyTokenAccounting makes box selection count token requirements the way older
// wallets did. See selection.WithLegacyTokenAccounting
func WithLegacyTokenAccounting() WalletOptionFunc {
	return func(w *Wallet) {
		w.legacyTokenAccounting = true
	}
}

// WithLogger specifies the logger to use. If none is provided, slog.Default() is used
func WithLogger(logger *slog.Logger) WalletOptionFunc {
	return func(w *Wallet) {
		w.logger = logger
	}
}
