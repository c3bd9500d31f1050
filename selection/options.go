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

package selection

import (
	"log/slog"

	"github.com/blinklabs-io/ergotx/ledger"
)

// DefaultConsolidationLimit is the number of boxes a selection is topped up to when
// consolidation is enabled
const DefaultConsolidationLimit = 10

// SelectOptionFunc is a type that represents functions that modify the selection config
type SelectOptionFunc func(*selectConfig)

type selectConfig struct {
	consolidationLimit    int
	legacyTokenAccounting bool
	targetAssets          []ledger.Asset
	logger                *slog.Logger
}

func newSelectConfig(opts ...SelectOptionFunc) *selectConfig {
	c := &selectConfig{}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	return c
}

// WithConsolidation tops up a sufficient selection with the next highest-value boxes until it
// holds limit boxes or the pool runs out. A limit of 0 disables consolidation
func WithConsolidation(limit int) SelectOptionFunc {
	return func(c *selectConfig) {
		c.consolidationLimit = limit
	}
}

// WithLegacyTokenAccounting decreases a token's remaining requirement by the ERG value of each
// box carrying the token, rather than by the token amount in the box. This matches the
// behavior of older wallets and over-counts tokens held in high-value boxes
func WithLegacyTokenAccounting() SelectOptionFunc {
	return func(c *selectConfig) {
		c.legacyTokenAccounting = true
	}
}

// WithTargetAssets specifies token amounts that must be covered in addition to ERG. It is
// used by SelectBoxesAcrossKeys
func WithTargetAssets(assets []ledger.Asset) SelectOptionFunc {
	return func(c *selectConfig) {
		c.targetAssets = assets
	}
}

// WithLogger specifies the logger to use. If none is provided, slog.Default() is used
func WithLogger(logger *slog.Logger) SelectOptionFunc {
	return func(c *selectConfig) {
		c.logger = logger
	}
}
