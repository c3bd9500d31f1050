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

// Package selection picks the unspent boxes that fund a payment
package selection

import (
	"cmp"
	"context"
	"fmt"
	"slices"

	"github.com/blinklabs-io/ergotx/ledger"
	"github.com/blinklabs-io/ergotx/ledger/common"
	"github.com/blinklabs-io/ergotx/schnorr"
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
)

const ergRequirementKey = "ERG"

// BoxFetcher returns the unspent boxes locked to an address
type BoxFetcher interface {
	UnspentBoxes(ctx context.Context, address string) ([]ledger.Box, error)
}

// SortBoxes returns a copy of the boxes ordered by descending ERG value. Boxes with equal value
// keep their original order
func SortBoxes(boxes []ledger.Box) []ledger.Box {
	ret := slices.Clone(boxes)
	slices.SortStableFunc(
		ret,
		func(a, b ledger.Box) int { return cmp.Compare(b.Value, a.Value) },
	)
	return ret
}

// SelectBoxes walks the pool from the highest-value box down, taking boxes until the ERG target
// and every target asset are covered. It returns false when the pool can't cover the target,
// never a partial selection
func SelectBoxes(
	pool []ledger.Box,
	targetErg uint64,
	targetAssets []ledger.Asset,
	opts ...SelectOptionFunc,
) ([]ledger.Box, bool) {
	cfg := newSelectConfig(opts...)
	sorted := SortBoxes(pool)
	remaining := newRequirements(targetErg, targetAssets)
	ret := []ledger.Box{}
	for _, box := range sorted {
		if !remaining.positive() {
			break
		}
		ret = append(ret, box)
		remaining.decrease(ergRequirementKey, box.Value)
		for _, asset := range box.Assets {
			key := asset.TokenId.String()
			if !remaining.tracks(key) {
				continue
			}
			if cfg.legacyTokenAccounting {
				remaining.decrease(key, box.Value)
			} else {
				remaining.decrease(key, asset.Amount)
			}
		}
	}
	if remaining.positive() {
		return nil, false
	}
	if cfg.consolidationLimit > 0 {
		ret = Consolidate(ret, sorted, cfg.consolidationLimit)
	}
	return ret, true
}

// Consolidate extends selected with the highest-value boxes from sortedPool that it doesn't
// already contain, until it holds limit boxes or the pool runs out. A selection already at or
// over the limit is returned as is
func Consolidate(
	selected []ledger.Box,
	sortedPool []ledger.Box,
	limit int,
) []ledger.Box {
	if len(selected) >= limit {
		return selected
	}
	ret := slices.Clone(selected)
	seen := make(map[ledger.BoxId]struct{}, len(selected))
	for _, box := range selected {
		seen[box.Id] = struct{}{}
	}
	for _, box := range sortedPool {
		if len(ret) >= limit {
			break
		}
		if _, ok := seen[box.Id]; ok {
			continue
		}
		seen[box.Id] = struct{}{}
		ret = append(ret, box)
	}
	return ret
}

// SelectBoxesAcrossKeys fetches the boxes of each key in order and retries selection against the
// growing pool after each key, stopping at the first key that makes the selection sufficient.
// Fetched boxes are tagged with their owning key. It returns false when no prefix of the keys
// can cover targetErg plus fee. Fetch errors are returned as is
func SelectBoxesAcrossKeys(
	ctx context.Context,
	fetcher BoxFetcher,
	secretKeys []*secp256k1.PrivateKey,
	networkType uint8,
	targetErg uint64,
	fee uint64,
	opts ...SelectOptionFunc,
) ([]ledger.Box, bool, error) {
	cfg := newSelectConfig(opts...)
	total := targetErg + fee
	if total < targetErg {
		return nil, false, common.InvalidArgumentf(
			"amount %d plus fee %d overflows",
			targetErg,
			fee,
		)
	}
	pool := []ledger.Box{}
	for idx, sk := range secretKeys {
		if sk == nil {
			return nil, false, common.InvalidArgumentf("secret key %d is nil", idx)
		}
		addr, err := common.NewAddressFromPublicKey(
			schnorr.PublicKey(sk),
			networkType,
		)
		if err != nil {
			return nil, false, err
		}
		boxes, err := fetcher.UnspentBoxes(ctx, addr.String())
		if err != nil {
			return nil, false, fmt.Errorf(
				"failed to fetch boxes for %s: %w",
				addr.String(),
				err,
			)
		}
		for _, box := range boxes {
			pool = append(pool, box.WithSecretKey(sk))
		}
		cfg.logger.Debug(
			"fetched unspent boxes",
			"address", addr.String(),
			"boxes", len(boxes),
			"pool", len(pool),
		)
		ret, ok := SelectBoxes(pool, total, cfg.targetAssets, opts...)
		if ok {
			cfg.logger.Debug(
				"selected boxes",
				"keys", idx+1,
				"boxes", len(ret),
			)
			return ret, true, nil
		}
	}
	return nil, false, nil
}

// AssetTotals sums the amount of each token across all boxes, in order of first appearance
func AssetTotals(boxes []ledger.Box) []ledger.Asset {
	ret := []ledger.Asset{}
	index := make(map[ledger.TokenId]int)
	for _, box := range boxes {
		for _, asset := range box.Assets {
			idx, ok := index[asset.TokenId]
			if !ok {
				index[asset.TokenId] = len(ret)
				ret = append(ret, ledger.NewAsset(asset.TokenId, asset.Amount))
				continue
			}
			ret[idx].Amount += asset.Amount
		}
	}
	return ret
}

// requirements tracks how much of ERG and each target token is still needed
type requirements map[string]uint64

func newRequirements(targetErg uint64, targetAssets []ledger.Asset) requirements {
	ret := requirements{ergRequirementKey: targetErg}
	for _, asset := range targetAssets {
		ret[asset.TokenId.String()] += asset.Amount
	}
	return ret
}

func (r requirements) tracks(key string) bool {
	_, ok := r[key]
	return ok
}

func (r requirements) decrease(key string, amount uint64) {
	if r[key] <= amount {
		r[key] = 0
		return
	}
	r[key] -= amount
}

func (r requirements) positive() bool {
	for _, amount := range r {
		if amount > 0 {
			return true
		}
	}
	return false
}
