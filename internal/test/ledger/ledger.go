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

package test_ledger

import (
	"context"
	"errors"
	"slices"
	"sync"

	"github.com/blinklabs-io/ergotx/ledger"
	"github.com/blinklabs-io/ergotx/selection"
)

// Compile-time check that MockBackend can feed box selection
var _ selection.BoxFetcher = (*MockBackend)(nil)

// MockBackend is the canonical internal mock of the explorer used by tests. Tests should
// construct &test_ledger.MockBackend{} and configure fields (e.g. BoxesByAddress,
// HeightVal, BroadcastFunc) to control behavior. Keeping this in an internal package
// prevents external consumers from depending on test-only APIs while allowing in-repo
// tests to reuse the same mock.
type MockBackend struct {
	// BoxesByAddress holds the unspent boxes returned for each address
	BoxesByAddress map[string][]ledger.Box
	HeightVal      uint64
	// UnspentBoxesFunc optionally overrides box lookup.
	// If nil, BoxesByAddress is consulted.
	UnspentBoxesFunc func(string) ([]ledger.Box, error)
	// CurrentHeightFunc optionally overrides the height lookup.
	// If nil, HeightVal is returned.
	CurrentHeightFunc func() (uint64, error)
	// BroadcastFunc optionally overrides submission.
	// If nil, the transaction ID is returned.
	BroadcastFunc func(*ledger.Transaction) (string, error)

	mu          sync.Mutex
	fetched     []string
	broadcasted []*ledger.Transaction
}

func (m *MockBackend) UnspentBoxes(
	ctx context.Context,
	address string,
) ([]ledger.Box, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.Lock()
	m.fetched = append(m.fetched, address)
	m.mu.Unlock()
	if m.UnspentBoxesFunc != nil {
		return m.UnspentBoxesFunc(address)
	}
	return slices.Clone(m.BoxesByAddress[address]), nil
}

func (m *MockBackend) CurrentHeight(ctx context.Context) (uint64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if m.CurrentHeightFunc != nil {
		return m.CurrentHeightFunc()
	}
	return m.HeightVal, nil
}

func (m *MockBackend) Broadcast(
	ctx context.Context,
	tx *ledger.Transaction,
) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if tx == nil {
		return "", errors.New("MockBackend.Broadcast called with nil transaction")
	}
	m.mu.Lock()
	m.broadcasted = append(m.broadcasted, tx)
	m.mu.Unlock()
	if m.BroadcastFunc != nil {
		return m.BroadcastFunc(tx)
	}
	return tx.Id().String(), nil
}

// FetchedAddresses returns the addresses passed to UnspentBoxes, in call order
func (m *MockBackend) FetchedAddresses() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.fetched)
}

// Broadcasted returns the transactions passed to Broadcast, in call order
func (m *MockBackend) Broadcasted() []*ledger.Transaction {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.broadcasted)
}
