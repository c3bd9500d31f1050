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
	"context"
	"errors"
	"testing"

	"github.com/blinklabs-io/ergotx/internal/test"
	"github.com/blinklabs-io/ergotx/ledger"
	"github.com/blinklabs-io/ergotx/ledger/common"
	"github.com/blinklabs-io/ergotx/schnorr"
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func boxId(fill byte) ledger.BoxId {
	return common.NewBlake2b256(test.DecodeHexString(test.TokenIdHex(fill)))
}

func tokenId(fill byte) ledger.TokenId {
	return boxId(fill)
}

func box(fill byte, value uint64, assets ...ledger.Asset) ledger.Box {
	return ledger.Box{Id: boxId(fill), Value: value, Assets: assets}
}

func boxValues(boxes []ledger.Box) []uint64 {
	ret := make([]uint64, 0, len(boxes))
	for _, b := range boxes {
		ret = append(ret, b.Value)
	}
	return ret
}

func TestSelectBoxes(t *testing.T) {
	pool := []ledger.Box{box(0x02, 444), box(0x03, 555)}
	testDefs := []struct {
		amount         uint64
		fee            uint64
		expectedValues []uint64
		expectedOk     bool
	}{
		{amount: 12, fee: 1, expectedValues: []uint64{555}, expectedOk: true},
		{amount: 842, fee: 1, expectedValues: []uint64{555, 444}, expectedOk: true},
		{amount: 554, fee: 1, expectedValues: []uint64{555}, expectedOk: true},
		{amount: 555, fee: 1, expectedValues: []uint64{555, 444}, expectedOk: true},
		{amount: 999, fee: 0, expectedValues: []uint64{555, 444}, expectedOk: true},
		{amount: 999, fee: 1, expectedOk: false},
		{amount: 12121212, fee: 1, expectedOk: false},
	}
	for _, testDef := range testDefs {
		ret, ok := SelectBoxes(pool, testDef.amount+testDef.fee, nil)
		assert.Equal(t, testDef.expectedOk, ok, "amount %d", testDef.amount)
		if !testDef.expectedOk {
			assert.Nil(t, ret)
			continue
		}
		assert.Equal(t, testDef.expectedValues, boxValues(ret), "amount %d", testDef.amount)
	}
	// The pool itself is left untouched
	assert.Equal(t, []uint64{444, 555}, boxValues(pool))
}

func TestSelectBoxesStableTies(t *testing.T) {
	pool := []ledger.Box{box(0x01, 100), box(0x02, 300), box(0x03, 100), box(0x04, 100)}
	ret, ok := SelectBoxes(pool, 450, nil)
	require.True(t, ok)
	require.Len(t, ret, 3)
	assert.Equal(t, boxId(0x02), ret[0].Id)
	assert.Equal(t, boxId(0x01), ret[1].Id)
	assert.Equal(t, boxId(0x03), ret[2].Id)
}

func TestSelectBoxesEmptyPool(t *testing.T) {
	_, ok := SelectBoxes(nil, 1, nil)
	assert.False(t, ok)
	ret, ok := SelectBoxes(nil, 0, nil)
	assert.True(t, ok)
	assert.Empty(t, ret)
}

func TestSelectBoxesAssets(t *testing.T) {
	pool := []ledger.Box{
		box(0x01, 1000, ledger.NewAsset(tokenId(0xaa), 1)),
		box(0x02, 500),
		box(0x03, 100, ledger.NewAsset(tokenId(0xaa), 4)),
		box(0x04, 50, ledger.NewAsset(tokenId(0xbb), 9)),
	}
	// The ERG target is covered by the first box, but the token needs the third
	ret, ok := SelectBoxes(pool, 10, []ledger.Asset{ledger.NewAsset(tokenId(0xaa), 5)})
	require.True(t, ok)
	assert.Equal(t, []uint64{1000, 500, 100}, boxValues(ret))
	// Not enough of the token anywhere
	_, ok = SelectBoxes(pool, 10, []ledger.Asset{ledger.NewAsset(tokenId(0xaa), 6)})
	assert.False(t, ok)
	// Untracked tokens in a box don't count toward anything
	_, ok = SelectBoxes(pool, 10, []ledger.Asset{ledger.NewAsset(tokenId(0xcc), 1)})
	assert.False(t, ok)
	// Duplicate target entries are summed
	ret, ok = SelectBoxes(
		pool,
		10,
		[]ledger.Asset{
			ledger.NewAsset(tokenId(0xbb), 4),
			ledger.NewAsset(tokenId(0xbb), 5),
		},
	)
	require.True(t, ok)
	assert.Len(t, ret, 4)
}

func TestSelectBoxesLegacyTokenAccounting(t *testing.T) {
	pool := []ledger.Box{
		box(0x01, 1000, ledger.NewAsset(tokenId(0xaa), 1)),
		box(0x02, 100, ledger.NewAsset(tokenId(0xaa), 4)),
	}
	target := []ledger.Asset{ledger.NewAsset(tokenId(0xaa), 5)}
	// The token remainder drops by the box's ERG value, so one box appears to be enough
	ret, ok := SelectBoxes(pool, 10, target, WithLegacyTokenAccounting())
	require.True(t, ok)
	assert.Equal(t, []uint64{1000}, boxValues(ret))
	// Counting actual token amounts needs both boxes
	ret, ok = SelectBoxes(pool, 10, target)
	require.True(t, ok)
	assert.Equal(t, []uint64{1000, 100}, boxValues(ret))
}

func TestSelectBoxesConsolidation(t *testing.T) {
	pool := []ledger.Box{}
	for i := range 12 {
		pool = append(pool, box(byte(i+1), uint64(i+1)))
	}
	ret, ok := SelectBoxes(pool, 20, nil, WithConsolidation(DefaultConsolidationLimit))
	require.True(t, ok)
	assert.Equal(t, []uint64{12, 11, 10, 9, 8, 7, 6, 5, 4, 3}, boxValues(ret))
	// A short pool is returned in full
	ret, ok = SelectBoxes(pool[:3], 3, nil, WithConsolidation(DefaultConsolidationLimit))
	require.True(t, ok)
	assert.Equal(t, []uint64{3, 2, 1}, boxValues(ret))
	// Selections already over the limit are not trimmed
	ret, ok = SelectBoxes(pool, 70, nil, WithConsolidation(3))
	require.True(t, ok)
	assert.Equal(t, []uint64{12, 11, 10, 9, 8, 7, 6, 5, 4}, boxValues(ret))
}

func TestConsolidate(t *testing.T) {
	current := []ledger.Box{box(0x01, 1), box(0x02, 2), box(0x03, 3)}
	all := []ledger.Box{}
	for i := range 10 {
		all = append(all, box(byte(i+1), uint64(i+1)))
	}
	ret := Consolidate(current, all, 10)
	require.Len(t, ret, 10)
	assert.Equal(t, []uint64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, boxValues(ret))
	full := all[:10]
	assert.Equal(t, full, Consolidate(full, append(all, box(0x0b, 11)), 10))
}

func TestAssetTotals(t *testing.T) {
	boxes := []ledger.Box{
		box(0x01, 1, ledger.NewAsset(tokenId(0xbb), 2), ledger.NewAsset(tokenId(0xaa), 1)),
		box(0x02, 1),
		box(0x03, 1, ledger.NewAsset(tokenId(0xaa), 10), ledger.NewAsset(tokenId(0xcc), 7)),
		box(0x04, 1, ledger.NewAsset(tokenId(0xbb), 3)),
	}
	assert.Equal(
		t,
		[]ledger.Asset{
			ledger.NewAsset(tokenId(0xbb), 5),
			ledger.NewAsset(tokenId(0xaa), 11),
			ledger.NewAsset(tokenId(0xcc), 7),
		},
		AssetTotals(boxes),
	)
	assert.Empty(t, AssetTotals(nil))
}

type fakeFetcher struct {
	boxes   map[string][]ledger.Box
	err     error
	fetched []string
}

func (f *fakeFetcher) UnspentBoxes(
	_ context.Context,
	address string,
) ([]ledger.Box, error) {
	f.fetched = append(f.fetched, address)
	if f.err != nil {
		return nil, f.err
	}
	return f.boxes[address], nil
}

func testnetAddress(t *testing.T, sk *secp256k1.PrivateKey) string {
	t.Helper()
	addr, err := common.AddressFromPublicKey(schnorr.PublicKey(sk), true)
	require.NoError(t, err)
	return addr
}

func TestSelectBoxesAcrossKeys(t *testing.T) {
	keys := []*secp256k1.PrivateKey{
		test.SecretKeyFromUint(1),
		test.SecretKeyFromUint(2),
		test.SecretKeyFromUint(3),
	}
	fetcher := &fakeFetcher{
		boxes: map[string][]ledger.Box{
			testnetAddress(t, keys[0]): {box(0x01, 300)},
			testnetAddress(t, keys[1]): {box(0x02, 500), box(0x03, 50)},
			testnetAddress(t, keys[2]): {box(0x04, 10000)},
		},
	}
	ret, ok, err := SelectBoxesAcrossKeys(
		context.Background(),
		fetcher,
		keys,
		common.AddressNetworkTestnet,
		700,
		10,
	)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []uint64{500, 300}, boxValues(ret))
	// Boxes are tagged with their owning key
	assert.Same(t, keys[1], ret[0].SecretKey)
	assert.Same(t, keys[0], ret[1].SecretKey)
	// The third key was never needed
	assert.Equal(
		t,
		[]string{testnetAddress(t, keys[0]), testnetAddress(t, keys[1])},
		fetcher.fetched,
	)
}

func TestSelectBoxesAcrossKeysInsufficient(t *testing.T) {
	keys := []*secp256k1.PrivateKey{test.SecretKeyFromUint(1)}
	fetcher := &fakeFetcher{
		boxes: map[string][]ledger.Box{
			testnetAddress(t, keys[0]): {box(0x01, 300)},
		},
	}
	ret, ok, err := SelectBoxesAcrossKeys(
		context.Background(),
		fetcher,
		keys,
		common.AddressNetworkTestnet,
		300,
		1,
	)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, ret)
}

func TestSelectBoxesAcrossKeysWithAssets(t *testing.T) {
	keys := []*secp256k1.PrivateKey{test.SecretKeyFromUint(1), test.SecretKeyFromUint(2)}
	fetcher := &fakeFetcher{
		boxes: map[string][]ledger.Box{
			testnetAddress(t, keys[0]): {box(0x01, 5000)},
			testnetAddress(t, keys[1]): {box(0x02, 100, ledger.NewAsset(tokenId(0xaa), 3))},
		},
	}
	ret, ok, err := SelectBoxesAcrossKeys(
		context.Background(),
		fetcher,
		keys,
		common.AddressNetworkTestnet,
		100,
		1,
		WithTargetAssets([]ledger.Asset{ledger.NewAsset(tokenId(0xaa), 3)}),
	)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []uint64{5000, 100}, boxValues(ret))
}

func TestSelectBoxesAcrossKeysErrors(t *testing.T) {
	fetchErr := errors.New("connection refused")
	fetcher := &fakeFetcher{err: fetchErr}
	_, ok, err := SelectBoxesAcrossKeys(
		context.Background(),
		fetcher,
		[]*secp256k1.PrivateKey{test.SecretKeyFromUint(1)},
		common.AddressNetworkTestnet,
		1,
		1,
	)
	assert.False(t, ok)
	assert.ErrorIs(t, err, fetchErr)

	_, _, err = SelectBoxesAcrossKeys(
		context.Background(),
		&fakeFetcher{},
		[]*secp256k1.PrivateKey{nil},
		common.AddressNetworkTestnet,
		1,
		1,
	)
	assert.ErrorIs(t, err, common.ErrInvalidArgument)

	_, _, err = SelectBoxesAcrossKeys(
		context.Background(),
		&fakeFetcher{},
		[]*secp256k1.PrivateKey{test.SecretKeyFromUint(1)},
		common.AddressNetworkTestnet,
		^uint64(0),
		1,
	)
	assert.ErrorIs(t, err, common.ErrInvalidArgument)
}
