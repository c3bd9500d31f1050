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
	"context"
	"errors"
	"testing"

	"github.com/blinklabs-io/ergotx/internal/test"
	test_ledger "github.com/blinklabs-io/ergotx/internal/test/ledger"
	"github.com/blinklabs-io/ergotx/ledger"
	"github.com/blinklabs-io/ergotx/ledger/common"
	"github.com/blinklabs-io/ergotx/schnorr"
	"github.com/blinklabs-io/ergotx/txbuilder"
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Compile-time check that the mock satisfies Backend
var _ Backend = (*test_ledger.MockBackend)(nil)

const testHeight = 512345

func boxId(fill byte) ledger.BoxId {
	return common.NewBlake2b256(test.DecodeHexString(test.TokenIdHex(fill)))
}

func ownedBox(sk *secp256k1.PrivateKey, fill byte, value uint64, assets ...ledger.Asset) ledger.Box {
	return ledger.Box{
		Id:             boxId(fill),
		Value:          value,
		Assets:         assets,
		ErgoTree:       common.P2PKErgoTree(schnorr.PublicKey(sk)),
		CreationHeight: 1000,
	}
}

func testnetAddress(t *testing.T, sk *secp256k1.PrivateKey) string {
	t.Helper()
	addr, err := common.AddressFromPublicKey(schnorr.PublicKey(sk), true)
	require.NoError(t, err)
	return addr
}

func verifyInputs(t *testing.T, tx *ledger.Transaction, keys map[ledger.BoxId]*secp256k1.PrivateKey) {
	t.Helper()
	require.True(t, tx.IsSigned())
	msg := tx.BytesToSign()
	for _, input := range tx.Inputs {
		sk, ok := keys[input.BoxId]
		require.True(t, ok, "unexpected input %s", input.BoxId.String())
		assert.True(
			t,
			schnorr.Verify(msg, input.SpendingProof.ProofBytes, schnorr.PublicKey(sk)),
			"input %s",
			input.BoxId.String(),
		)
	}
}

func TestWalletAddress(t *testing.T) {
	sk := test.SecretKeyFromHex(test.VectorWalletSecretKey)
	w, err := New(&test_ledger.MockBackend{}, []*secp256k1.PrivateKey{sk}, WithTestnet())
	require.NoError(t, err)
	assert.Equal(t, test.VectorWalletAddress, w.Address())
	w, err = New(&test_ledger.MockBackend{}, []*secp256k1.PrivateKey{sk})
	require.NoError(t, err)
	assert.NotEqual(t, test.VectorWalletAddress, w.Address())
	assert.True(t, common.IsValidAddress(w.Address()))
}

func TestNewErrors(t *testing.T) {
	sk := test.SecretKeyFromUint(1)
	testDefs := []struct {
		name    string
		backend Backend
		keys    []*secp256k1.PrivateKey
		options []WalletOptionFunc
	}{
		{name: "no backend", keys: []*secp256k1.PrivateKey{sk}},
		{name: "no keys", backend: &test_ledger.MockBackend{}},
		{name: "nil key", backend: &test_ledger.MockBackend{}, keys: []*secp256k1.PrivateKey{sk, nil}},
		{
			name:    "bad network",
			backend: &test_ledger.MockBackend{},
			keys:    []*secp256k1.PrivateKey{sk},
			options: []WalletOptionFunc{WithNetwork(3)},
		},
		{
			name:    "bad consolidation",
			backend: &test_ledger.MockBackend{},
			keys:    []*secp256k1.PrivateKey{sk},
			options: []WalletOptionFunc{WithConsolidation(-1)},
		},
	}
	for _, testDef := range testDefs {
		t.Run(testDef.name, func(t *testing.T) {
			_, err := New(testDef.backend, testDef.keys, testDef.options...)
			assert.ErrorIs(t, err, common.ErrInvalidArgument)
		})
	}
}

func TestSend(t *testing.T) {
	sk := test.SecretKeyFromHex(test.VectorWalletSecretKey)
	backend := &test_ledger.MockBackend{
		BoxesByAddress: map[string][]ledger.Box{
			test.VectorWalletAddress: {
				ownedBox(sk, 0x02, 444),
				ownedBox(sk, 0x03, 555),
			},
		},
		HeightVal: testHeight,
	}
	w, err := New(backend, []*secp256k1.PrivateKey{sk}, WithTestnet(), WithConsolidation(0))
	require.NoError(t, err)
	tx, txId, err := w.Send(
		context.Background(),
		Payment{
			Recipient: test.VectorTestnetAddress,
			Amount:    12,
			Fee:       1,
		},
	)
	require.NoError(t, err)
	assert.Equal(t, tx.Id().String(), txId)
	require.Len(t, tx.Inputs, 1)
	assert.Equal(t, boxId(0x03), tx.Inputs[0].BoxId)
	require.Len(t, tx.Outputs, 3)
	recipientTree, err := common.ScriptFromAddress(test.VectorTestnetAddress)
	require.NoError(t, err)
	assert.Equal(t, recipientTree, tx.Outputs[0].ErgoTree)
	assert.Equal(t, uint64(12), tx.Outputs[0].Value)
	assert.Equal(t, txbuilder.FeeErgoTree, tx.Outputs[1].ErgoTree)
	assert.Equal(t, uint64(1), tx.Outputs[1].Value)
	assert.Equal(t, common.P2PKErgoTree(schnorr.PublicKey(sk)), tx.Outputs[2].ErgoTree)
	assert.Equal(t, uint64(542), tx.Outputs[2].Value)
	for _, output := range tx.Outputs {
		assert.Equal(t, uint32(testHeight), output.CreationHeight)
	}
	verifyInputs(t, tx, map[ledger.BoxId]*secp256k1.PrivateKey{boxId(0x03): sk})
	require.Len(t, backend.Broadcasted(), 1)
	assert.Same(t, tx, backend.Broadcasted()[0])
	assert.Equal(t, []string{test.VectorWalletAddress}, backend.FetchedAddresses())
}

func TestPrepareConsolidates(t *testing.T) {
	sk := test.SecretKeyFromHex(test.VectorWalletSecretKey)
	backend := &test_ledger.MockBackend{
		BoxesByAddress: map[string][]ledger.Box{
			test.VectorWalletAddress: {
				ownedBox(sk, 0x02, 444),
				ownedBox(sk, 0x03, 555),
			},
		},
		HeightVal: testHeight,
	}
	w, err := New(backend, []*secp256k1.PrivateKey{sk}, WithTestnet())
	require.NoError(t, err)
	tx, err := w.Prepare(
		context.Background(),
		Payment{
			Recipient: test.VectorTestnetAddress,
			Amount:    12,
			Fee:       1,
		},
	)
	require.NoError(t, err)
	require.Len(t, tx.Inputs, 2)
	assert.Equal(t, boxId(0x03), tx.Inputs[0].BoxId)
	assert.Equal(t, boxId(0x02), tx.Inputs[1].BoxId)
	assert.Equal(t, uint64(986), tx.Outputs[2].Value)
	verifyInputs(
		t,
		tx,
		map[ledger.BoxId]*secp256k1.PrivateKey{boxId(0x02): sk, boxId(0x03): sk},
	)
	// Prepare never submits
	assert.Empty(t, backend.Broadcasted())
}

func TestPrepareAcrossKeys(t *testing.T) {
	sk1 := test.SecretKeyFromHex(test.VectorWalletSecretKey)
	sk2 := test.SecretKeyFromUint(5)
	sk3 := test.SecretKeyFromUint(6)
	backend := &test_ledger.MockBackend{
		BoxesByAddress: map[string][]ledger.Box{
			testnetAddress(t, sk1): {ownedBox(sk1, 0x01, 100)},
			testnetAddress(t, sk2): {ownedBox(sk2, 0x02, 1000)},
			testnetAddress(t, sk3): {ownedBox(sk3, 0x03, 5000)},
		},
		HeightVal: testHeight,
	}
	w, err := New(
		backend,
		[]*secp256k1.PrivateKey{sk1, sk2, sk3},
		WithTestnet(),
	)
	require.NoError(t, err)
	tx, err := w.Prepare(
		context.Background(),
		Payment{
			Recipient: test.VectorTestnetAddress,
			Amount:    500,
			Fee:       1,
		},
	)
	require.NoError(t, err)
	require.Len(t, tx.Inputs, 2)
	assert.Equal(t, boxId(0x02), tx.Inputs[0].BoxId)
	assert.Equal(t, boxId(0x01), tx.Inputs[1].BoxId)
	verifyInputs(
		t,
		tx,
		map[ledger.BoxId]*secp256k1.PrivateKey{boxId(0x01): sk1, boxId(0x02): sk2},
	)
	// Change goes back to the first key
	assert.Equal(t, common.P2PKErgoTree(schnorr.PublicKey(sk1)), tx.Outputs[2].ErgoTree)
	assert.Equal(t, uint64(599), tx.Outputs[2].Value)
	assert.Equal(
		t,
		[]string{testnetAddress(t, sk1), testnetAddress(t, sk2)},
		backend.FetchedAddresses(),
	)
}

func TestPrepareAssets(t *testing.T) {
	sk := test.SecretKeyFromHex(test.VectorWalletSecretKey)
	tokenA := boxId(0xaa)
	tokenB := boxId(0xbb)
	backend := &test_ledger.MockBackend{
		BoxesByAddress: map[string][]ledger.Box{
			test.VectorWalletAddress: {
				ownedBox(sk, 0x01, 5000),
				ownedBox(
					sk,
					0x02,
					100,
					ledger.NewAsset(tokenA, 50),
					ledger.NewAsset(tokenB, 2),
				),
			},
		},
		HeightVal: testHeight,
	}
	w, err := New(backend, []*secp256k1.PrivateKey{sk}, WithTestnet(), WithConsolidation(0))
	require.NoError(t, err)
	tx, err := w.Prepare(
		context.Background(),
		Payment{
			Recipient: test.VectorTestnetAddress,
			Amount:    1000,
			Fee:       100,
			Assets:    []ledger.Asset{ledger.NewAsset(tokenA, 20)},
		},
	)
	require.NoError(t, err)
	require.Len(t, tx.Inputs, 2)
	assert.Equal(t, []ledger.Asset{ledger.NewAsset(tokenA, 20)}, tx.Outputs[0].Assets)
	assert.Equal(t, uint64(4000), tx.Outputs[2].Value)
	assert.Equal(
		t,
		[]ledger.Asset{ledger.NewAsset(tokenA, 30), ledger.NewAsset(tokenB, 2)},
		tx.Outputs[2].Assets,
	)
	assert.Equal(t, []ledger.TokenId{tokenA, tokenB}, ledger.DistinctTokenIds(tx.Outputs))
}

func TestPrepareChargeAddress(t *testing.T) {
	sk := test.SecretKeyFromHex(test.VectorWalletSecretKey)
	backend := &test_ledger.MockBackend{
		BoxesByAddress: map[string][]ledger.Box{
			test.VectorWalletAddress: {ownedBox(sk, 0x01, 1000)},
		},
	}
	w, err := New(backend, []*secp256k1.PrivateKey{sk}, WithTestnet())
	require.NoError(t, err)
	tx, err := w.Prepare(
		context.Background(),
		Payment{
			Recipient:     test.VectorWalletAddress,
			Amount:        100,
			ChargeAddress: test.VectorTestnetAddress,
		},
	)
	require.NoError(t, err)
	// No fee output when the fee is zero
	require.Len(t, tx.Outputs, 2)
	chargeTree, err := common.ScriptFromAddress(test.VectorTestnetAddress)
	require.NoError(t, err)
	assert.Equal(t, chargeTree, tx.Outputs[1].ErgoTree)
	assert.Equal(t, uint64(900), tx.Outputs[1].Value)
}

func TestPrepareInsufficientFunds(t *testing.T) {
	sk := test.SecretKeyFromHex(test.VectorWalletSecretKey)
	backend := &test_ledger.MockBackend{
		BoxesByAddress: map[string][]ledger.Box{
			test.VectorWalletAddress: {ownedBox(sk, 0x02, 444), ownedBox(sk, 0x03, 555)},
		},
	}
	w, err := New(backend, []*secp256k1.PrivateKey{sk}, WithTestnet())
	require.NoError(t, err)
	_, _, err = w.Send(
		context.Background(),
		Payment{
			Recipient: test.VectorTestnetAddress,
			Amount:    12121212,
			Fee:       1,
		},
	)
	assert.ErrorIs(t, err, common.ErrInsufficientFunds)
	assert.Empty(t, backend.Broadcasted())
}

func TestPrepareInvalidRecipient(t *testing.T) {
	backend := &test_ledger.MockBackend{}
	w, err := New(backend, []*secp256k1.PrivateKey{test.SecretKeyFromUint(1)})
	require.NoError(t, err)
	_, err = w.Prepare(context.Background(), Payment{Recipient: "nope", Amount: 1})
	assert.ErrorIs(t, err, common.ErrInvalidArgument)
	assert.Empty(t, backend.FetchedAddresses())
}

func TestBackendErrors(t *testing.T) {
	sk := test.SecretKeyFromHex(test.VectorWalletSecretKey)
	heightErr := errors.New("height unavailable")
	fetchErr := errors.New("boxes unavailable")
	submitErr := errors.New("mempool full")
	payment := Payment{Recipient: test.VectorTestnetAddress, Amount: 10, Fee: 1}

	w, err := New(
		&test_ledger.MockBackend{
			CurrentHeightFunc: func() (uint64, error) { return 0, heightErr },
		},
		[]*secp256k1.PrivateKey{sk},
		WithTestnet(),
	)
	require.NoError(t, err)
	_, err = w.Prepare(context.Background(), payment)
	assert.ErrorIs(t, err, heightErr)

	w, err = New(
		&test_ledger.MockBackend{
			UnspentBoxesFunc: func(string) ([]ledger.Box, error) { return nil, fetchErr },
		},
		[]*secp256k1.PrivateKey{sk},
		WithTestnet(),
	)
	require.NoError(t, err)
	_, err = w.Prepare(context.Background(), payment)
	assert.ErrorIs(t, err, fetchErr)

	w, err = New(
		&test_ledger.MockBackend{
			CurrentHeightFunc: func() (uint64, error) { return 1 << 33, nil },
		},
		[]*secp256k1.PrivateKey{sk},
		WithTestnet(),
	)
	require.NoError(t, err)
	_, err = w.Prepare(context.Background(), payment)
	assert.ErrorIs(t, err, common.ErrDecode)

	w, err = New(
		&test_ledger.MockBackend{
			BoxesByAddress: map[string][]ledger.Box{
				test.VectorWalletAddress: {ownedBox(sk, 0x01, 100)},
			},
			BroadcastFunc: func(*ledger.Transaction) (string, error) { return "", submitErr },
		},
		[]*secp256k1.PrivateKey{sk},
		WithTestnet(),
	)
	require.NoError(t, err)
	tx, _, err := w.Send(context.Background(), payment)
	assert.ErrorIs(t, err, submitErr)
	// The signed transaction is still returned so it can be resubmitted
	require.NotNil(t, tx)
	assert.True(t, tx.IsSigned())
}

func TestBroadcastUnsigned(t *testing.T) {
	backend := &test_ledger.MockBackend{}
	w, err := New(backend, []*secp256k1.PrivateKey{test.SecretKeyFromUint(1)})
	require.NoError(t, err)
	tx := ledger.NewTransaction(
		[]ledger.Box{{Id: boxId(0x01), Value: 1}},
		[]ledger.Output{{Value: 1, ErgoTree: txbuilder.FeeErgoTree}},
	)
	_, err = w.Broadcast(context.Background(), tx)
	assert.ErrorIs(t, err, common.ErrInvalidArgument)
	assert.Empty(t, backend.Broadcasted())
}

func TestContextCanceled(t *testing.T) {
	sk := test.SecretKeyFromHex(test.VectorWalletSecretKey)
	w, err := New(&test_ledger.MockBackend{}, []*secp256k1.PrivateKey{sk}, WithTestnet())
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = w.Prepare(ctx, Payment{Recipient: test.VectorTestnetAddress, Amount: 1})
	assert.ErrorIs(t, err, context.Canceled)
}
