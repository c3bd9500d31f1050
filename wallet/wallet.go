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

// Package wallet funds, signs and submits payments from a set of secret keys
package wallet

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"github.com/blinklabs-io/ergotx/ledger"
	"github.com/blinklabs-io/ergotx/ledger/common"
	"github.com/blinklabs-io/ergotx/schnorr"
	"github.com/blinklabs-io/ergotx/selection"
	"github.com/blinklabs-io/ergotx/txbuilder"
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
)

// Backend is the view of the chain needed to fund and submit payments
type Backend interface {
	selection.BoxFetcher
	CurrentHeight(ctx context.Context) (uint64, error)
	Broadcast(ctx context.Context, tx *ledger.Transaction) (string, error)
}

// Payment describes a transfer to a single recipient
type Payment struct {
	Recipient string
	Amount    uint64
	Fee       uint64
	// Assets are tokens sent to the recipient along with Amount
	Assets []ledger.Asset
	// ChargeAddress receives the change. If empty, the address of the first key is used
	ChargeAddress string
}

// Wallet spends boxes owned by an ordered list of secret keys. Keys are tried in order, so
// later keys are only touched when the earlier ones can't fund a payment
type Wallet struct {
	backend               Backend
	secretKeys            []*secp256k1.PrivateKey
	networkType           uint8
	consolidationLimit    int
	legacyTokenAccounting bool
	logger                *slog.Logger
}

// New returns a Wallet for the given keys with the specified options
func New(
	backend Backend,
	secretKeys []*secp256k1.PrivateKey,
	options ...WalletOptionFunc,
) (*Wallet, error) {
	if backend == nil {
		return nil, common.InvalidArgumentf("no backend")
	}
	if len(secretKeys) == 0 {
		return nil, common.InvalidArgumentf("no secret keys")
	}
	for idx, sk := range secretKeys {
		if sk == nil {
			return nil, common.InvalidArgumentf("secret key %d is nil", idx)
		}
	}
	w := &Wallet{
		backend:            backend,
		secretKeys:         secretKeys,
		networkType:        common.AddressNetworkMainnet,
		consolidationLimit: selection.DefaultConsolidationLimit,
	}
	for _, option := range options {
		option(w)
	}
	if w.networkType != common.AddressNetworkMainnet &&
		w.networkType != common.AddressNetworkTestnet {
		return nil, common.InvalidArgumentf("invalid network type %d", w.networkType)
	}
	if w.consolidationLimit < 0 {
		return nil, common.InvalidArgumentf(
			"invalid consolidation limit %d",
			w.consolidationLimit,
		)
	}
	if w.logger == nil {
		w.logger = slog.Default()
	}
	return w, nil
}

// Address returns the address of the first key. It receives change by default
func (w *Wallet) Address() string {
	addr, err := common.NewAddressFromPublicKey(
		schnorr.PublicKey(w.secretKeys[0]),
		w.networkType,
	)
	if err != nil {
		// Keys and network type are validated in New
		panic(fmt.Sprintf("unexpected error deriving address: %s", err))
	}
	return addr.String()
}

// Prepare selects boxes for the payment, lays out its outputs at the current height and
// returns the signed transaction without submitting it
func (w *Wallet) Prepare(
	ctx context.Context,
	payment Payment,
) (*ledger.Transaction, error) {
	if !common.IsValidAddress(payment.Recipient) {
		return nil, common.InvalidArgumentf(
			"invalid recipient address %q",
			payment.Recipient,
		)
	}
	chargeAddress := payment.ChargeAddress
	if chargeAddress == "" {
		chargeAddress = w.Address()
	}
	height, err := w.backend.CurrentHeight(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch current height: %w", err)
	}
	if height > math.MaxUint32 {
		return nil, common.DecodeError{
			What: "height",
			Err:  fmt.Errorf("height %d out of range", height),
		}
	}
	selectOpts := []selection.SelectOptionFunc{
		selection.WithConsolidation(w.consolidationLimit),
		selection.WithTargetAssets(payment.Assets),
		selection.WithLogger(w.logger),
	}
	if w.legacyTokenAccounting {
		selectOpts = append(selectOpts, selection.WithLegacyTokenAccounting())
	}
	boxes, ok, err := selection.SelectBoxesAcrossKeys(
		ctx,
		w.backend,
		w.secretKeys,
		w.networkType,
		payment.Amount,
		payment.Fee,
		selectOpts...,
	)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, common.InsufficientFundsError{
			Reason: fmt.Sprintf(
				"boxes of %d keys don't cover amount %d plus fee %d",
				len(w.secretKeys),
				payment.Amount,
				payment.Fee,
			),
		}
	}
	outputs, err := txbuilder.BuildOutputs(
		txbuilder.OutputParams{
			Recipient:       payment.Recipient,
			Amount:          payment.Amount,
			RecipientAssets: payment.Assets,
			Fee:             payment.Fee,
			Boxes:           boxes,
			ChargeAddress:   chargeAddress,
			Height:          uint32(height),
		},
	)
	if err != nil {
		return nil, err
	}
	tx, err := txbuilder.BuildTransaction(boxes, outputs)
	if err != nil {
		return nil, err
	}
	w.logger.Debug(
		"prepared transaction",
		"component", "wallet",
		"tx_id", tx.Id().String(),
		"inputs", len(tx.Inputs),
		"outputs", len(tx.Outputs),
		"height", height,
	)
	return tx, nil
}

// Send prepares the payment and submits it. It returns the signed transaction and the ID
// reported by the backend
func (w *Wallet) Send(
	ctx context.Context,
	payment Payment,
) (*ledger.Transaction, string, error) {
	tx, err := w.Prepare(ctx, payment)
	if err != nil {
		return nil, "", err
	}
	txId, err := w.Broadcast(ctx, tx)
	if err != nil {
		return tx, "", err
	}
	return tx, txId, nil
}

// Broadcast submits a signed transaction
func (w *Wallet) Broadcast(
	ctx context.Context,
	tx *ledger.Transaction,
) (string, error) {
	if tx == nil || !tx.IsSigned() {
		return "", common.InvalidArgumentf("transaction is not signed")
	}
	txId, err := w.backend.Broadcast(ctx, tx)
	if err != nil {
		return "", fmt.Errorf("failed to broadcast transaction: %w", err)
	}
	w.logger.Info(
		"broadcast transaction",
		"component", "wallet",
		"tx_id", txId,
	)
	return txId, nil
}
