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

// Package txbuilder lays out the outputs of a payment and signs the resulting transaction
package txbuilder

import (
	"bytes"
	"encoding/hex"
	"fmt"

	"github.com/blinklabs-io/ergotx/ledger"
	"github.com/blinklabs-io/ergotx/ledger/common"
	"github.com/blinklabs-io/ergotx/schnorr"
	"github.com/blinklabs-io/ergotx/selection"
	"github.com/jinzhu/copier"
)

// FeeErgoTreeHex is the miner fee contract. Outputs locked by it can be collected by the
// block producer
const FeeErgoTreeHex = "1005040004000e36100204a00b08cd0279be667ef9dcbbac55a06295ce870b07029bfcdb2dce28d959f2815b16f81798ea02d192a39a8cc7a701730073011001020402d19683030193a38cc7b2a57300000193c2b2a57301007473027303830108cdeeac93b1a57304"

// FeeErgoTree is the decoded form of FeeErgoTreeHex
var FeeErgoTree = mustDecodeHex(FeeErgoTreeHex)

// OutputParams describes a payment from a set of selected boxes
type OutputParams struct {
	Recipient       string
	Amount          uint64
	RecipientAssets []ledger.Asset
	Fee             uint64
	Boxes           []ledger.Box
	ChargeAddress   string
	Height          uint32
}

// BuildOutputs returns the recipient output, the fee output when a fee is set, and a change
// output back to the charge address. The change output carries every asset from the boxes that
// isn't sent to the recipient, and is omitted when there is neither change nor assets left over
func BuildOutputs(params OutputParams) ([]ledger.Output, error) {
	recipient, err := common.NewAddress(params.Recipient)
	if err != nil {
		return nil, fmt.Errorf("%w: recipient: %w", common.ErrInvalidArgument, err)
	}
	charge, err := common.NewAddress(params.ChargeAddress)
	if err != nil {
		return nil, fmt.Errorf("%w: charge address: %w", common.ErrInvalidArgument, err)
	}
	required := params.Amount + params.Fee
	if required < params.Amount {
		return nil, common.InvalidArgumentf(
			"amount %d plus fee %d overflows",
			params.Amount,
			params.Fee,
		)
	}
	var totalIn uint64
	for _, box := range params.Boxes {
		if totalIn+box.Value < totalIn {
			return nil, common.InvalidArgumentf("total input value overflows")
		}
		totalIn += box.Value
	}
	if totalIn < required {
		return nil, common.InsufficientFundsError{
			Required:  required,
			Available: totalIn,
		}
	}
	leftover, err := subtractAssets(
		selection.AssetTotals(params.Boxes),
		params.RecipientAssets,
	)
	if err != nil {
		return nil, err
	}
	change := totalIn - required
	if change == 0 && len(leftover) > 0 {
		return nil, common.InsufficientFundsError{
			Reason: fmt.Sprintf(
				"%d leftover assets need a change output but no value remains to carry them",
				len(leftover),
			),
		}
	}
	ret := []ledger.Output{
		{
			Value:          params.Amount,
			ErgoTree:       recipient.ErgoTree(),
			CreationHeight: params.Height,
			Assets:         cloneAssets(params.RecipientAssets),
		},
	}
	if params.Fee > 0 {
		ret = append(
			ret,
			ledger.Output{
				Value:          params.Fee,
				ErgoTree:       bytes.Clone(FeeErgoTree),
				CreationHeight: params.Height,
				Assets:         []ledger.Asset{},
			},
		)
	}
	if change > 0 {
		ret = append(
			ret,
			ledger.Output{
				Value:          change,
				ErgoTree:       charge.ErgoTree(),
				CreationHeight: params.Height,
				Assets:         leftover,
			},
		)
	}
	return ret, nil
}

// BuildTransaction assembles a transaction spending boxes into outputs and signs every input
// with the secret key attached to its box. The bytes to sign are produced once and shared by
// all inputs
func BuildTransaction(
	boxes []ledger.Box,
	outputs []ledger.Output,
) (*ledger.Transaction, error) {
	if len(boxes) == 0 {
		return nil, common.InvalidArgumentf("no boxes to spend")
	}
	if len(outputs) == 0 {
		return nil, common.InvalidArgumentf("no outputs")
	}
	for idx, box := range boxes {
		if box.SecretKey == nil {
			return nil, common.InvalidArgumentf(
				"box %d (%s) has no secret key",
				idx,
				box.Id.String(),
			)
		}
		// Boxes fetched without a script are trusted to belong to their key
		if len(box.ErgoTree) > 0 &&
			!bytes.Equal(box.ErgoTree, common.P2PKErgoTree(schnorr.PublicKey(box.SecretKey))) {
			return nil, common.InvalidArgumentf(
				"box %d (%s) is not locked to its secret key",
				idx,
				box.Id.String(),
			)
		}
	}
	unsigned := ledger.NewTransaction(boxes, outputs)
	msg := unsigned.BytesToSign()
	signed := &ledger.Transaction{}
	if err := copier.CopyWithOption(signed, unsigned, copier.Option{DeepCopy: true}); err != nil {
		return nil, fmt.Errorf("failed to copy transaction: %w", err)
	}
	for idx, box := range boxes {
		sig, err := schnorr.Sign(msg, box.SecretKey)
		if err != nil {
			return nil, fmt.Errorf("failed to sign input %d: %w", idx, err)
		}
		signed.Inputs[idx].SpendingProof.ProofBytes = sig
	}
	return signed, nil
}

// subtractAssets removes the sent amounts from the totals, dropping tokens that reach zero
func subtractAssets(
	totals []ledger.Asset,
	sent []ledger.Asset,
) ([]ledger.Asset, error) {
	ret := cloneAssets(totals)
	for _, asset := range sent {
		var available uint64
		idx := -1
		for i, total := range ret {
			if total.TokenId == asset.TokenId {
				idx = i
				available = total.Amount
				break
			}
		}
		if asset.Amount > available {
			tokenId := asset.TokenId
			return nil, common.InsufficientFundsError{
				TokenId:   &tokenId,
				Required:  asset.Amount,
				Available: available,
			}
		}
		if idx >= 0 {
			ret[idx].Amount -= asset.Amount
		}
	}
	filtered := ret[:0]
	for _, asset := range ret {
		if asset.Amount > 0 {
			filtered = append(filtered, asset)
		}
	}
	return filtered, nil
}

func cloneAssets(assets []ledger.Asset) []ledger.Asset {
	ret := make([]ledger.Asset, 0, len(assets))
	return append(ret, assets...)
}

func mustDecodeHex(hexData string) []byte {
	ret, err := hex.DecodeString(hexData)
	if err != nil {
		panic(fmt.Sprintf("invalid hex constant: %s", err))
	}
	return ret
}
