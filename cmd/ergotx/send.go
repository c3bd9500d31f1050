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
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/blinklabs-io/ergotx/cmd/common"
	"github.com/blinklabs-io/ergotx/ledger"
	"github.com/blinklabs-io/ergotx/schnorr"
	"github.com/blinklabs-io/ergotx/wallet"
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
)

func send(
	ctx context.Context,
	conf *sendConfig,
	globalFlags *common.GlobalFlags,
	logger *slog.Logger,
	out io.Writer,
) error {
	secretKeys := make([]*secp256k1.PrivateKey, 0, len(conf.SecretKeys))
	for idx, skHex := range conf.SecretKeys {
		sk, err := schnorr.ParseSecretKey(skHex)
		if err != nil {
			return fmt.Errorf("secret key %d: %w", idx, err)
		}
		secretKeys = append(secretKeys, sk)
	}
	client, err := common.CreateExplorerClient(globalFlags, logger)
	if err != nil {
		return err
	}
	w, err := wallet.New(
		client,
		secretKeys,
		wallet.WithNetwork(globalFlags.NetworkType()),
		wallet.WithConsolidation(conf.Consolidate),
		wallet.WithLogger(logger),
	)
	if err != nil {
		return err
	}
	payment := wallet.Payment{
		Recipient:     conf.ToAddress,
		Amount:        conf.Amount,
		Fee:           conf.Fee,
		ChargeAddress: conf.ChangeAddress,
	}
	tx, err := w.Prepare(ctx, payment)
	if err != nil {
		return err
	}
	if conf.OutFile != "" {
		if err := writeEnvelope(conf.OutFile, globalFlags.NetworkType(), tx); err != nil {
			return err
		}
		logger.Info("wrote signed transaction", "path", conf.OutFile)
	}
	if conf.DryRun {
		return printTransaction(out, tx)
	}
	txId, err := w.Broadcast(ctx, tx)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, txId)
	return nil
}

func printTransaction(out io.Writer, tx *ledger.Transaction) error {
	txJson, err := json.MarshalIndent(tx, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode transaction: %w", err)
	}
	fmt.Fprintln(out, string(txJson))
	return nil
}
