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
	"fmt"
	"os"

	"github.com/blinklabs-io/ergotx/cbor"
	"github.com/blinklabs-io/ergotx/ledger"
)

const envelopeVersion = 1

// txEnvelope is the on-disk form of a signed transaction
type txEnvelope struct {
	cbor.StructAsArray
	Version     uint
	NetworkType uint8
	Transaction ledger.Transaction
}

func writeEnvelope(path string, networkType uint8, tx *ledger.Transaction) error {
	data, err := cbor.Encode(
		&txEnvelope{
			Version:     envelopeVersion,
			NetworkType: networkType,
			Transaction: *tx,
		},
	)
	if err != nil {
		return fmt.Errorf("failed to encode transaction file: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write transaction file: %w", err)
	}
	return nil
}

func readEnvelope(path string) (*txEnvelope, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read transaction file: %w", err)
	}
	var env txEnvelope
	if err := cbor.DecodeAll(data, &env); err != nil {
		return nil, fmt.Errorf("failed to decode transaction file: %w", err)
	}
	if env.Version != envelopeVersion {
		return nil, fmt.Errorf("unsupported transaction file version %d", env.Version)
	}
	return &env, nil
}
