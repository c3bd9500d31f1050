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

// Package bench provides benchmark fixtures for box selection, encoding and signing.
package bench

import (
	"fmt"

	"github.com/blinklabs-io/ergotx/ledger"
	"github.com/blinklabs-io/ergotx/ledger/common"
	"github.com/blinklabs-io/ergotx/schnorr"
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
)

// BenchSecretKey returns a deterministic secret key for the given index
func BenchSecretKey(idx uint32) *secp256k1.PrivateKey {
	var s secp256k1.ModNScalar
	s.SetInt(idx + 1)
	return secp256k1.NewPrivateKey(&s)
}

// BenchBoxes returns count boxes owned by sk with descending-then-repeating values. Every
// third box carries one of a handful of tokens
func BenchBoxes(sk *secp256k1.PrivateKey, count int) []ledger.Box {
	ergoTree := common.P2PKErgoTree(schnorr.PublicKey(sk))
	ret := make([]ledger.Box, 0, count)
	for i := range count {
		box := ledger.Box{
			Id:             common.Blake2b256Hash([]byte(fmt.Sprintf("box-%d", i))),
			Value:          uint64(1_000_000 * (1 + i%97)),
			ErgoTree:       ergoTree,
			CreationHeight: 500_000,
			SecretKey:      sk,
		}
		if i%3 == 0 {
			box.Assets = []ledger.Asset{
				ledger.NewAsset(BenchTokenId(i%5), uint64(i+1)),
			}
		}
		ret = append(ret, box)
	}
	return ret
}

// BenchTokenId returns a deterministic token ID for the given index
func BenchTokenId(idx int) ledger.TokenId {
	return common.Blake2b256Hash([]byte(fmt.Sprintf("token-%d", idx)))
}

// BenchOutputs returns count outputs sharing a small set of tokens
func BenchOutputs(count int) []ledger.Output {
	ret := make([]ledger.Output, 0, count)
	for i := range count {
		ret = append(
			ret,
			ledger.Output{
				Value:          uint64(1_000_000 + i),
				ErgoTree:       common.P2PKErgoTree(schnorr.PublicKey(BenchSecretKey(uint32(i)))),
				CreationHeight: 500_000,
				Assets: []ledger.Asset{
					ledger.NewAsset(BenchTokenId(i%4), uint64(i+1)),
				},
			},
		)
	}
	return ret
}
