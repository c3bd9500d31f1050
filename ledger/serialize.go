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

package ledger

import (
	"slices"
)

// DistinctTokenIds returns the unique token IDs across all outputs in first-appearance order,
// scanning outputs in transaction order and each output's assets in listed order. The output
// encoding indexes into this list, so both must be computed over the same output order
func DistinctTokenIds(outputs []Output) []TokenId {
	ret := []TokenId{}
	seen := make(map[TokenId]struct{})
	for _, output := range outputs {
		for _, asset := range output.Assets {
			if _, ok := seen[asset.TokenId]; ok {
				continue
			}
			seen[asset.TokenId] = struct{}{}
			ret = append(ret, asset.TokenId)
		}
	}
	return ret
}

// EncodeOutput returns the canonical encoding of an output. Tokens present in knownTokenIds are
// written as their index in that list, others as the raw 32-byte token ID
func EncodeOutput(output Output, knownTokenIds []TokenId) []byte {
	return appendOutput(nil, output, knownTokenIds)
}

func appendOutput(dst []byte, output Output, knownTokenIds []TokenId) []byte {
	dst = AppendVarInt(dst, output.Value)
	dst = append(dst, output.ErgoTree...)
	dst = AppendVarInt(dst, uint64(output.CreationHeight))
	dst = AppendVarInt(dst, uint64(len(output.Assets)))
	for _, asset := range output.Assets {
		idx := slices.Index(knownTokenIds, asset.TokenId)
		if idx < 0 {
			dst = append(dst, asset.TokenId.Bytes()...)
		} else {
			dst = AppendVarInt(dst, uint64(idx))
		}
		dst = AppendVarInt(dst, asset.Amount)
	}
	// Additional registers
	return AppendVarInt(dst, 0)
}

// EncodeInput returns the canonical encoding of an input: box ID, length-prefixed proof bytes and
// an empty context extension
func EncodeInput(input Input) []byte {
	return appendInput(nil, input)
}

func appendInput(dst []byte, input Input) []byte {
	dst = append(dst, input.BoxId.Bytes()...)
	dst = AppendVarInt(dst, uint64(len(input.SpendingProof.ProofBytes)))
	dst = append(dst, input.SpendingProof.ProofBytes...)
	// Context extension
	return AppendVarInt(dst, 0)
}

// EncodeTransaction returns the canonical encoding of a transaction. With empty proofs this is
// the message that every input signs
func EncodeTransaction(tx *Transaction) []byte {
	var ret []byte
	ret = AppendVarInt(ret, uint64(len(tx.Inputs)))
	for _, input := range tx.Inputs {
		ret = appendInput(ret, input)
	}
	ret = AppendVarInt(ret, uint64(len(tx.DataInputs)))
	for _, dataInput := range tx.DataInputs {
		ret = append(ret, dataInput.Bytes()...)
	}
	tokenIds := DistinctTokenIds(tx.Outputs)
	ret = AppendVarInt(ret, uint64(len(tokenIds)))
	for _, tokenId := range tokenIds {
		ret = append(ret, tokenId.Bytes()...)
	}
	ret = AppendVarInt(ret, uint64(len(tx.Outputs)))
	for _, output := range tx.Outputs {
		ret = appendOutput(ret, output, tokenIds)
	}
	return ret
}
