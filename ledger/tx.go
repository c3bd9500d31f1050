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
	"bytes"
	"encoding/hex"
	"encoding/json"

	"github.com/blinklabs-io/ergotx/cbor"
	"github.com/blinklabs-io/ergotx/ledger/common"
)

// Output is a transaction output locked by ErgoTree. Additional registers are not supported
// and are always encoded as empty
type Output struct {
	cbor.StructAsArray
	Value          uint64
	ErgoTree       []byte
	CreationHeight uint32
	Assets         []Asset
}

type outputJson struct {
	Value               uint64            `json:"value"`
	ErgoTree            string            `json:"ergoTree"`
	CreationHeight      uint32            `json:"creationHeight"`
	Assets              []Asset           `json:"assets"`
	AdditionalRegisters map[string]string `json:"additionalRegisters"`
}

func (o Output) MarshalJSON() ([]byte, error) {
	tmp := outputJson{
		Value:               o.Value,
		ErgoTree:            hex.EncodeToString(o.ErgoTree),
		CreationHeight:      o.CreationHeight,
		Assets:              o.Assets,
		AdditionalRegisters: map[string]string{},
	}
	if tmp.Assets == nil {
		tmp.Assets = []Asset{}
	}
	return json.Marshal(&tmp)
}

func (o *Output) UnmarshalJSON(data []byte) error {
	var tmp outputJson
	if err := json.Unmarshal(data, &tmp); err != nil {
		return err
	}
	if len(tmp.AdditionalRegisters) > 0 {
		return common.InvalidArgumentf("additional registers are not supported")
	}
	ergoTree, err := hex.DecodeString(tmp.ErgoTree)
	if err != nil {
		return common.DecodeError{What: "output ergoTree", Err: err}
	}
	*o = Output{
		Value:          tmp.Value,
		ErgoTree:       ergoTree,
		CreationHeight: tmp.CreationHeight,
		Assets:         tmp.Assets,
	}
	return nil
}

// SpendingProof authorizes spending an input. The context extension is always empty
type SpendingProof struct {
	cbor.StructAsArray
	ProofBytes []byte
}

type spendingProofJson struct {
	ProofBytes string            `json:"proofBytes"`
	Extension  map[string]string `json:"extension"`
}

func (p SpendingProof) MarshalJSON() ([]byte, error) {
	return json.Marshal(
		&spendingProofJson{
			ProofBytes: hex.EncodeToString(p.ProofBytes),
			Extension:  map[string]string{},
		},
	)
}

func (p *SpendingProof) UnmarshalJSON(data []byte) error {
	var tmp spendingProofJson
	if err := json.Unmarshal(data, &tmp); err != nil {
		return err
	}
	if len(tmp.Extension) > 0 {
		return common.InvalidArgumentf("context extension is not supported")
	}
	proof, err := hex.DecodeString(tmp.ProofBytes)
	if err != nil {
		return common.DecodeError{What: "proof bytes", Err: err}
	}
	p.ProofBytes = proof
	return nil
}

// Input references the box being spent and carries its spending proof
type Input struct {
	cbor.StructAsArray
	BoxId         BoxId         `json:"boxId"`
	SpendingProof SpendingProof `json:"spendingProof"`
}

type dataInputJson struct {
	BoxId BoxId `json:"boxId"`
}

// Transaction is an ordered list of inputs, data inputs and outputs. A transaction whose
// inputs all carry empty proofs is unsigned
type Transaction struct {
	cbor.StructAsArray
	Inputs     []Input
	DataInputs []BoxId
	Outputs    []Output
}

type transactionJson struct {
	Id         string          `json:"id,omitempty"`
	Inputs     []Input         `json:"inputs"`
	DataInputs []dataInputJson `json:"dataInputs"`
	Outputs    []Output        `json:"outputs"`
}

// NewTransaction returns an unsigned transaction spending the given boxes
func NewTransaction(boxes []Box, outputs []Output) *Transaction {
	tx := &Transaction{
		Inputs:     make([]Input, 0, len(boxes)),
		DataInputs: []BoxId{},
		Outputs:    outputs,
	}
	for _, box := range boxes {
		tx.Inputs = append(tx.Inputs, Input{BoxId: box.Id})
	}
	return tx
}

// Bytes returns the canonical encoding of the transaction including spending proofs
func (t *Transaction) Bytes() []byte {
	return EncodeTransaction(t)
}

// BytesToSign returns the canonical encoding with every spending proof left empty. This is the
// message signed for each input
func (t *Transaction) BytesToSign() []byte {
	return EncodeTransaction(t.Unsigned())
}

// Id returns the Blake2b-256 hash of the bytes to sign
func (t *Transaction) Id() TxId {
	return common.Blake2b256Hash(t.BytesToSign())
}

// Unsigned returns a copy of the transaction with empty spending proofs
func (t *Transaction) Unsigned() *Transaction {
	ret := &Transaction{
		Inputs:     make([]Input, len(t.Inputs)),
		DataInputs: t.DataInputs,
		Outputs:    t.Outputs,
	}
	for idx, input := range t.Inputs {
		ret.Inputs[idx] = Input{BoxId: input.BoxId}
	}
	return ret
}

// IsSigned reports whether every input carries a non-empty spending proof
func (t *Transaction) IsSigned() bool {
	if len(t.Inputs) == 0 {
		return false
	}
	for _, input := range t.Inputs {
		if len(input.SpendingProof.ProofBytes) == 0 {
			return false
		}
	}
	return true
}

func (t *Transaction) MarshalJSON() ([]byte, error) {
	tmp := transactionJson{
		Id:         t.Id().String(),
		Inputs:     t.Inputs,
		DataInputs: make([]dataInputJson, 0, len(t.DataInputs)),
		Outputs:    t.Outputs,
	}
	if tmp.Inputs == nil {
		tmp.Inputs = []Input{}
	}
	if tmp.Outputs == nil {
		tmp.Outputs = []Output{}
	}
	for _, id := range t.DataInputs {
		tmp.DataInputs = append(tmp.DataInputs, dataInputJson{BoxId: id})
	}
	return json.Marshal(&tmp)
}

func (t *Transaction) UnmarshalJSON(data []byte) error {
	var tmp transactionJson
	if err := json.Unmarshal(data, &tmp); err != nil {
		return err
	}
	*t = Transaction{
		Inputs:     tmp.Inputs,
		DataInputs: make([]BoxId, 0, len(tmp.DataInputs)),
		Outputs:    tmp.Outputs,
	}
	for _, dataInput := range tmp.DataInputs {
		t.DataInputs = append(t.DataInputs, dataInput.BoxId)
	}
	return nil
}

// Equal reports whether two transactions have the same canonical encoding
func (t *Transaction) Equal(other *Transaction) bool {
	if t == nil || other == nil {
		return t == other
	}
	return bytes.Equal(t.Bytes(), other.Bytes())
}
