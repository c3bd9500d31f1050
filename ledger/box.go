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
	"encoding/hex"
	"encoding/json"
	"errors"

	"github.com/blinklabs-io/ergotx/cbor"
	"github.com/blinklabs-io/ergotx/ledger/common"
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
)

// Asset is an amount of a single token
type Asset struct {
	cbor.StructAsArray
	TokenId TokenId `json:"tokenId"`
	Amount  uint64  `json:"amount"`
}

// NewAsset returns an Asset for the token identified by tokenId
func NewAsset(tokenId TokenId, amount uint64) Asset {
	return Asset{TokenId: tokenId, Amount: amount}
}

// Box is an unspent output that can be used as a transaction input. Boxes are fetched from the
// network and only read by this package. SecretKey is the key that owns the box, which is
// attached during selection and used to sign the spending input
type Box struct {
	Id             BoxId
	Value          uint64
	Assets         []Asset
	ErgoTree       []byte
	CreationHeight uint32
	SecretKey      *secp256k1.PrivateKey
}

// WithSecretKey returns a copy of the box owned by the given key
func (b Box) WithSecretKey(sk *secp256k1.PrivateKey) Box {
	b.SecretKey = sk
	return b
}

// AssetAmount returns the amount of the given token carried by the box
func (b Box) AssetAmount(tokenId TokenId) uint64 {
	var ret uint64
	for _, asset := range b.Assets {
		if asset.TokenId == tokenId {
			ret += asset.Amount
		}
	}
	return ret
}

// boxJson mirrors the explorer/node representation of a box. Explorer responses use "id"
// while the node API uses "boxId"
type boxJson struct {
	Id             string  `json:"id,omitempty"`
	BoxId          string  `json:"boxId,omitempty"`
	Value          uint64  `json:"value"`
	Assets         []Asset `json:"assets"`
	ErgoTree       string  `json:"ergoTree,omitempty"`
	CreationHeight uint32  `json:"creationHeight,omitempty"`
}

func (b Box) MarshalJSON() ([]byte, error) {
	tmp := boxJson{
		BoxId:          b.Id.String(),
		Value:          b.Value,
		Assets:         b.Assets,
		ErgoTree:       hex.EncodeToString(b.ErgoTree),
		CreationHeight: b.CreationHeight,
	}
	if tmp.Assets == nil {
		tmp.Assets = []Asset{}
	}
	return json.Marshal(&tmp)
}

func (b *Box) UnmarshalJSON(data []byte) error {
	var tmp boxJson
	if err := json.Unmarshal(data, &tmp); err != nil {
		return err
	}
	idHex := tmp.BoxId
	if idHex == "" {
		idHex = tmp.Id
	}
	if idHex == "" {
		return common.DecodeError{What: "box", Err: errors.New("missing box ID")}
	}
	id, err := common.NewBlake2b256FromHex(idHex)
	if err != nil {
		return err
	}
	ergoTree, err := hex.DecodeString(tmp.ErgoTree)
	if err != nil {
		return common.DecodeError{What: "box ergoTree", Err: err}
	}
	*b = Box{
		Id:             id,
		Value:          tmp.Value,
		Assets:         tmp.Assets,
		ErgoTree:       ergoTree,
		CreationHeight: tmp.CreationHeight,
	}
	return nil
}
