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

package common

import (
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/blinklabs-io/ergotx/cbor"
	"golang.org/x/crypto/blake2b"
)

const (
	Blake2b256Size = 32
)

type Blake2b256 [Blake2b256Size]byte

// BoxId identifies an unspent output
type BoxId = Blake2b256

// TokenId identifies a token asset
type TokenId = Blake2b256

// TxId identifies a transaction
type TxId = Blake2b256

func NewBlake2b256(data []byte) Blake2b256 {
	b := Blake2b256{}
	copy(b[:], data)
	return b
}

// NewBlake2b256FromHex decodes a hex-encoded 32-byte identifier
func NewBlake2b256FromHex(hexData string) (Blake2b256, error) {
	data, err := hex.DecodeString(hexData)
	if err != nil {
		return Blake2b256{}, DecodeError{What: "identifier", Err: err}
	}
	if len(data) != Blake2b256Size {
		return Blake2b256{}, DecodeError{
			What: "identifier",
			Err: fmt.Errorf(
				"expected %d bytes, got %d",
				Blake2b256Size,
				len(data),
			),
		}
	}
	return NewBlake2b256(data), nil
}

func (b Blake2b256) String() string {
	return hex.EncodeToString(b[:])
}

func (b Blake2b256) Bytes() []byte {
	return b[:]
}

func (b Blake2b256) MarshalJSON() ([]byte, error) {
	return json.Marshal(b.String())
}

func (b *Blake2b256) UnmarshalJSON(data []byte) error {
	var tmp string
	if err := json.Unmarshal(data, &tmp); err != nil {
		return err
	}
	ret, err := NewBlake2b256FromHex(tmp)
	if err != nil {
		return err
	}
	*b = ret
	return nil
}

func (b Blake2b256) MarshalCBOR() ([]byte, error) {
	// Ensure we always encode a full-sized bytestring, even if the hash is zero-valued
	hashBytes := make([]byte, Blake2b256Size)
	copy(hashBytes, b[:])
	return cbor.Encode(hashBytes)
}

func (b *Blake2b256) UnmarshalCBOR(data []byte) error {
	var tmp []byte
	if _, err := cbor.Decode(data, &tmp); err != nil {
		return err
	}
	if len(tmp) != Blake2b256Size {
		return DecodeError{
			What: "identifier",
			Err:  fmt.Errorf("unexpected length %d", len(tmp)),
		}
	}
	copy(b[:], tmp)
	return nil
}

// Blake2b256Hash generates a Blake2b-256 hash from the provided data
func Blake2b256Hash(data []byte) Blake2b256 {
	tmpHash, err := blake2b.New(Blake2b256Size, nil)
	if err != nil {
		panic(
			fmt.Sprintf(
				"unexpected error generating empty blake2b hash: %s",
				err,
			),
		)
	}
	tmpHash.Write(data)
	return Blake2b256(tmpHash.Sum(nil))
}
