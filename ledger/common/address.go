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
	"bytes"
	"errors"
	"fmt"

	"github.com/btcsuite/btcd/btcutil/base58"
)

const (
	AddressNetworkMainnet = 0
	AddressNetworkTestnet = 16

	AddressScriptTypeP2PK = 1

	AddressPublicKeySize = 33
	AddressChecksumSize  = 4
	// prefix byte + public key + checksum
	AddressP2PKSize = 1 + AddressPublicKeySize + AddressChecksumSize
)

// P2PKErgoTreePrefix is the fixed pay-to-public-key script template that precedes the key
var P2PKErgoTreePrefix = []byte{0x00, 0x08, 0xcd}

type Address struct {
	networkType uint8
	scriptType  uint8
	content     []byte
	checksum    [AddressChecksumSize]byte
}

// NewAddress returns an Address based on the provided base58 address string. The checksum
// is verified and only P2PK addresses are accepted
func NewAddress(addr string) (Address, error) {
	decoded := base58.Decode(addr)
	if len(decoded) == 0 {
		return Address{}, DecodeError{
			What: "address",
			Err:  errors.New("invalid base58 data"),
		}
	}
	if len(decoded) != AddressP2PKSize {
		return Address{}, DecodeError{
			What: "address",
			Err:  fmt.Errorf("unexpected length %d", len(decoded)),
		}
	}
	if !checksumMatches(decoded) {
		return Address{}, DecodeError{
			What: "address",
			Err:  errors.New("checksum does not match"),
		}
	}
	prefix := decoded[0]
	a := Address{
		networkType: prefix & 0xF0,
		scriptType:  prefix & 0x0F,
		content:     bytes.Clone(decoded[1 : 1+AddressPublicKeySize]),
	}
	if a.scriptType != AddressScriptTypeP2PK {
		return Address{}, DecodeError{
			What: "address",
			Err:  fmt.Errorf("unsupported script type %d", a.scriptType),
		}
	}
	if a.networkType != AddressNetworkMainnet &&
		a.networkType != AddressNetworkTestnet {
		return Address{}, DecodeError{
			What: "address",
			Err:  fmt.Errorf("unknown network type %d", a.networkType),
		}
	}
	copy(a.checksum[:], decoded[1+AddressPublicKeySize:])
	return a, nil
}

// NewAddressFromPublicKey returns a P2PK Address for the compressed public key on the given network
func NewAddressFromPublicKey(pk []byte, networkType uint8) (Address, error) {
	if len(pk) != AddressPublicKeySize {
		return Address{}, InvalidArgumentf(
			"public key must be %d bytes, got %d",
			AddressPublicKeySize,
			len(pk),
		)
	}
	if networkType != AddressNetworkMainnet &&
		networkType != AddressNetworkTestnet {
		return Address{}, InvalidArgumentf("invalid network type %d", networkType)
	}
	a := Address{
		networkType: networkType,
		scriptType:  AddressScriptTypeP2PK,
		content:     bytes.Clone(pk),
	}
	hash := Blake2b256Hash(append([]byte{a.prefix()}, a.content...))
	copy(a.checksum[:], hash[:AddressChecksumSize])
	return a, nil
}

func (a Address) prefix() byte {
	return a.networkType + a.scriptType
}

// Bytes returns the raw prefix, content and checksum bytes
func (a Address) Bytes() []byte {
	ret := make([]byte, 0, 1+len(a.content)+AddressChecksumSize)
	ret = append(ret, a.prefix())
	ret = append(ret, a.content...)
	ret = append(ret, a.checksum[:]...)
	return ret
}

// String returns the base58-encoded version of the address
func (a Address) String() string {
	return base58.Encode(a.Bytes())
}

func (a Address) NetworkType() uint8 {
	return a.networkType
}

func (a Address) IsTestnet() bool {
	return a.networkType == AddressNetworkTestnet
}

// PublicKey returns a copy of the compressed public key carried by the address
func (a Address) PublicKey() []byte {
	return bytes.Clone(a.content)
}

// ErgoTree returns the locking script for outputs paying to this address
func (a Address) ErgoTree() []byte {
	return P2PKErgoTree(a.content)
}

func (a Address) MarshalJSON() ([]byte, error) {
	return []byte(`"` + a.String() + `"`), nil
}

// P2PKErgoTree builds the pay-to-public-key locking script for a compressed public key
func P2PKErgoTree(pk []byte) []byte {
	ret := make([]byte, 0, len(P2PKErgoTreePrefix)+len(pk))
	ret = append(ret, P2PKErgoTreePrefix...)
	return append(ret, pk...)
}

// AddressFromPublicKey returns the address string for a 33-byte compressed public key
func AddressFromPublicKey(pk []byte, testNet bool) (string, error) {
	var networkType uint8 = AddressNetworkMainnet
	if testNet {
		networkType = AddressNetworkTestnet
	}
	a, err := NewAddressFromPublicKey(pk, networkType)
	if err != nil {
		return "", err
	}
	return a.String(), nil
}

// PublicKeyFromAddress extracts the public key bytes from an address without verifying its checksum
func PublicKeyFromAddress(addr string) ([]byte, error) {
	decoded := base58.Decode(addr)
	if len(decoded) < 1+AddressPublicKeySize {
		return nil, DecodeError{
			What: "address",
			Err: fmt.Errorf(
				"decoded length %d too short",
				len(decoded),
			),
		}
	}
	return bytes.Clone(decoded[1 : 1+AddressPublicKeySize]), nil
}

// IsValidAddress reports whether the address decodes and carries a matching checksum
func IsValidAddress(addr string) bool {
	decoded := base58.Decode(addr)
	if len(decoded) <= AddressChecksumSize {
		return false
	}
	return checksumMatches(decoded)
}

// ScriptFromAddress returns the P2PK locking script for the public key in the address
func ScriptFromAddress(addr string) ([]byte, error) {
	pk, err := PublicKeyFromAddress(addr)
	if err != nil {
		return nil, err
	}
	return P2PKErgoTree(pk), nil
}

func checksumMatches(decoded []byte) bool {
	script := decoded[:len(decoded)-AddressChecksumSize]
	checksum := decoded[len(decoded)-AddressChecksumSize:]
	hash := Blake2b256Hash(script)
	return bytes.Equal(hash[:AddressChecksumSize], checksum)
}
