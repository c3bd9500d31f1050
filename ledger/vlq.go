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
	"errors"

	"github.com/blinklabs-io/ergotx/ledger/common"
)

const maxVarIntLen = 10

// EncodeVarInt encodes x as a variable-length quantity: 7-bit groups, least significant group
// first, with the continuation bit (0x80) set on every byte except the last
func EncodeVarInt(x uint64) []byte {
	return AppendVarInt(make([]byte, 0, maxVarIntLen), x)
}

// AppendVarInt appends the VLQ encoding of x to dst
func AppendVarInt(dst []byte, x uint64) []byte {
	for x >= 0x80 {
		dst = append(dst, byte(x&0x7F)|0x80)
		x >>= 7
	}
	return append(dst, byte(x))
}

// DecodeVarInt decodes a VLQ value from the start of data. It returns the value and the
// number of bytes consumed
func DecodeVarInt(data []byte) (uint64, int, error) {
	var ret uint64
	var shift uint
	for i, b := range data {
		if i == maxVarIntLen-1 && b > 1 {
			return 0, 0, common.DecodeError{
				What: "varint",
				Err:  errors.New("value overflows 64 bits"),
			}
		}
		ret |= uint64(b&0x7F) << shift
		if b&0x80 == 0 {
			return ret, i + 1, nil
		}
		shift += 7
	}
	return 0, 0, common.DecodeError{
		What: "varint",
		Err:  errors.New("unexpected end of data"),
	}
}
