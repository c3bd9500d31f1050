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

package cbor_test

import (
	"testing"

	"github.com/blinklabs-io/ergotx/cbor"
	"github.com/blinklabs-io/ergotx/internal/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeArrayStruct(t *testing.T) {
	var dest arrayStruct
	n, err := cbor.Decode(test.DecodeHexString("82190400182a"), &dest)
	require.NoError(t, err)
	assert.Equal(t, 6, n)
	assert.Equal(t, uint64(1024), dest.Value)
	assert.Equal(t, uint32(42), dest.Height)
}

func TestDecodeAllTrailingData(t *testing.T) {
	var dest []uint64
	err := cbor.DecodeAll(test.DecodeHexString("8301020300"), &dest)
	assert.Error(t, err)
	require.NoError(t, cbor.DecodeAll(test.DecodeHexString("83010203"), &dest))
	assert.Equal(t, []uint64{1, 2, 3}, dest)
}

func TestDecodeTruncated(t *testing.T) {
	var dest []uint64
	_, err := cbor.Decode(test.DecodeHexString("830102"), &dest)
	assert.Error(t, err)
}
