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
	"encoding/hex"
	"errors"
	"fmt"
	"io"

	"github.com/blinklabs-io/ergotx/ledger/common"
	"github.com/blinklabs-io/ergotx/schnorr"
)

var errInvalidSignature = errors.New("signature does not verify")

func signMessage(conf *signMessageConfig, out io.Writer) error {
	sk, err := schnorr.ParseSecretKey(conf.SecretKey)
	if err != nil {
		return err
	}
	msg, err := hex.DecodeString(conf.Message)
	if err != nil {
		return common.DecodeError{What: "message", Err: err}
	}
	sig, err := schnorr.Sign(msg, sk)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, hex.EncodeToString(sig))
	return nil
}

func verifyMessage(conf *verifyMessageConfig, out io.Writer) error {
	pk, err := hex.DecodeString(conf.PublicKey)
	if err != nil {
		return common.DecodeError{What: "public key", Err: err}
	}
	msg, err := hex.DecodeString(conf.Message)
	if err != nil {
		return common.DecodeError{What: "message", Err: err}
	}
	sig, err := hex.DecodeString(conf.Signature)
	if err != nil {
		return common.DecodeError{What: "signature", Err: err}
	}
	if !schnorr.Verify(msg, sig, pk) {
		fmt.Fprintln(out, "invalid")
		return errInvalidSignature
	}
	fmt.Fprintln(out, "valid")
	return nil
}
