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

	"github.com/blinklabs-io/ergotx/cmd/common"
	ledgercommon "github.com/blinklabs-io/ergotx/ledger/common"
	"github.com/blinklabs-io/ergotx/schnorr"
)

var errInvalidAddress = errors.New("invalid address")

func showAddress(
	conf *addressConfig,
	globalFlags *common.GlobalFlags,
	out io.Writer,
) error {
	var pk []byte
	switch {
	case conf.SecretKey != "" && conf.PublicKey != "":
		return errors.New("specify only one of --secret-key or --public-key")
	case conf.SecretKey != "":
		sk, err := schnorr.ParseSecretKey(conf.SecretKey)
		if err != nil {
			return err
		}
		pk = schnorr.PublicKey(sk)
	case conf.PublicKey != "":
		var err error
		pk, err = hex.DecodeString(conf.PublicKey)
		if err != nil {
			return ledgercommon.DecodeError{What: "public key", Err: err}
		}
	default:
		return errors.New("specify one of --secret-key or --public-key")
	}
	addr, err := ledgercommon.NewAddressFromPublicKey(pk, globalFlags.NetworkType())
	if err != nil {
		return err
	}
	fmt.Fprintln(out, addr.String())
	return nil
}

func validateAddress(conf *validateAddressConfig, out io.Writer) error {
	addr, err := ledgercommon.NewAddress(conf.Args.Address)
	if err != nil {
		fmt.Fprintln(out, "invalid")
		return fmt.Errorf("%w: %w", errInvalidAddress, err)
	}
	network := "mainnet"
	if addr.IsTestnet() {
		network = "testnet"
	}
	fmt.Fprintf(out, "valid (%s, public key %x)\n", network, addr.PublicKey())
	return nil
}
