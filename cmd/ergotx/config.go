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
	"errors"

	"github.com/blinklabs-io/ergotx/cmd/common"
	"github.com/jessevdk/go-flags"
)

const (
	addressSubCmd         = "address"
	validateAddressSubCmd = "validate-address"
	sendSubCmd            = "send"
	broadcastSubCmd       = "broadcast"
	signMessageSubCmd     = "sign-message"
	verifyMessageSubCmd   = "verify-message"
)

type configFlags struct {
	common.GlobalFlags
}

type addressConfig struct {
	SecretKey string `long:"secret-key" short:"k" description:"The secret key to derive the address from (encoded in hex)"`
	PublicKey string `long:"public-key" short:"p" description:"The compressed public key to derive the address from (encoded in hex)"`
}

type validateAddressConfig struct {
	Args struct {
		Address string `positional-arg-name:"ADDRESS"`
	} `positional-args:"yes" required:"yes"`
}

type sendConfig struct {
	SecretKeys    []string `long:"secret-key" short:"k" description:"The secret keys funding the payment, tried in order (encoded in hex)" required:"true"`
	ToAddress     string   `long:"to" short:"t" description:"The address to send ERG to" required:"true"`
	Amount        uint64   `long:"amount" short:"v" description:"The amount to send in nanoERG" required:"true"`
	Fee           uint64   `long:"fee" short:"f" description:"The miner fee in nanoERG" default:"1000000"`
	ChangeAddress string   `long:"change-address" description:"The address receiving the change (defaults to the address of the first key)"`
	Consolidate   int      `long:"consolidate" description:"Top up the inputs to this many boxes, 0 to spend only what is needed" default:"10"`
	DryRun        bool     `long:"dry-run" description:"Build and sign the transaction without broadcasting it"`
	OutFile       string   `long:"out" short:"o" description:"Write the signed transaction to this file"`
}

type broadcastConfig struct {
	InFile string `long:"in" short:"i" description:"The signed transaction file to broadcast" required:"true"`
}

type signMessageConfig struct {
	SecretKey string `long:"secret-key" short:"k" description:"The secret key to sign with (encoded in hex)" required:"true"`
	Message   string `long:"message" short:"m" description:"The message to sign (encoded in hex)" required:"true"`
}

type verifyMessageConfig struct {
	PublicKey string `long:"public-key" short:"p" description:"The compressed public key of the signer (encoded in hex)" required:"true"`
	Message   string `long:"message" short:"m" description:"The signed message (encoded in hex)" required:"true"`
	Signature string `long:"signature" short:"s" description:"The signature to check (encoded in hex)" required:"true"`
}

// errHelp is returned by parseArgs when help was requested
var errHelp = errors.New("help requested")

func parseArgs(args []string) (string, any, *common.GlobalFlags, error) {
	cfg := &configFlags{}
	parser := flags.NewParser(cfg, flags.PrintErrors|flags.HelpFlag)

	addressConf := &addressConfig{}
	if _, err := parser.AddCommand(addressSubCmd, "Shows the address of a key",
		"Shows the P2PK address of a secret or public key", addressConf); err != nil {
		return "", nil, nil, err
	}

	validateAddressConf := &validateAddressConfig{}
	if _, err := parser.AddCommand(validateAddressSubCmd, "Checks an address",
		"Checks the encoding and checksum of an address", validateAddressConf); err != nil {
		return "", nil, nil, err
	}

	sendConf := &sendConfig{}
	if _, err := parser.AddCommand(sendSubCmd, "Sends ERG to an address",
		"Selects boxes owned by the given keys, signs a payment and broadcasts it", sendConf); err != nil {
		return "", nil, nil, err
	}

	broadcastConf := &broadcastConfig{}
	if _, err := parser.AddCommand(broadcastSubCmd, "Broadcasts a signed transaction",
		"Broadcasts a transaction written by send --out", broadcastConf); err != nil {
		return "", nil, nil, err
	}

	signMessageConf := &signMessageConfig{}
	if _, err := parser.AddCommand(signMessageSubCmd, "Signs a message",
		"Produces a Schnorr signature over a hex-encoded message", signMessageConf); err != nil {
		return "", nil, nil, err
	}

	verifyMessageConf := &verifyMessageConfig{}
	if _, err := parser.AddCommand(verifyMessageSubCmd, "Verifies a message signature",
		"Checks a Schnorr signature over a hex-encoded message", verifyMessageConf); err != nil {
		return "", nil, nil, err
	}

	if _, err := parser.ParseArgs(args); err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
			return "", nil, nil, errHelp
		}
		return "", nil, nil, err
	}

	var config any
	switch parser.Command.Active.Name {
	case addressSubCmd:
		config = addressConf
	case validateAddressSubCmd:
		config = validateAddressConf
	case sendSubCmd:
		config = sendConf
	case broadcastSubCmd:
		config = broadcastConf
	case signMessageSubCmd:
		config = signMessageConf
	case verifyMessageSubCmd:
		config = verifyMessageConf
	}
	return parser.Command.Active.Name, config, &cfg.GlobalFlags, nil
}
