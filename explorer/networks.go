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

package explorer

import "github.com/blinklabs-io/ergotx/ledger/common"

// Network definitions
var (
	NetworkMainnet = Network{
		Id:          common.AddressNetworkMainnet,
		Name:        "mainnet",
		ExplorerURL: "https://api.ergoplatform.com/api/v0",
		SubmitURL:   "https://api.ergoplatform.com/api/v0",
	}
	NetworkTestnet = Network{
		Id:          common.AddressNetworkTestnet,
		Name:        "testnet",
		ExplorerURL: "https://api-testnet.ergoplatform.com/api/v0",
		SubmitURL:   "https://api-testnet.ergoplatform.com/api/v0",
	}

	NetworkInvalid = Network{
		Id:   0xff,
		Name: "invalid",
	} // NetworkInvalid is used as a return value for lookup functions when a network isn't found
)

// List of valid networks for use in lookup functions
var networks = []Network{
	NetworkMainnet,
	NetworkTestnet,
}

// NetworkByName returns a predefined network by name
func NetworkByName(name string) Network {
	for _, network := range networks {
		if network.Name == name {
			return network
		}
	}
	return NetworkInvalid
}

// NetworkById returns a predefined network by address network type
func NetworkById(id uint8) Network {
	for _, network := range networks {
		if network.Id == id {
			return network
		}
	}
	return NetworkInvalid
}

// Network represents an Ergo network and the public API endpoints serving it
type Network struct {
	Id          uint8 // network type used for addresses
	Name        string
	ExplorerURL string
	SubmitURL   string
}

func (n Network) String() string {
	return n.Name
}
