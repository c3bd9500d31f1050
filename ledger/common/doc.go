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

// Package common provides the types shared by every other package: 32-byte identifiers,
// P2PK addresses and the error taxonomy.
//
// # Key Files by Purpose
//
//   - common.go: Blake2b256 and the BoxId, TokenId and TxId aliases
//   - address.go: Address parsing, checksums and the P2PK ErgoTree template
//   - errors.go: Sentinel errors and the DecodeError and InsufficientFundsError types
//
// Errors returned anywhere in the module match one of ErrInvalidArgument, ErrDecode,
// ErrInsufficientFunds or ErrTransport with errors.Is.
package common
