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
	"errors"
	"fmt"
)

// Sentinel errors so callers can use errors.Is regardless of the concrete error type
var (
	ErrInvalidArgument   = errors.New("invalid argument")
	ErrDecode            = errors.New("decode error")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrTransport         = errors.New("transport error")
)

// DecodeError indicates malformed encoded input such as an address or signature
type DecodeError struct {
	What string
	Err  error
}

func (e DecodeError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("failed to decode %s", e.What)
	}
	return fmt.Sprintf("failed to decode %s: %v", e.What, e.Err)
}

func (e DecodeError) Unwrap() error { return e.Err }

func (DecodeError) Is(target error) bool {
	return target == ErrDecode
}

// InsufficientFundsError indicates the inputs cannot cover the requested outputs.
// TokenId is nil when the shortfall is in ERG
type InsufficientFundsError struct {
	TokenId   *TokenId
	Required  uint64
	Available uint64
	Reason    string
}

func (e InsufficientFundsError) Error() string {
	if e.Reason != "" {
		return "insufficient funds: " + e.Reason
	}
	if e.TokenId != nil {
		return fmt.Sprintf(
			"insufficient funds for token %s: required %d, available %d",
			e.TokenId.String(),
			e.Required,
			e.Available,
		)
	}
	return fmt.Sprintf(
		"insufficient funds: required %d, available %d",
		e.Required,
		e.Available,
	)
}

func (InsufficientFundsError) Is(target error) bool {
	return target == ErrInsufficientFunds
}

// InvalidArgumentf returns an error wrapping ErrInvalidArgument
func InvalidArgumentf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...))
}
