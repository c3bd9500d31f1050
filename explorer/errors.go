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

import (
	"fmt"

	"github.com/blinklabs-io/ergotx/ledger/common"
)

// TransportError is returned for any failure talking to the explorer or submission API,
// including non-2xx responses. It matches common.ErrTransport
type TransportError struct {
	Op         string
	URL        string
	StatusCode int
	Body       string
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		msg := fmt.Sprintf(
			"%s %s: unexpected status %d",
			e.Op,
			e.URL,
			e.StatusCode,
		)
		if e.Body != "" {
			msg += ": " + e.Body
		}
		return msg
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

func (*TransportError) Is(target error) bool {
	return target == common.ErrTransport
}
