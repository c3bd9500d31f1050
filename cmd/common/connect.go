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
	"log/slog"

	"github.com/blinklabs-io/ergotx/explorer"
)

// CreateExplorerClient returns an explorer client for the network and endpoints selected by
// the flags
func CreateExplorerClient(f *GlobalFlags, logger *slog.Logger) (*explorer.Client, error) {
	opts := []explorer.ClientOptionFunc{
		explorer.WithNetwork(f.Network()),
		explorer.WithTimeout(f.Timeout),
		explorer.WithLogger(logger),
	}
	if f.ExplorerURL != "" {
		opts = append(opts, explorer.WithBaseURL(f.ExplorerURL))
		// A custom explorer also serves submissions unless told otherwise
		if f.SubmitURL == "" {
			opts = append(opts, explorer.WithSubmitURL(f.ExplorerURL))
		}
	}
	if f.SubmitURL != "" {
		opts = append(opts, explorer.WithSubmitURL(f.SubmitURL))
	}
	return explorer.NewClient(opts...)
}
