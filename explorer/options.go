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
	"log/slog"
	"net/http"
	"time"
)

// ClientOptionFunc is a type that represents functions that modify the Client config
type ClientOptionFunc func(*Client)

// WithNetwork uses the public endpoints of the given network. Explicit URL options given after
// it take precedence
func WithNetwork(network Network) ClientOptionFunc {
	return func(c *Client) {
		c.baseURL = network.ExplorerURL
		c.submitURL = network.SubmitURL
	}
}

// WithBaseURL specifies the explorer API used for box and height queries
func WithBaseURL(baseURL string) ClientOptionFunc {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithSubmitURL specifies the API that transactions are submitted to. If none is provided,
// the explorer base URL is used
func WithSubmitURL(submitURL string) ClientOptionFunc {
	return func(c *Client) {
		c.submitURL = submitURL
	}
}

// WithHTTPClient specifies the HTTP client to use. If none is provided, one is created with the
// configured timeout
func WithHTTPClient(httpClient *http.Client) ClientOptionFunc {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithTimeout specifies the timeout applied to each request. This is ignored when a custom
// HTTP client is provided
func WithTimeout(timeout time.Duration) ClientOptionFunc {
	return func(c *Client) {
		c.timeout = timeout
	}
}

// WithLogger specifies the logger to use. If none is provided, slog.Default() is used
func WithLogger(logger *slog.Logger) ClientOptionFunc {
	return func(c *Client) {
		c.logger = logger
	}
}
