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

// Package explorer is a client for the public Ergo explorer and transaction submission APIs
package explorer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/blinklabs-io/ergotx/ledger"
	"github.com/blinklabs-io/ergotx/ledger/common"
)

const (
	DefaultTimeout = 5 * time.Second

	// Responses larger than this are treated as a transport failure
	maxResponseSize = 16 << 20
	// Amount of an error response body kept in TransportError
	maxErrorBodySize = 512
)

// Client fetches unspent boxes and the chain height from the explorer and submits signed
// transactions. It is safe for concurrent use
type Client struct {
	baseURL    string
	submitURL  string
	httpClient *http.Client
	timeout    time.Duration
	logger     *slog.Logger
}

// NewClient returns a new Client with the specified options. The mainnet endpoints are used
// unless overridden
func NewClient(options ...ClientOptionFunc) (*Client, error) {
	c := &Client{
		baseURL: NetworkMainnet.ExplorerURL,
		timeout: DefaultTimeout,
	}
	for _, option := range options {
		option(c)
	}
	if c.submitURL == "" {
		c.submitURL = c.baseURL
	}
	for _, tmpURL := range []string{c.baseURL, c.submitURL} {
		u, err := url.Parse(tmpURL)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid URL %q: %w", common.ErrInvalidArgument, tmpURL, err)
		}
		if u.Scheme != "http" && u.Scheme != "https" {
			return nil, common.InvalidArgumentf("unsupported URL scheme in %q", tmpURL)
		}
	}
	if c.httpClient == nil {
		c.httpClient = &http.Client{Timeout: c.timeout}
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	return c, nil
}

// UnspentBoxes returns the unspent boxes locked to the given address
func (c *Client) UnspentBoxes(
	ctx context.Context,
	address string,
) ([]ledger.Box, error) {
	if address == "" {
		return nil, common.InvalidArgumentf("empty address")
	}
	reqURL, err := apiURL(
		c.baseURL,
		nil,
		"transactions", "boxes", "byAddress", "unspent", address,
	)
	if err != nil {
		return nil, err
	}
	body, err := c.do(ctx, "fetch unspent boxes", http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}
	ret := []ledger.Box{}
	if err := json.Unmarshal(body, &ret); err != nil {
		return nil, common.DecodeError{What: "unspent boxes response", Err: err}
	}
	c.logger.Debug(
		"fetched unspent boxes",
		"component", "explorer",
		"address", address,
		"count", len(ret),
	)
	return ret, nil
}

// CurrentHeight returns the height of the most recent block known to the explorer
func (c *Client) CurrentHeight(ctx context.Context) (uint64, error) {
	reqURL, err := apiURL(c.baseURL, url.Values{"limit": {"1"}}, "blocks")
	if err != nil {
		return 0, err
	}
	body, err := c.do(ctx, "fetch current height", http.MethodGet, reqURL, nil)
	if err != nil {
		return 0, err
	}
	var resp struct {
		Total *uint64 `json:"total"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return 0, common.DecodeError{What: "blocks response", Err: err}
	}
	if resp.Total == nil {
		return 0, common.DecodeError{
			What: "blocks response",
			Err:  errors.New("missing total"),
		}
	}
	c.logger.Debug(
		"fetched current height",
		"component", "explorer",
		"height", *resp.Total,
	)
	return *resp.Total, nil
}

// Broadcast submits a signed transaction and returns the transaction ID reported by the
// submission API
func (c *Client) Broadcast(
	ctx context.Context,
	tx *ledger.Transaction,
) (string, error) {
	if tx == nil || !tx.IsSigned() {
		return "", common.InvalidArgumentf("transaction is not signed")
	}
	txJson, err := json.Marshal(tx)
	if err != nil {
		return "", fmt.Errorf("failed to encode transaction: %w", err)
	}
	reqURL, err := apiURL(c.submitURL, nil, "transactions", "send")
	if err != nil {
		return "", err
	}
	body, err := c.do(ctx, "submit transaction", http.MethodPost, reqURL, txJson)
	if err != nil {
		return "", err
	}
	txId, err := parseSubmitResponse(body)
	if err != nil {
		return "", err
	}
	c.logger.Debug(
		"submitted transaction",
		"component", "explorer",
		"tx_id", txId,
		"inputs", len(tx.Inputs),
		"outputs", len(tx.Outputs),
	)
	return txId, nil
}

func (c *Client) do(
	ctx context.Context,
	op string,
	method string,
	reqURL string,
	reqBody []byte,
) ([]byte, error) {
	var bodyReader io.Reader
	if reqBody != nil {
		bodyReader = bytes.NewReader(reqBody)
	}
	req, err := http.NewRequestWithContext(ctx, method, reqURL, bodyReader)
	if err != nil {
		return nil, &TransportError{Op: op, URL: reqURL, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if reqBody != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	c.logger.Debug(
		"sending request",
		"component", "explorer",
		"method", method,
		"url", reqURL,
	)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{Op: op, URL: reqURL, Err: err}
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize+1))
	if err != nil {
		return nil, &TransportError{Op: op, URL: reqURL, Err: err}
	}
	if len(body) > maxResponseSize {
		return nil, &TransportError{
			Op:  op,
			URL: reqURL,
			Err: fmt.Errorf("response exceeds %d bytes", maxResponseSize),
		}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		errBody := strings.TrimSpace(string(body))
		if len(errBody) > maxErrorBodySize {
			errBody = errBody[:maxErrorBodySize]
		}
		return nil, &TransportError{
			Op:         op,
			URL:        reqURL,
			StatusCode: resp.StatusCode,
			Body:       errBody,
		}
	}
	return body, nil
}

// apiURL joins the path elements onto the base URL, keeping any path prefix on the base
func apiURL(baseURL string, query url.Values, elems ...string) (string, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return "", fmt.Errorf("%w: invalid URL %q: %w", common.ErrInvalidArgument, baseURL, err)
	}
	u = u.JoinPath(elems...)
	if query != nil {
		u.RawQuery = query.Encode()
	}
	return u.String(), nil
}

// parseSubmitResponse accepts either {"id": "..."} or a bare JSON string
func parseSubmitResponse(body []byte) (string, error) {
	var txId string
	if err := json.Unmarshal(body, &txId); err == nil {
		if txId == "" {
			return "", common.DecodeError{
				What: "submit response",
				Err:  errors.New("empty transaction ID"),
			}
		}
		return txId, nil
	}
	var resp struct {
		Id string `json:"id"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", common.DecodeError{What: "submit response", Err: err}
	}
	if resp.Id == "" {
		return "", common.DecodeError{
			What: "submit response",
			Err:  errors.New("missing transaction ID"),
		}
	}
	return resp.Id, nil
}
