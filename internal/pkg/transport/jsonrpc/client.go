// Package jsonrpc provides a JSON-RPC 2.0 client over HTTP, used by the polling
// chain client to talk to Ethereum nodes that expose no websocket endpoint.
package jsonrpc

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/hashicorp/go-retryablehttp"
)

var (
	// ErrProviderReturnedError indicates that the remote server answered with a JSON-RPC error object.
	ErrProviderReturnedError = errors.New("provider error")

	// ErrNullResult indicates a successful response whose result is absent or JSON null.
	// Ethereum nodes answer this way for blocks they have not indexed yet.
	ErrNullResult = errors.New("provider returned a null result")

	// ErrUnexpectedStatus indicates a non-2xx HTTP status that carried no JSON-RPC body.
	ErrUnexpectedStatus = errors.New("unexpected http status")
)

// response represents a standard JSON-RPC 2.0 response.
type response struct {
	JsonRPC string `json:"jsonrpc"`
	Error   *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
	Result json.RawMessage `json:"result"`
}

// Err returns the JSON-RPC error carried by the response, wrapped in ErrProviderReturnedError.
func (r response) Err() error {
	if r.Error == nil {
		return nil
	}

	return fmt.Errorf("%w: [%d] - %s", ErrProviderReturnedError, r.Error.Code, r.Error.Message)
}

// isNull reports whether the result is missing or the JSON literal null.
func (r response) isNull() bool {
	return len(r.Result) == 0 || bytes.Equal(bytes.TrimSpace(r.Result), []byte("null"))
}

// Client sends JSON-RPC requests.
type Client interface {
	// Fetch calls method with params and returns the raw result.
	//
	// It returns ErrProviderReturnedError for JSON-RPC error objects and
	// ErrNullResult when the call succeeded but produced no value.
	Fetch(ctx context.Context, method string, params ...any) (json.RawMessage, error)
}

// client is the default Client, posting requests to a single endpoint.
type client struct {
	providerEndpoint string
	httpClient       *retryablehttp.Client
}

var _ Client = (*client)(nil)

// Fetch implements Client. Each request gets a fresh UUID as its id.
func (c *client) Fetch(ctx context.Context, method string, params ...any) (json.RawMessage, error) {
	if params == nil {
		params = []any{}
	}

	body, err := json.Marshal(map[string]any{
		"jsonrpc": "2.0",
		"id":      uuid.NewString(),
		"method":  method,
		"params":  params,
	})
	if err != nil {
		return nil, err
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, c.providerEndpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	req.Header.Set("Content-Type", "application/json")

	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	var data response
	if err := json.NewDecoder(res.Body).Decode(&data); err != nil {
		if res.StatusCode >= http.StatusMultipleChoices {
			return nil, fmt.Errorf("%w: %s", ErrUnexpectedStatus, res.Status)
		}
		return nil, err
	}

	if err := data.Err(); err != nil {
		return nil, err
	}

	if data.isNull() {
		return nil, fmt.Errorf("%w: %s", ErrNullResult, method)
	}

	return data.Result, nil
}

// NewClient returns a Client posting to providerEndpoint through httpClient,
// usually built with the transport/http package.
func NewClient(providerEndpoint string, httpClient *retryablehttp.Client) *client {
	return &client{
		providerEndpoint: providerEndpoint,
		httpClient:       httpClient,
	}
}
