package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
)

// RPCClient talks JSON-RPC 2.0 to the legacy endpoint. It carries no session
// state; the caller passes its token as the first RPC argument.
type RPCClient struct {
	endpoint string
	client   *http.Client
	logger   zerolog.Logger
	nextID   atomic.Int64
}

// NewRPCClient creates a client for the given JSON-RPC endpoint URL. A zero
// timeout falls back to 30 seconds.
func NewRPCClient(endpoint string, timeout time.Duration, logger zerolog.Logger) *RPCClient {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &RPCClient{
		endpoint: endpoint,
		client:   &http.Client{Timeout: timeout},
		logger:   logger,
	}
}

type rpcRequest struct {
	JSONRPC string `json:"jsonrpc"`
	Method  string `json:"method"`
	Params  []any  `json:"params"`
	ID      int64  `json:"id"`
}

type rpcResponse struct {
	Result any       `json:"result"`
	Error  *RPCError `json:"error"`
}

// RPCError is a fault reported by the legacy endpoint itself.
type RPCError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *RPCError) Error() string {
	return fmt.Sprintf("rpc error %d: %s", e.Code, e.Message)
}

// Call invokes a legacy method and returns its decoded result.
func (c *RPCClient) Call(ctx context.Context, method string, args ...any) (any, error) {
	payload := rpcRequest{
		JSONRPC: "2.0",
		Method:  method,
		Params:  args,
		ID:      c.nextID.Add(1),
	}
	if payload.Params == nil {
		payload.Params = []any{}
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal rpc request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Error().Err(err).Str("method", method).Msg("rpc call failed")
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &RequestError{Status: resp.StatusCode, Reason: resp.Status}
	}

	var decoded rpcResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, &DecodeError{Err: err}
	}
	if decoded.Error != nil {
		return nil, decoded.Error
	}

	c.logger.Debug().
		Str("method", method).
		Dur("duration", time.Since(start)).
		Msg("rpc call complete")
	return decoded.Result, nil
}
