// Package httpbackend implements the device backend over the device's HTTP
// API. It is a thin protocol client: every operation is one blocking
// request, errors come back through the shared taxonomy, and no state is
// cached beyond the base URL.
package httpbackend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/tobheim/patchbay/internal/logging"
	"github.com/tobheim/patchbay/internal/wire"
	"github.com/tobheim/patchbay/pkg/domain"
	"github.com/tobheim/patchbay/pkg/ports"
)

// Client implements ports.DeviceBackend against a device's HTTP API.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *slog.Logger
}

var _ ports.DeviceBackend = (*Client)(nil)

// Option configures the Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client, e.g. to adjust
// timeouts or inject a test transport.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

// WithLogger configures request logging.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// New creates a client for the device at address ("host", "host:port", or a
// full http URL).
func New(address string, opts ...Option) *Client {
	if !strings.Contains(address, "://") {
		address = "http://" + address
	}
	c := &Client{
		baseURL: strings.TrimSuffix(address, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
		logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) url(group, operation string) string {
	return fmt.Sprintf("%s/api/%s/%s", c.baseURL, group, operation)
}

// do executes one request and resolves the response envelope into out.
func (c *Client) do(ctx context.Context, method, group, operation, token string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s/%s request: %w", group, operation, err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.url(group, operation), reader)
	if err != nil {
		return fmt.Errorf("build %s/%s request: %w", group, operation, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set(wire.ClientKeyHeader, token)
	}

	c.logger.Debug("device request", "method", method, "group", group, "operation", operation)
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s %s/%s: %v", domain.ErrNetwork, method, group, operation, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: %s/%s returned status %d", domain.ErrNetwork, group, operation, resp.StatusCode)
	}

	var env wire.Envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return fmt.Errorf("%w: decode %s/%s response: %v", domain.ErrNetwork, group, operation, err)
	}

	if !env.Success {
		detail := strings.Join(env.Messages, "; ")
		if sentinel := wire.CodeError(env.Code); sentinel != nil {
			if detail == "" {
				return sentinel
			}
			return fmt.Errorf("%w: %s", sentinel, detail)
		}
		return fmt.Errorf("device error %s: %s", env.Code, detail)
	}

	if out != nil {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("%w: decode %s/%s payload: %v", domain.ErrNetwork, group, operation, err)
		}
	}
	return nil
}

// ClaimOwnership claims exclusive access and returns the issued token.
func (c *Client) ClaimOwnership(ctx context.Context, req ports.ClaimRequest) (string, error) {
	var data wire.ClaimData
	err := c.do(ctx, http.MethodPost, "device", "claim_ownership", "", wire.ClaimRequest{
		ForceConnect: req.Force,
		IgnoreBusy:   req.IgnoreBusy,
		PersistState: req.Persist,
	}, &data)
	if err != nil {
		return "", err
	}
	return data.Token, nil
}

// RelinquishOwnership releases exclusive access.
func (c *Client) RelinquishOwnership(ctx context.Context, token string) error {
	return c.do(ctx, http.MethodPost, "device", "relinquish_ownership", token, nil, nil)
}

// GetInstruments fetches the slot occupancy.
func (c *Client) GetInstruments(ctx context.Context) ([]string, error) {
	var data wire.InstrumentsData
	if err := c.do(ctx, http.MethodGet, "slots", "get_instruments", "", nil, &data); err != nil {
		return nil, err
	}
	return data.Instruments, nil
}

// GetConnections fetches the current routing set.
func (c *Client) GetConnections(ctx context.Context) ([]domain.Connection, error) {
	var data wire.ConnectionsPayload
	if err := c.do(ctx, http.MethodGet, "routing", "get_connections", "", nil, &data); err != nil {
		return nil, err
	}
	return data.Connections, nil
}

// SetInstrument deploys an instrument into a slot.
func (c *Client) SetInstrument(ctx context.Context, token string, slot int, instrument string, settings map[string]any) error {
	return c.do(ctx, http.MethodPost, "slots", "set_instrument", token, wire.SetInstrumentRequest{
		Slot:       slot,
		Instrument: instrument,
		Settings:   settings,
	}, nil)
}

// SetConnections replaces the device's routing set.
func (c *Client) SetConnections(ctx context.Context, token string, conns []domain.Connection) error {
	return c.do(ctx, http.MethodPost, "routing", "set_connections", token, wire.ConnectionsPayload{
		Connections: conns,
	}, nil)
}

// Describe fetches the device's identity and platform topology.
func (c *Client) Describe(ctx context.Context) (wire.DescribeData, error) {
	var data wire.DescribeData
	if err := c.do(ctx, http.MethodGet, "device", "describe", "", nil, &data); err != nil {
		return wire.DescribeData{}, err
	}
	return data, nil
}
