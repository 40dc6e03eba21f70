package backendapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/uniedit/orderflow/internal/domain/order"
	"github.com/uniedit/orderflow/internal/port/outbound"
	"go.uber.org/zap"
)

const idempotencyKeyHeader = "Idempotency-Key"

// maxErrorBody bounds how much of an unexpected body is kept for logs.
const maxErrorBody = 1 << 10

// ErrUnexpectedStatus is returned for answers that are neither a result nor
// a business rejection.
var ErrUnexpectedStatus = errors.New("unexpected backend status")

// envelope is the backend's response body.
type envelope struct {
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

// Client talks to the order backend over HTTP.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *zap.Logger
}

// NewClient creates a backend client. httpClient is typically built by
// infra/httpclient.
func NewClient(baseURL string, httpClient *http.Client, logger *zap.Logger) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
		logger:  logger,
	}
}

// GetOrder implements outbound.OrderReaderPort.
func (c *Client) GetOrder(ctx context.Context, number string) (*order.Order, error) {
	status, env, err := c.do(ctx, http.MethodGet, "/api/v1/orders/"+url.PathEscape(number), "", nil)
	if err != nil {
		return nil, err
	}

	switch {
	case status == http.StatusNotFound:
		return nil, fmt.Errorf("%w: %s", order.ErrOrderNotFound, number)
	case status >= 200 && status < 300:
		var o order.Order
		if err := decodeData(env, &o); err != nil {
			return nil, err
		}
		return &o, nil
	default:
		return nil, unexpected(status, env)
	}
}

// Cancel implements outbound.OrderTransitionPort.
func (c *Client) Cancel(ctx context.Context, req order.CancelRequest) (*order.TransitionResult, error) {
	return c.transition(ctx, req.OrderID, "cancel", req.IdempotencyKey)
}

// Refund implements outbound.OrderTransitionPort.
func (c *Client) Refund(ctx context.Context, req order.RefundRequest) (*order.TransitionResult, error) {
	return c.transition(ctx, req.OrderID, "refund", req.IdempotencyKey)
}

func (c *Client) transition(ctx context.Context, orderID int64, verb, key string) (*order.TransitionResult, error) {
	path := "/api/v1/orders/" + strconv.FormatInt(orderID, 10) + "/" + verb
	status, env, err := c.do(ctx, http.MethodPost, path, key, nil)
	if err != nil {
		return nil, err
	}

	switch {
	case status >= 200 && status < 300:
		if isNull(env.Data) {
			// Left for the caller to reject as inconsistent.
			return &order.TransitionResult{Success: true}, nil
		}
		var o order.Order
		if err := decodeData(env, &o); err != nil {
			return nil, err
		}
		return order.Succeeded(&o), nil
	case isRejection(status):
		return order.Rejected(env.Message), nil
	default:
		return nil, unexpected(status, env)
	}
}

// CreateSession implements outbound.PaymentGatewayPort.
func (c *Client) CreateSession(ctx context.Context, req order.CreateSessionRequest) (*order.PaymentSessionResult, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	status, env, err := c.do(ctx, http.MethodPost, "/api/v1/payments/sessions", req.IdempotencyKey, body)
	if err != nil {
		return nil, err
	}

	switch {
	case status >= 200 && status < 300:
		if isNull(env.Data) {
			return &order.PaymentSessionResult{}, nil
		}
		var s order.PaymentSession
		if err := decodeData(env, &s); err != nil {
			return nil, err
		}
		return &order.PaymentSessionResult{Session: &s}, nil
	case isRejection(status):
		c.logger.Info("backend declined to create a session",
			zap.Int("status", status),
			zap.String("message", env.Message),
		)
		return &order.PaymentSessionResult{}, nil
	default:
		return nil, unexpected(status, env)
	}
}

// do sends one request and decodes the envelope. Transport failures and
// undecodable bodies are returned as errors.
func (c *Client) do(ctx context.Context, method, path, key string, body []byte) (int, *envelope, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return 0, nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if key != "" {
		req.Header.Set(idempotencyKeyHeader, key)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, fmt.Errorf("read response: %w", err)
	}

	env := &envelope{}
	if len(bytes.TrimSpace(raw)) > 0 {
		if err := json.Unmarshal(raw, env); err != nil {
			if len(raw) > maxErrorBody {
				raw = raw[:maxErrorBody]
			}
			return resp.StatusCode, nil, fmt.Errorf("%w: status %d with undecodable body %q", ErrUnexpectedStatus, resp.StatusCode, raw)
		}
	}

	c.logger.Debug("backend call",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
	)
	return resp.StatusCode, env, nil
}

// isRejection reports whether status is a business refusal. Conflicts,
// timeouts and throttling are transient and count as faults.
func isRejection(status int) bool {
	if status < 400 || status >= 500 {
		return false
	}
	switch status {
	case http.StatusRequestTimeout, http.StatusConflict, http.StatusTooManyRequests:
		return false
	}
	return true
}

func isNull(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

func decodeData(env *envelope, v any) error {
	if err := json.Unmarshal(env.Data, v); err != nil {
		return fmt.Errorf("decode data: %w", err)
	}
	return nil
}

func unexpected(status int, env *envelope) error {
	if env != nil && env.Message != "" {
		return fmt.Errorf("%w: %d: %s", ErrUnexpectedStatus, status, env.Message)
	}
	return fmt.Errorf("%w: %d", ErrUnexpectedStatus, status)
}

var (
	_ outbound.OrderTransitionPort = (*Client)(nil)
	_ outbound.OrderReaderPort     = (*Client)(nil)
	_ outbound.PaymentGatewayPort  = (*Client)(nil)
)
