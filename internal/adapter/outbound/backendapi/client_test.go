package backendapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uniedit/orderflow/internal/domain/order"
	"go.uber.org/zap"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL+"/", srv.Client(), zap.NewNop())
}

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, body)
}

const canceledOrderJSON = `{"data":{"id":7,"number":"A-7","total":"19.995","product":{"title":"Pro plan","description":"Yearly"},"status":"canceled"}}`

func TestClient_Cancel(t *testing.T) {
	t.Run("success decodes the snapshot", func(t *testing.T) {
		var gotPath, gotKey, gotMethod string
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			gotMethod, gotPath, gotKey = r.Method, r.URL.Path, r.Header.Get(idempotencyKeyHeader)
			writeJSON(w, http.StatusOK, canceledOrderJSON)
		})

		result, err := c.Cancel(context.Background(), order.CancelRequest{OrderID: 7, IdempotencyKey: "k-1"})
		require.NoError(t, err)
		require.True(t, result.Valid())
		assert.True(t, result.Success)
		assert.Equal(t, order.StatusCanceled, result.Order.Status)
		assert.Equal(t, "19.995", result.Order.Total.String())

		assert.Equal(t, http.MethodPost, gotMethod)
		assert.Equal(t, "/api/v1/orders/7/cancel", gotPath)
		assert.Equal(t, "k-1", gotKey)
	})

	t.Run("unprocessable is a rejection with the backend message", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusUnprocessableEntity, `{"message":"Order cannot be canceled"}`)
		})

		result, err := c.Cancel(context.Background(), order.CancelRequest{OrderID: 7})
		require.NoError(t, err)
		assert.False(t, result.Success)
		assert.Nil(t, result.Order)
		assert.Equal(t, "Order cannot be canceled", result.Message)
	})

	t.Run("success without data is left inconsistent", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, `{"data":null}`)
		})

		result, err := c.Cancel(context.Background(), order.CancelRequest{OrderID: 7})
		require.NoError(t, err)
		assert.False(t, result.Valid())
	})

	t.Run("server error is a fault", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusInternalServerError, `{"message":"database down"}`)
		})

		_, err := c.Cancel(context.Background(), order.CancelRequest{OrderID: 7})
		assert.ErrorIs(t, err, ErrUnexpectedStatus)
	})

	t.Run("conflict is a fault", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusConflict, `{"message":"in progress"}`)
		})

		_, err := c.Cancel(context.Background(), order.CancelRequest{OrderID: 7})
		assert.ErrorIs(t, err, ErrUnexpectedStatus)
	})

	t.Run("non-json body is a fault", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
			_, _ = io.WriteString(w, "<html>bad gateway</html>")
		})

		_, err := c.Cancel(context.Background(), order.CancelRequest{OrderID: 7})
		assert.ErrorIs(t, err, ErrUnexpectedStatus)
	})

	t.Run("cancelled context is a fault", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, canceledOrderJSON)
		})
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := c.Cancel(ctx, order.CancelRequest{OrderID: 7})
		assert.True(t, errors.Is(err, context.Canceled))
	})
}

func TestClient_Refund(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/orders/42/refund", r.URL.Path)
		writeJSON(w, http.StatusUnprocessableEntity, `{"message":"Order not eligible for refund"}`)
	})

	result, err := c.Refund(context.Background(), order.RefundRequest{OrderID: 42, IdempotencyKey: "k"})
	require.NoError(t, err)
	assert.Equal(t, order.Rejected("Order not eligible for refund"), result)
}

func TestClient_GetOrder(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/v1/orders/A-7", r.URL.Path)
			writeJSON(w, http.StatusOK, canceledOrderJSON)
		})

		o, err := c.GetOrder(context.Background(), "A-7")
		require.NoError(t, err)
		assert.Equal(t, int64(7), o.ID)
		assert.Equal(t, "Pro plan", o.Product.Title)
	})

	t.Run("not found", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusNotFound, `{"message":"Order not found"}`)
		})

		_, err := c.GetOrder(context.Background(), "nope")
		assert.ErrorIs(t, err, order.ErrOrderNotFound)
	})
}

func TestClient_CreateSession(t *testing.T) {
	req := order.CreateSessionRequest{
		OrderNumber:        "A-7",
		AmountInMinorUnits: 2000,
		ProductTitle:       "Pro plan",
		ProductDescription: "Yearly",
		IdempotencyKey:     "k-9",
	}

	t.Run("session", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "k-9", r.Header.Get(idempotencyKeyHeader))
			var body map[string]any
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, float64(2000), body["amount"])
			assert.Equal(t, "A-7", body["order_number"])
			assert.NotContains(t, body, "IdempotencyKey")
			writeJSON(w, http.StatusCreated, `{"data":{"id":"cs_1","url":"https://pay.example/cs_1"}}`)
		})

		result, err := c.CreateSession(context.Background(), req)
		require.NoError(t, err)
		require.True(t, result.HasSession())
		assert.Equal(t, "cs_1", result.Session.ID)
	})

	t.Run("declined means no session", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusUnprocessableEntity, `{"message":"amount must be positive"}`)
		})

		result, err := c.CreateSession(context.Background(), req)
		require.NoError(t, err)
		assert.False(t, result.HasSession())
	})

	t.Run("gateway fault", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusBadGateway, `{"message":"stripe unavailable"}`)
		})

		_, err := c.CreateSession(context.Background(), req)
		assert.ErrorIs(t, err, ErrUnexpectedStatus)
	})
}
