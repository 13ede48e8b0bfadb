package backend

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Voidkillxx/FinalCaseStudy/internal/domain/registration"
	"github.com/Voidkillxx/FinalCaseStudy/internal/pkg/logger"
	"github.com/Voidkillxx/FinalCaseStudy/internal/pkg/notice"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL+"/", 5*time.Second, logger.Discard())
}

func TestClient_FetchOrdersBareArray(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/orders", r.URL.Path)
		assert.Equal(t, "Bearer tok-123", r.Header.Get("Authorization"))
		io.WriteString(w, `[{"id":42,"status":"Pending","total_amount":"530.00","created_at":"2025-03-03T09:00:00Z",
			"order_items":[{"id":1,"quantity":2,"price_at_purchase":265,"product":null}]}]`)
	}).WithToken("tok-123")

	orders, err := client.FetchOrders(context.Background())
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, uint(42), orders[0].ID)
	assert.True(t, orders[0].TotalAmount.Equal(decimal.NewFromInt(530)))
	assert.True(t, orders[0].OrderItems[0].PriceAtPurchase.Equal(decimal.NewFromInt(265)))
	assert.Equal(t, "Product Not Found", orders[0].OrderItems[0].ProductName())
}

func TestClient_FetchCartEnvelope(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"message":"ok","data":[{"id":1,"product_id":10,"quantity":3,
			"product":{"id":10,"product_name":"Rice 5kg","price":"100.00","discount":20,"stock":5}}]}`)
	})

	items, err := client.FetchCart(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Rice 5kg", items[0].Product.ProductName)
	assert.True(t, items[0].Product.Discount.Equal(decimal.NewFromInt(20)))
}

func TestClient_AnonymousSendsNoAuthorization(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		assert.Equal(t, "rice bag", r.URL.Query().Get("search"))
		io.WriteString(w, `[]`)
	})

	products, err := client.SearchProducts(context.Background(), " rice bag ")
	require.NoError(t, err)
	assert.Empty(t, products)
	assert.Empty(t, client.Token())
}

func TestClient_UpdateQuantityBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/cart/7", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]interface{}
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, map[string]interface{}{"quantity": float64(3)}, body)

		io.WriteString(w, `{"id":7,"quantity":3}`)
	})

	item, err := client.UpdateQuantity(context.Background(), 7, 3)
	require.NoError(t, err)
	assert.Equal(t, 3, item.Quantity)
}

func TestClient_ErrorMessages(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		wantPublic string
		wantIs     error
	}{
		{"message field", http.StatusUnprocessableEntity, `{"message":"Order cannot be cancelled."}`, "Order cannot be cancelled.", nil},
		{"error field", http.StatusBadRequest, `{"error":"Invalid OTP."}`, "Invalid OTP.", nil},
		{"unauthorized", http.StatusUnauthorized, `{"message":"Unauthenticated."}`, "Unauthenticated.", ErrUnauthorized},
		{"html body", http.StatusBadGateway, `<html>bad gateway</html>`, "fallback", nil},
		{"not found", http.StatusNotFound, ``, "fallback", ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				io.WriteString(w, tt.body)
			})

			err := client.CancelOrder(context.Background(), 42)
			require.Error(t, err)

			var apiErr *APIError
			require.True(t, errors.As(err, &apiErr))
			assert.Equal(t, tt.status, apiErr.Status)
			assert.Equal(t, tt.wantPublic, notice.MessageOf(err, "fallback"))
			if tt.wantIs != nil {
				assert.ErrorIs(t, err, tt.wantIs)
			}
		})
	}
}

func TestClient_VerifyOtp(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/verify-otp", r.URL.Path)

		var req registration.OtpRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, registration.OtpRequest{Email: "juan@example.com", Otp: "123456", Context: "register"}, req)

		io.WriteString(w, `{"token":"abc","user":{"id":7,"email":"juan@example.com","is_admin":false}}`)
	})

	result, err := client.VerifyOtp(context.Background(), registration.OtpRequest{
		Email: "juan@example.com", Otp: "123456", Context: registration.OtpContext,
	})
	require.NoError(t, err)
	assert.Equal(t, "abc", result.Token)
	assert.Equal(t, uint(7), result.User.ID)
}

func TestClient_LoginWithoutToken(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"message":"ok"}`)
	})

	_, err := client.Login(context.Background(), "juan@example.com", "pw")
	assert.ErrorIs(t, err, errNoToken)
}

func TestClient_TransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	client := NewClient(srv.URL, time.Second, logger.Discard())
	_, err := client.FetchOrders(context.Background())
	require.Error(t, err)
	assert.Equal(t, "fallback", notice.MessageOf(err, "fallback"))
}

func TestUnwrap(t *testing.T) {
	assert.Equal(t, `[1]`, string(unwrap([]byte(` [1] `))))
	assert.Equal(t, `{"id":1}`, string(unwrap([]byte(`{"data":{"id":1}}`))))
	assert.Equal(t, `{"data":null,"id":2}`, string(unwrap([]byte(`{"data":null,"id":2}`))))
	assert.Equal(t, `{"id":3}`, string(unwrap([]byte(`{"id":3}`))))
}
