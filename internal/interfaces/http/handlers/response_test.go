package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/Voidkillxx/FinalCaseStudy/internal/domain/cart"
	"github.com/Voidkillxx/FinalCaseStudy/internal/infrastructure/backend"
	"github.com/stretchr/testify/assert"
)

func TestFailureStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"line gone from cart", fmt.Errorf("failed to remove item: %w", cart.ErrItemNotFound), http.StatusNotFound},
		{"cart busy", cart.ErrBusy, http.StatusConflict},
		{"backend session expired", &backend.APIError{Status: http.StatusUnauthorized, Message: "Unauthenticated."}, http.StatusUnauthorized},
		{"backend rejected", &backend.APIError{Status: http.StatusBadRequest, Message: "Order already shipped."}, http.StatusUnprocessableEntity},
		{"backend crashed", &backend.APIError{Status: http.StatusInternalServerError}, http.StatusBadGateway},
		{"deadline", fmt.Errorf("failed to fetch cart: %w", context.DeadlineExceeded), http.StatusGatewayTimeout},
		{"transport", errors.New("connection refused"), http.StatusBadGateway},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, failureStatus(tt.err))
		})
	}
}
