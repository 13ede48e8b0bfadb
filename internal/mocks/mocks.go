package mocks

import (
	"context"

	"github.com/Voidkillxx/FinalCaseStudy/internal/domain/cart"
	"github.com/Voidkillxx/FinalCaseStudy/internal/domain/order"
	"github.com/Voidkillxx/FinalCaseStudy/internal/domain/registration"
	"github.com/Voidkillxx/FinalCaseStudy/internal/domain/user"
	"github.com/stretchr/testify/mock"
)

// MockBackend stands in for the grocery REST API in tests
type MockBackend struct {
	mock.Mock
}

func (m *MockBackend) FetchCart(ctx context.Context) ([]cart.CartItem, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]cart.CartItem), args.Error(1)
}

func (m *MockBackend) AddToCart(ctx context.Context, productID uint, quantity int) (*cart.CartItem, error) {
	args := m.Called(ctx, productID, quantity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cart.CartItem), args.Error(1)
}

func (m *MockBackend) UpdateQuantity(ctx context.Context, itemID uint, quantity int) (*cart.CartItem, error) {
	args := m.Called(ctx, itemID, quantity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cart.CartItem), args.Error(1)
}

func (m *MockBackend) RemoveFromCart(ctx context.Context, itemID uint) error {
	args := m.Called(ctx, itemID)
	return args.Error(0)
}

func (m *MockBackend) FetchOrders(ctx context.Context) ([]order.Order, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]order.Order), args.Error(1)
}

func (m *MockBackend) CancelOrder(ctx context.Context, orderID uint) error {
	args := m.Called(ctx, orderID)
	return args.Error(0)
}

func (m *MockBackend) RegisterUser(ctx context.Context, form registration.Form) error {
	args := m.Called(ctx, form)
	return args.Error(0)
}

func (m *MockBackend) ResendOtp(ctx context.Context, email string) error {
	args := m.Called(ctx, email)
	return args.Error(0)
}

func (m *MockBackend) VerifyOtp(ctx context.Context, req registration.OtpRequest) (*user.AuthResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.AuthResult), args.Error(1)
}

func (m *MockBackend) Login(ctx context.Context, email, password string) (*user.AuthResult, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.AuthResult), args.Error(1)
}

func (m *MockBackend) SearchProducts(ctx context.Context, term string) ([]cart.Product, error) {
	args := m.Called(ctx, term)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]cart.Product), args.Error(1)
}

// PublicError mimics a backend failure that carries a shopper-facing message
type PublicError struct {
	Message string
}

func (e *PublicError) Error() string         { return "backend error: " + e.Message }
func (e *PublicError) PublicMessage() string { return e.Message }
