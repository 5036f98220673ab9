package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"onsen-store/internal/middleware"
	"onsen-store/internal/model"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockCartService is a mock implementation of CartService.
type MockCartService struct {
	mock.Mock
}

func (m *MockCartService) Get(ctx context.Context, sessionID string) (*model.CartResponse, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CartResponse), args.Error(1)
}

func (m *MockCartService) Add(ctx context.Context, sessionID string, productID int64, quantity int) (*model.CartResponse, error) {
	args := m.Called(ctx, sessionID, productID, quantity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CartResponse), args.Error(1)
}

func (m *MockCartService) Update(ctx context.Context, sessionID string, productID int64, quantity int) (*model.CartResponse, error) {
	args := m.Called(ctx, sessionID, productID, quantity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CartResponse), args.Error(1)
}

func (m *MockCartService) Remove(ctx context.Context, sessionID string, productID int64) (*model.CartResponse, error) {
	args := m.Called(ctx, sessionID, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CartResponse), args.Error(1)
}

func (m *MockCartService) Clear(ctx context.Context, sessionID string) (*model.CartResponse, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CartResponse), args.Error(1)
}

const testSession = "11111111-2222-3333-4444-555555555555"

func cartTestRouter(svc *MockCartService) http.Handler {
	h := NewCartHandler(svc, zerolog.Nop())

	r := chi.NewRouter()
	r.Use(middleware.Session)
	r.Get("/api/cart", h.Get)
	r.Post("/api/cart", h.Add)
	r.Put("/api/cart", h.Update)
	r.Delete("/api/cart", h.Clear)
	r.Delete("/api/cart/{productId}", h.Remove)
	return r
}

func emptyCartResponse() *model.CartResponse {
	return model.NewCartResponse(model.NewCart(), model.CartSummary{})
}

func TestCartHandler_Get(t *testing.T) {
	svc := new(MockCartService)
	svc.On("Get", mock.Anything, testSession).Return(emptyCartResponse(), nil)

	req := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
	req.Header.Set(middleware.SessionHeaderName, testSession)
	rec := httptest.NewRecorder()

	cartTestRouter(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
	svc.AssertExpectations(t)
}

func TestCartHandler_Get_MintsSessionWhenAbsent(t *testing.T) {
	svc := new(MockCartService)
	svc.On("Get", mock.Anything, mock.AnythingOfType("string")).Return(emptyCartResponse(), nil)

	req := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
	rec := httptest.NewRecorder()

	cartTestRouter(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	cookies := rec.Result().Cookies()
	require.NotEmpty(t, cookies)
	assert.Equal(t, middleware.SessionCookieName, cookies[0].Name)
	assert.NotEmpty(t, cookies[0].Value)
}

func TestCartHandler_Add(t *testing.T) {
	svc := new(MockCartService)
	svc.On("Add", mock.Anything, testSession, int64(1), 2).Return(emptyCartResponse(), nil)

	req := httptest.NewRequest(http.MethodPost, "/api/cart", strings.NewReader(`{"productId": 1, "quantity": 2}`))
	req.Header.Set(middleware.SessionHeaderName, testSession)
	rec := httptest.NewRecorder()

	cartTestRouter(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	svc.AssertExpectations(t)
}

func TestCartHandler_Add_InvalidBody(t *testing.T) {
	svc := new(MockCartService)

	req := httptest.NewRequest(http.MethodPost, "/api/cart", strings.NewReader(`{not json`))
	req.Header.Set(middleware.SessionHeaderName, testSession)
	rec := httptest.NewRecorder()

	cartTestRouter(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), model.ErrCodeInvalidJSON)
	svc.AssertNotCalled(t, "Add")
}

func TestCartHandler_Add_ProductNotFound(t *testing.T) {
	svc := new(MockCartService)
	svc.On("Add", mock.Anything, testSession, int64(99), 1).Return(nil, model.ErrProductNotFound)

	req := httptest.NewRequest(http.MethodPost, "/api/cart", strings.NewReader(`{"productId": 99, "quantity": 1}`))
	req.Header.Set(middleware.SessionHeaderName, testSession)
	rec := httptest.NewRecorder()

	cartTestRouter(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), model.ErrCodeProductNotFound)
}

func TestCartHandler_Add_InvalidQuantity(t *testing.T) {
	svc := new(MockCartService)
	svc.On("Add", mock.Anything, testSession, int64(1), 0).Return(nil, model.ErrInvalidQuantity)

	req := httptest.NewRequest(http.MethodPost, "/api/cart", strings.NewReader(`{"productId": 1, "quantity": 0}`))
	req.Header.Set(middleware.SessionHeaderName, testSession)
	rec := httptest.NewRecorder()

	cartTestRouter(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), model.ErrCodeInvalidQuantity)
}

func TestCartHandler_Update(t *testing.T) {
	svc := new(MockCartService)
	svc.On("Update", mock.Anything, testSession, int64(1), 5).Return(emptyCartResponse(), nil)

	req := httptest.NewRequest(http.MethodPut, "/api/cart", strings.NewReader(`{"productId": 1, "quantity": 5}`))
	req.Header.Set(middleware.SessionHeaderName, testSession)
	rec := httptest.NewRecorder()

	cartTestRouter(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	svc.AssertExpectations(t)
}

func TestCartHandler_Remove(t *testing.T) {
	svc := new(MockCartService)
	svc.On("Remove", mock.Anything, testSession, int64(3)).Return(emptyCartResponse(), nil)

	req := httptest.NewRequest(http.MethodDelete, "/api/cart/3", nil)
	req.Header.Set(middleware.SessionHeaderName, testSession)
	rec := httptest.NewRecorder()

	cartTestRouter(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	svc.AssertExpectations(t)
}

func TestCartHandler_Remove_InvalidProductID(t *testing.T) {
	svc := new(MockCartService)

	req := httptest.NewRequest(http.MethodDelete, "/api/cart/abc", nil)
	req.Header.Set(middleware.SessionHeaderName, testSession)
	rec := httptest.NewRecorder()

	cartTestRouter(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	svc.AssertNotCalled(t, "Remove")
}

func TestCartHandler_Clear(t *testing.T) {
	svc := new(MockCartService)
	svc.On("Clear", mock.Anything, testSession).Return(emptyCartResponse(), nil)

	req := httptest.NewRequest(http.MethodDelete, "/api/cart", nil)
	req.Header.Set(middleware.SessionHeaderName, testSession)
	rec := httptest.NewRecorder()

	cartTestRouter(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	svc.AssertExpectations(t)
}

func TestCartHandler_ServiceError(t *testing.T) {
	svc := new(MockCartService)
	svc.On("Get", mock.Anything, testSession).Return(nil, errors.New("redis down"))

	req := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
	req.Header.Set(middleware.SessionHeaderName, testSession)
	rec := httptest.NewRecorder()

	cartTestRouter(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), model.ErrCodeInternalError)
}
