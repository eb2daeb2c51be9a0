package handlers

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/tastebite/tastebite-service/internal/apperrors"
	"github.com/tastebite/tastebite-service/internal/mocks"
	"github.com/tastebite/tastebite-service/internal/models"
)

func TestCreateOrderHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockOrder := mocks.NewMockOrder(ctrl)
	handler := NewOrderHandler(mockOrder)

	tests := []struct {
		name           string
		body           string
		authed         bool
		mockSetup      func()
		expectedStatus int
	}{
		{
			name:   "order placed",
			body:   `{"tenant_id":"t1","delivery_address":"12 MG Road"}`,
			authed: true,
			mockSetup: func() {
				mockOrder.EXPECT().Create(gomock.Any(), testCustomer, gomock.Any()).
					Return(models.Order{ID: "ord-1", Status: models.OrderCreated}, nil)
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:   "empty cart",
			body:   `{"tenant_id":"t1","delivery_address":"12 MG Road"}`,
			authed: true,
			mockSetup: func() {
				mockOrder.EXPECT().Create(gomock.Any(), testCustomer, gomock.Any()).
					Return(models.Order{}, apperrors.ErrEmptyCart)
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:   "suspended storefront",
			body:   `{"tenant_id":"t-down","delivery_address":"12 MG Road"}`,
			authed: true,
			mockSetup: func() {
				mockOrder.EXPECT().Create(gomock.Any(), testCustomer, gomock.Any()).
					Return(models.Order{}, apperrors.ErrTenantUnavailable)
			},
			expectedStatus: http.StatusForbidden,
		},
		{
			name:   "internal error",
			body:   `{"tenant_id":"t1","delivery_address":"12 MG Road"}`,
			authed: true,
			mockSetup: func() {
				mockOrder.EXPECT().Create(gomock.Any(), testCustomer, gomock.Any()).
					Return(models.Order{}, errors.New("db failure"))
			},
			expectedStatus: http.StatusInternalServerError,
		},
		{
			name:           "invalid json",
			body:           "{broken",
			authed:         true,
			mockSetup:      func() {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "missing identity",
			body:           `{"tenant_id":"t1","delivery_address":"12 MG Road"}`,
			authed:         false,
			mockSetup:      func() {},
			expectedStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			req := httptest.NewRequest(http.MethodPost, "/api/orders/create", bytes.NewBufferString(tt.body))
			if tt.authed {
				req = addIdentity(req, testCustomer)
			}

			rec := httptest.NewRecorder()
			handler.CreateOrderHandler(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
		})
	}
}

func TestGetOrderHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockOrder := mocks.NewMockOrder(ctrl)
	handler := NewOrderHandler(mockOrder)

	t.Run("own order", func(t *testing.T) {
		mockOrder.EXPECT().Get(gomock.Any(), testCustomer, "ord-1").
			Return(models.Order{ID: "ord-1"}, nil)

		req := addIdentity(httptest.NewRequest(http.MethodGet, "/api/orders/ord-1", nil), testCustomer)
		req = withURLParam(req, "id", "ord-1")

		rec := httptest.NewRecorder()
		handler.GetOrderHandler(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("foreign order reads as missing", func(t *testing.T) {
		mockOrder.EXPECT().Get(gomock.Any(), testCustomer, "ord-2").
			Return(models.Order{}, apperrors.ErrNotFound)

		req := addIdentity(httptest.NewRequest(http.MethodGet, "/api/orders/ord-2", nil), testCustomer)
		req = withURLParam(req, "id", "ord-2")

		rec := httptest.NewRecorder()
		handler.GetOrderHandler(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestUpdateOrderStatusHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockOrder := mocks.NewMockOrder(ctrl)
	handler := NewOrderHandler(mockOrder)

	owner := models.Identity{ID: "own-1", Role: models.RoleTenantOwner, TenantID: "t1"}

	tests := []struct {
		name           string
		body           string
		mockSetup      func()
		expectedStatus int
	}{
		{
			name: "status advanced",
			body: `{"status":"preparing"}`,
			mockSetup: func() {
				mockOrder.EXPECT().UpdateStatus(gomock.Any(), owner, "ord-1", models.OrderPreparing).
					Return(nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "backward move rejected",
			body: `{"status":"created"}`,
			mockSetup: func() {
				mockOrder.EXPECT().UpdateStatus(gomock.Any(), owner, "ord-1", models.OrderCreated).
					Return(apperrors.ErrInvalidTransition)
			},
			expectedStatus: http.StatusConflict,
		},
		{
			name: "foreign tenant forbidden",
			body: `{"status":"preparing"}`,
			mockSetup: func() {
				mockOrder.EXPECT().UpdateStatus(gomock.Any(), owner, "ord-1", models.OrderPreparing).
					Return(apperrors.ErrForbidden)
			},
			expectedStatus: http.StatusForbidden,
		},
		{
			name:           "invalid json",
			body:           "{broken",
			mockSetup:      func() {},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			req := httptest.NewRequest(http.MethodPut, "/api/tenants/t1/orders/ord-1/status", bytes.NewBufferString(tt.body))
			req = addIdentity(req, owner)
			req = withURLParam(req, "orderID", "ord-1")

			rec := httptest.NewRecorder()
			handler.UpdateOrderStatusHandler(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
		})
	}
}
