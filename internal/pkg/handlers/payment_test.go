package handlers

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/tastebite/tastebite-service/internal/apperrors"
	"github.com/tastebite/tastebite-service/internal/mocks"
	"github.com/tastebite/tastebite-service/internal/models"
	"github.com/tastebite/tastebite-service/internal/pkg/service"
)

func TestCheckoutHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockPayment := mocks.NewMockPayment(ctrl)
	handler := NewPaymentHandler(mockPayment)

	tests := []struct {
		name           string
		body           string
		authed         bool
		mockSetup      func()
		expectedStatus int
	}{
		{
			name:   "session opened",
			body:   `{"order_id":"ord-1"}`,
			authed: true,
			mockSetup: func() {
				mockPayment.EXPECT().Checkout(gomock.Any(), testCustomer, "ord-1").
					Return(models.PaymentSession{
						ID:          "sess-1",
						OrderID:     "ord-1",
						Status:      models.SessionOpen,
						RedirectURL: "https://gateway.example/pay/sess-1",
					}, nil)
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:   "order already paid",
			body:   `{"order_id":"ord-2"}`,
			authed: true,
			mockSetup: func() {
				mockPayment.EXPECT().Checkout(gomock.Any(), testCustomer, "ord-2").
					Return(models.PaymentSession{}, apperrors.ErrOrderAlreadyPaid)
			},
			expectedStatus: http.StatusConflict,
		},
		{
			name:   "gateway down",
			body:   `{"order_id":"ord-3"}`,
			authed: true,
			mockSetup: func() {
				mockPayment.EXPECT().Checkout(gomock.Any(), testCustomer, "ord-3").
					Return(models.PaymentSession{}, apperrors.ErrGatewayUnavailable)
			},
			expectedStatus: http.StatusBadGateway,
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
			body:           `{"order_id":"ord-1"}`,
			authed:         false,
			mockSetup:      func() {},
			expectedStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			req := httptest.NewRequest(http.MethodPost, "/api/payments/checkout", bytes.NewBufferString(tt.body))
			if tt.authed {
				req = addIdentity(req, testCustomer)
			}

			rec := httptest.NewRecorder()
			handler.CheckoutHandler(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
		})
	}
}

func TestPaymentStatusHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockPayment := mocks.NewMockPayment(ctrl)
	handler := NewPaymentHandler(mockPayment)

	tests := []struct {
		name           string
		sessionID      string
		mockSetup      func()
		expectedStatus int
	}{
		{
			name:      "settled session",
			sessionID: "sess-1",
			mockSetup: func() {
				mockPayment.EXPECT().Status(gomock.Any(), testCustomer, "sess-1").
					Return(service.PaymentStatusView{
						SessionID:     "sess-1",
						OrderID:       "ord-1",
						OrderStatus:   models.OrderConfirmed,
						PaymentStatus: models.PaymentPaid,
					}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:      "unknown session",
			sessionID: "sess-x",
			mockSetup: func() {
				mockPayment.EXPECT().Status(gomock.Any(), testCustomer, "sess-x").
					Return(service.PaymentStatusView{}, apperrors.ErrNotFound)
			},
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			req := httptest.NewRequest(http.MethodGet, "/api/payments/status/"+tt.sessionID, nil)
			req = addIdentity(req, testCustomer)
			req = withURLParam(req, "sessionID", tt.sessionID)

			rec := httptest.NewRecorder()
			handler.StatusHandler(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
		})
	}
}
