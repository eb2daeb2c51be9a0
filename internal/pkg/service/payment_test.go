package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/tastebite/tastebite-service/internal/apperrors"
	"github.com/tastebite/tastebite-service/internal/mocks"
	"github.com/tastebite/tastebite-service/internal/models"
	"github.com/tastebite/tastebite-service/internal/pkg/repository"
	"github.com/tastebite/tastebite-service/internal/pkg/service"
)

// instantClock fires immediately so the polling loop runs without real waits.
type instantClock struct{}

func (instantClock) After(time.Duration) <-chan time.Time {
	ch := make(chan time.Time, 1)
	ch <- time.Time{}
	return ch
}

type paymentMocks struct {
	orders   *mocks.MockOrderRepository
	payments *mocks.MockPaymentRepository
	tenants  *mocks.MockTenant
	gw       *mocks.MockGatewayClient
}

func newPaymentService(ctrl *gomock.Controller) (*service.PaymentService, paymentMocks) {
	pm := paymentMocks{
		orders:   mocks.NewMockOrderRepository(ctrl),
		payments: mocks.NewMockPaymentRepository(ctrl),
		tenants:  mocks.NewMockTenant(ctrl),
		gw:       mocks.NewMockGatewayClient(ctrl),
	}

	svc := service.NewPaymentService(context.Background(), pm.orders, pm.payments, pm.tenants,
		pm.gw, service.NopNotifier{}, service.PaymentConfig{
			ReturnURL:   "http://localhost:3000/order/success",
			MaxAttempts: 5,
			Interval:    time.Millisecond,
		}).WithClock(instantClock{})

	return svc, pm
}

func TestReconcilePaidOnSecondAttempt(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, pm := newPaymentService(ctrl)

	pending := models.Order{
		ID:            "ord-1",
		CustomerID:    "cust-1",
		Status:        models.OrderCreated,
		PaymentStatus: models.PaymentPending,
	}

	pm.orders.EXPECT().GetOrderBySession(gomock.Any(), "sess-1").Return(pending, nil).Times(2)
	gomock.InOrder(
		pm.gw.EXPECT().GetSessionStatus(gomock.Any(), "sess-1").
			Return(models.PaymentSession{ID: "sess-1", Status: models.SessionOpen, PaymentStatus: models.SessionUnpaid}, nil),
		pm.gw.EXPECT().GetSessionStatus(gomock.Any(), "sess-1").
			Return(models.PaymentSession{ID: "sess-1", Status: models.SessionComplete, PaymentStatus: models.SessionPaid}, nil),
	)
	pm.payments.EXPECT().
		FinalizePayment(gomock.Any(), "ord-1", models.PaymentPaid, models.OrderConfirmed).
		Return(true, nil)

	result, err := svc.Reconcile(context.Background(), "sess-1")

	assert.NoError(t, err)
	assert.Equal(t, service.ResultPaid, result)
}

func TestReconcileExpiredSession(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, pm := newPaymentService(ctrl)

	pending := models.Order{
		ID:            "ord-1",
		CustomerID:    "cust-1",
		Status:        models.OrderCreated,
		PaymentStatus: models.PaymentPending,
	}

	pm.orders.EXPECT().GetOrderBySession(gomock.Any(), "sess-1").Return(pending, nil)
	pm.gw.EXPECT().GetSessionStatus(gomock.Any(), "sess-1").
		Return(models.PaymentSession{ID: "sess-1", Status: models.SessionExpired, PaymentStatus: models.SessionUnpaid}, nil)
	pm.payments.EXPECT().
		FinalizePayment(gomock.Any(), "ord-1", models.PaymentExpired, models.OrderCreated).
		Return(true, nil)

	result, err := svc.Reconcile(context.Background(), "sess-1")

	assert.NoError(t, err)
	assert.Equal(t, service.ResultFailed, result)
}

// An unreachable gateway exhausts the attempt budget without marking the
// payment failed: the order stays pending and a later run can still settle it.
func TestReconcileTimeoutLeavesOrderPending(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, pm := newPaymentService(ctrl)

	pending := models.Order{
		ID:            "ord-1",
		CustomerID:    "cust-1",
		Status:        models.OrderCreated,
		PaymentStatus: models.PaymentPending,
	}

	pm.orders.EXPECT().GetOrderBySession(gomock.Any(), "sess-1").Return(pending, nil).Times(5)
	pm.gw.EXPECT().GetSessionStatus(gomock.Any(), "sess-1").
		Return(models.PaymentSession{}, apperrors.ErrGatewayUnavailable).Times(5)

	result, err := svc.Reconcile(context.Background(), "sess-1")

	assert.NoError(t, err)
	assert.Equal(t, service.ResultTimeout, result)
}

// Re-running reconciliation on a settled session is a no-op that reports the
// recorded outcome without touching the gateway.
func TestReconcileTerminalShortCircuit(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, pm := newPaymentService(ctrl)

	paid := models.Order{
		ID:            "ord-1",
		CustomerID:    "cust-1",
		Status:        models.OrderConfirmed,
		PaymentStatus: models.PaymentPaid,
	}

	pm.orders.EXPECT().GetOrderBySession(gomock.Any(), "sess-1").Return(paid, nil)

	result, err := svc.Reconcile(context.Background(), "sess-1")

	assert.NoError(t, err)
	assert.Equal(t, service.ResultPaid, result)
}

func TestReconcileUnknownSession(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, pm := newPaymentService(ctrl)

	pm.orders.EXPECT().GetOrderBySession(gomock.Any(), "sess-x").
		Return(models.Order{}, repository.ErrOrderNotFound)

	_, err := svc.Reconcile(context.Background(), "sess-x")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestCheckoutRejections(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, pm := newPaymentService(ctrl)

	customer := models.Identity{ID: "cust-1", Role: models.RoleCustomer}

	tests := []struct {
		name      string
		identity  models.Identity
		orderID   string
		mockSetup func()
		wantErr   error
	}{
		{
			name:      "owner role cannot checkout",
			identity:  models.Identity{ID: "own-1", Role: models.RoleTenantOwner},
			orderID:   "ord-1",
			mockSetup: func() {},
			wantErr:   apperrors.ErrForbidden,
		},
		{
			name:     "someone else's order reads as missing",
			identity: customer,
			orderID:  "ord-2",
			mockSetup: func() {
				pm.orders.EXPECT().GetOrder(gomock.Any(), "ord-2").
					Return(models.Order{ID: "ord-2", CustomerID: "cust-other", PaymentStatus: models.PaymentPending}, nil)
			},
			wantErr: apperrors.ErrNotFound,
		},
		{
			name:     "already paid order",
			identity: customer,
			orderID:  "ord-3",
			mockSetup: func() {
				pm.orders.EXPECT().GetOrder(gomock.Any(), "ord-3").
					Return(models.Order{ID: "ord-3", CustomerID: "cust-1", PaymentStatus: models.PaymentPaid}, nil)
			},
			wantErr: apperrors.ErrOrderAlreadyPaid,
		},
		{
			name:     "suspended storefront",
			identity: customer,
			orderID:  "ord-4",
			mockSetup: func() {
				pm.orders.EXPECT().GetOrder(gomock.Any(), "ord-4").
					Return(models.Order{ID: "ord-4", CustomerID: "cust-1", TenantID: "t1", PaymentStatus: models.PaymentPending}, nil)
				pm.tenants.EXPECT().RequireStorefront(gomock.Any(), "t1").
					Return(models.Tenant{}, apperrors.ErrTenantUnavailable)
			},
			wantErr: apperrors.ErrTenantUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			_, err := svc.Checkout(context.Background(), tt.identity, tt.orderID)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestCheckoutOpensSession(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, pm := newPaymentService(ctrl)

	customer := models.Identity{ID: "cust-1", Role: models.RoleCustomer}
	order := models.Order{
		ID:            "ord-1",
		CustomerID:    "cust-1",
		TenantID:      "t1",
		TotalAmount:   decimal.RequireFromString("360.00"),
		Status:        models.OrderCreated,
		PaymentStatus: models.PaymentPending,
	}
	session := models.PaymentSession{
		ID:          "sess-1",
		OrderID:     "ord-1",
		Status:      models.SessionOpen,
		RedirectURL: "https://gateway.example/pay/sess-1",
	}

	pm.orders.EXPECT().GetOrder(gomock.Any(), "ord-1").Return(order, nil)
	pm.tenants.EXPECT().RequireStorefront(gomock.Any(), "t1").
		Return(models.Tenant{ID: "t1", Status: models.TenantActive}, nil)
	pm.gw.EXPECT().CreateCheckoutSession(gomock.Any(), "ord-1", gomock.Any(), "http://localhost:3000/order/success").
		Return(session, nil)
	pm.orders.EXPECT().SetPaymentSession(gomock.Any(), "ord-1", "sess-1").Return(nil)

	// The background reconciler finds the order already settled and exits on
	// its first look.
	settled := order
	settled.PaymentStatus = models.PaymentPaid
	pm.orders.EXPECT().GetOrderBySession(gomock.Any(), "sess-1").Return(settled, nil).AnyTimes()

	got, err := svc.Checkout(context.Background(), customer, "ord-1")

	assert.NoError(t, err)
	assert.Equal(t, "sess-1", got.ID)
	assert.Equal(t, session.RedirectURL, got.RedirectURL)

	time.Sleep(20 * time.Millisecond)
}
