package service

import (
	"context"
	"errors"
	"time"

	"github.com/tastebite/tastebite-service/internal/apperrors"
	"github.com/tastebite/tastebite-service/internal/logger"
	"github.com/tastebite/tastebite-service/internal/models"
	"github.com/tastebite/tastebite-service/internal/pkg/gateway"
	"github.com/tastebite/tastebite-service/internal/pkg/repository"
)

// ReconcileResult is the terminal outcome of one reconciliation run.
// Timeout is deliberately distinct from Failed: the payment may still
// complete, the order stays pending and remains re-checkable.
type ReconcileResult string

const (
	ResultPaid    ReconcileResult = "paid"
	ResultFailed  ReconcileResult = "failed"
	ResultTimeout ReconcileResult = "timeout"
)

// Clock abstracts waiting so the polling loop is testable without real time.
type Clock interface {
	After(d time.Duration) <-chan time.Time
}

type systemClock struct{}

func (systemClock) After(d time.Duration) <-chan time.Time { return time.After(d) }

type PaymentStatusView struct {
	SessionID     string               `json:"session_id"`
	OrderID       string               `json:"order_id"`
	OrderStatus   models.OrderStatus   `json:"status"`
	PaymentStatus models.PaymentStatus `json:"payment_status"`
}

type Payment interface {
	Checkout(ctx context.Context, identity models.Identity, orderID string) (models.PaymentSession, error)
	Status(ctx context.Context, identity models.Identity, sessionID string) (PaymentStatusView, error)
	Reconcile(ctx context.Context, sessionID string) (ReconcileResult, error)
}

type PaymentService struct {
	orders   repository.OrderRepository
	payments repository.PaymentRepository
	tenants  Tenant
	gw       gateway.Client
	notifier Notifier
	clock    Clock

	returnURL   string
	maxAttempts int
	interval    time.Duration

	// baseCtx detaches reconciliation from the requesting connection: the
	// loop runs to its bound whether or not the client keeps polling.
	baseCtx context.Context
}

type PaymentConfig struct {
	ReturnURL   string
	MaxAttempts int
	Interval    time.Duration
}

func NewPaymentService(baseCtx context.Context, orders repository.OrderRepository,
	payments repository.PaymentRepository, tenants Tenant, gw gateway.Client,
	notifier Notifier, cfg PaymentConfig) *PaymentService {
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 5
	}
	if cfg.Interval <= 0 {
		cfg.Interval = 2 * time.Second
	}

	return &PaymentService{
		orders:      orders,
		payments:    payments,
		tenants:     tenants,
		gw:          gw,
		notifier:    notifier,
		clock:       systemClock{},
		returnURL:   cfg.ReturnURL,
		maxAttempts: cfg.MaxAttempts,
		interval:    cfg.Interval,
		baseCtx:     baseCtx,
	}
}

// WithClock replaces the wait source, for tests.
func (ps *PaymentService) WithClock(clock Clock) *PaymentService {
	ps.clock = clock
	return ps
}

// Checkout opens a gateway session for the order and starts reconciliation
// in the background. The caller gets the session reference immediately and
// polls Status for the outcome.
func (ps *PaymentService) Checkout(ctx context.Context, identity models.Identity, orderID string) (models.PaymentSession, error) {
	if err := Authorize(identity, ActionPaymentCheckout); err != nil {
		return models.PaymentSession{}, err
	}

	order, err := ps.ownedOrder(ctx, identity, orderID)
	if err != nil {
		return models.PaymentSession{}, err
	}
	if order.PaymentStatus == models.PaymentPaid {
		return models.PaymentSession{}, apperrors.ErrOrderAlreadyPaid
	}

	if _, err := ps.tenants.RequireStorefront(ctx, order.TenantID); err != nil {
		return models.PaymentSession{}, err
	}

	session, err := ps.gw.CreateCheckoutSession(ctx, order.ID, order.TotalAmount, ps.returnURL)
	if err != nil {
		return models.PaymentSession{}, err
	}

	if err := ps.orders.SetPaymentSession(ctx, order.ID, session.ID); err != nil {
		return models.PaymentSession{}, err
	}

	go func() {
		if _, err := ps.Reconcile(ps.baseCtx, session.ID); err != nil {
			logger.Sugar.Errorf("reconciliation for session %s stopped: %v", session.ID, err)
		}
	}()

	return session, nil
}

func (ps *PaymentService) Status(ctx context.Context, identity models.Identity, sessionID string) (PaymentStatusView, error) {
	if identity.ID == "" {
		return PaymentStatusView{}, apperrors.ErrUnauthenticated
	}

	order, err := ps.orders.GetOrderBySession(ctx, sessionID)
	if errors.Is(err, repository.ErrOrderNotFound) {
		return PaymentStatusView{}, apperrors.ErrNotFound
	}
	if err != nil {
		return PaymentStatusView{}, err
	}
	if order.CustomerID != identity.ID && !identity.IsAdmin() {
		return PaymentStatusView{}, apperrors.ErrNotFound
	}

	return PaymentStatusView{
		SessionID:     sessionID,
		OrderID:       order.ID,
		OrderStatus:   order.Status,
		PaymentStatus: order.PaymentStatus,
	}, nil
}

// Reconcile mirrors the gateway session outcome into the order with a
// bounded poll: at most maxAttempts checks, one fixed interval apart.
// Invoking it again on a terminal session is a no-op returning the same
// result, and the underlying compare-and-set guarantees a paid order is
// never flipped back.
func (ps *PaymentService) Reconcile(ctx context.Context, sessionID string) (ReconcileResult, error) {
	for attempt := 1; attempt <= ps.maxAttempts; attempt++ {
		order, err := ps.orders.GetOrderBySession(ctx, sessionID)
		if errors.Is(err, repository.ErrOrderNotFound) {
			return "", apperrors.ErrNotFound
		}
		if err != nil {
			return "", err
		}

		if order.PaymentStatus.Terminal() {
			return terminalResult(order.PaymentStatus), nil
		}

		session, err := ps.gw.GetSessionStatus(ctx, sessionID)
		switch {
		case errors.Is(err, apperrors.ErrGatewayUnavailable):
			logger.Sugar.Warnf("gateway unreachable for session %s, attempt %d/%d", sessionID, attempt, ps.maxAttempts)

		case err != nil:
			return "", err

		case session.PaymentStatus == models.SessionPaid:
			if _, err := ps.payments.FinalizePayment(ctx, order.ID, models.PaymentPaid, models.OrderConfirmed); err != nil {
				return "", err
			}
			ps.notifier.Emit(ctx, EventOrderStatusChanged, map[string]string{
				"order_id": order.ID,
				"status":   string(models.OrderConfirmed),
			})
			return ResultPaid, nil

		case session.Status == models.SessionExpired:
			if _, err := ps.payments.FinalizePayment(ctx, order.ID, models.PaymentExpired, order.Status); err != nil {
				return "", err
			}
			return ResultFailed, nil
		}

		if attempt == ps.maxAttempts {
			break
		}

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-ps.clock.After(ps.interval):
		}
	}

	logger.Sugar.Infof("reconciliation for session %s timed out after %d attempts, order left pending", sessionID, ps.maxAttempts)
	return ResultTimeout, nil
}

func terminalResult(status models.PaymentStatus) ReconcileResult {
	switch status {
	case models.PaymentPaid:
		return ResultPaid
	case models.PaymentFailed, models.PaymentExpired:
		return ResultFailed
	default:
		return ResultTimeout
	}
}

func (ps *PaymentService) ownedOrder(ctx context.Context, identity models.Identity, orderID string) (models.Order, error) {
	order, err := ps.orders.GetOrder(ctx, orderID)
	if errors.Is(err, repository.ErrOrderNotFound) {
		return models.Order{}, apperrors.ErrNotFound
	}
	if err != nil {
		return models.Order{}, err
	}
	if order.CustomerID != identity.ID && !identity.IsAdmin() {
		return models.Order{}, apperrors.ErrNotFound
	}
	return order, nil
}
