package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/tastebite/tastebite-service/internal/models"
)

type OrderPostgres struct {
	db *sql.DB
}

func NewOrderPostgres(db *sql.DB) *OrderPostgres {
	return &OrderPostgres{db: db}
}

var ErrOrderNotFound = errors.New("order not found")

const createOrder = `
	INSERT INTO orders (id, customer_id, tenant_id, items, total_amount,
		commission_amount, tenant_amount, delivery_address, status, payment_status)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

const clearCartForTenant = `DELETE FROM cart_lines WHERE customer_id = $1 AND tenant_id = $2`

// CreateOrderAndClearCart freezes the order and empties the originating cart
// in one transaction, so a persisted order can never leave its source lines
// behind to be charged again.
func (op *OrderPostgres) CreateOrderAndClearCart(ctx context.Context, order models.Order) error {
	items, err := json.Marshal(order.Items)
	if err != nil {
		return fmt.Errorf("failed to encode order items: %w", err)
	}

	tx, err := op.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, createOrder,
		order.ID, order.CustomerID, order.TenantID, items, order.TotalAmount,
		order.CommissionAmount, order.TenantAmount, order.DeliveryAddress,
		order.Status, order.PaymentStatus); err != nil {
		return fmt.Errorf("failed to insert order: %w", err)
	}

	if _, err := tx.ExecContext(ctx, clearCartForTenant, order.CustomerID, order.TenantID); err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}

	return tx.Commit()
}

const orderColumns = `id, customer_id, tenant_id, items, total_amount,
	commission_amount, tenant_amount, delivery_address, status, payment_status,
	COALESCE(payment_session_id, ''), created_at, updated_at`

func scanOrder(row rowScanner) (models.Order, error) {
	var order models.Order
	var items []byte
	err := row.Scan(&order.ID, &order.CustomerID, &order.TenantID, &items,
		&order.TotalAmount, &order.CommissionAmount, &order.TenantAmount,
		&order.DeliveryAddress, &order.Status, &order.PaymentStatus,
		&order.PaymentSessionID, &order.CreatedAt, &order.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return order, ErrOrderNotFound
	}
	if err != nil {
		return order, err
	}
	if err := json.Unmarshal(items, &order.Items); err != nil {
		return order, fmt.Errorf("failed to decode order items: %w", err)
	}
	return order, nil
}

func (op *OrderPostgres) GetOrder(ctx context.Context, orderID string) (models.Order, error) {
	return scanOrder(op.db.QueryRowContext(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE id = $1`, orderID))
}

func (op *OrderPostgres) GetOrderBySession(ctx context.Context, sessionID string) (models.Order, error) {
	return scanOrder(op.db.QueryRowContext(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE payment_session_id = $1`, sessionID))
}

func (op *OrderPostgres) listOrders(ctx context.Context, query, key string) ([]models.Order, error) {
	rows, err := op.db.QueryContext(ctx, query, key)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []models.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}
	return orders, rows.Err()
}

const listOrdersByCustomer = `SELECT ` + orderColumns + ` FROM orders
	WHERE customer_id = $1 ORDER BY created_at DESC`

func (op *OrderPostgres) ListOrdersByCustomer(ctx context.Context, customerID string) ([]models.Order, error) {
	return op.listOrders(ctx, listOrdersByCustomer, customerID)
}

const listOrdersByTenant = `SELECT ` + orderColumns + ` FROM orders
	WHERE tenant_id = $1 ORDER BY created_at DESC`

func (op *OrderPostgres) ListOrdersByTenant(ctx context.Context, tenantID string) ([]models.Order, error) {
	return op.listOrders(ctx, listOrdersByTenant, tenantID)
}

const updateOrderStatus = `UPDATE orders SET status = $3, updated_at = NOW()
	WHERE id = $1 AND status = $2`

func (op *OrderPostgres) UpdateOrderStatus(ctx context.Context, orderID string, from, to models.OrderStatus) (bool, error) {
	res, err := op.db.ExecContext(ctx, updateOrderStatus, orderID, from, to)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

const setPaymentSession = `UPDATE orders SET payment_session_id = $2, updated_at = NOW()
	WHERE id = $1`

func (op *OrderPostgres) SetPaymentSession(ctx context.Context, orderID, sessionID string) error {
	res, err := op.db.ExecContext(ctx, setPaymentSession, orderID, sessionID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrOrderNotFound
	}
	return nil
}

const platformOrderStats = `
	SELECT COUNT(*),
		COALESCE(SUM(total_amount) FILTER (WHERE payment_status = 'paid'), 0),
		COALESCE(SUM(commission_amount) FILTER (WHERE payment_status = 'paid'), 0)
	FROM orders`

func (op *OrderPostgres) PlatformOrderStats(ctx context.Context) (int, decimal.Decimal, decimal.Decimal, error) {
	var total int
	var revenue, commission decimal.Decimal
	err := op.db.QueryRowContext(ctx, platformOrderStats).Scan(&total, &revenue, &commission)
	return total, revenue, commission, err
}

const tenantOrderStats = `
	SELECT COUNT(*),
		COUNT(*) FILTER (WHERE payment_status = 'paid'),
		COALESCE(SUM(tenant_amount) FILTER (WHERE payment_status = 'paid'), 0)
	FROM orders WHERE tenant_id = $1`

func (op *OrderPostgres) TenantOrderStats(ctx context.Context, tenantID string) (models.TenantStats, error) {
	var stats models.TenantStats
	err := op.db.QueryRowContext(ctx, tenantOrderStats, tenantID).
		Scan(&stats.TotalOrders, &stats.PaidOrders, &stats.TotalRevenue)
	return stats, err
}
