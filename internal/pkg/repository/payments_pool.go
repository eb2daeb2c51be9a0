package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tastebite/tastebite-service/internal/logger"
	"github.com/tastebite/tastebite-service/internal/models"
)

type PaymentPool struct {
	pool *pgxpool.Pool
}

func NewPaymentPool(pool *pgxpool.Pool) *PaymentPool {
	return &PaymentPool{pool: pool}
}

const finalizePayment = `
	UPDATE orders
	SET payment_status = $2,
		status = CASE WHEN $2 = 'paid' AND status = 'created' THEN $3 ELSE status END,
		updated_at = NOW()
	WHERE id = $1 AND payment_status = 'pending'`

// FinalizePayment applies the reconciliation outcome exactly once. The
// advisory transaction lock serializes concurrent reconcilers on the order
// id, and the payment_status guard makes the update a no-op once any
// terminal payment state has been recorded.
func (pp *PaymentPool) FinalizePayment(ctx context.Context, orderID string, pay models.PaymentStatus, status models.OrderStatus) (bool, error) {
	tx, err := pp.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.Serializable})
	if err != nil {
		return false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var locked bool
	if err := tx.QueryRow(ctx, `SELECT pg_try_advisory_xact_lock(hashtext($1))`, orderID).Scan(&locked); err != nil {
		return false, fmt.Errorf("failed to acquire advisory lock: %w", err)
	}
	if !locked {
		return false, fmt.Errorf("order %s is already being finalized", orderID)
	}

	tag, err := tx.Exec(ctx, finalizePayment, orderID, pay, status)
	if err != nil {
		return false, fmt.Errorf("failed to finalize payment: %w", err)
	}

	if tag.RowsAffected() == 0 {
		logger.Sugar.Infof("payment for order %s already in a terminal state", orderID)
	}

	if err := tx.Commit(ctx); err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
