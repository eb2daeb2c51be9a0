package service

import (
	"context"
	"encoding/json"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tastebite/tastebite-service/internal/logger"
)

// Notifier emits fire-and-forget platform events. Delivery is never awaited
// and failures are only logged; core state must not depend on it.
type Notifier interface {
	Emit(ctx context.Context, event string, payload any)
}

const (
	EventCartUpdated        = "cart_updated"
	EventOrderPlaced        = "order_placed"
	EventOrderStatusChanged = "order_status_changed"
	EventTenantApproved     = "tenant_approved"
	EventTenantSuspended    = "tenant_suspended"
)

type PgNotifier struct {
	pool    *pgxpool.Pool
	channel string
}

func NewPgNotifier(pool *pgxpool.Pool, channel string) *PgNotifier {
	return &PgNotifier{pool: pool, channel: channel}
}

func (n *PgNotifier) Emit(ctx context.Context, event string, payload any) {
	msg, err := json.Marshal(map[string]any{"event": event, "payload": payload})
	if err != nil {
		logger.Sugar.Errorf("failed to encode %s event: %v", event, err)
		return
	}

	if _, err := n.pool.Exec(ctx, `SELECT pg_notify($1, $2)`, n.channel, string(msg)); err != nil {
		logger.Sugar.Errorf("failed to emit %s event: %v", event, err)
	}
}

// NopNotifier is used in tests and when no pool is configured.
type NopNotifier struct{}

func (NopNotifier) Emit(ctx context.Context, event string, payload any) {}
