package repository

import (
	"context"
	"database/sql"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/tastebite/tastebite-service/internal/models"
)

type AuthorizationRepository interface {
	CreateUser(ctx context.Context, user models.User) (string, error)
	GetUserByEmail(ctx context.Context, email string) (models.User, error)
	GetUserByID(ctx context.Context, id string) (models.User, error)
	SetUserTenant(ctx context.Context, userID, tenantID string) error
}

type TenantRepository interface {
	CreateTenant(ctx context.Context, tenant models.Tenant) error
	GetTenant(ctx context.Context, id string) (models.Tenant, error)
	GetTenantBySlug(ctx context.Context, slug string) (models.Tenant, error)
	GetTenantByOwner(ctx context.Context, ownerID string) (models.Tenant, error)
	ListTenants(ctx context.Context, status models.TenantStatus) ([]models.Tenant, error)
	UpdateTenantProfile(ctx context.Context, id string, upd models.TenantUpdate) error
	// UpdateTenantStatus is a compare-and-set: the transition is applied only
	// if the stored status still equals from. Returns false on a lost race.
	UpdateTenantStatus(ctx context.Context, id string, from, to models.TenantStatus) (bool, error)
	TenantCounts(ctx context.Context) (map[models.TenantStatus]int, error)
}

type MenuRepository interface {
	CreateMenuItem(ctx context.Context, item models.MenuItem) error
	GetMenuItem(ctx context.Context, tenantID, itemID string) (models.MenuItem, error)
	ListMenuItems(ctx context.Context, tenantID string) ([]models.MenuItem, error)
	CountMenuItems(ctx context.Context, tenantID string) (int, error)
}

type CartRepository interface {
	InsertLine(ctx context.Context, line models.CartLine) error
	GetLine(ctx context.Context, customerID, lineID string) (models.CartLine, error)
	FindLine(ctx context.Context, customerID, menuItemID, variantName string) (models.CartLine, error)
	UpdateQuantity(ctx context.Context, customerID, lineID string, qty int) error
	DeleteLine(ctx context.Context, customerID, lineID string) error
	ClearCart(ctx context.Context, customerID string) error
	ListLines(ctx context.Context, customerID string) ([]models.CartLine, error)
}

type OrderRepository interface {
	// CreateOrderAndClearCart persists the order and removes the customer's
	// cart lines for the same tenant in one transaction.
	CreateOrderAndClearCart(ctx context.Context, order models.Order) error
	GetOrder(ctx context.Context, orderID string) (models.Order, error)
	GetOrderBySession(ctx context.Context, sessionID string) (models.Order, error)
	ListOrdersByCustomer(ctx context.Context, customerID string) ([]models.Order, error)
	ListOrdersByTenant(ctx context.Context, tenantID string) ([]models.Order, error)
	// UpdateOrderStatus is a compare-and-set keyed by order id.
	UpdateOrderStatus(ctx context.Context, orderID string, from, to models.OrderStatus) (bool, error)
	SetPaymentSession(ctx context.Context, orderID, sessionID string) error
	PlatformOrderStats(ctx context.Context) (totalOrders int, revenue, commission decimal.Decimal, err error)
	TenantOrderStats(ctx context.Context, tenantID string) (models.TenantStats, error)
}

// PaymentRepository serializes payment finalization per order id. Backed by
// pgxpool with an advisory transaction lock, so concurrent reconcilers for
// the same order cannot double-apply a transition.
type PaymentRepository interface {
	FinalizePayment(ctx context.Context, orderID string, pay models.PaymentStatus, status models.OrderStatus) (bool, error)
}

type Repository struct {
	Authorization AuthorizationRepository
	Tenant        TenantRepository
	Menu          MenuRepository
	Cart          CartRepository
	Order         OrderRepository
	Payment       PaymentRepository
}

func NewRepository(db *sql.DB, pool *pgxpool.Pool) *Repository {
	return &Repository{
		Authorization: NewAuthPostgres(db),
		Tenant:        NewTenantPostgres(db),
		Menu:          NewMenuPostgres(db),
		Cart:          NewCartPostgres(db),
		Order:         NewOrderPostgres(db),
		Payment:       NewPaymentPool(pool),
	}
}
