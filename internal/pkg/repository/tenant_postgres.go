package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/tastebite/tastebite-service/internal/models"
)

type TenantPostgres struct {
	db *sql.DB
}

func NewTenantPostgres(db *sql.DB) *TenantPostgres {
	return &TenantPostgres{db: db}
}

var (
	ErrSlugExists     = errors.New("tenant slug already exists")
	ErrTenantNotFound = errors.New("tenant not found")
)

const createTenant = `
	INSERT INTO tenants (id, owner_id, name, slug, description, cuisine_types,
		address, phone, logo, cover_image, commission_rate, status)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

func (tp *TenantPostgres) CreateTenant(ctx context.Context, t models.Tenant) error {
	cuisines, err := json.Marshal(t.CuisineTypes)
	if err != nil {
		return fmt.Errorf("failed to encode cuisine types: %w", err)
	}

	_, err = tp.db.ExecContext(ctx, createTenant,
		t.ID, t.OwnerID, t.Name, t.Slug, t.Description, cuisines,
		t.Address, t.Phone, t.Logo, t.CoverImage, t.CommissionRate, t.Status)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgerrcode.IsIntegrityConstraintViolation(pgErr.Code) {
		return ErrSlugExists
	}
	return err
}

const tenantColumns = `id, owner_id, name, slug, description, cuisine_types,
	address, phone, logo, cover_image, commission_rate, status, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTenant(row rowScanner) (models.Tenant, error) {
	var t models.Tenant
	var cuisines []byte
	err := row.Scan(&t.ID, &t.OwnerID, &t.Name, &t.Slug, &t.Description,
		&cuisines, &t.Address, &t.Phone, &t.Logo, &t.CoverImage,
		&t.CommissionRate, &t.Status, &t.CreatedAt, &t.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return t, ErrTenantNotFound
	}
	if err != nil {
		return t, err
	}
	if err := json.Unmarshal(cuisines, &t.CuisineTypes); err != nil {
		return t, fmt.Errorf("failed to decode cuisine types: %w", err)
	}
	return t, nil
}

func (tp *TenantPostgres) GetTenant(ctx context.Context, id string) (models.Tenant, error) {
	return scanTenant(tp.db.QueryRowContext(ctx,
		`SELECT `+tenantColumns+` FROM tenants WHERE id = $1`, id))
}

func (tp *TenantPostgres) GetTenantBySlug(ctx context.Context, slug string) (models.Tenant, error) {
	return scanTenant(tp.db.QueryRowContext(ctx,
		`SELECT `+tenantColumns+` FROM tenants WHERE slug = $1`, slug))
}

func (tp *TenantPostgres) GetTenantByOwner(ctx context.Context, ownerID string) (models.Tenant, error) {
	return scanTenant(tp.db.QueryRowContext(ctx,
		`SELECT `+tenantColumns+` FROM tenants WHERE owner_id = $1`, ownerID))
}

func (tp *TenantPostgres) ListTenants(ctx context.Context, status models.TenantStatus) ([]models.Tenant, error) {
	query := `SELECT ` + tenantColumns + ` FROM tenants ORDER BY created_at DESC`
	args := []any{}
	if status != "" {
		query = `SELECT ` + tenantColumns + ` FROM tenants WHERE status = $1 ORDER BY created_at DESC`
		args = append(args, status)
	}

	rows, err := tp.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tenants []models.Tenant
	for rows.Next() {
		t, err := scanTenant(rows)
		if err != nil {
			return nil, err
		}
		tenants = append(tenants, t)
	}
	return tenants, rows.Err()
}

const updateTenantProfile = `
	UPDATE tenants
	SET name = $2, description = $3, cuisine_types = $4, address = $5,
		phone = $6, logo = $7, cover_image = $8, updated_at = NOW()
	WHERE id = $1`

func (tp *TenantPostgres) UpdateTenantProfile(ctx context.Context, id string, upd models.TenantUpdate) error {
	cuisines, err := json.Marshal(upd.CuisineTypes)
	if err != nil {
		return fmt.Errorf("failed to encode cuisine types: %w", err)
	}

	res, err := tp.db.ExecContext(ctx, updateTenantProfile, id,
		upd.Name, upd.Description, cuisines,
		upd.Address, upd.Phone, upd.Logo, upd.CoverImage)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrTenantNotFound
	}
	return nil
}

const updateTenantStatus = `
	UPDATE tenants SET status = $3, updated_at = NOW()
	WHERE id = $1 AND status = $2`

func (tp *TenantPostgres) UpdateTenantStatus(ctx context.Context, id string, from, to models.TenantStatus) (bool, error) {
	res, err := tp.db.ExecContext(ctx, updateTenantStatus, id, from, to)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

const tenantCounts = `SELECT status, COUNT(*) FROM tenants GROUP BY status`

func (tp *TenantPostgres) TenantCounts(ctx context.Context) (map[models.TenantStatus]int, error) {
	rows, err := tp.db.QueryContext(ctx, tenantCounts)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[models.TenantStatus]int)
	for rows.Next() {
		var status models.TenantStatus
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, err
		}
		counts[status] = n
	}
	return counts, rows.Err()
}
