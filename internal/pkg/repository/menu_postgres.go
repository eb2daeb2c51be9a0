package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/tastebite/tastebite-service/internal/models"
)

type MenuPostgres struct {
	db *sql.DB
}

func NewMenuPostgres(db *sql.DB) *MenuPostgres {
	return &MenuPostgres{db: db}
}

var ErrMenuItemNotFound = errors.New("menu item not found")

const createMenuItem = `
	INSERT INTO menu_items (id, tenant_id, name, description, category, image,
		is_veg, spice_level, discount_percent, variants, is_available)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

func (mp *MenuPostgres) CreateMenuItem(ctx context.Context, item models.MenuItem) error {
	variants, err := json.Marshal(item.Variants)
	if err != nil {
		return fmt.Errorf("failed to encode variants: %w", err)
	}

	_, err = mp.db.ExecContext(ctx, createMenuItem,
		item.ID, item.TenantID, item.Name, item.Description, item.Category,
		item.Image, item.IsVeg, item.SpiceLevel, item.DiscountPercent,
		variants, item.IsAvailable)
	return err
}

const menuItemColumns = `id, tenant_id, name, description, category, image,
	is_veg, spice_level, discount_percent, variants, is_available, created_at`

func scanMenuItem(row rowScanner) (models.MenuItem, error) {
	var item models.MenuItem
	var variants []byte
	err := row.Scan(&item.ID, &item.TenantID, &item.Name, &item.Description,
		&item.Category, &item.Image, &item.IsVeg, &item.SpiceLevel,
		&item.DiscountPercent, &variants, &item.IsAvailable, &item.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return item, ErrMenuItemNotFound
	}
	if err != nil {
		return item, err
	}
	if err := json.Unmarshal(variants, &item.Variants); err != nil {
		return item, fmt.Errorf("failed to decode variants: %w", err)
	}
	return item, nil
}

const getMenuItem = `SELECT ` + menuItemColumns + ` FROM menu_items WHERE id = $2 AND tenant_id = $1`

func (mp *MenuPostgres) GetMenuItem(ctx context.Context, tenantID, itemID string) (models.MenuItem, error) {
	return scanMenuItem(mp.db.QueryRowContext(ctx, getMenuItem, tenantID, itemID))
}

const listMenuItems = `SELECT ` + menuItemColumns + ` FROM menu_items
	WHERE tenant_id = $1 AND is_available = TRUE ORDER BY category, name`

func (mp *MenuPostgres) ListMenuItems(ctx context.Context, tenantID string) ([]models.MenuItem, error) {
	rows, err := mp.db.QueryContext(ctx, listMenuItems, tenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []models.MenuItem
	for rows.Next() {
		item, err := scanMenuItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

const countMenuItems = `SELECT COUNT(*) FROM menu_items WHERE tenant_id = $1`

func (mp *MenuPostgres) CountMenuItems(ctx context.Context, tenantID string) (int, error) {
	var n int
	err := mp.db.QueryRowContext(ctx, countMenuItems, tenantID).Scan(&n)
	return n, err
}
