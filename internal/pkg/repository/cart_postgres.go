package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/tastebite/tastebite-service/internal/models"
)

type CartPostgres struct {
	db *sql.DB
}

func NewCartPostgres(db *sql.DB) *CartPostgres {
	return &CartPostgres{db: db}
}

var ErrCartLineNotFound = errors.New("cart line not found")

const insertCartLine = `
	INSERT INTO cart_lines (id, customer_id, tenant_id, menu_item_id,
		variant_name, quantity, snapshot)
	VALUES ($1, $2, $3, $4, $5, $6, $7)`

func (cp *CartPostgres) InsertLine(ctx context.Context, line models.CartLine) error {
	snapshot, err := json.Marshal(line.Snapshot)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}

	_, err = cp.db.ExecContext(ctx, insertCartLine,
		line.ID, line.CustomerID, line.TenantID, line.MenuItemID,
		line.VariantName, line.Quantity, snapshot)
	return err
}

const cartLineColumns = `id, customer_id, tenant_id, menu_item_id,
	variant_name, quantity, snapshot, added_at`

func scanCartLine(row rowScanner) (models.CartLine, error) {
	var line models.CartLine
	var snapshot []byte
	err := row.Scan(&line.ID, &line.CustomerID, &line.TenantID, &line.MenuItemID,
		&line.VariantName, &line.Quantity, &snapshot, &line.AddedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return line, ErrCartLineNotFound
	}
	if err != nil {
		return line, err
	}
	if err := json.Unmarshal(snapshot, &line.Snapshot); err != nil {
		return line, fmt.Errorf("failed to decode snapshot: %w", err)
	}
	return line, nil
}

const getCartLine = `SELECT ` + cartLineColumns + ` FROM cart_lines
	WHERE id = $2 AND customer_id = $1`

func (cp *CartPostgres) GetLine(ctx context.Context, customerID, lineID string) (models.CartLine, error) {
	return scanCartLine(cp.db.QueryRowContext(ctx, getCartLine, customerID, lineID))
}

const findCartLine = `SELECT ` + cartLineColumns + ` FROM cart_lines
	WHERE customer_id = $1 AND menu_item_id = $2 AND variant_name = $3`

func (cp *CartPostgres) FindLine(ctx context.Context, customerID, menuItemID, variantName string) (models.CartLine, error) {
	return scanCartLine(cp.db.QueryRowContext(ctx, findCartLine, customerID, menuItemID, variantName))
}

const updateCartQuantity = `UPDATE cart_lines SET quantity = $3
	WHERE id = $2 AND customer_id = $1`

func (cp *CartPostgres) UpdateQuantity(ctx context.Context, customerID, lineID string, qty int) error {
	res, err := cp.db.ExecContext(ctx, updateCartQuantity, customerID, lineID, qty)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrCartLineNotFound
	}
	return nil
}

const deleteCartLine = `DELETE FROM cart_lines WHERE id = $2 AND customer_id = $1`

func (cp *CartPostgres) DeleteLine(ctx context.Context, customerID, lineID string) error {
	res, err := cp.db.ExecContext(ctx, deleteCartLine, customerID, lineID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrCartLineNotFound
	}
	return nil
}

const clearCart = `DELETE FROM cart_lines WHERE customer_id = $1`

func (cp *CartPostgres) ClearCart(ctx context.Context, customerID string) error {
	_, err := cp.db.ExecContext(ctx, clearCart, customerID)
	return err
}

const listCartLines = `SELECT ` + cartLineColumns + ` FROM cart_lines
	WHERE customer_id = $1 ORDER BY added_at`

func (cp *CartPostgres) ListLines(ctx context.Context, customerID string) ([]models.CartLine, error) {
	rows, err := cp.db.QueryContext(ctx, listCartLines, customerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lines []models.CartLine
	for rows.Next() {
		line, err := scanCartLine(rows)
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	return lines, rows.Err()
}
