package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/tastebite/tastebite-service/internal/models"
)

type AuthPostgres struct {
	db *sql.DB
}

func NewAuthPostgres(db *sql.DB) *AuthPostgres {
	return &AuthPostgres{db: db}
}

var ErrUserExists = errors.New("user with this email already exists")

const createUser = `INSERT INTO users (id, email, name, phone, password_hash, role)
					VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`

func (ap *AuthPostgres) CreateUser(ctx context.Context, user models.User) (string, error) {
	var userID string

	row := ap.db.QueryRowContext(ctx, createUser,
		user.ID, user.Email, user.Name, user.Phone, user.Password, user.Role)
	if err := row.Scan(&userID); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgerrcode.IsIntegrityConstraintViolation(pgErr.Code) {
			return "", ErrUserExists
		}
		return "", err
	}
	return userID, nil
}

const getUserByEmail = `SELECT id, email, name, phone, password_hash, role, COALESCE(tenant_id, ''), created_at
						FROM users WHERE email = $1`

func (ap *AuthPostgres) GetUserByEmail(ctx context.Context, email string) (models.User, error) {
	var user models.User

	row := ap.db.QueryRowContext(ctx, getUserByEmail, email)
	err := row.Scan(&user.ID, &user.Email, &user.Name, &user.Phone,
		&user.Password, &user.Role, &user.TenantID, &user.CreatedAt)
	return user, err
}

const getUserByID = `SELECT id, email, name, phone, role, COALESCE(tenant_id, ''), created_at
					FROM users WHERE id = $1`

func (ap *AuthPostgres) GetUserByID(ctx context.Context, id string) (models.User, error) {
	var user models.User

	row := ap.db.QueryRowContext(ctx, getUserByID, id)
	err := row.Scan(&user.ID, &user.Email, &user.Name, &user.Phone,
		&user.Role, &user.TenantID, &user.CreatedAt)
	return user, err
}

const setUserTenant = `UPDATE users SET tenant_id = $2 WHERE id = $1`

func (ap *AuthPostgres) SetUserTenant(ctx context.Context, userID, tenantID string) error {
	_, err := ap.db.ExecContext(ctx, setUserTenant, userID, tenantID)
	return err
}
