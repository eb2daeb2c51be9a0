package service

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/tastebite/tastebite-service/internal/apperrors"
	"github.com/tastebite/tastebite-service/internal/models"
	"github.com/tastebite/tastebite-service/internal/pkg/repository"
)

type Authorization interface {
	RegisterUser(ctx context.Context, user models.User) (string, error)
	GenerateToken(ctx context.Context, email, password string) (string, models.User, error)
	ParseToken(ctx context.Context, tokenGot string) (models.Identity, error)
	CurrentUser(ctx context.Context, identity models.Identity) (models.User, error)
}

const (
	TokenExp  = time.Hour * 24 * 7
	SecretKey = "somesigningkey"
	Salt      = "salt"
)

func generateHash(password string) string {
	hash := sha256.New()
	hash.Write([]byte(password))

	return fmt.Sprintf("%x", hash.Sum([]byte(Salt)))
}

type tokenClaims struct {
	jwt.RegisteredClaims
	UserID   string      `json:"user_id"`
	Role     models.Role `json:"role"`
	TenantID string      `json:"tenant_id,omitempty"`
}

type AuthService struct {
	repo repository.AuthorizationRepository
}

func NewAuthService(repo repository.AuthorizationRepository) *AuthService {
	return &AuthService{repo: repo}
}

func (as *AuthService) RegisterUser(ctx context.Context, user models.User) (string, error) {
	if user.Email == "" || user.Password == "" {
		return "", fmt.Errorf("%w: email and password are required", apperrors.ErrValidation)
	}
	if user.Role == "" {
		user.Role = models.RoleCustomer
	}
	if !user.Role.Valid() {
		return "", fmt.Errorf("%w: unknown role %q", apperrors.ErrValidation, user.Role)
	}

	user.ID = uuid.NewString()
	user.Password = generateHash(user.Password)

	id, err := as.repo.CreateUser(ctx, user)
	if errors.Is(err, repository.ErrUserExists) {
		return "", apperrors.ErrDuplicateEmail
	}
	return id, err
}

func (as *AuthService) GenerateToken(ctx context.Context, email, password string) (string, models.User, error) {
	user, err := as.repo.GetUserByEmail(ctx, email)
	if err != nil || user.Password != generateHash(password) {
		return "", models.User{}, apperrors.ErrUnauthenticated
	}
	user.Password = ""

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &tokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(TokenExp)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
		UserID:   user.ID,
		Role:     user.Role,
		TenantID: user.TenantID,
	})

	signed, err := token.SignedString([]byte(SecretKey))
	return signed, user, err
}

func (as *AuthService) ParseToken(ctx context.Context, tokenGot string) (models.Identity, error) {
	var claims tokenClaims

	token, err := jwt.ParseWithClaims(tokenGot, &claims,
		func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("invalid signing method: %v", t.Header["alg"])
			}
			return []byte(SecretKey), nil
		})

	if err != nil || !token.Valid {
		return models.Identity{}, apperrors.ErrUnauthenticated
	}

	return models.Identity{
		ID:       claims.UserID,
		Role:     claims.Role,
		TenantID: claims.TenantID,
	}, nil
}

func (as *AuthService) CurrentUser(ctx context.Context, identity models.Identity) (models.User, error) {
	user, err := as.repo.GetUserByID(ctx, identity.ID)
	if err != nil {
		return models.User{}, apperrors.ErrNotFound
	}
	user.Password = ""
	return user, nil
}
