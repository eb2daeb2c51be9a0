package service_test

import (
	"context"
	"crypto/sha256"
	"fmt"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/tastebite/tastebite-service/internal/apperrors"
	"github.com/tastebite/tastebite-service/internal/mocks"
	"github.com/tastebite/tastebite-service/internal/models"
	"github.com/tastebite/tastebite-service/internal/pkg/repository"
	"github.com/tastebite/tastebite-service/internal/pkg/service"
)

func hashPassword(password string) string {
	hash := sha256.New()
	hash.Write([]byte(password))
	return fmt.Sprintf("%x", hash.Sum([]byte(service.Salt)))
}

func TestRegisterUser(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mocks.NewMockAuthorizationRepository(ctrl)
	svc := service.NewAuthService(repo)

	tests := []struct {
		name      string
		user      models.User
		mockSetup func()
		wantErr   error
	}{
		{
			name: "defaults to customer role",
			user: models.User{Email: "amit@example.com", Password: "secret"},
			mockSetup: func() {
				repo.EXPECT().CreateUser(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, u models.User) (string, error) {
						assert.Equal(t, models.RoleCustomer, u.Role)
						assert.NotEqual(t, "secret", u.Password)
						return u.ID, nil
					})
			},
		},
		{
			name:      "missing credentials",
			user:      models.User{Email: "amit@example.com"},
			mockSetup: func() {},
			wantErr:   apperrors.ErrValidation,
		},
		{
			name:      "unknown role",
			user:      models.User{Email: "amit@example.com", Password: "secret", Role: "superhero"},
			mockSetup: func() {},
			wantErr:   apperrors.ErrValidation,
		},
		{
			name: "duplicate email",
			user: models.User{Email: "taken@example.com", Password: "secret"},
			mockSetup: func() {
				repo.EXPECT().CreateUser(gomock.Any(), gomock.Any()).
					Return("", repository.ErrUserExists)
			},
			wantErr: apperrors.ErrDuplicateEmail,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			_, err := svc.RegisterUser(context.Background(), tt.user)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestTokenRoundTrip(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mocks.NewMockAuthorizationRepository(ctrl)
	svc := service.NewAuthService(repo)

	stored := models.User{
		ID:       "u1",
		Email:    "amit@example.com",
		Password: hashPassword("secret"),
		Role:     models.RoleTenantOwner,
		TenantID: "t1",
	}
	repo.EXPECT().GetUserByEmail(gomock.Any(), "amit@example.com").Return(stored, nil)

	token, user, err := svc.GenerateToken(context.Background(), "amit@example.com", "secret")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Empty(t, user.Password)

	identity, err := svc.ParseToken(context.Background(), token)
	assert.NoError(t, err)
	assert.Equal(t, "u1", identity.ID)
	assert.Equal(t, models.RoleTenantOwner, identity.Role)
	assert.Equal(t, "t1", identity.TenantID)
}

func TestGenerateTokenBadCredentials(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mocks.NewMockAuthorizationRepository(ctrl)
	svc := service.NewAuthService(repo)

	stored := models.User{ID: "u1", Email: "amit@example.com", Password: hashPassword("secret")}
	repo.EXPECT().GetUserByEmail(gomock.Any(), "amit@example.com").Return(stored, nil)

	_, _, err := svc.GenerateToken(context.Background(), "amit@example.com", "wrong")
	assert.ErrorIs(t, err, apperrors.ErrUnauthenticated)
}

func TestParseTokenGarbage(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := service.NewAuthService(mocks.NewMockAuthorizationRepository(ctrl))

	_, err := svc.ParseToken(context.Background(), "not-a-token")
	assert.ErrorIs(t, err, apperrors.ErrUnauthenticated)
}
