package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/regma/inventario-api/internal/application/auth"
	"github.com/regma/inventario-api/internal/application/dto"
	"github.com/regma/inventario-api/internal/domain"
	"github.com/regma/inventario-api/internal/domain/entity"
	"github.com/regma/inventario-api/internal/infrastructure/memory"
	"github.com/regma/inventario-api/pkg/jwt"
)

func setup(t *testing.T, status string) (*auth.AuthUseCase, *jwt.Signer) {
	t.Helper()
	repo := memory.NewUserRepository(memory.NewStore())
	hash, err := auth.HashPassword("secreto123")
	require.NoError(t, err)
	require.NoError(t, repo.Create(context.Background(), &entity.User{
		ID: "u-1", Email: "bodega@regma.co", PasswordHash: hash, Name: "Bodega", Role: entity.RoleBodeguero, Status: status,
	}))
	signer := jwt.NewSigner("test-secret", "regma-test", 60)
	return auth.NewAuthUseCase(repo, signer), signer
}

func TestLogin_EmiteTokenConRol(t *testing.T) {
	uc, signer := setup(t, entity.UserStatusActive)

	resp, err := uc.Login(context.Background(), dto.LoginRequest{Email: "bodega@regma.co", Password: "secreto123"})
	require.NoError(t, err)
	assert.Equal(t, "u-1", resp.User.ID)

	claims, err := signer.Parse(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, "u-1", claims.UserID)
	assert.Equal(t, entity.RoleBodeguero, claims.Role)
}

func TestLogin_CredencialesInvalidas(t *testing.T) {
	uc, _ := setup(t, entity.UserStatusActive)

	_, err := uc.Login(context.Background(), dto.LoginRequest{Email: "bodega@regma.co", Password: "otra"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Login(context.Background(), dto.LoginRequest{Email: "nadie@regma.co", Password: "secreto123"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Login(context.Background(), dto.LoginRequest{})
	assert.ErrorIs(t, err, domain.ErrMissingField)
}

func TestLogin_UsuarioInactivo(t *testing.T) {
	uc, _ := setup(t, entity.UserStatusInactive)
	_, err := uc.Login(context.Background(), dto.LoginRequest{Email: "bodega@regma.co", Password: "secreto123"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
