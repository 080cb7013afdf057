package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Electrotienda-api/internal/application/auth"
	"github.com/jhoicas/Electrotienda-api/internal/application/dto"
	"github.com/jhoicas/Electrotienda-api/internal/domain"
	"github.com/jhoicas/Electrotienda-api/internal/domain/entity"
	"github.com/jhoicas/Electrotienda-api/internal/infrastructure/memory"
	"github.com/jhoicas/Electrotienda-api/pkg/jwt"
	"github.com/jhoicas/Electrotienda-api/pkg/password"
)

const secret = "secreto-de-pruebas"

func newAuth() (*auth.AuthUseCase, *memory.Store) {
	s := memory.NewStore()
	return auth.NewAuthUseCase(s.Users(), auth.JWTConfig{Secret: secret, ExpMinutes: 30, Issuer: "test"}, nil), s
}

func TestRegisterYLogin(t *testing.T) {
	uc, _ := newAuth()
	ctx := context.Background()

	user, err := uc.RegisterUser(ctx, dto.RegisterRequest{
		Email: "Bodega@Tienda.co", Password: "clave-segura", Role: entity.RoleBodeguero,
	})
	require.NoError(t, err)
	assert.Equal(t, "bodega@tienda.co", user.Email)
	assert.Equal(t, entity.UserStatusActive, user.Status)

	res, err := uc.Login(ctx, dto.LoginRequest{Email: "bodega@tienda.co", Password: "clave-segura"})
	require.NoError(t, err)
	assert.NotEmpty(t, res.Token)

	assert.WithinDuration(t, time.Now().Add(30*time.Minute), res.ExpiresAt, 5*time.Second)

	claims, err := jwt.Verify(secret, "test", res.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID())
	assert.Equal(t, entity.RoleBodeguero, claims.Role)

	me, err := uc.Me(ctx, claims.UserID())
	require.NoError(t, err)
	assert.Equal(t, user.Email, me.Email)

	_, err = uc.Me(ctx, "no-existe")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestRegister_EmailDuplicado(t *testing.T) {
	uc, _ := newAuth()
	ctx := context.Background()
	_, err := uc.RegisterUser(ctx, dto.RegisterRequest{Email: "a@b.co", Password: "12345678"})
	require.NoError(t, err)

	_, err = uc.RegisterUser(ctx, dto.RegisterRequest{Email: "A@B.co", Password: "12345678"})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestLogin_Rechazos(t *testing.T) {
	uc, s := newAuth()
	ctx := context.Background()
	_, err := uc.RegisterUser(ctx, dto.RegisterRequest{Email: "v@tienda.co", Password: "12345678"})
	require.NoError(t, err)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "v@tienda.co", Password: "otra-clave"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "nadie@tienda.co", Password: "12345678"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "no-es-email", Password: "x"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	hash, err := password.HashWithIterations("12345678", 1)
	require.NoError(t, err)
	require.NoError(t, s.Users().Create(ctx, &entity.User{
		ID: "u-inactivo", Email: "inactivo@tienda.co", PasswordHash: hash, Status: entity.UserStatusInactive,
	}))
	_, err = uc.Login(ctx, dto.LoginRequest{Email: "inactivo@tienda.co", Password: "12345678"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
