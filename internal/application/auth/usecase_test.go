package auth_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/jhoicas/inventario-stock/internal/application/auth"
	"github.com/jhoicas/inventario-stock/internal/application/dto"
	"github.com/jhoicas/inventario-stock/internal/domain"
	"github.com/jhoicas/inventario-stock/internal/infrastructure/memory"
	"github.com/jhoicas/inventario-stock/pkg/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "test-secret"

func seeded(t *testing.T) (*auth.AuthUseCase, *memory.Store) {
	t.Helper()
	s := memory.New()
	n, err := auth.SeedUsers(context.Background(), s.Users(), []auth.SeedUser{
		{Email: "Admin@Tienda.com", Password: "admin123", FirstName: "Ana", LastName: "Pérez"},
	})
	require.NoError(t, err)
	require.Equal(t, 1, n)
	return auth.NewAuthUseCase(s.Users(), auth.JWTConfig{Secret: secret, ExpMinutes: 5, Issuer: "test"}), s
}

func TestLogin_OK(t *testing.T) {
	uc, _ := seeded(t)
	out, err := uc.Login(context.Background(), dto.LoginRequest{Email: "admin@tienda.com", Password: "admin123"})
	require.NoError(t, err)
	assert.Equal(t, "admin@tienda.com", out.User.Email)

	userID, email, err := jwt.Parse(secret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, out.User.ID, userID)
	assert.Equal(t, "admin@tienda.com", email)

	me, err := uc.Me(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, "Ana", me.FirstName)
}

func TestLogin_CredencialesInvalidas(t *testing.T) {
	uc, _ := seeded(t)
	_, err := uc.Login(context.Background(), dto.LoginRequest{Email: "admin@tienda.com", Password: "otra"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	_, err = uc.Login(context.Background(), dto.LoginRequest{Email: "nadie@tienda.com", Password: "admin123"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestSeedUsers_ConservaIDPorEmail(t *testing.T) {
	_, s := seeded(t)
	ctx := context.Background()
	before, err := s.Users().FindByEmail(ctx, "admin@tienda.com")
	require.NoError(t, err)

	_, err = auth.SeedUsers(ctx, s.Users(), []auth.SeedUser{{Email: "admin@tienda.com", Password: "nueva", FirstName: "Ana"}})
	require.NoError(t, err)
	after, err := s.Users().FindByEmail(ctx, "admin@tienda.com")
	require.NoError(t, err)
	assert.Equal(t, before.ID, after.ID)
	assert.NotEqual(t, before.PasswordHash, after.PasswordHash)
}

func TestLoadSeedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "users.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"users":[{"email":"a@b.co","password":"x","firstName":"A","lastName":"B"}]}`), 0o600))
	users, err := auth.LoadSeedFile(path)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "a@b.co", users[0].Email)

	_, err = auth.LoadSeedFile(filepath.Join(t.TempDir(), "no-existe.json"))
	assert.Error(t, err)
}
