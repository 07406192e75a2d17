package auth_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/almoxarifado-api/internal/application/auth"
	"github.com/jhoicas/almoxarifado-api/internal/application/dto"
	"github.com/jhoicas/almoxarifado-api/internal/domain"
	"github.com/jhoicas/almoxarifado-api/internal/domain/entity"
	"github.com/jhoicas/almoxarifado-api/internal/infrastructure/sqlite"
	"github.com/jhoicas/almoxarifado-api/pkg/jwt"
)

const secret = "test-secret"

func newAuth(t *testing.T) *auth.AuthUseCase {
	t.Helper()
	store, err := sqlite.Open(filepath.Join(t.TempDir(), "auth.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return auth.NewAuthUseCase(
		sqlite.NewUserRepository(store.DB()),
		sqlite.NewStaffRepository(store.DB()),
		auth.JWTConfig{Secret: secret, ExpMinutes: 5, Issuer: "almoxarifado-test"},
	).WithBcryptCost(bcrypt.MinCost)
}

func TestRegister_PrimerUsuarioEsAdmin(t *testing.T) {
	uc := newAuth(t)
	ctx := context.Background()

	boot, err := uc.NeedsBootstrap(ctx)
	require.NoError(t, err)
	assert.True(t, boot)

	first, err := uc.RegisterUser(ctx, "", dto.RegisterRequest{Username: " Admin ", Password: "secreto123", Role: entity.RoleOperator})
	require.NoError(t, err)
	assert.Equal(t, "admin", first.Username)
	assert.Equal(t, entity.RoleAdmin, first.Role, "el primer usuario siempre es admin")

	_, err = uc.RegisterUser(ctx, "", dto.RegisterRequest{Username: "op", Password: "secreto123"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
	_, err = uc.RegisterUser(ctx, entity.RoleOperator, dto.RegisterRequest{Username: "op", Password: "secreto123"})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	op, err := uc.RegisterUser(ctx, entity.RoleAdmin, dto.RegisterRequest{Username: "op", Password: "secreto123"})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleOperator, op.Role)

	_, err = uc.RegisterUser(ctx, entity.RoleAdmin, dto.RegisterRequest{Username: "OP", Password: "secreto123"})
	assert.ErrorIs(t, err, domain.ErrUsernameAlreadyExists)
}

func TestRegister_Validacion(t *testing.T) {
	uc := newAuth(t)
	_, err := uc.RegisterUser(context.Background(), "", dto.RegisterRequest{Username: "", Password: "corta", StaffID: "no-existe"})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	var v *domain.ValidationError
	require.ErrorAs(t, err, &v)
	assert.Contains(t, v.Fields, "username")
	assert.Contains(t, v.Fields, "password")
	assert.Contains(t, v.Fields, "staff_id")
}

func TestLogin(t *testing.T) {
	uc := newAuth(t)
	ctx := context.Background()
	user, err := uc.RegisterUser(ctx, "", dto.RegisterRequest{Username: "admin", Password: "secreto123"})
	require.NoError(t, err)

	res, err := uc.Login(ctx, dto.LoginRequest{Username: "ADMIN", Password: "secreto123"})
	require.NoError(t, err)
	assert.Equal(t, user.ID, res.User.ID)

	id, err := jwt.Parse(secret, res.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, id.UserID)
	assert.Equal(t, entity.RoleAdmin, id.Role)

	_, err = uc.Login(ctx, dto.LoginRequest{Username: "admin", Password: "incorrecta"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	_, err = uc.Login(ctx, dto.LoginRequest{Username: "nadie", Password: "secreto123"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}
