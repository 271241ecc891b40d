package service

import (
	"context"
	"testing"
	"time"

	"sorty/internal/dto"
	"sorty/internal/model"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func (f *fixture) authService() AuthService {
	return NewAuthService(f.users, f.assets, f.cache, f.cfg)
}

// seedLogin stores a user whose password is known. MinCost keeps the test fast.
func (f *fixture) seedLogin(t *testing.T, password string, active bool) *model.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	u := f.seedUser(t, model.RoleInventoryManager, active)
	u.PasswordHash = string(hash)
	require.NoError(t, f.users.Update(context.Background(), u))
	return u
}

func parseClaims(t *testing.T, secret, token string) jwt.MapClaims {
	t.Helper()
	parsed, err := jwt.Parse(token, func(*jwt.Token) (interface{}, error) { return []byte(secret), nil })
	require.NoError(t, err)
	claims, ok := parsed.Claims.(jwt.MapClaims)
	require.True(t, ok)
	return claims
}

func TestLogin_IssuesAccessAndRefreshTokens(t *testing.T) {
	f := newFixture(t)
	user := f.seedLogin(t, "secreta123", true)

	resp, err := f.authService().Login(context.Background(), dto.LoginRequest{Email: user.Email, Password: "secreta123"})
	require.NoError(t, err)
	assert.Equal(t, "bearer", resp.TokenType)
	assert.Equal(t, 8*3600, resp.ExpiresIn)
	assert.Equal(t, user.ID.String(), resp.User.ID)

	access := parseClaims(t, f.cfg.JWTSecret, resp.AccessToken)
	assert.Equal(t, TokenAccess, access["typ"])
	assert.Equal(t, user.ID.String(), access["user_id"])
	assert.Equal(t, string(model.RoleInventoryManager), access["role"])

	refresh := parseClaims(t, f.cfg.JWTSecret, resp.RefreshToken)
	assert.Equal(t, TokenRefresh, refresh["typ"])
}

func TestLogin_Failures(t *testing.T) {
	f := newFixture(t)
	active := f.seedLogin(t, "secreta123", true)
	inactive := f.seedLogin(t, "secreta123", false)
	svc := f.authService()

	cases := map[string]dto.LoginRequest{
		"wrong password": {Email: active.Email, Password: "otra-clave"},
		"unknown email":  {Email: gofakeit.Email(), Password: "secreta123"},
		"inactive user":  {Email: inactive.Email, Password: "secreta123"},
	}
	for name, req := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := svc.Login(context.Background(), req)
			assert.ErrorIs(t, err, ErrUnauthorized)
		})
	}
}

func TestRefresh(t *testing.T) {
	f := newFixture(t)
	user := f.seedLogin(t, "secreta123", true)
	svc := f.authService()
	ctx := context.Background()

	login, err := svc.Login(ctx, dto.LoginRequest{Email: user.Email, Password: "secreta123"})
	require.NoError(t, err)

	refreshed, err := svc.Refresh(ctx, login.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)

	_, err = svc.Refresh(ctx, login.AccessToken)
	assert.ErrorIs(t, err, ErrUnauthorized, "access tokens cannot refresh")

	_, err = svc.Refresh(ctx, "garbage")
	assert.ErrorIs(t, err, ErrUnauthorized)

	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": user.ID.String(),
		"typ":     TokenRefresh,
		"exp":     time.Now().Add(-time.Minute).Unix(),
	})
	signed, err := expired.SignedString([]byte(f.cfg.JWTSecret))
	require.NoError(t, err)
	_, err = svc.Refresh(ctx, signed)
	assert.ErrorIs(t, err, ErrUnauthorized)

	require.NoError(t, svc.DeactivateUser(ctx, user.ID))
	_, err = svc.Refresh(ctx, login.RefreshToken)
	assert.ErrorIs(t, err, ErrUnauthorized, "deactivated users cannot refresh")
}

func TestCreateUser(t *testing.T) {
	f := newFixture(t)
	svc := f.authService()
	ctx := context.Background()

	req := dto.CreateUserRequest{
		Email:    "  Ana.Perez@Example.com ",
		Name:     "Ana Pérez",
		Password: "password-segura",
		Role:     string(model.RoleAssetResponsible),
	}
	resp, err := svc.CreateUser(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, "ana.perez@example.com", resp.Email)
	assert.True(t, resp.IsActive)

	stored, err := f.users.FindByID(ctx, uuid.MustParse(resp.ID))
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte(req.Password)))

	req.Email = "ANA.PEREZ@example.com"
	_, err = svc.CreateUser(ctx, req)
	assert.ErrorIs(t, err, ErrConflict)
}

func TestUserActivation(t *testing.T) {
	f := newFixture(t)
	svc := f.authService()
	ctx := context.Background()
	user := f.seedUser(t, model.RoleAssetResponsible, true)

	require.NoError(t, svc.DeactivateUser(ctx, user.ID))
	active, err := svc.ListUsers(ctx, false)
	require.NoError(t, err)
	for _, u := range active {
		assert.NotEqual(t, user.ID.String(), u.ID)
	}
	all, err := svc.ListUsers(ctx, true)
	require.NoError(t, err)
	assert.Len(t, all, len(active)+1)

	require.NoError(t, svc.ReactivateUser(ctx, user.ID))
	stored, err := f.users.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.True(t, stored.IsActive)

	assert.ErrorIs(t, svc.DeactivateUser(ctx, uuid.New()), ErrNotFound)
}

func TestUpdateUser(t *testing.T) {
	f := newFixture(t)
	svc := f.authService()
	ctx := context.Background()
	user := f.seedUser(t, model.RoleAssetResponsible, true)

	resp, err := svc.UpdateUser(ctx, user.ID, dto.UpdateUserRequest{Role: string(model.RoleAdmin), Name: "Nuevo Nombre"})
	require.NoError(t, err)
	assert.Equal(t, "ADMIN", resp.Role)
	assert.Equal(t, "Nuevo Nombre", resp.Name)

	_, err = svc.UpdateUser(ctx, uuid.New(), dto.UpdateUserRequest{})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateUser_RenameDropsCachedHeldAssets(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	holder := f.seedUser(t, model.RoleAssetResponsible, true)
	held := f.seedAsset(t, model.AssetAvailable)
	other := f.seedAsset(t, model.AssetAvailable)
	f.assign(t, held.ID, holder.ID)

	assets := f.assetService()
	_, err := assets.GetByCode(ctx, held.Code)
	require.NoError(t, err)
	_, err = assets.GetByCode(ctx, other.Code)
	require.NoError(t, err)

	_, err = f.authService().UpdateUser(ctx, holder.ID, dto.UpdateUserRequest{Name: "María Renombrada"})
	require.NoError(t, err)

	_, cached := f.cache.Get(ctx, held.Code)
	assert.False(t, cached, "snapshot carries the old holder name")
	_, cached = f.cache.Get(ctx, other.Code)
	assert.True(t, cached)

	resp, err := assets.GetByCode(ctx, held.Code)
	require.NoError(t, err)
	require.NotNil(t, resp.AssignedToName)
	assert.Equal(t, "María Renombrada", *resp.AssignedToName)
}
