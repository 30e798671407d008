package services_test

import (
	"testing"
	"time"

	"github.com/Fenet-Ab/fen-one-shop/entity"
	"github.com/Fenet-Ab/fen-one-shop/services"
	"github.com/Fenet-Ab/fen-one-shop/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testJWTSecret = "test-secret"

func newAuth(t *testing.T, s *shop, adminSecret string) *services.AuthService {
	t.Helper()
	return services.NewAuthService(s.users, testJWTSecret, time.Hour, adminSecret)
}

func TestRegisterIssuesUserToken(t *testing.T) {
	s := newShop(t)
	auth := newAuth(t, s, "letmein")

	res, err := auth.Register(&services.RegisterIn{Name: "Selam", Email: " Selam@Example.com ", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, "user", res.Role)
	assert.Equal(t, "selam@example.com", res.User.Email)
	assert.NotEqual(t, "secret1", res.User.Password)

	claims, err := utils.ParseToken(res.Token, testJWTSecret)
	require.NoError(t, err)
	assert.Equal(t, res.User.ID, claims.UserID)
	assert.Equal(t, entity.RoleUser, claims.Role)

	_, err = auth.Register(&services.RegisterIn{Name: "Other", Email: "selam@example.com", Password: "secret2"})
	assert.ErrorIs(t, err, services.ErrEmailTaken)
}

func TestRegisterAdminNeedsMatchingSecret(t *testing.T) {
	s := newShop(t)

	res, err := newAuth(t, s, "letmein").Register(&services.RegisterIn{
		Name: "Boss", Email: "boss@example.com", Password: "secret1", AdminSecret: "letmein",
	})
	require.NoError(t, err)
	assert.Equal(t, "admin", res.Role)

	res, err = newAuth(t, s, "letmein").Register(&services.RegisterIn{
		Name: "Guess", Email: "guess@example.com", Password: "secret1", AdminSecret: "wrong",
	})
	require.NoError(t, err)
	assert.Equal(t, "user", res.Role)

	// no configured secret never grants admin
	res, err = newAuth(t, s, "").Register(&services.RegisterIn{
		Name: "Empty", Email: "empty@example.com", Password: "secret1",
	})
	require.NoError(t, err)
	assert.Equal(t, "user", res.Role)
}

func TestLogin(t *testing.T) {
	s := newShop(t)
	auth := newAuth(t, s, "")
	_, err := auth.Register(&services.RegisterIn{Name: "Dawit", Email: "dawit@example.com", Password: "secret1"})
	require.NoError(t, err)

	res, err := auth.Login("DAWIT@example.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, "Dawit", res.User.Name)

	_, err = auth.Login("dawit@example.com", "wrong")
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)
	_, err = auth.Login("nobody@example.com", "secret1")
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)
}
