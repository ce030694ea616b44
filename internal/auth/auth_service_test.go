package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/DhavalSuthar-24/squadup/config"
	"github.com/DhavalSuthar-24/squadup/internal/testutil"
	"github.com/DhavalSuthar-24/squadup/internal/user"
	"github.com/DhavalSuthar-24/squadup/pkg/apperrors"
	"github.com/DhavalSuthar-24/squadup/pkg/token"
	"github.com/DhavalSuthar-24/squadup/pkg/utils"
)

const secret = "test-secret"

func newService(t *testing.T) (*Service, user.UserRepository) {
	t.Helper()
	users := user.NewUserRepository(testutil.NewDB(t))
	return NewService(users, config.JWTConfig{AccessTokenSecret: secret, AccessTokenExpiryMinutes: 15}, zap.NewNop()), users
}

func createUser(t *testing.T, users user.UserRepository, username, password string, placeholder bool) *user.User {
	t.Helper()
	hash, err := utils.HashPassword(password)
	require.NoError(t, err)
	u := &user.User{Username: username, Email: username + "@example.com", Password: hash, Role: user.RoleTrainer, IsPlaceholder: placeholder}
	require.NoError(t, users.CreateUser(context.Background(), u))
	return u
}

func TestLogin(t *testing.T) {
	svc, users := newService(t)
	ctx := context.Background()
	u := createUser(t, users, "coach", "password123", false)

	for _, login := range []string{"coach", "Coach@Example.com"} {
		res, err := svc.Login(ctx, LoginRequest{LoginIdentifier: login, Password: "password123"})
		require.NoError(t, err, login)
		assert.Equal(t, 900, res.ExpiresIn)

		claims, err := token.ValidateJWT(res.AccessToken, secret)
		require.NoError(t, err)
		assert.Equal(t, u.ID, claims.UserID)
		assert.Equal(t, user.RoleTrainer, claims.Role)
	}

	_, err := svc.Login(ctx, LoginRequest{LoginIdentifier: "coach", Password: "wrong-password"})
	assert.True(t, apperrors.Is(err, apperrors.KindUnauthorized))
	_, err = svc.Login(ctx, LoginRequest{LoginIdentifier: "nobody", Password: "password123"})
	assert.True(t, apperrors.Is(err, apperrors.KindUnauthorized))
}

func TestLoginRejectsPlaceholder(t *testing.T) {
	svc, users := newService(t)
	createUser(t, users, "trainer_abc", "password123", true)

	_, err := svc.Login(context.Background(), LoginRequest{LoginIdentifier: "trainer_abc", Password: "password123"})
	assert.True(t, apperrors.Is(err, apperrors.KindUnauthorized))
}

func TestChangePassword(t *testing.T) {
	svc, users := newService(t)
	ctx := context.Background()
	u := createUser(t, users, "coach", "password123", false)
	actor := user.Actor{UserID: u.ID, Role: u.Role}

	err := svc.ChangePassword(ctx, actor, ChangePasswordRequest{OldPassword: "nope", NewPassword: "newpassword1"})
	assert.True(t, apperrors.Is(err, apperrors.KindUnauthorized))

	err = svc.ChangePassword(ctx, actor, ChangePasswordRequest{OldPassword: "password123", NewPassword: "password123"})
	assert.True(t, apperrors.Is(err, apperrors.KindValidation))

	require.NoError(t, svc.ChangePassword(ctx, actor, ChangePasswordRequest{OldPassword: "password123", NewPassword: "newpassword1"}))
	_, err = svc.Login(ctx, LoginRequest{LoginIdentifier: "coach", Password: "newpassword1"})
	assert.NoError(t, err)
}
