package auth

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/DhavalSuthar-24/squadup/config"
	"github.com/DhavalSuthar-24/squadup/internal/user"
	"github.com/DhavalSuthar-24/squadup/pkg/apperrors"
	"github.com/DhavalSuthar-24/squadup/pkg/token"
	"github.com/DhavalSuthar-24/squadup/pkg/utils"
)

type Service struct {
	users user.UserRepository
	jwt   config.JWTConfig
	log   *zap.Logger
}

func NewService(users user.UserRepository, jwtCfg config.JWTConfig, log *zap.Logger) *Service {
	return &Service{users: users, jwt: jwtCfg, log: log}
}

// Login checks the credentials and issues an access token. Placeholder
// accounts of unclaimed trainer invites can never log in.
func (s *Service) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	u, err := s.users.GetUserByLogin(ctx, strings.TrimSpace(req.LoginIdentifier))
	if err != nil {
		return nil, apperrors.Internal("failed to load user", err)
	}
	if u == nil || u.IsPlaceholder || utils.IsUnusable(u.Password) || !utils.CheckPassword(u.Password, req.Password) {
		return nil, apperrors.Unauthorized("invalid credentials")
	}
	res, err := s.Issue(u)
	if err != nil {
		return nil, err
	}
	s.log.Info("user logged in", zap.Uint("user_id", u.ID))
	return res, nil
}

// Issue builds the token response for u.
func (s *Service) Issue(u *user.User) (*AuthResponse, error) {
	accessToken, err := token.GenerateJWT(u.ID, u.Role, s.jwt.AccessTokenSecret, s.jwt.AccessTokenExpiryMinutes)
	if err != nil {
		return nil, apperrors.Internal("failed to generate token", err)
	}
	return &AuthResponse{
		AccessToken: accessToken,
		TokenType:   "Bearer",
		ExpiresIn:   s.jwt.AccessTokenExpiryMinutes * 60,
		User:        u,
	}, nil
}

func (s *Service) Me(ctx context.Context, actor user.Actor) (*user.User, error) {
	u, err := s.users.GetUserByID(ctx, actor.UserID)
	if err != nil {
		return nil, apperrors.Internal("failed to load user", err)
	}
	if u == nil {
		return nil, apperrors.NotFound("user")
	}
	return u, nil
}

func (s *Service) ChangePassword(ctx context.Context, actor user.Actor, req ChangePasswordRequest) error {
	u, err := s.Me(ctx, actor)
	if err != nil {
		return err
	}
	if !utils.CheckPassword(u.Password, req.OldPassword) {
		return apperrors.Unauthorized("incorrect old password")
	}
	if req.OldPassword == req.NewPassword {
		return apperrors.Validation("new password cannot be the same as the old password")
	}
	hash, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		return apperrors.Internal("failed to hash password", err)
	}
	u.Password = hash
	if err := s.users.UpdateUser(ctx, u); err != nil {
		return apperrors.Internal("failed to change password", err)
	}
	return nil
}
