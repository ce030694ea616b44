package auth

import "github.com/DhavalSuthar-24/squadup/internal/user"

type LoginRequest struct {
	LoginIdentifier string `json:"login_identifier" binding:"required" example:"john@example.com"` // email or username
	Password        string `json:"password" binding:"required" example:"password123"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required" example:"password123"`
	NewPassword string `json:"new_password" binding:"required,min=8,max=72" example:"newpassword123"`
}

type AuthResponse struct {
	AccessToken string     `json:"access_token"`
	TokenType   string     `json:"token_type"`
	ExpiresIn   int        `json:"expires_in"` // seconds
	User        *user.User `json:"user"`
}
