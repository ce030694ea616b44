package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/DhavalSuthar-24/squadup/internal/middleware"
	"github.com/DhavalSuthar-24/squadup/pkg/responses"
)

type AuthController struct {
	svc *Service
}

func NewAuthController(svc *Service) *AuthController {
	return &AuthController{svc: svc}
}

// @Summary      Login user
// @Description  Authenticate user with email/username and password.
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        credentials  body  LoginRequest  true  "Login credentials"
// @Success      200   {object} AuthResponse "Login successful, returns token and user info"
// @Failure      400   {object} responses.ErrorResponse "Invalid input"
// @Failure      401   {object} responses.ErrorResponse "Invalid credentials"
// @Failure      500   {object} responses.ErrorResponse "Internal server error"
// @Router       /auth/login [post]
func (ac *AuthController) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendBindError(c, err)
		return
	}
	res, err := ac.svc.Login(c.Request.Context(), req)
	if err != nil {
		responses.SendAppError(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Login successful", res)
}

// @Summary      Get User Profile
// @Description  Retrieves the profile of the currently authenticated user.
// @Tags         Profile
// @Security     BearerAuth
// @Produce      json
// @Success      200 {object} user.User "User profile data"
// @Failure      401 {object} responses.ErrorResponse "Unauthorized"
// @Router       /auth/me [get]
func (ac *AuthController) GetProfile(c *gin.Context) {
	actor, err := middleware.GetActor(c)
	if err != nil {
		responses.SendAppError(c, err)
		return
	}
	u, err := ac.svc.Me(c.Request.Context(), actor)
	if err != nil {
		responses.SendAppError(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Profile retrieved", u)
}

// @Summary      Change Password
// @Tags         Profile
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request body ChangePasswordRequest true "Old and new password"
// @Success      200 {object} responses.SuccessResponse
// @Failure      400 {object} responses.ErrorResponse "Invalid input"
// @Failure      401 {object} responses.ErrorResponse "Incorrect old password"
// @Router       /auth/change-password [post]
func (ac *AuthController) ChangePassword(c *gin.Context) {
	actor, err := middleware.GetActor(c)
	if err != nil {
		responses.SendAppError(c, err)
		return
	}
	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendBindError(c, err)
		return
	}
	if err := ac.svc.ChangePassword(c.Request.Context(), actor, req); err != nil {
		responses.SendAppError(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Password changed successfully", nil)
}
