package invite

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/DhavalSuthar-24/squadup/config"
	"github.com/DhavalSuthar-24/squadup/internal/common"
	"github.com/DhavalSuthar-24/squadup/internal/middleware"
	"github.com/DhavalSuthar-24/squadup/pkg/apperrors"
	"github.com/DhavalSuthar-24/squadup/pkg/responses"
	"github.com/DhavalSuthar-24/squadup/pkg/token"
)

// InviteController handles invite HTTP requests
type InviteController struct {
	svc         *Service
	frontendURL string
	jwt         config.JWTConfig
}

func NewInviteController(svc *Service, frontendURL string, jwtCfg config.JWTConfig) *InviteController {
	return &InviteController{svc: svc, frontendURL: frontendURL, jwt: jwtCfg}
}

// AcceptResponse is returned after redeeming an invite. AccessToken is set
// when the invitee had no session and an account was created or claimed.
type AcceptResponse struct {
	*AcceptResult
	AccessToken string `json:"access_token,omitempty"`
}

// baseURL prefers the configured frontend and falls back to the caller's origin.
func (ic *InviteController) baseURL(c *gin.Context) string {
	if ic.frontendURL != "" {
		return ic.frontendURL
	}
	return c.GetHeader("Origin")
}

// CreateTeamInvite godoc
// @Summary Create a team invite
// @Description Admins create trainer invites, trainers of the team create player invites.
// @Tags Invites
// @Accept json
// @Produce json
// @Param team_id path uint true "Team ID"
// @Param invite body CreateTeamInviteRequest true "Invite"
// @Success 201 {object} responses.SuccessResponse{data=InviteView}
// @Failure 403 {object} responses.ErrorResponse "Forbidden"
// @Security BearerAuth
// @Router /teams/{team_id}/invites [post]
func (ic *InviteController) CreateTeamInvite(c *gin.Context) {
	actor, err := middleware.GetActor(c)
	if err != nil {
		responses.SendAppError(c, apperrors.Unauthorized("user not authenticated"))
		return
	}
	teamID, err := common.ParseIDParam(c, "team_id")
	if err != nil {
		responses.SendAppError(c, err)
		return
	}
	var req CreateTeamInviteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendBindError(c, err)
		return
	}

	inv, err := ic.svc.CreateTeamInvite(c.Request.Context(), actor, teamID, req)
	if err != nil {
		responses.SendAppError(c, err)
		return
	}
	view := InviteView{Kind: KindTeam, State: inv.State(ic.svc.now()), URL: URL(ic.baseURL(c), inv.Token), TeamInvite: inv}
	responses.SendSuccess(c, http.StatusCreated, "Invite created successfully", view)
}

// ListTeamInvites godoc
// @Summary List a team's invites
// @Tags Invites
// @Produce json
// @Param team_id path uint true "Team ID"
// @Success 200 {object} responses.SuccessResponse{data=[]InviteView}
// @Security BearerAuth
// @Router /teams/{team_id}/invites [get]
func (ic *InviteController) ListTeamInvites(c *gin.Context) {
	actor, err := middleware.GetActor(c)
	if err != nil {
		responses.SendAppError(c, apperrors.Unauthorized("user not authenticated"))
		return
	}
	teamID, err := common.ParseIDParam(c, "team_id")
	if err != nil {
		responses.SendAppError(c, err)
		return
	}
	views, err := ic.svc.ListForTeam(c.Request.Context(), actor, teamID, ic.baseURL(c))
	if err != nil {
		responses.SendAppError(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Invites retrieved successfully", views)
}

// CreateTrainerInvite godoc
// @Summary Create a trainer invite for several teams
// @Description Admin only. Creates a placeholder account claimed on acceptance.
// @Tags Invites
// @Accept json
// @Produce json
// @Param invite body CreateTrainerInviteRequest true "Invite"
// @Success 201 {object} responses.SuccessResponse{data=InviteView}
// @Security BearerAuth
// @Router /trainer-invites [post]
func (ic *InviteController) CreateTrainerInvite(c *gin.Context) {
	actor, err := middleware.GetActor(c)
	if err != nil {
		responses.SendAppError(c, apperrors.Unauthorized("user not authenticated"))
		return
	}
	var req CreateTrainerInviteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendBindError(c, err)
		return
	}
	base := ic.baseURL(c)
	inv, err := ic.svc.CreateTrainerInvite(c.Request.Context(), actor, req, base)
	if err != nil {
		responses.SendAppError(c, err)
		return
	}
	view := InviteView{Kind: KindTrainer, State: inv.State(ic.svc.now()), URL: URL(base, inv.Token), TrainerInvite: inv}
	responses.SendSuccess(c, http.StatusCreated, "Trainer invite created successfully", view)
}

// LookupInvite godoc
// @Summary Look up an invite by token
// @Tags Invites
// @Produce json
// @Param token path string true "Invite token"
// @Success 200 {object} responses.SuccessResponse{data=LookupResult}
// @Failure 404 {object} responses.ErrorResponse "Invite not found"
// @Router /invites/{token} [get]
func (ic *InviteController) LookupInvite(c *gin.Context) {
	res, err := ic.svc.Lookup(c.Request.Context(), c.Param("token"))
	if err != nil {
		responses.SendAppError(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Invite retrieved successfully", res)
}

// AcceptInvite godoc
// @Summary Accept an invite
// @Description Authenticated users join directly. Anonymous callers send registration data.
// @Tags Invites
// @Accept json
// @Produce json
// @Param token path string true "Invite token"
// @Param registration body Registration false "Registration data"
// @Success 200 {object} responses.SuccessResponse{data=AcceptResponse}
// @Failure 409 {object} responses.ErrorResponse "Already a member or username taken"
// @Failure 410 {object} responses.ErrorResponse "Invite expired or used up"
// @Router /invites/{token}/accept [post]
func (ic *InviteController) AcceptInvite(c *gin.Context) {
	actor, _ := middleware.GetOptionalActor(c)

	var reg *Registration
	if c.Request.ContentLength != 0 {
		reg = &Registration{}
		if err := c.ShouldBindJSON(reg); err != nil {
			responses.SendBindError(c, err)
			return
		}
	}

	res, err := ic.svc.Accept(c.Request.Context(), c.Param("token"), actor, reg)
	if err != nil {
		responses.SendAppError(c, err)
		return
	}

	out := AcceptResponse{AcceptResult: res}
	if res.NewAccount {
		tok, err := token.GenerateJWT(res.User.ID, res.User.Role, ic.jwt.AccessTokenSecret, ic.jwt.AccessTokenExpiryMinutes)
		if err != nil {
			responses.SendAppError(c, apperrors.Internal("failed to issue token", err))
			return
		}
		out.AccessToken = tok
	}
	responses.SendSuccess(c, http.StatusOK, "Invite accepted successfully", out)
}

// DeleteTeamInvite godoc
// @Summary Delete a team invite
// @Tags Invites
// @Param invite_id path uint true "Invite ID"
// @Success 200 {object} responses.SuccessResponse
// @Security BearerAuth
// @Router /invites/{invite_id} [delete]
func (ic *InviteController) DeleteTeamInvite(c *gin.Context) {
	ic.delete(c, KindTeam)
}

// DeleteTrainerInvite godoc
// @Summary Delete a trainer invite
// @Description Removes the unclaimed placeholder account as well.
// @Tags Invites
// @Param invite_id path uint true "Invite ID"
// @Success 200 {object} responses.SuccessResponse
// @Security BearerAuth
// @Router /trainer-invites/{invite_id} [delete]
func (ic *InviteController) DeleteTrainerInvite(c *gin.Context) {
	ic.delete(c, KindTrainer)
}

func (ic *InviteController) delete(c *gin.Context, kind string) {
	actor, err := middleware.GetActor(c)
	if err != nil {
		responses.SendAppError(c, apperrors.Unauthorized("user not authenticated"))
		return
	}
	id, err := common.ParseIDParam(c, "invite_id")
	if err != nil {
		responses.SendAppError(c, err)
		return
	}
	if err := ic.svc.Delete(c.Request.Context(), actor, kind, id); err != nil {
		responses.SendAppError(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Invite deleted successfully", nil)
}
