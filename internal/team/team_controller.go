package team

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/DhavalSuthar-24/squadup/internal/common"
	"github.com/DhavalSuthar-24/squadup/internal/middleware"
	"github.com/DhavalSuthar-24/squadup/internal/user"
	"github.com/DhavalSuthar-24/squadup/pkg/apperrors"
	"github.com/DhavalSuthar-24/squadup/pkg/responses"
)

// TeamController handles team-related HTTP requests
type TeamController struct {
	svc *Service
}

// NewTeamController creates a new team controller
func NewTeamController(svc *Service) *TeamController {
	return &TeamController{svc: svc}
}

type AssignTrainerRequest struct {
	UserID uint `json:"user_id" binding:"required"`
}

// CreateTeam godoc
// @Summary Create a new team
// @Description Creates a new team. Admin only.
// @Tags Teams
// @Accept json
// @Produce json
// @Param team body CreateTeamRequest true "Team Creation Data"
// @Success 201 {object} responses.SuccessResponse{data=Team} "Team created successfully"
// @Failure 400 {object} responses.ErrorResponse "Invalid input"
// @Failure 403 {object} responses.ErrorResponse "Forbidden"
// @Failure 409 {object} responses.ErrorResponse "Team name already exists"
// @Security BearerAuth
// @Router /teams [post]
func (tc *TeamController) CreateTeam(c *gin.Context) {
	actor, err := middleware.GetActor(c)
	if err != nil {
		responses.SendError(c, http.StatusUnauthorized, "User not authenticated")
		return
	}

	var req CreateTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendBindError(c, err)
		return
	}

	team, err := tc.svc.CreateTeam(c.Request.Context(), actor, req)
	if err != nil {
		responses.SendAppError(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusCreated, "Team created successfully", team)
}

// GetTeams godoc
// @Summary List teams
// @Description Admins see every team, everyone else sees the teams they belong to.
// @Tags Teams
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Success 200 {object} responses.PaginatedResponse{data=[]Team}
// @Security BearerAuth
// @Router /teams [get]
func (tc *TeamController) GetTeams(c *gin.Context) {
	actor, err := middleware.GetActor(c)
	if err != nil {
		responses.SendError(c, http.StatusUnauthorized, "User not authenticated")
		return
	}
	page, limit := common.ParsePagination(c)

	teams, total, err := tc.svc.ListTeams(c.Request.Context(), actor, page, limit)
	if err != nil {
		responses.SendAppError(c, err)
		return
	}
	responses.SendPaginated(c, http.StatusOK, "Teams retrieved successfully", teams, total, page, limit)
}

// GetTeamByID godoc
// @Summary Get a team by its ID
// @Tags Teams
// @Produce json
// @Param team_id path uint true "Team ID"
// @Success 200 {object} responses.SuccessResponse{data=Team} "Team details"
// @Failure 403 {object} responses.ErrorResponse "Not a member"
// @Failure 404 {object} responses.ErrorResponse "Team not found"
// @Security BearerAuth
// @Router /teams/{team_id} [get]
func (tc *TeamController) GetTeamByID(c *gin.Context) {
	actor, teamID, ok := actorAndTeam(c)
	if !ok {
		return
	}
	team, err := tc.svc.GetTeam(c.Request.Context(), actor, teamID)
	if err != nil {
		responses.SendAppError(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Team retrieved successfully", team)
}

// UpdateTeam godoc
// @Summary Update team details
// @Tags Teams
// @Accept json
// @Produce json
// @Param team_id path uint true "Team ID"
// @Param team body UpdateTeamRequest true "Fields to update"
// @Success 200 {object} responses.SuccessResponse{data=Team}
// @Failure 403 {object} responses.ErrorResponse "Forbidden"
// @Security BearerAuth
// @Router /teams/{team_id} [put]
func (tc *TeamController) UpdateTeam(c *gin.Context) {
	actor, teamID, ok := actorAndTeam(c)
	if !ok {
		return
	}
	var req UpdateTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendBindError(c, err)
		return
	}
	team, err := tc.svc.UpdateTeam(c.Request.Context(), actor, teamID, req)
	if err != nil {
		responses.SendAppError(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Team updated successfully", team)
}

// DeleteTeam godoc
// @Summary Delete a team
// @Tags Teams
// @Param team_id path uint true "Team ID"
// @Success 200 {object} responses.SuccessResponse
// @Failure 403 {object} responses.ErrorResponse "Forbidden"
// @Security BearerAuth
// @Router /teams/{team_id} [delete]
func (tc *TeamController) DeleteTeam(c *gin.Context) {
	actor, teamID, ok := actorAndTeam(c)
	if !ok {
		return
	}
	if err := tc.svc.DeleteTeam(c.Request.Context(), actor, teamID); err != nil {
		responses.SendAppError(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Team deleted successfully", nil)
}

// AssignTrainer godoc
// @Summary Assign a trainer to a team
// @Description Admin only. Promotes an existing member or adds the user as trainer.
// @Tags Teams
// @Accept json
// @Produce json
// @Param team_id path uint true "Team ID"
// @Param body body AssignTrainerRequest true "Trainer"
// @Success 200 {object} responses.SuccessResponse{data=TeamMember}
// @Security BearerAuth
// @Router /teams/{team_id}/trainers [post]
func (tc *TeamController) AssignTrainer(c *gin.Context) {
	actor, teamID, ok := actorAndTeam(c)
	if !ok {
		return
	}
	var req AssignTrainerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendBindError(c, err)
		return
	}
	member, err := tc.svc.AssignTrainer(c.Request.Context(), actor, teamID, req.UserID)
	if err != nil {
		responses.SendAppError(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Trainer assigned successfully", member)
}

// AddMember godoc
// @Summary Add a member to a team
// @Tags Teams
// @Accept json
// @Produce json
// @Param team_id path uint true "Team ID"
// @Param body body AddMemberRequest true "Member"
// @Success 201 {object} responses.SuccessResponse{data=TeamMember}
// @Failure 409 {object} responses.ErrorResponse "Already a member"
// @Security BearerAuth
// @Router /teams/{team_id}/members [post]
func (tc *TeamController) AddMember(c *gin.Context) {
	actor, teamID, ok := actorAndTeam(c)
	if !ok {
		return
	}
	var req AddMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendBindError(c, err)
		return
	}
	member, err := tc.svc.AddMember(c.Request.Context(), actor, teamID, req)
	if err != nil {
		responses.SendAppError(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusCreated, "Member added successfully", member)
}

// GetTeamMembers godoc
// @Summary List team members
// @Tags Teams
// @Produce json
// @Param team_id path uint true "Team ID"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Success 200 {object} responses.PaginatedResponse{data=[]TeamMember}
// @Security BearerAuth
// @Router /teams/{team_id}/members [get]
func (tc *TeamController) GetTeamMembers(c *gin.Context) {
	actor, teamID, ok := actorAndTeam(c)
	if !ok {
		return
	}
	page, limit := common.ParsePagination(c)
	members, total, err := tc.svc.ListMembers(c.Request.Context(), actor, teamID, page, limit)
	if err != nil {
		responses.SendAppError(c, err)
		return
	}
	responses.SendPaginated(c, http.StatusOK, "Team members retrieved successfully", members, total, page, limit)
}

// RemoveTeamMember godoc
// @Summary Remove a member from a team
// @Tags Teams
// @Param team_id path uint true "Team ID"
// @Param user_id path uint true "User ID"
// @Success 200 {object} responses.SuccessResponse
// @Failure 404 {object} responses.ErrorResponse "Member not found"
// @Security BearerAuth
// @Router /teams/{team_id}/members/{user_id} [delete]
func (tc *TeamController) RemoveTeamMember(c *gin.Context) {
	actor, teamID, ok := actorAndTeam(c)
	if !ok {
		return
	}
	userID, err := common.ParseIDParam(c, "user_id")
	if err != nil {
		responses.SendAppError(c, err)
		return
	}
	if err := tc.svc.RemoveMember(c.Request.Context(), actor, teamID, userID); err != nil {
		responses.SendAppError(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Member removed successfully", nil)
}

func actorAndTeam(c *gin.Context) (actor user.Actor, teamID uint, ok bool) {
	actor, err := middleware.GetActor(c)
	if err != nil {
		responses.SendAppError(c, apperrors.Unauthorized("user not authenticated"))
		return actor, 0, false
	}
	teamID, err = common.ParseIDParam(c, "team_id")
	if err != nil {
		responses.SendAppError(c, err)
		return actor, 0, false
	}
	return actor, teamID, true
}
