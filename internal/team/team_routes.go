package team

import (
	"github.com/gin-gonic/gin"

	"github.com/DhavalSuthar-24/squadup/pkg/rmiddleware"
)

// TeamRoutes sets up all team-related routes. Fine-grained authorization
// (team trainer vs member) happens in the service.
func TeamRoutes(router *gin.RouterGroup, svc *Service, authMW gin.HandlerFunc) {
	tc := NewTeamController(svc)

	teams := router.Group("/teams")
	teams.Use(authMW)
	{
		teams.GET("", tc.GetTeams)
		teams.GET("/:team_id", tc.GetTeamByID)
		teams.PUT("/:team_id", tc.UpdateTeam)
		teams.GET("/:team_id/members", tc.GetTeamMembers)
		teams.POST("/:team_id/members", tc.AddMember)
		teams.DELETE("/:team_id/members/:user_id", tc.RemoveTeamMember)

		admin := teams.Group("")
		admin.Use(rmiddleware.AdminMiddleware())
		admin.POST("", tc.CreateTeam)
		admin.DELETE("/:team_id", tc.DeleteTeam)
		admin.POST("/:team_id/trainers", tc.AssignTrainer)
	}
}
