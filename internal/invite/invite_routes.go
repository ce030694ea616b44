package invite

import (
	"github.com/gin-gonic/gin"

	"github.com/DhavalSuthar-24/squadup/pkg/rmiddleware"
)

// InviteRoutes registers invite routes. Lookup and accept are public; accept
// picks up a session when one is sent.
func InviteRoutes(router *gin.RouterGroup, ic *InviteController, authMW, optionalAuthMW gin.HandlerFunc) {
	router.GET("/invites/:token", ic.LookupInvite)
	router.POST("/invites/:token/accept", optionalAuthMW, ic.AcceptInvite)

	authed := router.Group("")
	authed.Use(authMW)
	{
		authed.GET("/teams/:team_id/invites", ic.ListTeamInvites)
		authed.POST("/teams/:team_id/invites", ic.CreateTeamInvite)
		authed.DELETE("/invites/:invite_id", ic.DeleteTeamInvite)
		authed.DELETE("/trainer-invites/:invite_id", ic.DeleteTrainerInvite)
		authed.POST("/trainer-invites", rmiddleware.AdminMiddleware(), ic.CreateTrainerInvite)
	}
}
