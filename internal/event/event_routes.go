package event

import (
	"github.com/gin-gonic/gin"
)

// EventRoutes registers event, series, stats and response routes.
func EventRoutes(router *gin.RouterGroup, events *Service, rsvp *RSVPService, authMW gin.HandlerFunc) {
	ec := NewEventController(events, rsvp)

	teams := router.Group("/teams/:team_id")
	teams.Use(authMW)
	{
		teams.POST("/events", ec.CreateEvents)
		teams.GET("/events", ec.ListEvents)
		teams.DELETE("/series/:series_id", ec.DeleteSeries)
		teams.GET("/stats", ec.TeamStats)
	}

	eventGroup := router.Group("/events/:event_id")
	eventGroup.Use(authMW)
	{
		eventGroup.GET("", ec.GetEvent)
		eventGroup.PUT("", ec.UpdateEvent)
		eventGroup.DELETE("", ec.DeleteEvent)
		eventGroup.GET("/responses", ec.ListResponses)
		eventGroup.PUT("/responses", ec.RespondSelf)
		eventGroup.PUT("/responses/:user_id", ec.RespondForMember)
	}
}
