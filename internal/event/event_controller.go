package event

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/DhavalSuthar-24/squadup/internal/common"
	"github.com/DhavalSuthar-24/squadup/internal/middleware"
	"github.com/DhavalSuthar-24/squadup/internal/user"
	"github.com/DhavalSuthar-24/squadup/pkg/apperrors"
	"github.com/DhavalSuthar-24/squadup/pkg/responses"
)

// EventController handles event and response HTTP requests
type EventController struct {
	events *Service
	rsvp   *RSVPService
}

func NewEventController(events *Service, rsvp *RSVPService) *EventController {
	return &EventController{events: events, rsvp: rsvp}
}

// CreateEvents godoc
// @Summary Create an event or a recurring series
// @Description Trainers of the team and admins. With a recurrence every occurrence shares one series_id.
// @Tags Events
// @Accept json
// @Produce json
// @Param team_id path uint true "Team ID"
// @Param event body CreateEventRequest true "Event"
// @Success 201 {object} responses.SuccessResponse{data=[]Event}
// @Failure 400 {object} responses.ErrorResponse "Invalid input or no valid dates generated"
// @Failure 403 {object} responses.ErrorResponse "Forbidden"
// @Security BearerAuth
// @Router /teams/{team_id}/events [post]
func (ec *EventController) CreateEvents(c *gin.Context) {
	actor, teamID, ok := actorAndID(c, "team_id")
	if !ok {
		return
	}
	var req CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendBindError(c, err)
		return
	}
	events, err := ec.events.CreateEvents(c.Request.Context(), actor, teamID, req)
	if err != nil {
		responses.SendAppError(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusCreated, "Events created successfully", events)
}

// ListEvents godoc
// @Summary List a team's events
// @Tags Events
// @Produce json
// @Param team_id path uint true "Team ID"
// @Param from query string false "Start time lower bound (RFC 3339 or YYYY-MM-DD)"
// @Param to query string false "Start time upper bound, exclusive"
// @Param upcoming query bool false "Only events that have not started"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Success 200 {object} responses.PaginatedResponse{data=[]Event}
// @Security BearerAuth
// @Router /teams/{team_id}/events [get]
func (ec *EventController) ListEvents(c *gin.Context) {
	actor, teamID, ok := actorAndID(c, "team_id")
	if !ok {
		return
	}
	from, err := common.ParseTimeQuery(c, "from")
	if err != nil {
		responses.SendAppError(c, err)
		return
	}
	to, err := common.ParseTimeQuery(c, "to")
	if err != nil {
		responses.SendAppError(c, err)
		return
	}
	upcoming, _ := strconv.ParseBool(c.DefaultQuery("upcoming", "false"))
	page, limit := common.ParsePagination(c)

	events, total, err := ec.events.ListEvents(c.Request.Context(), actor, teamID, ListEventsQuery{From: from, To: to, Upcoming: upcoming}, page, limit)
	if err != nil {
		responses.SendAppError(c, err)
		return
	}
	responses.SendPaginated(c, http.StatusOK, "Events retrieved successfully", events, total, page, limit)
}

// DeleteSeries godoc
// @Summary Delete every occurrence of a series
// @Tags Events
// @Param team_id path uint true "Team ID"
// @Param series_id path string true "Series ID"
// @Success 200 {object} responses.SuccessResponse
// @Failure 404 {object} responses.ErrorResponse "Series not found"
// @Security BearerAuth
// @Router /teams/{team_id}/series/{series_id} [delete]
func (ec *EventController) DeleteSeries(c *gin.Context) {
	actor, teamID, ok := actorAndID(c, "team_id")
	if !ok {
		return
	}
	n, err := ec.events.DeleteSeries(c.Request.Context(), actor, teamID, c.Param("series_id"))
	if err != nil {
		responses.SendAppError(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Series deleted successfully", gin.H{"deleted": n})
}

// TeamStats godoc
// @Summary Attendance statistics per member
// @Description Counts responses by status over events that already started.
// @Tags Events
// @Produce json
// @Param team_id path uint true "Team ID"
// @Success 200 {object} responses.SuccessResponse{data=[]MemberStats}
// @Security BearerAuth
// @Router /teams/{team_id}/stats [get]
func (ec *EventController) TeamStats(c *gin.Context) {
	actor, teamID, ok := actorAndID(c, "team_id")
	if !ok {
		return
	}
	stats, err := ec.events.TeamStats(c.Request.Context(), actor, teamID)
	if err != nil {
		responses.SendAppError(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Stats retrieved successfully", stats)
}

// GetEvent godoc
// @Summary Get an event
// @Tags Events
// @Produce json
// @Param event_id path uint true "Event ID"
// @Success 200 {object} responses.SuccessResponse{data=Event}
// @Failure 404 {object} responses.ErrorResponse "Event not found"
// @Security BearerAuth
// @Router /events/{event_id} [get]
func (ec *EventController) GetEvent(c *gin.Context) {
	actor, eventID, ok := actorAndID(c, "event_id")
	if !ok {
		return
	}
	ev, err := ec.events.GetEvent(c.Request.Context(), actor, eventID)
	if err != nil {
		responses.SendAppError(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Event retrieved successfully", ev)
}

// UpdateEvent godoc
// @Summary Update a single event
// @Tags Events
// @Accept json
// @Produce json
// @Param event_id path uint true "Event ID"
// @Param event body UpdateEventRequest true "Fields to update"
// @Success 200 {object} responses.SuccessResponse{data=Event}
// @Security BearerAuth
// @Router /events/{event_id} [put]
func (ec *EventController) UpdateEvent(c *gin.Context) {
	actor, eventID, ok := actorAndID(c, "event_id")
	if !ok {
		return
	}
	var req UpdateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendBindError(c, err)
		return
	}
	ev, err := ec.events.UpdateEvent(c.Request.Context(), actor, eventID, req)
	if err != nil {
		responses.SendAppError(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Event updated successfully", ev)
}

// DeleteEvent godoc
// @Summary Delete a single event
// @Tags Events
// @Param event_id path uint true "Event ID"
// @Success 200 {object} responses.SuccessResponse
// @Security BearerAuth
// @Router /events/{event_id} [delete]
func (ec *EventController) DeleteEvent(c *gin.Context) {
	actor, eventID, ok := actorAndID(c, "event_id")
	if !ok {
		return
	}
	if err := ec.events.DeleteEvent(c.Request.Context(), actor, eventID); err != nil {
		responses.SendAppError(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Event deleted successfully", nil)
}

// ListResponses godoc
// @Summary List responses for an event
// @Description Members see only their own response unless the event's responses are visible.
// @Tags Responses
// @Produce json
// @Param event_id path uint true "Event ID"
// @Success 200 {object} responses.SuccessResponse{data=[]EventResponse}
// @Security BearerAuth
// @Router /events/{event_id}/responses [get]
func (ec *EventController) ListResponses(c *gin.Context) {
	actor, eventID, ok := actorAndID(c, "event_id")
	if !ok {
		return
	}
	out, err := ec.events.ListResponses(c.Request.Context(), actor, eventID)
	if err != nil {
		responses.SendAppError(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Responses retrieved successfully", out)
}

// RespondSelf godoc
// @Summary Respond to an event
// @Tags Responses
// @Accept json
// @Produce json
// @Param event_id path uint true "Event ID"
// @Param body body UpsertResponseRequest true "Response"
// @Success 200 {object} responses.SuccessResponse{data=EventResponse}
// @Failure 400 {object} responses.ErrorResponse "Invalid status or deadline passed"
// @Security BearerAuth
// @Router /events/{event_id}/responses [put]
func (ec *EventController) RespondSelf(c *gin.Context) {
	actor, eventID, ok := actorAndID(c, "event_id")
	if !ok {
		return
	}
	ec.upsert(c, actor, eventID, actor.UserID)
}

// RespondForMember godoc
// @Summary Set a member's response
// @Description Trainers of the team and admins. Ignores the response deadline.
// @Tags Responses
// @Accept json
// @Produce json
// @Param event_id path uint true "Event ID"
// @Param user_id path uint true "User ID"
// @Param body body UpsertResponseRequest true "Response"
// @Success 200 {object} responses.SuccessResponse{data=EventResponse}
// @Failure 403 {object} responses.ErrorResponse "Forbidden"
// @Security BearerAuth
// @Router /events/{event_id}/responses/{user_id} [put]
func (ec *EventController) RespondForMember(c *gin.Context) {
	actor, eventID, ok := actorAndID(c, "event_id")
	if !ok {
		return
	}
	userID, err := common.ParseIDParam(c, "user_id")
	if err != nil {
		responses.SendAppError(c, err)
		return
	}
	ec.upsert(c, actor, eventID, userID)
}

func (ec *EventController) upsert(c *gin.Context, actor user.Actor, eventID, userID uint) {
	var req UpsertResponseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendBindError(c, err)
		return
	}
	resp, err := ec.rsvp.UpsertResponse(c.Request.Context(), actor, eventID, userID, req)
	if err != nil {
		responses.SendAppError(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Response saved successfully", resp)
}

func actorAndID(c *gin.Context, param string) (user.Actor, uint, bool) {
	actor, err := middleware.GetActor(c)
	if err != nil {
		responses.SendAppError(c, apperrors.Unauthorized("user not authenticated"))
		return actor, 0, false
	}
	id, err := common.ParseIDParam(c, param)
	if err != nil {
		responses.SendAppError(c, err)
		return actor, 0, false
	}
	return actor, id, true
}
