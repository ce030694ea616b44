package event

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/DhavalSuthar-24/squadup/internal/team"
	"github.com/DhavalSuthar-24/squadup/internal/user"
	"github.com/DhavalSuthar-24/squadup/pkg/apperrors"
	"github.com/DhavalSuthar-24/squadup/pkg/metrics"
	"github.com/DhavalSuthar-24/squadup/pkg/notify"
)

type RecurrenceRequest struct {
	Mode  RepeatMode `json:"mode" binding:"required,oneof=weekly custom"`
	Days  []int      `json:"days"`
	Until string     `json:"until" binding:"required"` // YYYY-MM-DD, inclusive
}

type CreateEventRequest struct {
	Title            string             `json:"title" binding:"required,max=200"`
	Type             string             `json:"type" binding:"omitempty,oneof=training match other"`
	Description      string             `json:"description" binding:"max=2000"`
	Location         string             `json:"location" binding:"max=200"`
	StartTime        time.Time          `json:"start_time" binding:"required"`
	EndTime          time.Time          `json:"end_time" binding:"required"`
	RSVPDeadline     *time.Time         `json:"rsvp_deadline"`
	ResponsesVisible *bool              `json:"responses_visible"`
	InviteAll        *bool              `json:"invite_all"`
	InvitedUserIDs   []uint             `json:"invited_user_ids"`
	Recurrence       *RecurrenceRequest `json:"recurrence"`
}

type UpdateEventRequest struct {
	Title            *string    `json:"title" binding:"omitempty,max=200"`
	Type             *string    `json:"type" binding:"omitempty,oneof=training match other"`
	Description      *string    `json:"description" binding:"omitempty,max=2000"`
	Location         *string    `json:"location" binding:"omitempty,max=200"`
	StartTime        *time.Time `json:"start_time"`
	EndTime          *time.Time `json:"end_time"`
	RSVPDeadline     *time.Time `json:"rsvp_deadline"`
	ClearDeadline    bool       `json:"clear_rsvp_deadline"`
	ResponsesVisible *bool      `json:"responses_visible"`
}

// ListEventsQuery filters a team's events. Upcoming overrides From with now.
type ListEventsQuery struct {
	From     *time.Time
	To       *time.Time
	Upcoming bool
}

type Service struct {
	db        *gorm.DB
	rsvp      *RSVPService
	publisher notify.Publisher
	log       *zap.Logger
	now       func() time.Time
}

func NewService(db *gorm.DB, rsvp *RSVPService, publisher notify.Publisher, log *zap.Logger) *Service {
	return &Service{
		db:        db,
		rsvp:      rsvp,
		publisher: publisher,
		log:       log,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// CreateEvents creates a single event, or every occurrence of a recurrence
// sharing a fresh series id, and seeds pending responses. All rows are written
// in one transaction.
func (s *Service) CreateEvents(ctx context.Context, actor user.Actor, teamID uint, req CreateEventRequest) ([]Event, error) {
	if err := team.RequireTrainer(ctx, team.NewTeamRepository(s.db), actor, teamID); err != nil {
		return nil, err
	}

	evType := req.Type
	if evType == "" {
		evType = TypeTraining
	}
	if !ValidType(evType) {
		return nil, apperrors.Validation("invalid event type")
	}

	occurrences := []Occurrence{{Start: req.StartTime, End: req.EndTime}}
	var seriesID *string
	if req.Recurrence != nil {
		until, err := time.Parse(time.DateOnly, req.Recurrence.Until)
		if err != nil {
			return nil, apperrors.Validation("invalid recurrence until date: expected YYYY-MM-DD")
		}
		occurrences, err = Expand(req.StartTime, req.EndTime, req.Recurrence.Mode, until, req.Recurrence.Days)
		if err != nil {
			return nil, err
		}
		id := uuid.NewString()
		seriesID = &id
	}

	// deadline keeps its distance to the start on every occurrence
	var deadlineLead *time.Duration
	if req.RSVPDeadline != nil {
		lead := req.StartTime.Sub(*req.RSVPDeadline)
		deadlineLead = &lead
	}

	events := make([]Event, len(occurrences))
	for i, occ := range occurrences {
		ev := Event{
			TeamID:           teamID,
			Title:            strings.TrimSpace(req.Title),
			Type:             evType,
			Description:      req.Description,
			Location:         req.Location,
			StartTime:        occ.Start.UTC(),
			EndTime:          occ.End.UTC(),
			SeriesID:         seriesID,
			ResponsesVisible: boolOr(req.ResponsesVisible, true),
			InviteAll:        boolOr(req.InviteAll, true),
			CreatedByID:      actor.UserID,
		}
		if deadlineLead != nil {
			d := occ.Start.Add(-*deadlineLead).UTC()
			ev.RSVPDeadline = &d
		}
		events[i] = ev
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := NewEventRepository(tx).CreateEvents(ctx, events); err != nil {
			return apperrors.Internal("failed to create events", err)
		}
		for i := range events {
			if err := s.rsvp.SeedPendingForNewEvent(ctx, tx, &events[i], req.InvitedUserIDs); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	ids := make([]uint, len(events))
	for i := range events {
		ids[i] = events[i].ID
	}
	metrics.EventsCreated.Add(float64(len(events)))
	notify.Emit(ctx, s.log, s.publisher, notify.SubjectEventsCreated, map[string]any{
		"team_id":   teamID,
		"event_ids": ids,
		"series_id": seriesID,
	})
	s.log.Info("events created", zap.Uint("team_id", teamID), zap.Int("count", len(events)), zap.Uint("by", actor.UserID))
	return events, nil
}

func (s *Service) GetEvent(ctx context.Context, actor user.Actor, eventID uint) (*Event, error) {
	ev, err := s.loadEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if _, err := team.RequireMember(ctx, team.NewTeamRepository(s.db), actor, ev.TeamID); err != nil {
		return nil, err
	}
	return ev, nil
}

func (s *Service) ListEvents(ctx context.Context, actor user.Actor, teamID uint, q ListEventsQuery, page, limit int) ([]Event, int64, error) {
	if _, err := team.RequireMember(ctx, team.NewTeamRepository(s.db), actor, teamID); err != nil {
		return nil, 0, err
	}
	filter := EventFilter{From: q.From, To: q.To}
	if q.Upcoming {
		now := s.now()
		filter.From = &now
	}
	events, total, err := NewEventRepository(s.db).ListTeamEvents(ctx, teamID, filter, page, limit)
	if err != nil {
		return nil, 0, apperrors.Internal("failed to list events", err)
	}
	return events, total, nil
}

// UpdateEvent edits one event. Other occurrences of its series are untouched.
func (s *Service) UpdateEvent(ctx context.Context, actor user.Actor, eventID uint, req UpdateEventRequest) (*Event, error) {
	ev, err := s.loadEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if err := team.RequireTrainer(ctx, team.NewTeamRepository(s.db), actor, ev.TeamID); err != nil {
		return nil, err
	}

	if req.Title != nil {
		ev.Title = strings.TrimSpace(*req.Title)
	}
	if req.Type != nil {
		if !ValidType(*req.Type) {
			return nil, apperrors.Validation("invalid event type")
		}
		ev.Type = *req.Type
	}
	if req.Description != nil {
		ev.Description = *req.Description
	}
	if req.Location != nil {
		ev.Location = *req.Location
	}
	if req.StartTime != nil {
		ev.StartTime = req.StartTime.UTC()
	}
	if req.EndTime != nil {
		ev.EndTime = req.EndTime.UTC()
	}
	switch {
	case req.ClearDeadline:
		ev.RSVPDeadline = nil
	case req.RSVPDeadline != nil:
		d := req.RSVPDeadline.UTC()
		ev.RSVPDeadline = &d
	}
	if req.ResponsesVisible != nil {
		ev.ResponsesVisible = *req.ResponsesVisible
	}

	if err := NewEventRepository(s.db).UpdateEvent(ctx, ev); err != nil {
		return nil, apperrors.Internal("failed to update event", err)
	}
	return ev, nil
}

func (s *Service) DeleteEvent(ctx context.Context, actor user.Actor, eventID uint) error {
	ev, err := s.loadEvent(ctx, eventID)
	if err != nil {
		return err
	}
	if err := team.RequireTrainer(ctx, team.NewTeamRepository(s.db), actor, ev.TeamID); err != nil {
		return err
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := NewEventRepository(tx).DeleteEvent(ctx, eventID); err != nil {
			return apperrors.Internal("failed to delete event", err)
		}
		return nil
	})
}

// DeleteSeries removes every occurrence of a series and returns how many.
func (s *Service) DeleteSeries(ctx context.Context, actor user.Actor, teamID uint, seriesID string) (int64, error) {
	if _, err := uuid.Parse(seriesID); err != nil {
		return 0, apperrors.Validation("invalid series id")
	}
	if err := team.RequireTrainer(ctx, team.NewTeamRepository(s.db), actor, teamID); err != nil {
		return 0, err
	}
	var deleted int64
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		n, err := NewEventRepository(tx).DeleteSeries(ctx, teamID, seriesID)
		if err != nil {
			return apperrors.Internal("failed to delete series", err)
		}
		deleted = n
		return nil
	})
	if err != nil {
		return 0, err
	}
	if deleted == 0 {
		return 0, apperrors.NotFound("series")
	}
	return deleted, nil
}

// ListResponses returns the whole roster to trainers and admins, and to members
// when the event's responses are visible. Otherwise members get their own row.
func (s *Service) ListResponses(ctx context.Context, actor user.Actor, eventID uint) ([]EventResponse, error) {
	ev, err := s.loadEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	role, err := team.RequireMember(ctx, team.NewTeamRepository(s.db), actor, ev.TeamID)
	if err != nil {
		return nil, err
	}

	var only *uint
	if !actor.IsAdmin() && role != team.MemberRoleTrainer && !ev.ResponsesVisible {
		only = &actor.UserID
	}
	out, err := NewEventRepository(s.db).ListResponses(ctx, eventID, only)
	if err != nil {
		return nil, apperrors.Internal("failed to list responses", err)
	}
	return out, nil
}

// TeamStats counts responses per member over events that already started.
func (s *Service) TeamStats(ctx context.Context, actor user.Actor, teamID uint) ([]MemberStats, error) {
	if err := team.RequireTrainer(ctx, team.NewTeamRepository(s.db), actor, teamID); err != nil {
		return nil, err
	}
	stats, err := NewEventRepository(s.db).TeamStats(ctx, teamID, s.now())
	if err != nil {
		return nil, apperrors.Internal("failed to compute stats", err)
	}
	return stats, nil
}

func (s *Service) loadEvent(ctx context.Context, eventID uint) (*Event, error) {
	ev, err := NewEventRepository(s.db).GetEventByID(ctx, eventID)
	if err != nil {
		return nil, apperrors.Internal("failed to load event", err)
	}
	if ev == nil {
		return nil, apperrors.NotFound("event")
	}
	return ev, nil
}

func boolOr(v *bool, def bool) bool {
	if v == nil {
		return def
	}
	return *v
}
