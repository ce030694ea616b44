package event

import (
	"context"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/DhavalSuthar-24/squadup/internal/team"
	"github.com/DhavalSuthar-24/squadup/internal/user"
	"github.com/DhavalSuthar-24/squadup/pkg/apperrors"
	"github.com/DhavalSuthar-24/squadup/pkg/metrics"
	"github.com/DhavalSuthar-24/squadup/pkg/notify"
)

type UpsertResponseRequest struct {
	Status  string  `json:"status" binding:"required,oneof=accepted declined tentative pending"`
	Comment *string `json:"comment" binding:"omitempty,max=500"`
}

// RSVPService owns event responses: seeding pending rows and upserting answers.
type RSVPService struct {
	db        *gorm.DB
	publisher notify.Publisher
	log       *zap.Logger
	now       func() time.Time
}

func NewRSVPService(db *gorm.DB, publisher notify.Publisher, log *zap.Logger) *RSVPService {
	return &RSVPService{
		db:        db,
		publisher: publisher,
		log:       log,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// UpsertResponse records targetUserID's answer for the event. Members may only
// answer for themselves and only before the RSVP deadline. Trainers of the
// team and admins may answer for any member at any time.
func (s *RSVPService) UpsertResponse(ctx context.Context, actor user.Actor, eventID, targetUserID uint, req UpsertResponseRequest) (*EventResponse, error) {
	if !ValidStatus(req.Status) {
		return nil, apperrors.Validation("invalid response status")
	}

	events := NewEventRepository(s.db)
	teams := team.NewTeamRepository(s.db)

	ev, err := events.GetEventByID(ctx, eventID)
	if err != nil {
		return nil, apperrors.Internal("failed to load event", err)
	}
	if ev == nil {
		return nil, apperrors.NotFound("event")
	}

	now := s.now()
	if targetUserID == actor.UserID {
		role, err := teams.GetUserTeamRole(ctx, ev.TeamID, actor.UserID)
		if err != nil {
			return nil, apperrors.Internal("failed to load membership", err)
		}
		if role == "" {
			return nil, apperrors.Forbidden("you are not a member of this team")
		}
		if ev.RSVPDeadline != nil && !now.Before(*ev.RSVPDeadline) {
			return nil, apperrors.Validation("the response deadline has passed")
		}
	} else {
		if err := team.RequireTrainer(ctx, teams, actor, ev.TeamID); err != nil {
			if apperrors.Is(err, apperrors.KindForbidden) {
				return nil, apperrors.Forbidden("you can only respond for yourself")
			}
			return nil, err
		}
		role, err := teams.GetUserTeamRole(ctx, ev.TeamID, targetUserID)
		if err != nil {
			return nil, apperrors.Internal("failed to load membership", err)
		}
		if role == "" {
			return nil, apperrors.NotFound("team member")
		}
	}

	resp := &EventResponse{
		EventID:     eventID,
		UserID:      targetUserID,
		Status:      req.Status,
		Comment:     req.Comment,
		RespondedAt: &now,
	}
	if err := events.UpsertResponse(ctx, resp); err != nil {
		return nil, apperrors.Internal("failed to save response", err)
	}

	stored, err := events.GetResponse(ctx, eventID, targetUserID)
	if err != nil || stored == nil {
		return nil, apperrors.Internal("failed to reload response", err)
	}

	metrics.ResponsesUpserted.WithLabelValues(stored.Status).Inc()
	notify.Emit(ctx, s.log, s.publisher, notify.SubjectResponsesUpdated, map[string]any{
		"event_id": eventID,
		"team_id":  ev.TeamID,
		"user_id":  targetUserID,
		"status":   stored.Status,
		"by":       actor.UserID,
	})
	return stored, nil
}

// SeedPendingForNewMember gives a new member a pending response for every
// team event that has not started yet. Existing responses are kept.
func (s *RSVPService) SeedPendingForNewMember(ctx context.Context, tx *gorm.DB, teamID, userID uint) error {
	events := NewEventRepository(tx)
	ids, err := events.FutureEventIDs(ctx, teamID, s.now())
	if err != nil {
		return apperrors.Internal("failed to load upcoming events", err)
	}
	rows := make([]EventResponse, 0, len(ids))
	for _, id := range ids {
		rows = append(rows, EventResponse{EventID: id, UserID: userID, Status: StatusPending})
	}
	if _, err := events.InsertPending(ctx, rows); err != nil {
		return apperrors.Internal("failed to seed responses", err)
	}
	return nil
}

// SeedPendingForNewEvent creates pending responses for the invited members.
// An explicit list is intersected with the team's membership; without one the
// whole team is invited when the event has InviteAll set.
func (s *RSVPService) SeedPendingForNewEvent(ctx context.Context, tx *gorm.DB, ev *Event, invited []uint) error {
	memberIDs, err := team.NewTeamRepository(tx).GetTeamMemberIDs(ctx, ev.TeamID)
	if err != nil {
		return apperrors.Internal("failed to load team members", err)
	}

	var targets []uint
	switch {
	case len(invited) > 0:
		members := make(map[uint]bool, len(memberIDs))
		for _, id := range memberIDs {
			members[id] = true
		}
		seen := make(map[uint]bool, len(invited))
		for _, id := range invited {
			if members[id] && !seen[id] {
				seen[id] = true
				targets = append(targets, id)
			}
		}
	case ev.InviteAll:
		targets = memberIDs
	}

	rows := make([]EventResponse, 0, len(targets))
	for _, uid := range targets {
		rows = append(rows, EventResponse{EventID: ev.ID, UserID: uid, Status: StatusPending})
	}
	if _, err := NewEventRepository(tx).InsertPending(ctx, rows); err != nil {
		return apperrors.Internal("failed to seed responses", err)
	}
	return nil
}
