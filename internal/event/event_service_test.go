package event

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/DhavalSuthar-24/squadup/internal/team"
	"github.com/DhavalSuthar-24/squadup/internal/testutil"
	"github.com/DhavalSuthar-24/squadup/internal/user"
	"github.com/DhavalSuthar-24/squadup/pkg/apperrors"
	"github.com/DhavalSuthar-24/squadup/pkg/notify"
)

type fixture struct {
	db      *gorm.DB
	events  *Service
	rsvp    *RSVPService
	now     time.Time
	team    *team.Team
	admin   *user.User
	trainer *user.User
	player  *user.User
	other   *user.User
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := testutil.NewDB(t)
	now := time.Date(2030, 1, 7, 12, 0, 0, 0, time.UTC)

	rsvp := NewRSVPService(db, notify.Noop{}, zap.NewNop())
	rsvp.now = func() time.Time { return now }
	events := NewService(db, rsvp, notify.Noop{}, zap.NewNop())
	events.now = func() time.Time { return now }

	f := &fixture{
		db:      db,
		events:  events,
		rsvp:    rsvp,
		now:     now,
		team:    testutil.CreateTeam(t, db, "Falcons"),
		admin:   testutil.CreateUser(t, db, "admin", user.RoleAdmin),
		trainer: testutil.CreateUser(t, db, "coach", user.RoleTrainer),
		player:  testutil.CreateUser(t, db, "player", user.RolePlayer),
		other:   testutil.CreateUser(t, db, "outsider", user.RolePlayer),
	}
	testutil.AddMember(t, db, f.team.ID, f.trainer.ID, team.MemberRoleTrainer)
	testutil.AddMember(t, db, f.team.ID, f.player.ID, team.MemberRolePlayer)
	return f
}

func (f *fixture) createEvent(t *testing.T, start time.Time, mutate func(*CreateEventRequest)) []Event {
	t.Helper()
	req := CreateEventRequest{
		Title:     "Practice",
		StartTime: start,
		EndTime:   start.Add(90 * time.Minute),
	}
	if mutate != nil {
		mutate(&req)
	}
	out, err := f.events.CreateEvents(context.Background(), testutil.Actor(f.trainer), f.team.ID, req)
	require.NoError(t, err)
	return out
}

func countResponses(t *testing.T, db *gorm.DB, where string, args ...interface{}) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(&EventResponse{}).Where(where, args...).Count(&n).Error)
	return n
}

func TestCreateSingleEventSeedsWholeTeam(t *testing.T) {
	f := newFixture(t)
	evs := f.createEvent(t, f.now.Add(24*time.Hour), nil)

	require.Len(t, evs, 1)
	assert.Nil(t, evs[0].SeriesID)
	assert.Equal(t, TypeTraining, evs[0].Type)
	assert.True(t, evs[0].ResponsesVisible)
	assert.Equal(t, int64(2), countResponses(t, f.db, "event_id = ? AND status = ?", evs[0].ID, StatusPending))
}

func TestCreateRecurringEventSharesSeries(t *testing.T) {
	f := newFixture(t)
	start := time.Date(2030, 1, 14, 18, 0, 0, 0, time.UTC) // Monday
	deadline := start.Add(-2 * time.Hour)

	evs := f.createEvent(t, start, func(r *CreateEventRequest) {
		r.RSVPDeadline = &deadline
		r.Recurrence = &RecurrenceRequest{Mode: RepeatWeekly, Days: []int{1, 3}, Until: "2030-01-28"}
	})

	require.Len(t, evs, 5)
	require.NotNil(t, evs[0].SeriesID)
	for _, ev := range evs {
		require.NotNil(t, ev.SeriesID)
		assert.Equal(t, *evs[0].SeriesID, *ev.SeriesID)
		require.NotNil(t, ev.RSVPDeadline)
		assert.Equal(t, 2*time.Hour, ev.StartTime.Sub(*ev.RSVPDeadline))
		assert.Equal(t, 90*time.Minute, ev.EndTime.Sub(ev.StartTime))
	}
	assert.Equal(t, int64(10), countResponses(t, f.db, "status = ?", StatusPending))
}

func TestCreateEventsRejectsEmptyRecurrence(t *testing.T) {
	f := newFixture(t)
	_, err := f.events.CreateEvents(context.Background(), testutil.Actor(f.trainer), f.team.ID, CreateEventRequest{
		Title:      "Nothing",
		StartTime:  f.now,
		EndTime:    f.now.Add(time.Hour),
		Recurrence: &RecurrenceRequest{Mode: RepeatWeekly, Until: "2030-02-01"},
	})
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.KindValidation))

	var n int64
	require.NoError(t, f.db.Model(&Event{}).Count(&n).Error)
	assert.Zero(t, n)
}

func TestCreateEventsRequiresTrainer(t *testing.T) {
	f := newFixture(t)
	_, err := f.events.CreateEvents(context.Background(), testutil.Actor(f.player), f.team.ID, CreateEventRequest{
		Title: "Nope", StartTime: f.now, EndTime: f.now,
	})
	assert.True(t, apperrors.Is(err, apperrors.KindForbidden))

	_, err = f.events.CreateEvents(context.Background(), testutil.Actor(f.admin), 9999, CreateEventRequest{
		Title: "Nope", StartTime: f.now, EndTime: f.now,
	})
	assert.True(t, apperrors.Is(err, apperrors.KindNotFound))
}

func TestCreateEventInvitedListIntersectsMembership(t *testing.T) {
	f := newFixture(t)
	evs := f.createEvent(t, f.now.Add(time.Hour), func(r *CreateEventRequest) {
		r.InvitedUserIDs = []uint{f.player.ID, f.other.ID, f.player.ID}
	})
	assert.Equal(t, int64(1), countResponses(t, f.db, "event_id = ?", evs[0].ID))
	assert.Equal(t, int64(1), countResponses(t, f.db, "event_id = ? AND user_id = ?", evs[0].ID, f.player.ID))
}

func TestCreateEventWithoutInviteAllSeedsNobody(t *testing.T) {
	f := newFixture(t)
	off := false
	evs := f.createEvent(t, f.now.Add(time.Hour), func(r *CreateEventRequest) { r.InviteAll = &off })
	assert.Zero(t, countResponses(t, f.db, "event_id = ?", evs[0].ID))
}

func TestTrainerOverrideKeepsSingleRow(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	ev := f.createEvent(t, f.now.Add(48*time.Hour), nil)[0]

	first, err := f.rsvp.UpsertResponse(ctx, testutil.Actor(f.player), ev.ID, f.player.ID, UpsertResponseRequest{Status: StatusAccepted})
	require.NoError(t, err)
	assert.Equal(t, StatusAccepted, first.Status)
	require.NotNil(t, first.RespondedAt)

	later := f.now.Add(time.Minute)
	f.rsvp.now = func() time.Time { return later }
	note := "injured"
	second, err := f.rsvp.UpsertResponse(ctx, testutil.Actor(f.trainer), ev.ID, f.player.ID, UpsertResponseRequest{Status: StatusDeclined, Comment: &note})
	require.NoError(t, err)

	assert.Equal(t, StatusDeclined, second.Status)
	require.NotNil(t, second.Comment)
	assert.Equal(t, note, *second.Comment)
	require.NotNil(t, second.RespondedAt)
	assert.True(t, second.RespondedAt.After(*first.RespondedAt))
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, int64(1), countResponses(t, f.db, "event_id = ? AND user_id = ?", ev.ID, f.player.ID))
}

func TestUpsertResponseIsIdempotent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	ev := f.createEvent(t, f.now.Add(time.Hour), nil)[0]

	req := UpsertResponseRequest{Status: StatusTentative}
	a, err := f.rsvp.UpsertResponse(ctx, testutil.Actor(f.player), ev.ID, f.player.ID, req)
	require.NoError(t, err)
	b, err := f.rsvp.UpsertResponse(ctx, testutil.Actor(f.player), ev.ID, f.player.ID, req)
	require.NoError(t, err)

	assert.Equal(t, a.ID, b.ID)
	assert.Equal(t, a.Status, b.Status)
	assert.Equal(t, int64(1), countResponses(t, f.db, "event_id = ? AND user_id = ?", ev.ID, f.player.ID))
}

func TestUpsertResponseAuthorization(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	ev := f.createEvent(t, f.now.Add(time.Hour), nil)[0]

	_, err := f.rsvp.UpsertResponse(ctx, testutil.Actor(f.player), ev.ID, f.trainer.ID, UpsertResponseRequest{Status: StatusAccepted})
	assert.True(t, apperrors.Is(err, apperrors.KindForbidden), "members cannot answer for others")

	_, err = f.rsvp.UpsertResponse(ctx, testutil.Actor(f.other), ev.ID, f.other.ID, UpsertResponseRequest{Status: StatusAccepted})
	assert.True(t, apperrors.Is(err, apperrors.KindForbidden), "non-members cannot answer")

	_, err = f.rsvp.UpsertResponse(ctx, testutil.Actor(f.trainer), ev.ID, f.other.ID, UpsertResponseRequest{Status: StatusAccepted})
	assert.True(t, apperrors.Is(err, apperrors.KindNotFound), "target must be a member")

	_, err = f.rsvp.UpsertResponse(ctx, testutil.Actor(f.player), ev.ID, f.player.ID, UpsertResponseRequest{Status: "maybe"})
	assert.True(t, apperrors.Is(err, apperrors.KindValidation))

	_, err = f.rsvp.UpsertResponse(ctx, testutil.Actor(f.admin), ev.ID, f.player.ID, UpsertResponseRequest{Status: StatusDeclined})
	assert.NoError(t, err, "admins may answer for any member")
}

func TestUpsertResponseDeadline(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	deadline := f.now
	ev := f.createEvent(t, f.now.Add(time.Hour), func(r *CreateEventRequest) { r.RSVPDeadline = &deadline })[0]

	_, err := f.rsvp.UpsertResponse(ctx, testutil.Actor(f.player), ev.ID, f.player.ID, UpsertResponseRequest{Status: StatusAccepted})
	assert.True(t, apperrors.Is(err, apperrors.KindValidation))

	_, err = f.rsvp.UpsertResponse(ctx, testutil.Actor(f.trainer), ev.ID, f.player.ID, UpsertResponseRequest{Status: StatusAccepted})
	assert.NoError(t, err)
}

func TestSeedPendingForNewMemberOnlyFutureEvents(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	past := f.createEvent(t, f.now.Add(-time.Hour), nil)[0]
	startsNow := f.createEvent(t, f.now, nil)[0]
	future := f.createEvent(t, f.now.Add(time.Hour), nil)[0]

	newbie := testutil.CreateUser(t, f.db, "newbie", user.RolePlayer)
	testutil.AddMember(t, f.db, f.team.ID, newbie.ID, team.MemberRolePlayer)

	require.NoError(t, f.rsvp.SeedPendingForNewMember(ctx, f.db, f.team.ID, newbie.ID))
	require.NoError(t, f.rsvp.SeedPendingForNewMember(ctx, f.db, f.team.ID, newbie.ID))

	assert.Zero(t, countResponses(t, f.db, "event_id = ? AND user_id = ?", past.ID, newbie.ID))
	assert.Equal(t, int64(1), countResponses(t, f.db, "event_id = ? AND user_id = ?", startsNow.ID, newbie.ID))
	assert.Equal(t, int64(1), countResponses(t, f.db, "event_id = ? AND user_id = ?", future.ID, newbie.ID))
}

func TestSeedPendingKeepsExistingAnswer(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	ev := f.createEvent(t, f.now.Add(time.Hour), nil)[0]
	_, err := f.rsvp.UpsertResponse(ctx, testutil.Actor(f.player), ev.ID, f.player.ID, UpsertResponseRequest{Status: StatusAccepted})
	require.NoError(t, err)

	require.NoError(t, f.rsvp.SeedPendingForNewMember(ctx, f.db, f.team.ID, f.player.ID))

	stored, err := NewEventRepository(f.db).GetResponse(ctx, ev.ID, f.player.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusAccepted, stored.Status)
}

func TestListResponsesVisibility(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	hidden := false
	ev := f.createEvent(t, f.now.Add(time.Hour), func(r *CreateEventRequest) { r.ResponsesVisible = &hidden })[0]

	own, err := f.events.ListResponses(ctx, testutil.Actor(f.player), ev.ID)
	require.NoError(t, err)
	require.Len(t, own, 1)
	assert.Equal(t, f.player.ID, own[0].UserID)

	all, err := f.events.ListResponses(ctx, testutil.Actor(f.trainer), ev.ID)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	all, err = f.events.ListResponses(ctx, testutil.Actor(f.admin), ev.ID)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	_, err = f.events.ListResponses(ctx, testutil.Actor(f.other), ev.ID)
	assert.True(t, apperrors.Is(err, apperrors.KindForbidden))

	visible := f.createEvent(t, f.now.Add(2*time.Hour), nil)[0]
	all, err = f.events.ListResponses(ctx, testutil.Actor(f.player), visible.ID)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestDeleteEventCascadesResponses(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	ev := f.createEvent(t, f.now.Add(time.Hour), nil)[0]
	require.Equal(t, int64(2), countResponses(t, f.db, "event_id = ?", ev.ID))

	require.NoError(t, f.events.DeleteEvent(ctx, testutil.Actor(f.trainer), ev.ID))
	assert.Zero(t, countResponses(t, f.db, "event_id = ?", ev.ID))

	_, err := f.events.GetEvent(ctx, testutil.Actor(f.trainer), ev.ID)
	assert.True(t, apperrors.Is(err, apperrors.KindNotFound))
}

func TestDeleteSeries(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	start := time.Date(2030, 1, 14, 18, 0, 0, 0, time.UTC)
	series := f.createEvent(t, start, func(r *CreateEventRequest) {
		r.Recurrence = &RecurrenceRequest{Mode: RepeatCustom, Days: []int{1}, Until: "2030-02-04"}
	})
	single := f.createEvent(t, start, nil)[0]
	require.Len(t, series, 4)

	n, err := f.events.DeleteSeries(ctx, testutil.Actor(f.trainer), f.team.ID, *series[0].SeriesID)
	require.NoError(t, err)
	assert.Equal(t, int64(4), n)

	var remaining []Event
	require.NoError(t, f.db.Find(&remaining).Error)
	require.Len(t, remaining, 1)
	assert.Equal(t, single.ID, remaining[0].ID)
	assert.Equal(t, int64(2), countResponses(t, f.db, "1 = 1"))

	_, err = f.events.DeleteSeries(ctx, testutil.Actor(f.trainer), f.team.ID, *series[0].SeriesID)
	assert.True(t, apperrors.Is(err, apperrors.KindNotFound))

	_, err = f.events.DeleteSeries(ctx, testutil.Actor(f.trainer), f.team.ID, "not-a-uuid")
	assert.True(t, apperrors.Is(err, apperrors.KindValidation))
}

func TestListEventsFilters(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.createEvent(t, f.now.Add(-24*time.Hour), nil)
	f.createEvent(t, f.now.Add(24*time.Hour), nil)
	f.createEvent(t, f.now.Add(72*time.Hour), nil)

	all, total, err := f.events.ListEvents(ctx, testutil.Actor(f.player), f.team.ID, ListEventsQuery{}, 1, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, all, 3)

	upcoming, total, err := f.events.ListEvents(ctx, testutil.Actor(f.player), f.team.ID, ListEventsQuery{Upcoming: true}, 1, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.True(t, upcoming[0].StartTime.Before(upcoming[1].StartTime))

	to := f.now.Add(48 * time.Hour)
	window, _, err := f.events.ListEvents(ctx, testutil.Actor(f.player), f.team.ID, ListEventsQuery{Upcoming: true, To: &to}, 1, 20)
	require.NoError(t, err)
	assert.Len(t, window, 1)
}

func TestUpdateEvent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	ev := f.createEvent(t, f.now.Add(time.Hour), nil)[0]

	title := "Match day"
	kind := TypeMatch
	updated, err := f.events.UpdateEvent(ctx, testutil.Actor(f.trainer), ev.ID, UpdateEventRequest{Title: &title, Type: &kind})
	require.NoError(t, err)
	assert.Equal(t, title, updated.Title)
	assert.Equal(t, TypeMatch, updated.Type)

	_, err = f.events.UpdateEvent(ctx, testutil.Actor(f.player), ev.ID, UpdateEventRequest{Title: &title})
	assert.True(t, apperrors.Is(err, apperrors.KindForbidden))
}

func TestTeamStats(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	earlier := f.now.Add(-48 * time.Hour)
	f.rsvp.now = func() time.Time { return earlier.Add(-time.Hour) }

	a := f.createEvent(t, earlier, nil)[0]
	b := f.createEvent(t, earlier.Add(time.Hour), nil)[0]
	f.createEvent(t, f.now.Add(time.Hour), nil)

	_, err := f.rsvp.UpsertResponse(ctx, testutil.Actor(f.player), a.ID, f.player.ID, UpsertResponseRequest{Status: StatusAccepted})
	require.NoError(t, err)
	_, err = f.rsvp.UpsertResponse(ctx, testutil.Actor(f.player), b.ID, f.player.ID, UpsertResponseRequest{Status: StatusDeclined})
	require.NoError(t, err)

	stats, err := f.events.TeamStats(ctx, testutil.Actor(f.trainer), f.team.ID)
	require.NoError(t, err)

	byUser := map[uint]MemberStats{}
	for _, s := range stats {
		byUser[s.UserID] = s
	}
	p := byUser[f.player.ID]
	assert.Equal(t, int64(1), p.Accepted)
	assert.Equal(t, int64(1), p.Declined)
	assert.Equal(t, int64(2), p.Total)
	assert.Equal(t, int64(2), byUser[f.trainer.ID].Pending)

	_, err = f.events.TeamStats(ctx, testutil.Actor(f.player), f.team.ID)
	assert.True(t, apperrors.Is(err, apperrors.KindForbidden))
}
