package team_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/DhavalSuthar-24/squadup/internal/team"
	"github.com/DhavalSuthar-24/squadup/internal/testutil"
	"github.com/DhavalSuthar-24/squadup/internal/user"
	"github.com/DhavalSuthar-24/squadup/pkg/apperrors"
)

type seedCall struct{ teamID, userID uint }

type recordingSeeder struct {
	calls []seedCall
}

func (s *recordingSeeder) SeedPendingForNewMember(_ context.Context, _ *gorm.DB, teamID, userID uint) error {
	s.calls = append(s.calls, seedCall{teamID, userID})
	return nil
}

func setup(t *testing.T) (*gorm.DB, *team.Service, *recordingSeeder) {
	t.Helper()
	db := testutil.NewDB(t)
	seeder := &recordingSeeder{}
	return db, team.NewService(db, seeder, zap.NewNop()), seeder
}

func TestCreateTeam(t *testing.T) {
	db, svc, _ := setup(t)
	ctx := context.Background()
	admin := testutil.Actor(testutil.CreateUser(t, db, "admin", user.RoleAdmin))
	coach := testutil.Actor(testutil.CreateUser(t, db, "coach", user.RoleTrainer))

	created, err := svc.CreateTeam(ctx, admin, team.CreateTeamRequest{Name: "  Falcons ", Sport: "football"})
	require.NoError(t, err)
	assert.Equal(t, "Falcons", created.Name)
	assert.Equal(t, admin.UserID, created.CreatedByID)

	_, err = svc.CreateTeam(ctx, admin, team.CreateTeamRequest{Name: "Falcons"})
	assert.True(t, apperrors.Is(err, apperrors.KindConflict))

	_, err = svc.CreateTeam(ctx, coach, team.CreateTeamRequest{Name: "Hawks"})
	assert.True(t, apperrors.Is(err, apperrors.KindForbidden))
}

func TestListTeamsByVisibility(t *testing.T) {
	db, svc, _ := setup(t)
	ctx := context.Background()
	admin := testutil.Actor(testutil.CreateUser(t, db, "admin", user.RoleAdmin))
	player := testutil.CreateUser(t, db, "player", user.RolePlayer)
	a := testutil.CreateTeam(t, db, "Falcons")
	testutil.CreateTeam(t, db, "Hawks")
	testutil.AddMember(t, db, a.ID, player.ID, team.MemberRolePlayer)

	teams, total, err := svc.ListTeams(ctx, admin, 1, 20)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Len(t, teams, 2)

	teams, total, err = svc.ListTeams(ctx, testutil.Actor(player), 1, 20)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, teams, 1)
	assert.Equal(t, "Falcons", teams[0].Name)

	_, err = svc.GetTeam(ctx, testutil.Actor(player), a.ID)
	assert.NoError(t, err)
	_, err = svc.GetTeam(ctx, testutil.Actor(player), a.ID+1)
	assert.True(t, apperrors.Is(err, apperrors.KindForbidden))
	_, err = svc.GetTeam(ctx, admin, 999)
	assert.True(t, apperrors.Is(err, apperrors.KindNotFound))
}

func TestAssignTrainerPromotesAndSeeds(t *testing.T) {
	db, svc, seeder := setup(t)
	ctx := context.Background()
	admin := testutil.Actor(testutil.CreateUser(t, db, "admin", user.RoleAdmin))
	u := testutil.CreateUser(t, db, "coach", user.RoleTrainer)
	tm := testutil.CreateTeam(t, db, "Falcons")
	testutil.AddMember(t, db, tm.ID, u.ID, team.MemberRolePlayer)

	_, err := svc.AssignTrainer(ctx, admin, tm.ID, u.ID)
	require.NoError(t, err)

	role, err := team.NewTeamRepository(db).GetUserTeamRole(ctx, tm.ID, u.ID)
	require.NoError(t, err)
	assert.Equal(t, team.MemberRoleTrainer, role)
	assert.Equal(t, []seedCall{{tm.ID, u.ID}}, seeder.calls)

	_, err = svc.AssignTrainer(ctx, admin, tm.ID, 4242)
	assert.True(t, apperrors.Is(err, apperrors.KindNotFound))
	_, err = svc.AssignTrainer(ctx, testutil.Actor(u), tm.ID, u.ID)
	assert.True(t, apperrors.Is(err, apperrors.KindForbidden))
}

func TestAddMember(t *testing.T) {
	db, svc, seeder := setup(t)
	ctx := context.Background()
	coach := testutil.CreateUser(t, db, "coach", user.RoleTrainer)
	player := testutil.CreateUser(t, db, "player", user.RolePlayer)
	other := testutil.CreateUser(t, db, "other", user.RolePlayer)
	tm := testutil.CreateTeam(t, db, "Falcons")
	testutil.AddMember(t, db, tm.ID, coach.ID, team.MemberRoleTrainer)

	jersey := 10
	member, err := svc.AddMember(ctx, testutil.Actor(coach), tm.ID, team.AddMemberRequest{UserID: player.ID, JerseyNumber: &jersey, Position: "striker"})
	require.NoError(t, err)
	assert.Equal(t, team.MemberRolePlayer, member.Role)
	assert.Equal(t, []seedCall{{tm.ID, player.ID}}, seeder.calls)

	_, err = svc.AddMember(ctx, testutil.Actor(coach), tm.ID, team.AddMemberRequest{UserID: player.ID})
	assert.True(t, apperrors.Is(err, apperrors.KindConflict))

	_, err = svc.AddMember(ctx, testutil.Actor(coach), tm.ID, team.AddMemberRequest{UserID: other.ID, Role: team.MemberRoleTrainer})
	assert.True(t, apperrors.Is(err, apperrors.KindForbidden))

	_, err = svc.AddMember(ctx, testutil.Actor(player), tm.ID, team.AddMemberRequest{UserID: other.ID})
	assert.True(t, apperrors.Is(err, apperrors.KindForbidden))

	_, err = svc.AddMember(ctx, testutil.Actor(coach), tm.ID, team.AddMemberRequest{UserID: 4242})
	assert.True(t, apperrors.Is(err, apperrors.KindNotFound))

	_, err = svc.AddMember(ctx, testutil.Actor(coach), tm.ID, team.AddMemberRequest{UserID: other.ID, Role: "captain"})
	assert.True(t, apperrors.Is(err, apperrors.KindValidation))

	members, total, err := svc.ListMembers(ctx, testutil.Actor(player), tm.ID, 1, 20)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Len(t, members, 2)
}

func TestRemoveMember(t *testing.T) {
	db, svc, _ := setup(t)
	ctx := context.Background()
	admin := testutil.Actor(testutil.CreateUser(t, db, "admin", user.RoleAdmin))
	coach := testutil.CreateUser(t, db, "coach", user.RoleTrainer)
	assistant := testutil.CreateUser(t, db, "assistant", user.RoleTrainer)
	player := testutil.CreateUser(t, db, "player", user.RolePlayer)
	tm := testutil.CreateTeam(t, db, "Falcons")
	testutil.AddMember(t, db, tm.ID, coach.ID, team.MemberRoleTrainer)
	testutil.AddMember(t, db, tm.ID, assistant.ID, team.MemberRoleTrainer)
	testutil.AddMember(t, db, tm.ID, player.ID, team.MemberRolePlayer)

	err := svc.RemoveMember(ctx, testutil.Actor(coach), tm.ID, assistant.ID)
	assert.True(t, apperrors.Is(err, apperrors.KindForbidden))

	require.NoError(t, svc.RemoveMember(ctx, testutil.Actor(coach), tm.ID, player.ID))
	err = svc.RemoveMember(ctx, testutil.Actor(coach), tm.ID, player.ID)
	assert.True(t, apperrors.Is(err, apperrors.KindNotFound))

	require.NoError(t, svc.RemoveMember(ctx, admin, tm.ID, assistant.ID))
}

func TestUpdateAndDeleteTeam(t *testing.T) {
	db, svc, _ := setup(t)
	ctx := context.Background()
	admin := testutil.Actor(testutil.CreateUser(t, db, "admin", user.RoleAdmin))
	coach := testutil.CreateUser(t, db, "coach", user.RoleTrainer)
	tm := testutil.CreateTeam(t, db, "Falcons")
	testutil.CreateTeam(t, db, "Hawks")
	testutil.AddMember(t, db, tm.ID, coach.ID, team.MemberRoleTrainer)

	desc := "U12 squad"
	updated, err := svc.UpdateTeam(ctx, testutil.Actor(coach), tm.ID, team.UpdateTeamRequest{Description: &desc})
	require.NoError(t, err)
	assert.Equal(t, desc, updated.Description)

	name := "Hawks"
	_, err = svc.UpdateTeam(ctx, testutil.Actor(coach), tm.ID, team.UpdateTeamRequest{Name: &name})
	assert.True(t, apperrors.Is(err, apperrors.KindConflict))

	err = svc.DeleteTeam(ctx, testutil.Actor(coach), tm.ID)
	assert.True(t, apperrors.Is(err, apperrors.KindForbidden))
	require.NoError(t, svc.DeleteTeam(ctx, admin, tm.ID))
	err = svc.DeleteTeam(ctx, admin, tm.ID)
	assert.True(t, apperrors.Is(err, apperrors.KindNotFound))
}
