package invite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/DhavalSuthar-24/squadup/internal/team"
	"github.com/DhavalSuthar-24/squadup/internal/testutil"
	"github.com/DhavalSuthar-24/squadup/internal/user"
	"github.com/DhavalSuthar-24/squadup/pkg/apperrors"
)

func TestConsumeTeamInviteGuard(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	repo := NewInviteRepository(f.db)

	tests := []struct {
		name    string
		invite  TeamInvite
		wantOK  bool
		wantUse int
	}{
		{name: "unlimited", invite: TeamInvite{UsedCount: 7}, wantOK: true, wantUse: 8},
		{name: "last use left", invite: TeamInvite{MaxUses: intPtr(2), UsedCount: 1}, wantOK: true, wantUse: 2},
		{name: "exhausted", invite: TeamInvite{MaxUses: intPtr(2), UsedCount: 2}, wantOK: false, wantUse: 2},
		{name: "expires now", invite: TeamInvite{ExpiresAt: &f.now}, wantOK: false, wantUse: 0},
		{name: "expired", invite: TeamInvite{ExpiresAt: timePtr(f.now.Add(-time.Hour))}, wantOK: false, wantUse: 0},
	}

	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv := tt.invite
			inv.TeamID = f.team.ID
			inv.Role = team.MemberRolePlayer
			inv.Token = "token-" + string(rune('a'+i))
			require.NoError(t, repo.CreateTeamInvite(ctx, &inv))

			ok, err := repo.ConsumeTeamInvite(ctx, inv.ID, f.now)
			require.NoError(t, err)
			assert.Equal(t, tt.wantOK, ok)

			stored, err := repo.GetTeamInviteByID(ctx, inv.ID)
			require.NoError(t, err)
			assert.Equal(t, tt.wantUse, stored.UsedCount)
		})
	}
}

func TestConsumeTrainerInviteGuard(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	repo := NewInviteRepository(f.db)

	inv := TrainerInvite{Token: "trainer-token", TeamIDs: []uint{f.team.ID}}
	require.NoError(t, repo.CreateTrainerInvite(ctx, &inv))

	ok, err := repo.ConsumeTrainerInvite(ctx, inv.ID, f.now)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.ConsumeTrainerInvite(ctx, inv.ID, f.now)
	require.NoError(t, err)
	assert.False(t, ok)

	expired := TrainerInvite{Token: "expired-token", TeamIDs: []uint{f.team.ID}, ExpiresAt: &f.now}
	require.NoError(t, repo.CreateTrainerInvite(ctx, &expired))
	ok, err = repo.ConsumeTrainerInvite(ctx, expired.ID, f.now)
	require.NoError(t, err)
	assert.False(t, ok)

	stored, err := repo.GetTrainerInviteByID(ctx, inv.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, stored.UsedCount)
}

// A copy loaded before another request used the invite still passes the
// in-memory check; the guarded update must reject it.
func TestAcceptStaleInviteCopy(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	inv := f.playerInvite(t, CreateTeamInviteRequest{MaxUses: intPtr(1)})
	stale, err := NewInviteRepository(f.db).GetTeamInviteByID(ctx, inv.ID)
	require.NoError(t, err)

	_, err = f.svc.Accept(ctx, inv.Token, actorPtr(f.player), nil)
	require.NoError(t, err)

	second := testutil.CreateUser(t, f.db, "second", user.RolePlayer)
	err = f.db.Transaction(func(tx *gorm.DB) error {
		_, err := f.svc.acceptTeam(ctx, tx, stale, actorPtr(second), nil)
		return err
	})
	assert.True(t, apperrors.Is(err, apperrors.KindExhausted))

	trainerInv, err := f.svc.CreateTrainerInvite(ctx, testutil.Actor(f.admin), CreateTrainerInviteRequest{TeamIDs: []uint{f.team.ID}}, "")
	require.NoError(t, err)
	staleTrainer, err := NewInviteRepository(f.db).GetTrainerInviteByID(ctx, trainerInv.ID)
	require.NoError(t, err)
	require.NoError(t, f.db.Model(&TrainerInvite{}).Where("id = ?", trainerInv.ID).Update("expires_at", f.now).Error)

	err = f.db.Transaction(func(tx *gorm.DB) error {
		_, err := f.svc.acceptTrainer(ctx, tx, staleTrainer, actorPtr(second), nil)
		return err
	})
	assert.True(t, apperrors.Is(err, apperrors.KindExpired))
}

func timePtr(t time.Time) *time.Time { return &t }
