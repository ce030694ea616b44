package testutil

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/DhavalSuthar-24/squadup/internal/team"
	"github.com/DhavalSuthar-24/squadup/internal/user"
)

// CreateUser inserts an account with the given global role.
func CreateUser(t *testing.T, db *gorm.DB, username, role string) *user.User {
	t.Helper()
	u := &user.User{
		Username: username,
		Email:    fmt.Sprintf("%s@example.com", username),
		Password: "x",
		Name:     username,
		Role:     role,
	}
	require.NoError(t, user.NewUserRepository(db).CreateUser(context.Background(), u))
	return u
}

// CreateTeam inserts a team.
func CreateTeam(t *testing.T, db *gorm.DB, name string) *team.Team {
	t.Helper()
	tm := &team.Team{Name: name}
	require.NoError(t, team.NewTeamRepository(db).CreateTeam(context.Background(), tm))
	return tm
}

// AddMember inserts a membership without seeding responses.
func AddMember(t *testing.T, db *gorm.DB, teamID, userID uint, role string) {
	t.Helper()
	require.NoError(t, team.NewTeamRepository(db).AddTeamMember(context.Background(), &team.TeamMember{
		TeamID:   teamID,
		UserID:   userID,
		Role:     role,
		JoinedAt: time.Now().UTC(),
	}))
}

// Actor builds the actor for u.
func Actor(u *user.User) user.Actor {
	return user.Actor{UserID: u.ID, Role: u.Role}
}
