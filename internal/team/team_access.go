package team

import (
	"context"

	"github.com/DhavalSuthar-24/squadup/internal/user"
	"github.com/DhavalSuthar-24/squadup/pkg/apperrors"
)

// RequireTeam loads a team or fails with NotFound.
func RequireTeam(ctx context.Context, repo TeamRepository, teamID uint) (*Team, error) {
	if teamID == 0 {
		return nil, apperrors.Validation("team id must be positive")
	}
	t, err := repo.GetTeamByID(ctx, teamID)
	if err != nil {
		return nil, apperrors.Internal("failed to load team", err)
	}
	if t == nil {
		return nil, apperrors.NotFound("team")
	}
	return t, nil
}

// RequireTrainer passes for admins and trainers of the team.
func RequireTrainer(ctx context.Context, repo TeamRepository, actor user.Actor, teamID uint) error {
	if _, err := RequireTeam(ctx, repo, teamID); err != nil {
		return err
	}
	if actor.IsAdmin() {
		return nil
	}
	role, err := repo.GetUserTeamRole(ctx, teamID, actor.UserID)
	if err != nil {
		return apperrors.Internal("failed to load membership", err)
	}
	if role != MemberRoleTrainer {
		return apperrors.Forbidden("only trainers of this team can do that")
	}
	return nil
}

// RequireMember passes for admins and any member of the team and returns the
// caller's team role ("" for admins who are not members).
func RequireMember(ctx context.Context, repo TeamRepository, actor user.Actor, teamID uint) (string, error) {
	if _, err := RequireTeam(ctx, repo, teamID); err != nil {
		return "", err
	}
	role, err := repo.GetUserTeamRole(ctx, teamID, actor.UserID)
	if err != nil {
		return "", apperrors.Internal("failed to load membership", err)
	}
	if role == "" && !actor.IsAdmin() {
		return "", apperrors.Forbidden("you are not a member of this team")
	}
	return role, nil
}
