package team

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/DhavalSuthar-24/squadup/internal/user"
	"github.com/DhavalSuthar-24/squadup/pkg/apperrors"
)

// MemberSeeder creates pending responses for a member who just joined a team.
// It runs inside the transaction that created the membership.
type MemberSeeder interface {
	SeedPendingForNewMember(ctx context.Context, tx *gorm.DB, teamID, userID uint) error
}

type CreateTeamRequest struct {
	Name        string `json:"name" binding:"required,min=2,max=100"`
	Description string `json:"description" binding:"max=1000"`
	Sport       string `json:"sport" binding:"max=50"`
}

type UpdateTeamRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=2,max=100"`
	Description *string `json:"description" binding:"omitempty,max=1000"`
	Sport       *string `json:"sport" binding:"omitempty,max=50"`
}

type AddMemberRequest struct {
	UserID       uint   `json:"user_id" binding:"required"`
	Role         string `json:"role" binding:"omitempty,oneof=trainer player staff"`
	JerseyNumber *int   `json:"jersey_number" binding:"omitempty,gte=0,lte=999"`
	Position     string `json:"position" binding:"max=50"`
}

type Service struct {
	db     *gorm.DB
	seeder MemberSeeder
	log    *zap.Logger
}

func NewService(db *gorm.DB, seeder MemberSeeder, log *zap.Logger) *Service {
	return &Service{db: db, seeder: seeder, log: log}
}

func (s *Service) repo() TeamRepository {
	return NewTeamRepository(s.db)
}

// CreateTeam is admin only.
func (s *Service) CreateTeam(ctx context.Context, actor user.Actor, req CreateTeamRequest) (*Team, error) {
	if !actor.IsAdmin() {
		return nil, apperrors.Forbidden("only admins can create teams")
	}
	t := &Team{
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		Sport:       req.Sport,
		CreatedByID: actor.UserID,
	}
	if err := s.repo().CreateTeam(ctx, t); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.Conflict("team name already exists")
		}
		return nil, apperrors.Internal("failed to create team", err)
	}
	s.log.Info("team created", zap.Uint("team_id", t.ID), zap.Uint("by", actor.UserID))
	return t, nil
}

func (s *Service) GetTeam(ctx context.Context, actor user.Actor, teamID uint) (*Team, error) {
	repo := s.repo()
	if _, err := RequireMember(ctx, repo, actor, teamID); err != nil {
		return nil, err
	}
	return RequireTeam(ctx, repo, teamID)
}

// ListTeams returns every team for admins and the caller's teams otherwise.
func (s *Service) ListTeams(ctx context.Context, actor user.Actor, page, limit int) ([]Team, int64, error) {
	var (
		teams []Team
		total int64
		err   error
	)
	if actor.IsAdmin() {
		teams, total, err = s.repo().GetAllTeams(ctx, page, limit)
	} else {
		teams, total, err = s.repo().GetTeamsByUserID(ctx, actor.UserID, page, limit)
	}
	if err != nil {
		return nil, 0, apperrors.Internal("failed to list teams", err)
	}
	return teams, total, nil
}

func (s *Service) UpdateTeam(ctx context.Context, actor user.Actor, teamID uint, req UpdateTeamRequest) (*Team, error) {
	repo := s.repo()
	if err := RequireTrainer(ctx, repo, actor, teamID); err != nil {
		return nil, err
	}
	t, err := RequireTeam(ctx, repo, teamID)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		t.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		t.Description = *req.Description
	}
	if req.Sport != nil {
		t.Sport = *req.Sport
	}
	if err := repo.UpdateTeam(ctx, t); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.Conflict("team name already exists")
		}
		return nil, apperrors.Internal("failed to update team", err)
	}
	return t, nil
}

func (s *Service) DeleteTeam(ctx context.Context, actor user.Actor, teamID uint) error {
	if !actor.IsAdmin() {
		return apperrors.Forbidden("only admins can delete teams")
	}
	repo := s.repo()
	if _, err := RequireTeam(ctx, repo, teamID); err != nil {
		return err
	}
	if err := repo.DeleteTeam(ctx, teamID); err != nil {
		return apperrors.Internal("failed to delete team", err)
	}
	return nil
}

// AssignTrainer makes userID a trainer of the team (admin only). An existing
// membership is promoted in place.
func (s *Service) AssignTrainer(ctx context.Context, actor user.Actor, teamID, userID uint) (*TeamMember, error) {
	if !actor.IsAdmin() {
		return nil, apperrors.Forbidden("only admins can assign trainers")
	}
	var member *TeamMember
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := NewTeamRepository(tx)
		if _, err := RequireTeam(ctx, repo, teamID); err != nil {
			return err
		}
		if err := s.requireUser(ctx, tx, userID); err != nil {
			return err
		}
		member = &TeamMember{TeamID: teamID, UserID: userID, Role: MemberRoleTrainer}
		if err := repo.UpsertTeamMemberRole(ctx, member); err != nil {
			return apperrors.Internal("failed to assign trainer", err)
		}
		return s.seeder.SeedPendingForNewMember(ctx, tx, teamID, userID)
	})
	if err != nil {
		return nil, err
	}
	return member, nil
}

// AddMember adds an existing user directly. Trainers may add players and staff,
// admins may add any role.
func (s *Service) AddMember(ctx context.Context, actor user.Actor, teamID uint, req AddMemberRequest) (*TeamMember, error) {
	role := req.Role
	if role == "" {
		role = MemberRolePlayer
	}
	if !ValidMemberRole(role) {
		return nil, apperrors.Validation("invalid member role")
	}
	if role == MemberRoleTrainer && !actor.IsAdmin() {
		return nil, apperrors.Forbidden("only admins can add trainers")
	}

	member := &TeamMember{
		TeamID:       teamID,
		UserID:       req.UserID,
		Role:         role,
		JerseyNumber: req.JerseyNumber,
		Position:     req.Position,
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := NewTeamRepository(tx)
		if err := RequireTrainer(ctx, repo, actor, teamID); err != nil {
			return err
		}
		if err := s.requireUser(ctx, tx, req.UserID); err != nil {
			return err
		}
		if err := repo.AddTeamMember(ctx, member); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return apperrors.Conflict("user is already a member of this team")
			}
			return apperrors.Internal("failed to add member", err)
		}
		return s.seeder.SeedPendingForNewMember(ctx, tx, teamID, req.UserID)
	})
	if err != nil {
		return nil, err
	}
	s.log.Info("member added", zap.Uint("team_id", teamID), zap.Uint("user_id", req.UserID), zap.String("role", role))
	return member, nil
}

func (s *Service) ListMembers(ctx context.Context, actor user.Actor, teamID uint, page, limit int) ([]TeamMember, int64, error) {
	repo := s.repo()
	if _, err := RequireMember(ctx, repo, actor, teamID); err != nil {
		return nil, 0, err
	}
	members, total, err := repo.GetTeamMembers(ctx, teamID, page, limit)
	if err != nil {
		return nil, 0, apperrors.Internal("failed to list members", err)
	}
	return members, total, nil
}

// RemoveMember deletes a membership. Only admins can remove trainers.
func (s *Service) RemoveMember(ctx context.Context, actor user.Actor, teamID, userID uint) error {
	repo := s.repo()
	if err := RequireTrainer(ctx, repo, actor, teamID); err != nil {
		return err
	}
	role, err := repo.GetUserTeamRole(ctx, teamID, userID)
	if err != nil {
		return apperrors.Internal("failed to load membership", err)
	}
	if role == "" {
		return apperrors.NotFound("team member")
	}
	if role == MemberRoleTrainer && !actor.IsAdmin() {
		return apperrors.Forbidden("only admins can remove trainers")
	}
	if _, err := repo.RemoveTeamMember(ctx, teamID, userID); err != nil {
		return apperrors.Internal("failed to remove member", err)
	}
	return nil
}

func (s *Service) requireUser(ctx context.Context, tx *gorm.DB, userID uint) error {
	u, err := user.NewUserRepository(tx).GetUserByID(ctx, userID)
	if err != nil {
		return apperrors.Internal("failed to load user", err)
	}
	if u == nil {
		return apperrors.NotFound("user")
	}
	return nil
}
