package team

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// TeamRepository defines the interface for team data operations.
// Single-row lookups return (nil, nil) when nothing matches.
type TeamRepository interface {
	// Team operations
	CreateTeam(ctx context.Context, team *Team) error
	GetTeamByID(ctx context.Context, id uint) (*Team, error)
	GetTeamByName(ctx context.Context, name string) (*Team, error)
	GetAllTeams(ctx context.Context, page, limit int) ([]Team, int64, error)
	GetTeamsByUserID(ctx context.Context, userID uint, page, limit int) ([]Team, int64, error)
	UpdateTeam(ctx context.Context, team *Team) error
	DeleteTeam(ctx context.Context, id uint) error
	CountTeams(ctx context.Context, ids []uint) (int64, error)

	// TeamMember operations
	AddTeamMember(ctx context.Context, member *TeamMember) error
	UpsertTeamMemberRole(ctx context.Context, member *TeamMember) error
	GetTeamMember(ctx context.Context, teamID, userID uint) (*TeamMember, error)
	GetTeamMembers(ctx context.Context, teamID uint, page, limit int) ([]TeamMember, int64, error)
	GetTeamMemberIDs(ctx context.Context, teamID uint) ([]uint, error)
	RemoveTeamMember(ctx context.Context, teamID, userID uint) (bool, error)
	GetUserTeamRole(ctx context.Context, teamID, userID uint) (string, error)
}

type teamRepository struct {
	db *gorm.DB
}

// NewTeamRepository creates a new instance of TeamRepository
func NewTeamRepository(db *gorm.DB) TeamRepository {
	return &teamRepository{db: db}
}

// --- Team Operations ---

func (r *teamRepository) CreateTeam(ctx context.Context, team *Team) error {
	return r.db.WithContext(ctx).Create(team).Error
}

func (r *teamRepository) GetTeamByID(ctx context.Context, id uint) (*Team, error) {
	var team Team
	if err := r.db.WithContext(ctx).First(&team, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &team, nil
}

func (r *teamRepository) GetTeamByName(ctx context.Context, name string) (*Team, error) {
	var team Team
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&team).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &team, nil
}

func (r *teamRepository) GetAllTeams(ctx context.Context, page, limit int) ([]Team, int64, error) {
	var teams []Team
	var total int64

	query := r.db.WithContext(ctx).Model(&Team{})
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	offset := (page - 1) * limit
	if err := query.Offset(offset).Limit(limit).Order("name asc").Find(&teams).Error; err != nil {
		return nil, 0, err
	}
	return teams, total, nil
}

func (r *teamRepository) GetTeamsByUserID(ctx context.Context, userID uint, page, limit int) ([]Team, int64, error) {
	var teams []Team
	var total int64

	query := r.db.WithContext(ctx).Model(&Team{}).
		Joins("JOIN team_members ON team_members.team_id = teams.id").
		Where("team_members.user_id = ?", userID)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	offset := (page - 1) * limit
	if err := query.Offset(offset).Limit(limit).Order("teams.name asc").Find(&teams).Error; err != nil {
		return nil, 0, err
	}
	return teams, total, nil
}

func (r *teamRepository) UpdateTeam(ctx context.Context, team *Team) error {
	return r.db.WithContext(ctx).Save(team).Error
}

func (r *teamRepository) DeleteTeam(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&Team{}, id).Error
}

func (r *teamRepository) CountTeams(ctx context.Context, ids []uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&Team{}).Where("id IN ?", ids).Count(&count).Error
	return count, err
}

// --- TeamMember Operations ---

// AddTeamMember inserts a new membership; a duplicate surfaces as gorm.ErrDuplicatedKey.
func (r *teamRepository) AddTeamMember(ctx context.Context, member *TeamMember) error {
	if member.JoinedAt.IsZero() {
		member.JoinedAt = time.Now().UTC()
	}
	return r.db.WithContext(ctx).Create(member).Error
}

// UpsertTeamMemberRole creates the membership or overwrites its role.
func (r *teamRepository) UpsertTeamMemberRole(ctx context.Context, member *TeamMember) error {
	if member.JoinedAt.IsZero() {
		member.JoinedAt = time.Now().UTC()
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "team_id"}, {Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"role", "updated_at"}),
	}).Create(member).Error
}

func (r *teamRepository) GetTeamMember(ctx context.Context, teamID, userID uint) (*TeamMember, error) {
	var member TeamMember
	if err := r.db.WithContext(ctx).Where("team_id = ? AND user_id = ?", teamID, userID).First(&member).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &member, nil
}

func (r *teamRepository) GetTeamMembers(ctx context.Context, teamID uint, page, limit int) ([]TeamMember, int64, error) {
	var members []TeamMember
	var total int64
	query := r.db.WithContext(ctx).Model(&TeamMember{}).Where("team_id = ?", teamID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	offset := (page - 1) * limit
	if err := query.Preload("User").Offset(offset).Limit(limit).Order("joined_at asc, id asc").Find(&members).Error; err != nil {
		return nil, 0, err
	}
	return members, total, nil
}

func (r *teamRepository) GetTeamMemberIDs(ctx context.Context, teamID uint) ([]uint, error) {
	var ids []uint
	err := r.db.WithContext(ctx).Model(&TeamMember{}).
		Where("team_id = ?", teamID).
		Order("user_id").
		Pluck("user_id", &ids).Error
	return ids, err
}

func (r *teamRepository) RemoveTeamMember(ctx context.Context, teamID, userID uint) (bool, error) {
	result := r.db.WithContext(ctx).Where("team_id = ? AND user_id = ?", teamID, userID).Delete(&TeamMember{})
	return result.RowsAffected > 0, result.Error
}

// GetUserTeamRole returns "" for non-members.
func (r *teamRepository) GetUserTeamRole(ctx context.Context, teamID, userID uint) (string, error) {
	var member TeamMember
	err := r.db.WithContext(ctx).Select("role").Where("team_id = ? AND user_id = ?", teamID, userID).First(&member).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", err
	}
	return member.Role, nil
}
