package invite

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// InviteRepository persists both invite kinds.
// Single-row lookups return (nil, nil) when nothing matches.
type InviteRepository interface {
	CreateTeamInvite(ctx context.Context, inv *TeamInvite) error
	GetTeamInviteByID(ctx context.Context, id uint) (*TeamInvite, error)
	GetTeamInviteByToken(ctx context.Context, token string) (*TeamInvite, error)
	ListTeamInvites(ctx context.Context, teamID uint) ([]TeamInvite, error)
	ConsumeTeamInvite(ctx context.Context, id uint, now time.Time) (bool, error)
	DeleteTeamInvite(ctx context.Context, id uint) error

	CreateTrainerInvite(ctx context.Context, inv *TrainerInvite) error
	GetTrainerInviteByID(ctx context.Context, id uint) (*TrainerInvite, error)
	GetTrainerInviteByToken(ctx context.Context, token string) (*TrainerInvite, error)
	ListTrainerInvites(ctx context.Context) ([]TrainerInvite, error)
	ConsumeTrainerInvite(ctx context.Context, id uint, now time.Time) (bool, error)
	SetTrainerInviteUser(ctx context.Context, id, userID uint) error
	DeleteTrainerInvite(ctx context.Context, id uint) error
}

type inviteRepository struct {
	db *gorm.DB
}

func NewInviteRepository(db *gorm.DB) InviteRepository {
	return &inviteRepository{db: db}
}

func (r *inviteRepository) CreateTeamInvite(ctx context.Context, inv *TeamInvite) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(inv).Error
}

func (r *inviteRepository) GetTeamInviteByID(ctx context.Context, id uint) (*TeamInvite, error) {
	var inv TeamInvite
	return first(r.db.WithContext(ctx).Where("id = ?", id), &inv)
}

func (r *inviteRepository) GetTeamInviteByToken(ctx context.Context, token string) (*TeamInvite, error) {
	var inv TeamInvite
	return first(r.db.WithContext(ctx).Where("token = ?", token), &inv)
}

func (r *inviteRepository) ListTeamInvites(ctx context.Context, teamID uint) ([]TeamInvite, error) {
	var out []TeamInvite
	err := r.db.WithContext(ctx).Where("team_id = ?", teamID).Order("created_at desc, id desc").Find(&out).Error
	return out, err
}

// ConsumeTeamInvite increments used_count only while the invite is usable and
// reports whether it did. Concurrent callers cannot exceed max_uses.
func (r *inviteRepository) ConsumeTeamInvite(ctx context.Context, id uint, now time.Time) (bool, error) {
	result := r.db.WithContext(ctx).Model(&TeamInvite{}).
		Where("id = ?", id).
		Where("(max_uses IS NULL OR used_count < max_uses)").
		Where("(expires_at IS NULL OR expires_at > ?)", now).
		Updates(map[string]interface{}{
			"used_count": gorm.Expr("used_count + 1"),
			"updated_at": now,
		})
	return result.RowsAffected == 1, result.Error
}

func (r *inviteRepository) DeleteTeamInvite(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&TeamInvite{}, id).Error
}

func (r *inviteRepository) CreateTrainerInvite(ctx context.Context, inv *TrainerInvite) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(inv).Error
}

func (r *inviteRepository) GetTrainerInviteByID(ctx context.Context, id uint) (*TrainerInvite, error) {
	var inv TrainerInvite
	return first(r.db.WithContext(ctx).Where("id = ?", id), &inv)
}

func (r *inviteRepository) GetTrainerInviteByToken(ctx context.Context, token string) (*TrainerInvite, error) {
	var inv TrainerInvite
	return first(r.db.WithContext(ctx).Where("token = ?", token), &inv)
}

func (r *inviteRepository) ListTrainerInvites(ctx context.Context) ([]TrainerInvite, error) {
	var out []TrainerInvite
	err := r.db.WithContext(ctx).Order("created_at desc, id desc").Find(&out).Error
	return out, err
}

// ConsumeTrainerInvite flips used_count from 0 to 1 at most once.
func (r *inviteRepository) ConsumeTrainerInvite(ctx context.Context, id uint, now time.Time) (bool, error) {
	result := r.db.WithContext(ctx).Model(&TrainerInvite{}).
		Where("id = ? AND used_count < ?", id, TrainerInviteMaxUses).
		Where("(expires_at IS NULL OR expires_at > ?)", now).
		Updates(map[string]interface{}{
			"used_count": gorm.Expr("used_count + 1"),
			"updated_at": now,
		})
	return result.RowsAffected == 1, result.Error
}

func (r *inviteRepository) SetTrainerInviteUser(ctx context.Context, id, userID uint) error {
	return r.db.WithContext(ctx).Model(&TrainerInvite{}).Where("id = ?", id).Update("user_id", userID).Error
}

func (r *inviteRepository) DeleteTrainerInvite(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&TrainerInvite{}, id).Error
}

func first[T any](query *gorm.DB, dest *T) (*T, error) {
	if err := query.First(dest).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return dest, nil
}
