package event

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// EventFilter narrows a team's event listing. Nil bounds are open.
type EventFilter struct {
	From *time.Time
	To   *time.Time
}

// EventRepository is the persistence boundary for events and responses.
// Single-row lookups return (nil, nil) when nothing matches.
type EventRepository interface {
	CreateEvents(ctx context.Context, events []Event) error
	GetEventByID(ctx context.Context, id uint) (*Event, error)
	ListTeamEvents(ctx context.Context, teamID uint, filter EventFilter, page, limit int) ([]Event, int64, error)
	UpdateEvent(ctx context.Context, ev *Event) error
	DeleteEvent(ctx context.Context, id uint) error
	DeleteSeries(ctx context.Context, teamID uint, seriesID string) (int64, error)
	FutureEventIDs(ctx context.Context, teamID uint, now time.Time) ([]uint, error)

	InsertPending(ctx context.Context, rows []EventResponse) (int64, error)
	UpsertResponse(ctx context.Context, resp *EventResponse) error
	GetResponse(ctx context.Context, eventID, userID uint) (*EventResponse, error)
	ListResponses(ctx context.Context, eventID uint, userID *uint) ([]EventResponse, error)
	TeamStats(ctx context.Context, teamID uint, before time.Time) ([]MemberStats, error)
}

type eventRepository struct {
	db *gorm.DB
}

func NewEventRepository(db *gorm.DB) EventRepository {
	return &eventRepository{db: db}
}

func (r *eventRepository) CreateEvents(ctx context.Context, events []Event) error {
	if len(events) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Omit(clause.Associations).CreateInBatches(&events, 200).Error
}

func (r *eventRepository) GetEventByID(ctx context.Context, id uint) (*Event, error) {
	var ev Event
	if err := r.db.WithContext(ctx).First(&ev, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &ev, nil
}

func (r *eventRepository) ListTeamEvents(ctx context.Context, teamID uint, filter EventFilter, page, limit int) ([]Event, int64, error) {
	var events []Event
	var total int64

	query := r.db.WithContext(ctx).Model(&Event{}).Where("team_id = ?", teamID)
	if filter.From != nil {
		query = query.Where("start_time >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("start_time < ?", *filter.To)
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	offset := (page - 1) * limit
	if err := query.Order("start_time asc, id asc").Offset(offset).Limit(limit).Find(&events).Error; err != nil {
		return nil, 0, err
	}
	return events, total, nil
}

func (r *eventRepository) UpdateEvent(ctx context.Context, ev *Event) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(ev).Error
}

// DeleteEvent removes the event and its responses. Callers wanting atomicity
// pass a transaction-bound repository.
func (r *eventRepository) DeleteEvent(ctx context.Context, id uint) error {
	db := r.db.WithContext(ctx)
	if err := db.Where("event_id = ?", id).Delete(&EventResponse{}).Error; err != nil {
		return err
	}
	return db.Delete(&Event{}, id).Error
}

func (r *eventRepository) DeleteSeries(ctx context.Context, teamID uint, seriesID string) (int64, error) {
	db := r.db.WithContext(ctx)
	ids := db.Model(&Event{}).Select("id").Where("team_id = ? AND series_id = ?", teamID, seriesID)
	if err := db.Where("event_id IN (?)", ids).Delete(&EventResponse{}).Error; err != nil {
		return 0, err
	}
	result := db.Where("team_id = ? AND series_id = ?", teamID, seriesID).Delete(&Event{})
	return result.RowsAffected, result.Error
}

func (r *eventRepository) FutureEventIDs(ctx context.Context, teamID uint, now time.Time) ([]uint, error) {
	var ids []uint
	err := r.db.WithContext(ctx).Model(&Event{}).
		Where("team_id = ? AND start_time >= ?", teamID, now).
		Order("id").
		Pluck("id", &ids).Error
	return ids, err
}

// InsertPending inserts rows, skipping any (event, user) pair that already has
// a response, and returns the number inserted.
func (r *eventRepository) InsertPending(ctx context.Context, rows []EventResponse) (int64, error) {
	if len(rows) == 0 {
		return 0, nil
	}
	result := r.db.WithContext(ctx).Omit(clause.Associations).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "event_id"}, {Name: "user_id"}},
		DoNothing: true,
	}).CreateInBatches(&rows, 500)
	return result.RowsAffected, result.Error
}

// UpsertResponse writes resp in a single statement keyed on (event_id, user_id).
func (r *eventRepository) UpsertResponse(ctx context.Context, resp *EventResponse) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "event_id"}, {Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"status", "comment", "responded_at", "updated_at"}),
	}).Create(resp).Error
}

func (r *eventRepository) GetResponse(ctx context.Context, eventID, userID uint) (*EventResponse, error) {
	var resp EventResponse
	if err := r.db.WithContext(ctx).Where("event_id = ? AND user_id = ?", eventID, userID).First(&resp).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &resp, nil
}

// ListResponses returns every response of the event, or only userID's when set.
func (r *eventRepository) ListResponses(ctx context.Context, eventID uint, userID *uint) ([]EventResponse, error) {
	var out []EventResponse
	query := r.db.WithContext(ctx).Preload("User").Where("event_id = ?", eventID)
	if userID != nil {
		query = query.Where("user_id = ?", *userID)
	}
	err := query.Order("user_id").Find(&out).Error
	return out, err
}

func (r *eventRepository) TeamStats(ctx context.Context, teamID uint, before time.Time) ([]MemberStats, error) {
	var rows []struct {
		UserID uint
		Status string
		Count  int64
	}
	err := r.db.WithContext(ctx).Model(&EventResponse{}).
		Select("event_responses.user_id AS user_id, event_responses.status AS status, COUNT(*) AS count").
		Joins("JOIN events ON events.id = event_responses.event_id").
		Where("events.team_id = ? AND events.start_time < ?", teamID, before).
		Group("event_responses.user_id, event_responses.status").
		Order("event_responses.user_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	var stats []MemberStats
	index := make(map[uint]int)
	for _, row := range rows {
		i, ok := index[row.UserID]
		if !ok {
			i = len(stats)
			index[row.UserID] = i
			stats = append(stats, MemberStats{UserID: row.UserID})
		}
		s := &stats[i]
		switch row.Status {
		case StatusAccepted:
			s.Accepted += row.Count
		case StatusDeclined:
			s.Declined += row.Count
		case StatusTentative:
			s.Tentative += row.Count
		case StatusPending:
			s.Pending += row.Count
		}
		s.Total += row.Count
	}
	return stats, nil
}
