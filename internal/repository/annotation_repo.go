package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/benbrewster85/risk-assessment-app-sub000/internal/model"
)

// NoteRepository 排班备注数据访问接口
type NoteRepository interface {
	Create(ctx context.Context, note *model.ScheduleNote) error
	GetByID(ctx context.Context, id string) (*model.ScheduleNote, error)
	ListByTeamAndRange(ctx context.Context, teamID string, from, to time.Time) ([]model.ScheduleNote, error)
	UpdateText(ctx context.Context, id, text string) error
	Delete(ctx context.Context, id string) error
}

// DayEventRepository 日事件数据访问接口
type DayEventRepository interface {
	Create(ctx context.Context, event *model.DayEvent) error
	GetByID(ctx context.Context, id string) (*model.DayEvent, error)
	ListByTeamAndRange(ctx context.Context, teamID string, from, to time.Time) ([]model.DayEvent, error)
	Delete(ctx context.Context, id string) error
}

// ── Note Repository 实现 ──

type noteRepo struct {
	db *gorm.DB
}

func NewNoteRepo(db *gorm.DB) NoteRepository {
	return &noteRepo{db: db}
}

func (r *noteRepo) Create(ctx context.Context, note *model.ScheduleNote) error {
	return r.db.WithContext(ctx).Create(note).Error
}

func (r *noteRepo) GetByID(ctx context.Context, id string) (*model.ScheduleNote, error) {
	var note model.ScheduleNote
	err := r.db.WithContext(ctx).
		Where("note_id = ?", id).
		First(&note).Error
	if err != nil {
		return nil, err
	}
	return &note, nil
}

func (r *noteRepo) ListByTeamAndRange(ctx context.Context, teamID string, from, to time.Time) ([]model.ScheduleNote, error) {
	var notes []model.ScheduleNote
	err := r.db.WithContext(ctx).
		Where("team_id = ? AND date BETWEEN ? AND ?", teamID, from, to).
		Order("date ASC").
		Find(&notes).Error
	return notes, err
}

func (r *noteRepo) UpdateText(ctx context.Context, id, text string) error {
	result := r.db.WithContext(ctx).
		Model(&model.ScheduleNote{}).
		Where("note_id = ?", id).
		Update("text", text)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *noteRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("note_id = ?", id).
		Delete(&model.ScheduleNote{}).Error
}

// ── DayEvent Repository 实现 ──

type dayEventRepo struct {
	db *gorm.DB
}

func NewDayEventRepo(db *gorm.DB) DayEventRepository {
	return &dayEventRepo{db: db}
}

func (r *dayEventRepo) Create(ctx context.Context, event *model.DayEvent) error {
	return r.db.WithContext(ctx).Create(event).Error
}

func (r *dayEventRepo) GetByID(ctx context.Context, id string) (*model.DayEvent, error) {
	var event model.DayEvent
	err := r.db.WithContext(ctx).
		Where("day_event_id = ?", id).
		First(&event).Error
	if err != nil {
		return nil, err
	}
	return &event, nil
}

func (r *dayEventRepo) ListByTeamAndRange(ctx context.Context, teamID string, from, to time.Time) ([]model.DayEvent, error) {
	var events []model.DayEvent
	err := r.db.WithContext(ctx).
		Where("team_id = ? AND date BETWEEN ? AND ?", teamID, from, to).
		Order("date ASC, created_at ASC").
		Find(&events).Error
	return events, err
}

func (r *dayEventRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("day_event_id = ?", id).
		Delete(&model.DayEvent{}).Error
}
