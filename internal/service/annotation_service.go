package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/benbrewster85/risk-assessment-app-sub000/internal/dto"
	"github.com/benbrewster85/risk-assessment-app-sub000/internal/model"
	"github.com/benbrewster85/risk-assessment-app-sub000/internal/repository"
)

// ── 注记模块业务错误 ──

var (
	ErrNoteNotFound     = errors.New("备注不存在")
	ErrDayEventNotFound = errors.New("日事件不存在")
	ErrInvalidNoteDate  = errors.New("备注日期格式非法")
)

// AnnotationService 注记业务接口：单元格备注与日历日事件
type AnnotationService interface {
	// SaveNote 统一保存入口（新建/更新/删除三合一）：
	//   note_id 空 + 文本非空 → 新建
	//   note_id 有 + 文本非空 → 更新文本
	//   note_id 有 + 文本为空 → 删除
	//   note_id 空 + 文本为空 → 不落库，返回 nil
	SaveNote(ctx context.Context, req *dto.SaveNoteRequest, teamID string) (*dto.NoteResponse, error)
	// DeleteNote 按 id 删除备注
	DeleteNote(ctx context.Context, id string) error
	// ListNotes 窗口内全部备注
	ListNotes(ctx context.Context, teamID string, from, to time.Time) ([]dto.NoteResponse, error)

	// CreateDayEvent 新建日事件（同一日期允许多条）
	CreateDayEvent(ctx context.Context, req *dto.CreateDayEventRequest, teamID string) (*dto.DayEventResponse, error)
	// DeleteDayEvent 按 id 删除日事件
	DeleteDayEvent(ctx context.Context, id string) error
	// ListDayEvents 窗口内全部日事件
	ListDayEvents(ctx context.Context, teamID string, from, to time.Time) ([]dto.DayEventResponse, error)
	// DayBackgrounds 窗口内各日期的背景色提示，取优先级最高的日事件
	// 颜色：event > blocker > holiday，同级取后建的
	DayBackgrounds(events []dto.DayEventResponse) map[string]string
}

type annotationService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewAnnotationService 创建 AnnotationService 实例
func NewAnnotationService(repo *repository.Repository, logger *zap.Logger) AnnotationService {
	return &annotationService{repo: repo, logger: logger}
}

func toNoteResponse(n *model.ScheduleNote) *dto.NoteResponse {
	return &dto.NoteResponse{
		ID:           n.NoteID,
		ResourceKind: n.ResourceKind,
		ResourceID:   n.ResourceID,
		Date:         formatDay(n.Date),
		Shift:        n.Shift,
		Text:         n.Text,
	}
}

func toDayEventResponse(e *model.DayEvent) *dto.DayEventResponse {
	return &dto.DayEventResponse{
		ID:    e.DayEventID,
		Date:  formatDay(e.Date),
		Text:  e.Text,
		Type:  e.Type,
		Color: sanitizeColor(e.Color),
	}
}

// ════════════════════════════════════════════════════════════
// 备注
// ════════════════════════════════════════════════════════════

func (s *annotationService) SaveNote(ctx context.Context, req *dto.SaveNoteRequest, teamID string) (*dto.NoteResponse, error) {
	text := strings.TrimSpace(req.Text)

	// 文本为空：有 id 则删除，无 id 则静默跳过
	if text == "" {
		if req.NoteID == "" {
			return nil, nil
		}
		if err := s.DeleteNote(ctx, req.NoteID); err != nil {
			return nil, err
		}
		return nil, nil
	}

	if req.NoteID != "" {
		if err := s.repo.Note.UpdateText(ctx, req.NoteID, text); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrNoteNotFound
			}
			return nil, err
		}
		note, err := s.repo.Note.GetByID(ctx, req.NoteID)
		if err != nil {
			return nil, err
		}
		return toNoteResponse(note), nil
	}

	date, err := parseDay(req.Date)
	if err != nil {
		return nil, ErrInvalidNoteDate
	}
	note := &model.ScheduleNote{
		TeamID:       teamID,
		ResourceKind: req.ResourceKind,
		ResourceID:   req.ResourceID,
		Date:         date,
		Shift:        req.Shift,
		Text:         text,
	}
	if err := s.repo.Note.Create(ctx, note); err != nil {
		s.logger.Error("创建备注失败", zap.Error(err))
		return nil, err
	}
	return toNoteResponse(note), nil
}

func (s *annotationService) DeleteNote(ctx context.Context, id string) error {
	if err := s.repo.Note.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNoteNotFound
		}
		return err
	}
	return nil
}

func (s *annotationService) ListNotes(ctx context.Context, teamID string, from, to time.Time) ([]dto.NoteResponse, error) {
	notes, err := s.repo.Note.ListByTeamAndRange(ctx, teamID, from, to)
	if err != nil {
		return nil, err
	}
	out := make([]dto.NoteResponse, 0, len(notes))
	for i := range notes {
		out = append(out, *toNoteResponse(&notes[i]))
	}
	return out, nil
}

// ════════════════════════════════════════════════════════════
// 日事件
// ════════════════════════════════════════════════════════════

func (s *annotationService) CreateDayEvent(ctx context.Context, req *dto.CreateDayEventRequest, teamID string) (*dto.DayEventResponse, error) {
	date, err := parseDay(req.Date)
	if err != nil {
		return nil, ErrInvalidNoteDate
	}
	event := &model.DayEvent{
		TeamID: teamID,
		Date:   date,
		Text:   strings.TrimSpace(req.Text),
		Type:   req.Type,
		Color:  sanitizeColor(req.Color),
	}
	if err := s.repo.DayEvent.Create(ctx, event); err != nil {
		s.logger.Error("创建日事件失败", zap.Error(err))
		return nil, err
	}
	return toDayEventResponse(event), nil
}

func (s *annotationService) DeleteDayEvent(ctx context.Context, id string) error {
	if err := s.repo.DayEvent.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrDayEventNotFound
		}
		return err
	}
	return nil
}

func (s *annotationService) ListDayEvents(ctx context.Context, teamID string, from, to time.Time) ([]dto.DayEventResponse, error) {
	events, err := s.repo.DayEvent.ListByTeamAndRange(ctx, teamID, from, to)
	if err != nil {
		return nil, err
	}
	out := make([]dto.DayEventResponse, 0, len(events))
	for i := range events {
		out = append(out, *toDayEventResponse(&events[i]))
	}
	return out, nil
}

// dayEventPriority 背景色竞争优先级，值大者胜
func dayEventPriority(eventType string) int {
	switch eventType {
	case model.DayEventTypeEvent:
		return 3
	case model.DayEventTypeBlocker:
		return 2
	case model.DayEventTypeHoliday:
		return 1
	default:
		return 0
	}
}

func (s *annotationService) DayBackgrounds(events []dto.DayEventResponse) map[string]string {
	type winner struct {
		priority int
		color    string
	}
	best := make(map[string]winner)
	for _, e := range events {
		if e.Color == "" {
			continue
		}
		p := dayEventPriority(e.Type)
		if cur, ok := best[e.Date]; !ok || p >= cur.priority {
			best[e.Date] = winner{priority: p, color: e.Color}
		}
	}
	out := make(map[string]string, len(best))
	for date, w := range best {
		out[date] = w.color
	}
	return out
}
