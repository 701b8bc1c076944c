package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/benbrewster85/risk-assessment-app-sub000/internal/dto"
	"github.com/benbrewster85/risk-assessment-app-sub000/internal/model"
)

func setupTestAnnotationService() (AnnotationService, *testRepos) {
	repos := newTestRepos()
	svc := NewAnnotationService(repos.toRepository(), zap.NewNop())
	return svc, repos
}

func baseNoteRequest(text string) *dto.SaveNoteRequest {
	return &dto.SaveNoteRequest{
		ResourceKind: ResourceKindPersonnel,
		ResourceID:   "p-1",
		Date:         "2026-03-02",
		Shift:        model.ShiftDay,
		Text:         text,
	}
}

func TestSaveNote_CreateUpdateDeleteCycle(t *testing.T) {
	svc, repos := setupTestAnnotationService()
	ctx := context.Background()

	// 新建
	created, err := svc.SaveNote(ctx, baseNoteRequest("带上全站仪"), testTeamID)
	if err != nil {
		t.Fatalf("新建备注失败: %v", err)
	}
	if created == nil || created.ID == "" {
		t.Fatal("新建备注应返回 id")
	}
	if repos.note.notes[created.ID].TeamID != testTeamID {
		t.Error("team_id 未设置")
	}

	// 更新
	req := baseNoteRequest("改带水准仪")
	req.NoteID = created.ID
	updated, err := svc.SaveNote(ctx, req, testTeamID)
	if err != nil {
		t.Fatalf("更新备注失败: %v", err)
	}
	if updated.ID != created.ID {
		t.Error("更新不应改变备注 id")
	}
	if updated.Text != "改带水准仪" {
		t.Errorf("文本未更新: %q", updated.Text)
	}

	// 清空文本 → 删除
	req = baseNoteRequest("   ")
	req.NoteID = created.ID
	resp, err := svc.SaveNote(ctx, req, testTeamID)
	if err != nil {
		t.Fatalf("清空文本保存失败: %v", err)
	}
	if resp != nil {
		t.Error("删除路径应返回 nil")
	}
	if len(repos.note.notes) != 0 {
		t.Error("备注应已删除")
	}
}

func TestSaveNote_EmptyTextWithoutIDIsNoop(t *testing.T) {
	svc, repos := setupTestAnnotationService()

	resp, err := svc.SaveNote(context.Background(), baseNoteRequest(""), testTeamID)
	if err != nil {
		t.Fatalf("SaveNote 失败: %v", err)
	}
	if resp != nil || len(repos.note.notes) != 0 {
		t.Error("空文本且无 id 时不得落库")
	}
}

func TestSaveNote_UpdateMissingNote(t *testing.T) {
	svc, _ := setupTestAnnotationService()

	req := baseNoteRequest("文本")
	req.NoteID = "missing"
	if _, err := svc.SaveNote(context.Background(), req, testTeamID); !errors.Is(err, ErrNoteNotFound) {
		t.Errorf("应返回 ErrNoteNotFound, got %v", err)
	}
}

func TestDayEvent_CreateAndList(t *testing.T) {
	svc, _ := setupTestAnnotationService()
	ctx := context.Background()

	created, err := svc.CreateDayEvent(ctx, &dto.CreateDayEventRequest{
		Date:  "2026-03-05",
		Text:  "全员安全培训",
		Type:  model.DayEventTypeEvent,
		Color: `"#ffcc00"`,
	}, testTeamID)
	if err != nil {
		t.Fatalf("创建日事件失败: %v", err)
	}
	if created.Color != "#ffcc00" {
		t.Errorf("颜色包裹引号应被清洗: %q", created.Color)
	}

	events, err := svc.ListDayEvents(ctx, testTeamID, testDay(1), testDay(7))
	if err != nil {
		t.Fatalf("ListDayEvents 失败: %v", err)
	}
	if len(events) != 1 {
		t.Errorf("应返回 1 条日事件, got %d", len(events))
	}
}

func TestDayBackgrounds_Precedence(t *testing.T) {
	svc, _ := setupTestAnnotationService()

	events := []dto.DayEventResponse{
		{ID: "e1", Date: "2026-03-05", Type: model.DayEventTypeHoliday, Color: "#holiday"},
		{ID: "e2", Date: "2026-03-05", Type: model.DayEventTypeBlocker, Color: "#blocker"},
		{ID: "e3", Date: "2026-03-05", Type: model.DayEventTypeEvent, Color: "#event"},
		{ID: "e4", Date: "2026-03-06", Type: model.DayEventTypeBlocker, Color: "#blocker"},
		{ID: "e5", Date: "2026-03-07", Type: model.DayEventTypeHoliday, Color: ""},
	}

	backgrounds := svc.DayBackgrounds(events)
	if backgrounds["2026-03-05"] != "#event" {
		t.Errorf("event 应胜出: %q", backgrounds["2026-03-05"])
	}
	if backgrounds["2026-03-06"] != "#blocker" {
		t.Errorf("blocker 应生效: %q", backgrounds["2026-03-06"])
	}
	if _, ok := backgrounds["2026-03-07"]; ok {
		t.Error("无颜色的事件不应产生背景")
	}
}
