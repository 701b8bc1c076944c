package service

import (
	"context"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/benbrewster85/risk-assessment-app-sub000/internal/dto"
	"github.com/benbrewster85/risk-assessment-app-sub000/internal/model"
)

func setupExportFixtures(t *testing.T) (ExportService, CalendarService, *testRepos) {
	t.Helper()
	repos := newTestRepos()
	repoAgg := repos.toRepository()
	logger := zap.NewNop()

	catalogSvc := NewCatalogService(repoAgg, logger)
	allocationSvc := NewAllocationService(testConfig(), repoAgg, logger)
	exportSvc := NewExportService(catalogSvc, allocationSvc, logger)
	calendarSvc := NewCalendarService(repoAgg, catalogSvc, allocationSvc, logger)

	repos.personnel.people["p-1"] = &model.Personnel{
		PersonnelID: "p-1", TeamID: testTeamID, FirstName: "建国", LastName: "李",
	}
	repos.project.projects["proj-1"] = &model.Project{
		ProjectID: "proj-1", TeamID: testTeamID, Name: "河堤勘测", Status: model.ProjectStatusActive,
	}

	if _, err := allocationSvc.Create(context.Background(), &dto.DropRequest{
		PayloadKind:        DropPayloadWorkItem,
		ItemType:           AssignmentTypeProject,
		ItemID:             "proj-1",
		TargetResourceID:   "p-1",
		TargetResourceKind: ResourceKindPersonnel,
		Date:               "2026-03-03",
		Shift:              model.ShiftDay,
	}, testTeamID); err != nil {
		t.Fatalf("seed 指派失败: %v", err)
	}
	return exportSvc, calendarSvc, repos
}

func TestExportBoard_ProducesWorkbook(t *testing.T) {
	exportSvc, _, _ := setupExportFixtures(t)

	buf, filename, err := exportSvc.ExportBoard(context.Background(), testTeamID, testDay(2), testDay(6))
	if err != nil {
		t.Fatalf("ExportBoard 失败: %v", err)
	}
	if buf.Len() == 0 {
		t.Error("导出内容为空")
	}
	if filename != "board_2026-03-02_2026-03-06.xlsx" {
		t.Errorf("文件名错误: %q", filename)
	}
}

func TestExportBoard_RejectsInvertedRange(t *testing.T) {
	exportSvc, _, _ := setupExportFixtures(t)

	if _, _, err := exportSvc.ExportBoard(context.Background(), testTeamID, testDay(6), testDay(2)); err == nil {
		t.Error("倒置区间应拒绝")
	}
}

func TestPersonnelFeed_ContainsAssignments(t *testing.T) {
	_, calendarSvc, _ := setupExportFixtures(t)

	feed, err := calendarSvc.PersonnelFeed(context.Background(), "p-1", testDay(1), testDay(7))
	if err != nil {
		t.Fatalf("PersonnelFeed 失败: %v", err)
	}
	if !strings.Contains(feed, "BEGIN:VCALENDAR") {
		t.Error("输出不是合法 iCalendar")
	}
	if !strings.Contains(feed, "BEGIN:VEVENT") {
		t.Error("窗口内的指派应产出事件")
	}
	if !strings.Contains(feed, "河堤勘测") {
		t.Error("事件摘要应为指派对象名称")
	}
}

func TestPersonnelFeed_UnknownPersonnel(t *testing.T) {
	_, calendarSvc, _ := setupExportFixtures(t)

	if _, err := calendarSvc.PersonnelFeed(context.Background(), "missing", testDay(1), testDay(7)); err != ErrPersonnelNotFound {
		t.Errorf("应返回 ErrPersonnelNotFound, got %v", err)
	}
}
