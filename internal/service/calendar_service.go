package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/benbrewster85/risk-assessment-app-sub000/internal/model"
	"github.com/benbrewster85/risk-assessment-app-sub000/internal/repository"
)

var ErrPersonnelNotFound = errors.New("人员不存在")

// CalendarService 个人日历订阅源：把单个人员在窗口内的指派
// 渲染为 iCalendar (.ics)，供外部日历客户端订阅。
type CalendarService interface {
	PersonnelFeed(ctx context.Context, personnelID string, from, to time.Time) (string, error)
}

type calendarService struct {
	repo          *repository.Repository
	catalogSvc    CatalogService
	allocationSvc AllocationService
	logger        *zap.Logger
}

// NewCalendarService 创建 CalendarService 实例
func NewCalendarService(
	repo *repository.Repository,
	catalogSvc CatalogService,
	allocationSvc AllocationService,
	logger *zap.Logger,
) CalendarService {
	return &calendarService{
		repo:          repo,
		catalogSvc:    catalogSvc,
		allocationSvc: allocationSvc,
		logger:        logger,
	}
}

// shiftWindow 班次对应的当日起止时刻（UTC）
func shiftWindow(date time.Time, shift string) (time.Time, time.Time) {
	if shift == model.ShiftNight {
		start := time.Date(date.Year(), date.Month(), date.Day(), 19, 0, 0, 0, time.UTC)
		return start, start.Add(12 * time.Hour)
	}
	start := time.Date(date.Year(), date.Month(), date.Day(), 7, 0, 0, 0, time.UTC)
	return start, start.Add(12 * time.Hour)
}

func (s *calendarService) PersonnelFeed(ctx context.Context, personnelID string, from, to time.Time) (string, error) {
	person, err := s.repo.Personnel.GetByID(ctx, personnelID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrPersonnelNotFound
		}
		return "", err
	}

	allocations, err := s.allocationSvc.ListRange(ctx, person.TeamID, from, to)
	if err != nil {
		return "", err
	}
	workItems, err := s.catalogSvc.LoadWorkItems(ctx, person.TeamID)
	if err != nil {
		return "", err
	}
	resources, err := s.catalogSvc.LoadResources(ctx, person.TeamID)
	if err != nil {
		return "", err
	}

	nameIndex := make(map[string]string, len(workItems)+len(resources))
	for _, wi := range workItems {
		nameIndex[wi.ID] = wi.DisplayName
	}
	for _, r := range resources {
		nameIndex[r.ID] = r.DisplayName
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//fieldops-scheduler//EN")
	cal.SetName(person.DisplayName() + " 排班")

	now := time.Now().UTC()
	for _, a := range allocations {
		// 人员既可能是资源侧（项目/缺勤/挂载），也可能是挂载指派的对端
		if a.ResourceID != personnelID && a.CounterpartyID != personnelID {
			continue
		}

		date, err := parseDay(a.Date)
		if err != nil {
			continue
		}
		start, end := shiftWindow(date, a.Shift)

		summaryID := a.CounterpartyID
		if a.CounterpartyID == personnelID {
			summaryID = a.ResourceID
		}
		summary := nameIndex[summaryID]
		if summary == "" {
			summary = summaryID
		}

		event := cal.AddEvent(fmt.Sprintf("%s@fieldops-scheduler", a.ID))
		event.SetCreatedTime(now)
		event.SetDtStampTime(now)
		event.SetStartAt(start)
		event.SetEndAt(end)
		event.SetSummary(summary)
		event.SetDescription(fmt.Sprintf("班次: %s", a.Shift))
	}

	return cal.Serialize(), nil
}
