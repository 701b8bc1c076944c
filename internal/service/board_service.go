package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/benbrewster85/risk-assessment-app-sub000/config"
	"github.com/benbrewster85/risk-assessment-app-sub000/internal/dto"
	"github.com/benbrewster85/risk-assessment-app-sub000/internal/model"
	"github.com/benbrewster85/risk-assessment-app-sub000/internal/repository"
	pkgerrors "github.com/benbrewster85/risk-assessment-app-sub000/pkg/errors"
)

var (
	ErrBoardRangeInvalid = errors.New("看板日期区间非法")
	ErrTeamNotFound      = errors.New("团队不存在")
)

// 放置负载种类：工作项（新建）或既有指派（移动）
const (
	DropPayloadWorkItem   = "work_item"
	DropPayloadAllocation = "allocation"
)

// BoardService 看板聚合层：一次调用装配整个网格窗口，并作为全部
// 拖放命令的统一入口（按负载种类分发到指派命令层）。
type BoardService interface {
	// GetBoard 装配窗口内看板全量数据，并按 shift_view 过滤指派与备注。
	// 修饰层（筛选器选项、备注、日事件、天气）取数失败降级为空。
	// read_only 按调用者角色逐次标注，不进入共享快照
	GetBoard(ctx context.Context, q *dto.BoardQuery, teamID, role string) (*dto.BoardResponse, error)
	// HandleDrop 拖放分发：work_item → 新建指派；allocation → 移动
	HandleDrop(ctx context.Context, req *dto.DropRequest, teamID, role string) (*dto.AllocationResponse, error)
	// RemoveAllocation 拖出网格/删除按钮触发
	RemoveAllocation(ctx context.Context, id, teamID, role string) error
	// BulkAssign 区间批量指派（覆盖式）
	BulkAssign(ctx context.Context, req *dto.BulkAssignRequest, teamID, role string) (*dto.BulkAssignResponse, error)
	// InvalidateTeam 丢弃团队的全部看板快照（注记变更后由外部调用）
	InvalidateTeam(teamID string)
}

type boardService struct {
	cfg           *config.Config
	repo          *repository.Repository
	catalogSvc    CatalogService
	allocationSvc AllocationService
	annotationSvc AnnotationService
	weatherSvc    WeatherService
	snapshots     *gocache.Cache
	logger        *zap.Logger
}

// NewBoardService 创建 BoardService 实例
func NewBoardService(
	cfg *config.Config,
	repo *repository.Repository,
	catalogSvc CatalogService,
	allocationSvc AllocationService,
	annotationSvc AnnotationService,
	weatherSvc WeatherService,
	logger *zap.Logger,
) BoardService {
	return &boardService{
		cfg:           cfg,
		repo:          repo,
		catalogSvc:    catalogSvc,
		allocationSvc: allocationSvc,
		annotationSvc: annotationSvc,
		weatherSvc:    weatherSvc,
		snapshots:     gocache.New(cfg.Board.SnapshotTTL, 2*cfg.Board.SnapshotTTL),
		logger:        logger,
	}
}

// roleCanEdit viewer 只读，admin/editor 可写
func roleCanEdit(role string) bool {
	return role == model.RoleAdmin || role == model.RoleEditor
}

func snapshotKey(teamID, from, to, view string) string {
	return fmt.Sprintf("board:%s:%s:%s:%s", teamID, from, to, view)
}

func filterAllocationsByShift(allocs []dto.AllocationResponse, shift string) []dto.AllocationResponse {
	out := make([]dto.AllocationResponse, 0, len(allocs))
	for _, a := range allocs {
		if a.Shift == shift {
			out = append(out, a)
		}
	}
	return out
}

func filterNotesByShift(notes []dto.NoteResponse, shift string) []dto.NoteResponse {
	out := make([]dto.NoteResponse, 0, len(notes))
	for _, n := range notes {
		if n.Shift == shift {
			out = append(out, n)
		}
	}
	return out
}

func (s *boardService) InvalidateTeam(teamID string) {
	prefix := "board:" + teamID + ":"
	for key := range s.snapshots.Items() {
		if strings.HasPrefix(key, prefix) {
			s.snapshots.Delete(key)
		}
	}
}

// ════════════════════════════════════════════════════════════
// GetBoard
// ════════════════════════════════════════════════════════════

func (s *boardService) GetBoard(ctx context.Context, q *dto.BoardQuery, teamID, role string) (*dto.BoardResponse, error) {
	from, err := parseDay(q.From)
	if err != nil {
		return nil, ErrBoardRangeInvalid
	}
	to, err := parseDay(q.To)
	if err != nil {
		return nil, ErrBoardRangeInvalid
	}
	if to.Before(from) || int(to.Sub(from).Hours()/24) > s.cfg.Board.MaxRangeDay {
		return nil, ErrBoardRangeInvalid
	}

	view := q.ShiftView
	if view == "" {
		view = "both"
	}

	key := snapshotKey(teamID, q.From, q.To, view)
	if cached, ok := s.snapshots.Get(key); ok {
		out := *cached.(*dto.BoardResponse)
		out.ReadOnly = !roleCanEdit(role)
		return &out, nil
	}

	team, err := s.repo.Team.GetByID(ctx, teamID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, err
	}

	resp := &dto.BoardResponse{}

	// 六路数据并行装载。网格缺了资源/工作项/指派就无法渲染，这三路任一
	// 失败整体失败；筛选器选项、备注、日事件为修饰层，失败降级为空。
	var (
		wg   sync.WaitGroup
		errs [6]error
	)
	wg.Add(6)
	go func() {
		defer wg.Done()
		resp.Resources, errs[0] = s.catalogSvc.LoadResources(ctx, teamID)
	}()
	go func() {
		defer wg.Done()
		resp.WorkItems, errs[1] = s.catalogSvc.LoadWorkItems(ctx, teamID)
	}()
	go func() {
		defer wg.Done()
		resp.Allocations, errs[2] = s.allocationSvc.ListRange(ctx, teamID, from, to)
	}()
	go func() {
		defer wg.Done()
		var opts *dto.FilterOptionsResponse
		if opts, errs[3] = s.catalogSvc.LoadFilterOptions(ctx, teamID); opts != nil {
			resp.FilterOptions = *opts
		}
	}()
	go func() {
		defer wg.Done()
		resp.Notes, errs[4] = s.annotationSvc.ListNotes(ctx, teamID, from, to)
	}()
	go func() {
		defer wg.Done()
		resp.DayEvents, errs[5] = s.annotationSvc.ListDayEvents(ctx, teamID, from, to)
	}()
	wg.Wait()
	for _, e := range errs[:3] {
		if e != nil {
			return nil, e
		}
	}
	if errs[3] != nil {
		s.logger.Warn("筛选器选项装载失败，降级为空", zap.String("team_id", teamID), zap.Error(errs[3]))
		resp.FilterOptions = dto.FilterOptionsResponse{}
	}
	if errs[4] != nil {
		s.logger.Warn("备注装载失败，降级为空", zap.String("team_id", teamID), zap.Error(errs[4]))
		resp.Notes = nil
	}
	if errs[5] != nil {
		s.logger.Warn("日事件装载失败，降级为空", zap.String("team_id", teamID), zap.Error(errs[5]))
		resp.DayEvents = nil
	}
	resp.DayBackgrounds = s.annotationSvc.DayBackgrounds(resp.DayEvents)

	// 班次视图过滤：day/night 视图只展示对应班次的指派与备注；
	// 日事件按天生效，不随班次过滤
	if view != "both" {
		resp.Allocations = filterAllocationsByShift(resp.Allocations, view)
		resp.Notes = filterNotesByShift(resp.Notes, view)
	}

	// 天气装饰层：失败降级为空，不阻断看板
	weather, err := s.weatherSvc.Forecast(ctx, team, from, to)
	if err == nil {
		resp.Weather = weather
	}

	s.snapshots.Set(key, resp, gocache.DefaultExpiration)

	out := *resp
	out.ReadOnly = !roleCanEdit(role)
	return &out, nil
}

// ════════════════════════════════════════════════════════════
// 拖放命令入口
// ════════════════════════════════════════════════════════════

func (s *boardService) HandleDrop(ctx context.Context, req *dto.DropRequest, teamID, role string) (*dto.AllocationResponse, error) {
	if !roleCanEdit(role) {
		return nil, pkgerrors.ErrReadOnly
	}

	// 快照先失效再写库：写失败时下次读取回源，不会留下乐观假象
	s.InvalidateTeam(teamID)

	switch req.PayloadKind {
	case DropPayloadWorkItem:
		return s.allocationSvc.Create(ctx, req, teamID)
	case DropPayloadAllocation:
		return s.allocationSvc.Move(ctx, req)
	default:
		return nil, ErrInvalidDropTarget
	}
}

func (s *boardService) RemoveAllocation(ctx context.Context, id, teamID, role string) error {
	if !roleCanEdit(role) {
		return pkgerrors.ErrReadOnly
	}
	s.InvalidateTeam(teamID)
	return s.allocationSvc.Delete(ctx, id)
}

func (s *boardService) BulkAssign(ctx context.Context, req *dto.BulkAssignRequest, teamID, role string) (*dto.BulkAssignResponse, error) {
	if !roleCanEdit(role) {
		return nil, pkgerrors.ErrReadOnly
	}
	s.InvalidateTeam(teamID)
	return s.allocationSvc.BulkAssign(ctx, req, teamID)
}
