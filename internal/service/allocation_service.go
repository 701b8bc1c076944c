package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/benbrewster85/risk-assessment-app-sub000/config"
	"github.com/benbrewster85/risk-assessment-app-sub000/internal/dto"
	"github.com/benbrewster85/risk-assessment-app-sub000/internal/model"
	"github.com/benbrewster85/risk-assessment-app-sub000/internal/repository"
)

// ── 指派模块业务错误 ──

var (
	ErrAllocationNotFound      = errors.New("指派不存在")
	ErrInvalidDropTarget       = errors.New("放置目标不完整或非法")
	ErrBulkRangeInvalid        = errors.New("批量指派日期区间非法")
	ErrAbsenceTypeNotFound     = errors.New("缺勤类型不存在")
	ErrAbsenceCategoryMismatch = errors.New("该缺勤类型不适用于此资源种类")
)

// AllocationService 指派命令层业务接口
//
// 指派生命周期：不存在 →(Create)→ 已持久化 →(Move)*→ 已持久化
// →(Delete)→ 不存在；批量指派的覆盖式清理可将任何已持久化指派
// 直接删除（作为同资源批量操作的副作用）。
type AllocationService interface {
	// Create 由工作项/对端资源卡片放置到单元格触发
	Create(ctx context.Context, req *dto.DropRequest, teamID string) (*dto.AllocationResponse, error)
	// Move 由既有指派卡片拖到新单元格触发：同一 id，新资源/日期/班次，
	// 类型与对端不变
	Move(ctx context.Context, req *dto.DropRequest) (*dto.AllocationResponse, error)
	// Delete 无条件按 id 删除
	Delete(ctx context.Context, id string) error
	// BulkAssign 区间批量指派：先在一个事务内覆盖式删除该资源在区间内
	// 的既有指派，再按天×班次批量插入
	BulkAssign(ctx context.Context, req *dto.BulkAssignRequest, teamID string) (*dto.BulkAssignResponse, error)
	// ListRange 加载团队在日期窗口内的全部指派（损坏行丢弃不中断）
	ListRange(ctx context.Context, teamID string, from, to time.Time) ([]dto.AllocationResponse, error)
}

type allocationService struct {
	cfg    *config.Config
	repo   *repository.Repository
	logger *zap.Logger
}

// NewAllocationService 创建 AllocationService 实例
func NewAllocationService(cfg *config.Config, repo *repository.Repository, logger *zap.Logger) AllocationService {
	return &allocationService{cfg: cfg, repo: repo, logger: logger}
}

// parseDay 解析 2006-01-02 日期（UTC 零点）
func parseDay(s string) (time.Time, error) {
	return time.Parse("2006-01-02", s)
}

func formatDay(t time.Time) string {
	return t.Format("2006-01-02")
}

// toAllocationResponse Assignment → DTO
func toAllocationResponse(a *Assignment) *dto.AllocationResponse {
	return &dto.AllocationResponse{
		ID:             a.ID,
		Type:           a.Type,
		Date:           formatDay(a.Date),
		Shift:          a.Shift,
		ResourceID:     a.ResourceID,
		ResourceKind:   a.ResourceKind,
		CounterpartyID: a.CounterpartyID,
	}
}

// checkAbsenceCategory 校验缺勤类型的 category 是否允许落在该资源种类上
func (s *allocationService) checkAbsenceCategory(ctx context.Context, absenceTypeID, targetResourceKind string) error {
	at, err := s.repo.AbsenceType.GetByID(ctx, absenceTypeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAbsenceTypeNotFound
		}
		return err
	}
	if at.Category != targetResourceKind {
		return ErrAbsenceCategoryMismatch
	}
	return nil
}

// ════════════════════════════════════════════════════════════
// Create
// ════════════════════════════════════════════════════════════

func (s *allocationService) Create(ctx context.Context, req *dto.DropRequest, teamID string) (*dto.AllocationResponse, error) {
	if req.ItemType == "" || req.ItemID == "" ||
		req.TargetResourceID == "" || req.Date == "" || req.Shift == "" {
		return nil, ErrInvalidDropTarget
	}

	date, err := parseDay(req.Date)
	if err != nil {
		return nil, ErrInvalidDropTarget
	}

	if req.ItemType == AssignmentTypeAbsence {
		if err := s.checkAbsenceCategory(ctx, req.ItemID, req.TargetResourceKind); err != nil {
			return nil, err
		}
	}

	a := &Assignment{
		Type:           req.ItemType,
		Date:           date,
		Shift:          req.Shift,
		ResourceID:     req.TargetResourceID,
		ResourceKind:   req.TargetResourceKind,
		CounterpartyID: req.ItemID,
	}

	row, err := encodeAllocation(a, req.TargetResourceKind)
	if err != nil {
		if errors.Is(err, ErrInvalidTarget) {
			return nil, ErrInvalidDropTarget
		}
		return nil, err
	}
	row.TeamID = teamID

	if err := s.repo.Allocation.Create(ctx, row); err != nil {
		s.logger.Error("插入指派失败", zap.Error(err))
		return nil, err
	}

	// 解码插入结果（id 由存储层生成），保证返回形态与列表加载一致
	decoded, err := decodeAllocation(row)
	if err != nil {
		s.logger.Error("解码新插入指派失败", zap.String("allocation_id", row.AllocationID), zap.Error(err))
		return nil, err
	}
	return toAllocationResponse(decoded), nil
}

// ════════════════════════════════════════════════════════════
// Move
// ════════════════════════════════════════════════════════════

func (s *allocationService) Move(ctx context.Context, req *dto.DropRequest) (*dto.AllocationResponse, error) {
	if req.AllocationID == "" || req.TargetResourceID == "" || req.Date == "" || req.Shift == "" {
		return nil, ErrInvalidDropTarget
	}

	date, err := parseDay(req.Date)
	if err != nil {
		return nil, ErrInvalidDropTarget
	}

	row, err := s.repo.Allocation.GetByID(ctx, req.AllocationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAllocationNotFound
		}
		return nil, err
	}

	current, err := decodeAllocation(row)
	if err != nil {
		return nil, err
	}

	// 组装移动后的指派：类型与对端保留，资源/日期/班次替换。
	// 挂载类指派落在设备/车辆行时，解码约定的"资源"（人员）变为对端。
	moved := &Assignment{
		ID:             current.ID,
		Type:           current.Type,
		Date:           date,
		Shift:          req.Shift,
		ResourceID:     req.TargetResourceID,
		ResourceKind:   req.TargetResourceKind,
		CounterpartyID: current.CounterpartyID,
	}
	if (current.Type == AssignmentTypeEquipment && req.TargetResourceKind == ResourceKindEquipment) ||
		(current.Type == AssignmentTypeVehicle && req.TargetResourceKind == ResourceKindVehicle) {
		moved.CounterpartyID = current.ResourceID
	}

	encoded, err := encodeAllocation(moved, req.TargetResourceKind)
	if err != nil {
		if errors.Is(err, ErrInvalidTarget) {
			return nil, ErrInvalidDropTarget
		}
		return nil, err
	}

	// 全量写回五个外键列：未命中的资源列显式置空
	patch := map[string]interface{}{
		"date":            encoded.Date,
		"shift":           encoded.Shift,
		"personnel_id":    encoded.PersonnelID,
		"asset_id":        encoded.AssetID,
		"vehicle_id":      encoded.VehicleID,
		"project_id":      encoded.ProjectID,
		"absence_type_id": encoded.AbsenceTypeID,
	}
	if err := s.repo.Allocation.UpdateColumns(ctx, current.ID, patch); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAllocationNotFound
		}
		s.logger.Error("移动指派失败", zap.String("allocation_id", current.ID), zap.Error(err))
		return nil, err
	}

	encoded.AllocationID = current.ID
	decoded, err := decodeAllocation(encoded)
	if err != nil {
		return nil, err
	}
	return toAllocationResponse(decoded), nil
}

// ════════════════════════════════════════════════════════════
// Delete
// ════════════════════════════════════════════════════════════

func (s *allocationService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Allocation.Delete(ctx, id); err != nil {
		s.logger.Error("删除指派失败", zap.String("allocation_id", id), zap.Error(err))
		return err
	}
	return nil
}

// ════════════════════════════════════════════════════════════
// BulkAssign — 覆盖式区间批量指派
// ════════════════════════════════════════════════════════════
//
// 清理与插入在同一事务内执行：旧系统先删后插且无事务包裹，
// 插入失败会把区间留在"旧指派已删、新指派未插"的半程状态；
// 此处改为事务整体提交或整体回滚。

func (s *allocationService) BulkAssign(ctx context.Context, req *dto.BulkAssignRequest, teamID string) (*dto.BulkAssignResponse, error) {
	from, err := parseDay(req.StartDate)
	if err != nil {
		return nil, ErrBulkRangeInvalid
	}
	to, err := parseDay(req.EndDate)
	if err != nil {
		return nil, ErrBulkRangeInvalid
	}
	if to.Before(from) {
		return nil, ErrBulkRangeInvalid
	}
	if int(to.Sub(from).Hours()/24) > s.cfg.Board.MaxRangeDay {
		return nil, ErrBulkRangeInvalid
	}

	if req.ItemType == AssignmentTypeAbsence {
		if err := s.checkAbsenceCategory(ctx, req.ItemID, req.TargetResourceKind); err != nil {
			return nil, err
		}
	}

	// 展开班次
	var shifts []string
	switch req.Shift {
	case model.ShiftDay, model.ShiftNight:
		shifts = []string{req.Shift}
	default: // both
		shifts = []string{model.ShiftDay, model.ShiftNight}
	}

	// 枚举保留日并编码待插入行
	var rows []model.Allocation
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		if !req.IncludeWeekends && (d.Weekday() == time.Saturday || d.Weekday() == time.Sunday) {
			continue
		}
		for _, shift := range shifts {
			a := &Assignment{
				Type:           req.ItemType,
				Date:           d,
				Shift:          shift,
				ResourceID:     req.TargetResourceID,
				ResourceKind:   req.TargetResourceKind,
				CounterpartyID: req.ItemID,
			}
			row, err := encodeAllocation(a, req.TargetResourceKind)
			if err != nil {
				if errors.Is(err, ErrInvalidTarget) {
					return nil, ErrInvalidDropTarget
				}
				return nil, err
			}
			row.TeamID = teamID
			rows = append(rows, *row)
		}
	}

	// 覆盖式清理的匹配条件：目标资源所在列。区间内该资源的既有指派
	// 无论对端、无论班次一律清除（整体覆盖而非合并）。
	resourceColumn, err := resourceColumnForKind(req.TargetResourceKind)
	if err != nil {
		return nil, ErrInvalidDropTarget
	}
	match := map[string]interface{}{resourceColumn: req.TargetResourceID}

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return nil, err
	}
	txRepo := s.repo.WithTx(tx)

	deleted, err := txRepo.Allocation.DeleteMatchingInRange(ctx, teamID, from, to, match)
	if err != nil {
		if tx != nil {
			tx.Rollback()
		}
		s.logger.Error("批量指派清理失败", zap.Error(err))
		return nil, err
	}

	if err := txRepo.Allocation.BatchCreate(ctx, rows); err != nil {
		if tx != nil {
			tx.Rollback()
		}
		s.logger.Error("批量指派插入失败", zap.Int("rows", len(rows)), zap.Error(err))
		return nil, err
	}

	if tx != nil {
		if err := tx.Commit().Error; err != nil {
			s.logger.Error("批量指派事务提交失败", zap.Error(err))
			return nil, err
		}
	}

	resp := &dto.BulkAssignResponse{
		Replaced:    int(deleted),
		Created:     len(rows),
		Allocations: make([]dto.AllocationResponse, 0, len(rows)),
	}
	for i := range rows {
		decoded, err := decodeAllocation(&rows[i])
		if err != nil {
			s.logger.Warn("解码批量插入行失败", zap.String("allocation_id", rows[i].AllocationID), zap.Error(err))
			continue
		}
		resp.Allocations = append(resp.Allocations, *toAllocationResponse(decoded))
	}
	return resp, nil
}

// ════════════════════════════════════════════════════════════
// ListRange
// ════════════════════════════════════════════════════════════

func (s *allocationService) ListRange(ctx context.Context, teamID string, from, to time.Time) ([]dto.AllocationResponse, error) {
	rows, err := s.repo.Allocation.ListByTeamAndRange(ctx, teamID, from, to)
	if err != nil {
		return nil, err
	}

	out := make([]dto.AllocationResponse, 0, len(rows))
	for i := range rows {
		decoded, err := decodeAllocation(&rows[i])
		if err != nil {
			// 损坏行丢弃并记日志，不中断整窗口加载
			s.logger.Warn("丢弃损坏的指派行",
				zap.String("allocation_id", rows[i].AllocationID),
				zap.Error(err),
			)
			continue
		}
		out = append(out, *toAllocationResponse(decoded))
	}
	return out, nil
}
