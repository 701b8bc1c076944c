package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/benbrewster85/risk-assessment-app-sub000/internal/model"
)

// AllocationRepository 排班指派数据访问接口
//
// DeleteMatchingInRange 的 matchColumns 由编码器给出（列名 → UUID），
// 用于批量指派前的覆盖式清理：区间内命中全部给定列的行一律删除，
// 不区分班次。
type AllocationRepository interface {
	Create(ctx context.Context, alloc *model.Allocation) error
	BatchCreate(ctx context.Context, allocs []model.Allocation) error
	GetByID(ctx context.Context, id string) (*model.Allocation, error)
	ListByTeamAndRange(ctx context.Context, teamID string, from, to time.Time) ([]model.Allocation, error)
	UpdateColumns(ctx context.Context, id string, patch map[string]interface{}) error
	Delete(ctx context.Context, id string) error
	DeleteMatchingInRange(ctx context.Context, teamID string, from, to time.Time, matchColumns map[string]interface{}) (int64, error)
}

type allocationRepo struct {
	db *gorm.DB
}

func NewAllocationRepo(db *gorm.DB) AllocationRepository {
	return &allocationRepo{db: db}
}

func (r *allocationRepo) Create(ctx context.Context, alloc *model.Allocation) error {
	return r.db.WithContext(ctx).Create(alloc).Error
}

func (r *allocationRepo) BatchCreate(ctx context.Context, allocs []model.Allocation) error {
	if len(allocs) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&allocs).Error
}

func (r *allocationRepo) GetByID(ctx context.Context, id string) (*model.Allocation, error) {
	var alloc model.Allocation
	err := r.db.WithContext(ctx).
		Where("allocation_id = ?", id).
		First(&alloc).Error
	if err != nil {
		return nil, err
	}
	return &alloc, nil
}

func (r *allocationRepo) ListByTeamAndRange(ctx context.Context, teamID string, from, to time.Time) ([]model.Allocation, error) {
	var allocs []model.Allocation
	err := r.db.WithContext(ctx).
		Where("team_id = ? AND date BETWEEN ? AND ?", teamID, from, to).
		Order("date ASC, shift ASC").
		Find(&allocs).Error
	return allocs, err
}

func (r *allocationRepo) UpdateColumns(ctx context.Context, id string, patch map[string]interface{}) error {
	result := r.db.WithContext(ctx).
		Model(&model.Allocation{}).
		Where("allocation_id = ?", id).
		Updates(patch)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *allocationRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("allocation_id = ?", id).
		Delete(&model.Allocation{}).Error
}

func (r *allocationRepo) DeleteMatchingInRange(ctx context.Context, teamID string, from, to time.Time, matchColumns map[string]interface{}) (int64, error) {
	db := r.db.WithContext(ctx).
		Where("team_id = ? AND date BETWEEN ? AND ?", teamID, from, to)
	for column, value := range matchColumns {
		db = db.Where(column+" = ?", value)
	}
	result := db.Delete(&model.Allocation{})
	return result.RowsAffected, result.Error
}
