package repository

import (
	"context"

	"gorm.io/gorm"
)

// Repository 所有 Repository 的聚合入口
type Repository struct {
	db *gorm.DB

	User        UserRepository
	Team        TeamRepository
	Personnel   PersonnelRepository
	Asset       AssetRepository
	Vehicle     VehicleRepository
	Project     ProjectRepository
	AbsenceType AbsenceTypeRepository
	Lookup      LookupRepository
	Allocation  AllocationRepository
	Note        NoteRepository
	DayEvent    DayEventRepository
}

// NewRepository 创建 Repository 聚合
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		db:          db,
		User:        NewUserRepo(db),
		Team:        NewTeamRepo(db),
		Personnel:   NewPersonnelRepo(db),
		Asset:       NewAssetRepo(db),
		Vehicle:     NewVehicleRepo(db),
		Project:     NewProjectRepo(db),
		AbsenceType: NewAbsenceTypeRepo(db),
		Lookup:      NewLookupRepo(db),
		Allocation:  NewAllocationRepo(db),
		Note:        NewNoteRepo(db),
		DayEvent:    NewDayEventRepo(db),
	}
}

// BeginTx 开启事务，返回事务句柄。
// 无底层连接（mock 测试场景）时返回 nil 句柄，调用方须以 nil 判断跳过
// Commit/Rollback。
func (r *Repository) BeginTx(ctx context.Context) (*gorm.DB, error) {
	if r.db == nil {
		return nil, nil
	}
	tx := r.db.WithContext(ctx).Begin()
	return tx, tx.Error
}

// WithTx 返回绑定到指定事务的 Repository 视图
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	if tx == nil {
		return r
	}
	return NewRepository(tx)
}
