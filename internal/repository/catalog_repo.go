package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/benbrewster85/risk-assessment-app-sub000/internal/model"
)

// PersonnelRepository 人员数据访问接口
type PersonnelRepository interface {
	ListByTeam(ctx context.Context, teamID string) ([]model.Personnel, error)
	GetByID(ctx context.Context, id string) (*model.Personnel, error)
}

// AssetRepository 设备资产数据访问接口
type AssetRepository interface {
	// ListSchedulableByTeam 仅返回 primary 类别的设备（配件/耗材不可排班）
	ListSchedulableByTeam(ctx context.Context, teamID string) ([]model.Asset, error)
}

// VehicleRepository 车辆数据访问接口
type VehicleRepository interface {
	ListByTeam(ctx context.Context, teamID string) ([]model.Vehicle, error)
}

// ProjectRepository 项目数据访问接口
type ProjectRepository interface {
	// ListOpenByTeam 返回未完工项目（Completed 状态被排除）
	ListOpenByTeam(ctx context.Context, teamID string) ([]model.Project, error)
}

// AbsenceTypeRepository 缺勤类型数据访问接口
type AbsenceTypeRepository interface {
	ListByTeam(ctx context.Context, teamID string) ([]model.AbsenceType, error)
	GetByID(ctx context.Context, id string) (*model.AbsenceType, error)
}

// LookupRepository 筛选器选项数据访问接口
type LookupRepository interface {
	ListJobRoles(ctx context.Context, teamID string) ([]model.JobRole, error)
	ListSubTeams(ctx context.Context, teamID string) ([]model.SubTeam, error)
	ListAssetCategories(ctx context.Context, teamID string) ([]model.AssetCategory, error)
}

// ── Personnel Repository 实现 ──

type personnelRepo struct {
	db *gorm.DB
}

func NewPersonnelRepo(db *gorm.DB) PersonnelRepository {
	return &personnelRepo{db: db}
}

func (r *personnelRepo) ListByTeam(ctx context.Context, teamID string) ([]model.Personnel, error) {
	var people []model.Personnel
	err := r.db.WithContext(ctx).
		Where("team_id = ?", teamID).
		Order("last_name ASC, first_name ASC").
		Find(&people).Error
	return people, err
}

func (r *personnelRepo) GetByID(ctx context.Context, id string) (*model.Personnel, error) {
	var p model.Personnel
	err := r.db.WithContext(ctx).
		Where("personnel_id = ?", id).
		First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// ── Asset Repository 实现 ──

type assetRepo struct {
	db *gorm.DB
}

func NewAssetRepo(db *gorm.DB) AssetRepository {
	return &assetRepo{db: db}
}

func (r *assetRepo) ListSchedulableByTeam(ctx context.Context, teamID string) ([]model.Asset, error) {
	var assets []model.Asset
	err := r.db.WithContext(ctx).
		Joins("JOIN asset_categories ON asset_categories.category_id = assets.category_id").
		Where("assets.team_id = ? AND asset_categories.class = ?", teamID, model.AssetClassPrimary).
		Order("assets.system_id ASC").
		Find(&assets).Error
	return assets, err
}

// ── Vehicle Repository 实现 ──

type vehicleRepo struct {
	db *gorm.DB
}

func NewVehicleRepo(db *gorm.DB) VehicleRepository {
	return &vehicleRepo{db: db}
}

func (r *vehicleRepo) ListByTeam(ctx context.Context, teamID string) ([]model.Vehicle, error) {
	var vehicles []model.Vehicle
	err := r.db.WithContext(ctx).
		Where("team_id = ?", teamID).
		Order("registration ASC").
		Find(&vehicles).Error
	return vehicles, err
}

// ── Project Repository 实现 ──

type projectRepo struct {
	db *gorm.DB
}

func NewProjectRepo(db *gorm.DB) ProjectRepository {
	return &projectRepo{db: db}
}

func (r *projectRepo) ListOpenByTeam(ctx context.Context, teamID string) ([]model.Project, error) {
	var projects []model.Project
	err := r.db.WithContext(ctx).
		Where("team_id = ? AND status != ?", teamID, model.ProjectStatusCompleted).
		Order("name ASC").
		Find(&projects).Error
	return projects, err
}

// ── AbsenceType Repository 实现 ──

type absenceTypeRepo struct {
	db *gorm.DB
}

func NewAbsenceTypeRepo(db *gorm.DB) AbsenceTypeRepository {
	return &absenceTypeRepo{db: db}
}

func (r *absenceTypeRepo) ListByTeam(ctx context.Context, teamID string) ([]model.AbsenceType, error) {
	var types []model.AbsenceType
	err := r.db.WithContext(ctx).
		Where("team_id = ?", teamID).
		Order("name ASC").
		Find(&types).Error
	return types, err
}

func (r *absenceTypeRepo) GetByID(ctx context.Context, id string) (*model.AbsenceType, error) {
	var at model.AbsenceType
	err := r.db.WithContext(ctx).
		Where("absence_type_id = ?", id).
		First(&at).Error
	if err != nil {
		return nil, err
	}
	return &at, nil
}

// ── Lookup Repository 实现 ──

type lookupRepo struct {
	db *gorm.DB
}

func NewLookupRepo(db *gorm.DB) LookupRepository {
	return &lookupRepo{db: db}
}

func (r *lookupRepo) ListJobRoles(ctx context.Context, teamID string) ([]model.JobRole, error) {
	var roles []model.JobRole
	err := r.db.WithContext(ctx).
		Where("team_id = ?", teamID).
		Order("name ASC").
		Find(&roles).Error
	return roles, err
}

func (r *lookupRepo) ListSubTeams(ctx context.Context, teamID string) ([]model.SubTeam, error) {
	var subTeams []model.SubTeam
	err := r.db.WithContext(ctx).
		Where("team_id = ?", teamID).
		Order("name ASC").
		Find(&subTeams).Error
	return subTeams, err
}

func (r *lookupRepo) ListAssetCategories(ctx context.Context, teamID string) ([]model.AssetCategory, error) {
	var categories []model.AssetCategory
	err := r.db.WithContext(ctx).
		Where("team_id = ?", teamID).
		Order("name ASC").
		Find(&categories).Error
	return categories, err
}
