package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/benbrewster85/risk-assessment-app-sub000/internal/dto"
	"github.com/benbrewster85/risk-assessment-app-sub000/internal/repository"
)

// 工作项种类
const (
	WorkItemKindProject = "project"
	WorkItemKindAbsence = "absence"
)

// CatalogService 目录查询业务接口：看板行（可排资源）、可拖工作项、
// 筛选器选项的加载
type CatalogService interface {
	// LoadResources 按 人员→设备→车辆 的固定顺序返回可排资源。
	// 设备仅含 primary 类别，配件与耗材不出现在看板上。
	LoadResources(ctx context.Context, teamID string) ([]dto.ResourceResponse, error)
	// LoadWorkItems 返回可拖拽工作项：未完工项目 + 全部缺勤类型
	LoadWorkItems(ctx context.Context, teamID string) ([]dto.WorkItemResponse, error)
	// LoadFilterOptions 返回看板筛选器的选项集
	LoadFilterOptions(ctx context.Context, teamID string) (*dto.FilterOptionsResponse, error)
}

type catalogService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewCatalogService 创建 CatalogService 实例
func NewCatalogService(repo *repository.Repository, logger *zap.Logger) CatalogService {
	return &catalogService{repo: repo, logger: logger}
}

// sanitizeColor 颜色值清洗：历史数据中颜色偶带包裹引号（如 `"#ff0000"`），
// 入参出参统一去除
func sanitizeColor(c string) string {
	return strings.Trim(c, `"'`)
}

func derefOr(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func (s *catalogService) LoadResources(ctx context.Context, teamID string) ([]dto.ResourceResponse, error) {
	people, err := s.repo.Personnel.ListByTeam(ctx, teamID)
	if err != nil {
		return nil, err
	}
	assets, err := s.repo.Asset.ListSchedulableByTeam(ctx, teamID)
	if err != nil {
		return nil, err
	}
	vehicles, err := s.repo.Vehicle.ListByTeam(ctx, teamID)
	if err != nil {
		return nil, err
	}

	out := make([]dto.ResourceResponse, 0, len(people)+len(assets)+len(vehicles))
	for i := range people {
		p := &people[i]
		out = append(out, dto.ResourceResponse{
			ID:            p.PersonnelID,
			Kind:          ResourceKindPersonnel,
			DisplayName:   p.DisplayName(),
			ColorTag:      sanitizeColor(p.ColorTag),
			JobRoleID:     derefOr(p.JobRoleID),
			SubTeamID:     derefOr(p.SubTeamID),
			LineManagerID: derefOr(p.LineManagerID),
		})
	}
	for i := range assets {
		a := &assets[i]
		out = append(out, dto.ResourceResponse{
			ID:           a.AssetID,
			Kind:         ResourceKindEquipment,
			DisplayName:  a.DisplayName(),
			ColorTag:     sanitizeColor(a.ColorTag),
			Manufacturer: a.Manufacturer,
			Model:        a.Model,
			CategoryID:   derefOr(a.CategoryID),
		})
	}
	for i := range vehicles {
		v := &vehicles[i]
		out = append(out, dto.ResourceResponse{
			ID:           v.VehicleID,
			Kind:         ResourceKindVehicle,
			DisplayName:  v.DisplayName(),
			ColorTag:     sanitizeColor(v.ColorTag),
			Manufacturer: v.Manufacturer,
			Model:        v.Model,
			CategoryID:   derefOr(v.CategoryID),
		})
	}
	return out, nil
}

func (s *catalogService) LoadWorkItems(ctx context.Context, teamID string) ([]dto.WorkItemResponse, error) {
	projects, err := s.repo.Project.ListOpenByTeam(ctx, teamID)
	if err != nil {
		return nil, err
	}
	absences, err := s.repo.AbsenceType.ListByTeam(ctx, teamID)
	if err != nil {
		return nil, err
	}

	out := make([]dto.WorkItemResponse, 0, len(projects)+len(absences))
	for i := range projects {
		p := &projects[i]
		out = append(out, dto.WorkItemResponse{
			ID:          p.ProjectID,
			Kind:        WorkItemKindProject,
			DisplayName: p.Name,
			Color:       sanitizeColor(p.Color),
		})
	}
	for i := range absences {
		a := &absences[i]
		out = append(out, dto.WorkItemResponse{
			ID:          a.AbsenceTypeID,
			Kind:        WorkItemKindAbsence,
			DisplayName: a.Name,
			Color:       sanitizeColor(a.Color),
			Category:    a.Category,
		})
	}
	return out, nil
}

func (s *catalogService) LoadFilterOptions(ctx context.Context, teamID string) (*dto.FilterOptionsResponse, error) {
	roles, err := s.repo.Lookup.ListJobRoles(ctx, teamID)
	if err != nil {
		return nil, err
	}
	subTeams, err := s.repo.Lookup.ListSubTeams(ctx, teamID)
	if err != nil {
		return nil, err
	}
	categories, err := s.repo.Lookup.ListAssetCategories(ctx, teamID)
	if err != nil {
		return nil, err
	}
	people, err := s.repo.Personnel.ListByTeam(ctx, teamID)
	if err != nil {
		return nil, err
	}

	resp := &dto.FilterOptionsResponse{
		JobRoles:     make([]dto.OptionResponse, 0, len(roles)),
		SubTeams:     make([]dto.OptionResponse, 0, len(subTeams)),
		LineManagers: []dto.OptionResponse{},
		Categories:   make([]dto.OptionResponse, 0, len(categories)),
	}
	for _, r := range roles {
		resp.JobRoles = append(resp.JobRoles, dto.OptionResponse{ID: r.JobRoleID, Name: r.Name})
	}
	for _, st := range subTeams {
		resp.SubTeams = append(resp.SubTeams, dto.OptionResponse{ID: st.SubTeamID, Name: st.Name})
	}
	for _, c := range categories {
		resp.Categories = append(resp.Categories, dto.OptionResponse{ID: c.CategoryID, Name: c.Name})
	}

	// 管理线选项：被任何人员引用为 line_manager 的人员去重集合
	managerIDs := make(map[string]bool)
	for i := range people {
		if id := derefOr(people[i].LineManagerID); id != "" {
			managerIDs[id] = true
		}
	}
	for i := range people {
		p := &people[i]
		if managerIDs[p.PersonnelID] {
			resp.LineManagers = append(resp.LineManagers, dto.OptionResponse{
				ID:   p.PersonnelID,
				Name: p.DisplayName(),
			})
		}
	}
	return resp, nil
}
