package dto

// ── 资源/工作项目录 DTO ──

// ResourceResponse 可排资源（人员/设备/车辆统一形态）
type ResourceResponse struct {
	ID          string `json:"id"`
	Kind        string `json:"kind"` // personnel | equipment | vehicle
	DisplayName string `json:"display_name"`
	ColorTag    string `json:"color_tag,omitempty"`

	// 人员特有
	JobRoleID     string `json:"job_role_id,omitempty"`
	SubTeamID     string `json:"sub_team_id,omitempty"`
	LineManagerID string `json:"line_manager_id,omitempty"`

	// 设备/车辆特有
	Manufacturer string `json:"manufacturer,omitempty"`
	Model        string `json:"model,omitempty"`
	CategoryID   string `json:"category_id,omitempty"`
}

// WorkItemResponse 可指派工作项（项目或缺勤类型）
type WorkItemResponse struct {
	ID          string `json:"id"`
	Kind        string `json:"kind"` // project | absence
	DisplayName string `json:"display_name"`
	Color       string `json:"color,omitempty"`
	Category    string `json:"category,omitempty"` // 仅缺勤类型：personnel | vehicle | equipment
}

// OptionResponse 筛选器选项
type OptionResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// FilterOptionsResponse 看板筛选器选项集
type FilterOptionsResponse struct {
	JobRoles     []OptionResponse `json:"job_roles"`
	SubTeams     []OptionResponse `json:"sub_teams"`
	LineManagers []OptionResponse `json:"line_managers"`
	Categories   []OptionResponse `json:"categories"`
}
