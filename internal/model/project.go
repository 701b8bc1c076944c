package model

// 项目状态取值
const (
	ProjectStatusPlanned   = "Planned"
	ProjectStatusActive    = "Active"
	ProjectStatusOnHold    = "On Hold"
	ProjectStatusCompleted = "Completed"
)

// Project 项目表 — 对应 projects
// 已完工（Completed）项目不进入排班看板的工作项清单
type Project struct {
	ProjectID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"project_id"`
	TeamID    string `gorm:"type:uuid;not null"                             json:"team_id"`
	Name      string `gorm:"type:varchar(200);not null"                     json:"name"`
	Status    string `gorm:"type:varchar(20);not null;default:'Planned'"    json:"status"`
	Color     string `gorm:"type:varchar(32)"                               json:"color,omitempty"`
	SoftDeleteModel
}

// TableName 指定表名
func (Project) TableName() string { return "projects" }
