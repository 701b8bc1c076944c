package model

// Team 团队表 — 对应 teams
// BaseLat/BaseLon 为团队驻地坐标，仅供天气叠加层查询预报
type Team struct {
	TeamID  string   `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"team_id"`
	Name    string   `gorm:"type:varchar(100);not null"                     json:"name"`
	BaseLat *float64 `json:"base_lat,omitempty"`
	BaseLon *float64 `json:"base_lon,omitempty"`
	BaseModel
}

// TableName 指定表名
func (Team) TableName() string { return "teams" }
