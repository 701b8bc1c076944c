package model

// Personnel 人员表 — 对应 personnel
type Personnel struct {
	PersonnelID   string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"personnel_id"`
	TeamID        string  `gorm:"type:uuid;not null"                             json:"team_id"`
	FirstName     string  `gorm:"type:varchar(100);not null"                     json:"first_name"`
	LastName      string  `gorm:"type:varchar(100);not null;default:''"          json:"last_name"`
	JobRoleID     *string `gorm:"type:uuid"                                      json:"job_role_id,omitempty"`
	SubTeamID     *string `gorm:"type:uuid"                                      json:"sub_team_id,omitempty"`
	LineManagerID *string `gorm:"type:uuid"                                      json:"line_manager_id,omitempty"`
	ColorTag      string  `gorm:"type:varchar(32)"                               json:"color_tag,omitempty"`
	SoftDeleteModel

	// 关联
	JobRole *JobRole `gorm:"foreignKey:JobRoleID;references:JobRoleID" json:"job_role,omitempty"`
	SubTeam *SubTeam `gorm:"foreignKey:SubTeamID;references:SubTeamID" json:"sub_team,omitempty"`
}

// TableName 指定表名
func (Personnel) TableName() string { return "personnel" }

// DisplayName 人员显示名（姓+名拼接）
func (p *Personnel) DisplayName() string {
	if p.LastName == "" {
		return p.FirstName
	}
	return p.FirstName + " " + p.LastName
}

// JobRole 岗位表 — 对应 job_roles
type JobRole struct {
	JobRoleID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"job_role_id"`
	TeamID    string `gorm:"type:uuid;not null"                             json:"team_id"`
	Name      string `gorm:"type:varchar(100);not null"                     json:"name"`
}

// TableName 指定表名
func (JobRole) TableName() string { return "job_roles" }

// SubTeam 班组表 — 对应 sub_teams
type SubTeam struct {
	SubTeamID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"sub_team_id"`
	TeamID    string `gorm:"type:uuid;not null"                             json:"team_id"`
	Name      string `gorm:"type:varchar(100);not null"                     json:"name"`
}

// TableName 指定表名
func (SubTeam) TableName() string { return "sub_teams" }
