package model

// Vehicle 车辆表 — 对应 vehicles
type Vehicle struct {
	VehicleID    string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"vehicle_id"`
	TeamID       string  `gorm:"type:uuid;not null"                             json:"team_id"`
	Registration string  `gorm:"type:varchar(20);not null"                      json:"registration"`
	Manufacturer string  `gorm:"type:varchar(100)"                              json:"manufacturer,omitempty"`
	Model        string  `gorm:"type:varchar(100)"                              json:"model,omitempty"`
	CategoryID   *string `gorm:"type:uuid"                                      json:"category_id,omitempty"`
	ColorTag     string  `gorm:"type:varchar(32)"                               json:"color_tag,omitempty"`
	SoftDeleteModel

	// 关联
	Category *AssetCategory `gorm:"foreignKey:CategoryID;references:CategoryID" json:"category,omitempty"`
}

// TableName 指定表名
func (Vehicle) TableName() string { return "vehicles" }

// DisplayName 车辆显示名：车牌号 + 型号
func (v *Vehicle) DisplayName() string {
	if v.Model == "" {
		return v.Registration
	}
	return v.Registration + " (" + v.Model + ")"
}
