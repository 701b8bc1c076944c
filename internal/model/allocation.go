package model

import "time"

// 班次取值
const (
	ShiftDay   = "day"
	ShiftNight = "night"
)

// Allocation 排班指派扁平表 — 对应 allocations
//
// 五个互斥可空外键以扁平列模拟标记联合：合法行必须恰好两列非空，
// 一列标识资源行（personnel/asset/vehicle 之一），另一列标识被指派方
// （project/absence_type，或 asset/vehicle 作为人员的挂载对象）。
// 历史 schema 未加 CHECK 约束，非法行由 service 层解码时拒绝，
// 此扁平形态不允许泄漏出编解码器之外。
type Allocation struct {
	AllocationID  string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"allocation_id"`
	TeamID        string    `gorm:"type:uuid;not null"                             json:"team_id"`
	Date          time.Time `gorm:"type:date;not null"                             json:"date"`
	Shift         string    `gorm:"type:varchar(10);not null;default:'day'"        json:"shift"` // day | night
	PersonnelID   *string   `gorm:"type:uuid"                                      json:"personnel_id,omitempty"`
	AssetID       *string   `gorm:"type:uuid"                                      json:"asset_id,omitempty"`
	VehicleID     *string   `gorm:"type:uuid"                                      json:"vehicle_id,omitempty"`
	ProjectID     *string   `gorm:"type:uuid"                                      json:"project_id,omitempty"`
	AbsenceTypeID *string   `gorm:"type:uuid"                                      json:"absence_type_id,omitempty"`
	BaseModel
}

// TableName 指定表名
func (Allocation) TableName() string { return "allocations" }
