package model

// 缺勤类型 category 取值：限定可接收该缺勤的资源种类
const (
	AbsenceCategoryPersonnel = "personnel"
	AbsenceCategoryVehicle   = "vehicle"
	AbsenceCategoryEquipment = "equipment"
)

// AbsenceType 缺勤类型表 — 对应 absence_types
type AbsenceType struct {
	AbsenceTypeID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"absence_type_id"`
	TeamID        string `gorm:"type:uuid;not null"                             json:"team_id"`
	Name          string `gorm:"type:varchar(100);not null"                     json:"name"`
	Category      string `gorm:"type:varchar(20);not null;default:'personnel'"  json:"category"`
	Color         string `gorm:"type:varchar(32)"                               json:"color,omitempty"`
}

// TableName 指定表名
func (AbsenceType) TableName() string { return "absence_types" }
