package model

import "time"

// ScheduleNote 排班备注表 — 对应 schedule_notes
// 附着在 (资源, 日期, 班次) 单元格上的自由文本；空文本的备注不落库
type ScheduleNote struct {
	NoteID       string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"note_id"`
	TeamID       string    `gorm:"type:uuid;not null"                             json:"team_id"`
	ResourceKind string    `gorm:"type:varchar(20);not null"                      json:"resource_kind"` // personnel | equipment | vehicle
	ResourceID   string    `gorm:"type:uuid;not null"                             json:"resource_id"`
	Date         time.Time `gorm:"type:date;not null"                             json:"date"`
	Shift        string    `gorm:"type:varchar(10);not null;default:'day'"        json:"shift"`
	Text         string    `gorm:"type:varchar(2000);not null"                    json:"text"`
	BaseModel
}

// TableName 指定表名
func (ScheduleNote) TableName() string { return "schedule_notes" }
