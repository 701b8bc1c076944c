package model

import "time"

// 日历日事件 type 取值
const (
	DayEventTypeEvent   = "event"
	DayEventTypeHoliday = "holiday"
	DayEventTypeBlocker = "blocker"
)

// DayEvent 日历日事件表 — 对应 day_events
// 日期级（非资源级）注记，仅影响整列背景色，不影响指派逻辑；
// 同一日期允许多条
type DayEvent struct {
	DayEventID string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"day_event_id"`
	TeamID     string    `gorm:"type:uuid;not null"                             json:"team_id"`
	Date       time.Time `gorm:"type:date;not null"                             json:"date"`
	Text       string    `gorm:"type:varchar(500);not null"                     json:"text"`
	Type       string    `gorm:"type:varchar(20);not null;default:'event'"      json:"type"`
	Color      string    `gorm:"type:varchar(32)"                               json:"color,omitempty"`
	CreatedAt  time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"created_at"`
}

// TableName 指定表名
func (DayEvent) TableName() string { return "day_events" }
