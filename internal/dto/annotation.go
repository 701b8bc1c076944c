package dto

// ── 备注与日事件 DTO ──

// SaveNoteRequest 保存单元格备注请求
// note_id 为空表示新建；text 为空时：有 note_id 则删除，无则不落库
type SaveNoteRequest struct {
	NoteID       string `json:"note_id"       binding:"omitempty,uuid"`
	ResourceKind string `json:"resource_kind" binding:"required,oneof=personnel equipment vehicle"`
	ResourceID   string `json:"resource_id"   binding:"required,uuid"`
	Date         string `json:"date"          binding:"required,datetime=2006-01-02"`
	Shift        string `json:"shift"         binding:"required,oneof=day night"`
	Text         string `json:"text"          binding:"max=2000"`
}

// NoteResponse 单元格备注响应
type NoteResponse struct {
	ID           string `json:"id"`
	ResourceKind string `json:"resource_kind"`
	ResourceID   string `json:"resource_id"`
	Date         string `json:"date"`
	Shift        string `json:"shift"`
	Text         string `json:"text"`
}

// CreateDayEventRequest 新建日事件请求
type CreateDayEventRequest struct {
	Date  string `json:"date"  binding:"required,datetime=2006-01-02"`
	Text  string `json:"text"  binding:"required,max=500"`
	Type  string `json:"type"  binding:"required,oneof=event holiday blocker"`
	Color string `json:"color" binding:"omitempty,max=32"`
}

// DayEventResponse 日事件响应
type DayEventResponse struct {
	ID    string `json:"id"`
	Date  string `json:"date"`
	Text  string `json:"text"`
	Type  string `json:"type"`
	Color string `json:"color,omitempty"`
}
