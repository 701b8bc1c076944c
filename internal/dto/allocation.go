package dto

// ── 排班指派 DTO ──

// AllocationResponse 规范化后的指派（扁平列形态不对外暴露）
type AllocationResponse struct {
	ID             string `json:"id"`
	Type           string `json:"type"` // project | absence | equipment | vehicle
	Date           string `json:"date"` // 2006-01-02
	Shift          string `json:"shift"`
	ResourceID     string `json:"resource_id"`
	ResourceKind   string `json:"resource_kind"` // personnel | equipment | vehicle
	CounterpartyID string `json:"counterparty_id"`
}

// DropRequest 拖放落点请求
// payload_kind=work_item：新建指派（item_type + item_id 描述被拖对象）
// payload_kind=allocation：移动既有指派卡片（allocation_id 必填）
type DropRequest struct {
	PayloadKind string `json:"payload_kind" binding:"required,oneof=work_item allocation"`

	ItemType     string `json:"item_type"     binding:"omitempty,oneof=project absence equipment vehicle"`
	ItemID       string `json:"item_id"       binding:"omitempty,uuid"`
	AllocationID string `json:"allocation_id" binding:"omitempty,uuid"`

	TargetResourceID   string `json:"target_resource_id"   binding:"required,uuid"`
	TargetResourceKind string `json:"target_resource_kind" binding:"required,oneof=personnel equipment vehicle"`
	Date               string `json:"date"                 binding:"required,datetime=2006-01-02"`
	Shift              string `json:"shift"                binding:"required,oneof=day night"`
}

// BulkAssignRequest 批量区间指派请求
type BulkAssignRequest struct {
	StartDate       string `json:"start_date" binding:"required,datetime=2006-01-02"`
	EndDate         string `json:"end_date"   binding:"required,datetime=2006-01-02"`
	Shift           string `json:"shift"      binding:"required,oneof=day night both"`
	IncludeWeekends bool   `json:"include_weekends"`

	ItemType           string `json:"item_type"            binding:"required,oneof=project absence equipment vehicle"`
	ItemID             string `json:"item_id"              binding:"required,uuid"`
	TargetResourceID   string `json:"target_resource_id"   binding:"required,uuid"`
	TargetResourceKind string `json:"target_resource_kind" binding:"required,oneof=personnel equipment vehicle"`
}

// BulkAssignResponse 批量指派结果
type BulkAssignResponse struct {
	Replaced    int                  `json:"replaced"` // 被覆盖删除的既有指派数
	Created     int                  `json:"created"`
	Allocations []AllocationResponse `json:"allocations"`
}
