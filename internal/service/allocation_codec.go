package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/benbrewster85/risk-assessment-app-sub000/internal/model"
)

// ── 指派编解码器 ────────────────────────────────────────────
//
// 职责：在持久化扁平行（allocations 五个互斥可空外键）与内存中的
// 显式标记联合 Assignment 之间做双向映射。
//
// 这是整个仓库中唯一允许触碰扁平列形态的地方：repository 按列名
// 透传，handler/dto 只见规范化后的 Assignment。
//
// 解码优先级（历史契约，顺序敏感）：
//   absence → project → equipment → vehicle
// 缺勤先于项目读取：schema 宽松时一行可能同时带两种工作项链接，
// 旧系统的行为是缺勤胜出。此处以显式有序匹配固化该规则，并以
// "恰好两列非空"守卫拒绝多链接行，而非静默择一。
// ─────────────────────────────────────────────────────────────

// 资源种类
const (
	ResourceKindPersonnel = "personnel"
	ResourceKindEquipment = "equipment"
	ResourceKindVehicle   = "vehicle"
)

// 指派类型
const (
	AssignmentTypeProject   = "project"
	AssignmentTypeAbsence   = "absence"
	AssignmentTypeEquipment = "equipment"
	AssignmentTypeVehicle   = "vehicle"
)

// 编解码错误
var (
	// ErrCorruptAllocation 存储行不满足"恰好两列非空且构成合法组合"
	ErrCorruptAllocation = errors.New("指派行已损坏：外键列组合非法")
	// ErrInvalidTarget 指派类型与落点资源种类不兼容
	ErrInvalidTarget = errors.New("指派类型与落点资源种类不兼容")
)

// Assignment 规范化指派：扁平行的显式标记联合形态
//
// Type=project|absence 时 CounterpartyID 是工作项（项目/缺勤类型）；
// Type=equipment|vehicle 时双方都是资源——ResourceID 约定为单元格
// 所属的行资源，CounterpartyID 是挂载的另一资源，Type 指明其种类。
type Assignment struct {
	ID             string
	Type           string
	Date           time.Time
	Shift          string // day | night
	ResourceID     string
	ResourceKind   string // personnel | equipment | vehicle
	CounterpartyID string
}

// resourceColumnForKind 资源种类 → allocations 列名
func resourceColumnForKind(kind string) (string, error) {
	switch kind {
	case ResourceKindPersonnel:
		return "personnel_id", nil
	case ResourceKindEquipment:
		return "asset_id", nil
	case ResourceKindVehicle:
		return "vehicle_id", nil
	default:
		return "", fmt.Errorf("未知的资源种类 %q", kind)
	}
}

// decodeAllocation 将存储行解码为规范化 Assignment
//
// 返回 ErrCorruptAllocation 的行应从可见集中丢弃（记日志），
// 绝不允许让单行损坏中断整个加载。
func decodeAllocation(row *model.Allocation) (*Assignment, error) {
	links := 0
	for _, ptr := range []*string{row.PersonnelID, row.AssetID, row.VehicleID, row.ProjectID, row.AbsenceTypeID} {
		if ptr != nil {
			links++
		}
	}
	if links != 2 {
		return nil, ErrCorruptAllocation
	}

	a := &Assignment{
		ID:    row.AllocationID,
		Date:  row.Date,
		Shift: row.Shift,
	}

	// 行资源侧：三个资源列中非空的那一个
	resolveResource := func() bool {
		switch {
		case row.PersonnelID != nil:
			a.ResourceID, a.ResourceKind = *row.PersonnelID, ResourceKindPersonnel
		case row.AssetID != nil:
			a.ResourceID, a.ResourceKind = *row.AssetID, ResourceKindEquipment
		case row.VehicleID != nil:
			a.ResourceID, a.ResourceKind = *row.VehicleID, ResourceKindVehicle
		default:
			return false
		}
		return true
	}

	switch {
	case row.AbsenceTypeID != nil:
		a.Type = AssignmentTypeAbsence
		a.CounterpartyID = *row.AbsenceTypeID
		if !resolveResource() {
			return nil, ErrCorruptAllocation
		}
	case row.ProjectID != nil:
		a.Type = AssignmentTypeProject
		a.CounterpartyID = *row.ProjectID
		if !resolveResource() {
			return nil, ErrCorruptAllocation
		}
	case row.AssetID != nil:
		// 人员-设备挂载行：人员列为行资源，设备列为对方
		if row.PersonnelID == nil {
			return nil, ErrCorruptAllocation
		}
		a.Type = AssignmentTypeEquipment
		a.ResourceID, a.ResourceKind = *row.PersonnelID, ResourceKindPersonnel
		a.CounterpartyID = *row.AssetID
	case row.VehicleID != nil:
		if row.PersonnelID == nil {
			return nil, ErrCorruptAllocation
		}
		a.Type = AssignmentTypeVehicle
		a.ResourceID, a.ResourceKind = *row.PersonnelID, ResourceKindPersonnel
		a.CounterpartyID = *row.VehicleID
	default:
		return nil, ErrCorruptAllocation
	}

	return a, nil
}

// encodeAllocation 将规范化 Assignment 编码为存储行
//
// targetResourceKind 是指派被放下的网格行的资源种类。同一 Assignment
// 落在不同侧的行上要填充不同的列：设备/车辆挂载行落在人员行时
// personnel=资源、asset/vehicle=对方；落在设备/车辆行时两列角色对调。
func encodeAllocation(a *Assignment, targetResourceKind string) (*model.Allocation, error) {
	if a.ResourceID == "" || a.CounterpartyID == "" {
		return nil, ErrCorruptAllocation
	}
	if a.Shift != model.ShiftDay && a.Shift != model.ShiftNight {
		return nil, fmt.Errorf("非法班次 %q", a.Shift)
	}

	row := &model.Allocation{
		AllocationID: a.ID,
		Date:         a.Date,
		Shift:        a.Shift,
	}

	setColumn := func(column, value string) error {
		switch column {
		case "personnel_id":
			row.PersonnelID = &value
		case "asset_id":
			row.AssetID = &value
		case "vehicle_id":
			row.VehicleID = &value
		default:
			return fmt.Errorf("未知的资源列 %q", column)
		}
		return nil
	}

	switch a.Type {
	case AssignmentTypeProject, AssignmentTypeAbsence:
		column, err := resourceColumnForKind(targetResourceKind)
		if err != nil {
			return nil, err
		}
		if err := setColumn(column, a.ResourceID); err != nil {
			return nil, err
		}
		if a.Type == AssignmentTypeProject {
			row.ProjectID = &a.CounterpartyID
		} else {
			row.AbsenceTypeID = &a.CounterpartyID
		}

	case AssignmentTypeEquipment:
		switch targetResourceKind {
		case ResourceKindPersonnel:
			row.PersonnelID = &a.ResourceID
			row.AssetID = &a.CounterpartyID
		case ResourceKindEquipment:
			// 从设备行发起的放置："资源"与"对方"角色互换
			row.PersonnelID = &a.CounterpartyID
			row.AssetID = &a.ResourceID
		default:
			return nil, ErrInvalidTarget
		}

	case AssignmentTypeVehicle:
		switch targetResourceKind {
		case ResourceKindPersonnel:
			row.PersonnelID = &a.ResourceID
			row.VehicleID = &a.CounterpartyID
		case ResourceKindVehicle:
			row.PersonnelID = &a.CounterpartyID
			row.VehicleID = &a.ResourceID
		default:
			return nil, ErrInvalidTarget
		}

	default:
		return nil, fmt.Errorf("未知的指派类型 %q", a.Type)
	}

	return row, nil
}
