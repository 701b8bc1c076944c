package service

import (
	"errors"
	"testing"
	"time"

	"github.com/benbrewster85/risk-assessment-app-sub000/internal/model"
)

func testDay(day int) time.Time {
	return time.Date(2026, 3, day, 0, 0, 0, 0, time.UTC)
}

func TestDecodeAllocation_ProjectOnPersonnel(t *testing.T) {
	row := &model.Allocation{
		AllocationID: "a1",
		Date:         testDay(2),
		Shift:        model.ShiftDay,
		PersonnelID:  strPtr("p1"),
		ProjectID:    strPtr("proj1"),
	}

	a, err := decodeAllocation(row)
	if err != nil {
		t.Fatalf("解码失败: %v", err)
	}
	if a.Type != AssignmentTypeProject {
		t.Errorf("类型错误: got %q", a.Type)
	}
	if a.ResourceID != "p1" || a.ResourceKind != ResourceKindPersonnel {
		t.Errorf("资源侧错误: %q/%q", a.ResourceID, a.ResourceKind)
	}
	if a.CounterpartyID != "proj1" {
		t.Errorf("对端错误: %q", a.CounterpartyID)
	}
}

func TestDecodeAllocation_AbsenceOnVehicle(t *testing.T) {
	row := &model.Allocation{
		AllocationID:  "a2",
		Date:          testDay(2),
		Shift:         model.ShiftNight,
		VehicleID:     strPtr("v1"),
		AbsenceTypeID: strPtr("abs1"),
	}

	a, err := decodeAllocation(row)
	if err != nil {
		t.Fatalf("解码失败: %v", err)
	}
	if a.Type != AssignmentTypeAbsence || a.ResourceKind != ResourceKindVehicle {
		t.Errorf("类型/资源种类错误: %q/%q", a.Type, a.ResourceKind)
	}
}

func TestDecodeAllocation_EquipmentMount(t *testing.T) {
	// 人员-设备挂载行：人员列为行资源，设备列为对方
	row := &model.Allocation{
		AllocationID: "a3",
		Date:         testDay(3),
		Shift:        model.ShiftDay,
		PersonnelID:  strPtr("p1"),
		AssetID:      strPtr("eq1"),
	}

	a, err := decodeAllocation(row)
	if err != nil {
		t.Fatalf("解码失败: %v", err)
	}
	if a.Type != AssignmentTypeEquipment {
		t.Errorf("类型错误: %q", a.Type)
	}
	if a.ResourceID != "p1" || a.CounterpartyID != "eq1" {
		t.Errorf("资源/对端错误: %q/%q", a.ResourceID, a.CounterpartyID)
	}
}

// 设备行上的项目指派必须先命中项目分支，而不是被当成人员-设备挂载
func TestDecodeAllocation_ProjectBeatsEquipmentMount(t *testing.T) {
	row := &model.Allocation{
		AllocationID: "a4",
		Date:         testDay(3),
		Shift:        model.ShiftDay,
		AssetID:      strPtr("eq1"),
		ProjectID:    strPtr("proj1"),
	}

	a, err := decodeAllocation(row)
	if err != nil {
		t.Fatalf("解码失败: %v", err)
	}
	if a.Type != AssignmentTypeProject {
		t.Errorf("优先级错误: got %q, want project", a.Type)
	}
	if a.ResourceID != "eq1" || a.ResourceKind != ResourceKindEquipment {
		t.Errorf("资源侧错误: %q/%q", a.ResourceID, a.ResourceKind)
	}
}

func TestDecodeAllocation_CorruptRows(t *testing.T) {
	cases := []struct {
		name string
		row  *model.Allocation
	}{
		{"全空行", &model.Allocation{AllocationID: "c0"}},
		{"单链接行", &model.Allocation{AllocationID: "c1", PersonnelID: strPtr("p1")}},
		{"三链接行", &model.Allocation{
			AllocationID: "c2",
			PersonnelID:  strPtr("p1"),
			ProjectID:    strPtr("proj1"),
			VehicleID:    strPtr("v1"),
		}},
		{"双工作项无资源", &model.Allocation{
			AllocationID:  "c3",
			ProjectID:     strPtr("proj1"),
			AbsenceTypeID: strPtr("abs1"),
		}},
		{"设备-车辆无人员", &model.Allocation{
			AllocationID: "c4",
			AssetID:      strPtr("eq1"),
			VehicleID:    strPtr("v1"),
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := decodeAllocation(tc.row); !errors.Is(err, ErrCorruptAllocation) {
				t.Errorf("应返回 ErrCorruptAllocation, got %v", err)
			}
		})
	}
}

func TestEncodeAllocation_RoundTrip(t *testing.T) {
	a := &Assignment{
		Type:           AssignmentTypeProject,
		Date:           testDay(5),
		Shift:          model.ShiftDay,
		ResourceID:     "v1",
		ResourceKind:   ResourceKindVehicle,
		CounterpartyID: "proj1",
	}

	row, err := encodeAllocation(a, ResourceKindVehicle)
	if err != nil {
		t.Fatalf("编码失败: %v", err)
	}
	if row.VehicleID == nil || *row.VehicleID != "v1" {
		t.Fatal("vehicle_id 未填充")
	}
	if row.PersonnelID != nil || row.AssetID != nil {
		t.Fatal("未命中的资源列应保持为空")
	}

	back, err := decodeAllocation(row)
	if err != nil {
		t.Fatalf("回解码失败: %v", err)
	}
	if back.Type != a.Type || back.ResourceID != a.ResourceID || back.CounterpartyID != a.CounterpartyID {
		t.Errorf("往返不一致: %+v vs %+v", back, a)
	}
}

// 挂载类指派落在设备行时资源与对方列互换
func TestEncodeAllocation_MountColumnSwap(t *testing.T) {
	a := &Assignment{
		Type:           AssignmentTypeEquipment,
		Date:           testDay(5),
		Shift:          model.ShiftDay,
		ResourceID:     "eq1",
		ResourceKind:   ResourceKindEquipment,
		CounterpartyID: "p1",
	}

	row, err := encodeAllocation(a, ResourceKindEquipment)
	if err != nil {
		t.Fatalf("编码失败: %v", err)
	}
	if row.AssetID == nil || *row.AssetID != "eq1" {
		t.Error("设备行发起时 asset_id 应为行资源")
	}
	if row.PersonnelID == nil || *row.PersonnelID != "p1" {
		t.Error("设备行发起时 personnel_id 应为对方")
	}
}

func TestEncodeAllocation_InvalidTarget(t *testing.T) {
	// 车辆挂载不能落在设备行
	a := &Assignment{
		Type:           AssignmentTypeVehicle,
		Date:           testDay(6),
		Shift:          model.ShiftDay,
		ResourceID:     "eq1",
		CounterpartyID: "v1",
	}
	if _, err := encodeAllocation(a, ResourceKindEquipment); !errors.Is(err, ErrInvalidTarget) {
		t.Errorf("应返回 ErrInvalidTarget, got %v", err)
	}
}

func TestEncodeAllocation_RejectsEmptyIDs(t *testing.T) {
	a := &Assignment{
		Type:         AssignmentTypeProject,
		Date:         testDay(6),
		Shift:        model.ShiftDay,
		ResourceID:   "",
		ResourceKind: ResourceKindPersonnel,
	}
	if _, err := encodeAllocation(a, ResourceKindPersonnel); err == nil {
		t.Error("空 id 应拒绝编码")
	}
}
