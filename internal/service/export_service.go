package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/benbrewster85/risk-assessment-app-sub000/internal/model"
)

// ── 导出模块业务错误 ──

var (
	ErrExportRangeInvalid = errors.New("导出日期区间非法")
	ErrExportGenerateFail = errors.New("生成 Excel 文件失败")
)

// ExportService 导出业务接口
//
// 设计说明：
//   - 看板窗口导出为 Excel (.xlsx)：资源为行、日期为列，
//     单元格为该日的指派内容（双班次时按 日/夜 两行拼接）
//   - 导出以 bytes.Buffer 返回，由 Handler 层设置 HTTP 响应头后写入 Response
type ExportService interface {
	// ExportBoard 导出看板窗口为 Excel
	ExportBoard(ctx context.Context, teamID string, from, to time.Time) (*bytes.Buffer, string, error)
}

type exportService struct {
	catalogSvc    CatalogService
	allocationSvc AllocationService
	logger        *zap.Logger
}

// NewExportService 创建 ExportService 实例
func NewExportService(catalogSvc CatalogService, allocationSvc AllocationService, logger *zap.Logger) ExportService {
	return &exportService{
		catalogSvc:    catalogSvc,
		allocationSvc: allocationSvc,
		logger:        logger,
	}
}

// ═══════════════════════════════════════════════════════════
// ExportBoard — 导出看板窗口为 Excel
// ═══════════════════════════════════════════════════════════
//
// 输出格式：
//   - Sheet "排班表"
//   - 行头：资源显示名（人员→设备→车辆的看板顺序）
//   - 列头：窗口内逐日日期
//   - 单元格：指派对象名称；双班次同格时为 "日: X\n夜: Y"
//
// 返回值：buf（Excel 内容）, filename（建议文件名）, error

func (s *exportService) ExportBoard(ctx context.Context, teamID string, from, to time.Time) (*bytes.Buffer, string, error) {
	if to.Before(from) {
		return nil, "", ErrExportRangeInvalid
	}

	// 1. 装载资源行与指派
	resources, err := s.catalogSvc.LoadResources(ctx, teamID)
	if err != nil {
		s.logger.Error("导出时加载资源失败", zap.Error(err))
		return nil, "", err
	}
	workItems, err := s.catalogSvc.LoadWorkItems(ctx, teamID)
	if err != nil {
		s.logger.Error("导出时加载工作项失败", zap.Error(err))
		return nil, "", err
	}
	allocations, err := s.allocationSvc.ListRange(ctx, teamID, from, to)
	if err != nil {
		s.logger.Error("导出时加载指派失败", zap.Error(err))
		return nil, "", err
	}

	// 2. 名称索引：对端 id → 显示名（工作项与资源两侧都可能是对端）
	nameIndex := make(map[string]string, len(workItems)+len(resources))
	for _, wi := range workItems {
		nameIndex[wi.ID] = wi.DisplayName
	}
	for _, r := range resources {
		nameIndex[r.ID] = r.DisplayName
	}

	// 3. 单元格索引: "resourceID:date:shift" → 对端名称列表
	cellIndex := make(map[string][]string)
	for _, a := range allocations {
		name := nameIndex[a.CounterpartyID]
		if name == "" {
			name = a.CounterpartyID
		}
		key := a.ResourceID + ":" + a.Date + ":" + a.Shift
		cellIndex[key] = append(cellIndex[key], name)
	}

	// 4. 窗口日期序列
	var days []time.Time
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}

	// 5. 生成 Excel
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "排班表"
	idx, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, "", ErrExportGenerateFail
	}
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	// 设置列宽
	f.SetColWidth(sheetName, "A", "A", 24)
	for i := range days {
		col, _ := excelize.ColumnNumberToName(2 + i)
		f.SetColWidth(sheetName, col, col, 18)
	}

	// 样式
	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	// 表头
	f.SetCellValue(sheetName, "A1", "资源")
	for i, d := range days {
		col, _ := excelize.ColumnNumberToName(2 + i)
		f.SetCellValue(sheetName, col+"1", formatDay(d))
	}
	lastHeaderCol, _ := excelize.ColumnNumberToName(1 + len(days))
	f.SetCellStyle(sheetName, "A1", lastHeaderCol+"1", headerStyle)

	// 数据行
	for rowIdx, r := range resources {
		rowNum := rowIdx + 2
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", rowNum), r.DisplayName)
		for colIdx, d := range days {
			text := s.cellText(cellIndex, r.ID, formatDay(d))
			if text == "" {
				continue
			}
			col, _ := excelize.ColumnNumberToName(2 + colIdx)
			f.SetCellValue(sheetName, fmt.Sprintf("%s%d", col, rowNum), text)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		s.logger.Error("写出 Excel 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("board_%s_%s.xlsx", formatDay(from), formatDay(to))
	return buf, filename, nil
}

// cellText 拼接单日单资源的单元格文本：仅白班时平铺名称，
// 出现夜班时按 日/夜 前缀分行
func (s *exportService) cellText(cellIndex map[string][]string, resourceID, date string) string {
	dayNames := cellIndex[resourceID+":"+date+":"+model.ShiftDay]
	nightNames := cellIndex[resourceID+":"+date+":"+model.ShiftNight]

	if len(nightNames) == 0 {
		return strings.Join(dayNames, ", ")
	}

	var parts []string
	if len(dayNames) > 0 {
		parts = append(parts, "日: "+strings.Join(dayNames, ", "))
	}
	parts = append(parts, "夜: "+strings.Join(nightNames, ", "))
	return strings.Join(parts, "\n")
}
