package handler

import (
	"errors"
	"net/http"
	"net/url"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/benbrewster85/risk-assessment-app-sub000/internal/service"
	"github.com/benbrewster85/risk-assessment-app-sub000/pkg/response"
)

// ExportHandler 导出模块 HTTP 处理器（Excel 导出 + iCal 订阅源）
type ExportHandler struct {
	exportSvc   service.ExportService
	calendarSvc service.CalendarService
}

// NewExportHandler 创建 ExportHandler
func NewExportHandler(exportSvc service.ExportService, calendarSvc service.CalendarService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc, calendarSvc: calendarSvc}
}

// parseRangeQuery 解析 from/to 查询参数
func parseRangeQuery(c *gin.Context) (time.Time, time.Time, bool) {
	from, err := time.Parse("2006-01-02", c.Query("from"))
	if err != nil {
		response.BadRequest(c, 10001, "from 日期格式非法")
		return time.Time{}, time.Time{}, false
	}
	to, err := time.Parse("2006-01-02", c.Query("to"))
	if err != nil {
		response.BadRequest(c, 10001, "to 日期格式非法")
		return time.Time{}, time.Time{}, false
	}
	return from, to, true
}

// ExportBoard 导出看板窗口为 Excel
// GET /api/v1/export/board?from=2026-03-02&to=2026-03-08
func (h *ExportHandler) ExportBoard(c *gin.Context) {
	teamID, ok := MustGetTeamID(c)
	if !ok {
		return
	}
	from, to, ok := parseRangeQuery(c)
	if !ok {
		return
	}

	buf, filename, err := h.exportSvc.ExportBoard(c.Request.Context(), teamID, from, to)
	if err != nil {
		h.handleExportError(c, err)
		return
	}

	// 设置下载响应头
	encodedFilename := url.QueryEscape(filename)
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+encodedFilename)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}

// PersonnelCalendar 个人排班 iCal 订阅源
// GET /api/v1/export/calendar/:personnel_id?from=2026-03-02&to=2026-03-08
func (h *ExportHandler) PersonnelCalendar(c *gin.Context) {
	personnelID := c.Param("personnel_id")
	if personnelID == "" {
		response.BadRequest(c, 10001, "personnel_id 不能为空")
		return
	}
	from, to, ok := parseRangeQuery(c)
	if !ok {
		return
	}

	feed, err := h.calendarSvc.PersonnelFeed(c.Request.Context(), personnelID, from, to)
	if err != nil {
		h.handleExportError(c, err)
		return
	}

	c.Header("Content-Disposition", "attachment; filename=schedule.ics")
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", []byte(feed))
}

// handleExportError 统一处理导出模块业务错误
func (h *ExportHandler) handleExportError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrExportRangeInvalid):
		response.BadRequest(c, 16001, "导出日期区间非法")
	case errors.Is(err, service.ErrPersonnelNotFound):
		response.NotFound(c, 16002, "人员不存在")
	case errors.Is(err, service.ErrExportGenerateFail):
		response.InternalError(c)
	default:
		response.InternalError(c)
	}
}
