package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/benbrewster85/risk-assessment-app-sub000/internal/dto"
	"github.com/benbrewster85/risk-assessment-app-sub000/internal/service"
	"github.com/benbrewster85/risk-assessment-app-sub000/pkg/response"
)

// AnnotationHandler 注记模块 HTTP 处理器（单元格备注 + 日事件）
type AnnotationHandler struct {
	annotationSvc service.AnnotationService
	boardSvc      service.BoardService
}

// NewAnnotationHandler 创建 AnnotationHandler
func NewAnnotationHandler(annotationSvc service.AnnotationService, boardSvc service.BoardService) *AnnotationHandler {
	return &AnnotationHandler{annotationSvc: annotationSvc, boardSvc: boardSvc}
}

// SaveNote 保存单元格备注（新建/更新/删除三合一）
// PUT /api/v1/board/notes
func (h *AnnotationHandler) SaveNote(c *gin.Context) {
	teamID, ok := MustGetTeamID(c)
	if !ok {
		return
	}

	var req dto.SaveNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	note, err := h.annotationSvc.SaveNote(c.Request.Context(), &req, teamID)
	if err != nil {
		h.handleAnnotationError(c, err)
		return
	}

	h.boardSvc.InvalidateTeam(teamID)
	response.OK(c, note)
}

// DeleteNote 删除备注
// DELETE /api/v1/board/notes/:id
func (h *AnnotationHandler) DeleteNote(c *gin.Context) {
	teamID, ok := MustGetTeamID(c)
	if !ok {
		return
	}

	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "备注ID不能为空")
		return
	}

	if err := h.annotationSvc.DeleteNote(c.Request.Context(), id); err != nil {
		h.handleAnnotationError(c, err)
		return
	}

	h.boardSvc.InvalidateTeam(teamID)
	response.NoContent(c)
}

// CreateDayEvent 新建日事件
// POST /api/v1/board/day-events
func (h *AnnotationHandler) CreateDayEvent(c *gin.Context) {
	teamID, ok := MustGetTeamID(c)
	if !ok {
		return
	}

	var req dto.CreateDayEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	event, err := h.annotationSvc.CreateDayEvent(c.Request.Context(), &req, teamID)
	if err != nil {
		h.handleAnnotationError(c, err)
		return
	}

	h.boardSvc.InvalidateTeam(teamID)
	response.Created(c, event)
}

// DeleteDayEvent 删除日事件
// DELETE /api/v1/board/day-events/:id
func (h *AnnotationHandler) DeleteDayEvent(c *gin.Context) {
	teamID, ok := MustGetTeamID(c)
	if !ok {
		return
	}

	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "日事件ID不能为空")
		return
	}

	if err := h.annotationSvc.DeleteDayEvent(c.Request.Context(), id); err != nil {
		h.handleAnnotationError(c, err)
		return
	}

	h.boardSvc.InvalidateTeam(teamID)
	response.NoContent(c)
}

// handleAnnotationError 统一处理注记模块业务错误
func (h *AnnotationHandler) handleAnnotationError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNoteNotFound):
		response.NotFound(c, 14001, "备注不存在")
	case errors.Is(err, service.ErrDayEventNotFound):
		response.NotFound(c, 14002, "日事件不存在")
	case errors.Is(err, service.ErrInvalidNoteDate):
		response.BadRequest(c, 14003, "日期格式非法")
	default:
		response.InternalError(c)
	}
}
