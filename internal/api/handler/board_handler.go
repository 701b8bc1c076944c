package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/benbrewster85/risk-assessment-app-sub000/internal/dto"
	"github.com/benbrewster85/risk-assessment-app-sub000/internal/service"
	pkgerrors "github.com/benbrewster85/risk-assessment-app-sub000/pkg/errors"
	"github.com/benbrewster85/risk-assessment-app-sub000/pkg/response"
)

// BoardHandler 排班看板 HTTP 处理器
type BoardHandler struct {
	boardSvc   service.BoardService
	catalogSvc service.CatalogService
}

// NewBoardHandler 创建 BoardHandler
func NewBoardHandler(boardSvc service.BoardService, catalogSvc service.CatalogService) *BoardHandler {
	return &BoardHandler{boardSvc: boardSvc, catalogSvc: catalogSvc}
}

// GetBoard 加载看板窗口全量数据
// GET /api/v1/board?from=2026-03-02&to=2026-03-08
func (h *BoardHandler) GetBoard(c *gin.Context) {
	teamID, ok := MustGetTeamID(c)
	if !ok {
		return
	}
	role, ok := MustGetRole(c)
	if !ok {
		return
	}

	var q dto.BoardQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	board, err := h.boardSvc.GetBoard(c.Request.Context(), &q, teamID, role)
	if err != nil {
		h.handleBoardError(c, err)
		return
	}

	response.OK(c, board)
}

// Drop 拖放落点：新建或移动指派
// POST /api/v1/board/drop
func (h *BoardHandler) Drop(c *gin.Context) {
	teamID, ok := MustGetTeamID(c)
	if !ok {
		return
	}
	role, ok := MustGetRole(c)
	if !ok {
		return
	}

	var req dto.DropRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.boardSvc.HandleDrop(c.Request.Context(), &req, teamID, role)
	if err != nil {
		h.handleBoardError(c, err)
		return
	}

	if req.PayloadKind == service.DropPayloadWorkItem {
		response.Created(c, result)
		return
	}
	response.OK(c, result)
}

// DeleteAllocation 删除指派（拖出网格）
// DELETE /api/v1/board/allocations/:id
func (h *BoardHandler) DeleteAllocation(c *gin.Context) {
	teamID, ok := MustGetTeamID(c)
	if !ok {
		return
	}
	role, ok := MustGetRole(c)
	if !ok {
		return
	}

	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "指派ID不能为空")
		return
	}

	if err := h.boardSvc.RemoveAllocation(c.Request.Context(), id, teamID, role); err != nil {
		h.handleBoardError(c, err)
		return
	}

	response.NoContent(c)
}

// BulkAssign 区间批量指派
// POST /api/v1/board/bulk-assign
func (h *BoardHandler) BulkAssign(c *gin.Context) {
	teamID, ok := MustGetTeamID(c)
	if !ok {
		return
	}
	role, ok := MustGetRole(c)
	if !ok {
		return
	}

	var req dto.BulkAssignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.boardSvc.BulkAssign(c.Request.Context(), &req, teamID, role)
	if err != nil {
		h.handleBoardError(c, err)
		return
	}

	response.OK(c, result)
}

// ListWorkItems 可拖拽工作项清单
// GET /api/v1/catalog/work-items
func (h *BoardHandler) ListWorkItems(c *gin.Context) {
	teamID, ok := MustGetTeamID(c)
	if !ok {
		return
	}

	items, err := h.catalogSvc.LoadWorkItems(c.Request.Context(), teamID)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, gin.H{"list": items})
}

// ListResources 可排资源清单
// GET /api/v1/catalog/resources
func (h *BoardHandler) ListResources(c *gin.Context) {
	teamID, ok := MustGetTeamID(c)
	if !ok {
		return
	}

	resources, err := h.catalogSvc.LoadResources(c.Request.Context(), teamID)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, gin.H{"list": resources})
}

// handleBoardError 统一处理看板模块业务错误
func (h *BoardHandler) handleBoardError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, pkgerrors.ErrReadOnly):
		response.Forbidden(c, 13001, "当前角色对看板只读")
	case errors.Is(err, service.ErrBoardRangeInvalid):
		response.BadRequest(c, 13002, "看板日期区间非法")
	case errors.Is(err, service.ErrInvalidDropTarget):
		response.BadRequest(c, 13003, "放置目标不完整或非法")
	case errors.Is(err, service.ErrAllocationNotFound):
		response.NotFound(c, 13004, "指派不存在")
	case errors.Is(err, service.ErrBulkRangeInvalid):
		response.BadRequest(c, 13005, "批量指派日期区间非法")
	case errors.Is(err, service.ErrAbsenceTypeNotFound):
		response.NotFound(c, 13006, "缺勤类型不存在")
	case errors.Is(err, service.ErrAbsenceCategoryMismatch):
		response.BadRequest(c, 13007, "该缺勤类型不适用于此资源种类")
	case errors.Is(err, service.ErrTeamNotFound):
		response.NotFound(c, 13008, "团队不存在")
	case errors.Is(err, service.ErrCorruptAllocation):
		response.Conflict(c, 13009, "指派数据损坏")
	default:
		response.InternalError(c)
	}
}
