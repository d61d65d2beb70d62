// Package handler 提供 HTTP 请求处理器
package handler

import (
	"github.com/gin-gonic/gin"

	"artfolio-server/internal/middleware"
	"artfolio-server/internal/service"
	"artfolio-server/pkg/response"
)

// StickyNoteHandler 便签请求处理器
type StickyNoteHandler struct {
	noteService *service.StickyNoteService
}

// NewStickyNoteHandler 创建 StickyNoteHandler 实例
func NewStickyNoteHandler(noteService *service.StickyNoteService) *StickyNoteHandler {
	return &StickyNoteHandler{
		noteService: noteService,
	}
}

// Create 创建便签
// @Summary 创建便签
// @Tags 便签
// @Security Bearer
// @Accept json
// @Produce json
// @Param body body service.CreateStickyNoteRequest true "便签"
// @Success 201 {object} response.Response{data=model.StickyNote}
// @Router /api/v1/sticky-notes [post]
func (h *StickyNoteHandler) Create(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var req service.CreateStickyNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数错误: "+err.Error())
		return
	}

	note, err := h.noteService.CreateStickyNote(c.Request.Context(), userID, &req)
	if err != nil {
		response.InternalError(c, "创建便签失败")
		return
	}

	response.Created(c, note)
}

// List 获取便签列表
// @Summary 获取便签列表，置顶的在前
// @Tags 便签
// @Security Bearer
// @Produce json
// @Success 200 {object} response.Response{data=[]model.StickyNote}
// @Router /api/v1/sticky-notes [get]
func (h *StickyNoteHandler) List(c *gin.Context) {
	userID := middleware.GetUserID(c)

	notes, err := h.noteService.ListStickyNotes(c.Request.Context(), userID)
	if err != nil {
		response.InternalError(c, "获取便签列表失败")
		return
	}

	response.Success(c, notes)
}

// Update 更新便签
// @Summary 更新便签
// @Tags 便签
// @Security Bearer
// @Accept json
// @Produce json
// @Param id path int true "便签ID"
// @Param body body service.UpdateStickyNoteRequest true "便签"
// @Success 200 {object} response.Response{data=model.StickyNote}
// @Router /api/v1/sticky-notes/{id} [put]
func (h *StickyNoteHandler) Update(c *gin.Context) {
	userID := middleware.GetUserID(c)
	noteID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req service.UpdateStickyNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数错误: "+err.Error())
		return
	}

	note, err := h.noteService.UpdateStickyNote(c.Request.Context(), userID, noteID, &req)
	if err != nil {
		h.renderError(c, err, "更新便签失败")
		return
	}

	response.Success(c, note)
}

// Delete 删除便签
// @Summary 删除便签
// @Tags 便签
// @Security Bearer
// @Param id path int true "便签ID"
// @Success 204
// @Router /api/v1/sticky-notes/{id} [delete]
func (h *StickyNoteHandler) Delete(c *gin.Context) {
	userID := middleware.GetUserID(c)
	noteID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.noteService.DeleteStickyNote(c.Request.Context(), userID, noteID); err != nil {
		h.renderError(c, err, "删除便签失败")
		return
	}

	response.NoContent(c)
}

// renderError 按错误类型渲染便签相关的通用错误
func (h *StickyNoteHandler) renderError(c *gin.Context, err error, fallback string) {
	switch err {
	case service.ErrStickyNoteNotFound:
		response.NotFound(c, "便签不存在")
	case service.ErrNoPermission:
		response.Forbidden(c, "没有权限操作该资源")
	default:
		response.InternalError(c, fallback)
	}
}
