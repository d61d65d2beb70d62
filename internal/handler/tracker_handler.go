// Package handler 提供 HTTP 请求处理器
package handler

import (
	"github.com/gin-gonic/gin"

	"artfolio-server/internal/middleware"
	"artfolio-server/internal/service"
	"artfolio-server/pkg/response"
)

// TrackerHandler 创作计时请求处理器
// 计时器是严格的请求/响应模型：客户端轮询当前会话接口，
// 服务端每次读取都重新计算已计时间，不做任何推送
type TrackerHandler struct {
	trackerService *service.TrackerService
}

// NewTrackerHandler 创建 TrackerHandler 实例
func NewTrackerHandler(trackerService *service.TrackerService) *TrackerHandler {
	return &TrackerHandler{
		trackerService: trackerService,
	}
}

// Current 获取当前会话快照
// @Summary 获取当前会话
// @Description 返回当前活跃会话的快照；没有活跃会话时 has_active 为 false
// @Tags 计时器
// @Security Bearer
// @Produce json
// @Success 200 {object} response.Response{data=service.CurrentSessionResponse}
// @Router /api/v1/tracker/current [get]
func (h *TrackerHandler) Current(c *gin.Context) {
	userID := middleware.GetUserID(c)

	result, err := h.trackerService.GetCurrent(c.Request.Context(), userID)
	if err != nil {
		response.InternalError(c, "获取当前会话失败")
		return
	}

	response.Success(c, result)
}

// StartRequest 开始计时请求
type StartRequest struct {
	ArtworkID int64 `json:"artwork_id" binding:"required"` // 目标作品ID
}

// Start 开始计时
// @Summary 在指定作品上开始计时
// @Description 同一作品上重复调用是幂等的；另一件作品上已有活跃会话时返回冲突
// @Tags 计时器
// @Security Bearer
// @Accept json
// @Produce json
// @Param body body StartRequest true "目标作品"
// @Success 200 {object} response.Response{data=service.CurrentSessionResponse}
// @Router /api/v1/tracker/start [post]
func (h *TrackerHandler) Start(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var req StartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, 400, response.CodeMissingArtworkID, "缺少作品ID")
		return
	}

	result, err := h.trackerService.Start(c.Request.Context(), userID, req.ArtworkID)
	if err != nil {
		switch err {
		case service.ErrArtworkRequired:
			response.ErrorWithCode(c, 400, response.CodeMissingArtworkID, "缺少作品ID")
		case service.ErrArtworkNotFound:
			response.ArtworkNotFound(c)
		case service.ErrAnotherSessionActive:
			response.SessionConflict(c)
		default:
			response.InternalError(c, "开始计时失败")
		}
		return
	}

	response.Success(c, result)
}

// Pause 暂停或恢复当前会话
// @Summary 暂停/恢复当前会话
// @Description 计时中则暂停，暂停中则恢复
// @Tags 计时器
// @Security Bearer
// @Produce json
// @Success 200 {object} response.Response{data=service.CurrentSessionResponse}
// @Router /api/v1/tracker/pause [post]
func (h *TrackerHandler) Pause(c *gin.Context) {
	userID := middleware.GetUserID(c)

	result, err := h.trackerService.TogglePause(c.Request.Context(), userID)
	if err != nil {
		if err == service.ErrNoActiveSession {
			response.NoActiveSession(c)
			return
		}
		response.InternalError(c, "操作失败")
		return
	}

	response.Success(c, result)
}

// Stop 停止当前会话
// @Summary 停止当前会话
// @Description 会话成为不可变的历史记录，可附带笔记、照片和手动修正的时长
// @Tags 计时器
// @Security Bearer
// @Accept json
// @Produce json
// @Param body body service.StopRequest false "停止参数"
// @Success 200 {object} response.Response{data=service.StopResponse}
// @Router /api/v1/tracker/stop [post]
func (h *TrackerHandler) Stop(c *gin.Context) {
	userID := middleware.GetUserID(c)

	// 请求体可以为空：直接停止，不附带笔记
	var req service.StopRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.BadRequest(c, "请求参数错误: "+err.Error())
			return
		}
	}

	result, err := h.trackerService.Stop(c.Request.Context(), userID, &req)
	if err != nil {
		if err == service.ErrNoActiveSession {
			response.NoActiveSession(c)
			return
		}
		response.InternalError(c, "停止计时失败")
		return
	}

	response.Success(c, result)
}

// Discard 放弃当前会话
// @Summary 放弃当前会话
// @Description 删除会话，不留历史；没有活跃会话时也返回成功
// @Tags 计时器
// @Security Bearer
// @Produce json
// @Success 200 {object} response.Response
// @Router /api/v1/tracker/discard [post]
func (h *TrackerHandler) Discard(c *gin.Context) {
	userID := middleware.GetUserID(c)

	if err := h.trackerService.Discard(c.Request.Context(), userID); err != nil {
		response.InternalError(c, "放弃会话失败")
		return
	}

	response.SuccessWithMessage(c, "会话已放弃", nil)
}

// History 获取作品的历史会话
// @Summary 获取作品的历史会话列表
// @Tags 计时器
// @Security Bearer
// @Produce json
// @Param id path int true "作品ID"
// @Success 200 {object} response.Response{data=[]service.SessionHistoryItem}
// @Router /api/v1/artworks/{id}/sessions [get]
func (h *TrackerHandler) History(c *gin.Context) {
	userID := middleware.GetUserID(c)
	artworkID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	items, err := h.trackerService.History(c.Request.Context(), userID, artworkID)
	if err != nil {
		if err == service.ErrArtworkNotFound {
			response.ArtworkNotFound(c)
			return
		}
		response.InternalError(c, "获取历史会话失败")
		return
	}

	response.Success(c, items)
}
