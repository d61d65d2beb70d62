// Package handler 提供 HTTP 请求处理器
package handler

import (
	"github.com/gin-gonic/gin"

	"artfolio-server/internal/middleware"
	"artfolio-server/internal/service"
	"artfolio-server/pkg/response"
)

// CollectionHandler 合集请求处理器
type CollectionHandler struct {
	collectionService *service.CollectionService
}

// NewCollectionHandler 创建 CollectionHandler 实例
func NewCollectionHandler(collectionService *service.CollectionService) *CollectionHandler {
	return &CollectionHandler{
		collectionService: collectionService,
	}
}

// Create 创建合集
// @Summary 创建合集
// @Tags 合集
// @Security Bearer
// @Accept json
// @Produce json
// @Param body body service.CreateCollectionRequest true "合集信息"
// @Success 201 {object} response.Response{data=model.Collection}
// @Router /api/v1/collections [post]
func (h *CollectionHandler) Create(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var req service.CreateCollectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数错误: "+err.Error())
		return
	}

	collection, err := h.collectionService.CreateCollection(c.Request.Context(), userID, &req)
	if err != nil {
		if err == service.ErrInvalidCollection {
			response.BadRequest(c, "合集类型无效")
			return
		}
		response.InternalError(c, "创建合集失败")
		return
	}

	response.Created(c, collection)
}

// List 获取合集列表
// @Summary 获取合集列表
// @Tags 合集
// @Security Bearer
// @Produce json
// @Param type query string false "类型过滤"
// @Success 200 {object} response.Response{data=[]model.Collection}
// @Router /api/v1/collections [get]
func (h *CollectionHandler) List(c *gin.Context) {
	userID := middleware.GetUserID(c)
	collectionType := c.Query("type")

	collections, err := h.collectionService.ListCollections(c.Request.Context(), userID, collectionType)
	if err != nil {
		if err == service.ErrInvalidCollection {
			response.BadRequest(c, "合集类型无效")
			return
		}
		response.InternalError(c, "获取合集列表失败")
		return
	}

	response.Success(c, collections)
}

// Get 获取合集详情
// @Summary 获取合集详情及其条目
// @Tags 合集
// @Security Bearer
// @Produce json
// @Param id path int true "合集ID"
// @Success 200 {object} response.Response{data=model.Collection}
// @Router /api/v1/collections/{id} [get]
func (h *CollectionHandler) Get(c *gin.Context) {
	userID := middleware.GetUserID(c)
	collectionID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	collection, err := h.collectionService.GetCollection(c.Request.Context(), userID, collectionID)
	if err != nil {
		h.renderCollectionError(c, err, "获取合集失败")
		return
	}

	response.Success(c, collection)
}

// Update 更新合集
// @Summary 更新合集
// @Tags 合集
// @Security Bearer
// @Accept json
// @Produce json
// @Param id path int true "合集ID"
// @Param body body service.UpdateCollectionRequest true "合集信息"
// @Success 200 {object} response.Response{data=model.Collection}
// @Router /api/v1/collections/{id} [put]
func (h *CollectionHandler) Update(c *gin.Context) {
	userID := middleware.GetUserID(c)
	collectionID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req service.UpdateCollectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数错误: "+err.Error())
		return
	}

	collection, err := h.collectionService.UpdateCollection(c.Request.Context(), userID, collectionID, &req)
	if err != nil {
		if err == service.ErrInvalidCollection {
			response.BadRequest(c, "合集类型无效")
			return
		}
		h.renderCollectionError(c, err, "更新合集失败")
		return
	}

	response.Success(c, collection)
}

// Delete 删除合集
// @Summary 删除合集及其全部条目
// @Tags 合集
// @Security Bearer
// @Param id path int true "合集ID"
// @Success 204
// @Router /api/v1/collections/{id} [delete]
func (h *CollectionHandler) Delete(c *gin.Context) {
	userID := middleware.GetUserID(c)
	collectionID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.collectionService.DeleteCollection(c.Request.Context(), userID, collectionID); err != nil {
		h.renderCollectionError(c, err, "删除合集失败")
		return
	}

	response.NoContent(c)
}

// AddItemRequest 向合集追加作品请求
type AddItemRequest struct {
	ArtworkID int64 `json:"artwork_id" binding:"required"` // 作品ID
}

// AddItem 向合集追加作品
// @Summary 向合集追加作品
// @Tags 合集
// @Security Bearer
// @Accept json
// @Produce json
// @Param id path int true "合集ID"
// @Param body body AddItemRequest true "作品"
// @Success 201 {object} response.Response{data=model.CollectionItem}
// @Router /api/v1/collections/{id}/items [post]
func (h *CollectionHandler) AddItem(c *gin.Context) {
	userID := middleware.GetUserID(c)
	collectionID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数错误: "+err.Error())
		return
	}

	item, err := h.collectionService.AddItem(c.Request.Context(), userID, collectionID, req.ArtworkID)
	if err != nil {
		switch err {
		case service.ErrArtworkNotFound:
			response.ArtworkNotFound(c)
		case service.ErrItemExists:
			response.Conflict(c, response.CodeDuplicateItem, "作品已在合集中")
		default:
			h.renderCollectionError(c, err, "追加作品失败")
		}
		return
	}

	response.Created(c, item)
}

// RemoveItem 从合集移除作品
// @Summary 从合集移除作品
// @Tags 合集
// @Security Bearer
// @Param id path int true "合集ID"
// @Param artworkId path int true "作品ID"
// @Success 204
// @Router /api/v1/collections/{id}/items/{artworkId} [delete]
func (h *CollectionHandler) RemoveItem(c *gin.Context) {
	userID := middleware.GetUserID(c)
	collectionID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	artworkID, ok := parseIDParam(c, "artworkId")
	if !ok {
		return
	}

	if err := h.collectionService.RemoveItem(c.Request.Context(), userID, collectionID, artworkID); err != nil {
		h.renderCollectionError(c, err, "移除作品失败")
		return
	}

	response.NoContent(c)
}

// renderCollectionError 按错误类型渲染合集相关的通用错误
func (h *CollectionHandler) renderCollectionError(c *gin.Context, err error, fallback string) {
	switch err {
	case service.ErrCollectionNotFound:
		response.CollectionNotFound(c)
	case service.ErrNoPermission:
		response.Forbidden(c, "没有权限操作该资源")
	default:
		response.InternalError(c, fallback)
	}
}
