// Package handler 提供 HTTP 请求处理器
package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"artfolio-server/internal/middleware"
	"artfolio-server/internal/service"
	"artfolio-server/pkg/response"
)

// ArtworkHandler 作品请求处理器
// 处理作品的增删改查及画廊图片管理
type ArtworkHandler struct {
	artworkService *service.ArtworkService
}

// NewArtworkHandler 创建 ArtworkHandler 实例
func NewArtworkHandler(artworkService *service.ArtworkService) *ArtworkHandler {
	return &ArtworkHandler{
		artworkService: artworkService,
	}
}

// parseIDParam 解析路径中的 ID 参数
func parseIDParam(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		response.BadRequest(c, "无效的 "+name)
		return 0, false
	}
	return id, true
}

// Create 创建作品
// @Summary 创建作品
// @Tags 作品
// @Security Bearer
// @Accept json
// @Produce json
// @Param body body service.CreateArtworkRequest true "作品信息"
// @Success 201 {object} response.Response{data=model.Artwork}
// @Router /api/v1/artworks [post]
func (h *ArtworkHandler) Create(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var req service.CreateArtworkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数错误: "+err.Error())
		return
	}

	artwork, err := h.artworkService.CreateArtwork(c.Request.Context(), userID, &req)
	if err != nil {
		if err == service.ErrInvalidStatus {
			response.BadRequest(c, "作品状态无效")
			return
		}
		response.InternalError(c, "创建作品失败")
		return
	}

	response.Created(c, artwork)
}

// List 获取作品列表
// @Summary 获取作品列表
// @Tags 作品
// @Security Bearer
// @Produce json
// @Param status query string false "状态过滤"
// @Success 200 {object} response.Response{data=[]model.Artwork}
// @Router /api/v1/artworks [get]
func (h *ArtworkHandler) List(c *gin.Context) {
	userID := middleware.GetUserID(c)
	status := c.Query("status")

	artworks, err := h.artworkService.ListArtworks(c.Request.Context(), userID, status)
	if err != nil {
		if err == service.ErrInvalidStatus {
			response.BadRequest(c, "作品状态无效")
			return
		}
		response.InternalError(c, "获取作品列表失败")
		return
	}

	response.Success(c, artworks)
}

// Get 获取作品详情
// @Summary 获取作品详情
// @Tags 作品
// @Security Bearer
// @Produce json
// @Param id path int true "作品ID"
// @Success 200 {object} response.Response{data=model.Artwork}
// @Router /api/v1/artworks/{id} [get]
func (h *ArtworkHandler) Get(c *gin.Context) {
	userID := middleware.GetUserID(c)
	artworkID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	artwork, err := h.artworkService.GetArtwork(c.Request.Context(), userID, artworkID)
	if err != nil {
		h.renderArtworkError(c, err, "获取作品失败")
		return
	}

	response.Success(c, artwork)
}

// Update 更新作品
// @Summary 更新作品
// @Tags 作品
// @Security Bearer
// @Accept json
// @Produce json
// @Param id path int true "作品ID"
// @Param body body service.UpdateArtworkRequest true "作品信息"
// @Success 200 {object} response.Response{data=model.Artwork}
// @Router /api/v1/artworks/{id} [put]
func (h *ArtworkHandler) Update(c *gin.Context) {
	userID := middleware.GetUserID(c)
	artworkID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req service.UpdateArtworkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数错误: "+err.Error())
		return
	}

	artwork, err := h.artworkService.UpdateArtwork(c.Request.Context(), userID, artworkID, &req)
	if err != nil {
		if err == service.ErrInvalidStatus {
			response.BadRequest(c, "作品状态无效")
			return
		}
		h.renderArtworkError(c, err, "更新作品失败")
		return
	}

	response.Success(c, artwork)
}

// Delete 删除作品
// @Summary 删除作品及其全部关联数据
// @Tags 作品
// @Security Bearer
// @Param id path int true "作品ID"
// @Success 204
// @Router /api/v1/artworks/{id} [delete]
func (h *ArtworkHandler) Delete(c *gin.Context) {
	userID := middleware.GetUserID(c)
	artworkID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.artworkService.DeleteArtwork(c.Request.Context(), userID, artworkID); err != nil {
		h.renderArtworkError(c, err, "删除作品失败")
		return
	}

	response.NoContent(c)
}

// AddImage 向作品画廊添加图片
// @Summary 添加画廊图片
// @Tags 作品
// @Security Bearer
// @Accept json
// @Produce json
// @Param id path int true "作品ID"
// @Param body body service.AddImageRequest true "图片信息"
// @Success 201 {object} response.Response{data=model.ArtworkImage}
// @Router /api/v1/artworks/{id}/images [post]
func (h *ArtworkHandler) AddImage(c *gin.Context) {
	userID := middleware.GetUserID(c)
	artworkID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req service.AddImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数错误: "+err.Error())
		return
	}

	image, err := h.artworkService.AddImage(c.Request.Context(), userID, artworkID, &req)
	if err != nil {
		h.renderArtworkError(c, err, "添加图片失败")
		return
	}
	if image == nil {
		// 相同路径的图片已在画廊中，不重复添加
		response.SuccessWithMessage(c, "图片已在画廊中", nil)
		return
	}

	response.Created(c, image)
}

// DeleteImage 从画廊删除图片
// @Summary 删除画廊图片
// @Tags 作品
// @Security Bearer
// @Param id path int true "作品ID"
// @Param imageId path int true "图片ID"
// @Success 204
// @Router /api/v1/artworks/{id}/images/{imageId} [delete]
func (h *ArtworkHandler) DeleteImage(c *gin.Context) {
	userID := middleware.GetUserID(c)
	artworkID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	imageID, ok := parseIDParam(c, "imageId")
	if !ok {
		return
	}

	if err := h.artworkService.DeleteImage(c.Request.Context(), userID, artworkID, imageID); err != nil {
		if err == service.ErrImageNotFound {
			response.NotFound(c, "图片不存在")
			return
		}
		h.renderArtworkError(c, err, "删除图片失败")
		return
	}

	response.NoContent(c)
}

// SetCover 设置作品封面
// @Summary 将画廊图片设为封面
// @Tags 作品
// @Security Bearer
// @Param id path int true "作品ID"
// @Param imageId path int true "图片ID"
// @Success 200 {object} response.Response
// @Router /api/v1/artworks/{id}/images/{imageId}/cover [put]
func (h *ArtworkHandler) SetCover(c *gin.Context) {
	userID := middleware.GetUserID(c)
	artworkID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	imageID, ok := parseIDParam(c, "imageId")
	if !ok {
		return
	}

	if err := h.artworkService.SetCover(c.Request.Context(), userID, artworkID, imageID); err != nil {
		if err == service.ErrImageNotFound {
			response.NotFound(c, "图片不存在")
			return
		}
		h.renderArtworkError(c, err, "设置封面失败")
		return
	}

	response.SuccessWithMessage(c, "封面设置成功", nil)
}

// renderArtworkError 按错误类型渲染作品相关的通用错误
func (h *ArtworkHandler) renderArtworkError(c *gin.Context, err error, fallback string) {
	switch err {
	case service.ErrArtworkNotFound:
		response.ArtworkNotFound(c)
	case service.ErrNoPermission:
		response.Forbidden(c, "没有权限操作该资源")
	default:
		response.InternalError(c, fallback)
	}
}
