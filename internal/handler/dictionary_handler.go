// Package handler 提供 HTTP 请求处理器
package handler

import (
	"github.com/gin-gonic/gin"

	"artfolio-server/internal/middleware"
	"artfolio-server/internal/service"
	"artfolio-server/pkg/response"
)

// DictionaryHandler 字典请求处理器
// 体裁/风格/材料是只读的全局字典，标签按用户增删
type DictionaryHandler struct {
	dictService *service.DictionaryService
}

// NewDictionaryHandler 创建 DictionaryHandler 实例
func NewDictionaryHandler(dictService *service.DictionaryService) *DictionaryHandler {
	return &DictionaryHandler{
		dictService: dictService,
	}
}

// List 获取全部字典
// @Summary 获取体裁/风格/材料字典
// @Tags 字典
// @Security Bearer
// @Produce json
// @Success 200 {object} response.Response{data=service.Dictionaries}
// @Router /api/v1/dictionaries [get]
func (h *DictionaryHandler) List(c *gin.Context) {
	result, err := h.dictService.GetDictionaries(c.Request.Context())
	if err != nil {
		response.InternalError(c, "获取字典失败")
		return
	}

	response.Success(c, result)
}

// ListTags 获取用户的标签列表
// @Summary 获取标签列表
// @Tags 字典
// @Security Bearer
// @Produce json
// @Success 200 {object} response.Response{data=[]model.Tag}
// @Router /api/v1/tags [get]
func (h *DictionaryHandler) ListTags(c *gin.Context) {
	userID := middleware.GetUserID(c)

	tags, err := h.dictService.ListTags(c.Request.Context(), userID)
	if err != nil {
		response.InternalError(c, "获取标签列表失败")
		return
	}

	response.Success(c, tags)
}

// CreateTag 创建标签
// @Summary 创建标签
// @Tags 字典
// @Security Bearer
// @Accept json
// @Produce json
// @Param body body service.CreateTagRequest true "标签"
// @Success 201 {object} response.Response{data=model.Tag}
// @Router /api/v1/tags [post]
func (h *DictionaryHandler) CreateTag(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var req service.CreateTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数错误: "+err.Error())
		return
	}

	tag, err := h.dictService.CreateTag(c.Request.Context(), userID, &req)
	if err != nil {
		if err == service.ErrTagExists {
			response.ErrorWithCode(c, 400, response.CodeBadRequest, "同名标签已存在")
			return
		}
		response.InternalError(c, "创建标签失败")
		return
	}

	response.Created(c, tag)
}

// DeleteTag 删除标签
// @Summary 删除标签并清理其作品关联
// @Tags 字典
// @Security Bearer
// @Param id path int true "标签ID"
// @Success 204
// @Router /api/v1/tags/{id} [delete]
func (h *DictionaryHandler) DeleteTag(c *gin.Context) {
	userID := middleware.GetUserID(c)
	tagID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.dictService.DeleteTag(c.Request.Context(), userID, tagID); err != nil {
		switch err {
		case service.ErrTagNotFound:
			response.NotFound(c, "标签不存在")
		case service.ErrNoPermission:
			response.Forbidden(c, "没有权限操作该资源")
		default:
			response.InternalError(c, "删除标签失败")
		}
		return
	}

	response.NoContent(c)
}
