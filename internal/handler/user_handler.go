// Package handler 提供 HTTP 请求处理器
package handler

import (
	"github.com/gin-gonic/gin"

	"artfolio-server/internal/middleware"
	"artfolio-server/internal/service"
	"artfolio-server/pkg/response"
)

// UserHandler 用户请求处理器
type UserHandler struct {
	userService *service.UserService
}

// NewUserHandler 创建 UserHandler 实例
func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

// GetProfile 获取当前用户资料
// @Summary 获取用户资料
// @Tags 用户
// @Security Bearer
// @Produce json
// @Success 200 {object} response.Response{data=model.User}
// @Router /api/v1/users/me [get]
func (h *UserHandler) GetProfile(c *gin.Context) {
	userID := middleware.GetUserID(c)

	user, err := h.userService.GetProfile(c.Request.Context(), userID)
	if err != nil {
		if err == service.ErrUserNotFound {
			response.UserNotFound(c)
			return
		}
		response.InternalError(c, "获取用户资料失败")
		return
	}

	response.Success(c, user)
}

// UpdateProfile 更新当前用户资料
// @Summary 更新用户资料
// @Tags 用户
// @Security Bearer
// @Accept json
// @Produce json
// @Param body body service.UpdateProfileRequest true "资料"
// @Success 200 {object} response.Response{data=model.User}
// @Router /api/v1/users/me [put]
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var req service.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数错误: "+err.Error())
		return
	}

	user, err := h.userService.UpdateProfile(c.Request.Context(), userID, &req)
	if err != nil {
		switch err {
		case service.ErrUserNotFound:
			response.UserNotFound(c)
		case service.ErrEmailExists:
			response.ErrorWithCode(c, 400, response.CodeBadRequest, "邮箱已被注册")
		default:
			response.InternalError(c, "更新用户资料失败")
		}
		return
	}

	response.Success(c, user)
}

// ChangePassword 修改密码
// @Summary 修改密码
// @Tags 用户
// @Security Bearer
// @Accept json
// @Produce json
// @Param body body service.ChangePasswordRequest true "密码"
// @Success 200 {object} response.Response
// @Router /api/v1/users/me/password [put]
func (h *UserHandler) ChangePassword(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var req service.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数错误: "+err.Error())
		return
	}

	if err := h.userService.ChangePassword(c.Request.Context(), userID, &req); err != nil {
		switch err {
		case service.ErrUserNotFound:
			response.UserNotFound(c)
		case service.ErrOldPasswordWrong:
			response.ErrorWithCode(c, 400, response.CodePasswordWrong, "原密码错误")
		default:
			response.InternalError(c, "修改密码失败")
		}
		return
	}

	response.SuccessWithMessage(c, "密码修改成功", nil)
}
