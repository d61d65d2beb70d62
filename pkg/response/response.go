// Package response 提供统一的 HTTP 响应格式
// 所有 API 都使用相同的响应结构，便于前端处理
package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Response 统一响应结构
// code: 业务状态码（0 表示成功）
// message: 提示信息
// data: 响应数据
type Response struct {
	Code    int         `json:"code"`           // 业务状态码
	Message string      `json:"message"`        // 提示信息
	Data    interface{} `json:"data,omitempty"` // 响应数据，可选
}

// 业务状态码定义
const (
	CodeSuccess       = 0    // 成功
	CodeBadRequest    = 1000 // 请求参数错误
	CodeUnauthorized  = 1001 // 未授权
	CodeForbidden     = 1002 // 禁止访问
	CodeNotFound      = 1003 // 资源不存在
	CodeInternalError = 1004 // 服务器内部错误

	CodeUserExists    = 1101 // 用户已存在
	CodeUserNotFound  = 1102 // 用户不存在
	CodePasswordWrong = 1103 // 密码错误

	CodeArtworkNotFound = 1201 // 作品不存在

	CodeNoActiveSession    = 1301 // 没有活跃会话
	CodeSessionConflict    = 1302 // 另一件作品上已有活跃会话
	CodeMissingArtworkID   = 1303 // 缺少作品ID
	CodeSessionNotFound    = 1304 // 会话不存在

	CodeCollectionNotFound = 1401 // 合集不存在
	CodeDuplicateItem      = 1402 // 作品已在合集中
)

// Success 返回成功响应
// 参数:
//   - c: Gin 上下文
//   - data: 响应数据，可以是任意类型
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    CodeSuccess,
		Message: "success",
		Data:    data,
	})
}

// SuccessWithMessage 返回成功响应（自定义提示信息）
func SuccessWithMessage(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    CodeSuccess,
		Message: message,
		Data:    data,
	})
}

// Created 返回 201 创建成功响应
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Response{
		Code:    CodeSuccess,
		Message: "创建成功",
		Data:    data,
	})
}

// NoContent 返回 204 无内容响应（用于删除操作）
func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Error 返回错误响应
// 参数:
//   - c: Gin 上下文
//   - httpCode: HTTP 状态码
//   - message: 错误信息
func Error(c *gin.Context, httpCode int, message string) {
	c.JSON(httpCode, Response{
		Code:    httpCode,
		Message: message,
	})
}

// ErrorWithCode 返回错误响应（带业务状态码）
// 参数:
//   - c: Gin 上下文
//   - httpCode: HTTP 状态码
//   - bizCode: 业务状态码
//   - message: 错误信息
func ErrorWithCode(c *gin.Context, httpCode, bizCode int, message string) {
	c.JSON(httpCode, Response{
		Code:    bizCode,
		Message: message,
	})
}

// BadRequest 返回 400 错误（请求参数错误）
func BadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, Response{
		Code:    CodeBadRequest,
		Message: message,
	})
}

// Unauthorized 返回 401 错误（未授权）
func Unauthorized(c *gin.Context, message string) {
	c.JSON(http.StatusUnauthorized, Response{
		Code:    CodeUnauthorized,
		Message: message,
	})
}

// Forbidden 返回 403 错误（禁止访问）
func Forbidden(c *gin.Context, message string) {
	c.JSON(http.StatusForbidden, Response{
		Code:    CodeForbidden,
		Message: message,
	})
}

// NotFound 返回 404 错误（资源不存在）
func NotFound(c *gin.Context, message string) {
	c.JSON(http.StatusNotFound, Response{
		Code:    CodeNotFound,
		Message: message,
	})
}

// Conflict 返回 409 错误（状态冲突）
func Conflict(c *gin.Context, bizCode int, message string) {
	c.JSON(http.StatusConflict, Response{
		Code:    bizCode,
		Message: message,
	})
}

// InternalError 返回 500 错误（服务器内部错误）
func InternalError(c *gin.Context, message string) {
	c.JSON(http.StatusInternalServerError, Response{
		Code:    CodeInternalError,
		Message: message,
	})
}

// UserExists 返回用户已存在错误
func UserExists(c *gin.Context) {
	c.JSON(http.StatusBadRequest, Response{
		Code:    CodeUserExists,
		Message: "用户名已存在",
	})
}

// UserNotFound 返回用户不存在错误
func UserNotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, Response{
		Code:    CodeUserNotFound,
		Message: "用户不存在",
	})
}

// PasswordWrong 返回密码错误
func PasswordWrong(c *gin.Context) {
	c.JSON(http.StatusUnauthorized, Response{
		Code:    CodePasswordWrong,
		Message: "密码错误",
	})
}

// ArtworkNotFound 返回作品不存在错误
func ArtworkNotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, Response{
		Code:    CodeArtworkNotFound,
		Message: "作品不存在",
	})
}

// NoActiveSession 返回没有活跃会话错误
// 客户端应据此提示用户状态已不同步，而不是静默忽略
func NoActiveSession(c *gin.Context) {
	c.JSON(http.StatusConflict, Response{
		Code:    CodeNoActiveSession,
		Message: "当前没有正在计时的会话",
	})
}

// SessionConflict 返回会话冲突错误
// 用户在另一件作品上已有活跃会话
func SessionConflict(c *gin.Context) {
	c.JSON(http.StatusConflict, Response{
		Code:    CodeSessionConflict,
		Message: "另一件作品上已有正在计时的会话，请先停止它",
	})
}

// CollectionNotFound 返回合集不存在错误
func CollectionNotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, Response{
		Code:    CodeCollectionNotFound,
		Message: "合集不存在",
	})
}
