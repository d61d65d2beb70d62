// Package middleware 提供 HTTP 请求的中间件
package middleware

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

// CORSMiddleware 创建 CORS 跨域中间件
// 前端 SPA 与后端不同源，需要放行跨域请求
// 参数:
//   - allowOrigins: 允许的来源列表，包含 "*" 时放行所有来源
//
// 返回:
//   - gin.HandlerFunc: Gin 中间件函数
func CORSMiddleware(allowOrigins []string) gin.HandlerFunc {
	allowAll := len(allowOrigins) == 0
	for _, o := range allowOrigins {
		if o == "*" {
			allowAll = true
			break
		}
	}

	allowMethods := strings.Join([]string{
		http.MethodGet,
		http.MethodPost,
		http.MethodPut,
		http.MethodPatch,
		http.MethodDelete,
		http.MethodOptions,
	}, ", ")
	allowHeaders := strings.Join([]string{
		"Origin",
		"Content-Type",
		"Accept",
		"Authorization",
		"X-Requested-With",
	}, ", ")

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")

		// 检查来源是否被允许
		allowOrigin := ""
		if allowAll {
			allowOrigin = "*"
		} else {
			for _, o := range allowOrigins {
				if o == origin {
					allowOrigin = origin
					break
				}
			}
		}

		if allowOrigin != "" {
			c.Header("Access-Control-Allow-Origin", allowOrigin)
			c.Header("Access-Control-Allow-Credentials", "true")
			c.Header("Access-Control-Expose-Headers", "Content-Length")
		}

		// 处理预检请求（OPTIONS）
		// 浏览器在发送"非简单请求"前，会先发送 OPTIONS 请求检查服务器是否允许
		if c.Request.Method == http.MethodOptions {
			c.Header("Access-Control-Allow-Methods", allowMethods)
			c.Header("Access-Control-Allow-Headers", allowHeaders)
			c.Header("Access-Control-Max-Age", strconv.Itoa(86400))
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
