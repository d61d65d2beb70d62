// Package handler 提供 HTTP 请求处理器
package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"artfolio-server/internal/middleware"
	"artfolio-server/internal/service"
	"artfolio-server/pkg/response"
)

// StatsHandler 统计请求处理器
type StatsHandler struct {
	statsService *service.StatsService
}

// NewStatsHandler 创建 StatsHandler 实例
func NewStatsHandler(statsService *service.StatsService) *StatsHandler {
	return &StatsHandler{
		statsService: statsService,
	}
}

// Get 获取统计数据
// @Summary 获取活动统计
// @Description 返回全量统计与指定年份的年度统计；year 缺省为当前年
// @Tags 统计
// @Security Bearer
// @Produce json
// @Param year query int false "年度口径的年份"
// @Success 200 {object} response.Response{data=service.StatsResponse}
// @Router /api/v1/stats [get]
func (h *StatsHandler) Get(c *gin.Context) {
	userID := middleware.GetUserID(c)

	year := 0
	if raw := c.Query("year"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1900 || parsed > 9999 {
			response.BadRequest(c, "无效的年份")
			return
		}
		year = parsed
	}

	result, err := h.statsService.GetStats(c.Request.Context(), userID, year)
	if err != nil {
		response.InternalError(c, "获取统计数据失败")
		return
	}

	response.Success(c, result)
}
