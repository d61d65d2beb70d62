// Package handler 提供 HTTP 请求处理器
package handler

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"artfolio-server/internal/config"
	"artfolio-server/pkg/response"
	"artfolio-server/pkg/util"
)

// allowedImageExts 允许上传的图片扩展名
var allowedImageExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// UploadHandler 照片上传处理器
// 文件落到本地磁盘，数据库里只存相对路径
type UploadHandler struct {
	cfg *config.UploadConfig
}

// NewUploadHandler 创建 UploadHandler 实例
func NewUploadHandler(cfg *config.UploadConfig) *UploadHandler {
	return &UploadHandler{cfg: cfg}
}

// UploadResponse 上传响应
type UploadResponse struct {
	URL string `json:"url"` // 可访问的文件路径
}

// Upload 上传照片
// @Summary 上传照片
// @Description 上传会话照片或画廊图片，返回存储路径
// @Tags 上传
// @Security Bearer
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "图片文件"
// @Success 201 {object} response.Response{data=UploadResponse}
// @Router /api/v1/upload [post]
func (h *UploadHandler) Upload(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, "未找到上传文件")
		return
	}

	if file.Size > h.cfg.MaxSizeMB*1024*1024 {
		response.BadRequest(c, "文件体积超过限制")
		return
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedImageExts[ext] {
		response.BadRequest(c, "不支持的文件类型")
		return
	}

	if err := os.MkdirAll(h.cfg.Dir, 0o755); err != nil {
		response.InternalError(c, "上传失败")
		return
	}

	// 随机文件名，避免路径穿越和同名覆盖
	name := util.GenerateUploadName(file.Filename)
	dst := filepath.Join(h.cfg.Dir, name)
	if err := c.SaveUploadedFile(file, dst); err != nil {
		response.InternalError(c, "上传失败")
		return
	}

	response.Created(c, UploadResponse{URL: "/uploads/" + name})
}
