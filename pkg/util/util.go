// Package util 提供通用工具函数
package util

import (
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// HashPassword 使用 bcrypt 哈希密码
// bcrypt 是一种专门为密码哈希设计的算法，自动添加盐值
// 参数:
//   - password: 明文密码
//
// 返回:
//   - string: 密码哈希值
//   - error: 哈希错误
func HashPassword(password string) (string, error) {
	// bcrypt.DefaultCost 是默认的计算成本（10）
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

// CheckPassword 验证密码是否匹配
// 参数:
//   - password: 用户输入的明文密码
//   - hash: 数据库中存储的哈希值
//
// 返回:
//   - bool: 是否匹配
func CheckPassword(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// GenerateUploadName 为上传文件生成存储文件名
// 使用 UUID v4 保证唯一性，保留原始扩展名（统一小写）
// 参数:
//   - originalName: 上传时的原始文件名
//
// 返回:
//   - string: 形如 "3f2a....c9.jpg" 的存储文件名
func GenerateUploadName(originalName string) string {
	ext := strings.ToLower(filepath.Ext(originalName))
	name := strings.ReplaceAll(uuid.New().String(), "-", "")
	return name + ext
}

// TruncateString 截断字符串到指定长度
// 如果字符串超过指定长度，截断并添加 "..."
// 参数:
//   - s: 原字符串
//   - maxLen: 最大长度
//
// 返回:
//   - string: 截断后的字符串
func TruncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}

// StringPtr 返回字符串的指针
// 用于可选字段的赋值
func StringPtr(s string) *string {
	return &s
}

// Int64Ptr 返回 int64 的指针
func Int64Ptr(i int64) *int64 {
	return &i
}

// IntPtr 返回 int 的指针
func IntPtr(i int) *int {
	return &i
}

// BoolPtr 返回 bool 的指针
func BoolPtr(b bool) *bool {
	return &b
}
