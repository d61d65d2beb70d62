// Package model 定义了与数据库表对应的数据结构
package model

import (
	"time"
)

// User 用户模型
// 对应数据库表 users
// 存储用户的基本信息，包括认证凭据
type User struct {
	// ID 用户唯一标识，自增主键
	ID int64 `gorm:"primaryKey" json:"id"`

	// Username 用户名，用于登录，全局唯一
	Username string `gorm:"size:50;uniqueIndex;not null" json:"username"`

	// PasswordHash 密码的 bcrypt 哈希值
	// 永远不要存储明文密码
	PasswordHash string `gorm:"size:255;not null" json:"-"`

	// Email 用户邮箱，可选
	// 使用指针类型表示可以为 NULL
	Email *string `gorm:"size:100;uniqueIndex" json:"email,omitempty"`

	// Avatar 用户头像路径，可选
	Avatar *string `gorm:"size:500" json:"avatar,omitempty"`

	// CreatedAt 创建时间，由 GORM 自动填充
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`

	// UpdatedAt 更新时间，由 GORM 自动更新
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Artworks 用户的所有作品（一对多关系）
	Artworks []Artwork `gorm:"foreignKey:UserID" json:"artworks,omitempty"`
}

// TableName 指定表名
func (User) TableName() string {
	return "users"
}
