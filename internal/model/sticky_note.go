// Package model 定义了与数据库表对应的数据结构
package model

import (
	"time"
)

// StickyNote 便签模型
// 对应数据库表 sticky_notes
// 与会话笔记无关，是用户的独立随手记
type StickyNote struct {
	// ID 便签唯一标识，自增主键
	ID int64 `gorm:"primaryKey" json:"id"`

	// UserID 所属用户ID，外键关联 users.id
	UserID int64 `gorm:"index;not null" json:"user_id"`

	// Content 便签内容
	Content string `gorm:"type:text;not null" json:"content"`

	// Color 便签颜色，前端展示用
	Color string `gorm:"size:20;default:yellow" json:"color"`

	// Pinned 是否置顶
	Pinned bool `gorm:"default:false" json:"pinned"`

	// CreatedAt 创建时间
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`

	// UpdatedAt 更新时间
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName 指定表名
func (StickyNote) TableName() string {
	return "sticky_notes"
}
