// Package model 定义了与数据库表对应的数据结构
package model

import (
	"time"
)

// MaxSessionSeconds 单次会话允许累计的最大秒数（12 小时）
// 超过后会话会在下一次读取时被强制暂停，防止忘记停止的会话
// 把总时长撑到不合理的数值
const MaxSessionSeconds int64 = 12 * 60 * 60

// Session 创作会话模型
// 对应数据库表 sessions
// 表示用户在一件作品上的一段计时工作
//
// 字段语义约定:
//   - end_time 为 NULL 表示会话仍然活跃（每个用户同时至多一个）
//   - start_time 为 NULL 且 end_time 为 NULL 表示会话处于暂停状态
//   - start_time 非 NULL 表示正在计时，真实已计时间为
//     duration_seconds + (now - start_time)
type Session struct {
	// ID 会话唯一标识，自增主键
	ID int64 `gorm:"primaryKey" json:"id"`

	// UserID 所属用户ID，外键关联 users.id
	UserID int64 `gorm:"index;not null" json:"user_id"`

	// ArtworkID 目标作品ID，外键关联 artworks.id
	ArtworkID int64 `gorm:"index;not null" json:"artwork_id"`

	// StartTime 当前计时区间的起点
	// 暂停时置为 NULL，恢复时重置为当前时间
	StartTime *time.Time `json:"start_time,omitempty"`

	// EndTime 会话结束时间
	// 仅在会话停止后有值，此后会话成为不可变的历史记录
	EndTime *time.Time `gorm:"index" json:"end_time,omitempty"`

	// DurationSeconds 已累计的秒数
	// 不包含当前正在计时的区间
	DurationSeconds int64 `gorm:"default:0" json:"duration_seconds"`

	// CreatedAt 创建时间
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`

	// Artwork 目标作品（多对一关系）
	Artwork *Artwork `gorm:"foreignKey:ArtworkID" json:"artwork,omitempty"`

	// Note 会话笔记（一对一关系，停止时可选创建，删除会话时级联删除）
	Note *Note `gorm:"foreignKey:SessionID;constraint:OnDelete:CASCADE" json:"note,omitempty"`
}

// TableName 指定表名
func (Session) TableName() string {
	return "sessions"
}

// Note 会话笔记模型
// 对应数据库表 notes
// 在停止会话时一次性创建，记录这次创作的文字和照片，创建后不可修改
type Note struct {
	// ID 笔记唯一标识，自增主键
	ID int64 `gorm:"primaryKey" json:"id"`

	// SessionID 所属会话ID，外键关联 sessions.id，每个会话至多一条
	SessionID int64 `gorm:"uniqueIndex;not null" json:"session_id"`

	// Content 笔记文字内容
	Content string `gorm:"type:text" json:"content"`

	// PhotoURL 笔记照片的存储路径，可选
	PhotoURL *string `gorm:"size:500" json:"photo_url,omitempty"`

	// AddedAt 创建时间
	AddedAt time.Time `gorm:"autoCreateTime" json:"added_at"`
}

// TableName 指定表名
func (Note) TableName() string {
	return "notes"
}
