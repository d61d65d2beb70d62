// Package model 定义了与数据库表对应的数据结构
package model

import (
	"time"
)

// ArtworkStatus 作品状态常量
const (
	ArtworkStatusPlanned    = "planned"     // 计划中
	ArtworkStatusInProgress = "in_progress" // 创作中
	ArtworkStatusCompleted  = "completed"   // 已完成
	ArtworkStatusOnHold     = "on_hold"     // 已搁置
)

// Artwork 作品模型
// 对应数据库表 artworks
// 一件作品是时间追踪的对象，拥有若干创作会话和画廊图片
type Artwork struct {
	// ID 作品唯一标识，自增主键
	ID int64 `gorm:"primaryKey" json:"id"`

	// UserID 所属用户ID，外键关联 users.id
	UserID int64 `gorm:"index;not null" json:"user_id"`

	// Title 作品标题
	Title string `gorm:"size:200;not null" json:"title"`

	// Description 作品描述，可选
	Description string `gorm:"type:text" json:"description"`

	// Status 作品状态，见 ArtworkStatus* 常量
	Status string `gorm:"size:20;default:in_progress;index" json:"status"`

	// StartedYear 开始创作的年份，可选
	// 未填写时统计口径退回到 created_at 的年份
	StartedYear *int `json:"started_year,omitempty"`

	// GenreID 体裁ID，可选，外键关联 genres.id
	GenreID *int64 `gorm:"index" json:"genre_id,omitempty"`

	// StyleID 风格ID，可选，外键关联 styles.id
	StyleID *int64 `gorm:"index" json:"style_id,omitempty"`

	// CreatedAt 创建时间
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`

	// UpdatedAt 更新时间
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Genre 体裁（多对一关系）
	Genre *Genre `gorm:"foreignKey:GenreID" json:"genre,omitempty"`

	// Style 风格（多对一关系）
	Style *Style `gorm:"foreignKey:StyleID" json:"style,omitempty"`

	// Materials 使用的材料（多对多关系，连接表 artwork_materials）
	Materials []Material `gorm:"many2many:artwork_materials" json:"materials,omitempty"`

	// Tags 标签（多对多关系，连接表 artwork_tags）
	Tags []Tag `gorm:"many2many:artwork_tags" json:"tags,omitempty"`

	// Images 画廊图片（一对多关系，删除作品时级联删除）
	Images []ArtworkImage `gorm:"foreignKey:ArtworkID;constraint:OnDelete:CASCADE" json:"images,omitempty"`

	// Sessions 作品上的创作会话（一对多关系，删除作品时级联删除）
	Sessions []Session `gorm:"foreignKey:ArtworkID;constraint:OnDelete:CASCADE" json:"sessions,omitempty"`
}

// TableName 指定表名
func (Artwork) TableName() string {
	return "artworks"
}

// ArtworkImage 作品画廊图片
// 对应数据库表 artwork_images
// 图片可由用户直接上传，也可由会话笔记的照片显式"收录"而来
type ArtworkImage struct {
	// ID 图片唯一标识，自增主键
	ID int64 `gorm:"primaryKey" json:"id"`

	// ArtworkID 所属作品ID，外键关联 artworks.id
	ArtworkID int64 `gorm:"index;not null" json:"artwork_id"`

	// URL 图片的存储路径
	// 画廊去重按此字符串精确比较
	URL string `gorm:"size:500;not null" json:"url"`

	// IsCover 是否为封面图
	IsCover bool `gorm:"default:false" json:"is_cover"`

	// AddedAt 加入画廊的时间
	AddedAt time.Time `gorm:"autoCreateTime" json:"added_at"`
}

// TableName 指定表名
func (ArtworkImage) TableName() string {
	return "artwork_images"
}
