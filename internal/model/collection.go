// Package model 定义了与数据库表对应的数据结构
package model

import (
	"time"
)

// CollectionType 合集类型常量
const (
	CollectionTypeMoodboard  = "moodboard"  // 灵感板
	CollectionTypeSeries     = "series"     // 系列
	CollectionTypeExhibition = "exhibition" // 展览
)

// Collection 合集模型
// 对应数据库表 collections
// 用户把作品组织成带类型的合集（灵感板/系列/展览）
type Collection struct {
	// ID 合集唯一标识，自增主键
	ID int64 `gorm:"primaryKey" json:"id"`

	// UserID 所属用户ID，外键关联 users.id
	UserID int64 `gorm:"index;not null" json:"user_id"`

	// Title 合集标题
	Title string `gorm:"size:200;not null" json:"title"`

	// Type 合集类型，见 CollectionType* 常量
	Type string `gorm:"size:20;not null;index" json:"type"`

	// Description 合集描述，可选
	Description string `gorm:"type:text" json:"description"`

	// CreatedAt 创建时间
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`

	// UpdatedAt 更新时间
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Items 合集内的作品条目（一对多关系，删除合集时级联删除）
	Items []CollectionItem `gorm:"foreignKey:CollectionID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
}

// TableName 指定表名
func (Collection) TableName() string {
	return "collections"
}

// CollectionItem 合集条目
// 对应数据库表 collection_items
// 同一作品在同一合集中只能出现一次
type CollectionItem struct {
	// ID 条目唯一标识，自增主键
	ID int64 `gorm:"primaryKey" json:"id"`

	// CollectionID 所属合集ID，外键关联 collections.id
	CollectionID int64 `gorm:"uniqueIndex:idx_collection_artwork;not null" json:"collection_id"`

	// ArtworkID 作品ID，外键关联 artworks.id
	ArtworkID int64 `gorm:"uniqueIndex:idx_collection_artwork;not null" json:"artwork_id"`

	// Position 条目在合集内的位置，按加入顺序递增
	Position int `gorm:"not null" json:"position"`

	// Artwork 关联的作品（多对一关系）
	Artwork *Artwork `gorm:"foreignKey:ArtworkID" json:"artwork,omitempty"`
}

// TableName 指定表名
func (CollectionItem) TableName() string {
	return "collection_items"
}
