// Package model 定义了与数据库表对应的数据结构
package model

// Genre 体裁字典
// 全局共享，启动时播种（肖像/风景/静物等）
type Genre struct {
	ID   int64  `gorm:"primaryKey" json:"id"`
	Name string `gorm:"size:100;uniqueIndex;not null" json:"name"`
}

// TableName 指定表名
func (Genre) TableName() string {
	return "genres"
}

// Style 风格字典
// 全局共享，启动时播种（写实/印象派/抽象等）
type Style struct {
	ID   int64  `gorm:"primaryKey" json:"id"`
	Name string `gorm:"size:100;uniqueIndex;not null" json:"name"`
}

// TableName 指定表名
func (Style) TableName() string {
	return "styles"
}

// Material 材料字典
// 全局共享，启动时播种（油彩/水彩/炭笔等）
type Material struct {
	ID   int64  `gorm:"primaryKey" json:"id"`
	Name string `gorm:"size:100;uniqueIndex;not null" json:"name"`
}

// TableName 指定表名
func (Material) TableName() string {
	return "materials"
}

// Tag 标签
// 与字典不同，标签由用户自行创建，按用户隔离
type Tag struct {
	ID int64 `gorm:"primaryKey" json:"id"`

	// UserID 所属用户ID，同一用户下标签名唯一
	UserID int64 `gorm:"uniqueIndex:idx_user_tag;not null" json:"user_id"`

	Name string `gorm:"size:100;uniqueIndex:idx_user_tag;not null" json:"name"`
}

// TableName 指定表名
func (Tag) TableName() string {
	return "tags"
}
