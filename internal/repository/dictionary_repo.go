// Package repository 提供数据访问层的实现
package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"artfolio-server/internal/model"
)

// DictionaryRepository 字典数据访问层
// 体裁/风格/材料是全局字典，标签按用户隔离
type DictionaryRepository struct {
	db *gorm.DB
}

// NewDictionaryRepository 创建 DictionaryRepository 实例
func NewDictionaryRepository(db *gorm.DB) *DictionaryRepository {
	return &DictionaryRepository{db: db}
}

// 默认字典内容，首次启动时播种
var (
	defaultGenres = []string{
		"портрет", "пейзаж", "натюрморт", "анімалістика",
		"абстракція", "ілюстрація", "скетч",
	}
	defaultStyles = []string{
		"реалізм", "імпресіонізм", "експресіонізм",
		"мінімалізм", "аніме", "піксель-арт",
	}
	defaultMaterials = []string{
		"олія", "акрил", "акварель", "гуаш",
		"олівець", "вугілля", "туш", "цифровий живопис",
	}
)

// SeedDefaults 播种默认字典数据
// 已存在的条目不会重复插入（按名称冲突忽略）
func (r *DictionaryRepository) SeedDefaults(ctx context.Context) error {
	db := r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true})

	for _, name := range defaultGenres {
		if err := db.Create(&model.Genre{Name: name}).Error; err != nil {
			return err
		}
	}
	for _, name := range defaultStyles {
		if err := db.Create(&model.Style{Name: name}).Error; err != nil {
			return err
		}
	}
	for _, name := range defaultMaterials {
		if err := db.Create(&model.Material{Name: name}).Error; err != nil {
			return err
		}
	}
	return nil
}

// ListGenres 获取全部体裁
func (r *DictionaryRepository) ListGenres(ctx context.Context) ([]model.Genre, error) {
	var genres []model.Genre
	err := r.db.WithContext(ctx).Order("name ASC").Find(&genres).Error
	return genres, err
}

// ListStyles 获取全部风格
func (r *DictionaryRepository) ListStyles(ctx context.Context) ([]model.Style, error) {
	var styles []model.Style
	err := r.db.WithContext(ctx).Order("name ASC").Find(&styles).Error
	return styles, err
}

// ListMaterials 获取全部材料
func (r *DictionaryRepository) ListMaterials(ctx context.Context) ([]model.Material, error) {
	var materials []model.Material
	err := r.db.WithContext(ctx).Order("name ASC").Find(&materials).Error
	return materials, err
}

// GetMaterialsByIDs 根据 ID 列表获取材料
func (r *DictionaryRepository) GetMaterialsByIDs(ctx context.Context, ids []int64) ([]model.Material, error) {
	var materials []model.Material
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&materials).Error
	return materials, err
}

// ==================== 标签 ====================

// CreateTag 创建标签
func (r *DictionaryRepository) CreateTag(ctx context.Context, tag *model.Tag) error {
	return r.db.WithContext(ctx).Create(tag).Error
}

// GetTagByID 根据 ID 获取标签
func (r *DictionaryRepository) GetTagByID(ctx context.Context, id int64) (*model.Tag, error) {
	var tag model.Tag
	err := r.db.WithContext(ctx).First(&tag, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &tag, nil
}

// ListTagsByUser 获取用户的全部标签
func (r *DictionaryRepository) ListTagsByUser(ctx context.Context, userID int64) ([]model.Tag, error) {
	var tags []model.Tag
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("name ASC").Find(&tags).Error
	return tags, err
}

// GetTagsByIDs 根据 ID 列表获取用户的标签
// 只返回属于该用户的标签，防止跨用户引用
func (r *DictionaryRepository) GetTagsByIDs(ctx context.Context, userID int64, ids []int64) ([]model.Tag, error) {
	var tags []model.Tag
	err := r.db.WithContext(ctx).Where("user_id = ? AND id IN ?", userID, ids).Find(&tags).Error
	return tags, err
}

// ExistsTagName 检查用户是否已有同名标签
func (r *DictionaryRepository) ExistsTagName(ctx context.Context, userID int64, name string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Tag{}).
		Where("user_id = ? AND name = ?", userID, name).
		Count(&count).Error
	return count > 0, err
}

// DeleteTag 删除标签并清理其作品关联
func (r *DictionaryRepository) DeleteTag(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM artwork_tags WHERE tag_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Tag{}, id).Error
	})
}
