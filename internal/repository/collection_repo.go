// Package repository 提供数据访问层的实现
package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"artfolio-server/internal/model"
)

// CollectionRepository 合集数据访问层
type CollectionRepository struct {
	db *gorm.DB
}

// NewCollectionRepository 创建 CollectionRepository 实例
func NewCollectionRepository(db *gorm.DB) *CollectionRepository {
	return &CollectionRepository{db: db}
}

// Create 创建新合集
func (r *CollectionRepository) Create(ctx context.Context, collection *model.Collection) error {
	return r.db.WithContext(ctx).Create(collection).Error
}

// GetByID 根据 ID 获取合集
// 返回:
//   - *model.Collection: 合集对象，未找到返回 nil
//   - error: 数据库错误
func (r *CollectionRepository) GetByID(ctx context.Context, id int64) (*model.Collection, error) {
	var collection model.Collection
	err := r.db.WithContext(ctx).First(&collection, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &collection, nil
}

// GetByIDWithItems 根据 ID 获取合集及其条目
// 条目按位置排序，附带各自的作品
func (r *CollectionRepository) GetByIDWithItems(ctx context.Context, id int64) (*model.Collection, error) {
	var collection model.Collection
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Preload("Items.Artwork").
		Preload("Items.Artwork.Images").
		First(&collection, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &collection, nil
}

// ListByUser 获取用户的合集列表
// 参数:
//   - ctx: 上下文
//   - userID: 用户ID
//   - collectionType: 类型过滤，空字符串表示不过滤
func (r *CollectionRepository) ListByUser(ctx context.Context, userID int64, collectionType string) ([]model.Collection, error) {
	var collections []model.Collection
	query := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if collectionType != "" {
		query = query.Where("type = ?", collectionType)
	}
	err := query.Order("created_at DESC").Find(&collections).Error
	return collections, err
}

// Update 更新合集信息
func (r *CollectionRepository) Update(ctx context.Context, collection *model.Collection) error {
	return r.db.WithContext(ctx).Save(collection).Error
}

// Delete 删除合集及其全部条目
func (r *CollectionRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("collection_id = ?", id).Delete(&model.CollectionItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Collection{}, id).Error
	})
}

// ==================== 合集条目 ====================

// HasItem 检查作品是否已在合集中
func (r *CollectionRepository) HasItem(ctx context.Context, collectionID, artworkID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.CollectionItem{}).
		Where("collection_id = ? AND artwork_id = ?", collectionID, artworkID).
		Count(&count).Error
	return count > 0, err
}

// AddItem 向合集追加作品，位置取当前最大位置 + 1
func (r *CollectionRepository) AddItem(ctx context.Context, collectionID, artworkID int64) (*model.CollectionItem, error) {
	var item *model.CollectionItem
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var maxPosition int
		if err := tx.Model(&model.CollectionItem{}).
			Where("collection_id = ?", collectionID).
			Select("COALESCE(MAX(position), 0)").
			Scan(&maxPosition).Error; err != nil {
			return err
		}
		item = &model.CollectionItem{
			CollectionID: collectionID,
			ArtworkID:    artworkID,
			Position:     maxPosition + 1,
		}
		return tx.Create(item).Error
	})
	if err != nil {
		return nil, err
	}
	return item, nil
}

// RemoveItem 从合集移除作品
func (r *CollectionRepository) RemoveItem(ctx context.Context, collectionID, artworkID int64) error {
	return r.db.WithContext(ctx).
		Where("collection_id = ? AND artwork_id = ?", collectionID, artworkID).
		Delete(&model.CollectionItem{}).Error
}
