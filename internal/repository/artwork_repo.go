// Package repository 提供数据访问层的实现
package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"artfolio-server/internal/model"
)

// ArtworkRepository 作品数据访问层
// 负责作品及其画廊图片的所有数据库操作
type ArtworkRepository struct {
	db *gorm.DB
}

// NewArtworkRepository 创建 ArtworkRepository 实例
func NewArtworkRepository(db *gorm.DB) *ArtworkRepository {
	return &ArtworkRepository{db: db}
}

// Create 创建新作品
func (r *ArtworkRepository) Create(ctx context.Context, artwork *model.Artwork) error {
	return r.db.WithContext(ctx).Create(artwork).Error
}

// GetByID 根据 ID 获取作品（不加载关联）
// 返回:
//   - *model.Artwork: 作品对象，未找到返回 nil
//   - error: 数据库错误
func (r *ArtworkRepository) GetByID(ctx context.Context, id int64) (*model.Artwork, error) {
	var artwork model.Artwork
	err := r.db.WithContext(ctx).First(&artwork, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &artwork, nil
}

// GetByIDWithDetails 根据 ID 获取作品及其全部关联
// 用于作品详情页
func (r *ArtworkRepository) GetByIDWithDetails(ctx context.Context, id int64) (*model.Artwork, error) {
	var artwork model.Artwork
	err := r.db.WithContext(ctx).
		Preload("Genre").
		Preload("Style").
		Preload("Materials").
		Preload("Tags").
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("added_at ASC")
		}).
		First(&artwork, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &artwork, nil
}

// ListByUser 获取用户的作品列表
// 参数:
//   - ctx: 上下文
//   - userID: 用户ID
//   - status: 状态过滤，空字符串表示不过滤
//
// 返回:
//   - []model.Artwork: 作品列表，按更新时间倒序
//   - error: 数据库错误
func (r *ArtworkRepository) ListByUser(ctx context.Context, userID int64, status string) ([]model.Artwork, error) {
	var artworks []model.Artwork
	query := r.db.WithContext(ctx).
		Preload("Genre").
		Preload("Style").
		Preload("Images").
		Where("user_id = ?", userID)
	if status != "" {
		query = query.Where("status = ?", status)
	}
	err := query.Order("updated_at DESC").Find(&artworks).Error
	return artworks, err
}

// Update 更新作品信息
func (r *ArtworkRepository) Update(ctx context.Context, artwork *model.Artwork) error {
	return r.db.WithContext(ctx).Save(artwork).Error
}

// ReplaceMaterials 替换作品的材料关联
func (r *ArtworkRepository) ReplaceMaterials(ctx context.Context, artwork *model.Artwork, materials []model.Material) error {
	return r.db.WithContext(ctx).Model(artwork).Association("Materials").Replace(materials)
}

// ReplaceTags 替换作品的标签关联
func (r *ArtworkRepository) ReplaceTags(ctx context.Context, artwork *model.Artwork, tags []model.Tag) error {
	return r.db.WithContext(ctx).Model(artwork).Association("Tags").Replace(tags)
}

// Delete 删除作品
// 注意: 会级联删除画廊图片、会话及其笔记，并清理多对多连接表
func (r *ArtworkRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		artwork := &model.Artwork{ID: id}
		if err := tx.Model(artwork).Association("Materials").Clear(); err != nil {
			return err
		}
		if err := tx.Model(artwork).Association("Tags").Clear(); err != nil {
			return err
		}
		if err := tx.Where("artwork_id = ?", id).Delete(&model.ArtworkImage{}).Error; err != nil {
			return err
		}
		// 删除会话前先删除其笔记
		if err := tx.Where("session_id IN (?)",
			tx.Model(&model.Session{}).Select("id").Where("artwork_id = ?", id),
		).Delete(&model.Note{}).Error; err != nil {
			return err
		}
		if err := tx.Where("artwork_id = ?", id).Delete(&model.Session{}).Error; err != nil {
			return err
		}
		if err := tx.Where("artwork_id = ?", id).Delete(&model.CollectionItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Artwork{}, id).Error
	})
}

// ==================== 画廊图片 ====================

// AddImage 向作品画廊添加图片
func (r *ArtworkRepository) AddImage(ctx context.Context, image *model.ArtworkImage) error {
	return r.db.WithContext(ctx).Create(image).Error
}

// GetImageByID 根据 ID 获取画廊图片
func (r *ArtworkRepository) GetImageByID(ctx context.Context, id int64) (*model.ArtworkImage, error) {
	var image model.ArtworkImage
	err := r.db.WithContext(ctx).First(&image, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &image, nil
}

// HasImageURL 检查某个路径的图片是否已在作品画廊中
// 画廊去重按存储路径字符串精确比较
func (r *ArtworkRepository) HasImageURL(ctx context.Context, artworkID int64, url string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.ArtworkImage{}).
		Where("artwork_id = ? AND url = ?", artworkID, url).
		Count(&count).Error
	return count > 0, err
}

// DeleteImage 从画廊删除图片
func (r *ArtworkRepository) DeleteImage(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&model.ArtworkImage{}, id).Error
}

// SetCover 将指定图片设为封面，同时取消同作品其他图片的封面标记
func (r *ArtworkRepository) SetCover(ctx context.Context, artworkID, imageID int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.ArtworkImage{}).
			Where("artwork_id = ?", artworkID).
			Update("is_cover", false).Error; err != nil {
			return err
		}
		return tx.Model(&model.ArtworkImage{}).
			Where("id = ? AND artwork_id = ?", imageID, artworkID).
			Update("is_cover", true).Error
	})
}
