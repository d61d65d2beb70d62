// Package repository 提供数据访问层的实现
package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"artfolio-server/internal/model"
)

// StickyNoteRepository 便签数据访问层
type StickyNoteRepository struct {
	db *gorm.DB
}

// NewStickyNoteRepository 创建 StickyNoteRepository 实例
func NewStickyNoteRepository(db *gorm.DB) *StickyNoteRepository {
	return &StickyNoteRepository{db: db}
}

// Create 创建便签
func (r *StickyNoteRepository) Create(ctx context.Context, note *model.StickyNote) error {
	return r.db.WithContext(ctx).Create(note).Error
}

// GetByID 根据 ID 获取便签
// 返回:
//   - *model.StickyNote: 便签对象，未找到返回 nil
//   - error: 数据库错误
func (r *StickyNoteRepository) GetByID(ctx context.Context, id int64) (*model.StickyNote, error) {
	var note model.StickyNote
	err := r.db.WithContext(ctx).First(&note, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &note, nil
}

// ListByUser 获取用户的全部便签
// 置顶的在前，其余按创建时间倒序
func (r *StickyNoteRepository) ListByUser(ctx context.Context, userID int64) ([]model.StickyNote, error) {
	var notes []model.StickyNote
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("pinned DESC, created_at DESC").
		Find(&notes).Error
	return notes, err
}

// Update 更新便签
func (r *StickyNoteRepository) Update(ctx context.Context, note *model.StickyNote) error {
	return r.db.WithContext(ctx).Save(note).Error
}

// Delete 删除便签
func (r *StickyNoteRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&model.StickyNote{}, id).Error
}
