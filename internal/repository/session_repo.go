// Package repository 提供数据访问层的实现
package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"artfolio-server/internal/model"
)

// SessionRepository 创作会话数据访问层
// 活跃会话的判定条件统一为 end_time IS NULL
type SessionRepository struct {
	db *gorm.DB
}

// NewSessionRepository 创建 SessionRepository 实例
func NewSessionRepository(db *gorm.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

// Create 创建新会话
func (r *SessionRepository) Create(ctx context.Context, session *model.Session) error {
	return r.db.WithContext(ctx).Create(session).Error
}

// GetByID 根据 ID 获取会话
// 返回:
//   - *model.Session: 会话对象，未找到返回 nil
//   - error: 数据库错误
func (r *SessionRepository) GetByID(ctx context.Context, id int64) (*model.Session, error) {
	var session model.Session
	err := r.db.WithContext(ctx).First(&session, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &session, nil
}

// GetActiveByUser 获取用户当前的活跃会话
// 每个用户同时至多有一个活跃会话（end_time IS NULL）
// 返回:
//   - *model.Session: 活跃会话，如果没有返回 nil
//   - error: 数据库错误
func (r *SessionRepository) GetActiveByUser(ctx context.Context, userID int64) (*model.Session, error) {
	var session model.Session
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND end_time IS NULL", userID).
		First(&session).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &session, nil
}

// Update 更新会话
// 参数:
//   - ctx: 上下文
//   - session: 包含要更新字段的会话对象，必须包含 ID
//
// 注意: 使用 Save 保证 start_time 被置为 NULL 时也会写入
func (r *SessionRepository) Update(ctx context.Context, session *model.Session) error {
	return r.db.WithContext(ctx).Save(session).Error
}

// Delete 删除会话
// 用于放弃（discard）一个误开的活跃会话，不留历史
func (r *SessionRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&model.Session{}, id).Error
}

// ListFinishedByArtwork 获取作品的历史会话列表
// 只包含已结束的会话，附带各自的笔记，按结束时间倒序
func (r *SessionRepository) ListFinishedByArtwork(ctx context.Context, artworkID int64) ([]model.Session, error) {
	var sessions []model.Session
	err := r.db.WithContext(ctx).
		Preload("Note").
		Where("artwork_id = ? AND end_time IS NOT NULL", artworkID).
		Order("end_time DESC").
		Find(&sessions).Error
	return sessions, err
}

// CreateNote 为已结束的会话创建笔记
// 每个会话至多一条（session_id 唯一索引兜底）
func (r *SessionRepository) CreateNote(ctx context.Context, note *model.Note) error {
	return r.db.WithContext(ctx).Create(note).Error
}
