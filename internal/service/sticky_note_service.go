// Package service 提供业务逻辑层的实现
package service

import (
	"context"
	"errors"
	"strings"

	"artfolio-server/internal/model"
	"artfolio-server/internal/repository"
)

// 便签相关错误
var (
	ErrStickyNoteNotFound = errors.New("便签不存在")
)

// StickyNoteService 便签服务
type StickyNoteService struct {
	noteRepo *repository.StickyNoteRepository
}

// NewStickyNoteService 创建 StickyNoteService 实例
func NewStickyNoteService(noteRepo *repository.StickyNoteRepository) *StickyNoteService {
	return &StickyNoteService{noteRepo: noteRepo}
}

// CreateStickyNoteRequest 创建便签请求
type CreateStickyNoteRequest struct {
	Content string `json:"content" binding:"required"`       // 内容
	Color   string `json:"color" binding:"omitempty,max=20"` // 颜色，默认 yellow
	Pinned  bool   `json:"pinned"`                           // 是否置顶
}

// CreateStickyNote 创建便签
func (s *StickyNoteService) CreateStickyNote(ctx context.Context, userID int64, req *CreateStickyNoteRequest) (*model.StickyNote, error) {
	note := &model.StickyNote{
		UserID:  userID,
		Content: strings.TrimSpace(req.Content),
		Pinned:  req.Pinned,
	}
	if req.Color != "" {
		note.Color = req.Color
	}
	if err := s.noteRepo.Create(ctx, note); err != nil {
		return nil, err
	}
	return note, nil
}

// ListStickyNotes 获取用户的全部便签，置顶的在前
func (s *StickyNoteService) ListStickyNotes(ctx context.Context, userID int64) ([]model.StickyNote, error) {
	return s.noteRepo.ListByUser(ctx, userID)
}

// UpdateStickyNoteRequest 更新便签请求
// 指针字段为 nil 表示不修改该字段
type UpdateStickyNoteRequest struct {
	Content *string `json:"content"`                          // 内容
	Color   *string `json:"color" binding:"omitempty,max=20"` // 颜色
	Pinned  *bool   `json:"pinned"`                           // 是否置顶
}

// UpdateStickyNote 更新便签
func (s *StickyNoteService) UpdateStickyNote(ctx context.Context, userID, noteID int64, req *UpdateStickyNoteRequest) (*model.StickyNote, error) {
	note, err := s.getOwned(ctx, userID, noteID)
	if err != nil {
		return nil, err
	}

	if req.Content != nil {
		note.Content = strings.TrimSpace(*req.Content)
	}
	if req.Color != nil {
		note.Color = *req.Color
	}
	if req.Pinned != nil {
		note.Pinned = *req.Pinned
	}

	if err := s.noteRepo.Update(ctx, note); err != nil {
		return nil, err
	}
	return note, nil
}

// DeleteStickyNote 删除便签
func (s *StickyNoteService) DeleteStickyNote(ctx context.Context, userID, noteID int64) error {
	if _, err := s.getOwned(ctx, userID, noteID); err != nil {
		return err
	}
	return s.noteRepo.Delete(ctx, noteID)
}

// getOwned 获取便签并校验归属
func (s *StickyNoteService) getOwned(ctx context.Context, userID, noteID int64) (*model.StickyNote, error) {
	note, err := s.noteRepo.GetByID(ctx, noteID)
	if err != nil {
		return nil, err
	}
	if note == nil {
		return nil, ErrStickyNoteNotFound
	}
	if note.UserID != userID {
		return nil, ErrNoPermission
	}
	return note, nil
}
