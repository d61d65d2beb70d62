// Package service 提供业务逻辑层的实现
package service

import (
	"context"
	"errors"
	"strings"

	"artfolio-server/internal/model"
	"artfolio-server/internal/repository"
)

// 合集相关错误
var (
	ErrCollectionNotFound = errors.New("合集不存在")
	ErrInvalidCollection  = errors.New("合集类型无效")
	ErrItemExists         = errors.New("作品已在合集中")
)

// validCollectionTypes 允许的合集类型集合
var validCollectionTypes = map[string]bool{
	model.CollectionTypeMoodboard:  true,
	model.CollectionTypeSeries:     true,
	model.CollectionTypeExhibition: true,
}

// CollectionService 合集服务
// 处理合集的增删改查及条目管理
type CollectionService struct {
	collectionRepo *repository.CollectionRepository
	artworkRepo    *repository.ArtworkRepository
}

// NewCollectionService 创建 CollectionService 实例
func NewCollectionService(
	collectionRepo *repository.CollectionRepository,
	artworkRepo *repository.ArtworkRepository,
) *CollectionService {
	return &CollectionService{
		collectionRepo: collectionRepo,
		artworkRepo:    artworkRepo,
	}
}

// CreateCollectionRequest 创建合集请求
type CreateCollectionRequest struct {
	Title       string `json:"title" binding:"required,max=200"` // 标题
	Description string `json:"description"`                      // 描述
	Type        string `json:"type" binding:"required"`          // 类型
}

// CreateCollection 创建合集
func (s *CollectionService) CreateCollection(ctx context.Context, userID int64, req *CreateCollectionRequest) (*model.Collection, error) {
	if !validCollectionTypes[req.Type] {
		return nil, ErrInvalidCollection
	}

	collection := &model.Collection{
		UserID:      userID,
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		Type:        req.Type,
	}
	if err := s.collectionRepo.Create(ctx, collection); err != nil {
		return nil, err
	}
	return collection, nil
}

// GetCollection 获取合集详情及其条目
func (s *CollectionService) GetCollection(ctx context.Context, userID, collectionID int64) (*model.Collection, error) {
	collection, err := s.collectionRepo.GetByIDWithItems(ctx, collectionID)
	if err != nil {
		return nil, err
	}
	if collection == nil {
		return nil, ErrCollectionNotFound
	}
	if collection.UserID != userID {
		return nil, ErrNoPermission
	}
	return collection, nil
}

// ListCollections 获取用户的合集列表
// 参数:
//   - collectionType: 类型过滤，空字符串表示不过滤
func (s *CollectionService) ListCollections(ctx context.Context, userID int64, collectionType string) ([]model.Collection, error) {
	if collectionType != "" && !validCollectionTypes[collectionType] {
		return nil, ErrInvalidCollection
	}
	return s.collectionRepo.ListByUser(ctx, userID, collectionType)
}

// UpdateCollectionRequest 更新合集请求
// 指针字段为 nil 表示不修改该字段
type UpdateCollectionRequest struct {
	Title       *string `json:"title" binding:"omitempty,max=200"` // 标题
	Description *string `json:"description"`                       // 描述
	Type        *string `json:"type"`                              // 类型
}

// UpdateCollection 更新合集
func (s *CollectionService) UpdateCollection(ctx context.Context, userID, collectionID int64, req *UpdateCollectionRequest) (*model.Collection, error) {
	collection, err := s.getOwned(ctx, userID, collectionID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		collection.Title = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		collection.Description = *req.Description
	}
	if req.Type != nil {
		if !validCollectionTypes[*req.Type] {
			return nil, ErrInvalidCollection
		}
		collection.Type = *req.Type
	}

	if err := s.collectionRepo.Update(ctx, collection); err != nil {
		return nil, err
	}
	return collection, nil
}

// DeleteCollection 删除合集及其全部条目
func (s *CollectionService) DeleteCollection(ctx context.Context, userID, collectionID int64) error {
	if _, err := s.getOwned(ctx, userID, collectionID); err != nil {
		return err
	}
	return s.collectionRepo.Delete(ctx, collectionID)
}

// AddItem 向合集追加作品
// 作品必须属于同一用户；重复追加返回 ErrItemExists
func (s *CollectionService) AddItem(ctx context.Context, userID, collectionID, artworkID int64) (*model.CollectionItem, error) {
	if _, err := s.getOwned(ctx, userID, collectionID); err != nil {
		return nil, err
	}

	artwork, err := s.artworkRepo.GetByID(ctx, artworkID)
	if err != nil {
		return nil, err
	}
	if artwork == nil {
		return nil, ErrArtworkNotFound
	}
	if artwork.UserID != userID {
		return nil, ErrNoPermission
	}

	exists, err := s.collectionRepo.HasItem(ctx, collectionID, artworkID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrItemExists
	}

	return s.collectionRepo.AddItem(ctx, collectionID, artworkID)
}

// RemoveItem 从合集移除作品
func (s *CollectionService) RemoveItem(ctx context.Context, userID, collectionID, artworkID int64) error {
	if _, err := s.getOwned(ctx, userID, collectionID); err != nil {
		return err
	}
	return s.collectionRepo.RemoveItem(ctx, collectionID, artworkID)
}

// getOwned 获取合集并校验归属
func (s *CollectionService) getOwned(ctx context.Context, userID, collectionID int64) (*model.Collection, error) {
	collection, err := s.collectionRepo.GetByID(ctx, collectionID)
	if err != nil {
		return nil, err
	}
	if collection == nil {
		return nil, ErrCollectionNotFound
	}
	if collection.UserID != userID {
		return nil, ErrNoPermission
	}
	return collection, nil
}
