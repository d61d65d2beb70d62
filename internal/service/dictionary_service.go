// Package service 提供业务逻辑层的实现
package service

import (
	"context"
	"errors"
	"strings"

	"artfolio-server/internal/model"
	"artfolio-server/internal/repository"
)

// 字典相关错误
var (
	ErrTagNotFound = errors.New("标签不存在")
	ErrTagExists   = errors.New("同名标签已存在")
)

// DictionaryService 字典服务
// 体裁/风格/材料是只读的全局字典，标签按用户增删
type DictionaryService struct {
	dictRepo *repository.DictionaryRepository
}

// NewDictionaryService 创建 DictionaryService 实例
func NewDictionaryService(dictRepo *repository.DictionaryRepository) *DictionaryService {
	return &DictionaryService{dictRepo: dictRepo}
}

// Dictionaries 全部字典内容
type Dictionaries struct {
	Genres    []model.Genre    `json:"genres"`    // 体裁
	Styles    []model.Style    `json:"styles"`    // 风格
	Materials []model.Material `json:"materials"` // 材料
}

// GetDictionaries 获取全部全局字典
func (s *DictionaryService) GetDictionaries(ctx context.Context) (*Dictionaries, error) {
	genres, err := s.dictRepo.ListGenres(ctx)
	if err != nil {
		return nil, err
	}
	styles, err := s.dictRepo.ListStyles(ctx)
	if err != nil {
		return nil, err
	}
	materials, err := s.dictRepo.ListMaterials(ctx)
	if err != nil {
		return nil, err
	}
	return &Dictionaries{
		Genres:    genres,
		Styles:    styles,
		Materials: materials,
	}, nil
}

// CreateTagRequest 创建标签请求
type CreateTagRequest struct {
	Name string `json:"name" binding:"required,max=50"` // 标签名
}

// CreateTag 创建标签
// 同一用户下标签名唯一
func (s *DictionaryService) CreateTag(ctx context.Context, userID int64, req *CreateTagRequest) (*model.Tag, error) {
	name := strings.TrimSpace(req.Name)

	exists, err := s.dictRepo.ExistsTagName(ctx, userID, name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrTagExists
	}

	tag := &model.Tag{
		UserID: userID,
		Name:   name,
	}
	if err := s.dictRepo.CreateTag(ctx, tag); err != nil {
		return nil, err
	}
	return tag, nil
}

// ListTags 获取用户的全部标签
func (s *DictionaryService) ListTags(ctx context.Context, userID int64) ([]model.Tag, error) {
	return s.dictRepo.ListTagsByUser(ctx, userID)
}

// DeleteTag 删除标签并清理其作品关联
func (s *DictionaryService) DeleteTag(ctx context.Context, userID, tagID int64) error {
	tag, err := s.dictRepo.GetTagByID(ctx, tagID)
	if err != nil {
		return err
	}
	if tag == nil {
		return ErrTagNotFound
	}
	if tag.UserID != userID {
		return ErrNoPermission
	}
	return s.dictRepo.DeleteTag(ctx, tagID)
}
