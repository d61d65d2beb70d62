// Package service 提供业务逻辑层的实现
package service

import (
	"context"
	"errors"
	"strings"

	"artfolio-server/internal/model"
	"artfolio-server/internal/repository"
)

// 作品相关错误
var (
	ErrArtworkNotFound = errors.New("作品不存在")
	ErrNoPermission    = errors.New("没有权限操作该资源")
	ErrImageNotFound   = errors.New("图片不存在")
	ErrInvalidStatus   = errors.New("作品状态无效")
)

// validStatuses 允许的作品状态集合
var validStatuses = map[string]bool{
	model.ArtworkStatusPlanned:    true,
	model.ArtworkStatusInProgress: true,
	model.ArtworkStatusCompleted:  true,
	model.ArtworkStatusOnHold:     true,
}

// ArtworkService 作品服务
// 处理作品的增删改查及画廊图片管理
type ArtworkService struct {
	artworkRepo *repository.ArtworkRepository
	dictRepo    *repository.DictionaryRepository
}

// NewArtworkService 创建 ArtworkService 实例
func NewArtworkService(
	artworkRepo *repository.ArtworkRepository,
	dictRepo *repository.DictionaryRepository,
) *ArtworkService {
	return &ArtworkService{
		artworkRepo: artworkRepo,
		dictRepo:    dictRepo,
	}
}

// CreateArtworkRequest 创建作品请求
type CreateArtworkRequest struct {
	Title       string  `json:"title" binding:"required,max=200"` // 标题
	Description string  `json:"description"`                      // 描述
	Status      string  `json:"status"`                           // 状态，默认 in_progress
	StartedYear *int    `json:"started_year"`                     // 开始创作年份
	GenreID     *int64  `json:"genre_id"`                         // 体裁ID
	StyleID     *int64  `json:"style_id"`                         // 风格ID
	MaterialIDs []int64 `json:"material_ids"`                     // 材料ID列表
	TagIDs      []int64 `json:"tag_ids"`                          // 标签ID列表
}

// CreateArtwork 创建作品
func (s *ArtworkService) CreateArtwork(ctx context.Context, userID int64, req *CreateArtworkRequest) (*model.Artwork, error) {
	status := req.Status
	if status == "" {
		status = model.ArtworkStatusInProgress
	}
	if !validStatuses[status] {
		return nil, ErrInvalidStatus
	}

	artwork := &model.Artwork{
		UserID:      userID,
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		Status:      status,
		StartedYear: req.StartedYear,
		GenreID:     req.GenreID,
		StyleID:     req.StyleID,
	}

	if err := s.artworkRepo.Create(ctx, artwork); err != nil {
		return nil, err
	}

	// 多对多关联在创建后单独写入
	if err := s.attachAssociations(ctx, userID, artwork, req.MaterialIDs, req.TagIDs); err != nil {
		return nil, err
	}

	return s.artworkRepo.GetByIDWithDetails(ctx, artwork.ID)
}

// GetArtwork 获取作品详情（含全部关联）
// 校验归属，访问他人作品返回 ErrNoPermission
func (s *ArtworkService) GetArtwork(ctx context.Context, userID, artworkID int64) (*model.Artwork, error) {
	artwork, err := s.artworkRepo.GetByIDWithDetails(ctx, artworkID)
	if err != nil {
		return nil, err
	}
	if artwork == nil {
		return nil, ErrArtworkNotFound
	}
	if artwork.UserID != userID {
		return nil, ErrNoPermission
	}
	return artwork, nil
}

// ListArtworks 获取用户的作品列表
// 参数:
//   - status: 状态过滤，空字符串表示不过滤
func (s *ArtworkService) ListArtworks(ctx context.Context, userID int64, status string) ([]model.Artwork, error) {
	if status != "" && !validStatuses[status] {
		return nil, ErrInvalidStatus
	}
	return s.artworkRepo.ListByUser(ctx, userID, status)
}

// UpdateArtworkRequest 更新作品请求
// 指针字段为 nil 表示不修改该字段
type UpdateArtworkRequest struct {
	Title       *string  `json:"title" binding:"omitempty,max=200"` // 标题
	Description *string  `json:"description"`                       // 描述
	Status      *string  `json:"status"`                            // 状态
	StartedYear *int     `json:"started_year"`                      // 开始创作年份
	GenreID     *int64   `json:"genre_id"`                          // 体裁ID
	StyleID     *int64   `json:"style_id"`                          // 风格ID
	MaterialIDs *[]int64 `json:"material_ids"`                      // 材料ID列表（整组替换）
	TagIDs      *[]int64 `json:"tag_ids"`                           // 标签ID列表（整组替换）
}

// UpdateArtwork 更新作品
func (s *ArtworkService) UpdateArtwork(ctx context.Context, userID, artworkID int64, req *UpdateArtworkRequest) (*model.Artwork, error) {
	artwork, err := s.getOwned(ctx, userID, artworkID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		artwork.Title = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		artwork.Description = *req.Description
	}
	if req.Status != nil {
		if !validStatuses[*req.Status] {
			return nil, ErrInvalidStatus
		}
		artwork.Status = *req.Status
	}
	if req.StartedYear != nil {
		artwork.StartedYear = req.StartedYear
	}
	if req.GenreID != nil {
		artwork.GenreID = req.GenreID
	}
	if req.StyleID != nil {
		artwork.StyleID = req.StyleID
	}

	if err := s.artworkRepo.Update(ctx, artwork); err != nil {
		return nil, err
	}

	// 提供了列表就整组替换
	if req.MaterialIDs != nil {
		materials, err := s.dictRepo.GetMaterialsByIDs(ctx, *req.MaterialIDs)
		if err != nil {
			return nil, err
		}
		if err := s.artworkRepo.ReplaceMaterials(ctx, artwork, materials); err != nil {
			return nil, err
		}
	}
	if req.TagIDs != nil {
		tags, err := s.dictRepo.GetTagsByIDs(ctx, userID, *req.TagIDs)
		if err != nil {
			return nil, err
		}
		if err := s.artworkRepo.ReplaceTags(ctx, artwork, tags); err != nil {
			return nil, err
		}
	}

	return s.artworkRepo.GetByIDWithDetails(ctx, artwork.ID)
}

// DeleteArtwork 删除作品及其全部关联数据
func (s *ArtworkService) DeleteArtwork(ctx context.Context, userID, artworkID int64) error {
	if _, err := s.getOwned(ctx, userID, artworkID); err != nil {
		return err
	}
	return s.artworkRepo.Delete(ctx, artworkID)
}

// AddImageRequest 添加画廊图片请求
type AddImageRequest struct {
	URL     string `json:"url" binding:"required,max=500"` // 图片存储路径
	IsCover bool   `json:"is_cover"`                       // 是否设为封面
}

// AddImage 向作品画廊添加图片
// 相同路径的图片已存在时直接返回已有记录，不重复添加
func (s *ArtworkService) AddImage(ctx context.Context, userID, artworkID int64, req *AddImageRequest) (*model.ArtworkImage, error) {
	if _, err := s.getOwned(ctx, userID, artworkID); err != nil {
		return nil, err
	}

	exists, err := s.artworkRepo.HasImageURL(ctx, artworkID, req.URL)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, nil
	}

	image := &model.ArtworkImage{
		ArtworkID: artworkID,
		URL:       req.URL,
		IsCover:   req.IsCover,
	}
	if err := s.artworkRepo.AddImage(ctx, image); err != nil {
		return nil, err
	}

	if req.IsCover {
		if err := s.artworkRepo.SetCover(ctx, artworkID, image.ID); err != nil {
			return nil, err
		}
	}
	return image, nil
}

// DeleteImage 从画廊删除图片
func (s *ArtworkService) DeleteImage(ctx context.Context, userID, artworkID, imageID int64) error {
	if _, err := s.getOwned(ctx, userID, artworkID); err != nil {
		return err
	}

	image, err := s.artworkRepo.GetImageByID(ctx, imageID)
	if err != nil {
		return err
	}
	if image == nil || image.ArtworkID != artworkID {
		return ErrImageNotFound
	}
	return s.artworkRepo.DeleteImage(ctx, imageID)
}

// SetCover 将画廊图片设为作品封面
func (s *ArtworkService) SetCover(ctx context.Context, userID, artworkID, imageID int64) error {
	if _, err := s.getOwned(ctx, userID, artworkID); err != nil {
		return err
	}

	image, err := s.artworkRepo.GetImageByID(ctx, imageID)
	if err != nil {
		return err
	}
	if image == nil || image.ArtworkID != artworkID {
		return ErrImageNotFound
	}
	return s.artworkRepo.SetCover(ctx, artworkID, imageID)
}

// getOwned 获取作品并校验归属
func (s *ArtworkService) getOwned(ctx context.Context, userID, artworkID int64) (*model.Artwork, error) {
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
	return artwork, nil
}

// attachAssociations 写入作品的材料和标签关联
func (s *ArtworkService) attachAssociations(ctx context.Context, userID int64, artwork *model.Artwork, materialIDs, tagIDs []int64) error {
	if len(materialIDs) > 0 {
		materials, err := s.dictRepo.GetMaterialsByIDs(ctx, materialIDs)
		if err != nil {
			return err
		}
		if err := s.artworkRepo.ReplaceMaterials(ctx, artwork, materials); err != nil {
			return err
		}
	}
	if len(tagIDs) > 0 {
		tags, err := s.dictRepo.GetTagsByIDs(ctx, userID, tagIDs)
		if err != nil {
			return err
		}
		if err := s.artworkRepo.ReplaceTags(ctx, artwork, tags); err != nil {
			return err
		}
	}
	return nil
}
