// Package service 提供业务逻辑层的实现
package service

import (
	"context"
	"errors"

	"artfolio-server/internal/model"
	"artfolio-server/internal/repository"
	"artfolio-server/pkg/util"
)

// 用户相关错误
var (
	ErrOldPasswordWrong = errors.New("原密码错误")
)

// UserService 用户服务
// 处理用户资料的读取与修改
type UserService struct {
	userRepo *repository.UserRepository
}

// NewUserService 创建 UserService 实例
func NewUserService(userRepo *repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// GetProfile 获取用户资料
func (s *UserService) GetProfile(ctx context.Context, userID int64) (*model.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// UpdateProfileRequest 更新资料请求
// 指针字段为 nil 表示不修改该字段
type UpdateProfileRequest struct {
	Email  *string `json:"email" binding:"omitempty,email"`    // 邮箱
	Avatar *string `json:"avatar" binding:"omitempty,max=500"` // 头像路径
}

// UpdateProfile 更新用户资料
func (s *UserService) UpdateProfile(ctx context.Context, userID int64, req *UpdateProfileRequest) (*model.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	if req.Email != nil {
		if *req.Email != "" && (user.Email == nil || *user.Email != *req.Email) {
			exists, err := s.userRepo.ExistsByEmail(ctx, *req.Email)
			if err != nil {
				return nil, err
			}
			if exists {
				return nil, ErrEmailExists
			}
		}
		user.Email = req.Email
	}
	if req.Avatar != nil {
		user.Avatar = req.Avatar
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// ChangePasswordRequest 修改密码请求
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`       // 原密码
	NewPassword string `json:"new_password" binding:"required,min=6"` // 新密码
}

// ChangePassword 修改密码
// 必须先验证原密码
func (s *UserService) ChangePassword(ctx context.Context, userID int64, req *ChangePasswordRequest) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}

	if !util.CheckPassword(req.OldPassword, user.PasswordHash) {
		return ErrOldPasswordWrong
	}

	passwordHash, err := util.HashPassword(req.NewPassword)
	if err != nil {
		return err
	}
	user.PasswordHash = passwordHash
	return s.userRepo.Update(ctx, user)
}
