// Package jwt 提供 JWT Token 的生成和验证功能
// JWT (JSON Web Token) 用于用户认证
package jwt

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// 定义错误类型
var (
	ErrInvalidToken = errors.New("invalid token")     // Token 无效
	ErrExpiredToken = errors.New("token has expired") // Token 已过期
)

// UserClaims 用户 JWT 的声明（Payload）
// 包含用户相关信息
type UserClaims struct {
	UserID   int64  `json:"user_id"`  // 用户 ID
	Username string `json:"username"` // 用户名
	jwt.RegisteredClaims              // 标准声明（过期时间等）
}

// JWTService 提供 JWT 相关操作
type JWTService struct {
	secret        []byte        // JWT 签名密钥
	accessExpire  time.Duration // Access Token 过期时间
	refreshExpire time.Duration // Refresh Token 过期时间
}

// NewJWTService 创建 JWTService 实例
// 参数:
//   - secret: JWT 签名密钥，至少 32 个字符
//   - accessExpire: Access Token 过期时间
//   - refreshExpire: Refresh Token 过期时间
//
// 返回:
//   - *JWTService: JWT 服务实例
func NewJWTService(secret string, accessExpire, refreshExpire time.Duration) *JWTService {
	return &JWTService{
		secret:        []byte(secret),
		accessExpire:  accessExpire,
		refreshExpire: refreshExpire,
	}
}

// GenerateAccessToken 生成 Access Token
// 用于普通请求的认证
// 参数:
//   - userID: 用户 ID
//   - username: 用户名
//
// 返回:
//   - string: JWT Token 字符串
//   - error: 生成错误
func (s *JWTService) GenerateAccessToken(userID int64, username string) (string, error) {
	claims := UserClaims{
		UserID:   userID,
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.accessExpire)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
			Issuer:    "artfolio",
			// Subject 用于区分 Token 类型
			Subject: "access",
		},
	}

	// 使用 HMAC SHA256 算法签名
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// GenerateRefreshToken 生成 Refresh Token
// 用于刷新 Access Token
// 参数:
//   - userID: 用户 ID
//   - username: 用户名
//
// 返回:
//   - string: JWT Token 字符串
//   - error: 生成错误
func (s *JWTService) GenerateRefreshToken(userID int64, username string) (string, error) {
	claims := UserClaims{
		UserID:   userID,
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.refreshExpire)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
			Issuer:    "artfolio",
			Subject:   "refresh", // 标识为 Refresh Token
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// ValidateToken 验证用户 Token
// 参数:
//   - tokenString: JWT Token 字符串
//
// 返回:
//   - *UserClaims: Token 中的声明信息
//   - error: 验证错误（无效或已过期）
func (s *JWTService) ValidateToken(tokenString string) (*UserClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &UserClaims{}, func(token *jwt.Token) (interface{}, error) {
		// 验证签名算法，确保使用的是我们期望的算法（HMAC）
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*UserClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

// ValidateRefreshToken 验证 Refresh Token
// 参数:
//   - tokenString: JWT Token 字符串
//
// 返回:
//   - *UserClaims: Token 中的声明信息
//   - error: 验证错误
func (s *JWTService) ValidateRefreshToken(tokenString string) (*UserClaims, error) {
	claims, err := s.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}

	// 检查是否是 Refresh Token
	if claims.Subject != "refresh" {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

// GetAccessExpire 获取 Access Token 过期时间
func (s *JWTService) GetAccessExpire() time.Duration {
	return s.accessExpire
}

// GetRefreshExpire 获取 Refresh Token 过期时间
func (s *JWTService) GetRefreshExpire() time.Duration {
	return s.refreshExpire
}
