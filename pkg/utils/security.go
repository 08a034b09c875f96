package utils

import (
	"errors"
	"fmt"
	"time"

	"vidhub-go/internal/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
)

// Claims 自定义 JWT Claims，RegisteredClaims.ID 为令牌唯一标识（jti）
type Claims struct {
	UserID   int64  `json:"user_id"`
	Username string `json:"username,omitempty"`
	Email    string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

// HashPassword 使用 bcrypt 对密码进行哈希
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(bytes), nil
}

// VerifyPassword 验证密码是否与哈希匹配
func VerifyPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// GenerateAccessToken 生成携带用户名和邮箱的 access token
func GenerateAccessToken(userID int64, username, email string) (string, error) {
	cfg := config.GetJWT()
	return signToken(Claims{UserID: userID, Username: username, Email: email}, cfg.AccessSecret, cfg.AccessExpireDuration())
}

// GenerateRefreshToken 生成只携带用户 ID 的 refresh token
func GenerateRefreshToken(userID int64) (string, error) {
	cfg := config.GetJWT()
	return signToken(Claims{UserID: userID}, cfg.RefreshSecret, cfg.RefreshExpireDuration())
}

// ParseAccessToken 解析并验证 access token
func ParseAccessToken(tokenString string) (*Claims, error) {
	return parseToken(tokenString, config.GetJWT().AccessSecret)
}

// ParseRefreshToken 解析并验证 refresh token
func ParseRefreshToken(tokenString string) (*Claims, error) {
	return parseToken(tokenString, config.GetJWT().RefreshSecret)
}

func signToken(claims Claims, secret string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims.RegisteredClaims = jwt.RegisteredClaims{
		ID:        uuid.NewString(),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		IssuedAt:  jwt.NewNumericDate(now),
		Issuer:    config.GetApp().Name,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return tokenString, nil
}

func parseToken(tokenString, secret string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
