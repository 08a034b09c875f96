package middleware

import (
	"context"
	"strings"

	"vidhub-go/internal/api/response"
	"vidhub-go/pkg/logger"
	"vidhub-go/pkg/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	ContextKeyUserID = "currentUserID"
	ContextKeyClaims = "currentClaims"

	AccessTokenCookie  = "accessToken"
	RefreshTokenCookie = "refreshToken"
)

// RevocationChecker 查询 access token 是否已注销
type RevocationChecker interface {
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// AuthRequired JWT 认证中间件，要求请求必须携带有效 Token。
// Token 优先从 accessToken cookie 读取，其次是 Authorization: Bearer。
func AuthRequired(revoked RevocationChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			response.Unauthorized(c, "缺少认证令牌")
			c.Abort()
			return
		}

		claims, ok := authenticate(c, token, revoked)
		if !ok {
			response.Unauthorized(c, "无效或过期的认证令牌")
			c.Abort()
			return
		}

		setIdentity(c, claims)
		c.Next()
	}
}

// OptionalAuth 携带有效 Token 时识别当前用户，否则按匿名访问继续
func OptionalAuth(revoked RevocationChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token := extractToken(c); token != "" {
			if claims, ok := authenticate(c, token, revoked); ok {
				setIdentity(c, claims)
			}
		}
		c.Next()
	}
}

// GetCurrentUserID 从 Gin Context 中获取当前登录用户 ID
func GetCurrentUserID(c *gin.Context) (int64, bool) {
	val, exists := c.Get(ContextKeyUserID)
	if !exists {
		return 0, false
	}
	userID, ok := val.(int64)
	return userID, ok
}

// GetClaims 当前请求的令牌声明
func GetClaims(c *gin.Context) *utils.Claims {
	val, exists := c.Get(ContextKeyClaims)
	if !exists {
		return nil
	}
	claims, _ := val.(*utils.Claims)
	return claims
}

func authenticate(c *gin.Context, token string, revoked RevocationChecker) (*utils.Claims, bool) {
	claims, err := utils.ParseAccessToken(token)
	if err != nil {
		return nil, false
	}
	if revoked == nil {
		return claims, true
	}

	isRevoked, err := revoked.IsRevoked(c.Request.Context(), claims.ID)
	if err != nil {
		// Redis 不可用时放行，已过期的令牌仍会被签名校验拒绝
		logger.Warn("Token denylist lookup failed", zap.Error(err), zap.Int64("user_id", claims.UserID))
		return claims, true
	}
	return claims, !isRevoked
}

func setIdentity(c *gin.Context, claims *utils.Claims) {
	c.Set(ContextKeyUserID, claims.UserID)
	c.Set(ContextKeyClaims, claims)
}

// extractToken 依次从 cookie 和 Authorization 头中提取 Token
func extractToken(c *gin.Context) string {
	if cookie, err := c.Cookie(AccessTokenCookie); err == nil && cookie != "" {
		return cookie
	}

	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return ""
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}

	return strings.TrimSpace(parts[1])
}
