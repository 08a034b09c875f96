package handler

import (
	"net/http"
	"time"

	"vidhub-go/internal/api/dto"
	"vidhub-go/internal/api/middleware"
	"vidhub-go/internal/api/response"
	"vidhub-go/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CookieSettings 令牌 cookie 的属性，cookie 一律 httpOnly
type CookieSettings struct {
	Domain     string
	Secure     bool
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

type AuthHandler struct {
	authService AuthService
	uploads     Uploads
	cookies     CookieSettings
}

func NewAuthHandler(authService AuthService, uploads Uploads, cookies CookieSettings) *AuthHandler {
	return &AuthHandler{authService: authService, uploads: uploads, cookies: cookies}
}

// Register 用户注册
// @Summary 用户注册
// @Description 注册新用户账号，头像必填，封面可选
// @Tags 用户
// @Accept multipart/form-data
// @Produce json
// @Param username formData string true "用户名"
// @Param email formData string true "邮箱"
// @Param fullName formData string true "昵称"
// @Param password formData string true "密码"
// @Param avatar formData file true "头像"
// @Param coverImage formData file false "封面图"
// @Success 201 {object} response.Response{data=dto.UserInfo} "注册成功"
// @Failure 400 {object} response.ErrorResponse "请求参数无效"
// @Failure 409 {object} response.ErrorResponse "用户名或邮箱已存在"
// @Router /users/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBind(&req); err != nil {
		response.BadRequest(c, "请求参数无效", err.Error())
		return
	}

	paths, ok := h.uploads.saveAll(c, "avatar", "coverImage")
	if !ok {
		return
	}
	defer removeTemp(paths...)

	userInfo, err := h.authService.Register(c.Request.Context(), &req, paths[0], paths[1])
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "注册成功", userInfo)
}

// Login 用户登录
// @Summary 用户登录
// @Description 用户名或邮箱加密码登录，令牌同时写入 cookie 和响应体
// @Tags 用户
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "登录信息"
// @Success 200 {object} response.Response{data=dto.TokenData} "登录成功"
// @Failure 400 {object} response.ErrorResponse "请求参数无效"
// @Failure 401 {object} response.ErrorResponse "用户名或密码错误"
// @Router /users/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	tokenData, err := h.authService.Login(c.Request.Context(), &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	h.setTokenCookies(c, tokenData)
	response.OK(c, "登录成功", tokenData)
}

// Logout 用户登出
// @Summary 用户登出
// @Description 清除 refresh token 并吊销当前 access token
// @Tags 用户
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response "登出成功"
// @Failure 401 {object} response.ErrorResponse "未授权"
// @Router /users/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	userID := currentUser(c)
	if err := h.authService.Logout(c.Request.Context(), userID, middleware.GetClaims(c)); err != nil {
		response.Error(c, err)
		return
	}

	h.clearTokenCookies(c)
	logger.Info("User logged out", zap.Int64("user_id", userID))
	response.OK(c, "登出成功", gin.H{})
}

// Refresh 刷新令牌
// @Summary 刷新令牌
// @Description refresh token 从 cookie 或请求体读取，成功后两个令牌都会轮换
// @Tags 用户
// @Accept json
// @Produce json
// @Param request body dto.RefreshTokenRequest false "refresh token"
// @Success 200 {object} response.Response{data=dto.TokenData} "刷新成功"
// @Failure 401 {object} response.ErrorResponse "refresh token 无效"
// @Router /users/refresh-token [post]
func (h *AuthHandler) Refresh(c *gin.Context) {
	token, _ := c.Cookie(middleware.RefreshTokenCookie)
	if token == "" {
		var req dto.RefreshTokenRequest
		_ = c.ShouldBindJSON(&req)
		token = req.RefreshToken
	}
	if token == "" {
		response.Unauthorized(c, "缺少 refresh token")
		return
	}

	tokenData, err := h.authService.Refresh(c.Request.Context(), token)
	if err != nil {
		response.Error(c, err)
		return
	}

	h.setTokenCookies(c, tokenData)
	response.OK(c, "令牌已刷新", tokenData)
}

// ChangePassword 修改密码
// @Summary 修改密码
// @Tags 用户
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.ChangePasswordRequest true "新旧密码"
// @Success 200 {object} response.Response "修改成功"
// @Failure 400 {object} response.ErrorResponse "原密码错误"
// @Router /users/change-password [post]
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	var req dto.ChangePasswordRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.authService.ChangePassword(c.Request.Context(), currentUser(c), &req); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "密码修改成功", gin.H{})
}

func (h *AuthHandler) setTokenCookies(c *gin.Context, tokens *dto.TokenData) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.AccessTokenCookie, tokens.AccessToken, int(h.cookies.AccessTTL.Seconds()), "/", h.cookies.Domain, h.cookies.Secure, true)
	c.SetCookie(middleware.RefreshTokenCookie, tokens.RefreshToken, int(h.cookies.RefreshTTL.Seconds()), "/", h.cookies.Domain, h.cookies.Secure, true)
}

func (h *AuthHandler) clearTokenCookies(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.AccessTokenCookie, "", -1, "/", h.cookies.Domain, h.cookies.Secure, true)
	c.SetCookie(middleware.RefreshTokenCookie, "", -1, "/", h.cookies.Domain, h.cookies.Secure, true)
}
