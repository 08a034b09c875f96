package handler

import (
	"context"
	"strings"

	"vidhub-go/internal/api/dto"
	"vidhub-go/internal/api/response"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	userService UserService
	uploads     Uploads
}

func NewUserHandler(userService UserService, uploads Uploads) *UserHandler {
	return &UserHandler{userService: userService, uploads: uploads}
}

// GetProfile 当前用户信息
// @Summary 获取当前用户信息
// @Tags 用户
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response{data=dto.UserInfo} "获取成功"
// @Failure 401 {object} response.ErrorResponse "未授权"
// @Router /users/get-profile [get]
func (h *UserHandler) GetProfile(c *gin.Context) {
	info, err := h.userService.GetCurrent(c.Request.Context(), currentUser(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "获取成功", info)
}

// UpdateProfile 更新昵称和邮箱
// @Summary 更新账户信息
// @Tags 用户
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.UpdateAccountRequest true "账户信息"
// @Success 200 {object} response.Response{data=dto.UserInfo} "更新成功"
// @Failure 409 {object} response.ErrorResponse "邮箱已被使用"
// @Router /users/update-profile [patch]
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	var req dto.UpdateAccountRequest
	if !bindJSON(c, &req) {
		return
	}

	info, err := h.userService.UpdateAccount(c.Request.Context(), currentUser(c), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "账户信息已更新", info)
}

// UpdateAvatar 更换头像
// @Summary 更换头像
// @Tags 用户
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param avatar formData file true "头像"
// @Success 200 {object} response.Response{data=dto.UserInfo} "更新成功"
// @Router /users/profile-image [patch]
func (h *UserHandler) UpdateAvatar(c *gin.Context) {
	h.replaceImage(c, "avatar", "头像已更新", h.userService.UpdateAvatar)
}

// UpdateCover 更换封面图
// @Summary 更换封面图
// @Tags 用户
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param coverImage formData file true "封面图"
// @Success 200 {object} response.Response{data=dto.UserInfo} "更新成功"
// @Router /users/cover-image [patch]
func (h *UserHandler) UpdateCover(c *gin.Context) {
	h.replaceImage(c, "coverImage", "封面图已更新", h.userService.UpdateCover)
}

func (h *UserHandler) replaceImage(c *gin.Context, field, message string,
	update func(ctx context.Context, userID int64, localPath string) (*dto.UserInfo, error)) {
	paths, ok := h.uploads.saveAll(c, field)
	if !ok {
		return
	}
	defer removeTemp(paths...)
	if paths[0] == "" {
		response.BadRequest(c, "请上传图片文件")
		return
	}

	info, err := update(c.Request.Context(), currentUser(c), paths[0])
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, message, info)
}

// ChannelProfile 频道主页
// @Summary 频道主页
// @Tags 用户
// @Produce json
// @Security BearerAuth
// @Param username path string true "用户名"
// @Success 200 {object} response.Response{data=dto.ChannelProfile} "获取成功"
// @Failure 404 {object} response.ErrorResponse "频道不存在"
// @Router /users/user-channel-profile/{username} [get]
func (h *UserHandler) ChannelProfile(c *gin.Context) {
	username := strings.TrimSpace(c.Param("username"))
	if username == "" {
		response.BadRequest(c, "用户名不能为空")
		return
	}

	profile, err := h.userService.ChannelProfile(c.Request.Context(), username, currentUser(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "获取成功", profile)
}

// WatchHistory 观看历史
// @Summary 观看历史
// @Tags 用户
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response{data=[]dto.VideoInfo} "获取成功"
// @Router /users/watch-history [get]
func (h *UserHandler) WatchHistory(c *gin.Context) {
	videos, err := h.userService.WatchHistory(c.Request.Context(), currentUser(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "获取成功", videos)
}
