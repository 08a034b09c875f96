package handler

import (
	"vidhub-go/internal/api/dto"
	"vidhub-go/internal/api/response"

	"github.com/gin-gonic/gin"
)

type PlaylistHandler struct {
	playlistService PlaylistService
}

func NewPlaylistHandler(playlistService PlaylistService) *PlaylistHandler {
	return &PlaylistHandler{playlistService: playlistService}
}

// Create 创建播放列表
// @Summary 创建播放列表
// @Tags 播放列表
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.PlaylistRequest true "名称和描述"
// @Success 201 {object} response.Response{data=dto.PlaylistInfo} "创建成功"
// @Router /playlists [post]
func (h *PlaylistHandler) Create(c *gin.Context) {
	var req dto.PlaylistRequest
	if !bindJSON(c, &req) {
		return
	}

	info, err := h.playlistService.Create(c.Request.Context(), currentUser(c), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "播放列表已创建", info)
}

// Get 播放列表详情
// @Summary 播放列表详情
// @Tags 播放列表
// @Produce json
// @Security BearerAuth
// @Param playlistId path int true "播放列表 ID"
// @Success 200 {object} response.Response{data=dto.PlaylistDetail} "获取成功"
// @Failure 404 {object} response.ErrorResponse "播放列表不存在"
// @Router /playlists/{playlistId} [get]
func (h *PlaylistHandler) Get(c *gin.Context) {
	playlistID, ok := parseIDParam(c, "playlistId", "无效的播放列表ID")
	if !ok {
		return
	}

	detail, err := h.playlistService.Get(c.Request.Context(), playlistID, currentUser(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "获取成功", detail)
}

// ListByUser 用户的播放列表
// @Summary 用户播放列表
// @Tags 播放列表
// @Produce json
// @Security BearerAuth
// @Param userId path int true "用户 ID"
// @Success 200 {object} response.Response{data=[]dto.PlaylistInfo} "获取成功"
// @Router /playlists/user/{userId} [get]
func (h *PlaylistHandler) ListByUser(c *gin.Context) {
	userID, ok := parseIDParam(c, "userId", "无效的用户ID")
	if !ok {
		return
	}

	items, err := h.playlistService.ListByUser(c.Request.Context(), userID, currentUser(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "获取成功", items)
}

// Update 修改播放列表
// @Summary 修改播放列表
// @Tags 播放列表
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param playlistId path int true "播放列表 ID"
// @Param request body dto.PlaylistRequest true "名称和描述"
// @Success 200 {object} response.Response{data=dto.PlaylistDetail} "修改成功"
// @Router /playlists/{playlistId} [patch]
func (h *PlaylistHandler) Update(c *gin.Context) {
	playlistID, ok := parseIDParam(c, "playlistId", "无效的播放列表ID")
	if !ok {
		return
	}
	var req dto.PlaylistRequest
	if !bindJSON(c, &req) {
		return
	}

	detail, err := h.playlistService.Update(c.Request.Context(), playlistID, currentUser(c), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "播放列表已修改", detail)
}

// Delete 删除播放列表
// @Summary 删除播放列表
// @Tags 播放列表
// @Produce json
// @Security BearerAuth
// @Param playlistId path int true "播放列表 ID"
// @Success 200 {object} response.Response "删除成功"
// @Router /playlists/{playlistId} [delete]
func (h *PlaylistHandler) Delete(c *gin.Context) {
	playlistID, ok := parseIDParam(c, "playlistId", "无效的播放列表ID")
	if !ok {
		return
	}

	if err := h.playlistService.Delete(c.Request.Context(), playlistID, currentUser(c)); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "播放列表已删除", gin.H{})
}

// AddVideo 向播放列表追加视频
// @Summary 添加视频到播放列表
// @Tags 播放列表
// @Produce json
// @Security BearerAuth
// @Param videoId path int true "视频 ID"
// @Param playlistId path int true "播放列表 ID"
// @Success 200 {object} response.Response{data=dto.PlaylistDetail} "添加成功"
// @Router /playlists/add/{videoId}/{playlistId} [patch]
func (h *PlaylistHandler) AddVideo(c *gin.Context) {
	playlistID, videoID, ok := playlistVideoParams(c)
	if !ok {
		return
	}

	detail, err := h.playlistService.AddVideo(c.Request.Context(), playlistID, videoID, currentUser(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "视频已加入播放列表", detail)
}

// RemoveVideo 从播放列表移除视频
// @Summary 从播放列表移除视频
// @Tags 播放列表
// @Produce json
// @Security BearerAuth
// @Param videoId path int true "视频 ID"
// @Param playlistId path int true "播放列表 ID"
// @Success 200 {object} response.Response{data=dto.PlaylistDetail} "移除成功"
// @Router /playlists/remove/{videoId}/{playlistId} [patch]
func (h *PlaylistHandler) RemoveVideo(c *gin.Context) {
	playlistID, videoID, ok := playlistVideoParams(c)
	if !ok {
		return
	}

	detail, err := h.playlistService.RemoveVideo(c.Request.Context(), playlistID, videoID, currentUser(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "视频已移出播放列表", detail)
}

func playlistVideoParams(c *gin.Context) (playlistID, videoID int64, ok bool) {
	if videoID, ok = parseIDParam(c, "videoId", "无效的视频ID"); !ok {
		return
	}
	playlistID, ok = parseIDParam(c, "playlistId", "无效的播放列表ID")
	return
}
