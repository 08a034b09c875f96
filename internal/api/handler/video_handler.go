package handler

import (
	"vidhub-go/internal/api/dto"
	"vidhub-go/internal/api/middleware"
	"vidhub-go/internal/api/response"

	"github.com/gin-gonic/gin"
)

type VideoHandler struct {
	videoService VideoService
	uploads      Uploads
}

func NewVideoHandler(videoService VideoService, uploads Uploads) *VideoHandler {
	return &VideoHandler{videoService: videoService, uploads: uploads}
}

// Upload 发布视频
// @Summary 发布视频
// @Tags 视频
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param title formData string true "标题"
// @Param description formData string true "描述"
// @Param videoFile formData file true "视频文件"
// @Param thumbnail formData file true "缩略图"
// @Success 201 {object} response.Response{data=dto.VideoInfo} "发布成功"
// @Failure 400 {object} response.ErrorResponse "请求参数无效"
// @Failure 500 {object} response.ErrorResponse "上传失败"
// @Router /videos/upload-video [post]
func (h *VideoHandler) Upload(c *gin.Context) {
	var req dto.VideoUploadRequest
	if err := c.ShouldBind(&req); err != nil {
		response.BadRequest(c, "请求参数无效", err.Error())
		return
	}

	paths, ok := h.uploads.saveAll(c, "videoFile", "thumbnail")
	if !ok {
		return
	}
	defer removeTemp(paths...)

	info, err := h.videoService.Publish(c.Request.Context(), currentUser(c), &req, paths[0], paths[1])
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "视频发布成功", info)
}

// GetVideos 视频列表（可选登录）
// @Summary 视频列表
// @Description 支持全文检索、按作者过滤、排序和分页
// @Tags 视频
// @Produce json
// @Param page query int false "页码，默认 1"
// @Param limit query int false "每页数量，默认 10，最大 100"
// @Param query query string false "检索词"
// @Param sortBy query string false "排序字段：createdAt|updatedAt|views|duration|title"
// @Param sortType query string false "asc|desc"
// @Param userId query string false "作者 ID"
// @Success 200 {object} response.Response{data=feed.Page[dto.VideoInfo]} "获取成功"
// @Failure 400 {object} response.ErrorResponse "参数无效"
// @Router /videos/get-videos [get]
func (h *VideoHandler) GetVideos(c *gin.Context) {
	var q dto.VideoListQuery
	if !bindListQuery(c, &q) {
		return
	}

	viewerID, _ := middleware.GetCurrentUserID(c)
	page, err := h.videoService.Feed(c.Request.Context(), &q, viewerID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "获取视频列表成功", page)
}

// GetVideo 视频详情，播放量 +1 并记入观看历史
// @Summary 视频详情
// @Tags 视频
// @Produce json
// @Security BearerAuth
// @Param videoId path int true "视频 ID"
// @Success 200 {object} response.Response{data=dto.VideoDetail} "获取成功"
// @Failure 404 {object} response.ErrorResponse "视频不存在"
// @Router /videos/get-video/{videoId} [get]
func (h *VideoHandler) GetVideo(c *gin.Context) {
	videoID, ok := parseIDParam(c, "videoId", "无效的视频ID")
	if !ok {
		return
	}

	detail, err := h.videoService.Detail(c.Request.Context(), videoID, currentUser(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "获取视频详情成功", detail)
}

// UpdateVideo 修改视频信息，缩略图可选
// @Summary 修改视频
// @Tags 视频
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param videoId path int true "视频 ID"
// @Param title formData string true "标题"
// @Param description formData string true "描述"
// @Param thumbnail formData file false "新缩略图"
// @Success 200 {object} response.Response{data=dto.VideoInfo} "更新成功"
// @Failure 401 {object} response.ErrorResponse "无权操作"
// @Failure 404 {object} response.ErrorResponse "视频不存在"
// @Router /videos/update-video/{videoId} [patch]
func (h *VideoHandler) UpdateVideo(c *gin.Context) {
	videoID, ok := parseIDParam(c, "videoId", "无效的视频ID")
	if !ok {
		return
	}
	var req dto.VideoUpdateRequest
	if err := c.ShouldBind(&req); err != nil {
		response.BadRequest(c, "请求参数无效", err.Error())
		return
	}

	paths, ok := h.uploads.saveAll(c, "thumbnail")
	if !ok {
		return
	}
	defer removeTemp(paths...)

	info, err := h.videoService.Update(c.Request.Context(), videoID, currentUser(c), &req, paths[0])
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "视频更新成功", info)
}

// TogglePublish 切换发布状态
// @Summary 切换发布状态
// @Tags 视频
// @Produce json
// @Security BearerAuth
// @Param videoId path int true "视频 ID"
// @Success 200 {object} response.Response{data=dto.VideoInfo} "切换成功"
// @Failure 401 {object} response.ErrorResponse "无权操作"
// @Router /videos/toggle-publish/{videoId} [patch]
func (h *VideoHandler) TogglePublish(c *gin.Context) {
	videoID, ok := parseIDParam(c, "videoId", "无效的视频ID")
	if !ok {
		return
	}

	info, err := h.videoService.TogglePublish(c.Request.Context(), videoID, currentUser(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "发布状态已切换", info)
}

// DeleteVideo 删除视频
// @Summary 删除视频
// @Description 同时删除视频的点赞、评论及评论点赞
// @Tags 视频
// @Produce json
// @Security BearerAuth
// @Param videoId path int true "视频 ID"
// @Success 200 {object} response.Response "删除成功"
// @Failure 401 {object} response.ErrorResponse "无权操作"
// @Failure 404 {object} response.ErrorResponse "视频不存在"
// @Router /videos/video/{videoId} [delete]
func (h *VideoHandler) DeleteVideo(c *gin.Context) {
	videoID, ok := parseIDParam(c, "videoId", "无效的视频ID")
	if !ok {
		return
	}

	if err := h.videoService.Delete(c.Request.Context(), videoID, currentUser(c)); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "视频已删除", gin.H{})
}
