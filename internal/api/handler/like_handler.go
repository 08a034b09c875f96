package handler

import (
	"vidhub-go/internal/api/response"
	"vidhub-go/internal/model"

	"github.com/gin-gonic/gin"
)

type LikeHandler struct {
	likeService LikeService
}

func NewLikeHandler(likeService LikeService) *LikeHandler {
	return &LikeHandler{likeService: likeService}
}

// ToggleVideoLike 视频点赞/取消点赞
// @Summary 视频点赞切换
// @Tags 点赞
// @Produce json
// @Security BearerAuth
// @Param videoId path int true "视频 ID"
// @Success 200 {object} response.Response{data=dto.LikeStatus} "切换成功"
// @Failure 404 {object} response.ErrorResponse "视频不存在"
// @Router /likes/video-like/{videoId} [post]
func (h *LikeHandler) ToggleVideoLike(c *gin.Context) {
	h.toggle(c, model.LikeTargetVideo, "videoId", "无效的视频ID")
}

// ToggleCommentLike 评论点赞/取消点赞
// @Summary 评论点赞切换
// @Tags 点赞
// @Produce json
// @Security BearerAuth
// @Param commentId path int true "评论 ID"
// @Success 200 {object} response.Response{data=dto.LikeStatus} "切换成功"
// @Router /likes/comment-like/{commentId} [post]
func (h *LikeHandler) ToggleCommentLike(c *gin.Context) {
	h.toggle(c, model.LikeTargetComment, "commentId", "无效的评论ID")
}

// ToggleTweetLike 动态点赞/取消点赞
// @Summary 动态点赞切换
// @Tags 点赞
// @Produce json
// @Security BearerAuth
// @Param tweetId path int true "动态 ID"
// @Success 200 {object} response.Response{data=dto.LikeStatus} "切换成功"
// @Router /likes/tweet-like/{tweetId} [post]
func (h *LikeHandler) ToggleTweetLike(c *gin.Context) {
	h.toggle(c, model.LikeTargetTweet, "tweetId", "无效的动态ID")
}

func (h *LikeHandler) toggle(c *gin.Context, target model.LikeTarget, param, message string) {
	targetID, ok := parseIDParam(c, param, message)
	if !ok {
		return
	}

	status, err := h.likeService.Toggle(c.Request.Context(), currentUser(c), target, targetID)
	if err != nil {
		response.Error(c, err)
		return
	}
	message = "已取消点赞"
	if status.IsLiked {
		message = "点赞成功"
	}
	response.OK(c, message, status)
}

// LikedVideos 我点赞过的视频
// @Summary 点赞过的视频
// @Tags 点赞
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response{data=[]dto.VideoInfo} "获取成功"
// @Router /likes/get-liked-videos [get]
func (h *LikeHandler) LikedVideos(c *gin.Context) {
	videos, err := h.likeService.LikedVideos(c.Request.Context(), currentUser(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "获取成功", videos)
}
