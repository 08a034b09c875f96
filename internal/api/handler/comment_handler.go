package handler

import (
	"vidhub-go/internal/api/dto"
	"vidhub-go/internal/api/middleware"
	"vidhub-go/internal/api/response"

	"github.com/gin-gonic/gin"
)

type CommentHandler struct {
	commentService CommentService
}

func NewCommentHandler(commentService CommentService) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

// ListByVideo 视频评论列表
// @Summary 视频评论列表
// @Tags 评论
// @Produce json
// @Param videoId path int true "视频 ID"
// @Param page query int false "页码"
// @Param limit query int false "每页数量"
// @Success 200 {object} response.Response{data=feed.Page[dto.CommentInfo]} "获取成功"
// @Failure 404 {object} response.ErrorResponse "视频不存在"
// @Router /comments/{videoId} [get]
func (h *CommentHandler) ListByVideo(c *gin.Context) {
	videoID, ok := parseIDParam(c, "videoId", "无效的视频ID")
	if !ok {
		return
	}
	var q dto.ListQuery
	if !bindListQuery(c, &q) {
		return
	}

	viewerID, _ := middleware.GetCurrentUserID(c)
	page, err := h.commentService.ListByVideo(c.Request.Context(), videoID, &q, viewerID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "获取评论成功", page)
}

// Add 发表评论
// @Summary 发表评论
// @Tags 评论
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param videoId path int true "视频 ID"
// @Param request body dto.ContentRequest true "评论内容"
// @Success 201 {object} response.Response{data=dto.CommentInfo} "评论成功"
// @Router /comments/{videoId} [post]
func (h *CommentHandler) Add(c *gin.Context) {
	videoID, ok := parseIDParam(c, "videoId", "无效的视频ID")
	if !ok {
		return
	}
	content, ok := bindContent(c)
	if !ok {
		return
	}

	info, err := h.commentService.Add(c.Request.Context(), videoID, currentUser(c), content)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "评论成功", info)
}

// Update 修改评论
// @Summary 修改评论
// @Tags 评论
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param commentId path int true "评论 ID"
// @Param request body dto.ContentRequest true "评论内容"
// @Success 200 {object} response.Response{data=dto.CommentInfo} "修改成功"
// @Router /comments/c/{commentId} [patch]
func (h *CommentHandler) Update(c *gin.Context) {
	commentID, ok := parseIDParam(c, "commentId", "无效的评论ID")
	if !ok {
		return
	}
	content, ok := bindContent(c)
	if !ok {
		return
	}

	info, err := h.commentService.Update(c.Request.Context(), commentID, currentUser(c), content)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "评论已修改", info)
}

// Delete 删除评论
// @Summary 删除评论
// @Tags 评论
// @Produce json
// @Security BearerAuth
// @Param commentId path int true "评论 ID"
// @Success 200 {object} response.Response "删除成功"
// @Router /comments/c/{commentId} [delete]
func (h *CommentHandler) Delete(c *gin.Context) {
	commentID, ok := parseIDParam(c, "commentId", "无效的评论ID")
	if !ok {
		return
	}

	if err := h.commentService.Delete(c.Request.Context(), commentID, currentUser(c)); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "评论已删除", gin.H{})
}
