package handler

import (
	"vidhub-go/internal/api/dto"
	"vidhub-go/internal/api/middleware"
	"vidhub-go/internal/api/response"

	"github.com/gin-gonic/gin"
)

type TweetHandler struct {
	tweetService TweetService
}

func NewTweetHandler(tweetService TweetService) *TweetHandler {
	return &TweetHandler{tweetService: tweetService}
}

// Create 发布动态
// @Summary 发布动态
// @Tags 动态
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.ContentRequest true "动态内容"
// @Success 201 {object} response.Response{data=dto.TweetInfo} "发布成功"
// @Router /tweets/create [post]
func (h *TweetHandler) Create(c *gin.Context) {
	content, ok := bindContent(c)
	if !ok {
		return
	}

	info, err := h.tweetService.Create(c.Request.Context(), currentUser(c), content)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "动态发布成功", info)
}

// Update 修改动态
// @Summary 修改动态
// @Tags 动态
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param tweetId path int true "动态 ID"
// @Param request body dto.ContentRequest true "动态内容"
// @Success 200 {object} response.Response{data=dto.TweetInfo} "修改成功"
// @Router /tweets/update/{tweetId} [patch]
func (h *TweetHandler) Update(c *gin.Context) {
	tweetID, ok := parseIDParam(c, "tweetId", "无效的动态ID")
	if !ok {
		return
	}
	content, ok := bindContent(c)
	if !ok {
		return
	}

	info, err := h.tweetService.Update(c.Request.Context(), tweetID, currentUser(c), content)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "动态已修改", info)
}

// Delete 删除动态
// @Summary 删除动态
// @Tags 动态
// @Produce json
// @Security BearerAuth
// @Param tweetId path int true "动态 ID"
// @Success 200 {object} response.Response "删除成功"
// @Router /tweets/delete/{tweetId} [delete]
func (h *TweetHandler) Delete(c *gin.Context) {
	tweetID, ok := parseIDParam(c, "tweetId", "无效的动态ID")
	if !ok {
		return
	}

	if err := h.tweetService.Delete(c.Request.Context(), tweetID, currentUser(c)); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "动态已删除", gin.H{})
}

// List 全部动态
// @Summary 动态列表
// @Tags 动态
// @Produce json
// @Param page query int false "页码"
// @Param limit query int false "每页数量"
// @Success 200 {object} response.Response{data=feed.Page[dto.TweetInfo]} "获取成功"
// @Router /tweets [get]
func (h *TweetHandler) List(c *gin.Context) {
	var q dto.ListQuery
	if !bindListQuery(c, &q) {
		return
	}

	viewerID, _ := middleware.GetCurrentUserID(c)
	page, err := h.tweetService.List(c.Request.Context(), &q, viewerID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "获取动态成功", page)
}

// ListByUser 用户的动态
// @Summary 用户动态列表
// @Tags 动态
// @Produce json
// @Param userId path int true "用户 ID"
// @Success 200 {object} response.Response{data=feed.Page[dto.TweetInfo]} "获取成功"
// @Failure 404 {object} response.ErrorResponse "用户不存在"
// @Router /tweets/{userId} [get]
func (h *TweetHandler) ListByUser(c *gin.Context) {
	userID, ok := parseIDParam(c, "userId", "无效的用户ID")
	if !ok {
		return
	}
	var q dto.ListQuery
	if !bindListQuery(c, &q) {
		return
	}

	viewerID, _ := middleware.GetCurrentUserID(c)
	page, err := h.tweetService.ListByUser(c.Request.Context(), userID, &q, viewerID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "获取动态成功", page)
}
