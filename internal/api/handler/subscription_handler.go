package handler

import (
	"vidhub-go/internal/api/response"

	"github.com/gin-gonic/gin"
)

type SubscriptionHandler struct {
	subscriptionService SubscriptionService
}

func NewSubscriptionHandler(subscriptionService SubscriptionService) *SubscriptionHandler {
	return &SubscriptionHandler{subscriptionService: subscriptionService}
}

// Toggle 订阅/取消订阅频道
// @Summary 订阅切换
// @Tags 订阅
// @Produce json
// @Security BearerAuth
// @Param channelId path int true "频道（用户）ID"
// @Success 200 {object} response.Response{data=dto.SubscriptionStatus} "切换成功"
// @Failure 400 {object} response.ErrorResponse "不能订阅自己"
// @Failure 404 {object} response.ErrorResponse "频道不存在"
// @Router /subscriptions/{channelId} [post]
func (h *SubscriptionHandler) Toggle(c *gin.Context) {
	channelID, ok := parseIDParam(c, "channelId", "无效的频道ID")
	if !ok {
		return
	}

	status, err := h.subscriptionService.Toggle(c.Request.Context(), currentUser(c), channelID)
	if err != nil {
		response.Error(c, err)
		return
	}
	message := "已取消订阅"
	if status.IsSubscribed {
		message = "订阅成功"
	}
	response.OK(c, message, status)
}

// Subscribers 频道的订阅者
// @Summary 频道订阅者
// @Tags 订阅
// @Produce json
// @Security BearerAuth
// @Param channelId path int true "频道 ID"
// @Success 200 {object} response.Response{data=[]dto.SubscriberInfo} "获取成功"
// @Router /subscriptions/subscribers/{channelId} [get]
func (h *SubscriptionHandler) Subscribers(c *gin.Context) {
	channelID, ok := parseIDParam(c, "channelId", "无效的频道ID")
	if !ok {
		return
	}

	items, err := h.subscriptionService.Subscribers(c.Request.Context(), channelID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "获取成功", items)
}

// Channels 用户订阅的频道
// @Summary 已订阅频道
// @Tags 订阅
// @Produce json
// @Security BearerAuth
// @Param subscriberId path int true "用户 ID"
// @Success 200 {object} response.Response{data=[]dto.ChannelInfo} "获取成功"
// @Router /subscriptions/channels/{subscriberId} [get]
func (h *SubscriptionHandler) Channels(c *gin.Context) {
	subscriberID, ok := parseIDParam(c, "subscriberId", "无效的用户ID")
	if !ok {
		return
	}

	items, err := h.subscriptionService.Channels(c.Request.Context(), subscriberID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "获取成功", items)
}
