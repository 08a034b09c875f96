package dto

import (
	"time"

	"vidhub-go/internal/model"
)

// LikeStatus 点赞切换结果
type LikeStatus struct {
	IsLiked bool `json:"isLiked"`
}

// SubscriptionStatus 订阅切换结果
type SubscriptionStatus struct {
	IsSubscribed bool `json:"isSubscribed"`
}

// SubscriberInfo 频道的订阅者
type SubscriberInfo struct {
	ID                     int64          `json:"id"`
	Username               string         `json:"username"`
	FullName               string         `json:"fullName"`
	Avatar                 model.MediaRef `json:"avatar"`
	SubscribersCount       int64          `json:"subscribersCount"`
	SubscribedToSubscriber bool           `json:"subscribedToSubscriber"`
}

// ChannelInfo 用户订阅的频道
type ChannelInfo struct {
	ID          int64          `json:"id"`
	Username    string         `json:"username"`
	FullName    string         `json:"fullName"`
	Avatar      model.MediaRef `json:"avatar"`
	LatestVideo *VideoInfo     `json:"latestVideo"`
}

// PlaylistRequest 创建或更新播放列表
type PlaylistRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=200"`
	Description string `json:"description" binding:"required,min=1"`
}

// PlaylistInfo 播放列表概要
type PlaylistInfo struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	OwnerID     int64     `json:"ownerId"`
	TotalVideos int64     `json:"totalVideos"`
	TotalViews  int64     `json:"totalViews"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// PlaylistDetail 播放列表详情，视频按加入顺序排列
type PlaylistDetail struct {
	PlaylistInfo
	Owner  *OwnerInfo  `json:"owner"`
	Videos []VideoInfo `json:"videos"`
}
