package dto

import (
	"time"

	"vidhub-go/internal/model"
)

// VideoUploadRequest 视频上传请求（multipart/form-data，videoFile 与 thumbnail 必填）
type VideoUploadRequest struct {
	Title       string `form:"title" binding:"required,min=1,max=200"`
	Description string `form:"description" binding:"required,min=1"`
}

// VideoUpdateRequest 视频更新请求（multipart/form-data，thumbnail 可选）
type VideoUpdateRequest struct {
	Title       string `form:"title" binding:"required,min=1,max=200"`
	Description string `form:"description" binding:"required,min=1"`
}

// VideoListQuery 视频列表参数
type VideoListQuery struct {
	ListQuery
	UserID string `form:"userId"`
}

// VideoInfo 视频信息
type VideoInfo struct {
	ID          int64          `json:"id"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	VideoFile   model.MediaRef `json:"videoFile"`
	Thumbnail   model.MediaRef `json:"thumbnail"`
	Duration    float64        `json:"duration"`
	Views       int64          `json:"views"`
	IsPublished bool           `json:"isPublished"`
	OwnerID     int64          `json:"ownerId"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
	Owner       *OwnerInfo     `json:"owner,omitempty"`
}

// VideoOwner 视频详情中的作者频道信息
type VideoOwner struct {
	ID               int64          `json:"id"`
	Username         string         `json:"username"`
	FullName         string         `json:"fullName"`
	Avatar           model.MediaRef `json:"avatar"`
	SubscribersCount int64          `json:"subscribersCount"`
	IsSubscribed     bool           `json:"isSubscribed"`
}

// VideoDetail 视频详情
type VideoDetail struct {
	ID          int64          `json:"id"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	VideoFile   model.MediaRef `json:"videoFile"`
	Thumbnail   model.MediaRef `json:"thumbnail"`
	Duration    float64        `json:"duration"`
	Views       int64          `json:"views"`
	IsPublished bool           `json:"isPublished"`
	CreatedAt   time.Time      `json:"createdAt"`
	Owner       *VideoOwner    `json:"owner"`
	LikesCount  int64          `json:"likesCount"`
	IsLiked     bool           `json:"isLiked"`
}
