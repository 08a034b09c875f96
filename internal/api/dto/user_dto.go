package dto

import (
	"time"

	"vidhub-go/internal/model"
)

// UserInfo 当前用户信息（不含密码和令牌）
type UserInfo struct {
	ID         int64          `json:"id"`
	Username   string         `json:"username"`
	Email      string         `json:"email"`
	FullName   string         `json:"fullName"`
	Avatar     model.MediaRef `json:"avatar"`
	CoverImage model.MediaRef `json:"coverImage"`
	CreatedAt  time.Time      `json:"createdAt"`
	UpdatedAt  time.Time      `json:"updatedAt"`
}

// UpdateAccountRequest 更新账户信息
type UpdateAccountRequest struct {
	FullName string `json:"fullName" binding:"required,min=1,max=128"`
	Email    string `json:"email" binding:"required,email,max=255"`
}

// ChannelProfile 频道主页
type ChannelProfile struct {
	ID                        int64          `json:"id"`
	Username                  string         `json:"username"`
	FullName                  string         `json:"fullName"`
	Email                     string         `json:"email"`
	Avatar                    model.MediaRef `json:"avatar"`
	CoverImage                model.MediaRef `json:"coverImage"`
	SubscribersCount          int64          `json:"subscribersCount"`
	ChannelsSubscribedToCount int64          `json:"channelsSubscribedToCount"`
	IsSubscribed              bool           `json:"isSubscribed"`
}

// OwnerInfo 列表项中嵌套的作者公开信息
type OwnerInfo struct {
	ID       int64          `json:"id"`
	Username string         `json:"username"`
	FullName string         `json:"fullName"`
	Avatar   model.MediaRef `json:"avatar"`
}

// ListQuery 通用分页与排序参数
type ListQuery struct {
	Page     int    `form:"page"`
	Limit    int    `form:"limit"`
	Query    string `form:"query"`
	SortBy   string `form:"sortBy"`
	SortType string `form:"sortType"`
}
