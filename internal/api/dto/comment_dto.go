package dto

import "time"

// ContentRequest 评论、动态的文本内容
type ContentRequest struct {
	Content string `json:"content" binding:"required,min=1,max=5000"`
}

// CommentInfo 评论信息
type CommentInfo struct {
	ID         int64      `json:"id"`
	Content    string     `json:"content"`
	VideoID    int64      `json:"videoId"`
	Owner      *OwnerInfo `json:"owner"`
	LikesCount int64      `json:"likesCount"`
	IsLiked    bool       `json:"isLiked"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
}

// TweetInfo 动态信息
type TweetInfo struct {
	ID         int64      `json:"id"`
	Content    string     `json:"content"`
	Owner      *OwnerInfo `json:"owner"`
	LikesCount int64      `json:"likesCount"`
	IsLiked    bool       `json:"isLiked"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
}
