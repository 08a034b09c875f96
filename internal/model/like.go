package model

import (
	"time"

	"vidhub-go/pkg/apperr"
)

// LikeTarget 点赞目标类型
type LikeTarget string

const (
	LikeTargetVideo   LikeTarget = "video"
	LikeTargetComment LikeTarget = "comment"
	LikeTargetTweet   LikeTarget = "tweet"
)

// Column 返回目标外键列名
func (t LikeTarget) Column() string {
	switch t {
	case LikeTargetVideo:
		return "video_id"
	case LikeTargetComment:
		return "comment_id"
	case LikeTargetTweet:
		return "tweet_id"
	}
	return ""
}

// Like 点赞，恰好引用视频、评论、动态之一
type Like struct {
	ID        int64     `gorm:"primaryKey;autoIncrement;check:chk_likes_single_target,num_nonnulls(video_id, comment_id, tweet_id) = 1" json:"id"`
	OwnerID   int64     `gorm:"not null;index;uniqueIndex:uq_likes_owner_video,priority:1;uniqueIndex:uq_likes_owner_comment,priority:1;uniqueIndex:uq_likes_owner_tweet,priority:1;comment:点赞用户ID" json:"ownerId"`
	VideoID   *int64    `gorm:"index;uniqueIndex:uq_likes_owner_video,priority:2" json:"videoId,omitempty"`
	CommentID *int64    `gorm:"index;uniqueIndex:uq_likes_owner_comment,priority:2" json:"commentId,omitempty"`
	TweetID   *int64    `gorm:"index;uniqueIndex:uq_likes_owner_tweet,priority:2" json:"tweetId,omitempty"`
	CreatedAt time.Time `gorm:"autoCreateTime;index" json:"createdAt"`
}

func (Like) TableName() string {
	return "likes"
}

// NewLike 创建指向单一目标的点赞
func NewLike(ownerID int64, target LikeTarget, targetID int64) (*Like, error) {
	if ownerID <= 0 || targetID <= 0 {
		return nil, apperr.InvalidInput("无效的点赞目标")
	}
	l := &Like{OwnerID: ownerID}
	id := targetID
	switch target {
	case LikeTargetVideo:
		l.VideoID = &id
	case LikeTargetComment:
		l.CommentID = &id
	case LikeTargetTweet:
		l.TweetID = &id
	default:
		return nil, apperr.InvalidInput("未知的点赞类型")
	}
	return l, nil
}
