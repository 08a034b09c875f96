package model

import (
	"strings"
	"time"

	"vidhub-go/pkg/apperr"
)

// Comment 评论模型
type Comment struct {
	ID        int64     `gorm:"primaryKey;autoIncrement;comment:评论ID" json:"id"`
	Content   string    `gorm:"type:text;not null;comment:评论内容" json:"content"`
	VideoID   int64     `gorm:"not null;index:idx_comments_video_created,priority:1;comment:被评论视频ID" json:"videoId"`
	OwnerID   int64     `gorm:"not null;index;comment:评论用户ID" json:"ownerId"`
	CreatedAt time.Time `gorm:"autoCreateTime;index:idx_comments_video_created,priority:2;comment:评论时间" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime;comment:更新时间" json:"updatedAt"`

	Owner *User `gorm:"foreignKey:OwnerID" json:"-"`
}

func (Comment) TableName() string {
	return "comments"
}

func (c *Comment) OwnerKey() int64 { return c.OwnerID }

// NewComment 创建评论
func NewComment(videoID, ownerID int64, content string) (*Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, apperr.InvalidInput("评论内容不能为空")
	}
	if videoID <= 0 || ownerID <= 0 {
		return nil, apperr.InvalidInput("无效的评论归属")
	}
	return &Comment{Content: content, VideoID: videoID, OwnerID: ownerID}, nil
}
