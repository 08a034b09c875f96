package model

import (
	"strings"
	"time"

	"vidhub-go/pkg/apperr"
)

// Tweet 动态（短文本）
type Tweet struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	OwnerID   int64     `gorm:"not null;index" json:"ownerId"`
	CreatedAt time.Time `gorm:"autoCreateTime;index" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`

	Owner *User `gorm:"foreignKey:OwnerID" json:"-"`
}

func (Tweet) TableName() string {
	return "tweets"
}

func (t *Tweet) OwnerKey() int64 { return t.OwnerID }

func NewTweet(ownerID int64, content string) (*Tweet, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, apperr.InvalidInput("动态内容不能为空")
	}
	if ownerID <= 0 {
		return nil, apperr.InvalidInput("无效的动态归属")
	}
	return &Tweet{Content: content, OwnerID: ownerID}, nil
}
