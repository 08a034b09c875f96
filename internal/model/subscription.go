package model

import (
	"time"

	"vidhub-go/pkg/apperr"
)

// Subscription 订阅关系：Subscriber 订阅了 Channel
type Subscription struct {
	ID           int64     `gorm:"primaryKey;autoIncrement;comment:订阅关系ID" json:"id"`
	SubscriberID int64     `gorm:"not null;uniqueIndex:uq_subscriptions_pair,priority:1;comment:订阅者ID" json:"subscriberId"`
	ChannelID    int64     `gorm:"not null;uniqueIndex:uq_subscriptions_pair,priority:2;index;comment:被订阅频道ID" json:"channelId"`
	CreatedAt    time.Time `gorm:"autoCreateTime;index;comment:订阅时间" json:"createdAt"`
}

func (Subscription) TableName() string {
	return "subscriptions"
}

// NewSubscription 创建订阅关系，不允许订阅自己
func NewSubscription(subscriberID, channelID int64) (*Subscription, error) {
	if subscriberID <= 0 || channelID <= 0 {
		return nil, apperr.InvalidInput("无效的频道ID")
	}
	if subscriberID == channelID {
		return nil, apperr.InvalidInput("不能订阅自己的频道")
	}
	return &Subscription{SubscriberID: subscriberID, ChannelID: channelID}, nil
}
