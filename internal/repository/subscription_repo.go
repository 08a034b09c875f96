package repository

import (
	"context"

	"vidhub-go/internal/model"

	"gorm.io/gorm"
)

type SubscriptionRepository struct {
	db *gorm.DB
}

func NewSubscriptionRepository(db *gorm.DB) *SubscriptionRepository {
	return &SubscriptionRepository{db: db}
}

// Toggle 切换订阅状态，返回 true 表示切换后为已订阅
func (r *SubscriptionRepository) Toggle(ctx context.Context, subscriberID, channelID int64) (bool, error) {
	sub, err := model.NewSubscription(subscriberID, channelID)
	if err != nil {
		return false, err
	}
	return toggleEdge(ctx, r.db, sub, "subscriber_id = ? AND channel_id = ?", subscriberID, channelID)
}

// CountSubscribers 频道的订阅者数
func (r *SubscriptionRepository) CountSubscribers(ctx context.Context, channelID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Subscription{}).Where("channel_id = ?", channelID).Count(&count).Error
	return count, err
}

// CountSubscribedTo 用户订阅的频道数
func (r *SubscriptionRepository) CountSubscribedTo(ctx context.Context, subscriberID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Subscription{}).Where("subscriber_id = ?", subscriberID).Count(&count).Error
	return count, err
}

// IsSubscribed 查看者是否订阅了频道，匿名查看者恒为 false
func (r *SubscriptionRepository) IsSubscribed(ctx context.Context, viewerID, channelID int64) (bool, error) {
	if viewerID <= 0 {
		return false, nil
	}
	return existsBy(ctx, r.db, &model.Subscription{}, "subscriber_id = ? AND channel_id = ?", viewerID, channelID)
}

// BatchCountSubscribers 批量统计订阅者数
func (r *SubscriptionRepository) BatchCountSubscribers(ctx context.Context, channelIDs []int64) (map[int64]int64, error) {
	result := make(map[int64]int64, len(channelIDs))
	if len(channelIDs) == 0 {
		return result, nil
	}

	var rows []struct {
		ChannelID int64
		Total     int64
	}
	err := r.db.WithContext(ctx).Model(&model.Subscription{}).
		Select("channel_id, COUNT(*) AS total").
		Where("channel_id IN ?", channelIDs).
		Group("channel_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		result[row.ChannelID] = row.Total
	}
	return result, nil
}

// BatchIsSubscribed 批量查询 subscriberID 是否订阅了各频道
func (r *SubscriptionRepository) BatchIsSubscribed(ctx context.Context, subscriberID int64, channelIDs []int64) (map[int64]bool, error) {
	result := make(map[int64]bool, len(channelIDs))
	if subscriberID <= 0 || len(channelIDs) == 0 {
		return result, nil
	}

	var subscribed []int64
	err := r.db.WithContext(ctx).Model(&model.Subscription{}).
		Where("subscriber_id = ? AND channel_id IN ?", subscriberID, channelIDs).
		Pluck("channel_id", &subscribed).Error
	if err != nil {
		return nil, err
	}
	for _, id := range subscribed {
		result[id] = true
	}
	return result, nil
}

// ListSubscribers 频道的订阅者，最近订阅的在前
func (r *SubscriptionRepository) ListSubscribers(ctx context.Context, channelID int64) ([]model.User, error) {
	var users []model.User
	err := r.db.WithContext(ctx).
		Joins("JOIN subscriptions s ON s.subscriber_id = users.id AND s.channel_id = ?", channelID).
		Order("s.created_at DESC").
		Order("users.id ASC").
		Find(&users).Error
	return users, err
}

// ListChannels 用户订阅的频道，最近订阅的在前
func (r *SubscriptionRepository) ListChannels(ctx context.Context, subscriberID int64) ([]model.User, error) {
	var users []model.User
	err := r.db.WithContext(ctx).
		Joins("JOIN subscriptions s ON s.channel_id = users.id AND s.subscriber_id = ?", subscriberID).
		Order("s.created_at DESC").
		Order("users.id ASC").
		Find(&users).Error
	return users, err
}
