package service

import (
	"context"

	"vidhub-go/internal/api/dto"
	"vidhub-go/internal/model"
	"vidhub-go/pkg/apperr"
)

var ErrSelfSubscription = apperr.InvalidInput("不能订阅自己的频道")

type SubscriptionService struct {
	subs   SubscriptionStore
	users  UserStore
	videos VideoStore
}

func NewSubscriptionService(subs SubscriptionStore, users UserStore, videos VideoStore) *SubscriptionService {
	return &SubscriptionService{subs: subs, users: users, videos: videos}
}

// Toggle 切换订阅状态
func (s *SubscriptionService) Toggle(ctx context.Context, subscriberID, channelID int64) (*dto.SubscriptionStatus, error) {
	if subscriberID == channelID {
		return nil, ErrSelfSubscription
	}
	if _, err := s.users.GetByID(ctx, channelID); err != nil {
		return nil, storeErr(err, ErrChannelNotFound)
	}

	subscribed, err := s.subs.Toggle(ctx, subscriberID, channelID)
	if err != nil {
		return nil, storeErr(err, nil)
	}
	return &dto.SubscriptionStatus{IsSubscribed: subscribed}, nil
}

// Subscribers 频道的订阅者，附带各自的订阅者数以及频道是否回订
func (s *SubscriptionService) Subscribers(ctx context.Context, channelID int64) ([]dto.SubscriberInfo, error) {
	if _, err := s.users.GetByID(ctx, channelID); err != nil {
		return nil, storeErr(err, ErrChannelNotFound)
	}

	users, err := s.subs.ListSubscribers(ctx, channelID)
	if err != nil {
		return nil, storeErr(err, nil)
	}
	ids := userIDs(users)

	counts, err := s.subs.BatchCountSubscribers(ctx, ids)
	if err != nil {
		return nil, storeErr(err, nil)
	}
	back, err := s.subs.BatchIsSubscribed(ctx, channelID, ids)
	if err != nil {
		return nil, storeErr(err, nil)
	}

	items := make([]dto.SubscriberInfo, 0, len(users))
	for _, u := range users {
		items = append(items, dto.SubscriberInfo{
			ID:                     u.ID,
			Username:               u.Username,
			FullName:               u.FullName,
			Avatar:                 u.Avatar,
			SubscribersCount:       counts[u.ID],
			SubscribedToSubscriber: back[u.ID],
		})
	}
	return items, nil
}

// Channels 用户订阅的频道，附带各频道最新发布的视频
func (s *SubscriptionService) Channels(ctx context.Context, subscriberID int64) ([]dto.ChannelInfo, error) {
	if _, err := s.users.GetByID(ctx, subscriberID); err != nil {
		return nil, storeErr(err, ErrUserNotFound)
	}

	users, err := s.subs.ListChannels(ctx, subscriberID)
	if err != nil {
		return nil, storeErr(err, nil)
	}
	latest, err := s.videos.LatestByOwners(ctx, userIDs(users))
	if err != nil {
		return nil, storeErr(err, nil)
	}

	items := make([]dto.ChannelInfo, 0, len(users))
	for _, u := range users {
		ch := dto.ChannelInfo{
			ID:       u.ID,
			Username: u.Username,
			FullName: u.FullName,
			Avatar:   u.Avatar,
		}
		if v, ok := latest[u.ID]; ok {
			info := toVideoInfo(&v)
			ch.LatestVideo = &info
		}
		items = append(items, ch)
	}
	return items, nil
}

func userIDs(users []model.User) []int64 {
	ids := make([]int64, 0, len(users))
	for _, u := range users {
		ids = append(ids, u.ID)
	}
	return ids
}
