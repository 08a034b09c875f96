package service

import (
	"context"
	"errors"

	"vidhub-go/internal/api/dto"
	"vidhub-go/internal/media"
	"vidhub-go/internal/model"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type UserService struct {
	users UserStore
	subs  SubscriptionStore
	media media.Store
}

func NewUserService(users UserStore, subs SubscriptionStore, store media.Store) *UserService {
	return &UserService{users: users, subs: subs, media: store}
}

// GetCurrent 获取当前用户
func (s *UserService) GetCurrent(ctx context.Context, userID int64) (*dto.UserInfo, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, storeErr(err, ErrUserNotFound)
	}
	return toUserInfo(user), nil
}

// UpdateAccount 修改昵称和邮箱，邮箱被占用时返回冲突
func (s *UserService) UpdateAccount(ctx context.Context, userID int64, req *dto.UpdateAccountRequest) (*dto.UserInfo, error) {
	user, err := s.users.Update(ctx, userID, map[string]interface{}{
		"full_name": req.FullName,
		"email":     model.NormalizeEmail(req.Email),
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailTaken
		}
		return nil, storeErr(err, ErrUserNotFound)
	}
	return toUserInfo(user), nil
}

// UpdateAvatar 替换头像，旧文件尽力删除
func (s *UserService) UpdateAvatar(ctx context.Context, userID int64, localPath string) (*dto.UserInfo, error) {
	if localPath == "" {
		return nil, ErrAvatarRequired
	}
	return s.replaceImage(ctx, userID, localPath, "avatar")
}

// UpdateCover 替换封面图，旧文件尽力删除
func (s *UserService) UpdateCover(ctx context.Context, userID int64, localPath string) (*dto.UserInfo, error) {
	if localPath == "" {
		return nil, ErrCoverRequired
	}
	return s.replaceImage(ctx, userID, localPath, "cover_image")
}

func (s *UserService) replaceImage(ctx context.Context, userID int64, localPath, prefix string) (*dto.UserInfo, error) {
	current, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, storeErr(err, ErrUserNotFound)
	}
	old := current.Avatar
	if prefix == "cover_image" {
		old = current.CoverImage
	}

	asset, err := s.media.Upload(ctx, localPath, media.KindImage)
	if err != nil {
		return nil, err
	}

	user, err := s.users.Update(ctx, userID, map[string]interface{}{
		prefix + "_url":       asset.URL,
		prefix + "_public_id": asset.StorageID,
	})
	if err != nil {
		bestEffort("Remove uploaded image failed", s.media.Remove(ctx, asset.StorageID, media.KindImage))
		return nil, storeErr(err, ErrUserNotFound)
	}

	if old.PublicID != "" {
		bestEffort("Remove old image failed", s.media.Remove(ctx, old.PublicID, media.KindImage),
			zap.Int64("user_id", userID), zap.String("object", old.PublicID))
	}
	return toUserInfo(user), nil
}

// ChannelProfile 频道主页：订阅者数、订阅数以及查看者是否已订阅
func (s *UserService) ChannelProfile(ctx context.Context, username string, viewerID int64) (*dto.ChannelProfile, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, storeErr(err, ErrChannelNotFound)
	}

	subscribers, err := s.subs.CountSubscribers(ctx, user.ID)
	if err != nil {
		return nil, storeErr(err, nil)
	}
	subscribedTo, err := s.subs.CountSubscribedTo(ctx, user.ID)
	if err != nil {
		return nil, storeErr(err, nil)
	}
	isSubscribed, err := s.subs.IsSubscribed(ctx, viewerID, user.ID)
	if err != nil {
		return nil, storeErr(err, nil)
	}

	return &dto.ChannelProfile{
		ID:                        user.ID,
		Username:                  user.Username,
		FullName:                  user.FullName,
		Email:                     user.Email,
		Avatar:                    user.Avatar,
		CoverImage:                user.CoverImage,
		SubscribersCount:          subscribers,
		ChannelsSubscribedToCount: subscribedTo,
		IsSubscribed:              isSubscribed,
	}, nil
}

// WatchHistory 观看历史
func (s *UserService) WatchHistory(ctx context.Context, userID int64) ([]dto.VideoInfo, error) {
	videos, err := s.users.ListWatchHistory(ctx, userID)
	if err != nil {
		return nil, storeErr(err, nil)
	}
	return toVideoInfos(videos), nil
}
