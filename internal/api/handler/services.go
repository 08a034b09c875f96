package handler

import (
	"context"

	"vidhub-go/internal/api/dto"
	"vidhub-go/internal/feed"
	"vidhub-go/internal/model"
	"vidhub-go/internal/service"
	"vidhub-go/pkg/utils"
)

// 各 Handler 依赖的业务接口，由 internal/service 中的实现满足

type AuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest, avatarPath, coverPath string) (*dto.UserInfo, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenData, error)
	Logout(ctx context.Context, userID int64, claims *utils.Claims) error
	Refresh(ctx context.Context, refreshToken string) (*dto.TokenData, error)
	ChangePassword(ctx context.Context, userID int64, req *dto.ChangePasswordRequest) error
}

type UserService interface {
	GetCurrent(ctx context.Context, userID int64) (*dto.UserInfo, error)
	UpdateAccount(ctx context.Context, userID int64, req *dto.UpdateAccountRequest) (*dto.UserInfo, error)
	UpdateAvatar(ctx context.Context, userID int64, localPath string) (*dto.UserInfo, error)
	UpdateCover(ctx context.Context, userID int64, localPath string) (*dto.UserInfo, error)
	ChannelProfile(ctx context.Context, username string, viewerID int64) (*dto.ChannelProfile, error)
	WatchHistory(ctx context.Context, userID int64) ([]dto.VideoInfo, error)
}

type VideoService interface {
	Publish(ctx context.Context, ownerID int64, req *dto.VideoUploadRequest, videoPath, thumbnailPath string) (*dto.VideoInfo, error)
	Feed(ctx context.Context, q *dto.VideoListQuery, viewerID int64) (feed.Page[dto.VideoInfo], error)
	Detail(ctx context.Context, videoID, viewerID int64) (*dto.VideoDetail, error)
	Update(ctx context.Context, videoID, actorID int64, req *dto.VideoUpdateRequest, thumbnailPath string) (*dto.VideoInfo, error)
	Delete(ctx context.Context, videoID, actorID int64) error
	TogglePublish(ctx context.Context, videoID, actorID int64) (*dto.VideoInfo, error)
}

type CommentService interface {
	ListByVideo(ctx context.Context, videoID int64, q *dto.ListQuery, viewerID int64) (feed.Page[dto.CommentInfo], error)
	Add(ctx context.Context, videoID, ownerID int64, content string) (*dto.CommentInfo, error)
	Update(ctx context.Context, commentID, actorID int64, content string) (*dto.CommentInfo, error)
	Delete(ctx context.Context, commentID, actorID int64) error
}

type TweetService interface {
	Create(ctx context.Context, ownerID int64, content string) (*dto.TweetInfo, error)
	Update(ctx context.Context, tweetID, actorID int64, content string) (*dto.TweetInfo, error)
	Delete(ctx context.Context, tweetID, actorID int64) error
	List(ctx context.Context, q *dto.ListQuery, viewerID int64) (feed.Page[dto.TweetInfo], error)
	ListByUser(ctx context.Context, userID int64, q *dto.ListQuery, viewerID int64) (feed.Page[dto.TweetInfo], error)
}

type LikeService interface {
	Toggle(ctx context.Context, actorID int64, target model.LikeTarget, targetID int64) (*dto.LikeStatus, error)
	LikedVideos(ctx context.Context, userID int64) ([]dto.VideoInfo, error)
}

type SubscriptionService interface {
	Toggle(ctx context.Context, subscriberID, channelID int64) (*dto.SubscriptionStatus, error)
	Subscribers(ctx context.Context, channelID int64) ([]dto.SubscriberInfo, error)
	Channels(ctx context.Context, subscriberID int64) ([]dto.ChannelInfo, error)
}

type PlaylistService interface {
	Create(ctx context.Context, ownerID int64, req *dto.PlaylistRequest) (*dto.PlaylistInfo, error)
	Get(ctx context.Context, playlistID, viewerID int64) (*dto.PlaylistDetail, error)
	ListByUser(ctx context.Context, userID, viewerID int64) ([]dto.PlaylistInfo, error)
	Update(ctx context.Context, playlistID, actorID int64, req *dto.PlaylistRequest) (*dto.PlaylistDetail, error)
	Delete(ctx context.Context, playlistID, actorID int64) error
	AddVideo(ctx context.Context, playlistID, videoID, actorID int64) (*dto.PlaylistDetail, error)
	RemoveVideo(ctx context.Context, playlistID, videoID, actorID int64) (*dto.PlaylistDetail, error)
}

var (
	_ AuthService         = (*service.AuthService)(nil)
	_ UserService         = (*service.UserService)(nil)
	_ VideoService        = (*service.VideoService)(nil)
	_ CommentService      = (*service.CommentService)(nil)
	_ TweetService        = (*service.TweetService)(nil)
	_ LikeService         = (*service.LikeService)(nil)
	_ SubscriptionService = (*service.SubscriptionService)(nil)
	_ PlaylistService     = (*service.PlaylistService)(nil)
)
