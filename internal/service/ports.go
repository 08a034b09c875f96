package service

import (
	"context"
	"time"

	"vidhub-go/internal/feed"
	"vidhub-go/internal/model"
	"vidhub-go/internal/repository"
)

// UserStore 用户存储
type UserStore interface {
	GetByID(ctx context.Context, id int64) (*model.User, error)
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	GetByLogin(ctx context.Context, username, email string) (*model.User, error)
	ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error)
	Create(ctx context.Context, user *model.User) error
	Update(ctx context.Context, id int64, updates map[string]interface{}) (*model.User, error)
	SetRefreshToken(ctx context.Context, id int64, token string) error
	AppendWatchHistory(ctx context.Context, userID, videoID int64) error
	ListWatchHistory(ctx context.Context, userID int64) ([]model.Video, error)
}

// VideoStore 视频存储
type VideoStore interface {
	GetByID(ctx context.Context, id int64) (*model.Video, error)
	GetByIDWithOwner(ctx context.Context, id int64) (*model.Video, error)
	ExistsVisible(ctx context.Context, id, viewerID int64) (bool, error)
	Create(ctx context.Context, video *model.Video) error
	Feed(ctx context.Context, opts feed.Options) (feed.Page[model.Video], error)
	IncrementViews(ctx context.Context, id int64) error
	LatestByOwners(ctx context.Context, ownerIDs []int64) (map[int64]model.Video, error)
	UpdateOwned(ctx context.Context, id, actorID int64, notFound error, mutate func(*model.Video) error, columns ...string) (*model.Video, error)
	DeleteOwned(ctx context.Context, id, actorID int64, notFound error) (*model.Video, error)
}

// CommentStore 评论存储
type CommentStore interface {
	Create(ctx context.Context, comment *model.Comment) error
	GetByIDWithOwner(ctx context.Context, id int64) (*model.Comment, error)
	Exists(ctx context.Context, id int64) (bool, error)
	FeedByVideo(ctx context.Context, videoID int64, opts feed.Options) (feed.Page[model.Comment], error)
	UpdateContentOwned(ctx context.Context, id, actorID int64, content string, notFound error) (*model.Comment, error)
	DeleteOwned(ctx context.Context, id, actorID int64, notFound error) (*model.Comment, error)
}

// TweetStore 动态存储
type TweetStore interface {
	Create(ctx context.Context, tweet *model.Tweet) error
	Exists(ctx context.Context, id int64) (bool, error)
	Feed(ctx context.Context, opts feed.Options) (feed.Page[model.Tweet], error)
	UpdateContentOwned(ctx context.Context, id, actorID int64, content string, notFound error) (*model.Tweet, error)
	DeleteOwned(ctx context.Context, id, actorID int64, notFound error) (*model.Tweet, error)
}

// LikeStore 点赞关系
type LikeStore interface {
	Toggle(ctx context.Context, ownerID int64, target model.LikeTarget, targetID int64) (bool, error)
	Count(ctx context.Context, target model.LikeTarget, targetID int64) (int64, error)
	IsLiked(ctx context.Context, viewerID int64, target model.LikeTarget, targetID int64) (bool, error)
	BatchCount(ctx context.Context, target model.LikeTarget, targetIDs []int64) (map[int64]int64, error)
	BatchIsLiked(ctx context.Context, viewerID int64, target model.LikeTarget, targetIDs []int64) (map[int64]bool, error)
	LikedVideos(ctx context.Context, ownerID int64) ([]model.Video, error)
}

// SubscriptionStore 订阅关系
type SubscriptionStore interface {
	Toggle(ctx context.Context, subscriberID, channelID int64) (bool, error)
	CountSubscribers(ctx context.Context, channelID int64) (int64, error)
	CountSubscribedTo(ctx context.Context, subscriberID int64) (int64, error)
	IsSubscribed(ctx context.Context, viewerID, channelID int64) (bool, error)
	BatchCountSubscribers(ctx context.Context, channelIDs []int64) (map[int64]int64, error)
	BatchIsSubscribed(ctx context.Context, subscriberID int64, channelIDs []int64) (map[int64]bool, error)
	ListSubscribers(ctx context.Context, channelID int64) ([]model.User, error)
	ListChannels(ctx context.Context, subscriberID int64) ([]model.User, error)
}

// PlaylistStore 播放列表存储
type PlaylistStore interface {
	Create(ctx context.Context, playlist *model.Playlist) error
	GetByIDWithOwner(ctx context.Context, id int64) (*model.Playlist, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]model.Playlist, error)
	Videos(ctx context.Context, playlistID, viewerID int64) ([]model.Video, error)
	BatchStats(ctx context.Context, playlistIDs []int64, viewerID int64) (map[int64]repository.VideoStats, error)
	UpdateOwned(ctx context.Context, id, actorID int64, name, description string, notFound error) (*model.Playlist, error)
	DeleteOwned(ctx context.Context, id, actorID int64, notFound error) (*model.Playlist, error)
	AddVideoOwned(ctx context.Context, id, actorID, videoID int64, notFound error) (*model.Playlist, error)
	RemoveVideoOwned(ctx context.Context, id, actorID, videoID int64, notFound error) (*model.Playlist, error)
}

// TokenDenylist 已注销的 access token
type TokenDenylist interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// VideoEventPublisher 视频变更事件
type VideoEventPublisher interface {
	PublishVideoEvent(ctx context.Context, eventType string, videoID int64) error
}

// VideoSearcher 视频全文检索，返回匹配的视频 id
type VideoSearcher interface {
	SearchVideoIDs(ctx context.Context, query string, size int) ([]int64, error)
}

var (
	_ UserStore         = (*repository.UserRepository)(nil)
	_ VideoStore        = (*repository.VideoRepository)(nil)
	_ CommentStore      = (*repository.CommentRepository)(nil)
	_ TweetStore        = (*repository.TweetRepository)(nil)
	_ LikeStore         = (*repository.LikeRepository)(nil)
	_ SubscriptionStore = (*repository.SubscriptionRepository)(nil)
	_ PlaylistStore     = (*repository.PlaylistRepository)(nil)
)
