package service

import (
	"context"

	"vidhub-go/internal/api/dto"
	"vidhub-go/internal/model"
	"vidhub-go/pkg/logger"

	"go.uber.org/zap"
)

type LikeService struct {
	likes    LikeStore
	videos   VideoStore
	comments CommentStore
	tweets   TweetStore
}

func NewLikeService(likes LikeStore, videos VideoStore, comments CommentStore, tweets TweetStore) *LikeService {
	return &LikeService{likes: likes, videos: videos, comments: comments, tweets: tweets}
}

// Toggle 切换点赞状态，目标必须存在，视频还需对点赞者可见
func (s *LikeService) Toggle(ctx context.Context, actorID int64, target model.LikeTarget, targetID int64) (*dto.LikeStatus, error) {
	var (
		exists   bool
		err      error
		notFound error
	)
	switch target {
	case model.LikeTargetVideo:
		exists, err = s.videos.ExistsVisible(ctx, targetID, actorID)
		notFound = ErrVideoNotFound
	case model.LikeTargetComment:
		exists, err = s.comments.Exists(ctx, targetID)
		notFound = ErrCommentNotFound
	case model.LikeTargetTweet:
		exists, err = s.tweets.Exists(ctx, targetID)
		notFound = ErrTweetNotFound
	default:
		_, err = model.NewLike(actorID, target, targetID)
		return nil, err
	}
	if err := mustExist(exists, err, notFound); err != nil {
		return nil, err
	}

	liked, err := s.likes.Toggle(ctx, actorID, target, targetID)
	if err != nil {
		return nil, storeErr(err, nil)
	}

	logger.Debug("Like toggled",
		zap.Int64("user_id", actorID),
		zap.String("target", string(target)),
		zap.Int64("target_id", targetID),
		zap.Bool("liked", liked),
	)
	return &dto.LikeStatus{IsLiked: liked}, nil
}

// LikedVideos 用户点赞过的视频，最近点赞的在前
func (s *LikeService) LikedVideos(ctx context.Context, userID int64) ([]dto.VideoInfo, error) {
	videos, err := s.likes.LikedVideos(ctx, userID)
	if err != nil {
		return nil, storeErr(err, nil)
	}
	return toVideoInfos(videos), nil
}
