package service

import (
	"context"

	"vidhub-go/internal/api/dto"
	"vidhub-go/internal/feed"
	"vidhub-go/internal/model"
	"vidhub-go/pkg/utils"
)

type TweetService struct {
	tweets TweetStore
	users  UserStore
	likes  LikeStore
}

func NewTweetService(tweets TweetStore, users UserStore, likes LikeStore) *TweetService {
	return &TweetService{tweets: tweets, users: users, likes: likes}
}

func (s *TweetService) Create(ctx context.Context, ownerID int64, content string) (*dto.TweetInfo, error) {
	tweet, err := model.NewTweet(ownerID, utils.SanitizeText(content))
	if err != nil {
		return nil, err
	}
	if err := s.tweets.Create(ctx, tweet); err != nil {
		return nil, storeErr(err, nil)
	}
	if owner, err := s.users.GetByID(ctx, ownerID); err == nil {
		tweet.Owner = owner
	}
	info := toTweetInfo(tweet, 0, false)
	return &info, nil
}

func (s *TweetService) Update(ctx context.Context, tweetID, actorID int64, content string) (*dto.TweetInfo, error) {
	content = utils.SanitizeText(content)
	if content == "" {
		return nil, ErrEmptyContent
	}

	tweet, err := s.tweets.UpdateContentOwned(ctx, tweetID, actorID, content, ErrTweetNotFound)
	if err != nil {
		return nil, storeErr(err, ErrTweetNotFound)
	}
	likes, liked, err := likeStats(ctx, s.likes, model.LikeTargetTweet, actorID, []int64{tweet.ID})
	if err != nil {
		return nil, err
	}
	info := toTweetInfo(tweet, likes[tweet.ID], liked[tweet.ID])
	return &info, nil
}

// Delete 删除动态及其点赞
func (s *TweetService) Delete(ctx context.Context, tweetID, actorID int64) error {
	_, err := s.tweets.DeleteOwned(ctx, tweetID, actorID, ErrTweetNotFound)
	return storeErr(err, ErrTweetNotFound)
}

// List 全部动态
func (s *TweetService) List(ctx context.Context, q *dto.ListQuery, viewerID int64) (feed.Page[dto.TweetInfo], error) {
	return s.list(ctx, listOptions(q, viewerID))
}

// ListByUser 某个用户的动态，用户必须存在
func (s *TweetService) ListByUser(ctx context.Context, userID int64, q *dto.ListQuery, viewerID int64) (feed.Page[dto.TweetInfo], error) {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return feed.Page[dto.TweetInfo]{}, storeErr(err, ErrUserNotFound)
	}
	opts := listOptions(q, viewerID)
	opts.OwnerID = userID
	return s.list(ctx, opts)
}

func (s *TweetService) list(ctx context.Context, opts feed.Options) (feed.Page[dto.TweetInfo], error) {
	page, err := s.tweets.Feed(ctx, opts)
	if err != nil {
		return feed.Page[dto.TweetInfo]{}, storeErr(err, nil)
	}

	ids := make([]int64, 0, len(page.Items))
	for _, t := range page.Items {
		ids = append(ids, t.ID)
	}
	counts, liked, err := likeStats(ctx, s.likes, model.LikeTargetTweet, opts.ViewerID, ids)
	if err != nil {
		return feed.Page[dto.TweetInfo]{}, err
	}

	return feed.Map(page, func(t model.Tweet) dto.TweetInfo {
		return toTweetInfo(&t, counts[t.ID], liked[t.ID])
	}), nil
}
