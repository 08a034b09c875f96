package repository

import (
	"context"

	"vidhub-go/internal/feed"
	"vidhub-go/internal/model"

	"gorm.io/gorm"
)

var tweetFeed = feedSource{
	table:       "tweets",
	textColumns: []string{"content"},
	sortable: map[string]string{
		"createdAt": "created_at",
		"updatedAt": "updated_at",
	},
	preloads: []string{"Owner"},
}

type TweetRepository struct {
	db *gorm.DB
}

func NewTweetRepository(db *gorm.DB) *TweetRepository {
	return &TweetRepository{db: db}
}

func (r *TweetRepository) Create(ctx context.Context, tweet *model.Tweet) error {
	return r.db.WithContext(ctx).Create(tweet).Error
}

func (r *TweetRepository) Exists(ctx context.Context, id int64) (bool, error) {
	return existsBy(ctx, r.db, &model.Tweet{}, "id = ?", id)
}

// Feed 动态列表，OwnerID 过滤某个用户的动态
func (r *TweetRepository) Feed(ctx context.Context, opts feed.Options) (feed.Page[model.Tweet], error) {
	base := r.db.WithContext(ctx).Model(&model.Tweet{})
	return composeFeed[model.Tweet](base, tweetFeed, opts)
}

func (r *TweetRepository) UpdateContentOwned(ctx context.Context, id, actorID int64, content string, notFound error) (*model.Tweet, error) {
	return authorizeAndMutate[model.Tweet](ctx, r.db, id, actorID, notFound, func(tx *gorm.DB, t *model.Tweet) error {
		t.Content = content
		return saveFields(tx, t, "content")
	})
}

// DeleteOwned 删除动态及其点赞
func (r *TweetRepository) DeleteOwned(ctx context.Context, id, actorID int64, notFound error) (*model.Tweet, error) {
	return authorizeAndMutate[model.Tweet](ctx, r.db, id, actorID, notFound, func(tx *gorm.DB, t *model.Tweet) error {
		if err := tx.Where("tweet_id = ?", t.ID).Delete(&model.Like{}).Error; err != nil {
			return err
		}
		return tx.Delete(t).Error
	})
}
