package repository

import (
	"context"

	"vidhub-go/internal/feed"
	"vidhub-go/internal/model"

	"gorm.io/gorm"
)

var commentFeed = feedSource{
	table:       "comments",
	textColumns: []string{"content"},
	sortable: map[string]string{
		"createdAt": "created_at",
		"updatedAt": "updated_at",
	},
	preloads: []string{"Owner"},
}

type CommentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) *CommentRepository {
	return &CommentRepository{db: db}
}

// Create 创建评论
func (r *CommentRepository) Create(ctx context.Context, comment *model.Comment) error {
	return r.db.WithContext(ctx).Create(comment).Error
}

// GetByIDWithOwner 获取评论（含作者）
func (r *CommentRepository) GetByIDWithOwner(ctx context.Context, id int64) (*model.Comment, error) {
	var comment model.Comment
	if err := r.db.WithContext(ctx).Preload("Owner").First(&comment, id).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

// Exists 评论是否存在
func (r *CommentRepository) Exists(ctx context.Context, id int64) (bool, error) {
	return existsBy(ctx, r.db, &model.Comment{}, "id = ?", id)
}

// FeedByVideo 视频下的评论列表
func (r *CommentRepository) FeedByVideo(ctx context.Context, videoID int64, opts feed.Options) (feed.Page[model.Comment], error) {
	base := r.db.WithContext(ctx).Model(&model.Comment{}).Where("comments.video_id = ?", videoID)
	return composeFeed[model.Comment](base, commentFeed, opts)
}

// UpdateContentOwned 作者本人修改评论内容
func (r *CommentRepository) UpdateContentOwned(ctx context.Context, id, actorID int64, content string, notFound error) (*model.Comment, error) {
	return authorizeAndMutate[model.Comment](ctx, r.db, id, actorID, notFound, func(tx *gorm.DB, c *model.Comment) error {
		c.Content = content
		return saveFields(tx, c, "content")
	})
}

// DeleteOwned 作者本人删除评论，并删除该评论的点赞
func (r *CommentRepository) DeleteOwned(ctx context.Context, id, actorID int64, notFound error) (*model.Comment, error) {
	return authorizeAndMutate[model.Comment](ctx, r.db, id, actorID, notFound, func(tx *gorm.DB, c *model.Comment) error {
		if err := tx.Where("comment_id = ?", c.ID).Delete(&model.Like{}).Error; err != nil {
			return err
		}
		return tx.Delete(c).Error
	})
}
