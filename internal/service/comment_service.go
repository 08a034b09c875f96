package service

import (
	"context"

	"vidhub-go/internal/api/dto"
	"vidhub-go/internal/feed"
	"vidhub-go/internal/model"
	"vidhub-go/pkg/utils"
)

type CommentService struct {
	comments CommentStore
	videos   VideoStore
	likes    LikeStore
}

func NewCommentService(comments CommentStore, videos VideoStore, likes LikeStore) *CommentService {
	return &CommentService{comments: comments, videos: videos, likes: likes}
}

// ListByVideo 视频下的评论，附带点赞数和查看者是否点赞
func (s *CommentService) ListByVideo(ctx context.Context, videoID int64, q *dto.ListQuery, viewerID int64) (feed.Page[dto.CommentInfo], error) {
	exists, err := s.videos.ExistsVisible(ctx, videoID, viewerID)
	if err := mustExist(exists, err, ErrVideoNotFound); err != nil {
		return feed.Page[dto.CommentInfo]{}, err
	}

	page, err := s.comments.FeedByVideo(ctx, videoID, listOptions(q, viewerID))
	if err != nil {
		return feed.Page[dto.CommentInfo]{}, storeErr(err, nil)
	}

	ids := make([]int64, 0, len(page.Items))
	for _, c := range page.Items {
		ids = append(ids, c.ID)
	}
	counts, liked, err := likeStats(ctx, s.likes, model.LikeTargetComment, viewerID, ids)
	if err != nil {
		return feed.Page[dto.CommentInfo]{}, err
	}

	return feed.Map(page, func(c model.Comment) dto.CommentInfo {
		return toCommentInfo(&c, counts[c.ID], liked[c.ID])
	}), nil
}

// Add 发表评论，视频必须存在且对评论者可见
func (s *CommentService) Add(ctx context.Context, videoID, ownerID int64, content string) (*dto.CommentInfo, error) {
	exists, err := s.videos.ExistsVisible(ctx, videoID, ownerID)
	if err := mustExist(exists, err, ErrVideoNotFound); err != nil {
		return nil, err
	}

	comment, err := model.NewComment(videoID, ownerID, utils.SanitizeText(content))
	if err != nil {
		return nil, err
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, storeErr(err, nil)
	}

	created, err := s.comments.GetByIDWithOwner(ctx, comment.ID)
	if err != nil {
		return nil, storeErr(err, ErrCommentNotFound)
	}
	info := toCommentInfo(created, 0, false)
	return &info, nil
}

// Update 作者修改评论
func (s *CommentService) Update(ctx context.Context, commentID, actorID int64, content string) (*dto.CommentInfo, error) {
	content = utils.SanitizeText(content)
	if content == "" {
		return nil, ErrEmptyContent
	}

	comment, err := s.comments.UpdateContentOwned(ctx, commentID, actorID, content, ErrCommentNotFound)
	if err != nil {
		return nil, storeErr(err, ErrCommentNotFound)
	}
	likes, liked, err := likeStats(ctx, s.likes, model.LikeTargetComment, actorID, []int64{comment.ID})
	if err != nil {
		return nil, err
	}
	info := toCommentInfo(comment, likes[comment.ID], liked[comment.ID])
	return &info, nil
}

// Delete 作者删除评论及其点赞
func (s *CommentService) Delete(ctx context.Context, commentID, actorID int64) error {
	_, err := s.comments.DeleteOwned(ctx, commentID, actorID, ErrCommentNotFound)
	return storeErr(err, ErrCommentNotFound)
}

// listOptions 由查询参数构造列表选项
func listOptions(q *dto.ListQuery, viewerID int64) feed.Options {
	return feed.Options{
		TextQuery:     q.Query,
		SortKey:       q.SortBy,
		SortDirection: q.SortType,
		Page:          q.Page,
		Limit:         q.Limit,
		ViewerID:      viewerID,
	}
}

// likeStats 批量查询点赞数和查看者点赞状态
func likeStats(ctx context.Context, likes LikeStore, target model.LikeTarget, viewerID int64, ids []int64) (map[int64]int64, map[int64]bool, error) {
	counts, err := likes.BatchCount(ctx, target, ids)
	if err != nil {
		return nil, nil, storeErr(err, nil)
	}
	liked, err := likes.BatchIsLiked(ctx, viewerID, target, ids)
	if err != nil {
		return nil, nil, storeErr(err, nil)
	}
	return counts, liked, nil
}
