package service

import (
	"context"
	"strings"

	"vidhub-go/internal/api/dto"
	"vidhub-go/internal/feed"
	infraKafka "vidhub-go/internal/infra/kafka"
	"vidhub-go/internal/media"
	"vidhub-go/internal/model"
	"vidhub-go/pkg/apperr"
	"vidhub-go/pkg/logger"
	"vidhub-go/pkg/utils"

	"go.uber.org/zap"
)

// maxSearchHits 全文检索最多取回的候选视频数，命中更多时总数按上限计算
const maxSearchHits = 1000

type VideoService struct {
	videos   VideoStore
	users    UserStore
	likes    LikeStore
	subs     SubscriptionStore
	media    media.Store
	events   VideoEventPublisher
	searcher VideoSearcher
}

// NewVideoService events、searcher 可为 nil
func NewVideoService(videos VideoStore, users UserStore, likes LikeStore, subs SubscriptionStore,
	store media.Store, events VideoEventPublisher, searcher VideoSearcher) *VideoService {
	return &VideoService{
		videos:   videos,
		users:    users,
		likes:    likes,
		subs:     subs,
		media:    store,
		events:   events,
		searcher: searcher,
	}
}

// Publish 上传视频文件和缩略图并创建视频记录
func (s *VideoService) Publish(ctx context.Context, ownerID int64, req *dto.VideoUploadRequest, videoPath, thumbnailPath string) (*dto.VideoInfo, error) {
	if videoPath == "" || thumbnailPath == "" {
		return nil, ErrVideoRequired
	}
	title, description := utils.SanitizeText(req.Title), utils.SanitizeText(req.Description)
	if title == "" || description == "" {
		return nil, apperr.InvalidInput("标题和描述不能为空")
	}

	file, err := s.media.Upload(ctx, videoPath, media.KindVideo)
	if err != nil {
		return nil, err
	}
	thumb, err := s.media.Upload(ctx, thumbnailPath, media.KindImage)
	if err != nil {
		s.removeMedia(ctx, file.StorageID, media.KindVideo)
		return nil, err
	}

	video, err := model.NewVideo(ownerID, title, description,
		mediaRef(file.URL, file.StorageID), mediaRef(thumb.URL, thumb.StorageID), file.Duration)
	if err == nil {
		err = storeErr(s.videos.Create(ctx, video), nil)
	}
	if err != nil {
		s.removeMedia(ctx, file.StorageID, media.KindVideo)
		s.removeMedia(ctx, thumb.StorageID, media.KindImage)
		return nil, err
	}

	logger.Info("Video published", zap.Int64("video_id", video.ID), zap.Int64("owner_id", ownerID))
	s.publish(ctx, infraKafka.VideoCreated, video.ID)

	info := toVideoInfo(video)
	return &info, nil
}

// Feed 视频列表；有检索词且索引可用时先由 ES 取候选 id，否则走数据库全文检索
func (s *VideoService) Feed(ctx context.Context, q *dto.VideoListQuery, viewerID int64) (feed.Page[dto.VideoInfo], error) {
	opts := feed.Options{
		TextQuery:     q.Query,
		PublishedOnly: true,
		SortKey:       q.SortBy,
		SortDirection: q.SortType,
		Page:          q.Page,
		Limit:         q.Limit,
		ViewerID:      viewerID,
	}
	if strings.TrimSpace(q.UserID) != "" {
		ownerID, err := model.ParseID(q.UserID)
		if err != nil {
			return feed.Page[dto.VideoInfo]{}, apperr.InvalidInput("无效的用户ID")
		}
		opts.OwnerID = ownerID
	}

	opts = opts.Normalize()
	if opts.TextQuery != "" && s.searcher != nil {
		ids, err := s.searcher.SearchVideoIDs(ctx, opts.TextQuery, maxSearchHits)
		if err != nil {
			logger.Warn("Video search failed, fallback to DB", zap.String("query", opts.TextQuery), zap.Error(err))
		} else {
			if ids == nil {
				ids = []int64{}
			}
			if len(ids) >= maxSearchHits {
				logger.Warn("Video search hits truncated",
					zap.String("query", opts.TextQuery),
					zap.Int("limit", maxSearchHits),
				)
			}
			opts.MatchIDs = ids
		}
	}

	page, err := s.videos.Feed(ctx, opts)
	if err != nil {
		return feed.Page[dto.VideoInfo]{}, storeErr(err, nil)
	}
	return feed.Map(page, func(v model.Video) dto.VideoInfo { return toVideoInfo(&v) }), nil
}

// Detail 视频详情：播放量 +1 并记入观看历史，两者失败只记录日志。
// 未发布的视频只有作者本人可见。
func (s *VideoService) Detail(ctx context.Context, videoID, viewerID int64) (*dto.VideoDetail, error) {
	video, err := s.videos.GetByIDWithOwner(ctx, videoID)
	if err != nil {
		return nil, storeErr(err, ErrVideoNotFound)
	}
	if !video.IsPublished && video.OwnerID != viewerID {
		return nil, ErrVideoNotFound
	}

	if err := s.videos.IncrementViews(ctx, videoID); err != nil {
		bestEffort("Increment video views failed", err, zap.Int64("video_id", videoID))
	} else {
		video.Views++
	}
	if viewerID > 0 {
		bestEffort("Append watch history failed", s.users.AppendWatchHistory(ctx, viewerID, videoID),
			zap.Int64("video_id", videoID), zap.Int64("user_id", viewerID))
	}

	subscribers, err := s.subs.CountSubscribers(ctx, video.OwnerID)
	if err != nil {
		return nil, storeErr(err, nil)
	}
	isSubscribed, err := s.subs.IsSubscribed(ctx, viewerID, video.OwnerID)
	if err != nil {
		return nil, storeErr(err, nil)
	}
	likes, err := s.likes.Count(ctx, model.LikeTargetVideo, videoID)
	if err != nil {
		return nil, storeErr(err, nil)
	}
	isLiked, err := s.likes.IsLiked(ctx, viewerID, model.LikeTargetVideo, videoID)
	if err != nil {
		return nil, storeErr(err, nil)
	}

	detail := &dto.VideoDetail{
		ID:          video.ID,
		Title:       video.Title,
		Description: video.Description,
		VideoFile:   video.VideoFile,
		Thumbnail:   video.Thumbnail,
		Duration:    video.Duration,
		Views:       video.Views,
		IsPublished: video.IsPublished,
		CreatedAt:   video.CreatedAt,
		LikesCount:  likes,
		IsLiked:     isLiked,
	}
	if owner := video.Owner; owner != nil {
		detail.Owner = &dto.VideoOwner{
			ID:               owner.ID,
			Username:         owner.Username,
			FullName:         owner.FullName,
			Avatar:           owner.Avatar,
			SubscribersCount: subscribers,
			IsSubscribed:     isSubscribed,
		}
	}
	return detail, nil
}

// Update 作者修改标题、描述，可选替换缩略图
func (s *VideoService) Update(ctx context.Context, videoID, actorID int64, req *dto.VideoUpdateRequest, thumbnailPath string) (*dto.VideoInfo, error) {
	title, description := utils.SanitizeText(req.Title), utils.SanitizeText(req.Description)
	if title == "" || description == "" {
		return nil, apperr.InvalidInput("标题和描述不能为空")
	}

	// 先校验归属，避免替他人上传缩略图
	current, err := s.videos.GetByID(ctx, videoID)
	if err != nil {
		return nil, storeErr(err, ErrVideoNotFound)
	}
	if err := model.AssertOwner(current, actorID); err != nil {
		return nil, err
	}

	columns := []string{"title", "description"}
	var thumb *media.Asset
	if thumbnailPath != "" {
		if thumb, err = s.media.Upload(ctx, thumbnailPath, media.KindImage); err != nil {
			return nil, err
		}
		columns = append(columns, "thumbnail_url", "thumbnail_public_id")
	}

	var old model.MediaRef
	video, err := s.videos.UpdateOwned(ctx, videoID, actorID, ErrVideoNotFound, func(v *model.Video) error {
		v.Title, v.Description = title, description
		if thumb != nil {
			old = v.Thumbnail
			v.Thumbnail = mediaRef(thumb.URL, thumb.StorageID)
		}
		return nil
	}, columns...)
	if err != nil {
		if thumb != nil {
			s.removeMedia(ctx, thumb.StorageID, media.KindImage)
		}
		return nil, storeErr(err, ErrVideoNotFound)
	}

	if thumb != nil {
		s.removeMedia(ctx, old.PublicID, media.KindImage)
	}
	s.publish(ctx, infraKafka.VideoUpdated, video.ID)

	info := toVideoInfo(video)
	return &info, nil
}

// Delete 作者删除视频，点赞、评论等随之级联删除，媒体文件尽力清理
func (s *VideoService) Delete(ctx context.Context, videoID, actorID int64) error {
	video, err := s.videos.DeleteOwned(ctx, videoID, actorID, ErrVideoNotFound)
	if err != nil {
		return storeErr(err, ErrVideoNotFound)
	}

	s.removeMedia(ctx, video.VideoFile.PublicID, media.KindVideo)
	s.removeMedia(ctx, video.Thumbnail.PublicID, media.KindImage)
	s.publish(ctx, infraKafka.VideoDeleted, video.ID)

	logger.Info("Video deleted", zap.Int64("video_id", videoID), zap.Int64("owner_id", actorID))
	return nil
}

// TogglePublish 切换发布状态
func (s *VideoService) TogglePublish(ctx context.Context, videoID, actorID int64) (*dto.VideoInfo, error) {
	video, err := s.videos.UpdateOwned(ctx, videoID, actorID, ErrVideoNotFound, func(v *model.Video) error {
		v.IsPublished = !v.IsPublished
		return nil
	}, "is_published")
	if err != nil {
		return nil, storeErr(err, ErrVideoNotFound)
	}

	s.publish(ctx, infraKafka.VideoUpdated, video.ID)
	info := toVideoInfo(video)
	return &info, nil
}

func (s *VideoService) publish(ctx context.Context, eventType string, videoID int64) {
	if s.events == nil {
		return
	}
	bestEffort("Publish video event failed", s.events.PublishVideoEvent(ctx, eventType, videoID),
		zap.String("type", eventType), zap.Int64("video_id", videoID))
}

func (s *VideoService) removeMedia(ctx context.Context, storageID string, kind media.Kind) {
	if storageID == "" {
		return
	}
	bestEffort("Remove media failed", s.media.Remove(ctx, storageID, kind),
		zap.String("object", storageID), zap.String("kind", string(kind)))
}
