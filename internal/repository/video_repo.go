package repository

import (
	"context"

	"vidhub-go/internal/feed"
	"vidhub-go/internal/model"

	"gorm.io/gorm"
)

// videoSortable 视频列表允许的排序字段
var videoSortable = map[string]string{
	"createdAt": "created_at",
	"updatedAt": "updated_at",
	"views":     "views",
	"duration":  "duration",
	"title":     "title",
}

var videoFeed = feedSource{
	table:       "videos",
	textColumns: []string{"title", "description"},
	sortable:    videoSortable,
	publishable: true,
	preloads:    []string{"Owner"},
}

type VideoRepository struct {
	db *gorm.DB
}

func NewVideoRepository(db *gorm.DB) *VideoRepository {
	return &VideoRepository{db: db}
}

// GetByID 根据 ID 获取视频
func (r *VideoRepository) GetByID(ctx context.Context, id int64) (*model.Video, error) {
	var video model.Video
	if err := r.db.WithContext(ctx).First(&video, id).Error; err != nil {
		return nil, err
	}
	return &video, nil
}

// GetByIDWithOwner 根据 ID 获取视频（含作者信息）
func (r *VideoRepository) GetByIDWithOwner(ctx context.Context, id int64) (*model.Video, error) {
	var video model.Video
	if err := r.db.WithContext(ctx).Preload("Owner").First(&video, id).Error; err != nil {
		return nil, err
	}
	return &video, nil
}

// ExistsVisible 视频存在且对 viewerID 可见（已发布或本人的视频）
func (r *VideoRepository) ExistsVisible(ctx context.Context, id, viewerID int64) (bool, error) {
	return existsBy(ctx, r.db, &model.Video{}, "id = ? AND (is_published = ? OR owner_id = ?)", id, true, viewerID)
}

// Create 创建视频记录
func (r *VideoRepository) Create(ctx context.Context, video *model.Video) error {
	return r.db.WithContext(ctx).Create(video).Error
}

// Feed 视频列表：检索、过滤、排序、分页，附带作者信息
func (r *VideoRepository) Feed(ctx context.Context, opts feed.Options) (feed.Page[model.Video], error) {
	base := r.db.WithContext(ctx).Model(&model.Video{})
	return composeFeed[model.Video](base, videoFeed, opts)
}

// IncrementViews 播放量 +1
func (r *VideoRepository) IncrementViews(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Model(&model.Video{}).Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + 1")).Error
}

// LatestByOwners 每个频道最新发布的一条视频，未发布的不计入
func (r *VideoRepository) LatestByOwners(ctx context.Context, ownerIDs []int64) (map[int64]model.Video, error) {
	result := make(map[int64]model.Video, len(ownerIDs))
	if len(ownerIDs) == 0 {
		return result, nil
	}

	var videos []model.Video
	err := r.db.WithContext(ctx).Raw(`
		SELECT DISTINCT ON (owner_id) * FROM videos
		WHERE owner_id IN ? AND is_published = true
		ORDER BY owner_id, created_at DESC, id DESC
	`, ownerIDs).Scan(&videos).Error
	if err != nil {
		return nil, err
	}
	for _, v := range videos {
		result[v.OwnerID] = v
	}
	return result, nil
}

// UpdateOwned 作者本人更新视频，mutate 修改记录后写回 columns
func (r *VideoRepository) UpdateOwned(ctx context.Context, id, actorID int64, notFound error, mutate func(*model.Video) error, columns ...string) (*model.Video, error) {
	return authorizeAndMutate[model.Video](ctx, r.db, id, actorID, notFound, func(tx *gorm.DB, v *model.Video) error {
		if err := mutate(v); err != nil {
			return err
		}
		return saveFields(tx, v, columns...)
	})
}

// DeleteOwned 作者本人删除视频，同一事务内级联删除点赞、评论及评论点赞、
// 播放列表条目和观看历史。返回被删除的视频以便清理媒体文件。
func (r *VideoRepository) DeleteOwned(ctx context.Context, id, actorID int64, notFound error) (*model.Video, error) {
	return authorizeAndMutate[model.Video](ctx, r.db, id, actorID, notFound, func(tx *gorm.DB, v *model.Video) error {
		commentIDs := tx.Model(&model.Comment{}).Select("id").Where("video_id = ?", v.ID)
		if err := tx.Where("comment_id IN (?)", commentIDs).Delete(&model.Like{}).Error; err != nil {
			return err
		}
		if err := tx.Where("video_id = ?", v.ID).Delete(&model.Like{}).Error; err != nil {
			return err
		}
		if err := tx.Where("video_id = ?", v.ID).Delete(&model.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("video_id = ?", v.ID).Delete(&model.PlaylistVideo{}).Error; err != nil {
			return err
		}
		if err := tx.Where("video_id = ?", v.ID).Delete(&model.WatchHistory{}).Error; err != nil {
			return err
		}
		return tx.Delete(v).Error
	})
}

// visibleVideos 只保留已发布或属于 viewerID 的视频，viewerID 为 0 时仅已发布
func visibleVideos(q *gorm.DB, table string, viewerID int64) *gorm.DB {
	return q.Where("("+table+".is_published = ? OR "+table+".owner_id = ?)", true, viewerID)
}

// ListPublishedAfter 按 id 顺序分批读取已发布视频（含作者），用于重建索引
func (r *VideoRepository) ListPublishedAfter(ctx context.Context, afterID int64, limit int) ([]model.Video, error) {
	var videos []model.Video
	err := r.db.WithContext(ctx).Preload("Owner").
		Where("id > ? AND is_published = ?", afterID, true).
		Order("id ASC").
		Limit(limit).
		Find(&videos).Error
	return videos, err
}
