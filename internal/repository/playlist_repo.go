package repository

import (
	"context"

	"vidhub-go/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PlaylistRepository struct {
	db *gorm.DB
}

func NewPlaylistRepository(db *gorm.DB) *PlaylistRepository {
	return &PlaylistRepository{db: db}
}

func (r *PlaylistRepository) Create(ctx context.Context, playlist *model.Playlist) error {
	return r.db.WithContext(ctx).Create(playlist).Error
}

// GetByIDWithOwner 获取播放列表（含作者）
func (r *PlaylistRepository) GetByIDWithOwner(ctx context.Context, id int64) (*model.Playlist, error) {
	var playlist model.Playlist
	if err := r.db.WithContext(ctx).Preload("Owner").First(&playlist, id).Error; err != nil {
		return nil, err
	}
	return &playlist, nil
}

// ListByOwner 用户的播放列表，最新创建的在前
func (r *PlaylistRepository) ListByOwner(ctx context.Context, ownerID int64) ([]model.Playlist, error) {
	var playlists []model.Playlist
	err := r.db.WithContext(ctx).Where("owner_id = ?", ownerID).
		Order("created_at DESC").Order("id ASC").
		Find(&playlists).Error
	return playlists, err
}

// Videos 播放列表中对 viewerID 可见的视频（含作者），按加入顺序
func (r *PlaylistRepository) Videos(ctx context.Context, playlistID, viewerID int64) ([]model.Video, error) {
	var videos []model.Video
	err := visibleVideos(r.db.WithContext(ctx), "videos", viewerID).
		Joins("JOIN playlist_videos pv ON pv.video_id = videos.id AND pv.playlist_id = ?", playlistID).
		Preload("Owner").
		Order("pv.position ASC").
		Find(&videos).Error
	return videos, err
}

// VideoStats 每个播放列表的视频数、总播放量
type VideoStats struct {
	PlaylistID  int64 `json:"-"`
	TotalVideos int64 `json:"totalVideos"`
	TotalViews  int64 `json:"totalViews"`
}

// BatchStats 批量统计播放列表中对 viewerID 可见的视频数和总播放量
func (r *PlaylistRepository) BatchStats(ctx context.Context, playlistIDs []int64, viewerID int64) (map[int64]VideoStats, error) {
	result := make(map[int64]VideoStats, len(playlistIDs))
	if len(playlistIDs) == 0 {
		return result, nil
	}

	var rows []VideoStats
	err := visibleVideos(r.db.WithContext(ctx).Table("playlist_videos pv"), "v", viewerID).
		Select("pv.playlist_id, COUNT(v.id) AS total_videos, COALESCE(SUM(v.views), 0) AS total_views").
		Joins("JOIN videos v ON v.id = pv.video_id").
		Where("pv.playlist_id IN ?", playlistIDs).
		Group("pv.playlist_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		result[row.PlaylistID] = row
	}
	return result, nil
}

// UpdateOwned 作者本人修改名称与描述
func (r *PlaylistRepository) UpdateOwned(ctx context.Context, id, actorID int64, name, description string, notFound error) (*model.Playlist, error) {
	return authorizeAndMutate[model.Playlist](ctx, r.db, id, actorID, notFound, func(tx *gorm.DB, p *model.Playlist) error {
		p.Name = name
		p.Description = description
		return saveFields(tx, p, "name", "description")
	})
}

// DeleteOwned 删除播放列表及其条目
func (r *PlaylistRepository) DeleteOwned(ctx context.Context, id, actorID int64, notFound error) (*model.Playlist, error) {
	return authorizeAndMutate[model.Playlist](ctx, r.db, id, actorID, notFound, func(tx *gorm.DB, p *model.Playlist) error {
		if err := tx.Where("playlist_id = ?", p.ID).Delete(&model.PlaylistVideo{}).Error; err != nil {
			return err
		}
		return tx.Delete(p).Error
	})
}

// AddVideoOwned 将视频追加到播放列表末尾，已存在时不变
func (r *PlaylistRepository) AddVideoOwned(ctx context.Context, id, actorID, videoID int64, notFound error) (*model.Playlist, error) {
	return authorizeAndMutate[model.Playlist](ctx, r.db, id, actorID, notFound, func(tx *gorm.DB, p *model.Playlist) error {
		var maxPos int
		if err := tx.Model(&model.PlaylistVideo{}).Where("playlist_id = ?", p.ID).
			Select("COALESCE(MAX(position), -1)").Scan(&maxPos).Error; err != nil {
			return err
		}
		entry := &model.PlaylistVideo{PlaylistID: p.ID, VideoID: videoID, Position: maxPos + 1}
		return tx.Clauses(clause.OnConflict{DoNothing: true}).Create(entry).Error
	})
}

// RemoveVideoOwned 从播放列表移除视频
func (r *PlaylistRepository) RemoveVideoOwned(ctx context.Context, id, actorID, videoID int64, notFound error) (*model.Playlist, error) {
	return authorizeAndMutate[model.Playlist](ctx, r.db, id, actorID, notFound, func(tx *gorm.DB, p *model.Playlist) error {
		return tx.Where("playlist_id = ? AND video_id = ?", p.ID, videoID).Delete(&model.PlaylistVideo{}).Error
	})
}
