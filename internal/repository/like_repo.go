package repository

import (
	"context"

	"vidhub-go/internal/model"

	"gorm.io/gorm"
)

type LikeRepository struct {
	db *gorm.DB
}

func NewLikeRepository(db *gorm.DB) *LikeRepository {
	return &LikeRepository{db: db}
}

// Toggle 切换点赞状态，返回 true 表示切换后为已点赞
func (r *LikeRepository) Toggle(ctx context.Context, ownerID int64, target model.LikeTarget, targetID int64) (bool, error) {
	like, err := model.NewLike(ownerID, target, targetID)
	if err != nil {
		return false, err
	}
	return toggleEdge(ctx, r.db, like, "owner_id = ? AND "+target.Column()+" = ?", ownerID, targetID)
}

// Count 目标的点赞数
func (r *LikeRepository) Count(ctx context.Context, target model.LikeTarget, targetID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Like{}).
		Where(target.Column()+" = ?", targetID).Count(&count).Error
	return count, err
}

// IsLiked 查看者是否点赞过目标，匿名查看者恒为 false
func (r *LikeRepository) IsLiked(ctx context.Context, viewerID int64, target model.LikeTarget, targetID int64) (bool, error) {
	if viewerID <= 0 {
		return false, nil
	}
	return existsBy(ctx, r.db, &model.Like{}, "owner_id = ? AND "+target.Column()+" = ?", viewerID, targetID)
}

// BatchCount 批量统计点赞数
func (r *LikeRepository) BatchCount(ctx context.Context, target model.LikeTarget, targetIDs []int64) (map[int64]int64, error) {
	result := make(map[int64]int64, len(targetIDs))
	if len(targetIDs) == 0 {
		return result, nil
	}

	col := target.Column()
	var rows []struct {
		TargetID int64
		Total    int64
	}
	err := r.db.WithContext(ctx).Model(&model.Like{}).
		Select(col+" AS target_id, COUNT(*) AS total").
		Where(col+" IN ?", targetIDs).
		Group(col).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		result[row.TargetID] = row.Total
	}
	return result, nil
}

// BatchIsLiked 批量查询查看者的点赞状态
func (r *LikeRepository) BatchIsLiked(ctx context.Context, viewerID int64, target model.LikeTarget, targetIDs []int64) (map[int64]bool, error) {
	result := make(map[int64]bool, len(targetIDs))
	if viewerID <= 0 || len(targetIDs) == 0 {
		return result, nil
	}

	col := target.Column()
	var likedIDs []int64
	err := r.db.WithContext(ctx).Model(&model.Like{}).
		Where("owner_id = ? AND "+col+" IN ?", viewerID, targetIDs).
		Pluck(col, &likedIDs).Error
	if err != nil {
		return nil, err
	}
	for _, id := range likedIDs {
		result[id] = true
	}
	return result, nil
}

// LikedVideos 用户点赞过的视频（含作者），最近点赞的在前。
// 点赞后被作者取消发布的视频不再返回。
func (r *LikeRepository) LikedVideos(ctx context.Context, ownerID int64) ([]model.Video, error) {
	var videos []model.Video
	err := visibleVideos(r.db.WithContext(ctx), "videos", ownerID).
		Joins("JOIN likes ON likes.video_id = videos.id AND likes.owner_id = ?", ownerID).
		Preload("Owner").
		Order("likes.created_at DESC").
		Order("videos.id ASC").
		Find(&videos).Error
	return videos, err
}
