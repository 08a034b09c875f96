package repository

import (
	"context"

	"vidhub-go/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// GetByID 根据 ID 查询用户
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByUsername 根据用户名查询用户
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).Where("username = ?", model.NormalizeUsername(username)).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByLogin 用户名或邮箱任一匹配即返回
func (r *UserRepository) GetByLogin(ctx context.Context, username, email string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).
		Where("username = ? OR email = ?", model.NormalizeUsername(username), model.NormalizeEmail(email)).
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// ExistsByUsernameOrEmail 检查用户名或邮箱是否已被占用
func (r *UserRepository) ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error) {
	return existsBy(ctx, r.db, &model.User{}, "username = ? OR email = ?",
		model.NormalizeUsername(username), model.NormalizeEmail(email))
}

// Create 创建用户，唯一索引冲突时返回 gorm.ErrDuplicatedKey
func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

// Update 更新用户字段
func (r *UserRepository) Update(ctx context.Context, id int64, updates map[string]interface{}) (*model.User, error) {
	result := r.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.GetByID(ctx, id)
}

// SetRefreshToken 保存或清空 refresh token
func (r *UserRepository) SetRefreshToken(ctx context.Context, id int64, token string) error {
	return r.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).
		Update("refresh_token", token).Error
}

// AppendWatchHistory 记录观看历史，已存在时保持原位置
func (r *UserRepository) AppendWatchHistory(ctx context.Context, userID, videoID int64) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).
		Create(&model.WatchHistory{UserID: userID, VideoID: videoID}).Error
}

// ListWatchHistory 返回观看历史中的视频（含作者），最近加入的在前
func (r *UserRepository) ListWatchHistory(ctx context.Context, userID int64) ([]model.Video, error) {
	var videos []model.Video
	err := r.db.WithContext(ctx).
		Joins("JOIN watch_histories wh ON wh.video_id = videos.id AND wh.user_id = ?", userID).
		Preload("Owner").
		Order("wh.watched_at DESC").
		Order("videos.id ASC").
		Find(&videos).Error
	return videos, err
}
