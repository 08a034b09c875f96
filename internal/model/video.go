package model

import (
	"strings"
	"time"

	"vidhub-go/pkg/apperr"
)

// Video 视频模型
type Video struct {
	ID          int64     `gorm:"primaryKey;autoIncrement;comment:视频标识" json:"id"`
	Title       string    `gorm:"size:200;not null;comment:视频标题" json:"title"`
	Description string    `gorm:"type:text;not null;comment:视频描述" json:"description"`
	VideoFile   MediaRef  `gorm:"embedded;embeddedPrefix:video_file_" json:"videoFile"`
	Thumbnail   MediaRef  `gorm:"embedded;embeddedPrefix:thumbnail_" json:"thumbnail"`
	Duration    float64   `gorm:"not null;default:0;comment:视频时长（秒）" json:"duration"`
	Views       int64     `gorm:"not null;default:0;index;comment:播放量" json:"views"`
	IsPublished bool      `gorm:"not null;index;comment:是否发布" json:"isPublished"`
	OwnerID     int64     `gorm:"not null;index;comment:作者ID" json:"ownerId"`
	CreatedAt   time.Time `gorm:"autoCreateTime;index;comment:创建时间" json:"createdAt"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime;comment:更新时间" json:"updatedAt"`

	Owner *User `gorm:"foreignKey:OwnerID" json:"-"`
}

func (Video) TableName() string {
	return "videos"
}

func (v *Video) OwnerKey() int64 { return v.OwnerID }

// NewVideo 创建视频，媒体与封面必须已上传
func NewVideo(ownerID int64, title, description string, file, thumbnail MediaRef, duration float64) (*Video, error) {
	v := &Video{
		Title:       strings.TrimSpace(title),
		Description: strings.TrimSpace(description),
		VideoFile:   file,
		Thumbnail:   thumbnail,
		Duration:    duration,
		IsPublished: true,
		OwnerID:     ownerID,
	}
	var missing []string
	if v.Title == "" {
		missing = append(missing, "title")
	}
	if v.Description == "" {
		missing = append(missing, "description")
	}
	if file.URL == "" {
		missing = append(missing, "videoFile")
	}
	if thumbnail.URL == "" {
		missing = append(missing, "thumbnail")
	}
	if ownerID <= 0 {
		missing = append(missing, "owner")
	}
	if len(missing) > 0 {
		return nil, apperr.InvalidInput("视频信息不完整").WithDetails(missing...)
	}
	return v, nil
}
