package model

import (
	"strings"
	"time"

	"vidhub-go/pkg/apperr"
)

// Playlist 播放列表
type Playlist struct {
	ID          int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string    `gorm:"size:200;not null" json:"name"`
	Description string    `gorm:"type:text;not null" json:"description"`
	OwnerID     int64     `gorm:"not null;index" json:"ownerId"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updatedAt"`

	Owner *User `gorm:"foreignKey:OwnerID" json:"-"`
}

func (Playlist) TableName() string {
	return "playlists"
}

func (p *Playlist) OwnerKey() int64 { return p.OwnerID }

// PlaylistVideo 播放列表中的视频，按 Position 排序
type PlaylistVideo struct {
	PlaylistID int64     `gorm:"primaryKey" json:"playlistId"`
	VideoID    int64     `gorm:"primaryKey;index" json:"videoId"`
	Position   int       `gorm:"not null" json:"position"`
	AddedAt    time.Time `gorm:"autoCreateTime" json:"addedAt"`
}

func (PlaylistVideo) TableName() string {
	return "playlist_videos"
}

// NewPlaylist 创建播放列表，名称与描述均为必填
func NewPlaylist(ownerID int64, name, description string) (*Playlist, error) {
	p := &Playlist{
		Name:        strings.TrimSpace(name),
		Description: strings.TrimSpace(description),
		OwnerID:     ownerID,
	}
	if p.Name == "" || p.Description == "" {
		return nil, apperr.InvalidInput("播放列表名称和描述不能为空")
	}
	if ownerID <= 0 {
		return nil, apperr.InvalidInput("无效的播放列表归属")
	}
	return p, nil
}
