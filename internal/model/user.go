package model

import (
	"strings"
	"time"

	"vidhub-go/pkg/apperr"
)

// User 用户模型
type User struct {
	ID           int64     `gorm:"primaryKey;autoIncrement;comment:用户标识" json:"id"`
	Username     string    `gorm:"size:64;not null;uniqueIndex;comment:用户名（小写）" json:"username"`
	Email        string    `gorm:"size:255;not null;uniqueIndex;comment:邮箱" json:"email"`
	FullName     string    `gorm:"size:128;not null;index;comment:昵称" json:"fullName"`
	Avatar       MediaRef  `gorm:"embedded;embeddedPrefix:avatar_" json:"avatar"`
	CoverImage   MediaRef  `gorm:"embedded;embeddedPrefix:cover_image_" json:"coverImage"`
	Password     string    `gorm:"size:255;not null;comment:密码哈希" json:"-"`
	RefreshToken string    `gorm:"size:1024;comment:当前 refresh token" json:"-"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (User) TableName() string {
	return "users"
}

// NormalizeUsername 用户名统一为小写
func NormalizeUsername(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// NormalizeEmail 邮箱统一为小写
func NormalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// NewUser 创建用户，passwordHash 必须已经过哈希
func NewUser(username, email, fullName, passwordHash string, avatar, cover MediaRef) (*User, error) {
	u := &User{
		Username:   NormalizeUsername(username),
		Email:      NormalizeEmail(email),
		FullName:   strings.TrimSpace(fullName),
		Password:   passwordHash,
		Avatar:     avatar,
		CoverImage: cover,
	}
	var missing []string
	if u.Username == "" {
		missing = append(missing, "username")
	}
	if u.Email == "" || !strings.Contains(u.Email, "@") {
		missing = append(missing, "email")
	}
	if u.FullName == "" {
		missing = append(missing, "fullName")
	}
	if u.Password == "" {
		missing = append(missing, "password")
	}
	if avatar.URL == "" {
		missing = append(missing, "avatar")
	}
	if len(missing) > 0 {
		return nil, apperr.InvalidInput("用户信息不完整").WithDetails(missing...)
	}
	return u, nil
}

// PublicProfile 对外公开的用户信息
type PublicProfile struct {
	ID       int64    `json:"id"`
	Username string   `json:"username"`
	FullName string   `json:"fullName"`
	Avatar   MediaRef `json:"avatar"`
}

// Public 返回用户公开信息
func (u *User) Public() *PublicProfile {
	if u == nil {
		return nil
	}
	return &PublicProfile{ID: u.ID, Username: u.Username, FullName: u.FullName, Avatar: u.Avatar}
}

// WatchHistory 观看历史，(user_id, video_id) 唯一，首次观看时间即排序依据
type WatchHistory struct {
	UserID    int64     `gorm:"primaryKey;comment:用户ID" json:"userId"`
	VideoID   int64     `gorm:"primaryKey;index;comment:视频ID" json:"videoId"`
	WatchedAt time.Time `gorm:"autoCreateTime;index;comment:首次观看时间" json:"watchedAt"`
}

func (WatchHistory) TableName() string {
	return "watch_histories"
}
