package model

import (
	"strconv"
	"strings"

	"vidhub-go/pkg/apperr"
)

// ErrNotOwner 非资源所有者尝试写操作
var ErrNotOwner = apperr.Unauthorized("无权操作该资源")

// Owned 归属于单个用户的记录
type Owned interface {
	OwnerKey() int64
}

// AssertOwner 校验操作者是否为记录所有者
func AssertOwner(rec Owned, actorID int64) error {
	if rec == nil || actorID <= 0 || rec.OwnerKey() != actorID {
		return ErrNotOwner
	}
	return nil
}

// MediaRef 远程媒体引用：可访问 URL + 可删除的存储标识
type MediaRef struct {
	URL      string `gorm:"size:500;comment:访问地址" json:"url"`
	PublicID string `gorm:"size:255;comment:存储标识" json:"publicId"`
}

// IsZero 是否为空引用
func (m MediaRef) IsZero() bool {
	return m.URL == "" && m.PublicID == ""
}

// ErrInvalidID 标识格式不正确
var ErrInvalidID = apperr.InvalidInput("无效的ID")

// ParseID 解析路径或查询参数中的记录标识
func ParseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		return 0, ErrInvalidID
	}
	return id, nil
}
