package service

import (
	"errors"

	"vidhub-go/pkg/apperr"
	"vidhub-go/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	ErrUserNotFound        = apperr.NotFound("用户不存在")
	ErrChannelNotFound     = apperr.NotFound("频道不存在")
	ErrUserExists          = apperr.Conflict("用户名或邮箱已存在")
	ErrEmailTaken          = apperr.Conflict("邮箱已被其他用户使用")
	ErrInvalidCredential   = apperr.Unauthorized("用户名或密码错误")
	ErrInvalidRefreshToken = apperr.Unauthorized("refresh token 无效或已过期")
	ErrLoginIDRequired     = apperr.InvalidInput("请输入用户名或邮箱")
	ErrWrongPassword       = apperr.InvalidInput("原密码错误")
	ErrAvatarRequired      = apperr.InvalidInput("请上传头像")
	ErrCoverRequired       = apperr.InvalidInput("请上传封面图")

	ErrVideoNotFound    = apperr.NotFound("视频不存在")
	ErrVideoRequired    = apperr.InvalidInput("请上传视频文件和缩略图")
	ErrCommentNotFound  = apperr.NotFound("评论不存在")
	ErrTweetNotFound    = apperr.NotFound("动态不存在")
	ErrPlaylistNotFound = apperr.NotFound("播放列表不存在")
	ErrEmptyContent     = apperr.InvalidInput("内容不能为空")
)

// storeErr 把存储层错误映射为业务错误，未找到记录时返回 notFound
func storeErr(err error, notFound error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) && notFound != nil {
		return notFound
	}
	var appErr *apperr.Error
	if errors.As(err, &appErr) {
		return err
	}
	return apperr.Internal("数据库操作失败", err)
}

// mustExist 目标记录不存在时返回 notFound
func mustExist(exists bool, err error, notFound error) error {
	if err != nil {
		return storeErr(err, notFound)
	}
	if !exists {
		return notFound
	}
	return nil
}

// bestEffort 记录失败但不中断主流程
func bestEffort(msg string, err error, fields ...zap.Field) {
	if err != nil {
		logger.Warn(msg, append(fields, zap.Error(err))...)
	}
}
