package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"vidhub-go/internal/api/dto"
	"vidhub-go/internal/media"
	"vidhub-go/internal/model"
	"vidhub-go/pkg/apperr"
	"vidhub-go/pkg/logger"
	"vidhub-go/pkg/utils"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type AuthService struct {
	users    UserStore
	media    media.Store
	denylist TokenDenylist
}

func NewAuthService(users UserStore, store media.Store, denylist TokenDenylist) *AuthService {
	return &AuthService{users: users, media: store, denylist: denylist}
}

// Register 用户注册：检查唯一性，上传头像和封面，创建用户。
// 创建失败时已上传的媒体会被删除。
func (s *AuthService) Register(ctx context.Context, req *dto.RegisterRequest, avatarPath, coverPath string) (*dto.UserInfo, error) {
	if avatarPath == "" {
		return nil, ErrAvatarRequired
	}

	exists, err := s.users.ExistsByUsernameOrEmail(ctx, req.Username, req.Email)
	if err != nil {
		return nil, storeErr(err, nil)
	}
	if exists {
		return nil, ErrUserExists
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, apperr.Internal("密码加密失败", err)
	}

	avatar, err := s.media.Upload(ctx, avatarPath, media.KindImage)
	if err != nil {
		return nil, err
	}
	uploaded := []string{avatar.StorageID}

	var cover model.MediaRef
	if coverPath != "" {
		asset, err := s.media.Upload(ctx, coverPath, media.KindImage)
		if err != nil {
			s.removeImages(ctx, uploaded...)
			return nil, err
		}
		cover = mediaRef(asset.URL, asset.StorageID)
		uploaded = append(uploaded, asset.StorageID)
	}

	user, err := model.NewUser(req.Username, req.Email, req.FullName, hash, mediaRef(avatar.URL, avatar.StorageID), cover)
	if err != nil {
		s.removeImages(ctx, uploaded...)
		return nil, err
	}

	if err := s.users.Create(ctx, user); err != nil {
		s.removeImages(ctx, uploaded...)
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrUserExists
		}
		return nil, storeErr(err, nil)
	}

	logger.Info("User registered", zap.Int64("user_id", user.ID), zap.String("username", user.Username))
	return toUserInfo(user), nil
}

// Login 用户名或邮箱登录，签发 access / refresh token
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenData, error) {
	if strings.TrimSpace(req.Username) == "" && strings.TrimSpace(req.Email) == "" {
		return nil, ErrLoginIDRequired
	}

	user, err := s.users.GetByLogin(ctx, req.Username, req.Email)
	if err != nil {
		return nil, storeErr(err, ErrInvalidCredential)
	}
	if !utils.VerifyPassword(req.Password, user.Password) {
		return nil, ErrInvalidCredential
	}

	tokens, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, err
	}
	tokens.User = toUserInfo(user)
	return tokens, nil
}

// Logout 清除保存的 refresh token，并在 access token 过期前将其拉黑
func (s *AuthService) Logout(ctx context.Context, userID int64, claims *utils.Claims) error {
	if err := s.users.SetRefreshToken(ctx, userID, ""); err != nil {
		return storeErr(err, ErrUserNotFound)
	}
	if claims == nil || claims.ID == "" || s.denylist == nil {
		return nil
	}

	var ttl time.Duration
	if claims.ExpiresAt != nil {
		ttl = time.Until(claims.ExpiresAt.Time)
	}
	if err := s.denylist.Revoke(ctx, claims.ID, ttl); err != nil {
		return apperr.Internal("注销令牌失败", err)
	}
	return nil
}

// Refresh 校验 refresh token 与已保存的一致后轮换两枚令牌
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*dto.TokenData, error) {
	if refreshToken == "" {
		return nil, apperr.Unauthorized("缺少 refresh token")
	}

	claims, err := utils.ParseRefreshToken(refreshToken)
	if err != nil {
		return nil, ErrInvalidRefreshToken
	}

	user, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, storeErr(err, ErrInvalidRefreshToken)
	}
	if user.RefreshToken == "" || user.RefreshToken != refreshToken {
		return nil, ErrInvalidRefreshToken
	}

	return s.issueTokens(ctx, user)
}

// ChangePassword 校验原密码后修改密码
func (s *AuthService) ChangePassword(ctx context.Context, userID int64, req *dto.ChangePasswordRequest) error {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return storeErr(err, ErrUserNotFound)
	}
	if !utils.VerifyPassword(req.OldPassword, user.Password) {
		return ErrWrongPassword
	}

	hash, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		return apperr.Internal("密码加密失败", err)
	}
	if _, err := s.users.Update(ctx, userID, map[string]interface{}{"password": hash}); err != nil {
		return storeErr(err, ErrUserNotFound)
	}
	return nil
}

func (s *AuthService) issueTokens(ctx context.Context, user *model.User) (*dto.TokenData, error) {
	access, err := utils.GenerateAccessToken(user.ID, user.Username, user.Email)
	if err != nil {
		return nil, apperr.Internal("生成令牌失败", err)
	}
	refresh, err := utils.GenerateRefreshToken(user.ID)
	if err != nil {
		return nil, apperr.Internal("生成令牌失败", err)
	}
	if err := s.users.SetRefreshToken(ctx, user.ID, refresh); err != nil {
		return nil, storeErr(err, ErrUserNotFound)
	}
	user.RefreshToken = refresh
	return &dto.TokenData{AccessToken: access, RefreshToken: refresh}, nil
}

func (s *AuthService) removeImages(ctx context.Context, storageIDs ...string) {
	for _, id := range storageIDs {
		bestEffort("Remove uploaded image failed", s.media.Remove(ctx, id, media.KindImage), zap.String("object", id))
	}
}
