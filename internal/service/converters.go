package service

import (
	"vidhub-go/internal/api/dto"
	"vidhub-go/internal/model"
)

func toUserInfo(u *model.User) *dto.UserInfo {
	return &dto.UserInfo{
		ID:         u.ID,
		Username:   u.Username,
		Email:      u.Email,
		FullName:   u.FullName,
		Avatar:     u.Avatar,
		CoverImage: u.CoverImage,
		CreatedAt:  u.CreatedAt,
		UpdatedAt:  u.UpdatedAt,
	}
}

func toOwnerInfo(u *model.User) *dto.OwnerInfo {
	if u == nil {
		return nil
	}
	return &dto.OwnerInfo{
		ID:       u.ID,
		Username: u.Username,
		FullName: u.FullName,
		Avatar:   u.Avatar,
	}
}

func toVideoInfo(v *model.Video) dto.VideoInfo {
	return dto.VideoInfo{
		ID:          v.ID,
		Title:       v.Title,
		Description: v.Description,
		VideoFile:   v.VideoFile,
		Thumbnail:   v.Thumbnail,
		Duration:    v.Duration,
		Views:       v.Views,
		IsPublished: v.IsPublished,
		OwnerID:     v.OwnerID,
		CreatedAt:   v.CreatedAt,
		UpdatedAt:   v.UpdatedAt,
		Owner:       toOwnerInfo(v.Owner),
	}
}

func toVideoInfos(videos []model.Video) []dto.VideoInfo {
	items := make([]dto.VideoInfo, 0, len(videos))
	for i := range videos {
		items = append(items, toVideoInfo(&videos[i]))
	}
	return items
}

func toCommentInfo(c *model.Comment, likes int64, liked bool) dto.CommentInfo {
	return dto.CommentInfo{
		ID:         c.ID,
		Content:    c.Content,
		VideoID:    c.VideoID,
		Owner:      toOwnerInfo(c.Owner),
		LikesCount: likes,
		IsLiked:    liked,
		CreatedAt:  c.CreatedAt,
		UpdatedAt:  c.UpdatedAt,
	}
}

func toTweetInfo(t *model.Tweet, likes int64, liked bool) dto.TweetInfo {
	return dto.TweetInfo{
		ID:         t.ID,
		Content:    t.Content,
		Owner:      toOwnerInfo(t.Owner),
		LikesCount: likes,
		IsLiked:    liked,
		CreatedAt:  t.CreatedAt,
		UpdatedAt:  t.UpdatedAt,
	}
}

func toPlaylistInfo(p *model.Playlist, totalVideos, totalViews int64) dto.PlaylistInfo {
	return dto.PlaylistInfo{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		OwnerID:     p.OwnerID,
		TotalVideos: totalVideos,
		TotalViews:  totalViews,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func mediaRef(url, storageID string) model.MediaRef {
	return model.MediaRef{URL: url, PublicID: storageID}
}
