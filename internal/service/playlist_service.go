package service

import (
	"context"

	"vidhub-go/internal/api/dto"
	"vidhub-go/internal/model"
	"vidhub-go/pkg/utils"
)

type PlaylistService struct {
	playlists PlaylistStore
	videos    VideoStore
	users     UserStore
}

func NewPlaylistService(playlists PlaylistStore, videos VideoStore, users UserStore) *PlaylistService {
	return &PlaylistService{playlists: playlists, videos: videos, users: users}
}

func (s *PlaylistService) Create(ctx context.Context, ownerID int64, req *dto.PlaylistRequest) (*dto.PlaylistInfo, error) {
	playlist, err := model.NewPlaylist(ownerID, utils.SanitizeText(req.Name), utils.SanitizeText(req.Description))
	if err != nil {
		return nil, err
	}
	if err := s.playlists.Create(ctx, playlist); err != nil {
		return nil, storeErr(err, nil)
	}
	info := toPlaylistInfo(playlist, 0, 0)
	return &info, nil
}

// Get 播放列表详情，视频按加入顺序排列。
// 未发布的视频只对其作者可见。
func (s *PlaylistService) Get(ctx context.Context, playlistID, viewerID int64) (*dto.PlaylistDetail, error) {
	playlist, err := s.playlists.GetByIDWithOwner(ctx, playlistID)
	if err != nil {
		return nil, storeErr(err, ErrPlaylistNotFound)
	}
	return s.detail(ctx, playlist, viewerID)
}

// ListByUser 用户的播放列表，附带视频数和总播放量
func (s *PlaylistService) ListByUser(ctx context.Context, userID, viewerID int64) ([]dto.PlaylistInfo, error) {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return nil, storeErr(err, ErrUserNotFound)
	}

	playlists, err := s.playlists.ListByOwner(ctx, userID)
	if err != nil {
		return nil, storeErr(err, nil)
	}
	ids := make([]int64, 0, len(playlists))
	for _, p := range playlists {
		ids = append(ids, p.ID)
	}
	stats, err := s.playlists.BatchStats(ctx, ids, viewerID)
	if err != nil {
		return nil, storeErr(err, nil)
	}

	items := make([]dto.PlaylistInfo, 0, len(playlists))
	for i := range playlists {
		st := stats[playlists[i].ID]
		items = append(items, toPlaylistInfo(&playlists[i], st.TotalVideos, st.TotalViews))
	}
	return items, nil
}

func (s *PlaylistService) Update(ctx context.Context, playlistID, actorID int64, req *dto.PlaylistRequest) (*dto.PlaylistDetail, error) {
	name, description := utils.SanitizeText(req.Name), utils.SanitizeText(req.Description)
	if _, err := model.NewPlaylist(actorID, name, description); err != nil {
		return nil, err
	}

	playlist, err := s.playlists.UpdateOwned(ctx, playlistID, actorID, name, description, ErrPlaylistNotFound)
	if err != nil {
		return nil, storeErr(err, ErrPlaylistNotFound)
	}
	return s.Get(ctx, playlist.ID, actorID)
}

func (s *PlaylistService) Delete(ctx context.Context, playlistID, actorID int64) error {
	_, err := s.playlists.DeleteOwned(ctx, playlistID, actorID, ErrPlaylistNotFound)
	return storeErr(err, ErrPlaylistNotFound)
}

// AddVideo 视频追加到末尾，重复添加不改变顺序。他人未发布的视频视为不存在。
func (s *PlaylistService) AddVideo(ctx context.Context, playlistID, videoID, actorID int64) (*dto.PlaylistDetail, error) {
	exists, err := s.videos.ExistsVisible(ctx, videoID, actorID)
	if err := mustExist(exists, err, ErrVideoNotFound); err != nil {
		return nil, err
	}

	playlist, err := s.playlists.AddVideoOwned(ctx, playlistID, actorID, videoID, ErrPlaylistNotFound)
	if err != nil {
		return nil, storeErr(err, ErrPlaylistNotFound)
	}
	return s.Get(ctx, playlist.ID, actorID)
}

func (s *PlaylistService) RemoveVideo(ctx context.Context, playlistID, videoID, actorID int64) (*dto.PlaylistDetail, error) {
	playlist, err := s.playlists.RemoveVideoOwned(ctx, playlistID, actorID, videoID, ErrPlaylistNotFound)
	if err != nil {
		return nil, storeErr(err, ErrPlaylistNotFound)
	}
	return s.Get(ctx, playlist.ID, actorID)
}

func (s *PlaylistService) detail(ctx context.Context, p *model.Playlist, viewerID int64) (*dto.PlaylistDetail, error) {
	videos, err := s.playlists.Videos(ctx, p.ID, viewerID)
	if err != nil {
		return nil, storeErr(err, nil)
	}

	var totalViews int64
	for _, v := range videos {
		totalViews += v.Views
	}
	return &dto.PlaylistDetail{
		PlaylistInfo: toPlaylistInfo(p, int64(len(videos)), totalViews),
		Owner:        toOwnerInfo(p.Owner),
		Videos:       toVideoInfos(videos),
	}, nil
}
