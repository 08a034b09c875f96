package service

import (
	"context"
	"testing"

	"vidhub-go/internal/api/dto"
	"vidhub-go/internal/media"
	"vidhub-go/internal/media/mocks"

	"go.uber.org/mock/gomock"
)

// 注册、登录、上传、观看的完整链路
func TestScenario_RegisterLoginUploadWatch(t *testing.T) {
	setupConfig()
	mem := newMemStore()
	store := mocks.NewMockStore(gomock.NewController(t))
	events := &fakePublisher{}
	auth := NewAuthService(fakeUsers{mem}, store, &fakeDenylist{})
	videos := NewVideoService(fakeVideos{mem}, fakeUsers{mem}, fakeLikes{mem}, fakeSubs{mem}, store, events, nil)
	users := NewUserService(fakeUsers{mem}, fakeSubs{mem}, store)
	ctx := context.Background()

	gomock.InOrder(
		store.EXPECT().Upload(gomock.Any(), "/tmp/avatar", media.KindImage).
			Return(&media.Asset{URL: "http://cdn/a.png", StorageID: "images/a.png"}, nil),
		store.EXPECT().Upload(gomock.Any(), "/tmp/video", media.KindVideo).
			Return(&media.Asset{URL: "http://cdn/v.mp4", StorageID: "videos/v.mp4", Duration: 42}, nil),
		store.EXPECT().Upload(gomock.Any(), "/tmp/thumb", media.KindImage).
			Return(&media.Asset{URL: "http://cdn/t.png", StorageID: "images/t.png"}, nil),
	)

	if _, err := auth.Register(ctx, registerReq("creator"), "/tmp/avatar", ""); err != nil {
		t.Fatalf("Register: %v", err)
	}
	tokens, err := auth.Login(ctx, &dto.LoginRequest{Email: "creator@example.com", Password: "secret1"})
	if err != nil || tokens.AccessToken == "" || tokens.User == nil {
		t.Fatalf("Login = %+v, %v", tokens, err)
	}
	me := tokens.User.ID

	video, err := videos.Publish(ctx, me, &dto.VideoUploadRequest{Title: "First", Description: "hello"}, "/tmp/video", "/tmp/thumb")
	if err != nil {
		t.Fatalf("Publish: %v", err)
	}

	detail, err := videos.Detail(ctx, video.ID, me)
	if err != nil {
		t.Fatalf("Detail: %v", err)
	}
	if detail.Views != 1 || detail.Duration != 42 || detail.Owner == nil || detail.Owner.Username != "creator" {
		t.Errorf("detail = %+v", detail)
	}

	history, err := users.WatchHistory(ctx, me)
	if err != nil || len(history) != 1 || history[0].ID != video.ID {
		t.Errorf("history = %+v, %v", history, err)
	}
}
