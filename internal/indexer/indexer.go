// Package indexer 消费视频事件，保持搜索索引与数据库一致。
package indexer

import (
	"context"
	"errors"
	"fmt"

	infraKafka "vidhub-go/internal/infra/kafka"
	"vidhub-go/internal/model"
	"vidhub-go/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

const DefaultBatchSize = 500

// VideoSource 读取视频记录
type VideoSource interface {
	GetByIDWithOwner(ctx context.Context, id int64) (*model.Video, error)
	ListPublishedAfter(ctx context.Context, afterID int64, limit int) ([]model.Video, error)
}

// Index 搜索索引写入端
type Index interface {
	Upsert(ctx context.Context, v *model.Video) error
	Delete(ctx context.Context, videoID int64) error
	BulkUpsert(ctx context.Context, videos []model.Video) (success, failed int, err error)
}

type Indexer struct {
	videos VideoSource
	index  Index
}

func New(videos VideoSource, index Index) *Indexer {
	return &Indexer{videos: videos, index: index}
}

// Handle 处理一条视频事件。只有已发布的视频进入索引，
// 视频被删除或下架时从索引中移除。
func (x *Indexer) Handle(ctx context.Context, event *infraKafka.VideoEvent) error {
	switch event.Type {
	case infraKafka.VideoDeleted:
		return x.index.Delete(ctx, event.VideoID)
	case infraKafka.VideoCreated, infraKafka.VideoUpdated:
	default:
		logger.Warn("Unknown video event type", zap.String("type", event.Type), zap.Int64("video_id", event.VideoID))
		return nil
	}

	video, err := x.videos.GetByIDWithOwner(ctx, event.VideoID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		// 事件晚于删除到达
		return x.index.Delete(ctx, event.VideoID)
	}
	if err != nil {
		return fmt.Errorf("load video %d: %w", event.VideoID, err)
	}

	if !video.IsPublished {
		return x.index.Delete(ctx, video.ID)
	}
	return x.index.Upsert(ctx, video)
}

// Reindex 分批把全部已发布视频写入索引
func (x *Indexer) Reindex(ctx context.Context, batchSize int) (indexed, failed int, err error) {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}

	var afterID int64
	for {
		videos, err := x.videos.ListPublishedAfter(ctx, afterID, batchSize)
		if err != nil {
			return indexed, failed, fmt.Errorf("list videos after %d: %w", afterID, err)
		}
		if len(videos) == 0 {
			break
		}

		ok, bad, err := x.index.BulkUpsert(ctx, videos)
		indexed += ok
		failed += bad
		if err != nil {
			return indexed, failed, err
		}

		afterID = videos[len(videos)-1].ID
		logger.Info("Reindex batch done",
			zap.Int64("last_id", afterID),
			zap.Int("indexed", indexed),
			zap.Int("failed", failed),
		)
		if len(videos) < batchSize {
			break
		}
	}
	return indexed, failed, nil
}
