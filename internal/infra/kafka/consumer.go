package kafka

import (
	"context"
	"encoding/json"
	"time"

	"vidhub-go/pkg/logger"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// VideoEventHandler 处理单条视频事件
type VideoEventHandler func(ctx context.Context, event *VideoEvent) error

// DecodeVideoEvent 解析消息体
func DecodeVideoEvent(value []byte) (*VideoEvent, error) {
	var event VideoEvent
	if err := json.Unmarshal(value, &event); err != nil {
		return nil, err
	}
	return &event, nil
}

// ConsumeVideoEvents 消费视频事件（阻塞，ctx 取消后返回）
func ConsumeVideoEvents(ctx context.Context, brokers []string, topic, groupID string, handler VideoEventHandler) {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:        brokers,
		Topic:          topic,
		GroupID:        groupID,
		MinBytes:       1,
		MaxBytes:       10e6,
		CommitInterval: time.Second,
		StartOffset:    kafka.FirstOffset,
	})

	defer func() {
		if err := reader.Close(); err != nil {
			logger.Error("Failed to close kafka consumer", zap.Error(err))
		}
		logger.Info("Kafka video event consumer stopped")
	}()

	logger.Info("Kafka video event consumer started",
		zap.String("topic", topic),
		zap.String("group", groupID),
	)

	for {
		msg, err := reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			logger.Error("Failed to read kafka message", zap.Error(err))
			time.Sleep(time.Second)
			continue
		}

		event, err := DecodeVideoEvent(msg.Value)
		if err != nil {
			logger.Error("Failed to unmarshal video event",
				zap.Error(err),
				zap.ByteString("value", msg.Value),
			)
			continue
		}

		if err := handler(ctx, event); err != nil {
			logger.Error("Failed to handle video event",
				zap.String("type", event.Type),
				zap.Int64("video_id", event.VideoID),
				zap.Error(err),
			)
		}
	}
}
