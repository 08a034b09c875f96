package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"vidhub-go/internal/config"
	"vidhub-go/pkg/logger"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

var producer *kafka.Writer

// 视频生命周期事件类型
const (
	VideoCreated = "video.created"
	VideoUpdated = "video.updated"
	VideoDeleted = "video.deleted"
)

// VideoEvent 视频生命周期事件消息体
type VideoEvent struct {
	Type       string    `json:"type"`
	VideoID    int64     `json:"video_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

// InitProducer 初始化 Kafka 生产者
func InitProducer(cfg *config.KafkaConfig) error {
	if len(cfg.Brokers) == 0 {
		return fmt.Errorf("kafka brokers is empty")
	}
	producer = &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Brokers...),
		Balancer:               &kafka.Hash{},
		BatchTimeout:           10 * time.Millisecond,
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: true,
	}

	logger.Info("Kafka producer initialized",
		zap.Strings("brokers", cfg.Brokers),
	)

	return nil
}

// VideoEventPublisher 把视频事件写入指定 topic，同一视频的事件落在同一分区
type VideoEventPublisher struct {
	topic string
}

func NewVideoEventPublisher(topic string) *VideoEventPublisher {
	return &VideoEventPublisher{topic: topic}
}

// PublishVideoEvent 发送视频事件
func (p *VideoEventPublisher) PublishVideoEvent(ctx context.Context, eventType string, videoID int64) error {
	if producer == nil {
		return fmt.Errorf("kafka producer not initialized")
	}

	payload, err := json.Marshal(&VideoEvent{Type: eventType, VideoID: videoID, OccurredAt: time.Now().UTC()})
	if err != nil {
		return fmt.Errorf("failed to marshal video event: %w", err)
	}

	msg := kafka.Message{
		Topic: p.topic,
		Key:   []byte(fmt.Sprintf("video-%d", videoID)),
		Value: payload,
	}
	if err := producer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to send video event: %w", err)
	}

	logger.Debug("Video event sent",
		zap.String("type", eventType),
		zap.Int64("video_id", videoID),
		zap.String("topic", p.topic),
	)
	return nil
}

// CloseProducer 关闭生产者
func CloseProducer() error {
	if producer == nil {
		return nil
	}
	logger.Info("Kafka producer closed")
	return producer.Close()
}
