package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"vidhub-go/internal/config"
	"vidhub-go/internal/indexer"
	"vidhub-go/internal/infra/database"
	infraES "vidhub-go/internal/infra/elasticsearch"
	infraKafka "vidhub-go/internal/infra/kafka"
	"vidhub-go/internal/repository"
	"vidhub-go/pkg/logger"

	"go.uber.org/zap"
)

func main() {
	configPath := flag.String("config", "configs/config.yaml", "配置文件路径")
	reindex := flag.Bool("reindex", false, "从数据库全量重建视频索引后退出")
	batchSize := flag.Int("batch", indexer.DefaultBatchSize, "重建索引时每批写入的视频数")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	if err := logger.Init(cfg.Log.Level, cfg.Log.Format, cfg.Log.Output, cfg.Log.FilePath); err != nil {
		panic(fmt.Sprintf("Failed to init logger: %v", err))
	}
	defer logger.Sync()

	db, err := database.Open(&cfg.Database, false)
	if err != nil {
		logger.Fatal("Failed to init database", zap.Error(err))
	}
	defer database.Close(db)

	if err := infraES.Init(&cfg.Elasticsearch); err != nil {
		logger.Fatal("Failed to init elasticsearch", zap.Error(err))
	}
	defer infraES.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 监听系统信号，优雅退出
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigCh
		logger.Info("Received signal, shutting down", zap.String("signal", sig.String()))
		cancel()
	}()

	index := infraES.NewVideoIndex(infraES.Get(), cfg.Elasticsearch.VideosIndex())
	if err := index.Ensure(ctx); err != nil {
		logger.Fatal("Failed to ensure video index", zap.Error(err))
	}
	idx := indexer.New(repository.NewVideoRepository(db), index)

	if *reindex {
		indexed, failed, err := idx.Reindex(ctx, *batchSize)
		if err != nil {
			logger.Fatal("Reindex failed",
				zap.Int("indexed", indexed),
				zap.Int("failed", failed),
				zap.Error(err),
			)
		}
		logger.Info("Reindex completed", zap.Int("indexed", indexed), zap.Int("failed", failed))
		return
	}

	topic := cfg.Kafka.Topics["video_events"]
	logger.Info("Index worker started",
		zap.String("topic", topic),
		zap.String("group", cfg.Kafka.GroupID),
		zap.Strings("brokers", cfg.Kafka.Brokers),
	)

	infraKafka.ConsumeVideoEvents(ctx, cfg.Kafka.Brokers, topic, cfg.Kafka.GroupID, idx.Handle)
	logger.Info("Index worker stopped")
}
