package elasticsearch

import (
	"context"
	"fmt"
	"strings"

	"vidhub-go/pkg/logger"

	"github.com/elastic/go-elasticsearch/v8"
	"go.uber.org/zap"
)

// videosIndexMapping videos 索引结构，标题与描述参与全文检索
const videosIndexMapping = `{
	"settings": {
		"number_of_shards": 1,
		"number_of_replicas": 0
	},
	"mappings": {
		"properties": {
			"id": {"type": "long"},
			"owner_id": {"type": "long"},
			"owner_username": {"type": "keyword"},
			"title": {
				"type": "text",
				"fields": {"keyword": {"type": "keyword", "ignore_above": 200}}
			},
			"description": {"type": "text"},
			"is_published": {"type": "boolean"},
			"views": {"type": "long"},
			"duration": {"type": "float"},
			"created_at": {"type": "date"},
			"updated_at": {"type": "date"}
		}
	}
}`

// EnsureIndex 确保索引存在，不存在则创建
func EnsureIndex(ctx context.Context, es *elasticsearch.Client, index string) error {
	resp, err := es.Indices.Exists([]string{index}, es.Indices.Exists.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("check index exists: %w", err)
	}
	resp.Body.Close()
	if resp.StatusCode == 200 {
		logger.Debug("Elasticsearch index already exists", zap.String("index", index))
		return nil
	}

	resp, err = es.Indices.Create(index,
		es.Indices.Create.WithContext(ctx),
		es.Indices.Create.WithBody(strings.NewReader(videosIndexMapping)),
	)
	if err != nil {
		return fmt.Errorf("create index: %w", err)
	}
	defer resp.Body.Close()

	if resp.IsError() {
		return fmt.Errorf("create index failed: %s", resp.String())
	}

	logger.Info("Elasticsearch index created", zap.String("index", index))
	return nil
}
