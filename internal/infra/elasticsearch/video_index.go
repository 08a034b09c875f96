package elasticsearch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"vidhub-go/internal/model"
	"vidhub-go/pkg/logger"

	"github.com/elastic/go-elasticsearch/v8"
	"go.uber.org/zap"
)

// VideoDoc ES 中的视频文档
type VideoDoc struct {
	ID            int64   `json:"id"`
	OwnerID       int64   `json:"owner_id"`
	OwnerUsername string  `json:"owner_username"`
	Title         string  `json:"title"`
	Description   string  `json:"description"`
	IsPublished   bool    `json:"is_published"`
	Views         int64   `json:"views"`
	Duration      float64 `json:"duration"`
	CreatedAt     string  `json:"created_at"`
	UpdatedAt     string  `json:"updated_at"`
}

// NewVideoDoc 由视频记录生成文档，v.Owner 可为空
func NewVideoDoc(v *model.Video) *VideoDoc {
	doc := &VideoDoc{
		ID:          v.ID,
		OwnerID:     v.OwnerID,
		Title:       v.Title,
		Description: v.Description,
		IsPublished: v.IsPublished,
		Views:       v.Views,
		Duration:    v.Duration,
		CreatedAt:   v.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   v.UpdatedAt.Format(time.RFC3339),
	}
	if v.Owner != nil {
		doc.OwnerUsername = v.Owner.Username
	}
	return doc
}

// VideoIndex 视频全文索引
type VideoIndex struct {
	es    *elasticsearch.Client
	index string
}

func NewVideoIndex(es *elasticsearch.Client, index string) *VideoIndex {
	return &VideoIndex{es: es, index: index}
}

// Ensure 确保索引存在
func (x *VideoIndex) Ensure(ctx context.Context) error {
	return EnsureIndex(ctx, x.es, x.index)
}

// searchQuery 构造标题+描述的全文检索请求，只返回 id
func searchQuery(query string, size int) ([]byte, error) {
	return json.Marshal(map[string]interface{}{
		"size":    size,
		"_source": []string{"id"},
		"query": map[string]interface{}{
			"bool": map[string]interface{}{
				"must": map[string]interface{}{
					"multi_match": map[string]interface{}{
						"query":  query,
						"fields": []string{"title^2", "description"},
					},
				},
			},
		},
	})
}

// SearchVideoIDs 返回匹配查询的视频 id，发布状态等过滤交给数据库
func (x *VideoIndex) SearchVideoIDs(ctx context.Context, query string, size int) ([]int64, error) {
	body, err := searchQuery(query, size)
	if err != nil {
		return nil, err
	}

	resp, err := x.es.Search(
		x.es.Search.WithContext(ctx),
		x.es.Search.WithIndex(x.index),
		x.es.Search.WithBody(bytes.NewReader(body)),
	)
	if err != nil {
		return nil, fmt.Errorf("search videos: %w", err)
	}
	defer resp.Body.Close()
	if resp.IsError() {
		return nil, fmt.Errorf("search videos failed: %s", resp.String())
	}

	var result struct {
		Hits struct {
			Hits []struct {
				ID string `json:"_id"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}

	ids := make([]int64, 0, len(result.Hits.Hits))
	for _, h := range result.Hits.Hits {
		id, err := strconv.ParseInt(h.ID, 10, 64)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// Upsert 写入或覆盖单个视频文档
func (x *VideoIndex) Upsert(ctx context.Context, v *model.Video) error {
	body, err := json.Marshal(NewVideoDoc(v))
	if err != nil {
		return err
	}

	resp, err := x.es.Index(x.index, bytes.NewReader(body),
		x.es.Index.WithContext(ctx),
		x.es.Index.WithDocumentID(strconv.FormatInt(v.ID, 10)),
	)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.IsError() {
		return fmt.Errorf("index document failed: %s", resp.String())
	}

	logger.Debug("Video synced to ES", zap.Int64("video_id", v.ID))
	return nil
}

// Delete 删除视频文档，不存在时视为成功
func (x *VideoIndex) Delete(ctx context.Context, videoID int64) error {
	resp, err := x.es.Delete(x.index, strconv.FormatInt(videoID, 10), x.es.Delete.WithContext(ctx))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.IsError() && resp.StatusCode != 404 {
		return fmt.Errorf("delete document failed: %s", resp.String())
	}
	return nil
}

// BulkUpsert 批量写入视频文档
func (x *VideoIndex) BulkUpsert(ctx context.Context, videos []model.Video) (success, failed int, err error) {
	if len(videos) == 0 {
		return 0, 0, nil
	}

	var buf strings.Builder
	for i := range videos {
		docBody, err := json.Marshal(NewVideoDoc(&videos[i]))
		if err != nil {
			return 0, len(videos), err
		}
		fmt.Fprintf(&buf, `{"index":{"_index":%q,"_id":"%d"}}`+"\n", x.index, videos[i].ID)
		buf.Write(docBody)
		buf.WriteString("\n")
	}

	resp, err := x.es.Bulk(strings.NewReader(buf.String()), x.es.Bulk.WithContext(ctx))
	if err != nil {
		return 0, len(videos), err
	}
	defer resp.Body.Close()

	if resp.IsError() {
		return 0, len(videos), fmt.Errorf("bulk failed: %s", resp.String())
	}

	var bulkResp struct {
		Items []struct {
			Index struct {
				Status int `json:"status"`
			} `json:"index"`
		} `json:"items"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&bulkResp); err != nil {
		return 0, len(videos), fmt.Errorf("decode bulk response: %w", err)
	}

	for _, item := range bulkResp.Items {
		if item.Index.Status >= 200 && item.Index.Status < 300 {
			success++
		} else {
			failed++
		}
	}

	logger.Info("Bulk sync to ES completed", zap.Int("success", success), zap.Int("failed", failed))
	return success, failed, nil
}
