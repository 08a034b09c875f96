// Package media 把本地临时文件上传到对象存储，并在需要时探测视频时长。
package media

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"strings"
	"time"

	"vidhub-go/pkg/apperr"
	"vidhub-go/pkg/logger"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Kind 媒体类型
type Kind string

const (
	KindImage Kind = "image"
	KindVideo Kind = "video"
)

// Asset 上传结果
type Asset struct {
	URL       string
	StorageID string
	Duration  float64
}

//go:generate mockgen -destination=mocks/mock_store.go -package=mocks vidhub-go/internal/media Store

// Store 媒体存储
type Store interface {
	Upload(ctx context.Context, localPath string, kind Kind) (*Asset, error)
	Remove(ctx context.Context, storageID string, kind Kind) error
}

// Backend 对象存储后端（MinIO / S3）
type Backend interface {
	Put(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) (string, error)
	Delete(ctx context.Context, objectName string) error
}

// Prober 读取视频时长（秒）
type Prober interface {
	Duration(ctx context.Context, localPath string) (float64, error)
}

// Limits 各类型文件大小上限及单次上传超时，0 表示不限制
type Limits struct {
	MaxImageBytes int64
	MaxVideoBytes int64
	Timeout       time.Duration
}

func (l Limits) max(kind Kind) int64 {
	if kind == KindVideo {
		return l.MaxVideoBytes
	}
	return l.MaxImageBytes
}

// Bridge Store 的默认实现
type Bridge struct {
	backend Backend
	prober  Prober
	limits  Limits
}

var _ Store = (*Bridge)(nil)

// NewBridge prober 可为 nil，此时视频时长记为 0
func NewBridge(backend Backend, prober Prober, limits Limits) *Bridge {
	return &Bridge{backend: backend, prober: prober, limits: limits}
}

// Upload 上传本地文件，无论成功与否都会删除该文件
func (b *Bridge) Upload(ctx context.Context, localPath string, kind Kind) (*Asset, error) {
	defer func() {
		if err := os.Remove(localPath); err != nil && !os.IsNotExist(err) {
			logger.Warn("Failed to remove temp file", zap.String("path", localPath), zap.Error(err))
		}
	}()

	if localPath == "" {
		return nil, apperr.InvalidInput("缺少上传文件")
	}

	f, err := os.Open(localPath)
	if err != nil {
		return nil, apperr.UploadFailed("读取上传文件失败", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, apperr.UploadFailed("读取上传文件失败", err)
	}
	if limit := b.limits.max(kind); limit > 0 && info.Size() > limit {
		return nil, apperr.InvalidInput(fmt.Sprintf("文件过大，最大允许 %d MB", limit>>20))
	}

	mtype, err := mimetype.DetectReader(f)
	if err != nil {
		return nil, apperr.UploadFailed("识别文件类型失败", err)
	}
	if !matchesKind(mtype, kind) {
		return nil, apperr.InvalidInput(fmt.Sprintf("不支持的文件类型: %s", mtype.String()))
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, apperr.UploadFailed("读取上传文件失败", err)
	}

	asset := &Asset{StorageID: objectName(kind, mtype.Extension())}
	if kind == KindVideo && b.prober != nil {
		dur, err := b.prober.Duration(ctx, localPath)
		if err != nil {
			logger.Warn("Probe video duration failed", zap.String("path", localPath), zap.Error(err))
		}
		asset.Duration = dur
	}

	putCtx := ctx
	if b.limits.Timeout > 0 {
		var cancel context.CancelFunc
		putCtx, cancel = context.WithTimeout(ctx, b.limits.Timeout)
		defer cancel()
	}
	url, err := b.backend.Put(putCtx, asset.StorageID, f, info.Size(), mtype.String())
	if err != nil {
		return nil, apperr.UploadFailed("上传文件失败", err)
	}
	asset.URL = url

	logger.Info("Media uploaded",
		zap.String("kind", string(kind)),
		zap.String("object", asset.StorageID),
		zap.Int64("size", info.Size()),
	)
	return asset, nil
}

// Remove 删除已上传的对象
func (b *Bridge) Remove(ctx context.Context, storageID string, kind Kind) error {
	if storageID == "" {
		return nil
	}
	if !strings.HasPrefix(storageID, string(kind)+"s/") {
		return fmt.Errorf("object %q is not a %s", storageID, kind)
	}
	return b.backend.Delete(ctx, storageID)
}

func matchesKind(m *mimetype.MIME, kind Kind) bool {
	for ; m != nil; m = m.Parent() {
		if strings.HasPrefix(m.String(), string(kind)+"/") {
			return true
		}
	}
	return false
}

// objectName images/<uuid>.png、videos/<uuid>.mp4
func objectName(kind Kind, ext string) string {
	return path.Join(string(kind)+"s", uuid.NewString()+ext)
}
