package s3

import (
	"context"
	"fmt"
	"io"
	"strings"

	"vidhub-go/internal/config"
	"vidhub-go/pkg/logger"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"go.uber.org/zap"
)

// Bucket S3 兼容存储（AWS S3 / Cloudflare R2）上的单个 Bucket
type Bucket struct {
	client *s3.Client
	name   string
	base   string
}

// NewBucket 创建 S3 客户端，自定义 endpoint 时使用 path-style 寻址
func NewBucket(ctx context.Context, cfg *config.S3Config) (*Bucket, error) {
	if cfg.Bucket == "" || cfg.Region == "" {
		return nil, fmt.Errorf("s3 bucket and region are required")
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load aws config: %w", err)
	}

	endpoint := strings.TrimSuffix(cfg.Endpoint, "/")
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
			o.UsePathStyle = true
		}
	})

	b := &Bucket{client: client, name: cfg.Bucket, base: publicBase(cfg, endpoint)}
	logger.Info("S3 storage initialized",
		zap.String("endpoint", endpoint),
		zap.String("region", cfg.Region),
		zap.String("bucket", cfg.Bucket),
	)
	return b, nil
}

func publicBase(cfg *config.S3Config, endpoint string) string {
	if cfg.PublicBaseURL != "" {
		return strings.TrimSuffix(cfg.PublicBaseURL, "/")
	}
	if endpoint != "" {
		return endpoint + "/" + cfg.Bucket
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.Bucket, cfg.Region)
}

// Put 上传对象，返回公开访问 URL
func (b *Bucket) Put(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) (string, error) {
	_, err := b.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(b.name),
		Key:           aws.String(objectName),
		Body:          reader,
		ContentLength: aws.Int64(size),
		ContentType:   aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload %s to bucket %s: %w", objectName, b.name, err)
	}
	return b.base + "/" + objectName, nil
}

// Delete 删除对象
func (b *Bucket) Delete(ctx context.Context, objectName string) error {
	if objectName == "" {
		return fmt.Errorf("object key cannot be empty")
	}
	_, err := b.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(b.name),
		Key:    aws.String(objectName),
	})
	if err != nil {
		return fmt.Errorf("failed to delete %s from bucket %s: %w", objectName, b.name, err)
	}
	return nil
}
