package storage

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"

	"github.com/Rushant-123/ui-learnings/config"
)

// Client 对象存储客户端封装（MinIO / S3 兼容）
// 用于签发浏览器直传的预签名 PUT URL
type Client struct {
	mc            *minio.Client
	bucket        string
	publicBaseURL string
	uploadExpiry  time.Duration
	logger        *zap.Logger
}

// NewClient 创建对象存储客户端并确保上传桶存在
func NewClient(cfg *config.StorageConfig, logger *zap.Logger) (*Client, error) {
	mc, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("创建对象存储客户端失败: %w", err)
	}

	c := &Client{
		mc:            mc,
		bucket:        cfg.Bucket,
		publicBaseURL: strings.TrimRight(cfg.PublicBaseURL, "/"),
		uploadExpiry:  cfg.UploadURLExpiry,
		logger:        logger,
	}
	if c.uploadExpiry <= 0 {
		c.uploadExpiry = 15 * time.Minute
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	exists, err := mc.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		// 存储不可达时不阻塞启动，签发 URL 时再报错
		logger.Warn("对象存储健康检查失败，上传功能可能不可用", zap.Error(err))
		return c, nil
	}
	if !exists {
		if err := mc.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("创建上传桶失败: %w", err)
		}
		logger.Info("上传桶已创建", zap.String("bucket", cfg.Bucket))
	}

	logger.Info("对象存储连接成功",
		zap.String("endpoint", cfg.Endpoint),
		zap.String("bucket", cfg.Bucket),
	)

	return c, nil
}

// PresignUpload 为指定对象键签发预签名 PUT URL
func (c *Client) PresignUpload(ctx context.Context, objectKey string) (string, error) {
	u, err := c.mc.PresignedPutObject(ctx, c.bucket, objectKey, c.uploadExpiry)
	if err != nil {
		return "", fmt.Errorf("签发上传 URL 失败: %w", err)
	}
	return u.String(), nil
}

// PublicURL 对象上传完成后的公开访问地址
func (c *Client) PublicURL(objectKey string) string {
	if c.publicBaseURL != "" {
		return c.publicBaseURL + "/" + objectKey
	}
	scheme := "http"
	if c.mc.EndpointURL().Scheme == "https" {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s", scheme, c.mc.EndpointURL().Host, c.bucket, objectKey)
}
