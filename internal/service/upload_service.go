package service

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Rushant-123/ui-learnings/internal/dto"
	"github.com/Rushant-123/ui-learnings/pkg/storage"
)

const maxUploadSize = 10 << 20 // 10 MiB

var (
	ErrFileTooLarge    = errors.New("文件超过大小限制")
	ErrInvalidFileType = errors.New("不支持的文件类型")
)

// allowedUploadTypes 浏览器直传允许的 MIME 类型
var allowedUploadTypes = map[string]struct{}{
	"image/jpeg":                   {},
	"image/png":                    {},
	"image/gif":                    {},
	"image/webp":                   {},
	"application/pdf":              {},
	"text/plain":                   {},
	"text/markdown":                {},
	"application/zip":              {},
	"application/x-zip-compressed": {},
}

// UploadService 上传业务接口
type UploadService interface {
	// Presign 校验通过后签发预签名 PUT URL，校验失败不触碰存储
	Presign(ctx context.Context, userID string, req *dto.UploadRequest) (*dto.UploadResponse, error)
}

type uploadService struct {
	store  *storage.Client
	logger *zap.Logger
}

// NewUploadService 创建 UploadService 实例
func NewUploadService(store *storage.Client, logger *zap.Logger) UploadService {
	return &uploadService{store: store, logger: logger}
}

func (s *uploadService) Presign(ctx context.Context, userID string, req *dto.UploadRequest) (*dto.UploadResponse, error) {
	// 1. 大小与类型校验，先于任何存储调用
	if req.FileSize > maxUploadSize {
		return nil, ErrFileTooLarge
	}
	if _, ok := allowedUploadTypes[req.FileType]; !ok {
		return nil, ErrInvalidFileType
	}

	// 2. 生成对象键 uploads/{userID}/{ts}_{rand}.{ext}
	key := objectKey(userID, req.FileName)

	// 3. 签发上传 URL
	uploadURL, err := s.store.PresignUpload(ctx, key)
	if err != nil {
		s.logger.Error("签发上传 URL 失败", zap.Error(err))
		return nil, err
	}

	return &dto.UploadResponse{
		UploadURL: uploadURL,
		FilePath:  key,
		PublicURL: s.store.PublicURL(key),
	}, nil
}

// objectKey 对象键不含原文件名，杜绝路径与编码问题
func objectKey(userID, fileName string) string {
	ext := strings.ToLower(strings.TrimPrefix(path.Ext(fileName), "."))
	if ext == "" {
		ext = "bin"
	}
	rand := strings.Split(uuid.New().String(), "-")[0]
	return fmt.Sprintf("uploads/%s/%d_%s.%s", userID, time.Now().UnixMilli(), rand, ext)
}
