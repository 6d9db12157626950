package service

import (
	"go.uber.org/zap"

	"github.com/Rushant-123/ui-learnings/config"
	"github.com/Rushant-123/ui-learnings/internal/curriculum"
	"github.com/Rushant-123/ui-learnings/internal/repository"
	"github.com/Rushant-123/ui-learnings/pkg/jwt"
	"github.com/Rushant-123/ui-learnings/pkg/redis"
	"github.com/Rushant-123/ui-learnings/pkg/storage"
)

// Service 所有 Service 的聚合入口
type Service struct {
	Auth       AuthService
	Progress   ProgressService
	Assignment AssignmentService
	Feedback   FeedbackService
	Portfolio  PortfolioService
	Upload     UploadService
	Export     ExportService
}

// NewService 创建 Service 聚合
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	rdb *redis.Client,
	store *storage.Client,
	curr *curriculum.Store,
	logger *zap.Logger,
) *Service {
	progress := NewProgressService(repo, curr, logger)
	return &Service{
		Auth:       NewAuthService(cfg, repo, jwtMgr, rdb, logger),
		Progress:   progress,
		Assignment: NewAssignmentService(repo, curr, logger),
		Feedback:   NewFeedbackService(repo, logger),
		Portfolio:  NewPortfolioService(repo, logger),
		Upload:     NewUploadService(store, logger),
		Export:     NewExportService(cfg, repo, curr, logger),
	}
}
