package handler

import "github.com/Rushant-123/ui-learnings/internal/service"

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Auth       *AuthHandler
	Progress   *ProgressHandler
	Assignment *AssignmentHandler
	Feedback   *FeedbackHandler
	Portfolio  *PortfolioHandler
	Upload     *UploadHandler
	Export     *ExportHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Auth:       NewAuthHandler(svc.Auth),
		Progress:   NewProgressHandler(svc.Progress),
		Assignment: NewAssignmentHandler(svc.Assignment),
		Feedback:   NewFeedbackHandler(svc.Feedback),
		Portfolio:  NewPortfolioHandler(svc.Portfolio),
		Upload:     NewUploadHandler(svc.Upload),
		Export:     NewExportHandler(svc.Export),
	}
}
