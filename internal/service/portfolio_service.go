package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Rushant-123/ui-learnings/internal/dto"
	"github.com/Rushant-123/ui-learnings/internal/model"
	"github.com/Rushant-123/ui-learnings/internal/repository"
)

var ErrMilestoneNotFound = errors.New("里程碑不存在")

// PortfolioService 作品集里程碑业务接口
type PortfolioService interface {
	List(ctx context.Context, userID string) (*dto.PortfolioListResponse, error)
	// Submit 按 (user, week) upsert：同周重复提交更新原记录
	Submit(ctx context.Context, userID string, req *dto.SubmitMilestoneRequest) (*dto.MilestoneResponse, bool, error)
	Update(ctx context.Context, userID string, req *dto.UpdateMilestoneRequest) (*dto.MilestoneResponse, error)
}

type portfolioService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewPortfolioService 创建 PortfolioService 实例
func NewPortfolioService(repo *repository.Repository, logger *zap.Logger) PortfolioService {
	return &portfolioService{repo: repo, logger: logger}
}

func (s *portfolioService) List(ctx context.Context, userID string) (*dto.PortfolioListResponse, error) {
	list, err := s.repo.Portfolio.ListByUser(ctx, userID)
	if err != nil {
		s.logger.Error("查询作品集失败", zap.Error(err))
		return nil, err
	}
	if list == nil {
		list = []model.PortfolioMilestone{}
	}
	return &dto.PortfolioListResponse{Portfolio: list}, nil
}

// Submit 返回值第二项表示是否为新建（false 为更新已有记录）
func (s *portfolioService) Submit(ctx context.Context, userID string, req *dto.SubmitMilestoneRequest) (*dto.MilestoneResponse, bool, error) {
	existing, err := s.repo.Portfolio.GetByUserWeek(ctx, userID, req.WeekNumber)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("查询里程碑失败", zap.Error(err))
		return nil, false, err
	}

	// 同周已有记录 → 更新
	if existing != nil {
		existing.MilestoneTitle = req.MilestoneTitle
		existing.Description = req.Description
		existing.Deliverables = req.Deliverables
		existing.ProjectLinks = req.ProjectLinks
		now := time.Now()
		existing.UpdatedAt = &now
		if err := s.repo.Portfolio.Update(ctx, existing); err != nil {
			s.logger.Error("更新里程碑失败", zap.Error(err))
			return nil, false, err
		}
		return &dto.MilestoneResponse{Milestone: existing}, false, nil
	}

	m := &model.PortfolioMilestone{
		UserID:         userID,
		WeekNumber:     req.WeekNumber,
		MilestoneTitle: req.MilestoneTitle,
		Description:    req.Description,
		Deliverables:   req.Deliverables,
		ProjectLinks:   req.ProjectLinks,
		Status:         "submitted",
		SubmittedAt:    time.Now(),
	}
	if err := s.repo.Portfolio.Create(ctx, m); err != nil {
		s.logger.Error("创建里程碑失败", zap.Error(err))
		return nil, false, err
	}
	return &dto.MilestoneResponse{Milestone: m}, true, nil
}

func (s *portfolioService) Update(ctx context.Context, userID string, req *dto.UpdateMilestoneRequest) (*dto.MilestoneResponse, error) {
	m, err := s.repo.Portfolio.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMilestoneNotFound
		}
		s.logger.Error("查询里程碑失败", zap.Error(err))
		return nil, err
	}
	// 越权与不存在同样返回 404
	if m.UserID != userID {
		return nil, ErrMilestoneNotFound
	}

	if req.MilestoneTitle != nil {
		m.MilestoneTitle = *req.MilestoneTitle
	}
	if req.Description != nil {
		m.Description = *req.Description
	}
	if req.Deliverables != nil {
		m.Deliverables = *req.Deliverables
	}
	if req.ProjectLinks != nil {
		m.ProjectLinks = *req.ProjectLinks
	}
	if req.Status != nil {
		m.Status = *req.Status
	}
	now := time.Now()
	m.UpdatedAt = &now

	if err := s.repo.Portfolio.Update(ctx, m); err != nil {
		s.logger.Error("更新里程碑失败", zap.Error(err))
		return nil, err
	}
	return &dto.MilestoneResponse{Milestone: m}, nil
}
