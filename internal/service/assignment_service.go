package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Rushant-123/ui-learnings/internal/curriculum"
	"github.com/Rushant-123/ui-learnings/internal/dto"
	"github.com/Rushant-123/ui-learnings/internal/model"
	"github.com/Rushant-123/ui-learnings/internal/repository"
)

var (
	ErrAssignmentNotFound  = errors.New("作业不存在")
	ErrInvalidSubmission   = errors.New("提交类型无效")
	ErrAssignmentForbidden = errors.New("无权操作该作业")
)

// aiEligibleTasks 可获得自动反馈的 (week, day) 白名单
// 仅覆盖有明确评分标准的书面分析类任务
var aiEligibleTasks = map[string]struct{}{
	curriculum.TaskKey(1, "Friday"):    {},
	curriculum.TaskKey(3, "Friday"):    {},
	curriculum.TaskKey(5, "Tuesday"):   {},
	curriculum.TaskKey(5, "Wednesday"): {},
	curriculum.TaskKey(5, "Thursday"):  {},
	curriculum.TaskKey(5, "Friday"):    {},
	curriculum.TaskKey(6, "Friday"):    {},
	curriculum.TaskKey(7, "Monday"):    {},
	curriculum.TaskKey(7, "Tuesday"):   {},
	curriculum.TaskKey(7, "Wednesday"): {},
	curriculum.TaskKey(7, "Thursday"):  {},
}

// AssignmentService 作业业务接口
type AssignmentService interface {
	List(ctx context.Context, userID string, req *dto.AssignmentListRequest) (*dto.AssignmentListResponse, error)
	GetByID(ctx context.Context, userID, assignmentID string) (*dto.AssignmentResponse, error)
	// Submit 创建作业；符合条件的文本提交会同步生成一条自动反馈
	Submit(ctx context.Context, userID string, req *dto.SubmitAssignmentRequest) (*dto.SubmitAssignmentResponse, error)
	Update(ctx context.Context, userID string, req *dto.UpdateAssignmentRequest) (*dto.AssignmentResponse, error)
}

type assignmentService struct {
	repo   *repository.Repository
	curr   *curriculum.Store
	logger *zap.Logger
}

// NewAssignmentService 创建 AssignmentService 实例
func NewAssignmentService(repo *repository.Repository, curr *curriculum.Store, logger *zap.Logger) AssignmentService {
	return &assignmentService{repo: repo, curr: curr, logger: logger}
}

func (s *assignmentService) List(ctx context.Context, userID string, req *dto.AssignmentListRequest) (*dto.AssignmentListResponse, error) {
	filters := &repository.AssignmentFilters{
		WeekNumber: req.WeekNumber,
		TaskDay:    req.TaskDay,
	}
	list, err := s.repo.Assignment.ListByUser(ctx, userID, filters)
	if err != nil {
		s.logger.Error("查询作业列表失败", zap.Error(err))
		return nil, err
	}
	return &dto.AssignmentListResponse{Assignments: list}, nil
}

func (s *assignmentService) GetByID(ctx context.Context, userID, assignmentID string) (*dto.AssignmentResponse, error) {
	a, err := s.getOwned(ctx, userID, assignmentID)
	if err != nil {
		return nil, err
	}
	return &dto.AssignmentResponse{Assignment: a}, nil
}

func (s *assignmentService) Submit(ctx context.Context, userID string, req *dto.SubmitAssignmentRequest) (*dto.SubmitAssignmentResponse, error) {
	// 1. 校验提交类型枚举
	if !model.ValidSubmissionType(req.SubmissionType) {
		return nil, ErrInvalidSubmission
	}

	// 2. 创建作业
	a := &model.Assignment{
		UserID:         userID,
		WeekNumber:     req.WeekNumber,
		TaskDay:        req.TaskDay,
		Title:          req.Title,
		Description:    req.Description,
		SubmissionType: req.SubmissionType,
		FileURLs:       req.FileURLs,
		ExternalLinks:  req.ExternalLinks,
		Status:         model.StatusSubmitted,
		SubmittedAt:    time.Now(),
	}
	if req.Content != "" {
		content := req.Content
		a.Content = &content
	}
	if err := s.repo.Assignment.Create(ctx, a); err != nil {
		s.logger.Error("创建作业失败", zap.Error(err))
		return nil, err
	}

	// 3. 符合条件时生成自动反馈，失败不影响提交结果
	aiFeedback := s.generateAutoFeedback(ctx, a)

	return &dto.SubmitAssignmentResponse{
		Assignment: a,
		AIFeedback: aiFeedback,
	}, nil
}

func (s *assignmentService) Update(ctx context.Context, userID string, req *dto.UpdateAssignmentRequest) (*dto.AssignmentResponse, error) {
	a, err := s.getOwned(ctx, userID, req.ID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		a.Title = *req.Title
	}
	if req.Description != nil {
		a.Description = *req.Description
	}
	if req.Content != nil {
		a.Content = req.Content
	}
	if req.FileURLs != nil {
		a.FileURLs = *req.FileURLs
	}
	if req.ExternalLinks != nil {
		a.ExternalLinks = *req.ExternalLinks
	}
	now := time.Now()
	a.UpdatedAt = &now

	if err := s.repo.Assignment.Update(ctx, a); err != nil {
		s.logger.Error("更新作业失败", zap.Error(err))
		return nil, err
	}
	return &dto.AssignmentResponse{Assignment: a}, nil
}

// getOwned 查找作业并校验归属，越权访问与不存在同样返回 404
func (s *assignmentService) getOwned(ctx context.Context, userID, assignmentID string) (*model.Assignment, error) {
	a, err := s.repo.Assignment.GetByID(ctx, assignmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAssignmentNotFound
		}
		s.logger.Error("查询作业失败", zap.Error(err))
		return nil, err
	}
	if a.UserID != userID {
		return nil, ErrAssignmentNotFound
	}
	return a, nil
}

// generateAutoFeedback 为白名单内的文本作业生成评审反馈
// 当前为规则生成的占位实现，保留接入大模型的结构
func (s *assignmentService) generateAutoFeedback(ctx context.Context, a *model.Assignment) *model.AssignmentFeedback {
	if a.SubmissionType != model.SubmissionText || a.Content == nil || *a.Content == "" {
		return nil
	}
	if _, ok := aiEligibleTasks[curriculum.TaskKey(a.WeekNumber, a.TaskDay)]; !ok {
		return nil
	}

	score := 7
	f := &model.AssignmentFeedback{
		AssignmentID: a.AssignmentID,
		FeedbackType: model.FeedbackAIGenerated,
		Content: fmt.Sprintf(`Thank you for submitting your %s. Your submission demonstrates a solid understanding of the key concepts. Here's my analysis:

**Strengths:**
• Clear structure and organization
• Good attention to detail
• Practical approach to the problem

**Areas for Improvement:**
• Consider adding more specific examples
• Could benefit from additional research
• Try to quantify your recommendations

**Overall Score: %d/10**
Keep up the great work! Consider revising based on the suggestions above.`, a.Title, score),
		Score: &score,
		Strengths: model.StringArray{
			"Clear structure and organization",
			"Good attention to detail",
			"Practical approach to the problem",
		},
		Improvements: model.StringArray{
			"Add more specific examples",
			"Include additional research",
			"Quantify recommendations",
		},
	}

	if err := s.repo.Feedback.Create(ctx, f); err != nil {
		s.logger.Warn("保存自动反馈失败", zap.Error(err))
		return nil
	}
	return f
}
