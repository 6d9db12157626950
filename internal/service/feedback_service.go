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

var (
	ErrFeedbackNotFound  = errors.New("反馈不存在")
	ErrInvalidFeedback   = errors.New("反馈类型无效")
	ErrFeedbackForbidden = errors.New("无权操作该反馈")
)

// FeedbackService 作业反馈业务接口
type FeedbackService interface {
	// List 指定作业的反馈；不传 assignmentId 时返回当前用户名下所有作业的反馈
	List(ctx context.Context, userID string, req *dto.FeedbackListRequest) (*dto.FeedbackListResponse, error)
	// Create 创建反馈；作业本人可自评，非本人提交 instructor_review 需讲师角色
	Create(ctx context.Context, userID, role string, req *dto.CreateFeedbackRequest) (*dto.FeedbackResponse, error)
	// Update 仅 reviewer 本人可改人工反馈，ai_generated 不可修改
	Update(ctx context.Context, userID string, req *dto.UpdateFeedbackRequest) (*dto.FeedbackResponse, error)
}

type feedbackService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewFeedbackService 创建 FeedbackService 实例
func NewFeedbackService(repo *repository.Repository, logger *zap.Logger) FeedbackService {
	return &feedbackService{repo: repo, logger: logger}
}

func (s *feedbackService) List(ctx context.Context, userID string, req *dto.FeedbackListRequest) (*dto.FeedbackListResponse, error) {
	var (
		list []model.AssignmentFeedback
		err  error
	)
	if req.AssignmentID != "" {
		list, err = s.repo.Feedback.ListByAssignment(ctx, req.AssignmentID)
	} else {
		list, err = s.repo.Feedback.ListByOwner(ctx, userID)
	}
	if err != nil {
		s.logger.Error("查询反馈失败", zap.Error(err))
		return nil, err
	}
	if list == nil {
		list = []model.AssignmentFeedback{}
	}
	return &dto.FeedbackListResponse{Feedback: list}, nil
}

func (s *feedbackService) Create(ctx context.Context, userID, role string, req *dto.CreateFeedbackRequest) (*dto.FeedbackResponse, error) {
	// 1. 校验反馈类型枚举
	if !model.ValidFeedbackType(req.FeedbackType) {
		return nil, ErrInvalidFeedback
	}

	// 2. 作业必须存在
	assignment, err := s.repo.Assignment.GetByID(ctx, req.AssignmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAssignmentNotFound
		}
		s.logger.Error("查询作业失败", zap.Error(err))
		return nil, err
	}

	// 3. 权限：本人作业可自评；评审他人作业只开放给讲师角色的 instructor_review
	canReview := assignment.UserID == userID ||
		(req.FeedbackType == model.FeedbackInstructorReview && role == model.RoleInstructor)
	if !canReview {
		return nil, ErrFeedbackForbidden
	}

	// 4. 落库，ai_generated 不记录 reviewer
	f := &model.AssignmentFeedback{
		AssignmentID: req.AssignmentID,
		FeedbackType: req.FeedbackType,
		Content:      req.Content,
		Score:        req.Score,
		Strengths:    req.Strengths,
		Improvements: req.Improvements,
	}
	if req.FeedbackType != model.FeedbackAIGenerated {
		reviewer := userID
		f.ReviewerID = &reviewer
	}
	if err := s.repo.Feedback.Create(ctx, f); err != nil {
		s.logger.Error("创建反馈失败", zap.Error(err))
		return nil, err
	}

	// 5. 讲师评审带分时联动作业状态
	if req.FeedbackType == model.FeedbackInstructorReview && req.Score != nil {
		status := model.StatusNeedsRevision
		if *req.Score >= 8 {
			status = model.StatusApproved
		}
		assignment.Status = status
		now := time.Now()
		assignment.UpdatedAt = &now
		if err := s.repo.Assignment.Update(ctx, assignment); err != nil {
			// 状态联动失败不回滚反馈本身
			s.logger.Warn("更新作业状态失败", zap.Error(err))
		}
	}

	return &dto.FeedbackResponse{Feedback: f}, nil
}

func (s *feedbackService) Update(ctx context.Context, userID string, req *dto.UpdateFeedbackRequest) (*dto.FeedbackResponse, error) {
	// 1. 查找反馈
	f, err := s.repo.Feedback.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFeedbackNotFound
		}
		s.logger.Error("查询反馈失败", zap.Error(err))
		return nil, err
	}

	// 2. ai_generated 不可修改；人工反馈仅 reviewer 本人可改
	if f.FeedbackType == model.FeedbackAIGenerated {
		return nil, ErrFeedbackForbidden
	}
	if f.ReviewerID != nil && *f.ReviewerID != userID {
		return nil, ErrFeedbackForbidden
	}

	// 3. 应用变更
	if req.Content != nil {
		f.Content = *req.Content
	}
	if req.Score != nil {
		f.Score = req.Score
	}
	if req.Strengths != nil {
		f.Strengths = *req.Strengths
	}
	if req.Improvements != nil {
		f.Improvements = *req.Improvements
	}
	now := time.Now()
	f.UpdatedAt = &now

	if err := s.repo.Feedback.Update(ctx, f); err != nil {
		s.logger.Error("更新反馈失败", zap.Error(err))
		return nil, err
	}
	return &dto.FeedbackResponse{Feedback: f}, nil
}
