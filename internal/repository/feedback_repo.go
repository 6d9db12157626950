package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/Rushant-123/ui-learnings/internal/model"
)

// FeedbackRepository 作业反馈数据访问接口
type FeedbackRepository interface {
	Create(ctx context.Context, f *model.AssignmentFeedback) error
	GetByID(ctx context.Context, id string) (*model.AssignmentFeedback, error)
	Update(ctx context.Context, f *model.AssignmentFeedback) error
	// ListByAssignment 指定作业的全部反馈，创建时间倒序
	ListByAssignment(ctx context.Context, assignmentID string) ([]model.AssignmentFeedback, error)
	// ListByOwner 指定用户名下全部作业的反馈，创建时间倒序
	ListByOwner(ctx context.Context, ownerID string) ([]model.AssignmentFeedback, error)
}

// feedbackRepo FeedbackRepository 的 GORM 实现
type feedbackRepo struct {
	db *gorm.DB
}

// NewFeedbackRepo 创建 FeedbackRepository 实例
func NewFeedbackRepo(db *gorm.DB) FeedbackRepository {
	return &feedbackRepo{db: db}
}

func (r *feedbackRepo) Create(ctx context.Context, f *model.AssignmentFeedback) error {
	return r.db.WithContext(ctx).Create(f).Error
}

func (r *feedbackRepo) GetByID(ctx context.Context, id string) (*model.AssignmentFeedback, error) {
	var f model.AssignmentFeedback
	err := r.db.WithContext(ctx).
		Where("feedback_id = ?", id).
		First(&f).Error
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *feedbackRepo) Update(ctx context.Context, f *model.AssignmentFeedback) error {
	return r.db.WithContext(ctx).Save(f).Error
}

func (r *feedbackRepo) ListByAssignment(ctx context.Context, assignmentID string) ([]model.AssignmentFeedback, error) {
	var list []model.AssignmentFeedback
	err := r.db.WithContext(ctx).
		Where("assignment_id = ?", assignmentID).
		Order("created_at DESC").
		Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (r *feedbackRepo) ListByOwner(ctx context.Context, ownerID string) ([]model.AssignmentFeedback, error) {
	var list []model.AssignmentFeedback
	err := r.db.WithContext(ctx).
		Where("assignment_id IN (?)",
			r.db.Model(&model.Assignment{}).Select("assignment_id").Where("user_id = ?", ownerID)).
		Order("created_at DESC").
		Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}
