package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/Rushant-123/ui-learnings/internal/model"
)

// AssignmentFilters 作业列表过滤条件
type AssignmentFilters struct {
	WeekNumber int    // 0 表示不过滤
	TaskDay    string // 空表示不过滤
}

// AssignmentRepository 作业数据访问接口
type AssignmentRepository interface {
	Create(ctx context.Context, a *model.Assignment) error
	// GetByID 按 id 查找并预加载反馈；调用方自行校验归属
	GetByID(ctx context.Context, id string) (*model.Assignment, error)
	Update(ctx context.Context, a *model.Assignment) error
	// ListByUser 仅返回指定用户的作业，提交时间倒序，预加载反馈
	ListByUser(ctx context.Context, userID string, filters *AssignmentFilters) ([]model.Assignment, error)
}

// assignmentRepo AssignmentRepository 的 GORM 实现
type assignmentRepo struct {
	db *gorm.DB
}

// NewAssignmentRepo 创建 AssignmentRepository 实例
func NewAssignmentRepo(db *gorm.DB) AssignmentRepository {
	return &assignmentRepo{db: db}
}

func (r *assignmentRepo) Create(ctx context.Context, a *model.Assignment) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *assignmentRepo) GetByID(ctx context.Context, id string) (*model.Assignment, error) {
	var a model.Assignment
	err := r.db.WithContext(ctx).
		Preload("Feedback").
		Where("assignment_id = ?", id).
		First(&a).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *assignmentRepo) Update(ctx context.Context, a *model.Assignment) error {
	return r.db.WithContext(ctx).Save(a).Error
}

func (r *assignmentRepo) ListByUser(ctx context.Context, userID string, filters *AssignmentFilters) ([]model.Assignment, error) {
	q := r.db.WithContext(ctx).
		Preload("Feedback").
		Where("user_id = ?", userID)

	if filters != nil {
		if filters.WeekNumber > 0 {
			q = q.Where("week_number = ?", filters.WeekNumber)
		}
		if filters.TaskDay != "" {
			q = q.Where("task_day = ?", filters.TaskDay)
		}
	}

	var list []model.Assignment
	if err := q.Order("submitted_at DESC").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}
