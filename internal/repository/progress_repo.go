package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Rushant-123/ui-learnings/internal/model"
)

// ProgressRepository 任务完成记录数据访问接口
type ProgressRepository interface {
	// Upsert 按 (user_id, week_number, task_day) 插入或更新，保证每对至多一条记录
	Upsert(ctx context.Context, record *model.TaskProgress) error
	// ListByUser 返回用户全部记录，周升序、日降序（沿用原线上排序）
	ListByUser(ctx context.Context, userID string) ([]model.TaskProgress, error)
}

// progressRepo ProgressRepository 的 GORM 实现
type progressRepo struct {
	db *gorm.DB
}

// NewProgressRepo 创建 ProgressRepository 实例
func NewProgressRepo(db *gorm.DB) ProgressRepository {
	return &progressRepo{db: db}
}

func (r *progressRepo) Upsert(ctx context.Context, record *model.TaskProgress) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "user_id"},
				{Name: "week_number"},
				{Name: "task_day"},
			},
			DoUpdates: clause.AssignmentColumns([]string{"completed", "completed_at", "updated_at"}),
		}).
		Create(record).Error
}

func (r *progressRepo) ListByUser(ctx context.Context, userID string) ([]model.TaskProgress, error) {
	var records []model.TaskProgress
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("week_number ASC").
		Order("task_day DESC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}
