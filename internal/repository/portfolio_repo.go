package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/Rushant-123/ui-learnings/internal/model"
)

// PortfolioRepository 作品集里程碑数据访问接口
type PortfolioRepository interface {
	Create(ctx context.Context, m *model.PortfolioMilestone) error
	GetByID(ctx context.Context, id string) (*model.PortfolioMilestone, error)
	// GetByUserWeek 按 (user_id, week_number) 自然键查询，用于提交时的 upsert 判断
	GetByUserWeek(ctx context.Context, userID string, weekNumber int) (*model.PortfolioMilestone, error)
	Update(ctx context.Context, m *model.PortfolioMilestone) error
	// ListByUser 用户全部里程碑，按周升序
	ListByUser(ctx context.Context, userID string) ([]model.PortfolioMilestone, error)
}

// portfolioRepo PortfolioRepository 的 GORM 实现
type portfolioRepo struct {
	db *gorm.DB
}

// NewPortfolioRepo 创建 PortfolioRepository 实例
func NewPortfolioRepo(db *gorm.DB) PortfolioRepository {
	return &portfolioRepo{db: db}
}

func (r *portfolioRepo) Create(ctx context.Context, m *model.PortfolioMilestone) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *portfolioRepo) GetByID(ctx context.Context, id string) (*model.PortfolioMilestone, error) {
	var m model.PortfolioMilestone
	err := r.db.WithContext(ctx).
		Where("milestone_id = ?", id).
		First(&m).Error
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *portfolioRepo) GetByUserWeek(ctx context.Context, userID string, weekNumber int) (*model.PortfolioMilestone, error) {
	var m model.PortfolioMilestone
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND week_number = ?", userID, weekNumber).
		First(&m).Error
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *portfolioRepo) Update(ctx context.Context, m *model.PortfolioMilestone) error {
	return r.db.WithContext(ctx).Save(m).Error
}

func (r *portfolioRepo) ListByUser(ctx context.Context, userID string) ([]model.PortfolioMilestone, error) {
	var list []model.PortfolioMilestone
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("week_number ASC").
		Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}
